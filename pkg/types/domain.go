package types

// ModelInfo describes one loaded model for the availability and health views.
type ModelInfo struct {
	// Catalog name of the model.
	// example: sign_mnist
	Name string `json:"name" example:"sign_mnist"`
	// Human-friendly name.
	// example: Sign Language MNIST
	DisplayName string `json:"display_name,omitempty" example:"Sign Language MNIST"`
	// Per-sample input shape as [height, width, channels], read back from the model.
	// example: [28,28,1]
	InputShape []int `json:"input_shape" example:"28,28,1"`
	// Output shape as [classes].
	// example: [26]
	OutputShape []int `json:"output_shape" example:"26"`
	// Ordered label vocabulary.
	Classes []string `json:"classes"`
	// Number of classes.
	// example: 26
	NumClasses int `json:"num_classes" example:"26"`
	// Parameter count (informational, 0 when unknown).
	// example: 1234567
	Params int64 `json:"params" example:"1234567"`
	// Input tensor layout fed to the runtime (nhwc or nchw).
	// example: nhwc
	Layout string `json:"layout,omitempty" example:"nhwc"`
}

// HealthResponse is the registry-derived health view.
type HealthResponse struct {
	// "healthy" when at least one model is loaded, otherwise "no_models".
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// RFC3339 server time.
	Timestamp string `json:"timestamp,omitempty"`
	// Names of the loaded models, in catalog order.
	LoadedModels []string `json:"loaded_models"`
	// Per-model metadata keyed by name.
	ModelsInfo map[string]ModelInfo `json:"models_info"`
}

// AvailableResponse is returned by GET /api/models/available.
type AvailableResponse struct {
	// example: success
	Status    string               `json:"status" example:"success"`
	Timestamp string               `json:"timestamp,omitempty"`
	Models    map[string]ModelInfo `json:"models"`
}

// StatusResponse is returned by GET /api/models/status.
type StatusResponse struct {
	// example: success
	Status    string         `json:"status" example:"success"`
	Timestamp string         `json:"timestamp,omitempty"`
	Health    HealthResponse `json:"health"`
	// Models that were configured but failed to load, with the load error.
	FailedModels map[string]string `json:"failed_models"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Inference runtime availability.
	Runtime RuntimeReport `json:"runtime"`
}

// RuntimeReport describes whether the inference runtime could be initialized.
type RuntimeReport struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}
