package types

// Region is a crop rectangle in source image pixels.
type Region struct {
	X      int `json:"x" example:"0"`
	Y      int `json:"y" example:"0"`
	Width  int `json:"width" example:"200"`
	Height int `json:"height" example:"200"`
}

// PredictRequest is the payload of POST /api/models/predict.
type PredictRequest struct {
	// Base64 encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP). Data URLs are accepted.
	Image string `json:"image"`
	// Model name. If empty, the server default is used.
	// example: asl_alphabet
	Model string `json:"model,omitempty" example:"asl_alphabet"`
	// Confidence floor below which a result is flagged. Defaults to 0.5.
	// example: 0.5
	ConfidenceThreshold *float64 `json:"confidence_threshold,omitempty" example:"0.5"`
	// Optional region to crop before normalization.
	Crop *Region `json:"crop,omitempty"`
}

// PathPredictRequest is the payload of POST /api/models/predict/path.
type PathPredictRequest struct {
	// Image file path, resolved inside the server's image root.
	// example: samples/a.jpg
	Path                string   `json:"path" example:"samples/a.jpg"`
	Model               string   `json:"model,omitempty" example:"asl_alphabet"`
	ConfidenceThreshold *float64 `json:"confidence_threshold,omitempty" example:"0.5"`
	Crop                *Region  `json:"crop,omitempty"`
}

// CompareRequest is the payload of POST /api/models/compare.
type CompareRequest struct {
	Image string `json:"image"`
	// Models to query. Omitted means the server's default comparison set;
	// an explicit empty list yields an empty comparison.
	// example: ["asl_alphabet","sign_mnist"]
	Models              *[]string `json:"models,omitempty"`
	ConfidenceThreshold *float64  `json:"confidence_threshold,omitempty" example:"0.5"`
	Crop                *Region   `json:"crop,omitempty"`
}

// PredictionResult is the outcome of one model on one image.
type PredictionResult struct {
	// example: asl_alphabet
	Model string `json:"model" example:"asl_alphabet"`
	// Top label.
	// example: B
	Prediction string `json:"prediction,omitempty" example:"B"`
	// Probability of the top label, in [0,1].
	// example: 0.93
	Confidence float64 `json:"confidence" example:"0.93"`
	// example: 93.00%
	ConfidencePercent string `json:"confidence_percent,omitempty" example:"93.00%"`
	// Full distribution in vocabulary order.
	AllPredictions Distribution `json:"all_predictions,omitempty" swaggertype:"object"`
	// True when confidence is below the requested threshold.
	BelowThreshold bool `json:"below_threshold"`
	// example: Low confidence: 42.00%
	Warning string `json:"warning,omitempty" example:"Low confidence: 42.00%"`
	Success bool   `json:"success"`
	// Present only when success is false.
	Error string `json:"error,omitempty"`
	// Failure class: model_not_found, invalid_image or inference_failure.
	ErrorKind string `json:"error_kind,omitempty"`
	// Loaded model names, attached to model_not_found failures.
	AvailableModels []string `json:"available_models,omitempty"`
}

// ComparisonResult is the outcome of a fan-out comparison.
type ComparisonResult struct {
	// example: success
	Status    string `json:"status" example:"success"`
	Timestamp string `json:"timestamp,omitempty"`
	// One result per requested model, in request order, keyed by model name.
	Predictions ModelPredictions `json:"predictions" swaggertype:"object"`
	// Names that were attempted, in request order.
	ComparedModels []string `json:"compared_models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// example: 400
	Code    int  `json:"code" example:"400"`
	Success bool `json:"success"`
}
