package manager

// Defaults are the request parameters the transport applies when a client
// omits them.
type Defaults struct {
	Model         string
	CompareModels []string
	Threshold     float64
}
