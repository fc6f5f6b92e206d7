package registry

import (
	"gestured/internal/catalog"
	"gestured/internal/imaging"
)

// Inferable is the uniform capability every loaded model provides,
// whatever its architecture: one normalized sample in, one probability
// vector out. Implementations must be safe for concurrent use.
type Inferable interface {
	Infer(in imaging.Tensor) ([]float32, error)
}

// Artifact is an opened model together with the shapes read back from it.
type Artifact struct {
	Model      Inferable
	InputShape imaging.Shape
	OutputDim  int
	Params     int64
	// Layout is the tensor layout the backend feeds the runtime (nhwc|nchw).
	Layout string
	// Close releases runtime resources. May be nil.
	Close func() error
}

// Backend opens serialized models. Load receives a descriptor whose Source
// has been verified to exist.
type Backend interface {
	Load(d catalog.Descriptor) (Artifact, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(d catalog.Descriptor) (Artifact, error)

func (f BackendFunc) Load(d catalog.Descriptor) (Artifact, error) { return f(d) }
