package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactMissing is wrapped when a descriptor's file does not exist.
	ErrArtifactMissing = errors.New("model artifact not found")
	// ErrShapeMismatch is wrapped when the model's output length differs
	// from its label vocabulary.
	ErrShapeMismatch = errors.New("output dimension does not match label vocabulary")
	// ErrDuplicateModel is wrapped when two descriptors share a name.
	ErrDuplicateModel = errors.New("duplicate model name")
)

// LoadError records why one configured model is not servable.
type LoadError struct {
	Model  string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Model, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadFailure reports whether err is a per-model load failure.
func IsLoadFailure(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// modelNotFoundError is returned by Get for names outside the loaded set.
// Never-configured and failed-to-load models are indistinguishable here.
type modelNotFoundError struct{ name string }

func (e modelNotFoundError) Error() string { return fmt.Sprintf("Model '%s' not found", e.name) }

// ErrModelNotFound constructs the error Get returns for name.
func ErrModelNotFound(name string) error { return modelNotFoundError{name: name} }

// IsModelNotFound reports whether err indicates an unknown model name.
func IsModelNotFound(err error) bool {
	var nf modelNotFoundError
	return errors.As(err, &nf)
}
