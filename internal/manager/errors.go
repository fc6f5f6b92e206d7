package manager

import (
	"errors"
	"fmt"

	"gestured/internal/imaging"
	"gestured/internal/registry"
)

// ErrorKind classifies a failed prediction.
type ErrorKind string

const (
	KindModelNotFound    ErrorKind = "model_not_found"
	KindInvalidImage     ErrorKind = "invalid_image"
	KindInferenceFailure ErrorKind = "inference_failure"
	KindModelLoadFailure ErrorKind = "model_load_failure"
)

// inferenceError wraps anything that went wrong after the model was resolved
// and the image was accepted.
type inferenceError struct {
	model string
	err   error
}

func (e inferenceError) Error() string {
	return fmt.Sprintf("inference failed for %s: %v", e.model, e.err)
}

func (e inferenceError) Unwrap() error { return e.err }

// ErrInference wraps err as an inference failure of model.
func ErrInference(model string, err error) error { return inferenceError{model: model, err: err} }

// IsInferenceFailure reports whether err is an inference failure.
func IsInferenceFailure(err error) bool {
	var ie inferenceError
	return errors.As(err, &ie)
}

// KindOf maps err onto the failure taxonomy. Unrecognized errors are
// inference failures.
func KindOf(err error) ErrorKind {
	switch {
	case registry.IsModelNotFound(err):
		return KindModelNotFound
	case errors.Is(err, imaging.ErrInvalidImage):
		return KindInvalidImage
	case registry.IsLoadFailure(err):
		return KindModelLoadFailure
	}
	return KindInferenceFailure
}
