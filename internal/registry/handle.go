package registry

import (
	"fmt"
	"math"

	"gestured/internal/catalog"
	"gestured/internal/imaging"
	"gestured/pkg/types"
)

// Handle is a loaded, ready-to-infer model. Handles are created by LoadAll
// and never mutated afterwards.
type Handle struct {
	Descriptor catalog.Descriptor
	InputShape imaging.Shape
	OutputDim  int
	Params     int64
	Layout     string

	model Inferable
	close func() error
}

// Name returns the catalog name.
func (h *Handle) Name() string { return h.Descriptor.Name }

// Labels returns the label vocabulary; callers must not modify it.
func (h *Handle) Labels() []string { return h.Descriptor.Labels }

// Infer runs the model on a tensor already normalized to InputShape.
func (h *Handle) Infer(in imaging.Tensor) ([]float32, error) {
	if in.Shape != h.InputShape || len(in.Data) != h.InputShape.Size() {
		return nil, fmt.Errorf("%s: input tensor %s (%d values) does not match model input %s",
			h.Name(), in.Shape, len(in.Data), h.InputShape)
	}
	out, err := h.model.Infer(in)
	if err != nil {
		return nil, err
	}
	if len(out) != h.OutputDim {
		return nil, fmt.Errorf("%s: model returned %d probabilities, want %d", h.Name(), len(out), h.OutputDim)
	}
	for i, v := range out {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("%s: non-finite output at index %d", h.Name(), i)
		}
	}
	return out, nil
}

// Info projects the handle into its wire description.
func (h *Handle) Info() types.ModelInfo {
	return types.ModelInfo{
		Name:        h.Descriptor.Name,
		DisplayName: h.Descriptor.DisplayName,
		InputShape:  h.InputShape.Dims(),
		OutputShape: []int{h.OutputDim},
		Classes:     append([]string(nil), h.Descriptor.Labels...),
		NumClasses:  len(h.Descriptor.Labels),
		Params:      h.Params,
		Layout:      h.Layout,
	}
}
