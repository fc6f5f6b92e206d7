package onnxrt

import (
	"fmt"

	"gestured/internal/catalog"
	"gestured/internal/imaging"
)

func isChannelDim(d int64) bool { return d == 1 || d == 3 || d == 4 }

// resolveInput maps the model's declared input dims onto a per-sample shape
// and the concrete batch-of-one dims to feed the runtime. Rank 4 inputs are
// channels-last unless pinned or unless only the second dim looks like a
// channel count. Rank 3 inputs are single-channel (N,H,W).
func resolveInput(dims []int64, pinned string) (imaging.Shape, string, []int64, error) {
	for i, d := range dims {
		if i > 0 && d <= 0 {
			return imaging.Shape{}, "", nil, fmt.Errorf("input dim %d is dynamic (%v)", i, dims)
		}
	}
	switch len(dims) {
	case 3:
		s := imaging.Shape{Height: int(dims[1]), Width: int(dims[2]), Channels: 1}
		return s, catalog.LayoutNHWC, []int64{1, dims[1], dims[2]}, nil
	case 4:
		layout := pinned
		if layout == "" {
			layout = catalog.LayoutNHWC
			if !isChannelDim(dims[3]) && isChannelDim(dims[1]) {
				layout = catalog.LayoutNCHW
			}
		}
		if layout == catalog.LayoutNCHW {
			s := imaging.Shape{Height: int(dims[2]), Width: int(dims[3]), Channels: int(dims[1])}
			return s, layout, []int64{1, dims[1], dims[2], dims[3]}, nil
		}
		s := imaging.Shape{Height: int(dims[1]), Width: int(dims[2]), Channels: int(dims[3])}
		return s, layout, []int64{1, dims[1], dims[2], dims[3]}, nil
	}
	return imaging.Shape{}, "", nil, fmt.Errorf("unsupported input rank %d (%v)", len(dims), dims)
}

// resolveOutput returns batch-of-one output dims and the per-sample length.
func resolveOutput(dims []int64) ([]int64, int, error) {
	if len(dims) == 0 {
		return nil, 0, fmt.Errorf("scalar output")
	}
	out := make([]int64, len(dims))
	n := 1
	for i, d := range dims {
		if d <= 0 {
			if i != 0 {
				return nil, 0, fmt.Errorf("output dim %d is dynamic (%v)", i, dims)
			}
			d = 1
		}
		out[i] = d
		if i > 0 {
			n *= int(d)
		}
	}
	if len(dims) == 1 {
		n = int(out[0])
	}
	return out, n, nil
}

// samples reorders an HWC tensor for the runtime layout.
func samples(in imaging.Tensor, layout string) []float32 {
	if layout == catalog.LayoutNCHW {
		return in.CHW()
	}
	return in.Data
}
