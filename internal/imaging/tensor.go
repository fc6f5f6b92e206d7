package imaging

import "fmt"

// Shape is the per-sample input shape of a model, batch dimension excluded.
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// Size is the number of scalar elements in one sample.
func (s Shape) Size() int { return s.Height * s.Width * s.Channels }

// Dims returns the shape as [height, width, channels].
func (s Shape) Dims() []int { return []int{s.Height, s.Width, s.Channels} }

func (s Shape) String() string { return fmt.Sprintf("(%d,%d,%d)", s.Height, s.Width, s.Channels) }

// Tensor is a single float32 sample stored channels-last (HWC).
type Tensor struct {
	Shape Shape
	Data  []float32
}

// CHW returns a channels-first copy of the tensor data.
func (t Tensor) CHW() []float32 {
	h, w, c := t.Shape.Height, t.Shape.Width, t.Shape.Channels
	out := make([]float32, len(t.Data))
	plane := h * w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*w + x
			for ch := 0; ch < c; ch++ {
				out[ch*plane+p] = t.Data[p*c+ch]
			}
		}
	}
	return out
}
