package manager

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gestured/internal/catalog"
	"gestured/internal/imaging"
	"gestured/internal/registry"
	"gestured/pkg/types"
)

// softmaxModel produces a deterministic distribution from the tensor mean.
type softmaxModel struct{ classes int }

func (m softmaxModel) Infer(in imaging.Tensor) ([]float32, error) {
	var mean float64
	for _, v := range in.Data {
		mean += float64(v)
	}
	mean /= float64(len(in.Data))
	logits := make([]float64, m.classes)
	var sum float64
	for i := range logits {
		logits[i] = math.Exp(-math.Abs(mean*float64(m.classes) - float64(i)))
		sum += logits[i]
	}
	out := make([]float32, m.classes)
	for i := range out {
		out[i] = float32(logits[i] / sum)
	}
	return out, nil
}

type uniformModel struct{ classes int }

func (m uniformModel) Infer(imaging.Tensor) ([]float32, error) {
	out := make([]float32, m.classes)
	for i := range out {
		out[i] = 1 / float32(m.classes)
	}
	return out, nil
}

type failingModel struct{}

func (failingModel) Infer(imaging.Tensor) ([]float32, error) {
	return nil, errors.New("runtime exploded")
}

type panicModel struct{}

func (panicModel) Infer(imaging.Tensor) ([]float32, error) { panic("boom") }

// fakeBackend hands out models by descriptor name and counts loads.
type fakeBackend struct {
	models map[string]registry.Inferable
	shapes map[string]imaging.Shape
	loads  atomic.Int32
}

func (b *fakeBackend) Load(d catalog.Descriptor) (registry.Artifact, error) {
	b.loads.Add(1)
	m, ok := b.models[d.Name]
	if !ok {
		m = softmaxModel{classes: len(d.Labels)}
	}
	shape, ok := b.shapes[d.Name]
	if !ok {
		shape = imaging.Shape{Height: 16, Width: 16, Channels: 3}
	}
	return registry.Artifact{Model: m, InputShape: shape, OutputDim: len(d.Labels), Layout: catalog.LayoutNHWC}, nil
}

// testCatalog writes artifacts for every descriptor except those listed in
// missing and returns the resolved catalog.
func testCatalog(t *testing.T, missing ...string) []catalog.Descriptor {
	t.Helper()
	dir := t.TempDir()
	skip := map[string]bool{}
	for _, m := range missing {
		skip[m] = true
	}
	ds := []catalog.Descriptor{
		{Name: "good_model", File: "good.onnx", Labels: []string{"A", "B", "C", "D"}},
		{Name: "gray_model", File: "gray.onnx", Labels: []string{"hand", "no_hand"}},
		{Name: "flaky_model", File: "flaky.onnx", Labels: []string{"x", "y", "z"}},
	}
	for _, d := range ds {
		if skip[d.Name] {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, d.File), []byte("onnx"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	out, err := catalog.Enumerate(dir, ds)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	return out
}

func newTestManager(t *testing.T, be *fakeBackend, missing ...string) (*Manager, *MemoryPublisher) {
	t.Helper()
	if be == nil {
		be = &fakeBackend{}
	}
	pub := NewMemoryPublisher()
	m := NewWithConfig(ManagerConfig{
		Catalog:       testCatalog(t, missing...),
		Backend:       be,
		DefaultModel:  "good_model",
		CompareModels: []string{"good_model", "gray_model"},
		Publisher:     pub,
	})
	t.Cleanup(func() { _ = m.Close() })
	return m, pub
}

func rgbImage(w, h int, seed uint8) imaging.Image {
	im := imaging.Image{Width: w, Height: h, Channels: 3, Pix: make([]uint8, w*h*3)}
	for i := range im.Pix {
		im.Pix[i] = uint8(i) + seed
	}
	return im
}

func distSum(d types.Distribution) float64 {
	var s float64
	for _, ls := range d {
		s += ls.Probability
	}
	return s
}

func probOf(d types.Distribution, label string) float64 {
	for _, ls := range d {
		if ls.Label == label {
			return ls.Probability
		}
	}
	return -1
}
