package e2e

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gestured/internal/catalog"
	"gestured/internal/httpapi"
	"gestured/internal/imaging"
	"gestured/internal/manager"
	"gestured/internal/registry"
)

// meanModel derives a peaked distribution from the mean pixel value, so
// different images give different (but deterministic) answers.
type meanModel struct{ classes int }

func (m meanModel) Infer(in imaging.Tensor) ([]float32, error) {
	var mean float64
	for _, v := range in.Data {
		mean += float64(v)
	}
	mean /= float64(len(in.Data))
	peak := int(mean * float64(m.classes-1))
	out := make([]float32, m.classes)
	var sum float64
	for i := range out {
		v := math.Exp(-math.Abs(float64(i - peak)))
		out[i] = float32(v)
		sum += v
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out, nil
}

// fakeBackend serves the built-in catalog with the input shapes of the
// exported Keras models.
func fakeBackend() registry.Backend {
	shapes := map[string]imaging.Shape{
		"asl_alphabet": {Height: 160, Width: 160, Channels: 3},
		"sign_mnist":   {Height: 28, Width: 28, Channels: 1},
		"hagrid":       {Height: 224, Width: 224, Channels: 3},
	}
	return registry.BackendFunc(func(d catalog.Descriptor) (registry.Artifact, error) {
		return registry.Artifact{
			Model:      meanModel{classes: len(d.Labels)},
			InputShape: shapes[d.Name],
			OutputDim:  len(d.Labels),
			Layout:     catalog.LayoutNHWC,
		}, nil
	})
}

// createModelsDir writes placeholder artifacts for the named catalog entries.
func createModelsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	byName := map[string]catalog.Descriptor{}
	for _, d := range catalog.Default() {
		byName[d.Name] = d
	}
	for _, n := range names {
		p := filepath.Join(dir, byName[n].File)
		if err := os.WriteFile(p, []byte("onnx"), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir
}

func newServer(t *testing.T, modelsDir string, backend registry.Backend) (*httptest.Server, *manager.Manager) {
	t.Helper()
	descs, err := catalog.Enumerate(modelsDir, nil)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{Catalog: descs, Backend: backend})
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(func() {
		srv.Close()
		_ = mgr.Close()
	})
	return srv, mgr
}

func imageBase64(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostJSON(t *testing.T, url string, v any) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}
