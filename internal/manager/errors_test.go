package manager

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"gestured/internal/imaging"
	"gestured/internal/registry"
)

func TestKindOf(t *testing.T) {
	cases := map[ErrorKind]error{
		KindModelNotFound:    registry.ErrModelNotFound("x"),
		KindInvalidImage:     fmt.Errorf("decode: %w", imaging.ErrInvalidImage),
		KindModelLoadFailure: &registry.LoadError{Model: "x", Err: registry.ErrArtifactMissing},
		KindInferenceFailure: ErrInference("x", errors.New("boom")),
	}
	for want, err := range cases {
		if got := KindOf(err); got != want {
			t.Fatalf("KindOf(%v)=%s want %s", err, got, want)
		}
	}
	if KindOf(errors.New("other")) != KindInferenceFailure {
		t.Fatalf("unknown errors must be inference failures")
	}
}

func TestIsInferenceFailure(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrInference("m", errors.New("x")))
	if !IsInferenceFailure(err) {
		t.Fatalf("expected inference failure")
	}
	if IsInferenceFailure(registry.ErrModelNotFound("m")) {
		t.Fatalf("not found is not an inference failure")
	}
}

func TestArgmax(t *testing.T) {
	if got := argmax([]float32{0.1, 0.7, 0.7, 0.1}); got != 1 {
		t.Fatalf("argmax=%d", got)
	}
	if got := argmax([]float32{1}); got != 0 {
		t.Fatalf("argmax single=%d", got)
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))
	p.Publish(Event{Name: "prediction", ModelID: "m", Fields: map[string]any{"success": true}})
	out := buf.String()
	for _, want := range []string{`"event":"prediction"`, `"model":"m"`, `"success":true`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestPredictFailureLogLevels(t *testing.T) {
	be := &fakeBackend{models: map[string]registry.Inferable{"flaky_model": failingModel{}}}
	reg := registry.LoadAll(testCatalog(t), be, zerolog.Nop())
	var buf bytes.Buffer
	p := NewPredictor(reg, nil, zerolog.New(&buf).Level(zerolog.WarnLevel))

	p.Predict(rgbImage(8, 8, 0), "nonexistent_model", 0.5)
	if buf.Len() != 0 {
		t.Fatalf("unknown model logged above debug: %s", buf.String())
	}
	p.Predict(rgbImage(8, 8, 0), "flaky_model", 0.5)
	if out := buf.String(); !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"kind":"inference_failure"`) {
		t.Fatalf("inference failure not logged at warn: %s", out)
	}
}
