package manager

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gestured/internal/imaging"
	"gestured/internal/registry"
	"gestured/pkg/types"
)

// Predictor answers single-model predictions against a built registry.
type Predictor struct {
	reg       *registry.Registry
	publisher EventPublisher
	log       zerolog.Logger
}

// NewPredictor binds a predictor to reg. A nil publisher drops events.
func NewPredictor(reg *registry.Registry, publisher EventPublisher, log zerolog.Logger) *Predictor {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Predictor{reg: reg, publisher: publisher, log: log}
}

// Predict resolves model, normalizes img to its input shape, runs inference
// and ranks the result. A confidence below threshold only annotates the
// result. Failures come back as Success=false results, never as panics.
func (p *Predictor) Predict(img imaging.Image, model string, threshold float64) types.PredictionResult {
	start := time.Now()
	res, err := p.predict(img, model, threshold)
	dur := time.Since(start)

	label := model
	if err != nil {
		res = p.failure(model, err)
		if registry.IsModelNotFound(err) {
			label = unresolvedModel
		} else {
			inferenceDuration.WithLabelValues(label).Observe(dur.Seconds())
		}
		predictionsTotal.WithLabelValues(label, res.ErrorKind).Inc()
		ev := p.log.Debug()
		if IsInferenceFailure(err) {
			// Client mistakes stay at debug; a model that cannot run is an operator problem.
			ev = p.log.Warn()
		}
		ev.Str("model", model).Str("kind", res.ErrorKind).Err(err).Msg("prediction failed")
	} else {
		inferenceDuration.WithLabelValues(label).Observe(dur.Seconds())
		predictionsTotal.WithLabelValues(label, "success").Inc()
		if res.BelowThreshold {
			lowConfidenceTotal.WithLabelValues(label).Inc()
		}
	}
	p.publisher.Publish(Event{Name: "prediction", ModelID: model, Fields: map[string]any{
		"success":     res.Success,
		"kind":        res.ErrorKind,
		"confidence":  res.Confidence,
		"duration_ms": dur.Milliseconds(),
	}})
	return res
}

func (p *Predictor) predict(img imaging.Image, model string, threshold float64) (types.PredictionResult, error) {
	h, err := p.reg.Get(model)
	if err != nil {
		return types.PredictionResult{}, err
	}
	tensor, err := imaging.Normalize(img, h.InputShape)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidImage) {
			return types.PredictionResult{}, err
		}
		return types.PredictionResult{}, ErrInference(model, err)
	}
	probs, err := infer(h, tensor)
	if err != nil {
		return types.PredictionResult{}, ErrInference(model, err)
	}

	labels := h.Labels()
	best := argmax(probs)
	conf := float64(probs[best])
	dist := make(types.Distribution, len(labels))
	for i, l := range labels {
		dist[i] = types.LabelScore{Label: l, Probability: float64(probs[i])}
	}
	res := types.PredictionResult{
		Model:             model,
		Prediction:        labels[best],
		Confidence:        conf,
		ConfidencePercent: fmt.Sprintf("%.2f%%", conf*100),
		AllPredictions:    dist,
		Success:           true,
	}
	if conf < threshold {
		res.BelowThreshold = true
		res.Warning = fmt.Sprintf("Low confidence: %.2f%%", conf*100)
	}
	return res, nil
}

// infer calls the model, converting a runtime panic into an error so one
// bad input cannot take down the process or a concurrent comparison.
func infer(h *registry.Handle, t imaging.Tensor) (out []float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("model panic: %v", r)
		}
	}()
	return h.Infer(t)
}

// argmax returns the first index of the largest value; ties keep the
// lower index.
func argmax(v []float32) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func (p *Predictor) failure(model string, err error) types.PredictionResult {
	res := types.PredictionResult{
		Model:     model,
		Success:   false,
		Error:     err.Error(),
		ErrorKind: string(KindOf(err)),
	}
	if registry.IsModelNotFound(err) {
		avail := p.reg.Names()
		res.AvailableModels = avail
		if len(avail) == 0 {
			res.AvailableModels = []string{}
			res.Error = err.Error() + "; no models are loaded"
		} else {
			res.Error = fmt.Sprintf("%s; available models: %s", err.Error(), strings.Join(avail, ", "))
		}
	}
	return res
}
