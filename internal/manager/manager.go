package manager

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"gestured/internal/catalog"
	"gestured/internal/imaging"
	"gestured/internal/registry"
	"gestured/pkg/types"
)

// Manager owns the registry and the prediction pipeline built on it.
type Manager struct {
	catalog       []catalog.Descriptor
	backend       registry.Backend
	defaultModel  string
	compareModels []string
	threshold     float64
	publisher     EventPublisher
	log           zerolog.Logger
	startTime     time.Time

	core  func() *core
	ready atomic.Bool

	// mu guards closed; inflight counts Predict and Compare calls that
	// passed the closed check so Close can wait for them.
	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// ErrClosed is reported by predictions that arrive after Close.
var ErrClosed = errors.New("manager is closed")

// core is everything derived from the loaded registry. It is built exactly
// once and read-only afterwards.
type core struct {
	reg  *registry.Registry
	pred *Predictor
	cmp  *Comparator
}

// New builds a Manager over a resolved catalog with package defaults.
func New(descs []catalog.Descriptor, backend registry.Backend) *Manager {
	return NewWithConfig(ManagerConfig{Catalog: descs, Backend: backend})
}

func (m *Manager) buildOnce() func() *core {
	return sync.OnceValue(func() *core {
		start := time.Now()
		reg := registry.LoadAll(m.catalog, m.backend, m.log)
		for _, n := range reg.Names() {
			m.publisher.Publish(Event{Name: "model_loaded", ModelID: n, Fields: map[string]any{}})
		}
		for _, f := range reg.Failures() {
			loadFailuresTotal.WithLabelValues(f.Model).Inc()
			m.publisher.Publish(Event{Name: "model_load_failed", ModelID: f.Model, Fields: map[string]any{"error": f.Err.Error()}})
		}
		modelsLoaded.Set(float64(reg.Len()))
		pred := NewPredictor(reg, m.publisher, m.log)
		c := &core{reg: reg, pred: pred, cmp: NewComparator(pred)}
		m.startTime = time.Now()
		m.ready.Store(true)
		m.log.Info().Dur("dur", time.Since(start)).Strs("models", reg.Names()).Msg("manager ready")
		return c
	})
}

// Load builds the registry if it has not been built yet and returns it.
// Concurrent callers block until the single build finishes and all observe
// the same instance.
func (m *Manager) Load() *registry.Registry { return m.core().reg }

// Ready reports whether the registry has been built. It never triggers a build.
func (m *Manager) Ready() bool { return m.ready.Load() }

// Catalog returns the descriptors the registry is built from.
func (m *Manager) Catalog() []catalog.Descriptor {
	return append([]catalog.Descriptor(nil), m.catalog...)
}

// Defaults returns the request defaults.
func (m *Manager) Defaults() Defaults {
	return Defaults{
		Model:         m.defaultModel,
		CompareModels: append([]string(nil), m.compareModels...),
		Threshold:     m.threshold,
	}
}

// Predict runs one model on img. An empty model name selects the default model.
func (m *Manager) Predict(img imaging.Image, model string, threshold float64) types.PredictionResult {
	if model == "" {
		model = m.defaultModel
	}
	if !m.enter() {
		return closedResult(model)
	}
	defer m.inflight.Done()
	return m.core().pred.Predict(img, model, threshold)
}

// Compare runs every named model on img, in order.
func (m *Manager) Compare(img imaging.Image, models []string, threshold float64) types.ComparisonResult {
	var res types.ComparisonResult
	if m.enter() {
		func() {
			defer m.inflight.Done()
			res = m.core().cmp.Compare(img, models, threshold)
		}()
	} else {
		res = types.ComparisonResult{Status: "success", ComparedModels: append([]string{}, models...)}
		for _, name := range models {
			res.Predictions = append(res.Predictions, closedResult(name))
		}
	}
	res.Timestamp = timestamp()
	return res
}

// enter registers an in-flight call. It reports false once Close has begun.
func (m *Manager) enter() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false
	}
	m.inflight.Add(1)
	return true
}

func closedResult(model string) types.PredictionResult {
	err := ErrInference(model, ErrClosed)
	return types.PredictionResult{
		Model:     model,
		Error:     err.Error(),
		ErrorKind: string(KindOf(err)),
	}
}

// Close releases model resources at process teardown. New predictions are
// refused and Close waits for running ones before destroying sessions.
// Calling it again returns nil.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()
	m.inflight.Wait()
	if !m.Ready() {
		return nil
	}
	return m.core().reg.Close()
}

func timestamp() string { return time.Now().UTC().Format(time.RFC3339) }
