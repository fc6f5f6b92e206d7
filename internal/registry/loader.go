package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"gestured/internal/catalog"
	"gestured/internal/common/fsutil"
	"gestured/pkg/types"
)

// Health status values.
const (
	StatusHealthy  = "healthy"
	StatusNoModels = "no_models"
)

// Registry maps model names to loaded handles.
type Registry struct {
	order    []string
	handles  map[string]*Handle
	failures []*LoadError
}

// LoadAll attempts every descriptor in order and returns a registry holding
// only the models that loaded cleanly. It never fails as a whole.
func LoadAll(descs []catalog.Descriptor, backend Backend, log zerolog.Logger) *Registry {
	r := &Registry{handles: make(map[string]*Handle, len(descs))}
	seen := make(map[string]int, len(descs))
	for _, d := range descs {
		seen[d.Name]++
		h, err := r.loadOne(d, backend)
		if err != nil {
			key := d.Name
			if n := seen[d.Name]; n > 1 {
				// A repeated entry must not shadow the first one's status.
				key = fmt.Sprintf("%s#%d", d.Name, n)
			}
			le := &LoadError{Model: key, Source: d.Source, Err: err}
			r.failures = append(r.failures, le)
			log.Warn().Str("model", d.Name).Str("source", d.Source).Err(err).Msg("model load failed")
			continue
		}
		r.order = append(r.order, d.Name)
		r.handles[d.Name] = h
		log.Info().Str("model", d.Name).Str("input_shape", h.InputShape.String()).
			Int("classes", h.OutputDim).Int64("params", h.Params).Str("layout", h.Layout).
			Msg("model loaded")
	}
	log.Info().Int("loaded", len(r.order)).Int("failed", len(r.failures)).Msg("registry ready")
	return r
}

func (r *Registry) loadOne(d catalog.Descriptor, backend Backend) (h *Handle, err error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if _, dup := r.handles[d.Name]; dup || r.failedBefore(d.Name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, d.Name)
	}
	if backend == nil {
		return nil, errors.New("no inference backend configured")
	}
	if !fsutil.IsRegularFile(d.Source) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, d.Source)
	}
	defer func() {
		if p := recover(); p != nil {
			h, err = nil, fmt.Errorf("backend panic: %v", p)
		}
	}()
	art, err := backend.Load(d)
	if err != nil {
		return nil, err
	}
	if art.Model == nil {
		closeArtifact(art)
		return nil, errors.New("backend returned no model")
	}
	if art.OutputDim != len(d.Labels) {
		closeArtifact(art)
		return nil, fmt.Errorf("%w: model outputs %d, vocabulary has %d labels", ErrShapeMismatch, art.OutputDim, len(d.Labels))
	}
	if art.InputShape.Size() <= 0 {
		closeArtifact(art)
		return nil, fmt.Errorf("invalid input shape %s", art.InputShape)
	}
	params := art.Params
	if params == 0 {
		params = d.Params
	}
	return &Handle{
		Descriptor: d,
		InputShape: art.InputShape,
		OutputDim:  art.OutputDim,
		Params:     params,
		Layout:     art.Layout,
		model:      art.Model,
		close:      art.Close,
	}, nil
}

func (r *Registry) failedBefore(name string) bool {
	for _, f := range r.failures {
		if f.Model == name {
			return true
		}
	}
	return false
}

func closeArtifact(a Artifact) {
	if a.Close != nil {
		_ = a.Close()
	}
}

// Get returns the handle for name or a model-not-found error.
func (r *Registry) Get(name string) (*Handle, error) {
	if h, ok := r.handles[name]; ok {
		return h, nil
	}
	return nil, ErrModelNotFound(name)
}

// Names lists loaded model names in catalog order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// Len is the number of loaded models.
func (r *Registry) Len() int { return len(r.order) }

// List returns metadata for every loaded model, in catalog order.
func (r *Registry) List() []types.ModelInfo {
	out := make([]types.ModelInfo, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.handles[n].Info())
	}
	return out
}

// Available returns metadata for every loaded model keyed by name.
func (r *Registry) Available() map[string]types.ModelInfo {
	out := make(map[string]types.ModelInfo, len(r.order))
	for _, n := range r.order {
		out[n] = r.handles[n].Info()
	}
	return out
}

// Health derives the health view from the loaded set.
func (r *Registry) Health() types.HealthResponse {
	status := StatusHealthy
	if len(r.order) == 0 {
		status = StatusNoModels
	}
	return types.HealthResponse{
		Status:       status,
		LoadedModels: r.Names(),
		ModelsInfo:   r.Available(),
	}
}

// Failures returns the load errors recorded by LoadAll, in catalog order.
func (r *Registry) Failures() []LoadError {
	out := make([]LoadError, len(r.failures))
	for i, f := range r.failures {
		out[i] = *f
	}
	return out
}

// FailureMessages returns name -> load error text.
func (r *Registry) FailureMessages() map[string]string {
	out := make(map[string]string, len(r.failures))
	for _, f := range r.failures {
		if _, seen := out[f.Model]; !seen {
			out[f.Model] = f.Err.Error()
		}
	}
	return out
}

// Close releases every handle's runtime resources. It is meant for process
// teardown only; the registry must not be used afterwards.
func (r *Registry) Close() error {
	var errs []error
	for _, n := range r.order {
		if c := r.handles[n].close; c != nil {
			if err := c(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", n, err))
			}
		}
	}
	return errors.Join(errs...)
}

// ScanArtifacts lists *.onnx files in dir that no descriptor references.
// Used for diagnostics only.
func ScanArtifacts(dir string, descs []catalog.Descriptor) ([]string, error) {
	abs, err := fsutil.AbsDir(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	known := make(map[string]bool, len(descs))
	for _, d := range descs {
		known[filepath.Clean(d.Source)] = true
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".onnx") {
			continue
		}
		p := filepath.Join(abs, e.Name())
		if !known[p] {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}
