package manager

import (
	"github.com/rs/zerolog"

	"gestured/internal/catalog"
	"gestured/internal/registry"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultModel     = "asl_alphabet"
	defaultThreshold = 0.5
)

var defaultCompareModels = []string{"asl_alphabet", "sign_mnist"}

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Catalog is the resolved model table (see catalog.Enumerate).
	Catalog []catalog.Descriptor
	// Backend opens model artifacts.
	Backend registry.Backend
	// DefaultModel is used when a predict request names no model.
	DefaultModel string
	// CompareModels is used when a compare request names no models.
	CompareModels []string
	// ConfidenceThreshold is used when a request carries none. Zero means
	// the package default; a threshold of exactly 0 must be sent per request.
	ConfidenceThreshold float64
	Publisher           EventPublisher
	Logger              *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig. The registry is
// not built until Load (or the first call that needs it).
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		catalog:       append([]catalog.Descriptor(nil), cfg.Catalog...),
		backend:       cfg.Backend,
		defaultModel:  cfg.DefaultModel,
		compareModels: append([]string(nil), cfg.CompareModels...),
		threshold:     cfg.ConfidenceThreshold,
		publisher:     cfg.Publisher,
		log:           zerolog.Nop(),
	}
	if m.defaultModel == "" {
		m.defaultModel = defaultModel
	}
	if cfg.CompareModels == nil {
		m.compareModels = append([]string(nil), defaultCompareModels...)
	}
	if m.threshold <= 0 {
		m.threshold = defaultThreshold
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	m.core = m.buildOnce()
	return m
}
