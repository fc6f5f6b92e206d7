package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gestured/internal/catalog"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr                string               `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir           string               `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	DefaultModel        string               `json:"default_model" yaml:"default_model" toml:"default_model"`
	CompareModels       []string             `json:"compare_models" yaml:"compare_models" toml:"compare_models"`
	ConfidenceThreshold float64              `json:"confidence_threshold" yaml:"confidence_threshold" toml:"confidence_threshold"`
	ORTLibrary          string               `json:"ort_library" yaml:"ort_library" toml:"ort_library"`
	ORTThreads          int                  `json:"ort_threads" yaml:"ort_threads" toml:"ort_threads"`
	LogLevel            string               `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat           string               `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile             string               `json:"log_file" yaml:"log_file" toml:"log_file"`
	MaxBodyBytes        int64                `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	MaxImagePixels      int64                `json:"max_image_pixels" yaml:"max_image_pixels" toml:"max_image_pixels"`
	ImageRoot           string               `json:"image_root" yaml:"image_root" toml:"image_root"`
	CORSEnabled         *bool                `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins         []string             `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	Models              []catalog.Descriptor `json:"models" yaml:"models" toml:"models"`
}

// Defaults.
const (
	DefaultAddr         = ":5000"
	DefaultModelsDir    = "./models"
	DefaultModel        = "asl_alphabet"
	DefaultThreshold    = 0.5
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultMaxBodyBytes = 10 << 20
	// DefaultMaxImagePixels bounds width*height of a decoded upload.
	DefaultMaxImagePixels = 40_000_000
)

// DefaultCompareModels is the compare set used when none is configured.
func DefaultCompareModels() []string { return []string{"asl_alphabet", "sign_mnist"} }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// WithDefaults fills unspecified fields.
func WithDefaults(cfg Config) Config {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = DefaultModelsDir
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.CompareModels == nil {
		cfg.CompareModels = DefaultCompareModels()
	}
	if cfg.ConfidenceThreshold == 0 {
		cfg.ConfidenceThreshold = DefaultThreshold
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxImagePixels <= 0 {
		cfg.MaxImagePixels = DefaultMaxImagePixels
	}
	if cfg.CORSEnabled == nil {
		on := true
		cfg.CORSEnabled = &on
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return cfg
}

// ApplyEnv overlays GESTURED_* variables read through getenv onto cfg.
// Empty values are ignored.
func ApplyEnv(cfg Config, getenv func(string) string) (Config, error) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("GESTURED_ADDR", &cfg.Addr)
	str("GESTURED_MODELS_DIR", &cfg.ModelsDir)
	str("GESTURED_DEFAULT_MODEL", &cfg.DefaultModel)
	str("GESTURED_ORT_LIBRARY", &cfg.ORTLibrary)
	str("GESTURED_LOG_LEVEL", &cfg.LogLevel)
	str("GESTURED_LOG_FILE", &cfg.LogFile)
	str("GESTURED_IMAGE_ROOT", &cfg.ImageRoot)
	if v := getenv("GESTURED_COMPARE_MODELS"); strings.TrimSpace(v) != "" {
		cfg.CompareModels = SplitCSV(v)
	}
	if v := strings.TrimSpace(getenv("GESTURED_CONFIDENCE_THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("GESTURED_CONFIDENCE_THRESHOLD: %w", err)
		}
		cfg.ConfidenceThreshold = f
	}
	if v := strings.TrimSpace(getenv("GESTURED_MAX_IMAGE_PIXELS")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("GESTURED_MAX_IMAGE_PIXELS: %w", err)
		}
		cfg.MaxImagePixels = n
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func Validate(cfg Config) error {
	var errs []error
	if strings.TrimSpace(cfg.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if cfg.ORTThreads < 0 {
		errs = append(errs, fmt.Errorf("ort_threads %d must not be negative", cfg.ORTThreads))
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("confidence_threshold %v outside [0,1]", cfg.ConfidenceThreshold))
	}
	switch cfg.LogFormat {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: want json or console", cfg.LogFormat))
	}
	for _, d := range cfg.Models {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := catalog.UniqueNames(cfg.Models); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SplitCSV splits a comma-separated list, trimming blanks and dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
