// Package catalog holds the static table of classifiers the service knows
// about. Predictors never consult it directly; they resolve names through
// the registry, so entries can be added or removed here alone.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gestured/internal/common/fsutil"
)

// Layout values for Descriptor.Layout. Empty means "detect from the model".
const (
	LayoutNHWC = "nhwc"
	LayoutNCHW = "nchw"
)

// Descriptor is static metadata for one loadable classifier.
type Descriptor struct {
	// Name is the stable identifier clients pass as "model".
	Name string `json:"name" yaml:"name" toml:"name"`
	// DisplayName is a human-friendly label.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name" toml:"display_name"`
	// File locates the serialized model, relative to the models directory
	// unless absolute.
	File string `json:"file" yaml:"file" toml:"file"`
	// Labels is the output vocabulary; position is the class index.
	Labels []string `json:"labels" yaml:"labels" toml:"labels"`
	// Layout optionally pins the input tensor layout (nhwc|nchw).
	Layout string `json:"layout,omitempty" yaml:"layout" toml:"layout"`
	// Params optionally records the parameter count when the artifact does
	// not carry it.
	Params int64 `json:"params,omitempty" yaml:"params" toml:"params"`

	// Source is File resolved against the models directory by Enumerate.
	Source string `json:"-" yaml:"-" toml:"-"`
}

// ErrInvalidDescriptor is wrapped by every Validate failure.
var ErrInvalidDescriptor = errors.New("invalid model descriptor")

// Validate rejects descriptors the registry could never serve: missing
// name or file, an empty vocabulary, blank or duplicate labels, or an
// unknown layout.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	}
	if strings.TrimSpace(d.File) == "" && d.Source == "" {
		return fmt.Errorf("%w: %s: no model file", ErrInvalidDescriptor, d.Name)
	}
	if len(d.Labels) == 0 {
		return fmt.Errorf("%w: %s: empty label vocabulary", ErrInvalidDescriptor, d.Name)
	}
	seen := make(map[string]int, len(d.Labels))
	for i, l := range d.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%w: %s: blank label at index %d", ErrInvalidDescriptor, d.Name, i)
		}
		if j, dup := seen[l]; dup {
			return fmt.Errorf("%w: %s: duplicate label %q at indexes %d and %d", ErrInvalidDescriptor, d.Name, l, j, i)
		}
		seen[l] = i
	}
	switch d.Layout {
	case "", LayoutNHWC, LayoutNCHW:
	default:
		return fmt.Errorf("%w: %s: unknown layout %q", ErrInvalidDescriptor, d.Name, d.Layout)
	}
	return nil
}

func letters() []string {
	out := make([]string, 0, 26)
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, string(c))
	}
	return out
}

func sorted(labels ...string) []string {
	sort.Strings(labels)
	return labels
}

// Default returns the built-in catalog. Vocabularies are sorted the same
// way the training pipeline sorted its class directories.
func Default() []Descriptor {
	return []Descriptor{
		{
			Name:        "asl_alphabet",
			DisplayName: "ASL Alphabet",
			File:        "final_asl_model-training-optimized.onnx",
			Labels:      sorted(append(letters(), "del", "nothing", "space")...),
		},
		{
			Name:        "sign_mnist",
			DisplayName: "Sign Language MNIST",
			File:        "final_sign_mnist_cnn.onnx",
			Labels:      sorted(letters()...),
		},
		{
			Name:        "hagrid",
			DisplayName: "HaGRID Hand Detector",
			File:        "HAGRID_best_model.onnx",
			Labels:      []string{"hand", "no_hand"},
		},
	}
}

// Enumerate returns the configured catalog with every Source resolved
// against modelsDir. A non-empty override replaces the built-in table.
// It performs no I/O beyond home-directory lookup.
func Enumerate(modelsDir string, override []Descriptor) ([]Descriptor, error) {
	base, err := fsutil.AbsDir(modelsDir)
	if err != nil {
		return nil, err
	}
	src := override
	if len(src) == 0 {
		src = Default()
	}
	if err := UniqueNames(src); err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(src))
	for _, d := range src {
		d.Labels = append([]string(nil), d.Labels...)
		if d.Source == "" && d.File != "" {
			p, err := fsutil.Resolve(base, d.File)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", d.Name, err)
			}
			d.Source = p
		}
		out = append(out, d)
	}
	return out, nil
}

// UniqueNames fails when two descriptors share a name.
func UniqueNames(ds []Descriptor) error {
	seen := make(map[string]int, len(ds))
	for i, d := range ds {
		if j, dup := seen[d.Name]; dup {
			return fmt.Errorf("%w: duplicate model name %q at entries %d and %d", ErrInvalidDescriptor, d.Name, j, i)
		}
		seen[d.Name] = i
	}
	return nil
}

// Names lists descriptor names in catalog order.
func Names(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}
