package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	ds := Default()
	want := map[string]int{"asl_alphabet": 29, "sign_mnist": 26, "hagrid": 2}
	if len(ds) != len(want) {
		t.Fatalf("expected %d descriptors, got %d", len(want), len(ds))
	}
	for _, d := range ds {
		if n, ok := want[d.Name]; !ok || len(d.Labels) != n {
			t.Fatalf("%s: %d labels", d.Name, len(d.Labels))
		}
		if err := d.Validate(); err != nil {
			t.Fatalf("%s: %v", d.Name, err)
		}
	}
	asl := ds[0].Labels
	if asl[0] != "A" || asl[25] != "Z" || asl[26] != "del" || asl[28] != "space" {
		t.Fatalf("asl labels not sorted as expected: %v", asl)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]Descriptor{
		"empty name":  {File: "a.onnx", Labels: []string{"a"}},
		"no file":     {Name: "m", Labels: []string{"a"}},
		"no labels":   {Name: "m", File: "a.onnx"},
		"blank label": {Name: "m", File: "a.onnx", Labels: []string{"a", " "}},
		"dup label":   {Name: "m", File: "a.onnx", Labels: []string{"a", "b", "a"}},
		"bad layout":  {Name: "m", File: "a.onnx", Labels: []string{"a"}, Layout: "hwcn"},
	}
	for name, d := range cases {
		if err := d.Validate(); !errors.Is(err, ErrInvalidDescriptor) {
			t.Fatalf("%s: expected ErrInvalidDescriptor, got %v", name, err)
		}
	}
	ok := Descriptor{Name: "m", File: "a.onnx", Labels: []string{"a", "b"}, Layout: LayoutNCHW}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid descriptor rejected: %v", err)
	}
}

func TestEnumerateResolvesSources(t *testing.T) {
	dir := t.TempDir()
	ds, err := Enumerate(dir, nil)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	for _, d := range ds {
		if d.Source != filepath.Join(dir, d.File) {
			t.Fatalf("%s: source=%q", d.Name, d.Source)
		}
	}
	abs := filepath.Join(dir, "elsewhere", "x.onnx")
	ds, err = Enumerate(dir, []Descriptor{{Name: "x", File: abs, Labels: []string{"a"}}})
	if err != nil {
		t.Fatalf("enumerate override: %v", err)
	}
	if len(ds) != 1 || ds[0].Source != abs {
		t.Fatalf("override not honoured: %+v", ds)
	}
	if got := Names(ds); len(got) != 1 || got[0] != "x" {
		t.Fatalf("names=%v", got)
	}
}

func TestEnumerateDoesNotAliasLabels(t *testing.T) {
	in := []Descriptor{{Name: "x", File: "x.onnx", Labels: []string{"a", "b"}}}
	ds, err := Enumerate(t.TempDir(), in)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	ds[0].Labels[0] = "mutated"
	if in[0].Labels[0] != "a" {
		t.Fatalf("enumerate aliased caller labels")
	}
}

func TestEnumerateRejectsDuplicateNames(t *testing.T) {
	in := []Descriptor{
		{Name: "x", File: "a.onnx", Labels: []string{"a"}},
		{Name: "y", File: "b.onnx", Labels: []string{"a"}},
		{Name: "x", File: "c.onnx", Labels: []string{"a"}},
	}
	if _, err := Enumerate(t.TempDir(), in); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
	if err := UniqueNames(in[:2]); err != nil {
		t.Fatalf("unique names: %v", err)
	}
}
