//go:build noonnx

package onnxrt

// This file replaces the ONNX Runtime backend when built with -tags=noonnx.
// Every Load fails, so the registry comes up empty and health reports
// no_models instead of the binary failing to link.

import (
	"gestured/internal/catalog"
	"gestured/internal/registry"
)

type Backend struct{ opts Options }

func NewBackend(opts Options) *Backend { return &Backend{opts: opts} }

func (b *Backend) Err() error { return ErrRuntimeUnavailable }

func (b *Backend) Load(catalog.Descriptor) (registry.Artifact, error) {
	return registry.Artifact{}, ErrRuntimeUnavailable
}

func (b *Backend) Close() error { return nil }
