// Package onnxrt opens classifier graphs with ONNX Runtime and adapts them
// to registry.Backend.
//
// Build tags:
//
//   - default: real runtime through github.com/yalue/onnxruntime_go. The
//     shared library is located with Options.LibraryPath (or the library's
//     platform default) and initialized once per process.
//   - noonnx: a stub whose Load always fails with ErrRuntimeUnavailable,
//     for CGO-free builds. The service still starts and reports no_models.
package onnxrt

import "errors"

// ErrRuntimeUnavailable is returned by every Load when the runtime could
// not be initialized or was compiled out.
var ErrRuntimeUnavailable = errors.New("onnx runtime unavailable")

// Options configures the backend.
type Options struct {
	// LibraryPath points at the onnxruntime shared library.
	LibraryPath string
	// IntraOpThreads bounds per-session CPU threads (0 = runtime default).
	IntraOpThreads int
}
