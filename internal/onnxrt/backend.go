//go:build !noonnx

package onnxrt

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"gestured/internal/catalog"
	"gestured/internal/imaging"
	"gestured/internal/registry"
)

var (
	envOnce sync.Once
	envErr  error
)

func initEnvironment(lib string) error {
	envOnce.Do(func() {
		if lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		envErr = ort.InitializeEnvironment()
	})
	return envErr
}

// Backend loads ONNX classifiers. Each model gets its own dynamic session;
// tensors are allocated per call, so Infer is safe for concurrent use.
type Backend struct {
	opts    Options
	initErr error
}

// NewBackend initializes the runtime. Initialization failure is not fatal:
// it is reported by Err and by every Load.
func NewBackend(opts Options) *Backend {
	b := &Backend{opts: opts}
	if err := initEnvironment(opts.LibraryPath); err != nil {
		b.initErr = fmt.Errorf("%w: %v", ErrRuntimeUnavailable, err)
	}
	return b
}

// Err reports the runtime initialization error, if any.
func (b *Backend) Err() error { return b.initErr }

// Load opens d.Source, reads back its input/output shapes and creates a session.
func (b *Backend) Load(d catalog.Descriptor) (registry.Artifact, error) {
	if b.initErr != nil {
		return registry.Artifact{}, b.initErr
	}
	inputs, outputs, err := ort.GetInputOutputInfo(d.Source)
	if err != nil {
		return registry.Artifact{}, fmt.Errorf("read model io: %w", err)
	}
	if len(inputs) != 1 {
		return registry.Artifact{}, fmt.Errorf("expected 1 input, model has %d", len(inputs))
	}
	if len(outputs) == 0 {
		return registry.Artifact{}, errors.New("model has no outputs")
	}
	in, out := inputs[0], outputs[0]
	if in.DataType != ort.TensorElementDataTypeFloat {
		return registry.Artifact{}, fmt.Errorf("input %q is %v, want float32", in.Name, in.DataType)
	}
	shape, layout, inDims, err := resolveInput(in.Dimensions, d.Layout)
	if err != nil {
		return registry.Artifact{}, err
	}
	outDims, outDim, err := resolveOutput(out.Dimensions)
	if err != nil {
		return registry.Artifact{}, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return registry.Artifact{}, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	if b.opts.IntraOpThreads > 0 {
		if err := opts.SetIntraOpNumThreads(b.opts.IntraOpThreads); err != nil {
			return registry.Artifact{}, fmt.Errorf("set threads: %w", err)
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(d.Source, []string{in.Name}, []string{out.Name}, opts)
	if err != nil {
		return registry.Artifact{}, fmt.Errorf("create session: %w", err)
	}
	m := &model{
		session: sess,
		layout:  layout,
		inDims:  ort.NewShape(inDims...),
		outDims: ort.NewShape(outDims...),
	}
	return registry.Artifact{
		Model:      m,
		InputShape: shape,
		OutputDim:  outDim,
		Params:     paramCount(d.Source),
		Layout:     layout,
		Close:      m.session.Destroy,
	}, nil
}

// Close tears down the process-wide runtime environment.
func (b *Backend) Close() error {
	if b.initErr != nil {
		return nil
	}
	return ort.DestroyEnvironment()
}

// paramCount reads an optional "param_count" custom metadata entry written
// by the export script. Missing or malformed values yield 0.
func paramCount(path string) int64 {
	md, err := ort.GetModelMetadata(path)
	if err != nil {
		return 0
	}
	defer md.Destroy()
	v, ok, err := md.LookupCustomMetadataMap("param_count")
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type model struct {
	session *ort.DynamicAdvancedSession
	layout  string
	inDims  ort.Shape
	outDims ort.Shape
}

func (m *model) Infer(in imaging.Tensor) ([]float32, error) {
	input, err := ort.NewTensor(m.inDims, samples(in, m.layout))
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer input.Destroy()
	output, err := ort.NewEmptyTensor[float32](m.outDims)
	if err != nil {
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	defer output.Destroy()
	if err := m.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}
	return append([]float32(nil), output.GetData()...), nil
}
