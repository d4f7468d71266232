package translate

import (
	"github.com/gogpu/naga/glsl"
	"go.uber.org/zap"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/spirv"
)

var (
	_ spvmsl.Engine            = (*Engine)(nil)
	_ spvmsl.GLSLReconstructor = (*Engine)(nil)
)

// Engine creates sessions backed by the naga MSL backend. An Engine holds
// no per-module state and may be shared.
type Engine struct {
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger of the engine and its sessions.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: Logger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSession parses words and returns a session for the module. The
// returned session keeps a reference to words.
func (e *Engine) NewSession(words []uint32) (spvmsl.Session, error) {
	m, err := spirv.Parse(words)
	if err != nil {
		return nil, spvmsl.WrapError(spvmsl.ErrInvalidSPIRV, err, "cannot parse module")
	}
	e.logger.Debug("session created",
		zap.Int("words", len(words)),
		zap.Int("entry_points", len(m.EntryPoints)))
	return newSession(e.logger, m), nil
}

// ReconstructGLSL lifts the first entry point of words and prints it as
// GLSL 4.50. The output approximates the source the module was compiled
// from and is meant for diagnostics only.
func (e *Engine) ReconstructGLSL(words []uint32) (res spvmsl.CompileResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("GLSL reconstruction panicked", zap.Any("panic", r), zap.Stack("stack"))
			res = spvmsl.CompileResult{Err: spvmsl.NewError(spvmsl.ErrCompile, "internal error: %v", r)}
		}
	}()
	m, err := spirv.Parse(words)
	if err != nil {
		return spvmsl.CompileResult{Err: spvmsl.WrapError(spvmsl.ErrInvalidSPIRV, err, "cannot parse module")}
	}
	if len(m.EntryPoints) == 0 {
		return spvmsl.CompileResult{Err: spvmsl.NewError(spvmsl.ErrEntryPointNotFound, "module declares no entry point")}
	}
	ep := m.EntryPoints[0]
	refl, err := m.Reflect(ep)
	if err != nil {
		return spvmsl.CompileResult{Err: spvmsl.WrapError(spvmsl.ErrInvalidSPIRV, err, "cannot reflect %q", ep.Name)}
	}
	module, err := lift(m, refl, liftOptions{})
	if err != nil {
		return spvmsl.CompileResult{Err: err}
	}
	src, _, err := glsl.Compile(module, glsl.Options{
		LangVersion: glsl.Version450,
		EntryPoint:  ep.Name,
	})
	if err != nil {
		return spvmsl.CompileResult{Err: spvmsl.WrapError(spvmsl.ErrCompile, err, "GLSL generation failed")}
	}
	return spvmsl.CompileResult{Source: src}
}
