package spvmsl

import (
	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
)

// Engine creates translation sessions. The bundled implementation lives in
// package translate.
type Engine interface {
	// NewSession parses words and returns a session owning them. The words
	// must not be modified until the session is closed.
	NewSession(words []uint32) (Session, error)
}

// GLSLReconstructor is an optional Engine capability: it recovers an
// estimate of the GLSL a module was compiled from, for diagnostics.
type GLSLReconstructor interface {
	ReconstructGLSL(words []uint32) CompileResult
}

// CommonOptions are the options shared by every output language.
type CommonOptions struct {
	FlipVertexY bool
}

// CompileResult is the outcome of Session.Compile. On failure Err is set
// and Source holds whatever partial output the engine produced, with
// Partial set.
type CompileResult struct {
	Source  string
	Partial bool
	Err     error
}

// SpecializationConstant identifies a specialization constant. ID is the
// SPIR-V result id (0 for none); ConstantID is its SpecId decoration.
type SpecializationConstant struct {
	ID         uint32
	ConstantID uint32
}

// EntryPointRef names an entry point of a module.
type EntryPointRef struct {
	Name  string
	Stage spirv.ExecutionModel
}

// EntryPointInfo describes an entry point as seen by the engine.
type EntryPointInfo struct {
	// Name is the SPIR-V name; MSLName is the cleansed name used in the
	// generated source.
	Name    string
	MSLName string
	Stage   spirv.ExecutionModel

	// WorkgroupSize is the resolved workgroup size: the LocalSize literals,
	// or the default values of the constants overriding them. It is zero
	// when the entry point declares none.
	WorkgroupSize [3]uint32

	// Modes lists the execution modes declared for the entry point.
	Modes []spirv.ExecutionMode
}

// HasMode reports whether the entry point declares mode.
func (e EntryPointInfo) HasMode(mode spirv.ExecutionMode) bool {
	for _, m := range e.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Session is one translation of one SPIR-V module. A session has a single
// owner and must be released with Close.
type Session interface {
	SetEntryPoint(name string, stage spirv.ExecutionModel) error
	SetExecutionMode(mode spirv.ExecutionMode, args ...uint32)
	SetMSLOptions(opts msl.Options)
	SetCommonOptions(opts CommonOptions)

	AddShaderInput(si ShaderInput) error
	AddResourceBinding(rb ResourceBinding) error
	RemapConstExprSampler(stage spirv.ExecutionModel, set, binding uint32, sampler ConstExprSampler) error
	AddDiscreteDescriptorSet(set uint32)
	AddDynamicBuffer(set, binding, index uint32)

	Compile() CompileResult

	IsShaderInputUsed(location uint32) bool
	IsResourceUsed(stage spirv.ExecutionModel, set, binding uint32) bool

	EntryPoint(name string, stage spirv.ExecutionModel) (EntryPointInfo, error)
	EntryPoints() []EntryPointRef
	WorkgroupSizeSpecializationConstants() (x, y, z SpecializationConstant)

	IsRasterizationDisabled() bool
	IsPositionInvariant() bool
	NeedsSwizzleBuffer() bool
	NeedsOutputBuffer() bool
	NeedsPatchOutputBuffer() bool
	NeedsBufferSizeBuffer() bool
	NeedsInputThreadgroupMem() bool
	NeedsDispatchBaseBuffer() bool
	NeedsViewRangeBuffer() bool

	Close() error
}
