package translate

import (
	"go.uber.org/zap"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
)

var _ spvmsl.Session = (*Session)(nil)

type bindingKey struct {
	stage   spirv.ExecutionModel
	set     uint32
	binding uint32
}

type samplerRemap struct {
	key     bindingKey
	sampler spvmsl.ConstExprSampler
}

// Session translates one module. It is not safe for concurrent use.
type Session struct {
	logger *zap.Logger
	module *spirv.Module

	entryName  string
	entryStage spirv.ExecutionModel
	modes      map[spirv.ExecutionMode][]uint32

	mslOpts msl.Options
	common  spvmsl.CommonOptions

	inputs    []spvmsl.ShaderInput
	resources []spvmsl.ResourceBinding
	samplers  []samplerRemap
	discrete  map[uint32]bool
	dynamic   map[bindingKey]uint32

	active   *spirv.EntryPoint
	refl     *spirv.Reflection
	reflErr  error
	mslNames map[string]string
	closed   bool
}

func newSession(logger *zap.Logger, m *spirv.Module) *Session {
	return &Session{
		logger:     logger,
		module:     m,
		entryStage: spirv.ExecutionModelMax,
		modes:      make(map[spirv.ExecutionMode][]uint32),
		mslOpts:    msl.DefaultOptions(),
		discrete:   make(map[uint32]bool),
		dynamic:    make(map[bindingKey]uint32),
		mslNames:   make(map[string]string),
	}
}

// SetEntryPoint selects the entry point to translate. An empty name with
// ExecutionModelMax restores the default, the first entry point.
func (s *Session) SetEntryPoint(name string, stage spirv.ExecutionModel) error {
	if name != "" || stage != spirv.ExecutionModelMax {
		if _, ok := s.module.FindEntryPoint(name, stage); !ok {
			return spvmsl.NewError(spvmsl.ErrEntryPointNotFound, "no %s entry point named %q", stage, name)
		}
	}
	s.entryName, s.entryStage = name, stage
	s.active, s.refl, s.reflErr = nil, nil, nil
	return nil
}

// SetExecutionMode records an execution mode override. Overrides only
// matter for tessellation stages, which this engine does not translate;
// they are kept so that entry point queries report them.
func (s *Session) SetExecutionMode(mode spirv.ExecutionMode, args ...uint32) {
	s.modes[mode] = append([]uint32(nil), args...)
}

// SetMSLOptions sets the MSL dialect options.
func (s *Session) SetMSLOptions(opts msl.Options) { s.mslOpts = opts }

// SetCommonOptions sets the language independent options.
func (s *Session) SetCommonOptions(opts spvmsl.CommonOptions) { s.common = opts }

// AddShaderInput registers a stage input. Inputs are passed as declared in
// the module; the format is not used to adapt the generated code. An input
// whose location and component were already registered with a different
// builtin is rejected.
func (s *Session) AddShaderInput(si spvmsl.ShaderInput) error {
	for _, prev := range s.inputs {
		if prev.Location == si.Location && prev.Component == si.Component && prev.Builtin != si.Builtin {
			return spvmsl.NewError(spvmsl.ErrUnsupported,
				"input at location %d component %d registered as both %s and %s",
				si.Location, si.Component, prev.Builtin, si.Builtin)
		}
	}
	s.inputs = append(s.inputs, si)
	return nil
}

// AddResourceBinding registers the Metal slots of a descriptor.
func (s *Session) AddResourceBinding(rb spvmsl.ResourceBinding) error {
	for _, idx := range []uint32{rb.MSLBuffer, rb.MSLTexture, rb.MSLSampler} {
		if idx > maxSlot {
			return spvmsl.NewError(spvmsl.ErrUnsupported,
				"binding %d.%d: Metal index %d exceeds %d", rb.DescriptorSet, rb.Binding, idx, maxSlot)
		}
	}
	s.resources = append(s.resources, rb)
	return nil
}

// RemapConstExprSampler replaces the sampler at set and binding with a
// constexpr sampler. A later remap of the same descriptor wins.
func (s *Session) RemapConstExprSampler(stage spirv.ExecutionModel, set, binding uint32, sampler spvmsl.ConstExprSampler) error {
	key := bindingKey{stage, set, binding}
	for i := range s.samplers {
		if s.samplers[i].key == key {
			s.samplers[i].sampler = sampler
			return nil
		}
	}
	s.samplers = append(s.samplers, samplerRemap{key: key, sampler: sampler})
	return nil
}

// AddDiscreteDescriptorSet marks set as not using an argument buffer.
// Every set is discrete here; the sets are only reported when argument
// buffers are requested.
func (s *Session) AddDiscreteDescriptorSet(set uint32) { s.discrete[set] = true }

// AddDynamicBuffer assigns a dynamic offset index to a buffer of the
// selected stage. Like discrete sets, dynamic buffers are only reported.
func (s *Session) AddDynamicBuffer(set, binding, index uint32) {
	s.dynamic[bindingKey{s.entryStage, set, binding}] = index
}

// Close releases the session. It is safe to call more than once.
func (s *Session) Close() error {
	s.closed = true
	s.refl = nil
	return nil
}

// entry resolves the selected entry point and its reflection.
func (s *Session) entry() (spirv.EntryPoint, *spirv.Reflection, error) {
	if s.active != nil {
		return *s.active, s.refl, s.reflErr
	}
	var ep spirv.EntryPoint
	var ok bool
	if s.entryName == "" && s.entryStage == spirv.ExecutionModelMax {
		if len(s.module.EntryPoints) > 0 {
			ep, ok = s.module.EntryPoints[0], true
		}
	} else {
		ep, ok = s.module.FindEntryPoint(s.entryName, s.entryStage)
	}
	if !ok {
		return spirv.EntryPoint{}, nil, spvmsl.NewError(spvmsl.ErrEntryPointNotFound,
			"no %s entry point named %q", s.entryStage, s.entryName)
	}
	s.active = &ep
	s.refl, s.reflErr = s.module.Reflect(ep)
	if s.reflErr != nil {
		s.reflErr = spvmsl.WrapError(spvmsl.ErrInvalidSPIRV, s.reflErr, "cannot reflect %q", ep.Name)
	}
	return ep, s.refl, s.reflErr
}

// reflection returns the reflection of the selected entry point, or nil.
func (s *Session) reflection() *spirv.Reflection {
	_, refl, err := s.entry()
	if err != nil {
		return nil
	}
	return refl
}

// IsShaderInputUsed reports whether the selected entry point reads an
// input covering location.
func (s *Session) IsShaderInputUsed(location uint32) bool {
	refl := s.reflection()
	return refl != nil && refl.InputUsed(location)
}

// IsResourceUsed reports whether the selected entry point, when it is of
// the given stage, uses the descriptor at set and binding.
func (s *Session) IsResourceUsed(stage spirv.ExecutionModel, set, binding uint32) bool {
	refl := s.reflection()
	if refl == nil || refl.EntryPoint.Model != stage {
		return false
	}
	if set == spvmsl.PushConstantDescriptorSet && binding == spvmsl.PushConstantBinding {
		return refl.PushConstantUsed
	}
	return refl.ResourceUsed(set, binding)
}

// EntryPoint describes the named entry point. The MSL name is the one used
// by the last successful compile, or the predicted one before that.
func (s *Session) EntryPoint(name string, stage spirv.ExecutionModel) (spvmsl.EntryPointInfo, error) {
	ep, ok := s.module.FindEntryPoint(name, stage)
	if !ok {
		return spvmsl.EntryPointInfo{}, spvmsl.NewError(spvmsl.ErrEntryPointNotFound, "no %s entry point named %q", stage, name)
	}
	info := spvmsl.EntryPointInfo{
		Name:    ep.Name,
		MSLName: s.mslNames[ep.Name],
		Stage:   ep.Model,
	}
	if info.MSLName == "" {
		info.MSLName = cleanseName(ep.Name)
	}
	for _, d := range s.module.Modes[ep.Function] {
		info.Modes = append(info.Modes, d.Mode)
	}
	for mode := range s.modes {
		if !info.HasMode(mode) {
			info.Modes = append(info.Modes, mode)
		}
	}
	if refl, err := s.module.Reflect(ep); err == nil {
		for i, d := range refl.Workgroup {
			info.WorkgroupSize[i] = d.Size
		}
	}
	return info, nil
}

// EntryPoints lists the entry points of the module in declaration order.
func (s *Session) EntryPoints() []spvmsl.EntryPointRef {
	refs := make([]spvmsl.EntryPointRef, 0, len(s.module.EntryPoints))
	for _, ep := range s.module.EntryPoints {
		refs = append(refs, spvmsl.EntryPointRef{Name: ep.Name, Stage: ep.Model})
	}
	return refs
}

// WorkgroupSizeSpecializationConstants returns the specialization constants
// overriding the workgroup size of the selected entry point.
func (s *Session) WorkgroupSizeSpecializationConstants() (x, y, z spvmsl.SpecializationConstant) {
	refl := s.reflection()
	if refl == nil {
		return
	}
	var sc [3]spvmsl.SpecializationConstant
	for i, d := range refl.Workgroup {
		if d.Const != 0 {
			sc[i] = spvmsl.SpecializationConstant{ID: d.Const, ConstantID: d.SpecID}
		}
	}
	return sc[0], sc[1], sc[2]
}

func (s *Session) stage() (spirv.ExecutionModel, bool) {
	refl := s.reflection()
	if refl == nil {
		return spirv.ExecutionModelMax, false
	}
	return refl.EntryPoint.Model, true
}

// IsRasterizationDisabled reports whether a vertex entry point does not
// feed the rasterizer, either by option or because it writes no position.
func (s *Session) IsRasterizationDisabled() bool {
	refl := s.reflection()
	if refl == nil || refl.EntryPoint.Model != spirv.ExecutionModelVertex {
		return false
	}
	return s.mslOpts.DisableRasterization || !refl.BuiltInsWritten[spirv.BuiltInPosition]
}

// IsPositionInvariant reports whether the position output is invariant.
func (s *Session) IsPositionInvariant() bool {
	refl := s.reflection()
	if refl == nil {
		return false
	}
	for _, v := range refl.Outputs {
		if v.Invariant && v.HasBuiltIn(spirv.BuiltInPosition) {
			return true
		}
	}
	return false
}

// NeedsSwizzleBuffer reports whether texture swizzles are passed in a buffer.
func (s *Session) NeedsSwizzleBuffer() bool {
	refl := s.reflection()
	return refl != nil && s.mslOpts.SwizzleTextureSamples && refl.UsesSampledImage
}

// NeedsOutputBuffer reports whether stage output is written to a buffer.
func (s *Session) NeedsOutputBuffer() bool {
	stage, ok := s.stage()
	if !ok {
		return false
	}
	return (stage == spirv.ExecutionModelVertex && s.mslOpts.CaptureOutputToBuffer) ||
		stage == spirv.ExecutionModelTessellationControl
}

// NeedsPatchOutputBuffer reports whether a tessellation control entry point
// writes per-patch outputs.
func (s *Session) NeedsPatchOutputBuffer() bool {
	refl := s.reflection()
	if refl == nil || refl.EntryPoint.Model != spirv.ExecutionModelTessellationControl {
		return false
	}
	for _, v := range refl.Outputs {
		if v.Patch {
			return true
		}
	}
	return false
}

// NeedsBufferSizeBuffer reports whether runtime array lengths are read.
func (s *Session) NeedsBufferSizeBuffer() bool {
	refl := s.reflection()
	return refl != nil && refl.UsesArrayLength
}

// NeedsInputThreadgroupMem reports whether stage input is staged in
// threadgroup memory.
func (s *Session) NeedsInputThreadgroupMem() bool {
	stage, ok := s.stage()
	return ok && stage == spirv.ExecutionModelTessellationControl
}

// NeedsDispatchBaseBuffer reports whether a compute entry point needs the
// dispatch base to offset its workgroup ids.
func (s *Session) NeedsDispatchBaseBuffer() bool {
	refl := s.reflection()
	if refl == nil || !s.mslOpts.DispatchBase || refl.EntryPoint.Model != spirv.ExecutionModelGLCompute {
		return false
	}
	return refl.BuiltInsRead[spirv.BuiltInWorkgroupID] || refl.BuiltInsRead[spirv.BuiltInGlobalInvocationID]
}

// NeedsViewRangeBuffer reports whether a multiview vertex entry point reads
// the view index.
func (s *Session) NeedsViewRangeBuffer() bool {
	refl := s.reflection()
	if refl == nil || !s.mslOpts.MultiView || refl.EntryPoint.Model != spirv.ExecutionModelVertex {
		return false
	}
	return refl.BuiltInsRead[spirv.BuiltInViewIndex]
}
