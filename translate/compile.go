package translate

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
	nagamsl "github.com/gogpu/naga/msl"
	"go.uber.org/zap"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
)

// maxSlot is the largest Metal argument table index the backend accepts.
const maxSlot = 255

// Compile translates the selected entry point to MSL.
func (s *Session) Compile() spvmsl.CompileResult {
	if s.closed {
		return spvmsl.CompileResult{Err: spvmsl.NewError(spvmsl.ErrCompile, "session is closed")}
	}
	ep, refl, err := s.entry()
	if err != nil {
		return spvmsl.CompileResult{Err: err}
	}
	if s.mslOpts.ArgumentBuffers {
		s.logger.Warn("argument buffers are not supported, using discrete bindings",
			zap.String("entry_point", ep.Name),
			zap.Uint32s("discrete_sets", slices.Sorted(maps.Keys(s.discrete))),
			zap.Strings("dynamic_buffers", s.dynamicBuffers()))
	}

	module, err := lift(s.module, refl, liftOptions{
		flipY:         s.common.FlipVertexY,
		dropPointSize: !s.mslOpts.EnablePointSizeBuiltin,
	})
	if err != nil {
		return spvmsl.CompileResult{Err: err}
	}
	opts, err := s.nagaOptions(ep, refl)
	if err != nil {
		return spvmsl.CompileResult{Err: err}
	}
	src, info, err := nagamsl.CompileWithPipeline(module, opts, nagamsl.PipelineOptions{
		EntryPoint: &nagamsl.EntryPointSelector{Stage: module.EntryPoints[0].Stage, Name: ep.Name},
	})
	if err != nil {
		return spvmsl.CompileResult{Err: spvmsl.WrapError(spvmsl.ErrCompile, err, "MSL generation failed for %q", ep.Name)}
	}
	if name, ok := info.EntryPointNames[ep.Name]; ok {
		s.mslNames[ep.Name] = name
	}
	s.logger.Debug("entry point compiled",
		zap.String("entry_point", ep.Name),
		zap.String("msl_name", s.mslNames[ep.Name]),
		zap.Int("inputs", len(s.inputs)),
		zap.Int("bytes", len(src)))
	return spvmsl.CompileResult{Source: src}
}

// dynamicBuffers lists the dynamic buffers registered for the selected
// stage as set.binding=index, sorted.
func (s *Session) dynamicBuffers() []string {
	var out []string
	for key, index := range s.dynamic {
		if key.stage == s.entryStage {
			out = append(out, fmt.Sprintf("%d.%d=%d", key.set, key.binding, index))
		}
	}
	slices.Sort(out)
	return out
}

// nagaOptions builds the backend options: the language version, and the
// Metal slots of every resource the entry point uses.
func (s *Session) nagaOptions(ep spirv.EntryPoint, refl *spirv.Reflection) (nagamsl.Options, error) {
	opts := nagamsl.DefaultOptions()
	major, minor, _ := msl.VersionParts(s.mslOpts.Version)
	opts.LangVersion = nagamsl.Version{Major: uint8(major), Minor: uint8(minor)}
	// Vulkan does not bounds check or zero threadgroup memory.
	opts.BoundsCheckPolicies = nagamsl.BoundsCheckPolicies{}
	opts.ZeroInitializeWorkgroupMemory = false

	if s.mslOpts.BufferSizeBufferIndex > maxSlot || s.mslOpts.PushConstantBufferIndex > maxSlot {
		return opts, spvmsl.NewError(spvmsl.ErrUnsupported, "auxiliary buffer index exceeds %d", maxSlot)
	}
	sizes := uint8(s.mslOpts.BufferSizeBufferIndex)
	push := uint8(s.mslOpts.PushConstantBufferIndex)
	res := nagamsl.EntryPointResources{
		Resources:          make(map[ir.ResourceBinding]nagamsl.BindTarget),
		SizesBuffer:        &sizes,
		PushConstantBuffer: &push,
		ImmediatesBuffer:   &push,
	}

	alloc := newSlotAllocator(s.resources, ep.Model)
	for _, r := range refl.Resources {
		if !r.Used {
			continue
		}
		rb, bound := s.resourceBinding(ep.Model, r.Set, r.Binding)
		if r.Kind == spirv.ResourcePushConstant {
			if pc, ok := s.resourceBinding(ep.Model, spvmsl.PushConstantDescriptorSet, spvmsl.PushConstantBinding); ok {
				slot := uint8(pc.MSLBuffer)
				res.PushConstantBuffer, res.ImmediatesBuffer = &slot, &slot
			}
			continue
		}
		var target nagamsl.BindTarget
		switch r.Kind {
		case spirv.ResourceUniformBuffer, spirv.ResourceStorageBuffer:
			target.Buffer = alloc.slot(slotBuffer, rb.MSLBuffer, bound)
		case spirv.ResourceSeparateImage, spirv.ResourceStorageImage:
			target.Texture = alloc.slot(slotTexture, rb.MSLTexture, bound)
		case spirv.ResourceSeparateSampler:
			target.Sampler = s.samplerTarget(&opts, ep.Model, r, rb, bound, alloc)
		case spirv.ResourceSampledImage:
			target.Texture = alloc.slot(slotTexture, rb.MSLTexture, bound)
			target.Sampler = s.samplerTarget(&opts, ep.Model, r, rb, bound, alloc)
		default:
			continue
		}
		res.Resources[ir.ResourceBinding{Group: r.Set, Binding: r.Binding}] = target
	}
	opts.PerEntryPointMap = map[string]nagamsl.EntryPointResources{ep.Name: res}
	return opts, nil
}

// resourceBinding returns the first registered binding of the descriptor.
func (s *Session) resourceBinding(stage spirv.ExecutionModel, set, binding uint32) (spvmsl.ResourceBinding, bool) {
	for _, rb := range s.resources {
		if rb.Stage == stage && rb.DescriptorSet == set && rb.Binding == binding {
			return rb, true
		}
	}
	return spvmsl.ResourceBinding{}, false
}

// samplerTarget binds a sampler to its Metal slot, or inlines it when the
// descriptor was remapped to a constexpr sampler.
func (s *Session) samplerTarget(opts *nagamsl.Options, stage spirv.ExecutionModel, r spirv.Resource,
	rb spvmsl.ResourceBinding, bound bool, alloc *slotAllocator) *nagamsl.BindSamplerTarget {
	cs, inline := s.constExprSampler(stage, r.Set, r.Binding)
	if !inline && bound && rb.RequiresConstExprSampler {
		cs, inline = rb.ConstExprSampler, true
	}
	if inline && len(opts.InlineSamplers) <= maxSlot {
		opts.InlineSamplers = append(opts.InlineSamplers, inlineSampler(cs))
		return &nagamsl.BindSamplerTarget{IsInline: true, Slot: uint8(len(opts.InlineSamplers) - 1)}
	}
	return &nagamsl.BindSamplerTarget{Slot: *alloc.slot(slotSampler, rb.MSLSampler, bound)}
}

func (s *Session) constExprSampler(stage spirv.ExecutionModel, set, binding uint32) (spvmsl.ConstExprSampler, bool) {
	key := bindingKey{stage, set, binding}
	for _, r := range s.samplers {
		if r.key == key {
			return r.sampler, true
		}
	}
	return spvmsl.ConstExprSampler{}, false
}

var samplerAddresses = [...]nagamsl.SamplerAddress{
	spvmsl.SamplerAddressClampToZero:    nagamsl.SamplerAddressClampToZero,
	spvmsl.SamplerAddressClampToEdge:    nagamsl.SamplerAddressClampToEdge,
	spvmsl.SamplerAddressClampToBorder:  nagamsl.SamplerAddressClampToBorder,
	spvmsl.SamplerAddressRepeat:         nagamsl.SamplerAddressRepeat,
	spvmsl.SamplerAddressMirroredRepeat: nagamsl.SamplerAddressMirroredRepeat,
}

func samplerAddress(a spvmsl.SamplerAddress) nagamsl.SamplerAddress {
	if int(a) < len(samplerAddresses) {
		return samplerAddresses[a]
	}
	return nagamsl.SamplerAddressClampToEdge
}

func samplerFilter(f gputypes.FilterMode) nagamsl.SamplerFilter {
	if f == gputypes.FilterModeLinear {
		return nagamsl.SamplerFilterLinear
	}
	return nagamsl.SamplerFilterNearest
}

var compareFuncs = map[gputypes.CompareFunction]nagamsl.SamplerCompareFunc{
	gputypes.CompareFunctionNever:        nagamsl.SamplerCompareFuncNever,
	gputypes.CompareFunctionLess:         nagamsl.SamplerCompareFuncLess,
	gputypes.CompareFunctionEqual:        nagamsl.SamplerCompareFuncEqual,
	gputypes.CompareFunctionLessEqual:    nagamsl.SamplerCompareFuncLessEqual,
	gputypes.CompareFunctionGreater:      nagamsl.SamplerCompareFuncGreater,
	gputypes.CompareFunctionNotEqual:     nagamsl.SamplerCompareFuncNotEqual,
	gputypes.CompareFunctionGreaterEqual: nagamsl.SamplerCompareFuncGreaterEqual,
	gputypes.CompareFunctionAlways:       nagamsl.SamplerCompareFuncAlways,
}

// inlineSampler converts a constexpr sampler. The backend has no LOD clamp
// or anisotropy, so those settings are dropped.
func inlineSampler(cs spvmsl.ConstExprSampler) nagamsl.InlineSampler {
	is := nagamsl.InlineSampler{
		Coord:       nagamsl.SamplerCoordNormalized,
		Address:     [3]nagamsl.SamplerAddress{samplerAddress(cs.AddressU), samplerAddress(cs.AddressV), samplerAddress(cs.AddressW)},
		BorderColor: nagamsl.SamplerBorderColor(cs.BorderColor),
		MagFilter:   samplerFilter(cs.MagFilter),
		MinFilter:   samplerFilter(cs.MinFilter),
		CompareFunc: nagamsl.SamplerCompareFuncNever,
	}
	if cs.Coord == spvmsl.SamplerCoordPixel {
		is.Coord = nagamsl.SamplerCoordPixel
	}
	switch cs.MipFilter {
	case gputypes.MipmapFilterModeNearest:
		f := nagamsl.SamplerFilterNearest
		is.MipFilter = &f
	case gputypes.MipmapFilterModeLinear:
		f := nagamsl.SamplerFilterLinear
		is.MipFilter = &f
	}
	if cs.CompareEnable {
		if f, ok := compareFuncs[cs.CompareFunc]; ok {
			is.CompareFunc = f
		}
	}
	return is
}

type slotKind int

const (
	slotBuffer slotKind = iota
	slotTexture
	slotSampler
)

// slotAllocator hands out Metal slots. Registered bindings keep their
// slots; other resources take the lowest slot no registration claims.
type slotAllocator struct {
	taken [3]map[uint32]bool
	next  [3]uint32
}

// newSlotAllocator reserves the slots of the bindings registered for stage:
// the slots their base type names, and every non-zero index whatever the
// base type.
func newSlotAllocator(bindings []spvmsl.ResourceBinding, stage spirv.ExecutionModel) *slotAllocator {
	a := &slotAllocator{}
	for i := range a.taken {
		a.taken[i] = make(map[uint32]bool)
	}
	for _, rb := range bindings {
		if rb.Stage != stage {
			continue
		}
		switch rb.BaseType {
		case spvmsl.ResourceTypeBuffer:
			a.taken[slotBuffer][rb.MSLBuffer] = true
		case spvmsl.ResourceTypeTexture:
			a.taken[slotTexture][rb.MSLTexture] = true
		case spvmsl.ResourceTypeSampler:
			a.taken[slotSampler][rb.MSLSampler] = true
		case spvmsl.ResourceTypeSampledImage:
			a.taken[slotTexture][rb.MSLTexture] = true
			a.taken[slotSampler][rb.MSLSampler] = true
		}
		for kind, idx := range [...]uint32{slotBuffer: rb.MSLBuffer, slotTexture: rb.MSLTexture, slotSampler: rb.MSLSampler} {
			if idx != 0 {
				a.taken[kind][idx] = true
			}
		}
	}
	return a
}

func (a *slotAllocator) slot(kind slotKind, registered uint32, bound bool) *uint8 {
	if !bound {
		for a.taken[kind][a.next[kind]] {
			a.next[kind]++
		}
		registered = a.next[kind]
		a.taken[kind][registered] = true
	}
	v := uint8(min(registered, maxSlot))
	return &v
}

// metalReserved lists identifiers that cannot name an MSL function.
var metalReserved = map[string]bool{
	"main": true, "metal": true, "vertex": true, "fragment": true, "kernel": true,
	"float": true, "half": true, "int": true, "uint": true, "bool": true, "void": true,
	"texture": true, "sampler": true, "constant": true, "device": true, "thread": true,
	"threadgroup": true, "struct": true, "return": true, "discard": true,
}

// cleanseName predicts the MSL name of an entry point: characters that
// cannot appear in an identifier are dropped, and names ending in a digit
// or colliding with a reserved word get a trailing underscore.
func cleanseName(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c == '_' && strings.HasSuffix(b.String(), "_"):
		case c >= '0' && c <= '9' && b.Len() == 0:
		case c == '_', c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			b.WriteRune(c)
		case c == ':', c == '<', c == '>', c == ',':
			if !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		}
	}
	out := strings.TrimRight(b.String(), "_")
	if out == "" {
		out = "unnamed"
	}
	if last := out[len(out)-1]; (last >= '0' && last <= '9') || metalReserved[out] {
		out += "_"
	}
	return out
}
