package spvmsl

import (
	"slices"

	"github.com/gogpu/spvmsl/spirv"
)

// ConversionConfiguration holds everything a conversion depends on. After
// Converter.Convert it also records which inputs and resources the shader
// uses, which makes it a fingerprint for pipeline caches: a cached
// translation can serve a new configuration when Matches reports true.
type ConversionConfiguration struct {
	Options          ConversionOptions
	ShaderInputs     []ShaderInput
	ResourceBindings []ResourceBinding

	// DiscreteDescriptorSets lists sets kept out of argument buffers.
	DiscreteDescriptorSets []uint32

	DynamicBufferDescriptors []DynamicBufferDescriptor
}

// NewConversionConfiguration returns an empty configuration with default
// options.
func NewConversionConfiguration() *ConversionConfiguration {
	return &ConversionConfiguration{Options: NewConversionOptions()}
}

// StageSupportsVertexAttributes reports whether the active stage consumes
// vertex attributes.
func (c *ConversionConfiguration) StageSupportsVertexAttributes() bool {
	switch c.Options.EntryPointStage {
	case spirv.ExecutionModelVertex,
		spirv.ExecutionModelTessellationControl,
		spirv.ExecutionModelTessellationEvaluation:
		return true
	default:
		return false
	}
}

// IsShaderInputLocationUsed reports whether any used input sits at location.
// All inputs are checked since unused inputs may share a location with used
// ones.
func (c *ConversionConfiguration) IsShaderInputLocationUsed(location uint32) bool {
	for _, si := range c.ShaderInputs {
		if si.Location == location && si.OutIsUsedByShader {
			return true
		}
	}
	return false
}

// CountShaderInputsAt returns the number of used inputs fed by the vertex
// buffer binding.
func (c *ConversionConfiguration) CountShaderInputsAt(binding uint32) uint32 {
	var n uint32
	for _, si := range c.ShaderInputs {
		if si.Binding == binding && si.OutIsUsedByShader {
			n++
		}
	}
	return n
}

// IsResourceUsed returns the used flag of the first binding at stage, set
// and binding, or false when there is none.
func (c *ConversionConfiguration) IsResourceUsed(stage spirv.ExecutionModel, set, binding uint32) bool {
	for _, rb := range c.ResourceBindings {
		if rb.Stage == stage && rb.DescriptorSet == set && rb.Binding == binding {
			return rb.OutIsUsedByShader
		}
	}
	return false
}

// MarkAllInputsAndResourcesUsed sets every used flag.
func (c *ConversionConfiguration) MarkAllInputsAndResourcesUsed() {
	for i := range c.ShaderInputs {
		c.ShaderInputs[i].OutIsUsedByShader = true
	}
	for i := range c.ResourceBindings {
		c.ResourceBindings[i].OutIsUsedByShader = true
	}
}

// Matches reports whether a translation made with c can serve other.
//
// Only the used inputs and the used resources of the active stage must have
// a counterpart in other; dynamic buffers of the active stage and all
// discrete sets must too. The relation is not symmetric.
func (c *ConversionConfiguration) Matches(other *ConversionConfiguration) bool {
	if !c.Options.Matches(other.Options) {
		return false
	}
	for _, si := range c.ShaderInputs {
		if si.OutIsUsedByShader && !containsMatching(other.ShaderInputs, si.Matches) {
			return false
		}
	}
	stage := c.Options.EntryPointStage
	for _, rb := range c.ResourceBindings {
		if rb.Stage == stage && rb.OutIsUsedByShader && !containsMatching(other.ResourceBindings, rb.Matches) {
			return false
		}
	}
	for _, db := range c.DynamicBufferDescriptors {
		if db.Stage == stage && !containsMatching(other.DynamicBufferDescriptors, db.Matches) {
			return false
		}
	}
	for _, set := range c.DiscreteDescriptorSets {
		if !slices.Contains(other.DiscreteDescriptorSets, set) {
			return false
		}
	}
	return true
}

// AlignWith copies the used flags of src into c. Each input and resource of
// c takes the flag of the last matching entry in src, or false when src has
// none.
func (c *ConversionConfiguration) AlignWith(src *ConversionConfiguration) {
	for i := range c.ShaderInputs {
		si := &c.ShaderInputs[i]
		si.OutIsUsedByShader = false
		for _, srcSI := range src.ShaderInputs {
			if si.Matches(srcSI) {
				si.OutIsUsedByShader = srcSI.OutIsUsedByShader
			}
		}
	}
	for i := range c.ResourceBindings {
		rb := &c.ResourceBindings[i]
		rb.OutIsUsedByShader = false
		for _, srcRB := range src.ResourceBindings {
			if rb.Matches(srcRB) {
				rb.OutIsUsedByShader = srcRB.OutIsUsedByShader
			}
		}
	}
}

// Clone returns a deep copy of c.
func (c *ConversionConfiguration) Clone() *ConversionConfiguration {
	return &ConversionConfiguration{
		Options:                  c.Options,
		ShaderInputs:             slices.Clone(c.ShaderInputs),
		ResourceBindings:         slices.Clone(c.ResourceBindings),
		DiscreteDescriptorSets:   slices.Clone(c.DiscreteDescriptorSets),
		DynamicBufferDescriptors: slices.Clone(c.DynamicBufferDescriptors),
	}
}

// UsedSubset returns a copy of c holding only the used inputs and the used
// resources. Discrete sets and dynamic buffers are kept as they are. The
// result is the smallest configuration c still matches, which makes it a
// compact cache key.
func (c *ConversionConfiguration) UsedSubset() *ConversionConfiguration {
	out := &ConversionConfiguration{
		Options:                  c.Options,
		DiscreteDescriptorSets:   slices.Clone(c.DiscreteDescriptorSets),
		DynamicBufferDescriptors: slices.Clone(c.DynamicBufferDescriptors),
	}
	for _, si := range c.ShaderInputs {
		if si.OutIsUsedByShader {
			out.ShaderInputs = append(out.ShaderInputs, si)
		}
	}
	for _, rb := range c.ResourceBindings {
		if rb.OutIsUsedByShader {
			out.ResourceBindings = append(out.ResourceBindings, rb)
		}
	}
	return out
}

func containsMatching[T any](items []T, match func(T) bool) bool {
	return slices.ContainsFunc(items, match)
}
