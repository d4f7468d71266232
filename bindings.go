package spvmsl

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/spvmsl/spirv"
)

// InputFormat is the component format of a stage input as fed by a vertex
// buffer.
type InputFormat uint8

const (
	InputFormatOther InputFormat = iota
	InputFormatUInt8
	InputFormatUInt16
	InputFormatAny16
	InputFormatAny32
)

// String returns the format name.
func (f InputFormat) String() string {
	switch f {
	case InputFormatOther:
		return "Other"
	case InputFormatUInt8:
		return "UInt8"
	case InputFormatUInt16:
		return "UInt16"
	case InputFormatAny16:
		return "Any16"
	case InputFormatAny32:
		return "Any32"
	default:
		return "Unknown"
	}
}

// InputFormatForVertexFormat maps a vertex buffer format to the input format
// the generated code must expect.
func InputFormatForVertexFormat(f gputypes.VertexFormat) InputFormat {
	switch f {
	case gputypes.VertexFormatUint8x2, gputypes.VertexFormatUint8x4,
		gputypes.VertexFormatSint8x2, gputypes.VertexFormatSint8x4,
		gputypes.VertexFormatUnorm8x2, gputypes.VertexFormatUnorm8x4,
		gputypes.VertexFormatSnorm8x2, gputypes.VertexFormatSnorm8x4:
		return InputFormatUInt8
	case gputypes.VertexFormatUint16x2, gputypes.VertexFormatUint16x4,
		gputypes.VertexFormatSint16x2, gputypes.VertexFormatSint16x4,
		gputypes.VertexFormatUnorm16x2, gputypes.VertexFormatUnorm16x4,
		gputypes.VertexFormatSnorm16x2, gputypes.VertexFormatSnorm16x4:
		return InputFormatUInt16
	case gputypes.VertexFormatFloat16x2, gputypes.VertexFormatFloat16x4:
		return InputFormatAny16
	case gputypes.VertexFormatFloat32, gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatUint32, gputypes.VertexFormatUint32x2,
		gputypes.VertexFormatUint32x3, gputypes.VertexFormatUint32x4,
		gputypes.VertexFormatSint32, gputypes.VertexFormatSint32x2,
		gputypes.VertexFormatSint32x3, gputypes.VertexFormatSint32x4:
		return InputFormatAny32
	default:
		return InputFormatOther
	}
}

// ShaderInput describes one stage input (usually a vertex attribute) and
// whether the shader reads it.
type ShaderInput struct {
	Location  uint32
	Component uint32
	Format    InputFormat

	// Builtin is spirv.BuiltInMax for ordinary inputs.
	Builtin spirv.BuiltIn

	VecSize uint32

	// Binding is the vertex buffer binding the input is fetched from.
	Binding uint32

	// OutIsUsedByShader is written by Converter.Convert.
	OutIsUsedByShader bool
}

// NewShaderInput returns an input in its default state.
func NewShaderInput() ShaderInput {
	return ShaderInput{Builtin: spirv.BuiltInMax}
}

// Matches reports whether si and other describe the same input. The used
// flag is ignored.
func (si ShaderInput) Matches(other ShaderInput) bool {
	return si.Location == other.Location &&
		si.Component == other.Component &&
		si.Format == other.Format &&
		si.Builtin == other.Builtin &&
		si.VecSize == other.VecSize &&
		si.Binding == other.Binding
}

// ResourceType is the base type of a resource binding.
type ResourceType uint8

const (
	ResourceTypeUnknown ResourceType = iota
	ResourceTypeBuffer
	ResourceTypeTexture
	ResourceTypeSampler
	ResourceTypeSampledImage
)

// String returns the resource type name.
func (t ResourceType) String() string {
	switch t {
	case ResourceTypeUnknown:
		return "Unknown"
	case ResourceTypeBuffer:
		return "Buffer"
	case ResourceTypeTexture:
		return "Texture"
	case ResourceTypeSampler:
		return "Sampler"
	case ResourceTypeSampledImage:
		return "SampledImage"
	default:
		return "Invalid"
	}
}

// Push constants are addressed through a reserved descriptor slot.
const (
	PushConstantDescriptorSet = ^uint32(0)
	PushConstantBinding       = uint32(0)
)

// ResourceBinding maps a Vulkan descriptor (stage, set, binding) to Metal
// argument table slots, optionally replacing a sampler with a constexpr
// sampler baked into the MSL.
type ResourceBinding struct {
	Stage         spirv.ExecutionModel
	BaseType      ResourceType
	DescriptorSet uint32
	Binding       uint32
	Count         uint32

	MSLBuffer  uint32
	MSLTexture uint32
	MSLSampler uint32

	// ConstExprSampler is only meaningful when RequiresConstExprSampler is set.
	RequiresConstExprSampler bool
	ConstExprSampler         ConstExprSampler

	// OutIsUsedByShader is written by Converter.Convert.
	OutIsUsedByShader bool
}

// NewResourceBinding returns a binding in its default state.
func NewResourceBinding() ResourceBinding {
	return ResourceBinding{
		Stage:            spirv.ExecutionModelMax,
		ConstExprSampler: DefaultConstExprSampler(),
	}
}

// Matches reports whether rb and other describe the same binding. The
// constexpr sampler is only compared when both require one; the used flag
// is ignored.
func (rb ResourceBinding) Matches(other ResourceBinding) bool {
	if rb.Stage != other.Stage ||
		rb.BaseType != other.BaseType ||
		rb.DescriptorSet != other.DescriptorSet ||
		rb.Binding != other.Binding ||
		rb.Count != other.Count ||
		rb.MSLBuffer != other.MSLBuffer ||
		rb.MSLTexture != other.MSLTexture ||
		rb.MSLSampler != other.MSLSampler {
		return false
	}
	if rb.RequiresConstExprSampler != other.RequiresConstExprSampler {
		return false
	}
	if rb.RequiresConstExprSampler {
		return rb.ConstExprSampler == other.ConstExprSampler
	}
	return true
}

// IsPushConstant reports whether the binding addresses the push constant block.
func (rb ResourceBinding) IsPushConstant() bool {
	return rb.DescriptorSet == PushConstantDescriptorSet && rb.Binding == PushConstantBinding
}

// DynamicBufferDescriptor assigns a dynamic offset index to a buffer inside
// an argument buffer.
type DynamicBufferDescriptor struct {
	Stage         spirv.ExecutionModel
	DescriptorSet uint32
	Binding       uint32
	Index         uint32
}

// Matches reports whether every field of d and other is equal.
func (d DynamicBufferDescriptor) Matches(other DynamicBufferDescriptor) bool {
	return d == other
}
