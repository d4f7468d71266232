package spvmsl

import "github.com/gogpu/gputypes"

// SamplerCoord selects normalized or pixel texture coordinates.
type SamplerCoord uint8

const (
	SamplerCoordNormalized SamplerCoord = iota
	SamplerCoordPixel
)

// SamplerAddress is the MSL address mode of a constexpr sampler. It is a
// superset of the WebGPU address modes.
type SamplerAddress uint8

const (
	SamplerAddressClampToZero SamplerAddress = iota
	SamplerAddressClampToEdge
	SamplerAddressClampToBorder
	SamplerAddressRepeat
	SamplerAddressMirroredRepeat
)

// String returns the MSL spelling of the address mode.
func (a SamplerAddress) String() string {
	switch a {
	case SamplerAddressClampToZero:
		return "clamp_to_zero"
	case SamplerAddressClampToEdge:
		return "clamp_to_edge"
	case SamplerAddressClampToBorder:
		return "clamp_to_border"
	case SamplerAddressRepeat:
		return "repeat"
	case SamplerAddressMirroredRepeat:
		return "mirrored_repeat"
	default:
		return "unknown"
	}
}

// SamplerAddressFromMode converts a WebGPU address mode. Undefined maps to
// clamp to edge, the WebGPU default.
func SamplerAddressFromMode(m gputypes.AddressMode) SamplerAddress {
	switch m {
	case gputypes.AddressModeRepeat:
		return SamplerAddressRepeat
	case gputypes.AddressModeMirrorRepeat:
		return SamplerAddressMirroredRepeat
	default:
		return SamplerAddressClampToEdge
	}
}

// SamplerBorderColor is the border color used with clamp to border.
type SamplerBorderColor uint8

const (
	SamplerBorderTransparentBlack SamplerBorderColor = iota
	SamplerBorderOpaqueBlack
	SamplerBorderOpaqueWhite
)

// ConstExprSampler is an immutable sampler written into the MSL as a
// constexpr sampler instead of being bound at run time.
type ConstExprSampler struct {
	Coord SamplerCoord

	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode

	// MipFilter is MipmapFilterModeUndefined when mipmapping is off.
	MipFilter gputypes.MipmapFilterMode

	AddressU SamplerAddress
	AddressV SamplerAddress
	AddressW SamplerAddress

	CompareEnable bool
	CompareFunc   gputypes.CompareFunction

	BorderColor SamplerBorderColor

	LodClampEnable bool
	LodClampMin    float32
	LodClampMax    float32

	AnisotropyEnable bool
	MaxAnisotropy    uint32
}

// DefaultConstExprSampler returns a nearest, clamp to edge sampler with no
// comparison and the full LOD range.
func DefaultConstExprSampler() ConstExprSampler {
	return ConstExprSampler{
		Coord:         SamplerCoordNormalized,
		MinFilter:     gputypes.FilterModeNearest,
		MagFilter:     gputypes.FilterModeNearest,
		MipFilter:     gputypes.MipmapFilterModeUndefined,
		AddressU:      SamplerAddressClampToEdge,
		AddressV:      SamplerAddressClampToEdge,
		AddressW:      SamplerAddressClampToEdge,
		CompareFunc:   gputypes.CompareFunctionNever,
		BorderColor:   SamplerBorderTransparentBlack,
		LodClampMin:   0,
		LodClampMax:   1000,
		MaxAnisotropy: 1,
	}
}
