package spvmsl

import (
	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
)

// ConversionOptions selects the entry point and the MSL dialect of a
// conversion.
type ConversionOptions struct {
	MSL msl.Options

	EntryPointStage spirv.ExecutionModel
	EntryPointName  string

	// TessPatchKind overrides the tessellation patch kind;
	// spirv.ExecutionModeMax keeps the one the shader declares.
	TessPatchKind        spirv.ExecutionMode
	NumTessControlPoints uint32

	ShouldFlipVertexY bool
}

// NewConversionOptions returns the default options for the host platform.
func NewConversionOptions() ConversionOptions {
	return ConversionOptions{
		MSL:               msl.DefaultOptions(),
		EntryPointStage:   spirv.ExecutionModelMax,
		TessPatchKind:     spirv.ExecutionModeMax,
		ShouldFlipVertexY: true,
	}
}

// Matches reports whether o and other produce the same translation.
func (o ConversionOptions) Matches(other ConversionOptions) bool {
	return o.MSL.Equal(other.MSL) &&
		o.EntryPointStage == other.EntryPointStage &&
		o.EntryPointName == other.EntryPointName &&
		o.TessPatchKind == other.TessPatchKind &&
		o.NumTessControlPoints == other.NumTessControlPoints &&
		o.ShouldFlipVertexY == other.ShouldFlipVertexY
}

// HasEntryPoint reports whether an entry point name is set.
func (o ConversionOptions) HasEntryPoint() bool {
	return o.EntryPointName != ""
}
