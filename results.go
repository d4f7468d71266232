package spvmsl

// WorkgroupDimension is one axis of a compute workgroup size.
type WorkgroupDimension struct {
	// Size is at least 1.
	Size uint32

	// IsSpecialized reports whether the size comes from a specialization
	// constant, in which case SpecializationID is its constant id.
	IsSpecialized    bool
	SpecializationID uint32
}

// WorkgroupSize is the compute workgroup size of an entry point.
type WorkgroupSize struct {
	Width  WorkgroupDimension
	Height WorkgroupDimension
	Depth  WorkgroupDimension
}

// EntryPoint describes the translated entry point.
type EntryPoint struct {
	// MTLFunctionName is the name of the function in the generated MSL.
	MTLFunctionName string

	SupportsFastMath bool
	WorkgroupSize    WorkgroupSize
}

// ConversionResults holds metadata about a translated shader that the
// pipeline needs to bind it.
type ConversionResults struct {
	EntryPoint EntryPoint

	IsRasterizationDisabled  bool
	IsPositionInvariant      bool
	NeedsSwizzleBuffer       bool
	NeedsOutputBuffer        bool
	NeedsPatchOutputBuffer   bool
	NeedsBufferSizeBuffer    bool
	NeedsDynamicOffsetBuffer bool
	NeedsInputThreadgroupMem bool
	NeedsDispatchBaseBuffer  bool
	NeedsViewRangeBuffer     bool
}

// Reset returns r to its zero state.
func (r *ConversionResults) Reset() {
	*r = ConversionResults{}
}

// newWorkgroupDimension combines a literal size with the specialization
// constant that may override it. A constant with a zero id means none.
func newWorkgroupDimension(size uint32, sc SpecializationConstant) WorkgroupDimension {
	return WorkgroupDimension{
		Size:             max(size, 1),
		IsSpecialized:    sc.ID != 0,
		SpecializationID: sc.ConstantID,
	}
}
