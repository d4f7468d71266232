package spirv

// SPIR-V magic number and header constants.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator

	// HeaderWords is the number of words preceding the first instruction.
	HeaderWords = 5
)

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// VersionFromWord decodes the version word of a module header.
func VersionFromWord(word uint32) Version {
	return Version{Major: uint8(word >> 16), Minor: uint8(word >> 8)}
}

// Word encodes the version as it appears in a module header.
func (v Version) Word() uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes understood by the parser, reflection and lifter.
const (
	OpNop                        OpCode = 0
	OpUndef                      OpCode = 1
	OpSourceContinued            OpCode = 2
	OpSource                     OpCode = 3
	OpSourceExtension            OpCode = 4
	OpName                       OpCode = 5
	OpMemberName                 OpCode = 6
	OpString                     OpCode = 7
	OpLine                       OpCode = 8
	OpExtension                  OpCode = 10
	OpExtInstImport              OpCode = 11
	OpExtInst                    OpCode = 12
	OpMemoryModel                OpCode = 14
	OpEntryPoint                 OpCode = 15
	OpExecutionMode              OpCode = 16
	OpCapability                 OpCode = 17
	OpTypeVoid                   OpCode = 19
	OpTypeBool                   OpCode = 20
	OpTypeInt                    OpCode = 21
	OpTypeFloat                  OpCode = 22
	OpTypeVector                 OpCode = 23
	OpTypeMatrix                 OpCode = 24
	OpTypeImage                  OpCode = 25
	OpTypeSampler                OpCode = 26
	OpTypeSampledImage           OpCode = 27
	OpTypeArray                  OpCode = 28
	OpTypeRuntimeArray           OpCode = 29
	OpTypeStruct                 OpCode = 30
	OpTypeOpaque                 OpCode = 31
	OpTypePointer                OpCode = 32
	OpTypeFunction               OpCode = 33
	OpConstantTrue               OpCode = 41
	OpConstantFalse              OpCode = 42
	OpConstant                   OpCode = 43
	OpConstantComposite          OpCode = 44
	OpConstantSampler            OpCode = 45
	OpConstantNull               OpCode = 46
	OpSpecConstantTrue           OpCode = 48
	OpSpecConstantFalse          OpCode = 49
	OpSpecConstant               OpCode = 50
	OpSpecConstantComposite      OpCode = 51
	OpSpecConstantOp             OpCode = 52
	OpFunction                   OpCode = 54
	OpFunctionParameter          OpCode = 55
	OpFunctionEnd                OpCode = 56
	OpFunctionCall               OpCode = 57
	OpVariable                   OpCode = 59
	OpImageTexelPointer          OpCode = 60
	OpLoad                       OpCode = 61
	OpStore                      OpCode = 62
	OpCopyMemory                 OpCode = 63
	OpCopyMemorySized            OpCode = 64
	OpAccessChain                OpCode = 65
	OpInBoundsAccessChain        OpCode = 66
	OpPtrAccessChain             OpCode = 67
	OpArrayLength                OpCode = 68
	OpDecorate                   OpCode = 71
	OpMemberDecorate             OpCode = 72
	OpDecorationGroup            OpCode = 73
	OpGroupDecorate              OpCode = 74
	OpGroupMemberDecorate        OpCode = 75
	OpVectorExtractDynamic       OpCode = 77
	OpVectorInsertDynamic        OpCode = 78
	OpVectorShuffle              OpCode = 79
	OpCompositeConstruct         OpCode = 80
	OpCompositeExtract           OpCode = 81
	OpCompositeInsert            OpCode = 82
	OpCopyObject                 OpCode = 83
	OpTranspose                  OpCode = 84
	OpSampledImage               OpCode = 86
	OpImageSampleImplicitLod     OpCode = 87
	OpImageSampleExplicitLod     OpCode = 88
	OpImageSampleDrefImplicitLod OpCode = 89
	OpImageSampleDrefExplicitLod OpCode = 90
	OpImageSampleProjImplicitLod OpCode = 91
	OpImageFetch                 OpCode = 95
	OpImageGather                OpCode = 96
	OpImageDrefGather            OpCode = 97
	OpImageRead                  OpCode = 98
	OpImageWrite                 OpCode = 99
	OpImage                      OpCode = 100
	OpImageQuerySizeLod          OpCode = 103
	OpImageQuerySize             OpCode = 104
	OpImageQueryLevels           OpCode = 106
	OpImageQuerySamples          OpCode = 107
	OpConvertFToU                OpCode = 109
	OpConvertFToS                OpCode = 110
	OpConvertSToF                OpCode = 111
	OpConvertUToF                OpCode = 112
	OpUConvert                   OpCode = 113
	OpSConvert                   OpCode = 114
	OpFConvert                   OpCode = 115
	OpBitcast                    OpCode = 124
	OpSNegate                    OpCode = 126
	OpFNegate                    OpCode = 127
	OpIAdd                       OpCode = 128
	OpFAdd                       OpCode = 129
	OpISub                       OpCode = 130
	OpFSub                       OpCode = 131
	OpIMul                       OpCode = 132
	OpFMul                       OpCode = 133
	OpUDiv                       OpCode = 134
	OpSDiv                       OpCode = 135
	OpFDiv                       OpCode = 136
	OpUMod                       OpCode = 137
	OpSRem                       OpCode = 138
	OpSMod                       OpCode = 139
	OpFRem                       OpCode = 140
	OpFMod                       OpCode = 141
	OpVectorTimesScalar          OpCode = 142
	OpMatrixTimesScalar          OpCode = 143
	OpVectorTimesMatrix          OpCode = 144
	OpMatrixTimesVector          OpCode = 145
	OpMatrixTimesMatrix          OpCode = 146
	OpOuterProduct               OpCode = 147
	OpDot                        OpCode = 148
	OpAny                        OpCode = 154
	OpAll                        OpCode = 155
	OpIsNan                      OpCode = 156
	OpIsInf                      OpCode = 157
	OpLogicalEqual               OpCode = 164
	OpLogicalNotEqual            OpCode = 165
	OpLogicalOr                  OpCode = 166
	OpLogicalAnd                 OpCode = 167
	OpLogicalNot                 OpCode = 168
	OpSelect                     OpCode = 169
	OpIEqual                     OpCode = 170
	OpINotEqual                  OpCode = 171
	OpUGreaterThan               OpCode = 172
	OpSGreaterThan               OpCode = 173
	OpUGreaterThanEqual          OpCode = 174
	OpSGreaterThanEqual          OpCode = 175
	OpULessThan                  OpCode = 176
	OpSLessThan                  OpCode = 177
	OpULessThanEqual             OpCode = 178
	OpSLessThanEqual             OpCode = 179
	OpFOrdEqual                  OpCode = 180
	OpFUnordEqual                OpCode = 181
	OpFOrdNotEqual               OpCode = 182
	OpFUnordNotEqual             OpCode = 183
	OpFOrdLessThan               OpCode = 184
	OpFUnordLessThan             OpCode = 185
	OpFOrdGreaterThan            OpCode = 186
	OpFUnordGreaterThan          OpCode = 187
	OpFOrdLessThanEqual          OpCode = 188
	OpFUnordLessThanEqual        OpCode = 189
	OpFOrdGreaterThanEqual       OpCode = 190
	OpFUnordGreaterThanEqual     OpCode = 191
	OpShiftRightLogical          OpCode = 194
	OpShiftRightArithmetic       OpCode = 195
	OpShiftLeftLogical           OpCode = 196
	OpBitwiseOr                  OpCode = 197
	OpBitwiseXor                 OpCode = 198
	OpBitwiseAnd                 OpCode = 199
	OpNot                        OpCode = 200
	OpBitCount                   OpCode = 205
	OpDPdx                       OpCode = 207
	OpDPdy                       OpCode = 208
	OpFwidth                     OpCode = 209
	OpDPdxFine                   OpCode = 210
	OpDPdyFine                   OpCode = 211
	OpFwidthFine                 OpCode = 212
	OpDPdxCoarse                 OpCode = 213
	OpDPdyCoarse                 OpCode = 214
	OpFwidthCoarse               OpCode = 215
	OpEmitVertex                 OpCode = 218
	OpEndPrimitive               OpCode = 219
	OpControlBarrier             OpCode = 224
	OpMemoryBarrier              OpCode = 225
	OpAtomicLoad                 OpCode = 227
	OpAtomicStore                OpCode = 228
	OpAtomicIAdd                 OpCode = 234
	OpPhi                        OpCode = 245
	OpLoopMerge                  OpCode = 246
	OpSelectionMerge             OpCode = 247
	OpLabel                      OpCode = 248
	OpBranch                     OpCode = 249
	OpBranchConditional          OpCode = 250
	OpSwitch                     OpCode = 251
	OpKill                       OpCode = 252
	OpReturn                     OpCode = 253
	OpReturnValue                OpCode = 254
	OpUnreachable                OpCode = 255
	OpLifetimeStart              OpCode = 256
	OpLifetimeStop               OpCode = 257
	OpNoLine                     OpCode = 317
	OpModuleProcessed            OpCode = 330
	OpExecutionModeID            OpCode = 331
	OpDecorateID                 OpCode = 332
	OpCopyLogical                OpCode = 400
	OpTerminateInvocation        OpCode = 4416
	OpDemoteToHelperInvocation   OpCode = 5380
	OpDecorateString             OpCode = 5632
	OpMemberDecorateString       OpCode = 5633
)

// String returns the SPIR-V name of the opcode.
func (op OpCode) String() string {
	return lookup(opcodeNames, uint32(op), "Op")
}

// ResultKind reports whether an instruction of this opcode carries a result
// type id and a result id in its leading operands.
func (op OpCode) ResultKind() (hasType, hasResult bool) {
	switch op {
	case OpNop, OpSourceContinued, OpSource, OpSourceExtension, OpName, OpMemberName,
		OpLine, OpNoLine, OpExtension, OpMemoryModel, OpEntryPoint, OpExecutionMode,
		OpExecutionModeID, OpCapability, OpDecorate, OpMemberDecorate, OpDecorateID,
		OpDecorateString, OpMemberDecorateString, OpGroupDecorate, OpGroupMemberDecorate,
		OpStore, OpCopyMemory, OpCopyMemorySized, OpFunctionEnd, OpImageWrite,
		OpEmitVertex, OpEndPrimitive, OpControlBarrier, OpMemoryBarrier, OpAtomicStore,
		OpLoopMerge, OpSelectionMerge, OpBranch, OpBranchConditional, OpSwitch, OpKill,
		OpReturn, OpReturnValue, OpUnreachable, OpLifetimeStart, OpLifetimeStop,
		OpModuleProcessed, OpTerminateInvocation, OpDemoteToHelperInvocation:
		return false, false
	case OpString, OpExtInstImport, OpDecorationGroup, OpLabel:
		return false, true
	}
	if op >= OpTypeVoid && op <= OpTypeFunction {
		return false, true
	}
	return true, true
}

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Decorations
const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecID               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationBuiltIn              Decoration = 11
	DecorationNoPerspective        Decoration = 13
	DecorationFlat                 Decoration = 14
	DecorationPatch                Decoration = 15
	DecorationCentroid             Decoration = 16
	DecorationSample               Decoration = 17
	DecorationInvariant            Decoration = 18
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationIndex                Decoration = 32
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationInputAttachmentIndex Decoration = 43
)

// String returns the SPIR-V name of the decoration.
func (d Decoration) String() string { return lookup(decorationNames, uint32(d), "Decoration") }

// ExecutionModel is the pipeline stage of an entry point.
type ExecutionModel uint32

// Execution models
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6

	// ExecutionModelMax marks "no stage selected".
	ExecutionModelMax ExecutionModel = 0x7fffffff
)

// String returns the SPIR-V name of the execution model.
func (m ExecutionModel) String() string {
	if m == ExecutionModelMax {
		return "Max"
	}
	return lookup(executionModelNames, uint32(m), "ExecutionModel")
}

// IsTessellation reports whether the model is a tessellation stage.
func (m ExecutionModel) IsTessellation() bool {
	return m == ExecutionModelTessellationControl || m == ExecutionModelTessellationEvaluation
}

// ExecutionMode is an OpExecutionMode mode.
type ExecutionMode uint32

// Execution modes
const (
	ExecutionModeInvocations              ExecutionMode = 0
	ExecutionModeSpacingEqual             ExecutionMode = 1
	ExecutionModeSpacingFractionalEven    ExecutionMode = 2
	ExecutionModeSpacingFractionalOdd     ExecutionMode = 3
	ExecutionModeVertexOrderCw            ExecutionMode = 4
	ExecutionModeVertexOrderCcw           ExecutionMode = 5
	ExecutionModePixelCenterInteger       ExecutionMode = 6
	ExecutionModeOriginUpperLeft          ExecutionMode = 7
	ExecutionModeOriginLowerLeft          ExecutionMode = 8
	ExecutionModeEarlyFragmentTests       ExecutionMode = 9
	ExecutionModePointMode                ExecutionMode = 10
	ExecutionModeXfb                      ExecutionMode = 11
	ExecutionModeDepthReplacing           ExecutionMode = 12
	ExecutionModeDepthGreater             ExecutionMode = 14
	ExecutionModeDepthLess                ExecutionMode = 15
	ExecutionModeDepthUnchanged           ExecutionMode = 16
	ExecutionModeLocalSize                ExecutionMode = 17
	ExecutionModeLocalSizeHint            ExecutionMode = 18
	ExecutionModeInputPoints              ExecutionMode = 19
	ExecutionModeInputLines               ExecutionMode = 20
	ExecutionModeTriangles                ExecutionMode = 22
	ExecutionModeQuads                    ExecutionMode = 24
	ExecutionModeIsolines                 ExecutionMode = 25
	ExecutionModeOutputVertices           ExecutionMode = 26
	ExecutionModeOutputPoints             ExecutionMode = 27
	ExecutionModeOutputLineStrip          ExecutionMode = 28
	ExecutionModeOutputTriangleStrip      ExecutionMode = 29
	ExecutionModeContractionOff           ExecutionMode = 31
	ExecutionModeLocalSizeID              ExecutionMode = 38
	ExecutionModeDenormPreserve           ExecutionMode = 4459
	ExecutionModeDenormFlushToZero        ExecutionMode = 4460
	ExecutionModeSignedZeroInfNanPreserve ExecutionMode = 4461
	ExecutionModeRoundingModeRTE          ExecutionMode = 4462
	ExecutionModeRoundingModeRTZ          ExecutionMode = 4463

	// ExecutionModeMax marks "no mode selected".
	ExecutionModeMax ExecutionMode = 0x7fffffff
)

// String returns the SPIR-V name of the execution mode.
func (m ExecutionMode) String() string {
	if m == ExecutionModeMax {
		return "Max"
	}
	return lookup(executionModeNames, uint32(m), "ExecutionMode")
}

// StorageClass is the storage class of a pointer or variable.
type StorageClass uint32

// Storage classes
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// String returns the SPIR-V name of the storage class.
func (s StorageClass) String() string {
	return lookup(storageClassNames, uint32(s), "StorageClass")
}

// IsResource reports whether variables of this class are descriptor-bound.
func (s StorageClass) IsResource() bool {
	switch s {
	case StorageClassUniformConstant, StorageClassUniform, StorageClassStorageBuffer:
		return true
	}
	return false
}

// BuiltIn identifies a builtin variable or struct member.
type BuiltIn uint32

// Builtins
const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPointSize            BuiltIn = 1
	BuiltInClipDistance         BuiltIn = 3
	BuiltInCullDistance         BuiltIn = 4
	BuiltInVertexID             BuiltIn = 5
	BuiltInInstanceID           BuiltIn = 6
	BuiltInPrimitiveID          BuiltIn = 7
	BuiltInInvocationID         BuiltIn = 8
	BuiltInLayer                BuiltIn = 9
	BuiltInViewportIndex        BuiltIn = 10
	BuiltInTessLevelOuter       BuiltIn = 11
	BuiltInTessLevelInner       BuiltIn = 12
	BuiltInTessCoord            BuiltIn = 13
	BuiltInPatchVertices        BuiltIn = 14
	BuiltInFragCoord            BuiltIn = 15
	BuiltInPointCoord           BuiltIn = 16
	BuiltInFrontFacing          BuiltIn = 17
	BuiltInSampleID             BuiltIn = 18
	BuiltInSamplePosition       BuiltIn = 19
	BuiltInSampleMask           BuiltIn = 20
	BuiltInFragDepth            BuiltIn = 22
	BuiltInHelperInvocation     BuiltIn = 23
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupSize        BuiltIn = 25
	BuiltInWorkgroupID          BuiltIn = 26
	BuiltInLocalInvocationID    BuiltIn = 27
	BuiltInGlobalInvocationID   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInSubgroupSize         BuiltIn = 36
	BuiltInNumSubgroups         BuiltIn = 38
	BuiltInSubgroupID           BuiltIn = 40
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
	BuiltInBaseVertex           BuiltIn = 4424
	BuiltInBaseInstance         BuiltIn = 4425
	BuiltInDrawIndex            BuiltIn = 4426
	BuiltInDeviceIndex          BuiltIn = 4438
	BuiltInViewIndex            BuiltIn = 4440

	// BuiltInMax marks "not a builtin".
	BuiltInMax BuiltIn = 0x7fffffff
)

// String returns the SPIR-V name of the builtin.
func (b BuiltIn) String() string {
	if b == BuiltInMax {
		return "Max"
	}
	return lookup(builtinNames, uint32(b), "BuiltIn")
}

// Dim is the dimensionality of an image type.
type Dim uint32

// Image dimensions
const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

// String returns the SPIR-V name of the dimension.
func (d Dim) String() string { return lookup(dimNames, uint32(d), "Dim") }

// ImageFormat is the texel format of a storage image.
type ImageFormat uint32

// Image formats
const (
	ImageFormatUnknown      ImageFormat = 0
	ImageFormatRgba32f      ImageFormat = 1
	ImageFormatRgba16f      ImageFormat = 2
	ImageFormatR32f         ImageFormat = 3
	ImageFormatRgba8        ImageFormat = 4
	ImageFormatRgba8Snorm   ImageFormat = 5
	ImageFormatRg32f        ImageFormat = 6
	ImageFormatRg16f        ImageFormat = 7
	ImageFormatR11fG11fB10f ImageFormat = 8
	ImageFormatR16f         ImageFormat = 9
	ImageFormatRgba16       ImageFormat = 10
	ImageFormatRgb10A2      ImageFormat = 11
	ImageFormatRg16         ImageFormat = 12
	ImageFormatRg8          ImageFormat = 13
	ImageFormatR16          ImageFormat = 14
	ImageFormatR8           ImageFormat = 15
	ImageFormatRgba16Snorm  ImageFormat = 16
	ImageFormatRg16Snorm    ImageFormat = 17
	ImageFormatRg8Snorm     ImageFormat = 18
	ImageFormatR16Snorm     ImageFormat = 19
	ImageFormatR8Snorm      ImageFormat = 20
	ImageFormatRgba32i      ImageFormat = 21
	ImageFormatRgba16i      ImageFormat = 22
	ImageFormatRgba8i       ImageFormat = 23
	ImageFormatR32i         ImageFormat = 24
	ImageFormatRg32i        ImageFormat = 25
	ImageFormatRg16i        ImageFormat = 26
	ImageFormatRg8i         ImageFormat = 27
	ImageFormatR16i         ImageFormat = 28
	ImageFormatR8i          ImageFormat = 29
	ImageFormatRgba32ui     ImageFormat = 30
	ImageFormatRgba16ui     ImageFormat = 31
	ImageFormatRgba8ui      ImageFormat = 32
	ImageFormatR32ui        ImageFormat = 33
	ImageFormatRgb10a2ui    ImageFormat = 34
	ImageFormatRg32ui       ImageFormat = 35
	ImageFormatRg16ui       ImageFormat = 36
	ImageFormatRg8ui        ImageFormat = 37
	ImageFormatR16ui        ImageFormat = 38
	ImageFormatR8ui         ImageFormat = 39
)

// Capability represents a SPIR-V capability.
type Capability uint32

// Common capabilities
const (
	CapabilityMatrix       Capability = 0
	CapabilityShader       Capability = 1
	CapabilityGeometry     Capability = 2
	CapabilityTessellation Capability = 3
	CapabilityFloat16      Capability = 9
	CapabilityFloat64      Capability = 10
	CapabilityInt16        Capability = 22
	CapabilityClipDistance Capability = 32
	CapabilityImageQuery   Capability = 50
	CapabilityMultiView    Capability = 4439
)

// String returns the SPIR-V name of the capability.
func (c Capability) String() string { return lookup(capabilityNames, uint32(c), "Capability") }

// AddressingModel is the addressing model of OpMemoryModel.
type AddressingModel uint32

// Addressing models
const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

// MemoryModel is the memory model of OpMemoryModel.
type MemoryModel uint32

// Memory models
const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// FunctionControl is the control mask of OpFunction.
type FunctionControl uint32

// FunctionControlNone is the empty function control mask.
const FunctionControlNone FunctionControl = 0

// SelectionControl is the control mask of OpSelectionMerge.
type SelectionControl uint32

// SelectionControlNone is the empty selection control mask.
const SelectionControlNone SelectionControl = 0

// LoopControl is the control mask of OpLoopMerge.
type LoopControl uint32

// LoopControlNone is the empty loop control mask.
const LoopControlNone LoopControl = 0

// ExtInstSetGLSL450 is the name of the GLSL extended instruction set.
const ExtInstSetGLSL450 = "GLSL.std.450"

// GLSLstd450 is an instruction number of the GLSL.std.450 extended set.
type GLSLstd450 uint32

// GLSL.std.450 instructions
const (
	GLSLRound           GLSLstd450 = 1
	GLSLRoundEven       GLSLstd450 = 2
	GLSLTrunc           GLSLstd450 = 3
	GLSLFAbs            GLSLstd450 = 4
	GLSLSAbs            GLSLstd450 = 5
	GLSLFSign           GLSLstd450 = 6
	GLSLSSign           GLSLstd450 = 7
	GLSLFloor           GLSLstd450 = 8
	GLSLCeil            GLSLstd450 = 9
	GLSLFract           GLSLstd450 = 10
	GLSLRadians         GLSLstd450 = 11
	GLSLDegrees         GLSLstd450 = 12
	GLSLSin             GLSLstd450 = 13
	GLSLCos             GLSLstd450 = 14
	GLSLTan             GLSLstd450 = 15
	GLSLAsin            GLSLstd450 = 16
	GLSLAcos            GLSLstd450 = 17
	GLSLAtan            GLSLstd450 = 18
	GLSLSinh            GLSLstd450 = 19
	GLSLCosh            GLSLstd450 = 20
	GLSLTanh            GLSLstd450 = 21
	GLSLAsinh           GLSLstd450 = 22
	GLSLAcosh           GLSLstd450 = 23
	GLSLAtanh           GLSLstd450 = 24
	GLSLAtan2           GLSLstd450 = 25
	GLSLPow             GLSLstd450 = 26
	GLSLExp             GLSLstd450 = 27
	GLSLLog             GLSLstd450 = 28
	GLSLExp2            GLSLstd450 = 29
	GLSLLog2            GLSLstd450 = 30
	GLSLSqrt            GLSLstd450 = 31
	GLSLInverseSqrt     GLSLstd450 = 32
	GLSLDeterminant     GLSLstd450 = 33
	GLSLMatrixInverse   GLSLstd450 = 34
	GLSLFMin            GLSLstd450 = 37
	GLSLUMin            GLSLstd450 = 38
	GLSLSMin            GLSLstd450 = 39
	GLSLFMax            GLSLstd450 = 40
	GLSLUMax            GLSLstd450 = 41
	GLSLSMax            GLSLstd450 = 42
	GLSLFClamp          GLSLstd450 = 43
	GLSLUClamp          GLSLstd450 = 44
	GLSLSClamp          GLSLstd450 = 45
	GLSLFMix            GLSLstd450 = 46
	GLSLStep            GLSLstd450 = 48
	GLSLSmoothStep      GLSLstd450 = 49
	GLSLFma             GLSLstd450 = 50
	GLSLLdexp           GLSLstd450 = 53
	GLSLPackSnorm4x8    GLSLstd450 = 54
	GLSLPackUnorm4x8    GLSLstd450 = 55
	GLSLPackSnorm2x16   GLSLstd450 = 56
	GLSLPackUnorm2x16   GLSLstd450 = 57
	GLSLPackHalf2x16    GLSLstd450 = 58
	GLSLUnpackSnorm2x16 GLSLstd450 = 60
	GLSLUnpackUnorm2x16 GLSLstd450 = 61
	GLSLUnpackHalf2x16  GLSLstd450 = 62
	GLSLUnpackSnorm4x8  GLSLstd450 = 63
	GLSLUnpackUnorm4x8  GLSLstd450 = 64
	GLSLLength          GLSLstd450 = 66
	GLSLDistance        GLSLstd450 = 67
	GLSLCross           GLSLstd450 = 68
	GLSLNormalize       GLSLstd450 = 69
	GLSLFaceForward     GLSLstd450 = 70
	GLSLReflect         GLSLstd450 = 71
	GLSLRefract         GLSLstd450 = 72
	GLSLFindILsb        GLSLstd450 = 73
	GLSLFindSMsb        GLSLstd450 = 74
	GLSLFindUMsb        GLSLstd450 = 75
	GLSLNMin            GLSLstd450 = 79
	GLSLNMax            GLSLstd450 = 80
	GLSLNClamp          GLSLstd450 = 81
)

// ImageOperands mask bits.
const (
	ImageOperandsBias         uint32 = 0x1
	ImageOperandsLod          uint32 = 0x2
	ImageOperandsGrad         uint32 = 0x4
	ImageOperandsConstOffset  uint32 = 0x8
	ImageOperandsOffset       uint32 = 0x10
	ImageOperandsConstOffsets uint32 = 0x20
	ImageOperandsSample       uint32 = 0x40
	ImageOperandsMinLod       uint32 = 0x80
)
