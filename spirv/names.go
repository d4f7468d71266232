package spirv

import "fmt"

var opcodeNames = map[uint32]string{
	uint32(OpNop):                        "OpNop",
	uint32(OpUndef):                      "OpUndef",
	uint32(OpSourceContinued):            "OpSourceContinued",
	uint32(OpSource):                     "OpSource",
	uint32(OpSourceExtension):            "OpSourceExtension",
	uint32(OpName):                       "OpName",
	uint32(OpMemberName):                 "OpMemberName",
	uint32(OpString):                     "OpString",
	uint32(OpLine):                       "OpLine",
	uint32(OpExtension):                  "OpExtension",
	uint32(OpExtInstImport):              "OpExtInstImport",
	uint32(OpExtInst):                    "OpExtInst",
	uint32(OpMemoryModel):                "OpMemoryModel",
	uint32(OpEntryPoint):                 "OpEntryPoint",
	uint32(OpExecutionMode):              "OpExecutionMode",
	uint32(OpCapability):                 "OpCapability",
	uint32(OpTypeVoid):                   "OpTypeVoid",
	uint32(OpTypeBool):                   "OpTypeBool",
	uint32(OpTypeInt):                    "OpTypeInt",
	uint32(OpTypeFloat):                  "OpTypeFloat",
	uint32(OpTypeVector):                 "OpTypeVector",
	uint32(OpTypeMatrix):                 "OpTypeMatrix",
	uint32(OpTypeImage):                  "OpTypeImage",
	uint32(OpTypeSampler):                "OpTypeSampler",
	uint32(OpTypeSampledImage):           "OpTypeSampledImage",
	uint32(OpTypeArray):                  "OpTypeArray",
	uint32(OpTypeRuntimeArray):           "OpTypeRuntimeArray",
	uint32(OpTypeStruct):                 "OpTypeStruct",
	uint32(OpTypeOpaque):                 "OpTypeOpaque",
	uint32(OpTypePointer):                "OpTypePointer",
	uint32(OpTypeFunction):               "OpTypeFunction",
	uint32(OpConstantTrue):               "OpConstantTrue",
	uint32(OpConstantFalse):              "OpConstantFalse",
	uint32(OpConstant):                   "OpConstant",
	uint32(OpConstantComposite):          "OpConstantComposite",
	uint32(OpConstantSampler):            "OpConstantSampler",
	uint32(OpConstantNull):               "OpConstantNull",
	uint32(OpSpecConstantTrue):           "OpSpecConstantTrue",
	uint32(OpSpecConstantFalse):          "OpSpecConstantFalse",
	uint32(OpSpecConstant):               "OpSpecConstant",
	uint32(OpSpecConstantComposite):      "OpSpecConstantComposite",
	uint32(OpSpecConstantOp):             "OpSpecConstantOp",
	uint32(OpFunction):                   "OpFunction",
	uint32(OpFunctionParameter):          "OpFunctionParameter",
	uint32(OpFunctionEnd):                "OpFunctionEnd",
	uint32(OpFunctionCall):               "OpFunctionCall",
	uint32(OpVariable):                   "OpVariable",
	uint32(OpImageTexelPointer):          "OpImageTexelPointer",
	uint32(OpLoad):                       "OpLoad",
	uint32(OpStore):                      "OpStore",
	uint32(OpCopyMemory):                 "OpCopyMemory",
	uint32(OpCopyMemorySized):            "OpCopyMemorySized",
	uint32(OpAccessChain):                "OpAccessChain",
	uint32(OpInBoundsAccessChain):        "OpInBoundsAccessChain",
	uint32(OpPtrAccessChain):             "OpPtrAccessChain",
	uint32(OpArrayLength):                "OpArrayLength",
	uint32(OpDecorate):                   "OpDecorate",
	uint32(OpMemberDecorate):             "OpMemberDecorate",
	uint32(OpDecorationGroup):            "OpDecorationGroup",
	uint32(OpGroupDecorate):              "OpGroupDecorate",
	uint32(OpGroupMemberDecorate):        "OpGroupMemberDecorate",
	uint32(OpVectorExtractDynamic):       "OpVectorExtractDynamic",
	uint32(OpVectorInsertDynamic):        "OpVectorInsertDynamic",
	uint32(OpVectorShuffle):              "OpVectorShuffle",
	uint32(OpCompositeConstruct):         "OpCompositeConstruct",
	uint32(OpCompositeExtract):           "OpCompositeExtract",
	uint32(OpCompositeInsert):            "OpCompositeInsert",
	uint32(OpCopyObject):                 "OpCopyObject",
	uint32(OpTranspose):                  "OpTranspose",
	uint32(OpSampledImage):               "OpSampledImage",
	uint32(OpImageSampleImplicitLod):     "OpImageSampleImplicitLod",
	uint32(OpImageSampleExplicitLod):     "OpImageSampleExplicitLod",
	uint32(OpImageSampleDrefImplicitLod): "OpImageSampleDrefImplicitLod",
	uint32(OpImageSampleDrefExplicitLod): "OpImageSampleDrefExplicitLod",
	uint32(OpImageSampleProjImplicitLod): "OpImageSampleProjImplicitLod",
	uint32(OpImageFetch):                 "OpImageFetch",
	uint32(OpImageGather):                "OpImageGather",
	uint32(OpImageDrefGather):            "OpImageDrefGather",
	uint32(OpImageRead):                  "OpImageRead",
	uint32(OpImageWrite):                 "OpImageWrite",
	uint32(OpImage):                      "OpImage",
	uint32(OpImageQuerySizeLod):          "OpImageQuerySizeLod",
	uint32(OpImageQuerySize):             "OpImageQuerySize",
	uint32(OpImageQueryLevels):           "OpImageQueryLevels",
	uint32(OpImageQuerySamples):          "OpImageQuerySamples",
	uint32(OpConvertFToU):                "OpConvertFToU",
	uint32(OpConvertFToS):                "OpConvertFToS",
	uint32(OpConvertSToF):                "OpConvertSToF",
	uint32(OpConvertUToF):                "OpConvertUToF",
	uint32(OpUConvert):                   "OpUConvert",
	uint32(OpSConvert):                   "OpSConvert",
	uint32(OpFConvert):                   "OpFConvert",
	uint32(OpBitcast):                    "OpBitcast",
	uint32(OpSNegate):                    "OpSNegate",
	uint32(OpFNegate):                    "OpFNegate",
	uint32(OpIAdd):                       "OpIAdd",
	uint32(OpFAdd):                       "OpFAdd",
	uint32(OpISub):                       "OpISub",
	uint32(OpFSub):                       "OpFSub",
	uint32(OpIMul):                       "OpIMul",
	uint32(OpFMul):                       "OpFMul",
	uint32(OpUDiv):                       "OpUDiv",
	uint32(OpSDiv):                       "OpSDiv",
	uint32(OpFDiv):                       "OpFDiv",
	uint32(OpUMod):                       "OpUMod",
	uint32(OpSRem):                       "OpSRem",
	uint32(OpSMod):                       "OpSMod",
	uint32(OpFRem):                       "OpFRem",
	uint32(OpFMod):                       "OpFMod",
	uint32(OpVectorTimesScalar):          "OpVectorTimesScalar",
	uint32(OpMatrixTimesScalar):          "OpMatrixTimesScalar",
	uint32(OpVectorTimesMatrix):          "OpVectorTimesMatrix",
	uint32(OpMatrixTimesVector):          "OpMatrixTimesVector",
	uint32(OpMatrixTimesMatrix):          "OpMatrixTimesMatrix",
	uint32(OpOuterProduct):               "OpOuterProduct",
	uint32(OpDot):                        "OpDot",
	uint32(OpAny):                        "OpAny",
	uint32(OpAll):                        "OpAll",
	uint32(OpIsNan):                      "OpIsNan",
	uint32(OpIsInf):                      "OpIsInf",
	uint32(OpLogicalEqual):               "OpLogicalEqual",
	uint32(OpLogicalNotEqual):            "OpLogicalNotEqual",
	uint32(OpLogicalOr):                  "OpLogicalOr",
	uint32(OpLogicalAnd):                 "OpLogicalAnd",
	uint32(OpLogicalNot):                 "OpLogicalNot",
	uint32(OpSelect):                     "OpSelect",
	uint32(OpIEqual):                     "OpIEqual",
	uint32(OpINotEqual):                  "OpINotEqual",
	uint32(OpUGreaterThan):               "OpUGreaterThan",
	uint32(OpSGreaterThan):               "OpSGreaterThan",
	uint32(OpUGreaterThanEqual):          "OpUGreaterThanEqual",
	uint32(OpSGreaterThanEqual):          "OpSGreaterThanEqual",
	uint32(OpULessThan):                  "OpULessThan",
	uint32(OpSLessThan):                  "OpSLessThan",
	uint32(OpULessThanEqual):             "OpULessThanEqual",
	uint32(OpSLessThanEqual):             "OpSLessThanEqual",
	uint32(OpFOrdEqual):                  "OpFOrdEqual",
	uint32(OpFUnordEqual):                "OpFUnordEqual",
	uint32(OpFOrdNotEqual):               "OpFOrdNotEqual",
	uint32(OpFUnordNotEqual):             "OpFUnordNotEqual",
	uint32(OpFOrdLessThan):               "OpFOrdLessThan",
	uint32(OpFUnordLessThan):             "OpFUnordLessThan",
	uint32(OpFOrdGreaterThan):            "OpFOrdGreaterThan",
	uint32(OpFUnordGreaterThan):          "OpFUnordGreaterThan",
	uint32(OpFOrdLessThanEqual):          "OpFOrdLessThanEqual",
	uint32(OpFUnordLessThanEqual):        "OpFUnordLessThanEqual",
	uint32(OpFOrdGreaterThanEqual):       "OpFOrdGreaterThanEqual",
	uint32(OpFUnordGreaterThanEqual):     "OpFUnordGreaterThanEqual",
	uint32(OpShiftRightLogical):          "OpShiftRightLogical",
	uint32(OpShiftRightArithmetic):       "OpShiftRightArithmetic",
	uint32(OpShiftLeftLogical):           "OpShiftLeftLogical",
	uint32(OpBitwiseOr):                  "OpBitwiseOr",
	uint32(OpBitwiseXor):                 "OpBitwiseXor",
	uint32(OpBitwiseAnd):                 "OpBitwiseAnd",
	uint32(OpNot):                        "OpNot",
	uint32(OpBitCount):                   "OpBitCount",
	uint32(OpDPdx):                       "OpDPdx",
	uint32(OpDPdy):                       "OpDPdy",
	uint32(OpFwidth):                     "OpFwidth",
	uint32(OpDPdxFine):                   "OpDPdxFine",
	uint32(OpDPdyFine):                   "OpDPdyFine",
	uint32(OpFwidthFine):                 "OpFwidthFine",
	uint32(OpDPdxCoarse):                 "OpDPdxCoarse",
	uint32(OpDPdyCoarse):                 "OpDPdyCoarse",
	uint32(OpFwidthCoarse):               "OpFwidthCoarse",
	uint32(OpEmitVertex):                 "OpEmitVertex",
	uint32(OpEndPrimitive):               "OpEndPrimitive",
	uint32(OpControlBarrier):             "OpControlBarrier",
	uint32(OpMemoryBarrier):              "OpMemoryBarrier",
	uint32(OpAtomicLoad):                 "OpAtomicLoad",
	uint32(OpAtomicStore):                "OpAtomicStore",
	uint32(OpAtomicIAdd):                 "OpAtomicIAdd",
	uint32(OpPhi):                        "OpPhi",
	uint32(OpLoopMerge):                  "OpLoopMerge",
	uint32(OpSelectionMerge):             "OpSelectionMerge",
	uint32(OpLabel):                      "OpLabel",
	uint32(OpBranch):                     "OpBranch",
	uint32(OpBranchConditional):          "OpBranchConditional",
	uint32(OpSwitch):                     "OpSwitch",
	uint32(OpKill):                       "OpKill",
	uint32(OpReturn):                     "OpReturn",
	uint32(OpReturnValue):                "OpReturnValue",
	uint32(OpUnreachable):                "OpUnreachable",
	uint32(OpLifetimeStart):              "OpLifetimeStart",
	uint32(OpLifetimeStop):               "OpLifetimeStop",
	uint32(OpNoLine):                     "OpNoLine",
	uint32(OpModuleProcessed):            "OpModuleProcessed",
	uint32(OpExecutionModeID):            "OpExecutionModeId",
	uint32(OpDecorateID):                 "OpDecorateId",
	uint32(OpCopyLogical):                "OpCopyLogical",
	uint32(OpTerminateInvocation):        "OpTerminateInvocation",
	uint32(OpDemoteToHelperInvocation):   "OpDemoteToHelperInvocation",
	uint32(OpDecorateString):             "OpDecorateString",
	uint32(OpMemberDecorateString):       "OpMemberDecorateString",
}

var decorationNames = map[uint32]string{
	uint32(DecorationRelaxedPrecision):     "RelaxedPrecision",
	uint32(DecorationSpecID):               "SpecId",
	uint32(DecorationBlock):                "Block",
	uint32(DecorationBufferBlock):          "BufferBlock",
	uint32(DecorationRowMajor):             "RowMajor",
	uint32(DecorationColMajor):             "ColMajor",
	uint32(DecorationArrayStride):          "ArrayStride",
	uint32(DecorationMatrixStride):         "MatrixStride",
	uint32(DecorationBuiltIn):              "BuiltIn",
	uint32(DecorationNoPerspective):        "NoPerspective",
	uint32(DecorationFlat):                 "Flat",
	uint32(DecorationPatch):                "Patch",
	uint32(DecorationCentroid):             "Centroid",
	uint32(DecorationSample):               "Sample",
	uint32(DecorationInvariant):            "Invariant",
	uint32(DecorationNonWritable):          "NonWritable",
	uint32(DecorationNonReadable):          "NonReadable",
	uint32(DecorationLocation):             "Location",
	uint32(DecorationComponent):            "Component",
	uint32(DecorationIndex):                "Index",
	uint32(DecorationBinding):              "Binding",
	uint32(DecorationDescriptorSet):        "DescriptorSet",
	uint32(DecorationOffset):               "Offset",
	uint32(DecorationInputAttachmentIndex): "InputAttachmentIndex",
}

var executionModelNames = map[uint32]string{
	uint32(ExecutionModelVertex):                 "Vertex",
	uint32(ExecutionModelTessellationControl):    "TessellationControl",
	uint32(ExecutionModelTessellationEvaluation): "TessellationEvaluation",
	uint32(ExecutionModelGeometry):               "Geometry",
	uint32(ExecutionModelFragment):               "Fragment",
	uint32(ExecutionModelGLCompute):              "GLCompute",
	uint32(ExecutionModelKernel):                 "Kernel",
}

var executionModeNames = map[uint32]string{
	uint32(ExecutionModeInvocations):              "Invocations",
	uint32(ExecutionModeSpacingEqual):             "SpacingEqual",
	uint32(ExecutionModeSpacingFractionalEven):    "SpacingFractionalEven",
	uint32(ExecutionModeSpacingFractionalOdd):     "SpacingFractionalOdd",
	uint32(ExecutionModeVertexOrderCw):            "VertexOrderCw",
	uint32(ExecutionModeVertexOrderCcw):           "VertexOrderCcw",
	uint32(ExecutionModePixelCenterInteger):       "PixelCenterInteger",
	uint32(ExecutionModeOriginUpperLeft):          "OriginUpperLeft",
	uint32(ExecutionModeOriginLowerLeft):          "OriginLowerLeft",
	uint32(ExecutionModeEarlyFragmentTests):       "EarlyFragmentTests",
	uint32(ExecutionModePointMode):                "PointMode",
	uint32(ExecutionModeXfb):                      "Xfb",
	uint32(ExecutionModeDepthReplacing):           "DepthReplacing",
	uint32(ExecutionModeDepthGreater):             "DepthGreater",
	uint32(ExecutionModeDepthLess):                "DepthLess",
	uint32(ExecutionModeDepthUnchanged):           "DepthUnchanged",
	uint32(ExecutionModeLocalSize):                "LocalSize",
	uint32(ExecutionModeLocalSizeHint):            "LocalSizeHint",
	uint32(ExecutionModeInputPoints):              "InputPoints",
	uint32(ExecutionModeInputLines):               "InputLines",
	uint32(ExecutionModeTriangles):                "Triangles",
	uint32(ExecutionModeQuads):                    "Quads",
	uint32(ExecutionModeIsolines):                 "Isolines",
	uint32(ExecutionModeOutputVertices):           "OutputVertices",
	uint32(ExecutionModeOutputPoints):             "OutputPoints",
	uint32(ExecutionModeOutputLineStrip):          "OutputLineStrip",
	uint32(ExecutionModeOutputTriangleStrip):      "OutputTriangleStrip",
	uint32(ExecutionModeContractionOff):           "ContractionOff",
	uint32(ExecutionModeLocalSizeID):              "LocalSizeId",
	uint32(ExecutionModeDenormPreserve):           "DenormPreserve",
	uint32(ExecutionModeDenormFlushToZero):        "DenormFlushToZero",
	uint32(ExecutionModeSignedZeroInfNanPreserve): "SignedZeroInfNanPreserve",
	uint32(ExecutionModeRoundingModeRTE):          "RoundingModeRTE",
	uint32(ExecutionModeRoundingModeRTZ):          "RoundingModeRTZ",
}

var storageClassNames = map[uint32]string{
	uint32(StorageClassUniformConstant): "UniformConstant",
	uint32(StorageClassInput):           "Input",
	uint32(StorageClassUniform):         "Uniform",
	uint32(StorageClassOutput):          "Output",
	uint32(StorageClassWorkgroup):       "Workgroup",
	uint32(StorageClassCrossWorkgroup):  "CrossWorkgroup",
	uint32(StorageClassPrivate):         "Private",
	uint32(StorageClassFunction):        "Function",
	uint32(StorageClassGeneric):         "Generic",
	uint32(StorageClassPushConstant):    "PushConstant",
	uint32(StorageClassAtomicCounter):   "AtomicCounter",
	uint32(StorageClassImage):           "Image",
	uint32(StorageClassStorageBuffer):   "StorageBuffer",
}

var builtinNames = map[uint32]string{
	uint32(BuiltInPosition):             "Position",
	uint32(BuiltInPointSize):            "PointSize",
	uint32(BuiltInClipDistance):         "ClipDistance",
	uint32(BuiltInCullDistance):         "CullDistance",
	uint32(BuiltInVertexID):             "VertexId",
	uint32(BuiltInInstanceID):           "InstanceId",
	uint32(BuiltInPrimitiveID):          "PrimitiveId",
	uint32(BuiltInInvocationID):         "InvocationId",
	uint32(BuiltInLayer):                "Layer",
	uint32(BuiltInViewportIndex):        "ViewportIndex",
	uint32(BuiltInTessLevelOuter):       "TessLevelOuter",
	uint32(BuiltInTessLevelInner):       "TessLevelInner",
	uint32(BuiltInTessCoord):            "TessCoord",
	uint32(BuiltInPatchVertices):        "PatchVertices",
	uint32(BuiltInFragCoord):            "FragCoord",
	uint32(BuiltInPointCoord):           "PointCoord",
	uint32(BuiltInFrontFacing):          "FrontFacing",
	uint32(BuiltInSampleID):             "SampleId",
	uint32(BuiltInSamplePosition):       "SamplePosition",
	uint32(BuiltInSampleMask):           "SampleMask",
	uint32(BuiltInFragDepth):            "FragDepth",
	uint32(BuiltInHelperInvocation):     "HelperInvocation",
	uint32(BuiltInNumWorkgroups):        "NumWorkgroups",
	uint32(BuiltInWorkgroupSize):        "WorkgroupSize",
	uint32(BuiltInWorkgroupID):          "WorkgroupId",
	uint32(BuiltInLocalInvocationID):    "LocalInvocationId",
	uint32(BuiltInGlobalInvocationID):   "GlobalInvocationId",
	uint32(BuiltInLocalInvocationIndex): "LocalInvocationIndex",
	uint32(BuiltInSubgroupSize):         "SubgroupSize",
	uint32(BuiltInNumSubgroups):         "NumSubgroups",
	uint32(BuiltInSubgroupID):           "SubgroupId",
	uint32(BuiltInVertexIndex):          "VertexIndex",
	uint32(BuiltInInstanceIndex):        "InstanceIndex",
	uint32(BuiltInBaseVertex):           "BaseVertex",
	uint32(BuiltInBaseInstance):         "BaseInstance",
	uint32(BuiltInDrawIndex):            "DrawIndex",
	uint32(BuiltInDeviceIndex):          "DeviceIndex",
	uint32(BuiltInViewIndex):            "ViewIndex",
}

var dimNames = map[uint32]string{
	uint32(Dim1D):          "1D",
	uint32(Dim2D):          "2D",
	uint32(Dim3D):          "3D",
	uint32(DimCube):        "Cube",
	uint32(DimRect):        "Rect",
	uint32(DimBuffer):      "Buffer",
	uint32(DimSubpassData): "SubpassData",
}

var capabilityNames = map[uint32]string{
	uint32(CapabilityMatrix):       "Matrix",
	uint32(CapabilityShader):       "Shader",
	uint32(CapabilityGeometry):     "Geometry",
	uint32(CapabilityTessellation): "Tessellation",
	uint32(CapabilityFloat16):      "Float16",
	uint32(CapabilityFloat64):      "Float64",
	uint32(CapabilityInt16):        "Int16",
	uint32(CapabilityClipDistance): "ClipDistance",
	uint32(CapabilityImageQuery):   "ImageQuery",
	uint32(CapabilityMultiView):    "MultiView",
}

var addressingModelNames = map[uint32]string{
	uint32(AddressingModelLogical):    "Logical",
	uint32(AddressingModelPhysical32): "Physical32",
	uint32(AddressingModelPhysical64): "Physical64",
}

var memoryModelNames = map[uint32]string{
	uint32(MemoryModelSimple):  "Simple",
	uint32(MemoryModelGLSL450): "GLSL450",
	uint32(MemoryModelOpenCL):  "OpenCL",
	uint32(MemoryModelVulkan):  "Vulkan",
}

// lookup returns the table name of v, or prefix followed by the number.
func lookup(m map[uint32]string, v uint32, prefix string) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%s%d", prefix, v)
}
