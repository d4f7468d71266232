package spirv

import "math"

// Instruction is a decoded or pending SPIR-V instruction. Words holds every
// operand after the opcode word: result type id and result id first when the
// opcode has them.
type Instruction struct {
	Opcode OpCode
	Words  []uint32
}

// Encode encodes the instruction with its leading word-count/opcode word.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1)
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	return append(result, i.Words...)
}

// ResultType returns the result type id, or 0 if the opcode has none.
func (i Instruction) ResultType() uint32 {
	hasType, _ := i.Opcode.ResultKind()
	if !hasType || len(i.Words) == 0 {
		return 0
	}
	return i.Words[0]
}

// ResultID returns the result id, or 0 if the opcode has none.
func (i Instruction) ResultID() uint32 {
	hasType, hasResult := i.Opcode.ResultKind()
	switch {
	case !hasResult:
		return 0
	case hasType && len(i.Words) > 1:
		return i.Words[1]
	case !hasType && len(i.Words) > 0:
		return i.Words[0]
	}
	return 0
}

// Operands returns the words following the result type and result ids.
func (i Instruction) Operands() []uint32 {
	hasType, hasResult := i.Opcode.ResultKind()
	n := 0
	if hasType {
		n++
	}
	if hasResult {
		n++
	}
	if n > len(i.Words) {
		return nil
	}
	return i.Words[n:]
}

// stringWords encodes s as a nul-terminated, zero-padded literal string.
func stringWords(s string) []uint32 {
	data := append([]byte(s), 0)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	words := make([]uint32, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		words = append(words, uint32(data[i])|uint32(data[i+1])<<8|uint32(data[i+2])<<16|uint32(data[i+3])<<24)
	}
	return words
}

// section identifies one of the logical layout sections of a module.
type section int

const (
	secCapability section = iota
	secExtension
	secExtInstImport
	secMemoryModel
	secEntryPoint
	secExecutionMode
	secDebug
	secAnnotation
	secGlobal
	secFunction
	secCount
)

// Builder assembles a SPIR-V module in logical layout order. It is used to
// produce fixtures and hand-written shaders; it performs no validation.
type Builder struct {
	version   Version
	generator uint32
	sections  [secCount][]Instruction
	nextID    uint32
}

// NewBuilder creates a builder for a module of the given version.
func NewBuilder(version Version) *Builder {
	return &Builder{version: version, generator: GeneratorID, nextID: 1}
}

// AllocID allocates a fresh result id.
func (b *Builder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Builder) emit(sec section, op OpCode, words ...uint32) {
	b.sections[sec] = append(b.sections[sec], Instruction{Opcode: op, Words: words})
}

func (b *Builder) emitTyped(sec section, op OpCode, resultType uint32, operands ...uint32) uint32 {
	id := b.AllocID()
	b.emit(sec, op, append([]uint32{resultType, id}, operands...)...)
	return id
}

func (b *Builder) emitType(op OpCode, operands ...uint32) uint32 {
	id := b.AllocID()
	b.emit(secGlobal, op, append([]uint32{id}, operands...)...)
	return id
}

// Capability declares a capability.
func (b *Builder) Capability(c Capability) {
	b.emit(secCapability, OpCapability, uint32(c))
}

// Extension declares an extension.
func (b *Builder) Extension(name string) {
	b.emit(secExtension, OpExtension, stringWords(name)...)
}

// ExtInstImport imports an extended instruction set and returns its id.
func (b *Builder) ExtInstImport(name string) uint32 {
	id := b.AllocID()
	b.emit(secExtInstImport, OpExtInstImport, append([]uint32{id}, stringWords(name)...)...)
	return id
}

// MemoryModel sets the addressing and memory model.
func (b *Builder) MemoryModel(addressing AddressingModel, memory MemoryModel) {
	b.sections[secMemoryModel] = nil
	b.emit(secMemoryModel, OpMemoryModel, uint32(addressing), uint32(memory))
}

// EntryPoint declares an entry point with its interface variables.
func (b *Builder) EntryPoint(model ExecutionModel, function uint32, name string, iface ...uint32) {
	words := append([]uint32{uint32(model), function}, stringWords(name)...)
	b.emit(secEntryPoint, OpEntryPoint, append(words, iface...)...)
}

// ExecutionMode declares an execution mode with literal operands.
func (b *Builder) ExecutionMode(function uint32, mode ExecutionMode, literals ...uint32) {
	b.emit(secExecutionMode, OpExecutionMode, append([]uint32{function, uint32(mode)}, literals...)...)
}

// ExecutionModeID declares an execution mode whose operands are ids.
func (b *Builder) ExecutionModeID(function uint32, mode ExecutionMode, ids ...uint32) {
	b.emit(secExecutionMode, OpExecutionModeID, append([]uint32{function, uint32(mode)}, ids...)...)
}

// Name attaches a debug name to id.
func (b *Builder) Name(id uint32, name string) {
	b.emit(secDebug, OpName, append([]uint32{id}, stringWords(name)...)...)
}

// MemberName attaches a debug name to a struct member.
func (b *Builder) MemberName(structID, member uint32, name string) {
	b.emit(secDebug, OpMemberName, append([]uint32{structID, member}, stringWords(name)...)...)
}

// Decorate decorates id.
func (b *Builder) Decorate(id uint32, decoration Decoration, literals ...uint32) {
	b.emit(secAnnotation, OpDecorate, append([]uint32{id, uint32(decoration)}, literals...)...)
}

// MemberDecorate decorates a struct member.
func (b *Builder) MemberDecorate(structID, member uint32, decoration Decoration, literals ...uint32) {
	b.emit(secAnnotation, OpMemberDecorate, append([]uint32{structID, member, uint32(decoration)}, literals...)...)
}

// TypeVoid declares OpTypeVoid.
func (b *Builder) TypeVoid() uint32 { return b.emitType(OpTypeVoid) }

// TypeBool declares OpTypeBool.
func (b *Builder) TypeBool() uint32 { return b.emitType(OpTypeBool) }

// TypeInt declares an integer type.
func (b *Builder) TypeInt(width uint32, signed bool) uint32 {
	var s uint32
	if signed {
		s = 1
	}
	return b.emitType(OpTypeInt, width, s)
}

// TypeFloat declares a float type.
func (b *Builder) TypeFloat(width uint32) uint32 { return b.emitType(OpTypeFloat, width) }

// TypeVector declares a vector type.
func (b *Builder) TypeVector(component, count uint32) uint32 {
	return b.emitType(OpTypeVector, component, count)
}

// TypeMatrix declares a matrix type of columnCount columns.
func (b *Builder) TypeMatrix(column, columnCount uint32) uint32 {
	return b.emitType(OpTypeMatrix, column, columnCount)
}

// ImageDesc describes the operands of OpTypeImage.
type ImageDesc struct {
	SampledType uint32
	Dim         Dim
	Depth       bool
	Arrayed     bool
	MS          bool
	// Sampled is 1 for sampled images and 2 for storage images.
	Sampled uint32
	Format  ImageFormat
}

// TypeImage declares an image type.
func (b *Builder) TypeImage(d ImageDesc) uint32 {
	return b.emitType(OpTypeImage, d.SampledType, uint32(d.Dim), boolWord(d.Depth),
		boolWord(d.Arrayed), boolWord(d.MS), d.Sampled, uint32(d.Format))
}

// TypeSampler declares OpTypeSampler.
func (b *Builder) TypeSampler() uint32 { return b.emitType(OpTypeSampler) }

// TypeSampledImage declares a combined image-sampler type.
func (b *Builder) TypeSampledImage(image uint32) uint32 {
	return b.emitType(OpTypeSampledImage, image)
}

// TypeArray declares an array type; length is the id of a constant.
func (b *Builder) TypeArray(element, length uint32) uint32 {
	return b.emitType(OpTypeArray, element, length)
}

// TypeRuntimeArray declares a runtime-sized array type.
func (b *Builder) TypeRuntimeArray(element uint32) uint32 {
	return b.emitType(OpTypeRuntimeArray, element)
}

// TypeStruct declares a struct type.
func (b *Builder) TypeStruct(members ...uint32) uint32 {
	return b.emitType(OpTypeStruct, members...)
}

// TypePointer declares a pointer type.
func (b *Builder) TypePointer(class StorageClass, base uint32) uint32 {
	return b.emitType(OpTypePointer, uint32(class), base)
}

// TypeFunction declares a function type.
func (b *Builder) TypeFunction(result uint32, params ...uint32) uint32 {
	return b.emitType(OpTypeFunction, append([]uint32{result}, params...)...)
}

// Constant declares a scalar constant from raw literal words.
func (b *Builder) Constant(typeID uint32, literals ...uint32) uint32 {
	return b.emitTyped(secGlobal, OpConstant, typeID, literals...)
}

// ConstantFloat32 declares a 32-bit float constant.
func (b *Builder) ConstantFloat32(typeID uint32, v float32) uint32 {
	return b.Constant(typeID, math.Float32bits(v))
}

// ConstantBool declares OpConstantTrue or OpConstantFalse.
func (b *Builder) ConstantBool(typeID uint32, v bool) uint32 {
	if v {
		return b.emitTyped(secGlobal, OpConstantTrue, typeID)
	}
	return b.emitTyped(secGlobal, OpConstantFalse, typeID)
}

// ConstantComposite declares a composite constant.
func (b *Builder) ConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	return b.emitTyped(secGlobal, OpConstantComposite, typeID, constituents...)
}

// ConstantNull declares a zero value of typeID.
func (b *Builder) ConstantNull(typeID uint32) uint32 {
	return b.emitTyped(secGlobal, OpConstantNull, typeID)
}

// SpecConstant declares a scalar specialization constant.
func (b *Builder) SpecConstant(typeID uint32, literals ...uint32) uint32 {
	return b.emitTyped(secGlobal, OpSpecConstant, typeID, literals...)
}

// SpecConstantComposite declares a composite specialization constant.
func (b *Builder) SpecConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	return b.emitTyped(secGlobal, OpSpecConstantComposite, typeID, constituents...)
}

// Variable declares a module-scope variable with an optional initializer.
func (b *Builder) Variable(pointerType uint32, class StorageClass, init ...uint32) uint32 {
	return b.emitTyped(secGlobal, OpVariable, pointerType, append([]uint32{uint32(class)}, init...)...)
}

// LocalVariable declares a Function storage variable; it must directly
// follow the first label of a function.
func (b *Builder) LocalVariable(pointerType uint32) uint32 {
	return b.emitTyped(secFunction, OpVariable, pointerType, uint32(StorageClassFunction))
}

// Function opens a function definition.
func (b *Builder) Function(resultType, functionType uint32, control FunctionControl) uint32 {
	return b.emitTyped(secFunction, OpFunction, resultType, uint32(control), functionType)
}

// FunctionParameter declares the next parameter of the open function.
func (b *Builder) FunctionParameter(typeID uint32) uint32 {
	return b.emitTyped(secFunction, OpFunctionParameter, typeID)
}

// FunctionEnd closes the open function.
func (b *Builder) FunctionEnd() { b.emit(secFunction, OpFunctionEnd) }

// Label opens a block and returns its id.
func (b *Builder) Label() uint32 {
	id := b.AllocID()
	b.LabelID(id)
	return id
}

// LabelID opens a block with a previously allocated id.
func (b *Builder) LabelID(id uint32) { b.emit(secFunction, OpLabel, id) }

// Op emits a function-body instruction with a result and returns the
// result id.
func (b *Builder) Op(op OpCode, resultType uint32, operands ...uint32) uint32 {
	return b.emitTyped(secFunction, op, resultType, operands...)
}

// Inst emits a function-body instruction without a result.
func (b *Builder) Inst(op OpCode, operands ...uint32) {
	b.emit(secFunction, op, operands...)
}

// Load emits OpLoad.
func (b *Builder) Load(resultType, pointer uint32) uint32 {
	return b.Op(OpLoad, resultType, pointer)
}

// Store emits OpStore.
func (b *Builder) Store(pointer, value uint32) { b.Inst(OpStore, pointer, value) }

// AccessChain emits OpAccessChain.
func (b *Builder) AccessChain(resultType, base uint32, indices ...uint32) uint32 {
	return b.Op(OpAccessChain, resultType, append([]uint32{base}, indices...)...)
}

// CompositeConstruct emits OpCompositeConstruct.
func (b *Builder) CompositeConstruct(resultType uint32, constituents ...uint32) uint32 {
	return b.Op(OpCompositeConstruct, resultType, constituents...)
}

// CompositeExtract emits OpCompositeExtract with literal indices.
func (b *Builder) CompositeExtract(resultType, composite uint32, indices ...uint32) uint32 {
	return b.Op(OpCompositeExtract, resultType, append([]uint32{composite}, indices...)...)
}

// VectorShuffle emits OpVectorShuffle.
func (b *Builder) VectorShuffle(resultType, v1, v2 uint32, components ...uint32) uint32 {
	return b.Op(OpVectorShuffle, resultType, append([]uint32{v1, v2}, components...)...)
}

// ExtInst emits OpExtInst.
func (b *Builder) ExtInst(resultType, set uint32, inst GLSLstd450, operands ...uint32) uint32 {
	return b.Op(OpExtInst, resultType, append([]uint32{set, uint32(inst)}, operands...)...)
}

// SelectionMerge emits OpSelectionMerge.
func (b *Builder) SelectionMerge(merge uint32, control SelectionControl) {
	b.Inst(OpSelectionMerge, merge, uint32(control))
}

// LoopMerge emits OpLoopMerge.
func (b *Builder) LoopMerge(merge, cont uint32, control LoopControl) {
	b.Inst(OpLoopMerge, merge, cont, uint32(control))
}

// Branch emits OpBranch.
func (b *Builder) Branch(target uint32) { b.Inst(OpBranch, target) }

// BranchConditional emits OpBranchConditional.
func (b *Builder) BranchConditional(cond, trueLabel, falseLabel uint32) {
	b.Inst(OpBranchConditional, cond, trueLabel, falseLabel)
}

// Kill emits OpKill.
func (b *Builder) Kill() { b.Inst(OpKill) }

// Return emits OpReturn.
func (b *Builder) Return() { b.Inst(OpReturn) }

// ReturnValue emits OpReturnValue.
func (b *Builder) ReturnValue(value uint32) { b.Inst(OpReturnValue, value) }

// Words returns the encoded module.
func (b *Builder) Words() []uint32 {
	words := []uint32{MagicNumber, b.version.Word(), b.generator, b.nextID, 0}
	for _, sec := range b.sections {
		for _, inst := range sec {
			words = append(words, inst.Encode()...)
		}
	}
	return words
}

// Bytes returns the encoded module as a little-endian binary.
func (b *Builder) Bytes() []byte { return Bytes(b.Words()) }

func boolWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
