package spirv

import (
	"fmt"

	"go.uber.org/multierr"
)

// EntryPoint is a decoded OpEntryPoint.
type EntryPoint struct {
	Model     ExecutionModel
	Function  uint32
	Name      string
	Interface []uint32
}

// ModeDecl is one OpExecutionMode or OpExecutionModeId of an entry function.
type ModeDecl struct {
	Mode     ExecutionMode
	Operands []uint32
	// ByID is set for OpExecutionModeId, whose operands are constant ids.
	ByID bool
}

// Function is a function definition; Start and End are indices into
// Module.Instructions of its OpFunction and OpFunctionEnd.
type Function struct {
	ID         uint32
	ResultType uint32
	Type       uint32
	Params     []uint32
	Blocks     []uint32
	Start, End int
}

// Module is a parsed and indexed SPIR-V module.
type Module struct {
	Header       Header
	Instructions []Instruction
	Capabilities []Capability
	ExtInstSets  map[uint32]string
	EntryPoints  []EntryPoint
	Modes        map[uint32][]ModeDecl

	Names             map[uint32]string
	MemberNames       map[uint32]map[uint32]string
	Decorations       map[uint32]map[Decoration][]uint32
	MemberDecorations map[uint32]map[uint32]map[Decoration][]uint32

	// Defs maps each result id to the index of its defining instruction.
	Defs      map[uint32]int
	Functions map[uint32]*Function
	// Globals lists module-scope OpVariable ids in declaration order.
	Globals []uint32
}

// Parse decodes words into a Module. Every structural problem found in the
// instruction stream is reported; the module is returned only when there
// are none.
func Parse(words []uint32) (*Module, error) {
	hdr, err := DecodeHeader(words)
	if err != nil {
		return nil, err
	}
	m := &Module{
		Header:            hdr,
		ExtInstSets:       make(map[uint32]string),
		Modes:             make(map[uint32][]ModeDecl),
		Names:             make(map[uint32]string),
		MemberNames:       make(map[uint32]map[uint32]string),
		Decorations:       make(map[uint32]map[Decoration][]uint32),
		MemberDecorations: make(map[uint32]map[uint32]map[Decoration][]uint32),
		Defs:              make(map[uint32]int),
		Functions:         make(map[uint32]*Function),
	}

	var errs error
	var current *Function
	for pos := HeaderWords; pos < len(words); {
		count := int(words[pos] >> 16)
		op := OpCode(words[pos] & 0xffff)
		if count == 0 {
			errs = multierr.Append(errs, fmt.Errorf("spirv: word %d: %s has zero word count", pos, op))
			break
		}
		if pos+count > len(words) {
			errs = multierr.Append(errs, fmt.Errorf("spirv: word %d: %s overruns the module (%d words, %d left)",
				pos, op, count, len(words)-pos))
			break
		}
		inst := Instruction{Opcode: op, Words: words[pos+1 : pos+count]}
		index := len(m.Instructions)
		m.Instructions = append(m.Instructions, inst)
		pos += count

		if err := checkOperands(inst); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("spirv: instruction %d: %w", index, err))
			continue
		}
		if err := m.checkForward(inst); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("spirv: instruction %d: %w", index, err))
			continue
		}
		if id := inst.ResultID(); id != 0 {
			if id >= hdr.Bound {
				errs = multierr.Append(errs, fmt.Errorf("spirv: %s result %%%d exceeds bound %d", op, id, hdr.Bound))
			}
			if prev, dup := m.Defs[id]; dup {
				errs = multierr.Append(errs, fmt.Errorf("spirv: %%%d defined twice (instructions %d and %d)", id, prev, index))
			}
			m.Defs[id] = index
		}
		o := inst.Words

		switch op {
		case OpCapability:
			m.Capabilities = append(m.Capabilities, Capability(o[0]))
		case OpExtInstImport:
			m.ExtInstSets[o[0]], _ = decodeString(o[1:])
		case OpEntryPoint:
			name, n := decodeString(o[2:])
			m.EntryPoints = append(m.EntryPoints, EntryPoint{
				Model:     ExecutionModel(o[0]),
				Function:  o[1],
				Name:      name,
				Interface: o[2+n:],
			})
		case OpExecutionMode, OpExecutionModeID:
			m.Modes[o[0]] = append(m.Modes[o[0]], ModeDecl{
				Mode:     ExecutionMode(o[1]),
				Operands: o[2:],
				ByID:     op == OpExecutionModeID,
			})
		case OpName:
			m.Names[o[0]], _ = decodeString(o[1:])
		case OpMemberName:
			if m.MemberNames[o[0]] == nil {
				m.MemberNames[o[0]] = make(map[uint32]string)
			}
			m.MemberNames[o[0]][o[1]], _ = decodeString(o[2:])
		case OpDecorate, OpDecorateID:
			m.decorate(o[0], Decoration(o[1]), o[2:])
		case OpMemberDecorate:
			m.memberDecorate(o[0], o[1], Decoration(o[2]), o[3:])
		case OpVariable:
			if current == nil {
				m.Globals = append(m.Globals, o[1])
			}
		case OpFunction:
			if current != nil {
				errs = multierr.Append(errs, fmt.Errorf("spirv: function %%%d opened inside %%%d", o[1], current.ID))
			}
			current = &Function{ID: o[1], ResultType: o[0], Type: o[3], Start: index}
		case OpFunctionParameter:
			if current == nil {
				errs = multierr.Append(errs, fmt.Errorf("spirv: parameter %%%d outside a function", o[1]))
				continue
			}
			current.Params = append(current.Params, o[1])
		case OpLabel:
			if current == nil {
				errs = multierr.Append(errs, fmt.Errorf("spirv: label %%%d outside a function", o[0]))
				continue
			}
			current.Blocks = append(current.Blocks, o[0])
		case OpFunctionEnd:
			if current == nil {
				errs = multierr.Append(errs, fmt.Errorf("spirv: OpFunctionEnd without OpFunction"))
				continue
			}
			current.End = index
			m.Functions[current.ID] = current
			current = nil
		}
	}
	if current != nil {
		errs = multierr.Append(errs, fmt.Errorf("spirv: function %%%d is not terminated", current.ID))
	}
	for _, ep := range m.EntryPoints {
		if _, ok := m.Functions[ep.Function]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("spirv: entry point %q names undefined function %%%d", ep.Name, ep.Function))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// minWords is the minimum operand word count, result type and id included,
// of the instructions that are indexed by position after parsing.
var minWords = map[OpCode]int{
	OpCapability: 1, OpLabel: 1, OpBranch: 1, OpReturnValue: 1,

	OpName: 2, OpExtInstImport: 2, OpMemoryModel: 2,
	OpDecorate: 2, OpDecorateID: 2, OpDecorateString: 2,
	OpExecutionMode: 2, OpExecutionModeID: 2,
	OpMemberName: 3, OpEntryPoint: 3, OpMemberDecorate: 3, OpMemberDecorateString: 3,

	OpTypeFloat: 2, OpTypeSampledImage: 2, OpTypeRuntimeArray: 2, OpTypeFunction: 2,
	OpTypeInt: 3, OpTypeVector: 3, OpTypeMatrix: 3, OpTypeArray: 3, OpTypePointer: 3,
	OpTypeImage: 8,

	OpConstant: 3, OpSpecConstant: 3, OpSpecConstantOp: 3,

	OpFunction: 4, OpFunctionParameter: 2, OpFunctionCall: 3,
	OpVariable: 3, OpLoad: 3, OpStore: 2, OpCopyMemory: 2,
	OpAccessChain: 3, OpInBoundsAccessChain: 3, OpArrayLength: 4,

	OpCompositeExtract: 4, OpCompositeInsert: 5,
	OpVectorShuffle: 4, OpVectorExtractDynamic: 4, OpVectorInsertDynamic: 5,
	OpCopyObject: 3, OpCopyLogical: 3, OpTranspose: 3,
	OpExtInst: 4, OpSelect: 5,

	OpSampledImage: 4, OpImage: 3,
	OpImageSampleImplicitLod: 4, OpImageSampleExplicitLod: 4,
	OpImageSampleDrefImplicitLod: 5, OpImageSampleDrefExplicitLod: 5,
	OpImageGather: 5, OpImageDrefGather: 5,
	OpImageFetch: 4, OpImageRead: 4, OpImageWrite: 3,
	OpImageQuerySize: 3, OpImageQuerySizeLod: 4, OpImageQueryLevels: 3, OpImageQuerySamples: 3,

	OpSelectionMerge: 2, OpLoopMerge: 3, OpBranchConditional: 3, OpSwitch: 2,
	OpControlBarrier: 3, OpMemoryBarrier: 2,
}

func init() {
	for _, op := range []OpCode{
		OpSNegate, OpFNegate, OpNot, OpLogicalNot, OpAny, OpAll, OpIsNan, OpIsInf,
		OpConvertFToU, OpConvertFToS, OpConvertSToF, OpConvertUToF,
		OpUConvert, OpSConvert, OpFConvert, OpBitcast, OpBitCount,
		OpDPdx, OpDPdy, OpFwidth, OpDPdxFine, OpDPdyFine, OpFwidthFine,
		OpDPdxCoarse, OpDPdyCoarse, OpFwidthCoarse,
	} {
		minWords[op] = 3
	}
	for _, op := range []OpCode{
		OpIAdd, OpFAdd, OpISub, OpFSub, OpIMul, OpFMul, OpUDiv, OpSDiv, OpFDiv,
		OpUMod, OpSRem, OpSMod, OpFRem, OpFMod,
		OpVectorTimesScalar, OpMatrixTimesScalar, OpVectorTimesMatrix,
		OpMatrixTimesVector, OpMatrixTimesMatrix, OpOuterProduct, OpDot,
		OpLogicalEqual, OpLogicalNotEqual, OpLogicalOr, OpLogicalAnd,
		OpIEqual, OpINotEqual, OpUGreaterThan, OpSGreaterThan,
		OpUGreaterThanEqual, OpSGreaterThanEqual, OpULessThan, OpSLessThan,
		OpULessThanEqual, OpSLessThanEqual,
		OpFOrdEqual, OpFUnordEqual, OpFOrdNotEqual, OpFUnordNotEqual,
		OpFOrdLessThan, OpFUnordLessThan, OpFOrdGreaterThan, OpFUnordGreaterThan,
		OpFOrdLessThanEqual, OpFUnordLessThanEqual, OpFOrdGreaterThanEqual, OpFUnordGreaterThanEqual,
		OpShiftRightLogical, OpShiftRightArithmetic, OpShiftLeftLogical,
		OpBitwiseOr, OpBitwiseXor, OpBitwiseAnd,
	} {
		minWords[op] = 4
	}
}

// checkOperands verifies the operand count of inst against minWords, or
// against its result type and id for the other opcodes.
func checkOperands(inst Instruction) error {
	want, ok := minWords[inst.Opcode]
	if !ok {
		hasType, hasResult := inst.Opcode.ResultKind()
		if hasType {
			want++
		}
		if hasResult {
			want++
		}
	}
	if len(inst.Words) < want {
		return fmt.Errorf("%s has %d operands, want at least %d", inst.Opcode, len(inst.Words), want)
	}
	if inst.Opcode == OpPhi && (len(inst.Words)-2)%2 != 0 {
		return fmt.Errorf("OpPhi has an unpaired operand")
	}
	return nil
}

// checkForward reports a type or constant that names an id not defined
// before it. Types and constants may only refer backwards, so this also
// rules out recursive types.
func (m *Module) checkForward(inst Instruction) error {
	var refs []uint32
	ops := inst.Operands()
	switch inst.Opcode {
	case OpTypeVector, OpTypeMatrix, OpTypeImage, OpTypeSampledImage, OpTypeRuntimeArray:
		refs = ops[:1]
	case OpTypeArray:
		refs = ops[:2]
	case OpTypeStruct, OpTypeFunction, OpConstantComposite, OpSpecConstantComposite:
		refs = ops
	case OpTypePointer:
		refs = ops[1:2]
	}
	for _, ref := range refs {
		if _, ok := m.Defs[ref]; !ok {
			return fmt.Errorf("%s %%%d refers to %%%d before its definition", inst.Opcode, inst.ResultID(), ref)
		}
	}
	return nil
}

func (m *Module) decorate(id uint32, d Decoration, literals []uint32) {
	if m.Decorations[id] == nil {
		m.Decorations[id] = make(map[Decoration][]uint32)
	}
	m.Decorations[id][d] = literals
}

func (m *Module) memberDecorate(id, member uint32, d Decoration, literals []uint32) {
	if m.MemberDecorations[id] == nil {
		m.MemberDecorations[id] = make(map[uint32]map[Decoration][]uint32)
	}
	if m.MemberDecorations[id][member] == nil {
		m.MemberDecorations[id][member] = make(map[Decoration][]uint32)
	}
	m.MemberDecorations[id][member][d] = literals
}

// Def returns the instruction defining id.
func (m *Module) Def(id uint32) (Instruction, bool) {
	i, ok := m.Defs[id]
	if !ok {
		return Instruction{}, false
	}
	return m.Instructions[i], true
}

// Decoration returns the literals of decoration d on id.
func (m *Module) Decoration(id uint32, d Decoration) ([]uint32, bool) {
	lits, ok := m.Decorations[id][d]
	return lits, ok
}

// DecorationValue returns the first literal of decoration d on id.
func (m *Module) DecorationValue(id uint32, d Decoration) (uint32, bool) {
	lits, ok := m.Decorations[id][d]
	if !ok || len(lits) == 0 {
		return 0, false
	}
	return lits[0], true
}

// MemberDecoration returns the literals of decoration d on a struct member.
func (m *Module) MemberDecoration(id, member uint32, d Decoration) ([]uint32, bool) {
	lits, ok := m.MemberDecorations[id][member][d]
	return lits, ok
}

// FindEntryPoint returns the entry point with the given name and model. An
// empty name selects the first entry point of the model; ExecutionModelMax
// matches any model.
func (m *Module) FindEntryPoint(name string, model ExecutionModel) (EntryPoint, bool) {
	for _, ep := range m.EntryPoints {
		if name != "" && ep.Name != name {
			continue
		}
		if model != ExecutionModelMax && ep.Model != model {
			continue
		}
		return ep, true
	}
	return EntryPoint{}, false
}

// HasMode reports whether fn declares mode.
func (m *Module) HasMode(fn uint32, mode ExecutionMode) bool {
	_, ok := m.Mode(fn, mode)
	return ok
}

// Mode returns the declaration of mode on fn.
func (m *Module) Mode(fn uint32, mode ExecutionMode) (ModeDecl, bool) {
	for _, d := range m.Modes[fn] {
		if d.Mode == mode {
			return d, true
		}
	}
	return ModeDecl{}, false
}

// Body returns the instructions of fn between OpFunction and OpFunctionEnd.
func (m *Module) Body(fn *Function) []Instruction {
	return m.Instructions[fn.Start+1 : fn.End]
}

// ConstantValue returns the first literal word of a scalar constant or the
// default of a scalar spec constant; booleans yield 0 or 1.
func (m *Module) ConstantValue(id uint32) (uint32, bool) {
	inst, ok := m.Def(id)
	if !ok {
		return 0, false
	}
	switch inst.Opcode {
	case OpConstant, OpSpecConstant:
		ops := inst.Operands()
		if len(ops) == 0 {
			return 0, false
		}
		return ops[0], true
	case OpConstantTrue, OpSpecConstantTrue:
		return 1, true
	case OpConstantFalse, OpSpecConstantFalse, OpConstantNull:
		return 0, true
	}
	return 0, false
}

// IsSpecConstant reports whether id is defined by an OpSpecConstant* instruction.
func (m *Module) IsSpecConstant(id uint32) bool {
	inst, ok := m.Def(id)
	if !ok {
		return false
	}
	switch inst.Opcode {
	case OpSpecConstant, OpSpecConstantTrue, OpSpecConstantFalse,
		OpSpecConstantComposite, OpSpecConstantOp:
		return true
	}
	return false
}
