package spirv

import (
	"fmt"
	"math"
	"strings"
)

const (
	resultIndent = "         "
	plainIndent  = "               "
)

// Disassemble renders words as spvasm-like text. Malformed streams are
// rendered up to the first bad instruction, followed by an error comment.
func Disassemble(words []uint32) string {
	var sb strings.Builder
	if err := Validate(words); err != nil {
		fmt.Fprintf(&sb, "; ERROR: %v\n", err)
		return sb.String()
	}
	v := VersionFromWord(words[1])
	fmt.Fprintf(&sb, "; SPIR-V\n; Version: %d.%d\n; Generator: 0x%08X\n; Bound: %d\n; Schema: %d\n\n",
		v.Major, v.Minor, words[2], words[3], words[4])

	d := disassembler{sb: &sb, floatTypes: make(map[uint32]bool)}
	for pos := HeaderWords; pos < len(words); {
		count := int(words[pos] >> 16)
		if count == 0 || pos+count > len(words) {
			fmt.Fprintf(&sb, "; ERROR: invalid word count %d at word %d\n", count, pos)
			break
		}
		d.instruction(Instruction{Opcode: OpCode(words[pos] & 0xffff), Words: words[pos+1 : pos+count]})
		pos += count
	}
	return sb.String()
}

type disassembler struct {
	sb *strings.Builder
	// floatTypes tracks 32-bit float type ids so OpConstant prints as a float.
	floatTypes map[uint32]bool
}

func id(n uint32) string { return fmt.Sprintf("%%%d", n) }

func (d *disassembler) ids(ops []uint32) {
	for _, op := range ops {
		d.sb.WriteString(" " + id(op))
	}
}

func (d *disassembler) literals(ops []uint32) {
	for _, op := range ops {
		fmt.Fprintf(d.sb, " %d", op)
	}
}

func (d *disassembler) instruction(inst Instruction) {
	name := inst.Opcode.String()
	ops := inst.Words
	if err := checkOperands(inst); err != nil {
		fmt.Fprintf(d.sb, "; ERROR: %v\n", err)
		return
	}

	switch inst.Opcode {
	case OpCapability:
		fmt.Fprintf(d.sb, "%s%s %s\n", plainIndent, name, Capability(ops[0]))
		return
	case OpExtInstImport:
		s, _ := decodeString(ops[1:])
		fmt.Fprintf(d.sb, "%s%s = %s %q\n", resultIndent, id(ops[0]), name, s)
		return
	case OpMemoryModel:
		fmt.Fprintf(d.sb, "%s%s %s %s\n", plainIndent, name,
			lookup(addressingModelNames, ops[0], "AddressingModel"), lookup(memoryModelNames, ops[1], "MemoryModel"))
		return
	case OpEntryPoint:
		s, n := decodeString(ops[2:])
		fmt.Fprintf(d.sb, "%s%s %s %s %q", plainIndent, name, ExecutionModel(ops[0]), id(ops[1]), s)
		d.ids(ops[2+n:])
		d.sb.WriteByte('\n')
		return
	case OpExecutionMode, OpExecutionModeID:
		fmt.Fprintf(d.sb, "%s%s %s %s", plainIndent, name, id(ops[0]), ExecutionMode(ops[1]))
		if inst.Opcode == OpExecutionModeID {
			d.ids(ops[2:])
		} else {
			d.literals(ops[2:])
		}
		d.sb.WriteByte('\n')
		return
	case OpName:
		s, _ := decodeString(ops[1:])
		fmt.Fprintf(d.sb, "%s%s %s %q\n", plainIndent, name, id(ops[0]), s)
		return
	case OpMemberName:
		s, _ := decodeString(ops[2:])
		fmt.Fprintf(d.sb, "%s%s %s %d %q\n", plainIndent, name, id(ops[0]), ops[1], s)
		return
	case OpDecorate:
		fmt.Fprintf(d.sb, "%s%s %s %s", plainIndent, name, id(ops[0]), Decoration(ops[1]))
		d.decorationOperands(Decoration(ops[1]), ops[2:])
		return
	case OpMemberDecorate:
		fmt.Fprintf(d.sb, "%s%s %s %d %s", plainIndent, name, id(ops[0]), ops[1], Decoration(ops[2]))
		d.decorationOperands(Decoration(ops[2]), ops[3:])
		return
	case OpTypeInt, OpTypeFloat:
		fmt.Fprintf(d.sb, "%s%s = %s", resultIndent, id(ops[0]), name)
		d.literals(ops[1:])
		d.sb.WriteByte('\n')
		if inst.Opcode == OpTypeFloat && len(ops) > 1 && ops[1] == 32 {
			d.floatTypes[ops[0]] = true
		}
		return
	case OpTypeVector, OpTypeMatrix:
		fmt.Fprintf(d.sb, "%s%s = %s %s %d\n", resultIndent, id(ops[0]), name, id(ops[1]), ops[2])
		return
	case OpTypeImage:
		fmt.Fprintf(d.sb, "%s%s = %s %s %s", resultIndent, id(ops[0]), name, id(ops[1]), Dim(ops[2]))
		d.literals(ops[3:])
		d.sb.WriteByte('\n')
		return
	case OpTypePointer:
		fmt.Fprintf(d.sb, "%s%s = %s %s %s\n", resultIndent, id(ops[0]), name, StorageClass(ops[1]), id(ops[2]))
		return
	case OpConstant, OpSpecConstant:
		fmt.Fprintf(d.sb, "%s%s = %s %s", resultIndent, id(ops[1]), name, id(ops[0]))
		if d.floatTypes[ops[0]] && len(ops) == 3 {
			fmt.Fprintf(d.sb, " %g\n", math.Float32frombits(ops[2]))
			return
		}
		d.literals(ops[2:])
		d.sb.WriteByte('\n')
		return
	case OpFunction:
		fmt.Fprintf(d.sb, "%s%s = %s %s None %s\n", resultIndent, id(ops[1]), name, id(ops[0]), id(ops[3]))
		return
	case OpVariable:
		fmt.Fprintf(d.sb, "%s%s = %s %s %s", resultIndent, id(ops[1]), name, id(ops[0]), StorageClass(ops[2]))
		d.ids(ops[3:])
		d.sb.WriteByte('\n')
		return
	case OpCompositeExtract:
		fmt.Fprintf(d.sb, "%s%s = %s %s %s", resultIndent, id(ops[1]), name, id(ops[0]), id(ops[2]))
		d.literals(ops[3:])
		d.sb.WriteByte('\n')
		return
	case OpVectorShuffle:
		fmt.Fprintf(d.sb, "%s%s = %s %s %s %s", resultIndent, id(ops[1]), name, id(ops[0]), id(ops[2]), id(ops[3]))
		d.literals(ops[4:])
		d.sb.WriteByte('\n')
		return
	case OpExtInst:
		fmt.Fprintf(d.sb, "%s%s = %s %s %s %d", resultIndent, id(ops[1]), name, id(ops[0]), id(ops[2]), ops[3])
		d.ids(ops[4:])
		d.sb.WriteByte('\n')
		return
	}

	hasType, hasResult := inst.Opcode.ResultKind()
	switch {
	case hasType && hasResult:
		fmt.Fprintf(d.sb, "%s%s = %s %s", resultIndent, id(ops[1]), name, id(ops[0]))
		d.ids(ops[2:])
	case hasResult:
		fmt.Fprintf(d.sb, "%s%s = %s", resultIndent, id(ops[0]), name)
		d.ids(ops[1:])
	default:
		d.sb.WriteString(plainIndent + name)
		d.ids(ops)
	}
	d.sb.WriteByte('\n')
}

func (d *disassembler) decorationOperands(dec Decoration, ops []uint32) {
	if dec == DecorationBuiltIn && len(ops) > 0 {
		fmt.Fprintf(d.sb, " %s\n", BuiltIn(ops[0]))
		return
	}
	d.literals(ops)
	d.sb.WriteByte('\n')
}
