package spirv

import (
	"encoding/binary"
	"testing"
)

func TestBuilder_MinimalModule(t *testing.T) {
	builder := NewBuilder(Version1_3)
	builder.Capability(CapabilityShader)
	builder.MemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	data := builder.Bytes()
	if len(data) < 20 {
		t.Fatalf("Module too small: got %d bytes, want at least 20", len(data))
	}

	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != MagicNumber {
		t.Errorf("Invalid magic number: got 0x%08X, want 0x%08X", magic, MagicNumber)
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != uint32(1<<16|3<<8) {
		t.Errorf("Invalid version: got 0x%08X", version)
	}
	if generator := binary.LittleEndian.Uint32(data[8:12]); generator != GeneratorID {
		t.Errorf("Invalid generator: got 0x%08X, want 0x%08X", generator, GeneratorID)
	}
	if bound := binary.LittleEndian.Uint32(data[12:16]); bound == 0 {
		t.Error("Bound should be > 0")
	}
	if schema := binary.LittleEndian.Uint32(data[16:20]); schema != 0 {
		t.Errorf("Schema should be 0, got %d", schema)
	}
}

func TestBuilder_SectionOrder(t *testing.T) {
	builder := NewBuilder(Version1_0)

	// Emitted out of layout order on purpose.
	voidType := builder.TypeVoid()
	builder.Name(voidType, "void")
	builder.Capability(CapabilityShader)
	builder.MemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	words := builder.Words()
	var ops []OpCode
	for pos := HeaderWords; pos < len(words); pos += int(words[pos] >> 16) {
		ops = append(ops, OpCode(words[pos]&0xffff))
	}
	want := []OpCode{OpCapability, OpMemoryModel, OpName, OpTypeVoid}
	if len(ops) != len(want) {
		t.Fatalf("got %d instructions %v, want %v", len(ops), ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("instruction %d: got %s, want %s", i, ops[i], want[i])
		}
	}
}

func TestBuilder_WithTypes(t *testing.T) {
	builder := NewBuilder(Version1_3)

	voidType := builder.TypeVoid()
	floatType := builder.TypeFloat(32)
	intType := builder.TypeInt(32, true)
	vec4Type := builder.TypeVector(floatType, 4)

	seen := map[uint32]bool{}
	for _, id := range []uint32{voidType, floatType, intType, vec4Type} {
		if seen[id] {
			t.Errorf("Type ID %d allocated twice", id)
		}
		seen[id] = true
	}
	if bound := builder.Words()[3]; bound != vec4Type+1 {
		t.Errorf("Bound = %d, want %d", bound, vec4Type+1)
	}
}

func TestInstruction_StringOperand(t *testing.T) {
	tests := []struct {
		text  string
		words int
	}{
		{"", 1},
		{"abc", 1},
		{"main", 2},
		{"hello", 2},
		{"GLSL.std.450", 4},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			encoded := stringWords(tt.text)
			if len(encoded) != tt.words {
				t.Fatalf("stringWords(%q) = %d words, want %d", tt.text, len(encoded), tt.words)
			}
			got, n := decodeString(encoded)
			if got != tt.text || n != tt.words {
				t.Errorf("decodeString = (%q, %d), want (%q, %d)", got, n, tt.text, tt.words)
			}
		})
	}
}

func TestInstruction_Encode(t *testing.T) {
	inst := Instruction{Opcode: OpName, Words: append([]uint32{7}, stringWords("hello")...)}
	encoded := inst.Encode()

	if op := OpCode(encoded[0] & 0xFFFF); op != OpName {
		t.Errorf("Wrong opcode: got %s, want %s", op, OpName)
	}
	if wordCount := encoded[0] >> 16; int(wordCount) != len(encoded) {
		t.Errorf("Word count %d does not match encoding length %d", wordCount, len(encoded))
	}
}

func TestInstruction_ResultIDs(t *testing.T) {
	tests := []struct {
		name       string
		inst       Instruction
		resultType uint32
		resultID   uint32
		operands   int
	}{
		{"load", Instruction{OpLoad, []uint32{3, 9, 4}}, 3, 9, 1},
		{"type", Instruction{OpTypeVector, []uint32{5, 2, 4}}, 0, 5, 2},
		{"store", Instruction{OpStore, []uint32{4, 9}}, 0, 0, 2},
		{"label", Instruction{OpLabel, []uint32{11}}, 0, 11, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inst.ResultType(); got != tt.resultType {
				t.Errorf("ResultType = %d, want %d", got, tt.resultType)
			}
			if got := tt.inst.ResultID(); got != tt.resultID {
				t.Errorf("ResultID = %d, want %d", got, tt.resultID)
			}
			if got := len(tt.inst.Operands()); got != tt.operands {
				t.Errorf("len(Operands) = %d, want %d", got, tt.operands)
			}
		})
	}
}

func TestBuilder_IDAllocation(t *testing.T) {
	builder := NewBuilder(Version1_3)

	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	if id1 >= id2 || id2 >= id3 {
		t.Error("IDs should be strictly increasing")
	}
	if id1 == 0 {
		t.Error("IDs should never be 0")
	}
}
