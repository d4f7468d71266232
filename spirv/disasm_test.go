package spirv_test

import (
	"strings"
	"testing"

	"github.com/gogpu/spvmsl/spirv"
	"github.com/gogpu/spvmsl/spirv/spirvtest"
)

func TestDisassemble(t *testing.T) {
	text := spirv.Disassemble(spirvtest.Compute(false))

	for _, want := range []string{
		"; SPIR-V",
		"; Version: 1.3",
		"OpCapability Shader",
		"OpMemoryModel Logical GLSL450",
		`OpEntryPoint GLCompute`,
		`"main"`,
		"OpExecutionMode",
		"LocalSize 8 4 1",
		"OpDecorate",
		"BuiltIn GlobalInvocationId",
		"OpTypeRuntimeArray",
		"OpTypePointer StorageBuffer",
		"OpArrayLength",
		"OpIAdd",
		"OpFunctionEnd",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("disassembly missing %q:\n%s", want, text)
		}
	}
}

func TestDisassemble_FloatConstant(t *testing.T) {
	text := spirv.Disassemble(spirvtest.Fragment())
	if !strings.Contains(text, "OpConstant %") || !strings.Contains(text, " 0.5") {
		t.Errorf("float constant not rendered as a float:\n%s", text)
	}
}

func TestDisassemble_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		want  string
	}{
		{"bad header", []uint32{1, 2, 3}, "; ERROR:"},
		{"bad word count", []uint32{spirv.MagicNumber, 0x10000, 0, 1, 0, 0}, "invalid word count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spirv.Disassemble(tt.words); !strings.Contains(got, tt.want) {
				t.Errorf("Disassemble() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{spirv.OpFMul.String(), "OpFMul"},
		{spirv.OpCode(9999).String(), "Op9999"},
		{spirv.BuiltInVertexIndex.String(), "VertexIndex"},
		{spirv.BuiltInMax.String(), "Max"},
		{spirv.ExecutionModelGLCompute.String(), "GLCompute"},
		{spirv.ExecutionModeSignedZeroInfNanPreserve.String(), "SignedZeroInfNanPreserve"},
		{spirv.StorageClassPushConstant.String(), "PushConstant"},
		{spirv.Dim2D.String(), "2D"},
		{spirv.DecorationSpecID.String(), "SpecId"},
		{spirv.ResourceStorageImage.String(), "StorageImage"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
