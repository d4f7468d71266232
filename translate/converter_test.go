package translate

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/spirv"
	"github.com/gogpu/spvmsl/spirv/spirvtest"
)

func newConverter(t *testing.T, words []uint32) *spvmsl.Converter {
	t.Helper()
	c := spvmsl.NewConverter(New(WithLogger(zaptest.NewLogger(t))), spvmsl.WithLogger(zaptest.NewLogger(t)))
	c.SetSPIRV(words)
	return c
}

func binding(stage spirv.ExecutionModel, typ spvmsl.ResourceType, set, bind, slot uint32) spvmsl.ResourceBinding {
	rb := spvmsl.NewResourceBinding()
	rb.Stage = stage
	rb.BaseType = typ
	rb.DescriptorSet = set
	rb.Binding = bind
	switch typ {
	case spvmsl.ResourceTypeBuffer:
		rb.MSLBuffer = slot
	case spvmsl.ResourceTypeTexture:
		rb.MSLTexture = slot
	case spvmsl.ResourceTypeSampler:
		rb.MSLSampler = slot
	case spvmsl.ResourceTypeSampledImage:
		rb.MSLTexture, rb.MSLSampler = slot, slot
	}
	return rb
}

// Converting through the real engine writes usage back for the active
// stage only, and the resulting configuration works as a cache key.
func TestConverter_Fragment(t *testing.T) {
	frag := spirv.ExecutionModelFragment
	cfg := spvmsl.NewConversionConfiguration()
	cfg.Options.EntryPointName = "main"
	cfg.Options.EntryPointStage = frag
	for _, loc := range []uint32{0, 1} {
		si := spvmsl.NewShaderInput()
		si.Location = loc
		cfg.ShaderInputs = append(cfg.ShaderInputs, si)
	}
	vert := binding(spirv.ExecutionModelVertex, spvmsl.ResourceTypeBuffer, 0, 0, 0)
	vert.OutIsUsedByShader = true
	cfg.ResourceBindings = []spvmsl.ResourceBinding{
		binding(frag, spvmsl.ResourceTypeBuffer, 0, 1, 0),
		binding(frag, spvmsl.ResourceTypeTexture, 0, 2, 1),
		binding(frag, spvmsl.ResourceTypeSampler, 0, 3, 1),
		binding(frag, spvmsl.ResourceTypeSampledImage, 1, 0, 2),
		binding(frag, spvmsl.ResourceTypeBuffer, spvmsl.PushConstantDescriptorSet, spvmsl.PushConstantBinding, 4),
		vert,
	}

	c := newConverter(t, spirvtest.Fragment())
	if !c.Convert(cfg, spvmsl.LogOptions{}) {
		t.Fatalf("Convert failed:\n%s", c.ResultLog())
	}
	if !strings.Contains(c.MSL(), "fragment") {
		t.Errorf("MSL has no fragment function:\n%s", c.MSL())
	}
	if c.Results().EntryPoint.MTLFunctionName == "" {
		t.Error("entry point name not reported")
	}

	if !cfg.IsShaderInputLocationUsed(0) {
		t.Error("location 0 should be used")
	}
	if cfg.IsShaderInputLocationUsed(1) {
		t.Error("location 1 should be unused")
	}
	tests := []struct {
		name         string
		stage        spirv.ExecutionModel
		set, binding uint32
		want         bool
	}{
		{"uniform block", frag, 0, 1, true},
		{"texture", frag, 0, 2, true},
		{"sampler", frag, 0, 3, true},
		{"unused combined sampler", frag, 1, 0, false},
		{"push constants", frag, spvmsl.PushConstantDescriptorSet, spvmsl.PushConstantBinding, true},
		{"vertex binding keeps its flag", spirv.ExecutionModelVertex, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.IsResourceUsed(tt.stage, tt.set, tt.binding); got != tt.want {
				t.Errorf("IsResourceUsed(%v, %d, %d) = %v, want %v", tt.stage, tt.set, tt.binding, got, tt.want)
			}
		})
	}

	used := cfg.UsedSubset()
	if !used.Matches(cfg) {
		t.Error("the used subset does not match the configuration it came from")
	}
	if !cfg.Matches(used) {
		t.Error("the configuration does not match its used subset")
	}
}

// malformed returns a module that passes the header check but holds an
// instruction too short or too self-referential to translate.
func malformed(body func(b *spirv.Builder, void uint32)) []uint32 {
	b := spirv.NewBuilder(spirv.Version1_0)
	b.Capability(spirv.CapabilityShader)
	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	void := b.TypeVoid()
	fnType := b.TypeFunction(void)
	main := b.Function(void, fnType, spirv.FunctionControlNone)
	b.Label()
	body(b, void)
	b.Return()
	b.FunctionEnd()
	b.EntryPoint(spirv.ExecutionModelFragment, main, "main")
	b.ExecutionMode(main, spirv.ExecutionModeOriginUpperLeft)
	return b.Words()
}

func TestConverter_MalformedModule(t *testing.T) {
	tests := []struct {
		name    string
		body    func(b *spirv.Builder, void uint32)
		wantSub string
	}{
		{
			name:    "function call without callee",
			body:    func(b *spirv.Builder, void uint32) { b.Op(spirv.OpFunctionCall, void) },
			wantSub: "OpFunctionCall has 2 operands",
		},
		{
			name: "struct containing itself",
			body: func(b *spirv.Builder, _ uint32) {
				id := b.AllocID()
				b.Inst(spirv.OpTypeStruct, id, id)
			},
			wantSub: "before its definition",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := malformed(tt.body)
			c := newConverter(t, words)
			if !c.HasValidSPIRV() {
				t.Fatal("module should pass the header check")
			}
			if c.Convert(spvmsl.NewConversionConfiguration(), spvmsl.LogOptions{SPIRV: true, MSL: true, GLSL: true}) {
				t.Fatal("Convert succeeded")
			}
			log := c.ResultLog()
			if !strings.Contains(log, "MSL conversion error: ") || !strings.Contains(log, tt.wantSub) {
				t.Errorf("result log does not report %q:\n%s", tt.wantSub, log)
			}
			if !strings.Contains(log, "Original GLSL extraction error: ") {
				t.Errorf("result log does not report the GLSL failure:\n%s", log)
			}

			res := New(WithLogger(zaptest.NewLogger(t))).ReconstructGLSL(words)
			if res.Err == nil {
				t.Fatal("ReconstructGLSL succeeded")
			}
			if kind := errorKind(t, res.Err); kind != spvmsl.ErrInvalidSPIRV {
				t.Errorf("kind = %v, want InvalidSPIRV", kind)
			}
		})
	}
}
