package translate

import (
	"strings"
	"testing"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/spirv"
	"github.com/gogpu/spvmsl/spirv/spirvtest"
)

func compileOK(t *testing.T, s *Session) string {
	t.Helper()
	res := s.Compile()
	if res.Err != nil {
		t.Fatalf("Compile: %v", res.Err)
	}
	return res.Source
}

func wantContains(t *testing.T, src string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(src, sub) {
			t.Errorf("output does not contain %q:\n%s", sub, src)
		}
	}
}

func fragmentBinding(set, binding uint32, typ spvmsl.ResourceType) spvmsl.ResourceBinding {
	rb := spvmsl.NewResourceBinding()
	rb.Stage = spirv.ExecutionModelFragment
	rb.BaseType = typ
	rb.DescriptorSet = set
	rb.Binding = binding
	return rb
}

func TestCompile_FragmentBindings(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())

	tint := fragmentBinding(0, 1, spvmsl.ResourceTypeBuffer)
	tint.MSLBuffer = 3
	tex := fragmentBinding(0, 2, spvmsl.ResourceTypeTexture)
	tex.MSLTexture = 5
	smp := fragmentBinding(0, 3, spvmsl.ResourceTypeSampler)
	smp.MSLSampler = 6
	for _, rb := range []spvmsl.ResourceBinding{tint, tex, smp} {
		if err := s.AddResourceBinding(rb); err != nil {
			t.Fatalf("AddResourceBinding: %v", err)
		}
	}

	src := compileOK(t, s)
	wantContains(t, src, "fragment ", "[[buffer(3)]]", "[[texture(5)]]", "[[sampler(6)]]", "[[user(loc0)")
	if strings.Contains(src, "unusedTex") {
		t.Errorf("unused resource emitted:\n%s", src)
	}

	info, err := s.EntryPoint("main", spirv.ExecutionModelFragment)
	if err != nil {
		t.Fatalf("EntryPoint: %v", err)
	}
	if !strings.Contains(src, info.MSLName+"(") {
		t.Errorf("entry point %q not in output", info.MSLName)
	}
}

func TestCompile_AutoAssignedSlots(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())

	tex := fragmentBinding(0, 2, spvmsl.ResourceTypeTexture)
	if err := s.AddResourceBinding(tex); err != nil {
		t.Fatalf("AddResourceBinding: %v", err)
	}
	src := compileOK(t, s)
	// The texture claims slot 0; the unregistered uniform block and
	// sampler take the lowest free slots of their kinds.
	wantContains(t, src, "[[texture(0)]]", "[[buffer(0)]]", "[[sampler(0)]]")
}

func TestCompile_ConstExprSampler(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Session) error
	}{
		{"remap", func(s *Session) error {
			cs := spvmsl.DefaultConstExprSampler()
			cs.AddressU = spvmsl.SamplerAddressRepeat
			return s.RemapConstExprSampler(spirv.ExecutionModelFragment, 0, 3, cs)
		}},
		{"binding", func(s *Session) error {
			rb := fragmentBinding(0, 3, spvmsl.ResourceTypeSampler)
			rb.RequiresConstExprSampler = true
			rb.ConstExprSampler.AddressU = spvmsl.SamplerAddressRepeat
			return s.AddResourceBinding(rb)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, spirvtest.Fragment())
			if err := tt.setup(s); err != nil {
				t.Fatalf("setup: %v", err)
			}
			src := compileOK(t, s)
			wantContains(t, src, "constexpr metal::sampler", "metal::s_address::repeat")
			if strings.Contains(src, "[[sampler(") {
				t.Errorf("inlined sampler still bound:\n%s", src)
			}
		})
	}
}

func TestCompile_Vertex(t *testing.T) {
	s := newTestSession(t, spirvtest.Vertex())
	src := compileOK(t, s)
	wantContains(t, src, "vertex ", "[[position, invariant]]", "[[attribute(0)]]", "[[attribute(1)]]")
	if strings.Contains(src, "[[attribute(2)]]") {
		t.Errorf("unused input emitted:\n%s", src)
	}

	flipped := newTestSession(t, spirvtest.Vertex())
	flipped.SetCommonOptions(spvmsl.CommonOptions{FlipVertexY: true})
	if got := compileOK(t, flipped); got == src {
		t.Error("FlipVertexY did not change the output")
	}
}

func TestCompile_Compute(t *testing.T) {
	s := newTestSession(t, spirvtest.Compute(false))
	src := compileOK(t, s)
	wantContains(t, src, "kernel ", "_buffer_sizes", "[[buffer(", "thread_position_in_grid")
}

func TestCompile_EntryPointNotFound(t *testing.T) {
	s := newTestSession(t, spirvtest.Compute(false))
	s.entryName, s.entryStage = "missing", spirv.ExecutionModelGLCompute
	res := s.Compile()
	if res.Err == nil {
		t.Fatal("Compile succeeded without an entry point")
	}
	if kind := errorKind(t, res.Err); kind != spvmsl.ErrEntryPointNotFound {
		t.Errorf("kind = %v, want EntryPointNotFound", kind)
	}
}

// branchingFragment assembles
//
//	layout(location = 0) in float v;
//	layout(location = 0) out vec4 o;
//
//	void main() {
//		if (v < 0.0) discard;
//		float p = v;
//		if (v > 1.0) p = v * 0.5;
//		o = vec4(p, p, p, 1.0);
//	}
//
// with p carried by a phi node.
func branchingFragment() []uint32 {
	b := spirv.NewBuilder(spirv.Version1_0)
	b.Capability(spirv.CapabilityShader)
	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.TypeVoid()
	fnType := b.TypeFunction(void)
	boolT := b.TypeBool()
	f32 := b.TypeFloat(32)
	v4 := b.TypeVector(f32, 4)
	pIn := b.TypePointer(spirv.StorageClassInput, f32)
	pOut := b.TypePointer(spirv.StorageClassOutput, v4)
	zero := b.ConstantFloat32(f32, 0)
	one := b.ConstantFloat32(f32, 1)
	half := b.ConstantFloat32(f32, 0.5)

	in := b.Variable(pIn, spirv.StorageClassInput)
	b.Name(in, "v")
	b.Decorate(in, spirv.DecorationLocation, 0)
	out := b.Variable(pOut, spirv.StorageClassOutput)
	b.Name(out, "o")
	b.Decorate(out, spirv.DecorationLocation, 0)

	main := b.Function(void, fnType, spirv.FunctionControlNone)
	kill, second, then, merge := b.AllocID(), b.AllocID(), b.AllocID(), b.AllocID()
	b.Label()
	x := b.Load(f32, in)
	b.SelectionMerge(second, spirv.SelectionControlNone)
	b.BranchConditional(b.Op(spirv.OpFOrdLessThan, boolT, x, zero), kill, second)

	b.LabelID(kill)
	b.Kill()

	b.LabelID(second)
	b.SelectionMerge(merge, spirv.SelectionControlNone)
	b.BranchConditional(b.Op(spirv.OpFOrdGreaterThan, boolT, x, one), then, merge)

	b.LabelID(then)
	y := b.Op(spirv.OpFMul, f32, x, half)
	b.Branch(merge)

	b.LabelID(merge)
	p := b.Op(spirv.OpPhi, f32, y, then, x, second)
	b.Store(out, b.CompositeConstruct(v4, p, p, p, one))
	b.Return()
	b.FunctionEnd()

	b.EntryPoint(spirv.ExecutionModelFragment, main, "main", in, out)
	b.ExecutionMode(main, spirv.ExecutionModeOriginUpperLeft)
	return b.Words()
}

// loopingFragment assembles a fragment shader whose body is an empty loop.
func loopingFragment() []uint32 {
	b := spirv.NewBuilder(spirv.Version1_0)
	b.Capability(spirv.CapabilityShader)
	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.TypeVoid()
	fnType := b.TypeFunction(void)
	boolT := b.TypeBool()
	yes := b.ConstantBool(boolT, true)

	main := b.Function(void, fnType, spirv.FunctionControlNone)
	header, body, cont, merge := b.AllocID(), b.AllocID(), b.AllocID(), b.AllocID()
	b.Label()
	b.Branch(header)
	b.LabelID(header)
	b.LoopMerge(merge, cont, spirv.LoopControlNone)
	b.Branch(body)
	b.LabelID(body)
	b.BranchConditional(yes, merge, cont)
	b.LabelID(cont)
	b.Branch(header)
	b.LabelID(merge)
	b.Return()
	b.FunctionEnd()

	b.EntryPoint(spirv.ExecutionModelFragment, main, "main")
	b.ExecutionMode(main, spirv.ExecutionModeOriginUpperLeft)
	return b.Words()
}

func TestCompile_ControlFlow(t *testing.T) {
	s := newTestSession(t, branchingFragment())
	src := compileOK(t, s)
	wantContains(t, src, "if (", "metal::discard_fragment();")
}

func TestCompile_Loop(t *testing.T) {
	s := newTestSession(t, loopingFragment())
	res := s.Compile()
	if res.Err == nil {
		t.Fatal("Compile accepted a loop")
	}
	if kind := errorKind(t, res.Err); kind != spvmsl.ErrUnsupported {
		t.Errorf("kind = %v, want Unsupported", kind)
	}
}

func TestCompile_ClosedSession(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())
	_ = s.Close()
	res := s.Compile()
	if res.Err == nil {
		t.Fatal("Compile on a closed session succeeded")
	}
	if kind := errorKind(t, res.Err); kind != spvmsl.ErrCompile {
		t.Errorf("kind = %v, want Compile", kind)
	}
}
