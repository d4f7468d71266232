package translate

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
	"github.com/gogpu/spvmsl/spirv/spirvtest"
)

func newTestSession(t *testing.T, words []uint32) *Session {
	t.Helper()
	s, err := New(WithLogger(zaptest.NewLogger(t))).NewSession(words)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s.(*Session)
}

func errorKind(t *testing.T, err error) spvmsl.ErrorKind {
	t.Helper()
	var e *spvmsl.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not a *spvmsl.Error", err)
	}
	return e.Kind
}

func TestSession_SetEntryPoint(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())

	if err := s.SetEntryPoint("main", spirv.ExecutionModelFragment); err != nil {
		t.Fatalf("SetEntryPoint(main, Fragment): %v", err)
	}
	err := s.SetEntryPoint("main", spirv.ExecutionModelVertex)
	if err == nil {
		t.Fatal("SetEntryPoint(main, Vertex) succeeded on a fragment-only module")
	}
	if kind := errorKind(t, err); kind != spvmsl.ErrEntryPointNotFound {
		t.Errorf("kind = %v, want EntryPointNotFound", kind)
	}
	if err := s.SetEntryPoint("", spirv.ExecutionModelMax); err != nil {
		t.Errorf("resetting to the default entry point: %v", err)
	}
}

func TestSession_IsShaderInputUsed(t *testing.T) {
	tests := []struct {
		name     string
		words    []uint32
		location uint32
		want     bool
	}{
		{"fragment color", spirvtest.Fragment(), 0, true},
		{"fragment unused uv", spirvtest.Fragment(), 1, false},
		{"fragment missing", spirvtest.Fragment(), 7, false},
		{"vertex pos", spirvtest.Vertex(), 0, true},
		{"vertex uv", spirvtest.Vertex(), 1, true},
		{"vertex unused", spirvtest.Vertex(), 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tt.words)
			if got := s.IsShaderInputUsed(tt.location); got != tt.want {
				t.Errorf("IsShaderInputUsed(%d) = %v, want %v", tt.location, got, tt.want)
			}
		})
	}
}

func TestSession_IsResourceUsed(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())
	frag := spirv.ExecutionModelFragment

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
		{"unbound", frag, 4, 4, false},
		{"push constants", frag, spvmsl.PushConstantDescriptorSet, spvmsl.PushConstantBinding, true},
		{"other stage", spirv.ExecutionModelVertex, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsResourceUsed(tt.stage, tt.set, tt.binding); got != tt.want {
				t.Errorf("IsResourceUsed(%v, %d, %d) = %v, want %v", tt.stage, tt.set, tt.binding, got, tt.want)
			}
		})
	}
}

func TestSession_AddResourceBinding_SlotRange(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())

	rb := spvmsl.NewResourceBinding()
	rb.MSLBuffer = maxSlot
	if err := s.AddResourceBinding(rb); err != nil {
		t.Fatalf("slot %d rejected: %v", maxSlot, err)
	}
	rb.MSLTexture = maxSlot + 1
	err := s.AddResourceBinding(rb)
	if err == nil {
		t.Fatalf("slot %d accepted", maxSlot+1)
	}
	if kind := errorKind(t, err); kind != spvmsl.ErrUnsupported {
		t.Errorf("kind = %v, want Unsupported", kind)
	}
}

func TestSession_AddShaderInput(t *testing.T) {
	s := newTestSession(t, spirvtest.Vertex())

	pos := spvmsl.NewShaderInput()
	if err := s.AddShaderInput(pos); err != nil {
		t.Fatalf("AddShaderInput(location 0): %v", err)
	}
	if err := s.AddShaderInput(pos); err != nil {
		t.Errorf("registering the same input twice: %v", err)
	}
	other := pos
	other.Component = 2
	other.Builtin = spirv.BuiltInVertexIndex
	if err := s.AddShaderInput(other); err != nil {
		t.Errorf("builtin at another component: %v", err)
	}

	clash := pos
	clash.Builtin = spirv.BuiltInInstanceIndex
	err := s.AddShaderInput(clash)
	if err == nil {
		t.Fatal("location 0 accepted as both an attribute and InstanceIndex")
	}
	if kind := errorKind(t, err); kind != spvmsl.ErrUnsupported {
		t.Errorf("kind = %v, want Unsupported", kind)
	}
	if len(s.inputs) != 3 {
		t.Errorf("registered %d inputs, want 3", len(s.inputs))
	}
}

// Requesting argument buffers falls back to discrete bindings and names
// the sets and dynamic buffers that were ignored.
func TestSession_ArgumentBuffersFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sess, err := New(WithLogger(zap.New(core))).NewSession(spirvtest.Fragment())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s := sess.(*Session)
	if err := s.SetEntryPoint("main", spirv.ExecutionModelFragment); err != nil {
		t.Fatalf("SetEntryPoint: %v", err)
	}
	opts := msl.DefaultOptions()
	opts.ArgumentBuffers = true
	s.SetMSLOptions(opts)
	s.AddDiscreteDescriptorSet(2)
	s.AddDiscreteDescriptorSet(0)
	s.AddDynamicBuffer(0, 1, 3)

	if res := s.Compile(); res.Err != nil {
		t.Fatalf("Compile: %v", res.Err)
	}
	entries := logs.FilterMessage("argument buffers are not supported, using discrete bindings").All()
	if len(entries) != 1 {
		t.Fatalf("got %d fallback warnings, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fmt.Sprint(fields["discrete_sets"]); got != "[0 2]" {
		t.Errorf("discrete_sets = %s, want [0 2]", got)
	}
	if got := fmt.Sprint(fields["dynamic_buffers"]); got != "[0.1=3]" {
		t.Errorf("dynamic_buffers = %s, want [0.1=3]", got)
	}
	if _, ok := s.dynamic[bindingKey{spirv.ExecutionModelFragment, 0, 1}]; !ok {
		t.Errorf("dynamic buffer not keyed by the selected stage: %v", s.dynamic)
	}
}

func TestSession_EntryPoint(t *testing.T) {
	s := newTestSession(t, spirvtest.Compute(false))

	info, err := s.EntryPoint("main", spirv.ExecutionModelGLCompute)
	if err != nil {
		t.Fatalf("EntryPoint: %v", err)
	}
	if info.Name != "main" {
		t.Errorf("Name = %q, want main", info.Name)
	}
	if info.MSLName != "main_" {
		t.Errorf("MSLName = %q, want main_", info.MSLName)
	}
	if info.WorkgroupSize != [3]uint32{8, 4, 1} {
		t.Errorf("WorkgroupSize = %v, want [8 4 1]", info.WorkgroupSize)
	}
	if !info.HasMode(spirv.ExecutionModeLocalSize) {
		t.Error("LocalSize mode not reported")
	}

	s.SetExecutionMode(spirv.ExecutionModeOutputVertices, 3)
	info, _ = s.EntryPoint("main", spirv.ExecutionModelGLCompute)
	if !info.HasMode(spirv.ExecutionModeOutputVertices) {
		t.Error("overridden mode not reported")
	}

	if _, err := s.EntryPoint("other", spirv.ExecutionModelGLCompute); err == nil {
		t.Error("EntryPoint(other) succeeded")
	}
}

func TestSession_EntryPoints(t *testing.T) {
	s := newTestSession(t, spirvtest.Vertex())
	refs := s.EntryPoints()
	if len(refs) != 1 || refs[0].Name != "main" || refs[0].Stage != spirv.ExecutionModelVertex {
		t.Errorf("EntryPoints() = %+v, want [{main Vertex}]", refs)
	}
}

func TestSession_WorkgroupSizeSpecializationConstants(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		s := newTestSession(t, spirvtest.Compute(false))
		x, y, z := s.WorkgroupSizeSpecializationConstants()
		if x.ID != 0 || y.ID != 0 || z.ID != 0 {
			t.Errorf("got %+v %+v %+v, want none", x, y, z)
		}
	})
	t.Run("specialized", func(t *testing.T) {
		s := newTestSession(t, spirvtest.Compute(true))
		x, y, z := s.WorkgroupSizeSpecializationConstants()
		if x.ID == 0 || x.ConstantID != 3 {
			t.Errorf("x = %+v, want constant id 3", x)
		}
		if y.ID != 0 || z.ID != 0 {
			t.Errorf("y, z = %+v %+v, want none", y, z)
		}
		info, err := s.EntryPoint("main", spirv.ExecutionModelGLCompute)
		if err != nil {
			t.Fatalf("EntryPoint: %v", err)
		}
		if info.WorkgroupSize != [3]uint32{16, 4, 1} {
			t.Errorf("WorkgroupSize = %v, want [16 4 1]", info.WorkgroupSize)
		}
	})
}

func TestSession_Predicates(t *testing.T) {
	t.Run("vertex", func(t *testing.T) {
		s := newTestSession(t, spirvtest.Vertex())
		if !s.IsPositionInvariant() {
			t.Error("IsPositionInvariant() = false")
		}
		if s.IsRasterizationDisabled() {
			t.Error("IsRasterizationDisabled() = true for a vertex shader writing position")
		}
		opts := msl.DefaultOptions()
		opts.DisableRasterization = true
		opts.CaptureOutputToBuffer = true
		s.SetMSLOptions(opts)
		if !s.IsRasterizationDisabled() {
			t.Error("IsRasterizationDisabled() = false with the option set")
		}
		if !s.NeedsOutputBuffer() {
			t.Error("NeedsOutputBuffer() = false when capturing output")
		}
		if s.NeedsBufferSizeBuffer() {
			t.Error("NeedsBufferSizeBuffer() = true without runtime arrays")
		}
	})
	t.Run("fragment", func(t *testing.T) {
		s := newTestSession(t, spirvtest.Fragment())
		if s.NeedsSwizzleBuffer() {
			t.Error("NeedsSwizzleBuffer() = true without the option")
		}
		opts := msl.DefaultOptions()
		opts.SwizzleTextureSamples = true
		s.SetMSLOptions(opts)
		if !s.NeedsSwizzleBuffer() {
			t.Error("NeedsSwizzleBuffer() = false for a shader sampling images")
		}
		if s.IsRasterizationDisabled() || s.NeedsOutputBuffer() || s.NeedsInputThreadgroupMem() {
			t.Error("vertex and tessellation predicates set for a fragment shader")
		}
	})
	t.Run("compute", func(t *testing.T) {
		s := newTestSession(t, spirvtest.Compute(false))
		if !s.NeedsBufferSizeBuffer() {
			t.Error("NeedsBufferSizeBuffer() = false for a shader reading an array length")
		}
		if s.NeedsDispatchBaseBuffer() {
			t.Error("NeedsDispatchBaseBuffer() = true without the option")
		}
		opts := msl.DefaultOptions()
		opts.DispatchBase = true
		s.SetMSLOptions(opts)
		if !s.NeedsDispatchBaseBuffer() {
			t.Error("NeedsDispatchBaseBuffer() = false for a shader reading the global invocation id")
		}
	})
}

func TestSession_Close(t *testing.T) {
	s := newTestSession(t, spirvtest.Fragment())
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	res := s.Compile()
	if res.Err == nil {
		t.Fatal("Compile after Close succeeded")
	}
}
