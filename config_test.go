package spvmsl

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/spvmsl/spirv"
)

func vertexInput(loc, binding uint32) ShaderInput {
	si := NewShaderInput()
	si.Location = loc
	si.Binding = binding
	si.Format = InputFormatAny32
	si.VecSize = 4
	return si
}

func resource(stage spirv.ExecutionModel, set, binding uint32) ResourceBinding {
	rb := NewResourceBinding()
	rb.Stage = stage
	rb.BaseType = ResourceTypeBuffer
	rb.DescriptorSet = set
	rb.Binding = binding
	rb.Count = 1
	rb.MSLBuffer = binding
	return rb
}

// testConfig returns a vertex configuration with two inputs and a resource
// in each of the vertex and fragment stages. Nothing is marked used.
func testConfig() *ConversionConfiguration {
	cfg := NewConversionConfiguration()
	cfg.Options.EntryPointName = "main"
	cfg.Options.EntryPointStage = spirv.ExecutionModelVertex
	cfg.ShaderInputs = []ShaderInput{vertexInput(0, 0), vertexInput(1, 0)}
	cfg.ResourceBindings = []ResourceBinding{
		resource(spirv.ExecutionModelVertex, 0, 0),
		resource(spirv.ExecutionModelFragment, 0, 1),
	}
	return cfg
}

func TestNewDefaults(t *testing.T) {
	si := NewShaderInput()
	if si.Builtin != spirv.BuiltInMax || si.Format != InputFormatOther {
		t.Errorf("NewShaderInput() = %+v", si)
	}
	if !si.Matches(NewShaderInput()) {
		t.Error("two default inputs should match")
	}

	rb := NewResourceBinding()
	if rb.Stage != spirv.ExecutionModelMax {
		t.Errorf("Stage = %v, want Max", rb.Stage)
	}
	if rb.ConstExprSampler != DefaultConstExprSampler() {
		t.Error("default binding should carry the default sampler")
	}

	opts := NewConversionOptions()
	if opts.EntryPointStage != spirv.ExecutionModelMax || opts.TessPatchKind != spirv.ExecutionModeMax {
		t.Errorf("unexpected stage or patch kind: %+v", opts)
	}
	if !opts.ShouldFlipVertexY || opts.HasEntryPoint() {
		t.Errorf("unexpected flip or entry point: %+v", opts)
	}
}

func TestResourceBindingMatches(t *testing.T) {
	base := resource(spirv.ExecutionModelFragment, 1, 2)

	withSampler := base
	withSampler.RequiresConstExprSampler = true

	linear := withSampler
	linear.ConstExprSampler.MinFilter = gputypes.FilterModeLinear

	tests := []struct {
		name string
		a, b ResourceBinding
		want bool
	}{
		{"identical", base, base, true},
		{"used flag ignored", base, func() ResourceBinding { r := base; r.OutIsUsedByShader = true; return r }(), true},
		{"stage", base, resource(spirv.ExecutionModelVertex, 1, 2), false},
		{"binding", base, resource(spirv.ExecutionModelFragment, 1, 3), false},
		{"msl slot", base, func() ResourceBinding { r := base; r.MSLTexture = 7; return r }(), false},
		{"sampler requirement", base, withSampler, false},
		{"sampler ignored when not required", base, func() ResourceBinding {
			r := base
			r.ConstExprSampler.MagFilter = gputypes.FilterModeLinear
			return r
		}(), true},
		{"sampler compared when required", withSampler, linear, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPushConstant(t *testing.T) {
	rb := resource(spirv.ExecutionModelFragment, PushConstantDescriptorSet, PushConstantBinding)
	if !rb.IsPushConstant() {
		t.Error("reserved slot should be a push constant")
	}
	if resource(spirv.ExecutionModelFragment, 0, 0).IsPushConstant() {
		t.Error("set 0 binding 0 is not a push constant")
	}
}

func TestMatches_Reflexive(t *testing.T) {
	cfg := testConfig()
	cfg.DiscreteDescriptorSets = []uint32{2}
	cfg.DynamicBufferDescriptors = []DynamicBufferDescriptor{{Stage: spirv.ExecutionModelVertex, Binding: 4}}
	cfg.MarkAllInputsAndResourcesUsed()

	if !cfg.Matches(cfg) {
		t.Error("a configuration should match itself")
	}
}

func TestMatches_OptionsDiffer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConversionOptions)
	}{
		{"entry point", func(o *ConversionOptions) { o.EntryPointName = "other" }},
		{"stage", func(o *ConversionOptions) { o.EntryPointStage = spirv.ExecutionModelFragment }},
		{"flip", func(o *ConversionOptions) { o.ShouldFlipVertexY = false }},
		{"control points", func(o *ConversionOptions) { o.NumTessControlPoints = 3 }},
		{"msl", func(o *ConversionOptions) { o.MSL.ArgumentBuffers = !o.MSL.ArgumentBuffers }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testConfig()
			b := a.Clone()
			tt.mutate(&b.Options)
			if a.Matches(b) {
				t.Error("configurations with different options should not match")
			}
		})
	}
}

func TestMatches_UnusedBindingsNeverBlock(t *testing.T) {
	a := testConfig()
	b := NewConversionConfiguration()
	b.Options = a.Options

	if !a.Matches(b) {
		t.Error("nothing is used, so any configuration with the same options should match")
	}
}

func TestMatches_StageFilter(t *testing.T) {
	a := testConfig()
	a.MarkAllInputsAndResourcesUsed()

	// b lacks the fragment resource, which the vertex stage never sees.
	b := testConfig()
	b.ResourceBindings = b.ResourceBindings[:1]
	if !a.Matches(b) {
		t.Error("resources of other stages should not take part")
	}

	// c lacks the vertex resource.
	c := testConfig()
	c.ResourceBindings = c.ResourceBindings[1:]
	if a.Matches(c) {
		t.Error("a used resource of the active stage is missing")
	}
}

func TestMatches_UsedInputMissing(t *testing.T) {
	a := testConfig()
	a.ShaderInputs[1].OutIsUsedByShader = true

	b := testConfig()
	b.ShaderInputs = b.ShaderInputs[:1]
	if a.Matches(b) {
		t.Error("used input at location 1 has no counterpart")
	}
	if !b.Matches(a) {
		t.Error("b uses nothing, so it should match a")
	}
}

func TestMatches_DynamicBuffers(t *testing.T) {
	vertexDB := DynamicBufferDescriptor{Stage: spirv.ExecutionModelVertex, DescriptorSet: 0, Binding: 3, Index: 0}
	fragmentDB := DynamicBufferDescriptor{Stage: spirv.ExecutionModelFragment, DescriptorSet: 0, Binding: 5, Index: 1}

	a := testConfig()
	a.DynamicBufferDescriptors = []DynamicBufferDescriptor{vertexDB, fragmentDB}

	b := testConfig()
	b.DynamicBufferDescriptors = []DynamicBufferDescriptor{vertexDB}
	if !a.Matches(b) {
		t.Error("dynamic buffers of other stages should not take part")
	}

	b.DynamicBufferDescriptors = []DynamicBufferDescriptor{fragmentDB}
	if a.Matches(b) {
		t.Error("dynamic buffer of the active stage is missing")
	}
}

func TestMatches_DiscreteSets(t *testing.T) {
	a := testConfig()
	a.DiscreteDescriptorSets = []uint32{1, 3}

	b := testConfig()
	b.DiscreteDescriptorSets = []uint32{3, 2, 1}
	if !a.Matches(b) {
		t.Error("b contains every discrete set of a")
	}
	if b.Matches(a) {
		t.Error("a lacks set 2")
	}
}

func TestAlignWith(t *testing.T) {
	src := testConfig()
	src.ShaderInputs[0].OutIsUsedByShader = true
	src.ResourceBindings[1].OutIsUsedByShader = true

	dst := testConfig()
	dst.MarkAllInputsAndResourcesUsed()
	extra := vertexInput(9, 2)
	extra.OutIsUsedByShader = true
	dst.ShaderInputs = append(dst.ShaderInputs, extra)

	dst.AlignWith(src)

	want := []bool{true, false, false}
	for i, si := range dst.ShaderInputs {
		if si.OutIsUsedByShader != want[i] {
			t.Errorf("input %d used = %v, want %v", i, si.OutIsUsedByShader, want[i])
		}
	}
	if dst.ResourceBindings[0].OutIsUsedByShader || !dst.ResourceBindings[1].OutIsUsedByShader {
		t.Errorf("resource flags = %v, %v, want false, true",
			dst.ResourceBindings[0].OutIsUsedByShader, dst.ResourceBindings[1].OutIsUsedByShader)
	}
}

func TestAlignWith_LastMatchWins(t *testing.T) {
	used := vertexInput(0, 0)
	used.OutIsUsedByShader = true

	src := NewConversionConfiguration()
	src.ShaderInputs = []ShaderInput{used, vertexInput(0, 0)}

	dst := NewConversionConfiguration()
	dst.ShaderInputs = []ShaderInput{vertexInput(0, 0)}
	dst.AlignWith(src)
	if dst.ShaderInputs[0].OutIsUsedByShader {
		t.Error("the flag of the last matching entry should win")
	}

	src.ShaderInputs[0], src.ShaderInputs[1] = src.ShaderInputs[1], src.ShaderInputs[0]
	dst.AlignWith(src)
	if !dst.ShaderInputs[0].OutIsUsedByShader {
		t.Error("the flag of the last matching entry should win")
	}
}

func TestQueries_AfterMarkAll(t *testing.T) {
	cfg := testConfig()
	cfg.MarkAllInputsAndResourcesUsed()

	for _, si := range cfg.ShaderInputs {
		if !cfg.IsShaderInputLocationUsed(si.Location) {
			t.Errorf("location %d should be used", si.Location)
		}
	}
	for _, rb := range cfg.ResourceBindings {
		if !cfg.IsResourceUsed(rb.Stage, rb.DescriptorSet, rb.Binding) {
			t.Errorf("resource %v/%d/%d should be used", rb.Stage, rb.DescriptorSet, rb.Binding)
		}
	}
	if got := cfg.CountShaderInputsAt(0); got != 2 {
		t.Errorf("CountShaderInputsAt(0) = %d, want 2", got)
	}
	if cfg.IsShaderInputLocationUsed(7) {
		t.Error("location 7 has no input")
	}
	if cfg.IsResourceUsed(spirv.ExecutionModelFragment, 0, 0) {
		t.Error("absent resource should not be used")
	}
}

func TestQueries_Partial(t *testing.T) {
	cfg := testConfig()
	cfg.ShaderInputs = append(cfg.ShaderInputs, vertexInput(1, 1))
	cfg.ShaderInputs[2].OutIsUsedByShader = true

	if !cfg.IsShaderInputLocationUsed(1) {
		t.Error("a used input shares location 1 with an unused one")
	}
	if got := cfg.CountShaderInputsAt(0); got != 0 {
		t.Errorf("CountShaderInputsAt(0) = %d, want 0", got)
	}
	if got := cfg.CountShaderInputsAt(1); got != 1 {
		t.Errorf("CountShaderInputsAt(1) = %d, want 1", got)
	}
}

func TestIsResourceUsed_FirstMatch(t *testing.T) {
	cfg := NewConversionConfiguration()
	first := resource(spirv.ExecutionModelFragment, 0, 0)
	second := first
	second.BaseType = ResourceTypeTexture
	second.OutIsUsedByShader = true
	cfg.ResourceBindings = []ResourceBinding{first, second}

	if cfg.IsResourceUsed(spirv.ExecutionModelFragment, 0, 0) {
		t.Error("the first binding at the triple is unused")
	}
}

func TestStageSupportsVertexAttributes(t *testing.T) {
	tests := []struct {
		stage spirv.ExecutionModel
		want  bool
	}{
		{spirv.ExecutionModelVertex, true},
		{spirv.ExecutionModelTessellationControl, true},
		{spirv.ExecutionModelTessellationEvaluation, true},
		{spirv.ExecutionModelFragment, false},
		{spirv.ExecutionModelGLCompute, false},
		{spirv.ExecutionModelMax, false},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			cfg := NewConversionConfiguration()
			cfg.Options.EntryPointStage = tt.stage
			if got := cfg.StageSupportsVertexAttributes(); got != tt.want {
				t.Errorf("StageSupportsVertexAttributes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsedSubset_RoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.ShaderInputs[1].OutIsUsedByShader = true
	cfg.ResourceBindings[0].OutIsUsedByShader = true
	cfg.DiscreteDescriptorSets = []uint32{1}

	sub := cfg.UsedSubset()
	if len(sub.ShaderInputs) != 1 || len(sub.ResourceBindings) != 1 {
		t.Fatalf("UsedSubset kept %d inputs and %d resources, want 1 and 1",
			len(sub.ShaderInputs), len(sub.ResourceBindings))
	}
	if !sub.Matches(cfg) {
		t.Error("the used subset should match its source")
	}
	if !cfg.Matches(sub) {
		t.Error("the source should match its used subset")
	}
}

func TestClone_IsDeep(t *testing.T) {
	cfg := testConfig()
	c := cfg.Clone()
	c.ShaderInputs[0].Location = 42
	c.ResourceBindings[0].OutIsUsedByShader = true

	if cfg.ShaderInputs[0].Location == 42 || cfg.ResourceBindings[0].OutIsUsedByShader {
		t.Error("Clone shares slices with its source")
	}
}
