package spvmsl

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/gogpu/spvmsl/msl"
	"github.com/gogpu/spvmsl/spirv"
	"github.com/gogpu/spvmsl/spirv/spirvtest"
)

type resourceKey struct {
	stage        spirv.ExecutionModel
	set, binding uint32
}

type modeCall struct {
	mode spirv.ExecutionMode
	args []uint32
}

// fakeSession records the configuration it receives and answers queries
// from its fields.
type fakeSession struct {
	entryErr  error
	configErr error
	result    CompileResult

	usedInputs    map[uint32]bool
	usedResources map[resourceKey]bool

	entryPoints []EntryPointRef
	info        EntryPointInfo
	specX       SpecializationConstant

	swizzle    bool
	invariant  bool
	closeErr   error
	closeCalls int

	compilePanic bool

	compiled  bool
	entryName string
	modes     []modeCall
	mslOpts   msl.Options
	common    CommonOptions
	inputs    []ShaderInput
	bindings  []ResourceBinding
	remaps    []resourceKey
	discrete  []uint32
	dynamic   []uint32
}

func (s *fakeSession) SetEntryPoint(name string, _ spirv.ExecutionModel) error {
	s.entryName = name
	return s.entryErr
}

func (s *fakeSession) SetExecutionMode(mode spirv.ExecutionMode, args ...uint32) {
	s.modes = append(s.modes, modeCall{mode, args})
}

func (s *fakeSession) SetMSLOptions(opts msl.Options)      { s.mslOpts = opts }
func (s *fakeSession) SetCommonOptions(opts CommonOptions) { s.common = opts }

func (s *fakeSession) AddShaderInput(si ShaderInput) error {
	s.inputs = append(s.inputs, si)
	return s.configErr
}

func (s *fakeSession) AddResourceBinding(rb ResourceBinding) error {
	s.bindings = append(s.bindings, rb)
	return nil
}

func (s *fakeSession) RemapConstExprSampler(stage spirv.ExecutionModel, set, binding uint32, _ ConstExprSampler) error {
	s.remaps = append(s.remaps, resourceKey{stage, set, binding})
	return nil
}

func (s *fakeSession) AddDiscreteDescriptorSet(set uint32) { s.discrete = append(s.discrete, set) }

func (s *fakeSession) AddDynamicBuffer(_, binding, _ uint32) {
	s.dynamic = append(s.dynamic, binding)
}

func (s *fakeSession) Compile() CompileResult {
	s.compiled = true
	if s.compilePanic {
		panic("index out of range [0] with length 0")
	}
	return s.result
}

func (s *fakeSession) IsShaderInputUsed(location uint32) bool { return s.usedInputs[location] }

func (s *fakeSession) IsResourceUsed(stage spirv.ExecutionModel, set, binding uint32) bool {
	return s.usedResources[resourceKey{stage, set, binding}]
}

func (s *fakeSession) EntryPoint(name string, stage spirv.ExecutionModel) (EntryPointInfo, error) {
	if name != s.info.Name || stage != s.info.Stage {
		return EntryPointInfo{}, NewError(ErrEntryPointNotFound, "no entry point %q", name)
	}
	return s.info, nil
}

func (s *fakeSession) EntryPoints() []EntryPointRef { return s.entryPoints }

func (s *fakeSession) WorkgroupSizeSpecializationConstants() (x, y, z SpecializationConstant) {
	return s.specX, SpecializationConstant{}, SpecializationConstant{}
}

func (s *fakeSession) IsRasterizationDisabled() bool  { return false }
func (s *fakeSession) IsPositionInvariant() bool      { return s.invariant }
func (s *fakeSession) NeedsSwizzleBuffer() bool       { return s.swizzle }
func (s *fakeSession) NeedsOutputBuffer() bool        { return false }
func (s *fakeSession) NeedsPatchOutputBuffer() bool   { return false }
func (s *fakeSession) NeedsBufferSizeBuffer() bool    { return false }
func (s *fakeSession) NeedsInputThreadgroupMem() bool { return false }
func (s *fakeSession) NeedsDispatchBaseBuffer() bool  { return false }
func (s *fakeSession) NeedsViewRangeBuffer() bool     { return false }

func (s *fakeSession) Close() error {
	s.closeCalls++
	return s.closeErr
}

type fakeEngine struct {
	session *fakeSession
	err     error
	panics  bool
}

func (e *fakeEngine) NewSession([]uint32) (Session, error) {
	if e.panics {
		panic("runtime error: stack overflow")
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.session, nil
}

type fakeGLSLEngine struct {
	fakeEngine
	glsl CompileResult
}

func (e *fakeGLSLEngine) ReconstructGLSL([]uint32) CompileResult { return e.glsl }

func newFakeSession() *fakeSession {
	return &fakeSession{
		result:        CompileResult{Source: "kernel void main0() {}"},
		usedInputs:    map[uint32]bool{0: true},
		usedResources: map[resourceKey]bool{{spirv.ExecutionModelVertex, 0, 0}: true},
		entryPoints:   []EntryPointRef{{Name: "main", Stage: spirv.ExecutionModelVertex}},
		info: EntryPointInfo{
			Name:    "main",
			MSLName: "main0",
			Stage:   spirv.ExecutionModelVertex,
		},
	}
}

func newTestConverter(t *testing.T, engine Engine) *Converter {
	t.Helper()
	c := NewConverter(engine, WithLogger(zaptest.NewLogger(t)))
	c.SetSPIRV(spirvtest.Vertex())
	return c
}

func TestConvert_Success(t *testing.T) {
	s := newFakeSession()
	s.swizzle = true
	s.invariant = true
	c := newTestConverter(t, &fakeEngine{session: s})

	cfg := testConfig()
	cfg.ResourceBindings[1].OutIsUsedByShader = true // fragment stage, not written back

	if !c.Convert(cfg, LogOptions{MSL: true}) {
		t.Fatalf("Convert failed:\n%s", c.ResultLog())
	}
	if !c.WasConverted() {
		t.Error("WasConverted() = false")
	}
	if c.MSL() != s.result.Source {
		t.Errorf("MSL() = %q", c.MSL())
	}
	if !strings.Contains(c.ResultLog(), "Converted MSL:\n"+s.result.Source+"\nEnd MSL\n\n") {
		t.Errorf("result log lacks the MSL dump:\n%s", c.ResultLog())
	}
	if s.closeCalls != 1 {
		t.Errorf("session closed %d times, want 1", s.closeCalls)
	}
	if s.entryName != "main" {
		t.Errorf("entry point = %q, want main", s.entryName)
	}
	if !s.common.FlipVertexY || s.mslOpts != cfg.Options.MSL {
		t.Error("options were not passed to the session")
	}
	if len(s.modes) != 0 {
		t.Errorf("vertex stage should not set execution modes, got %v", s.modes)
	}
	if len(s.inputs) != 2 || len(s.bindings) != 2 {
		t.Errorf("registered %d inputs and %d bindings, want 2 and 2", len(s.inputs), len(s.bindings))
	}

	if !cfg.ShaderInputs[0].OutIsUsedByShader || cfg.ShaderInputs[1].OutIsUsedByShader {
		t.Error("input usage not written back")
	}
	if !cfg.ResourceBindings[0].OutIsUsedByShader {
		t.Error("vertex resource usage not written back")
	}
	if !cfg.ResourceBindings[1].OutIsUsedByShader {
		t.Error("fragment resource flag should be left untouched")
	}

	r := c.Results()
	if !r.NeedsSwizzleBuffer || !r.IsPositionInvariant || r.NeedsOutputBuffer {
		t.Errorf("unexpected metadata: %+v", r)
	}
	if r.EntryPoint.MTLFunctionName != "main0" || !r.EntryPoint.SupportsFastMath {
		t.Errorf("unexpected entry point: %+v", r.EntryPoint)
	}
}

func TestConvert_SessionCreateFailure(t *testing.T) {
	c := newTestConverter(t, &fakeEngine{err: errors.New("bad module")})
	cfg := testConfig()
	cfg.ShaderInputs[0].OutIsUsedByShader = true

	if c.Convert(cfg, LogOptions{MSL: true}) {
		t.Fatal("Convert succeeded without a session")
	}
	if !strings.Contains(c.ResultLog(), "MSL conversion error: ") || !strings.Contains(c.ResultLog(), "bad module") {
		t.Errorf("result log = %q", c.ResultLog())
	}
	if c.Results() != (ConversionResults{}) {
		t.Errorf("metadata should stay false, got %+v", c.Results())
	}
	if c.MSL() != "" {
		t.Errorf("MSL() = %q, want empty", c.MSL())
	}
	if !cfg.ShaderInputs[0].OutIsUsedByShader {
		t.Error("usage flags should not change without a session")
	}
}

func TestConvert_CompileError(t *testing.T) {
	tests := []struct {
		name    string
		logMSL  bool
		wantMSL string
	}{
		{"partial source kept", true, "partial"},
		{"partial source dropped", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSession()
			s.swizzle = true
			s.result = CompileResult{Source: "partial", Partial: true, Err: errors.New("unsupported opcode")}
			c := newTestConverter(t, &fakeEngine{session: s})
			cfg := testConfig()

			if c.Convert(cfg, LogOptions{MSL: tt.logMSL}) {
				t.Fatal("Convert should fail")
			}
			if c.MSL() != tt.wantMSL {
				t.Errorf("MSL() = %q, want %q", c.MSL(), tt.wantMSL)
			}
			if !strings.Contains(c.ResultLog(), "MSL conversion error: unsupported opcode\n\n") {
				t.Errorf("result log = %q", c.ResultLog())
			}
			if got := strings.Contains(c.ResultLog(), "Partially converted MSL:"); got != tt.logMSL {
				t.Errorf("partial dump logged = %v, want %v", got, tt.logMSL)
			}
			if s.closeCalls != 1 {
				t.Errorf("session closed %d times, want 1", s.closeCalls)
			}
			if !c.Results().NeedsSwizzleBuffer {
				t.Error("metadata should be queried after a compile error")
			}
			if !cfg.ShaderInputs[0].OutIsUsedByShader {
				t.Error("usage should be written back after a compile error")
			}
		})
	}
}

func TestConvert_EnginePanic(t *testing.T) {
	t.Run("compile", func(t *testing.T) {
		s := newFakeSession()
		s.compilePanic = true
		c := newTestConverter(t, &fakeEngine{session: s})

		if c.Convert(testConfig(), LogOptions{MSL: true}) {
			t.Fatal("Convert succeeded after the engine panicked")
		}
		if !strings.Contains(c.ResultLog(), "MSL conversion error: ") ||
			!strings.Contains(c.ResultLog(), "internal error: index out of range") {
			t.Errorf("result log = %q", c.ResultLog())
		}
		if s.closeCalls != 1 {
			t.Errorf("session closed %d times, want 1", s.closeCalls)
		}
	})
	t.Run("session", func(t *testing.T) {
		c := newTestConverter(t, &fakeEngine{panics: true})

		if c.Convert(testConfig(), LogOptions{}) {
			t.Fatal("Convert succeeded after the engine panicked")
		}
		if !strings.Contains(c.ResultLog(), "internal error: runtime error: stack overflow") {
			t.Errorf("result log = %q", c.ResultLog())
		}
	})
}

func TestConvert_ConfigurationError(t *testing.T) {
	s := newFakeSession()
	s.configErr = errors.New("location out of range")
	s.closeErr = errors.New("already closed")
	c := newTestConverter(t, &fakeEngine{session: s})

	if c.Convert(testConfig(), LogOptions{}) {
		t.Fatal("Convert should fail")
	}
	if s.compiled {
		t.Error("Compile should not run after a configuration error")
	}
	// Both inputs fail; both problems are reported.
	if n := strings.Count(c.ResultLog(), "location out of range"); n != 2 {
		t.Errorf("logged %d configuration problems, want 2:\n%s", n, c.ResultLog())
	}
	if s.closeCalls != 1 {
		t.Errorf("session closed %d times, want 1", s.closeCalls)
	}
}

func TestConvert_EntryPointError(t *testing.T) {
	s := newFakeSession()
	s.entryErr = NewError(ErrEntryPointNotFound, "no entry point %q", "main")
	c := newTestConverter(t, &fakeEngine{session: s})

	if c.Convert(testConfig(), LogOptions{}) {
		t.Fatal("Convert should fail")
	}
	if !strings.Contains(c.ResultLog(), "EntryPointNotFound") {
		t.Errorf("result log = %q", c.ResultLog())
	}
}

func TestConvert_Tessellation(t *testing.T) {
	tests := []struct {
		name      string
		stage     spirv.ExecutionModel
		patch     spirv.ExecutionMode
		points    uint32
		wantModes int
	}{
		{"patch and points", spirv.ExecutionModelTessellationControl, spirv.ExecutionModeTriangles, 3, 2},
		{"points only", spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModeMax, 4, 1},
		{"nothing requested", spirv.ExecutionModelTessellationControl, spirv.ExecutionModeMax, 0, 0},
		{"not a tessellation stage", spirv.ExecutionModelVertex, spirv.ExecutionModeTriangles, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSession()
			c := newTestConverter(t, &fakeEngine{session: s})
			cfg := testConfig()
			cfg.Options.EntryPointStage = tt.stage
			cfg.Options.TessPatchKind = tt.patch
			cfg.Options.NumTessControlPoints = tt.points

			c.Convert(cfg, LogOptions{})
			if len(s.modes) != tt.wantModes {
				t.Fatalf("set %d execution modes, want %d: %v", len(s.modes), tt.wantModes, s.modes)
			}
			if tt.points != 0 && tt.wantModes > 0 {
				last := s.modes[len(s.modes)-1]
				if last.mode != spirv.ExecutionModeOutputVertices || len(last.args) != 1 || last.args[0] != tt.points {
					t.Errorf("last mode = %+v, want OutputVertices %d", last, tt.points)
				}
			}
		})
	}
}

func TestConvert_DynamicBuffers(t *testing.T) {
	tests := []struct {
		name            string
		argumentBuffers bool
		wantRegistered  int
		wantNeedsBuffer bool
	}{
		{"argument buffers on", true, 1, true},
		{"argument buffers off", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSession()
			c := newTestConverter(t, &fakeEngine{session: s})
			cfg := testConfig()
			cfg.Options.MSL.ArgumentBuffers = tt.argumentBuffers
			cfg.DiscreteDescriptorSets = []uint32{1, 2}
			cfg.DynamicBufferDescriptors = []DynamicBufferDescriptor{
				{Stage: spirv.ExecutionModelVertex, Binding: 3},
				{Stage: spirv.ExecutionModelFragment, Binding: 4},
			}

			c.Convert(cfg, LogOptions{})
			if len(s.dynamic) != tt.wantRegistered {
				t.Errorf("registered %d dynamic buffers, want %d", len(s.dynamic), tt.wantRegistered)
			}
			if len(s.discrete) != 2 {
				t.Errorf("registered %d discrete sets, want 2", len(s.discrete))
			}
			if got := c.Results().NeedsDynamicOffsetBuffer; got != tt.wantNeedsBuffer {
				t.Errorf("NeedsDynamicOffsetBuffer = %v, want %v", got, tt.wantNeedsBuffer)
			}
		})
	}
}

func TestConvert_ConstExprSamplerRemap(t *testing.T) {
	s := newFakeSession()
	c := newTestConverter(t, &fakeEngine{session: s})
	cfg := testConfig()
	cfg.ResourceBindings[1].RequiresConstExprSampler = true

	c.Convert(cfg, LogOptions{})
	if len(s.remaps) != 1 || s.remaps[0] != (resourceKey{spirv.ExecutionModelFragment, 0, 1}) {
		t.Errorf("remaps = %v", s.remaps)
	}
}

func TestConvert_EntryPointMetadata(t *testing.T) {
	s := newFakeSession()
	s.info.Stage = spirv.ExecutionModelGLCompute
	s.info.WorkgroupSize = [3]uint32{0, 4, 2}
	s.info.Modes = []spirv.ExecutionMode{spirv.ExecutionModeSignedZeroInfNanPreserve}
	s.entryPoints = []EntryPointRef{{Name: "main", Stage: spirv.ExecutionModelGLCompute}}
	s.specX = SpecializationConstant{ID: 12, ConstantID: 3}
	c := newTestConverter(t, &fakeEngine{session: s})

	cfg := NewConversionConfiguration()
	if !c.Convert(cfg, LogOptions{}) {
		t.Fatalf("Convert failed:\n%s", c.ResultLog())
	}

	ep := c.Results().EntryPoint
	if ep.SupportsFastMath {
		t.Error("SignedZeroInfNanPreserve should disable fast math")
	}
	want := WorkgroupSize{
		Width:  WorkgroupDimension{Size: 1, IsSpecialized: true, SpecializationID: 3},
		Height: WorkgroupDimension{Size: 4},
		Depth:  WorkgroupDimension{Size: 2},
	}
	if ep.WorkgroupSize != want {
		t.Errorf("WorkgroupSize = %+v, want %+v", ep.WorkgroupSize, want)
	}
}

func TestConvert_GLSL(t *testing.T) {
	tests := []struct {
		name     string
		engine   func(*fakeSession) Engine
		wantLog  string
		wantFail bool
	}{
		{
			name: "reconstructed",
			engine: func(s *fakeSession) Engine {
				return &fakeGLSLEngine{fakeEngine{session: s}, CompileResult{Source: "#version 450"}}
			},
			wantLog: "Estimated original GLSL:\n#version 450\nEnd GLSL\n\n",
		},
		{
			name: "reconstruction failed",
			engine: func(s *fakeSession) Engine {
				return &fakeGLSLEngine{fakeEngine{session: s}, CompileResult{Err: errors.New("no glsl")}}
			},
			wantLog: "Original GLSL extraction error: no glsl\n\n",
		},
		{
			name:    "engine without reconstruction",
			engine:  func(s *fakeSession) Engine { return &fakeEngine{session: s} },
			wantLog: "Original GLSL extraction error: ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConverter(t, tt.engine(newFakeSession()))
			if !c.Convert(testConfig(), LogOptions{GLSL: true}) {
				t.Fatalf("GLSL reconstruction must not affect the outcome:\n%s", c.ResultLog())
			}
			if !strings.Contains(c.ResultLog(), tt.wantLog) {
				t.Errorf("result log = %q, want it to contain %q", c.ResultLog(), tt.wantLog)
			}
		})
	}
}

func TestConvert_LogSPIRV(t *testing.T) {
	c := newTestConverter(t, &fakeEngine{session: newFakeSession()})
	c.Convert(testConfig(), LogOptions{SPIRV: true})

	log := c.ResultLog()
	if !strings.HasPrefix(log, "Converting SPIR-V:\n") || !strings.Contains(log, "\nEnd SPIR-V\n\n") {
		t.Errorf("result log = %q", log)
	}
	if !strings.Contains(log, "OpEntryPoint") {
		t.Error("SPIR-V dump should hold the disassembly")
	}
}

func TestConvert_ResetsBetweenRuns(t *testing.T) {
	s := newFakeSession()
	s.result = CompileResult{Err: errors.New("boom")}
	c := newTestConverter(t, &fakeEngine{session: s})

	c.Convert(testConfig(), LogOptions{})
	s.result = CompileResult{Source: "ok"}
	if !c.Convert(testConfig(), LogOptions{}) {
		t.Fatal("second conversion should succeed")
	}
	if c.ResultLog() != "" {
		t.Errorf("result log not reset: %q", c.ResultLog())
	}
	if s.closeCalls != 2 {
		t.Errorf("session closed %d times, want 2", s.closeCalls)
	}
}

func TestSPIRVValidation(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		valid bool
	}{
		{"minimal header", []uint32{0x07230203, 0, 0, 0, 0}, true},
		{"zero magic", []uint32{0, 0, 0, 0, 0}, false},
		{"short", []uint32{0x07230203, 0, 0, 0}, false},
		{"schema set", []uint32{0x07230203, 0, 0, 0, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(&fakeEngine{})
			c.SetSPIRV(tt.words)
			if got := c.HasValidSPIRV(); got != tt.valid {
				t.Errorf("HasValidSPIRV() = %v, want %v", got, tt.valid)
			}
			err := c.ValidateSPIRV()
			if (err == nil) != tt.valid {
				t.Errorf("ValidateSPIRV() = %v", err)
			}
			var convErr *Error
			if err != nil && (!errors.As(err, &convErr) || convErr.Kind != ErrInvalidSPIRV) {
				t.Errorf("ValidateSPIRV() = %v, want an InvalidSPIRV error", err)
			}
		})
	}
}

func TestSetSPIRV_Copies(t *testing.T) {
	words := []uint32{0x07230203, 0, 0, 0, 0}
	c := NewConverter(&fakeEngine{})
	c.SetSPIRV(words)
	words[0] = 0

	if !c.HasValidSPIRV() {
		t.Error("SetSPIRV should copy its input")
	}
	c.SetSPIRV(words[:2])
	if len(c.SPIRV()) != 2 {
		t.Errorf("len(SPIRV()) = %d, want 2", len(c.SPIRV()))
	}
}

func TestSetSPIRVBytes(t *testing.T) {
	c := NewConverter(&fakeEngine{})
	if err := c.SetSPIRVBytes(spirv.Bytes(spirvtest.Fragment())); err != nil {
		t.Fatalf("SetSPIRVBytes: %v", err)
	}
	if !c.HasValidSPIRV() {
		t.Error("decoded module should be valid")
	}
	if err := c.SetSPIRVBytes([]byte{1, 2, 3}); err == nil {
		t.Error("SetSPIRVBytes should reject a partial word")
	}
}

func TestResultLogMessage(t *testing.T) {
	var l resultLog
	l.message("  padded \n")
	l.message("   ")
	l.source("Converted", "MSL", "src")

	want := "padded\n\nConverted MSL:\nsrc\nEnd MSL\n\n"
	if l.String() != want {
		t.Errorf("log = %q, want %q", l.String(), want)
	}
}
