package spvmsl

import (
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gogpu/spvmsl/spirv"
)

// LogOptions selects the source dumps written to the result log.
type LogOptions struct {
	// SPIRV dumps the disassembled input before conversion.
	SPIRV bool

	// MSL dumps the generated MSL, or the partial MSL on failure.
	MSL bool

	// GLSL dumps an estimate of the original GLSL when the engine
	// implements GLSLReconstructor.
	GLSL bool
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithLogger sets the logger used for debug events. It defaults to the
// package logger.
func WithLogger(l *zap.Logger) ConverterOption {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// Converter converts SPIR-V to MSL through an Engine and records which
// bindings the shader uses in the configuration it was given.
//
// A Converter is not safe for concurrent use. It may be reused for any
// number of sequential conversions.
type Converter struct {
	engine Engine
	logger *zap.Logger

	spirv        []uint32
	msl          string
	log          resultLog
	results      ConversionResults
	wasConverted bool
}

// NewConverter returns a Converter that translates with engine.
func NewConverter(engine Engine, opts ...ConverterOption) *Converter {
	c := &Converter{
		engine: engine,
		logger: Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSPIRV copies words into the converter, replacing any previous module.
func (c *Converter) SetSPIRV(words []uint32) {
	c.spirv = append(c.spirv[:0], words...)
}

// SetSPIRVBytes decodes a SPIR-V binary and stores its words.
func (c *Converter) SetSPIRVBytes(data []byte) error {
	words, err := spirv.WordsFromBytes(data)
	if err != nil {
		return WrapError(ErrInvalidSPIRV, err, "cannot decode SPIR-V")
	}
	c.SetSPIRV(words)
	return nil
}

// SPIRV returns the stored words. The slice must not be modified.
func (c *Converter) SPIRV() []uint32 {
	return c.spirv
}

// HasValidSPIRV reports whether the stored words carry a valid SPIR-V
// header. Call it before Convert.
func (c *Converter) HasValidSPIRV() bool {
	return spirv.IsValid(c.spirv)
}

// ValidateSPIRV is HasValidSPIRV returning the reason for rejection.
func (c *Converter) ValidateSPIRV() error {
	if err := spirv.Validate(c.spirv); err != nil {
		return WrapError(ErrInvalidSPIRV, err, "header check failed")
	}
	return nil
}

// MSL returns the source produced by the last conversion. After a failed
// conversion it holds the partial source when MSL logging was requested.
func (c *Converter) MSL() string {
	return c.msl
}

// ResultLog returns the diagnostic log of the last conversion.
func (c *Converter) ResultLog() string {
	return c.log.String()
}

// Results returns the metadata of the last conversion.
func (c *Converter) Results() ConversionResults {
	return c.results
}

// WasConverted reports whether the last conversion succeeded.
func (c *Converter) WasConverted() bool {
	return c.wasConverted
}

// Convert translates the stored SPIR-V as described by cfg and reports
// whether it succeeded. Failures are described in ResultLog.
//
// Whatever the outcome, Convert fills Results and writes the usage flags
// back into cfg: every shader input, and the resource bindings of the
// active stage. Bindings of other stages are left untouched.
func (c *Converter) Convert(cfg *ConversionConfiguration, opts LogOptions) bool {
	c.wasConverted = true
	c.log.reset()
	c.msl = ""
	c.results.Reset()

	if opts.SPIRV {
		c.log.source("Converting", "SPIR-V", spirv.Disassemble(c.spirv))
	}

	session, err := c.newSession()
	if err != nil {
		c.logError(WrapError(ErrSessionCreate, err, "cannot create session"))
	} else {
		c.convertWith(session, cfg, opts)
	}

	if opts.GLSL {
		c.logGLSL()
	}

	c.logger.Debug("conversion finished",
		zap.Bool("converted", c.wasConverted),
		zap.String("entryPoint", c.results.EntryPoint.MTLFunctionName),
		zap.Int("mslBytes", len(c.msl)))
	return c.wasConverted
}

// convertWith runs the conversion steps that need a session and releases
// the session before returning.
func (c *Converter) convertWith(session Session, cfg *ConversionConfiguration, opts LogOptions) {
	defer c.recoverCompile()
	defer func() {
		if err := session.Close(); err != nil {
			c.logger.Warn("closing session", zap.Error(err))
		}
	}()

	if err := configure(session, cfg); err != nil {
		c.logError(err)
	} else {
		res := session.Compile()
		switch {
		case res.Err != nil:
			c.logError(res.Err)
			if opts.MSL {
				c.msl = res.Source
				c.log.source("Partially converted", "MSL", c.msl)
			}
		default:
			c.msl = res.Source
			if opts.MSL {
				c.log.source("Converted", "MSL", c.msl)
			}
		}
	}

	c.populateEntryPoint(session, cfg.Options)
	c.results.IsRasterizationDisabled = session.IsRasterizationDisabled()
	c.results.IsPositionInvariant = session.IsPositionInvariant()
	c.results.NeedsSwizzleBuffer = session.NeedsSwizzleBuffer()
	c.results.NeedsOutputBuffer = session.NeedsOutputBuffer()
	c.results.NeedsPatchOutputBuffer = session.NeedsPatchOutputBuffer()
	c.results.NeedsBufferSizeBuffer = session.NeedsBufferSizeBuffer()
	c.results.NeedsInputThreadgroupMem = session.NeedsInputThreadgroupMem()
	c.results.NeedsDispatchBaseBuffer = session.NeedsDispatchBaseBuffer()
	c.results.NeedsViewRangeBuffer = session.NeedsViewRangeBuffer()

	stage := cfg.Options.EntryPointStage
	c.results.NeedsDynamicOffsetBuffer = cfg.Options.MSL.ArgumentBuffers &&
		slices.ContainsFunc(cfg.DynamicBufferDescriptors, func(db DynamicBufferDescriptor) bool {
			return db.Stage == stage
		})

	var inputs, resources int
	for i := range cfg.ShaderInputs {
		si := &cfg.ShaderInputs[i]
		si.OutIsUsedByShader = session.IsShaderInputUsed(si.Location)
		if si.OutIsUsedByShader {
			inputs++
		}
	}
	for i := range cfg.ResourceBindings {
		rb := &cfg.ResourceBindings[i]
		if rb.Stage != stage {
			continue
		}
		rb.OutIsUsedByShader = session.IsResourceUsed(rb.Stage, rb.DescriptorSet, rb.Binding)
		if rb.OutIsUsedByShader {
			resources++
		}
	}
	c.logger.Debug("usage written back",
		zap.Stringer("stage", stage),
		zap.Int("usedInputs", inputs),
		zap.Int("usedResources", resources))
}

func (c *Converter) newSession() (session Session, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("session creation panicked", zap.Any("panic", r), zap.Stack("stack"))
			err = NewError(ErrCompile, "internal error: %v", r)
		}
	}()
	return c.engine.NewSession(c.spirv)
}

// recoverCompile turns a panic raised by the engine into a conversion
// error. It must be deferred directly.
func (c *Converter) recoverCompile() {
	if r := recover(); r != nil {
		c.logger.Error("conversion panicked", zap.Any("panic", r), zap.Stack("stack"))
		c.logError(NewError(ErrCompile, "internal error: %v", r))
	}
}

// configure applies cfg to session. Problems with individual bindings are
// collected so that all of them are reported at once.
func configure(session Session, cfg *ConversionConfiguration) error {
	o := cfg.Options
	if o.HasEntryPoint() {
		if err := session.SetEntryPoint(o.EntryPointName, o.EntryPointStage); err != nil {
			return err
		}
	}

	if o.EntryPointStage.IsTessellation() {
		if o.TessPatchKind != spirv.ExecutionModeMax {
			session.SetExecutionMode(o.TessPatchKind)
		}
		if o.NumTessControlPoints != 0 {
			session.SetExecutionMode(spirv.ExecutionModeOutputVertices, o.NumTessControlPoints)
		}
	}

	session.SetMSLOptions(o.MSL)
	session.SetCommonOptions(CommonOptions{FlipVertexY: o.ShouldFlipVertexY})

	var errs error
	for _, si := range cfg.ShaderInputs {
		errs = multierr.Append(errs, session.AddShaderInput(si))
	}
	for _, rb := range cfg.ResourceBindings {
		errs = multierr.Append(errs, session.AddResourceBinding(rb))
		if rb.RequiresConstExprSampler {
			errs = multierr.Append(errs,
				session.RemapConstExprSampler(rb.Stage, rb.DescriptorSet, rb.Binding, rb.ConstExprSampler))
		}
	}
	for _, set := range cfg.DiscreteDescriptorSets {
		session.AddDiscreteDescriptorSet(set)
	}
	if o.MSL.ArgumentBuffers {
		for _, db := range cfg.DynamicBufferDescriptors {
			if db.Stage == o.EntryPointStage {
				session.AddDynamicBuffer(db.DescriptorSet, db.Binding, db.Index)
			}
		}
	}
	return errs
}

// populateEntryPoint fills the entry point metadata. Lookup failures leave
// the metadata at its zero state apart from the workgroup size minimums.
func (c *Converter) populateEntryPoint(session Session, o ConversionOptions) {
	name, stage := o.EntryPointName, o.EntryPointStage
	if !o.HasEntryPoint() {
		eps := session.EntryPoints()
		if len(eps) == 0 {
			return
		}
		name, stage = eps[0].Name, eps[0].Stage
	}

	info, err := session.EntryPoint(name, stage)
	if err != nil {
		c.logger.Debug("entry point lookup failed", zap.String("name", name), zap.Error(err))
		return
	}

	ep := &c.results.EntryPoint
	ep.MTLFunctionName = info.MSLName
	ep.SupportsFastMath = !info.HasMode(spirv.ExecutionModeSignedZeroInfNanPreserve)

	x, y, z := session.WorkgroupSizeSpecializationConstants()
	ep.WorkgroupSize.Width = newWorkgroupDimension(info.WorkgroupSize[0], x)
	ep.WorkgroupSize.Height = newWorkgroupDimension(info.WorkgroupSize[1], y)
	ep.WorkgroupSize.Depth = newWorkgroupDimension(info.WorkgroupSize[2], z)
}

// logGLSL appends the estimated original GLSL, or the reason it could not
// be recovered. It never changes the conversion outcome.
func (c *Converter) logGLSL() {
	r, ok := c.engine.(GLSLReconstructor)
	if !ok {
		c.log.message("Original GLSL extraction error: engine cannot reconstruct GLSL")
		return
	}
	res := r.ReconstructGLSL(c.spirv)
	if res.Err != nil {
		c.log.message("Original GLSL extraction error: " + res.Err.Error())
		if res.Partial {
			c.log.source("Partially converted", "GLSL", res.Source)
		}
		return
	}
	c.log.source("Estimated original", "GLSL", res.Source)
}

// logError appends an MSL conversion error to the log and marks the
// conversion failed.
func (c *Converter) logError(err error) {
	c.log.message("MSL conversion error: " + err.Error())
	c.wasConverted = false
}
