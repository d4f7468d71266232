// Package spvmsl converts SPIR-V shaders to Metal Shading Language and keeps
// a comparable fingerprint of the bindings each shader uses.
//
// A ConversionConfiguration lists the stage inputs, resource bindings,
// discrete descriptor sets and dynamic buffers of a pipeline together with
// the MSL dialect options. Converter.Convert translates a module through an
// Engine and writes back, per input and per resource of the active stage,
// whether the shader references it. The flagged configuration can later be
// compared with Matches to reuse a cached translation:
//
//	conv := spvmsl.NewConverter(translate.New())
//	if err := conv.SetSPIRVBytes(data); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := spvmsl.NewConversionConfiguration()
//	cfg.Options.EntryPointName = "main"
//	cfg.Options.EntryPointStage = spirv.ExecutionModelFragment
//	if !conv.Convert(cfg, spvmsl.LogOptions{}) {
//	    log.Fatal(conv.ResultLog())
//	}
//	cache[key] = entry{cfg.UsedSubset(), conv.MSL(), conv.Results()}
//
// A later pipeline with configuration next can use the cached MSL when
// cached.Matches(next) reports true. AlignWith copies the usage flags of a
// cached configuration onto a new one without converting again.
//
// Conversion failures are reported as data: Convert returns false and
// ResultLog explains why. Nothing in the package panics on bad input.
package spvmsl
