// Package translate is the bundled spvmsl.Engine. It lifts the entry point
// of a SPIR-V module into naga IR and generates MSL with the naga MSL
// backend.
//
// # Usage
//
//	engine := translate.New(translate.WithLogger(logger))
//	conv := spvmsl.NewConverter(engine)
//	conv.SetSPIRV(words)
//	ok := conv.Convert(cfg, spvmsl.LogOptions{MSL: true})
//
// # Supported subset
//
// Vertex, fragment and compute entry points are translated. The entry
// function must be self-contained: function calls, loops and switches are
// reported as ErrUnsupported. Structured selections (OpSelectionMerge)
// become if statements, and phi nodes at their merge blocks become local
// variables assigned by each predecessor.
//
// Stage inputs become entry point arguments and stage outputs are gathered
// into an output struct returned by every OpReturn. Uniform, storage and
// workgroup variables become global variables; push constants are passed
// in the buffer named by msl.Options.PushConstantBufferIndex unless a
// resource binding with the push constant descriptor set overrides it.
// Combined image samplers are split into a texture and a sampler sharing
// the descriptor binding.
//
// Usage queries and metadata predicates are answered from static reflection
// of the selected entry point and do not require a successful compile.
package translate
