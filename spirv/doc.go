// Package spirv decodes, inspects and assembles SPIR-V modules.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
//
// # Decoding and Validation
//
// A binary is turned into words with WordsFromBytes, which honours the
// byte order announced by the magic number. Validate performs the cheap
// header precheck (length, magic, schema); Parse walks the whole
// instruction stream and indexes names, decorations, entry points,
// execution modes, definitions and functions:
//
//	words, err := spirv.WordsFromBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	module, err := spirv.Parse(words)
//	if err != nil {
//		log.Fatal(err) // every structural problem, joined
//	}
//
// # Reflection
//
// Reflect computes the static interface of one entry point: the stage
// inputs and outputs it references (with locations, builtins and location
// spans), the resources it references (set, binding, kind), push constant
// use, workgroup size with its specialization constants, and whether a
// runtime array length is queried. Only functions reachable from the entry
// function through OpFunctionCall count as uses.
//
//	ep, _ := module.FindEntryPoint("main", spirv.ExecutionModelFragment)
//	refl, err := module.Reflect(ep)
//	used := refl.InputUsed(0)
//
// # Disassembly
//
// Disassemble renders a module as spvasm-like text.
//
// # Building Modules
//
// Builder assembles modules section by section in the SPIR-V logical
// layout order, regardless of the order in which helpers are called:
//
//	b := spirv.NewBuilder(spirv.Version1_3)
//	b.Capability(spirv.CapabilityShader)
//	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	float := b.TypeFloat(32)
//	vec4 := b.TypeVector(float, 4)
//	words := b.Words()
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
