// Package spirvtest assembles small SPIR-V modules for tests.
//
// Every fixture uses entry point "main" and documents which of its
// interface variables and resources the entry function references.
package spirvtest

import "github.com/gogpu/spvmsl/spirv"

// Fragment returns a fragment shader equivalent to
//
//	layout(location = 0) in vec4 color;        // used
//	layout(location = 1) in vec2 unusedUV;     // not used
//	layout(location = 0) out vec4 outColor;
//	layout(set = 0, binding = 1) uniform Tint { vec4 tint; };            // used
//	layout(set = 0, binding = 2) uniform texture2D tex;                  // used
//	layout(set = 0, binding = 3) uniform sampler smp;                    // used
//	layout(set = 1, binding = 0) uniform sampler2D unusedTex;            // not used
//	layout(push_constant) uniform PC { float scale; } pc;                // used
//
//	void main() {
//		outColor = color * tint * texture(sampler2D(tex, smp), vec2(0.5)) * pc.scale;
//	}
func Fragment() []uint32 {
	b := spirv.NewBuilder(spirv.Version1_0)
	b.Capability(spirv.CapabilityShader)
	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.TypeVoid()
	fnType := b.TypeFunction(void)
	f32 := b.TypeFloat(32)
	i32 := b.TypeInt(32, true)
	v2 := b.TypeVector(f32, 2)
	v4 := b.TypeVector(f32, 4)

	tintBlock := b.TypeStruct(v4)
	b.Name(tintBlock, "Tint")
	b.MemberName(tintBlock, 0, "tint")
	b.Decorate(tintBlock, spirv.DecorationBlock)
	b.MemberDecorate(tintBlock, 0, spirv.DecorationOffset, 0)
	pcBlock := b.TypeStruct(f32)
	b.Name(pcBlock, "PC")
	b.MemberName(pcBlock, 0, "scale")
	b.Decorate(pcBlock, spirv.DecorationBlock)
	b.MemberDecorate(pcBlock, 0, spirv.DecorationOffset, 0)

	img := b.TypeImage(spirv.ImageDesc{SampledType: f32, Dim: spirv.Dim2D, Sampled: 1, Format: spirv.ImageFormatUnknown})
	smp := b.TypeSampler()
	simg := b.TypeSampledImage(img)

	pInV4 := b.TypePointer(spirv.StorageClassInput, v4)
	pInV2 := b.TypePointer(spirv.StorageClassInput, v2)
	pOutV4 := b.TypePointer(spirv.StorageClassOutput, v4)
	pTint := b.TypePointer(spirv.StorageClassUniform, tintBlock)
	pUniV4 := b.TypePointer(spirv.StorageClassUniform, v4)
	pPC := b.TypePointer(spirv.StorageClassPushConstant, pcBlock)
	pPCf := b.TypePointer(spirv.StorageClassPushConstant, f32)
	pImg := b.TypePointer(spirv.StorageClassUniformConstant, img)
	pSmp := b.TypePointer(spirv.StorageClassUniformConstant, smp)
	pSimg := b.TypePointer(spirv.StorageClassUniformConstant, simg)

	c0 := b.Constant(i32, 0)
	half := b.ConstantFloat32(f32, 0.5)
	uv := b.ConstantComposite(v2, half, half)

	color := b.Variable(pInV4, spirv.StorageClassInput)
	b.Name(color, "color")
	b.Decorate(color, spirv.DecorationLocation, 0)
	unusedUV := b.Variable(pInV2, spirv.StorageClassInput)
	b.Name(unusedUV, "unusedUV")
	b.Decorate(unusedUV, spirv.DecorationLocation, 1)
	out := b.Variable(pOutV4, spirv.StorageClassOutput)
	b.Name(out, "outColor")
	b.Decorate(out, spirv.DecorationLocation, 0)
	tint := b.Variable(pTint, spirv.StorageClassUniform)
	b.Name(tint, "tint")
	binding(b, tint, 0, 1)
	pc := b.Variable(pPC, spirv.StorageClassPushConstant)
	b.Name(pc, "pc")
	tex := b.Variable(pImg, spirv.StorageClassUniformConstant)
	b.Name(tex, "tex")
	binding(b, tex, 0, 2)
	sam := b.Variable(pSmp, spirv.StorageClassUniformConstant)
	b.Name(sam, "smp")
	binding(b, sam, 0, 3)
	unusedTex := b.Variable(pSimg, spirv.StorageClassUniformConstant)
	b.Name(unusedTex, "unusedTex")
	binding(b, unusedTex, 1, 0)

	main := b.Function(void, fnType, spirv.FunctionControlNone)
	b.Name(main, "main")
	b.Label()
	c := b.Load(v4, color)
	t := b.Load(v4, b.AccessChain(pUniV4, tint, c0))
	ct := b.Op(spirv.OpFMul, v4, c, t)
	sampled := b.Op(spirv.OpSampledImage, simg, b.Load(img, tex), b.Load(smp, sam))
	s := b.Op(spirv.OpImageSampleImplicitLod, v4, sampled, uv)
	cts := b.Op(spirv.OpFMul, v4, ct, s)
	scale := b.Load(f32, b.AccessChain(pPCf, pc, c0))
	b.Store(out, b.Op(spirv.OpVectorTimesScalar, v4, cts, scale))
	b.Return()
	b.FunctionEnd()

	b.EntryPoint(spirv.ExecutionModelFragment, main, "main", color, unusedUV, out)
	b.ExecutionMode(main, spirv.ExecutionModeOriginUpperLeft)
	return b.Words()
}

// Vertex returns a vertex shader equivalent to
//
//	layout(location = 0) in vec3 pos;       // used
//	layout(location = 1) in vec2 uv;        // used
//	layout(location = 2) in float unused;   // not used
//	layout(location = 0) out vec2 vUV;
//	invariant gl_Position;
//	layout(set = 0, binding = 0) uniform Camera { mat4 mvp; };   // used
//
//	void main() {
//		vUV = uv;
//		gl_Position = mvp * vec4(pos, 1.0);
//	}
func Vertex() []uint32 {
	b := spirv.NewBuilder(spirv.Version1_0)
	b.Capability(spirv.CapabilityShader)
	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.TypeVoid()
	fnType := b.TypeFunction(void)
	f32 := b.TypeFloat(32)
	i32 := b.TypeInt(32, true)
	v2 := b.TypeVector(f32, 2)
	v3 := b.TypeVector(f32, 3)
	v4 := b.TypeVector(f32, 4)
	m4 := b.TypeMatrix(v4, 4)

	camera := b.TypeStruct(m4)
	b.Name(camera, "Camera")
	b.MemberName(camera, 0, "mvp")
	b.Decorate(camera, spirv.DecorationBlock)
	b.MemberDecorate(camera, 0, spirv.DecorationOffset, 0)
	b.MemberDecorate(camera, 0, spirv.DecorationColMajor)
	b.MemberDecorate(camera, 0, spirv.DecorationMatrixStride, 16)

	pInV3 := b.TypePointer(spirv.StorageClassInput, v3)
	pInV2 := b.TypePointer(spirv.StorageClassInput, v2)
	pInF := b.TypePointer(spirv.StorageClassInput, f32)
	pOutV2 := b.TypePointer(spirv.StorageClassOutput, v2)
	pOutV4 := b.TypePointer(spirv.StorageClassOutput, v4)
	pCamera := b.TypePointer(spirv.StorageClassUniform, camera)
	pUniM4 := b.TypePointer(spirv.StorageClassUniform, m4)

	c0 := b.Constant(i32, 0)
	one := b.ConstantFloat32(f32, 1)

	pos := b.Variable(pInV3, spirv.StorageClassInput)
	b.Name(pos, "pos")
	b.Decorate(pos, spirv.DecorationLocation, 0)
	uv := b.Variable(pInV2, spirv.StorageClassInput)
	b.Name(uv, "uv")
	b.Decorate(uv, spirv.DecorationLocation, 1)
	unused := b.Variable(pInF, spirv.StorageClassInput)
	b.Name(unused, "unused")
	b.Decorate(unused, spirv.DecorationLocation, 2)
	vUV := b.Variable(pOutV2, spirv.StorageClassOutput)
	b.Name(vUV, "vUV")
	b.Decorate(vUV, spirv.DecorationLocation, 0)
	position := b.Variable(pOutV4, spirv.StorageClassOutput)
	b.Name(position, "position")
	b.Decorate(position, spirv.DecorationBuiltIn, uint32(spirv.BuiltInPosition))
	b.Decorate(position, spirv.DecorationInvariant)
	cam := b.Variable(pCamera, spirv.StorageClassUniform)
	b.Name(cam, "camera")
	binding(b, cam, 0, 0)

	main := b.Function(void, fnType, spirv.FunctionControlNone)
	b.Name(main, "main")
	b.Label()
	b.Store(vUV, b.Load(v2, uv))
	p := b.Load(v3, pos)
	x := b.CompositeExtract(f32, p, 0)
	y := b.CompositeExtract(f32, p, 1)
	z := b.CompositeExtract(f32, p, 2)
	p4 := b.CompositeConstruct(v4, x, y, z, one)
	mvp := b.Load(m4, b.AccessChain(pUniM4, cam, c0))
	b.Store(position, b.Op(spirv.OpMatrixTimesVector, v4, mvp, p4))
	b.Return()
	b.FunctionEnd()

	b.EntryPoint(spirv.ExecutionModelVertex, main, "main", pos, uv, unused, vUV, position)
	return b.Words()
}

// Compute returns a compute shader equivalent to
//
//	layout(local_size_x = 8, local_size_y = 4, local_size_z = 1) in;
//	layout(set = 0, binding = 0) buffer Data { uint data[]; };
//
//	void main() {
//		uint i = gl_GlobalInvocationID.x;
//		data[i] = data[i] + uint(data.length());
//	}
//
// With specialized set, the x dimension is instead overridden through a
// WorkgroupSize builtin composite whose x component is the specialization
// constant with SpecId 3 (default 16).
func Compute(specialized bool) []uint32 {
	b := spirv.NewBuilder(spirv.Version1_3)
	b.Capability(spirv.CapabilityShader)
	b.MemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	void := b.TypeVoid()
	fnType := b.TypeFunction(void)
	u32 := b.TypeInt(32, false)
	i32 := b.TypeInt(32, true)
	v3u := b.TypeVector(u32, 3)
	rta := b.TypeRuntimeArray(u32)
	b.Decorate(rta, spirv.DecorationArrayStride, 4)
	data := b.TypeStruct(rta)
	b.Name(data, "Data")
	b.MemberName(data, 0, "data")
	b.Decorate(data, spirv.DecorationBlock)
	b.MemberDecorate(data, 0, spirv.DecorationOffset, 0)

	pInV3u := b.TypePointer(spirv.StorageClassInput, v3u)
	pData := b.TypePointer(spirv.StorageClassStorageBuffer, data)
	pElem := b.TypePointer(spirv.StorageClassStorageBuffer, u32)

	c0 := b.Constant(i32, 0)
	if specialized {
		x := b.SpecConstant(u32, 16)
		b.Decorate(x, spirv.DecorationSpecID, 3)
		y := b.Constant(u32, 4)
		z := b.Constant(u32, 1)
		wg := b.SpecConstantComposite(v3u, x, y, z)
		b.Decorate(wg, spirv.DecorationBuiltIn, uint32(spirv.BuiltInWorkgroupSize))
	}

	gid := b.Variable(pInV3u, spirv.StorageClassInput)
	b.Name(gid, "gid")
	b.Decorate(gid, spirv.DecorationBuiltIn, uint32(spirv.BuiltInGlobalInvocationID))
	buf := b.Variable(pData, spirv.StorageClassStorageBuffer)
	b.Name(buf, "buf")
	binding(b, buf, 0, 0)

	main := b.Function(void, fnType, spirv.FunctionControlNone)
	b.Name(main, "main")
	b.Label()
	i := b.CompositeExtract(u32, b.Load(v3u, gid), 0)
	elem := b.AccessChain(pElem, buf, c0, i)
	length := b.Op(spirv.OpArrayLength, u32, buf, 0)
	b.Store(elem, b.Op(spirv.OpIAdd, u32, b.Load(u32, elem), length))
	b.Return()
	b.FunctionEnd()

	b.EntryPoint(spirv.ExecutionModelGLCompute, main, "main", gid)
	b.ExecutionMode(main, spirv.ExecutionModeLocalSize, 8, 4, 1)
	return b.Words()
}

func binding(b *spirv.Builder, id, set, bind uint32) {
	b.Decorate(id, spirv.DecorationDescriptorSet, set)
	b.Decorate(id, spirv.DecorationBinding, bind)
}
