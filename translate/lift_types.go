package translate

import (
	"math"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl/spirv"
)

var (
	scalarBool = ir.ScalarType{Kind: ir.ScalarBool, Width: 1}
	scalarF32  = ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}
	scalarI32  = ir.ScalarType{Kind: ir.ScalarSint, Width: 4}
	scalarU32  = ir.ScalarType{Kind: ir.ScalarUint, Width: 4}
)

// addType appends a type to the arena. Unnamed scalar, vector, matrix and
// opaque types are shared.
func (l *lifter) addType(name string, inner ir.TypeInner) ir.TypeHandle {
	shared := false
	if name == "" {
		switch inner.(type) {
		case ir.ScalarType, ir.VectorType, ir.MatrixType, ir.SamplerType, ir.ImageType:
			shared = true
			if h, ok := l.inners[inner]; ok {
				return h
			}
		}
	}
	h := ir.TypeHandle(len(l.out.Types))
	l.out.Types = append(l.out.Types, ir.Type{Name: name, Inner: inner})
	if shared {
		l.inners[inner] = h
	}
	return h
}

func (l *lifter) scalarType(s ir.ScalarType) ir.TypeHandle { return l.addType("", s) }

func (l *lifter) vectorType(size ir.VectorSize, s ir.ScalarType) ir.TypeHandle {
	return l.addType("", ir.VectorType{Size: size, Scalar: s})
}

// typeOf lifts a SPIR-V type id.
func (l *lifter) typeOf(id uint32) (ir.TypeHandle, error) {
	if h, ok := l.types[id]; ok {
		return h, nil
	}
	inst, ok := l.mod.Def(id)
	if !ok {
		return 0, invalid("type %%%d is not defined", id)
	}
	if l.typeBusy[id] {
		return 0, invalid("type %%%d contains itself", id)
	}
	l.typeBusy[id] = true
	defer delete(l.typeBusy, id)
	ops := inst.Operands()
	var h ir.TypeHandle
	switch inst.Opcode {
	case spirv.OpTypeBool, spirv.OpTypeInt, spirv.OpTypeFloat:
		s, err := l.scalarOf(id)
		if err != nil {
			return 0, err
		}
		h = l.scalarType(s)
	case spirv.OpTypeVector:
		s, err := l.scalarOf(ops[0])
		if err != nil {
			return 0, err
		}
		if ops[1] < 2 || ops[1] > 4 {
			return 0, unsupported("%d-component vector", ops[1])
		}
		h = l.vectorType(ir.VectorSize(ops[1]), s)
	case spirv.OpTypeMatrix:
		col, ok := l.mod.Def(ops[0])
		if !ok || col.Opcode != spirv.OpTypeVector {
			return 0, invalid("matrix %%%d has a non-vector column", id)
		}
		if ops[1] < 2 || ops[1] > 4 || col.Operands()[1] < 2 || col.Operands()[1] > 4 {
			return 0, unsupported("%dx%d matrix", ops[1], col.Operands()[1])
		}
		s, err := l.scalarOf(col.Operands()[0])
		if err != nil {
			return 0, err
		}
		h = l.addType("", ir.MatrixType{
			Columns: ir.VectorSize(ops[1]),
			Rows:    ir.VectorSize(col.Operands()[1]),
			Scalar:  s,
		})
	case spirv.OpTypeArray, spirv.OpTypeRuntimeArray:
		base, err := l.typeOf(ops[0])
		if err != nil {
			return 0, err
		}
		arr := ir.ArrayType{Base: base}
		if inst.Opcode == spirv.OpTypeArray {
			n, ok := l.mod.ConstantValue(ops[1])
			if !ok {
				return 0, unsupported("array length %%%d is not a constant", ops[1])
			}
			arr.Size.Constant = &n
		}
		if stride, ok := l.mod.DecorationValue(id, spirv.DecorationArrayStride); ok {
			arr.Stride = stride
		} else {
			arr.Stride = roundUp(ir.TypeSize(l.out, base), l.alignOf(base))
		}
		h = l.addType("", arr)
	case spirv.OpTypeStruct:
		var err error
		if h, err = l.structType(id, ops); err != nil {
			return 0, err
		}
	case spirv.OpTypeImage:
		img, err := l.imageType(id, ir.StorageAccessReadWrite)
		if err != nil {
			return 0, err
		}
		h = l.addType("", img)
	case spirv.OpTypeSampler:
		h = l.addType("", ir.SamplerType{})
	default:
		return 0, unsupported("type %s", inst.Opcode)
	}
	l.types[id] = h
	return h, nil
}

func (l *lifter) scalarOf(id uint32) (ir.ScalarType, error) {
	inst, ok := l.mod.Def(id)
	if !ok {
		return ir.ScalarType{}, invalid("type %%%d is not defined", id)
	}
	ops := inst.Operands()
	switch inst.Opcode {
	case spirv.OpTypeBool:
		return scalarBool, nil
	case spirv.OpTypeInt:
		kind := ir.ScalarUint
		if ops[1] != 0 {
			kind = ir.ScalarSint
		}
		return ir.ScalarType{Kind: kind, Width: uint8(ops[0] / 8)}, nil
	case spirv.OpTypeFloat:
		return ir.ScalarType{Kind: ir.ScalarFloat, Width: uint8(ops[0] / 8)}, nil
	}
	return ir.ScalarType{}, unsupported("%s as a scalar type", inst.Opcode)
}

func (l *lifter) structType(id uint32, members []uint32) (ir.TypeHandle, error) {
	st := ir.StructType{Members: make([]ir.StructMember, len(members))}
	var end, align uint32 = 0, 1
	for i, m := range members {
		mt, err := l.typeOf(m)
		if err != nil {
			return 0, err
		}
		a := l.alignOf(mt)
		offset := roundUp(end, a)
		if lits, ok := l.mod.MemberDecoration(id, uint32(i), spirv.DecorationOffset); ok && len(lits) > 0 {
			offset = lits[0]
		}
		name := l.mod.MemberNames[id][uint32(i)]
		if name == "" {
			name = "member"
		}
		st.Members[i] = ir.StructMember{Name: name, Type: mt, Offset: offset}
		end = max(end, offset+ir.TypeSize(l.out, mt))
		align = max(align, a)
	}
	st.Span = roundUp(end, align)
	name := l.mod.Names[id]
	if name == "" {
		name = "type"
	}
	return l.addType(name, st), nil
}

// alignOf returns the natural alignment of a lifted type: vec3 aligns like
// vec4 and matrices like their columns.
func (l *lifter) alignOf(h ir.TypeHandle) uint32 {
	switch t := l.out.Types[h].Inner.(type) {
	case ir.ScalarType:
		return uint32(t.Width)
	case ir.VectorType:
		if t.Size == ir.Vec2 {
			return 2 * uint32(t.Scalar.Width)
		}
		return 4 * uint32(t.Scalar.Width)
	case ir.MatrixType:
		if t.Rows == ir.Vec2 {
			return 2 * uint32(t.Scalar.Width)
		}
		return 4 * uint32(t.Scalar.Width)
	case ir.ArrayType:
		return l.alignOf(t.Base)
	case ir.StructType:
		a := uint32(1)
		for _, m := range t.Members {
			a = max(a, l.alignOf(m.Type))
		}
		return a
	}
	return 4
}

func roundUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// imageType lifts an OpTypeImage. access only applies to storage images.
func (l *lifter) imageType(id uint32, access ir.StorageAccess) (ir.ImageType, error) {
	inst, _ := l.mod.Def(id)
	ops := inst.Operands()
	if len(ops) < 7 {
		return ir.ImageType{}, invalid("image type %%%d is truncated", id)
	}
	img := ir.ImageType{Arrayed: ops[3] == 1, Multisampled: ops[4] == 1}
	switch spirv.Dim(ops[1]) {
	case spirv.Dim1D:
		img.Dim = ir.Dim1D
	case spirv.Dim2D:
		img.Dim = ir.Dim2D
	case spirv.Dim3D:
		img.Dim = ir.Dim3D
	case spirv.DimCube:
		img.Dim = ir.DimCube
	default:
		return ir.ImageType{}, unsupported("image dimension %s", spirv.Dim(ops[1]))
	}
	s, err := l.scalarOf(ops[0])
	if err != nil {
		return ir.ImageType{}, err
	}
	switch {
	case ops[5] == 2:
		img.Class = ir.ImageClassStorage
		img.StorageAccess = access
		img.StorageFormat = storageFormat(spirv.ImageFormat(ops[6]), s.Kind)
	case ops[2] == 1:
		img.Class = ir.ImageClassDepth
	default:
		img.Class = ir.ImageClassSampled
		img.SampledKind = s.Kind
	}
	return img, nil
}

var storageFormats = map[spirv.ImageFormat]ir.StorageFormat{
	spirv.ImageFormatRgba32f:      ir.StorageFormatRgba32Float,
	spirv.ImageFormatRgba16f:      ir.StorageFormatRgba16Float,
	spirv.ImageFormatR32f:         ir.StorageFormatR32Float,
	spirv.ImageFormatRgba8:        ir.StorageFormatRgba8Unorm,
	spirv.ImageFormatRgba8Snorm:   ir.StorageFormatRgba8Snorm,
	spirv.ImageFormatRg32f:        ir.StorageFormatRg32Float,
	spirv.ImageFormatRg16f:        ir.StorageFormatRg16Float,
	spirv.ImageFormatR11fG11fB10f: ir.StorageFormatRg11b10Ufloat,
	spirv.ImageFormatR16f:         ir.StorageFormatR16Float,
	spirv.ImageFormatRgba16:       ir.StorageFormatRgba16Unorm,
	spirv.ImageFormatRgb10A2:      ir.StorageFormatRgb10a2Unorm,
	spirv.ImageFormatRg16:         ir.StorageFormatRg16Unorm,
	spirv.ImageFormatRg8:          ir.StorageFormatRg8Unorm,
	spirv.ImageFormatR16:          ir.StorageFormatR16Unorm,
	spirv.ImageFormatR8:           ir.StorageFormatR8Unorm,
	spirv.ImageFormatRgba16Snorm:  ir.StorageFormatRgba16Snorm,
	spirv.ImageFormatRg16Snorm:    ir.StorageFormatRg16Snorm,
	spirv.ImageFormatRg8Snorm:     ir.StorageFormatRg8Snorm,
	spirv.ImageFormatR16Snorm:     ir.StorageFormatR16Snorm,
	spirv.ImageFormatR8Snorm:      ir.StorageFormatR8Snorm,
	spirv.ImageFormatRgba32i:      ir.StorageFormatRgba32Sint,
	spirv.ImageFormatRgba16i:      ir.StorageFormatRgba16Sint,
	spirv.ImageFormatRgba8i:       ir.StorageFormatRgba8Sint,
	spirv.ImageFormatR32i:         ir.StorageFormatR32Sint,
	spirv.ImageFormatRg32i:        ir.StorageFormatRg32Sint,
	spirv.ImageFormatRg16i:        ir.StorageFormatRg16Sint,
	spirv.ImageFormatRg8i:         ir.StorageFormatRg8Sint,
	spirv.ImageFormatR16i:         ir.StorageFormatR16Sint,
	spirv.ImageFormatR8i:          ir.StorageFormatR8Sint,
	spirv.ImageFormatRgba32ui:     ir.StorageFormatRgba32Uint,
	spirv.ImageFormatRgba16ui:     ir.StorageFormatRgba16Uint,
	spirv.ImageFormatRgba8ui:      ir.StorageFormatRgba8Uint,
	spirv.ImageFormatR32ui:        ir.StorageFormatR32Uint,
	spirv.ImageFormatRgb10a2ui:    ir.StorageFormatRgb10a2Uint,
	spirv.ImageFormatRg32ui:       ir.StorageFormatRg32Uint,
	spirv.ImageFormatRg16ui:       ir.StorageFormatRg16Uint,
	spirv.ImageFormatRg8ui:        ir.StorageFormatRg8Uint,
	spirv.ImageFormatR16ui:        ir.StorageFormatR16Uint,
	spirv.ImageFormatR8ui:         ir.StorageFormatR8Uint,
}

// storageFormat maps an image format. Unknown formats, legal for images
// that are only read, become the four-component 32-bit format of the
// sampled type.
func storageFormat(f spirv.ImageFormat, kind ir.ScalarKind) ir.StorageFormat {
	if sf, ok := storageFormats[f]; ok {
		return sf
	}
	switch kind {
	case ir.ScalarSint:
		return ir.StorageFormatRgba32Sint
	case ir.ScalarUint:
		return ir.StorageFormatRgba32Uint
	}
	return ir.StorageFormatRgba32Float
}

// innerOf returns the lifted type of a SPIR-V type id.
func (l *lifter) innerOf(id uint32) (ir.TypeInner, error) {
	h, err := l.typeOf(id)
	if err != nil {
		return nil, err
	}
	return l.out.Types[h].Inner, nil
}

// literal builds the literal of a scalar constant from its words.
func literal(s ir.ScalarType, words []uint32) (ir.Literal, error) {
	var lo, hi uint32
	if len(words) > 0 {
		lo = words[0]
	}
	if len(words) > 1 {
		hi = words[1]
	}
	wide := uint64(hi)<<32 | uint64(lo)
	switch {
	case s.Kind == ir.ScalarBool:
		return ir.Literal{Value: ir.LiteralBool(lo != 0)}, nil
	case s.Kind == ir.ScalarFloat && s.Width == 2:
		return ir.Literal{Value: ir.LiteralF16(halfToFloat(uint16(lo)))}, nil
	case s.Kind == ir.ScalarFloat && s.Width == 4:
		return ir.Literal{Value: ir.LiteralF32(math.Float32frombits(lo))}, nil
	case s.Kind == ir.ScalarFloat && s.Width == 8:
		return ir.Literal{Value: ir.LiteralF64(math.Float64frombits(wide))}, nil
	case s.Kind == ir.ScalarSint && s.Width == 4:
		return ir.Literal{Value: ir.LiteralI32(int32(lo))}, nil
	case s.Kind == ir.ScalarUint && s.Width == 4:
		return ir.Literal{Value: ir.LiteralU32(lo)}, nil
	case s.Kind == ir.ScalarSint && s.Width == 8:
		return ir.Literal{Value: ir.LiteralI64(int64(wide))}, nil
	case s.Kind == ir.ScalarUint && s.Width == 8:
		return ir.Literal{Value: ir.LiteralU64(wide)}, nil
	}
	return ir.Literal{}, unsupported("%d-bit %s constant", s.Width*8, kindName(s.Kind))
}

// scalarBits returns the constant bit pattern naga stores for a scalar of s.
func scalarBits(s ir.ScalarType, words []uint32) uint64 {
	var v uint64
	for i, w := range words {
		if i > 1 {
			break
		}
		v |= uint64(w) << (32 * i)
	}
	if s.Width < 8 {
		v &= 1<<(8*uint(s.Width)) - 1
	}
	return v
}

func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff
	switch {
	case exp == 0 && frac == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		for frac&0x400 == 0 {
			frac <<= 1
			exp--
		}
		exp++
		frac &= 0x3ff
	case exp == 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | frac<<13)
	}
	return math.Float32frombits(sign | (exp+112)<<23 | frac<<13)
}

func kindName(k ir.ScalarKind) string {
	switch k {
	case ir.ScalarSint:
		return "signed integer"
	case ir.ScalarUint:
		return "unsigned integer"
	case ir.ScalarFloat:
		return "float"
	case ir.ScalarBool:
		return "bool"
	}
	return "abstract"
}

// constant lifts the constant id as a module constant and returns it.
// Scalars nested in composites are unnamed.
func (l *lifter) constant(id uint32, named bool) (ir.ConstantHandle, error) {
	if h, ok := l.constants[id]; ok {
		return h, nil
	}
	inst, ok := l.mod.Def(id)
	if !ok {
		return 0, invalid("constant %%%d is not defined", id)
	}
	ty, err := l.typeOf(inst.ResultType())
	if err != nil {
		return 0, err
	}
	c := ir.Constant{Type: ty}
	if named {
		c.Name = l.mod.Names[id]
		if c.Name == "" {
			c.Name = "const"
		}
	}
	switch inst.Opcode {
	case spirv.OpConstant, spirv.OpSpecConstant:
		s, err := l.scalarOf(inst.ResultType())
		if err != nil {
			return 0, err
		}
		c.Value = ir.ScalarValue{Kind: s.Kind, Bits: scalarBits(s, inst.Operands())}
	case spirv.OpConstantTrue, spirv.OpSpecConstantTrue:
		c.Value = ir.ScalarValue{Kind: ir.ScalarBool, Bits: 1}
	case spirv.OpConstantFalse, spirv.OpSpecConstantFalse:
		c.Value = ir.ScalarValue{Kind: ir.ScalarBool}
	case spirv.OpConstantComposite, spirv.OpSpecConstantComposite:
		comps := make([]ir.ConstantHandle, 0, len(inst.Operands()))
		for _, part := range inst.Operands() {
			ch, err := l.constant(part, false)
			if err != nil {
				return 0, err
			}
			comps = append(comps, ch)
		}
		c.Value = ir.CompositeValue{Components: comps}
	case spirv.OpConstantNull, spirv.OpUndef:
		c.Value = ir.ZeroConstantValue{}
	default:
		return 0, unsupported("constant %s", inst.Opcode)
	}
	h := ir.ConstantHandle(len(l.out.Constants))
	l.out.Constants = append(l.out.Constants, c)
	if named {
		l.constants[id] = h
	}
	return h, nil
}
