package translate

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl/spirv"
)

// imageOperands holds the optional operands that follow an image
// operands mask.
type imageOperands struct {
	bias, lod, offset, sample *uint32
	gradX, gradY              *uint32
}

func parseImageOperands(ops []uint32) (imageOperands, error) {
	var io imageOperands
	if len(ops) == 0 {
		return io, nil
	}
	mask, ops := ops[0], ops[1:]
	next := func() (*uint32, error) {
		if len(ops) == 0 {
			return nil, invalid("image operands mask %#x has missing operands", mask)
		}
		v := ops[0]
		ops = ops[1:]
		return &v, nil
	}
	var err error
	if mask&spirv.ImageOperandsBias != 0 {
		if io.bias, err = next(); err != nil {
			return io, err
		}
	}
	if mask&spirv.ImageOperandsLod != 0 {
		if io.lod, err = next(); err != nil {
			return io, err
		}
	}
	if mask&spirv.ImageOperandsGrad != 0 {
		if io.gradX, err = next(); err != nil {
			return io, err
		}
		if io.gradY, err = next(); err != nil {
			return io, err
		}
	}
	if mask&spirv.ImageOperandsConstOffset != 0 {
		if io.offset, err = next(); err != nil {
			return io, err
		}
	}
	if mask&(spirv.ImageOperandsOffset|spirv.ImageOperandsConstOffsets) != 0 {
		return io, unsupported("non-constant image offsets")
	}
	if mask&spirv.ImageOperandsSample != 0 {
		if io.sample, err = next(); err != nil {
			return io, err
		}
	}
	if mask&spirv.ImageOperandsMinLod != 0 {
		return io, unsupported("MinLod image operand")
	}
	return io, nil
}

func coordinateCount(img ir.ImageType) int {
	switch img.Dim {
	case ir.Dim1D:
		return 1
	case ir.Dim2D:
		return 2
	}
	return 3
}

func (l *lifter) imageOf(h ir.ExpressionHandle) (ir.ImageType, error) {
	img, ok := l.inner(h).(ir.ImageType)
	if !ok {
		return ir.ImageType{}, invalid("image operand is not an image")
	}
	return img, nil
}

// splitCoordinate separates the array layer from the coordinate of an
// arrayed image. Float layers are rounded to the nearest integer.
func (l *lifter) splitCoordinate(coord ir.ExpressionHandle, img ir.ImageType) (ir.ExpressionHandle, *ir.ExpressionHandle, error) {
	if !img.Arrayed {
		return coord, nil, nil
	}
	n := coordinateCount(img)
	layer, err := l.add(ir.ExprAccessIndex{Base: coord, Index: uint32(n)})
	if err != nil {
		return 0, nil, err
	}
	if s, _, _ := l.scalarOfExpr(layer); s.Kind == ir.ScalarFloat {
		if layer, err = l.add(ir.ExprMath{Fun: ir.MathRound, Arg: layer}); err != nil {
			return 0, nil, err
		}
		width := uint8(4)
		if layer, err = l.add(ir.ExprAs{Expr: layer, Kind: ir.ScalarSint, Convert: &width}); err != nil {
			return 0, nil, err
		}
	}
	if n == 1 {
		coord, err = l.add(ir.ExprAccessIndex{Base: coord, Index: 0})
	} else {
		coord, err = l.add(ir.ExprSwizzle{
			Size:    ir.VectorSize(n),
			Vector:  coord,
			Pattern: [4]ir.SwizzleComponent{ir.SwizzleX, ir.SwizzleY, ir.SwizzleZ},
		})
	}
	if err != nil {
		return 0, nil, err
	}
	return coord, &layer, nil
}

// optional returns the expression of an optional operand id.
func (l *lifter) optional(id *uint32) (*ir.ExpressionHandle, error) {
	if id == nil {
		return nil, nil
	}
	h, err := l.value(*id)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// image lifts the image instructions.
func (l *lifter) image(inst spirv.Instruction) error {
	ops := inst.Operands()
	switch inst.Opcode {
	case spirv.OpSampledImage:
		args, err := l.operands(ops[0], ops[1])
		if err != nil {
			return err
		}
		l.sampled[inst.ResultID()] = sampledPair{image: args[0], sampler: args[1]}
		return nil
	case spirv.OpImage:
		pair, ok := l.sampled[ops[0]]
		if !ok {
			return invalid("OpImage of %%%d, which is not a sampled image", ops[0])
		}
		l.values[inst.ResultID()] = pair.image
		return nil
	case spirv.OpImageSampleImplicitLod, spirv.OpImageSampleExplicitLod,
		spirv.OpImageSampleDrefImplicitLod, spirv.OpImageSampleDrefExplicitLod,
		spirv.OpImageGather, spirv.OpImageDrefGather:
		return l.imageSample(inst)
	case spirv.OpImageFetch, spirv.OpImageRead:
		return l.imageLoad(inst)
	case spirv.OpImageWrite:
		return l.imageWrite(inst)
	}
	return l.imageQuery(inst)
}

func (l *lifter) imageSample(inst spirv.Instruction) error {
	ops := inst.Operands()
	pair, ok := l.sampled[ops[0]]
	if !ok {
		return invalid("%s of %%%d, which is not a sampled image", inst.Opcode, ops[0])
	}
	img, err := l.imageOf(pair.image)
	if err != nil {
		return err
	}
	coord, err := l.value(ops[1])
	if err != nil {
		return err
	}
	s := ir.ExprImageSample{Image: pair.image, Sampler: pair.sampler, Level: ir.SampleLevelAuto{}}
	if s.Coordinate, s.ArrayIndex, err = l.splitCoordinate(coord, img); err != nil {
		return err
	}

	rest := ops[2:]
	switch inst.Opcode {
	case spirv.OpImageSampleDrefImplicitLod, spirv.OpImageSampleDrefExplicitLod, spirv.OpImageDrefGather:
		dref, err := l.value(rest[0])
		if err != nil {
			return err
		}
		s.DepthRef = &dref
		rest = rest[1:]
	}
	switch inst.Opcode {
	case spirv.OpImageGather:
		c, ok := l.constIndex(rest[0])
		if !ok || c > 3 {
			return unsupported("non-constant gather component")
		}
		comp := ir.SwizzleComponent(c)
		s.Gather = &comp
		rest = rest[1:]
	case spirv.OpImageDrefGather:
		comp := ir.SwizzleX
		s.Gather = &comp
	}

	io, err := parseImageOperands(rest)
	if err != nil {
		return err
	}
	if io.sample != nil {
		return unsupported("Sample image operand on %s", inst.Opcode)
	}
	if s.Offset, err = l.optional(io.offset); err != nil {
		return err
	}
	switch {
	case io.bias != nil:
		b, err := l.value(*io.bias)
		if err != nil {
			return err
		}
		s.Level = ir.SampleLevelBias{Bias: b}
	case io.lod != nil:
		if c, ok := l.constIndex(*io.lod); ok && c == 0 && s.DepthRef != nil {
			s.Level = ir.SampleLevelZero{}
			break
		}
		lod, err := l.value(*io.lod)
		if err != nil {
			return err
		}
		s.Level = ir.SampleLevelExact{Level: lod}
	case io.gradX != nil:
		args, err := l.operands(*io.gradX, *io.gradY)
		if err != nil {
			return err
		}
		s.Level = ir.SampleLevelGradient{X: args[0], Y: args[1]}
	}

	h, err := l.add(s)
	if err != nil {
		return err
	}
	return l.imageResult(inst, h)
}

// imageResult widens a scalar depth result to the vector the instruction
// declares and fixes up its signedness.
func (l *lifter) imageResult(inst spirv.Instruction, h ir.ExpressionHandle) error {
	inner, err := l.innerOf(inst.ResultType())
	if err != nil {
		return err
	}
	if v, ok := inner.(ir.VectorType); ok {
		if _, size, _ := l.scalarOfExpr(h); size == 0 {
			if h, err = l.add(ir.ExprSplat{Size: v.Size, Value: h}); err != nil {
				return err
			}
		}
	}
	result, err := l.resultKind(inst)
	if err != nil {
		return err
	}
	if h, err = l.coerce(h, result.Kind); err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

func (l *lifter) imageLoad(inst spirv.Instruction) error {
	ops := inst.Operands()
	args, err := l.operands(ops[0], ops[1])
	if err != nil {
		return err
	}
	img, err := l.imageOf(args[0])
	if err != nil {
		return err
	}
	load := ir.ExprImageLoad{Image: args[0]}
	if load.Coordinate, load.ArrayIndex, err = l.splitCoordinate(args[1], img); err != nil {
		return err
	}
	io, err := parseImageOperands(ops[2:])
	if err != nil {
		return err
	}
	if io.bias != nil || io.gradX != nil || io.offset != nil {
		return unsupported("%s with sampling operands", inst.Opcode)
	}
	if load.Level, err = l.optional(io.lod); err != nil {
		return err
	}
	if load.Sample, err = l.optional(io.sample); err != nil {
		return err
	}
	h, err := l.add(load)
	if err != nil {
		return err
	}
	return l.imageResult(inst, h)
}

func (l *lifter) imageWrite(inst spirv.Instruction) error {
	ops := inst.Operands()
	args, err := l.operands(ops[0], ops[1], ops[2])
	if err != nil {
		return err
	}
	img, err := l.imageOf(args[0])
	if err != nil {
		return err
	}
	if img.Class != ir.ImageClassStorage {
		return invalid("OpImageWrite to a non-storage image")
	}
	st := ir.StmtImageStore{Image: args[0], Value: args[2]}
	if st.Coordinate, st.ArrayIndex, err = l.splitCoordinate(args[1], img); err != nil {
		return err
	}
	if st.Value, err = l.coerce(st.Value, img.StorageFormat.ScalarKind()); err != nil {
		return err
	}
	l.addStmt(st)
	return nil
}

func (l *lifter) imageQuery(inst spirv.Instruction) error {
	ops := inst.Operands()
	image, err := l.value(ops[0])
	if err != nil {
		return err
	}
	img, err := l.imageOf(image)
	if err != nil {
		return err
	}
	var q ir.ImageQuery
	switch inst.Opcode {
	case spirv.OpImageQuerySize:
		q = ir.ImageQuerySize{}
	case spirv.OpImageQuerySizeLod:
		lod, err := l.value(ops[1])
		if err != nil {
			return err
		}
		if lod, err = l.coerce(lod, ir.ScalarUint); err != nil {
			return err
		}
		q = ir.ImageQuerySize{Level: &lod}
	case spirv.OpImageQueryLevels:
		q = ir.ImageQueryNumLevels{}
	case spirv.OpImageQuerySamples:
		q = ir.ImageQueryNumSamples{}
	default:
		return unsupported("instruction %s", inst.Opcode)
	}
	h, err := l.add(ir.ExprImageQuery{Image: image, Query: q})
	if err != nil {
		return err
	}
	if _, isSize := q.(ir.ImageQuerySize); isSize && img.Arrayed {
		if h, err = l.appendLayers(image, h); err != nil {
			return err
		}
	}
	result, err := l.resultKind(inst)
	if err != nil {
		return err
	}
	if h, err = l.coerce(h, result.Kind); err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

// appendLayers adds the layer count to the size of an arrayed image.
func (l *lifter) appendLayers(image, size ir.ExpressionHandle) (ir.ExpressionHandle, error) {
	layers, err := l.add(ir.ExprImageQuery{Image: image, Query: ir.ImageQueryNumLayers{}})
	if err != nil {
		return 0, err
	}
	_, n, _ := l.scalarOfExpr(size)
	var comps []ir.ExpressionHandle
	if n == 0 {
		comps = []ir.ExpressionHandle{size}
		n = 1
	} else {
		for i := range uint32(n) {
			c, err := l.add(ir.ExprAccessIndex{Base: size, Index: i})
			if err != nil {
				return 0, err
			}
			comps = append(comps, c)
		}
	}
	comps = append(comps, layers)
	return l.add(ir.ExprCompose{Type: l.vectorType(n+1, scalarU32), Components: comps})
}
