package translate

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl/spirv"
)

var floatBinaryOps = map[spirv.OpCode]ir.BinaryOperator{
	spirv.OpFAdd:                   ir.BinaryAdd,
	spirv.OpFSub:                   ir.BinarySubtract,
	spirv.OpFMul:                   ir.BinaryMultiply,
	spirv.OpFDiv:                   ir.BinaryDivide,
	spirv.OpFRem:                   ir.BinaryModulo,
	spirv.OpVectorTimesScalar:      ir.BinaryMultiply,
	spirv.OpMatrixTimesScalar:      ir.BinaryMultiply,
	spirv.OpVectorTimesMatrix:      ir.BinaryMultiply,
	spirv.OpMatrixTimesVector:      ir.BinaryMultiply,
	spirv.OpMatrixTimesMatrix:      ir.BinaryMultiply,
	spirv.OpFOrdEqual:              ir.BinaryEqual,
	spirv.OpFOrdNotEqual:           ir.BinaryNotEqual,
	spirv.OpFOrdLessThan:           ir.BinaryLess,
	spirv.OpFOrdLessThanEqual:      ir.BinaryLessEqual,
	spirv.OpFOrdGreaterThan:        ir.BinaryGreater,
	spirv.OpFOrdGreaterThanEqual:   ir.BinaryGreaterEqual,
	spirv.OpFUnordEqual:            ir.BinaryEqual,
	spirv.OpFUnordNotEqual:         ir.BinaryNotEqual,
	spirv.OpFUnordLessThan:         ir.BinaryLess,
	spirv.OpFUnordLessThanEqual:    ir.BinaryLessEqual,
	spirv.OpFUnordGreaterThan:      ir.BinaryGreater,
	spirv.OpFUnordGreaterThanEqual: ir.BinaryGreaterEqual,
	spirv.OpLogicalEqual:           ir.BinaryEqual,
	spirv.OpLogicalNotEqual:        ir.BinaryNotEqual,
}

// intBinaryOp is an integer operation together with the signedness its
// operands are read with. An unset kind reads them as the result type.
type intBinaryOp struct {
	op   ir.BinaryOperator
	kind ir.ScalarKind
	set  bool
}

var intBinaryOps = map[spirv.OpCode]intBinaryOp{
	spirv.OpIAdd:                 {op: ir.BinaryAdd},
	spirv.OpISub:                 {op: ir.BinarySubtract},
	spirv.OpIMul:                 {op: ir.BinaryMultiply},
	spirv.OpSDiv:                 {ir.BinaryDivide, ir.ScalarSint, true},
	spirv.OpUDiv:                 {ir.BinaryDivide, ir.ScalarUint, true},
	spirv.OpSRem:                 {ir.BinaryModulo, ir.ScalarSint, true},
	spirv.OpSMod:                 {ir.BinaryModulo, ir.ScalarSint, true},
	spirv.OpUMod:                 {ir.BinaryModulo, ir.ScalarUint, true},
	spirv.OpBitwiseAnd:           {op: ir.BinaryAnd},
	spirv.OpBitwiseOr:            {op: ir.BinaryInclusiveOr},
	spirv.OpBitwiseXor:           {op: ir.BinaryExclusiveOr},
	spirv.OpShiftLeftLogical:     {op: ir.BinaryShiftLeft},
	spirv.OpShiftRightLogical:    {ir.BinaryShiftRight, ir.ScalarUint, true},
	spirv.OpShiftRightArithmetic: {ir.BinaryShiftRight, ir.ScalarSint, true},
	spirv.OpSLessThan:            {ir.BinaryLess, ir.ScalarSint, true},
	spirv.OpSLessThanEqual:       {ir.BinaryLessEqual, ir.ScalarSint, true},
	spirv.OpSGreaterThan:         {ir.BinaryGreater, ir.ScalarSint, true},
	spirv.OpSGreaterThanEqual:    {ir.BinaryGreaterEqual, ir.ScalarSint, true},
	spirv.OpULessThan:            {ir.BinaryLess, ir.ScalarUint, true},
	spirv.OpULessThanEqual:       {ir.BinaryLessEqual, ir.ScalarUint, true},
	spirv.OpUGreaterThan:         {ir.BinaryGreater, ir.ScalarUint, true},
	spirv.OpUGreaterThanEqual:    {ir.BinaryGreaterEqual, ir.ScalarUint, true},
	spirv.OpIEqual:               {op: ir.BinaryEqual},
	spirv.OpINotEqual:            {op: ir.BinaryNotEqual},
}

var derivatives = map[spirv.OpCode]ir.ExprDerivative{
	spirv.OpDPdx:         {Axis: ir.DerivativeX, Control: ir.DerivativeNone},
	spirv.OpDPdy:         {Axis: ir.DerivativeY, Control: ir.DerivativeNone},
	spirv.OpFwidth:       {Axis: ir.DerivativeWidth, Control: ir.DerivativeNone},
	spirv.OpDPdxFine:     {Axis: ir.DerivativeX, Control: ir.DerivativeFine},
	spirv.OpDPdyFine:     {Axis: ir.DerivativeY, Control: ir.DerivativeFine},
	spirv.OpFwidthFine:   {Axis: ir.DerivativeWidth, Control: ir.DerivativeFine},
	spirv.OpDPdxCoarse:   {Axis: ir.DerivativeX, Control: ir.DerivativeCoarse},
	spirv.OpDPdyCoarse:   {Axis: ir.DerivativeY, Control: ir.DerivativeCoarse},
	spirv.OpFwidthCoarse: {Axis: ir.DerivativeWidth, Control: ir.DerivativeCoarse},
}

var relationals = map[spirv.OpCode]ir.RelationalFunction{
	spirv.OpAll:   ir.RelationalAll,
	spirv.OpAny:   ir.RelationalAny,
	spirv.OpIsNan: ir.RelationalIsNan,
	spirv.OpIsInf: ir.RelationalIsInf,
}

// instruction lifts one non-terminator instruction of a block.
func (l *lifter) instruction(inst spirv.Instruction) error {
	if op, ok := floatBinaryOps[inst.Opcode]; ok {
		return l.binary(inst, op)
	}
	if op, ok := intBinaryOps[inst.Opcode]; ok {
		return l.intBinary(inst, op)
	}
	if d, ok := derivatives[inst.Opcode]; ok {
		arg, err := l.value(inst.Operands()[0])
		if err != nil {
			return err
		}
		d.Expr = arg
		return l.define(inst, d)
	}
	if fun, ok := relationals[inst.Opcode]; ok {
		arg, err := l.value(inst.Operands()[0])
		if err != nil {
			return err
		}
		return l.define(inst, ir.ExprRelational{Fun: fun, Argument: arg})
	}

	ops := inst.Operands()
	switch inst.Opcode {
	case spirv.OpPhi:
		return l.loadPhi(inst.ResultID())
	case spirv.OpLoad:
		return l.load(inst)
	case spirv.OpStore:
		return l.store(ops[0], ops[1])
	case spirv.OpCopyMemory:
		src, err := l.value(ops[1])
		if err != nil {
			return err
		}
		v, err := l.add(ir.ExprLoad{Pointer: src})
		if err != nil {
			return err
		}
		dst, err := l.value(ops[0])
		if err != nil {
			return err
		}
		l.addStmt(ir.StmtStore{Pointer: dst, Value: v})
		return nil
	case spirv.OpCopyObject, spirv.OpCopyLogical:
		return l.alias(inst.ResultID(), ops[0])
	case spirv.OpAccessChain, spirv.OpInBoundsAccessChain:
		return l.accessChain(inst)
	case spirv.OpCompositeConstruct:
		return l.compositeConstruct(inst)
	case spirv.OpCompositeExtract:
		h, err := l.value(ops[0])
		if err != nil {
			return err
		}
		for _, idx := range ops[1:] {
			if h, err = l.add(ir.ExprAccessIndex{Base: h, Index: idx}); err != nil {
				return err
			}
		}
		l.values[inst.ResultID()] = h
		return nil
	case spirv.OpCompositeInsert:
		return l.compositeInsert(inst)
	case spirv.OpVectorShuffle:
		return l.vectorShuffle(inst)
	case spirv.OpVectorExtractDynamic:
		vec, err := l.value(ops[0])
		if err != nil {
			return err
		}
		idx, err := l.value(ops[1])
		if err != nil {
			return err
		}
		return l.define(inst, ir.ExprAccess{Base: vec, Index: idx})
	case spirv.OpVectorInsertDynamic:
		return l.vectorInsertDynamic(inst)
	case spirv.OpFNegate, spirv.OpSNegate, spirv.OpNot, spirv.OpLogicalNot:
		return l.unary(inst)
	case spirv.OpLogicalAnd, spirv.OpLogicalOr:
		return l.logical(inst)
	case spirv.OpSelect:
		cond, err := l.value(ops[0])
		if err != nil {
			return err
		}
		accept, err := l.value(ops[1])
		if err != nil {
			return err
		}
		reject, err := l.value(ops[2])
		if err != nil {
			return err
		}
		return l.define(inst, ir.ExprSelect{Condition: cond, Accept: accept, Reject: reject})
	case spirv.OpFMod:
		return l.floorMod(inst)
	case spirv.OpDot:
		return l.math(inst, ir.MathDot, ops, nil)
	case spirv.OpOuterProduct:
		return l.math(inst, ir.MathOuter, ops, nil)
	case spirv.OpTranspose:
		return l.math(inst, ir.MathTranspose, ops, nil)
	case spirv.OpBitCount:
		return l.math(inst, ir.MathCountOneBits, ops, nil)
	case spirv.OpConvertFToS, spirv.OpConvertFToU, spirv.OpConvertSToF, spirv.OpConvertUToF,
		spirv.OpSConvert, spirv.OpUConvert, spirv.OpFConvert:
		return l.convert(inst)
	case spirv.OpBitcast:
		return l.bitcast(inst)
	case spirv.OpExtInst:
		return l.extInst(inst)
	case spirv.OpSampledImage, spirv.OpImage,
		spirv.OpImageSampleImplicitLod, spirv.OpImageSampleExplicitLod,
		spirv.OpImageSampleDrefImplicitLod, spirv.OpImageSampleDrefExplicitLod,
		spirv.OpImageGather, spirv.OpImageDrefGather,
		spirv.OpImageFetch, spirv.OpImageRead, spirv.OpImageWrite,
		spirv.OpImageQuerySize, spirv.OpImageQuerySizeLod, spirv.OpImageQueryLevels, spirv.OpImageQuerySamples:
		return l.image(inst)
	case spirv.OpArrayLength:
		ptr, err := l.value(ops[0])
		if err != nil {
			return err
		}
		member, err := l.add(ir.ExprAccessIndex{Base: ptr, Index: ops[1]})
		if err != nil {
			return err
		}
		return l.define(inst, ir.ExprArrayLength{Array: member})
	case spirv.OpControlBarrier:
		return l.barrier(ops[2])
	case spirv.OpMemoryBarrier:
		return l.barrier(ops[1])
	case spirv.OpDemoteToHelperInvocation:
		l.addStmt(ir.StmtKill{})
		return nil
	case spirv.OpFunctionCall:
		return unsupported("function calls")
	case spirv.OpAtomicLoad, spirv.OpAtomicStore, spirv.OpAtomicIAdd, spirv.OpImageTexelPointer:
		return unsupported("atomic operations")
	}
	return unsupported("instruction %s", inst.Opcode)
}

// define adds kind as the value of the instruction's result id.
func (l *lifter) define(inst spirv.Instruction, kind ir.ExpressionKind) error {
	h, err := l.add(kind)
	if err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

func (l *lifter) alias(id, of uint32) error {
	if pair, ok := l.sampled[of]; ok {
		l.sampled[id] = pair
		return nil
	}
	h, err := l.value(of)
	if err != nil {
		return err
	}
	l.values[id] = h
	l.direct[id] = l.direct[of]
	return nil
}

// resultKind returns the component kind of the instruction's result type.
func (l *lifter) resultKind(inst spirv.Instruction) (ir.ScalarType, error) {
	inner, err := l.innerOf(inst.ResultType())
	if err != nil {
		return ir.ScalarType{}, err
	}
	switch t := inner.(type) {
	case ir.ScalarType:
		return t, nil
	case ir.VectorType:
		return t.Scalar, nil
	}
	return ir.ScalarType{}, unsupported("%s with a non-vector result", inst.Opcode)
}

// coerce reinterprets an integer expression with the given signedness.
func (l *lifter) coerce(h ir.ExpressionHandle, kind ir.ScalarKind) (ir.ExpressionHandle, error) {
	s, _, ok := l.scalarOfExpr(h)
	if !ok || s.Kind == kind || s.Kind == ir.ScalarBool || kind == ir.ScalarBool {
		return h, nil
	}
	return l.add(ir.ExprAs{Expr: h, Kind: kind})
}

func (l *lifter) operands(ids ...uint32) ([]ir.ExpressionHandle, error) {
	hs := make([]ir.ExpressionHandle, len(ids))
	for i, id := range ids {
		h, err := l.value(id)
		if err != nil {
			return nil, err
		}
		hs[i] = h
	}
	return hs, nil
}

func (l *lifter) binary(inst spirv.Instruction, op ir.BinaryOperator) error {
	args, err := l.operands(inst.Operands()[:2]...)
	if err != nil {
		return err
	}
	return l.define(inst, ir.ExprBinary{Op: op, Left: args[0], Right: args[1]})
}

// intBinary lifts an integer operation. Both operands are bitcast to the
// signedness the opcode reads them with, and the result is bitcast back
// to the declared result type.
func (l *lifter) intBinary(inst spirv.Instruction, op intBinaryOp) error {
	args, err := l.operands(inst.Operands()[:2]...)
	if err != nil {
		return err
	}
	result, err := l.resultKind(inst)
	if err != nil {
		return err
	}
	kind := result.Kind
	if op.set {
		kind = op.kind
	} else if result.Kind == ir.ScalarBool {
		s, _, _ := l.scalarOfExpr(args[0])
		kind = s.Kind
	}
	for i := range args {
		if args[i], err = l.coerce(args[i], kind); err != nil {
			return err
		}
	}
	h, err := l.add(ir.ExprBinary{Op: op.op, Left: args[0], Right: args[1]})
	if err != nil {
		return err
	}
	if h, err = l.coerce(h, result.Kind); err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

func (l *lifter) unary(inst spirv.Instruction) error {
	arg, err := l.value(inst.Operands()[0])
	if err != nil {
		return err
	}
	switch inst.Opcode {
	case spirv.OpFNegate:
		return l.define(inst, ir.ExprUnary{Op: ir.UnaryNegate, Expr: arg})
	case spirv.OpLogicalNot:
		return l.define(inst, ir.ExprUnary{Op: ir.UnaryLogicalNot, Expr: arg})
	case spirv.OpNot:
		return l.define(inst, ir.ExprUnary{Op: ir.UnaryBitwiseNot, Expr: arg})
	}
	result, err := l.resultKind(inst)
	if err != nil {
		return err
	}
	if arg, err = l.coerce(arg, ir.ScalarSint); err != nil {
		return err
	}
	h, err := l.add(ir.ExprUnary{Op: ir.UnaryNegate, Expr: arg})
	if err != nil {
		return err
	}
	if h, err = l.coerce(h, result.Kind); err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

// logical lifts OpLogicalAnd and OpLogicalOr. Vector operands become
// selects since naga types && and || as scalar.
func (l *lifter) logical(inst spirv.Instruction) error {
	args, err := l.operands(inst.Operands()[:2]...)
	if err != nil {
		return err
	}
	_, size, _ := l.scalarOfExpr(args[0])
	if size == 0 {
		op := ir.BinaryLogicalAnd
		if inst.Opcode == spirv.OpLogicalOr {
			op = ir.BinaryLogicalOr
		}
		return l.define(inst, ir.ExprBinary{Op: op, Left: args[0], Right: args[1]})
	}
	lit := inst.Opcode == spirv.OpLogicalOr
	b, err := l.add(ir.Literal{Value: ir.LiteralBool(lit)})
	if err != nil {
		return err
	}
	splat, err := l.add(ir.ExprSplat{Size: size, Value: b})
	if err != nil {
		return err
	}
	if lit {
		return l.define(inst, ir.ExprSelect{Condition: args[0], Accept: splat, Reject: args[1]})
	}
	return l.define(inst, ir.ExprSelect{Condition: args[0], Accept: args[1], Reject: splat})
}

// floorMod lifts OpFMod as a - b * floor(a / b).
func (l *lifter) floorMod(inst spirv.Instruction) error {
	args, err := l.operands(inst.Operands()[:2]...)
	if err != nil {
		return err
	}
	a, b := args[0], args[1]
	div, err := l.add(ir.ExprBinary{Op: ir.BinaryDivide, Left: a, Right: b})
	if err != nil {
		return err
	}
	floor, err := l.add(ir.ExprMath{Fun: ir.MathFloor, Arg: div})
	if err != nil {
		return err
	}
	mul, err := l.add(ir.ExprBinary{Op: ir.BinaryMultiply, Left: b, Right: floor})
	if err != nil {
		return err
	}
	return l.define(inst, ir.ExprBinary{Op: ir.BinarySubtract, Left: a, Right: mul})
}

// math lifts a math function call. When kind is set the operands are read
// with that signedness.
func (l *lifter) math(inst spirv.Instruction, fun ir.MathFunction, ids []uint32, kind *ir.ScalarKind) error {
	if len(ids) == 0 || len(ids) > 4 {
		return invalid("%s with %d operands", inst.Opcode, len(ids))
	}
	args, err := l.operands(ids...)
	if err != nil {
		return err
	}
	if kind != nil {
		for i := range args {
			if args[i], err = l.coerce(args[i], *kind); err != nil {
				return err
			}
		}
	}
	m := ir.ExprMath{Fun: fun, Arg: args[0]}
	for i, p := range []**ir.ExpressionHandle{&m.Arg1, &m.Arg2, &m.Arg3} {
		if i+1 < len(args) {
			*p = &args[i+1]
		}
	}
	h, err := l.add(m)
	if err != nil {
		return err
	}
	if result, err := l.resultKind(inst); err == nil {
		if h, err = l.coerce(h, result.Kind); err != nil {
			return err
		}
	}
	l.values[inst.ResultID()] = h
	return nil
}

func (l *lifter) convert(inst spirv.Instruction) error {
	arg, err := l.value(inst.Operands()[0])
	if err != nil {
		return err
	}
	result, err := l.resultKind(inst)
	if err != nil {
		return err
	}
	switch inst.Opcode {
	case spirv.OpConvertSToF, spirv.OpSConvert:
		arg, err = l.coerce(arg, ir.ScalarSint)
	case spirv.OpConvertUToF, spirv.OpUConvert:
		arg, err = l.coerce(arg, ir.ScalarUint)
	}
	if err != nil {
		return err
	}
	kind := result.Kind
	switch inst.Opcode {
	case spirv.OpSConvert:
		kind = ir.ScalarSint
	case spirv.OpUConvert:
		kind = ir.ScalarUint
	}
	width := result.Width
	h, err := l.add(ir.ExprAs{Expr: arg, Kind: kind, Convert: &width})
	if err != nil {
		return err
	}
	if h, err = l.coerce(h, result.Kind); err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

func (l *lifter) bitcast(inst spirv.Instruction) error {
	arg, err := l.value(inst.Operands()[0])
	if err != nil {
		return err
	}
	result, err := l.resultKind(inst)
	if err != nil {
		return err
	}
	from, size, ok := l.scalarOfExpr(arg)
	if !ok || from.Width != result.Width {
		return unsupported("bitcast between types of different widths")
	}
	if inner, _ := l.innerOf(inst.ResultType()); inner != nil {
		if v, isVec := inner.(ir.VectorType); (isVec && v.Size != size) || (!isVec && size != 0) {
			return unsupported("bitcast between vectors of different sizes")
		}
	}
	if from.Kind == result.Kind {
		l.values[inst.ResultID()] = arg
		return nil
	}
	return l.define(inst, ir.ExprAs{Expr: arg, Kind: result.Kind})
}

func (l *lifter) load(inst spirv.Instruction) error {
	ptr := inst.Operands()[0]
	if pair, ok := l.combined[ptr]; ok {
		l.sampled[inst.ResultID()] = pair
		return nil
	}
	if pair, ok := l.sampled[ptr]; ok {
		l.sampled[inst.ResultID()] = pair
		return nil
	}
	if l.direct[ptr] {
		return l.alias(inst.ResultID(), ptr)
	}
	p, err := l.value(ptr)
	if err != nil {
		return err
	}
	return l.define(inst, ir.ExprLoad{Pointer: p})
}

func (l *lifter) store(ptr, value uint32) error {
	if l.direct[ptr] {
		return invalid("store to read-only %%%d", ptr)
	}
	p, err := l.value(ptr)
	if err != nil {
		return err
	}
	v, err := l.value(value)
	if err != nil {
		return err
	}
	l.addStmt(ir.StmtStore{Pointer: p, Value: v})
	return nil
}

// accessChain lifts an access chain into AccessIndex expressions for
// constant indices and Access expressions otherwise. Chains into inputs
// index the argument value directly.
func (l *lifter) accessChain(inst spirv.Instruction) error {
	ops := inst.Operands()
	if _, ok := l.combined[ops[0]]; ok {
		return unsupported("access chain into a combined image sampler")
	}
	h, err := l.value(ops[0])
	if err != nil {
		return err
	}
	for _, idx := range ops[1:] {
		if c, ok := l.constIndex(idx); ok {
			h, err = l.add(ir.ExprAccessIndex{Base: h, Index: c})
		} else {
			var ih ir.ExpressionHandle
			if ih, err = l.value(idx); err != nil {
				return err
			}
			h, err = l.add(ir.ExprAccess{Base: h, Index: ih})
		}
		if err != nil {
			return err
		}
	}
	l.values[inst.ResultID()] = h
	l.direct[inst.ResultID()] = l.direct[ops[0]]
	return nil
}

func (l *lifter) compositeConstruct(inst spirv.Instruction) error {
	ty, err := l.typeOf(inst.ResultType())
	if err != nil {
		return err
	}
	comps, err := l.operands(inst.Operands()...)
	if err != nil {
		return err
	}
	return l.define(inst, ir.ExprCompose{Type: ty, Components: comps})
}

// typeHandle returns a handle for a resolved expression type.
func (l *lifter) typeHandle(res ir.TypeResolution) (ir.TypeHandle, error) {
	if res.Handle != nil {
		return *res.Handle, nil
	}
	switch res.Value.(type) {
	case ir.ScalarType, ir.VectorType, ir.MatrixType:
		return l.addType("", res.Value), nil
	}
	return 0, unsupported("composite of type %T", res.Value)
}

// componentCount returns the number of components of a composite type.
func (l *lifter) componentCount(inner ir.TypeInner) (uint32, bool) {
	switch t := inner.(type) {
	case ir.VectorType:
		return uint32(t.Size), true
	case ir.MatrixType:
		return uint32(t.Columns), true
	case ir.StructType:
		return uint32(len(t.Members)), true
	case ir.ArrayType:
		if t.Size.Constant != nil {
			return *t.Size.Constant, true
		}
	}
	return 0, false
}

// compositeInsert rebuilds the composite with one component replaced.
func (l *lifter) compositeInsert(inst spirv.Instruction) error {
	ops := inst.Operands()
	obj, err := l.value(ops[0])
	if err != nil {
		return err
	}
	base, err := l.value(ops[1])
	if err != nil {
		return err
	}
	ty, err := l.typeOf(inst.ResultType())
	if err != nil {
		return err
	}
	h, err := l.insert(base, ty, ops[2:], obj)
	if err != nil {
		return err
	}
	l.values[inst.ResultID()] = h
	return nil
}

func (l *lifter) insert(base ir.ExpressionHandle, ty ir.TypeHandle, path []uint32, obj ir.ExpressionHandle) (ir.ExpressionHandle, error) {
	if len(path) == 0 {
		return obj, nil
	}
	n, ok := l.componentCount(l.out.Types[ty].Inner)
	if !ok {
		return 0, unsupported("OpCompositeInsert into a runtime-sized composite")
	}
	comps := make([]ir.ExpressionHandle, n)
	for i := range comps {
		c, err := l.add(ir.ExprAccessIndex{Base: base, Index: uint32(i)})
		if err != nil {
			return 0, err
		}
		if uint32(i) == path[0] {
			cty, err := l.typeHandle(l.fn.ExpressionTypes[c])
			if err != nil {
				return 0, err
			}
			if c, err = l.insert(c, cty, path[1:], obj); err != nil {
				return 0, err
			}
		}
		comps[i] = c
	}
	return l.add(ir.ExprCompose{Type: ty, Components: comps})
}

// vectorShuffle lifts a shuffle into a swizzle when every component comes
// from one vector, and a composition otherwise.
func (l *lifter) vectorShuffle(inst spirv.Instruction) error {
	ops := inst.Operands()
	args, err := l.operands(ops[0], ops[1])
	if err != nil {
		return err
	}
	_, n1, ok := l.scalarOfExpr(args[0])
	if !ok || n1 == 0 {
		return invalid("OpVectorShuffle of a non-vector")
	}
	sel := ops[2:]
	if len(sel) < 2 || len(sel) > 4 {
		return invalid("OpVectorShuffle with %d components", len(sel))
	}
	for i, c := range sel {
		if c == 0xFFFFFFFF {
			sel[i] = 0
		}
	}
	first, second := true, true
	for _, c := range sel {
		if c >= uint32(n1) {
			first = false
		} else {
			second = false
		}
	}
	if first || second {
		sw := ir.ExprSwizzle{Size: ir.VectorSize(len(sel)), Vector: args[0]}
		offset := uint32(0)
		if second {
			sw.Vector, offset = args[1], uint32(n1)
		}
		for i, c := range sel {
			sw.Pattern[i] = ir.SwizzleComponent(c - offset)
		}
		return l.define(inst, sw)
	}
	ty, err := l.typeOf(inst.ResultType())
	if err != nil {
		return err
	}
	comps := make([]ir.ExpressionHandle, len(sel))
	for i, c := range sel {
		src := args[0]
		if c >= uint32(n1) {
			src, c = args[1], c-uint32(n1)
		}
		if comps[i], err = l.add(ir.ExprAccessIndex{Base: src, Index: c}); err != nil {
			return err
		}
	}
	return l.define(inst, ir.ExprCompose{Type: ty, Components: comps})
}

// vectorInsertDynamic selects the inserted value into the component whose
// index matches.
func (l *lifter) vectorInsertDynamic(inst spirv.Instruction) error {
	ops := inst.Operands()
	args, err := l.operands(ops[0], ops[1], ops[2])
	if err != nil {
		return err
	}
	vec, obj := args[0], args[1]
	idx, err := l.coerce(args[2], ir.ScalarUint)
	if err != nil {
		return err
	}
	_, n, _ := l.scalarOfExpr(vec)
	ty, err := l.typeOf(inst.ResultType())
	if err != nil {
		return err
	}
	comps := make([]ir.ExpressionHandle, n)
	for i := range comps {
		lit, err := l.u32(uint32(i))
		if err != nil {
			return err
		}
		eq, err := l.add(ir.ExprBinary{Op: ir.BinaryEqual, Left: idx, Right: lit})
		if err != nil {
			return err
		}
		old, err := l.add(ir.ExprAccessIndex{Base: vec, Index: uint32(i)})
		if err != nil {
			return err
		}
		if comps[i], err = l.add(ir.ExprSelect{Condition: eq, Accept: obj, Reject: old}); err != nil {
			return err
		}
	}
	return l.define(inst, ir.ExprCompose{Type: ty, Components: comps})
}

// barrier lifts a control or memory barrier from its memory semantics.
func (l *lifter) barrier(semanticsID uint32) error {
	if l.stage != ir.StageCompute {
		return unsupported("barriers outside compute entry points")
	}
	semantics, _ := l.mod.ConstantValue(semanticsID)
	var flags ir.BarrierFlags
	if semantics&0x40 != 0 {
		flags |= ir.BarrierStorage
	}
	if semantics&0x100 != 0 {
		flags |= ir.BarrierWorkGroup
	}
	if semantics&0x800 != 0 {
		flags |= ir.BarrierTexture
	}
	if flags == 0 {
		flags = ir.BarrierWorkGroup
	}
	l.addStmt(ir.StmtBarrier{Flags: flags})
	return nil
}
