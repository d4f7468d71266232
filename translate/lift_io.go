package translate

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl/spirv"
)

type builtinInput struct {
	builtin ir.BuiltinValue
	scalar  ir.ScalarType
	size    ir.VectorSize
}

var builtinInputs = map[spirv.BuiltIn]builtinInput{
	spirv.BuiltInFragCoord:            {ir.BuiltinPosition, scalarF32, ir.Vec4},
	spirv.BuiltInVertexIndex:          {ir.BuiltinVertexIndex, scalarU32, 0},
	spirv.BuiltInInstanceIndex:        {ir.BuiltinInstanceIndex, scalarU32, 0},
	spirv.BuiltInFrontFacing:          {ir.BuiltinFrontFacing, scalarBool, 0},
	spirv.BuiltInSampleID:             {ir.BuiltinSampleIndex, scalarU32, 0},
	spirv.BuiltInPrimitiveID:          {ir.BuiltinPrimitiveIndex, scalarU32, 0},
	spirv.BuiltInViewIndex:            {ir.BuiltinViewIndex, scalarU32, 0},
	spirv.BuiltInLocalInvocationID:    {ir.BuiltinLocalInvocationID, scalarU32, ir.Vec3},
	spirv.BuiltInLocalInvocationIndex: {ir.BuiltinLocalInvocationIndex, scalarU32, 0},
	spirv.BuiltInGlobalInvocationID:   {ir.BuiltinGlobalInvocationID, scalarU32, ir.Vec3},
	spirv.BuiltInWorkgroupID:          {ir.BuiltinWorkGroupID, scalarU32, ir.Vec3},
	spirv.BuiltInNumWorkgroups:        {ir.BuiltinNumWorkGroups, scalarU32, ir.Vec3},
	spirv.BuiltInSubgroupSize:         {ir.BuiltinSubgroupSize, scalarU32, 0},
	spirv.BuiltInNumSubgroups:         {ir.BuiltinNumSubgroups, scalarU32, 0},
	spirv.BuiltInSubgroupID:           {ir.BuiltinSubgroupID, scalarU32, 0},
}

var builtinOutputs = map[spirv.BuiltIn]ir.BuiltinValue{
	spirv.BuiltInPosition:  ir.BuiltinPosition,
	spirv.BuiltInPointSize: ir.BuiltinPointSize,
	spirv.BuiltInFragDepth: ir.BuiltinFragDepth,
}

// declareInputs turns every used stage input into an entry point argument.
func (l *lifter) declareInputs() error {
	for _, v := range l.refl.Inputs {
		if !v.Used {
			continue
		}
		if len(v.BlockBuiltIns) > 0 {
			return unsupported("input block %q", v.Name)
		}
		var h ir.ExpressionHandle
		var err error
		if v.IsBuiltIn {
			h, err = l.builtinArgument(v)
		} else {
			h, err = l.locationArgument(v)
		}
		if err != nil {
			return err
		}
		l.values[v.Var] = h
		l.direct[v.Var] = true
	}
	return nil
}

func (l *lifter) addArgument(name string, ty ir.TypeHandle, b ir.Binding) (ir.ExpressionHandle, error) {
	index := uint32(len(l.fn.Arguments))
	l.fn.Arguments = append(l.fn.Arguments, ir.FunctionArgument{Name: name, Type: ty, Binding: &b})
	return l.add(ir.ExprFunctionArgument{Index: index})
}

func (l *lifter) builtinArgument(v spirv.StageVar) (ir.ExpressionHandle, error) {
	bi, ok := builtinInputs[v.BuiltIn]
	if !ok {
		return 0, unsupported("input builtin %s", v.BuiltIn)
	}
	declared, err := l.innerOf(v.Type)
	if err != nil {
		return 0, err
	}
	var s ir.ScalarType
	var size ir.VectorSize
	switch t := declared.(type) {
	case ir.ScalarType:
		s = t
	case ir.VectorType:
		s, size = t.Scalar, t.Size
	}
	if size != bi.size || s.Width != bi.scalar.Width || (s.Kind == ir.ScalarBool) != (bi.scalar.Kind == ir.ScalarBool) {
		return 0, unsupported("input builtin %s declared with an unexpected type", v.BuiltIn)
	}
	ty := l.scalarType(bi.scalar)
	if bi.size != 0 {
		ty = l.vectorType(bi.size, bi.scalar)
	}
	name := v.Name
	if name == "" {
		name = "builtin"
	}
	h, err := l.addArgument(name, ty, ir.BuiltinBinding{Builtin: bi.builtin})
	if err != nil || s.Kind == bi.scalar.Kind {
		return h, err
	}
	return l.add(ir.ExprAs{Expr: h, Kind: s.Kind})
}

func (l *lifter) locationArgument(v spirv.StageVar) (ir.ExpressionHandle, error) {
	if !v.HasLocation {
		return 0, invalid("input %q has neither a location nor a builtin", v.Name)
	}
	ty, err := l.typeOf(v.Type)
	if err != nil {
		return 0, err
	}
	lb := ir.LocationBinding{Location: v.Location}
	switch t := l.out.Types[ty].Inner.(type) {
	case ir.ScalarType, ir.VectorType:
		if l.stage == ir.StageFragment {
			lb.Interpolation = l.interpolation(v.Var, t)
		}
	default:
		return 0, unsupported("input %q of a non-vector type", v.Name)
	}
	name := v.Name
	if name == "" {
		name = "input"
	}
	return l.addArgument(name, ty, lb)
}

// interpolation derives the interpolation of a varying from its
// decorations. Integers are always flat.
func (l *lifter) interpolation(id uint32, t ir.TypeInner) *ir.Interpolation {
	interp := &ir.Interpolation{Kind: ir.InterpolationPerspective, Sampling: ir.SamplingCenter}
	kind := ir.ScalarFloat
	switch t := t.(type) {
	case ir.ScalarType:
		kind = t.Kind
	case ir.VectorType:
		kind = t.Scalar.Kind
	}
	has := func(d spirv.Decoration) bool {
		_, ok := l.mod.Decoration(id, d)
		return ok
	}
	switch {
	case kind != ir.ScalarFloat || has(spirv.DecorationFlat):
		interp.Kind = ir.InterpolationFlat
	case has(spirv.DecorationNoPerspective):
		interp.Kind = ir.InterpolationLinear
	}
	switch {
	case has(spirv.DecorationCentroid):
		interp.Sampling = ir.SamplingCentroid
	case has(spirv.DecorationSample):
		interp.Sampling = ir.SamplingSample
	}
	return interp
}

// declareOutputs backs every used stage output with a local variable and
// records the members of the output struct. Builtins Metal cannot output
// from a vertex function, such as clip distances, are dropped.
func (l *lifter) declareOutputs() error {
	type member struct {
		name    string
		ty      ir.TypeHandle
		binding ir.Binding
	}
	var members []member
	for _, v := range l.refl.Outputs {
		if !v.Used {
			continue
		}
		if err := l.declareLocal(v.Var, v.Type, nil); err != nil {
			return err
		}
		local := l.values[v.Var]
		ty := l.fn.LocalVars[len(l.fn.LocalVars)-1].Type

		switch {
		case len(v.BlockBuiltIns) > 0:
			st, ok := l.out.Types[ty].Inner.(ir.StructType)
			if !ok {
				return unsupported("arrayed output block %q", v.Name)
			}
			for i, m := range st.Members {
				lits, ok := l.mod.MemberDecoration(v.Type, uint32(i), spirv.DecorationBuiltIn)
				if !ok || len(lits) == 0 {
					continue
				}
				b, ok := l.outputBuiltin(spirv.BuiltIn(lits[0]), v.Invariant)
				if !ok {
					continue
				}
				l.outputs = append(l.outputs, outputSlot{local: local, member: i, ty: m.Type, binding: b})
				members = append(members, member{m.Name, m.Type, b})
			}
		case v.IsBuiltIn:
			if v.BuiltIn == spirv.BuiltInSampleMask {
				return unsupported("output builtin SampleMask")
			}
			b, ok := l.outputBuiltin(v.BuiltIn, v.Invariant)
			if !ok {
				continue
			}
			l.outputs = append(l.outputs, outputSlot{local: local, member: -1, ty: ty, binding: b})
			members = append(members, member{v.Name, ty, b})
		default:
			if !v.HasLocation {
				return invalid("output %q has neither a location nor a builtin", v.Name)
			}
			lb := ir.LocationBinding{Location: v.Location}
			switch t := l.out.Types[ty].Inner.(type) {
			case ir.ScalarType, ir.VectorType:
				if l.stage == ir.StageVertex {
					lb.Interpolation = l.interpolation(v.Var, t)
				}
			default:
				return unsupported("output %q of a non-vector type", v.Name)
			}
			if idx, ok := l.mod.DecorationValue(v.Var, spirv.DecorationIndex); ok && idx > 0 {
				lb.BlendSrc = &idx
			}
			l.outputs = append(l.outputs, outputSlot{local: local, member: -1, ty: ty, binding: lb})
			members = append(members, member{v.Name, ty, lb})
		}
	}
	if len(members) == 0 {
		return nil
	}

	st := ir.StructType{Members: make([]ir.StructMember, len(members))}
	var offset, align uint32 = 0, 1
	for i, m := range members {
		a := l.alignOf(m.ty)
		offset = roundUp(offset, a)
		b := m.binding
		name := m.name
		if name == "" {
			name = "member"
		}
		st.Members[i] = ir.StructMember{Name: name, Type: m.ty, Binding: &b, Offset: offset}
		offset += ir.TypeSize(l.out, m.ty)
		align = max(align, a)
	}
	st.Span = roundUp(offset, align)
	l.fn.Result = &ir.FunctionResult{Type: l.addType(l.fn.Name+"Output", st)}
	return nil
}

func (l *lifter) outputBuiltin(b spirv.BuiltIn, invariant bool) (ir.Binding, bool) {
	bv, ok := builtinOutputs[b]
	if !ok || (b == spirv.BuiltInPointSize && l.opts.dropPointSize) {
		return nil, false
	}
	return ir.BuiltinBinding{Builtin: bv, Invariant: invariant && bv == ir.BuiltinPosition}, true
}

// outputPointer returns a pointer to the value of an output slot.
func (l *lifter) outputPointer(slot outputSlot) (ir.ExpressionHandle, error) {
	if slot.member < 0 {
		return slot.local, nil
	}
	return l.add(ir.ExprAccessIndex{Base: slot.local, Index: uint32(slot.member)})
}

// emitReturn returns the output struct built from the output locals.
func (l *lifter) emitReturn() error {
	if l.fn.Result == nil {
		l.addStmt(ir.StmtReturn{})
		return nil
	}
	if l.opts.flipY && l.stage == ir.StageVertex {
		if err := l.flipPositionY(); err != nil {
			return err
		}
	}
	comps := make([]ir.ExpressionHandle, 0, len(l.outputs))
	for _, slot := range l.outputs {
		ptr, err := l.outputPointer(slot)
		if err != nil {
			return err
		}
		v, err := l.add(ir.ExprLoad{Pointer: ptr})
		if err != nil {
			return err
		}
		comps = append(comps, v)
	}
	result, err := l.add(ir.ExprCompose{Type: l.fn.Result.Type, Components: comps})
	if err != nil {
		return err
	}
	l.addStmt(ir.StmtReturn{Value: &result})
	return nil
}

// flipPositionY negates the y component of the position output.
func (l *lifter) flipPositionY() error {
	for _, slot := range l.outputs {
		b, ok := slot.binding.(ir.BuiltinBinding)
		if !ok || b.Builtin != ir.BuiltinPosition {
			continue
		}
		ptr, err := l.outputPointer(slot)
		if err != nil {
			return err
		}
		y, err := l.add(ir.ExprAccessIndex{Base: ptr, Index: 1})
		if err != nil {
			return err
		}
		v, err := l.add(ir.ExprLoad{Pointer: y})
		if err != nil {
			return err
		}
		neg, err := l.add(ir.ExprUnary{Op: ir.UnaryNegate, Expr: v})
		if err != nil {
			return err
		}
		l.addStmt(ir.StmtStore{Pointer: y, Value: neg})
		return nil
	}
	return nil
}
