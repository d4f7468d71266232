package translate

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl"
	"github.com/gogpu/spvmsl/spirv"
)

type liftOptions struct {
	// flipY negates the y component of the vertex position on return.
	flipY bool
	// dropPointSize leaves a PointSize output out of the output struct.
	dropPointSize bool
}

// sampledPair is a combined image sampler split into its halves.
type sampledPair struct {
	image, sampler ir.ExpressionHandle
}

// outputSlot is one member of the entry point output struct: the local
// holding an output variable, or one member of a builtin block.
type outputSlot struct {
	local   ir.ExpressionHandle
	member  int
	ty      ir.TypeHandle
	binding ir.Binding
}

type phiStore struct {
	local uint32
	value uint32
}

// lifter converts one SPIR-V entry point into a naga IR module holding a
// single entry point.
type lifter struct {
	mod  *spirv.Module
	refl *spirv.Reflection
	opts liftOptions

	out   *ir.Module
	fn    *ir.Function
	stage ir.ShaderStage

	types     map[uint32]ir.TypeHandle
	typeBusy  map[uint32]bool
	inners    map[ir.TypeInner]ir.TypeHandle
	constants map[uint32]ir.ConstantHandle

	values   map[uint32]ir.ExpressionHandle
	direct   map[uint32]bool
	sampled  map[uint32]sampledPair
	combined map[uint32]sampledPair
	globals  map[uint32]ir.GlobalVariableHandle
	outputs  []outputSlot

	phiLocals map[uint32]uint32
	phiStores map[uint32][]phiStore

	body      *ir.Block
	emitStart ir.ExpressionHandle
	code      []spirv.Instruction
	blocks    map[uint32]int
	visited   map[uint32]bool
}

// lift converts the entry point described by refl.
func lift(m *spirv.Module, refl *spirv.Reflection, opts liftOptions) (*ir.Module, error) {
	l := &lifter{
		mod:       m,
		refl:      refl,
		opts:      opts,
		out:       &ir.Module{},
		fn:        &ir.Function{Name: refl.EntryPoint.Name},
		types:     make(map[uint32]ir.TypeHandle),
		typeBusy:  make(map[uint32]bool),
		inners:    make(map[ir.TypeInner]ir.TypeHandle),
		constants: make(map[uint32]ir.ConstantHandle),
		values:    make(map[uint32]ir.ExpressionHandle),
		direct:    make(map[uint32]bool),
		sampled:   make(map[uint32]sampledPair),
		combined:  make(map[uint32]sampledPair),
		globals:   make(map[uint32]ir.GlobalVariableHandle),
		phiLocals: make(map[uint32]uint32),
		phiStores: make(map[uint32][]phiStore),
		blocks:    make(map[uint32]int),
		visited:   make(map[uint32]bool),
	}
	stage, err := shaderStage(refl.EntryPoint.Model)
	if err != nil {
		return nil, err
	}
	l.stage = stage
	fn, ok := m.Functions[refl.EntryPoint.Function]
	if !ok {
		return nil, invalid("entry function %%%d is not defined", refl.EntryPoint.Function)
	}
	if len(refl.Functions) > 1 {
		return nil, unsupported("function calls")
	}

	var body ir.Block
	l.body = &body
	if err := l.declareGlobals(); err != nil {
		return nil, err
	}
	if err := l.declareInputs(); err != nil {
		return nil, err
	}
	if err := l.declareOutputs(); err != nil {
		return nil, err
	}
	if err := l.declareLocals(fn); err != nil {
		return nil, err
	}
	l.flush()
	if len(fn.Blocks) == 0 {
		return nil, invalid("entry function %%%d has no blocks", fn.ID)
	}
	l.code = m.Body(fn)
	for i, inst := range l.code {
		if inst.Opcode == spirv.OpLabel {
			l.blocks[inst.ResultID()] = i
		}
	}
	if err := l.liftBlocks(fn.Blocks[0], 0); err != nil {
		return nil, err
	}
	if !endsWithTerminator(body) {
		if err := l.emitReturn(); err != nil {
			return nil, err
		}
	}
	l.fn.Body = body

	ep := ir.EntryPoint{
		Name:     refl.EntryPoint.Name,
		Stage:    stage,
		Function: *l.fn,
	}
	if stage == ir.StageCompute {
		for i, d := range refl.Workgroup {
			ep.Workgroup[i] = max(d.Size, 1)
		}
	}
	if stage == ir.StageFragment && refl.HasMode(spirv.ExecutionModeEarlyFragmentTests) {
		ep.EarlyDepthTest = &ir.EarlyDepthTest{Conservative: conservativeDepth(refl)}
	}
	l.out.EntryPoints = []ir.EntryPoint{ep}
	return l.out, nil
}

func shaderStage(model spirv.ExecutionModel) (ir.ShaderStage, error) {
	switch model {
	case spirv.ExecutionModelVertex:
		return ir.StageVertex, nil
	case spirv.ExecutionModelFragment:
		return ir.StageFragment, nil
	case spirv.ExecutionModelGLCompute:
		return ir.StageCompute, nil
	}
	return 0, unsupported("%s entry points", model)
}

func conservativeDepth(refl *spirv.Reflection) ir.ConservativeDepth {
	switch {
	case refl.HasMode(spirv.ExecutionModeDepthGreater):
		return ir.ConservativeDepthGreaterEqual
	case refl.HasMode(spirv.ExecutionModeDepthLess):
		return ir.ConservativeDepthLessEqual
	}
	return ir.ConservativeDepthUnchanged
}

func unsupported(format string, args ...any) error {
	return spvmsl.NewError(spvmsl.ErrUnsupported, format, args...)
}

func invalid(format string, args ...any) error {
	return spvmsl.NewError(spvmsl.ErrInvalidSPIRV, format, args...)
}

// preEmitted reports whether naga evaluates kind without an Emit statement.
func preEmitted(kind ir.ExpressionKind) bool {
	switch kind.(type) {
	case ir.Literal, ir.ExprConstant, ir.ExprZeroValue, ir.ExprFunctionArgument,
		ir.ExprGlobalVariable, ir.ExprLocalVariable:
		return true
	}
	return false
}

// add appends an expression and records its type. Pre-emitted expressions
// close the pending emit range so that ranges never cover them.
func (l *lifter) add(kind ir.ExpressionKind) (ir.ExpressionHandle, error) {
	if preEmitted(kind) {
		l.flush()
	}
	h := ir.ExpressionHandle(len(l.fn.Expressions))
	l.fn.Expressions = append(l.fn.Expressions, ir.Expression{Kind: kind})
	res, err := ir.ResolveExpressionType(l.out, l.fn, h)
	if err != nil {
		return 0, spvmsl.WrapError(spvmsl.ErrUnsupported, err, "cannot type expression %T", kind)
	}
	l.fn.ExpressionTypes = append(l.fn.ExpressionTypes, res)
	if preEmitted(kind) {
		l.emitStart = h + 1
	}
	return h, nil
}

// flush closes the pending emit range.
func (l *lifter) flush() {
	end := ir.ExpressionHandle(len(l.fn.Expressions))
	if end > l.emitStart {
		*l.body = append(*l.body, ir.Statement{Kind: ir.StmtEmit{Range: ir.Range{Start: l.emitStart, End: end}}})
	}
	l.emitStart = end
}

func (l *lifter) addStmt(kind ir.StatementKind) {
	l.flush()
	*l.body = append(*l.body, ir.Statement{Kind: kind})
}

// inner returns the resolved type of an expression.
func (l *lifter) inner(h ir.ExpressionHandle) ir.TypeInner {
	return ir.TypeResInner(l.out, l.fn.ExpressionTypes[h])
}

// scalarOfExpr returns the scalar type of a scalar or vector expression.
func (l *lifter) scalarOfExpr(h ir.ExpressionHandle) (ir.ScalarType, ir.VectorSize, bool) {
	switch t := l.inner(h).(type) {
	case ir.ScalarType:
		return t, 0, true
	case ir.VectorType:
		return t.Scalar, t.Size, true
	}
	return ir.ScalarType{}, 0, false
}

// value returns the expression of a SPIR-V id defined outside the current
// block: a global, a constant or an already lifted result.
func (l *lifter) value(id uint32) (ir.ExpressionHandle, error) {
	if h, ok := l.values[id]; ok {
		return h, nil
	}
	if g, ok := l.globals[id]; ok {
		h, err := l.add(ir.ExprGlobalVariable{Variable: g})
		if err != nil {
			return 0, err
		}
		l.values[id] = h
		return h, nil
	}
	inst, ok := l.mod.Def(id)
	if !ok {
		return 0, invalid("%%%d is not defined", id)
	}
	var h ir.ExpressionHandle
	var err error
	switch inst.Opcode {
	case spirv.OpConstant, spirv.OpSpecConstant, spirv.OpConstantTrue, spirv.OpConstantFalse,
		spirv.OpSpecConstantTrue, spirv.OpSpecConstantFalse:
		h, err = l.scalarConstant(inst)
	case spirv.OpConstantComposite, spirv.OpSpecConstantComposite:
		var c ir.ConstantHandle
		if c, err = l.constant(id, true); err == nil {
			h, err = l.add(ir.ExprConstant{Constant: c})
		}
	case spirv.OpConstantNull, spirv.OpUndef:
		var ty ir.TypeHandle
		if ty, err = l.typeOf(inst.ResultType()); err == nil {
			h, err = l.add(ir.ExprZeroValue{Type: ty})
		}
	case spirv.OpSpecConstantOp:
		return 0, unsupported("OpSpecConstantOp")
	default:
		return 0, invalid("%%%d (%s) used before its definition", id, inst.Opcode)
	}
	if err != nil {
		return 0, err
	}
	l.values[id] = h
	return h, nil
}

func (l *lifter) scalarConstant(inst spirv.Instruction) (ir.ExpressionHandle, error) {
	s, err := l.scalarOf(inst.ResultType())
	if err != nil {
		return 0, err
	}
	var lit ir.Literal
	switch inst.Opcode {
	case spirv.OpConstantTrue, spirv.OpSpecConstantTrue:
		lit = ir.Literal{Value: ir.LiteralBool(true)}
	case spirv.OpConstantFalse, spirv.OpSpecConstantFalse:
		lit = ir.Literal{Value: ir.LiteralBool(false)}
	default:
		if lit, err = literal(s, inst.Operands()); err != nil {
			return 0, err
		}
	}
	return l.add(lit)
}

// constIndex returns the value of an integer constant id.
func (l *lifter) constIndex(id uint32) (uint32, bool) {
	inst, ok := l.mod.Def(id)
	if !ok || (inst.Opcode != spirv.OpConstant && inst.Opcode != spirv.OpConstantNull) {
		return 0, false
	}
	return l.mod.ConstantValue(id)
}

func (l *lifter) u32(v uint32) (ir.ExpressionHandle, error) {
	return l.add(ir.Literal{Value: ir.LiteralU32(v)})
}

// declareGlobals lifts module-scope variables other than stage inputs and
// outputs. Private variables become function locals.
func (l *lifter) declareGlobals() error {
	for _, id := range l.mod.Globals {
		inst, _ := l.mod.Def(id)
		ops := inst.Operands()
		class := spirv.StorageClass(ops[0])
		pointee, err := l.pointee(inst.ResultType())
		if err != nil {
			return err
		}
		switch class {
		case spirv.StorageClassInput, spirv.StorageClassOutput:
			continue
		case spirv.StorageClassPrivate:
			var init []uint32
			if len(ops) > 1 {
				init = ops[1:2]
			}
			if err := l.declareLocal(id, pointee, init); err != nil {
				return err
			}
			continue
		}
		if !l.refl.UsedGlobals[id] {
			continue
		}
		if err := l.declareGlobal(id, class, pointee); err != nil {
			return err
		}
	}
	return nil
}

func (l *lifter) pointee(ptrType uint32) (uint32, error) {
	inst, ok := l.mod.Def(ptrType)
	if !ok || inst.Opcode != spirv.OpTypePointer {
		return 0, invalid("%%%d is not a pointer type", ptrType)
	}
	return inst.Operands()[1], nil
}

func (l *lifter) binding(id uint32) *ir.ResourceBinding {
	set, _ := l.mod.DecorationValue(id, spirv.DecorationDescriptorSet)
	b, _ := l.mod.DecorationValue(id, spirv.DecorationBinding)
	return &ir.ResourceBinding{Group: set, Binding: b}
}

func (l *lifter) addGlobal(gv ir.GlobalVariable) ir.GlobalVariableHandle {
	h := ir.GlobalVariableHandle(len(l.out.GlobalVariables))
	l.out.GlobalVariables = append(l.out.GlobalVariables, gv)
	return h
}

func (l *lifter) declareGlobal(id uint32, class spirv.StorageClass, pointee uint32) error {
	name := l.mod.Names[id]
	def, _ := l.mod.Def(pointee)
	if def.Opcode == spirv.OpTypeArray || def.Opcode == spirv.OpTypeRuntimeArray {
		elem, _ := l.mod.Def(def.Operands()[0])
		switch elem.Opcode {
		case spirv.OpTypeImage, spirv.OpTypeSampler, spirv.OpTypeSampledImage:
			return unsupported("descriptor array %q", name)
		}
	}
	switch class {
	case spirv.StorageClassUniform, spirv.StorageClassStorageBuffer:
		ty, err := l.typeOf(pointee)
		if err != nil {
			return err
		}
		gv := ir.GlobalVariable{Name: name, Space: ir.SpaceUniform, Type: ty, Binding: l.binding(id)}
		_, bufferBlock := l.mod.Decoration(pointee, spirv.DecorationBufferBlock)
		if class == spirv.StorageClassStorageBuffer || bufferBlock {
			gv.Space = ir.SpaceStorage
			if l.readOnly(id, pointee) {
				gv.Access = ir.StorageRead
			}
		}
		l.globals[id] = l.addGlobal(gv)
	case spirv.StorageClassPushConstant:
		ty, err := l.typeOf(pointee)
		if err != nil {
			return err
		}
		l.globals[id] = l.addGlobal(ir.GlobalVariable{Name: name, Space: ir.SpaceImmediate, Type: ty})
	case spirv.StorageClassWorkgroup:
		ty, err := l.typeOf(pointee)
		if err != nil {
			return err
		}
		l.globals[id] = l.addGlobal(ir.GlobalVariable{Name: name, Space: ir.SpaceWorkGroup, Type: ty})
	case spirv.StorageClassUniformConstant:
		return l.declareHandle(id, name, pointee, def)
	default:
		return unsupported("%s variable %q", class, name)
	}
	return nil
}

// declareHandle lifts an image, sampler or combined image sampler. Handles
// are values in naga, so loads of them are the global itself.
func (l *lifter) declareHandle(id uint32, name string, pointee uint32, def spirv.Instruction) error {
	switch def.Opcode {
	case spirv.OpTypeSampledImage:
		imgType, err := l.handleImageType(id, def.Operands()[0])
		if err != nil {
			return err
		}
		img := l.addGlobal(ir.GlobalVariable{Name: name, Space: ir.SpaceHandle, Type: imgType, Binding: l.binding(id)})
		smp := l.addGlobal(ir.GlobalVariable{
			Name:    name + "Sampler",
			Space:   ir.SpaceHandle,
			Type:    l.addType("", ir.SamplerType{}),
			Binding: l.binding(id),
		})
		ih, err := l.add(ir.ExprGlobalVariable{Variable: img})
		if err != nil {
			return err
		}
		sh, err := l.add(ir.ExprGlobalVariable{Variable: smp})
		if err != nil {
			return err
		}
		l.combined[id] = sampledPair{image: ih, sampler: sh}
	case spirv.OpTypeImage:
		ty, err := l.handleImageType(id, pointee)
		if err != nil {
			return err
		}
		l.globals[id] = l.addGlobal(ir.GlobalVariable{Name: name, Space: ir.SpaceHandle, Type: ty, Binding: l.binding(id)})
		l.direct[id] = true
	case spirv.OpTypeSampler:
		l.globals[id] = l.addGlobal(ir.GlobalVariable{
			Name:    name,
			Space:   ir.SpaceHandle,
			Type:    l.addType("", ir.SamplerType{}),
			Binding: l.binding(id),
		})
		l.direct[id] = true
	default:
		return unsupported("UniformConstant variable %q of %s", name, def.Opcode)
	}
	return nil
}

// handleImageType lifts the image type of variable id, taking the storage
// access from the variable's decorations.
func (l *lifter) handleImageType(id, imageType uint32) (ir.TypeHandle, error) {
	access := ir.StorageAccessReadWrite
	_, nonWritable := l.mod.Decoration(id, spirv.DecorationNonWritable)
	_, nonReadable := l.mod.Decoration(id, spirv.DecorationNonReadable)
	switch {
	case nonWritable:
		access = ir.StorageAccessRead
	case nonReadable:
		access = ir.StorageAccessWrite
	}
	img, err := l.imageType(imageType, access)
	if err != nil {
		return 0, err
	}
	return l.addType("", img), nil
}

// readOnly reports whether a storage block is NonWritable as a whole.
func (l *lifter) readOnly(id, block uint32) bool {
	if _, ok := l.mod.Decoration(id, spirv.DecorationNonWritable); ok {
		return true
	}
	def, _ := l.mod.Def(block)
	if def.Opcode != spirv.OpTypeStruct || len(def.Operands()) == 0 {
		return false
	}
	for i := range def.Operands() {
		if _, ok := l.mod.MemberDecoration(block, uint32(i), spirv.DecorationNonWritable); !ok {
			return false
		}
	}
	return true
}

// declareLocals lifts the Function variables of the entry function and the
// locals backing its phi nodes.
func (l *lifter) declareLocals(fn *spirv.Function) error {
	for _, inst := range l.mod.Body(fn) {
		switch inst.Opcode {
		case spirv.OpVariable:
			pointee, err := l.pointee(inst.ResultType())
			if err != nil {
				return err
			}
			ops := inst.Operands()
			if err := l.declareLocal(inst.ResultID(), pointee, ops[1:]); err != nil {
				return err
			}
		case spirv.OpPhi:
			ty, err := l.typeOf(inst.ResultType())
			if err != nil {
				return err
			}
			local := uint32(len(l.fn.LocalVars))
			l.fn.LocalVars = append(l.fn.LocalVars, ir.LocalVariable{Name: "phi", Type: ty})
			l.phiLocals[inst.ResultID()] = local
			ops := inst.Operands()
			for i := 0; i+1 < len(ops); i += 2 {
				l.phiStores[ops[i+1]] = append(l.phiStores[ops[i+1]], phiStore{local: local, value: ops[i]})
			}
		}
	}
	return nil
}

func (l *lifter) declareLocal(id, pointee uint32, init []uint32) error {
	ty, err := l.typeOf(pointee)
	if err != nil {
		return err
	}
	lv := ir.LocalVariable{Name: l.mod.Names[id], Type: ty}
	if lv.Name == "" {
		lv.Name = "local"
	}
	if len(init) > 0 {
		h, err := l.value(init[0])
		if err != nil {
			return err
		}
		lv.Init = &h
	}
	index := uint32(len(l.fn.LocalVars))
	l.fn.LocalVars = append(l.fn.LocalVars, lv)
	h, err := l.add(ir.ExprLocalVariable{Variable: index})
	if err != nil {
		return err
	}
	l.values[id] = h
	return nil
}

func endsWithTerminator(b ir.Block) bool {
	if len(b) == 0 {
		return false
	}
	switch b[len(b)-1].Kind.(type) {
	case ir.StmtReturn, ir.StmtKill, ir.StmtBreak, ir.StmtContinue:
		return true
	}
	return false
}
