package spirv

import "fmt"

// ResourceKind classifies a descriptor-bound or push constant variable.
type ResourceKind uint8

// Resource kinds
const (
	ResourceUniformBuffer ResourceKind = iota
	ResourceStorageBuffer
	ResourcePushConstant
	ResourceSampledImage
	ResourceSeparateImage
	ResourceSeparateSampler
	ResourceStorageImage
	ResourceOther
)

var resourceKindNames = [...]string{
	"UniformBuffer", "StorageBuffer", "PushConstant", "SampledImage",
	"SeparateImage", "SeparateSampler", "StorageImage", "Other",
}

func (k ResourceKind) String() string {
	if int(k) < len(resourceKindNames) {
		return resourceKindNames[k]
	}
	return fmt.Sprintf("ResourceKind(%d)", k)
}

// Resource is a resource variable visible to an entry point.
type Resource struct {
	Var     uint32
	Name    string
	Kind    ResourceKind
	Set     uint32
	Binding uint32
	// Count is the array length, 1 for non-arrays and 0 for runtime arrays.
	Count uint32
	// Type is the pointee type with arrays stripped.
	Type uint32
	Used bool
}

// StageVar is an Input or Output interface variable.
type StageVar struct {
	Var         uint32
	Name        string
	Class       StorageClass
	Type        uint32
	Location    uint32
	HasLocation bool
	Component   uint32
	// Locations is the number of consecutive locations the variable spans.
	Locations uint32
	BuiltIn   BuiltIn
	IsBuiltIn bool
	// BlockBuiltIns lists member builtins of a builtin block such as gl_PerVertex.
	BlockBuiltIns []BuiltIn
	Invariant     bool
	Patch         bool
	Used          bool
}

// HasBuiltIn reports whether the variable is, or contains, builtin b.
func (v StageVar) HasBuiltIn(b BuiltIn) bool {
	if v.IsBuiltIn && v.BuiltIn == b {
		return true
	}
	for _, m := range v.BlockBuiltIns {
		if m == b {
			return true
		}
	}
	return false
}

// CoversLocation reports whether the variable occupies location.
func (v StageVar) CoversLocation(location uint32) bool {
	return v.HasLocation && location >= v.Location && location < v.Location+max(v.Locations, 1)
}

// WorkgroupDim is one workgroup size dimension. Const is the id of the
// specialization constant that overrides it, or 0.
type WorkgroupDim struct {
	Size   uint32
	Const  uint32
	SpecID uint32
}

// Reflection is the static interface of one entry point.
type Reflection struct {
	EntryPoint EntryPoint
	Modes      []ModeDecl
	Inputs     []StageVar
	Outputs    []StageVar
	Resources  []Resource
	Workgroup  [3]WorkgroupDim

	// Functions lists the entry function and every function it calls.
	Functions        []uint32
	UsedGlobals      map[uint32]bool
	PushConstantUsed bool
	UsesArrayLength  bool
	UsesSampledImage bool
	BuiltInsRead     map[BuiltIn]bool
	BuiltInsWritten  map[BuiltIn]bool
}

// HasMode reports whether the entry point declares mode.
func (r *Reflection) HasMode(mode ExecutionMode) bool {
	for _, d := range r.Modes {
		if d.Mode == mode {
			return true
		}
	}
	return false
}

// InputUsed reports whether a statically used input covers location.
func (r *Reflection) InputUsed(location uint32) bool {
	for _, v := range r.Inputs {
		if v.Used && v.CoversLocation(location) {
			return true
		}
	}
	return false
}

// ResourceUsed reports whether a statically used resource is bound at set
// and binding.
func (r *Reflection) ResourceUsed(set, binding uint32) bool {
	for _, res := range r.Resources {
		if res.Used && res.Kind != ResourcePushConstant && res.Set == set && res.Binding == binding {
			return true
		}
	}
	return false
}

// Reflect computes the static interface of ep.
func (m *Module) Reflect(ep EntryPoint) (*Reflection, error) {
	if _, ok := m.Functions[ep.Function]; !ok {
		return nil, fmt.Errorf("spirv: entry point %q: function %%%d not defined", ep.Name, ep.Function)
	}
	r := &Reflection{
		EntryPoint:      ep,
		Modes:           m.Modes[ep.Function],
		UsedGlobals:     make(map[uint32]bool),
		BuiltInsRead:    make(map[BuiltIn]bool),
		BuiltInsWritten: make(map[BuiltIn]bool),
	}
	globals := make(map[uint32]bool, len(m.Globals))
	for _, g := range m.Globals {
		globals[g] = true
	}

	seen := map[uint32]bool{ep.Function: true}
	queue := []uint32{ep.Function}
	for len(queue) > 0 {
		fnID := queue[0]
		queue = queue[1:]
		r.Functions = append(r.Functions, fnID)
		for _, inst := range m.Body(m.Functions[fnID]) {
			switch inst.Opcode {
			case OpFunctionCall:
				if callee := inst.Operands()[0]; !seen[callee] {
					if _, ok := m.Functions[callee]; ok {
						seen[callee] = true
						queue = append(queue, callee)
					}
				}
			case OpArrayLength:
				r.UsesArrayLength = true
			case OpSampledImage:
				r.UsesSampledImage = true
			}
			for _, id := range idOperands(inst) {
				if globals[id] {
					r.UsedGlobals[id] = true
				}
			}
		}
	}

	for _, g := range m.Globals {
		inst, _ := m.Def(g)
		class := StorageClass(inst.Operands()[0])
		ptrType := inst.ResultType()
		pointee := m.pointee(ptrType)
		used := r.UsedGlobals[g]
		switch class {
		case StorageClassInput, StorageClassOutput:
			if !m.inInterface(ep, g) {
				continue
			}
			v := m.stageVar(g, class, pointee, used)
			if class == StorageClassInput {
				r.Inputs = append(r.Inputs, v)
			} else {
				r.Outputs = append(r.Outputs, v)
			}
			if used {
				set := r.BuiltInsRead
				if class == StorageClassOutput {
					set = r.BuiltInsWritten
				}
				if v.IsBuiltIn {
					set[v.BuiltIn] = true
				}
				for _, b := range v.BlockBuiltIns {
					set[b] = true
				}
			}
		case StorageClassUniformConstant, StorageClassUniform, StorageClassStorageBuffer, StorageClassPushConstant:
			res := m.resource(g, class, pointee, used)
			if res.Kind == ResourcePushConstant && used {
				r.PushConstantUsed = true
			}
			if used && res.Kind == ResourceSampledImage {
				r.UsesSampledImage = true
			}
			r.Resources = append(r.Resources, res)
		}
	}

	r.Workgroup = m.workgroupSize(ep.Function)
	return r, nil
}

// inInterface reports whether an Input/Output variable is listed by the
// entry point. Modules before SPIR-V 1.4 list only Input and Output
// variables, so the check is exact for those classes.
func (m *Module) inInterface(ep EntryPoint, id uint32) bool {
	for _, v := range ep.Interface {
		if v == id {
			return true
		}
	}
	return false
}

func (m *Module) pointee(ptrType uint32) uint32 {
	inst, ok := m.Def(ptrType)
	if !ok || inst.Opcode != OpTypePointer {
		return 0
	}
	return inst.Operands()[1]
}

func (m *Module) stageVar(id uint32, class StorageClass, typ uint32, used bool) StageVar {
	v := StageVar{
		Var:       id,
		Name:      m.Names[id],
		Class:     class,
		Type:      typ,
		Used:      used,
		Locations: m.LocationCount(typ),
	}
	if loc, ok := m.DecorationValue(id, DecorationLocation); ok {
		v.Location, v.HasLocation = loc, true
	}
	v.Component, _ = m.DecorationValue(id, DecorationComponent)
	if b, ok := m.DecorationValue(id, DecorationBuiltIn); ok {
		v.BuiltIn, v.IsBuiltIn = BuiltIn(b), true
	}
	_, v.Invariant = m.Decoration(id, DecorationInvariant)
	_, v.Patch = m.Decoration(id, DecorationPatch)

	block := m.stripArrays(typ)
	if inst, ok := m.Def(block); ok && inst.Opcode == OpTypeStruct {
		for i := range inst.Operands() {
			b, ok := m.MemberDecoration(block, uint32(i), DecorationBuiltIn)
			if !ok || len(b) == 0 {
				continue
			}
			v.BlockBuiltIns = append(v.BlockBuiltIns, BuiltIn(b[0]))
			if BuiltIn(b[0]) == BuiltInPosition {
				if _, inv := m.MemberDecoration(block, uint32(i), DecorationInvariant); inv {
					v.Invariant = true
				}
			}
		}
	}
	return v
}

func (m *Module) resource(id uint32, class StorageClass, typ uint32, used bool) Resource {
	res := Resource{Var: id, Name: m.Names[id], Used: used, Count: 1}
	res.Set, _ = m.DecorationValue(id, DecorationDescriptorSet)
	res.Binding, _ = m.DecorationValue(id, DecorationBinding)

	if inst, ok := m.Def(typ); ok {
		switch inst.Opcode {
		case OpTypeArray:
			res.Count, _ = m.ConstantValue(inst.Operands()[1])
			typ = inst.Operands()[0]
		case OpTypeRuntimeArray:
			res.Count = 0
			typ = inst.Operands()[0]
		}
	}
	res.Type = typ
	inst, _ := m.Def(typ)

	switch {
	case class == StorageClassPushConstant:
		res.Kind = ResourcePushConstant
		res.Set, res.Binding = ^uint32(0), 0
	case class == StorageClassStorageBuffer:
		res.Kind = ResourceStorageBuffer
	case class == StorageClassUniform:
		if _, bb := m.Decoration(typ, DecorationBufferBlock); bb {
			res.Kind = ResourceStorageBuffer
		} else {
			res.Kind = ResourceUniformBuffer
		}
	case inst.Opcode == OpTypeSampledImage:
		res.Kind = ResourceSampledImage
	case inst.Opcode == OpTypeSampler:
		res.Kind = ResourceSeparateSampler
	case inst.Opcode == OpTypeImage:
		if ops := inst.Operands(); len(ops) >= 6 && ops[5] == 2 {
			res.Kind = ResourceStorageImage
		} else {
			res.Kind = ResourceSeparateImage
		}
	default:
		res.Kind = ResourceOther
	}
	return res
}

func (m *Module) stripArrays(typ uint32) uint32 {
	for {
		inst, ok := m.Def(typ)
		if !ok || (inst.Opcode != OpTypeArray && inst.Opcode != OpTypeRuntimeArray) {
			return typ
		}
		typ = inst.Operands()[0]
	}
}

// LocationCount returns the number of interface locations a value of typ
// occupies: one per vector or scalar (two for 64-bit vec3/vec4), one per
// matrix column, summed over struct members and multiplied over arrays.
func (m *Module) LocationCount(typ uint32) uint32 {
	inst, ok := m.Def(typ)
	if !ok {
		return 1
	}
	ops := inst.Operands()
	switch inst.Opcode {
	case OpTypeVector:
		if w := m.scalarWidth(ops[0]); w == 64 && ops[1] > 2 {
			return 2
		}
		return 1
	case OpTypeMatrix:
		return ops[1] * m.LocationCount(ops[0])
	case OpTypeArray:
		n, _ := m.ConstantValue(ops[1])
		return n * m.LocationCount(ops[0])
	case OpTypeStruct:
		var total uint32
		for _, member := range ops {
			total += m.LocationCount(member)
		}
		return total
	}
	return 1
}

func (m *Module) scalarWidth(typ uint32) uint32 {
	inst, ok := m.Def(typ)
	if !ok {
		return 0
	}
	switch inst.Opcode {
	case OpTypeInt, OpTypeFloat:
		return inst.Operands()[0]
	}
	return 0
}

// workgroupSize resolves the workgroup size of fn. LocalSize literals come
// first, LocalSizeId constants replace them, and a constant decorated with
// the WorkgroupSize builtin takes precedence over both.
func (m *Module) workgroupSize(fn uint32) [3]WorkgroupDim {
	var wg [3]WorkgroupDim
	if d, ok := m.Mode(fn, ExecutionModeLocalSize); ok {
		for i := 0; i < 3 && i < len(d.Operands); i++ {
			wg[i].Size = d.Operands[i]
		}
	}
	if d, ok := m.Mode(fn, ExecutionModeLocalSizeID); ok {
		for i := 0; i < 3 && i < len(d.Operands); i++ {
			wg[i] = m.workgroupDim(d.Operands[i])
		}
	}
	for id, decs := range m.Decorations {
		b, ok := decs[DecorationBuiltIn]
		if !ok || len(b) == 0 || BuiltIn(b[0]) != BuiltInWorkgroupSize {
			continue
		}
		inst, ok := m.Def(id)
		if !ok || (inst.Opcode != OpConstantComposite && inst.Opcode != OpSpecConstantComposite) {
			continue
		}
		for i, c := range inst.Operands() {
			if i < 3 {
				wg[i] = m.workgroupDim(c)
			}
		}
	}
	return wg
}

func (m *Module) workgroupDim(id uint32) WorkgroupDim {
	var d WorkgroupDim
	d.Size, _ = m.ConstantValue(id)
	if m.IsSpecConstant(id) {
		if spec, ok := m.DecorationValue(id, DecorationSpecID); ok {
			d.Const, d.SpecID = id, spec
		}
	}
	return d
}

// idOperands returns the operands of a function-body instruction that are
// ids, dropping literal operands that could alias a variable id.
func idOperands(inst Instruction) []uint32 {
	ops := inst.Operands()
	switch inst.Opcode {
	case OpLine, OpSelectionMerge, OpLoopMerge, OpFunction, OpLabel, OpBranch:
		return nil
	case OpVariable:
		if len(ops) > 1 {
			return ops[1:2]
		}
		return nil
	case OpLoad:
		return head(ops, 1)
	case OpStore, OpCopyMemory, OpVectorShuffle, OpCompositeInsert:
		return head(ops, 2)
	case OpCompositeExtract, OpSwitch:
		return head(ops, 1)
	case OpExtInst:
		if len(ops) < 2 {
			return ops
		}
		return append([]uint32{ops[0]}, ops[2:]...)
	case OpImageSampleImplicitLod, OpImageSampleExplicitLod, OpImageSampleProjImplicitLod,
		OpImageFetch, OpImageRead:
		return dropAt(ops, 2)
	case OpImageSampleDrefImplicitLod, OpImageSampleDrefExplicitLod,
		OpImageGather, OpImageDrefGather, OpImageWrite:
		return dropAt(ops, 3)
	}
	return ops
}

func head(ops []uint32, n int) []uint32 {
	if len(ops) < n {
		return ops
	}
	return ops[:n]
}

func dropAt(ops []uint32, i int) []uint32 {
	if len(ops) <= i {
		return ops
	}
	out := make([]uint32, 0, len(ops)-1)
	out = append(out, ops[:i]...)
	return append(out, ops[i+1:]...)
}
