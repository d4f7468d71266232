package translate

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/spvmsl/spirv"
)

// liftBlocks lifts the blocks reached from label until control reaches
// stop or leaves the function.
func (l *lifter) liftBlocks(label, stop uint32) error {
	for label != stop {
		if l.visited[label] {
			return unsupported("loops")
		}
		l.visited[label] = true
		start, ok := l.blocks[label]
		if !ok {
			return invalid("branch to undefined label %%%d", label)
		}
		next, done, err := l.liftBlock(label, start)
		if err != nil || done {
			return err
		}
		label = next
	}
	return nil
}

// liftBlock lifts the instructions of one block and returns the label
// control continues at. done is set when the block leaves the function.
func (l *lifter) liftBlock(label uint32, start int) (next uint32, done bool, err error) {
	var merge uint32
	for _, inst := range l.code[start+1:] {
		ops := inst.Operands()
		switch inst.Opcode {
		case spirv.OpLabel:
			return 0, false, invalid("block %%%d has no terminator", label)
		case spirv.OpVariable, spirv.OpLine, spirv.OpNoLine, spirv.OpNop,
			spirv.OpLifetimeStart, spirv.OpLifetimeStop:
		case spirv.OpSelectionMerge:
			merge = ops[0]
		case spirv.OpLoopMerge:
			return 0, false, unsupported("loops")
		case spirv.OpSwitch:
			return 0, false, unsupported("switch statements")
		case spirv.OpBranch:
			return ops[0], false, l.storePhis(label)
		case spirv.OpBranchConditional:
			if merge == 0 {
				return 0, false, unsupported("unstructured conditional branch in block %%%d", label)
			}
			cond, err := l.value(ops[0])
			if err != nil {
				return 0, false, err
			}
			if err := l.storePhis(label); err != nil {
				return 0, false, err
			}
			return merge, false, l.liftIf(cond, ops[1], ops[2], merge)
		case spirv.OpReturn:
			return 0, true, l.emitReturn()
		case spirv.OpReturnValue:
			return 0, false, unsupported("OpReturnValue in an entry point")
		case spirv.OpKill, spirv.OpTerminateInvocation:
			l.addStmt(ir.StmtKill{})
			return 0, true, nil
		case spirv.OpUnreachable:
			return 0, true, nil
		default:
			if err := l.instruction(inst); err != nil {
				return 0, false, err
			}
		}
	}
	return 0, false, invalid("block %%%d runs past the end of the function", label)
}

// liftIf lifts a selection construct into an if statement. A branch
// targeting the merge block directly is empty.
func (l *lifter) liftIf(cond ir.ExpressionHandle, accept, reject, merge uint32) error {
	l.flush()
	outer := l.body
	var acc, rej ir.Block
	for _, arm := range []struct {
		label uint32
		block *ir.Block
	}{{accept, &acc}, {reject, &rej}} {
		if arm.label == merge {
			continue
		}
		l.body = arm.block
		if err := l.liftBlocks(arm.label, merge); err != nil {
			l.body = outer
			return err
		}
		l.flush()
	}
	l.body = outer
	l.addStmt(ir.StmtIf{Condition: cond, Accept: acc, Reject: rej})
	return nil
}

// storePhis assigns the values the phi nodes take when control leaves
// label.
func (l *lifter) storePhis(label uint32) error {
	for _, s := range l.phiStores[label] {
		v, err := l.value(s.value)
		if err != nil {
			return err
		}
		ptr, err := l.add(ir.ExprLocalVariable{Variable: s.local})
		if err != nil {
			return err
		}
		l.addStmt(ir.StmtStore{Pointer: ptr, Value: v})
	}
	return nil
}

// loadPhi reads the local backing phi node id.
func (l *lifter) loadPhi(id uint32) error {
	ptr, err := l.add(ir.ExprLocalVariable{Variable: l.phiLocals[id]})
	if err != nil {
		return err
	}
	h, err := l.add(ir.ExprLoad{Pointer: ptr})
	if err != nil {
		return err
	}
	l.values[id] = h
	return nil
}
