package ssair

import (
	"fmt"

	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/types"
)

func (m *Module) CreateFunction(name string, paramTypes []types.Type, retType types.Type, linkage irbuilder.Linkage) irbuilder.Func {
	idx := len(m.Functions)
	f := &Function{Name: name, ParamTypes: paramTypes, RetType: retType, Linkage: linkage}
	m.Functions = append(m.Functions, f)
	m.names.Put(name, idx)
	return Func{idx: idx}
}

func (m *Module) DeclareExternal(name string, paramTypes []types.Type, retType types.Type) irbuilder.Func {
	if idx, ok := m.names.Get(name); ok {
		return Func{idx: idx}
	}
	idx := len(m.Functions)
	f := &Function{Name: name, ParamTypes: paramTypes, RetType: retType, Linkage: irbuilder.External, External: true}
	m.Functions = append(m.Functions, f)
	m.names.Put(name, idx)
	return Func{idx: idx}
}

func (m *Module) Param(f irbuilder.Func, i int) irbuilder.Value {
	fn := m.fn(f)
	return Value{kind: vkParam, fn: f.(Func).idx, param: i, ty: fn.ParamTypes[i]}
}

func (m *Module) CreateBlock(f irbuilder.Func, name string) irbuilder.Block {
	fn := m.fn(f)
	idx := len(fn.Blocks)
	fn.Blocks = append(fn.Blocks, &BasicBlock{Name: name})
	return Block{fn: f.(Func).idx, idx: idx}
}

func (m *Module) SetInsertBlock(b irbuilder.Block) {
	bb := b.(Block)
	m.curFn = bb.fn
	m.curBlock = bb.idx
}

func (m *Module) HasTerminator(b irbuilder.Block) bool {
	_, bb := m.blk(b)
	return bb.Terminated
}

func (m *Module) cur() (*Function, *BasicBlock) {
	fn := m.Functions[m.curFn]
	return fn, fn.Blocks[m.curBlock]
}

func (m *Module) append(in Instr) Value {
	fn, bb := m.cur()
	_ = fn
	idx := len(bb.Instrs)
	bb.Instrs = append(bb.Instrs, in)
	return Value{kind: vkInstr, fn: m.curFn, block: m.curBlock, instr: idx, ty: in.Ty}
}

func (m *Module) Alloca(f irbuilder.Func, t types.Type, name string) irbuilder.Slot {
	fn := m.fn(f)
	entry := fn.entry()
	idx := len(entry.Instrs)
	entry.Instrs = append(entry.Instrs, Instr{Op: opAlloca, Ty: t, Name: name})
	return Slot{fn: f.(Func).idx, idx: idx, ty: t}
}

func (m *Module) Load(slot irbuilder.Slot) irbuilder.Value {
	s := slot.(Slot)
	return m.append(Instr{Op: opLoad, Ty: s.ty, SlotIdx: s.idx})
}

func (m *Module) Store(slot irbuilder.Slot, v irbuilder.Value) {
	s := slot.(Slot)
	m.append(Instr{Op: opStore, Ty: s.ty, SlotIdx: s.idx, A: v.(Value)})
}

func (m *Module) ConstInt(t types.Type, value uint64, radix int) irbuilder.Value {
	return m.append(Instr{Op: opConstInt, Ty: t, ConstI: value, Radix: radix})
}

func (m *Module) ConstFloat(t types.Type, value float64) irbuilder.Value {
	if t == types.F32 {
		value = float64(float32(value))
	}
	return m.append(Instr{Op: opConstFloat, Ty: t, ConstF: value})
}

func (m *Module) BinOp(op irbuilder.BinOp, t types.Type, lhs, rhs irbuilder.Value) irbuilder.Value {
	return m.append(Instr{Op: opBinOp, Ty: t, BinOp: op, A: lhs.(Value), B: rhs.(Value)})
}

func (m *Module) Cmp(op irbuilder.CmpOp, operandType types.Type, lhs, rhs irbuilder.Value) irbuilder.Value {
	return m.append(Instr{Op: opCmp, Ty: types.Bool, CmpOp: op, OperandTy: operandType, A: lhs.(Value), B: rhs.(Value)})
}

func (m *Module) Neg(t types.Type, v irbuilder.Value) irbuilder.Value {
	return m.append(Instr{Op: opNeg, Ty: t, A: v.(Value)})
}

func (m *Module) Not(v irbuilder.Value) irbuilder.Value {
	return m.append(Instr{Op: opNot, Ty: types.Bool, A: v.(Value)})
}

func (m *Module) Cast(c types.Coercion, v irbuilder.Value, to types.Type) irbuilder.Value {
	if c == types.Identity {
		vv := v.(Value)
		vv.ty = to
		return vv
	}
	return m.append(Instr{Op: opCast, Ty: to, Coerc: c, A: v.(Value)})
}

func (m *Module) Br(target irbuilder.Block) {
	_, bb := m.cur()
	bb.Instrs = append(bb.Instrs, Instr{Op: opBr, Target: target.(Block)})
	bb.Terminated = true
}

func (m *Module) CondBr(cond irbuilder.Value, then, els irbuilder.Block) {
	_, bb := m.cur()
	bb.Instrs = append(bb.Instrs, Instr{Op: opCondBr, A: cond.(Value), Then: then.(Block), Else: els.(Block)})
	bb.Terminated = true
}

func (m *Module) Ret(v irbuilder.Value) {
	_, bb := m.cur()
	in := Instr{Op: opRet}
	if v != nil {
		in.HasRet = true
		in.RetVal = v.(Value)
	}
	bb.Instrs = append(bb.Instrs, in)
	bb.Terminated = true
}

func (m *Module) Call(f irbuilder.Func, args []irbuilder.Value) irbuilder.Value {
	fn := m.fn(f)
	vargs := make([]Value, len(args))
	for i, a := range args {
		vargs[i] = a.(Value)
	}
	return m.append(Instr{Op: opCall, Ty: fn.RetType, CallFn: f.(Func).idx, CallArgs: vargs})
}

// Verify checks that every block reachable from the entry block has a
// terminator (spec.md §8 invariant 1). It does not count terminators per
// block, and it does not check alloca placement: Alloca only ever appends to
// the entry block. Call Optimize first to
// drop genuinely dead blocks (e.g. the unreachable merge block of an if
// whose arms both returned, per spec.md §4.6) before verifying.
func (m *Module) Verify(f irbuilder.Func) error {
	fn := m.fn(f)
	if fn.External {
		return nil
	}
	reachable := reachableBlocks(fn)
	for i, b := range fn.Blocks {
		if !reachable[i] {
			continue
		}
		if !b.Terminated {
			return fmt.Errorf("basic block %q of function %q has no terminator", b.Name, fn.Name)
		}
	}
	return nil
}

// Optimize drops blocks unreachable from the entry block, the reference
// stand-in for the real optimizer's dead-code elimination (spec.md §4.6).
func (m *Module) Optimize(f irbuilder.Func) {
	fn := m.fn(f)
	reachable := reachableBlocks(fn)
	kept := fn.Blocks[:0:0]
	remap := make(map[int]int, len(fn.Blocks))
	for i, b := range fn.Blocks {
		if reachable[i] {
			remap[i] = len(kept)
			kept = append(kept, b)
		}
	}
	fn.Blocks = kept
	for _, b := range fn.Blocks {
		for i := range b.Instrs {
			switch b.Instrs[i].Op {
			case opBr:
				b.Instrs[i].Target.idx = remap[b.Instrs[i].Target.idx]
			case opCondBr:
				b.Instrs[i].Then.idx = remap[b.Instrs[i].Then.idx]
				b.Instrs[i].Else.idx = remap[b.Instrs[i].Else.idx]
			}
		}
	}
}

func reachableBlocks(fn *Function) []bool {
	seen := make([]bool, len(fn.Blocks))
	if len(fn.Blocks) == 0 {
		return seen
	}
	var walk func(i int)
	walk = func(i int) {
		if seen[i] {
			return
		}
		seen[i] = true
		for _, in := range fn.Blocks[i].Instrs {
			switch in.Op {
			case opBr:
				walk(in.Target.idx)
			case opCondBr:
				walk(in.Then.idx)
				walk(in.Else.idx)
			}
		}
	}
	walk(0)
	return seen
}
