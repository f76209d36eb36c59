package ssair

import (
	"fmt"
	"math"
	"math/big"

	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/types"
)

// cell is a runtime value: integers (including bool) are kept as arbitrary-
// precision big.Int so every width up to i128/u128 is handled uniformly;
// floats are kept as float64, truncated to float32 precision when Ty is f32.
type cell struct {
	ty types.Type
	i  *big.Int
	f  float64
}

func intCell(ty types.Type, v *big.Int) cell { return cell{ty: ty, i: normalize(ty, v)} }
func floatCell(ty types.Type, v float64) cell {
	if ty == types.F32 {
		v = float64(float32(v))
	}
	return cell{ty: ty, f: v}
}

func normalize(ty types.Type, v *big.Int) *big.Int {
	w := uint(ty.Width())
	if w == 0 {
		w = 1
	}
	mod := new(big.Int).Lsh(big.NewInt(1), w)
	u := new(big.Int).Mod(v, mod)
	if u.Sign() < 0 {
		u.Add(u, mod)
	}
	if ty.IsSigned() {
		half := new(big.Int).Lsh(big.NewInt(1), w-1)
		if u.Cmp(half) >= 0 {
			u.Sub(u, mod)
		}
	}
	return u
}

// Thread executes compiled ssair functions, the reference stand-in for the
// real native execution of the linked binary (spec.md §8's "Testable
// properties" end-to-end scenarios check the running program's exit
// status). Grounded on the teacher's lang/machine frame/thread dispatch
// loop, adapted from a bytecode-opcode loop to a basic-block SSA walk.
type Thread struct {
	m *Module
}

// NewThread returns a Thread ready to execute functions of m.
func NewThread(m *Module) *Thread { return &Thread{m: m} }

// frame holds one function call's addressable slots.
type frame struct {
	fn    *Function
	slots map[int]cell
	args  []cell
}

// Run executes fn (by name) with the given integer arguments and returns
// its return value; fn must have an integer or bool return type for this
// reference interpreter (the compiled entry point, main, always does).
func (t *Thread) Run(fnName string, args ...int64) (int64, error) {
	idx, ok := t.m.names.Get(fnName)
	if !ok {
		return 0, fmt.Errorf("function %q not found", fnName)
	}
	fn := t.m.Functions[idx]
	fr := &frame{fn: fn, slots: map[int]cell{}}
	for i, a := range args {
		var ty types.Type
		if i < len(fn.ParamTypes) {
			ty = fn.ParamTypes[i]
		} else {
			ty = types.I64
		}
		fr.args = append(fr.args, intCell(ty, big.NewInt(a)))
	}

	c, err := t.call(fn, fr.args)
	if err != nil {
		return 0, err
	}
	if c.i != nil {
		return c.i.Int64(), nil
	}
	return int64(c.f), nil
}

func (t *Thread) call(fn *Function, args []cell) (cell, error) {
	if fn.External {
		return t.callExternal(fn, args)
	}

	fr := &frame{fn: fn, slots: map[int]cell{}, args: args}
	blockIdx := 0
	for {
		bb := fn.Blocks[blockIdx]
		regs := make(map[int]cell, len(bb.Instrs))
		next := -1
		var retVal cell
		returned := false

		for i, in := range bb.Instrs {
			switch in.Op {
			case opConstInt:
				regs[i] = intCell(in.Ty, new(big.Int).SetUint64(in.ConstI))
			case opConstFloat:
				regs[i] = floatCell(in.Ty, in.ConstF)
			case opAlloca:
				if _, ok := fr.slots[i]; !ok {
					fr.slots[i] = zeroCell(in.Ty)
				}
			case opLoad:
				regs[i] = fr.slots[in.SlotIdx]
			case opStore:
				fr.slots[in.SlotIdx] = t.eval(fr, regs, in.A)
			case opBinOp:
				regs[i] = t.binOp(in.BinOp, in.Ty, t.eval(fr, regs, in.A), t.eval(fr, regs, in.B))
			case opCmp:
				regs[i] = t.cmp(in.CmpOp, in.OperandTy, t.eval(fr, regs, in.A), t.eval(fr, regs, in.B))
			case opNeg:
				regs[i] = t.neg(in.Ty, t.eval(fr, regs, in.A))
			case opNot:
				v := t.eval(fr, regs, in.A)
				regs[i] = boolCell(v.i.Sign() == 0)
			case opCast:
				regs[i] = t.cast(in.Coerc, in.Ty, t.eval(fr, regs, in.A))
			case opCall:
				callee := t.m.Functions[in.CallFn]
				callArgs := make([]cell, len(in.CallArgs))
				for j, a := range in.CallArgs {
					callArgs[j] = t.eval(fr, regs, a)
				}
				rv, err := t.call(callee, callArgs)
				if err != nil {
					return cell{}, err
				}
				regs[i] = rv
			case opBr:
				next = in.Target.idx
			case opCondBr:
				cond := t.eval(fr, regs, in.A)
				if cond.i.Sign() != 0 {
					next = in.Then.idx
				} else {
					next = in.Else.idx
				}
			case opRet:
				returned = true
				if in.HasRet {
					retVal = t.eval(fr, regs, in.RetVal)
				}
			}
		}

		if returned {
			return retVal, nil
		}
		if next < 0 {
			return cell{}, fmt.Errorf("function %q: block %q fell through without a terminator", fn.Name, bb.Name)
		}
		blockIdx = next
	}
}

// callExternal runs the host-side implementation of a declared-external
// function. The only one Anx needs is @out's backing primitive (spec.md
// §4.7): it writes the low byte of its argument as a character to stdout.
func (t *Thread) callExternal(fn *Function, args []cell) (cell, error) {
	switch fn.Name {
	case "@out.host":
		if len(args) > 0 && args[0].i != nil {
			fmt.Printf("%c", byte(args[0].i.Int64()))
		}
		return intCell(types.I32, big.NewInt(0)), nil
	default:
		return cell{}, fmt.Errorf("no host implementation for external function %q", fn.Name)
	}
}

func (t *Thread) eval(fr *frame, regs map[int]cell, v Value) cell {
	if v.kind == vkParam {
		if v.param < len(fr.args) {
			return fr.args[v.param]
		}
		return zeroCell(v.ty)
	}
	if c, ok := regs[v.instr]; ok {
		return c
	}
	return zeroCell(v.ty)
}

func zeroCell(ty types.Type) cell {
	if ty.IsFloat() {
		return floatCell(ty, 0)
	}
	return intCell(ty, big.NewInt(0))
}

func boolCell(b bool) cell {
	if b {
		return intCell(types.Bool, big.NewInt(1))
	}
	return intCell(types.Bool, big.NewInt(0))
}

func (t *Thread) binOp(op irbuilder.BinOp, ty types.Type, a, b cell) cell {
	if ty.IsFloat() {
		var r float64
		switch op {
		case irbuilder.Add:
			r = a.f + b.f
		case irbuilder.Sub:
			r = a.f - b.f
		case irbuilder.Mul:
			r = a.f * b.f
		case irbuilder.Div:
			r = a.f / b.f
		case irbuilder.Rem:
			r = math.Mod(a.f, b.f)
		}
		return floatCell(ty, r)
	}

	x, y := a.i, b.i
	r := new(big.Int)
	switch op {
	case irbuilder.Add:
		r.Add(x, y)
	case irbuilder.Sub:
		r.Sub(x, y)
	case irbuilder.Mul:
		r.Mul(x, y)
	case irbuilder.Div:
		if y.Sign() == 0 {
			return intCell(ty, big.NewInt(0))
		}
		r.Quo(x, y)
	case irbuilder.Rem:
		if y.Sign() == 0 {
			return intCell(ty, big.NewInt(0))
		}
		r.Rem(x, y)
	}
	return intCell(ty, r)
}

func (t *Thread) cmp(op irbuilder.CmpOp, operandTy types.Type, a, b cell) cell {
	if operandTy.IsFloat() {
		var r bool
		switch op {
		case irbuilder.Lt:
			r = a.f < b.f
		case irbuilder.Gt:
			r = a.f > b.f
		case irbuilder.Le:
			r = a.f <= b.f
		case irbuilder.Ge:
			r = a.f >= b.f
		case irbuilder.Eq:
			r = a.f == b.f
		case irbuilder.Neq:
			r = a.f != b.f
		}
		return boolCell(r)
	}

	c := a.i.Cmp(b.i)
	var r bool
	switch op {
	case irbuilder.Lt:
		r = c < 0
	case irbuilder.Gt:
		r = c > 0
	case irbuilder.Le:
		r = c <= 0
	case irbuilder.Ge:
		r = c >= 0
	case irbuilder.Eq:
		r = c == 0
	case irbuilder.Neq:
		r = c != 0
	}
	return boolCell(r)
}

func (t *Thread) neg(ty types.Type, v cell) cell {
	if ty.IsFloat() {
		return floatCell(ty, -v.f)
	}
	return intCell(ty, new(big.Int).Neg(v.i))
}

func (t *Thread) cast(c types.Coercion, to types.Type, v cell) cell {
	switch c {
	case types.Identity, types.Bitcast:
		if to.IsFloat() {
			return floatCell(to, v.f)
		}
		return intCell(to, v.i)
	case types.FPExt, types.FPTrunc:
		return floatCell(to, v.f)
	case types.FPToSI, types.FPToUI:
		bi, _ := big.NewFloat(math.Trunc(v.f)).Int(nil)
		return intCell(to, bi)
	case types.SIToFP, types.UIToFP:
		f := new(big.Float).SetInt(v.i)
		r, _ := f.Float64()
		return floatCell(to, r)
	case types.SExt, types.ZExt, types.Trunc:
		return intCell(to, v.i)
	case types.FPToBool:
		return boolCell(v.f != 0)
	case types.IntToBool:
		return boolCell(v.i.Sign() != 0)
	}
	return zeroCell(to)
}
