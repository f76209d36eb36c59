package compiler

import (
	"fmt"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/symbols"
	"github.com/anxlang/anxc/lang/token"
	"github.com/anxlang/anxc/lang/types"
)

// expr lowers an Expr node, returning its SSA value and static type.
func (fc *fcomp) expr(e ast.Expr) (symbols.Value, types.Type) {
	switch n := e.(type) {
	case *ast.Num:
		return fc.numLit(n)
	case *ast.Ident:
		return fc.ident(n)
	case *ast.BinOp:
		return fc.binOp(n)
	case *ast.UnOp:
		return fc.unOp(n)
	case *ast.Call:
		return fc.call(n)
	default:
		panic(fmt.Sprintf("compiler: unhandled expression type %T", e))
	}
}

// coerce resolves and, unless the conversion is a no-op, emits the Cast
// needed to bring v (of type from) to type to, reporting the "cannot
// coerce" diagnostic at pos/size if from/to fall outside the matrix
// (spec.md §4.2).
func (fc *fcomp) coerce(v symbols.Value, from, to types.Type, pos token.Pos, size int) symbols.Value {
	if from == to {
		return v
	}
	c, err := types.Coerce(from, to)
	if err != nil {
		fc.pc.diag.FailAt(err.Error(), pos, size)
		panic("unreachable")
	}
	return fc.pc.b.Cast(c, v, to)
}

// ident lowers a bare identifier reference (spec.md §4.6 "Identifier
// lowering"): it must resolve to a Variable, and lowers to a load.
func (fc *fcomp) ident(n *ast.Ident) (symbols.Value, types.Type) {
	sym, ok := fc.pc.syms.Search(n.Name)
	if !ok || sym.Kind != symbols.Variable {
		fc.pc.diag.FailAt(fmt.Sprintf("unrecognized symbol '%s'", n.Name), n.Pos, n.Size)
		panic("unreachable")
	}
	return fc.pc.b.Load(sym.Slot), sym.Type
}

// call lowers a function-call expression (spec.md §4.6 "Call lowering"),
// routing @-prefixed names through the intrinsic table.
func (fc *fcomp) call(n *ast.Call) (symbols.Value, types.Type) {
	var fn irbuilder.Func
	var paramTypes []types.Type
	var retType types.Type

	if len(n.Name) > 0 && n.Name[0] == '@' {
		var err error
		fn, paramTypes, retType, err = fc.pc.intr.Resolve(n.Name)
		if err != nil {
			fc.pc.diag.FailAt(err.Error(), n.NamePos, len(n.Name))
			panic("unreachable")
		}
	} else {
		sym, ok := fc.pc.syms.Search(n.Name)
		if !ok || sym.Kind != symbols.Function {
			fc.pc.diag.FailAt(fmt.Sprintf("unrecognized symbol '%s'", n.Name), n.NamePos, len(n.Name))
			panic("unreachable")
		}
		fn, paramTypes, retType = sym.Fn, sym.ParamTypes, sym.RetType
	}

	if len(n.Args) != len(paramTypes) {
		pos, size := n.Span()
		fc.pc.diag.FailAt(
			fmt.Sprintf("expected %d argument(s), got %d instead", len(paramTypes), len(n.Args)),
			pos, size)
		panic("unreachable")
	}

	args := make([]symbols.Value, len(n.Args))
	for i, a := range n.Args {
		v, t := fc.expr(a)
		pos, size := a.Span()
		args[i] = fc.coerce(v, t, paramTypes[i], pos, size)
	}

	v := fc.pc.b.Call(fn, args)
	return v, retType
}

// isSignedInt reports whether t is a signed integer type.
func isSignedInt(t types.Type) bool { return t.IsSigned() }

// isUnsignedInt reports whether t is an unsigned integer type, excluding
// bool (unlike types.Type.IsUnsigned, which folds bool into the unsigned
// class for coercion purposes — spec.md §4.6's join-type rule treats "both
// bool" as its own, final case).
func isUnsignedInt(t types.Type) bool { return t.IsUnsigned() && !t.IsBool() }

// intTypeForWidth returns the signed or unsigned integer type of the given
// bit width (one of 8/16/32/64/128).
func intTypeForWidth(signed bool, width int) types.Type {
	switch width {
	case 8:
		if signed {
			return types.I8
		}
		return types.U8
	case 16:
		if signed {
			return types.I16
		}
		return types.U16
	case 32:
		if signed {
			return types.I32
		}
		return types.U32
	case 64:
		if signed {
			return types.I64
		}
		return types.U64
	default:
		if signed {
			return types.I128
		}
		return types.U128
	}
}

// joinType computes the join type dtype of a binary operation's operands
// (spec.md §4.6 "Binary operator lowering").
func joinType(l, r types.Type) types.Type {
	switch {
	case l.IsDouble() || r.IsDouble():
		return types.F64
	case l.IsFloat() || r.IsFloat():
		return types.F32
	case isSignedInt(l) || isSignedInt(r):
		return intTypeForWidth(true, max(l.Width(), r.Width()))
	case isUnsignedInt(l) || isUnsignedInt(r):
		return intTypeForWidth(false, max(l.Width(), r.Width()))
	default:
		return types.Bool
	}
}

// binOp lowers a binary-operator expression (spec.md §4.6 "Binary operator
// lowering").
func (fc *fcomp) binOp(n *ast.BinOp) (symbols.Value, types.Type) {
	lv, lt := fc.expr(n.Lhs)
	rv, rt := fc.expr(n.Rhs)
	if lt == types.Void {
		pos, size := n.Lhs.Span()
		fc.pc.diag.FailAt("cannot use void type as operand", pos, size)
		panic("unreachable")
	}
	if rt == types.Void {
		pos, size := n.Rhs.Span()
		fc.pc.diag.FailAt("cannot use void type as operand", pos, size)
		panic("unreachable")
	}

	dtype := joinType(lt, rt)

	switch n.Op {
	case "+", "-", "*", "/", "%":
		if dtype.IsBool() {
			fc.invalidCombo(n, lt, rt)
		}
		lpos, lsize := n.Lhs.Span()
		rpos, rsize := n.Rhs.Span()
		lc := fc.coerce(lv, lt, dtype, lpos, lsize)
		rc := fc.coerce(rv, rt, dtype, rpos, rsize)
		return fc.pc.b.BinOp(binOpOf(n.Op), dtype, lc, rc), dtype

	case "<", ">", "<=", ">=":
		if dtype.IsBool() {
			fc.invalidCombo(n, lt, rt)
		}
		lpos, lsize := n.Lhs.Span()
		rpos, rsize := n.Rhs.Span()
		lc := fc.coerce(lv, lt, dtype, lpos, lsize)
		rc := fc.coerce(rv, rt, dtype, rpos, rsize)
		return fc.pc.b.Cmp(cmpOpOf(n.Op), dtype, lc, rc), types.Bool

	case "==", "!=":
		lpos, lsize := n.Lhs.Span()
		rpos, rsize := n.Rhs.Span()
		lc := fc.coerce(lv, lt, dtype, lpos, lsize)
		rc := fc.coerce(rv, rt, dtype, rpos, rsize)
		return fc.pc.b.Cmp(cmpOpOf(n.Op), dtype, lc, rc), types.Bool

	default:
		panic(fmt.Sprintf("compiler: unhandled binary operator %q", n.Op))
	}
}

func (fc *fcomp) invalidCombo(n *ast.BinOp, lt, rt types.Type) {
	pos, size := n.Span()
	fc.pc.diag.FailAt(
		fmt.Sprintf("operation '%s' does not support '%s' and '%s' type combination", n.Op, lt, rt),
		pos, size)
	panic("unreachable")
}

func binOpOf(op string) irbuilder.BinOp {
	switch op {
	case "+":
		return irbuilder.Add
	case "-":
		return irbuilder.Sub
	case "*":
		return irbuilder.Mul
	case "/":
		return irbuilder.Div
	case "%":
		return irbuilder.Rem
	}
	panic("compiler: unreachable binop " + op)
}

func cmpOpOf(op string) irbuilder.CmpOp {
	switch op {
	case "<":
		return irbuilder.Lt
	case ">":
		return irbuilder.Gt
	case "<=":
		return irbuilder.Le
	case ">=":
		return irbuilder.Ge
	case "==":
		return irbuilder.Eq
	case "!=":
		return irbuilder.Neq
	}
	panic("compiler: unreachable cmpop " + op)
}

// unOp lowers a unary-operator expression (spec.md §4.6 "Unary operator
// lowering").
func (fc *fcomp) unOp(n *ast.UnOp) (symbols.Value, types.Type) {
	v, t := fc.expr(n.Val)

	switch n.Op {
	case "!":
		pos, size := n.Val.Span()
		cv := fc.coerce(v, t, types.Bool, pos, size)
		return fc.pc.b.Not(cv), types.Bool

	case "-":
		if t.IsBool() {
			pos, size := n.Span()
			fc.pc.diag.FailAt("cannot negate boolean type, use '!' instead", pos, size)
			panic("unreachable")
		}
		if t.IsFloat() {
			return fc.pc.b.Neg(t, v), t
		}
		if isUnsignedInt(t) {
			signedT := intTypeForWidth(true, t.Width())
			cv := fc.coerce(v, t, signedT, n.Pos, n.Size)
			return fc.pc.b.Neg(signedT, cv), signedT
		}
		// signed int
		return fc.pc.b.Neg(t, v), t

	default:
		panic(fmt.Sprintf("compiler: unhandled unary operator %q", n.Op))
	}
}
