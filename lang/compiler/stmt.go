package compiler

import (
	"fmt"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/symbols"
	"github.com/anxlang/anxc/lang/types"
)

// stmt lowers one Stmt node. A nil Stmt (a body-less forward declaration,
// or an absent while/if arm) is a no-op.
func (fc *fcomp) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case nil:
	case *ast.Scope:
		fc.scope(n)
	case *ast.VarDecl:
		fc.varDecl(n)
	case *ast.Ret:
		fc.ret(n)
	case *ast.If:
		fc.ifStmt(n)
	case *ast.While:
		fc.whileStmt(n)
	case *ast.Break:
		fc.breakStmt(n)
	case *ast.Cont:
		fc.contStmt(n)
	case *ast.Assign:
		fc.assign(n)
	case *ast.SwapAssign:
		fc.swapAssign(n)
	case *ast.Call:
		fc.expr(n) // a bare call is valid as an instruction (spec.md §4.4)
	default:
		panic(fmt.Sprintf("compiler: unhandled statement type %T", s))
	}
}

// scope lowers a braced sequence of instructions in its own lexical scope.
func (fc *fcomp) scope(n *ast.Scope) {
	fc.pc.syms.Push()
	defer fc.pc.syms.Pop()
	for _, inner := range n.Stmts {
		if fc.terminated() {
			pos, size := inner.Span()
			fc.pc.diag.FailAt("instruction is unreachable", pos, size)
			panic("unreachable")
		}
		fc.stmt(inner)
	}
}

// varDecl lowers `var DECL (, DECL)*;` (spec.md §4.6 "Var declaration
// lowering").
func (fc *fcomp) varDecl(n *ast.VarDecl) {
	for _, elem := range n.Elems {
		if fc.terminated() {
			fc.pc.diag.FailAt("instruction is unreachable", n.Pos, n.Size)
			panic("unreachable")
		}
		if fc.pc.syms.DeclaredInTop(elem.Name) {
			fc.pc.diag.FailAt("variable name is already used in this scope", elem.NamePos, len(elem.Name))
			panic("unreachable")
		}

		var declType types.Type
		haveDeclType := elem.Type != ""
		if haveDeclType {
			var err error
			declType, err = types.FromString(elem.Type, false)
			if err != nil {
				fc.pc.diag.FailAt(err.Error(), elem.NamePos, len(elem.Name))
				panic("unreachable")
			}
		}

		var init *symbols.Value
		var initType types.Type
		if elem.Init != nil {
			v, t := fc.expr(elem.Init)
			init = &v
			initType = t
		}

		var varType types.Type
		switch {
		case haveDeclType:
			varType = declType
		case init != nil:
			varType = initType
		default:
			fc.pc.diag.FailAt(fmt.Sprintf("variable '%s' needs a type or an initializer", elem.Name), elem.NamePos, len(elem.Name))
			panic("unreachable")
		}
		if varType == types.Void {
			fc.pc.diag.FailAt(fmt.Sprintf("variable '%s' cannot have type void", elem.Name), elem.NamePos, len(elem.Name))
			panic("unreachable")
		}

		slot := fc.alloca(varType, elem.Name)
		if init != nil {
			coerced := fc.coerce(*init, initType, varType, elem.NamePos, len(elem.Name))
			fc.pc.b.Store(slot, coerced)
		}
		fc.pc.syms.Add(elem.Name, symbols.VarSymbol(slot, varType))
	}
}

// assign lowers `NAME = EXPR;`.
func (fc *fcomp) assign(n *ast.Assign) {
	sym, ok := fc.pc.syms.Search(n.Name)
	if !ok || sym.Kind != symbols.Variable {
		fc.pc.diag.FailAt(fmt.Sprintf("unrecognized symbol '%s'", n.Name), n.NamePos, len(n.Name))
		panic("unreachable")
	}
	v, t := fc.expr(n.Value)
	coerced := fc.coerce(v, t, sym.Type, n.NamePos, len(n.Name))
	fc.pc.b.Store(sym.Slot, coerced)
}

// swapAssign lowers the parallel-assignment form `n1, n2 = e1, e2;`: every
// right-hand side is evaluated before any left-hand side is stored, so a
// genuine swap (`a, b = b, a;`) works.
func (fc *fcomp) swapAssign(n *ast.SwapAssign) {
	if len(n.Names) != len(n.Values) {
		pos, size := n.Span()
		fc.pc.diag.FailAt("swap statement parity mismatch", pos, size)
		panic("unreachable")
	}

	vals := make([]symbols.Value, len(n.Values))
	vtypes := make([]types.Type, len(n.Values))
	for i, e := range n.Values {
		vals[i], vtypes[i] = fc.expr(e)
	}

	for i, name := range n.Names {
		sym, ok := fc.pc.syms.Search(name)
		if !ok || sym.Kind != symbols.Variable {
			fc.pc.diag.FailAt(fmt.Sprintf("unrecognized symbol '%s'", name), n.NamePos[i], len(name))
			panic("unreachable")
		}
		coerced := fc.coerce(vals[i], vtypes[i], sym.Type, n.NamePos[i], len(name))
		fc.pc.b.Store(sym.Slot, coerced)
	}
}

// ret lowers `ret [EXPR];` (spec.md §4.6 "Return").
func (fc *fcomp) ret(n *ast.Ret) {
	if n.Value == nil {
		switch {
		case fc.name == "main":
			fc.pc.b.Ret(fc.pc.b.ConstInt(types.I32, 0, 10))
		case fc.retType == types.Void:
			fc.pc.b.Ret(nil)
		default:
			fc.pc.diag.FailAt(fmt.Sprintf("function '%s' must return a value", fc.name), n.Pos, n.Size)
			panic("unreachable")
		}
		return
	}

	if fc.retType == types.Void {
		fc.pc.diag.FailAt(fmt.Sprintf("void function '%s' cannot return a value", fc.name), n.Pos, n.Size)
		panic("unreachable")
	}
	v, t := fc.expr(n.Value)
	pos, size := n.Value.Span()
	coerced := fc.coerce(v, t, fc.retType, pos, size)
	fc.pc.b.Ret(coerced)
}

// ifStmt lowers `if cond then [else else]` (spec.md §4.6 "If").
func (fc *fcomp) ifStmt(n *ast.If) {
	cv, ct := fc.expr(n.Cond)
	pos, size := n.Cond.Span()
	cond := fc.coerce(cv, ct, types.Bool, pos, size)

	thenBlk := fc.pc.b.CreateBlock(fc.fn, "if.then")
	elseBlk := fc.pc.b.CreateBlock(fc.fn, "if.else")
	mergeBlk := fc.pc.b.CreateBlock(fc.fn, "if.merge")
	fc.pc.b.CondBr(cond, thenBlk, elseBlk)

	fc.setBlock(thenBlk)
	fc.stmt(n.Then)
	thenFalls := !fc.terminated()
	if thenFalls {
		fc.pc.b.Br(mergeBlk)
	}

	fc.setBlock(elseBlk)
	fc.stmt(n.Else)
	elseFalls := !fc.terminated()
	if elseFalls {
		fc.pc.b.Br(mergeBlk)
	}

	// When both arms end in a terminator, mergeBlk has no predecessor: the
	// insertion point stays on the terminated arm, so nothing is emitted into
	// the dead block and Optimize drops it.
	if thenFalls || elseFalls {
		fc.setBlock(mergeBlk)
	}
}

// whileStmt lowers the four-block while pattern (spec.md §4.6 "While").
func (fc *fcomp) whileStmt(n *ast.While) {
	entryBlk := fc.pc.b.CreateBlock(fc.fn, "while.entry")
	loopBlk := fc.pc.b.CreateBlock(fc.fn, "while.loop")
	stepBlk := fc.pc.b.CreateBlock(fc.fn, "while.step")
	exitBlk := fc.pc.b.CreateBlock(fc.fn, "while.exit")

	fc.pc.b.Br(entryBlk)

	fc.setBlock(entryBlk)
	cv, ct := fc.expr(n.Cond)
	pos, size := n.Cond.Span()
	cond := fc.coerce(cv, ct, types.Bool, pos, size)
	fc.pc.b.CondBr(cond, loopBlk, exitBlk)

	fc.pushLoop(exitBlk, stepBlk)
	fc.setBlock(loopBlk)
	fc.stmt(n.Body)
	if !fc.terminated() {
		fc.pc.b.Br(stepBlk)
	}
	fc.popLoop()

	fc.setBlock(stepBlk)
	if n.Step != nil {
		fc.expr(n.Step)
	}
	fc.pc.b.Br(entryBlk)

	fc.setBlock(exitBlk)
}

func (fc *fcomp) breakStmt(n *ast.Break) {
	if len(fc.loops) == 0 {
		fc.pc.diag.FailAt("break instruction outside of loop", n.Pos, n.Size)
		panic("unreachable")
	}
	fc.pc.b.Br(fc.loops[len(fc.loops)-1].brk)
}

func (fc *fcomp) contStmt(n *ast.Cont) {
	if len(fc.loops) == 0 {
		fc.pc.diag.FailAt("continue instruction outside of loop", n.Pos, n.Size)
		panic("unreachable")
	}
	fc.pc.b.Br(fc.loops[len(fc.loops)-1].cont)
}
