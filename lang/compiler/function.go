package compiler

import (
	"fmt"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/symbols"
	"github.com/anxlang/anxc/lang/types"
)

// loopTargets is one entry of the parallel break_targets/continue_targets
// stacks (spec.md §4.6 "While"): the blocks a break/continue inside this
// loop must branch to.
type loopTargets struct {
	brk, cont irbuilder.Block
}

// fcomp holds per-function compiler state: the function handle, the
// current insertion block, the entry block (allocas always land there
// regardless of the current block), and the loop-target stacks.
type fcomp struct {
	pc *pcomp

	name    string // source name, for diagnostics
	fn      irbuilder.Func
	retType types.Type
	entry   irbuilder.Block
	cur     irbuilder.Block

	loops []loopTargets
}

// function lowers one FnDecl with a body (spec.md §4.6 "Function
// lowering"). The function handle was already created during the
// declaration pass (pcomp.program); this only emits its body.
func (pc *pcomp) function(decl *ast.FnDecl) {
	sym, _ := pc.syms.Search(decl.Name)
	fn := sym.Fn

	entry := pc.b.CreateBlock(fn, "entry")
	pc.b.SetInsertBlock(entry)

	fc := &fcomp{pc: pc, name: decl.Name, fn: fn, retType: sym.RetType, entry: entry, cur: entry}

	pc.syms.Push()
	for i, p := range decl.Params {
		slot := pc.b.Alloca(fn, sym.ParamTypes[i], p.Name)
		pc.b.Store(slot, pc.b.Param(fn, i))
		pc.syms.Add(p.Name, symbols.VarSymbol(slot, sym.ParamTypes[i]))
	}

	fc.stmt(decl.Body)

	if !pc.b.HasTerminator(fc.cur) {
		switch {
		case decl.Name == "main":
			zero := pc.b.ConstInt(types.I32, 0, 10)
			pc.b.Ret(zero)
		case sym.RetType == types.Void:
			pc.b.Ret(nil)
		default:
			pc.diag.FailAt(
				fmt.Sprintf("expected return instruction at end of non-void function '%s'", decl.Name),
				decl.EndPos, 1)
			panic("unreachable")
		}
	}
	pc.syms.Pop()

	pc.b.Optimize(fn)
	if err := pc.b.Verify(fn); err != nil {
		pc.diag.Fail(err.Error())
		panic("unreachable")
	}
}

// alloca creates a stack slot in the function's entry block regardless of
// fc.cur (spec.md §4.6: "this prevents alloca in a loop").
func (fc *fcomp) alloca(t types.Type, name string) irbuilder.Slot {
	return fc.pc.b.Alloca(fc.fn, t, name)
}

func (fc *fcomp) terminated() bool {
	return fc.pc.b.HasTerminator(fc.cur)
}

func (fc *fcomp) setBlock(b irbuilder.Block) {
	fc.cur = b
	fc.pc.b.SetInsertBlock(b)
}

func (fc *fcomp) pushLoop(brk, cont irbuilder.Block) {
	fc.loops = append(fc.loops, loopTargets{brk: brk, cont: cont})
}

func (fc *fcomp) popLoop() {
	fc.loops = fc.loops[:len(fc.loops)-1]
}
