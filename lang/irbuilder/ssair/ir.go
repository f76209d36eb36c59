// Package ssair is a reference implementation of the irbuilder.Builder
// contract (spec.md §6.3): an in-memory SSA-form IR with basic blocks and
// explicit terminators, a pseudo-assembly dumper (asm.go, grounded on the
// teacher's lang/compiler/asm.go textual bytecode dump), and a small
// interpreter (interp.go, grounded on the teacher's lang/machine frame/
// thread execution loop) used to exercise the compiled program's behavior
// in tests without needing a real native object emitter or linker — both
// of which spec.md §1 explicitly scopes out as external collaborators.
package ssair

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/types"
)

type opcode int

const (
	opConstInt opcode = iota
	opConstFloat
	opAlloca
	opLoad
	opStore
	opBinOp
	opCmp
	opNeg
	opNot
	opCast
	opCall
	opBr
	opCondBr
	opRet
)

// Instr is one SSA instruction. Only the fields relevant to Op are
// populated; the rest stay zero-valued.
type Instr struct {
	Op   opcode
	Name string // alloca/debug name, empty otherwise
	Ty   types.Type

	A, B Value // operand values

	ConstI uint64
	Radix  int
	ConstF float64

	BinOp     irbuilder.BinOp
	CmpOp     irbuilder.CmpOp
	OperandTy types.Type // opCmp: type of A/B before the comparison (selects float/signed/unsigned variant)
	Coerc     types.Coercion

	SlotIdx int // for opLoad/opStore: index of the opAlloca instruction in the entry block

	CallFn   int
	CallArgs []Value

	Target     Block // opBr
	Then, Else Block // opCondBr
	HasRet     bool  // opRet
	RetVal     Value
}

// BasicBlock is a maximal straight-line instruction sequence; Terminated is
// set once a Br/CondBr/Ret instruction has been appended (spec.md §8
// invariant 1: exactly one terminator per block).
type BasicBlock struct {
	Name       string
	Instrs     []Instr
	Terminated bool
}

// Function holds one compiled function's signature and body.
type Function struct {
	Name       string
	ParamTypes []types.Type
	RetType    types.Type
	Linkage    irbuilder.Linkage
	External   bool // no body; declared only (spec.md §6.3 DeclareExternal)
	Blocks     []*BasicBlock
}

// entry returns the function's entry block (always index 0), the only
// block Alloca is allowed to append to (spec.md §8 invariant 5).
func (f *Function) entry() *BasicBlock { return f.Blocks[0] }

// Module is the top-level IR container and the concrete irbuilder.Builder
// implementation.
type Module struct {
	Name      string
	Functions []*Function

	// names interns function names to their index, the way the teacher's
	// lang/compiler.pcomp interns names/constants into maps during
	// compilation — backed by the same swiss-map dependency the teacher
	// uses for its own string-keyed tables (lang/machine.Map).
	names *swiss.Map[string, int]

	curFn, curBlock int
}

// New creates an empty module ready to receive functions.
func New(name string) *Module {
	return &Module{Name: name, names: swiss.NewMap[string, int](8)}
}

var (
	_ irbuilder.Builder = (*Module)(nil)
	_ irbuilder.Value   = Value{}
	_ irbuilder.Func    = Func{}
	_ irbuilder.Block   = Block{}
	_ irbuilder.Slot    = Slot{}
)

// Func is an opaque handle to a function in the module.
type Func struct{ idx int }

func (Func) IrFunc() {}

// Block is an opaque handle to one of a function's basic blocks.
type Block struct {
	fn  int
	idx int
}

func (Block) IrBlock() {}

// Slot is an opaque handle to an addressable stack allocation — in this
// implementation, the index of the opAlloca instruction that created it in
// the owning function's entry block.
type Slot struct {
	fn  int
	idx int
	ty  types.Type
}

func (Slot) IrSlot() {}

// valueKind distinguishes a parameter reference (alive for the whole call,
// not tied to a block) from an ordinary instruction result (alive only
// within the block that produced it — every cross-statement value is
// spilled through a Slot, so no instruction result is ever referenced from
// outside its own block).
type valueKind int

const (
	vkInstr valueKind = iota
	vkParam
)

// Value is an opaque SSA value handle.
type Value struct {
	kind  valueKind
	fn    int
	block int
	instr int
	param int
	ty    types.Type
}

func (Value) IrValue() {}

func (m *Module) fn(f irbuilder.Func) *Function {
	return m.Functions[f.(Func).idx]
}

func (m *Module) blk(b irbuilder.Block) (*Function, *BasicBlock) {
	bb := b.(Block)
	fn := m.Functions[bb.fn]
	return fn, fn.Blocks[bb.idx]
}

func (m *Module) String() string { return fmt.Sprintf("module(%s)", m.Name) }
