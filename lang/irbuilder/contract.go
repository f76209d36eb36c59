// Package irbuilder defines the abstract SSA IR-builder contract that the
// Anx compiler's semantic lowering pass (lang/compiler) programs against.
// Per spec.md §6.3, the actual SSA-IR builder, the target-specific object
// emitter, the optimizer passes and the linker are all external
// collaborators, deliberately out of the compiler's core scope — the core
// only needs the capabilities listed on Builder. The lang/irbuilder/ssair
// subpackage provides a concrete, in-memory reference implementation of
// this contract, used by the driver and by every compiler test.
package irbuilder

import (
	"io"

	"github.com/anxlang/anxc/lang/types"
)

// Linkage controls whether a function is visible outside the translation
// unit (spec.md §4.6: "pub flag controls external vs internal linkage").
type Linkage int

const (
	Internal Linkage = iota
	External
)

// Value is an opaque handle to an SSA value produced by the builder.
// Implementations live outside this package (e.g. lang/irbuilder/ssair), so
// the marker method is exported.
type Value interface{ IrValue() }

// Func is an opaque handle to a function created by the builder.
type Func interface{ IrFunc() }

// Block is an opaque handle to a basic block created by the builder.
type Block interface{ IrBlock() }

// Slot is an opaque handle to an addressable stack allocation.
type Slot interface{ IrSlot() }

// BinOp names the binary arithmetic operators the builder must support
// (spec.md §4.6's join-type table).
type BinOp string

const (
	Add BinOp = "+"
	Sub BinOp = "-"
	Mul BinOp = "*"
	Div BinOp = "/"
	Rem BinOp = "%"
)

// CmpOp names the comparison operators the builder must support.
type CmpOp string

const (
	Lt  CmpOp = "<"
	Gt  CmpOp = ">"
	Le  CmpOp = "<="
	Ge  CmpOp = ">="
	Eq  CmpOp = "=="
	Neq CmpOp = "!="
)

// Builder is the abstract interface the core's semantic lowering pass
// (lang/compiler) consumes. Every method corresponds to one of the
// capabilities enumerated in spec.md §6.3.
type Builder interface {
	// CreateFunction creates a function with the given signature and linkage
	// and returns its handle. Parameters are accessible via Param.
	CreateFunction(name string, paramTypes []types.Type, retType types.Type, linkage Linkage) Func
	// DeclareExternal declares a function implemented outside the module
	// (e.g. the host's character-output primitive backing @out, spec.md §4.7),
	// without a body.
	DeclareExternal(name string, paramTypes []types.Type, retType types.Type) Func
	// Param returns the SSA value bound to f's i-th parameter.
	Param(f Func, i int) Value

	// CreateBlock appends a new, empty basic block to f.
	CreateBlock(f Func, name string) Block
	// SetInsertBlock directs subsequent emission to b.
	SetInsertBlock(b Block)
	// HasTerminator reports whether b already ends with a branch or return.
	HasTerminator(b Block) bool

	// Alloca allocates a stack slot of type t in f's entry block,
	// regardless of the current insertion block (spec.md §4.6: "prevents
	// alloca in a loop").
	Alloca(f Func, t types.Type, name string) Slot
	Load(slot Slot) Value
	Store(slot Slot, v Value)

	// ConstInt creates a constant integer of type t from a radix-encoded
	// literal (radix one of 2, 8, 10, 16).
	ConstInt(t types.Type, value uint64, radix int) Value
	// ConstFloat creates a constant float of type t (f32 or f64).
	ConstFloat(t types.Type, value float64) Value

	// BinOp emits the typed arithmetic instruction for op at result type t
	// (t selects the float/signed/unsigned variant per spec.md §4.6).
	BinOp(op BinOp, t types.Type, lhs, rhs Value) Value
	// Cmp emits a typed comparison; operandType is the (already-coerced)
	// type of lhs/rhs and selects the float/signed/unsigned variant. The
	// result is always bool.
	Cmp(op CmpOp, operandType types.Type, lhs, rhs Value) Value
	// Neg emits integer or float negation at type t.
	Neg(t types.Type, v Value) Value
	// Not emits a boolean logical-not.
	Not(v Value) Value

	// Cast emits the conversion identified by c, producing a value of type
	// to from v.
	Cast(c types.Coercion, v Value, to types.Type) Value

	// Br emits an unconditional branch to target.
	Br(target Block)
	// CondBr emits a conditional branch.
	CondBr(cond Value, then, els Block)
	// Ret emits a return; v is nil for a void return.
	Ret(v Value)

	// Call emits a call to f with the given arguments.
	Call(f Func, args []Value) Value

	// Verify checks f's structural invariants (spec.md §8: one terminator
	// per block, allocas only in the entry block).
	Verify(f Func) error
	// Optimize runs the external optimizer over f.
	Optimize(f Func)

	// EmitObject serializes the whole module as a target object file.
	EmitObject(w io.Writer) error
}
