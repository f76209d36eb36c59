// Package symbols implements the compiler's lexical scope stack: a stack of
// mappings from mangled name to Symbol, pushed/popped around each function
// and nested block scope. Grounded on the teacher's lang/resolver scoping
// idiom, simplified for a language with no closures: a name resolves in the
// innermost scope that defines it, with no cell/free-variable capture.
package symbols

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/types"
)

// Kind tags which variant of Symbol a value holds.
type Kind int

const (
	Empty Kind = iota
	Function
	Value
	Variable
)

// Symbol is a tagged variant: Empty | Function | Value | Variable, per the
// data model's closed symbol taxonomy.
type Symbol struct {
	Kind Kind

	// Function
	Fn         irbuilder.Func
	ParamTypes []types.Type
	RetType    types.Type

	// Value (non-addressable SSA value, e.g. a parameter binding or an
	// intermediate expression result)
	Val Value
	// Variable (addressable stack slot)
	Slot irbuilder.Slot
	// Value/Variable share a static type
	Type types.Type
}

// Value aliases irbuilder.Value to keep this package's exports self
// contained for callers that only need the Symbol/Kind vocabulary.
type Value = irbuilder.Value

// FnSymbol builds a Function-kind symbol.
func FnSymbol(fn irbuilder.Func, paramTypes []types.Type, retType types.Type) Symbol {
	return Symbol{Kind: Function, Fn: fn, ParamTypes: paramTypes, RetType: retType}
}

// ValSymbol builds a Value-kind symbol.
func ValSymbol(v Value, t types.Type) Symbol {
	return Symbol{Kind: Value, Val: v, Type: t}
}

// VarSymbol builds a Variable-kind symbol.
func VarSymbol(slot irbuilder.Slot, t types.Type) Symbol {
	return Symbol{Kind: Variable, Slot: slot, Type: t}
}

// Mangle implements the data model's name-mangling rule (§3): main keeps its
// bare name, reserving it as the sole non-suffixed external symbol; every
// other name is suffixed with ".anx".
func Mangle(name string) string {
	if name == "main" {
		return name
	}
	return name + ".anx"
}

type scope struct {
	names *swiss.Map[string, Symbol]
}

// Table is the compiler's stack of lexical scopes.
type Table struct {
	scopes []*scope
}

// New returns an empty table with no open scopes.
func New() *Table { return &Table{} }

// Push opens a new, innermost scope.
func (t *Table) Push() {
	t.scopes = append(t.scopes, &scope{names: swiss.NewMap[string, Symbol](8)})
}

// Pop closes the innermost scope. Panics if no scope is open — every push
// must be matched by a pop on every exit path of its caller.
func (t *Table) Pop() {
	if len(t.scopes) == 0 {
		panic("symbols: Pop with no open scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Add inserts name (mangled) into the innermost scope, regardless of where
// name may already exist in enclosing scopes (shadowing across scopes is
// allowed; the caller is responsible for rejecting same-scope redeclaration
// via DeclaredInTop before calling Add).
func (t *Table) Add(name string, sym Symbol) {
	top := t.top()
	top.names.Put(Mangle(name), sym)
}

// DeclaredInTop reports whether name already exists in the innermost scope
// (used to reject same-scope redeclaration per the data model invariant).
func (t *Table) DeclaredInTop(name string) bool {
	_, ok := t.top().names.Get(Mangle(name))
	return ok
}

// Search looks up name from the innermost scope outward. ok is false if no
// scope defines it.
func (t *Table) Search(name string) (Symbol, bool) {
	mangled := Mangle(name)
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].names.Get(mangled); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

func (t *Table) top() *scope {
	if len(t.scopes) == 0 {
		panic("symbols: no open scope")
	}
	return t.scopes[len(t.scopes)-1]
}

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Function:
		return "function"
	case Value:
		return "value"
	case Variable:
		return "variable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
