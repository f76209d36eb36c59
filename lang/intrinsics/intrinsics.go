// Package intrinsics implements the lazy table of @-prefixed builtin
// symbols (spec.md §4.7). Anx defines exactly one: @out, the host
// character-output primitive. The table is one per compilation (bound to a
// single irbuilder.Builder/module), not process-global, matching this
// codebase's general preference for an explicit value over global state
// (spec.md §5's "faithful reimplementation may thread all of this state
// through an explicit value instead").
package intrinsics

import (
	"fmt"

	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/types"
)

// hostSymbol names the external primitive @out binds to at link time; the
// reference interpreter (lang/irbuilder/ssair) recognizes this exact name
// as its character-output primitive.
const hostSymbol = "@out.host"

// Table caches the Function handles materialized for each intrinsic name,
// so repeated calls to the same intrinsic reuse one external declaration
// instead of redeclaring it.
type Table struct {
	b  irbuilder.Builder
	fn map[string]irbuilder.Func
}

// New returns an empty table bound to b.
func New(b irbuilder.Builder) *Table {
	return &Table{b: b, fn: make(map[string]irbuilder.Func)}
}

// Resolve returns the Function symbol, parameter types and return type for
// the intrinsic named name (which must start with "@"), materializing it
// on first use. Reports ("unrecognized intrinsic function") for any name
// other than "@out".
func (t *Table) Resolve(name string) (irbuilder.Func, []types.Type, types.Type, error) {
	if fn, ok := t.fn[name]; ok {
		return fn, paramTypes(name), retType(name), nil
	}

	switch name {
	case "@out":
		fn := t.b.DeclareExternal(hostSymbol, []types.Type{types.I32}, types.I32)
		t.fn[name] = fn
		return fn, paramTypes(name), retType(name), nil
	default:
		return nil, nil, types.Void, fmt.Errorf("unrecognized intrinsic function '%s'", name)
	}
}

func paramTypes(name string) []types.Type {
	switch name {
	case "@out":
		return []types.Type{types.I32}
	default:
		return nil
	}
}

func retType(name string) types.Type {
	switch name {
	case "@out":
		return types.I32
	default:
		return types.Void
	}
}
