// Package ast defines the typed abstract syntax tree produced by the
// parser. Every concrete statement and expression node type also appears as
// a case in lang/compiler's stmt or expr type switch, which is where a node
// is turned into IR — the nodes themselves carry no codegen behavior, following the
// tagged-variant-plus-one-function shape spelled out for this AST instead
// of a virtual-dispatch hierarchy.
package ast

import "github.com/anxlang/anxc/lang/token"

// Node is any AST node; Span locates it for diagnostics.
type Node interface {
	Span() (pos token.Pos, size int)
}

// Stmt is a node valid as one instruction of a scope. Expr is also a Stmt:
// the grammar lets a bare call appear as an instruction.
type Stmt interface {
	Node
	anxStmt()
}

// Expr is a node that yields a value when lowered.
type Expr interface {
	Node
	anxExpr()
}

// Loc is embedded in every concrete node to provide Span() by promotion
// and exported fields so other packages (the parser) can construct nodes
// with a known position/size directly.
type Loc struct {
	Pos  token.Pos
	Size int
}

func (l Loc) Span() (token.Pos, int) { return l.Pos, l.Size }

// Program is the root node: an ordered sequence of top-level declarations.
type Program struct {
	Decls []*FnDecl
}

func (p *Program) Span() (token.Pos, int) {
	if len(p.Decls) == 0 {
		return 0, 0
	}
	pos, _ := p.Decls[0].Span()
	return pos, 0
}

// Param is one name:type entry of a function's parameter list.
type Param struct {
	Name    string
	Type    string // raw type name as written; resolved to types.Type at lowering
	NamePos token.Pos
}

// FnDecl is a function declaration, with or without a body (body == nil
// means forward-declared/external per spec §4.4).
type FnDecl struct {
	Loc
	Name       string
	Pub        bool
	ReturnType string // "" means unannotated (void)
	Params     []Param
	Body       Stmt // *Scope, another Stmt for a single-instruction body, or nil

	NamePos token.Pos
	EndPos  token.Pos
}

// Scope is a braced or implicit sequence of instructions.
type Scope struct {
	Loc
	Stmts []Stmt
}

func (*Scope) anxStmt() {}

// VarDeclElem is one NAME [: TYPE] [= EXPR] entry of a var declaration.
type VarDeclElem struct {
	Name    string
	Type    string // "" means inferred from Init
	Init    Expr   // nil if absent
	NamePos token.Pos
}

// VarDecl declares one or more variables in a single `var` instruction.
type VarDecl struct {
	Loc
	Elems []VarDeclElem
}

func (*VarDecl) anxStmt() {}

// Ret is a `ret [expr];` instruction.
type Ret struct {
	Loc
	Value Expr // nil for a bare `ret;`
}

func (*Ret) anxStmt() {}

// If is an `if cond then [else else]` instruction.
type If struct {
	Loc
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

func (*If) anxStmt() {}

// While is a `while cond [: step] body` instruction.
type While struct {
	Loc
	Cond Expr
	Step Expr // nil if absent
	Body Stmt // nil for `while cond;`
}

func (*While) anxStmt() {}

// Break is a `break;` instruction.
type Break struct{ Loc }

func (*Break) anxStmt() {}

// Cont is a `continue;` instruction.
type Cont struct{ Loc }

func (*Cont) anxStmt() {}

// Assign is a `NAME = expr;` instruction.
type Assign struct {
	Loc
	Name    string
	NamePos token.Pos
	Value   Expr
}

func (*Assign) anxStmt() {}

// SwapAssign is the parallel-assignment form `n1, n2 = e1, e2;`.
type SwapAssign struct {
	Loc
	Names   []string
	NamePos []token.Pos
	Values  []Expr
}

func (*SwapAssign) anxStmt() {}

// BinOp is a binary-operator expression.
type BinOp struct {
	Loc
	Op       string // lexeme: "+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">="
	Lhs, Rhs Expr
}

func (*BinOp) anxExpr() {}

// UnOp is a unary-operator expression (`!` or prefix `-`).
type UnOp struct {
	Loc
	Op  string
	Val Expr
}

func (*UnOp) anxExpr() {}

// Call is a function-call expression, also valid as a standalone
// instruction per the grammar (`call ";"`).
type Call struct {
	Loc
	Name    string
	NamePos token.Pos
	Args    []Expr
}

func (*Call) anxExpr() {}
func (*Call) anxStmt() {}

// Ident is a bare identifier used as a value (a variable reference).
type Ident struct {
	Loc
	Name string
}

func (*Ident) anxExpr() {}

// Num is a numeric literal, kept as its raw lexeme; lang/compiler parses
// the radix prefix, mantissa and type suffix out of it (spec §4.6).
type Num struct {
	Loc
	Raw string
}

func (*Num) anxExpr() {}
