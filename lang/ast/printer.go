package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST as one indented line per node, the way the
// teacher's ast.Printer walks a Chunk and prints "%s[pos] %v" per node at
// increasing depth. This AST has no generic Walk/Visitor machinery (there
// is no comment-attachment concern to carry, since the scanner discards
// comments during lexing the same way it discards whitespace), so Print
// recurses directly over the small, closed set of concrete node types
// instead.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer
	// Pos, if true, prefixes each line with the node's source position.
	Pos bool
}

// Print pretty-prints n and everything nested inside it.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, pos: p.Pos}
	pp.node(n, 0)
	return pp.err
}

type printer struct {
	w   io.Writer
	pos bool
	err error
}

func (p *printer) line(depth int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	prefix := strings.Repeat(". ", depth)
	_, p.err = fmt.Fprintf(p.w, prefix+format+"\n", args...)
}

func (p *printer) node(n Node, depth int) {
	if p.err != nil || n == nil {
		return
	}

	posPrefix := ""
	if p.pos {
		pos, _ := n.Span()
		posPrefix = fmt.Sprintf("[%s] ", pos)
	}

	switch v := n.(type) {
	case *Program:
		p.line(depth, "%sProgram", posPrefix)
		for _, d := range v.Decls {
			p.node(d, depth+1)
		}

	case *FnDecl:
		ret := v.ReturnType
		if ret == "" {
			ret = "void"
		}
		p.line(depth, "%sFnDecl %s pub=%t -> %s", posPrefix, v.Name, v.Pub, ret)
		for _, prm := range v.Params {
			p.line(depth+1, "Param %s: %s", prm.Name, prm.Type)
		}
		p.node(v.Body, depth+1)

	case *Scope:
		p.line(depth, "%sScope", posPrefix)
		for _, s := range v.Stmts {
			p.node(s, depth+1)
		}

	case *VarDecl:
		p.line(depth, "%sVarDecl", posPrefix)
		for _, e := range v.Elems {
			typ := e.Type
			if typ == "" {
				typ = "(inferred)"
			}
			p.line(depth+1, "%s: %s", e.Name, typ)
			p.node(e.Init, depth+2)
		}

	case *Ret:
		p.line(depth, "%sRet", posPrefix)
		p.node(v.Value, depth+1)

	case *If:
		p.line(depth, "%sIf", posPrefix)
		p.node(v.Cond, depth+1)
		p.node(v.Then, depth+1)
		p.node(v.Else, depth+1)

	case *While:
		p.line(depth, "%sWhile", posPrefix)
		p.node(v.Cond, depth+1)
		p.node(v.Step, depth+1)
		p.node(v.Body, depth+1)

	case *Break:
		p.line(depth, "%sBreak", posPrefix)

	case *Cont:
		p.line(depth, "%sCont", posPrefix)

	case *Assign:
		p.line(depth, "%sAssign %s", posPrefix, v.Name)
		p.node(v.Value, depth+1)

	case *SwapAssign:
		p.line(depth, "%sSwapAssign %s", posPrefix, strings.Join(v.Names, ", "))
		for _, val := range v.Values {
			p.node(val, depth+1)
		}

	case *BinOp:
		p.line(depth, "%sBinOp %s", posPrefix, v.Op)
		p.node(v.Lhs, depth+1)
		p.node(v.Rhs, depth+1)

	case *UnOp:
		p.line(depth, "%sUnOp %s", posPrefix, v.Op)
		p.node(v.Val, depth+1)

	case *Call:
		p.line(depth, "%sCall %s", posPrefix, v.Name)
		for _, a := range v.Args {
			p.node(a, depth+1)
		}

	case *Ident:
		p.line(depth, "%sIdent %s", posPrefix, v.Name)

	case *Num:
		p.line(depth, "%sNum %s", posPrefix, v.Raw)

	default:
		p.line(depth, "%s%T", posPrefix, n)
	}
}
