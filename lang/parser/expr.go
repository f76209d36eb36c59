package parser

import (
	"strconv"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/token"
)

// binopPriority implements the precedence table of spec §4.4. All listed
// operators are left-associative: on recursion the right-hand side is
// parsed at priority+1.
var binopPriority = map[string]int{
	"*": 2, "/": 2, "%": 2,
	"+": 1, "-": 1,
	"==": 0, "!=": 0, "<": 0, ">": 0, "<=": 0, ">=": 0,
}

// parseExpr parses a full expression: primary { binop primary }, climbed
// by precedence (spec §4.4).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinop(-1)
}

func (p *Parser) parseBinop(minPrio int) ast.Expr {
	left := p.parsePrimary()

	for p.tok.Kind == token.BINOP {
		prio, ok := binopPriority[p.tok.Lexeme]
		if !ok || prio <= minPrio {
			break
		}
		op := p.tok
		p.advance()
		right := p.parseBinop(prio)
		left = &ast.BinOp{
			Loc: spanTo(left, right),
			Op:  op.Lexeme,
			Lhs: left,
			Rhs: right,
		}
	}
	return left
}

// parsePrimary parses `number | char | IDENT | call | '(' expr ')' | unop primary`.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos

	switch {
	case p.tok.Kind == token.UNOP || (p.tok.Kind == token.BINOP && p.tok.Lexeme == "-"):
		op := p.tok
		p.advance()
		val := p.parsePrimary()
		endPos, endSize := val.Span()
		return &ast.UnOp{Loc: ast.Loc{Pos: pos, Size: spanSize(pos, endPos, endSize)}, Op: op.Lexeme, Val: val}

	case p.tok.Kind == token.NUMBER:
		tok := p.advance()
		return &ast.Num{Loc: ast.Loc{Pos: pos, Size: tok.Size}, Raw: tok.Lexeme}

	case p.tok.Kind == token.CHARACTER:
		tok := p.advance()
		return &ast.Num{Loc: ast.Loc{Pos: pos, Size: tok.Size}, Raw: charLiteralToNum(tok.Lexeme)}

	case p.tok.Kind == token.IDENT:
		tok := p.advance()
		if p.tok.Kind == token.LPAREN {
			return p.parseCallTail(tok)
		}
		return &ast.Ident{Loc: ast.Loc{Pos: pos, Size: tok.Size}, Name: tok.Lexeme}

	case p.tok.Kind == token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		end := p.expect(token.RPAREN, "')'")
		endRow, endCol := end.Pos.RowCol()
		return reposition(inner, pos, spanSize(pos, token.MakePos(endRow, endCol+1), 0))

	default:
		p.diag.FailAt("expected an expression", p.tok.Pos, p.tok.Size)
		panic("unreachable")
	}
}

// parseCallTail parses the `'(' [args] ')'` suffix of a call whose callee
// identifier has already been consumed.
func (p *Parser) parseCallTail(name token.Token) *ast.Call {
	p.expect(token.LPAREN, "'(' or ')'")
	call := &ast.Call{Name: name.Lexeme, NamePos: name.Pos}
	if p.tok.Kind != token.RPAREN {
		call.Args = append(call.Args, p.parseExpr())
		for p.tok.Kind == token.COMMA {
			p.advance()
			call.Args = append(call.Args, p.parseExpr())
		}
	}
	end := p.expect(token.RPAREN, "',' or ')'")
	endRow, endCol := end.Pos.RowCol()
	call.Loc = ast.Loc{Pos: name.Pos, Size: spanSize(name.Pos, token.MakePos(endRow, endCol+1), 0)}
	return call
}

// spanTo computes the span covering [a.Pos, b.Pos+b.Size), clamped to the
// starting line (spec §4.4: "ssize is clamped to the remainder of the
// starting line" for multi-line expressions).
func spanTo(a, b ast.Expr) ast.Loc {
	aPos, _ := a.Span()
	bPos, bSize := b.Span()
	return ast.Loc{Pos: aPos, Size: spanSize(aPos, bPos, bSize)}
}

func spanSize(start, end token.Pos, endSize int) int {
	startRow, startCol := start.RowCol()
	endRow, endCol := end.RowCol()
	if endRow != startRow {
		return token.MaxCols - startCol
	}
	size := endCol + endSize - startCol
	if size < 1 {
		size = 1
	}
	return size
}

// reposition returns a copy of e with its span widened to [pos, pos+size);
// used only for a parenthesized expression, whose reported span covers the
// parentheses themselves.
func reposition(e ast.Expr, pos token.Pos, size int) ast.Expr {
	switch n := e.(type) {
	case *ast.BinOp:
		cp := *n
		cp.Loc = ast.Loc{Pos: pos, Size: size}
		return &cp
	case *ast.UnOp:
		cp := *n
		cp.Loc = ast.Loc{Pos: pos, Size: size}
		return &cp
	case *ast.Call:
		cp := *n
		cp.Loc = ast.Loc{Pos: pos, Size: size}
		return &cp
	case *ast.Ident:
		cp := *n
		cp.Loc = ast.Loc{Pos: pos, Size: size}
		return &cp
	case *ast.Num:
		cp := *n
		cp.Loc = ast.Loc{Pos: pos, Size: size}
		return &cp
	default:
		return e
	}
}

// charLiteralToNum lowers a scanned character literal (e.g. "'H'", "'\n'")
// to the numeric-literal raw form the compiler's numeric lowering already
// knows how to handle (spec §4.6: "the lexer already lowered to a numeric
// string ending in i8").
func charLiteralToNum(lexeme string) string {
	body := lexeme[1 : len(lexeme)-1]
	var code int
	if len(body) == 2 && body[0] == '\\' {
		switch body[1] {
		case 'n':
			code = '\n'
		case '0':
			code = 0
		case '\'':
			code = '\''
		}
	} else {
		r := []rune(body)
		code = int(r[0])
	}
	return strconv.Itoa(code) + "i8"
}
