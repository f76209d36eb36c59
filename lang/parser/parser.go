// Package parser is a recursive-descent parser with one-token lookahead
// and Pratt-style precedence climbing for expressions (spec §4.4). Unlike
// the teacher's parser, which accumulates an ErrorList and keeps parsing
// after a syntax error, this parser has no recovery mode: the first
// mismatch is fatal, reported through lang/diag and never returning
// (spec §4.1, §7 "Policy: no recovery").
package parser

import (
	"fmt"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/diag"
	"github.com/anxlang/anxc/lang/scanner"
	"github.com/anxlang/anxc/lang/token"
)

// Parser turns a token stream into a *ast.Program.
type Parser struct {
	diag *diag.Diagnostics
	sc   *scanner.Scanner

	tok  token.Token // current token (one-token lookahead)
	last token.Token // most recently consumed token, for "expected X" end-position
}

// New returns a parser reading tokens from sc, reporting through d.
func New(d *diag.Diagnostics, sc *scanner.Scanner) *Parser {
	p := &Parser{diag: d, sc: sc}
	p.advance()
	return p
}

// Parse reads an entire translation unit: a sequence of function
// declarations (spec §4.4 "Top level").
func Parse(d *diag.Diagnostics, sc *scanner.Scanner) *ast.Program {
	p := New(d, sc)
	prog := &ast.Program{}
	for p.tok.Kind != token.EOF {
		if p.tok.Kind != token.FN && p.tok.Kind != token.PUB {
			p.diag.FailAt("only declarations permitted at the top level", p.tok.Pos, p.tok.Size)
		}
		prog.Decls = append(prog.Decls, p.parseFnDecl())
	}
	return prog
}

func (p *Parser) advance() token.Token {
	prev := p.tok
	p.last = prev
	p.tok = p.sc.Next()
	return prev
}

// lastEnd returns the position just past the most recently consumed token,
// the anchor spec §4.3's exp() uses for "expected X" diagnostics.
func (p *Parser) lastEnd() token.Pos {
	row, col := p.last.Pos.RowCol()
	return token.MakePos(row, col+p.last.Size)
}

// expect asserts the current token's kind, consumes it, and returns it;
// label is used verbatim in the "expected %s" diagnostic.
func (p *Parser) expect(k token.Kind, label string) token.Token {
	if p.tok.Kind != k {
		p.diag.FailAt(fmt.Sprintf("expected %s", label), p.lastEnd(), 1)
	}
	return p.advance()
}

func (p *Parser) expectIdent(context string) token.Token {
	return p.expect(token.IDENT, fmt.Sprintf("an identifier %s", context))
}

// parseFnDecl parses `[pub] fn NAME ['(' params ')'] [':' TYPE] BODY`; a
// parameterless function may omit the parentheses.
func (p *Parser) parseFnDecl() *ast.FnDecl {
	decl := &ast.FnDecl{}
	pos := p.tok.Pos

	if p.tok.Kind == token.PUB {
		decl.Pub = true
		p.advance()
	}
	p.expect(token.FN, "'fn'")

	nameTok := p.expectIdent("naming the function")
	decl.Name = nameTok.Lexeme
	decl.NamePos = nameTok.Pos

	if p.tok.Kind == token.LPAREN {
		p.advance()
		if p.tok.Kind == token.IDENT {
			decl.Params = p.parseParams()
		}
		p.expect(token.RPAREN, "')'")
	}

	if p.tok.Kind == token.COLON {
		p.advance()
		decl.ReturnType = p.parseTypeName()
	}

	decl.Body = p.parseBody()
	decl.Pos = pos
	decl.Size = 1
	decl.EndPos = p.lastEnd()
	return decl
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for {
		nameTok := p.expectIdent("naming a parameter")
		p.expect(token.COLON, "':'")
		ty := p.parseTypeName()
		params = append(params, ast.Param{Name: nameTok.Lexeme, Type: ty, NamePos: nameTok.Pos})
		if p.tok.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	return params
}

func (p *Parser) parseTypeName() string {
	tok := p.expectIdent("naming a type")
	return tok.Lexeme
}

// parseBody parses `';' | scope | instr` (spec §4.4 BODY). A nil Stmt
// with no error means the bare-`;` forward-declaration form.
func (p *Parser) parseBody() ast.Stmt {
	switch p.tok.Kind {
	case token.EOL:
		p.advance()
		return nil
	case token.LBRACE:
		return p.parseScope()
	default:
		return p.parseInstr()
	}
}

func (p *Parser) parseScope() *ast.Scope {
	pos := p.tok.Pos
	p.expect(token.LBRACE, "'{'")
	scope := &ast.Scope{Loc: ast.Loc{Pos: pos, Size: 1}}
	for p.tok.Kind != token.RBRACE && p.tok.Kind != token.EOF {
		if p.tok.Kind == token.LBRACE {
			scope.Stmts = append(scope.Stmts, p.parseScope())
			continue
		}
		scope.Stmts = append(scope.Stmts, p.parseInstr())
	}
	p.expect(token.RBRACE, "'}'")
	return scope
}
