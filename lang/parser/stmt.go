package parser

import (
	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/token"
)

// parseInstr parses one instruction (spec §4.4 "Instructions").
func (p *Parser) parseInstr() ast.Stmt {
	switch p.tok.Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RET:
		return p.parseRet()
	case token.VAR:
		return p.parseVarDecl()
	case token.IDENT:
		return p.parseIdentLed()
	default:
		p.diag.FailAt("expected an instruction", p.tok.Pos, p.tok.Size)
		panic("unreachable")
	}
}

func (p *Parser) parseIf() *ast.If {
	pos := p.tok.Pos
	p.expect(token.IF, "'if'")
	cond := p.parseExpr()
	then := p.thenElseBody()

	n := &ast.If{Loc: ast.Loc{Pos: pos, Size: 1}, Cond: cond, Then: then}
	if p.tok.Kind == token.ELSE {
		p.advance()
		n.Else = p.thenElseBody()
	}
	return n
}

// thenElseBody parses a THEN/ELSE arm: a scope or a single instruction.
func (p *Parser) thenElseBody() ast.Stmt {
	if p.tok.Kind == token.LBRACE {
		return p.parseScope()
	}
	return p.parseInstr()
}

func (p *Parser) parseWhile() *ast.While {
	pos := p.tok.Pos
	p.expect(token.WHILE, "'while'")
	cond := p.parseExpr()

	n := &ast.While{Loc: ast.Loc{Pos: pos, Size: 1}, Cond: cond}
	if p.tok.Kind == token.COLON {
		p.advance()
		n.Step = p.parseExpr()
	}
	n.Body = p.parseBody()
	return n
}

func (p *Parser) parseBreak() *ast.Break {
	pos := p.tok.Pos
	p.expect(token.BREAK, "'break'")
	p.expect(token.EOL, "';'")
	return &ast.Break{Loc: ast.Loc{Pos: pos, Size: 5}}
}

func (p *Parser) parseContinue() *ast.Cont {
	pos := p.tok.Pos
	p.expect(token.CONTINUE, "'continue'")
	p.expect(token.EOL, "';'")
	return &ast.Cont{Loc: ast.Loc{Pos: pos, Size: 8}}
}

func (p *Parser) parseRet() *ast.Ret {
	pos := p.tok.Pos
	p.expect(token.RET, "'ret'")
	n := &ast.Ret{Loc: ast.Loc{Pos: pos, Size: 3}}
	if p.tok.Kind != token.EOL {
		n.Value = p.parseExpr()
	}
	p.expect(token.EOL, "';'")
	return n
}

// parseVarDecl parses `var DECL (, DECL)*;` (spec §4.4).
func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.tok.Pos
	p.expect(token.VAR, "'var'")

	n := &ast.VarDecl{Loc: ast.Loc{Pos: pos, Size: 3}}
	for {
		n.Elems = append(n.Elems, p.parseVarDeclElem())
		if p.tok.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.EOL, "';'")
	return n
}

func (p *Parser) parseVarDeclElem() ast.VarDeclElem {
	nameTok := p.expectIdent("naming a variable")
	elem := ast.VarDeclElem{Name: nameTok.Lexeme, NamePos: nameTok.Pos}

	if p.tok.Kind == token.COLON {
		p.advance()
		elem.Type = p.parseTypeName()
	}
	if p.tok.Kind == token.ASSIGN {
		p.advance()
		elem.Init = p.parseExpr()
	}
	return elem
}

// parseIdentLed parses the three identifier-led instruction forms: a plain
// assignment, a call, or a parallel "swap" assignment (spec §4.4).
func (p *Parser) parseIdentLed() ast.Stmt {
	pos := p.tok.Pos
	first := p.expectIdent("starting an instruction")

	if p.tok.Kind == token.LPAREN {
		call := p.parseCallTail(first)
		p.expect(token.EOL, "';'")
		return call
	}

	if p.tok.Kind == token.ASSIGN {
		p.advance()
		value := p.parseExpr()
		p.expect(token.EOL, "';'")
		return &ast.Assign{
			Loc:     ast.Loc{Pos: pos, Size: first.Size},
			Name:    first.Lexeme,
			NamePos: first.Pos,
			Value:   value,
		}
	}

	if p.tok.Kind == token.COMMA {
		names := []string{first.Lexeme}
		namePos := []token.Pos{first.Pos}
		for p.tok.Kind == token.COMMA {
			p.advance()
			nameTok := p.expectIdent("in a parallel assignment")
			names = append(names, nameTok.Lexeme)
			namePos = append(namePos, nameTok.Pos)
		}
		p.expect(token.ASSIGN, "'='")
		var values []ast.Expr
		values = append(values, p.parseExpr())
		for p.tok.Kind == token.COMMA {
			p.advance()
			values = append(values, p.parseExpr())
		}
		p.expect(token.EOL, "';'")
		if len(names) != len(values) {
			p.diag.FailAt("swap statement parity mismatch", pos, first.Size)
		}
		return &ast.SwapAssign{
			Loc:     ast.Loc{Pos: pos, Size: first.Size},
			Names:   names,
			NamePos: namePos,
			Values:  values,
		}
	}

	p.diag.FailAt("unrecognized symbol or unused expression result", pos, first.Size)
	panic("unreachable")
}
