package parser

import (
	"scadfmt/internal/ast"
	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

// parseVector: '[' ']' | '[' expr ':' expr [':' expr] ']' | '[' elems ']'
func (p *Parser) parseVector() ast.Node {
	lb := p.term()
	if p.at(token.RBracket) {
		return &ast.Vector{LBracket: lb, Elems: &ast.List{}, RBracket: p.term()}
	}
	start := p.pos
	first := p.parseVectorElem()
	if first != nil && p.at(token.Colon) && !isComprehension(p.toks[start].Kind) {
		return p.parseRange(lb, first)
	}
	list := &ast.List{}
	if first != nil {
		list.Elems = append(list.Elems, first)
		if p.at(token.Comma) {
			seps := &ast.Commas{}
			for p.at(token.Comma) {
				seps.Commas = append(seps.Commas, p.term())
			}
			seps.Optional = p.at(token.RBracket)
			list.Seps = append(list.Seps, seps)
			rest := p.parseList(token.RBracket, p.parseVectorElem)
			list.Elems = append(list.Elems, rest.Elems...)
			list.Seps = append(list.Seps, rest.Seps...)
		}
	}
	rb := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close vector")
	return &ast.Vector{LBracket: lb, Elems: list, RBracket: rb}
}

func (p *Parser) parseRange(lb *ast.Terminal, start ast.Node) ast.Node {
	r := &ast.Range{LBracket: lb, Start: start, Colon1: p.term()}
	second := p.parseExpr()
	if p.at(token.Colon) {
		r.Step = second
		r.Colon2 = p.term()
		r.End = p.parseExpr()
	} else {
		r.End = second
	}
	r.RBracket = p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close range")
	return r
}

func isComprehension(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwEach, token.KwFor, token.KwIf:
		return true
	default:
		return false
	}
}

// parseVectorElem разбирает элемент вектора: выражение или генератор.
func (p *Parser) parseVectorElem() ast.Node {
	switch p.peek().Kind {
	case token.KwLet:
		return p.parseKeywordExpr(p.parseVectorElem, false)
	case token.KwEach:
		each := &ast.EachComp{Each: p.term()}
		each.Body = p.parseVectorElem()
		return each
	case token.KwFor:
		return p.parseForComp()
	case token.KwIf:
		return p.parseIfComp()
	default:
		return p.parseExpr()
	}
}

// parseForComp: for '(' args ')' elem | for '(' init ';' cond ';' update ')' elem
func (p *Parser) parseForComp() ast.Node {
	forTok := p.term()
	lp := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'")
	if lp == nil {
		return &ast.KeywordExpr{Keyword: forTok}
	}
	init := p.parseArgs(token.RParen)
	if !p.at(token.Semicolon) {
		kw := &ast.KeywordExpr{Keyword: forTok, LParen: lp, Args: init}
		kw.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close 'for'")
		if kw.RParen != nil {
			kw.Body = p.parseVectorElem()
		}
		return kw
	}
	c := &ast.CFor{For: forTok, LParen: lp, Init: init, Semi1: p.term()}
	c.Cond = p.parseExpr()
	c.Semi2 = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after loop condition")
	if c.Semi2 == nil {
		return c
	}
	c.Update = p.parseArgs(token.RParen)
	c.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close 'for'")
	if c.RParen != nil {
		c.Body = p.parseVectorElem()
	}
	return c
}

// parseIfComp: if '(' expr ')' elem [else elem]
func (p *Parser) parseIfComp() ast.Node {
	c := &ast.IfComp{If: p.term()}
	c.LParen = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'if'")
	if c.LParen == nil {
		return c
	}
	c.Cond = p.parseExpr()
	c.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close condition")
	if c.RParen == nil {
		return c
	}
	c.Then = p.parseVectorElem()
	if p.at(token.KwElse) {
		c.Else = p.term()
		c.ElseBody = p.parseVectorElem()
	}
	return c
}
