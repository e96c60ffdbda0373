package parser

import (
	"scadfmt/internal/ast"
	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

func isBinaryOp(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Caret,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr:
		return true
	default:
		return false
	}
}

// startsExpr reports whether k can begin an expression.
func startsExpr(k token.Kind) bool {
	switch k {
	case token.Number, token.String, token.Ident, token.KwTrue, token.KwFalse, token.KwUndef,
		token.LParen, token.LBracket, token.Minus, token.Plus, token.Bang,
		token.KwLet, token.KwAssert, token.KwEcho, token.KwFunction:
		return true
	default:
		return false
	}
}

// parseExpr: unary (binop unary)* ['?' expr ':' expr]
//
// Приоритеты операторов не влияют на раскладку, поэтому цепочка плоская.
func (p *Parser) parseExpr() ast.Node {
	first := p.parseUnary()
	if first == nil {
		return nil
	}
	if !isBinaryOp(p.peek().Kind) && !p.at(token.Question) {
		return first
	}
	expr := &ast.Expr{First: first}
	for isBinaryOp(p.peek().Kind) {
		op := p.term()
		right := p.parseUnary()
		expr.Ops = append(expr.Ops, &ast.Binary{Op: op, Right: right})
		if right == nil {
			return expr
		}
	}
	if p.at(token.Question) {
		t := &ast.Ternary{Question: p.term()}
		t.Then = p.parseExpr()
		t.Colon = p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression")
		if t.Colon != nil {
			t.Else = p.parseExpr()
		}
		expr.Ternary = t
	}
	return expr
}

func (p *Parser) parseUnary() ast.Node {
	switch p.peek().Kind {
	case token.Minus, token.Plus, token.Bang:
		op := p.term()
		return &ast.Unary{Op: op, Operand: p.parseUnary()}
	}
	return p.parsePostfix()
}

// parsePostfix: primary ( '(' args ')' | '[' expr ']' | '.' ident )*
func (p *Parser) parsePostfix() ast.Node {
	n := p.parsePrimary()
	if n == nil {
		return nil
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			call := &ast.Call{Callee: n, LParen: p.term()}
			call.Args = p.parseArgs(token.RParen)
			call.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close call")
			n = call
		case token.LBracket:
			idx := &ast.Index{Target: n, LBracket: p.term()}
			idx.Index = p.parseExpr()
			idx.RBracket = p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index")
			n = idx
		case token.Dot:
			m := &ast.Member{Target: n, Dot: p.term()}
			m.Name = p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			n = m
		default:
			return n
		}
	}
}

func (p *Parser) parsePrimary() ast.Node {
	switch tok := p.peek(); tok.Kind {
	case token.Number, token.String, token.Ident, token.KwTrue, token.KwFalse, token.KwUndef:
		return p.term()
	case token.LParen:
		paren := &ast.Paren{LParen: p.term()}
		paren.Inner = p.parseExpr()
		paren.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return paren
	case token.LBracket:
		return p.parseVector()
	case token.KwLet:
		return p.parseKeywordExpr(p.parseExpr, false)
	case token.KwAssert, token.KwEcho:
		return p.parseKeywordExpr(p.parseExpr, true)
	case token.KwFunction:
		return p.parseKeywordExpr(p.parseExpr, false)
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return nil
	}
}

// parseKeywordExpr: kw '(' args ')' body. With optionalBody the body is only
// parsed when an expression follows.
func (p *Parser) parseKeywordExpr(body func() ast.Node, optionalBody bool) ast.Node {
	kw := &ast.KeywordExpr{Keyword: p.term()}
	kw.LParen = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+describe(kw.Keyword.Tok))
	if kw.LParen == nil {
		return kw
	}
	kw.Args = p.parseArgs(token.RParen)
	kw.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close "+describe(kw.Keyword.Tok))
	if kw.RParen == nil {
		return kw
	}
	if optionalBody && !startsExpr(p.peek().Kind) {
		return kw
	}
	kw.Body = body()
	return kw
}
