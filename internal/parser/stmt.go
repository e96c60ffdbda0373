package parser

import (
	"scadfmt/internal/ast"
	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

// parseStatement выбирает распознаватель по первому токену.
func (p *Parser) parseStatement() ast.Node {
	tok := p.peek()
	switch {
	case tok.Kind == token.Semicolon:
		return &ast.EmptyStatement{Semi: p.term()}
	case tok.Kind == token.LBrace:
		lb, body, rb := p.parseBraced()
		return &ast.Statements{LBrace: lb, Body: body, RBrace: rb}
	case tok.Kind == token.KwModule:
		return p.parseModuleDef()
	case tok.Kind == token.KwFunction:
		return p.parseFunctionDef()
	case tok.Kind == token.KwInclude || tok.Kind == token.KwUse:
		kw := p.term()
		path := p.expect(token.IncludePath, diag.SynExpectIncludePath, "expected <path> after "+describe(kw.Tok))
		return &ast.Include{Keyword: kw, Path: path}
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.Assign:
		return p.parseAssignment()
	case tok.Kind == token.KwElse:
		p.err(diag.SynElseWithoutIf, "'else' without matching 'if'")
		p.advance()
		return nil
	case tok.IsModifier() || isInstantiationTarget(tok.Kind):
		return p.parseModuleInstantiation()
	default:
		p.err(diag.SynExpectStatement, "expected statement, got "+describe(tok))
		p.resyncStatement()
		return nil
	}
}

// parseBraced разбирает '{' statement* '}'.
func (p *Parser) parseBraced() (lb *ast.Terminal, body []ast.Node, rb *ast.Terminal) {
	lb = p.term()
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
		start := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
		if p.pos == start {
			p.advance()
		}
	}
	rb = p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	return lb, body, rb
}

func (p *Parser) parseAssignment() ast.Node {
	expr := p.parseAssignmentExpr()
	semi := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment")
	if semi == nil {
		p.resyncStatement()
	}
	return &ast.Assignment{Expr: expr, Semi: semi}
}

// parseAssignmentExpr: Ident '=' expr
func (p *Parser) parseAssignmentExpr() *ast.AssignmentExpr {
	return &ast.AssignmentExpr{
		Name:   p.term(),
		Assign: p.term(),
		Value:  p.parseExpr(),
	}
}

func (p *Parser) parseModuleDef() ast.Node {
	def := &ast.ModuleDef{Module: p.term()}
	def.Name = p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name")
	def.LParen = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after module name")
	if def.LParen == nil {
		p.resyncStatement()
		return def
	}
	def.Params = p.parseArgs(token.RParen)
	def.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters")
	def.Body = p.parseStatement()
	return def
}

func (p *Parser) parseFunctionDef() ast.Node {
	def := &ast.FunctionDef{Function: p.term()}
	def.Name = p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	def.LParen = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if def.LParen == nil {
		p.resyncStatement()
		return def
	}
	def.Params = p.parseArgs(token.RParen)
	def.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters")
	def.Assign = p.expect(token.Assign, diag.SynExpectEquals, "expected '=' in function definition")
	if def.Assign == nil {
		p.resyncStatement()
		return def
	}
	def.Body = p.parseExpr()
	def.Semi = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after function body")
	if def.Semi == nil {
		p.resyncStatement()
	}
	return def
}

func isInstantiationTarget(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwIf, token.KwFor, token.KwIntersectionFor,
		token.KwLet, token.KwAssert, token.KwEcho:
		return true
	default:
		return false
	}
}

// parseModuleInstantiation: modifier* target '(' args ')' child ['else' child]
func (p *Parser) parseModuleInstantiation() ast.Node {
	mi := &ast.ModuleInstantiation{}
	for p.peek().IsModifier() {
		mi.Modifiers = append(mi.Modifiers, p.term())
	}
	if !isInstantiationTarget(p.peek().Kind) || p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		p.err(diag.SynModifierNotModule, "expected module instantiation, got "+describe(p.peek()))
		p.resyncStatement()
		return nil
	}
	mi.Target = p.term()
	mi.LParen = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+describe(mi.Target.Tok))
	if mi.LParen == nil {
		p.resyncStatement()
		return nil
	}
	mi.Args = p.parseArgs(token.RParen)
	mi.RParen = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close arguments")
	if mi.RParen == nil {
		p.resyncStatement()
		return mi
	}
	mi.Child = p.parseChildStatement()
	if mi.Target.Tok.Kind == token.KwIf && p.at(token.KwElse) {
		mi.Else = &ast.Else{Else: p.term(), Child: p.parseChildStatement()}
	}
	return mi
}

// parseChildStatement: ';' | '{' ... '}' | module_instantiation
func (p *Parser) parseChildStatement() ast.Node {
	switch tok := p.peek(); {
	case tok.Kind == token.Semicolon:
		return &ast.EmptyStatement{Semi: p.term()}
	case tok.Kind == token.LBrace:
		lb, body, rb := p.parseBraced()
		return &ast.ChildStatements{LBrace: lb, Body: body, RBrace: rb}
	case tok.IsModifier() || isInstantiationTarget(tok.Kind):
		if tok.Kind == token.Ident && p.peekN(1).Kind == token.Assign {
			break
		}
		return p.parseModuleInstantiation()
	}
	p.err(diag.SynExpectSemicolon, "expected ';', block or module instantiation, got "+describe(p.peek()))
	p.resyncStatement()
	return nil
}
