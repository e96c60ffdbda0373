package parser

import (
	"scadfmt/internal/ast"
	"scadfmt/internal/token"
)

// parseArgs разбирает список аргументов или параметров до close (не съедая
// его). Элемент вида "name = expr" становится AssignmentExpr.
func (p *Parser) parseArgs(close token.Kind) *ast.List {
	return p.parseList(close, p.parseArg)
}

func (p *Parser) parseArg() ast.Node {
	if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		return p.parseAssignmentExpr()
	}
	return p.parseExpr()
}

// parseList collects elements separated by runs of commas. A run directly in
// front of close is kept as an optional separator.
func (p *Parser) parseList(close token.Kind, elem func() ast.Node) *ast.List {
	list := &ast.List{}
	for !p.at(close) && !p.at(token.EOF) && !p.opts.Enough() {
		start := p.pos
		e := elem()
		if e == nil || p.pos == start {
			break
		}
		list.Elems = append(list.Elems, e)
		if !p.at(token.Comma) {
			break
		}
		seps := &ast.Commas{}
		for p.at(token.Comma) {
			seps.Commas = append(seps.Commas, p.term())
		}
		seps.Optional = p.at(close)
		list.Seps = append(list.Seps, seps)
	}
	return list
}
