package parser

import (
	"scadfmt/internal/ast"
	"scadfmt/internal/diag"
	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// term consumes the current token as a terminal leaf.
func (p *Parser) term() *ast.Terminal {
	return &ast.Terminal{Tok: p.advance()}
}

// getDiagnosticSpan - на EOF указываем сразу после последнего токена
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем nil.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *ast.Terminal {
	if p.at(k) {
		return p.term()
	}
	p.err(code, msg)
	return nil
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError && p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
}

// resyncUntil прокручивает токены до одного из stop (не съедая его) или EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

// resyncStatement пропускает остаток сломанного оператора: до ';'
// (включительно) или до '}' (не включительно).
func (p *Parser) resyncStatement() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return "'" + t.Text + "'"
}
