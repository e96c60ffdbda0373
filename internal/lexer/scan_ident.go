package lexer

import (
	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// include/use становятся ключевыми словами только перед "<path>"; в этом
// случае путь сразу же кладётся в поток отдельным токеном.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	if k, ok := token.LookupDirective(text); ok {
		save := lx.cursor.Mark()
		lx.cursor.SkipBlank()
		if lx.cursor.Peek() == '<' {
			lx.push(token.Token{Kind: k, Span: sp, Text: text})
			return lx.scanIncludePath()
		}
		lx.cursor.Reset(save)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanIncludePath reads "<...>" up to the closing '>' on the same line.
func (lx *Lexer) scanIncludePath() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '<'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '>':
			lx.cursor.Bump()
			return token.Token{Kind: token.IncludePath, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedIncludePath, sp, "include path is not closed before end of line")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedIncludePath, sp, "unterminated include path")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}
