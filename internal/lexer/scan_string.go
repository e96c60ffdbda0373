package lexer

import (
	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

// "..." с escape-последовательностями. Перевод строки внутри литерала -
// ошибка: форматтер не должен переиндентировать содержимое строк.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexNewlineInString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}
