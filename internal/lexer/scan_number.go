package lexer

import (
	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

// Поддержка: 0, 123, 1.0, 1., .5, 1e-3, 1.0E+10.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
	}

	identLen := lx.identRunLen()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			if identLen > 0 {
				lx.cursor.Reset(start)
				lx.cursor.Off += identLen
				return token.Token{Kind: token.Ident, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
			}
			return bad("expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if lx.cursor.Off-uint32(start) < identLen {
		// самое длинное совпадение - идентификатор ("2d", "1e", "3x3")
		lx.cursor.Reset(start)
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return token.Token{Kind: token.Ident, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
	}
	return token.Token{Kind: token.Number, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// identRunLen measures how far an identifier starting at the cursor would
// reach. OpenSCAD identifiers may start with a digit.
func (lx *Lexer) identRunLen() uint32 {
	var n uint32
	for isIdentContinueByte(lx.cursor.PeekAt(n)) {
		n++
	}
	return n
}
