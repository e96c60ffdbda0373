package lexer

import (
	"strings"

	"scadfmt/internal/diag"
	"scadfmt/internal/token"
)

// Скрытые токены несут в тексте маркеры раскладки:
//   - "\n" в начале: комментарий начинал собственную строку;
//   - "\n" в конце: комментарий съел перевод строки за собой;
//   - " " по краям блочного комментария: рядом был пробел на той же строке.
// BlankLines содержит по одному "\n" на каждую пустую строку.

// scanNewlines consumes a run of line breaks (with blank lines in between)
// and emits a BlankLines token for the empty lines it contains. Runs before
// the first token and at the end of the file are dropped.
func (lx *Lexer) scanNewlines() {
	start := lx.cursor.Mark()
	n := 0
	for {
		if lx.cursor.Eat('\n') {
			n++
			continue
		}
		if lx.cursor.SkipBlank() {
			continue
		}
		break
	}
	blanks := n
	if lx.lineHasContent {
		// первый перевод строки просто завершает строку с кодом
		blanks--
	}
	lx.lineHasContent = false
	if blanks <= 0 || len(lx.toks) == 0 || lx.cursor.EOF() {
		return
	}
	lx.push(token.Token{
		Kind: token.BlankLines,
		Text: strings.Repeat("\n", blanks),
		Span: lx.cursor.SpanFrom(start),
	})
}

func (lx *Lexer) scanComment() {
	ownLine := !lx.lineHasContent
	spaceBefore := isBlank(lx.cursor.Prev())
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	var b strings.Builder
	if ownLine {
		b.WriteByte('\n')
	}

	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		b.WriteString(strings.TrimRight(lx.cursor.TextFrom(start), " \t\r\f\v"))
		lx.lineHasContent = true
		if lx.cursor.Eat('\n') {
			b.WriteByte('\n')
			lx.lineHasContent = false
		}
		lx.push(token.Token{Kind: token.LineComment, Text: b.String(), Span: sp})
		return
	}

	// "/* ... */" без вложенности
	closed := false
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	if !ownLine && spaceBefore {
		b.WriteByte(' ')
	}
	b.WriteString(lx.cursor.TextFrom(start))

	lx.lineHasContent = true
	after := lx.cursor.Mark()
	spaceAfter := lx.cursor.SkipBlank()
	switch {
	case lx.cursor.Eat('\n'):
		b.WriteByte('\n')
		lx.lineHasContent = false
	case lx.cursor.EOF():
	case spaceAfter:
		b.WriteByte(' ')
	default:
		lx.cursor.Reset(after)
	}
	lx.push(token.Token{Kind: token.BlockComment, Text: b.String(), Span: sp})
}
