package lexer

import (
	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

// Lexer turns one file into the full token stream: grammar tokens plus
// hidden comment and blank-line tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	toks   []token.Token
	errors int

	// lineHasContent: на текущей строке уже был токен или комментарий.
	lineHasContent bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file. Lexical errors are reported through
// opts.Reporter; the stream is still returned so tools can dump it.
func Tokenize(file *source.File, opts Options) *token.Stream {
	lx := New(file, opts)
	return lx.Run()
}

// Run lexes until EOF and returns the stream.
func (lx *Lexer) Run() *token.Stream {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isBlank(b):
			lx.cursor.SkipBlank()
		case b == '\n':
			lx.scanNewlines()
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			lx.scanComment()
		default:
			lx.push(lx.scanToken())
			lx.lineHasContent = true
		}
	}
	eof := source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
	return token.NewStream(lx.toks, eof)
}

// Errors returns the number of lexical errors seen so far.
func (lx *Lexer) Errors() int { return lx.errors }

func (lx *Lexer) push(t token.Token) {
	lx.toks = append(lx.toks, t)
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}
