package token

import (
	"iter"

	"scadfmt/internal/source"
)

// Stream is the immutable, index-addressable sequence of all tokens of one
// file, hidden ones included. It does not store a trailing EOF; Get returns a
// sentinel for any index past the end.
type Stream struct {
	toks []Token
	eof  source.Span
}

// NewStream takes ownership of toks and renumbers them densely. eof is the
// span reported by the EOF sentinel.
func NewStream(toks []Token, eof source.Span) *Stream {
	for i := range toks {
		toks[i].Index = i
	}
	return &Stream{toks: toks, eof: eof}
}

// Len returns the number of tokens, hidden ones included.
func (s *Stream) Len() int { return len(s.toks) }

// Get returns the token at i, or an EOF token when i is out of range.
func (s *Stream) Get(i int) Token {
	if i < 0 || i >= len(s.toks) {
		return Token{Kind: EOF, Index: len(s.toks), Span: s.eof}
	}
	return s.toks[i]
}

// Tokens returns the underlying slice. Callers must not modify it.
func (s *Stream) Tokens() []Token { return s.toks }

// Default iterates default-channel tokens in stream order.
func (s *Stream) Default() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, t := range s.toks {
			if t.Hidden() {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
