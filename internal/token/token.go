package token

import (
	"scadfmt/internal/source"
)

// Token is one lexical unit with its stream index and raw text.
type Token struct {
	Kind  Kind
	Text  string
	Index int
	Span  source.Span
}

// Hidden reports whether the token is on the hidden channel.
func (t Token) Hidden() bool { return t.Kind.Hidden() }

// IsLiteral reports whether the token is a number, string, or constant literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwTrue, KwFalse, KwUndef:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwModule && t.Kind <= KwUndef
}

// IsModifier reports whether the token can prefix a module instantiation.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case Bang, Hash, Percent, Star:
		return true
	default:
		return false
	}
}

// IsOwnLine reports whether a comment token started its own source line.
func (t Token) IsOwnLine() bool {
	return (t.Kind == LineComment || t.Kind == BlockComment) &&
		len(t.Text) > 0 && t.Text[0] == '\n'
}
