package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the token stream.
	EOF

	// Ident represents an identifier, including $special variables.
	Ident
	// Number represents a numeric literal (1, 1.5, .5, 1e-3).
	Number
	// String represents a double-quoted string literal.
	String
	// IncludePath represents the <file> operand of include/use.
	IncludePath

	// KwModule represents the 'module' keyword.
	KwModule // module
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwInclude represents the 'include' keyword.
	KwInclude // include
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIntersectionFor represents the 'intersection_for' keyword.
	KwIntersectionFor // intersection_for
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwEach represents the 'each' keyword.
	KwEach // each
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwEcho represents the 'echo' keyword.
	KwEcho // echo
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false
	// KwUndef represents the 'undef' literal.
	KwUndef // undef

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma
	// Dot represents '.'.
	Dot
	// Colon represents ':'.
	Colon
	// Question represents '?'.
	Question
	// Assign represents '='.
	Assign

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*' (multiplication or disable modifier).
	Star
	// Slash represents '/'.
	Slash
	// Percent represents '%' (modulo or background modifier).
	Percent
	// Caret represents '^'.
	Caret
	// Bang represents '!' (negation or root modifier).
	Bang
	// Hash represents '#' (debug modifier).
	Hash
	// EqEq represents '=='.
	EqEq
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// AndAnd represents '&&'.
	AndAnd
	// OrOr represents '||'.
	OrOr

	// LineComment represents a '//' comment (hidden channel).
	LineComment
	// BlockComment represents a '/* */' comment (hidden channel).
	BlockComment
	// BlankLines represents a run of blank lines (hidden channel).
	BlankLines
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	EOF:               "EOF",
	Ident:             "Ident",
	Number:            "Number",
	String:            "String",
	IncludePath:       "IncludePath",
	KwModule:          "KwModule",
	KwFunction:        "KwFunction",
	KwInclude:         "KwInclude",
	KwUse:             "KwUse",
	KwIf:              "KwIf",
	KwElse:            "KwElse",
	KwFor:             "KwFor",
	KwIntersectionFor: "KwIntersectionFor",
	KwLet:             "KwLet",
	KwEach:            "KwEach",
	KwAssert:          "KwAssert",
	KwEcho:            "KwEcho",
	KwTrue:            "KwTrue",
	KwFalse:           "KwFalse",
	KwUndef:           "KwUndef",
	LParen:            "LParen",
	RParen:            "RParen",
	LBracket:          "LBracket",
	RBracket:          "RBracket",
	LBrace:            "LBrace",
	RBrace:            "RBrace",
	Semicolon:         "Semicolon",
	Comma:             "Comma",
	Dot:               "Dot",
	Colon:             "Colon",
	Question:          "Question",
	Assign:            "Assign",
	Plus:              "Plus",
	Minus:             "Minus",
	Star:              "Star",
	Slash:             "Slash",
	Percent:           "Percent",
	Caret:             "Caret",
	Bang:              "Bang",
	Hash:              "Hash",
	EqEq:              "EqEq",
	BangEq:            "BangEq",
	Lt:                "Lt",
	LtEq:              "LtEq",
	Gt:                "Gt",
	GtEq:              "GtEq",
	AndAnd:            "AndAnd",
	OrOr:              "OrOr",
	LineComment:       "LineComment",
	BlockComment:      "BlockComment",
	BlankLines:        "BlankLines",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Hidden reports whether tokens of this kind belong to the hidden channel.
func (k Kind) Hidden() bool {
	return k == LineComment || k == BlockComment || k == BlankLines
}
