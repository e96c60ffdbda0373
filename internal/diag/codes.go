package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexNewlineInString          Code = 1005
	LexUnterminatedIncludePath  Code = 1006

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynUnclosedParen     Code = 2005
	SynUnclosedBracket   Code = 2006
	SynUnclosedBrace     Code = 2007
	SynExpectEquals      Code = 2008
	SynExpectColon       Code = 2009
	SynExpectStatement   Code = 2010
	SynExpectIncludePath Code = 2011
	SynModifierNotModule Code = 2012
	SynElseWithoutIf     Code = 2013

	// Ввод-вывод
	IOInfo        Code = 4000
	IOLoadFailed  Code = 4001
	IOWriteFailed Code = 4002
	IOBackup      Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexNewlineInString:          "Line break inside string literal",
	LexUnterminatedIncludePath:  "Unterminated include path",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectEquals:             "Expected '='",
	SynExpectColon:              "Expected ':'",
	SynExpectStatement:          "Expected statement",
	SynExpectIncludePath:        "Expected <path> after include/use",
	SynModifierNotModule:        "Modifier must precede a module instantiation",
	SynElseWithoutIf:            "'else' without matching 'if'",
	IOInfo:                      "I/O information",
	IOLoadFailed:                "Failed to read file",
	IOWriteFailed:               "Failed to write file",
	IOBackup:                    "Failed to create backup",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
