package ast

// Kind tags a syntax node with its construct.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindFile
	KindAssignment
	KindAssignmentExpr
	KindBinary
	KindTernary
	KindStatements
	KindChildStatements
	KindEmptyStatement
	KindFunctionDef
	KindModuleDef
	KindModuleInstantiation
	KindCommas
	KindOptionalCommas
	KindInclude
	KindUse
	KindTerminal

	// Узлы ниже печатаются своими детьми по порядку.
	KindExpr
	KindUnary
	KindParen
	KindCall
	KindIndex
	KindMember
	KindVector
	KindRange
	KindList
	KindKeywordExpr
	KindCFor
	KindIfComp
	KindEachComp
	KindElse
)

var kindNames = [...]string{
	KindInvalid:             "Invalid",
	KindFile:                "File",
	KindAssignment:          "Assignment",
	KindAssignmentExpr:      "AssignmentExpr",
	KindBinary:              "Binary",
	KindTernary:             "Ternary",
	KindStatements:          "Statements",
	KindChildStatements:     "ChildStatements",
	KindEmptyStatement:      "EmptyStatement",
	KindFunctionDef:         "FunctionDef",
	KindModuleDef:           "ModuleDef",
	KindModuleInstantiation: "ModuleInstantiation",
	KindCommas:              "Commas",
	KindOptionalCommas:      "OptionalCommas",
	KindInclude:             "Include",
	KindUse:                 "Use",
	KindTerminal:            "Terminal",
	KindExpr:                "Expr",
	KindUnary:               "Unary",
	KindParen:               "Paren",
	KindCall:                "Call",
	KindIndex:               "Index",
	KindMember:              "Member",
	KindVector:              "Vector",
	KindRange:               "Range",
	KindList:                "List",
	KindKeywordExpr:         "KeywordExpr",
	KindCFor:                "CFor",
	KindIfComp:              "IfComp",
	KindEachComp:            "EachComp",
	KindElse:                "Else",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
