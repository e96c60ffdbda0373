package ast

import "scadfmt/internal/token"

// File is the root: top-level statements in order.
type File struct {
	Stmts []Node
}

func (*File) Kind() Kind         { return KindFile }
func (f *File) Children() []Node { return f.Stmts }
func (*File) node()              {}

// Include is an include or use directive: keyword and <path>.
type Include struct {
	Keyword *Terminal
	Path    *Terminal
}

func (d *Include) Kind() Kind {
	if d.Keyword != nil && d.Keyword.Tok.Kind == token.KwUse {
		return KindUse
	}
	return KindInclude
}
func (d *Include) Children() []Node { return collect(d.Keyword, d.Path) }
func (*Include) node()              {}

// EmptyStatement is a bare ';'.
type EmptyStatement struct {
	Semi *Terminal
}

func (*EmptyStatement) Kind() Kind         { return KindEmptyStatement }
func (s *EmptyStatement) Children() []Node { return collect(s.Semi) }
func (*EmptyStatement) node()              {}

// Statements is a braced block at statement level or as a module body.
type Statements struct {
	LBrace *Terminal
	Body   []Node
	RBrace *Terminal
}

func (*Statements) Kind() Kind { return KindStatements }
func (s *Statements) Children() []Node {
	return append(append(collect(s.LBrace), s.Body...), collect(s.RBrace)...)
}
func (*Statements) node() {}

// ChildStatements is the braced block attached to a module instantiation.
type ChildStatements struct {
	LBrace *Terminal
	Body   []Node
	RBrace *Terminal
}

func (*ChildStatements) Kind() Kind { return KindChildStatements }
func (s *ChildStatements) Children() []Node {
	return append(append(collect(s.LBrace), s.Body...), collect(s.RBrace)...)
}
func (*ChildStatements) node() {}

// Assignment is "name = value;".
type Assignment struct {
	Expr *AssignmentExpr
	Semi *Terminal
}

func (*Assignment) Kind() Kind         { return KindAssignment }
func (a *Assignment) Children() []Node { return collect(a.Expr, a.Semi) }
func (*Assignment) node()              {}

// AssignmentExpr is "name = value" inside statements and argument lists.
type AssignmentExpr struct {
	Name   *Terminal
	Assign *Terminal
	Value  Node
}

func (*AssignmentExpr) Kind() Kind         { return KindAssignmentExpr }
func (a *AssignmentExpr) Children() []Node { return collect(a.Name, a.Assign, a.Value) }
func (*AssignmentExpr) node()              {}

// ModuleDef is "module name(params) body".
type ModuleDef struct {
	Module *Terminal
	Name   *Terminal
	LParen *Terminal
	Params *List
	RParen *Terminal
	Body   Node
}

func (*ModuleDef) Kind() Kind { return KindModuleDef }
func (m *ModuleDef) Children() []Node {
	return collect(m.Module, m.Name, m.LParen, m.Params, m.RParen, m.Body)
}
func (*ModuleDef) node() {}

// FunctionDef is "function name(params) = body;".
type FunctionDef struct {
	Function *Terminal
	Name     *Terminal
	LParen   *Terminal
	Params   *List
	RParen   *Terminal
	Assign   *Terminal
	Body     Node
	Semi     *Terminal
}

func (*FunctionDef) Kind() Kind { return KindFunctionDef }
func (f *FunctionDef) Children() []Node {
	return collect(f.Function, f.Name, f.LParen, f.Params, f.RParen, f.Assign, f.Body, f.Semi)
}
func (*FunctionDef) node() {}

// ModuleInstantiation is "[modifiers] target(args) child [else child]".
// Target is an identifier or one of if/for/intersection_for/let/assert/echo.
// Child is an EmptyStatement, a ChildStatements block, or another
// ModuleInstantiation.
type ModuleInstantiation struct {
	Modifiers []*Terminal
	Target    *Terminal
	LParen    *Terminal
	Args      *List
	RParen    *Terminal
	Child     Node
	Else      *Else
}

func (*ModuleInstantiation) Kind() Kind { return KindModuleInstantiation }
func (m *ModuleInstantiation) Children() []Node {
	out := terminals(m.Modifiers)
	out = append(out, collect(m.Target, m.LParen, m.Args, m.RParen, m.Child)...)
	return append(out, collect(m.Else)...)
}
func (*ModuleInstantiation) node() {}

// Else is the else branch of an if instantiation.
type Else struct {
	Else  *Terminal
	Child Node
}

func (*Else) Kind() Kind         { return KindElse }
func (e *Else) Children() []Node { return collect(e.Else, e.Child) }
func (*Else) node()              {}

// IsBareChild reports whether n is a child statement that is neither an
// empty statement nor a braced block.
func IsBareChild(n Node) bool {
	switch n.(type) {
	case nil, *EmptyStatement, *ChildStatements, *Statements:
		return false
	}
	return true
}
