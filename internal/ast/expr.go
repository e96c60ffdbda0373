package ast

// Expr is an operand followed by a flat chain of binary operations and an
// optional ternary tail. Operator precedence does not affect layout, so the
// chain is kept flat.
type Expr struct {
	First   Node
	Ops     []*Binary
	Ternary *Ternary
}

func (*Expr) Kind() Kind { return KindExpr }
func (e *Expr) Children() []Node {
	out := collect(e.First)
	for _, b := range e.Ops {
		out = append(out, b)
	}
	return append(out, collect(e.Ternary)...)
}
func (*Expr) node() {}

// Binary is "op right"; the left operand precedes it in the enclosing Expr.
type Binary struct {
	Op    *Terminal
	Right Node
}

func (*Binary) Kind() Kind         { return KindBinary }
func (b *Binary) Children() []Node { return collect(b.Op, b.Right) }
func (*Binary) node()              {}

// Ternary is "? then : else"; the condition precedes it.
type Ternary struct {
	Question *Terminal
	Then     Node
	Colon    *Terminal
	Else     Node
}

func (*Ternary) Kind() Kind         { return KindTernary }
func (t *Ternary) Children() []Node { return collect(t.Question, t.Then, t.Colon, t.Else) }
func (*Ternary) node()              {}

// Unary is a prefix operator: "-x", "!x", "+x".
type Unary struct {
	Op      *Terminal
	Operand Node
}

func (*Unary) Kind() Kind         { return KindUnary }
func (u *Unary) Children() []Node { return collect(u.Op, u.Operand) }
func (*Unary) node()              {}

type Paren struct {
	LParen *Terminal
	Inner  Node
	RParen *Terminal
}

func (*Paren) Kind() Kind         { return KindParen }
func (p *Paren) Children() []Node { return collect(p.LParen, p.Inner, p.RParen) }
func (*Paren) node()              {}

// Call is "callee(args)" in expression position.
type Call struct {
	Callee Node
	LParen *Terminal
	Args   *List
	RParen *Terminal
}

func (*Call) Kind() Kind         { return KindCall }
func (c *Call) Children() []Node { return collect(c.Callee, c.LParen, c.Args, c.RParen) }
func (*Call) node()              {}

type Index struct {
	Target   Node
	LBracket *Terminal
	Index    Node
	RBracket *Terminal
}

func (*Index) Kind() Kind         { return KindIndex }
func (i *Index) Children() []Node { return collect(i.Target, i.LBracket, i.Index, i.RBracket) }
func (*Index) node()              {}

type Member struct {
	Target Node
	Dot    *Terminal
	Name   *Terminal
}

func (*Member) Kind() Kind         { return KindMember }
func (m *Member) Children() []Node { return collect(m.Target, m.Dot, m.Name) }
func (*Member) node()              {}

// Vector is "[elems]"; elements are expressions or comprehensions.
type Vector struct {
	LBracket *Terminal
	Elems    *List
	RBracket *Terminal
}

func (*Vector) Kind() Kind         { return KindVector }
func (v *Vector) Children() []Node { return collect(v.LBracket, v.Elems, v.RBracket) }
func (*Vector) node()              {}

// Range is "[start:end]" or "[start:step:end]".
type Range struct {
	LBracket *Terminal
	Start    Node
	Colon1   *Terminal
	Step     Node
	Colon2   *Terminal
	End      Node
	RBracket *Terminal
}

func (*Range) Kind() Kind { return KindRange }
func (r *Range) Children() []Node {
	return collect(r.LBracket, r.Start, r.Colon1, r.Step, r.Colon2, r.End, r.RBracket)
}
func (*Range) node() {}

// KeywordExpr covers let(...) body, assert(...) [body], echo(...) [body],
// function(params) body, and the for(...)/let(...) comprehensions.
type KeywordExpr struct {
	Keyword *Terminal
	LParen  *Terminal
	Args    *List
	RParen  *Terminal
	Body    Node
}

func (*KeywordExpr) Kind() Kind { return KindKeywordExpr }
func (k *KeywordExpr) Children() []Node {
	return collect(k.Keyword, k.LParen, k.Args, k.RParen, k.Body)
}
func (*KeywordExpr) node() {}

// CFor is the C-style comprehension "for(init; cond; update) body".
type CFor struct {
	For    *Terminal
	LParen *Terminal
	Init   *List
	Semi1  *Terminal
	Cond   Node
	Semi2  *Terminal
	Update *List
	RParen *Terminal
	Body   Node
}

func (*CFor) Kind() Kind { return KindCFor }
func (c *CFor) Children() []Node {
	return collect(c.For, c.LParen, c.Init, c.Semi1, c.Cond, c.Semi2, c.Update, c.RParen, c.Body)
}
func (*CFor) node() {}

// IfComp is "if(cond) then [else otherwise]" inside a vector.
type IfComp struct {
	If       *Terminal
	LParen   *Terminal
	Cond     Node
	RParen   *Terminal
	Then     Node
	Else     *Terminal
	ElseBody Node
}

func (*IfComp) Kind() Kind { return KindIfComp }
func (c *IfComp) Children() []Node {
	return collect(c.If, c.LParen, c.Cond, c.RParen, c.Then, c.Else, c.ElseBody)
}
func (*IfComp) node() {}

type EachComp struct {
	Each *Terminal
	Body Node
}

func (*EachComp) Kind() Kind         { return KindEachComp }
func (c *EachComp) Children() []Node { return collect(c.Each, c.Body) }
func (*EachComp) node()              {}
