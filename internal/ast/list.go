package ast

// List is a comma separated sequence of parameters, arguments or vector
// elements. Seps[i] follows Elems[i]; a trailing separator run after the last
// element is allowed, so len(Seps) is len(Elems)-1 or len(Elems).
type List struct {
	Elems []Node
	Seps  []*Commas
}

func (*List) Kind() Kind { return KindList }
func (l *List) Children() []Node {
	out := make([]Node, 0, len(l.Elems)+len(l.Seps))
	for i, e := range l.Elems {
		out = append(out, e)
		if i < len(l.Seps) {
			out = append(out, l.Seps[i])
		}
	}
	return out
}
func (*List) node() {}

// Len returns the number of elements; a nil List is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Elems)
}

// Commas is a run of one or more comma terminals between two elements.
// Optional marks the run after the last element.
type Commas struct {
	Commas   []*Terminal
	Optional bool
}

func (c *Commas) Kind() Kind {
	if c.Optional {
		return KindOptionalCommas
	}
	return KindCommas
}
func (c *Commas) Children() []Node { return terminals(c.Commas) }
func (*Commas) node()              {}
