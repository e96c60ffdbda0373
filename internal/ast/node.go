// Package ast holds the OpenSCAD syntax tree consumed by the formatter.
//
// The set of node types is closed: every type in this package implements
// Node and nothing outside does. Terminal leaves reference default-channel
// tokens of the stream the tree was parsed from; hidden tokens never appear
// in the tree. Trees are built once by the parser and are read-only after.
package ast

import (
	"scadfmt/internal/token"
)

// Node is implemented by every syntax node.
type Node interface {
	Kind() Kind
	// Children returns sub-nodes and terminals in source order. Absent
	// optional parts are skipped.
	Children() []Node
	node()
}

// Terminal wraps one default-channel token.
type Terminal struct {
	Tok token.Token
}

func (*Terminal) Kind() Kind       { return KindTerminal }
func (*Terminal) Children() []Node { return nil }
func (*Terminal) node()            {}

// Index is the position of the token in its stream.
func (t *Terminal) Index() int { return t.Tok.Index }

// Text is the literal token text.
func (t *Terminal) Text() string { return t.Tok.Text }

// collect builds a child list dropping nil nodes, including typed nils.
func collect(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if !IsNil(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsNil reports whether n is nil or a typed nil node pointer.
func IsNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Terminal:
		return v == nil
	case *List:
		return v == nil
	case *Commas:
		return v == nil
	case *Else:
		return v == nil
	case *Ternary:
		return v == nil
	case *AssignmentExpr:
		return v == nil
	}
	return false
}

func terminals(ts []*Terminal) []Node {
	out := make([]Node, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}
