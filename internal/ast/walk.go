package ast

import (
	"fmt"
	"io"
	"strings"
)

// Inspect walks the tree depth-first calling fn for every node. Returning
// false skips the children of that node.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || IsNil(n) || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, fn)
	}
}

// Terminals returns every terminal under n in source order.
func Terminals(n Node) []*Terminal {
	var out []*Terminal
	Inspect(n, func(n Node) bool {
		if t, ok := n.(*Terminal); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Dump writes an indented outline of the tree: one node per line, terminals
// as their quoted text.
func Dump(w io.Writer, n Node) error {
	var b strings.Builder
	dump(&b, n, "", true, true)
	_, err := io.WriteString(w, b.String())
	return err
}

func dump(b *strings.Builder, n Node, prefix string, last, root bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	if root {
		branch, next = "", ""
	}
	b.WriteString(prefix)
	b.WriteString(branch)
	if t, ok := n.(*Terminal); ok {
		fmt.Fprintf(b, "%q #%d\n", t.Text(), t.Index())
		return
	}
	b.WriteString(n.Kind().String())
	b.WriteByte('\n')
	children := n.Children()
	for i, c := range children {
		dump(b, c, prefix+next, i == len(children)-1, false)
	}
}
