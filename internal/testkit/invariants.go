package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"scadfmt/internal/ast"
	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

// CheckTerminalInvariants runs the tree/stream invariants the renderer relies on:
// 1) every terminal is the default-channel token found at its stream index
// 2) terminal indices strictly increase in tree order
// 3) every terminal span lies inside the file content
func CheckTerminalInvariants(root ast.Node, stream *token.Stream, sf *source.File) error {
	if root == nil || ast.IsNil(root) || stream == nil || sf == nil {
		return fmt.Errorf("nil tree, stream or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	prev := -1
	for _, term := range ast.Terminals(root) {
		idx := term.Index()
		if idx <= prev {
			return fmt.Errorf("terminal %q #%d follows #%d", term.Text(), idx, prev)
		}
		prev = idx
		if idx >= stream.Len() {
			return fmt.Errorf("terminal %q index %d out of stream (len=%d)", term.Text(), idx, stream.Len())
		}
		if got := stream.Get(idx); got != term.Tok {
			return fmt.Errorf("terminal #%d is %v %q, stream has %v %q", idx, term.Tok.Kind, term.Text(), got.Kind, got.Text)
		}
		if term.Tok.Hidden() {
			return fmt.Errorf("hidden token %v #%d attached to tree", term.Tok.Kind, idx)
		}
		sp := term.Tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("terminal #%d span points to different file id: got=%d want=%d", idx, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("terminal #%d span %v outside content (len=%d)", idx, sp, lenContent)
		}
	}
	return nil
}

// CheckCoverage verifies that an error-free tree holds every default-channel
// token of the stream exactly once.
func CheckCoverage(root ast.Node, stream *token.Stream) error {
	terms := ast.Terminals(root)
	i := 0
	for tok := range stream.Default() {
		if i >= len(terms) {
			return fmt.Errorf("token %v %q #%d missing from tree", tok.Kind, tok.Text, tok.Index)
		}
		if terms[i].Index() != tok.Index {
			return fmt.Errorf("terminal %d has index %d, want %d", i, terms[i].Index(), tok.Index)
		}
		i++
	}
	if i != len(terms) {
		return fmt.Errorf("got %d terminals, want %d", len(terms), i)
	}
	return nil
}
