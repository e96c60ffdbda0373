package format

import (
	"strings"

	"scadfmt/internal/token"
)

// deferral is the one-slot cursor of an own-line comment run waiting for the
// next terminal. The zero value means nothing is pending.
type deferral struct {
	index   int
	pending bool
}

func deferAt(index int) deferral {
	return deferral{index: index, pending: true}
}

// replay prints the hidden tokens that follow a terminal, starting at start,
// up to the next default-channel token. An own-line line comment is not
// printed here: it is recorded as the deferral and the scan stops, so the
// comment lands at the indentation of whatever is rendered next.
func (r *Renderer) replay(start int) {
	for i := start; ; i++ {
		tok := r.stream.Get(i)
		if !tok.Hidden() {
			return
		}
		switch tok.Kind {
		case token.BlankLines:
			r.w.EndLine()
			r.w.Write(tok.Text)
		case token.BlockComment:
			r.blockComment(tok.Text)
		case token.LineComment:
			if !tok.IsOwnLine() {
				r.w.Space()
				r.w.Write(tok.Text)
				continue
			}
			if !r.deferred.pending {
				r.deferred = deferAt(i)
				return
			}
			// continuation of the deferred run
			r.w.EndLine()
			r.w.Write(tok.Text[1:])
		}
	}
}

// resolve prints a pending own-line comment run at the current position.
// The deferral stays set while the run is scanned, so every own-line comment
// of the run is printed as a continuation.
func (r *Renderer) resolve() {
	if !r.deferred.pending {
		return
	}
	r.replay(r.deferred.index)
	r.deferred = deferral{}
}

// blockComment prints a /* */ comment in place. The layout markers around
// the comment become a line break or a space; continuation lines are
// re-indented to the current level.
func (r *Renderer) blockComment(text string) {
	switch {
	case strings.HasPrefix(text, "\n"):
		r.w.EndLine()
		text = text[1:]
	case strings.HasPrefix(text, " "):
		r.w.Space()
		text = text[1:]
	}
	after := ""
	switch {
	case strings.HasSuffix(text, "\n"), strings.HasSuffix(text, " "):
		after = text[len(text)-1:]
		text = text[:len(text)-1]
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			r.w.Newline()
			line = strings.TrimLeft(line, " \t")
			if strings.HasPrefix(line, "*") {
				line = " " + line
			}
		}
		r.w.Write(strings.TrimRight(line, " \t"))
	}

	switch after {
	case "\n":
		r.w.EndLine()
	case " ":
		r.w.Space()
	}
}
