package format

import "testing"

func TestWriterSpaceDroppedAtLineStart(t *testing.T) {
	w := NewWriter(Options{})
	w.Space()
	w.Write("a")
	w.Space()
	w.Space()
	w.Write("b")
	w.Space()
	w.EndLine()
	if got := string(w.Bytes()); got != "a b\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterEndLineIsConditional(t *testing.T) {
	w := NewWriter(Options{})
	w.EndLine()
	w.Write("a")
	w.EndLine()
	w.EndLine()
	w.Newline()
	if got := string(w.Bytes()); got != "a\n\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterIndentOnlyBeforeText(t *testing.T) {
	w := NewWriter(Options{})
	w.indented(func() {
		w.Write("x")
		w.EndLine()
		w.Write("\n")
		w.indented(func() {
			w.Write("y\nz")
		})
	})
	w.EndLine()
	if got, want := string(w.Bytes()), "  x\n\n    y\n    z\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if w.Depth() != 0 {
		t.Fatalf("depth %d after balanced scopes", w.Depth())
	}
}

func TestWriterIndentWidth(t *testing.T) {
	w := NewWriter(Options{IndentWidth: 4})
	w.indented(func() { w.Write("x") })
	if got := string(w.Bytes()); got != "    x" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterWrapContinuation(t *testing.T) {
	w := NewWriter(Options{MaxLineWidth: 10})
	w.Write("abcdef")
	w.Space()
	w.Write("ghijk")
	if w.Column() != 7 {
		t.Fatalf("column %d after wrap, want 7", w.Column())
	}
	w.Space()
	w.Write("lm")
	w.EndLine()
	w.Write("z")
	want := "abcdef\n  ghijk lm\nz"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if w.Depth() != 0 {
		t.Fatalf("wrap indent leaked: depth %d", w.Depth())
	}
}

func TestWriterWrapKeepsSingleExtraLevel(t *testing.T) {
	w := NewWriter(Options{MaxLineWidth: 8})
	w.Write("aaaaaa")
	w.Write("bbbbbb")
	w.Write("cccccc")
	want := "aaaaaa\n  bbbbbb\n  cccccc"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterFirstFragmentNeverWraps(t *testing.T) {
	w := NewWriter(Options{MaxLineWidth: 4})
	w.Write("abcdefgh")
	if got := string(w.Bytes()); got != "abcdefgh" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterUnboundedByDefault(t *testing.T) {
	w := NewWriter(Options{})
	for range 100 {
		w.Write("word")
		w.Space()
	}
	for _, b := range w.Bytes() {
		if b == '\n' {
			t.Fatal("unexpected wrap with unbounded width")
		}
	}
}

func TestWriterColumnUsesDisplayWidth(t *testing.T) {
	w := NewWriter(Options{})
	w.Write("日本")
	if w.Column() != 4 {
		t.Fatalf("column %d, want 4", w.Column())
	}
}
