package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output line by line. It tracks the current
// column, the indent level and whether a line is open, and wraps fragments
// that would overflow MaxLineWidth onto a continuation line indented one
// extra level.
type Writer struct {
	opt    Options
	buf    []byte
	indent int
	column int
	inLine bool
	// wrapContinued is set while the open line was started by a wrap; the
	// next line break drops the continuation indent.
	wrapContinued bool
	// pendingSpace is printed before the next text on the same line.
	pendingSpace bool
}

// NewWriter creates a writer with an empty buffer.
func NewWriter(opt Options) *Writer {
	return &Writer{opt: opt.withDefaults()}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Depth returns the structural indent level.
func (w *Writer) Depth() int {
	return w.indent
}

// level is the indent printed at line start: the structural level plus one
// while the line is a wrap continuation.
func (w *Writer) level() int {
	if w.wrapContinued {
		return w.indent + 1
	}
	return w.indent
}

// InLine reports whether the current line has content.
func (w *Writer) InLine() bool {
	return w.inLine
}

// Column returns the display width of the current line.
func (w *Writer) Column() int {
	return w.column
}

// Write appends text. Line breaks inside text are emitted as unconditional
// breaks; each segment goes through the wrap check.
func (w *Writer) Write(text string) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			w.appendWrapped(text)
			return
		}
		w.appendWrapped(text[:i])
		w.Newline()
		text = text[i+1:]
	}
}

// Space requests a single space before the next fragment on this line.
// Requests coalesce and are dropped at line start or by a line break.
func (w *Writer) Space() {
	if w.inLine {
		w.pendingSpace = true
	}
}

// EndLine terminates the current line if it has content.
func (w *Writer) EndLine() {
	if w.inLine {
		w.Newline()
	}
}

// Newline emits a line break even on an empty line; a pending wrap
// continuation indent is released.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.column = 0
	w.inLine = false
	w.pendingSpace = false
	w.wrapContinued = false
}

// indented runs fn one indent level deeper.
func (w *Writer) indented(fn func()) {
	w.pushIndent()
	defer w.popIndent()
	fn()
}

func (w *Writer) pushIndent() {
	w.indent++
}

func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *Writer) appendWrapped(s string) {
	if s == "" {
		return
	}
	width := runewidth.StringWidth(s)
	if w.inLine && w.opt.MaxLineWidth > 0 {
		need := width
		if w.pendingSpace {
			need++
		}
		if need > w.opt.MaxLineWidth-w.column {
			// Newline drops any earlier continuation indent, so a wrap
			// is always exactly one level deep.
			w.Newline()
			w.wrapContinued = true
		}
	}
	if !w.inLine {
		n := w.level() * w.opt.IndentWidth
		for range n {
			w.buf = append(w.buf, ' ')
		}
		w.column = n
		w.inLine = true
	}
	if w.pendingSpace {
		w.buf = append(w.buf, ' ')
		w.column++
		w.pendingSpace = false
	}
	w.buf = append(w.buf, s...)
	w.column += width
}
