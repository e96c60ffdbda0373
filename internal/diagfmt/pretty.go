package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"scadfmt/internal/diag"
	"scadfmt/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста с подчёркиванием ^~~~ по Span, затем Notes.
// Ожидается bag.Sort() заранее.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		p.header(w, fs, d.Primary, d.Severity, d.Code, d.Message)
		writeContext(w, fs, d.Primary, opts.Context, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), fs.Position(n.Span), n.Msg)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... and %d more diagnostics\n", dropped)
	}
}

type palette struct {
	path   *color.Color
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	note   *color.Color
	caret  *color.Color
	gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		note:   color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.note, p.caret, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

func (p palette) header(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code diag.Code, msg string) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(fs.Position(sp)),
		p.severity(sev).Sprint(sev.String()),
		code.ID(),
		msg)
}

// writeContext печатает строку ошибки и context строк до неё.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, context int, p palette) {
	if context < 0 {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := uint32(1)
	if back, err := safecast.Conv[uint32](context); err == nil && start.Line > back {
		first = start.Line - back
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", " ")
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", " "))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		endCol := min(int(end.Col)-1, len(line))
		width = max(runewidth.StringWidth(line[col:endCol]), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}
