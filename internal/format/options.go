package format

// DefaultIndentWidth is the number of columns per nesting level.
const DefaultIndentWidth = 2

// Options tune the layout. The zero value formats with two-column indents and
// no automatic wrapping.
type Options struct {
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
	// MaxLineWidth is the column after which output is wrapped onto a
	// continuation line; 0 disables wrapping.
	MaxLineWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.MaxLineWidth < 0 {
		o.MaxLineWidth = 0
	}
	return o
}
