package format

import (
	"errors"
	"fmt"

	"scadfmt/internal/diag"
)

var (
	// ErrSyntax reports that the source could not be tokenized or parsed;
	// nothing was rendered.
	ErrSyntax = errors.New("syntax error")
	// ErrSink reports that the formatted output could not be written.
	ErrSink = errors.New("cannot write formatted output")
)

// SyntaxError carries the diagnostics of a file that failed to lex or parse.
// Pos is the "path:line:col" position of the first error.
type SyntaxError struct {
	Path        string
	Pos         string
	Message     string
	Diagnostics []diag.Diagnostic
}

func (e *SyntaxError) Error() string {
	if e.Pos == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
