// Package diag defines the diagnostic model shared by the lexer, the parser
// and the formatting driver.
//
// Producers emit findings through a Reporter; BagReporter collects them into
// a Bag which supports a cap, sorting and deduplication. Package diag does
// not render anything for humans except the stable one-line form used by
// golden tests and syntax errors (see FormatShort).
//
// A Diagnostic carries:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (LEX1xxx,
//     SYN2xxx, IO4xxx).
//   - Message: short human text.
//   - Primary: the source.Span the finding points at.
//   - Notes: optional secondary spans.
//
// Any diagnostic with SevError makes a file unformattable; the formatter
// never renders a tree that was produced with errors.
package diag
