// Package token defines the lexical tokens of OpenSCAD sources as seen by
// the formatter.
// Invariants:
//   - Token.Index is the position of the token in its Stream; indices are
//     dense and increase in source order.
//   - Comments and blank-line runs are hidden-channel tokens. They live in
//     the same Stream as the grammar tokens and are reached by index only.
//   - Hidden token text keeps layout markers: a leading "\n" for a comment
//     that started its own source line, a trailing "\n" for a comment that
//     consumed the line break after it, and single spaces around block
//     comments that shared a line with code.
//   - include/use are keywords only in front of a "<path>" token.
package token
