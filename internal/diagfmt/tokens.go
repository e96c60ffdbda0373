package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

type TokenOutput struct {
	Index  int         `json:"index"`
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Hidden bool        `json:"hidden,omitempty"`
	Span   source.Span `json:"span"`
	Line   uint32      `json:"line"`
	Col    uint32      `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, stream *token.Stream, fs *source.FileSet) error {
	for _, tok := range stream.Tokens() {
		startPos, endPos := fs.Resolve(tok.Span)

		channel := ""
		if tok.Hidden() {
			channel = " (hidden)"
		}
		_, err := fmt.Fprintf(w, "%3d: %-17s %q at %d:%d-%d:%d%s\n",
			tok.Index, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col,
			channel)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, stream *token.Stream, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, stream.Len())
	for _, tok := range stream.Tokens() {
		start, _ := fs.Resolve(tok.Span)
		output = append(output, TokenOutput{
			Index:  tok.Index,
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Hidden: tok.Hidden(),
			Span:   tok.Span,
			Line:   start.Line,
			Col:    start.Col,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
