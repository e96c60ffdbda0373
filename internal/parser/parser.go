// Package parser builds an ast.File from an OpenSCAD token stream.
//
// The parser only sees default-channel tokens; comments and blank lines
// stay in the stream for the formatter. Errors are reported through
// Options.Reporter and the parser resynchronises at statement boundaries, so
// one run reports as many problems as possible. A tree produced with errors
// must not be formatted.
package parser

import (
	"slices"

	"scadfmt/internal/ast"
	"scadfmt/internal/diag"
	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Ok reports whether the file parsed without errors.
func (r Result) Ok() bool { return r.Errors == 0 }

// Parser - состояние парсера на один файл
type Parser struct {
	toks     []token.Token // только default-channel
	pos      int
	eof      token.Token
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
func ParseFile(stream *token.Stream, opts Options) Result {
	p := New(stream, opts)
	file := p.parseFile()
	return Result{File: file, Errors: p.opts.CurrentErrors}
}

// New creates a parser over the default-channel tokens of stream.
func New(stream *token.Stream, opts Options) *Parser {
	toks := make([]token.Token, 0, stream.Len())
	for t := range stream.Default() {
		toks = append(toks, t)
	}
	eof := stream.Get(stream.Len())
	return &Parser{toks: toks, eof: eof, opts: opts, lastSpan: eof.Span}
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.eof
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseFile - основной цикл верхнего уровня: пока не EOF - parseStatement.
func (p *Parser) parseFile() *ast.File {
	file := &ast.File{}
	for !p.at(token.EOF) && !p.opts.Enough() {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			file.Stmts = append(file.Stmts, stmt)
		}
		if p.pos == start {
			// ничего не съели - пропускаем токен, иначе зациклимся
			p.advance()
		}
	}
	return file
}
