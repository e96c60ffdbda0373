package format

import (
	"bytes"

	"scadfmt/internal/diag"
	"scadfmt/internal/lexer"
	"scadfmt/internal/parser"
	"scadfmt/internal/source"
)

// maxSyntaxDiagnostics caps the diagnostics kept in a SyntaxError.
const maxSyntaxDiagnostics = 64

// File lexes, parses and renders one file of fs. A file with lexical or
// syntax errors is not rendered; the error is a *SyntaxError wrapping
// ErrSyntax.
func File(fs *source.FileSet, id source.FileID, opt Options) ([]byte, error) {
	sf := fs.Get(id)
	bag := diag.NewBag(maxSyntaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	stream := lexer.Tokenize(sf, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(stream, parser.Options{
		MaxErrors: maxSyntaxDiagnostics,
		Reporter:  reporter,
	})
	if bag.HasErrors() || !res.Ok() {
		return nil, syntaxError(fs, sf, bag)
	}

	var out bytes.Buffer
	out.Grow(len(sf.Content))
	if err := NewRenderer(stream, &out, opt).Render(res.File); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Bytes formats src as a file named name.
func Bytes(name string, src []byte, opt Options) ([]byte, error) {
	fs := source.NewFileSet()
	return File(fs, fs.AddVirtual(name, src), opt)
}

// CheckIdempotent formats src twice and reports whether the second pass
// reproduces the first byte for byte. The first pass output is returned.
func CheckIdempotent(name string, src []byte, opt Options) (out []byte, ok bool, err error) {
	first, err := Bytes(name, src, opt)
	if err != nil {
		return nil, false, err
	}
	second, err := Bytes(name, first, opt)
	if err != nil {
		return first, false, err
	}
	return first, bytes.Equal(first, second), nil
}

func syntaxError(fs *source.FileSet, sf *source.File, bag *diag.Bag) error {
	bag.Sort()
	e := &SyntaxError{
		Path:        sf.Path,
		Message:     "syntax error",
		Diagnostics: bag.Items(),
	}
	if d, ok := bag.FirstError(); ok {
		e.Pos = fs.Position(d.Primary)
		e.Message = d.Message
	}
	return e
}
