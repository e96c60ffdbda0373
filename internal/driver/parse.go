package driver

import (
	"fortio.org/safecast"

	"scadfmt/internal/ast"
	"scadfmt/internal/diag"
	"scadfmt/internal/lexer"
	"scadfmt/internal/parser"
	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stream  *token.Stream
	AST     *ast.File
	Bag     *diag.Bag
}

// Parse lexes and parses path. The tree is returned even when the bag holds
// errors so it can be dumped for debugging.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	stream := lexer.Tokenize(file, lexer.Options{Reporter: reporter})

	maxErrors, convErr := safecast.Conv[uint](maxDiagnostics)
	if convErr != nil {
		maxErrors = 0
	}
	res := parser.ParseFile(stream, parser.Options{Reporter: reporter, MaxErrors: maxErrors})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Stream:  stream,
		AST:     res.File,
		Bag:     bag,
	}, nil
}
