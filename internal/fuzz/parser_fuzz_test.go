package fuzztests

import (
	"errors"
	"testing"
	"time"

	"scadfmt/internal/diag"
	"scadfmt/internal/lexer"
	"scadfmt/internal/parser"
	"scadfmt/internal/source"
	"scadfmt/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("cube(1)\nsphere(2);"))        // missing semicolon
	f.Add([]byte("if (a) else b;"))             // empty then branch
	f.Add([]byte("{{{{}}}}"))                   // nested blocks
	f.Add([]byte("x = [for (i = [0:1]) ;"))     // unclosed comprehension
	f.Add([]byte("module m( { }"))              // unclosed parameters
	f.Add([]byte("f(a,,,b,)"))                  // comma runs
	f.Add([]byte("#!%*x = 1;"))                 // modifiers before assignment
	f.Add([]byte("function f() = let (a = 1)")) // truncated let

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.scad", input))
			bag := diag.NewBag(128)
			reporter := diag.BagReporter{Bag: bag}
			stream := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
			res := parser.ParseFile(stream, parser.Options{Reporter: reporter, MaxErrors: 128})
			switch {
			case res.File == nil:
				done <- errors.New("parser returned nil file")
			case res.Ok() && !bag.HasErrors():
				if err := testkit.CheckTerminalInvariants(res.File, stream, file); err != nil {
					done <- err
					return
				}
				done <- testkit.CheckCoverage(res.File, stream)
			default:
				done <- nil
			}
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("invariant violated on %q: %v", truncateForLog(input, 200), err)
			}
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang on input (%d bytes): %q", len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
