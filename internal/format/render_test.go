package format

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"scadfmt/internal/lexer"
	"scadfmt/internal/parser"
	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

func formatString(t *testing.T, src string, opt Options) string {
	t.Helper()
	out, err := Bytes("test.scad", []byte(src), opt)
	if err != nil {
		t.Fatalf("format %q: %v", src, err)
	}
	return string(out)
}

func TestRenderLayout(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"block", "module m(){a();b();}", "module m() {\n  a();\n  b();\n}\n"},
		{"bare child hoist", "if (x) y();", "if (x)\n  y();\n"},
		{"nested hoist", "translate([1,0,0])rotate(45)cube(1);",
			"translate([1, 0, 0])\n  rotate(45)\n    cube(1);\n"},
		{"block child stays inline", "union(){cube(1);}", "union() {\n  cube(1);\n}\n"},
		{"empty child stays inline", "cube(1) ;", "cube(1);\n"},
		{"assignment", "x=1;y = a+b*c;", "x = 1;\ny = a + b * c;\n"},
		{"ternary", "x=a?b:-c;", "x = a ? b : -c;\n"},
		{"function", "function f(x,y=2)=x*y;", "function f(x, y = 2) = x * y;\n"},
		{"include and use", "include <a.scad>\nuse   <b/c.scad>", "include <a.scad>\nuse <b/c.scad>\n"},
		{"else", "if(a)b();else c();", "if (a)\n  b();\nelse\n  c();\n"},
		{"else if", "if(a)b();else if(c)d();", "if (a)\n  b();\nelse if (c)\n  d();\n"},
		{"else block", "if(a){b();}else{c();}", "if (a) {\n  b();\n}\nelse {\n  c();\n}\n"},
		{"for", "for(i=[0:2:10])cube(i);", "for (i = [0:2:10])\n  cube(i);\n"},
		{"modifiers", "#translate([1,2,3])!cube(1);", "#translate([1, 2, 3])\n  !cube(1);\n"},
		{"echo and assert", "echo(\"x\",x);assert(x>0,\"bad\");", "echo(\"x\", x);\nassert(x > 0, \"bad\");\n"},
		{"postfix", "x=-a.b[0]+f(1)(2);", "x = -a.b[0] + f(1)(2);\n"},
		{"comprehension", "v=[for(i=[0:3])if(i%2==0)i*2 else 0];",
			"v = [for(i = [0:3]) if(i % 2 == 0) i * 2 else 0];\n"},
		{"each and let", "w=[each v,let(k=2)k];", "w = [each v, let(k = 2) k];\n"},
		{"c-style for", "v=[for(i=0;i<3;i=i+1)i];", "v = [for(i = 0; i < 3; i = i + 1) i];\n"},
		{"let expression", "function g(x)=let(s=x+1)s*s;", "function g(x) = let(s = x + 1) s * s;\n"},
		{"function literal", "f=function(x)x+1;", "f = function(x) x + 1;\n"},
		{"module body statement", "module m()cube(1);", "module m() cube(1);\n"},
		{"top level block", "{a=1;}", "{\n  a = 1;\n}\n"},
		{"module with params", "module part(s=size,center=false){cube(s,center=center);}",
			"module part(s = size, center = false) {\n  cube(s, center = center);\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatString(t, tt.in, Options{}); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"own-line relocated", "a();\n// own-line\nb();", "a();\n// own-line\nb();\n"},
		{"own-line takes next indent", "module m() {\na();\n      // own-line\nb();\n}",
			"module m() {\n  a();\n  // own-line\n  b();\n}\n"},
		{"trailing stays attached", "a(); // trailing\nb();", "a(); // trailing\nb();\n"},
		{"end of file comment", "a();\n// end", "a();\n// end\n"},
		{"only a comment", "// only\n", "// only\n"},
		{"comment run", "a();\n// one\n// two\n\n// three\nb();",
			"a();\n// one\n// two\n\n// three\nb();\n"},
		{"blank lines kept", "a();\n\n\nb();\n\n", "a();\n\n\nb();\n"},
		{"own-line block comment", "a();\n/* c */\nb();", "a();\n/* c */\nb();\n"},
		{"inline block comment", "a(/* x */ 1);", "a(/* x */ 1);\n"},
		{"block comment reindented", "module m() {\n    /* a\n       * b\n       */\n  x();\n}",
			"module m() {\n  /* a\n   * b\n   */\n  x();\n}\n"},
		{"comment after open brace", "union() { // group\ncube(1);\n}",
			"union() { // group\n  cube(1);\n}\n"},
		{"comment inside list", "x = [1,\n// c\n2];", "x = [1,\n// c\n2];\n"},
		{"trailing comment in list", "x = [1, // one\n2];", "x = [1, // one\n2];\n"},
		{"leading file comment", "// head\n\nx = 1;", "// head\n\nx = 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatString(t, tt.in, Options{}); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestRenderIndentWidthOption(t *testing.T) {
	got := formatString(t, "module m(){if(a)b();}", Options{IndentWidth: 4})
	want := "module m() {\n    if (a)\n        b();\n}\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderWrapsLongLines(t *testing.T) {
	got := formatString(t, "x=[1,2,3,4,5,6,7,8,9];", Options{MaxLineWidth: 20})
	want := "x = [1, 2, 3, 4, 5,\n  6, 7, 8, 9];\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

// renderStream lexes and parses src and returns the renderer after the walk.
func renderStream(t *testing.T, src string) (*Renderer, string) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.scad", []byte(src)))
	stream := lexer.Tokenize(sf, lexer.Options{})
	res := parser.ParseFile(stream, parser.Options{})
	if !res.Ok() {
		t.Fatalf("parse %q failed", src)
	}
	var out strings.Builder
	r := NewRenderer(stream, &out, Options{})
	if err := r.Render(res.File); err != nil {
		t.Fatal(err)
	}
	return r, out.String()
}

func TestRenderLeavesIndentBalanced(t *testing.T) {
	srcs := []string{
		"module m(){if(a){for(i=[0:1])translate([i,0,0])cube(1);}else c();}",
		"a();\n// tail",
		"x = [for (i = [0:3]) let (j = i) j];",
	}
	for _, src := range srcs {
		r, _ := renderStream(t, src)
		if d := r.w.Depth(); d != 0 {
			t.Errorf("%q: depth %d after render", src, d)
		}
		if r.deferred.pending {
			t.Errorf("%q: deferral left pending", src)
		}
	}
}

func commentTexts(t *testing.T, src string) []string {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.scad", []byte(src)))
	var out []string
	for _, tok := range lexer.Tokenize(sf, lexer.Options{}).Tokens() {
		if tok.Kind == token.LineComment || tok.Kind == token.BlockComment {
			out = append(out, strings.Join(strings.Fields(tok.Text), " "))
		}
	}
	return out
}

func TestCommentsConserved(t *testing.T) {
	src := `/* file
 * header */
// a
x = 1; // b
module m(/* p */ s) { // c
  // d
  cube(s); /* e */
  // f
}
// g
`
	_, out := renderStream(t, src)
	if got, want := commentTexts(t, out), commentTexts(t, src); !slices.Equal(got, want) {
		t.Fatalf("comments changed:\ngot  %q\nwant %q", got, want)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	srcs := []string{
		"module m(){a();b();}",
		"if(a)b();else if(c)d();else{e();}",
		"x=[1,\n// c\n2];\ny = 3; // t\n\n\n/* z */\nz=1;",
		"module m() {\n    /* a\n       * b\n       */\n  x();\n}\n// end",
	}
	for _, src := range srcs {
		out, ok, err := CheckIdempotent("test.scad", []byte(src), Options{})
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if !ok {
			again, _ := Bytes("test.scad", out, Options{})
			t.Errorf("not idempotent for %q:\nfirst:\n%s\nsecond:\n%s", src, out, again)
		}
	}
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderSinkFailure(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.scad", []byte("a();")))
	stream := lexer.Tokenize(sf, lexer.Options{})
	res := parser.ParseFile(stream, parser.Options{})
	err := NewRenderer(stream, failingSink{}, Options{}).Render(res.File)
	if !errors.Is(err, ErrSink) {
		t.Fatalf("expected ErrSink, got %v", err)
	}
}

func TestSyntaxErrorNotRendered(t *testing.T) {
	out, err := Bytes("bad.scad", []byte("x = 1;\ncube(\n"), Options{})
	if out != nil {
		t.Fatalf("partial output %q", out)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if !strings.HasPrefix(se.Error(), "bad.scad:") || len(se.Diagnostics) == 0 {
		t.Fatalf("unexpected error %q (%d diagnostics)", se.Error(), len(se.Diagnostics))
	}
}

func TestEmptyFile(t *testing.T) {
	if got := formatString(t, "", Options{}); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := formatString(t, "\n\n  \n", Options{}); got != "" {
		t.Fatalf("got %q", got)
	}
}
