package format

import (
	"fmt"
	"io"

	"scadfmt/internal/ast"
	"scadfmt/internal/token"
)

// Renderer walks one syntax tree and prints it through a Writer, replaying
// the hidden-channel tokens of the stream around every terminal.
type Renderer struct {
	stream   *token.Stream
	sink     io.Writer
	w        *Writer
	deferred deferral
}

// NewRenderer creates a renderer for one file. The stream must be the one
// the tree was parsed from.
func NewRenderer(stream *token.Stream, sink io.Writer, opt Options) *Renderer {
	return &Renderer{
		stream: stream,
		sink:   sink,
		w:      NewWriter(opt),
	}
}

// Render prints file and flushes the result to the sink in one write.
func (r *Renderer) Render(file *ast.File) error {
	r.replay(0)
	r.visit(file)
	r.resolve()
	r.w.EndLine()
	if r.sink == nil {
		return fmt.Errorf("%w: nil sink", ErrSink)
	}
	if _, err := r.sink.Write(r.w.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}
	return nil
}

func (r *Renderer) visit(n ast.Node) {
	if ast.IsNil(n) {
		return
	}
	switch n := n.(type) {
	case *ast.Terminal:
		r.terminal(n)
	case *ast.File:
		r.visitAll(n.Stmts)
	case *ast.Assignment:
		r.visit(n.Expr)
		r.terminal(n.Semi)
		r.w.EndLine()
	case *ast.AssignmentExpr:
		r.terminal(n.Name)
		r.w.Space()
		r.terminal(n.Assign)
		r.w.Space()
		r.visit(n.Value)
	case *ast.Expr:
		r.visit(n.First)
		for _, op := range n.Ops {
			r.visit(op)
		}
		r.visit(n.Ternary)
	case *ast.Binary:
		r.w.Space()
		r.terminal(n.Op)
		r.w.Space()
		r.visit(n.Right)
	case *ast.Ternary:
		r.w.Space()
		r.terminal(n.Question)
		r.w.Space()
		r.visit(n.Then)
		r.w.Space()
		r.terminal(n.Colon)
		r.w.Space()
		r.visit(n.Else)
	case *ast.Commas:
		for _, c := range n.Commas {
			r.terminal(c)
			r.w.Space()
		}
	case *ast.Statements:
		r.block(n.LBrace, n.Body, n.RBrace)
	case *ast.ChildStatements:
		r.block(n.LBrace, n.Body, n.RBrace)
	case *ast.EmptyStatement:
		r.terminal(n.Semi)
		r.w.EndLine()
	case *ast.Include:
		r.terminal(n.Keyword)
		r.w.Space()
		r.terminal(n.Path)
		r.w.EndLine()
	case *ast.FunctionDef:
		r.functionDef(n)
	case *ast.ModuleDef:
		r.terminal(n.Module)
		r.w.Space()
		r.terminal(n.Name)
		r.terminal(n.LParen)
		r.visit(n.Params)
		r.terminal(n.RParen)
		r.visit(n.Body)
	case *ast.ModuleInstantiation:
		r.moduleInstantiation(n)
	case *ast.KeywordExpr:
		r.terminal(n.Keyword)
		r.terminal(n.LParen)
		r.visit(n.Args)
		r.terminal(n.RParen)
		if !ast.IsNil(n.Body) {
			r.w.Space()
			r.visit(n.Body)
		}
	case *ast.CFor:
		r.cFor(n)
	case *ast.IfComp:
		r.terminal(n.If)
		r.terminal(n.LParen)
		r.visit(n.Cond)
		r.terminal(n.RParen)
		r.w.Space()
		r.visit(n.Then)
		if n.Else != nil {
			r.w.Space()
			r.terminal(n.Else)
			r.w.Space()
			r.visit(n.ElseBody)
		}
	case *ast.EachComp:
		r.terminal(n.Each)
		r.w.Space()
		r.visit(n.Body)
	default:
		// Unary, Paren, Call, Index, Member, Vector, Range, List:
		// children in order, no spaces.
		r.visitAll(n.Children())
	}
}

func (r *Renderer) visitAll(nodes []ast.Node) {
	for _, n := range nodes {
		r.visit(n)
	}
}

// terminal flushes a pending own-line comment run, prints the token and
// replays the hidden tokens after it.
func (r *Renderer) terminal(t *ast.Terminal) {
	if t == nil {
		return
	}
	r.emit(t)
	r.replay(t.Index() + 1)
}

// emit prints the token text after flushing a pending deferral.
func (r *Renderer) emit(t *ast.Terminal) {
	r.resolve()
	r.w.Write(t.Text())
}

// block prints "{", the body one level deeper and "}" on its own line.
// Hidden tokens after "{" are replayed inside the body so comments opening
// the block take the body's indent.
func (r *Renderer) block(lb *ast.Terminal, body []ast.Node, rb *ast.Terminal) {
	r.w.Space()
	if lb != nil {
		r.emit(lb)
	}
	r.w.indented(func() {
		if lb != nil {
			r.replay(lb.Index() + 1)
		}
		r.w.EndLine()
		r.visitAll(body)
	})
	r.terminal(rb)
	r.w.EndLine()
}

func (r *Renderer) functionDef(n *ast.FunctionDef) {
	r.terminal(n.Function)
	r.w.Space()
	r.terminal(n.Name)
	r.terminal(n.LParen)
	r.visit(n.Params)
	r.terminal(n.RParen)
	r.w.Space()
	r.terminal(n.Assign)
	r.w.Space()
	r.visit(n.Body)
	r.terminal(n.Semi)
	r.w.EndLine()
}

func (r *Renderer) moduleInstantiation(n *ast.ModuleInstantiation) {
	r.w.Space()
	for _, m := range n.Modifiers {
		r.terminal(m)
	}
	r.terminal(n.Target)
	if n.Target != nil && spacedTarget(n.Target.Tok.Kind) {
		r.w.Space()
	}
	r.terminal(n.LParen)
	r.visit(n.Args)
	r.terminal(n.RParen)
	r.child(n.Child)
	if n.Else == nil {
		return
	}
	r.w.Space()
	r.terminal(n.Else.Else)
	if isIf(n.Else.Child) {
		// else if stays on the else line
		r.visit(n.Else.Child)
		return
	}
	r.child(n.Else.Child)
}

// child renders the statement attached to an instantiation. A single bare
// statement goes on its own line one level deeper; an empty statement or a
// block stays in the caller's flow.
func (r *Renderer) child(n ast.Node) {
	if !ast.IsBareChild(n) {
		r.visit(n)
		return
	}
	r.w.indented(func() {
		r.w.EndLine()
		r.visit(n)
	})
}

func (r *Renderer) cFor(n *ast.CFor) {
	r.terminal(n.For)
	r.terminal(n.LParen)
	r.visit(n.Init)
	r.terminal(n.Semi1)
	r.w.Space()
	r.visit(n.Cond)
	r.terminal(n.Semi2)
	r.w.Space()
	r.visit(n.Update)
	r.terminal(n.RParen)
	r.w.Space()
	r.visit(n.Body)
}

// spacedTarget reports whether a call target is a control keyword written
// with a space before its '('.
func spacedTarget(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwFor, token.KwIntersectionFor, token.KwLet:
		return true
	default:
		return false
	}
}

func isIf(n ast.Node) bool {
	mi, ok := n.(*ast.ModuleInstantiation)
	return ok && mi.Target != nil && mi.Target.Tok.Kind == token.KwIf && len(mi.Modifiers) == 0
}
