package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"scadfmt/internal/ast"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Index    *int            `json:"index,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево в виде outline с ├─ / └─.
func FormatASTPretty(w io.Writer, file *ast.File, path string) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	if _, err := fmt.Fprintf(w, "== %s ==\n", path); err != nil {
		return err
	}
	return ast.Dump(w, file)
}

func FormatASTJSON(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodeJSON(file))
}

func nodeJSON(n ast.Node) ASTNodeOutput {
	if t, ok := n.(*ast.Terminal); ok {
		idx := t.Index()
		return ASTNodeOutput{Type: t.Tok.Kind.String(), Text: t.Text(), Index: &idx}
	}
	out := ASTNodeOutput{Type: n.Kind().String()}
	for _, c := range n.Children() {
		out.Children = append(out.Children, nodeJSON(c))
	}
	return out
}
