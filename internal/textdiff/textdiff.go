// Package textdiff renders unified diffs between an original file and its
// formatted form.
package textdiff

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns the unified diff turning before into after, or "" when
// they are equal.
func Unified(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), string(before), string(after))
	return fmt.Sprint(gotextdiff.ToUnified(path, path+" (formatted)", string(before), edits))
}

// Changed reports whether formatting changed the content.
func Changed(before, after []byte) bool {
	return string(before) != string(after)
}
