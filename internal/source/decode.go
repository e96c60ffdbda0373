package source

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeContent strips a byte order mark and transcodes UTF-16 input to
// UTF-8. Content without a BOM is passed through unchanged.
func decodeContent(content []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		flags |= FileHadBOM
	case bytes.HasPrefix(content, bomUTF16LE), bytes.HasPrefix(content, bomUTF16BE):
		flags |= FileHadBOM | FileDecodedUTF16
	default:
		return content, 0, nil
	}

	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	out, _, err := transform.Bytes(dec, content)
	if err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}
	return out, flags, nil
}
