package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
)

// StdinPath is the display path of content read from standard input.
const StdinPath = "<stdin>"

// FileSet owns the source files of one run and resolves spans to positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> последняя версия
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores already normalized content, computes LineIdx and Hash, and
// returns a new FileID. The same path may be added more than once; GetLatest
// returns the newest version.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source %s: content size overflow: %w", path, err))
	}
	id, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	normalizedPath := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      FileID(id),
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = FileID(id)
	return FileID(id)
}

// Load reads a file from disk, decodes a BOM, normalizes CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.addRaw(path, content, 0)
}

// LoadBytes is Load for content the caller already read from path.
func (fileSet *FileSet) LoadBytes(path string, content []byte) (FileID, error) {
	return fileSet.addRaw(path, content, 0)
}

// LoadReader reads all of r (typically stdin) as a virtual file.
func (fileSet *FileSet) LoadReader(name string, r io.Reader) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	return fileSet.addRaw(name, content, FileVirtual)
}

// AddVirtual adds in-memory content (tests, generated text) as is.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) addRaw(path string, content []byte, flags FileFlags) (FileID, error) {
	content, decoded, err := decodeContent(content)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	content, hadCRLF := normalizeCRLF(content)
	flags |= decoded
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Position renders the start of span as "path:line:col".
func (fileSet *FileSet) Position(span Span) string {
	start, _ := fileSet.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", fileSet.files[span.File].Path, start.Line, start.Col)
}

// GetLine returns the 1-based line lineNum without its terminator, or ""
// when the line does not exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	n := uint32(len(f.LineIdx)) // #nosec G115 -- bounded by content size
	if lineNum-1 > n {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115
	if lineNum-1 < n {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
