package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned when the given paths name no source files.
var ErrNoFiles = errors.New("format: no source files found")

// CollectFiles expands paths into a sorted, de-duplicated list of files.
// Explicit files are always kept. Directories are walked only when recursive
// is set, picking files whose extension is in exts.
func CollectFiles(ctx context.Context, paths []string, recursive bool, exts []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				return nil, fmt.Errorf("%s is not a regular file", p)
			}
			addFile(p)
			continue
		}
		if !recursive {
			return nil, fmt.Errorf("%s is a directory (use -r to format recursively)", p)
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				// скрытые каталоги (.git и т.п.) не обходим
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && hasExt(path, exts) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasExt(path string, exts []string) bool {
	if len(exts) == 0 {
		exts = []string{".scad"}
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}
