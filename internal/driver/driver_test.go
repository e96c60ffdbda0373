package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"scadfmt/internal/fmtcache"
	"scadfmt/internal/format"
)

const (
	messy = "x=1;\n"
	tidy  = "x = 1;\n"
	bad   = "cube(;\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func baseOptions() FormatOptions {
	return FormatOptions{Jobs: 2, Logger: zap.NewNop()}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.scad"), tidy)
	writeFile(t, filepath.Join(dir, "sub", "b.SCAD"), tidy)
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "c.scad"), tidy)

	if _, err := CollectFiles(context.Background(), []string{dir}, false, nil); err == nil {
		t.Fatalf("a directory without recursion must be rejected")
	}

	files, err := CollectFiles(context.Background(), []string{dir, filepath.Join(dir, "a.scad")}, true, []string{".scad"})
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.scad"), filepath.Join(dir, "sub", "b.SCAD")}
	if strings.Join(files, "|") != strings.Join(want, "|") {
		t.Fatalf("files = %v, want %v", files, want)
	}

	explicit, err := CollectFiles(context.Background(), []string{filepath.Join(dir, "notes.txt")}, false, nil)
	if err != nil || len(explicit) != 1 {
		t.Fatalf("explicit files are kept regardless of extension: %v %v", explicit, err)
	}
}

func TestFormatPathsRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.scad")
	writeFile(t, path, messy)

	results, err := FormatPaths(context.Background(), []string{path}, baseOptions())
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil || !results[0].Changed {
		t.Fatalf("unexpected results %+v", results)
	}
	if got := readFile(t, path); got != tidy {
		t.Fatalf("content = %q, want %q", got, tidy)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected no backup or temp files, got %d entries", len(entries))
	}
}

func TestFormatPathsCheckAndDiffDoNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.scad")
	writeFile(t, path, messy)

	for _, opts := range []FormatOptions{{Check: true}, {Diff: true}, {Stdout: true}} {
		opts.Logger = zap.NewNop()
		results, err := FormatPaths(context.Background(), []string{path}, opts)
		if err != nil {
			t.Fatalf("FormatPaths: %v", err)
		}
		r := results[0]
		if !r.Changed {
			t.Fatalf("file should be reported as changed: %+v", r)
		}
		if opts.Diff && !strings.Contains(r.Diff, "+x = 1;") {
			t.Fatalf("diff missing formatted line:\n%s", r.Diff)
		}
		if opts.Stdout && string(r.Formatted) != tidy {
			t.Fatalf("formatted = %q", r.Formatted)
		}
		if got := readFile(t, path); got != messy {
			t.Fatalf("file was modified: %q", got)
		}
	}
}

func TestFormatPathsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.scad")
	writeFile(t, path, messy)

	stamp := time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local)
	opts := baseOptions()
	opts.Backup = true
	opts.Now = func() time.Time { return stamp }

	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	wantBackup := filepath.Join(dir, "part_2024-03-05_07-08-09.scadbak")
	if results[0].Backup != wantBackup {
		t.Fatalf("backup = %q, want %q", results[0].Backup, wantBackup)
	}
	if got := readFile(t, wantBackup); got != messy {
		t.Fatalf("backup content = %q", got)
	}
	if got := readFile(t, path); got != tidy {
		t.Fatalf("content = %q", got)
	}
}

func TestFormatPathsKeepsFailedFileUntouched(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "a.scad")
	good := filepath.Join(dir, "b.scad")
	writeFile(t, broken, bad)
	writeFile(t, good, messy)

	opts := baseOptions()
	opts.Recursive = true
	results, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if !errors.Is(results[0].Err, format.ErrSyntax) {
		t.Fatalf("broken file error = %v", results[0].Err)
	}
	var se *format.SyntaxError
	if !errors.As(results[0].Err, &se) || !strings.HasPrefix(se.Error(), broken+":1:") {
		t.Fatalf("syntax error should carry path:line:col, got %v", results[0].Err)
	}
	if got := readFile(t, broken); got != bad {
		t.Fatalf("broken file modified: %q", got)
	}
	if results[1].Err != nil || readFile(t, good) != tidy {
		t.Fatalf("sibling not formatted: %+v", results[1])
	}
}

func TestFormatPathsPreservesTimestamp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.scad")
	writeFile(t, path, messy)
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	opts := baseOptions()
	opts.PreserveTimestamp = true
	if _, err := FormatPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("mtime = %v, want %v", info.ModTime(), past)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	cache, err := fmtcache.OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.scad")
	writeFile(t, path, messy)

	opts := baseOptions()
	opts.Cache = cache
	first, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil || first[0].Cached || !first[0].Changed {
		t.Fatalf("first run: %+v %v", first, err)
	}
	second, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached || second[0].Changed {
		t.Fatalf("second run should hit the cache: %+v", second[0])
	}

	opts.Options.IndentWidth = 4
	third, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil || third[0].Cached {
		t.Fatalf("other options must miss the cache: %+v %v", third, err)
	}
}

func TestFormatPathsProgressAndTimings(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.scad")
	b := filepath.Join(dir, "b.scad")
	writeFile(t, a, messy)
	writeFile(t, b, tidy)

	sink := &recordingSink{}
	opts := baseOptions()
	opts.Progress = sink
	opts.Timings = true
	results, err := FormatPaths(context.Background(), []string{a, b}, opts)
	if err != nil {
		t.Fatal(err)
	}

	final := map[string]Status{}
	for _, e := range sink.events {
		if e.Terminal() {
			final[e.File] = e.Status
		}
	}
	if final[a] != StatusChanged || final[b] != StatusUnchanged {
		t.Fatalf("final statuses = %v", final)
	}
	sum := Timings(results)
	if len(sum.Phases) == 0 || sum.Phases[0].Name != string(StageRead) || sum.Phases[0].Count != 2 {
		t.Fatalf("unexpected timings %+v", sum)
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	opts := baseOptions()
	opts.Recursive = true
	_, err := FormatPaths(context.Background(), []string{t.TempDir()}, opts)
	if !errors.Is(err, ErrNoFiles) {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
}

func TestFormatReader(t *testing.T) {
	r := FormatReader("<stdin>", strings.NewReader(messy), baseOptions())
	if r.Err != nil || string(r.Formatted) != tidy || !r.Changed {
		t.Fatalf("unexpected result %+v", r)
	}
	r = FormatReader("<stdin>", strings.NewReader(bad), baseOptions())
	if !errors.Is(r.Err, format.ErrSyntax) || r.Formatted != nil {
		t.Fatalf("syntax errors must not produce output: %+v", r)
	}
}

func TestBackupName(t *testing.T) {
	stamp := time.Date(2023, 12, 31, 23, 59, 1, 0, time.UTC)
	if got := BackupName("dir/box.scad", stamp); got != "dir/box_2023-12-31_23-59-01.scadbak" {
		t.Fatalf("BackupName = %q", got)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.scad")
	writeFile(t, path, "cube(1); // c\n")

	tok, err := Tokenize(path, 10)
	if err != nil || tok.Bag.HasErrors() || tok.Stream.Len() != 6 {
		t.Fatalf("Tokenize: %v %+v", err, tok)
	}
	res, err := Parse(path, 10)
	if err != nil || res.Bag.HasErrors() || res.AST == nil || len(res.AST.Stmts) != 1 {
		t.Fatalf("Parse: %v %+v", err, res)
	}
}

func TestFormatFileTimesFailedRead(t *testing.T) {
	dir := t.TempDir()
	opts := baseOptions()
	opts.Timings = true

	for _, path := range []string{filepath.Join(dir, "missing.scad"), dir} {
		res := formatFile(path, &opts)
		if res.Err == nil {
			t.Fatalf("%s: expected read error", path)
		}
		if res.Timing == nil || len(res.Timing.Phases) != 1 {
			t.Fatalf("%s: timings = %+v", path, res.Timing)
		}
		if p := res.Timing.Phases[0]; p.Name != string(StageRead) || p.Note != "failed" {
			t.Fatalf("%s: read phase = %+v", path, p)
		}
	}
}
