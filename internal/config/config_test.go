package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.IndentWidth != 2 || cfg.MaxLineWidth != 0 {
		t.Fatalf("unexpected widths %+v", cfg)
	}
	if cfg.Jobs != runtime.GOMAXPROCS(0) {
		t.Fatalf("jobs = %d", cfg.Jobs)
	}
	if !cfg.HasExtension("a/b/part.SCAD") || cfg.HasExtension("part.stl") {
		t.Fatalf("extension matching is wrong")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
indent_width = 4
max_line_width = 100
backups = true
extensions = ["scad", ".SCADX"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IndentWidth != 4 || cfg.MaxLineWidth != 100 || !cfg.Backups {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if got := strings.Join(cfg.Extensions, ","); got != ".scad,.scadx" {
		t.Fatalf("extensions = %q", got)
	}
	if cfg.PreserveTimestamp || cfg.Recurse || cfg.Cache {
		t.Fatalf("unset keys must keep defaults: %+v", cfg)
	}
	if cfg.Path != path {
		t.Fatalf("path = %q", cfg.Path)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"indent too small", "indent_width = 0", "indent_width"},
		{"indent too large", "indent_width = 17", "indent_width"},
		{"width too small", "max_line_width = 10", "max_line_width"},
		{"negative jobs", "jobs = -1", "jobs"},
		{"unknown key", "tabs = true", "unknown keys: tabs"},
		{"bad toml", "indent_width = ", "failed to parse TOML"},
		{"empty extension", `extensions = [""]`, "extensions[0]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "indent_width = 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.IndentWidth != 3 {
		t.Fatalf("indent = %d, want 3", cfg.IndentWidth)
	}
	if filepath.Dir(cfg.Path) != root {
		t.Fatalf("found %q, want config in %q", cfg.Path, root)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	// без файла: значения по умолчанию
	dir := t.TempDir()
	if _, ok, err := Find(dir); err != nil || ok {
		if ok {
			t.Skip("a .scadfmt.toml exists above the temp dir")
		}
		t.Fatalf("Find: %v", err)
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" || cfg.IndentWidth != 2 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
