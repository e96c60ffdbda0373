// Package config loads formatter settings from .scadfmt.toml.
//
// The file is looked up by walking from a start directory towards the
// filesystem root; the first match wins. Every key is optional and CLI flags
// override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file searched for.
const FileName = ".scadfmt.toml"

const (
	minIndentWidth   = 1
	maxIndentWidth   = 16
	minMaxLineWidth  = 20
	defaultExtension = ".scad"
)

// Config holds the effective settings of one formatter run.
type Config struct {
	IndentWidth       int      `toml:"indent_width"`
	MaxLineWidth      int      `toml:"max_line_width"`
	Backups           bool     `toml:"backups"`
	PreserveTimestamp bool     `toml:"preserve_timestamp"`
	Recurse           bool     `toml:"recursive"`
	Extensions        []string `toml:"extensions"`
	Jobs              int      `toml:"jobs"`
	Cache             bool     `toml:"cache"`

	// Path is the file the values came from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		IndentWidth: 2,
		Extensions:  []string{defaultExtension},
		Jobs:        runtime.GOMAXPROCS(0),
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config above startDir. Without a
// config file the defaults are returned.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	// пустой список расширений в файле означает "по умолчанию"
	if meta.IsDefined("extensions") && len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{defaultExtension}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and normalizes extensions to ".ext" form.
func (c *Config) Validate() error {
	if c.IndentWidth < minIndentWidth || c.IndentWidth > maxIndentWidth {
		return fmt.Errorf("indent_width must be in %d..%d, got %d", minIndentWidth, maxIndentWidth, c.IndentWidth)
	}
	if c.MaxLineWidth != 0 && c.MaxLineWidth < minMaxLineWidth {
		return fmt.Errorf("max_line_width must be 0 or at least %d, got %d", minMaxLineWidth, c.MaxLineWidth)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Jobs == 0 {
		c.Jobs = runtime.GOMAXPROCS(0)
	}
	for i, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return fmt.Errorf("extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = strings.ToLower(ext)
	}
	return nil
}

// HasExtension reports whether path ends in one of the configured extensions.
func (c *Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
