package fmtcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestKeyDependsOnSalt(t *testing.T) {
	a := Key([]byte("cube(1);\n"), "indent=2")
	b := Key([]byte("cube(1);\n"), "indent=4")
	c := Key([]byte("cube(2);\n"), "indent=2")
	if a == b || a == c {
		t.Fatalf("keys must differ by salt and content")
	}
	if a != Key([]byte("cube(1);\n"), "indent=2") {
		t.Fatalf("key must be deterministic")
	}
}

func TestPutGet(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key([]byte("x = 1;\n"), "")
	if c.Known(key) {
		t.Fatalf("empty cache must miss")
	}
	if err := c.Put(key, "a.scad", 7); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entry, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if entry.Path != "a.scad" || entry.Size != 7 || entry.Schema != schemaVersion {
		t.Fatalf("unexpected entry %+v", entry)
	}

	matches, _ := filepath.Glob(filepath.Join(c.Dir(), "fmt", "*", "tmp-*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestStaleSchemaIsMiss(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key([]byte("y = 2;\n"), "")
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if c.Known(key) {
		t.Fatalf("entry from another schema must not hit")
	}
}

func TestDropAll(t *testing.T) {
	c, err := OpenDir(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := Key([]byte("z = 3;\n"), "")
	if err := c.Put(key, "z.scad", 7); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if c.Known(key) {
		t.Fatalf("entry survived DropAll")
	}
	if err := c.Put(key, "z.scad", 7); err != nil {
		t.Fatalf("cache unusable after DropAll: %v", err)
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.Put(Digest{}, "", 0); err != nil {
		t.Fatal(err)
	}
	if c.Known(Digest{}) {
		t.Fatalf("nil cache must miss")
	}
}
