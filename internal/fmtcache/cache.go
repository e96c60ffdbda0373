// Package fmtcache remembers content that is already formatted.
//
// Keys are SHA-256 digests of file content salted with the formatting
// options. An entry exists only for content that the formatter printed back
// unchanged, so a hit lets the driver skip lexing and rendering entirely.
package fmtcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format or formatter output changes
const schemaVersion uint16 = 1

// Digest identifies formatted content under one set of options.
type Digest [sha256.Size]byte

// Entry is the payload stored per digest.
type Entry struct {
	Schema uint16
	// Path последнего файла с этим содержимым, только для отладки.
	Path     string
	Size     int
	StoredAt int64
}

// Cache is a directory of msgpack entries. A nil *Cache is valid and never
// hits. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open opens the cache for app under $XDG_CACHE_HOME (or ~/.cache).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir opens a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key derives the digest of content formatted with salt (the options).
func Key(content []byte, salt string) Digest {
	h := sha256.New()
	h.Write([]byte{byte(schemaVersion >> 8), byte(schemaVersion)})
	h.Write([]byte(salt))
	h.Write([]byte{0})
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный подкаталог, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp")
}

// Put records key as formatted.
func (c *Cache) Put(key Digest, path string, size int) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	entry := Entry{Schema: schemaVersion, Path: path, Size: size, StoredAt: time.Now().Unix()}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads the entry for key. Entries of another schema are reported as
// misses.
func (c *Cache) Get(key Digest) (Entry, bool, error) {
	if c == nil {
		return Entry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	defer f.Close()

	var entry Entry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return Entry{}, false, err
	}
	if entry.Schema != schemaVersion {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Known reports whether key is recorded. Read errors count as misses.
func (c *Cache) Known(key Digest) bool {
	_, ok, err := c.Get(key)
	return ok && err == nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
