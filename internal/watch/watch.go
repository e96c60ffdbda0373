// Package watch re-runs a callback when watched source files change.
//
// Directories are watched (fsnotify reports per directory); events are
// filtered through Options.Match and coalesced: the callback receives every
// path that changed during a quiet period of Options.Debounce.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 150 * time.Millisecond

// Options configures Run.
type Options struct {
	Debounce time.Duration
	// Recursive watches every directory below a directory root.
	Recursive bool
	// Match selects the files whose changes are reported.
	Match  func(path string) bool
	Logger *zap.Logger
}

// OnChange receives the sorted, de-duplicated paths of one batch.
type OnChange func(ctx context.Context, paths []string)

// Run watches roots until ctx is cancelled. File roots are reported
// regardless of Match. Run returns nil on cancellation.
func Run(ctx context.Context, roots []string, opts Options, onChange OnChange) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = zap.L()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	s := &state{
		watcher: w,
		opts:    opts,
		log:     log,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		scan:    make(map[string]struct{}),
	}
	for _, root := range roots {
		if err := s.addRoot(root); err != nil {
			return err
		}
	}
	if len(s.dirs) == 0 {
		return errors.New("watch: nothing to watch")
	}
	log.Info("watching", zap.Int("dirs", len(s.dirs)), zap.Int("files", len(s.files)))

	pending := make(map[string]struct{})
	timer := time.NewTimer(opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if path, hit := s.handle(ev); hit {
				pending[path] = struct{}{}
				timer.Reset(opts.Debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := drain(pending)
			log.Debug("change batch", zap.Strings("paths", batch))
			onChange(ctx, batch)
		}
	}
}

type state struct {
	watcher *fsnotify.Watcher
	opts    Options
	log     *zap.Logger
	// files - явно указанные файлы; для них следим за родительским каталогом.
	files map[string]struct{}
	dirs  map[string]struct{}
	// scan holds directories whose every matching file is reported.
	scan map[string]struct{}
}

func (s *state) addRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	root = filepath.Clean(root)
	if !info.IsDir() {
		s.files[root] = struct{}{}
		return s.addDir(filepath.Dir(root), false)
	}
	if !s.opts.Recursive {
		return s.addDir(root, true)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return s.addDir(path, true)
	})
}

func (s *state) addDir(dir string, scan bool) error {
	if scan {
		s.scan[dir] = struct{}{}
	}
	if _, ok := s.dirs[dir]; ok {
		return nil
	}
	if err := s.watcher.Add(dir); err != nil {
		return err
	}
	s.dirs[dir] = struct{}{}
	return nil
}

// handle reacts to one event and reports the path to re-run, if any.
func (s *state) handle(ev fsnotify.Event) (string, bool) {
	path := filepath.Clean(ev.Name)
	if ev.Has(fsnotify.Create) && s.opts.Recursive {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := s.addRoot(path); err != nil {
				s.log.Warn("cannot watch new directory", zap.String("path", path), zap.Error(err))
			}
			return "", false
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}
	return path, s.matches(path)
}

func (s *state) matches(path string) bool {
	if _, ok := s.files[path]; ok {
		return true
	}
	if _, ok := s.scan[filepath.Dir(path)]; !ok {
		return false
	}
	return s.opts.Match == nil || s.opts.Match(path)
}

func drain(pending map[string]struct{}) []string {
	out := make([]string, 0, len(pending))
	for p := range pending {
		out = append(out, p)
		delete(pending, p)
	}
	sort.Strings(out)
	return out
}
