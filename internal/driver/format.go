package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scadfmt/internal/fmtcache"
	"scadfmt/internal/format"
	"scadfmt/internal/observ"
	"scadfmt/internal/source"
	"scadfmt/internal/textdiff"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Check reports files that would change without touching them.
	Check bool
	// Stdout returns formatted content in the results instead of writing.
	Stdout bool
	// Diff fills FormatResult.Diff; files are not written.
	Diff bool

	Backup            bool
	PreserveTimestamp bool
	Recursive         bool
	Extensions        []string
	Jobs              int
	Timings           bool

	Options  format.Options
	Cache    *fmtcache.Cache
	Progress ProgressSink
	Logger   *zap.Logger

	// Now переопределяет часы для имён резервных копий (тесты).
	Now func() time.Time
}

func (o *FormatOptions) writes() bool { return !o.Check && !o.Stdout && !o.Diff }

func (o *FormatOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.L()
}

func (o *FormatOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *FormatOptions) cacheSalt() string {
	return fmt.Sprintf("indent=%d width=%d", o.Options.IndentWidth, o.Options.MaxLineWidth)
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	Diff      string
	Backup    string
	Timing    *observ.Report
}

// FormatPaths formats the files named by paths. Directories are expanded
// only with opts.Recursive. Files are processed in parallel; a failing file
// never stops its siblings and is left untouched. The returned error is
// reserved for problems with the run itself (bad paths, cancellation).
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectFiles(ctx, paths, opts.Recursive, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return FormatFiles(ctx, files, opts)
}

// FormatFiles formats an already collected file list, results in input order.
func FormatFiles(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(files)), 1))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FormatResult{Path: path, Err: err}
				return err
			}
			results[i] = formatFile(path, &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// readSource reads path, which must be a regular file.
func readSource(path string) (os.FileInfo, []byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%s is not a regular file", path)
	}
	// #nosec G304 -- path is provided by the caller
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return info, original, nil
}

func formatFile(path string, opts *FormatOptions) (result FormatResult) {
	log := opts.logger().With(zap.String("path", path))
	started := time.Now()
	result.Path = path

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	defer func() {
		if timer != nil {
			report := timer.Report()
			result.Timing = &report
		}
		status := StatusUnchanged
		switch {
		case result.Err != nil:
			status = StatusError
			log.Error("format failed", zap.Error(result.Err))
		case result.Changed:
			status = StatusChanged
		}
		emit(opts.Progress, Event{File: path, Status: status, Err: result.Err, Elapsed: time.Since(started)})
		log.Debug("format finished", zap.String("status", string(status)), zap.Duration("elapsed", time.Since(started)))
	}()

	log.Debug("format started")
	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	stop := timer.Start(string(StageRead))
	info, original, err := readSource(path)
	if err != nil {
		stop("failed")
		result.Err = err
		return result
	}
	stop("")

	key := fmtcache.Key(original, opts.cacheSalt())
	if opts.Cache.Known(key) {
		log.Debug("cache hit")
		result.Cached = true
		if opts.Stdout {
			result.Formatted = original
		}
		return result
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	stop = timer.Start(string(StageFormat))
	formatted, err := formatBytes(path, original, opts.Options)
	stop("")
	if err != nil {
		result.Err = err
		return result
	}

	result.Changed = !bytes.Equal(original, formatted)
	if opts.Stdout {
		result.Formatted = formatted
	}
	if opts.Diff && result.Changed {
		result.Diff = textdiff.Unified(path, original, formatted)
	}
	if !result.Changed {
		rememberFormatted(opts, log, key, path, len(original))
		return result
	}
	if !opts.writes() {
		return result
	}

	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	stop = timer.Start(string(StageWrite))
	defer stop("")
	if opts.Backup {
		name, err := writeBackup(path, original, info.Mode(), opts.now())
		if err != nil {
			result.Err = err
			return result
		}
		result.Backup = name
		log.Debug("backup written", zap.String("backup", name))
	}
	if err := writeAtomic(path, formatted, info.Mode()); err != nil {
		result.Err = fmt.Errorf("write %s: %w", path, err)
		return result
	}
	if opts.PreserveTimestamp {
		if err := restoreModTime(path, info); err != nil {
			// содержимое уже записано, это не провал форматирования
			log.Warn("failed to preserve modification time", zap.Error(err))
		}
	}
	rememberFormatted(opts, log, fmtcache.Key(formatted, opts.cacheSalt()), path, len(formatted))
	return result
}

func rememberFormatted(opts *FormatOptions, log *zap.Logger, key fmtcache.Digest, path string, size int) {
	if err := opts.Cache.Put(key, path, size); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
}

// formatBytes decodes and formats original as the file path.
func formatBytes(path string, original []byte, opt format.Options) ([]byte, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.LoadBytes(path, original)
	if err != nil {
		return nil, err
	}
	return format.File(fileSet, fileID, opt)
}

// FormatReader formats everything read from r, named name in messages. The
// result always carries the formatted bytes; nothing is written.
func FormatReader(name string, r io.Reader, opts FormatOptions) FormatResult {
	result := FormatResult{Path: name}
	original, err := io.ReadAll(r)
	if err != nil {
		result.Err = err
		return result
	}
	formatted, err := formatBytes(name, original, opts.Options)
	if err != nil {
		result.Err = err
		opts.logger().Error("format failed", zap.String("path", name), zap.Error(err))
		return result
	}
	result.Formatted = formatted
	result.Changed = !bytes.Equal(original, formatted)
	if opts.Diff && result.Changed {
		result.Diff = textdiff.Unified(name, original, formatted)
	}
	return result
}

// Timings sums the per-file reports of results.
func Timings(results []FormatResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	return observ.Sum(reports...)
}
