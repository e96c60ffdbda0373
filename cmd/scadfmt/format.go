package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scadfmt/internal/config"
	"scadfmt/internal/driver"
	"scadfmt/internal/fmtcache"
	"scadfmt/internal/format"
	"scadfmt/internal/watch"
)

// stdinName is the file name used in messages about stdin input.
const stdinName = "<stdin>"

func init() {
	flags := rootCmd.Flags()
	flags.Bool("check", false, "report files that need formatting, do not write")
	flags.Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	flags.Bool("diff", false, "print a unified diff of the changes, do not write")
	flags.String("format", "text", "report format (text|json)")
	flags.Int("indent", 0, "spaces per indent level (default from config, 2)")
	flags.Int("width", 0, "maximum line width, 0 = unbounded")
	flags.Bool("backup", false, "keep a timestamped .scadbak copy of every rewritten file")
	flags.Bool("preserve-timestamp", false, "keep the modification time of rewritten files")
	flags.BoolP("recursive", "r", false, "format directories recursively")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.Bool("cache", false, "skip files recorded as already formatted")
	flags.Bool("watch", false, "keep running and re-format files when they change")
	flags.String("ui", "auto", "progress UI for multi-file runs (auto|on|off)")
	flags.String("config", "", "path to "+config.FileName+" (default: nearest above the first path)")
}

// fmtFlags are the command-line switches that shape one run.
type fmtFlags struct {
	check, stdout, diff bool
	outputFormat        string
	watch               bool
	ui                  uiMode
	quiet, timings      bool
	maxDiagnostics      int
}

func runFormat(cmd *cobra.Command, args []string) error {
	ff, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg, ff)
	if err != nil {
		return err
	}
	if ff.timings {
		opts.Timings = true
	}

	if len(args) == 0 {
		if ff.watch {
			return errors.New("--watch needs at least one path")
		}
		return formatStdin(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, ff)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ff.watch {
		return watchPaths(ctx, cmd, args, cfg, opts, ff)
	}
	return formatOnce(ctx, cmd, args, opts, ff)
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var ff fmtFlags
	var err error
	flags := cmd.Flags()
	if ff.check, err = flags.GetBool("check"); err != nil {
		return ff, err
	}
	if ff.stdout, err = flags.GetBool("stdout"); err != nil {
		return ff, err
	}
	if ff.diff, err = flags.GetBool("diff"); err != nil {
		return ff, err
	}
	if ff.outputFormat, err = flags.GetString("format"); err != nil {
		return ff, err
	}
	if ff.watch, err = flags.GetBool("watch"); err != nil {
		return ff, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return ff, err
	}
	if ff.ui, err = readUIMode(uiValue); err != nil {
		return ff, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ff, err
	}
	if ff.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return ff, err
	}
	if ff.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return ff, err
	}

	switch ff.outputFormat {
	case "text", "json":
	default:
		return ff, fmt.Errorf("unsupported output format %q (expected text|json)", ff.outputFormat)
	}
	exclusive := 0
	for _, on := range []bool{ff.check, ff.stdout, ff.diff} {
		if on {
			exclusive++
		}
	}
	if exclusive > 1 {
		return ff, errors.New("--check, --stdout and --diff are mutually exclusive")
	}
	if ff.stdout && ff.outputFormat != "text" {
		return ff, errors.New("--stdout is only supported with text output")
	}
	if ff.watch && (ff.check || ff.stdout || ff.diff) {
		return ff, errors.New("--watch rewrites files and cannot be combined with --check, --stdout or --diff")
	}
	return ff, nil
}

// loadConfig reads --config or the nearest config file and applies the
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	var cfg config.Config
	switch {
	case path != "":
		cfg, err = config.Load(path)
	default:
		cfg, err = config.Discover(configStartDir(args))
	}
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		zap.L().Debug("config loaded", zap.String("path", cfg.Path))
	}

	intFlag := func(name string, dst *int) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	boolFlag := func(name string, dst *bool) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	for _, apply := range []func() error{
		func() error { return intFlag("indent", &cfg.IndentWidth) },
		func() error { return intFlag("width", &cfg.MaxLineWidth) },
		func() error { return intFlag("jobs", &cfg.Jobs) },
		func() error { return boolFlag("backup", &cfg.Backups) },
		func() error { return boolFlag("preserve-timestamp", &cfg.PreserveTimestamp) },
		func() error { return boolFlag("recursive", &cfg.Recurse) },
		func() error { return boolFlag("cache", &cfg.Cache) },
	} {
		if err := apply(); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func configStartDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return args[0]
	}
	return filepath.Dir(args[0])
}

func buildOptions(cfg config.Config, ff fmtFlags) (driver.FormatOptions, error) {
	opts := driver.FormatOptions{
		Check:             ff.check,
		Stdout:            ff.stdout,
		Diff:              ff.diff,
		Backup:            cfg.Backups,
		PreserveTimestamp: cfg.PreserveTimestamp,
		Recursive:         cfg.Recurse,
		Extensions:        cfg.Extensions,
		Jobs:              cfg.Jobs,
		Options: format.Options{
			IndentWidth:  cfg.IndentWidth,
			MaxLineWidth: cfg.MaxLineWidth,
		},
	}
	if cfg.Cache {
		cache, err := fmtcache.Open("scadfmt")
		if err != nil {
			return opts, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func formatStdin(in io.Reader, out, errOut io.Writer, opts driver.FormatOptions, ff fmtFlags) error {
	res := driver.FormatReader(stdinName, in, opts)
	if ff.outputFormat == "json" {
		if err := renderFmtJSON(out, []driver.FormatResult{res}, ff.check); err != nil {
			return err
		}
		if res.Err != nil {
			return reportedError{msg: "failed to format stdin"}
		}
		if ff.check && res.Changed {
			return reportedError{msg: "stdin: formatting changes required"}
		}
		return nil
	}
	if res.Err != nil {
		printFileError(errOut, res, ff.maxDiagnostics)
		return reportedError{msg: "failed to format stdin"}
	}
	switch {
	case ff.check:
		if res.Changed {
			return errors.New("stdin: formatting changes required")
		}
	case ff.diff:
		_, err := io.WriteString(out, res.Diff)
		return err
	default:
		_, err := out.Write(res.Formatted)
		return err
	}
	return nil
}

func formatOnce(ctx context.Context, cmd *cobra.Command, args []string, opts driver.FormatOptions, ff fmtFlags) error {
	files, err := driver.CollectFiles(ctx, args, opts.Recursive, opts.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return driver.ErrNoFiles
	}

	var results []driver.FormatResult
	useUI := len(files) > 1 && !ff.stdout && !ff.diff && ff.outputFormat == "text" && shouldUseTUI(ff.ui)
	if useUI {
		results, err = runFormatWithUI(ctx, "formatting", files, opts)
	} else {
		results, err = driver.FormatFiles(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	switch {
	case ff.outputFormat == "json":
		if err := renderFmtJSON(out, results, ff.check); err != nil {
			return err
		}
		hasErrors, hasChanges = summarize(results)
	case ff.stdout:
		hasErrors = renderFmtStdout(out, errOut, results, ff.maxDiagnostics)
	case ff.diff:
		hasErrors, hasChanges = renderFmtDiff(out, errOut, results, ff.maxDiagnostics)
	default:
		hasErrors, hasChanges = renderFmtText(out, errOut, results, ff.check, ff.quiet, ff.maxDiagnostics)
	}
	if ff.timings {
		printTimings(errOut, driver.Timings(results))
	}

	if hasErrors {
		return reportedError{msg: "failed to format some files"}
	}
	if ff.check && hasChanges {
		return errors.New("formatting changes required")
	}
	return nil
}

func watchPaths(ctx context.Context, cmd *cobra.Command, args []string, cfg config.Config, opts driver.FormatOptions, ff fmtFlags) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	run := func(ctx context.Context, files []string) {
		results, err := driver.FormatFiles(ctx, files, opts)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(errOut, "scadfmt: %v\n", err)
		}
		renderFmtText(out, errOut, results, false, ff.quiet, ff.maxDiagnostics)
	}

	files, err := driver.CollectFiles(ctx, args, opts.Recursive, opts.Extensions)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		run(ctx, files)
	}
	if !ff.quiet {
		fmt.Fprintln(errOut, "watching for changes, press Ctrl+C to stop")
	}
	return watch.Run(ctx, args, watch.Options{
		Recursive: opts.Recursive,
		Match:     cfg.HasExtension,
	}, run)
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}
	return hasErrors, hasChanges
}

func printFileError(w io.Writer, res driver.FormatResult, maxDiagnostics int) {
	red := color.New(color.FgRed, color.Bold)
	var se *format.SyntaxError
	if !errors.As(res.Err, &se) {
		fmt.Fprintf(w, "%s %s: %v\n", red.Sprint("error:"), res.Path, res.Err)
		return
	}
	fmt.Fprintf(w, "%s %v\n", red.Sprint("error:"), se)
	if extra := len(se.Diagnostics) - 1; extra > 0 && maxDiagnostics != 1 {
		fmt.Fprintf(w, "  (%d more diagnostics; run `scadfmt parse %s` for details)\n", extra, res.Path)
	}
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult, maxDiagnostics int) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			printFileError(errOut, res, maxDiagnostics)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtDiff(out, errOut io.Writer, results []driver.FormatResult, maxDiagnostics int) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			printFileError(errOut, res, maxDiagnostics)
			continue
		}
		if res.Changed {
			hasChanges = true
			_, _ = io.WriteString(out, res.Diff)
		}
	}
	return hasErrors, hasChanges
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool, maxDiagnostics int) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			printFileError(errOut, res, maxDiagnostics)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
			continue
		}
		line := "reformatted " + res.Path
		if res.Backup != "" {
			line += " (backup " + res.Backup + ")"
		}
		fmt.Fprintln(out, line)
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Cached   bool   `json:"cached,omitempty"`
		Backup   string `json:"backup,omitempty"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, Backup: res.Backup, CheckRun: check}
		if res.Err != nil {
			jr.Error = strings.TrimSpace(res.Err.Error())
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
