package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scadfmt/internal/logutil"
	"scadfmt/internal/prof"
	"scadfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "scadfmt [flags] [path...]",
	Short: "Formatter for OpenSCAD source files",
	Long: `scadfmt rewrites OpenSCAD sources into a canonical layout.
Without paths it reads stdin and writes the formatted text to stdout.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setupGlobals,
	RunE:              runFormat,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error), default $"+logutil.EnvLevel+" or error")

	// Профилирование, скрыто из справки
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")
	for _, name := range []string{"cpu-profile", "mem-profile", "runtime-trace"} {
		_ = rootCmd.PersistentFlags().MarkHidden(name)
	}
}

// profiling is the active profiler session, flushed by main on exit.
var profiling *prof.Session

// main запускает CLI; любая ошибка команды завершает процесс с кодом 1.
func main() {
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	if stopErr := profiling.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "scadfmt: profiling: %v\n", stopErr)
	}
	if err != nil {
		if !errorReported(err) {
			fmt.Fprintf(os.Stderr, "scadfmt: %v\n", err)
		}
		os.Exit(1)
	}
}

func setupGlobals(cmd *cobra.Command, _ []string) error {
	level, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return err
	}
	if _, err := logutil.Configure(level); err != nil {
		return err
	}

	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return setupProfiling(cmd)
}

func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUProfile, err = flags.GetString("cpu-profile"); err != nil {
		return err
	}
	if cfg.MemProfile, err = flags.GetString("mem-profile"); err != nil {
		return err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if !cfg.Enabled() || profiling != nil {
		return nil
	}
	profiling, err = prof.Start(cfg)
	return err
}

// useColorFor reports whether diagnostics written to f should be colored.
func useColorFor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// reportedError marks an error whose details were already printed.
type reportedError struct{ msg string }

func (e reportedError) Error() string { return e.msg }

func errorReported(err error) bool {
	var re reportedError
	return errors.As(err, &re)
}
