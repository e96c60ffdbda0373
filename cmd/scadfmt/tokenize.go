package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scadfmt/internal/diagfmt"
	"scadfmt/internal/driver"
	"scadfmt/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.scad",
	Short: "Tokenize an OpenSCAD source file",
	Long:  `Tokenize prints every token of a file, comments and blank-line runs included`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	stop := timer.Start("tokenize")
	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	stop(fmt.Sprintf("%d tokens", result.Stream.Len()))

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColorFor(cmd, os.Stderr),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Stream, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Stream, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if timings {
		printFileTimings(os.Stderr, filePath, timer.Report())
	}
	if result.Bag.HasErrors() {
		return reportedError{msg: "lexical errors"}
	}
	return nil
}
