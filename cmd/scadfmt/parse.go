package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scadfmt/internal/diag"
	"scadfmt/internal/diagfmt"
	"scadfmt/internal/driver"
	"scadfmt/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.scad",
	Short: "Parse an OpenSCAD source file and print its syntax tree",
	Long: `Parse prints the concrete syntax tree the formatter works on.
Diagnostics go to stderr; with --format diag only diagnostics are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|diag)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format (pretty|json|short)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return err
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
	stop := timer.Start("parse")
	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	stop("")

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		result.Bag.Dedup()
		if err := printDiagnostics(cmd, result, diagFormat); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(out, result.AST, result.File.Path)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.AST)
	case "diag":
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
		return reportedError{msg: "syntax errors"}
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, result *driver.ParseResult, diagFormat string) error {
	errOut := cmd.ErrOrStderr()
	switch diagFormat {
	case "pretty":
		diagfmt.Pretty(errOut, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColorFor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(errOut, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	case "short":
		_, err := fmt.Fprintln(errOut, diag.FormatShort(result.Bag.Items(), result.FileSet, true))
		return err
	default:
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}
}
