package main

import (
	"fmt"
	"io"

	"scadfmt/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	if _, err := io.WriteString(out, report.Summary()); err != nil {
		panic(err)
	}
}

func printFileTimings(out io.Writer, path string, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "== %s ==\n", path)
	printTimings(out, report)
}
