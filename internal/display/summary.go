package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/creoclean/internal/scrub"
)

// PrintSummary writes one line per directory followed by a warning block for
// any failed operations.
func PrintSummary(out io.Writer, reports []scrub.DirectoryReport, dryRun bool, useColor bool) {
	if len(reports) == 0 {
		fmt.Fprintln(out, "No directories to clean.")
		return
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)
	for _, c := range []*color.Color{green, red, cyan} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	header := "Summary:"
	removed, renamed := "removed", "renamed"
	if dryRun {
		header = "Summary (dry run, nothing changed):"
		removed, renamed = "to remove", "to rename"
	}
	fmt.Fprintln(out, header)

	var failures []string
	for _, r := range reports {
		label := cyan.Sprint(r.Dir)
		if r.Locked {
			fmt.Fprintf(out, "  %s: skipped, locked by another process\n", label)
			continue
		}

		total := r.Combined()
		if total.Total() == 0 {
			fmt.Fprintf(out, "  %s: nothing to clean\n", label)
			continue
		}
		failed := fmt.Sprintf("%d failed", total.Failed)
		if total.Failed > 0 {
			failed = red.Sprint(failed)
		}
		fmt.Fprintf(out, "  %s: %s %s, %s %s, %d unchanged, %s\n",
			label,
			green.Sprint(total.Deleted), removed,
			green.Sprint(total.Renamed), renamed,
			total.Skipped,
			failed,
		)

		for _, f := range total.Failures {
			failures = append(failures, f.Error())
		}
	}

	if len(failures) > 0 {
		noun := "operation"
		if len(failures) != 1 {
			noun = "operations"
		}
		Warning{
			Title:      fmt.Sprintf("%d file %s failed", len(failures), noun),
			Files:      failures,
			Suggestion: "Close the files in Creo or fix their permissions, then run creoclean again.",
		}.Display(out, useColor)
	}
}
