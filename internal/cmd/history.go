package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harrison/creoclean/internal/fileutil"
	"github.com/harrison/creoclean/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'creoclean history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cleanup runs",
		Long: `Display the most recent cleanups recorded in the history database,
newest first. Each row is one directory in one run. Dry runs are never
recorded.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().String("config", "", "Path to config file (default: ./"+defaultConfigName+")")
	cmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	cmd.Flags().String("dir", "", "Only show cleanups of this directory")

	return cmd
}

// runHistory executes the history command
func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath, err := cfg.GetHistoryDBPath()
	if err != nil {
		return fmt.Errorf("failed to get history database path: %w", err)
	}

	// Don't create an empty database just to report that it is empty
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(output, "No cleanups recorded yet.")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		canonical, err := fileutil.CanonicalDir(dir)
		if err != nil {
			return fmt.Errorf("resolve directory: %w", err)
		}
		dir = canonical
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := store.Recent(ctx, limit, dir)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(output, "No cleanups recorded yet.")
		return nil
	}

	printHistory(output, entries)
	return nil
}

// printHistory formats entries one per line
func printHistory(w io.Writer, entries []*history.Entry) {
	cyan := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	cyan.Fprintf(w, "%-19s  %-8s  %7s  %7s  %7s  %6s  %s\n",
		"TIME", "RUN", "REMOVED", "RENAMED", "SKIPPED", "FAILED", "DIRECTORY")

	for _, e := range entries {
		runID := e.RunID
		if len(runID) > 8 {
			runID = runID[:8]
		}
		fmt.Fprintf(w, "%-19s  %-8s  ", e.Timestamp.Local().Format("2006-01-02 15:04:05"), runID)

		if e.Locked {
			yellow.Fprintf(w, "%-7s  %7s  %7s  %6s", "locked", "-", "-", "-")
		} else {
			fmt.Fprintf(w, "%7d  %7d  %7d  ", e.Deleted, e.Renamed, e.Skipped)
			if e.Failed > 0 {
				red.Fprintf(w, "%6d", e.Failed)
			} else {
				fmt.Fprintf(w, "%6d", e.Failed)
			}
		}
		fmt.Fprintf(w, "  %s\n", e.Directory)
	}
}
