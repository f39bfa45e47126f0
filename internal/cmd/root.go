package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for creoclean
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creoclean [dir...]",
		Short: "Clean up Creo working directories",
		Long: `creoclean removes superseded model versions and disposable files from
Creo working directories.

For each directory it first collapses versioned files ("part.prt.1",
"part.prt.2", ...) down to the newest version, renamed to version 1, and then
deletes trail files, logs and geometry caches. With no arguments the current
directory is cleaned.

A directory whose name matches a subcommand ("history", "init-config") runs
that subcommand instead; pass it as "./history" to clean it.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE:    runClean,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Log what would be removed or renamed without touching any file")
	cmd.Flags().String("log", "", "Console log level: debug, info, warning, error (default from config: warning)")
	cmd.Flags().String("config", "", "Path to config file (default: ./"+defaultConfigName+")")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Bool("no-lock", false, "Do not take a per-directory lock")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	// Add subcommands
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewInitConfigCommand())

	return cmd
}
