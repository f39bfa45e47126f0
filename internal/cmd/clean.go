package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/creoclean/internal/config"
	"github.com/harrison/creoclean/internal/display"
	"github.com/harrison/creoclean/internal/filelock"
	"github.com/harrison/creoclean/internal/history"
	"github.com/harrison/creoclean/internal/logger"
	"github.com/harrison/creoclean/internal/scrub"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const defaultConfigName = config.DefaultConfigFile

// runClean executes the root command
func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var (
		logLevelPtr  *string
		logDirPtr    *string
		dryRunPtr    *bool
		lockPtr      *bool
		historyPtr   *bool
		logLevelFlag string
		logDirFlag   string
		dryRunFlag   bool
		noLock       bool
		noHistory    bool
	)
	if cmd.Flags().Changed("log") {
		logLevelFlag, _ = cmd.Flags().GetString("log")
		logLevelPtr = &logLevelFlag
	}
	if cmd.Flags().Changed("log-dir") {
		logDirFlag, _ = cmd.Flags().GetString("log-dir")
		logDirPtr = &logDirFlag
	}
	if cmd.Flags().Changed("dry-run") {
		dryRunFlag, _ = cmd.Flags().GetBool("dry-run")
		dryRunPtr = &dryRunFlag
	}
	if cmd.Flags().Changed("no-lock") {
		noLock, _ = cmd.Flags().GetBool("no-lock")
		lock := !noLock
		lockPtr = &lock
	}
	if cmd.Flags().Changed("no-history") {
		noHistory, _ = cmd.Flags().GetBool("no-history")
		enabled := !noHistory
		historyPtr = &enabled
	}
	cfg.MergeWithFlags(logLevelPtr, logDirPtr, dryRunPtr, lockPtr, historyPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLog, err := buildLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.DryRun {
		log.LogInfo("DRY RUN, no files will be deleted or renamed")
	}

	opts := scrub.Options{DryRun: cfg.DryRun}
	if cfg.Lock && !cfg.DryRun {
		opts.Lock = filelock.NewDirLocker(cfg.LockDir).TryLock
	}
	cleaner := scrub.NewCleaner(afero.NewOsFs(), log, opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirs := cleaner.ResolveTargets(args)
	started := time.Now()
	reports, cleanErr := cleaner.Clean(ctx, dirs)

	out := cmd.OutOrStdout()
	display.PrintSummary(out, reports, cfg.DryRun, logger.IsTerminal(out))

	if cfg.History.Enabled && !cfg.DryRun && len(reports) > 0 {
		if err := recordHistory(ctx, cfg, reports, started); err != nil {
			log.LogWarn(fmt.Sprintf("recording history failed: %v", err))
		}
	}

	if cleanErr != nil {
		return fmt.Errorf("interrupted after %d of %d directories: %w", len(reports), len(dirs), cleanErr)
	}
	return nil
}

// loadConfig reads --config when given, otherwise the default file in the
// current directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildLogger returns the console logger, fanned out to a run log file when a
// log directory is configured. The returned func closes the file logger.
func buildLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.EffectiveLogLevel())
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, "debug")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run log: %w", err)
	}
	console.LogInfo(fmt.Sprintf("writing run log to '%s'", fileLog.Path()))
	closeFn := func() {
		if err := fileLog.Close(); err != nil {
			console.LogWarn(fmt.Sprintf("closing run log failed: %v", err))
		}
	}
	return logger.NewMultiLogger(console, fileLog), closeFn, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, reports []scrub.DirectoryReport, at time.Time) error {
	dbPath, err := cfg.GetHistoryDBPath()
	if err != nil {
		return err
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	// An interrupted run still records the directories it finished.
	return store.Record(context.WithoutCancel(ctx), history.EntriesFromReports(history.NewRunID(), reports, at))
}
