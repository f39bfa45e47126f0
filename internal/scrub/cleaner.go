package scrub

import (
	"context"
	"fmt"

	"github.com/harrison/creoclean/internal/fileutil"
	"github.com/harrison/creoclean/internal/logger"
	"github.com/spf13/afero"
)

// LockFunc tries to take an exclusive lock on dir. acquired is false when
// another process holds it. unlock is only called when acquired is true.
type LockFunc func(dir string) (unlock func() error, acquired bool, err error)

// Options configures a Cleaner.
type Options struct {
	DryRun bool
	// Patterns overrides DefaultAuxiliaryPatterns when non-empty.
	Patterns []AuxiliaryPattern
	// Lock guards each directory for the duration of its passes. Nil means no
	// locking.
	Lock LockFunc
}

// Cleaner runs the version collapser and then the auxiliary sweeper over each
// target directory, one directory at a time.
type Cleaner struct {
	fs        afero.Fs
	log       logger.Logger
	opts      Options
	collapser *Collapser
	sweeper   *Sweeper
}

// NewCleaner creates a Cleaner over fs.
func NewCleaner(fs afero.Fs, log logger.Logger, opts Options) *Cleaner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Cleaner{
		fs:        fs,
		log:       log,
		opts:      opts,
		collapser: NewCollapser(fs, log, opts.DryRun),
		sweeper:   NewSweeper(fs, log, opts.DryRun, opts.Patterns),
	}
}

// ResolveTargets returns the directories worth cleaning. No arguments means
// the current directory; arguments that are not existing directories are
// dropped with a debug message.
func (c *Cleaner) ResolveTargets(args []string) []string {
	if len(args) == 0 {
		args = []string{"."}
	}
	dirs, rejected := fileutil.SplitDirectories(c.fs, args)
	for _, r := range rejected {
		c.log.LogDebug(fmt.Sprintf("skipping '%s': not a directory", r))
	}
	return dirs
}

// Clean processes dirs sequentially. Cancellation is checked between
// directories; a directory that has started is always finished. The returned
// error is only ever ctx.Err().
func (c *Cleaner) Clean(ctx context.Context, dirs []string) ([]DirectoryReport, error) {
	reports := make([]DirectoryReport, 0, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, c.CleanDirectory(dir))
	}
	return reports, nil
}

// CleanDirectory runs both passes over dir.
func (c *Cleaner) CleanDirectory(dir string) DirectoryReport {
	report := DirectoryReport{Dir: dir}

	if c.opts.Lock != nil {
		unlock, acquired, err := c.opts.Lock(dir)
		switch {
		case err != nil:
			c.log.LogWarn(fmt.Sprintf("locking '%s' failed: %v; continuing unlocked", dir, err))
		case !acquired:
			c.log.LogWarn(fmt.Sprintf("'%s' is being cleaned by another process; skipping", dir))
			report.Locked = true
			return report
		default:
			defer func() {
				if err := unlock(); err != nil {
					c.log.LogWarn(fmt.Sprintf("unlocking '%s' failed: %v", dir, err))
				}
			}()
		}
	}

	c.log.LogInfo(fmt.Sprintf("cleaning up versioned files in '%s'", dir))
	report.Versioned = c.collapser.Collapse(dir)

	c.log.LogInfo(fmt.Sprintf("cleaning up miscellaneous files in '%s'", dir))
	report.Auxiliary = c.sweeper.Sweep(dir)

	return report
}
