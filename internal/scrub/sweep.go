package scrub

import (
	"fmt"
	"path/filepath"

	"github.com/harrison/creoclean/internal/fileutil"
	"github.com/harrison/creoclean/internal/logger"
	"github.com/spf13/afero"
)

// AuxiliaryPattern names a kind of disposable file and the glob that finds it.
type AuxiliaryPattern struct {
	Name string
	Glob string
}

// DefaultAuxiliaryPatterns are the trail, log and cache files Creo leaves in a
// working directory. Patterns overlap on purpose ("x.log.xml" matches both log
// entries) and each match is handled on its own.
var DefaultAuxiliaryPatterns = []AuxiliaryPattern{
	{Name: "log", Glob: "*.log*"},
	{Name: "log.xml", Glob: "*log.xml"},
	{Name: "inf", Glob: "*.inf.*"},
	{Name: "txt", Glob: "*.txt.*"},
	{Name: "m_p", Glob: "*.m_p"},
	{Name: "x_t", Glob: "*.x_t"},
}

// Sweeper deletes every file matching a fixed set of auxiliary patterns.
type Sweeper struct {
	fs       afero.Fs
	log      logger.Logger
	dryRun   bool
	patterns []AuxiliaryPattern
}

// NewSweeper creates a Sweeper. Empty patterns means DefaultAuxiliaryPatterns.
func NewSweeper(fs afero.Fs, log logger.Logger, dryRun bool, patterns []AuxiliaryPattern) *Sweeper {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if len(patterns) == 0 {
		patterns = DefaultAuxiliaryPatterns
	}
	return &Sweeper{fs: fs, log: log, dryRun: dryRun, patterns: patterns}
}

// Sweep matches every pattern against dir and removes the union of the
// matches. A file matched by two patterns appears twice and is removed twice;
// the second attempt fails and is logged like any other failure.
func (s *Sweeper) Sweep(dir string) Report {
	var report Report
	var matches []string

	for _, p := range s.patterns {
		scan, err := fileutil.ScanDirectory(s.fs, dir, fileutil.ScanOptions{
			Glob:       p.Glob,
			SkipHidden: true,
		})
		if err != nil {
			s.log.LogWarn(fmt.Sprintf("matching '%s' in '%s' failed: %v", p.Glob, dir, err))
			continue
		}
		s.log.LogInfo(fmt.Sprintf("%d %s files found.", len(scan.Files), p.Name))
		matches = append(matches, scan.Names()...)
	}

	for _, name := range matches {
		path := filepath.Join(dir, name)
		if s.dryRun {
			s.log.LogInfo(fmt.Sprintf("would remove '%s'", name))
			report.record(OpRemove, path, Succeeded, nil)
			continue
		}

		s.log.LogInfo(fmt.Sprintf("removing '%s'", name))
		if err := s.fs.Remove(path); err != nil {
			s.log.LogWarn(fmt.Sprintf("removing '%s' failed: %v", name, err))
			report.record(OpRemove, path, Failed, err)
			continue
		}
		report.record(OpRemove, path, Succeeded, nil)
	}

	return report
}
