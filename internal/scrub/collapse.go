package scrub

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/harrison/creoclean/internal/fileutil"
	"github.com/harrison/creoclean/internal/logger"
	"github.com/spf13/afero"
)

// minCohortSize is the number of files an extension needs before any of its
// files are touched.
const minCohortSize = 2

// Collapser reduces each family of versioned files to its newest member,
// renamed to version 1.
type Collapser struct {
	fs     afero.Fs
	log    logger.Logger
	dryRun bool
}

// NewCollapser creates a Collapser. A nil logger discards output.
func NewCollapser(fs afero.Fs, log logger.Logger, dryRun bool) *Collapser {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Collapser{fs: fs, log: log, dryRun: dryRun}
}

// Collapse processes the regular files directly inside dir.
//
// Files are grouped by extension; an extension with fewer than two files is
// left alone. Within an extension, each base name keeps only its highest
// version, which is then renamed to version 1. Individual remove or rename
// failures are logged as warnings and recorded in the report; they never stop
// the pass.
func (c *Collapser) Collapse(dir string) Report {
	var report Report

	scan, err := fileutil.ScanDirectory(c.fs, dir, fileutil.ScanOptions{})
	if err != nil {
		c.log.LogWarn(fmt.Sprintf("listing '%s' failed: %v", dir, err))
		return report
	}
	for _, scanErr := range scan.Errors {
		c.log.LogDebug(scanErr.Error())
	}

	names := scan.Names()
	c.log.LogInfo(fmt.Sprintf("found %d files", len(names)))

	byExt := make(map[string][]VersionedName)
	for _, name := range names {
		if v, ok := ParseVersionedName(name); ok {
			byExt[v.Ext] = append(byExt[v.Ext], v)
		}
	}

	for _, ext := range sortedKeys(byExt) {
		cohort := byExt[ext]
		if len(cohort) < minCohortSize {
			c.log.LogInfo(fmt.Sprintf("not enough '%s' files; skipping", ext))
			report.Skipped += len(cohort)
			continue
		}
		c.log.LogInfo(fmt.Sprintf("found %d '%s' files", len(cohort), ext))

		byBase := make(map[string][]VersionedName)
		for _, v := range cohort {
			byBase[v.Base] = append(byBase[v.Base], v)
		}
		c.log.LogInfo(fmt.Sprintf("found %d unique '%s' file names", len(byBase), ext))

		for _, base := range sortedKeys(byBase) {
			c.collapseGroup(dir, byBase[base], &report)
		}
	}

	return report
}

// collapseGroup handles one base-name group: every version but the highest is
// removed, then the survivor is renamed to version 1.
func (c *Collapser) collapseGroup(dir string, group []VersionedName, report *Report) {
	sortVersions(group)

	for _, v := range group[:len(group)-1] {
		c.remove(dir, v.Name, report)
	}

	survivor := group[len(group)-1]
	target := survivor.WithVersion(1).Name
	if survivor.Name == target {
		report.record(OpRename, filepath.Join(dir, target), Skipped, nil)
		return
	}
	c.rename(dir, survivor.Name, target, report)
}

func (c *Collapser) remove(dir, name string, report *Report) {
	path := filepath.Join(dir, name)
	if c.dryRun {
		c.log.LogInfo(fmt.Sprintf("would remove '%s'", name))
		report.record(OpRemove, path, Succeeded, nil)
		return
	}

	c.log.LogInfo(fmt.Sprintf("removing '%s'", name))
	if err := c.fs.Remove(path); err != nil {
		c.log.LogWarn(fmt.Sprintf("removing '%s' failed: %v", name, err))
		report.record(OpRemove, path, Failed, err)
		return
	}
	report.record(OpRemove, path, Succeeded, nil)
}

func (c *Collapser) rename(dir, from, to string, report *Report) {
	oldPath := filepath.Join(dir, from)
	if c.dryRun {
		c.log.LogInfo(fmt.Sprintf("would rename '%s' to '%s'", from, to))
		report.record(OpRename, oldPath, Succeeded, nil)
		return
	}

	c.log.LogInfo(fmt.Sprintf("renaming '%s' to '%s'", from, to))
	if err := c.fs.Rename(oldPath, filepath.Join(dir, to)); err != nil {
		c.log.LogWarn(fmt.Sprintf("renaming '%s' failed: %v", from, err))
		report.record(OpRename, oldPath, Failed, err)
		return
	}
	report.record(OpRename, oldPath, Succeeded, nil)
}

// sortVersions orders a group by numeric version. Equal versions (only
// possible with leading zeros, e.g. "a.prt.1" and "a.prt.01") fall back to the
// on-disk name so the order is still deterministic.
func sortVersions(group []VersionedName) {
	sort.Slice(group, func(i, j int) bool {
		if group[i].Version != group[j].Version {
			return group[i].Version < group[j].Version
		}
		return group[i].Name < group[j].Name
	})
}

func sortedKeys(m map[string][]VersionedName) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
