package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ScanOptions configures which entries of a directory are returned.
type ScanOptions struct {
	// Glob is a filepath.Match pattern matched against the full filename
	Glob string
	// SkipHidden drops names starting with "." as shell globbing does
	SkipHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the paths of all matched regular files, dir joined with name
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// Names returns the base names of the matched files.
func (r *ScanResult) Names() []string {
	names := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		names = append(names, filepath.Base(f))
	}
	return names
}

// ScanDirectory lists the regular files directly inside dir that satisfy opts.
// Subdirectories are never descended into. Symlinks count when they resolve
// to a regular file.
func ScanDirectory(fs afero.Fs, dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	if opts.Glob != "" {
		if _, err := filepath.Match(opts.Glob, ""); err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", opts.Glob, err)
		}
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := &ScanResult{
		Files:  make([]string, 0, len(entries)),
		Errors: make([]error, 0),
	}

	for _, entry := range entries {
		name := entry.Name()
		if opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		regular, err := isRegular(fs, path, entry)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			continue
		}
		if !regular {
			continue
		}

		if opts.Glob != "" {
			if ok, _ := filepath.Match(opts.Glob, name); !ok {
				continue
			}
		}

		result.Files = append(result.Files, path)
	}

	sort.Strings(result.Files)

	return result, nil
}

func isRegular(fs afero.Fs, path string, info os.FileInfo) (bool, error) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular(), nil
	}
	target, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	return target.Mode().IsRegular(), nil
}

// CanonicalDir returns the absolute form of dir with symlinks resolved. When
// resolution fails (the path is gone, say) the cleaned absolute path is used.
// Lock keys and history rows both go through it so that every spelling of a
// directory names the same thing.
func CanonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, nil
}

// IsDir reports whether path exists on fs and is a directory.
func IsDir(fs afero.Fs, path string) bool {
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}

// SplitDirectories partitions paths into existing directories and everything
// else, preserving order.
func SplitDirectories(fs afero.Fs, paths []string) (dirs []string, rejected []string) {
	for _, p := range paths {
		if IsDir(fs, p) {
			dirs = append(dirs, p)
		} else {
			rejected = append(rejected, p)
		}
	}
	return dirs, rejected
}
