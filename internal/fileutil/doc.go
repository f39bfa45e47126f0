// Package fileutil provides flat directory listing over an afero filesystem.
//
// Every scan is non-recursive: only entries directly inside the given
// directory are considered, and only regular files (or symlinks to regular
// files) are returned. Paths are built by joining the directory argument with
// each entry name, so callers never depend on the process working directory.
//
// # Filtering
//
// ScanOptions narrows the listing:
//   - Glob: a filepath.Match pattern matched against the whole filename
//   - SkipHidden: ignore dot-files, matching how a shell expands "*"
//
// # Usage
//
//	result, err := fileutil.ScanDirectory(afero.NewOsFs(), "/work/asm", fileutil.ScanOptions{
//	    Glob: "*.log*",
//	})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
//
// # Errors
//
// A missing directory, a path that is not a directory, or an invalid glob
// fails the whole scan. An entry that cannot be resolved (for example a
// dangling symlink) is recorded in ScanResult.Errors and skipped.
//
// CanonicalDir gives the absolute, symlink-resolved form of a directory and is
// used wherever a directory needs a stable identity.
//
// Output is sorted so repeated scans of an unchanged directory are identical.
package fileutil
