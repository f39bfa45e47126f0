package scrub

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testDir = "/cad"

// recordingLogger keeps every message with its level.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (r *recordingLogger) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, level+": "+msg)
}

func (r *recordingLogger) LogDebug(msg string) { r.add("DEBUG", msg) }
func (r *recordingLogger) LogInfo(msg string)  { r.add("INFO", msg) }
func (r *recordingLogger) LogWarn(msg string)  { r.add("WARN", msg) }
func (r *recordingLogger) LogError(msg string) { r.add("ERROR", msg) }

func (r *recordingLogger) count(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func (r *recordingLogger) contains(entry string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e == entry {
			return true
		}
	}
	return false
}

// failingFs wraps an afero.Fs and fails Remove/Rename for chosen base names.
type failingFs struct {
	afero.Fs
	failRemove map[string]bool
	failRename map[string]bool
}

func (f *failingFs) Remove(name string) error {
	if f.failRemove[filepath.Base(name)] {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Remove(name)
}

func (f *failingFs) Rename(oldname, newname string) error {
	if f.failRename[filepath.Base(oldname)] {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}

// newWorkspace creates testDir on a memory fs holding files whose content is
// their own name.
func newWorkspace(t *testing.T, names ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0755))
	for _, name := range names {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, name), []byte(name), 0644))
	}
	return fs
}

// listing returns "name=content" for every file in testDir, sorted.
func listing(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, testDir)
	require.NoError(t, err)

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name()+"/")
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(testDir, e.Name()))
		require.NoError(t, err)
		out = append(out, fmt.Sprintf("%s=%s", e.Name(), data))
	}
	sort.Strings(out)
	return out
}

func writeFile(fs afero.Fs, path string) error {
	return afero.WriteFile(fs, path, []byte(filepath.Base(path)), 0644)
}
