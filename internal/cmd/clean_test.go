package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/creoclean/internal/filelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_CollapsesAndSweeps(t *testing.T) {
	configPath := isolate(t)
	dir := cadDir(t,
		"bracket.prt.1", "bracket.prt.2", "bracket.prt.3",
		"housing.prt.5",
		"top.asm.2", "top.asm.4",
		"trail.txt.12", "std.out.log", "session.m_p", "notes.md",
	)

	stdout, _, err := executeCommand(t, "--config", configPath, "--no-lock", "--no-history", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"bracket.prt.1", "housing.prt.1", "notes.md", "top.asm.1"}, dirNames(t, dir))

	content, err := os.ReadFile(filepath.Join(dir, "bracket.prt.1"))
	require.NoError(t, err)
	assert.Equal(t, "bracket.prt.3", string(content))

	assert.Contains(t, stdout, "Summary:")
	assert.Contains(t, stdout, dir+": 6 removed, 3 renamed, 1 unchanged, 0 failed")
}

func TestClean_DryRunChangesNothing(t *testing.T) {
	configPath := isolate(t)
	names := []string{"a.prt.1", "a.prt.2", "b.prt.7", "run.log.1"}
	dir := cadDir(t, names...)

	stdout, stderr, err := executeCommand(t, "--config", configPath, "-d", dir)
	require.NoError(t, err)

	assert.Equal(t, names, dirNames(t, dir))
	assert.Contains(t, stderr, "DRY RUN, no files will be deleted or renamed")
	assert.Contains(t, stderr, "would remove 'a.prt.1'")
	assert.Contains(t, stderr, "would rename 'a.prt.2' to 'a.prt.1'")
	assert.Contains(t, stderr, "would rename 'b.prt.7' to 'b.prt.1'")
	assert.Contains(t, stdout, "Summary (dry run, nothing changed):")

	// Dry runs leave no trace in the history database.
	stdout, _, err = executeCommand(t, "history", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No cleanups recorded yet.")
}

func TestClean_DefaultLevelHidesInfo(t *testing.T) {
	configPath := isolate(t)
	dir := cadDir(t, "a.prt.1", "a.prt.2")

	_, stderr, err := executeCommand(t, "--config", configPath, "--no-lock", "--no-history", dir)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "removing")

	dir = cadDir(t, "a.prt.1", "a.prt.2")
	_, stderr, err = executeCommand(t, "--config", configPath, "--no-lock", "--no-history", "--log", "info", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "removing 'a.prt.1'")
	assert.Contains(t, stderr, "cleaning up versioned files in '"+dir+"'")
}

func TestClean_InvalidLogLevel(t *testing.T) {
	configPath := isolate(t)

	_, _, err := executeCommand(t, "--config", configPath, "--log", "loud", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestClean_SkipsNonDirectories(t *testing.T) {
	configPath := isolate(t)
	dir := cadDir(t, "a.prt.1", "a.prt.2")
	notADir := filepath.Join(dir, "a.prt.1")

	stdout, _, err := executeCommand(t, "--config", configPath, "--no-lock", "--no-history",
		notADir, filepath.Join(dir, "missing"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.prt.1", "a.prt.2"}, dirNames(t, dir))
	assert.Contains(t, stdout, "No directories to clean.")
}

func TestClean_LockedDirectoryIsSkipped(t *testing.T) {
	t.Setenv("CREOCLEAN_HOME", t.TempDir())
	lockDir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "creoclean.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("lock_dir: "+lockDir+"\nhistory:\n  enabled: false\n"), 0644))

	dir := cadDir(t, "a.prt.1", "a.prt.2")

	unlock, acquired, err := filelock.NewDirLocker(lockDir).TryLock(dir)
	require.NoError(t, err)
	require.True(t, acquired)
	defer unlock()

	stdout, stderr, err := executeCommand(t, "--config", configPath, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.prt.1", "a.prt.2"}, dirNames(t, dir))
	assert.Contains(t, stderr, "is being cleaned by another process")
	assert.Contains(t, stdout, "skipped, locked by another process")
}

func TestClean_WritesRunLog(t *testing.T) {
	configPath := isolate(t)
	logDir := filepath.Join(t.TempDir(), "logs")
	dir := cadDir(t, "a.prt.1", "a.prt.2")

	_, stderr, err := executeCommand(t, "--config", configPath, "--no-lock", "--no-history", "--log", "info", "--log-dir", logDir, dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "writing run log to '"+logDir)

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "removing 'a.prt.1'")
	assert.Contains(t, string(data), "renaming 'a.prt.2' to 'a.prt.1'")
}
