package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestConfigShowDefaults(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "enabled                  = true")
	assert.Contains(t, stdout, "inactive_timeout_minutes = 1440")
	assert.Contains(t, stdout, "check_interval_seconds   = 60")
	assert.Contains(t, stdout, "log_history              = true")
	assert.Contains(t, stdout, "log_to_file              = false")
	assert.Contains(t, stdout, "max_history_entries      = 50")
}

func TestConfigSetRoundTrip(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "set", "inactive_timeout_minutes", "120")
	require.NoError(t, err)
	assert.Contains(t, stdout, "inactive_timeout_minutes = 120")

	stdout, _, err = executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "inactive_timeout_minutes = 120")
	// Untouched settings keep their defaults.
	assert.Contains(t, stdout, "check_interval_seconds   = 60")
}

func TestConfigSetRejectsInvalidValue(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "set", "check_interval_seconds", "0")
	require.ErrorIs(t, err, domain.ErrInvalidSettings)

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "check_interval_seconds   = 60")
}

func TestConfigSetUnknownKey(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "config", "set", "bogus_key", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestHistoryEmpty(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No closed tabs recorded.")
}

func TestHistoryShowsMostRecentFirst(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeStateFixture(home))

	stdout, _, err := executeCLI(t, home, "history")
	require.NoError(t, err)

	notesAt := strings.Index(stdout, "notes")
	scratchAt := strings.Index(stdout, "scratch")
	require.NotEqual(t, -1, notesAt)
	require.NotEqual(t, -1, scratchAt)
	assert.Less(t, notesAt, scratchAt, "newest entry should render first")
	assert.Contains(t, stdout, "/home/me/notes.md")
}

func TestHistoryExportGroupsByDate(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeStateFixture(home))

	stdout, _, err := executeCLI(t, home, "history", "export")
	require.NoError(t, err)

	recentAt := strings.Index(stdout, "2026-08-23")
	olderAt := strings.Index(stdout, "2026-08-22")
	require.NotEqual(t, -1, recentAt)
	require.NotEqual(t, -1, olderAt)
	assert.Less(t, recentAt, olderAt, "most recent date should come first")
	assert.Contains(t, stdout, "notes")
	assert.Contains(t, stdout, "scratch")
}

func TestHistoryClearConfirmed(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeStateFixture(home))

	stdout, _, err := executeCLI(t, home, "history", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleared 2 entries.")

	stdout, _, err = executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No closed tabs recorded.")
}

func TestHistoryClearAbortedAtPrompt(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeStateFixture(home))

	stdout, _, err := executeCLIWithInput(t, home, "n\n", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Aborted.")

	stdout, _, err = executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "notes")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeStateFixture(home string) error {
	stateDir := filepath.Join(home, ".config", "auto-close-tabs")
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return err
	}

	state := `version = 1

[[history]]
closed_at = "2026-08-22T10:15:00Z"
title = "scratch"
inactive_seconds = 5400

[[history]]
closed_at = "2026-08-23T09:00:00Z"
title = "notes"
inactive_seconds = 3600
file_path = "/home/me/notes.md"
`

	return os.WriteFile(filepath.Join(stateDir, "state.toml"), []byte(state), 0o600)
}
