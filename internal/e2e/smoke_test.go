package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The smoke flow exercises the tmux-free surface: settings round trip
// and the history views against a persisted state file.
func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeStateFixture(home))

	_, stderr, err := runACT(t, binaryPath, home, "config", "set", "inactive_timeout_minutes", "90")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runACT(t, binaryPath, home, "config", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "inactive_timeout_minutes = 90")

	stdout, stderr, err = runACT(t, binaryPath, home, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "notes")

	stdout, stderr, err = runACT(t, binaryPath, home, "history", "export")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "2026-08-23")

	stdout, stderr, err = runACT(t, binaryPath, home, "history", "clear", "--yes")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Cleared 1 entries.")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "act-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/act")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build act binary: %s", string(output))
	return binaryPath
}

func runACT(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeStateFixture(home string) error {
	stateDir := filepath.Join(home, ".config", "auto-close-tabs")
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return err
	}

	state := `version = 1

[[history]]
closed_at = "2026-08-23T09:00:00Z"
title = "notes"
inactive_seconds = 3600
file_path = "/home/me/notes.md"
`

	return os.WriteFile(filepath.Join(stateDir, "state.toml"), []byte(state), 0o600)
}
