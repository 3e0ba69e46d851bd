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

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runVip(t, binaryPath, home, "settings", "set", "--inhale", "5s", "--exhale", "7s")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runVip(t, binaryPath, home, "settings", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "inhale           = 5s")
	assert.Contains(t, stdout, "exhale           = 7s")

	stdout, stderr, err = runVip(t, binaryPath, home, "history", "stats")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "sessions: 0")

	stdout, stderr, err = runVip(t, binaryPath, home, "script", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "conclusion")
}

func TestSmokeEnvOverridesHistoryPath(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	historyPath := filepath.Join(t.TempDir(), "history.toml")
	require.NoError(t, os.WriteFile(historyPath, []byte(`version = 1

[[sessions]]
id = "s-1"
type = "15min"
start_time = "2026-03-14T06:30:00Z"
duration_seconds = 900
completed = true
`), 0o600))

	cmd := exec.Command(binaryPath, "history", "stats")
	cmd.Env = append(os.Environ(), "HOME="+home, "VIP_HISTORY_PATH="+historyPath, "VIP_LOG_LEVEL=error")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "sessions: 1")
	assert.Contains(t, string(output), "minutes:  15")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "vip-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/vip")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build vip binary: %s", string(output))
	return binaryPath
}

func runVip(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
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
