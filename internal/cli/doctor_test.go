package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatbridge/bridgeup/internal/config"
	"github.com/chatbridge/bridgeup/internal/model"
)

// setupCheckout creates a temporary git repository with one commit on main,
// standing in for an existing ChatBridge install directory. A repo-local
// user identity keeps `git commit` working without a global config.
func setupCheckout(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runDoctorGit(t, dir, "init", "--initial-branch=main")
	runDoctorGit(t, dir, "config", "user.email", "test@example.com")
	runDoctorGit(t, dir, "config", "user.name", "Test User")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# ChatBridge\n"), 0o644))
	runDoctorGit(t, dir, "add", ".")
	runDoctorGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

func runDoctorGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
}

// TestGatherReport_PresentCheckout probes a real checkout and verifies the
// report surfaces its state, head, and current branch alongside the tool
// probes. Docker availability is host-dependent and not asserted.
func TestGatherReport_PresentCheckout(t *testing.T) {
	checkout := setupCheckout(t)
	cfg := config.Config{
		InstallDir: checkout,
		RepoURL:    checkout,
		CLIBinary:  "chatbridge",
	}

	report := gatherReport(context.Background(), cfg)

	assert.True(t, report.OS.IsValid())
	assert.Equal(t, model.CheckoutPresent, report.Checkout)
	assert.NotEmpty(t, report.CheckoutHead)
	assert.Equal(t, "main", report.CheckoutBranch)
	assert.Len(t, report.Tools, 4)
	assert.Equal(t, "git", report.Tools[0].Name)
}

// TestGatherReport_MissingCheckout verifies that head and branch stay empty
// when there is nothing to inspect.
func TestGatherReport_MissingCheckout(t *testing.T) {
	cfg := config.Config{
		InstallDir: filepath.Join(t.TempDir(), "does-not-exist"),
		RepoURL:    "https://github.com/chatbridge/chatbridge.git",
		CLIBinary:  "chatbridge",
	}

	report := gatherReport(context.Background(), cfg)

	assert.Equal(t, model.CheckoutMissing, report.Checkout)
	assert.Empty(t, report.CheckoutHead)
	assert.Empty(t, report.CheckoutBranch)
}
