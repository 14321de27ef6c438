package gitrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatbridge/bridgeup/internal/model"
)

// setupOriginRepo creates a temporary git repository with one commit to act
// as the remote for clone/pull tests. Local paths are valid git clone URLs,
// so no network is involved.
//
// It configures a repo-local user identity so `git commit` works in CI
// environments without a global git config.
func setupOriginRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runTestGit(t, dir, "init", "--initial-branch=main")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# ChatBridge\n"), 0o644))
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// addOriginCommit creates one more commit in the origin repository and
// returns its SHA.
func addOriginCommit(t *testing.T, origin, name string) string {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(origin, name), []byte(name+"\n"), 0o644))
	runTestGit(t, origin, "add", ".")
	runTestGit(t, origin, "commit", "-m", "add "+name)
	out := runTestGit(t, origin, "rev-parse", "HEAD")
	return string(out[:40])
}

// runTestGit runs a git command in dir and fails the test on any error.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// TestSync_FreshClone verifies that a missing install directory produces a
// clone at the expected path with the origin's head checked out.
func TestSync_FreshClone(t *testing.T) {
	origin := setupOriginRepo(t)
	dir := filepath.Join(t.TempDir(), "chatbridge")

	s := NewSyncer(origin, "")
	res, err := s.Sync(dir)
	require.NoError(t, err)

	assert.True(t, res.Cloned)
	assert.NoError(t, res.PullErr)
	assert.Equal(t, model.CheckoutPresent, State(dir))

	originHead := runTestGit(t, origin, "rev-parse", "HEAD")
	assert.Equal(t, string(originHead[:40]), res.Head)
}

// TestSync_CloneFailureIsFatal verifies that a clone from a nonexistent
// remote returns an error carrying exit code 1 and creates no checkout.
func TestSync_CloneFailureIsFatal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chatbridge")

	s := NewSyncer(filepath.Join(t.TempDir(), "no-such-remote"), "")
	_, err := s.Sync(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitFailure, cliErr.Code)
	assert.Equal(t, model.CheckoutMissing, State(dir))
}

// TestSync_FastForward verifies the update path: an existing checkout is
// advanced to the origin's new head and never re-cloned.
func TestSync_FastForward(t *testing.T) {
	origin := setupOriginRepo(t)
	dir := filepath.Join(t.TempDir(), "chatbridge")

	s := NewSyncer(origin, "")
	_, err := s.Sync(dir)
	require.NoError(t, err)

	newHead := addOriginCommit(t, origin, "feature.txt")

	res, err := s.Sync(dir)
	require.NoError(t, err)
	assert.False(t, res.Cloned)
	assert.NoError(t, res.PullErr)
	assert.Equal(t, newHead, res.Head)
}

// TestSync_DivergedHistoryTolerated verifies the deliberate asymmetry: a
// fast-forward that cannot be applied is reported in the result but is not
// an error, and the checkout is left in place on its local head.
func TestSync_DivergedHistoryTolerated(t *testing.T) {
	origin := setupOriginRepo(t)
	dir := filepath.Join(t.TempDir(), "chatbridge")

	s := NewSyncer(origin, "")
	_, err := s.Sync(dir)
	require.NoError(t, err)

	// Diverge: one new commit on each side.
	addOriginCommit(t, origin, "origin-side.txt")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local-side.txt"), []byte("local\n"), 0o644))
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "local commit")
	localHead := runTestGit(t, dir, "rev-parse", "HEAD")

	res, err := s.Sync(dir)
	require.NoError(t, err, "a failed fast-forward must not be fatal")
	assert.False(t, res.Cloned)
	assert.Error(t, res.PullErr)

	// The checkout still exists on its own head.
	assert.Equal(t, model.CheckoutPresent, State(dir))
	assert.Equal(t, string(localHead[:40]), res.Head)
}

// TestSync_RefusesNonRepoDirectory verifies that an existing directory
// without a .git entry stops the flow instead of being clobbered.
func TestSync_RefusesNonRepoDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "precious.txt"), []byte("do not delete\n"), 0o644))

	s := NewSyncer(setupOriginRepo(t), "")
	_, err := s.Sync(dir)
	require.Error(t, err)

	// The operator's data is untouched.
	_, statErr := os.Stat(filepath.Join(dir, "precious.txt"))
	assert.NoError(t, statErr)
}

// TestState covers the three checkout classifications.
func TestState(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, model.CheckoutMissing, State(filepath.Join(t.TempDir(), "nope")))
	})

	t.Run("not a repo", func(t *testing.T) {
		assert.Equal(t, model.CheckoutNotRepo, State(t.TempDir()))
	})

	t.Run("present", func(t *testing.T) {
		assert.Equal(t, model.CheckoutPresent, State(setupOriginRepo(t)))
	})
}

// TestCurrentBranch verifies branch reporting on a fresh clone.
func TestCurrentBranch(t *testing.T) {
	origin := setupOriginRepo(t)
	dir := filepath.Join(t.TempDir(), "chatbridge")

	s := NewSyncer(origin, "")
	_, err := s.Sync(dir)
	require.NoError(t, err)

	branch, err := s.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}
