// Package gitrepo keeps the ChatBridge checkout in sync.
//
// The package wraps the git CLI (via os/exec) to clone the application
// repository on first run and fast-forward it on subsequent runs. We shell
// out to `git` rather than using a Go Git implementation because the
// operator's git handles credentials, proxies, and transport configuration
// that a library would have to reimplement.
//
// Failure policy is asymmetric on purpose: a fast-forward that cannot be
// applied (diverged local history, offline host) is tolerated and reported
// as part of the result, because an existing checkout is still usable. A
// failed clone leaves nothing usable and is fatal.
package gitrepo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chatbridge/bridgeup/internal/model"
)

// Syncer performs clone-or-update operations against one remote repository.
type Syncer struct {
	// RepoURL is the clone URL of the application repository.
	RepoURL string

	// Branch, when non-empty, is passed to `git clone --branch`. Empty
	// means the remote's default branch.
	Branch string
}

// NewSyncer creates a Syncer for the given remote.
func NewSyncer(repoURL, branch string) *Syncer {
	return &Syncer{RepoURL: repoURL, Branch: branch}
}

// Result describes what Sync did.
type Result struct {
	// Cloned is true when a fresh clone was performed.
	Cloned bool

	// PullErr holds the tolerated fast-forward failure on the update
	// path, nil when the pull succeeded or a clone was performed.
	PullErr error

	// Head is the commit the checkout points to after the sync.
	Head string
}

// Sync brings the install directory up to date.
//
// If dir already holds a checkout, it attempts `git pull --ff-only` and
// tolerates failure (the checkout is never deleted or rolled back). If dir
// does not exist, it performs a fresh clone; that failure is fatal. A dir
// that exists but is not a git checkout is also fatal — silently cloning
// over operator data is worse than stopping.
func (s *Syncer) Sync(dir string) (Result, error) {
	switch State(dir) {
	case model.CheckoutPresent:
		return s.update(dir)
	case model.CheckoutNotRepo:
		return Result{}, model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("%s exists but is not a git checkout; move it aside and re-run", dir))
	default:
		return s.clone(dir)
	}
}

// update fast-forwards an existing checkout. Any pull failure is captured
// in the result, not returned as an error.
func (s *Syncer) update(dir string) (Result, error) {
	res := Result{}
	if _, err := runGit(dir, "pull", "--ff-only"); err != nil {
		res.PullErr = err
	}
	res.Head, _ = s.Head(dir)
	return res, nil
}

// clone performs a fresh clone into dir. The parent directory is created
// as needed; git creates dir itself.
func (s *Syncer) clone(dir string) (Result, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return Result{}, model.WrapCLIError(model.ExitFailure, "cannot create install directory parent", err)
	}

	args := []string{"clone"}
	if s.Branch != "" {
		args = append(args, "--branch", s.Branch)
	}
	args = append(args, s.RepoURL, dir)

	// Run in the parent so a relative dir resolves sensibly. Clone output
	// streams via the captured stderr only on failure; progress is not
	// interesting enough to stream for a one-shot bootstrap.
	if _, err := runGit(filepath.Dir(dir), args...); err != nil {
		return Result{}, err
	}

	res := Result{Cloned: true}
	res.Head, _ = s.Head(dir)
	return res, nil
}

// Head returns the commit SHA the checkout currently points to.
func (s *Syncer) Head(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the short name of the checked-out branch, or
// "HEAD" in a detached state.
func (s *Syncer) CurrentBranch(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// State classifies the install directory: missing, a git checkout, or a
// directory that is something else entirely.
func State(dir string) model.CheckoutState {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return model.CheckoutMissing
	}
	// Both a .git directory (normal clone) and a .git file (worktree or
	// submodule checkout) count as a checkout.
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return model.CheckoutNotRepo
	}
	return model.CheckoutPresent
}

// runGit executes a git command in the given directory via `git -C` and
// returns its stdout. On failure the error is a model.CLIError whose
// message includes git's stderr for diagnostics.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", model.WrapCLIError(model.ExitFailure, message, err)
	}
	return stdout.String(), nil
}
