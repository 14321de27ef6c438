// Package shell executes external commands for the bootstrap flow.
//
// Every step of the flow is a shell-out to some external tool (git, node,
// npm, a package manager). This package centralizes how those commands are
// spawned: streamed to the operator's terminal for interactive steps, or
// captured quietly for probes whose output we parse. Install one-liners that
// rely on shell features (pipes, `source`, &&) run through `bash -lc` so the
// operator's login environment is in effect.
//
// The Runner interface exists so the prerequisite gates can be exercised in
// tests with a recording fake instead of a real package manager.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. dir is the working directory; an empty
// dir means the process's current directory.
type Runner interface {
	// Run executes a command with stdin/stdout/stderr attached to the
	// terminal. Used for interactive and long-running steps (npm install,
	// package managers prompting for sudo passwords).
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes a command quietly and returns its trimmed stdout.
	// On failure the error includes captured stderr.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Script executes a shell one-liner via `bash -lc` with the terminal
	// attached. Used for installer commands that need pipes or `source`.
	Script(ctx context.Context, dir, script string) error
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// New returns the production command runner.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	// #nosec G204 — command names and args come from the strategy tables,
	// not from operator input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	// #nosec G204 — see Run
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", errors.New(msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Script implements Runner.
//
// -l makes bash behave as a login shell so profile-provided PATH entries
// (Homebrew, nvm) are visible to the installer command.
func (r *ExecRunner) Script(ctx context.Context, dir, script string) error {
	cmd := exec.CommandContext(ctx, "bash", "-lc", script)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// LookPath resolves an executable name against PATH. A thin wrapper kept
// here so callers inject it alongside the Runner in tests.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
