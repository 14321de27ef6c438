package project

import (
	"context"

	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/shell"
)

// NPM runs npm operations for the checkout and the companion CLI.
type NPM struct {
	runner shell.Runner
}

// NewNPM creates an NPM helper backed by the given runner.
func NewNPM(runner shell.Runner) *NPM {
	return &NPM{runner: runner}
}

// InstallDeps installs the checkout's npm dependencies. Output streams to
// the terminal: npm installs are long and the operator should see progress.
// Failure is fatal — a checkout without dependencies cannot run the wizard.
func (n *NPM) InstallDeps(ctx context.Context, dir string) error {
	if err := n.runner.Run(ctx, dir, "npm", "install"); err != nil {
		return model.WrapCLIError(model.ExitFailure, "npm install failed", err)
	}
	return nil
}

// InstallGlobal installs an npm package globally (the companion CLI).
// It runs quietly — callers wrap it in a spinner — and errors are returned
// plain, not as CLIError: the companion CLI is an optional step and the
// caller downgrades failure to a warning.
func (n *NPM) InstallGlobal(ctx context.Context, pkg string) error {
	_, err := n.runner.Output(ctx, "", "npm", "install", "-g", pkg)
	return err
}

// UninstallGlobal removes a globally installed npm package.
func (n *NPM) UninstallGlobal(ctx context.Context, pkg string) error {
	return n.runner.Run(ctx, "", "npm", "uninstall", "-g", pkg)
}

// RunSetup hands off to the project's interactive setup wizard with the
// terminal fully attached. The wizard owns the session from here; bridgeup
// only reports its exit status.
func (n *NPM) RunSetup(ctx context.Context, dir string) error {
	if err := n.runner.Run(ctx, dir, "npm", "run", SetupScript); err != nil {
		return model.WrapCLIError(model.ExitFailure, "setup wizard exited with an error", err)
	}
	return nil
}
