// Package cli — uninstall.go implements the "bridgeup uninstall" command.
//
// Uninstall removes what bridgeup put on the machine: the checkout and the
// companion CLI. It does not touch git, Node.js, or anything a package
// manager installed — those are shared host tools, not ours to remove.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatbridge/bridgeup/internal/config"
	"github.com/chatbridge/bridgeup/internal/deps"
	"github.com/chatbridge/bridgeup/internal/gitrepo"
	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/project"
	"github.com/chatbridge/bridgeup/internal/shell"
	"github.com/chatbridge/bridgeup/internal/ui"
)

// uninstallFlags holds the uninstall command's flag values.
type uninstallFlags struct {
	assumeYes bool // --yes: skip the confirmation prompt
}

// NewUninstallCommand creates the "uninstall" cobra command.
func NewUninstallCommand() *cobra.Command {
	flags := &uninstallFlags{}

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the ChatBridge checkout and companion CLI",
		Long: `Remove the ChatBridge install directory and uninstall the companion CLI.

Prerequisite tools (git, Node.js) are left alone.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runUninstall(ctx context.Context, flags *uninstallFlags) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "cannot determine home directory", err)
	}
	cfg, err := config.Load(config.Path(home), home)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "invalid configuration", err)
	}

	if gitrepo.State(cfg.InstallDir) == model.CheckoutMissing {
		ui.Infof("nothing to remove at %s", cfg.InstallDir)
	} else {
		if !flags.assumeYes &&
			!ui.AskYesNo(os.Stdin, "Remove "+cfg.InstallDir+" and everything in it?", false) {
			ui.Infof("leaving the checkout alone")
			return nil
		}
		if err := os.RemoveAll(cfg.InstallDir); err != nil {
			return model.WrapCLIError(model.ExitFailure, "cannot remove "+cfg.InstallDir, err)
		}
		ui.Successf("removed %s", cfg.InstallDir)
	}

	runner := shell.New()
	checker := deps.NewChecker(runner, nil)
	if checker.Tool(ctx, cfg.CLIBinary, "").Present {
		npm := project.NewNPM(runner)
		if err := npm.UninstallGlobal(ctx, cfg.CLIPackage); err != nil {
			ui.Warnf("could not uninstall %s (%v); remove it with: npm uninstall -g %s",
				cfg.CLIPackage, err, cfg.CLIPackage)
		} else {
			ui.Successf("companion CLI removed")
		}
	}

	return nil
}
