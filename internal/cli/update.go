// Package cli — update.go implements the "bridgeup update" command.
//
// Update is the maintenance subset of the bootstrap flow: fast-forward the
// existing checkout and reinstall its dependencies. It does not run the
// prerequisite gates or the wizard — it assumes a completed bootstrap.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatbridge/bridgeup/internal/config"
	"github.com/chatbridge/bridgeup/internal/gitrepo"
	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/project"
	"github.com/chatbridge/bridgeup/internal/shell"
	"github.com/chatbridge/bridgeup/internal/ui"
)

// NewUpdateCommand creates the "update" cobra command.
func NewUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update an existing ChatBridge install",
		Long: `Fast-forward the ChatBridge checkout and reinstall its dependencies.

Requires a completed bootstrap: run plain "bridgeup" first.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context())
		},
	}
}

func runUpdate(ctx context.Context) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "cannot determine home directory", err)
	}
	cfg, err := config.Load(config.Path(home), home)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "invalid configuration", err)
	}

	if gitrepo.State(cfg.InstallDir) != model.CheckoutPresent {
		return model.NewCLIError(model.ExitFailure,
			"no ChatBridge checkout at "+cfg.InstallDir+" — run \"bridgeup\" first")
	}

	syncer := gitrepo.NewSyncer(cfg.RepoURL, cfg.Branch)
	res, err := syncer.Sync(cfg.InstallDir)
	if err != nil {
		return err
	}
	if res.PullErr != nil {
		ui.Warnf("could not fast-forward (%v); dependencies will be reinstalled anyway", res.PullErr)
	} else {
		ui.Successf("checkout at %s", res.Head)
	}

	npm := project.NewNPM(shell.New())
	if err := npm.InstallDeps(ctx, cfg.InstallDir); err != nil {
		return err
	}
	ui.Successf("ChatBridge is up to date")
	return nil
}
