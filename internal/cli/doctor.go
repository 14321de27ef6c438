// Package cli — doctor.go implements the "bridgeup doctor" command.
//
// Doctor is a read-only report of everything the bootstrap flow would look
// at: platform classification, prerequisite tools, the checkout state, and
// whether a Docker daemon is available for the container-based ChatBridge
// deployment alternative. It never mutates the host and always exits 0.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatbridge/bridgeup/internal/config"
	"github.com/chatbridge/bridgeup/internal/deps"
	"github.com/chatbridge/bridgeup/internal/dockercheck"
	"github.com/chatbridge/bridgeup/internal/gitrepo"
	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/platform"
	"github.com/chatbridge/bridgeup/internal/shell"
)

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report the state of this machine's ChatBridge setup",
		Long: `Report the detected platform, prerequisite tools, checkout state, and
Docker availability without changing anything.

Examples:
  bridgeup doctor
  bridgeup doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

// runDoctor gathers the report and prints it in text or JSON form.
func runDoctor(ctx context.Context) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "cannot determine home directory", err)
	}
	cfg, err := config.Load(config.Path(home), home)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "invalid configuration", err)
	}

	report := gatherReport(ctx, cfg)

	if IsJSONOutput() {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitFailure, "cannot encode report", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printReportText(report)
	return nil
}

// gatherReport probes the host. Every probe is independent; a failing one
// simply shows up as absent/false in the report.
func gatherReport(ctx context.Context, cfg config.Config) model.DoctorReport {
	info := platform.Detect()
	runner := shell.New()
	checker := deps.NewChecker(runner, nil)

	report := model.DoctorReport{
		OS:         info.OS,
		Arch:       info.Arch,
		InstallDir: cfg.InstallDir,
		Checkout:   gitrepo.State(cfg.InstallDir),
	}

	report.Tools = []model.ToolStatus{
		checker.Tool(ctx, "git", "--version"),
		checker.Tool(ctx, "node", "--version"),
		checker.Tool(ctx, "npm", "--version"),
		checker.Tool(ctx, cfg.CLIBinary, "--version"),
	}

	if report.Checkout == model.CheckoutPresent {
		syncer := gitrepo.NewSyncer(cfg.RepoURL, cfg.Branch)
		if head, err := syncer.Head(cfg.InstallDir); err == nil {
			report.CheckoutHead = head
		}
		if branch, err := syncer.CurrentBranch(cfg.InstallDir); err == nil {
			report.CheckoutBranch = branch
		}
	}

	report.DockerRunning = dockercheck.DaemonRunning(ctx)
	return report
}

// printReportText renders the report for a human.
func printReportText(report model.DoctorReport) {
	fmt.Printf("Platform:  %s (%s)\n", report.OS, report.Arch)
	fmt.Println()
	fmt.Println("Tools:")
	for _, tool := range report.Tools {
		if tool.Present {
			version := tool.Version
			if version == "" {
				version = "present"
			}
			fmt.Printf("  %-12s %s\n", tool.Name, version)
		} else {
			fmt.Printf("  %-12s not found\n", tool.Name)
		}
	}
	fmt.Println()
	fmt.Printf("Checkout:  %s (%s)\n", report.InstallDir, report.Checkout)
	if report.CheckoutHead != "" {
		fmt.Printf("Head:      %s\n", report.CheckoutHead)
	}
	if report.CheckoutBranch != "" {
		fmt.Printf("Branch:    %s\n", report.CheckoutBranch)
	}

	dockerState := "not available"
	if report.DockerRunning {
		dockerState = "running"
	}
	fmt.Printf("Docker:    %s\n", dockerState)
}
