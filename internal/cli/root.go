// Package cli implements the cobra commands for bridgeup.
//
// The root command with no arguments runs the full bootstrap flow — that is
// the primary surface, matching how operators are told to use the tool
// ("just run bridgeup"). Subcommands (doctor, update, uninstall) cover the
// maintenance surface and each live in their own file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/ui"
)

// Global flag variables bound to persistent flags on the root command.
var (
	// jsonOutput switches doctor output to structured JSON.
	jsonOutput bool

	// verbose enables step-by-step trace output on stderr.
	verbose bool
)

// version, commit, and date are injected from the main package, which gets
// them from ldflags at build time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// Running it with no arguments performs the full bootstrap flow.
func NewRootCommand() *cobra.Command {
	flags := &bootstrapFlags{}

	rootCmd := &cobra.Command{
		Use:   "bridgeup",
		Short: "Bootstrap the ChatBridge application on this machine",
		Long: `bridgeup installs everything ChatBridge needs on this machine:

  1. Detects the operating system (macOS, Linux, WSL, Windows)
  2. Ensures git and Node.js (>= 18) are installed
  3. Clones or updates the ChatBridge repository under your home directory
  4. Installs its dependencies and the companion CLI
  5. Hands off to ChatBridge's interactive setup wizard

Run it with no arguments. Re-running is safe: existing installs are
updated, not replaced.`,

		Args: cobra.NoArgs,

		// We format errors and usage ourselves; cobra's automatic output
		// doubles everything up.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format where supported")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Assume yes at interactive prompts")
	rootCmd.Flags().StringVar(&flags.dir, "dir", "", "Install directory (default: ~/chatbridge)")
	rootCmd.Flags().StringVar(&flags.branch, "branch", "", "Branch to clone (default: remote default branch)")
	rootCmd.Flags().BoolVar(&flags.skipCLI, "skip-cli", false, "Skip installing the companion CLI")
	rootCmd.Flags().BoolVar(&flags.noWizard, "no-wizard", false, "Skip the setup wizard handoff")

	rootCmd.AddCommand(NewDoctorCommand())
	rootCmd.AddCommand(NewUpdateCommand())
	rootCmd.AddCommand(NewUninstallCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process exit
// codes. CLIError carries its own code; anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}
		printError(err.Error(), nil)
		os.Exit(int(model.ExitFailure))
	}
}

// printError writes an error to stderr using the console error annotation.
func printError(message string, underlying error) {
	if underlying != nil {
		ui.Errorf("%s: %v", message, underlying)
	} else {
		ui.Errorf("%s", message)
	}
}

// VerboseLog prints a trace line to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
