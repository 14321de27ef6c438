// Package cli — bootstrap.go implements the default (root) operation:
// the full linear bootstrap flow.
//
// State machine:
//
//	DetectOS → {abort if unknown} → EnsureGit → EnsureNode →
//	SyncRepo → InstallProjectDeps → EnsureCompanionCLI (optional) →
//	PromptHandoff → {RunSetupWizard | End}
//
// Every transition is unconditional forward progress. The two Ensure gates
// loop exactly once (check → install → re-check → abort-on-failure); the
// companion CLI step is best-effort and degrades to a warning.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/chatbridge/bridgeup/internal/config"
	"github.com/chatbridge/bridgeup/internal/deps"
	"github.com/chatbridge/bridgeup/internal/gitrepo"
	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/platform"
	"github.com/chatbridge/bridgeup/internal/project"
	"github.com/chatbridge/bridgeup/internal/shell"
	"github.com/chatbridge/bridgeup/internal/ui"
)

// bootstrapFlags holds the root command's flag values.
type bootstrapFlags struct {
	assumeYes bool   // --yes: answer prompts with their default
	dir       string // --dir: install directory override
	branch    string // --branch: branch override
	skipCLI   bool   // --skip-cli: skip the companion CLI step
	noWizard  bool   // --no-wizard: never launch the setup wizard
}

// runBootstrap executes the whole flow. It returns a CLIError on any
// unrecoverable condition; a declined handoff prompt is a normal return.
func runBootstrap(ctx context.Context, flags *bootstrapFlags) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "cannot determine home directory", err)
	}

	cfg, err := loadConfig(home, flags)
	if err != nil {
		return err
	}

	// Step 1: Detect the platform. Unknown is a valid classification and
	// a hard stop — guessing a package manager on an unknown OS only
	// makes a mess.
	info := platform.Detect()
	if !info.OS.Supported() {
		return model.NewCLIError(model.ExitFailure,
			"unsupported operating system — ChatBridge runs on macOS, Linux, WSL, and Windows")
	}
	ui.Infof("detected %s (%s)", info.OS, info.Arch)

	runner := shell.New()
	checker := deps.NewChecker(runner, nil)
	installer := deps.NewInstaller(runner, checker, nil, info.OS, home)

	// Steps 2 and 3: the prerequisite gates.
	if err := installer.EnsureGit(ctx); err != nil {
		return err
	}
	if err := installer.EnsureNode(ctx, cfg.MinNodeMajor); err != nil {
		return err
	}

	// Step 4: Clone or fast-forward the checkout.
	syncer := gitrepo.NewSyncer(cfg.RepoURL, cfg.Branch)
	VerboseLog("syncing %s into %s", cfg.RepoURL, cfg.InstallDir)
	res, err := syncer.Sync(cfg.InstallDir)
	if err != nil {
		return err
	}
	switch {
	case res.Cloned:
		ui.Successf("cloned ChatBridge into %s", cfg.InstallDir)
	case res.PullErr != nil:
		// Deliberately tolerated: a diverged or offline checkout is still
		// usable, so this never aborts the flow.
		ui.Warnf("could not fast-forward %s (%v); leaving the checkout as-is", cfg.InstallDir, res.PullErr)
	default:
		ui.Successf("updated ChatBridge in %s", cfg.InstallDir)
	}

	// Step 5: Install the project's npm dependencies.
	ui.Infof("installing ChatBridge dependencies (this can take a while)...")
	npm := project.NewNPM(runner)
	if err := npm.InstallDeps(ctx, cfg.InstallDir); err != nil {
		return err
	}
	ui.Successf("dependencies installed")

	// Cross-check the manifest against the installed runtime. Purely
	// informational: the gate already enforced our own minimum.
	checkManifest(ctx, checker, cfg)

	// Step 6: Companion CLI, best-effort.
	if !cfg.SkipCLI {
		ensureCompanionCLI(ctx, checker, npm, cfg)
	} else {
		VerboseLog("companion CLI step skipped")
	}

	// Step 7: Hand off to the setup wizard, or print the manual command.
	return handoff(ctx, npm, cfg, flags)
}

// loadConfig loads the config file and applies flag overrides on top.
func loadConfig(home string, flags *bootstrapFlags) (config.Config, error) {
	cfg, err := config.Load(config.Path(home), home)
	if err != nil {
		return cfg, model.WrapCLIError(model.ExitFailure, "invalid configuration", err)
	}
	if flags.dir != "" {
		cfg.InstallDir = flags.dir
	}
	if flags.branch != "" {
		cfg.Branch = flags.branch
	}
	if flags.skipCLI {
		cfg.SkipCLI = true
	}
	return cfg, nil
}

// checkManifest reads the checkout's package.json and warns when its
// engines constraint asks for a newer runtime than the one installed.
func checkManifest(ctx context.Context, checker *deps.Checker, cfg config.Config) {
	m, err := project.LoadManifest(cfg.InstallDir)
	if err != nil {
		VerboseLog("no readable manifest: %v", err)
		return
	}
	required, declared := m.NodeMajorRequirement()
	if !declared {
		return
	}
	if ok, version := checker.NodeSatisfies(ctx, required); !ok {
		ui.Warnf("ChatBridge declares Node.js >= v%d but %s is installed; the app may refuse to start",
			required, version)
	}
}

// ensureCompanionCLI installs the companion CLI when it is not already on
// PATH. Failure degrades to a warning — the bridge works without it.
func ensureCompanionCLI(ctx context.Context, checker *deps.Checker, npm *project.NPM, cfg config.Config) {
	status := checker.Tool(ctx, cfg.CLIBinary, "--version")
	if status.Present {
		ui.Successf("companion CLI already installed (%s)", status.Version)
		return
	}

	err := ui.Spin("installing the companion CLI ("+cfg.CLIPackage+")...", func() error {
		return npm.InstallGlobal(ctx, cfg.CLIPackage)
	})
	if err != nil {
		ui.Warnf("could not install %s (%v); install it later with: npm install -g %s",
			cfg.CLIPackage, err, cfg.CLIPackage)
		return
	}
	ui.Successf("companion CLI installed")
}

// handoff asks the operator (default: yes) whether to launch the setup
// wizard now. Declining prints the manual command and ends the run
// normally.
func handoff(ctx context.Context, npm *project.NPM, cfg config.Config, flags *bootstrapFlags) error {
	manual := fmt.Sprintf("cd %s && npm run %s", cfg.InstallDir, project.SetupScript)

	if flags.noWizard {
		ui.Infof("setup skipped; run it later with: %s", manual)
		return nil
	}

	run := flags.assumeYes || ui.AskYesNo(os.Stdin, "Run the ChatBridge setup wizard now?", true)
	if !run {
		ui.Infof("run it later with: %s", manual)
		return nil
	}

	ui.Infof("handing off to the ChatBridge setup wizard...")
	return npm.RunSetup(ctx, cfg.InstallDir)
}
