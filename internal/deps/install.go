package deps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/platform"
	"github.com/chatbridge/bridgeup/internal/shell"
	"github.com/chatbridge/bridgeup/internal/ui"
)

// Strategy is one way of installing a tool on a given platform: a shell
// one-liner guarded by an availability probe. Strategies for a tool/OS
// pair are tried in declaration order and the first available one wins —
// there is no fallback to the next strategy after a failed install, only
// the gate's single re-check.
type Strategy struct {
	// Name identifies the package manager or installer for messages
	// (e.g., "homebrew", "apt", "nvm").
	Name string

	// RequiresBinary, when non-empty, is an executable that must be on
	// PATH for this strategy to be usable.
	RequiresBinary string

	// RequiresFile, when non-empty, is a file that must exist for this
	// strategy to be usable (e.g., the nvm shell function script).
	RequiresFile string

	// Script is the bash one-liner that performs the install.
	Script string
}

// Installer drives the check → install → re-check gates for the
// prerequisite tools.
type Installer struct {
	runner   shell.Runner
	checker  *Checker
	lookPath LookPathFunc
	osTag    model.OS
	home     string
}

// NewInstaller creates an Installer for the given platform. A nil lookPath
// defaults to the real PATH lookup.
func NewInstaller(runner shell.Runner, checker *Checker, lookPath LookPathFunc, osTag model.OS, home string) *Installer {
	if lookPath == nil {
		lookPath = shell.LookPath
	}
	return &Installer{
		runner:   runner,
		checker:  checker,
		lookPath: lookPath,
		osTag:    osTag,
		home:     home,
	}
}

// EnsureGit makes sure a git client is on PATH, installing one if needed.
// A failed install attempt followed by a failed re-check is fatal.
func (i *Installer) EnsureGit(ctx context.Context) error {
	if _, err := i.lookPath("git"); err == nil {
		ui.Successf("git is installed")
		return nil
	}

	ui.Warnf("git not found, installing...")
	if err := i.install(ctx, "git", gitStrategies(i.osTag)); err != nil {
		return err
	}

	if _, err := i.lookPath("git"); err != nil {
		return model.NewCLIError(model.ExitFailure, "git is still missing after the install attempt")
	}
	ui.Successf("git installed")
	return nil
}

// EnsureNode makes sure the Node.js runtime is on PATH at or above the
// given major version, installing or upgrading it if needed. After an
// install, the process PATH is refreshed from the well-known install
// prefixes before the re-check, standing in for re-sourcing the shell
// profile.
func (i *Installer) EnsureNode(ctx context.Context, minMajor int) error {
	if ok, version := i.checker.NodeSatisfies(ctx, minMajor); ok {
		ui.Successf("Node.js %s satisfies the minimum (v%d)", version, minMajor)
		return nil
	} else if version != "" {
		ui.Warnf("Node.js %s is below the minimum (v%d), upgrading...", version, minMajor)
	} else {
		ui.Warnf("Node.js not found, installing...")
	}

	if err := i.install(ctx, "Node.js", nodeStrategies(i.osTag, i.home)); err != nil {
		return err
	}

	// The package manager may have put node somewhere only a fresh login
	// shell would see. Refresh PATH before re-checking.
	platform.RefreshPath(i.home)

	ok, version := i.checker.NodeSatisfies(ctx, minMajor)
	if !ok {
		if version == "" {
			return model.NewCLIError(model.ExitFailure, "Node.js is still missing after the install attempt")
		}
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("Node.js %s is still below the minimum (v%d) after the install attempt", version, minMajor))
	}
	ui.Successf("Node.js %s installed", version)
	// Our own PATH was refreshed; the operator's shell was not.
	ui.Infof("if node is not visible in other terminals, reload %s",
		strings.Join(platform.ProfilePaths(i.home), " or "))
	return nil
}

// install picks the first available strategy for the tool and runs it.
// The installer command streams to the terminal: package managers prompt
// for sudo passwords and show their own progress.
func (i *Installer) install(ctx context.Context, tool string, strategies []Strategy) error {
	strategy, ok := i.selectStrategy(strategies)
	if !ok {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("no supported way to install %s on %s (no known package manager found)", tool, i.osTag))
	}

	ui.Infof("installing %s via %s", tool, strategy.Name)
	if err := i.runner.Script(ctx, "", strategy.Script); err != nil {
		// Not fatal yet — the gate's re-check decides. Some installers
		// exit non-zero on cosmetic post-install steps.
		ui.Warnf("%s installer exited with an error: %v", strategy.Name, err)
	}
	return nil
}

// selectStrategy returns the first strategy whose availability requirements
// are met on this host.
func (i *Installer) selectStrategy(strategies []Strategy) (Strategy, bool) {
	for _, s := range strategies {
		if s.RequiresBinary != "" {
			if _, err := i.lookPath(s.RequiresBinary); err != nil {
				continue
			}
		}
		if s.RequiresFile != "" {
			if _, err := os.Stat(s.RequiresFile); err != nil {
				continue
			}
		}
		return s, true
	}
	return Strategy{}, false
}

// gitStrategies is the per-OS dispatch table for installing a git client.
func gitStrategies(osTag model.OS) []Strategy {
	switch osTag {
	case model.OSMacOS:
		return []Strategy{
			{Name: "homebrew", RequiresBinary: "brew", Script: "brew install git"},
			// Without Homebrew, the Xcode CLT installer pops a GUI dialog
			// and provides git once accepted.
			{Name: "xcode-select", RequiresBinary: "xcode-select", Script: "xcode-select --install"},
		}
	case model.OSLinux, model.OSWSL:
		return []Strategy{
			{Name: "apt", RequiresBinary: "apt-get", Script: "sudo apt-get update && sudo apt-get install -y git"},
			{Name: "dnf", RequiresBinary: "dnf", Script: "sudo dnf install -y git"},
			{Name: "pacman", RequiresBinary: "pacman", Script: "sudo pacman -S --noconfirm git"},
			{Name: "zypper", RequiresBinary: "zypper", Script: "sudo zypper install -y git"},
		}
	case model.OSWindows:
		return []Strategy{
			{Name: "winget", RequiresBinary: "winget", Script: "winget install --id Git.Git -e --source winget"},
		}
	default:
		return nil
	}
}

// nodeStrategies is the per-OS dispatch table for installing the Node.js
// runtime. Preference order: the version manager the operator already has,
// then the platform package manager, then the vendor-provided installer.
func nodeStrategies(osTag model.OS, home string) []Strategy {
	nvmScript := filepath.Join(home, ".nvm", "nvm.sh")
	nvmInstall := Strategy{
		Name:         "nvm",
		RequiresFile: nvmScript,
		Script:       fmt.Sprintf(`source %q && nvm install 22 && nvm alias default 22`, nvmScript),
	}

	switch osTag {
	case model.OSMacOS:
		return []Strategy{
			nvmInstall,
			{Name: "homebrew", RequiresBinary: "brew", Script: "brew install node@22 && brew link --overwrite node@22"},
		}
	case model.OSLinux, model.OSWSL:
		return []Strategy{
			nvmInstall,
			{
				Name:           "apt + NodeSource",
				RequiresBinary: "apt-get",
				Script:         "curl -fsSL https://deb.nodesource.com/setup_22.x | sudo -E bash - && sudo apt-get install -y nodejs",
			},
			{
				Name:           "dnf + NodeSource",
				RequiresBinary: "dnf",
				Script:         "curl -fsSL https://rpm.nodesource.com/setup_22.x | sudo -E bash - && sudo dnf install -y nodejs",
			},
			{Name: "pacman", RequiresBinary: "pacman", Script: "sudo pacman -S --noconfirm nodejs npm"},
		}
	case model.OSWindows:
		return []Strategy{
			{Name: "winget", RequiresBinary: "winget", Script: "winget install --id OpenJS.NodeJS.LTS -e --source winget"},
		}
	default:
		return nil
	}
}
