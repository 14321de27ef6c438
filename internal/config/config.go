// Package config loads the optional bridgeup configuration file.
//
// bridgeup runs with no arguments and sensible defaults; the config file
// exists for operators who install ChatBridge somewhere unusual or track a
// non-default branch. Precedence is defaults < file < command-line flags
// (flags are applied by the CLI layer after Load returns).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for a stock installation.
const (
	// DefaultRepoURL is the public ChatBridge repository.
	DefaultRepoURL = "https://github.com/chatbridge/chatbridge.git"

	// DefaultInstallDirName is the directory under $HOME that holds the
	// checkout.
	DefaultInstallDirName = "chatbridge"

	// DefaultCLIPackage is the companion CLI's npm package.
	DefaultCLIPackage = "@chatbridge/cli"

	// DefaultCLIBinary is the executable name the companion CLI installs.
	DefaultCLIBinary = "chatbridge"

	// DefaultMinNodeMajor is the minimum Node.js major version.
	DefaultMinNodeMajor = 18
)

// Config holds the tunable parameters of the bootstrap flow.
type Config struct {
	// InstallDir is where the ChatBridge repository is cloned.
	InstallDir string `yaml:"install_dir"`

	// RepoURL is the clone URL of the ChatBridge repository.
	RepoURL string `yaml:"repo_url"`

	// Branch, when non-empty, is the branch to clone. Empty means the
	// remote's default branch.
	Branch string `yaml:"branch"`

	// MinNodeMajor is the minimum Node.js major version the runtime gate
	// enforces.
	MinNodeMajor int `yaml:"min_node_major"`

	// CLIPackage is the npm package of the companion CLI.
	CLIPackage string `yaml:"cli_package"`

	// CLIBinary is the executable name the companion CLI provides, used
	// for the presence check.
	CLIBinary string `yaml:"cli_binary"`

	// SkipCLI disables the companion CLI install step.
	SkipCLI bool `yaml:"skip_cli"`
}

// Defaults returns the stock configuration rooted at the given home
// directory.
func Defaults(home string) Config {
	return Config{
		InstallDir:   filepath.Join(home, DefaultInstallDirName),
		RepoURL:      DefaultRepoURL,
		MinNodeMajor: DefaultMinNodeMajor,
		CLIPackage:   DefaultCLIPackage,
		CLIBinary:    DefaultCLIBinary,
	}
}

// Path returns the conventional config file location under the given home
// directory (~/.config/bridgeup/config.yaml).
func Path(home string) string {
	return filepath.Join(home, ".config", "bridgeup", "config.yaml")
}

// Load returns the defaults for home, overlaid with the config file at
// path when it exists. A missing file is not an error; an unreadable or
// malformed file is — silently ignoring a config the operator wrote leads
// to installs in the wrong place.
func Load(path, home string) (Config, error) {
	cfg := Defaults(home)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	// Unmarshal over the defaults: fields absent from the file keep their
	// default values.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
	}

	if cfg.MinNodeMajor <= 0 {
		cfg.MinNodeMajor = DefaultMinNodeMajor
	}
	return cfg, nil
}
