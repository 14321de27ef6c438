// Package main is the entry point for the bridgeup CLI.
//
// bridgeup bootstraps the ChatBridge application on the operator's machine.
// All functionality lives in the internal/cli package; this binary only
// wires build-time version information into it and executes the root
// command.
package main

import (
	"github.com/chatbridge/bridgeup/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. During development they keep their defaults.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
