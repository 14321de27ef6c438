// Package deps implements the prerequisite gates of the bootstrap flow.
//
// Each prerequisite (git, the Node.js runtime) passes through the same gate:
// check → install → re-check → abort-on-failure. Absence or an insufficient
// version routes to an install attempt; only a failed re-check after that
// attempt is fatal. Installer command sequences are selected from a per-OS
// strategy table rather than nested conditionals.
package deps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chatbridge/bridgeup/internal/model"
	"github.com/chatbridge/bridgeup/internal/shell"
)

// LookPathFunc resolves an executable name against PATH.
type LookPathFunc func(name string) (string, error)

// Checker probes the host for tool presence and versions.
type Checker struct {
	runner   shell.Runner
	lookPath LookPathFunc
}

// NewChecker creates a Checker. A nil lookPath defaults to the real PATH
// lookup; tests inject a fake.
func NewChecker(runner shell.Runner, lookPath LookPathFunc) *Checker {
	if lookPath == nil {
		lookPath = shell.LookPath
	}
	return &Checker{runner: runner, lookPath: lookPath}
}

// Tool reports presence and, when versionArg is non-empty, the version
// string of a named executable. A tool that is present but fails its
// version query is still reported present — the version is informational
// except where a gate parses it.
func (c *Checker) Tool(ctx context.Context, name, versionArg string) model.ToolStatus {
	path, err := c.lookPath(name)
	if err != nil {
		return model.ToolStatus{Name: name}
	}

	status := model.ToolStatus{Name: name, Present: true, Path: path}
	if versionArg != "" {
		if out, err := c.runner.Output(ctx, "", name, versionArg); err == nil {
			// Tools like git print "git version 2.43.0"; node prints
			// "v20.11.1". Keep the first line verbatim.
			status.Version = firstLine(out)
		}
	}
	return status
}

// NodeSatisfies checks whether the installed Node.js runtime meets the
// minimum major version. It returns the observed version string alongside
// the verdict so callers can report it. An absent runtime or an unparsable
// version string both count as unsatisfied, never as an error: the gate
// treats them as "needs install".
func (c *Checker) NodeSatisfies(ctx context.Context, minMajor int) (bool, string) {
	if _, err := c.lookPath("node"); err != nil {
		return false, ""
	}
	out, err := c.runner.Output(ctx, "", "node", "--version")
	if err != nil {
		return false, ""
	}
	version := firstLine(out)
	major, err := ParseMajor(version)
	if err != nil {
		return false, version
	}
	return major >= minMajor, version
}

// ParseMajor extracts the major version number from a version string such
// as "v18.0.0", "20.11.1", or "v22". A leading "v"/"V" is tolerated.
func ParseMajor(version string) (int, error) {
	v := strings.TrimSpace(version)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if v == "" {
		return 0, fmt.Errorf("empty version string")
	}
	majorStr, _, _ := strings.Cut(v, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return 0, fmt.Errorf("cannot parse major version from %q: %w", version, err)
	}
	return major, nil
}

// firstLine returns the first line of s, trimmed. Version probes sometimes
// emit trailing noise (npm funding notices and the like).
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
