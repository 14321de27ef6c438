// Package project manages the ChatBridge checkout after it is on disk:
// installing its npm dependencies, reading its package.json manifest,
// installing the companion CLI, and handing off to the setup wizard.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// manifestFile is the npm manifest at the root of the checkout.
const manifestFile = "package.json"

// SetupScript is the npm script name of the interactive setup wizard.
const SetupScript = "setup"

// Manifest is the subset of package.json the bootstrap flow reads: the
// engines constraint (to cross-check the installed runtime) and the
// scripts table (to confirm the setup wizard exists).
type Manifest struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Engines map[string]string `json:"engines"`
	Scripts map[string]string `json:"scripts"`
}

// LoadManifest reads and parses package.json from the checkout root.
//
// The file is run through a JSONC conversion first. package.json is plain
// JSON upstream, but forks and patched checkouts in the wild carry comments
// and trailing commas; tolerating them costs nothing and the strict parse
// still applies afterwards.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return &m, nil
}

// NodeMajorRequirement extracts the minimum Node.js major version from the
// engines.node constraint, when one is declared. Constraints come in many
// shapes (">=18.0.0", "^20.3.0", "18.x", ">=18 <21"); we only need the
// first number, which in every conventional form is the lowest acceptable
// major.
func (m *Manifest) NodeMajorRequirement() (int, bool) {
	constraint, ok := m.Engines["node"]
	if !ok {
		return 0, false
	}

	start := -1
	for i, r := range constraint {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(constraint) && constraint[end] >= '0' && constraint[end] <= '9' {
		end++
	}

	major, err := strconv.Atoi(constraint[start:end])
	if err != nil {
		return 0, false
	}
	return major, true
}

// HasSetupScript reports whether the manifest declares the setup wizard
// script the handoff step invokes.
func (m *Manifest) HasSetupScript() bool {
	script, ok := m.Scripts[SetupScript]
	return ok && strings.TrimSpace(script) != ""
}
