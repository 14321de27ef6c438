// Package model defines the domain types shared across the bridgeup CLI.
//
// bridgeup keeps no persistent state of its own — everything here is a
// transient, process-local representation of the host environment as observed
// during a single run (detected OS, tool versions, checkout location).
package model

import (
	"fmt"
	"strings"
)

// OS is the classification of the host operating system as far as the
// bootstrap flow cares about it. WSL is deliberately distinct from plain
// Linux: package-manager selection is the same, but the operator-facing
// messaging and shell profile handling differ.
type OS string

const (
	// OSMacOS is any Darwin host.
	OSMacOS OS = "macos"

	// OSLinux is a native Linux host (not running under WSL).
	OSLinux OS = "linux"

	// OSWSL is Linux running under the Windows Subsystem for Linux.
	// Detected from virtualization markers in the kernel version string.
	OSWSL OS = "wsl"

	// OSWindows is native Windows.
	OSWindows OS = "windows"

	// OSUnknown is any host we could not classify. It is a valid terminal
	// classification: the bootstrap flow aborts on it rather than guessing.
	OSUnknown OS = "unknown"
)

// String returns the string representation of the OS tag.
func (o OS) String() string {
	return string(o)
}

// IsValid checks whether the OS value is one of the defined classifications.
func (o OS) IsValid() bool {
	switch o {
	case OSMacOS, OSLinux, OSWSL, OSWindows, OSUnknown:
		return true
	default:
		return false
	}
}

// Supported reports whether the bootstrap flow can proceed on this OS.
// Only OSUnknown is unsupported — every recognized platform has at least
// one installer strategy.
func (o OS) Supported() bool {
	return o.IsValid() && o != OSUnknown
}

// ParseOS converts a string to an OS tag.
// Returns an error if the string does not match any defined classification.
func ParseOS(s string) (OS, error) {
	os := OS(strings.ToLower(s))
	if !os.IsValid() {
		return "", fmt.Errorf("invalid OS tag: %q (valid: macos, linux, wsl, windows, unknown)", s)
	}
	return os, nil
}

// ToolStatus describes one external tool as observed on the host.
// Doctor output and the Ensure gates both produce these.
type ToolStatus struct {
	// Name is the executable name looked up on PATH (e.g., "git", "node").
	Name string `json:"name"`

	// Present indicates the executable was found on PATH.
	Present bool `json:"present"`

	// Path is the resolved executable path, empty when absent.
	Path string `json:"path,omitempty"`

	// Version is the raw version string reported by the tool
	// (e.g., "v20.11.1"). Empty when absent or not queried.
	Version string `json:"version,omitempty"`
}

// CheckoutState describes the install directory.
type CheckoutState string

const (
	// CheckoutMissing means the install directory does not exist yet;
	// a fresh clone is required.
	CheckoutMissing CheckoutState = "missing"

	// CheckoutPresent means the install directory holds a git checkout.
	CheckoutPresent CheckoutState = "present"

	// CheckoutNotRepo means the directory exists but is not a git checkout.
	// The sync step refuses to touch it.
	CheckoutNotRepo CheckoutState = "not-a-repository"
)

// DoctorReport is the aggregate produced by the doctor command.
// It is shaped for direct JSON serialization under --json.
type DoctorReport struct {
	OS             OS            `json:"os"`
	Arch           string        `json:"arch"`
	Tools          []ToolStatus  `json:"tools"`
	InstallDir     string        `json:"installDir"`
	Checkout       CheckoutState `json:"checkout"`
	CheckoutHead   string        `json:"checkoutHead,omitempty"`
	CheckoutBranch string        `json:"checkoutBranch,omitempty"`
	DockerRunning  bool          `json:"dockerRunning"`
}

// ExitCode defines the process exit codes of the CLI. The surface is
// deliberately small: scripts wrapping bridgeup only need to distinguish
// "completed" from "gave up".
type ExitCode int

const (
	// ExitSuccess indicates normal completion, including the operator
	// declining the final setup-wizard prompt.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates an unsupported OS, a prerequisite that could
	// not be installed, or a failed clone — any unrecoverable condition.
	ExitFailure ExitCode = 1
)

// CLIError is an error that carries an exit code. The CLI layer translates
// it into the process exit status; everything below it just returns errors.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
