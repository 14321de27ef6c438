// Package ui implements the console contract of the bootstrap flow.
//
// Three informational severities are surfaced to the operator — success,
// warning, and error — purely as colored console annotations, plus a neutral
// info line for step announcements. Long quiet operations get a spinner.
// This is deliberately not a logging framework: the output IS the product
// of an interactive installer.
package ui

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	successc = color.New(color.FgGreen, color.Bold)
	warnc    = color.New(color.FgYellow, color.Bold)
	errorc   = color.New(color.FgRed, color.Bold)
	infoc    = color.New(color.FgCyan, color.Bold)
	promptc  = color.New(color.FgHiMagenta, color.Bold)
)

// Successf prints a green success annotation to stdout.
func Successf(format string, args ...interface{}) {
	successc.Fprintf(os.Stdout, "✔ "+format+"\n", args...)
}

// Warnf prints a yellow warning annotation to stdout. Warnings never stop
// the flow; they flag tolerated failures (e.g., a fast-forward that could
// not be applied).
func Warnf(format string, args ...interface{}) {
	warnc.Fprintf(os.Stdout, "⚠ "+format+"\n", args...)
}

// Errorf prints a red error annotation to stderr.
func Errorf(format string, args ...interface{}) {
	errorc.Fprintf(os.Stderr, "✖ "+format+"\n", args...)
}

// Infof prints a cyan step announcement to stdout.
func Infof(format string, args ...interface{}) {
	infoc.Fprintf(os.Stdout, "→ "+format+"\n", args...)
}

// Spin runs fn with a spinner on the terminal. Intended for quiet
// operations (probes, captured-output commands); interactive steps stream
// their own output and must not be wrapped.
func Spin(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()
	return fn()
}

// AskYesNo prompts the operator with a yes/no question and reads one line
// from r. An empty line takes the default; "y"/"yes" answers true and
// "n"/"no" answers false, case-insensitively. Unrecognized input takes the
// default as well — the prompt is a convenience gate, not a validator.
func AskYesNo(r io.Reader, question string, defaultYes bool) bool {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	promptc.Fprintf(os.Stdout, "%s %s ", question, hint)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		// EOF (e.g., stdin closed in a pipeline) takes the default.
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}
