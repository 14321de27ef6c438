// Package platform classifies the host operating system and architecture
// for the bootstrap flow.
//
// Classification is split into a pure function (Classify) that maps a kernel
// name plus kernel version metadata to a model.OS tag, and a thin host probe
// (Detect) that feeds it runtime.GOOS and /proc/version. The split keeps the
// mapping fully table-testable without a WSL host in CI.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/chatbridge/bridgeup/internal/model"
)

// procVersionPath is the Linux kernel version file inspected for WSL
// virtualization markers. Microsoft kernels identify themselves here
// (e.g., "... version 4.19.128-microsoft-standard ...").
const procVersionPath = "/proc/version"

// Info holds the detected host platform.
type Info struct {
	// OS is the classified operating system tag.
	OS model.OS

	// Arch is the CPU architecture string as reported by the Go runtime
	// (e.g., "amd64", "arm64").
	Arch string
}

// Classify maps a kernel name (in runtime.GOOS vocabulary) and the kernel
// version string to an OS tag.
//
// The mapping is fixed:
//   - "darwin"  → macos
//   - "windows" → windows
//   - "linux"   → wsl when the kernel version carries a Microsoft/WSL
//     marker, linux otherwise
//   - anything else → unknown
//
// kernelVersion is only consulted for "linux"; it may be empty when
// /proc/version is unreadable, in which case plain linux is assumed.
func Classify(goos, kernelVersion string) model.OS {
	switch goos {
	case "darwin":
		return model.OSMacOS
	case "windows":
		return model.OSWindows
	case "linux":
		v := strings.ToLower(kernelVersion)
		if strings.Contains(v, "microsoft") || strings.Contains(v, "wsl") {
			return model.OSWSL
		}
		return model.OSLinux
	default:
		return model.OSUnknown
	}
}

// Detect classifies the running host.
func Detect() Info {
	return Info{
		OS:   Classify(runtime.GOOS, readKernelVersion()),
		Arch: runtime.GOARCH,
	}
}

// readKernelVersion returns the contents of /proc/version, or an empty
// string when it cannot be read (non-Linux hosts, restricted containers).
// Failure here is not an error: it only disables WSL detection.
func readKernelVersion() string {
	data, err := os.ReadFile(procVersionPath)
	if err != nil {
		return ""
	}
	return string(data)
}

// ProfilePaths returns the shell profile files that an installer may have
// appended PATH exports to (~/.bashrc, ~/.zshrc). bridgeup cannot re-source
// them into its own process; they are listed so the operator can be told
// which files to reload, and RefreshPath covers the process side.
func ProfilePaths(home string) []string {
	return []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".zshrc"),
	}
}

// RefreshPath makes a freshly installed runtime visible to this process so
// that a re-check performed right after an install can see it without a
// new login shell. It is the process-local equivalent of the
// "source ~/.bashrc" step a shell-based installer would perform.
//
// The newest nvm-managed Node version is prepended: it must win over any
// stale runtime the shell already resolved, or the re-check would still
// see the old binary and fail a successful install. The remaining
// well-known install prefixes are appended. Directories that do not exist
// are skipped; directories already on PATH are not duplicated.
func RefreshPath(home string) {
	path := os.Getenv("PATH")
	existing := make(map[string]bool)
	for _, p := range filepath.SplitList(path) {
		existing[p] = true
	}

	if dir, ok := newestNvmBinDir(home); ok && !existing[dir] {
		path = dir + string(os.PathListSeparator) + path
		existing[dir] = true
	}

	for _, dir := range []string{
		"/opt/homebrew/bin",
		"/usr/local/bin",
		filepath.Join(home, ".local", "bin"),
	} {
		if existing[dir] {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		path = path + string(os.PathListSeparator) + dir
	}
	os.Setenv("PATH", path)
}

// newestNvmBinDir returns the bin directory of the highest nvm-managed
// Node version, when one exists. nvm installs under
// ~/.nvm/versions/node/v<version>/bin and only wires PATH via shell
// profiles, so a freshly nvm-installed node is invisible until we add it.
//
// Versions compare numerically: v9 is older than v10 even though it sorts
// after it lexicographically. Directories whose name is not a version are
// ignored.
func newestNvmBinDir(home string) (string, bool) {
	pattern := filepath.Join(home, ".nvm", "versions", "node", "v*", "bin")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", false
	}

	best := ""
	var bestVer [3]int
	for _, dir := range matches {
		ver, ok := parseNodeVersion(filepath.Base(filepath.Dir(dir)))
		if !ok {
			continue
		}
		if best == "" || versionLess(bestVer, ver) {
			best, bestVer = dir, ver
		}
	}
	return best, best != ""
}

// parseNodeVersion parses a "v18.20.0"-style directory name into numeric
// major/minor/patch components. Missing components count as zero.
func parseNodeVersion(name string) ([3]int, bool) {
	var ver [3]int
	trimmed := strings.TrimPrefix(name, "v")
	if trimmed == "" {
		return ver, false
	}
	for i, part := range strings.SplitN(trimmed, ".", 3) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return ver, false
		}
		ver[i] = n
	}
	return ver, true
}

// versionLess reports whether a is an older version than b.
func versionLess(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
