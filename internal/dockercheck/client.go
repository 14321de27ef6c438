// Package dockercheck probes for a usable Docker daemon.
//
// ChatBridge can alternatively be deployed as a container instead of the
// host install this tool performs. The doctor command reports whether that
// alternative is available, which is the only Docker interaction bridgeup
// has — nothing here manages containers.
package dockercheck

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"
)

// pingTimeout bounds the daemon probe. Doctor output should not hang on a
// paused Docker Desktop.
const pingTimeout = 2 * time.Second

// Client wraps the Docker Engine SDK client for the daemon probe.
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client. DOCKER_HOST is respected when set;
// otherwise the platform's default socket locations are probed. A missing
// socket is an error here, but callers treat any error as "Docker not
// available" rather than a failure.
func NewClient() (*Client, error) {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return newClientWithHost(host)
	}

	host, err := detectHost()
	if err != nil {
		return nil, err
	}
	return newClientWithHost(host)
}

func newClientWithHost(host string) (*Client, error) {
	// API version negotiation keeps the probe compatible with whatever
	// daemon version the host runs.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create Docker client for host %q: %w", host, err)
	}
	return &Client{inner: c}, nil
}

// detectHost returns the Docker connection string for the current platform
// by probing the known socket locations. Existence of the socket file is
// checked rather than connectivity; Ping covers the rest.
func detectHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{"/var/run/docker.sock"})
	case "darwin":
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			// Newer Docker Desktop versions place the socket under the
			// user's home instead of symlinking /var/run.
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(paths)
	case "windows":
		return "npipe:////./pipe/docker_engine", nil
	default:
		return "", fmt.Errorf("no known Docker socket location on %s", runtime.GOOS)
	}
}

func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of %v", paths)
}

// Ping reports whether the daemon answers within the probe timeout.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return fmt.Errorf("Docker daemon is not responding: %w", err)
	}
	return nil
}

// Close releases the client's resources. Safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// DaemonRunning is the one-shot convenience used by doctor: true only when
// a client can be constructed and the daemon answers a ping.
func DaemonRunning(ctx context.Context) bool {
	c, err := NewClient()
	if err != nil {
		return false
	}
	defer func() { _ = c.Close() }()
	return c.Ping(ctx) == nil
}
