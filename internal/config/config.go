// Package config loads the client's environment-driven settings using
// the same caarlos0/env tagging the teacher's CLI dependency tree
// already carries as an indirect dependency of mainer.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
)

// Client holds the settings the IPC client needs: where the daemon's
// socket lives, whether to spawn it on a failed connect, and the
// executable to spawn.
type Client struct {
	SocketPath string `env:"SHIMEJICTL_SOCKET"`
	Start      bool   `env:"SHIMEJICTL_START" envDefault:"false"`
	DaemonPath string `env:"SHIMEJICTL_DAEMON" envDefault:"shimeji-overlayd"`
}

// Load reads Client from the environment, defaulting SocketPath to
// "${XDG_RUNTIME_DIR:-/tmp}/shimeji-overlayd.sock" when
// SHIMEJICTL_SOCKET is unset.
func Load() (*Client, error) {
	c := &Client{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.SocketPath == "" {
		c.SocketPath = defaultSocketPath()
	}
	return c, nil
}

func defaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = "/tmp"
	}
	return filepath.Join(dir, "shimeji-overlayd.sock")
}
