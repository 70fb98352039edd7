package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsSocketPathToRuntimeDir(t *testing.T) {
	t.Setenv("SHIMEJICTL_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/shimeji-overlayd.sock", c.SocketPath)
}

func TestLoadDefaultsSocketPathToTmpWithoutRuntimeDir(t *testing.T) {
	t.Setenv("SHIMEJICTL_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shimeji-overlayd.sock", c.SocketPath)
}

func TestLoadHonorsExplicitSocketPath(t *testing.T) {
	t.Setenv("SHIMEJICTL_SOCKET", "/custom/path.sock")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/custom/path.sock", c.SocketPath)
}
