package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_DefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(ConfigEnv, "")
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr": "json:1",
		"request_timeout":      "30s",
	})
	os.Args = []string{"testbin", "-c", path, "-a", "flag:2"}

	cfg := LoadConfig()

	assert.Equal(t, "flag:2", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_KeepsSubSecondJSONDurations(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"online_check_interval": "1500ms",
		"request_timeout":       "2500ms",
	})
	os.Args = []string{"testbin", "-c", path, "-w", "4"}

	cfg := LoadConfig()

	assert.Equal(t, 1500*time.Millisecond, cfg.OnlineCheckInterval)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
}
