package flagx

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-starting token is not a value",
			args:         []string{"-c", "-s", "secret"},
			allowedFlags: []string{"-c", "-s"},
			want:         []string{"-c", "-s", "secret"},
		},
		{
			name:         "value containing equals after separate flag",
			args:         []string{"-d", "postgres://u:p@h/db?sslmode=disable"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://u:p@h/db?sslmode=disable"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestParse(t *testing.T) {
	var addr string
	var cost int

	err := Parse([]string{"-a", ":9000", "-x", "ignored", "-b=10"}, []string{"-a", "-b"}, func(fs *flag.FlagSet) {
		fs.StringVar(&addr, "a", ":50051", "")
		fs.IntVar(&cost, "b", 12, "")
	})

	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)
	assert.Equal(t, 10, cost)
}

func TestParse_BadValue(t *testing.T) {
	var cost int

	err := Parse([]string{"-b", "many"}, []string{"-b"}, func(fs *flag.FlagSet) {
		fs.IntVar(&cost, "b", 12, "")
	})

	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	const env = "GOPHAUTH_TEST_CONFIG"

	t.Run("short flag", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}, env))
	})

	t.Run("long flag", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigPath([]string{"-config", "/path/long.json"}, env))
	})

	t.Run("last flag wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}, env))
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(env, "/etc/gophauth.json")
		assert.Equal(t, "/etc/gophauth.json", ConfigPath([]string{"-x", "1"}, env))
		assert.Equal(t, "/path/flag.json", ConfigPath([]string{"-c", "/path/flag.json"}, env))
	})

	t.Run("nothing requested", func(t *testing.T) {
		assert.Empty(t, ConfigPath([]string{"-a", ":1"}, ""))
	})
}
