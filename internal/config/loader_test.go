package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// isolate points the user and project layers into a temp directory and
// returns their paths.
func isolate(t *testing.T) (userPath, projectPath string) {
	t.Helper()
	tempDir := t.TempDir()

	originalHome := osUserHomeDir
	originalGetwd := osGetwd
	t.Cleanup(func() {
		osUserHomeDir = originalHome
		osGetwd = originalGetwd
	})

	home := filepath.Join(tempDir, "home")
	wd := filepath.Join(tempDir, "project")
	osUserHomeDir = func() (string, error) { return home, nil }
	osGetwd = func() (string, error) { return wd, nil }

	return filepath.Join(home, userConfigDir, configFileName),
		filepath.Join(wd, projectConfigDir, configFileName)
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	isolate(t)

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
	assert.NoError(t, loaded.Validate())
}

func TestLoadConfig_UserOverride(t *testing.T) {
	userPath, _ := isolate(t)
	writeConfigFile(t, userPath, "command: bin/kamal\ntickInterval: 250ms\nusePTY: true\n")

	loaded, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "bin/kamal", loaded.Command)
	assert.Equal(t, 250*time.Millisecond, loaded.TickInterval)
	assert.True(t, loaded.UsePTY)
	assert.Equal(t, DefaultShutdownGrace, loaded.ShutdownGrace)
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	userPath, projectPath := isolate(t)
	writeConfigFile(t, userPath, "usePTY: true\noutputHistory: 50\nlogLevel: debug\n")
	writeConfigFile(t, projectPath, "usePTY: false\noutputHistory: 200\n")

	loaded, err := LoadConfig("")
	require.NoError(t, err)

	assert.False(t, loaded.UsePTY, "explicit false in a higher layer wins")
	assert.Equal(t, 200, loaded.OutputHistory)
	assert.Equal(t, "debug", loaded.LogLevel)
}

func TestLoadConfig_ExplicitFileWins(t *testing.T) {
	_, projectPath := isolate(t)
	writeConfigFile(t, projectPath, "shutdownGrace: 5s\n")

	explicit := filepath.Join(t.TempDir(), "kamalx.yaml")
	writeConfigFile(t, explicit, "shutdownGrace: 10s\nlineBufferPolicy: evict-oldest\n")

	loaded, err := LoadConfig(explicit)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, loaded.ShutdownGrace)
	assert.Equal(t, "evict-oldest", loaded.LineBufferPolicy)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	userPath, _ := isolate(t)
	writeConfigFile(t, userPath, "")

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	_, projectPath := isolate(t)
	writeConfigFile(t, projectPath, "command: [unterminated\n")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading project config")
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	userPath, _ := isolate(t)
	writeConfigFile(t, userPath, "comand: kamal\n")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comand")
}

func TestLoadConfig_HomeDirUnavailable(t *testing.T) {
	_, projectPath := isolate(t)
	osUserHomeDir = func() (string, error) { return "", os.ErrNotExist }
	writeConfigFile(t, projectPath, "lineBuffer: 8\n")

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.LineBuffer)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero grace", func(c *Config) { c.ShutdownGrace = 0 }, ""},
		{"zero history", func(c *Config) { c.OutputHistory = 0 }, ""},
		{"empty command", func(c *Config) { c.Command = "" }, "command"},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, "tickInterval"},
		{"negative grace", func(c *Config) { c.ShutdownGrace = -time.Second }, "shutdownGrace"},
		{"negative history", func(c *Config) { c.OutputHistory = -1 }, "outputHistory"},
		{"zero buffer", func(c *Config) { c.LineBuffer = 0 }, "lineBuffer"},
		{"bad policy", func(c *Config) { c.LineBufferPolicy = "spill" }, "lineBufferPolicy"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "logLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetDefaultConfig()
			tt.mutate(&c)

			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetUserConfigDir(t *testing.T) {
	isolate(t)

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".config", "kamalx"), filepath.Join(filepath.Base(filepath.Dir(dir)), filepath.Base(dir)))
}
