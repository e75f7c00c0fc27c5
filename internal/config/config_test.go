package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "2100", cfg.FemDesign.Version)
	assert.Equal(t, "sframe", cfg.FemDesign.Module)
	assert.Equal(t, 30*time.Minute, cfg.GetTimeout())
	assert.Equal(t, 30*time.Second, cfg.GetOutputTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("FEMDESIGN_EXE", "")
	t.Setenv("GOFD_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "gofd.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesFile(t *testing.T) {
	t.Setenv("FEMDESIGN_EXE", "")
	t.Setenv("GOFD_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "gofd.yaml")
	data := "femdesign:\n  executable: /opt/fd/fd3dstruct\n  timeout: 5m\nunits:\n  force: N\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/fd/fd3dstruct", cfg.FemDesign.Executable)
	assert.Equal(t, 5*time.Minute, cfg.GetTimeout())
	assert.Equal(t, "sframe", cfg.FemDesign.Module)
	assert.Equal(t, "N", string(cfg.Units.Force))
	assert.Equal(t, "m", string(cfg.Units.Length))
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("femdesign: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FEMDESIGN_EXE", "/usr/local/bin/fd")
	t.Setenv("GOFD_LOG_LEVEL", "WARN")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "/usr/local/bin/fd", cfg.FemDesign.Executable)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("FEMDESIGN_EXE", "")
	t.Setenv("GOFD_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "nested", "gofd.yaml")
	cfg := DefaultConfig()
	cfg.FemDesign.Minimized = true
	cfg.Units.Displacement = "mm"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no executable", func(c *Config) { c.FemDesign.Executable = "" }},
		{"bad timeout", func(c *Config) { c.FemDesign.Timeout = "soon" }},
		{"zero timeout", func(c *Config) { c.FemDesign.Timeout = "0s" }},
		{"negative output timeout", func(c *Config) { c.FemDesign.OutputTimeout = "-1s" }},
		{"bad unit", func(c *Config) { c.Units.Force = "stone" }},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateZeroOutputTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FemDesign.OutputTimeout = "0s"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Duration(0), cfg.GetOutputTimeout())
}
