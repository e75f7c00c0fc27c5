package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/alexiusacademia/gofemdesign/internal/version"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file gofd looks for in the working directory.
const DefaultPath = "gofd.yaml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all gofd configuration.
type Config struct {
	FemDesign FemDesignConfig     `yaml:"femdesign"`
	Units     results.UnitResults `yaml:"units"`
	Logging   LoggingConfig       `yaml:"logging"`
}

// FemDesignConfig configures the FEM-Design installation scripts run on.
type FemDesignConfig struct {
	Executable    string `yaml:"executable"`
	Version       string `yaml:"version"`
	Module        string `yaml:"module"`
	Minimized     bool   `yaml:"minimized"`
	Timeout       string `yaml:"timeout"`
	OutputTimeout string `yaml:"output_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FemDesign: FemDesignConfig{
			Executable:    `C:\Program Files\StruSoft\FEM-Design 21\fd3dstruct.exe`,
			Version:       version.FemDesignVersion,
			Module:        "sframe",
			Timeout:       "30m",
			OutputTimeout: "30s",
		},
		Units: results.DefaultUnits(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if exe := os.Getenv("FEMDESIGN_EXE"); exe != "" {
		c.FemDesign.Executable = exe
	}
	if lvl := os.Getenv("GOFD_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = strings.ToLower(lvl)
	}
}

// GetTimeout returns how long a script may run.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.FemDesign.Timeout)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetOutputTimeout returns how long to wait for listings after FEM-Design exits.
func (c *Config) GetOutputTimeout() time.Duration {
	d, err := time.ParseDuration(c.FemDesign.OutputTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.FemDesign.Executable == "" {
		return fmt.Errorf("%w: femdesign.executable not set (set FEMDESIGN_EXE)", ErrInvalidConfig)
	}
	for name, v := range map[string]string{"timeout": c.FemDesign.Timeout, "output_timeout": c.FemDesign.OutputTimeout} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 || (name == "timeout" && d == 0) {
			return fmt.Errorf("%w: femdesign.%s %q", ErrInvalidConfig, name, v)
		}
	}
	if err := c.Units.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	valid := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: logging.level %q (valid: %v)", ErrInvalidConfig, c.Logging.Level, ValidLogLevels)
	}
	return nil
}
