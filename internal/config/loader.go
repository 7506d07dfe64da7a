package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kamalx/internal/runner"
	"kamalx/pkg/logging"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/kamalx"
	projectConfigDir = ".kamalx"
	configFileName   = "config.yaml"
)

// LoadConfig layers the defaults, the user file, the project file and, when
// explicitPath is set, that file. Missing user and project files are
// skipped; a missing explicit file is an error.
func LoadConfig(explicitPath string) (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if config, err = mergeFileIfExists(config, userConfigPath); err != nil {
		return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if config, err = mergeFileIfExists(config, projectConfigPath); err != nil {
		return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	if explicitPath != "" {
		overlay, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	return config, nil
}

func mergeFileIfExists(base Config, path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	logging.Debug("Config", "Loaded configuration layer %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile reads one configuration layer. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func loadConfigFromFile(filePath string) (fileConfig, error) {
	var layer fileConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fileConfig{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&layer); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, err
	}
	return layer, nil
}

// mergeConfigs applies every key set in overlay on top of base.
func mergeConfigs(base Config, overlay fileConfig) Config {
	merged := base
	if overlay.Command != nil {
		merged.Command = *overlay.Command
	}
	if overlay.TickInterval != nil {
		merged.TickInterval = *overlay.TickInterval
	}
	if overlay.ShutdownGrace != nil {
		merged.ShutdownGrace = *overlay.ShutdownGrace
	}
	if overlay.UsePTY != nil {
		merged.UsePTY = *overlay.UsePTY
	}
	if overlay.OutputHistory != nil {
		merged.OutputHistory = *overlay.OutputHistory
	}
	if overlay.LineBuffer != nil {
		merged.LineBuffer = *overlay.LineBuffer
	}
	if overlay.LineBufferPolicy != nil {
		merged.LineBufferPolicy = *overlay.LineBufferPolicy
	}
	if overlay.LogFile != nil {
		merged.LogFile = *overlay.LogFile
	}
	if overlay.LogLevel != nil {
		merged.LogLevel = *overlay.LogLevel
	}
	return merged
}

// Validate checks c for values the dashboard cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Command == "":
		return fmt.Errorf("%w: command must not be empty", ErrInvalidConfig)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tickInterval must be positive, got %s", ErrInvalidConfig, c.TickInterval)
	case c.ShutdownGrace < 0:
		return fmt.Errorf("%w: shutdownGrace must not be negative, got %s", ErrInvalidConfig, c.ShutdownGrace)
	case c.OutputHistory < 0:
		return fmt.Errorf("%w: outputHistory must not be negative, got %d", ErrInvalidConfig, c.OutputHistory)
	case c.LineBuffer <= 0:
		return fmt.Errorf("%w: lineBuffer must be positive, got %d", ErrInvalidConfig, c.LineBuffer)
	}
	if _, err := runner.ParseBufferAction(c.LineBufferPolicy); err != nil {
		return fmt.Errorf("%w: lineBufferPolicy: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: logLevel: %v", ErrInvalidConfig, err)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
