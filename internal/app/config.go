package app

import (
	"time"

	"kamalx/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Args are passed to the wrapped command.
	Args []string

	// UI mode
	NoTUI bool

	// ConfigPath names an extra configuration file layered over the user
	// and project files.
	ConfigPath string

	// Overrides are the settings given on the command line.
	Overrides Overrides

	// Settings is filled in by NewApplication.
	Settings *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(args []string, noTUI bool, configPath string) *Config {
	return &Config{
		Args:       args,
		NoTUI:      noTUI,
		ConfigPath: configPath,
	}
}

// Overrides holds command line values. Nil fields were not given and keep
// the configured value.
type Overrides struct {
	Command      *string
	UsePTY       *bool
	TickInterval *time.Duration
	LogFile      *string
	LogLevel     *string
}

// Apply writes every set override into settings.
func (o Overrides) Apply(settings *config.Config) {
	if o.Command != nil {
		settings.Command = *o.Command
	}
	if o.UsePTY != nil {
		settings.UsePTY = *o.UsePTY
	}
	if o.TickInterval != nil {
		settings.TickInterval = *o.TickInterval
	}
	if o.LogFile != nil {
		settings.LogFile = *o.LogFile
	}
	if o.LogLevel != nil {
		settings.LogLevel = *o.LogLevel
	}
}
