package config

import (
	"time"
)

// Config is the kamalx configuration.
type Config struct {
	// Command is the binary the dashboard wraps.
	Command string `yaml:"command"`
	// TickInterval is the blink period of the progress cursor.
	TickInterval time.Duration `yaml:"tickInterval"`
	// ShutdownGrace is how long a stopped command has between SIGINT and
	// SIGKILL.
	ShutdownGrace time.Duration `yaml:"shutdownGrace"`
	// UsePTY runs the command under a pseudo-terminal.
	UsePTY bool `yaml:"usePTY"`
	// OutputHistory is the number of output lines kept for scrolling.
	OutputHistory int `yaml:"outputHistory"`
	// LineBuffer is the capacity of the line channel between the command
	// and the dashboard.
	LineBuffer int `yaml:"lineBuffer"`
	// LineBufferPolicy is one of block, drop or evict-oldest.
	LineBufferPolicy string `yaml:"lineBufferPolicy"`
	LogFile          string `yaml:"logFile"`
	LogLevel         string `yaml:"logLevel"`
}

// fileConfig is one configuration layer as read from disk. Unset keys stay
// nil so they do not override lower layers.
type fileConfig struct {
	Command          *string        `yaml:"command"`
	TickInterval     *time.Duration `yaml:"tickInterval"`
	ShutdownGrace    *time.Duration `yaml:"shutdownGrace"`
	UsePTY           *bool          `yaml:"usePTY"`
	OutputHistory    *int           `yaml:"outputHistory"`
	LineBuffer       *int           `yaml:"lineBuffer"`
	LineBufferPolicy *string        `yaml:"lineBufferPolicy"`
	LogFile          *string        `yaml:"logFile"`
	LogLevel         *string        `yaml:"logLevel"`
}

// Default values.
const (
	DefaultCommand          = "kamal"
	DefaultTickInterval     = 500 * time.Millisecond
	DefaultShutdownGrace    = 2 * time.Second
	DefaultOutputHistory    = 1000
	DefaultLineBuffer       = 1024
	DefaultLineBufferPolicy = "block"
	DefaultLogLevel         = "info"
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	return Config{
		Command:          DefaultCommand,
		TickInterval:     DefaultTickInterval,
		ShutdownGrace:    DefaultShutdownGrace,
		OutputHistory:    DefaultOutputHistory,
		LineBuffer:       DefaultLineBuffer,
		LineBufferPolicy: DefaultLineBufferPolicy,
		LogLevel:         DefaultLogLevel,
	}
}
