// Package config provides configuration management for kamalx.
//
// Configuration is layered. Each layer only overrides the keys it sets:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. User configuration (~/.config/kamalx/config.yaml)
//  3. Project configuration (./.kamalx/config.yaml)
//  4. A file named with --config
//  5. Command line flags, applied by the cmd package
//
// # Configuration File
//
//	command: kamal          # binary to wrap
//	tickInterval: 500ms     # blink period of the progress cursor
//	shutdownGrace: 2s       # time between SIGINT and SIGKILL on stop
//	usePTY: false           # run the command under a pseudo-terminal
//	outputHistory: 1000     # output lines kept for scrolling and copying
//	lineBuffer: 1024        # capacity of the line channel
//	lineBufferPolicy: block # block, drop or evict-oldest
//	logFile: ""             # debug log destination while the dashboard runs
//	logLevel: info          # debug, info, warn or error
//
// Unknown keys are rejected. Validate reports values the dashboard cannot
// run with; every such error wraps ErrInvalidConfig.
package config
