// Package tui provides the terminal dashboard for kamalx.
//
// The dashboard wraps one kamal invocation and shows three boxed panes: a
// progress bar with the current deploy stage, the history of stages seen so
// far, and the classified command output.
//
// # Architecture
//
// The TUI follows a Model-View-Controller (MVC) pattern on top of Bubble Tea:
//
//   - Model (internal/tui/model/): program state, key bindings, messages and
//     the commands that read process output and drive the tick
//   - View (internal/tui/view/): composes the boxes, the status bar and help
//   - Controller (internal/tui/controller/): routes every message through
//     one dispatch function and owns the program lifecycle
//
// Components (internal/tui/components/) hold the in-memory panes the
// renderer draws into, and design (internal/tui/design/) the palette.
//
// All drawing happens inside Bubble Tea's update loop, so process lines,
// ticks and key presses never touch the panes concurrently.
package tui
