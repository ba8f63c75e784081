// Package cli provides shared helpers for the tidecast command-line
// interface: a percent-and-stage progress bar for polling simulation runs,
// output formatting, and signal-aware contexts for long-lived commands.
package cli
