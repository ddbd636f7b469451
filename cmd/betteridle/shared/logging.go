// Package shared holds the bits every cmd/betteridle subcommand needs:
// logger setup and signal-driven shutdown contexts. Grounded on
// cmd/pokerforbots/shared/{logging,signals}.go, ported from zerolog to
// charmbracelet/log to match the rest of this port's logging choice
// (SPEC_FULL.md §2).
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// SetupLogger configures a charmbracelet/log logger writing to stderr. The
// color profile is forced to true color rather than auto-detected, the
// same fix cmd/holdem-server/main.go applies so log colors survive running
// under a supervisor or a piped terminal that misreports its capabilities.
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	logger.SetColorProfile(termenv.TrueColor)
	return logger
}

// QuietLogger discards everything below fatal, for subcommands whose own
// output (a rendered table, a TUI) would otherwise be interleaved with log
// lines.
func QuietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
