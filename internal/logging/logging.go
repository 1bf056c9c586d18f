// Package logging provides the hook's side-channel debug log using zerolog.
//
// Standard output is reserved for the approval document, so diagnostics go
// to a per-user file instead. The log is off unless the READONLY_HOOK_DEBUG
// environment variable selects a verbosity (1, 2 or 3); it must never
// influence the decision.
package logging

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

// EnvVar enables the debug log when set to a positive integer.
const EnvVar = "READONLY_HOOK_DEBUG"

// logFile is the destination, relative to the user's home directory.
var logFile = filepath.Join(".claude", "hooks", "readonly_bash.log")

// Logger is the global logger instance. It discards everything unless Init
// finds a verbosity in the environment.
var Logger = zerolog.Nop()

func init() {
	Init()
}

// Init configures Logger from the environment. It is split from init so
// tests can re-run it after changing the environment. Any failure to set up
// the log file leaves the no-op logger in place; the hook works the same
// either way.
func Init() {
	Logger = zerolog.Nop()

	verbosity, err := strconv.Atoi(os.Getenv(EnvVar))
	if err != nil || verbosity <= 0 {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	path := filepath.Join(home, logFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	Logger = zerolog.New(f).Level(level(verbosity)).With().Timestamp().Logger()
}

// level maps the hook's numeric verbosity onto zerolog levels.
func level(verbosity int) zerolog.Level {
	switch {
	case verbosity >= 3:
		return zerolog.TraceLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Info starts a new info level log message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Debug starts a new debug level log message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Trace starts a new trace level log message.
func Trace() *zerolog.Event {
	return Logger.Trace()
}
