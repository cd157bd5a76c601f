// Package logging builds the zerolog logger for each run mode.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const EnvLogLevel = "DIRTOOLS_LOG_LEVEL"

type Profile int

const (
	// ProfileRuntime logs at info to a rotating file, or to stderr when no
	// file is set.
	ProfileRuntime Profile = iota
	// ProfileTest is silent unless DIRTOOLS_LOG_LEVEL is set.
	ProfileTest
)

// Settings selects the destination and level of a logger.
type Settings struct {
	Profile Profile
	Level   string
	// File, when set, receives the log through lumberjack rotation. The
	// console UI owns the terminal, so it always logs to a file.
	File string
	App  string
}

// New returns the logger and a closer for its output.
func New(s Settings) (zerolog.Logger, io.Closer) {
	level := defaultLevel(s.Profile)
	if lvl, ok := parseLevel(s.Level); ok {
		level = lvl
	}
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}

	var out io.Writer
	var closer io.Closer = nopCloser{}
	switch {
	case s.Profile == ProfileTest:
		out = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true, TimeFormat: time.TimeOnly}
	case s.File != "":
		if err := os.MkdirAll(filepath.Dir(s.File), 0o755); err != nil {
			out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
			break
		}
		rotator := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out, closer = rotator, rotator
	default:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if s.App != "" {
		ctx = ctx.Str("app", s.App)
	}
	return ctx.Logger(), closer
}

// ForTests returns the test profile logger.
func ForTests() zerolog.Logger {
	logger, _ := New(Settings{Profile: ProfileTest})
	return logger
}

func defaultLevel(profile Profile) zerolog.Level {
	if profile == ProfileTest {
		return zerolog.Disabled
	}
	return zerolog.InfoLevel
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
