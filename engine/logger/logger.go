// Package logger builds the zerolog loggers shared by the viewer's packages.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a timestamped logger writing colored console output to out and,
// when file is non-nil, plain console output to file.
//
// Parameters:
//   - level: level name, see ParseLevel
//   - out: console destination, os.Stdout when nil
//   - file: optional second destination without color
//
// Returns:
//   - zerolog.Logger: the configured logger
func New(level string, out io.Writer, file io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// RotatingFile returns a size-rotated log file suitable as the file argument of New.
// The caller closes it on shutdown.
//
// Parameters:
//   - path: the active log file; rotated copies are kept next to it
//   - maxSizeMB: size at which the file is rotated, lumberjack's default of 100 when <= 0
//   - maxBackups: rotated copies to keep, all when 0
//
// Returns:
//   - io.WriteCloser: the rotating writer
func RotatingFile(path string, maxSizeMB, maxBackups int) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(maxSizeMB, 0),
		MaxBackups: max(maxBackups, 0),
	}
}

// Sampled wraps l so bursts of per-frame events are thinned: the first 5
// events every 10 seconds pass, then one in 100.
func Sampled(l zerolog.Logger) zerolog.Logger {
	return l.Sample(&zerolog.BurstSampler{
		Burst:       5,
		Period:      10 * time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
