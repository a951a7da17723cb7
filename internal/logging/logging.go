package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Level   string // debug|info|warn|error|off
	File    string // rotate into this file instead of stderr when set
	Console bool   // human readable output on stderr
	Service string
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds the process logger.
func New(o Options) zerolog.Logger {
	return NewWithWriter(o, output(o))
}

// NewWithWriter builds a logger writing JSON lines to w.
func NewWithWriter(o Options, w io.Writer) zerolog.Logger {
	service := o.Service
	if service == "" {
		service = "walletd"
	}
	return zerolog.New(w).
		Level(ParseLevel(o.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

func output(o Options) io.Writer {
	if o.File != "" {
		return &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	if o.Console {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return os.Stderr
}
