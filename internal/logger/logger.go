package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the structured logging contract used across the module.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// ParseLevel maps a configuration string to a zerolog level
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return &ZerologAdapter{logger: zerolog.Nop()}
}

// New builds a zerolog-backed logger. format is "console" or "json".
func New(writer io.Writer, format, level string) (*ZerologAdapter, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch format {
	case "", "console":
		return NewConsoleLogger(writer, lvl), nil
	case "json":
		return NewZerolog(writer, lvl), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
