package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagLogLevel  = "loglevel"
	flagLogFormat = "logformat"
)

// enumValue is a string flag restricted to a fixed set of values. The first value is the default.
type enumValue struct {
	allowed []string
	value   string
}

func newEnum(allowed ...string) *enumValue {
	return &enumValue{allowed: allowed, value: allowed[0]}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(v string) error {
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}
	e.value = v
	return nil
}

func (e *enumValue) Type() string { return "string" }

func RegisterLoggingFlags(flags *pflag.FlagSet) {
	flags.Var(newEnum("warn", "debug", "info", "error"), flagLogLevel, "set the log level (debug, info, warn, error)")
	flags.Var(newEnum("text", "json"), flagLogFormat, "set the log format (text, json)")
}

// GetBaseLogger builds the logger selected by the logging flags. Logs go to stderr so
// that transform output on stdout stays clean.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := GetLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}
	return newLogger(cmd.ErrOrStderr(), cmd.Flag(flagLogFormat).Value.String(), level)
}

func newLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

func GetLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	switch v := cmd.Flag(flagLogLevel).Value.String(); v {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", v)
	}
}
