package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
)

// Logger receives pipeline progress.
type Logger interface {
	LogStageComplete(ctx context.Context, success bool, elapsed time.Duration, stage string)
	LogStageError(ctx context.Context, stage string, err error)
}

// StageLogger writes stage results to a slog logger. With Colored set the
// result label is rendered for a terminal.
type StageLogger struct {
	Log     *slog.Logger
	Colored bool
}

func NewStageLogger(log *slog.Logger, colored bool) *StageLogger {
	if log == nil {
		log = slog.Default()
	}
	return &StageLogger{Log: log, Colored: colored}
}

func (l *StageLogger) label(success bool) string {
	if !l.Colored {
		if success {
			return "OK"
		}
		return "ERR"
	}
	if success {
		return color.New(color.FgWhite).Add(color.BgGreen).Sprintf(" OK  ")
	}
	return color.New(color.FgWhite).Add(color.BgRed).Sprintf(" ERR ")
}

func (l *StageLogger) LogStageComplete(ctx context.Context, success bool, elapsed time.Duration, stage string) {
	l.Log.DebugContext(ctx, fmt.Sprintf("|%s| %13v | %s", l.label(success), elapsed, stage),
		"stage", stage, "elapsed", elapsed, "ok", success)
}

func (l *StageLogger) LogStageError(ctx context.Context, stage string, err error) {
	l.Log.ErrorContext(ctx, "stage failed", "stage", stage, "error", err)
}

// RequestLogger is a gin middleware logging one line per request.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		} else if c.Writer.Status() >= 400 {
			level = slog.LevelWarn
		}
		log.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
			"elapsed", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}
