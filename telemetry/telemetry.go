package telemetry

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/dfcarvalho/barberdesk/constants"
)

// Telemetry provides centralized logging and stats collection
type Telemetry struct {
	Logger         *slog.Logger
	LogCapture     *LogCapture
	StatsCollector *StatsCollector

	logLevel slog.Level
	cliMode  bool
}

// Option configures a Telemetry instance
type Option func(*Telemetry)

// WithCLIMode suppresses stderr output so log lines only reach the console
// log pane.
func WithCLIMode(enabled bool) Option {
	return func(t *Telemetry) {
		t.cliMode = enabled
	}
}

// WithLogLevel sets the minimum level ("debug", "info", "warn", "error").
// Unknown values fall back to debug.
func WithLogLevel(level string) Option {
	return func(t *Telemetry) {
		t.logLevel = parseLogLevel(level)
	}
}

// New creates a telemetry instance: a log capture ring, a tint-backed slog
// logger writing into it, and a stats collector.
func New(opts ...Option) *Telemetry {
	t := &Telemetry{
		logLevel: slog.LevelDebug,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.LogCapture = NewLogCapture(constants.DefaultLogBufferSize)
	if !t.cliMode {
		t.LogCapture.AddWriter(os.Stderr)
	}

	handler := tint.NewHandler(t.LogCapture, &tint.Options{
		Level:      t.logLevel,
		TimeFormat: time.TimeOnly,
	})
	t.Logger = slog.New(handler)

	t.StatsCollector = NewStatsCollector()
	t.StatsCollector.StartRateCalculation()

	return t
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
