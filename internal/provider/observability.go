package provider

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single provider call.
type CallEvent struct {
	Provider  Kind
	Operation string
	LatencyMs int64
	Success   bool
	Cached    bool
	ErrorCode string
}

// Observer receives events about provider calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes provider call events through slog.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"provider", string(event.Provider),
		"op", event.Operation,
		"latency_ms", event.LatencyMs,
		"cached", event.Cached,
	}
	if !event.Success {
		o.logger.Warn("provider_call", append(attrs, "status", "err:"+event.ErrorCode)...)
		return
	}
	o.logger.Info("provider_call", append(attrs, "status", "ok")...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
