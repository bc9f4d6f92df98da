package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent captures one service call: which use case, on which trip
// and day, how long it took and how it ended.
type UseCaseEvent struct {
	Name      string
	TripID    string
	DayIndex  int
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

// Success reports whether the use case returned without error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events as slog text records.
func NewLogUseCaseObserver(w io.Writer, level slog.Level) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 10+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success(),
	)
	if event.TripID != "" {
		attrs = append(attrs, "trip", event.TripID, "day", event.DayIndex+1)
	}
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// span starts timing a use case. Call end with the final error.
type span struct {
	observer UseCaseObserver
	event    UseCaseEvent
}

func startSpan(observer UseCaseObserver, name, tripID string, dayIndex int) *span {
	return &span{observer: observer, event: UseCaseEvent{
		Name:      name,
		TripID:    tripID,
		DayIndex:  dayIndex,
		StartedAt: time.Now(),
		Fields:    map[string]any{},
	}}
}

func (s *span) set(key string, value any) { s.event.Fields[key] = value }

func (s *span) end(ctx context.Context, err error) {
	s.event.Duration = time.Since(s.event.StartedAt)
	s.event.Err = err
	s.observer.ObserveUseCase(ctx, s.event)
}
