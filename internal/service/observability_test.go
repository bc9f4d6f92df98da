package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestLogUseCaseObserver_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelInfo)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "insert-route", TripID: "trip-1", DayIndex: 1,
		Fields: map[string]any{"source": "heuristic"},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "import-trip", Err: errors.New("bad file")})

	out := buf.String()
	assert.Contains(t, out, "use_case=insert-route")
	assert.Contains(t, out, "trip=trip-1 day=2")
	assert.Contains(t, out, "source=heuristic")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="bad file"`)
}

func TestLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil, slog.LevelInfo))
}

func TestTimelineService_ReportsUseCases(t *testing.T) {
	s := newServices(t)
	ref, _ := s.tokyoMorning(t)
	rec := &recordingObserver{}
	svc := NewTimelineService(nil, s.uow, rec)

	_, err := svc.Remove(context.Background(), ref, "ghost")
	assert.Error(t, err)

	if assert.Len(t, rec.events, 1) {
		e := rec.events[0]
		assert.Equal(t, "remove-item", e.Name)
		assert.Equal(t, ref.TripID, e.TripID)
		assert.False(t, e.Success())
	}
}
