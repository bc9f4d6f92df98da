package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/repository"
	"github.com/alexanderramin/tripline/internal/testutil"
	"github.com/alexanderramin/tripline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(d *domain.Day) []string {
	out := make([]string, len(d.Timeline))
	for i, it := range d.Timeline {
		out[i] = it.Title
	}
	return out
}

func TestTimelineService_EditsPersistAndReorder(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	ref, _ := s.tokyoMorning(t)

	leg := testutil.Bus("Toei bus", "")
	day, err := s.timeline.Add(ctx, ref, 1, leg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo Station", "Toei bus", "Ueno Park"}, titles(day))
	assert.Equal(t, "1시간 30분", day.Timeline[1].Time, "a flexible leg spans the gap")

	stored, err := s.timeline.Day(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, day.Revision, stored.Revision)
	assert.Equal(t, int64(3), stored.Revision)
	assert.Equal(t, "09:30", stored.Timeline[1].Transit.Info.Start)

	// Moving Ueno earlier re-sorts the groups.
	day, err = s.timeline.Update(ctx, ref, stored.Timeline[2].ID, func(it *domain.Item) { it.Time = "08:00" })
	require.NoError(t, err)
	assert.Equal(t, []string{"Ueno Park", "Tokyo Station", "Toei bus"}, titles(day))

	day, err = s.timeline.Remove(ctx, ref, leg.ID)
	require.NoError(t, err)
	assert.Len(t, day.Timeline, 2)
	assert.Equal(t, int64(5), day.Revision)
}

func TestTimelineService_MoveAndCopy(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	ref, day := s.tokyoMorning(t)

	memo := testutil.Memo("buy Suica")
	_, err := s.timeline.Add(ctx, ref, -1, memo)
	require.NoError(t, err)

	moved, err := s.timeline.Move(ctx, ref, memo.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo Station", "buy Suica", "Ueno Park"}, titles(moved))

	copied, err := s.timeline.Copy(ctx, ref, day.Timeline[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, day.Timeline[0].ID, copied.ID)

	stored, err := s.timeline.Day(ctx, ref)
	require.NoError(t, err)
	assert.Len(t, stored.Timeline, 4)
	assert.GreaterOrEqual(t, stored.IndexOf(copied.ID), 0)
}

func TestTimelineService_UnknownItem(t *testing.T) {
	s := newServices(t)
	ref, _ := s.tokyoMorning(t)

	_, err := s.timeline.Remove(context.Background(), ref, "ghost")
	assert.ErrorIs(t, err, timeline.ErrItemNotFound)
}

func TestTimelineService_UnknownDay(t *testing.T) {
	s := newServices(t)
	trip := s.createTrip(t, "short")

	_, err := s.timeline.Add(context.Background(), DayRef{TripID: trip.ID, DayIndex: 9}, -1, testutil.Memo("x"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimelineService_FailedSaveRollsBack(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	ref, before := s.tokyoMorning(t)

	boom := errors.New("disk full")
	failing := NewTimelineService(repository.NewSQLiteDayRepo(s.db), &testutil.FailOnNthExecUoW{DB: s.db, FailOn: 1, Err: boom})

	_, err := failing.Add(ctx, ref, -1, testutil.Memo("lost"))
	assert.ErrorIs(t, err, boom)

	stored, err := s.timeline.Day(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, before.Revision, stored.Revision)
	assert.Len(t, stored.Timeline, 2)
}

func TestTimelineService_AddTransitWarns(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	ref, _ := s.tokyoMorning(t)

	check, err := s.timeline.CheckTransit(ctx, ref, 1, "09:10", "09:40")
	require.NoError(t, err)
	assert.Equal(t, "09:30", check.PreviousEnd)
	assert.True(t, check.Has(timeline.WarningDepartsBeforePrevious))

	item, check, err := s.timeline.AddTransit(ctx, AddTransitRequest{
		Day: ref, Position: 1, Type: domain.TransitTrain, Title: "Yamanote", Start: "09:10", End: "09:40",
	})
	require.NoError(t, err, "warnings never block saving")
	assert.Equal(t, "30분", check.DurationText)
	assert.False(t, item.Transit.FixedDuration)
	assert.Equal(t, "1시간 30분", item.Time, "a flexible leg is re-derived from the anchors around it")

	stored, err := s.timeline.Day(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo Station", "Yamanote", "Ueno Park"}, titles(stored))
}

func TestTimelineService_AddTransitInvalidClock(t *testing.T) {
	s := newServices(t)
	ref, before := s.tokyoMorning(t)

	_, _, err := s.timeline.AddTransit(context.Background(), AddTransitRequest{
		Day: ref, Position: -1, Type: domain.TransitBus, Start: "later", End: "10:00",
	})
	assert.ErrorIs(t, err, timeline.ErrInvalidClock)

	stored, err := s.timeline.Day(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, before.Revision, stored.Revision)
}
