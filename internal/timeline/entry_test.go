package timeline

import (
	"testing"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransitEntry(t *testing.T) {
	d := dayOf(place("a", "09:00", 60), memo("note"), place("b", "14:00"))

	tests := []struct {
		name       string
		index      int
		start, end string
		wantMin    int
		wantText   string
		wantPrev   string
		want       []Warning
	}{
		{"clean", 2, "10:15", "11:00", 45, "45분", "10:00", nil},
		{"next day", 2, "23:00", "01:30", 150, "2시간 30분", "10:00", []Warning{WarningNextDay}},
		{"before previous end", 1, "09:30", "10:00", 30, "30분", "10:00", []Warning{WarningDepartsBeforePrevious}},
		{"both", 2, "09:45", "09:15", 1410, "23시간 30분", "10:00", []Warning{WarningNextDay, WarningDepartsBeforePrevious}},
		{"at front", 0, "08:00", "08:30", 30, "30분", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckTransitEntry(d, tt.index, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, got.DurationMinutes)
			assert.Equal(t, tt.wantText, got.DurationText)
			assert.Equal(t, tt.wantPrev, got.PreviousEnd)
			assert.Equal(t, tt.want, got.Warnings)
		})
	}
}

func TestCheckTransitEntry_PreviousTransitEnd(t *testing.T) {
	tr := leg("t", "20분", true)
	tr.Transit.Info.Start = "10:00"
	tr.Transit.Info.End = "10:20"
	d := dayOf(place("a", "09:00"), tr)

	got, err := CheckTransitEntry(d, 2, "10:10", "10:40")
	require.NoError(t, err)
	assert.Equal(t, "10:20", got.PreviousEnd)
	assert.True(t, got.Has(WarningDepartsBeforePrevious))
}

func TestCheckTransitEntry_InvalidClock(t *testing.T) {
	_, err := CheckTransitEntry(nil, 0, "nine", "10:00")
	assert.ErrorIs(t, err, ErrInvalidClock)

	_, err = CheckTransitEntry(nil, 0, "09:00", "25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestTransitEntry_BuildIsFlexible(t *testing.T) {
	d := dayOf(place("a", "09:00"), place("b", "11:00"))
	entry := NewTransitEntry(d, 1)
	entry.Start = "오후 1:00"
	entry.End = "13:40"

	item, check, err := entry.Build("leg-1", domain.TransitTrain, "JR")
	require.NoError(t, err)

	assert.Equal(t, 40, check.DurationMinutes)
	assert.Equal(t, "40분", item.Time)
	assert.False(t, item.Transit.FixedDuration)
	assert.Equal(t, domain.TransitTrain, item.Transit.Type)
	assert.Equal(t, "13:40", item.Transit.Info.End)
	assert.Empty(t, check.Warnings)
}

func TestWarning_Message(t *testing.T) {
	assert.Contains(t, WarningNextDay.Message(), "next-day")
	assert.Equal(t, "custom", Warning("custom").Message())
}
