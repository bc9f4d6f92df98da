package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"plain", "09:30", 570, true},
		{"midnight", "00:00", 0, true},
		{"late", "23:59", 1439, true},
		{"korean pm", "오후 2:05", 845, true},
		{"korean am noon", "오전 12:10", 10, true},
		{"latin pm", "2:05 pm", 845, true},
		{"latin PM uppercase", "7:00PM", 1140, true},
		{"pm noon unchanged", "12:30 pm", 750, true},
		{"surrounding text", "출발 10:15 예정", 615, true},
		{"seconds ignored", "08:05:59", 485, true},
		{"duration text", "1시간 30분", 0, false},
		{"single field", "0930", 0, false},
		{"empty", "", 0, false},
		{"hour out of range", "25:00", 0, false},
		{"minute out of range", "10:75", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:20", FormatClock(1460), "wraps past midnight")
	assert.Equal(t, "23:50", FormatClock(-10), "negative wraps backwards")
}

func TestFormatClock_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		got, ok := ParseClock(FormatClock(m))
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
}

func TestAddClock_Wraparound(t *testing.T) {
	got, ok := AddClock("23:50", ParseDuration("30분"))
	assert.True(t, ok)
	assert.Equal(t, "00:20", got)

	_, ok = AddClock("soon", 10)
	assert.False(t, ok)
}

func TestGap(t *testing.T) {
	assert.Equal(t, 30, Gap(600, 630))
	assert.Equal(t, 0, Gap(600, 600))
	assert.Equal(t, 1410, Gap(600, 570), "negative gap means next day")
}

func TestOf(t *testing.T) {
	ts := time.Date(2026, 3, 1, 7, 4, 0, 0, time.UTC)
	assert.Equal(t, "07:04", Of(ts))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1시간 30분", 90},
		{"2시간", 120},
		{"45분", 45},
		{"1 시간 5 분", 65},
		{"약 3시간 소요", 180},
		{"", 0},
		{"soon", 0},
		{"09:30", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDuration(tt.input), "input %q", tt.input)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0분", FormatDuration(0))
	assert.Equal(t, "25분", FormatDuration(25))
	assert.Equal(t, "1시간", FormatDuration(60))
	assert.Equal(t, "1시간 5분", FormatDuration(65))
	assert.Equal(t, "3시간", FormatDuration(180))
	assert.Equal(t, "0분", FormatDuration(-5))
}

func TestFormatDuration_RoundTrip(t *testing.T) {
	for m := 0; m < 600; m += 13 {
		assert.Equal(t, m, ParseDuration(FormatDuration(m)))
	}
}
