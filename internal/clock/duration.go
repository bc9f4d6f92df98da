package clock

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*시간`)
	minutePattern = regexp.MustCompile(`(\d+)\s*분`)
)

// ParseDuration extracts minutes from text like "1시간 30분", "45분" or
// "2시간". Missing groups contribute 0.
func ParseDuration(text string) int {
	total := 0
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			total += h * 60
		}
	}
	if m := minutePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	return total
}

// FormatDuration is the inverse of ParseDuration. Whole hours render
// without a minute segment; sub-hour durations omit the hour segment.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d분", m)
	case m == 0:
		return fmt.Sprintf("%d시간", h)
	default:
		return fmt.Sprintf("%d시간 %d분", h, m)
	}
}
