// Package clock converts between "HH:MM" clock strings, minutes since
// midnight and the Korean duration text used on timeline items
// ("1시간 30분"). Every function is total: malformed input degrades to a
// not-ok result or zero instead of an error.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the wrap-around modulus for clock arithmetic.
const MinutesPerDay = 1440

// ParseClock returns minutes since midnight for a clock string such as
// "09:30", "오후 2:05" or "2:05 pm". It reports false when fewer than two
// numeric fields remain after stripping everything except digits and ':'.
func ParseClock(text string) (int, bool) {
	lower := strings.ToLower(text)
	pm := strings.Contains(text, "오후") || strings.Contains(lower, "pm")
	am := !pm && (strings.Contains(text, "오전") || strings.Contains(lower, "am"))

	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}

	var fields []string
	for _, f := range strings.Split(b.String(), ":") {
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) < 2 {
		return 0, false
	}

	h, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}

	switch {
	case pm && h < 12:
		h += 12
	case am && h == 12:
		h = 0
	}
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders minutes as a zero-padded "HH:MM", normalized into a
// single day.
func FormatClock(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddClock shifts a clock string by the given minutes.
func AddClock(text string, minutes int) (string, bool) {
	base, ok := ParseClock(text)
	if !ok {
		return "", false
	}
	return FormatClock(base + minutes), true
}

// Gap returns the minutes from one clock value to another, wrapping by a
// full day when the result would be negative (next-day arrival).
func Gap(from, to int) int {
	d := to - from
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}

// Of formats the wall-clock part of t.
func Of(t time.Time) string {
	return FormatClock(t.Hour()*60 + t.Minute())
}
