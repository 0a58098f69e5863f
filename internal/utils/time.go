package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutClock    = "15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// FormatClock formats time to HH:MM in local timezone.
func FormatClock(t time.Time) string {
	return t.In(time.Local).Format(layoutClock)
}

// CombineDateAndClock places an "HH:MM" time-of-day on the calendar day of base.
func CombineDateAndClock(base time.Time, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	parsed, err := time.Parse(layoutClock, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q", clock)
	}
	y, m, d := base.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, base.Location()), nil
}
