package entities

import (
	"fmt"
	"time"
)

// timeOfDayLayout is the wire and storage form of a time of day.
const timeOfDayLayout = "15:04"

// ParseTimeOfDay validates an "HH:MM" time-of-day string.
func ParseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t, nil
}

// AddToTimeOfDay returns the "HH:MM" time d after start. Results wrap at
// midnight the way a 23:45 + 30min slot would.
func AddToTimeOfDay(start string, d time.Duration) (string, error) {
	t, err := ParseTimeOfDay(start)
	if err != nil {
		return "", err
	}
	return t.Add(d).Format(timeOfDayLayout), nil
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
