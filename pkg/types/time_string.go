package types

import (
	"fmt"
	"time"
)

const timeStringLayout = "15:04"

// TimeString время суток в формате "HH:MM"
type TimeString string

// NewTimeString возвращает время суток момента t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString проверяет формат "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeStringLayout, s); err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s)
	}
	return TimeString(s), nil
}

// On возвращает момент времени в заданный день
func (ts TimeString) On(day time.Time) (time.Time, error) {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func (ts TimeString) String() string {
	return string(ts)
}
