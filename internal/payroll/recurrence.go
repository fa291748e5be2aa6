package payroll

import (
	"errors"
	"regexp"
	"time"
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 180

	MaxRepeatCount = 52
)

var (
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime     = errors.New("time must be HH:MM")
	ErrInvalidCount    = errors.New("repeat count out of range")
	ErrInvalidDuration = errors.New("duration out of range")
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// WeeklyOccurrences expands a base SGT date/time into count instants spaced
// exactly seven days apart, all at the same local time-of-day. Any invalid
// input fails the whole expansion so a recurring batch is created
// all-or-nothing.
func WeeklyOccurrences(baseDate, baseTime string, count int) ([]time.Time, error) {
	if count < 1 || count > MaxRepeatCount {
		return nil, ErrInvalidCount
	}
	if !dateRe.MatchString(baseDate) {
		return nil, ErrInvalidDate
	}
	if !timeRe.MatchString(baseTime) {
		return nil, ErrInvalidTime
	}

	// Catches impossible calendar dates like 2024-02-31 that pass the regex.
	base, err := time.ParseInLocation("2006-01-02 15:04", baseDate+" "+baseTime, sgt)
	if err != nil {
		return nil, ErrInvalidDate
	}

	occurrences := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		occurrences = append(occurrences, base.AddDate(0, 0, 7*i).UTC())
	}
	return occurrences, nil
}

// ValidClockTime reports whether s is a 24-hour HH:MM string.
func ValidClockTime(s string) bool {
	return timeRe.MatchString(s)
}

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	return nil
}
