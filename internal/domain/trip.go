// Package domain contains the core data types for the traffic diary.
// This package has zero external dependencies and is imported by every other
// internal package (geo, repo, service, chart, handler).
package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar format used for dates in the diary files.
const DateLayout = "02.01.2006"

// DateTimeLayout is the format of the combined date/time columns.
const DateTimeLayout = "02.01.2006 15:04"

// TripRecord is one diary entry: a single trip from StartPoint to EndPoint.
// Records are immutable once written; the store only supports append and a
// full reset.
type TripRecord struct {
	User       string
	StartDate  time.Time // midnight UTC
	StartTime  ClockTime
	EndDate    time.Time // midnight UTC
	EndTime    ClockTime
	StartPoint string // raw user input: address text or "lat, lon"
	EndPoint   string
	DistanceKM *float64 // nil only when a stored value could not be read as a number
	Mode       Mode
	Purpose    Purpose
}

// StartsAt combines StartDate and StartTime.
func (r TripRecord) StartsAt() time.Time {
	return r.StartTime.On(r.StartDate)
}

// EndsAt combines EndDate and EndTime.
func (r TripRecord) EndsAt() time.Time {
	return r.EndTime.On(r.EndDate)
}

// ClockTime is a time of day with minute precision, written as "HH:MM".
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM". Both parts must be exactly two digits,
// the hour 00-23 and the minute 00-59.
func ParseClockTime(s string) (ClockTime, error) {
	h, m, ok := splitClock(s)
	if !ok || len(h) != 2 || len(m) != 2 {
		return ClockTime{}, errors.New("time must have exactly two digits for hour and minute (HH:MM)")
	}
	if !isDigits(h) || !isDigits(m) {
		return ClockTime{}, errors.New("only digits are allowed in a time (e.g. 07:05)")
	}

	ct := ClockTime{
		Hour:   int(h[0]-'0')*10 + int(h[1]-'0'),
		Minute: int(m[0]-'0')*10 + int(m[1]-'0'),
	}
	if ct.Hour > 23 {
		return ClockTime{}, errors.New("hour must be between 00 and 23")
	}
	if ct.Minute > 59 {
		return ClockTime{}, errors.New("minute must be between 00 and 59")
	}
	return ct, nil
}

// String returns the time as zero-padded "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant at this time of day on the calendar day of d (UTC).
func (c ClockTime) On(d time.Time) time.Time {
	y, mo, day := d.Date()
	return time.Date(y, mo, day, c.Hour, c.Minute, 0, 0, time.UTC)
}

func splitClock(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
