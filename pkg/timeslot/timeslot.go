// Package timeslot holds the clock and calendar arithmetic used for
// appointment slots. Every value is a wall-clock label in UTC.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidTime = errors.New("invalid time, use HH:MM")
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidStep = errors.New("slot duration must be a positive number of minutes")
)

var weekdayKeys = [...]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// ParseClock parses a strict 24-hour "HH:MM" label into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTime
	}
	hour, err := parseDigits(s[:2])
	if err != nil || hour > 23 {
		return 0, ErrInvalidTime
	}
	minute, err := parseDigits(s[3:])
	if err != nil || minute > 59 {
		return 0, ErrInvalidTime
	}
	return hour*60 + minute, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Normalize converts "HH:MM", "H:MM" or "hh:mm AM/PM" into the canonical
// 24-hour label.
func Normalize(label string) (string, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return "", ErrInvalidTime
	}

	upper := strings.ToUpper(s)
	meridiem := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}
	if meridiem != "" {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hourPart, minutePart, ok := strings.Cut(s, ":")
	if !ok || len(minutePart) != 2 || len(hourPart) == 0 || len(hourPart) > 2 {
		return "", ErrInvalidTime
	}
	hour, err := parseDigits(hourPart)
	if err != nil {
		return "", ErrInvalidTime
	}
	minute, err := parseDigits(minutePart)
	if err != nil || minute > 59 {
		return "", ErrInvalidTime
	}

	switch meridiem {
	case "":
		if hour > 23 {
			return "", ErrInvalidTime
		}
	default:
		if hour < 1 || hour > 12 {
			return "", ErrInvalidTime
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
	}

	return FormatClock(hour*60 + minute), nil
}

// Generate emits every label from start, advancing by step minutes, while the
// label is strictly before end. A slot never starts at or after end.
func Generate(start, end string, step int) ([]string, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	from, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseClock(end)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, max(0, (to-from+step-1)/step))
	for m := from; m < to && m < minutesPerDay; m += step {
		slots = append(slots, FormatClock(m))
	}
	return slots, nil
}

// ParseDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns the
// UTC midnight of that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open interval [00:00, 24:00) of the calendar day.
func DayRange(date time.Time) (time.Time, time.Time) {
	start := StartOfDay(date)
	return start, start.AddDate(0, 0, 1)
}

// WeekRange returns Monday 00:00 through the following Monday 00:00.
func WeekRange(date time.Time) (time.Time, time.Time) {
	start := StartOfDay(date)
	offset := (int(start.Weekday()) + 6) % 7
	monday := start.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

// WeekdayKey returns the lower-case English weekday name of date in UTC.
func WeekdayKey(date time.Time) string {
	return weekdayKeys[date.UTC().Weekday()]
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTime
		}
	}
	return strconv.Atoi(s)
}
