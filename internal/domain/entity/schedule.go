package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"digique-backend/pkg/timeslot"
)

const (
	DefaultSlotDurationMinutes = 30
	DefaultDayStart            = "09:00"
	DefaultDayEnd              = "17:00"

	maxSlotDurationMinutes = 24 * 60
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// Weekdays lists the schedule keys from Monday to Sunday.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DaySchedule is the working window of one weekday. Start and end are kept
// when the day is disabled so they can be re-enabled later.
type DaySchedule struct {
	IsAvailable bool   `json:"isAvailable"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// WeeklySchedule is the recurring template slots are generated from. It is
// always replaced as a whole.
type WeeklySchedule struct {
	Monday              *DaySchedule `json:"monday,omitempty"`
	Tuesday             *DaySchedule `json:"tuesday,omitempty"`
	Wednesday           *DaySchedule `json:"wednesday,omitempty"`
	Thursday            *DaySchedule `json:"thursday,omitempty"`
	Friday              *DaySchedule `json:"friday,omitempty"`
	Saturday            *DaySchedule `json:"saturday,omitempty"`
	Sunday              *DaySchedule `json:"sunday,omitempty"`
	SlotDurationMinutes int          `json:"appointmentDuration"`
}

func defaultDay() *DaySchedule {
	return &DaySchedule{IsAvailable: false, StartTime: DefaultDayStart, EndTime: DefaultDayEnd}
}

// DefaultWeeklySchedule is assigned to every new doctor.
func DefaultWeeklySchedule() WeeklySchedule {
	return WeeklySchedule{
		Monday:              defaultDay(),
		Tuesday:             defaultDay(),
		Wednesday:           defaultDay(),
		Thursday:            defaultDay(),
		Friday:              defaultDay(),
		Saturday:            defaultDay(),
		Sunday:              defaultDay(),
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}

func (s *WeeklySchedule) days() map[string]**DaySchedule {
	return map[string]**DaySchedule{
		"monday":    &s.Monday,
		"tuesday":   &s.Tuesday,
		"wednesday": &s.Wednesday,
		"thursday":  &s.Thursday,
		"friday":    &s.Friday,
		"saturday":  &s.Saturday,
		"sunday":    &s.Sunday,
	}
}

// Day returns the entry for a weekday key such as "monday".
func (s *WeeklySchedule) Day(weekday string) (DaySchedule, bool) {
	slot, ok := s.days()[weekday]
	if !ok || *slot == nil {
		return DaySchedule{}, false
	}
	return **slot, true
}

// SetDay replaces the entry of a weekday.
func (s *WeeklySchedule) SetDay(weekday string, day DaySchedule) bool {
	slot, ok := s.days()[weekday]
	if !ok {
		return false
	}
	*slot = &day
	return true
}

// Normalize fills missing days, blank times and an unset slot duration
// with the defaults. Negative durations are left for Validate to reject.
func (s *WeeklySchedule) Normalize() {
	if s.SlotDurationMinutes == 0 {
		s.SlotDurationMinutes = DefaultSlotDurationMinutes
	}
	for _, slot := range s.days() {
		if *slot == nil {
			*slot = defaultDay()
			continue
		}
		if (*slot).StartTime == "" {
			(*slot).StartTime = DefaultDayStart
		}
		if (*slot).EndTime == "" {
			(*slot).EndTime = DefaultDayEnd
		}
	}
}

// Validate checks the slot duration and every enabled day.
func (s *WeeklySchedule) Validate() error {
	if s.SlotDurationMinutes <= 0 || s.SlotDurationMinutes > maxSlotDurationMinutes {
		return fmt.Errorf("%w: appointmentDuration must be between 1 and %d minutes", ErrInvalidSchedule, maxSlotDurationMinutes)
	}

	for _, weekday := range Weekdays {
		day, ok := s.Day(weekday)
		if !ok || !day.IsAvailable {
			continue
		}
		start, err := timeslot.ParseClock(day.StartTime)
		if err != nil {
			return fmt.Errorf("%w: %s startTime must be HH:MM", ErrInvalidSchedule, weekday)
		}
		end, err := timeslot.ParseClock(day.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %s endTime must be HH:MM", ErrInvalidSchedule, weekday)
		}
		if start >= end {
			return fmt.Errorf("%w: %s startTime must be before endTime", ErrInvalidSchedule, weekday)
		}
	}

	return nil
}

// Slots lists every bookable label of the weekday, ignoring existing
// appointments. A disabled or missing day yields nothing. An unset duration
// falls back to the default.
func (s *WeeklySchedule) Slots(weekday string) ([]string, error) {
	day, ok := s.Day(weekday)
	if !ok || !day.IsAvailable {
		return []string{}, nil
	}
	step := s.SlotDurationMinutes
	if step <= 0 {
		step = DefaultSlotDurationMinutes
	}
	return timeslot.Generate(day.StartTime, day.EndTime, step)
}

// Value returns json value, implement driver.Valuer interface
func (s WeeklySchedule) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan scan value into WeeklySchedule, implements sql.Scanner interface
func (s *WeeklySchedule) Scan(value interface{}) error {
	if value == nil {
		*s = WeeklySchedule{}
		return nil
	}
	return unmarshalJSONB(value, s)
}
