package service

import (
	"context"
	"errors"
	"time"

	"digique-backend/internal/domain/repository"
	"digique-backend/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// AvailabilityService derives bookable slots from a doctor's weekly
// schedule minus the slots held by Scheduled appointments.
type AvailabilityService interface {
	ComputeAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)
	IsSlotAvailable(ctx context.Context, doctorID uuid.UUID, date time.Time, clock string) (bool, error)
}

type availabilityService struct {
	db           *gorm.DB
	log          *logrus.Logger
	schedules    repository.ScheduleStore
	appointments repository.AppointmentStore
}

func NewAvailabilityService(
	db *gorm.DB,
	log *logrus.Logger,
	schedules repository.ScheduleStore,
	appointments repository.AppointmentStore,
) AvailabilityService {
	return &availabilityService{
		db:           db,
		log:          log,
		schedules:    schedules,
		appointments: appointments,
	}
}

// ComputeAvailableSlots returns the chronologically ordered free labels of
// the calendar day. The result is a snapshot; nothing is reserved.
func (s *availabilityService) ComputeAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	schedule, err := s.schedules.FindSchedule(s.db.WithContext(ctx), doctorID)
	if err != nil {
		s.log.Warnf("Failed to load schedule for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrDoctorNotFound
	}

	candidates, err := schedule.Slots(timeslot.WeekdayKey(date))
	if err != nil {
		s.log.Warnf("Stored schedule of doctor %s cannot generate slots: %+v", doctorID, err)
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	from, to := timeslot.DayRange(date)
	booked, err := s.appointments.FindBookedTimes(s.db.WithContext(ctx), doctorID, from, to)
	if err != nil {
		s.log.Warnf("Failed to load booked times for doctor %s on %s: %+v", doctorID, timeslot.FormatDate(date), err)
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, label := range booked {
		normalized, err := timeslot.Normalize(label)
		if err != nil {
			s.log.Warnf("Ignoring unparseable appointment time %q for doctor %s", label, doctorID)
			continue
		}
		taken[normalized] = struct{}{}
	}

	available := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available, nil
}

// IsSlotAvailable reports whether clock is currently in the free set.
func (s *availabilityService) IsSlotAvailable(ctx context.Context, doctorID uuid.UUID, date time.Time, clock string) (bool, error) {
	slots, err := s.ComputeAvailableSlots(ctx, doctorID, date)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot == clock {
			return true, nil
		}
	}
	return false, nil
}
