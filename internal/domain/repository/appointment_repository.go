package repository

import (
	"time"

	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStore lists the time labels held by Scheduled appointments of
// a doctor with a date in [from, to).
type AppointmentStore interface {
	FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]string, error)
}

type AppointmentRepository interface {
	AppointmentStore

	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	Count(db *gorm.DB, filter entity.AppointmentFilter) (int64, error)
	// Reschedule moves the appointment only while it is still Scheduled.
	Reschedule(db *gorm.DB, id uuid.UUID, date time.Time, clock string) (int64, error)
	// UpdateStatus changes the status only when the current one equals from.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
}
