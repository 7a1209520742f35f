package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status")
	ErrInvalidStatusTransition  = errors.New("appointment status cannot change from a terminal state")
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// ParseAppointmentStatus accepts only the three known statuses.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidAppointmentStatus
	}
}

// IsTerminal reports whether no further transition is possible.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment is a patient's claim on one slot of a doctor's day. Date holds
// the calendar day at UTC midnight and Time the 24-hour "HH:MM" label.
type Appointment struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	HospitalID uuid.UUID         `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Date       time.Time         `gorm:"column:appointment_date;type:date;not null;index" json:"date"`
	Time       string            `gorm:"column:appointment_time;type:varchar(5);not null" json:"time"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  *User     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor   *Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if appointment still occupies its slot
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// CanTransitionTo applies the status rules: Scheduled may move to Completed
// or Cancelled, terminal states never change, and staying put is a no-op.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) error {
	if _, err := ParseAppointmentStatus(string(next)); err != nil {
		return err
	}
	if next == a.Status {
		return nil
	}
	if a.Status.IsTerminal() || next == AppointmentStatusScheduled {
		return ErrInvalidStatusTransition
	}
	return nil
}

// OwnedBy reports whether the patient booked the appointment.
func (a *Appointment) OwnedBy(patientID uuid.UUID) bool {
	return a.PatientID == patientID
}

// SameSlot reports whether the appointment sits on the given day and label.
func (a *Appointment) SameSlot(date time.Time, clock string) bool {
	return a.Date.UTC().Equal(date.UTC()) && a.Time == clock
}
