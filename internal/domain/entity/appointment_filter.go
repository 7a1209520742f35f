package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	HospitalID *uuid.UUID
	PatientID  *uuid.UUID
	DoctorID   *uuid.UUID
	Status     *AppointmentStatus
	From       *time.Time // inclusive
	To         *time.Time // exclusive
	Limit      int
}
