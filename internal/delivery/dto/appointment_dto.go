package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,calendar_date"`
	Time     string `json:"time" validate:"required,slot_time"`
}

// UpdateAppointmentRequest is a patient's reschedule or cancellation.
type UpdateAppointmentRequest struct {
	Date   *string `json:"date" validate:"omitempty,calendar_date"`
	Time   *string `json:"time" validate:"omitempty,slot_time"`
	Status *string `json:"status" validate:"omitempty,appointment_status"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Completed Cancelled"`
}

// HospitalAppointmentQuery holds the optional filters of the admin list.
type HospitalAppointmentQuery struct {
	Date     string `validate:"omitempty,calendar_date"`
	DoctorID string `validate:"omitempty,uuid"`
	Status   string `validate:"omitempty,appointment_status"`
}

// Response DTOs

type AppointmentDoctor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
}

type AppointmentHospital struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

type AppointmentPatient struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

type AppointmentResponse struct {
	ID         uuid.UUID            `json:"id"`
	PatientID  uuid.UUID            `json:"patientId"`
	DoctorID   uuid.UUID            `json:"doctorId"`
	HospitalID uuid.UUID            `json:"hospitalId"`
	Date       string               `json:"date"`
	Time       string               `json:"time"`
	Status     string               `json:"status"`
	Doctor     *AppointmentDoctor   `json:"doctor,omitempty"`
	Hospital   *AppointmentHospital `json:"hospital,omitempty"`
	Patient    *AppointmentPatient  `json:"patient,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}
