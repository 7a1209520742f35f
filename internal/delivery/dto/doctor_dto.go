package dto

import (
	"time"

	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Specialty    string `json:"specialty" validate:"required,min=2,max=100"`
	ProfileImage string `json:"profileImage" validate:"omitempty,url"`
}

type UpdateDoctorRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=255"`
	Specialty    *string `json:"specialty" validate:"omitempty,min=2,max=100"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
}

// UpdateScheduleRequest replaces the doctor's whole weekly template.
type UpdateScheduleRequest struct {
	Schedule *entity.WeeklySchedule `json:"schedule" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID           uuid.UUID             `json:"id"`
	HospitalID   uuid.UUID             `json:"hospitalId"`
	HospitalName string                `json:"hospitalName,omitempty"`
	Name         string                `json:"name"`
	Specialty    string                `json:"specialty"`
	ProfileImage string                `json:"profileImage,omitempty"`
	Schedule     entity.WeeklySchedule `json:"schedule"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}
