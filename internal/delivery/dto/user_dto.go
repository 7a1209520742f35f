package dto

import (
	"time"
)

type AddressDTO struct {
	Street  string `json:"street" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	ZipCode string `json:"zipCode" validate:"omitempty,max=20"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

type EmergencyContactDTO struct {
	Name         string `json:"name" validate:"omitempty,max=100"`
	Relationship string `json:"relationship" validate:"omitempty,max=50"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateProfileRequest leaves a field unchanged when it is omitted.
type UpdateProfileRequest struct {
	FirstName        *string              `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName         *string              `json:"lastName" validate:"omitempty,min=1,max=100"`
	PhoneNumber      *string              `json:"phoneNumber" validate:"omitempty,max=20"`
	Location         *string              `json:"location" validate:"omitempty,max=255"`
	DateOfBirth      *string              `json:"dateOfBirth" validate:"omitempty,calendar_date"`
	Gender           *string              `json:"gender" validate:"omitempty,max=20"`
	Address          *AddressDTO          `json:"address"`
	EmergencyContact *EmergencyContactDTO `json:"emergencyContact"`
}

type UpdateHistoryResponse struct {
	ID        int64       `json:"id"`
	Field     string      `json:"field"`
	OldValue  interface{} `json:"oldValue"`
	NewValue  interface{} `json:"newValue"`
	ChangedAt time.Time   `json:"changedAt"`
}
