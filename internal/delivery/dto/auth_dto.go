package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=100"`
	LastName    string `json:"lastName" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=6,max=20"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	Role        string `json:"role" validate:"omitempty,oneof=PATIENT HOSPITAL"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int64         `json:"expiresIn"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID                uuid.UUID            `json:"id"`
	Email             string               `json:"email"`
	FirstName         string               `json:"firstName"`
	LastName          string               `json:"lastName"`
	PhoneNumber       string               `json:"phoneNumber,omitempty"`
	Location          string               `json:"location,omitempty"`
	Role              string               `json:"role"`
	DateOfBirth       string               `json:"dateOfBirth,omitempty"`
	Gender            string               `json:"gender,omitempty"`
	Address           *AddressDTO          `json:"address,omitempty"`
	EmergencyContact  *EmergencyContactDTO `json:"emergencyContact,omitempty"`
	ManagedHospitalID *uuid.UUID           `json:"managedHospitalId,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}
