package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	Subject    string `json:"subject" validate:"required,min=3,max=255"`
	Message    string `json:"message" validate:"required,min=3,max=5000"`
	HospitalID string `json:"hospitalId" validate:"omitempty,uuid"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Reviewed Closed"`
}

type FeedbackResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	UserName   string     `json:"userName,omitempty"`
	UserEmail  string     `json:"userEmail,omitempty"`
	HospitalID *uuid.UUID `json:"hospitalId,omitempty"`
	Subject    string     `json:"subject"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
