package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidFeedbackStatus = errors.New("invalid feedback status")

type FeedbackStatus string

const (
	FeedbackStatusOpen     FeedbackStatus = "Open"
	FeedbackStatusReviewed FeedbackStatus = "Reviewed"
	FeedbackStatusClosed   FeedbackStatus = "Closed"
)

func ParseFeedbackStatus(s string) (FeedbackStatus, error) {
	switch status := FeedbackStatus(s); status {
	case FeedbackStatusOpen, FeedbackStatusReviewed, FeedbackStatusClosed:
		return status, nil
	default:
		return "", ErrInvalidFeedbackStatus
	}
}

// Feedback is a message a user sends, optionally addressed to a hospital.
type Feedback struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	HospitalID *uuid.UUID     `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	Subject    string         `gorm:"type:varchar(255);not null" json:"subject"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	Status     FeedbackStatus `gorm:"type:varchar(20);not null;default:'Open';index" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}
