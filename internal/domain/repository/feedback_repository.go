package repository

import (
	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(db *gorm.DB, feedback *entity.Feedback) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Feedback, error)
	FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Feedback, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.FeedbackStatus) error
}
