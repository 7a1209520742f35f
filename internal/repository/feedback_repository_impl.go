package repository

import (
	"errors"

	"digique-backend/internal/domain/entity"
	domainRepo "digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type feedbackRepository struct{}

func NewFeedbackRepository() domainRepo.FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(db *gorm.DB, feedback *entity.Feedback) error {
	return db.Create(feedback).Error
}

func (r *feedbackRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := db.Where("id = ?", id).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Feedback, error) {
	var feedback []entity.Feedback
	err := db.Preload("User").
		Where("hospital_id = ?", hospitalID).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (r *feedbackRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.FeedbackStatus) error {
	return db.Model(&entity.Feedback{}).Where("id = ?", id).Update("status", status).Error
}
