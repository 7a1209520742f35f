package repository

import (
	"digique-backend/internal/domain/entity"
	domainRepo "digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type updateHistoryRepository struct{}

func NewUpdateHistoryRepository() domainRepo.UpdateHistoryRepository {
	return &updateHistoryRepository{}
}

func (r *updateHistoryRepository) CreateBatch(db *gorm.DB, entries []entity.UpdateHistory) error {
	if len(entries) == 0 {
		return nil
	}
	return db.Create(&entries).Error
}

func (r *updateHistoryRepository) FindByUser(db *gorm.DB, userID uuid.UUID) ([]entity.UpdateHistory, error) {
	var entries []entity.UpdateHistory
	err := db.Where("user_id = ?", userID).
		Order("changed_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
