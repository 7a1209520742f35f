package repository

import (
	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateHistoryRepository interface {
	CreateBatch(db *gorm.DB, entries []entity.UpdateHistory) error
	FindByUser(db *gorm.DB, userID uuid.UUID) ([]entity.UpdateHistory, error)
}
