package repository

import (
	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByHospital(db *gorm.DB, hospitalID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error)
}
