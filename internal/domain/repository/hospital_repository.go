package repository

import (
	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	FindAll(db *gorm.DB, location string) ([]entity.Hospital, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Hospital, error)
	FindByName(db *gorm.DB, name string) (*entity.Hospital, error)
	Update(db *gorm.DB, hospital *entity.Hospital) error
}
