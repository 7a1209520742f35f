package repository

import (
	"digique-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleStore resolves the weekly template of a doctor. A missing doctor
// yields a nil schedule and no error.
type ScheduleStore interface {
	FindSchedule(db *gorm.DB, doctorID uuid.UUID) (*entity.WeeklySchedule, error)
}

type DoctorRepository interface {
	ScheduleStore

	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindAll(db *gorm.DB, hospitalID *uuid.UUID) ([]entity.Doctor, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByHospitalAndName(db *gorm.DB, hospitalID uuid.UUID, name string) (*entity.Doctor, error)
	CountByHospital(db *gorm.DB, hospitalID uuid.UUID) (int64, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	UpdateSchedule(db *gorm.DB, id uuid.UUID, schedule entity.WeeklySchedule) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
