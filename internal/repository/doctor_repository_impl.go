package repository

import (
	"errors"

	"digique-backend/internal/domain/entity"
	domainRepo "digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindAll(db *gorm.DB, hospitalID *uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := db.Preload("Hospital")
	if hospitalID != nil {
		query = query.Where("hospital_id = ?", *hospitalID)
	}
	if err := query.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("Hospital").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByHospitalAndName(db *gorm.DB, hospitalID uuid.UUID, name string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("hospital_id = ? AND name = ?", hospitalID, name).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindSchedule(db *gorm.DB, doctorID uuid.UUID) (*entity.WeeklySchedule, error) {
	var doctor entity.Doctor
	err := db.Select("id", "schedule").Where("id = ?", doctorID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor.Schedule, nil
}

func (r *doctorRepository) CountByHospital(db *gorm.DB, hospitalID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Where("hospital_id = ?", hospitalID).Count(&count).Error
	return count, err
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Model(&entity.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{
			"name":          doctor.Name,
			"specialty":     doctor.Specialty,
			"profile_image": doctor.ProfileImage,
		}).Error
}

// UpdateSchedule overwrites the whole template. Concurrent writers are
// last-write-wins.
func (r *doctorRepository) UpdateSchedule(db *gorm.DB, id uuid.UUID, schedule entity.WeeklySchedule) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).Update("schedule", schedule).Error
}

// Delete is a soft delete so appointment history keeps its doctor.
func (r *doctorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Doctor{}).Error
}
