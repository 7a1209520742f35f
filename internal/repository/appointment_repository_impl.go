package repository

import (
	"errors"
	"time"

	"digique-backend/internal/domain/entity"
	domainRepo "digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// Create relies on uq_appointments_doctor_slot to reject a second Scheduled
// appointment on the same doctor, date and time.
func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := withRelations(db).Where("appointments.id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date < ? AND status = ?",
			doctorID, from, to, entity.AppointmentStatusScheduled).
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := applyAppointmentFilter(withRelations(db).Model(&entity.Appointment{}), filter).
		Order("appointment_date ASC").
		Order("appointment_time ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Count(db *gorm.DB, filter entity.AppointmentFilter) (int64, error) {
	var count int64
	err := applyAppointmentFilter(db.Model(&entity.Appointment{}), filter).Count(&count).Error
	return count, err
}

// Reschedule moves a Scheduled appointment. Returns affected rows: 0 means
// it left the Scheduled state concurrently.
func (r *appointmentRepository) Reschedule(db *gorm.DB, id uuid.UUID, date time.Time, clock string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Updates(map[string]interface{}{
			"appointment_date": date,
			"appointment_time": clock,
		})
	return result.RowsAffected, result.Error
}

// UpdateStatus is a compare-and-swap on the status column.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient").
		Preload("Hospital").
		Preload("Doctor", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

func applyAppointmentFilter(query *gorm.DB, filter entity.AppointmentFilter) *gorm.DB {
	if filter.HospitalID != nil {
		query = query.Where("appointments.hospital_id = ?", *filter.HospitalID)
	}
	if filter.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != nil {
		query = query.Where("appointments.status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("appointments.appointment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("appointments.appointment_date < ?", *filter.To)
	}
	return query
}
