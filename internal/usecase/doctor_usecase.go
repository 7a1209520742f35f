package usecase

import (
	"context"
	"errors"
	"strings"

	"digique-backend/internal/converter"
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/domain/repository"
	"digique-backend/internal/service"
	"digique-backend/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound = service.ErrDoctorNotFound
	ErrDoctorNotOwned = errors.New("doctor does not belong to your hospital")
)

type DoctorUsecase interface {
	List(ctx context.Context, hospitalID *uuid.UUID) ([]dto.DoctorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)

	// Administrator operations. Every mutation checks the doctor belongs to
	// actor.HospitalID before writing.
	Create(ctx context.Context, actor service.AuditActor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, actor service.AuditActor, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, actor service.AuditActor, doctorID uuid.UUID) error
	UpdateSchedule(ctx context.Context, actor service.AuditActor, doctorID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	doctorRepo          repository.DoctorRepository
	availabilityService service.AvailabilityService
	auditService        service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	availabilityService service.AvailabilityService,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                  db,
		log:                 log,
		doctorRepo:          doctorRepo,
		availabilityService: availabilityService,
		auditService:        auditService,
	}
}

func (u *doctorUsecase) List(ctx context.Context, hospitalID *uuid.UUID) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// GetAvailability returns the free slot labels of the doctor on date, or an
// empty list when the doctor does not work that day.
func (u *doctorUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	if strings.TrimSpace(date) == "" {
		return nil, ErrInvalidDate
	}
	day, err := timeslot.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	return u.availabilityService.ComputeAvailableSlots(ctx, doctorID, day)
}

func (u *doctorUsecase) Create(ctx context.Context, actor service.AuditActor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor := &entity.Doctor{
		HospitalID:   actor.HospitalID,
		Name:         req.Name,
		Specialty:    req.Specialty,
		ProfileImage: req.ProfileImage,
		Schedule:     entity.DefaultWeeklySchedule(),
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isForeignKeyError(err, "hospital") {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	resp := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionDoctorCreate, entity.AuditEntityDoctor, doctor.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *doctorUsecase) Update(ctx context.Context, actor service.AuditActor, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.findOwnedDoctor(tx, actor, doctorID)
	if err != nil {
		return nil, err
	}

	before := converter.DoctorToResponse(doctor)

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.ProfileImage != nil {
		doctor.ProfileImage = *req.ProfileImage
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	after := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorUpdate, entity.AuditEntityDoctor, doctor.ID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}

// Delete soft-deletes the doctor. Existing appointments keep pointing at it.
func (u *doctorUsecase) Delete(ctx context.Context, actor service.AuditActor, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.findOwnedDoctor(tx, actor, doctorID)
	if err != nil {
		return err
	}

	if err := u.doctorRepo.Delete(tx, doctor.ID); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionDoctorDelete, entity.AuditEntityDoctor, doctor.ID.String(), converter.DoctorToResponse(doctor)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// UpdateSchedule replaces the whole weekly template. Concurrent edits are
// last-write-wins.
func (u *doctorUsecase) UpdateSchedule(ctx context.Context, actor service.AuditActor, doctorID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.DoctorResponse, error) {
	schedule := *req.Schedule
	schedule.Normalize()
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.findOwnedDoctor(tx, actor, doctorID)
	if err != nil {
		return nil, err
	}

	previous := doctor.Schedule

	if err := u.doctorRepo.UpdateSchedule(tx, doctor.ID, schedule); err != nil {
		u.log.Warnf("Failed to update doctor schedule: %+v", err)
		return nil, err
	}
	doctor.Schedule = schedule

	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionScheduleUpdate, entity.AuditEntityDoctor, doctor.ID.String(), previous, schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) findOwnedDoctor(db *gorm.DB, actor service.AuditActor, doctorID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.BelongsTo(actor.HospitalID) {
		return nil, ErrDoctorNotOwned
	}
	return doctor, nil
}
