package usecase

import (
	"context"
	"errors"

	"digique-backend/internal/converter"
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/repository"
	"digique-backend/internal/service"
	"digique-backend/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotHospitalAdmin  = errors.New("only hospital administrators can access this resource")
	ErrNoManagedHospital = errors.New("no hospital is linked to this administrator")
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]dto.UpdateHistoryResponse, error)
	ResolveManagedHospital(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

type userUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	historyRepo    repository.UpdateHistoryRepository
	historyService service.HistoryService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	historyRepo repository.UpdateHistoryRepository,
	historyService service.HistoryService,
) UserUsecase {
	return &userUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		historyRepo:    historyRepo,
		historyService: historyService,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// UpdateProfile applies the provided fields and records one history row per
// changed field in the same transaction.
func (u *userUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	before := *user

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			user.DateOfBirth = nil
		} else {
			dob, err := timeslot.ParseDate(*req.DateOfBirth)
			if err != nil {
				return nil, ErrInvalidDate
			}
			user.DateOfBirth = &dob
		}
	}
	if req.Address != nil {
		user.Address = converter.AddressFromDTO(req.Address)
	}
	if req.EmergencyContact != nil {
		user.EmergencyContact = converter.EmergencyContactFromDTO(req.EmergencyContact)
	}

	changes, err := u.historyService.RecordProfileChanges(ctx, tx, &before, user)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return converter.UserToResponse(user), nil
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// GetHistory returns the profile changes newest first.
func (u *userUsecase) GetHistory(ctx context.Context, userID uuid.UUID) ([]dto.UpdateHistoryResponse, error) {
	entries, err := u.historyRepo.FindByUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find update history: %+v", err)
		return nil, err
	}

	return converter.UpdateHistoriesToResponses(entries), nil
}

// ResolveManagedHospital returns the hospital a HOSPITAL user administers.
func (u *userUsecase) ResolveManagedHospital(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, ErrUserNotFound
	}
	if !user.IsHospitalAdmin() {
		return uuid.Nil, ErrNotHospitalAdmin
	}
	if user.ManagedHospitalID == nil {
		return uuid.Nil, ErrNoManagedHospital
	}
	return *user.ManagedHospitalID, nil
}
