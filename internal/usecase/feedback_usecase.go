package usecase

import (
	"context"
	"errors"

	"digique-backend/internal/converter"
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/domain/repository"
	"digique-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound      = errors.New("feedback not found")
	ErrFeedbackNotOwned      = errors.New("feedback is not addressed to your hospital")
	ErrInvalidFeedbackStatus = errors.New("feedback status must be Reviewed or Closed")
)

type FeedbackUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]dto.FeedbackResponse, error)
	UpdateStatus(ctx context.Context, actor service.AuditActor, feedbackID uuid.UUID, req *dto.UpdateFeedbackStatusRequest) (*dto.FeedbackResponse, error)
}

type feedbackUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	feedbackRepo repository.FeedbackRepository
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
}

func NewFeedbackUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.FeedbackRepository,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		db:           db,
		log:          log,
		feedbackRepo: feedbackRepo,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
	}
}

func (u *feedbackUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	db := u.db.WithContext(ctx)

	feedback := &entity.Feedback{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  entity.FeedbackStatusOpen,
	}

	if req.HospitalID != "" {
		hospitalID, err := uuid.Parse(req.HospitalID)
		if err != nil {
			return nil, ErrHospitalNotFound
		}
		hospital, err := u.hospitalRepo.FindByID(db, hospitalID)
		if err != nil {
			u.log.Warnf("Failed to find hospital by ID: %+v", err)
			return nil, err
		}
		if hospital == nil {
			return nil, ErrHospitalNotFound
		}
		feedback.HospitalID = &hospital.ID
	}

	if err := u.feedbackRepo.Create(db, feedback); err != nil {
		if isForeignKeyError(err, "hospital") {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to create feedback: %+v", err)
		return nil, err
	}

	return converter.FeedbackToResponse(feedback), nil
}

func (u *feedbackUsecase) ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]dto.FeedbackResponse, error) {
	items, err := u.feedbackRepo.FindByHospital(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital feedback: %+v", err)
		return nil, err
	}

	return converter.FeedbacksToResponses(items), nil
}

func (u *feedbackUsecase) UpdateStatus(ctx context.Context, actor service.AuditActor, feedbackID uuid.UUID, req *dto.UpdateFeedbackStatusRequest) (*dto.FeedbackResponse, error) {
	status, err := entity.ParseFeedbackStatus(req.Status)
	if err != nil || status == entity.FeedbackStatusOpen {
		return nil, ErrInvalidFeedbackStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	feedback, err := u.feedbackRepo.FindByID(tx, feedbackID)
	if err != nil {
		u.log.Warnf("Failed to find feedback by ID: %+v", err)
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	if feedback.HospitalID == nil || *feedback.HospitalID != actor.HospitalID {
		return nil, ErrFeedbackNotOwned
	}

	previous := feedback.Status
	if err := u.feedbackRepo.UpdateStatus(tx, feedback.ID, status); err != nil {
		u.log.Warnf("Failed to update feedback status: %+v", err)
		return nil, err
	}
	feedback.Status = status

	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionFeedbackStatus, entity.AuditEntityFeedback, feedback.ID.String(),
		map[string]interface{}{"status": previous},
		map[string]interface{}{"status": status},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.FeedbackToResponse(feedback), nil
}
