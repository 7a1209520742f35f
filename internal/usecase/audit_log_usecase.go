package usecase

import (
	"context"

	"digique-backend/internal/converter"
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultAuditLogLimit = 20
	MaxAuditLogLimit     = 100
)

type AuditLogUsecase interface {
	ListForHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// ListForHospital pages through the hospital's audit trail, newest first.
func (u *auditLogUsecase) ListForHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 {
		limit = DefaultAuditLogLimit
	}
	if limit > MaxAuditLogLimit {
		limit = MaxAuditLogLimit
	}
	if offset < 0 {
		offset = 0
	}

	logs, total, err := u.auditLogRepo.FindByHospital(u.db.WithContext(ctx), hospitalID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:   converter.AuditLogsToResponses(logs),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
