package service

import (
	"context"

	"digique-backend/internal/domain/entity"
	"digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditActor identifies who performed an administrative action and from where.
type AuditActor struct {
	UserID     uuid.UUID
	HospitalID uuid.UUID
	IPAddress  string
	UserAgent  string
}

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(tx, actor, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(tx, actor, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(tx, actor, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(tx *gorm.DB, actor AuditActor, action, entityName, entityID string, oldValue, newValue interface{}) error {
	userID := actor.UserID
	hospitalID := actor.HospitalID

	auditLog := &entity.AuditLog{
		UserID:     &userID,
		HospitalID: &hospitalID,
		Action:     action,
		Entity:     entityName,
		EntityID:   entityID,
		Metadata: entity.JSON{
			"old_value": oldValue,
			"new_value": newValue,
		},
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
