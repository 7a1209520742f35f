package service

import (
	"context"
	"reflect"
	"time"

	"digique-backend/internal/domain/entity"
	"digique-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HistoryService records which profile fields of a user changed.
type HistoryService interface {
	RecordProfileChanges(ctx context.Context, tx *gorm.DB, before, after *entity.User) ([]entity.UpdateHistory, error)
}

type historyService struct {
	log         *logrus.Logger
	historyRepo repository.UpdateHistoryRepository
}

func NewHistoryService(log *logrus.Logger, historyRepo repository.UpdateHistoryRepository) HistoryService {
	return &historyService{
		log:         log,
		historyRepo: historyRepo,
	}
}

func (s *historyService) RecordProfileChanges(ctx context.Context, tx *gorm.DB, before, after *entity.User) ([]entity.UpdateHistory, error) {
	entries := DiffProfile(after.ID, before, after, time.Now().UTC())
	if len(entries) == 0 {
		return entries, nil
	}

	if err := s.historyRepo.CreateBatch(tx, entries); err != nil {
		s.log.Warnf("Failed to record profile history for user %s: %+v", after.ID, err)
		return nil, err
	}
	return entries, nil
}

// DiffProfile returns one entry per editable field whose value differs.
func DiffProfile(userID uuid.UUID, before, after *entity.User, at time.Time) []entity.UpdateHistory {
	fields := []struct {
		name     string
		old, new interface{}
	}{
		{"firstName", before.FirstName, after.FirstName},
		{"lastName", before.LastName, after.LastName},
		{"phoneNumber", before.PhoneNumber, after.PhoneNumber},
		{"location", before.Location, after.Location},
		{"dateOfBirth", formatOptionalDate(before.DateOfBirth), formatOptionalDate(after.DateOfBirth)},
		{"gender", before.Gender, after.Gender},
		{"address", before.Address, after.Address},
		{"emergencyContact", before.EmergencyContact, after.EmergencyContact},
	}

	var entries []entity.UpdateHistory
	for _, f := range fields {
		if reflect.DeepEqual(f.old, f.new) {
			continue
		}
		entries = append(entries, entity.UpdateHistory{
			UserID:    userID,
			Field:     f.name,
			OldValue:  entity.Any{Data: f.old},
			NewValue:  entity.Any{Data: f.new},
			ChangedAt: at,
		})
	}
	return entries
}

func formatOptionalDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02")
}
