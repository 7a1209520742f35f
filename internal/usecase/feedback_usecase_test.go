package usecase

import (
	"context"
	"testing"

	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/service"
	"digique-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackUsecase(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	log := testutil.NewLogger()
	hospital := &entity.Hospital{ID: uuid.New(), Name: "City Care"}
	feedback := testutil.NewFeedbackRepo()
	audit := &testutil.AuditRepo{}
	uc := NewFeedbackUsecase(db, log, feedback, testutil.NewHospitalRepo(hospital), service.NewAuditService(log, audit))
	ctx := context.Background()

	_, err := uc.Create(ctx, uuid.New(), &dto.CreateFeedbackRequest{Subject: "Hi", Message: "Hello", HospitalID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrHospitalNotFound)

	created, err := uc.Create(ctx, uuid.New(), &dto.CreateFeedbackRequest{Subject: "Long wait", Message: "Waited an hour", HospitalID: hospital.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, string(entity.FeedbackStatusOpen), created.Status)

	general, err := uc.Create(ctx, uuid.New(), &dto.CreateFeedbackRequest{Subject: "App", Message: "Nice app"})
	require.NoError(t, err)
	assert.Nil(t, general.HospitalID)

	list, err := uc.ListForHospital(ctx, hospital.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	owner := service.AuditActor{UserID: uuid.New(), HospitalID: hospital.ID}

	_, err = uc.UpdateStatus(ctx, owner, created.ID, &dto.UpdateFeedbackStatusRequest{Status: "Open"})
	assert.ErrorIs(t, err, ErrInvalidFeedbackStatus)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = uc.UpdateStatus(ctx, service.AuditActor{HospitalID: uuid.New()}, created.ID, &dto.UpdateFeedbackStatusRequest{Status: "Closed"})
	assert.ErrorIs(t, err, ErrFeedbackNotOwned)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = uc.UpdateStatus(ctx, owner, general.ID, &dto.UpdateFeedbackStatusRequest{Status: "Closed"})
	assert.ErrorIs(t, err, ErrFeedbackNotOwned)

	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := uc.UpdateStatus(ctx, owner, created.ID, &dto.UpdateFeedbackStatusRequest{Status: "Reviewed"})
	require.NoError(t, err)
	assert.Equal(t, "Reviewed", updated.Status)
	assert.Equal(t, []string{entity.AuditActionFeedbackStatus}, audit.Actions())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogUsecase_Paging(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	hospitalID := uuid.New()
	repo := &testutil.AuditRepo{}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(nil, &entity.AuditLog{HospitalID: &hospitalID, Action: entity.AuditActionDoctorUpdate}))
	}
	other := uuid.New()
	require.NoError(t, repo.Create(nil, &entity.AuditLog{HospitalID: &other, Action: entity.AuditActionDoctorCreate}))

	uc := NewAuditLogUsecase(db, testutil.NewLogger(), repo)

	page, err := uc.ListForHospital(context.Background(), hospitalID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, int64(5), page.Logs[0].ID)

	defaults, err := uc.ListForHospital(context.Background(), hospitalID, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, DefaultAuditLogLimit, defaults.Limit)
	assert.Equal(t, 0, defaults.Offset)
	assert.Len(t, defaults.Logs, 5)
}
