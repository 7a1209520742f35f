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

func TestUserUsecase_UpdateProfileRecordsHistory(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	log := testutil.NewLogger()
	user := &entity.User{ID: uuid.New(), Email: "ana@example.com", FirstName: "Ana", LastName: "Lee", Role: entity.RolePatient}
	users := testutil.NewUserRepo(user)
	history := &testutil.HistoryRepo{}
	uc := NewUserUsecase(db, log, users, history, service.NewHistoryService(log, history))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{
		FirstName:   strPtr("Anna"),
		LastName:    strPtr("Lee"),
		DateOfBirth: strPtr("1990-05-01"),
		Address:     &dto.AddressDTO{City: "Pune", Country: "India"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", resp.FirstName)
	assert.Equal(t, "1990-05-01", resp.DateOfBirth)
	assert.Equal(t, "Pune", resp.Address.City)
	assert.Equal(t, "Anna", users.Users[user.ID].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())

	entries, err := uc.GetHistory(ctx, user.ID)
	require.NoError(t, err)
	fields := make([]string, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"firstName", "dateOfBirth", "address"}, fields)
}

func TestUserUsecase_UpdateProfileErrors(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	log := testutil.NewLogger()
	user := &entity.User{ID: uuid.New(), FirstName: "Ana"}
	history := &testutil.HistoryRepo{}
	uc := NewUserUsecase(db, log, testutil.NewUserRepo(user), history, service.NewHistoryService(log, history))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := uc.UpdateProfile(ctx, uuid.New(), &dto.UpdateProfileRequest{FirstName: strPtr("X")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = uc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{DateOfBirth: strPtr("yesterday")})
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, history.Entries)
}

func TestUserUsecase_GetProfile(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	log := testutil.NewLogger()
	user := &entity.User{ID: uuid.New(), FirstName: "Ana", Password: "hash"}
	history := &testutil.HistoryRepo{}
	uc := NewUserUsecase(db, log, testutil.NewUserRepo(user), history, service.NewHistoryService(log, history))

	resp, err := uc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.FirstName)
	assert.Nil(t, resp.Address)

	_, err = uc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
