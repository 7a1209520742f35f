package repository

import (
	"testing"
	"time"

	"digique-backend/internal/domain/entity"
	"digique-backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentRepository_FindBookedTimes(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewAppointmentRepository()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT "appointment_time" FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_time"}).AddRow("10:00").AddRow("11:30"))

	times, err := repo.FindBookedTimes(db, uuid.New(), from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:30"}, times)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepository_FindSchedule(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewDoctorRepository()
	doctorID := uuid.New()

	stored := entity.DefaultWeeklySchedule()
	stored.SetDay("monday", entity.DaySchedule{IsAvailable: true, StartTime: "09:00", EndTime: "11:00"})
	raw, err := stored.Value()
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule"}).AddRow(doctorID.String(), raw))

	schedule, err := repo.FindSchedule(db, doctorID)
	require.NoError(t, err)
	require.NotNil(t, schedule)
	assert.Equal(t, stored, *schedule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepository_FindScheduleMissingDoctor(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewDoctorRepository()

	mock.ExpectQuery(`SELECT .* FROM "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule"}))

	schedule, err := repo.FindSchedule(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, schedule)
}

func TestAppointmentRepository_UpdateStatusReportsAffectedRows(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET "status"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatus(db, uuid.New(), entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
