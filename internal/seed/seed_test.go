package seed

import (
	"context"
	"testing"

	"digique-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultData(t *testing.T) {
	data, err := DefaultData()
	require.NoError(t, err)
	assert.Len(t, data.Hospitals, 5)
	assert.Len(t, data.Doctors, 5)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	hospitals := testutil.NewHospitalRepo()
	doctors := testutil.NewDoctorRepo()
	seeder := NewSeeder(db, testutil.NewLogger(), hospitals, doctors)

	data, err := DefaultData()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := seeder.Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 5, first.HospitalsCreated)
	// Two doctors reference hospitals that are not in the data set
	assert.Equal(t, 3, first.DoctorsSkipped)
	assert.Equal(t, 2, first.DoctorsCreated)

	for _, d := range doctors.Doctors {
		monday, ok := d.Schedule.Day("monday")
		require.True(t, ok)
		assert.True(t, monday.IsAvailable)
		assert.Equal(t, "17:00", monday.EndTime)
		saturday, _ := d.Schedule.Day("saturday")
		assert.False(t, saturday.IsAvailable)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := seeder.Run(context.Background(), data)
	require.NoError(t, err)
	assert.Zero(t, second.HospitalsCreated)
	assert.Equal(t, 5, second.HospitalsUpdated)
	assert.Equal(t, 2, second.DoctorsUpdated)
	assert.Len(t, hospitals.Hospitals, 5)
	assert.Len(t, doctors.Doctors, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
