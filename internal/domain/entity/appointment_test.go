package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseAppointmentStatus(t *testing.T) {
	for _, s := range []string{"Scheduled", "Completed", "Cancelled"} {
		status, err := ParseAppointmentStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, AppointmentStatus(s), status)
	}

	for _, s := range []string{"", "scheduled", "Canceled", "Pending"} {
		_, err := ParseAppointmentStatus(s)
		assert.ErrorIs(t, err, ErrInvalidAppointmentStatus, s)
	}
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		wantErr error
	}{
		{AppointmentStatusScheduled, AppointmentStatusCompleted, nil},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, nil},
		{AppointmentStatusScheduled, AppointmentStatusScheduled, nil},
		{AppointmentStatusCancelled, AppointmentStatusCancelled, nil},
		{AppointmentStatusCompleted, AppointmentStatusCompleted, nil},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, ErrInvalidStatusTransition},
		{AppointmentStatusCancelled, AppointmentStatusCompleted, ErrInvalidStatusTransition},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, ErrInvalidStatusTransition},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, ErrInvalidStatusTransition},
		{AppointmentStatusScheduled, AppointmentStatus("Archived"), ErrInvalidAppointmentStatus},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			err := a.CanTransitionTo(tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAppointment_SameSlotAndOwner(t *testing.T) {
	patient := uuid.New()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	a := &Appointment{PatientID: patient, Date: day, Time: "10:00"}

	assert.True(t, a.OwnedBy(patient))
	assert.False(t, a.OwnedBy(uuid.New()))
	assert.True(t, a.SameSlot(day, "10:00"))
	assert.False(t, a.SameSlot(day, "10:30"))
	assert.False(t, a.SameSlot(day.AddDate(0, 0, 1), "10:00"))
}
