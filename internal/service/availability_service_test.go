package service_test

import (
	"context"
	"testing"
	"time"

	"digique-backend/internal/domain/entity"
	"digique-backend/internal/service"
	"digique-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 is a Monday.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func doctorWorking(start, end string, duration int) *entity.Doctor {
	schedule := entity.DefaultWeeklySchedule()
	schedule.SlotDurationMinutes = duration
	schedule.SetDay("monday", entity.DaySchedule{IsAvailable: true, StartTime: start, EndTime: end})
	return &entity.Doctor{ID: uuid.New(), HospitalID: uuid.New(), Name: "Dr. Test", Schedule: schedule}
}

func scheduled(doctor *entity.Doctor, date time.Time, clock string) *entity.Appointment {
	return &entity.Appointment{
		ID:         uuid.New(),
		PatientID:  uuid.New(),
		DoctorID:   doctor.ID,
		HospitalID: doctor.HospitalID,
		Date:       date,
		Time:       clock,
		Status:     entity.AppointmentStatusScheduled,
	}
}

func newAvailability(t *testing.T, doctors *testutil.DoctorRepo, appointments *testutil.AppointmentRepo) service.AvailabilityService {
	db, _ := testutil.NewMockDB(t)
	return service.NewAvailabilityService(db, testutil.NewLogger(), doctors, appointments)
}

func TestComputeAvailableSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		booked   []string
		date     time.Time
		want     []string
	}{
		{
			name:     "half hour slots across the window",
			start:    "09:00",
			end:      "11:00",
			duration: 30,
			date:     monday,
			want:     []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:     "booked slot is excluded",
			start:    "09:00",
			end:      "11:00",
			duration: 30,
			booked:   []string{"10:00"},
			date:     monday,
			want:     []string{"09:00", "09:30", "10:30"},
		},
		{
			name:     "slot that would overrun the end still starts before it",
			start:    "09:00",
			end:      "10:10",
			duration: 30,
			date:     monday,
			want:     []string{"09:00", "09:30", "10:00"},
		},
		{
			name:     "twelve hour booking label blocks the same slot",
			start:    "09:00",
			end:      "11:00",
			duration: 30,
			booked:   []string{"10:00 AM"},
			date:     monday,
			want:     []string{"09:00", "09:30", "10:30"},
		},
		{
			name:     "unset duration falls back to thirty minutes",
			start:    "09:00",
			end:      "10:00",
			duration: 0,
			date:     monday,
			want:     []string{"09:00", "09:30"},
		},
		{
			name:     "day the doctor does not work is empty even with bookings",
			start:    "09:00",
			end:      "11:00",
			duration: 30,
			booked:   []string{"09:00", "14:00"},
			date:     monday.AddDate(0, 0, 1),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctor := doctorWorking(tt.start, tt.end, tt.duration)
			appointments := testutil.NewAppointmentRepo()
			for _, clock := range tt.booked {
				a := scheduled(doctor, tt.date, clock)
				appointments.Appointments[a.ID] = a
			}
			svc := newAvailability(t, testutil.NewDoctorRepo(doctor), appointments)

			slots, err := svc.ComputeAvailableSlots(context.Background(), doctor.ID, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slots)
		})
	}
}

func TestComputeAvailableSlots_IgnoresOtherDaysAndDoctors(t *testing.T) {
	doctor := doctorWorking("09:00", "10:00", 30)
	other := doctorWorking("09:00", "10:00", 30)
	appointments := testutil.NewAppointmentRepo(
		scheduled(doctor, monday.AddDate(0, 0, 7), "09:00"),
		scheduled(other, monday, "09:30"),
	)
	svc := newAvailability(t, testutil.NewDoctorRepo(doctor, other), appointments)

	slots, err := svc.ComputeAvailableSlots(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestComputeAvailableSlots_CancellationFreesSlot(t *testing.T) {
	doctor := doctorWorking("09:00", "11:00", 30)
	booking := scheduled(doctor, monday, "10:00")
	appointments := testutil.NewAppointmentRepo(booking)
	svc := newAvailability(t, testutil.NewDoctorRepo(doctor), appointments)
	ctx := context.Background()

	before, err := svc.ComputeAvailableSlots(ctx, doctor.ID, monday)
	require.NoError(t, err)
	assert.NotContains(t, before, "10:00")

	rows, err := appointments.UpdateStatus(nil, booking.ID, entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	after, err := svc.ComputeAvailableSlots(ctx, doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, after)
}

func TestComputeAvailableSlots_CompletedDoesNotBlock(t *testing.T) {
	doctor := doctorWorking("09:00", "10:00", 30)
	done := scheduled(doctor, monday, "09:00")
	done.Status = entity.AppointmentStatusCompleted
	svc := newAvailability(t, testutil.NewDoctorRepo(doctor), testutil.NewAppointmentRepo(done))

	slots, err := svc.ComputeAvailableSlots(context.Background(), doctor.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestComputeAvailableSlots_Idempotent(t *testing.T) {
	doctor := doctorWorking("08:00", "17:00", 45)
	appointments := testutil.NewAppointmentRepo(scheduled(doctor, monday, "08:45"))
	svc := newAvailability(t, testutil.NewDoctorRepo(doctor), appointments)
	ctx := context.Background()

	first, err := svc.ComputeAvailableSlots(ctx, doctor.ID, monday)
	require.NoError(t, err)
	second, err := svc.ComputeAvailableSlots(ctx, doctor.ID, monday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1], first[i])
	}
}

func TestComputeAvailableSlots_TimeOfDayIgnored(t *testing.T) {
	doctor := doctorWorking("09:00", "10:00", 30)
	svc := newAvailability(t, testutil.NewDoctorRepo(doctor), testutil.NewAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), doctor.ID, monday.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestComputeAvailableSlots_DoctorNotFound(t *testing.T) {
	svc := newAvailability(t, testutil.NewDoctorRepo(), testutil.NewAppointmentRepo())

	_, err := svc.ComputeAvailableSlots(context.Background(), uuid.New(), monday)
	assert.ErrorIs(t, err, service.ErrDoctorNotFound)
}

func TestComputeAvailableSlots_StoreFailure(t *testing.T) {
	doctors := testutil.NewDoctorRepo()
	doctors.Err = testutil.ErrStore
	svc := newAvailability(t, doctors, testutil.NewAppointmentRepo())

	_, err := svc.ComputeAvailableSlots(context.Background(), uuid.New(), monday)
	assert.ErrorIs(t, err, testutil.ErrStore)
}

func TestIsSlotAvailable(t *testing.T) {
	doctor := doctorWorking("09:00", "11:00", 30)
	appointments := testutil.NewAppointmentRepo(scheduled(doctor, monday, "09:30"))
	svc := newAvailability(t, testutil.NewDoctorRepo(doctor), appointments)
	ctx := context.Background()

	ok, err := svc.IsSlotAvailable(ctx, doctor.ID, monday, "09:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsSlotAvailable(ctx, doctor.ID, monday, "09:30")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsSlotAvailable(ctx, doctor.ID, monday, "09:15")
	require.NoError(t, err)
	assert.False(t, ok)
}
