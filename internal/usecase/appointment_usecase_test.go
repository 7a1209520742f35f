package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/service"
	"digique-backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2025-03-10; "today" in these tests is the Saturday before.
var (
	bookingDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	fixedNow   = time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
)

type appointmentFixture struct {
	uc           *appointmentUsecase
	mock         sqlmock.Sqlmock
	doctor       *entity.Doctor
	doctors      *testutil.DoctorRepo
	appointments *testutil.AppointmentRepo
	locker       *testutil.SlotLocker
	audit        *testutil.AuditRepo
	availability service.AvailabilityService
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	db, mock := testutil.NewMockDB(t)
	log := testutil.NewLogger()

	schedule := entity.DefaultWeeklySchedule()
	schedule.SetDay("monday", entity.DaySchedule{IsAvailable: true, StartTime: "09:00", EndTime: "11:00"})
	doctor := &entity.Doctor{ID: uuid.New(), HospitalID: uuid.New(), Name: "Dr. Rao", Specialty: "Cardiology", Schedule: schedule}

	f := &appointmentFixture{
		mock:         mock,
		doctor:       doctor,
		doctors:      testutil.NewDoctorRepo(doctor),
		appointments: testutil.NewAppointmentRepo(),
		locker:       testutil.NewSlotLocker(),
		audit:        &testutil.AuditRepo{},
	}
	f.availability = service.NewAvailabilityService(db, log, f.doctors, f.appointments)
	f.uc = NewAppointmentUsecase(db, log, f.appointments, f.doctors, f.availability, f.locker, service.NewAuditService(log, f.audit)).(*appointmentUsecase)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func (f *appointmentFixture) book(t *testing.T, patientID uuid.UUID, clock string) *dto.AppointmentResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), patientID, &dto.CreateAppointmentRequest{
		DoctorID: f.doctor.ID.String(),
		Date:     "2025-03-10",
		Time:     clock,
	})
	require.NoError(t, err)
	return resp
}

func (f *appointmentFixture) slots(t *testing.T) []string {
	t.Helper()
	slots, err := f.availability.ComputeAvailableSlots(context.Background(), f.doctor.ID, bookingDay)
	require.NoError(t, err)
	return slots
}

func strPtr(s string) *string { return &s }

func TestAppointmentUsecase_Create(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()

	resp := f.book(t, patientID, "10:00")

	assert.Equal(t, string(entity.AppointmentStatusScheduled), resp.Status)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, f.doctor.HospitalID, resp.HospitalID)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, []string{"09:00", "09:30", "10:30"}, f.slots(t))
}

func TestAppointmentUsecase_CreateNormalizesTwelveHourTime(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, uuid.New(), "10:30 AM")

	assert.Equal(t, "10:30", resp.Time)
	assert.NotContains(t, f.slots(t), "10:30")
}

func TestAppointmentUsecase_CreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		prepare func(f *appointmentFixture)
		wantErr error
	}{
		{
			name:    "unknown doctor",
			req:     dto.CreateAppointmentRequest{DoctorID: uuid.NewString(), Date: "2025-03-10", Time: "09:00"},
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "unparseable date",
			req:     dto.CreateAppointmentRequest{Date: "10/03/2025", Time: "09:00"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "date in the past",
			req:     dto.CreateAppointmentRequest{Date: "2025-03-07", Time: "09:00"},
			wantErr: ErrPastDate,
		},
		{
			name:    "unparseable time",
			req:     dto.CreateAppointmentRequest{Date: "2025-03-10", Time: "9 o'clock"},
			wantErr: ErrInvalidTime,
		},
		{
			name:    "time off the slot grid",
			req:     dto.CreateAppointmentRequest{Date: "2025-03-10", Time: "09:15"},
			wantErr: ErrSlotUnavailable,
		},
		{
			name:    "day the doctor does not work",
			req:     dto.CreateAppointmentRequest{Date: "2025-03-11", Time: "09:00"},
			wantErr: ErrSlotUnavailable,
		},
		{
			name: "slot already booked",
			req:  dto.CreateAppointmentRequest{Date: "2025-03-10", Time: "09:00"},
			prepare: func(f *appointmentFixture) {
				a := &entity.Appointment{ID: uuid.New(), DoctorID: f.doctor.ID, Date: bookingDay, Time: "09:00", Status: entity.AppointmentStatusScheduled}
				f.appointments.Appointments[a.ID] = a
			},
			wantErr: ErrSlotUnavailable,
		},
		{
			name: "slot locked by a concurrent booking",
			req:  dto.CreateAppointmentRequest{Date: "2025-03-10", Time: "09:00"},
			prepare: func(f *appointmentFixture) {
				f.locker.Hold(f.doctor.ID, bookingDay, "09:00")
			},
			wantErr: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			req := tt.req
			if req.DoctorID == "" {
				req.DoctorID = f.doctor.ID.String()
			}

			_, err := f.uc.Create(context.Background(), uuid.New(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAppointmentUsecase_CreateWithoutLockStore(t *testing.T) {
	f := newAppointmentFixture(t)
	f.locker.Err = errors.New("redis: connection refused")

	resp := f.book(t, uuid.New(), "09:30")
	assert.Equal(t, "09:30", resp.Time)
}

// staleAvailability always reports a slot as free, as a reader that raced a
// concurrent insert would.
type staleAvailability struct{}

func (staleAvailability) ComputeAvailableSlots(context.Context, uuid.UUID, time.Time) ([]string, error) {
	return nil, nil
}

func (staleAvailability) IsSlotAvailable(context.Context, uuid.UUID, time.Time, string) (bool, error) {
	return true, nil
}

func TestAppointmentUsecase_CreateUniqueIndexRejectsLoser(t *testing.T) {
	f := newAppointmentFixture(t)
	f.uc.availabilityService = staleAvailability{}
	existing := &entity.Appointment{ID: uuid.New(), DoctorID: f.doctor.ID, Date: bookingDay, Time: "09:00", Status: entity.AppointmentStatusScheduled}
	f.appointments.Appointments[existing.ID] = existing

	_, err := f.uc.Create(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		DoctorID: f.doctor.ID.String(),
		Date:     "2025-03-10",
		Time:     "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestAppointmentUsecase_ConcurrentBookingsOfOneSlot(t *testing.T) {
	for _, lockDown := range []bool{false, true} {
		name := "with slot lock"
		if lockDown {
			name = "lock store unreachable"
		}
		t.Run(name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			if lockDown {
				f.locker.Err = errors.New("redis: connection refused")
			}

			const workers = 16
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
				conflicts int
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := f.uc.Create(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
						DoctorID: f.doctor.ID.String(),
						Date:     "2025-03-10",
						Time:     "10:00",
					})
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						successes++
					case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotTaken):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, successes)
			assert.Equal(t, workers-1, conflicts)

			booked, err := f.appointments.FindBookedTimes(nil, f.doctor.ID, bookingDay, bookingDay.AddDate(0, 0, 1))
			require.NoError(t, err)
			assert.Equal(t, []string{"10:00"}, booked)
		})
	}
}

func TestAppointmentUsecase_PatientCancel(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	booked := f.book(t, patientID, "10:00")
	ctx := context.Background()

	resp, err := f.uc.UpdateByPatient(ctx, patientID, booked.ID, &dto.UpdateAppointmentRequest{Status: strPtr("Cancelled")})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", resp.Status)
	assert.Contains(t, f.slots(t), "10:00")

	// Cancelling again is a no-op
	resp, err = f.uc.UpdateByPatient(ctx, patientID, booked.ID, &dto.UpdateAppointmentRequest{Status: strPtr("Cancelled")})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", resp.Status)

	// A cancelled appointment cannot be moved
	_, err = f.uc.UpdateByPatient(ctx, patientID, booked.ID, &dto.UpdateAppointmentRequest{Time: strPtr("09:00")})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestAppointmentUsecase_PatientUpdateErrors(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	booked := f.book(t, patientID, "10:00")
	ctx := context.Background()

	tests := []struct {
		name      string
		patientID uuid.UUID
		id        uuid.UUID
		req       dto.UpdateAppointmentRequest
		wantErr   error
	}{
		{"missing appointment", patientID, uuid.New(), dto.UpdateAppointmentRequest{Status: strPtr("Cancelled")}, ErrAppointmentNotFound},
		{"someone else's appointment", uuid.New(), booked.ID, dto.UpdateAppointmentRequest{Status: strPtr("Cancelled")}, ErrAppointmentNotOwned},
		{"unknown status", patientID, booked.ID, dto.UpdateAppointmentRequest{Status: strPtr("Done")}, ErrInvalidStatus},
		{"patient cannot complete", patientID, booked.ID, dto.UpdateAppointmentRequest{Status: strPtr("Completed")}, ErrInvalidStatusTransition},
		{"reschedule into the past", patientID, booked.ID, dto.UpdateAppointmentRequest{Date: strPtr("2025-03-01")}, ErrPastDate},
		{"reschedule to a bad time", patientID, booked.ID, dto.UpdateAppointmentRequest{Time: strPtr("25:00")}, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.UpdateByPatient(ctx, tt.patientID, tt.id, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAppointmentUsecase_PatientReschedule(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	mine := f.book(t, patientID, "10:00")
	f.book(t, uuid.New(), "09:30")
	ctx := context.Background()

	_, err := f.uc.UpdateByPatient(ctx, patientID, mine.ID, &dto.UpdateAppointmentRequest{Time: strPtr("09:30")})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	resp, err := f.uc.UpdateByPatient(ctx, patientID, mine.ID, &dto.UpdateAppointmentRequest{Time: strPtr("09:00")})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.Time)
	assert.Equal(t, "Scheduled", resp.Status)
	assert.Equal(t, []string{"10:00", "10:30"}, f.slots(t))

	// Same slot is accepted without touching anything
	resp, err = f.uc.UpdateByPatient(ctx, patientID, mine.ID, &dto.UpdateAppointmentRequest{Date: strPtr("2025-03-10"), Time: strPtr("09:00 AM")})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.Time)
}

func TestAppointmentUsecase_AdminUpdateStatus(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t, uuid.New(), "10:00")
	actor := service.AuditActor{UserID: uuid.New(), HospitalID: f.doctor.HospitalID, IPAddress: "10.0.0.1"}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.uc.UpdateStatusByAdmin(context.Background(), actor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)
	assert.Equal(t, []string{entity.AuditActionAppointmentStatus}, f.audit.Actions())
	assert.Equal(t, booked.ID.String(), f.audit.Logs[0].EntityID)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_AdminUpdateStatusErrors(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t, uuid.New(), "10:00")
	done := f.book(t, uuid.New(), "10:30")
	f.appointments.Appointments[done.ID].Status = entity.AppointmentStatusCompleted
	own := service.AuditActor{UserID: uuid.New(), HospitalID: f.doctor.HospitalID}
	other := service.AuditActor{UserID: uuid.New(), HospitalID: uuid.New()}

	tests := []struct {
		name    string
		actor   service.AuditActor
		id      uuid.UUID
		status  string
		wantErr error
	}{
		{"back to scheduled", own, booked.ID, "Scheduled", ErrInvalidStatus},
		{"missing appointment", own, uuid.New(), "Completed", ErrAppointmentNotFound},
		{"other hospital", other, booked.ID, "Cancelled", ErrAppointmentNotOwned},
		{"terminal status", own, done.ID, "Cancelled", ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.status != "Scheduled" {
				f.mock.ExpectBegin()
				f.mock.ExpectRollback()
			}

			_, err := f.uc.UpdateStatusByAdmin(context.Background(), tt.actor, tt.id, &dto.UpdateAppointmentStatusRequest{Status: tt.status})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.audit.Logs)
	assert.Equal(t, entity.AppointmentStatusScheduled, f.appointments.Appointments[booked.ID].Status)
}

func TestAppointmentUsecase_Lists(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	f.book(t, patientID, "10:30")
	f.book(t, patientID, "09:00")
	f.book(t, uuid.New(), "09:30")
	ctx := context.Background()

	mine, err := f.uc.ListMine(ctx, patientID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "09:00", mine[0].Time)
	assert.Equal(t, "10:30", mine[1].Time)

	all, err := f.uc.ListForHospital(ctx, f.doctor.HospitalID, &dto.HospitalAppointmentQuery{Date: "2025-03-10", Status: "Scheduled"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := f.uc.ListForHospital(ctx, f.doctor.HospitalID, &dto.HospitalAppointmentQuery{Date: "2025-03-11"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.uc.ListForHospital(ctx, f.doctor.HospitalID, &dto.HospitalAppointmentQuery{Status: "Pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
