package handler

import (
	"net/http"
	"testing"
	"time"

	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/service"
	"digique-backend/internal/testutil"
	"digique-backend/internal/usecase"
	"digique-backend/pkg/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentHandlerFixture struct {
	h        *AppointmentHandler
	mock     sqlmock.Sqlmock
	doctor   *entity.Doctor
	date     string
	appts    *testutil.AppointmentRepo
	audit    *testutil.AuditRepo
	patient  uuid.UUID
	adminID  uuid.UUID
	hospital uuid.UUID
}

func newAppointmentHandlerFixture(t *testing.T) *appointmentHandlerFixture {
	t.Helper()
	db, mock := testutil.NewMockDB(t)
	log := testutil.NewLogger()

	schedule := entity.DefaultWeeklySchedule()
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		schedule.SetDay(day, entity.DaySchedule{IsAvailable: true, StartTime: "09:00", EndTime: "11:00"})
	}
	hospitalID := uuid.New()
	doctor := &entity.Doctor{ID: uuid.New(), HospitalID: hospitalID, Name: "Dr. Rao", Specialty: "Cardiology", Schedule: schedule}

	doctors := testutil.NewDoctorRepo(doctor)
	appts := testutil.NewAppointmentRepo()
	audit := &testutil.AuditRepo{}
	availability := service.NewAvailabilityService(db, log, doctors, appts)
	uc := usecase.NewAppointmentUsecase(db, log, appts, doctors, availability, testutil.NewSlotLocker(), service.NewAuditService(log, audit))

	return &appointmentHandlerFixture{
		h:        NewAppointmentHandler(uc, validator.NewValidator(), log),
		mock:     mock,
		doctor:   doctor,
		date:     time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		appts:    appts,
		audit:    audit,
		patient:  uuid.New(),
		adminID:  uuid.New(),
		hospital: hospitalID,
	}
}

func (f *appointmentHandlerFixture) booking(clock string) map[string]string {
	return map[string]string{"doctorId": f.doctor.ID.String(), "date": f.date, "time": clock}
}

func TestAppointmentHandler_Create(t *testing.T) {
	f := newAppointmentHandlerFixture(t)

	rec := serve(f.h.Create, newRequest(t, http.MethodPost, "/api/appointments", f.booking("10:00 AM"), asUser(f.patient)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created dto.AppointmentResponse
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "10:00", created.Time)
	assert.Equal(t, "Scheduled", created.Status)

	tests := []struct {
		name string
		body interface{}
		opts []requestOption
		want int
	}{
		{"same slot again", f.booking("10:00"), []requestOption{asUser(uuid.New())}, http.StatusConflict},
		{"outside working hours", f.booking("15:00"), []requestOption{asUser(f.patient)}, http.StatusConflict},
		{"malformed time", f.booking("ten"), []requestOption{asUser(f.patient)}, http.StatusBadRequest},
		{"malformed body", "{", []requestOption{asUser(f.patient)}, http.StatusBadRequest},
		{"unknown doctor", map[string]string{"doctorId": uuid.NewString(), "date": f.date, "time": "09:00"}, []requestOption{asUser(f.patient)}, http.StatusNotFound},
		{"past date", map[string]string{"doctorId": f.doctor.ID.String(), "date": "2020-01-06", "time": "09:00"}, []requestOption{asUser(f.patient)}, http.StatusBadRequest},
		{"anonymous", f.booking("09:30"), nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(f.h.Create, newRequest(t, http.MethodPost, "/api/appointments", tt.body, tt.opts...))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAppointmentHandler_PatientUpdate(t *testing.T) {
	f := newAppointmentHandlerFixture(t)

	rec := serve(f.h.Create, newRequest(t, http.MethodPost, "/api/appointments", f.booking("09:00"), asUser(f.patient)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.AppointmentResponse
	decodeEnvelope(t, rec, &created)
	vars := withVars(map[string]string{"id": created.ID.String()})

	rec = serve(f.h.UpdateByPatient, newRequest(t, http.MethodPut, "/", map[string]string{"time": "09:30"}, asUser(uuid.New()), vars))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(f.h.UpdateByPatient, newRequest(t, http.MethodPut, "/", map[string]string{"time": "09:30"}, asUser(f.patient), vars))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var moved dto.AppointmentResponse
	decodeEnvelope(t, rec, &moved)
	assert.Equal(t, "09:30", moved.Time)

	rec = serve(f.h.UpdateByPatient, newRequest(t, http.MethodPut, "/", map[string]string{"status": "Completed"}, asUser(f.patient), vars))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(f.h.UpdateByPatient, newRequest(t, http.MethodPut, "/", map[string]string{"status": "Cancelled"}, asUser(f.patient), vars))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(f.h.UpdateByPatient, newRequest(t, http.MethodPut, "/", map[string]string{"status": "Cancelled"}, asUser(f.patient), withVars(map[string]string{"id": "nope"})))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(f.h.ListMine, newRequest(t, http.MethodGet, "/api/appointments/me", nil, asUser(f.patient)))
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []dto.AppointmentResponse
	decodeEnvelope(t, rec, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Cancelled", mine[0].Status)
}

func TestAppointmentHandler_AdminStatus(t *testing.T) {
	f := newAppointmentHandlerFixture(t)

	rec := serve(f.h.Create, newRequest(t, http.MethodPost, "/api/appointments", f.booking("10:30"), asUser(f.patient)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.AppointmentResponse
	decodeEnvelope(t, rec, &created)
	vars := withVars(map[string]string{"id": created.ID.String()})

	rec = serve(f.h.UpdateStatus, newRequest(t, http.MethodPut, "/", map[string]string{"status": "Scheduled"}, asHospitalAdmin(f.adminID, f.hospital), vars))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	rec = serve(f.h.UpdateStatus, newRequest(t, http.MethodPut, "/", map[string]string{"status": "Completed"}, asHospitalAdmin(f.adminID, uuid.New()), vars))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	rec = serve(f.h.UpdateStatus, newRequest(t, http.MethodPut, "/", map[string]string{"status": "Completed"}, asHospitalAdmin(f.adminID, f.hospital), vars))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{entity.AuditActionAppointmentStatus}, f.audit.Actions())

	rec = serve(f.h.ListForHospital, newRequest(t, http.MethodGet, "/?status=Completed&date="+f.date, nil, asHospitalAdmin(f.adminID, f.hospital)))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.AppointmentResponse
	decodeEnvelope(t, rec, &list)
	require.Len(t, list, 1)

	rec = serve(f.h.ListForHospital, newRequest(t, http.MethodGet, "/?status=Pending", nil, asHospitalAdmin(f.adminID, f.hospital)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
