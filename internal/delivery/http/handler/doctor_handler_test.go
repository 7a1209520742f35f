package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/service"
	"digique-backend/internal/testutil"
	"digique-backend/internal/usecase"
	"digique-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorHandler_GetAvailabilityReturnsBareArray(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	log := testutil.NewLogger()

	schedule := entity.DefaultWeeklySchedule()
	schedule.SetDay("monday", entity.DaySchedule{IsAvailable: true, StartTime: "09:00", EndTime: "10:00"})
	doctor := &entity.Doctor{ID: uuid.New(), HospitalID: uuid.New(), Name: "Dr. Rao", Schedule: schedule}
	doctors := testutil.NewDoctorRepo(doctor)
	availability := service.NewAvailabilityService(db, log, doctors, testutil.NewAppointmentRepo())
	h := NewDoctorHandler(usecase.NewDoctorUsecase(db, log, doctors, availability, service.NewAuditService(log, &testutil.AuditRepo{})), validator.NewValidator(), log)

	tests := []struct {
		name     string
		id       string
		date     string
		want     int
		wantBody []string
	}{
		{"monday", doctor.ID.String(), "2025-03-10", http.StatusOK, []string{"09:00", "09:30"}},
		{"tuesday is off", doctor.ID.String(), "2025-03-11", http.StatusOK, []string{}},
		{"missing date", doctor.ID.String(), "", http.StatusBadRequest, nil},
		{"bad doctor id", "x", "2025-03-10", http.StatusNotFound, nil},
		{"unknown doctor", uuid.NewString(), "2025-03-10", http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodGet, "/api/doctors/"+tt.id+"/availability?date="+tt.date, nil, withVars(map[string]string{"id": tt.id}))
			rec := serve(h.GetAvailability, req)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.wantBody != nil {
				var slots []string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
				assert.Equal(t, tt.wantBody, slots)
			}
		})
	}
}

func TestDoctorHandler_AdminSchedule(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	log := testutil.NewLogger()

	hospitalID := uuid.New()
	doctor := &entity.Doctor{ID: uuid.New(), HospitalID: hospitalID, Name: "Dr. Rao", Schedule: entity.DefaultWeeklySchedule()}
	doctors := testutil.NewDoctorRepo(doctor)
	availability := service.NewAvailabilityService(db, log, doctors, testutil.NewAppointmentRepo())
	h := NewDoctorHandler(usecase.NewDoctorUsecase(db, log, doctors, availability, service.NewAuditService(log, &testutil.AuditRepo{})), validator.NewValidator(), log)
	admin := uuid.New()
	vars := withVars(map[string]string{"doctorId": doctor.ID.String()})

	valid := map[string]interface{}{
		"schedule": map[string]interface{}{
			"monday":              map[string]interface{}{"isAvailable": true, "startTime": "09:00", "endTime": "12:00"},
			"appointmentDuration": 15,
		},
	}
	inverted := map[string]interface{}{
		"schedule": map[string]interface{}{
			"monday": map[string]interface{}{"isAvailable": true, "startTime": "12:00", "endTime": "09:00"},
		},
	}

	rec := serve(h.UpdateSchedule, newRequest(t, http.MethodPut, "/", map[string]interface{}{}, asHospitalAdmin(admin, hospitalID), vars))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h.UpdateSchedule, newRequest(t, http.MethodPut, "/", inverted, asHospitalAdmin(admin, hospitalID), vars))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mock.ExpectBegin()
	mock.ExpectRollback()
	rec = serve(h.UpdateSchedule, newRequest(t, http.MethodPut, "/", valid, asHospitalAdmin(admin, uuid.New()), vars))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mock.ExpectBegin()
	mock.ExpectRollback()
	rec = serve(h.UpdateSchedule, newRequest(t, http.MethodPut, "/", valid, asHospitalAdmin(admin, hospitalID), withVars(map[string]string{"doctorId": uuid.NewString()})))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mock.ExpectBegin()
	mock.ExpectCommit()
	rec = serve(h.UpdateSchedule, newRequest(t, http.MethodPut, "/", valid, asHospitalAdmin(admin, hospitalID), vars))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated dto.DoctorResponse
	decodeEnvelope(t, rec, &updated)
	assert.Equal(t, 15, updated.Schedule.SlotDurationMinutes)

	rec = serve(h.ListMine, newRequest(t, http.MethodGet, "/", nil, asHospitalAdmin(admin, hospitalID)))
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []dto.DoctorResponse
	decodeEnvelope(t, rec, &mine)
	assert.Len(t, mine, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      int
	}{
		{"hospital row missing", &pgconn.PgError{Code: "23503", ConstraintName: "doctors_hospital_id_fkey"}, http.StatusNotFound},
		{"unexpected failure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := testutil.NewMockDB(t)
			log := testutil.NewLogger()
			doctors := testutil.NewDoctorRepo()
			doctors.CreateErr = tt.createErr
			availability := service.NewAvailabilityService(db, log, doctors, testutil.NewAppointmentRepo())
			h := NewDoctorHandler(usecase.NewDoctorUsecase(db, log, doctors, availability, service.NewAuditService(log, &testutil.AuditRepo{})), validator.NewValidator(), log)

			mock.ExpectBegin()
			mock.ExpectRollback()
			body := map[string]string{"name": "Dr. Iyer", "specialty": "Neurology"}
			rec := serve(h.Create, newRequest(t, http.MethodPost, "/", body, asHospitalAdmin(uuid.New(), uuid.New())))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
