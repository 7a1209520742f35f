package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/delivery/http/middleware"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/usecase"
	"digique-backend/pkg/response"
	"digique-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
	log           *logrus.Logger
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator, log *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
		log:           log,
	}
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrHospitalNotFound):
		response.NotFound(w, "Hospital not found")
	case errors.Is(err, usecase.ErrDoctorNotOwned):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, entity.ErrInvalidSchedule), errors.Is(err, usecase.ErrInvalidDate):
		response.BadRequest(w, err.Error())
	default:
		h.log.WithField("request_id", middleware.GetRequestIDFromContext(r.Context())).Errorf("%s: %+v", fallback, err)
		response.InternalServerError(w, fallback)
	}
}

// List returns every doctor, or only those of ?hospitalId=
// @Summary List doctors
// @Tags Doctors
// @Param hospitalId query string false "Hospital ID"
// @Router /doctors [get]
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	var hospitalID *uuid.UUID
	if raw := r.URL.Query().Get("hospitalId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid hospital ID")
			return
		}
		hospitalID = &id
	}

	doctors, err := h.doctorUsecase.List(r.Context(), hospitalID)
	if err != nil {
		h.writeError(w, r, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAvailability returns the free slots of a doctor on ?date= as a bare
// JSON array of "HH:MM" strings.
// @Summary Doctor availability
// @Tags Doctors
// @Param id path string true "Doctor ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} string
// @Router /doctors/{id}/availability [get]
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.NotFound(w, "Doctor not found")
		return
	}

	slots, err := h.doctorUsecase.GetAvailability(r.Context(), id, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err, "Failed to compute availability")
		return
	}

	response.JSON(w, http.StatusOK, slots)
}

func (h *DoctorHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "")
		return
	}

	doctors, err := h.doctorUsecase.List(r.Context(), &hospitalID)
	if err != nil {
		h.writeError(w, r, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auditActor(r)
	if !ok {
		response.Forbidden(w, "")
		return
	}

	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, r, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auditActor(r)
	if !ok {
		response.Forbidden(w, "")
		return
	}

	doctorID, ok := pathUUID(r, "doctorId")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), actor, doctorID, &req)
	if err != nil {
		h.writeError(w, r, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auditActor(r)
	if !ok {
		response.Forbidden(w, "")
		return
	}

	doctorID, ok := pathUUID(r, "doctorId")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), actor, doctorID); err != nil {
		h.writeError(w, r, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// UpdateSchedule replaces the doctor's weekly template.
func (h *DoctorHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := auditActor(r)
	if !ok {
		response.Forbidden(w, "")
		return
	}

	doctorID, ok := pathUUID(r, "doctorId")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateSchedule(r.Context(), actor, doctorID, &req)
	if err != nil {
		h.writeError(w, r, err, "Failed to update schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", doctor)
}
