package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/delivery/http/middleware"
	"digique-backend/internal/usecase"
	"digique-backend/pkg/response"
	"digique-backend/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

// List returns all hospitals, optionally filtered by ?location=
// @Summary List hospitals
// @Tags Hospitals
// @Param location query string false "Location substring"
// @Router /hospitals [get]
func (h *HospitalHandler) List(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalUsecase.List(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

// @Summary Get hospital by ID
// @Tags Hospitals
// @Router /hospitals/{id} [get]
func (h *HospitalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid hospital ID")
		return
	}

	hospital, err := h.hospitalUsecase.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotFound) {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to get hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

func (h *HospitalHandler) OverviewSummary(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "")
		return
	}

	summary, err := h.hospitalUsecase.OverviewSummary(r.Context(), hospitalID)
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotFound) {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to build overview summary")
		return
	}

	response.Success(w, http.StatusOK, "Overview summary retrieved successfully", summary)
}

func (h *HospitalHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "")
		return
	}

	hospital, err := h.hospitalUsecase.Get(r.Context(), hospitalID)
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotFound) {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to get hospital profile")
		return
	}

	response.Success(w, http.StatusOK, "Hospital profile retrieved successfully", hospital)
}

func (h *HospitalHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := auditActor(r)
	if !ok {
		response.Forbidden(w, "")
		return
	}

	var req dto.UpdateHospitalProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.UpdateProfile(r.Context(), actor, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotFound) {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to update hospital profile")
		return
	}

	response.Success(w, http.StatusOK, "Hospital profile updated successfully", hospital)
}
