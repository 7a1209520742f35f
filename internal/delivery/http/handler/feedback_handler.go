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

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotFound) {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to submit feedback")
		return
	}

	response.Success(w, http.StatusCreated, "Feedback submitted successfully", feedback)
}

func (h *FeedbackHandler) ListForHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "")
		return
	}

	feedback, err := h.feedbackUsecase.ListForHospital(r.Context(), hospitalID)
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := auditActor(r)
	if !ok {
		response.Forbidden(w, "")
		return
	}

	feedbackID, ok := pathUUID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid feedback ID")
		return
	}

	var req dto.UpdateFeedbackStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.UpdateStatus(r.Context(), actor, feedbackID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFeedbackNotFound):
			response.NotFound(w, "Feedback not found")
		case errors.Is(err, usecase.ErrFeedbackNotOwned):
			response.Unauthorized(w, err.Error())
		case errors.Is(err, usecase.ErrInvalidFeedbackStatus):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update feedback status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Feedback status updated successfully", feedback)
}
