package converter

import (
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
)

func FeedbackToResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	response := &dto.FeedbackResponse{
		ID:         feedback.ID,
		UserID:     feedback.UserID,
		HospitalID: feedback.HospitalID,
		Subject:    feedback.Subject,
		Message:    feedback.Message,
		Status:     string(feedback.Status),
		CreatedAt:  feedback.CreatedAt,
		UpdatedAt:  feedback.UpdatedAt,
	}
	if feedback.User != nil {
		response.UserName = feedback.User.FullName()
		response.UserEmail = feedback.User.Email
	}
	return response
}

func FeedbacksToResponses(items []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(items))
	for i := range items {
		responses[i] = *FeedbackToResponse(&items[i])
	}
	return responses
}
