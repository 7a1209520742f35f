package converter

import (
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO.
// The hospital name is filled when the relation is preloaded.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:           doctor.ID,
		HospitalID:   doctor.HospitalID,
		Name:         doctor.Name,
		Specialty:    doctor.Specialty,
		ProfileImage: doctor.ProfileImage,
		Schedule:     doctor.Schedule,
		CreatedAt:    doctor.CreatedAt,
		UpdatedAt:    doctor.UpdatedAt,
	}

	if doctor.Hospital != nil {
		response.HospitalName = doctor.Hospital.Name
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
