package converter

import (
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	services := []string(hospital.Services)
	if services == nil {
		services = []string{}
	}

	return &dto.HospitalResponse{
		ID:            hospital.ID,
		Name:          hospital.Name,
		Address:       hospital.Address,
		Location:      hospital.Location,
		About:         hospital.About,
		BannerImage:   hospital.BannerImage,
		Services:      services,
		ProfileStatus: hospital.ProfileStatus(),
		CreatedAt:     hospital.CreatedAt,
		UpdatedAt:     hospital.UpdatedAt,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = *HospitalToResponse(&hospitals[i])
	}
	return responses
}
