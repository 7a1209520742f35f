package converter

import (
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/pkg/timeslot"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		PhoneNumber:       user.PhoneNumber,
		Location:          user.Location,
		Role:              string(user.Role),
		Gender:            user.Gender,
		ManagedHospitalID: user.ManagedHospitalID,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}

	if user.DateOfBirth != nil {
		response.DateOfBirth = timeslot.FormatDate(*user.DateOfBirth)
	}
	if user.Address != (entity.Address{}) {
		response.Address = AddressToDTO(user.Address)
	}
	if user.EmergencyContact != (entity.EmergencyContact{}) {
		response.EmergencyContact = EmergencyContactToDTO(user.EmergencyContact)
	}

	return response
}

func AddressToDTO(a entity.Address) *dto.AddressDTO {
	return &dto.AddressDTO{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func AddressFromDTO(a *dto.AddressDTO) entity.Address {
	return entity.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func EmergencyContactToDTO(c entity.EmergencyContact) *dto.EmergencyContactDTO {
	return &dto.EmergencyContactDTO{
		Name:         c.Name,
		Relationship: c.Relationship,
		Phone:        c.Phone,
	}
}

func EmergencyContactFromDTO(c *dto.EmergencyContactDTO) entity.EmergencyContact {
	return entity.EmergencyContact{
		Name:         c.Name,
		Relationship: c.Relationship,
		Phone:        c.Phone,
	}
}

// UpdateHistoriesToResponses converts history rows to their DTOs
func UpdateHistoriesToResponses(entries []entity.UpdateHistory) []dto.UpdateHistoryResponse {
	responses := make([]dto.UpdateHistoryResponse, len(entries))
	for i, e := range entries {
		responses[i] = dto.UpdateHistoryResponse{
			ID:        e.ID,
			Field:     e.Field,
			OldValue:  e.OldValue.Data,
			NewValue:  e.NewValue.Data,
			ChangedAt: e.ChangedAt,
		}
	}
	return responses
}
