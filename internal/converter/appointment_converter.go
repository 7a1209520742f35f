package converter

import (
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/pkg/timeslot"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:         appointment.ID,
		PatientID:  appointment.PatientID,
		DoctorID:   appointment.DoctorID,
		HospitalID: appointment.HospitalID,
		Date:       timeslot.FormatDate(appointment.Date),
		Time:       appointment.Time,
		Status:     string(appointment.Status),
		CreatedAt:  appointment.CreatedAt,
		UpdatedAt:  appointment.UpdatedAt,
	}

	// Include relations if loaded
	if d := appointment.Doctor; d != nil {
		response.Doctor = &dto.AppointmentDoctor{ID: d.ID, Name: d.Name, Specialty: d.Specialty}
	}
	if h := appointment.Hospital; h != nil {
		response.Hospital = &dto.AppointmentHospital{ID: h.ID, Name: h.Name, Address: h.Address}
	}
	if p := appointment.Patient; p != nil {
		response.Patient = &dto.AppointmentPatient{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Email:       p.Email,
			PhoneNumber: p.PhoneNumber,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// AppointmentToUpcoming is the compact form shown on the hospital overview.
func AppointmentToUpcoming(appointment *entity.Appointment) dto.UpcomingAppointmentResponse {
	upcoming := dto.UpcomingAppointmentResponse{
		ID:     appointment.ID,
		Date:   timeslot.FormatDate(appointment.Date),
		Time:   appointment.Time,
		Status: string(appointment.Status),
	}
	if appointment.Patient != nil {
		upcoming.PatientName = appointment.Patient.FullName()
	}
	if appointment.Doctor != nil {
		upcoming.DoctorName = appointment.Doctor.Name
	}
	return upcoming
}
