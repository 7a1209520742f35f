package dto

import (
	"time"

	"github.com/google/uuid"
)

type HospitalResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Location      string    `json:"location"`
	About         string    `json:"about,omitempty"`
	BannerImage   string    `json:"bannerImage,omitempty"`
	Services      []string  `json:"services"`
	ProfileStatus string    `json:"profileStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UpdateHospitalProfileRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Address     *string  `json:"address" validate:"omitempty,min=1"`
	Location    *string  `json:"location" validate:"omitempty,min=1,max=255"`
	About       *string  `json:"about"`
	BannerImage *string  `json:"bannerImage" validate:"omitempty,url"`
	Services    []string `json:"services" validate:"omitempty,dive,min=1,max=100"`
}

type UpcomingAppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
}

type OverviewSummaryResponse struct {
	TodayAppointmentsCount int64                         `json:"todayAppointmentsCount"`
	WeekAppointmentsCount  int64                         `json:"weekAppointmentsCount"`
	TotalDoctors           int64                         `json:"totalDoctors"`
	UpcomingAppointments   []UpcomingAppointmentResponse `json:"upcomingAppointments"`
	ProfileStatus          string                        `json:"profileStatus"`
}
