package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records an administrative action taken on behalf of a hospital.
type AuditLog struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	HospitalID *uuid.UUID `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	Action     string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Entity     string     `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID   string     `gorm:"type:varchar(64);not null" json:"entity_id"`
	Metadata   JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	IPAddress  string     `gorm:"type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent  string     `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audited entities
const (
	AuditEntityDoctor      = "doctor"
	AuditEntityAppointment = "appointment"
	AuditEntityHospital    = "hospital"
	AuditEntityFeedback    = "feedback"
)

// Common audit actions
const (
	AuditActionDoctorCreate          = "doctor.create"
	AuditActionDoctorUpdate          = "doctor.update"
	AuditActionDoctorDelete          = "doctor.delete"
	AuditActionScheduleUpdate        = "doctor.schedule.update"
	AuditActionAppointmentStatus     = "appointment.status"
	AuditActionHospitalProfileUpdate = "hospital.profile.update"
	AuditActionFeedbackStatus        = "feedback.status"
)
