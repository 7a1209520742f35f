package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor belongs to exactly one hospital and carries its weekly schedule.
type Doctor struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Specialty    string         `gorm:"type:varchar(100);not null;index" json:"specialty"`
	ProfileImage string         `gorm:"type:text" json:"profile_image,omitempty"`
	Schedule     WeeklySchedule `gorm:"type:jsonb;not null" json:"schedule"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// BelongsTo reports whether the doctor is on the roster of the hospital.
func (d *Doctor) BelongsTo(hospitalID uuid.UUID) bool {
	return d.HospitalID == hospitalID
}
