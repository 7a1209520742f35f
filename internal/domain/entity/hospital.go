package entity

import (
	"time"

	"github.com/google/uuid"
)

// Hospital is the unit a hospital administrator manages.
type Hospital struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Address     string     `gorm:"type:text;not null" json:"address"`
	Location    string     `gorm:"type:varchar(255);not null;index" json:"location"`
	About       string     `gorm:"type:text" json:"about,omitempty"`
	BannerImage string     `gorm:"type:text" json:"banner_image,omitempty"`
	Services    StringList `gorm:"type:jsonb;not null;default:'[]'" json:"services"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

const (
	ProfileStatusComplete   = "complete"
	ProfileStatusIncomplete = "incomplete"
)

// ProfileStatus reports whether the public-facing details are filled in.
func (h *Hospital) ProfileStatus() string {
	if h.About == "" || h.Location == "" || len(h.Services) == 0 {
		return ProfileStatusIncomplete
	}
	return ProfileStatusComplete
}
