package entity

import (
	"time"

	"github.com/google/uuid"
)

// UpdateHistory is one changed profile field of a user.
type UpdateHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Field     string    `gorm:"type:varchar(100);not null" json:"field"`
	OldValue  Any       `gorm:"type:jsonb" json:"old_value"`
	NewValue  Any       `gorm:"type:jsonb" json:"new_value"`
	ChangedAt time.Time `gorm:"autoCreateTime;index" json:"changed_at"`
}

func (UpdateHistory) TableName() string {
	return "update_history"
}
