package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents both patients and hospital administrators
type User struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email             string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string           `gorm:"type:text;not null" json:"-"`
	FirstName         string           `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName          string           `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber       string           `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Location          string           `gorm:"type:varchar(255)" json:"location,omitempty"`
	Role              Role             `gorm:"type:varchar(20);not null;default:'PATIENT';index" json:"role"`
	DateOfBirth       *time.Time       `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender            string           `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Address           Address          `gorm:"type:jsonb" json:"address"`
	EmergencyContact  EmergencyContact `gorm:"type:jsonb" json:"emergency_contact"`
	ManagedHospitalID *uuid.UUID       `gorm:"type:uuid;index" json:"managed_hospital_id,omitempty"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	ManagedHospital *Hospital `gorm:"foreignKey:ManagedHospitalID" json:"managed_hospital,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsHospitalAdmin() bool {
	return u.Role == RoleHospital
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}
	return unmarshalJSONB(value, a)
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

func (c EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *EmergencyContact) Scan(value interface{}) error {
	if value == nil {
		*c = EmergencyContact{}
		return nil
	}
	return unmarshalJSONB(value, c)
}
