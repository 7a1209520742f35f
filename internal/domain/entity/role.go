package entity

// Role is the account type of a user.
type Role string

const (
	RolePatient  Role = "PATIENT"
	RoleHospital Role = "HOSPITAL"
)

func (r Role) IsValid() bool {
	return r == RolePatient || r == RoleHospital
}
