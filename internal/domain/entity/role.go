package entity

// Role represents a staff role in the system
type Role struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin      = 1
	RoleIDHOD        = 2
	RoleIDDoctor     = 3
	RoleIDNurse      = 4
	RoleIDTechnician = 5
)

// Role name constants
const (
	RoleAdmin      = "admin"
	RoleHOD        = "hod"
	RoleDoctor     = "doctor"
	RoleNurse      = "nurse"
	RoleTechnician = "technician"
)

// DefaultRoles is seeded on first startup
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleIDAdmin, RoleName: RoleAdmin, Description: "Full system administration"},
		{ID: RoleIDHOD, RoleName: RoleHOD, Description: "Head of department, read access to dashboards and audit trail"},
		{ID: RoleIDDoctor, RoleName: RoleDoctor, Description: "Clinical staff, full patient and session access"},
		{ID: RoleIDNurse, RoleName: RoleNurse, Description: "Clinical staff, session workflow and monitoring"},
		{ID: RoleIDTechnician, RoleName: RoleTechnician, Description: "Dialysis technician, monitoring data entry"},
	}
}
