package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessType represents the vascular access used for dialysis
type AccessType string

const (
	AccessTypeAVFistula AccessType = "av_fistula"
	AccessTypeAVGraft   AccessType = "av_graft"
	AccessTypeCatheter  AccessType = "catheter"
)

// Patient represents a registered hemodialysis patient with their clinical profile
type Patient struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MRN              string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"mrn"`
	FullName         string     `gorm:"type:varchar(255);not null;index" json:"full_name"`
	DateOfBirth      time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string     `gorm:"type:char(1);not null" json:"gender"`
	PhoneNumber      string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	HDCyclePattern   string     `gorm:"type:varchar(20);not null" json:"hd_cycle_pattern"`
	FrequencyPerWeek int        `gorm:"not null;default:3" json:"frequency_per_week"`
	DryWeightKg      float64    `gorm:"type:numeric(5,2);not null" json:"dry_weight_kg"`
	AccessType       AccessType `gorm:"type:varchar(20);not null" json:"access_type"`
	IsActive         *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:PatientID" json:"sessions,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// IsValid reports whether the access type is one of the recognized values
func (a AccessType) IsValid() bool {
	switch a {
	case AccessTypeAVFistula, AccessTypeAVGraft, AccessTypeCatheter:
		return true
	}
	return false
}
