package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonitoringRecord is a timestamped vital-sign reading taken while a session
// is in the intra-dialysis phase
type MonitoringRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	RecordedAt     time.Time `gorm:"not null;index" json:"recorded_at"`
	SystolicBP     int       `gorm:"not null" json:"systolic_bp"`
	DiastolicBP    int       `gorm:"not null" json:"diastolic_bp"`
	PulseRate      int       `gorm:"not null" json:"pulse_rate"`
	TemperatureC   float64   `gorm:"type:numeric(4,1);not null" json:"temperature_c"`
	UFVolumeML     float64   `gorm:"type:numeric(7,1)" json:"uf_volume_ml"`
	VenousPressure int       `json:"venous_pressure"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (MonitoringRecord) TableName() string {
	return "monitoring_records"
}

func (m *MonitoringRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now()
	}
	return nil
}
