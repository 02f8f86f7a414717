package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMonitoringRecordRequest struct {
	SystolicBP     int     `json:"systolic_bp" validate:"required,min=40,max=300"`
	DiastolicBP    int     `json:"diastolic_bp" validate:"required,min=20,max=200"`
	PulseRate      int     `json:"pulse_rate" validate:"required,min=20,max=250"`
	TemperatureC   float64 `json:"temperature_c" validate:"required,gte=30,lte=45"`
	UFVolumeML     float64 `json:"uf_volume_ml" validate:"omitempty,gte=0"`
	VenousPressure int     `json:"venous_pressure" validate:"omitempty"`
	Notes          string  `json:"notes" validate:"omitempty"`
}

// Response DTOs

type MonitoringRecordResponse struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	RecordedAt     time.Time `json:"recorded_at"`
	SystolicBP     int       `json:"systolic_bp"`
	DiastolicBP    int       `json:"diastolic_bp"`
	PulseRate      int       `json:"pulse_rate"`
	TemperatureC   float64   `json:"temperature_c"`
	UFVolumeML     float64   `json:"uf_volume_ml"`
	VenousPressure int       `json:"venous_pressure"`
	Notes          string    `json:"notes,omitempty"`
}

type MonitoringRecordListResponse struct {
	Records []MonitoringRecordResponse `json:"records"`
	Total   int                        `json:"total"`
}
