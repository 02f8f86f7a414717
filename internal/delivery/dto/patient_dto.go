package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	MRN              string  `json:"mrn" validate:"required,min=3,max=50"`
	FullName         string  `json:"full_name" validate:"required,min=2"`
	DateOfBirth      string  `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender           string  `json:"gender" validate:"required,oneof=M F"`
	PhoneNumber      string  `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Address          string  `json:"address" validate:"omitempty"`
	HDCyclePattern   string  `json:"hd_cycle_pattern" validate:"required"` // e.g. MWF, TTS
	FrequencyPerWeek int     `json:"frequency_per_week" validate:"required,min=1,max=7"`
	DryWeightKg      float64 `json:"dry_weight_kg" validate:"required,gt=0"`
	AccessType       string  `json:"access_type" validate:"required,oneof=av_fistula av_graft catheter"`
}

type UpdatePatientRequest struct {
	FullName         string   `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber      string   `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Address          string   `json:"address" validate:"omitempty"`
	HDCyclePattern   string   `json:"hd_cycle_pattern" validate:"omitempty"`
	FrequencyPerWeek *int     `json:"frequency_per_week" validate:"omitempty,min=1,max=7"`
	DryWeightKg      *float64 `json:"dry_weight_kg" validate:"omitempty,gt=0"`
	AccessType       string   `json:"access_type" validate:"omitempty,oneof=av_fistula av_graft catheter"`
}

// Response DTOs

type PatientResponse struct {
	ID               uuid.UUID `json:"id"`
	MRN              string    `json:"mrn"`
	FullName         string    `json:"full_name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Address          string    `json:"address,omitempty"`
	HDCyclePattern   string    `json:"hd_cycle_pattern"`
	FrequencyPerWeek int       `json:"frequency_per_week"`
	DryWeightKg      float64   `json:"dry_weight_kg"`
	AccessType       string    `json:"access_type"`
	IsActive         *bool     `json:"is_active,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
