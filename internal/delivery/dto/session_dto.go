package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSessionRequest struct {
	PatientID   uuid.UUID `json:"patient_id" validate:"required"`
	SessionDate string    `json:"session_date" validate:"required"` // Format: YYYY-MM-DD
	SlotID      int       `json:"slot_id" validate:"required,min=1,max=4"`
	BedNumber   *int      `json:"bed_number" validate:"omitempty,min=1"`
}

type AssignBedRequest struct {
	BedNumber int `json:"bed_number" validate:"required,min=1"`
}

// SubmitPreDialysisRequest carries the intake vitals that complete the
// pre-dialysis phase
type SubmitPreDialysisRequest struct {
	WeightKg             *float64 `json:"weight_kg"`
	SystolicBP           *int     `json:"systolic_bp"`
	DiastolicBP          *int     `json:"diastolic_bp"`
	AccessSiteAssessment string   `json:"access_site_assessment"`
}

// SubmitPostDialysisRequest carries the closing vitals and fluid-removal total
type SubmitPostDialysisRequest struct {
	WeightKg       *float64 `json:"weight_kg"`
	SystolicBP     *int     `json:"systolic_bp"`
	DiastolicBP    *int     `json:"diastolic_bp"`
	FluidRemovedML *float64 `json:"fluid_removed_ml"`
}

// Response DTOs

type SessionResponse struct {
	ID          uuid.UUID        `json:"id"`
	PatientID   uuid.UUID        `json:"patient_id"`
	Patient     *PatientResponse `json:"patient,omitempty"`
	SessionDate string           `json:"session_date"`
	SlotID      int              `json:"slot_id"`
	SlotName    string           `json:"slot_name,omitempty"`
	BedNumber   *int             `json:"bed_number,omitempty"`
	Phase       string           `json:"phase"`

	IsPreDialysisLocked   bool `json:"is_pre_dialysis_locked"`
	IsIntraDialysisLocked bool `json:"is_intra_dialysis_locked"`
	IsDischarged          bool `json:"is_discharged"`
	IsMovedToHistory      bool `json:"is_moved_to_history"`

	PreWeightKg          *float64 `json:"pre_weight_kg,omitempty"`
	PreSystolicBP        *int     `json:"pre_systolic_bp,omitempty"`
	PreDiastolicBP       *int     `json:"pre_diastolic_bp,omitempty"`
	AccessSiteAssessment string   `json:"access_site_assessment,omitempty"`

	PostWeightKg    *float64 `json:"post_weight_kg,omitempty"`
	PostSystolicBP  *int     `json:"post_systolic_bp,omitempty"`
	PostDiastolicBP *int     `json:"post_diastolic_bp,omitempty"`
	FluidRemovedML  *float64 `json:"fluid_removed_ml,omitempty"`

	IsMissed        bool       `json:"is_missed"`
	MissedReason    string     `json:"missed_reason,omitempty"`
	MissedNotes     string     `json:"missed_notes,omitempty"`
	MissedAt        *time.Time `json:"missed_at,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}
