package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type MarkMissedRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Reason    string    `json:"reason" validate:"required,oneof=sick emergency transportation unknown other"`
	Notes     string    `json:"notes" validate:"omitempty"`
}

type ResolveMissedRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Notes     string    `json:"notes" validate:"required"`
}

// Response DTOs

// NoShowCandidateResponse is a session flagged for staff review; the session
// is not marked missed until staff confirm
type NoShowCandidateResponse struct {
	Session     SessionResponse `json:"session"`
	SlotName    string          `json:"slot_name"`
	SlotStart   string          `json:"slot_start"`
	MinutesLate int             `json:"minutes_late"`
}

type NoShowCandidateListResponse struct {
	Date       string                    `json:"date"`
	Candidates []NoShowCandidateResponse `json:"candidates"`
	Total      int                       `json:"total"`
}
