package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionPhase represents a session's position in the clinical workflow
type SessionPhase string

const (
	PhasePreDialysis   SessionPhase = "pre_dialysis"
	PhaseIntraDialysis SessionPhase = "intra_dialysis"
	PhasePostDialysis  SessionPhase = "post_dialysis"
	PhaseDischarged    SessionPhase = "discharged"
)

// phaseOrder gives each phase a monotonic rank; transitions may only move
// forward one step at a time
var phaseOrder = map[SessionPhase]int{
	PhasePreDialysis:   0,
	PhaseIntraDialysis: 1,
	PhasePostDialysis:  2,
	PhaseDischarged:    3,
}

// MissedReason is the closed taxonomy for missed appointments
type MissedReason string

const (
	MissedReasonSick           MissedReason = "sick"
	MissedReasonEmergency      MissedReason = "emergency"
	MissedReasonTransportation MissedReason = "transportation"
	MissedReasonUnknown        MissedReason = "unknown"
	MissedReasonOther          MissedReason = "other"
)

// Session represents a single patient's scheduled dialysis treatment on a given
// date. At most one active (non-discharged) session may hold a (date, slot, bed)
// triple; a nil BedNumber means the bed has not been assigned yet and does not
// count as occupancy.
type Session struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"patient_id"`
	SessionDate time.Time    `gorm:"type:date;not null;index:idx_sessions_date_slot" json:"session_date"`
	SlotID      int          `gorm:"not null;index:idx_sessions_date_slot" json:"slot_id"`
	BedNumber   *int         `json:"bed_number,omitempty"`
	Phase       SessionPhase `gorm:"type:varchar(20);not null;default:'pre_dialysis';index" json:"phase"`

	IsPreDialysisLocked   bool `gorm:"not null;default:false" json:"is_pre_dialysis_locked"`
	IsIntraDialysisLocked bool `gorm:"not null;default:false" json:"is_intra_dialysis_locked"`
	IsDischarged          bool `gorm:"not null;default:false;index" json:"is_discharged"`
	IsMovedToHistory      bool `gorm:"not null;default:false" json:"is_moved_to_history"`

	// Pre-dialysis snapshot
	PreWeightKg          *float64 `gorm:"type:numeric(5,2)" json:"pre_weight_kg,omitempty"`
	PreSystolicBP        *int     `json:"pre_systolic_bp,omitempty"`
	PreDiastolicBP       *int     `json:"pre_diastolic_bp,omitempty"`
	AccessSiteAssessment string   `gorm:"type:text" json:"access_site_assessment,omitempty"`

	// Post-dialysis snapshot
	PostWeightKg    *float64 `gorm:"type:numeric(5,2)" json:"post_weight_kg,omitempty"`
	PostSystolicBP  *int     `json:"post_systolic_bp,omitempty"`
	PostDiastolicBP *int     `json:"post_diastolic_bp,omitempty"`
	FluidRemovedML  *float64 `gorm:"type:numeric(7,1)" json:"fluid_removed_ml,omitempty"`

	// Missed-appointment fields
	IsMissed        bool          `gorm:"not null;default:false" json:"is_missed"`
	MissedReason    *MissedReason `gorm:"type:varchar(20)" json:"missed_reason,omitempty"`
	MissedNotes     string        `gorm:"type:text" json:"missed_notes,omitempty"`
	MissedAt        *time.Time    `json:"missed_at,omitempty"`
	ResolutionNotes string        `gorm:"type:text" json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Slot    Slot    `gorm:"foreignKey:SlotID" json:"slot,omitempty"`

	MonitoringRecords []MonitoringRecord `gorm:"foreignKey:SessionID" json:"monitoring_records,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Phase == "" {
		s.Phase = PhasePreDialysis
	}
	return nil
}

// IsActive reports whether the session still counts for bed occupancy
func (s *Session) IsActive() bool {
	return !s.IsDischarged
}

// CanAdvanceTo reports whether moving to next is a legal single forward step.
// Phases never regress and never skip.
func (s *Session) CanAdvanceTo(next SessionPhase) bool {
	current, ok := phaseOrder[s.Phase]
	if !ok {
		return false
	}
	target, ok := phaseOrder[next]
	if !ok {
		return false
	}
	return target == current+1
}

// Advance moves the session one phase forward, setting the lock flag of the
// phase being exited. Returns false if the transition is not legal.
func (s *Session) Advance(next SessionPhase) bool {
	if !s.CanAdvanceTo(next) {
		return false
	}
	switch s.Phase {
	case PhasePreDialysis:
		s.IsPreDialysisLocked = true
	case PhaseIntraDialysis:
		s.IsIntraDialysisLocked = true
	}
	s.Phase = next
	if next == PhaseDischarged {
		s.IsDischarged = true
	}
	return true
}

// DateOnly normalizes a timestamp to its calendar date at midnight UTC.
// Session dates are always stored in this form so equality and range
// predicates compare whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsValid reports whether the phase is one of the recognized values
func (p SessionPhase) IsValid() bool {
	_, ok := phaseOrder[p]
	return ok
}

// IsValid reports whether the reason is part of the closed taxonomy
func (r MissedReason) IsValid() bool {
	switch r {
	case MissedReasonSick, MissedReasonEmergency, MissedReasonTransportation, MissedReasonUnknown, MissedReasonOther:
		return true
	}
	return false
}
