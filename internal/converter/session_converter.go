package converter

import (
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionToResponse converts a Session entity to SessionResponse DTO
func SessionToResponse(session *entity.Session) *dto.SessionResponse {
	if session == nil {
		return nil
	}

	response := &dto.SessionResponse{
		ID:          session.ID,
		PatientID:   session.PatientID,
		SessionDate: session.SessionDate.Format("2006-01-02"),
		SlotID:      session.SlotID,
		SlotName:    session.Slot.Name,
		BedNumber:   session.BedNumber,
		Phase:       string(session.Phase),

		IsPreDialysisLocked:   session.IsPreDialysisLocked,
		IsIntraDialysisLocked: session.IsIntraDialysisLocked,
		IsDischarged:          session.IsDischarged,
		IsMovedToHistory:      session.IsMovedToHistory,

		PreWeightKg:          session.PreWeightKg,
		PreSystolicBP:        session.PreSystolicBP,
		PreDiastolicBP:       session.PreDiastolicBP,
		AccessSiteAssessment: session.AccessSiteAssessment,

		PostWeightKg:    session.PostWeightKg,
		PostSystolicBP:  session.PostSystolicBP,
		PostDiastolicBP: session.PostDiastolicBP,
		FluidRemovedML:  session.FluidRemovedML,

		IsMissed:        session.IsMissed,
		MissedNotes:     session.MissedNotes,
		MissedAt:        session.MissedAt,
		ResolutionNotes: session.ResolutionNotes,
		ResolvedAt:      session.ResolvedAt,

		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	if session.MissedReason != nil {
		response.MissedReason = string(*session.MissedReason)
	}

	// Include patient info if preloaded
	if session.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&session.Patient)
	}

	return response
}

// SessionsToResponses converts a slice of Session entities to SessionResponse DTOs
func SessionsToResponses(sessions []entity.Session) []dto.SessionResponse {
	responses := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = *SessionToResponse(&sessions[i])
	}
	return responses
}

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) dto.SlotResponse {
	return dto.SlotResponse{
		ID:          slot.ID,
		Name:        slot.Name,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		BedCapacity: slot.BedCapacity,
	}
}
