package handler

import (
	"encoding/json"
	"net/http"

	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/usecase"
	"hd-clinic-api/pkg/response"
	"hd-clinic-api/pkg/validator"
)

type MissedAppointmentHandler struct {
	missedUsecase usecase.MissedAppointmentUsecase
	validator     *validator.CustomValidator
}

func NewMissedAppointmentHandler(missedUsecase usecase.MissedAppointmentUsecase, validator *validator.CustomValidator) *MissedAppointmentHandler {
	return &MissedAppointmentHandler{
		missedUsecase: missedUsecase,
		validator:     validator,
	}
}

// NoShowCandidates returns sessions past the no-show grace period, for review
func (h *MissedAppointmentHandler) NoShowCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.missedUsecase.NoShowCandidates(r.Context(), dateParam(r))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to list no-show candidates")
		}
		return
	}

	response.Success(w, http.StatusOK, "No-show candidates retrieved successfully", candidates)
}

func (h *MissedAppointmentHandler) MarkMissed(w http.ResponseWriter, r *http.Request) {
	var req dto.MarkMissedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.missedUsecase.MarkMissed(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrSessionDischarged:
			response.Conflict(w, "Session is already discharged", nil)
		case usecase.ErrAlreadyMarkedMissed:
			response.Conflict(w, "Session is already marked as missed", nil)
		case usecase.ErrInvalidMissedReason:
			response.Error(w, http.StatusBadRequest, "Missed reason is not recognized", nil)
		default:
			response.InternalServerError(w, "Failed to mark session as missed")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session marked as missed", session)
}

func (h *MissedAppointmentHandler) ResolveMissed(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveMissedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.missedUsecase.ResolveMissed(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrNotMarkedMissed:
			response.Error(w, http.StatusBadRequest, "Session is not marked as missed", nil)
		case usecase.ErrAlreadyResolved:
			response.Conflict(w, "Missed appointment is already resolved", nil)
		default:
			response.InternalServerError(w, "Failed to resolve missed appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Missed appointment resolved", session)
}
