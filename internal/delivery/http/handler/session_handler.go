package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/usecase"
	"hd-clinic-api/pkg/response"
	"hd-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SessionHandler serves the phase workflow: intake, treatment end, discharge
type SessionHandler struct {
	phaseUsecase usecase.SessionPhaseUsecase
	validator    *validator.CustomValidator
}

func NewSessionHandler(phaseUsecase usecase.SessionPhaseUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		phaseUsecase: phaseUsecase,
		validator:    validator,
	}
}

func (h *SessionHandler) SubmitPreDialysis(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.SubmitPreDialysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.phaseUsecase.SubmitPreDialysis(r.Context(), sessionID, &req)
	if err != nil {
		h.writePhaseError(w, err, "Failed to submit pre-dialysis record")
		return
	}

	response.Success(w, http.StatusOK, "Pre-dialysis record submitted, session is now intra-dialysis", session)
}

func (h *SessionHandler) EndTreatment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.phaseUsecase.EndTreatment(r.Context(), sessionID)
	if err != nil {
		h.writePhaseError(w, err, "Failed to end treatment")
		return
	}

	response.Success(w, http.StatusOK, "Treatment ended, session is now post-dialysis", session)
}

func (h *SessionHandler) SubmitPostDialysis(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.SubmitPostDialysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.phaseUsecase.SubmitPostDialysis(r.Context(), sessionID, &req)
	if err != nil {
		h.writePhaseError(w, err, "Failed to submit post-dialysis record")
		return
	}

	response.Success(w, http.StatusOK, "Post-dialysis record submitted, session discharged", session)
}

// writePhaseError maps phase workflow errors onto HTTP statuses. Missing
// required fields come back as 422 with the field list.
func (h *SessionHandler) writePhaseError(w http.ResponseWriter, err error, fallback string) {
	var incomplete *usecase.IncompleteDataError
	if errors.As(err, &incomplete) {
		response.UnprocessableEntity(w, "Required data is incomplete", map[string]interface{}{
			"missing_fields": incomplete.Missing,
		})
		return
	}

	switch err {
	case usecase.ErrSessionNotFound:
		response.NotFound(w, "Session not found")
	case usecase.ErrSessionDischarged:
		response.Conflict(w, "Session is already discharged", nil)
	case usecase.ErrPhaseLocked:
		response.Error(w, http.StatusBadRequest, "This phase is locked and can no longer be edited", nil)
	case usecase.ErrWrongPhase:
		response.Error(w, http.StatusBadRequest, "Session is not in the required phase for this action", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
