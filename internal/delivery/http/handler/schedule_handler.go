package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/usecase"
	"hd-clinic-api/pkg/response"
	"hd-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// dateParam reads the date query parameter, defaulting to today
func dateParam(r *http.Request) string {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return date
}

func (h *ScheduleHandler) GetDailySchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.scheduleUsecase.GetDailySchedule(r.Context(), dateParam(r))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get daily schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Daily schedule retrieved successfully", schedule)
}

func (h *ScheduleHandler) GetBedAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.Atoi(vars["slot_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	availability, err := h.scheduleUsecase.GetBedAvailability(r.Context(), dateParam(r), slotID)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		default:
			response.InternalServerError(w, "Failed to get bed availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bed availability retrieved successfully", availability)
}

func (h *ScheduleHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.scheduleUsecase.CreateSession(r.Context(), &req)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to create session")
		return
	}

	response.Success(w, http.StatusCreated, "Session created successfully", session)
}

func (h *ScheduleHandler) AssignBed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.AssignBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.scheduleUsecase.AssignBed(r.Context(), sessionID, &req)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to assign bed")
		return
	}

	response.Success(w, http.StatusOK, "Bed assigned successfully", session)
}

func (h *ScheduleHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.scheduleUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		default:
			response.InternalServerError(w, "Failed to get session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

// writeScheduleError maps scheduling errors onto HTTP statuses. Bed conflicts
// carry the occupant in the error payload so the client can show who holds
// the bed.
func (h *ScheduleHandler) writeScheduleError(w http.ResponseWriter, err error, fallback string) {
	var conflict *usecase.BedConflictError
	if errors.As(err, &conflict) {
		response.Conflict(w, "Bed is already occupied for this date and slot", dto.BedConflictResponse{
			BedNumber:   conflict.BedNumber,
			SessionID:   conflict.SessionID.String(),
			PatientID:   conflict.PatientID.String(),
			PatientName: conflict.PatientName,
		})
		return
	}

	switch err {
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	case usecase.ErrSessionDatePast:
		response.Error(w, http.StatusBadRequest, "Cannot schedule a session on a past date", nil)
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPatientInactive:
		response.Error(w, http.StatusBadRequest, "Patient is inactive", nil)
	case usecase.ErrSlotNotFound:
		response.NotFound(w, "Slot not found")
	case usecase.ErrSessionNotFound:
		response.NotFound(w, "Session not found")
	case usecase.ErrSessionDischarged:
		response.Conflict(w, "Session is already discharged", nil)
	case usecase.ErrDuplicateSession:
		response.Conflict(w, "Patient already has an active session for this date and slot", nil)
	case usecase.ErrBedOutOfRange:
		response.Error(w, http.StatusBadRequest, "Bed number is outside the slot's capacity", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
