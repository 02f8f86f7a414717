package handler

import (
	"encoding/json"
	"net/http"

	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/usecase"
	"hd-clinic-api/pkg/response"
	"hd-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MonitoringHandler struct {
	monitoringUsecase usecase.MonitoringUsecase
	validator         *validator.CustomValidator
}

func NewMonitoringHandler(monitoringUsecase usecase.MonitoringUsecase, validator *validator.CustomValidator) *MonitoringHandler {
	return &MonitoringHandler{
		monitoringUsecase: monitoringUsecase,
		validator:         validator,
	}
}

func (h *MonitoringHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.CreateMonitoringRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.monitoringUsecase.AddRecord(r.Context(), sessionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrNotInIntraDialysis:
			response.Error(w, http.StatusBadRequest, "Monitoring records can only be added during intra-dialysis", nil)
		default:
			response.InternalServerError(w, "Failed to add monitoring record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Monitoring record added successfully", record)
}

func (h *MonitoringHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	records, err := h.monitoringUsecase.ListRecords(r.Context(), sessionID)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		default:
			response.InternalServerError(w, "Failed to list monitoring records")
		}
		return
	}

	response.Success(w, http.StatusOK, "Monitoring records retrieved successfully", records)
}
