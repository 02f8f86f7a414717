package converter

import (
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
)

// MonitoringRecordToResponse converts a MonitoringRecord entity to its DTO
func MonitoringRecordToResponse(record *entity.MonitoringRecord) *dto.MonitoringRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MonitoringRecordResponse{
		ID:             record.ID,
		SessionID:      record.SessionID,
		RecordedAt:     record.RecordedAt,
		SystolicBP:     record.SystolicBP,
		DiastolicBP:    record.DiastolicBP,
		PulseRate:      record.PulseRate,
		TemperatureC:   record.TemperatureC,
		UFVolumeML:     record.UFVolumeML,
		VenousPressure: record.VenousPressure,
		Notes:          record.Notes,
	}
}

// MonitoringRecordsToResponses converts a slice of MonitoringRecord entities to DTOs
func MonitoringRecordsToResponses(records []entity.MonitoringRecord) []dto.MonitoringRecordResponse {
	responses := make([]dto.MonitoringRecordResponse, len(records))
	for i := range records {
		responses[i] = *MonitoringRecordToResponse(&records[i])
	}
	return responses
}
