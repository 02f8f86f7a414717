package converter

import (
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		MRN:              patient.MRN,
		FullName:         patient.FullName,
		DateOfBirth:      patient.DateOfBirth.Format("2006-01-02"),
		Gender:           patient.Gender,
		PhoneNumber:      patient.PhoneNumber,
		Address:          patient.Address,
		HDCyclePattern:   patient.HDCyclePattern,
		FrequencyPerWeek: patient.FrequencyPerWeek,
		DryWeightKg:      patient.DryWeightKg,
		AccessType:       string(patient.AccessType),
		IsActive:         patient.IsActive,
		CreatedAt:        patient.CreatedAt,
		UpdatedAt:        patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
