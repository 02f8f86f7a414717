package repository

import (
	"errors"

	"hd-clinic-api/internal/domain/entity"
	domainRepo "hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByMRN(db *gorm.DB, mrn string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("mrn = ?", mrn).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB, activeOnly bool, nameSearch string) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := db.Order("full_name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if nameSearch != "" {
		query = query.Where("full_name ILIKE ?", "%"+nameSearch+"%")
	}
	err := query.Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

// Deactivate atomically soft-deletes a patient ONLY if still active.
// Returns affected rows: 1 = success, 0 = already inactive or unknown id.
func (r *patientRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
