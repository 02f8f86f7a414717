package repository

import (
	"hd-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByMRN(db *gorm.DB, mrn string) (*entity.Patient, error)
	FindAll(db *gorm.DB, activeOnly bool, nameSearch string) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
