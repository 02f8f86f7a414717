package repository

import (
	"hd-clinic-api/internal/domain/entity"
	domainRepo "hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type monitoringRepository struct{}

func NewMonitoringRepository() domainRepo.MonitoringRepository {
	return &monitoringRepository{}
}

func (r *monitoringRepository) Create(db *gorm.DB, record *entity.MonitoringRecord) error {
	return db.Create(record).Error
}

func (r *monitoringRepository) FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.MonitoringRecord, error) {
	var records []entity.MonitoringRecord
	err := db.Where("session_id = ?", sessionID).
		Order("recorded_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
