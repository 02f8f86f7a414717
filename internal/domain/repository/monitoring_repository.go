package repository

import (
	"hd-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MonitoringRepository interface {
	Create(db *gorm.DB, record *entity.MonitoringRecord) error
	FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.MonitoringRecord, error)
}
