package repository

import (
	"hd-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type SlotRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Slot, error)
	FindAll(db *gorm.DB) ([]entity.Slot, error)
	Count(db *gorm.DB) (int64, error)
	CreateBatch(db *gorm.DB, slots []entity.Slot) error
}
