package repository

import (
	"errors"

	"hd-clinic-api/internal/domain/entity"
	domainRepo "hd-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindAll(db *gorm.DB) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Order("id ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Slot{}).Count(&count).Error
	return count, err
}

func (r *slotRepository) CreateBatch(db *gorm.DB, slots []entity.Slot) error {
	return db.Create(&slots).Error
}
