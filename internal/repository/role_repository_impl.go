package repository

import (
	"errors"

	"hd-clinic-api/internal/domain/entity"
	domainRepo "hd-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("role_name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Role{}).Count(&count).Error
	return count, err
}

func (r *roleRepository) CreateBatch(db *gorm.DB, roles []entity.Role) error {
	return db.Create(&roles).Error
}
