package repository

import (
	"hd-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
	Count(db *gorm.DB) (int64, error)
	CreateBatch(db *gorm.DB, roles []entity.Role) error
}
