package database

import (
	"fmt"

	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all entities
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Patient{},
		&entity.Slot{},
		&entity.Session{},
		&entity.MonitoringRecord{},
		&entity.AuditLog{},
	)
}

// Seed loads the fixed reference data on first startup: the staff roles and
// the four-slot catalog. Both are idempotent, existing rows are left alone.
func Seed(db *gorm.DB, roleRepo repository.RoleRepository, slotRepo repository.SlotRepository) error {
	roleCount, err := roleRepo.Count(db)
	if err != nil {
		return fmt.Errorf("failed to count roles: %w", err)
	}
	if roleCount == 0 {
		if err := roleRepo.CreateBatch(db, entity.DefaultRoles()); err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}
		logrus.Info("Seeded staff roles")
	}

	slotCount, err := slotRepo.Count(db)
	if err != nil {
		return fmt.Errorf("failed to count slots: %w", err)
	}
	if slotCount == 0 {
		if err := slotRepo.CreateBatch(db, entity.DefaultSlots()); err != nil {
			return fmt.Errorf("failed to seed slot catalog: %w", err)
		}
		logrus.Info("Seeded slot catalog")
	}

	return nil
}
