package usecase

import (
	"fmt"
	"io"
	"testing"
	"time"

	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/repository"
	"hd-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database, migrates the schema
// and seeds the slot catalog
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Patient{},
		&entity.Slot{},
		&entity.Session{},
		&entity.MonitoringRecord{},
		&entity.AuditLog{},
	)
	require.NoError(t, err)

	slots := entity.DefaultSlots()
	require.NoError(t, db.Create(&slots).Error)
	roles := entity.DefaultRoles()
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAudit(log *logrus.Logger) AuditWriter {
	return service.NewAuditService(log, repository.NewAuditLogRepository())
}

func createTestPatient(t *testing.T, db *gorm.DB, mrn string) *entity.Patient {
	t.Helper()

	patient := &entity.Patient{
		MRN:              mrn,
		FullName:         fmt.Sprintf("Patient %s", mrn),
		DateOfBirth:      time.Date(1960, 5, 20, 0, 0, 0, 0, time.UTC),
		Gender:           entity.GenderMale,
		HDCyclePattern:   "MWF",
		FrequencyPerWeek: 3,
		DryWeightKg:      68.5,
		AccessType:       entity.AccessTypeAVFistula,
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

func createTestSession(t *testing.T, db *gorm.DB, patientID uuid.UUID, date time.Time, slotID int, bed *int) *entity.Session {
	t.Helper()

	session := &entity.Session{
		PatientID:   patientID,
		SessionDate: entity.DateOnly(date),
		SlotID:      slotID,
		BedNumber:   bed,
		Phase:       entity.PhasePreDialysis,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
