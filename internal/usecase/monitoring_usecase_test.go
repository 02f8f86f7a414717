package usecase

import (
	"context"
	"testing"
	"time"

	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMonitoringUsecase(t *testing.T) (MonitoringUsecase, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	return NewMonitoringUsecase(db, log, repository.NewSessionRepository(), repository.NewMonitoringRepository(), newTestAudit(log)), db
}

func sampleReading() *dto.CreateMonitoringRecordRequest {
	return &dto.CreateMonitoringRecordRequest{
		SystolicBP:   125,
		DiastolicBP:  82,
		PulseRate:    76,
		TemperatureC: 36.7,
		UFVolumeML:   450,
	}
}

func TestAddRecord_OnlyDuringIntraDialysis(t *testing.T) {
	uc, db := newMonitoringUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, intPtr(1))

	// Pre-dialysis: rejected
	_, err := uc.AddRecord(ctx, session.ID, sampleReading())
	assert.ErrorIs(t, err, ErrNotInIntraDialysis)

	require.NoError(t, db.Model(session).Update("phase", entity.PhaseIntraDialysis).Error)

	record, err := uc.AddRecord(ctx, session.ID, sampleReading())
	require.NoError(t, err)
	assert.Equal(t, session.ID, record.SessionID)
	assert.False(t, record.RecordedAt.IsZero())

	// Post-dialysis: record set becomes read-only
	require.NoError(t, db.Model(session).Update("phase", entity.PhasePostDialysis).Error)
	_, err = uc.AddRecord(ctx, session.ID, sampleReading())
	assert.ErrorIs(t, err, ErrNotInIntraDialysis)

	// Existing readings remain listable
	records, err := uc.ListRecords(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, records.Total)
}
