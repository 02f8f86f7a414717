package service

import (
	"context"
	"io"
	"testing"
	"time"

	"hd-clinic-api/config"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSweepTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Patient{}, &entity.Slot{}, &entity.Session{}))
	return db
}

func newTestSweeper(t *testing.T, db *gorm.DB) *SweepService {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewSweepService(db, log, repository.NewSessionRepository(), config.ScheduleConfig{
		NoShowGrace:       30 * time.Minute,
		PostDialysisGrace: 2 * time.Hour,
		SweepInterval:     time.Hour,
	})
}

func seedSweepSession(t *testing.T, db *gorm.DB, date time.Time, phase entity.SessionPhase, discharged bool) *entity.Session {
	t.Helper()

	session := &entity.Session{
		PatientID:    uuid.New(),
		SessionDate:  entity.DateOnly(date),
		SlotID:       entity.SlotIDMorning,
		Phase:        phase,
		IsDischarged: discharged,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func TestArchiveSweep_MovesPastSessionsOnce(t *testing.T) {
	db := newSweepTestDB(t)
	sweeper := newTestSweeper(t, db)

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	yesterday := now.AddDate(0, 0, -1)
	stale := seedSweepSession(t, db, yesterday, entity.PhasePreDialysis, false)
	todaySession := seedSweepSession(t, db, now, entity.PhasePreDialysis, false)
	alreadyDone := seedSweepSession(t, db, yesterday, entity.PhaseDischarged, true)

	archived, err := sweeper.RunArchiveSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), archived)

	var archivedSession entity.Session
	require.NoError(t, db.First(&archivedSession, "id = ?", stale.ID).Error)
	assert.Equal(t, entity.PhaseDischarged, archivedSession.Phase)
	assert.True(t, archivedSession.IsDischarged)
	assert.True(t, archivedSession.IsMovedToHistory)

	// Today's session and already-archived history are untouched
	var pending entity.Session
	require.NoError(t, db.First(&pending, "id = ?", todaySession.ID).Error)
	assert.Equal(t, entity.PhasePreDialysis, pending.Phase)
	assert.False(t, pending.IsDischarged)

	var history entity.Session
	require.NoError(t, db.First(&history, "id = ?", alreadyDone.ID).Error)
	assert.True(t, history.IsDischarged)

	// Re-running the sweep is a no-op
	archived, err = sweeper.RunArchiveSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), archived)
}

func TestCompletionSweep_DischargesStalePostDialysis(t *testing.T) {
	db := newSweepTestDB(t)
	sweeper := newTestSweeper(t, db)

	now := time.Now()
	sweeper.now = func() time.Time { return now }

	stale := seedSweepSession(t, db, now, entity.PhasePostDialysis, false)
	fresh := seedSweepSession(t, db, now, entity.PhasePostDialysis, false)
	treating := seedSweepSession(t, db, now, entity.PhaseIntraDialysis, false)

	// Age the stale session past the grace period
	require.NoError(t, db.Model(stale).Update("updated_at", now.Add(-3*time.Hour)).Error)

	discharged, err := sweeper.RunCompletionSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), discharged)

	var dischargedSession entity.Session
	require.NoError(t, db.First(&dischargedSession, "id = ?", stale.ID).Error)
	assert.True(t, dischargedSession.IsDischarged)
	assert.Equal(t, entity.PhaseDischarged, dischargedSession.Phase)

	// Recently updated post-dialysis and active treatment sessions stay put
	var freshSession entity.Session
	require.NoError(t, db.First(&freshSession, "id = ?", fresh.ID).Error)
	assert.False(t, freshSession.IsDischarged)
	var treatingSession entity.Session
	require.NoError(t, db.First(&treatingSession, "id = ?", treating.ID).Error)
	assert.Equal(t, entity.PhaseIntraDialysis, treatingSession.Phase)

	discharged, err = sweeper.RunCompletionSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), discharged)
}

func TestSweepService_StartStop(t *testing.T) {
	db := newSweepTestDB(t)
	sweeper := newTestSweeper(t, db)

	sweeper.Start()
	sweeper.Stop()

	// Stop is safe to call again
	sweeper.Stop()
}
