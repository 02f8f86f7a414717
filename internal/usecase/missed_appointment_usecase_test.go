package usecase

import (
	"context"
	"testing"
	"time"

	"hd-clinic-api/config"
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMissedUsecase(t *testing.T, grace time.Duration) (*missedAppointmentUsecase, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	uc := NewMissedAppointmentUsecase(db, log, repository.NewSessionRepository(), newTestAudit(log), config.ScheduleConfig{
		NoShowGrace:       grace,
		PostDialysisGrace: 2 * time.Hour,
		SweepInterval:     15 * time.Minute,
	})
	return uc.(*missedAppointmentUsecase), db
}

func TestNoShowCandidates_GraceBoundary(t *testing.T) {
	uc, db := newMissedUsecase(t, 30*time.Minute)
	ctx := context.Background()

	// Morning slot starts 07:00, so the no-show deadline is 07:30
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	patient := createTestPatient(t, db, "MRN-001")
	createTestSession(t, db, patient.ID, day, entity.SlotIDMorning, intPtr(3))

	// One minute before the deadline: not a candidate
	uc.now = func() time.Time { return time.Date(2026, 3, 2, 7, 29, 0, 0, time.UTC) }
	result, err := uc.NoShowCandidates(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)

	// At exactly slot start + grace: flagged
	uc.now = func() time.Time { return time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC) }
	result, err = uc.NoShowCandidates(ctx, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, 30, result.Candidates[0].MinutesLate)

	// Past the deadline: flagged, with minutes late measured from slot start
	uc.now = func() time.Time { return time.Date(2026, 3, 2, 7, 31, 0, 0, time.UTC) }
	result, err = uc.NoShowCandidates(ctx, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	candidate := result.Candidates[0]
	assert.Equal(t, "Morning", candidate.SlotName)
	assert.Equal(t, "07:00", candidate.SlotStart)
	assert.Equal(t, 31, candidate.MinutesLate)

	// Candidates are flagged only, never auto-marked
	var reloaded entity.Session
	require.NoError(t, db.First(&reloaded, "id = ?", candidate.Session.ID).Error)
	assert.False(t, reloaded.IsMissed)
	assert.Equal(t, entity.PhasePreDialysis, reloaded.Phase)
}

func TestNoShowCandidates_SkipsArrivedAndMarked(t *testing.T) {
	uc, db := newMissedUsecase(t, 30*time.Minute)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	patientA := createTestPatient(t, db, "MRN-001")
	patientB := createTestPatient(t, db, "MRN-002")
	patientC := createTestPatient(t, db, "MRN-003")

	// A arrived: session already advanced past pre-dialysis
	arrived := createTestSession(t, db, patientA.ID, day, entity.SlotIDMorning, intPtr(1))
	require.NoError(t, db.Model(arrived).Updates(map[string]interface{}{
		"phase":                  entity.PhaseIntraDialysis,
		"is_pre_dialysis_locked": true,
	}).Error)

	// B already confirmed missed
	marked := createTestSession(t, db, patientB.ID, day, entity.SlotIDMorning, intPtr(2))
	require.NoError(t, db.Model(marked).Update("is_missed", true).Error)

	// C is still pending
	pending := createTestSession(t, db, patientC.ID, day, entity.SlotIDMorning, intPtr(3))

	uc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	result, err := uc.NoShowCandidates(ctx, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, pending.ID, result.Candidates[0].Session.ID)
}

func TestMarkMissed(t *testing.T) {
	uc, db := newMissedUsecase(t, 30*time.Minute)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	result, err := uc.MarkMissed(ctx, &dto.MarkMissedRequest{
		SessionID: session.ID,
		Reason:    string(entity.MissedReasonTransportation),
		Notes:     "Ambulance transfer cancelled",
	})
	require.NoError(t, err)
	assert.True(t, result.IsMissed)
	assert.Equal(t, string(entity.MissedReasonTransportation), result.MissedReason)
	assert.NotNil(t, result.MissedAt)

	// Double-marking is rejected
	_, err = uc.MarkMissed(ctx, &dto.MarkMissedRequest{
		SessionID: session.ID,
		Reason:    string(entity.MissedReasonSick),
	})
	assert.ErrorIs(t, err, ErrAlreadyMarkedMissed)
}

func TestMarkMissed_InvalidReason(t *testing.T) {
	uc, db := newMissedUsecase(t, 30*time.Minute)

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	_, err := uc.MarkMissed(context.Background(), &dto.MarkMissedRequest{
		SessionID: session.ID,
		Reason:    "overslept",
	})
	assert.ErrorIs(t, err, ErrInvalidMissedReason)
}

func TestResolveMissed(t *testing.T) {
	uc, db := newMissedUsecase(t, 30*time.Minute)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	// Resolving before marking is rejected
	_, err := uc.ResolveMissed(ctx, &dto.ResolveMissedRequest{
		SessionID: session.ID,
		Notes:     "Rescheduled to tomorrow",
	})
	assert.ErrorIs(t, err, ErrNotMarkedMissed)

	_, err = uc.MarkMissed(ctx, &dto.MarkMissedRequest{
		SessionID: session.ID,
		Reason:    string(entity.MissedReasonEmergency),
	})
	require.NoError(t, err)

	result, err := uc.ResolveMissed(ctx, &dto.ResolveMissedRequest{
		SessionID: session.ID,
		Notes:     "Rescheduled to tomorrow",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rescheduled to tomorrow", result.ResolutionNotes)
	assert.NotNil(t, result.ResolvedAt)

	_, err = uc.ResolveMissed(ctx, &dto.ResolveMissedRequest{
		SessionID: session.ID,
		Notes:     "Again",
	})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}
