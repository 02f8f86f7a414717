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

func newPhaseUsecase(t *testing.T) (SessionPhaseUsecase, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	return NewSessionPhaseUsecase(db, log, repository.NewSessionRepository(), newTestAudit(log), nil), db
}

func fullPreDialysis() *dto.SubmitPreDialysisRequest {
	return &dto.SubmitPreDialysisRequest{
		WeightKg:             floatPtr(70.2),
		SystolicBP:           intPtr(130),
		DiastolicBP:          intPtr(85),
		AccessSiteAssessment: "AV fistula patent, no signs of infection",
	}
}

func fullPostDialysis() *dto.SubmitPostDialysisRequest {
	return &dto.SubmitPostDialysisRequest{
		WeightKg:       floatPtr(68.4),
		SystolicBP:     intPtr(120),
		DiastolicBP:    intPtr(80),
		FluidRemovedML: floatPtr(1800),
	}
}

func TestPhaseWorkflow_FullLifecycle(t *testing.T) {
	uc, db := newPhaseUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, intPtr(3))

	result, err := uc.SubmitPreDialysis(ctx, session.ID, fullPreDialysis())
	require.NoError(t, err)
	assert.Equal(t, string(entity.PhaseIntraDialysis), result.Phase)
	assert.True(t, result.IsPreDialysisLocked)
	assert.False(t, result.IsIntraDialysisLocked)

	result, err = uc.EndTreatment(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PhasePostDialysis), result.Phase)
	assert.True(t, result.IsIntraDialysisLocked)

	result, err = uc.SubmitPostDialysis(ctx, session.ID, fullPostDialysis())
	require.NoError(t, err)
	assert.Equal(t, string(entity.PhaseDischarged), result.Phase)
	assert.True(t, result.IsDischarged)
	require.NotNil(t, result.FluidRemovedML)
	assert.Equal(t, 1800.0, *result.FluidRemovedML)
}

func TestSubmitPreDialysis_IncompleteData(t *testing.T) {
	uc, db := newPhaseUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	_, err := uc.SubmitPreDialysis(ctx, session.ID, &dto.SubmitPreDialysisRequest{
		WeightKg: floatPtr(70.2),
	})
	var incomplete *IncompleteDataError
	require.ErrorAs(t, err, &incomplete)
	assert.ElementsMatch(t, []string{"systolic_bp", "diastolic_bp", "access_site_assessment"}, incomplete.Missing)

	// Nothing advanced
	var reloaded entity.Session
	require.NoError(t, db.First(&reloaded, "id = ?", session.ID).Error)
	assert.Equal(t, entity.PhasePreDialysis, reloaded.Phase)
	assert.False(t, reloaded.IsPreDialysisLocked)
}

func TestSubmitPreDialysis_LockedAfterAdvance(t *testing.T) {
	uc, db := newPhaseUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	_, err := uc.SubmitPreDialysis(ctx, session.ID, fullPreDialysis())
	require.NoError(t, err)

	_, err = uc.SubmitPreDialysis(ctx, session.ID, fullPreDialysis())
	assert.ErrorIs(t, err, ErrPhaseLocked)
}

func TestSubmitPostDialysis_IncompleteData(t *testing.T) {
	uc, db := newPhaseUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	_, err := uc.SubmitPreDialysis(ctx, session.ID, fullPreDialysis())
	require.NoError(t, err)
	_, err = uc.EndTreatment(ctx, session.ID)
	require.NoError(t, err)

	_, err = uc.SubmitPostDialysis(ctx, session.ID, &dto.SubmitPostDialysisRequest{})
	var incomplete *IncompleteDataError
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Missing, 4)
}

func TestPhaseWorkflow_NoSkipsOrRegressions(t *testing.T) {
	uc, db := newPhaseUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, nil)

	// Cannot end treatment or discharge from pre-dialysis
	_, err := uc.EndTreatment(ctx, session.ID)
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = uc.SubmitPostDialysis(ctx, session.ID, fullPostDialysis())
	assert.ErrorIs(t, err, ErrWrongPhase)

	_, err = uc.SubmitPreDialysis(ctx, session.ID, fullPreDialysis())
	require.NoError(t, err)
	_, err = uc.EndTreatment(ctx, session.ID)
	require.NoError(t, err)
	_, err = uc.SubmitPostDialysis(ctx, session.ID, fullPostDialysis())
	require.NoError(t, err)

	// Discharged sessions reject every further transition
	_, err = uc.EndTreatment(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionDischarged)
	_, err = uc.SubmitPostDialysis(ctx, session.ID, fullPostDialysis())
	assert.ErrorIs(t, err, ErrSessionDischarged)
}
