package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScheduleUsecase(t *testing.T) (ScheduleUsecase, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	return NewScheduleUsecase(
		db,
		log,
		repository.NewSessionRepository(),
		repository.NewSlotRepository(),
		repository.NewPatientRepository(),
		newTestAudit(log),
		nil,
	), db
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func TestCreateSession_BedConflictSameDateSlot(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	patientA := createTestPatient(t, db, "MRN-001")
	patientB := createTestPatient(t, db, "MRN-002")

	created, err := uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patientA.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
		BedNumber:   intPtr(3),
	})
	require.NoError(t, err)
	require.NotNil(t, created.BedNumber)
	assert.Equal(t, 3, *created.BedNumber)

	// Same slot, same bed: rejected with the occupant's identity
	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patientB.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
		BedNumber:   intPtr(3),
	})
	var conflict *BedConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 3, conflict.BedNumber)
	assert.Equal(t, created.ID, conflict.SessionID)
	assert.Equal(t, patientA.ID, conflict.PatientID)

	// Same slot, different bed: fine
	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patientB.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
		BedNumber:   intPtr(4),
	})
	require.NoError(t, err)

	// Different slot, same bed number: fine, beds are per-slot
	patientC := createTestPatient(t, db, "MRN-003")
	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patientC.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDAfternoon,
		BedNumber:   intPtr(3),
	})
	require.NoError(t, err)
}

func TestCreateSession_CapacityNeverExceeded(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	// Fill every bed in the morning slot
	for bed := 1; bed <= entity.DefaultBedCapacity; bed++ {
		patient := createTestPatient(t, db, fmt.Sprintf("MRN-%03d", bed))
		_, err := uc.CreateSession(ctx, &dto.CreateSessionRequest{
			PatientID:   patient.ID,
			SessionDate: today(),
			SlotID:      entity.SlotIDMorning,
			BedNumber:   intPtr(bed),
		})
		require.NoError(t, err)
	}

	extra := createTestPatient(t, db, "MRN-EXTRA")

	// Every in-range bed is taken
	for bed := 1; bed <= entity.DefaultBedCapacity; bed++ {
		_, err := uc.CreateSession(ctx, &dto.CreateSessionRequest{
			PatientID:   extra.ID,
			SessionDate: today(),
			SlotID:      entity.SlotIDMorning,
			BedNumber:   intPtr(bed),
		})
		var conflict *BedConflictError
		assert.ErrorAs(t, err, &conflict, "bed %d should be occupied", bed)
	}

	// Beds beyond capacity do not exist
	_, err := uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   extra.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
		BedNumber:   intPtr(entity.DefaultBedCapacity + 1),
	})
	assert.ErrorIs(t, err, ErrBedOutOfRange)

	availability, err := uc.GetBedAvailability(ctx, today(), entity.SlotIDMorning)
	require.NoError(t, err)
	assert.Empty(t, availability.AvailableBeds)
	assert.Len(t, availability.OccupiedBeds, entity.DefaultBedCapacity)
}

func TestCreateSession_DuplicatePatientSameDateSlot(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")

	_, err := uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patient.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
	})
	require.NoError(t, err)

	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patient.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
	})
	assert.ErrorIs(t, err, ErrDuplicateSession)

	// A second slot on the same day is allowed
	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patient.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDEvening,
	})
	require.NoError(t, err)
}

func TestCreateSession_Validation(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")

	_, err := uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patient.ID,
		SessionDate: "not-a-date",
		SlotID:      entity.SlotIDMorning,
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   patient.ID,
		SessionDate: "2020-01-01",
		SlotID:      entity.SlotIDMorning,
	})
	assert.ErrorIs(t, err, ErrSessionDatePast)

	inactive := createTestPatient(t, db, "MRN-002")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	_, err = uc.CreateSession(ctx, &dto.CreateSessionRequest{
		PatientID:   inactive.ID,
		SessionDate: today(),
		SlotID:      entity.SlotIDMorning,
	})
	assert.ErrorIs(t, err, ErrPatientInactive)
}

func TestAssignBed_DischargedSessionFreesBed(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	patientA := createTestPatient(t, db, "MRN-001")
	patientB := createTestPatient(t, db, "MRN-002")

	sessionA := createTestSession(t, db, patientA.ID, time.Now(), entity.SlotIDMorning, intPtr(3))
	sessionB := createTestSession(t, db, patientB.ID, time.Now(), entity.SlotIDMorning, nil)

	// Bed 3 is held while A is active
	_, err := uc.AssignBed(ctx, sessionB.ID, &dto.AssignBedRequest{BedNumber: 3})
	var conflict *BedConflictError
	require.ErrorAs(t, err, &conflict)

	// Discharge A; bed 3 becomes assignable
	require.NoError(t, db.Model(sessionA).Updates(map[string]interface{}{
		"phase":         entity.PhaseDischarged,
		"is_discharged": true,
	}).Error)

	updated, err := uc.AssignBed(ctx, sessionB.ID, &dto.AssignBedRequest{BedNumber: 3})
	require.NoError(t, err)
	require.NotNil(t, updated.BedNumber)
	assert.Equal(t, 3, *updated.BedNumber)
}

func TestAssignBed_MoveWithinSlot(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	patient := createTestPatient(t, db, "MRN-001")
	session := createTestSession(t, db, patient.ID, time.Now(), entity.SlotIDMorning, intPtr(2))

	// Moving to the bed it already holds does not conflict with itself
	updated, err := uc.AssignBed(ctx, session.ID, &dto.AssignBedRequest{BedNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, *updated.BedNumber)

	updated, err = uc.AssignBed(ctx, session.ID, &dto.AssignBedRequest{BedNumber: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, *updated.BedNumber)
}

func TestGetDailySchedule_GroupsBySlot(t *testing.T) {
	uc, db := newScheduleUsecase(t)
	ctx := context.Background()

	patientA := createTestPatient(t, db, "MRN-001")
	patientB := createTestPatient(t, db, "MRN-002")
	createTestSession(t, db, patientA.ID, time.Now(), entity.SlotIDMorning, intPtr(1))
	createTestSession(t, db, patientB.ID, time.Now(), entity.SlotIDNight, intPtr(5))

	schedule, err := uc.GetDailySchedule(ctx, today())
	require.NoError(t, err)
	require.Len(t, schedule.Slots, 4)
	assert.Equal(t, 2, schedule.Total)
	assert.Len(t, schedule.Slots[0].Sessions, 1)
	assert.Len(t, schedule.Slots[1].Sessions, 0)
	assert.Len(t, schedule.Slots[3].Sessions, 1)
}

func TestGetBedAvailability_UnknownSlot(t *testing.T) {
	uc, _ := newScheduleUsecase(t)

	_, err := uc.GetBedAvailability(context.Background(), today(), 99)
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}
