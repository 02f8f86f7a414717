package repository

import (
	"errors"
	"time"

	"hd-clinic-api/internal/domain/entity"
	domainRepo "hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := db.Preload("Patient").Preload("Slot").Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByDate(db *gorm.DB, date time.Time) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.Preload("Patient").
		Where("session_date = ?", date).
		Order("slot_id ASC, bed_number ASC NULLS LAST").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindActiveByDateAndSlot returns the non-discharged sessions holding the
// given (date, slot). Bed occupancy is derived from this set; callers must
// skip entries with a nil bed number.
func (r *sessionRepository) FindActiveByDateAndSlot(db *gorm.DB, date time.Time, slotID int) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.Preload("Patient").
		Where("session_date = ? AND slot_id = ? AND is_discharged = ?", date, slotID, false).
		Order("bed_number ASC NULLS LAST").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindByPatientDateSlot(db *gorm.DB, patientID uuid.UUID, date time.Time, slotID int) (*entity.Session, error) {
	var session entity.Session
	err := db.Where("patient_id = ? AND session_date = ? AND slot_id = ? AND is_discharged = ?",
		patientID, date, slotID, false).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByDateAndPhase(db *gorm.DB, date time.Time, phase entity.SessionPhase) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.Preload("Patient").Preload("Slot").
		Where("session_date = ? AND phase = ?", date, phase).
		Order("slot_id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(db *gorm.DB, session *entity.Session) error {
	return db.Save(session).Error
}

// ArchivePastSessions is a single conditional UPDATE: the is_discharged=false
// predicate both makes the sweep idempotent and removes the read-then-write
// race against a concurrent manual discharge.
func (r *sessionRepository) ArchivePastSessions(db *gorm.DB, today time.Time) (int64, error) {
	result := db.Model(&entity.Session{}).
		Where("is_discharged = ? AND session_date < ?", false, today).
		Updates(map[string]interface{}{
			"phase":               entity.PhaseDischarged,
			"is_discharged":       true,
			"is_moved_to_history": true,
			"updated_at":          time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) AutoDischargeStale(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&entity.Session{}).
		Where("phase = ? AND is_discharged = ? AND updated_at < ?", entity.PhasePostDialysis, false, cutoff).
		Updates(map[string]interface{}{
			"phase":         entity.PhaseDischarged,
			"is_discharged": true,
			"updated_at":    time.Now(),
		})
	return result.RowsAffected, result.Error
}
