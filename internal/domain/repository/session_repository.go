package repository

import (
	"time"

	"hd-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(db *gorm.DB, session *entity.Session) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error)
	FindByDate(db *gorm.DB, date time.Time) ([]entity.Session, error)
	FindActiveByDateAndSlot(db *gorm.DB, date time.Time, slotID int) ([]entity.Session, error)
	FindByPatientDateSlot(db *gorm.DB, patientID uuid.UUID, date time.Time, slotID int) (*entity.Session, error)
	FindByDateAndPhase(db *gorm.DB, date time.Time, phase entity.SessionPhase) ([]entity.Session, error)
	Update(db *gorm.DB, session *entity.Session) error

	// ArchivePastSessions atomically flags every non-discharged session dated
	// strictly before today as discharged and moved to history. Returns the
	// number of rows affected; re-running is a no-op.
	ArchivePastSessions(db *gorm.DB, today time.Time) (int64, error)

	// AutoDischargeStale discharges sessions stuck in post-dialysis whose last
	// update is older than the cutoff. Returns the number of rows affected.
	AutoDischargeStale(db *gorm.DB, cutoff time.Time) (int64, error)
}
