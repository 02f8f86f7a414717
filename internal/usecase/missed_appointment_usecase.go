package usecase

import (
	"context"
	"errors"
	"time"

	"hd-clinic-api/config"
	"hd-clinic-api/internal/converter"
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidMissedReason = errors.New("missed reason is not recognized")
	ErrAlreadyMarkedMissed = errors.New("session is already marked as missed")
	ErrNotMarkedMissed     = errors.New("session is not marked as missed")
	ErrAlreadyResolved     = errors.New("missed appointment is already resolved")
)

type MissedAppointmentUsecase interface {
	NoShowCandidates(ctx context.Context, date string) (*dto.NoShowCandidateListResponse, error)
	MarkMissed(ctx context.Context, req *dto.MarkMissedRequest) (*dto.SessionResponse, error)
	ResolveMissed(ctx context.Context, req *dto.ResolveMissedRequest) (*dto.SessionResponse, error)
}

type missedAppointmentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	audit       AuditWriter
	cfg         config.ScheduleConfig

	now func() time.Time
}

func NewMissedAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	audit AuditWriter,
	cfg config.ScheduleConfig,
) MissedAppointmentUsecase {
	return &missedAppointmentUsecase{
		db:          db,
		log:         log,
		sessionRepo: sessionRepo,
		audit:       audit,
		cfg:         cfg,
		now:         time.Now,
	}
}

// NoShowCandidates lists sessions still in pre-dialysis whose slot start time
// plus the no-show grace period has passed. Candidates are flagged for staff
// review only; nothing is marked missed until staff confirm a reason.
func (u *missedAppointmentUsecase) NoShowCandidates(ctx context.Context, date string) (*dto.NoShowCandidateListResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	sessions, err := u.sessionRepo.FindByDateAndPhase(u.db.WithContext(ctx), day, entity.PhasePreDialysis)
	if err != nil {
		u.log.Warnf("Failed to load pre-dialysis sessions for %s: %+v", date, err)
		return nil, err
	}

	now := u.now()
	candidates := make([]dto.NoShowCandidateResponse, 0)
	for i := range sessions {
		session := &sessions[i]
		if session.IsMissed {
			continue
		}

		start, err := session.Slot.StartOn(day)
		if err != nil {
			u.log.Warnf("Slot %d has a malformed start time %q: %+v", session.SlotID, session.Slot.StartTime, err)
			continue
		}
		// A session becomes a candidate at exactly slot start + grace
		deadline := start.Add(u.cfg.NoShowGrace)
		if now.Before(deadline) {
			continue
		}

		candidates = append(candidates, dto.NoShowCandidateResponse{
			Session:     *converter.SessionToResponse(session),
			SlotName:    session.Slot.Name,
			SlotStart:   session.Slot.StartTime,
			MinutesLate: int(now.Sub(start).Minutes()),
		})
	}

	return &dto.NoShowCandidateListResponse{
		Date:       date,
		Candidates: candidates,
		Total:      len(candidates),
	}, nil
}

// MarkMissed confirms a no-show with a reason from the closed taxonomy
func (u *missedAppointmentUsecase) MarkMissed(ctx context.Context, req *dto.MarkMissedRequest) (*dto.SessionResponse, error) {
	reason := entity.MissedReason(req.Reason)
	if !reason.IsValid() {
		return nil, ErrInvalidMissedReason
	}

	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), req.SessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", req.SessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsDischarged {
		return nil, ErrSessionDischarged
	}
	if session.IsMissed {
		return nil, ErrAlreadyMarkedMissed
	}

	missedAt := u.now()
	session.IsMissed = true
	session.MissedReason = &reason
	session.MissedNotes = req.Notes
	session.MissedAt = &missedAt

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.Update(tx, session); err != nil {
		u.log.Warnf("Failed to update session %s: %+v", req.SessionID, err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogUpdate(tx, userID, entity.AuditActionSessionMissed, "session", session.ID.String(), nil, reason); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Session marked missed: id=%s, reason=%s", req.SessionID, reason)
	return converter.SessionToResponse(session), nil
}

// ResolveMissed records the follow-up outcome for a missed appointment
func (u *missedAppointmentUsecase) ResolveMissed(ctx context.Context, req *dto.ResolveMissedRequest) (*dto.SessionResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), req.SessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", req.SessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsMissed {
		return nil, ErrNotMarkedMissed
	}
	if session.ResolvedAt != nil {
		return nil, ErrAlreadyResolved
	}

	resolvedAt := u.now()
	session.ResolutionNotes = req.Notes
	session.ResolvedAt = &resolvedAt

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.Update(tx, session); err != nil {
		u.log.Warnf("Failed to update session %s: %+v", req.SessionID, err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogUpdate(tx, userID, entity.AuditActionSessionResolved, "session", session.ID.String(), nil, req.Notes); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Missed session resolved: id=%s", req.SessionID)
	return converter.SessionToResponse(session), nil
}
