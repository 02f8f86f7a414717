package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hd-clinic-api/internal/converter"
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPhaseLocked = errors.New("this phase is locked and can no longer be edited")
	ErrWrongPhase  = errors.New("session is not in the required phase for this action")
)

// IncompleteDataError names the required fields still missing for a phase
// transition. Phases never advance on partial data.
type IncompleteDataError struct {
	Missing []string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("required data is incomplete: %s", strings.Join(e.Missing, ", "))
}

type SessionPhaseUsecase interface {
	SubmitPreDialysis(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitPreDialysisRequest) (*dto.SessionResponse, error)
	EndTreatment(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	SubmitPostDialysis(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitPostDialysisRequest) (*dto.SessionResponse, error)
}

type sessionPhaseUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	audit       AuditWriter
	cache       AvailabilityCache
}

func NewSessionPhaseUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	audit AuditWriter,
	cache AvailabilityCache,
) SessionPhaseUsecase {
	return &sessionPhaseUsecase{
		db:          db,
		log:         log,
		sessionRepo: sessionRepo,
		audit:       audit,
		cache:       cache,
	}
}

// SubmitPreDialysis records intake vitals and advances the session into
// intra-dialysis. All intake fields are mandatory; the pre-dialysis record is
// locked the moment the session advances.
func (u *sessionPhaseUsecase) SubmitPreDialysis(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitPreDialysisRequest) (*dto.SessionResponse, error) {
	session, err := u.findActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsPreDialysisLocked {
		return nil, ErrPhaseLocked
	}
	if session.Phase != entity.PhasePreDialysis {
		return nil, ErrWrongPhase
	}

	var missing []string
	if req.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	if req.SystolicBP == nil {
		missing = append(missing, "systolic_bp")
	}
	if req.DiastolicBP == nil {
		missing = append(missing, "diastolic_bp")
	}
	if req.AccessSiteAssessment == "" {
		missing = append(missing, "access_site_assessment")
	}
	if len(missing) > 0 {
		return nil, &IncompleteDataError{Missing: missing}
	}

	session.PreWeightKg = req.WeightKg
	session.PreSystolicBP = req.SystolicBP
	session.PreDiastolicBP = req.DiastolicBP
	session.AccessSiteAssessment = req.AccessSiteAssessment
	session.Advance(entity.PhaseIntraDialysis)

	if err := u.saveWithAudit(ctx, session, entity.PhasePreDialysis); err != nil {
		return nil, err
	}

	u.log.Infof("Session advanced to intra-dialysis: id=%s", sessionID)
	return converter.SessionToResponse(session), nil
}

// EndTreatment closes the treatment run and advances the session into
// post-dialysis. Monitoring records become read-only from this point.
func (u *sessionPhaseUsecase) EndTreatment(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := u.findActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != entity.PhaseIntraDialysis {
		return nil, ErrWrongPhase
	}

	session.Advance(entity.PhasePostDialysis)

	if err := u.saveWithAudit(ctx, session, entity.PhaseIntraDialysis); err != nil {
		return nil, err
	}

	u.log.Infof("Session advanced to post-dialysis: id=%s", sessionID)
	return converter.SessionToResponse(session), nil
}

// SubmitPostDialysis records the closing vitals and discharges the session,
// freeing its bed for the (date, slot)
func (u *sessionPhaseUsecase) SubmitPostDialysis(ctx context.Context, sessionID uuid.UUID, req *dto.SubmitPostDialysisRequest) (*dto.SessionResponse, error) {
	session, err := u.findActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != entity.PhasePostDialysis {
		return nil, ErrWrongPhase
	}

	var missing []string
	if req.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	if req.SystolicBP == nil {
		missing = append(missing, "systolic_bp")
	}
	if req.DiastolicBP == nil {
		missing = append(missing, "diastolic_bp")
	}
	if req.FluidRemovedML == nil {
		missing = append(missing, "fluid_removed_ml")
	}
	if len(missing) > 0 {
		return nil, &IncompleteDataError{Missing: missing}
	}

	session.PostWeightKg = req.WeightKg
	session.PostSystolicBP = req.SystolicBP
	session.PostDiastolicBP = req.DiastolicBP
	session.FluidRemovedML = req.FluidRemovedML
	session.Advance(entity.PhaseDischarged)

	if err := u.saveWithAudit(ctx, session, entity.PhasePostDialysis); err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, session.SessionDate.Format("2006-01-02"), session.SlotID)
	}

	u.log.Infof("Session discharged: id=%s", sessionID)
	return converter.SessionToResponse(session), nil
}

func (u *sessionPhaseUsecase) findActive(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsDischarged {
		return nil, ErrSessionDischarged
	}
	return session, nil
}

func (u *sessionPhaseUsecase) saveWithAudit(ctx context.Context, session *entity.Session, from entity.SessionPhase) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.Update(tx, session); err != nil {
		u.log.Warnf("Failed to update session %s: %+v", session.ID, err)
		return err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogUpdate(tx, userID, entity.AuditActionSessionPhase, "session", session.ID.String(), string(from), string(session.Phase)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
