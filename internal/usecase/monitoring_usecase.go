package usecase

import (
	"context"
	"errors"

	"hd-clinic-api/internal/converter"
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotInIntraDialysis = errors.New("monitoring records can only be added during intra-dialysis")

type MonitoringUsecase interface {
	AddRecord(ctx context.Context, sessionID uuid.UUID, req *dto.CreateMonitoringRecordRequest) (*dto.MonitoringRecordResponse, error)
	ListRecords(ctx context.Context, sessionID uuid.UUID) (*dto.MonitoringRecordListResponse, error)
}

type monitoringUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	sessionRepo    repository.SessionRepository
	monitoringRepo repository.MonitoringRepository
	audit          AuditWriter
}

func NewMonitoringUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	monitoringRepo repository.MonitoringRepository,
	audit AuditWriter,
) MonitoringUsecase {
	return &monitoringUsecase{
		db:             db,
		log:            log,
		sessionRepo:    sessionRepo,
		monitoringRepo: monitoringRepo,
		audit:          audit,
	}
}

// AddRecord appends an intra-dialysis vitals reading. Writes are only allowed
// while the session is in the intra-dialysis phase; once treatment ends the
// record set is read-only.
func (u *monitoringUsecase) AddRecord(ctx context.Context, sessionID uuid.UUID, req *dto.CreateMonitoringRecordRequest) (*dto.MonitoringRecordResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Phase != entity.PhaseIntraDialysis {
		return nil, ErrNotInIntraDialysis
	}

	record := &entity.MonitoringRecord{
		SessionID:      sessionID,
		SystolicBP:     req.SystolicBP,
		DiastolicBP:    req.DiastolicBP,
		PulseRate:      req.PulseRate,
		TemperatureC:   req.TemperatureC,
		UFVolumeML:     req.UFVolumeML,
		VenousPressure: req.VenousPressure,
		Notes:          req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.monitoringRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create monitoring record: %+v", err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogCreate(tx, userID, entity.AuditActionMonitoringCreate, "monitoring_record", record.ID.String(), record); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Monitoring record added: session=%s, record=%s", sessionID, record.ID)
	return converter.MonitoringRecordToResponse(record), nil
}

// ListRecords returns a session's vitals readings in recording order
func (u *monitoringUsecase) ListRecords(ctx context.Context, sessionID uuid.UUID) (*dto.MonitoringRecordListResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	records, err := u.monitoringRepo.FindBySessionID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to load monitoring records for session %s: %+v", sessionID, err)
		return nil, err
	}

	return &dto.MonitoringRecordListResponse{
		Records: converter.MonitoringRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
