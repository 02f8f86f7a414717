package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hd-clinic-api/internal/converter"
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/delivery/http/middleware"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrPatientInactive   = errors.New("patient is inactive")
	ErrSessionDatePast   = errors.New("cannot schedule a session on a past date")
	ErrDuplicateSession  = errors.New("patient already has an active session for this date and slot")
	ErrBedOutOfRange     = errors.New("bed number is outside the slot's capacity")
	ErrSessionDischarged = errors.New("session is already discharged")
)

// BedConflictError reports the active session occupying a requested bed
type BedConflictError struct {
	BedNumber   int
	SessionID   uuid.UUID
	PatientID   uuid.UUID
	PatientName string
}

func (e *BedConflictError) Error() string {
	return fmt.Sprintf("bed %d is already occupied by session %s", e.BedNumber, e.SessionID)
}

// AvailabilityCache caches free-bed lists per (date, slot). Implemented by
// service.AvailabilityCache; a nil cache disables caching.
type AvailabilityCache interface {
	GetFreeBeds(ctx context.Context, date string, slotID int) ([]int, bool)
	SetFreeBeds(ctx context.Context, date string, slotID int, beds []int)
	Invalidate(ctx context.Context, date string, slotID int)
}

type ScheduleUsecase interface {
	GetDailySchedule(ctx context.Context, date string) (*dto.DailyScheduleResponse, error)
	GetBedAvailability(ctx context.Context, date string, slotID int) (*dto.BedAvailabilityResponse, error)
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	AssignBed(ctx context.Context, sessionID uuid.UUID, req *dto.AssignBedRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
}

type scheduleUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	slotRepo    repository.SlotRepository
	patientRepo repository.PatientRepository
	audit       AuditWriter
	cache       AvailabilityCache
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	slotRepo repository.SlotRepository,
	patientRepo repository.PatientRepository,
	audit AuditWriter,
	cache AvailabilityCache,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:          db,
		log:         log,
		sessionRepo: sessionRepo,
		slotRepo:    slotRepo,
		patientRepo: patientRepo,
		audit:       audit,
		cache:       cache,
	}
}

// GetDailySchedule returns the full board for one calendar date, grouped by slot
func (u *scheduleUsecase) GetDailySchedule(ctx context.Context, date string) (*dto.DailyScheduleResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slots, err := u.slotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load slot catalog: %+v", err)
		return nil, err
	}

	sessions, err := u.sessionRepo.FindByDate(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to load sessions for %s: %+v", date, err)
		return nil, err
	}

	bySlot := make(map[int][]entity.Session, len(slots))
	for _, session := range sessions {
		bySlot[session.SlotID] = append(bySlot[session.SlotID], session)
	}

	response := &dto.DailyScheduleResponse{
		Date:  date,
		Slots: make([]dto.SlotScheduleResponse, len(slots)),
		Total: len(sessions),
	}
	for i := range slots {
		response.Slots[i] = dto.SlotScheduleResponse{
			Slot:     converter.SlotToResponse(&slots[i]),
			Sessions: converter.SessionsToResponses(bySlot[slots[i].ID]),
		}
	}

	return response, nil
}

// GetBedAvailability returns the free and occupied beds for a (date, slot)
func (u *scheduleUsecase) GetBedAvailability(ctx context.Context, date string, slotID int) (*dto.BedAvailabilityResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", slotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	if u.cache != nil {
		if free, ok := u.cache.GetFreeBeds(ctx, date, slotID); ok {
			return &dto.BedAvailabilityResponse{
				Date:          date,
				SlotID:        slot.ID,
				SlotName:      slot.Name,
				BedCapacity:   slot.BedCapacity,
				AvailableBeds: free,
				OccupiedBeds:  occupiedFrom(slot.BedCapacity, free),
			}, nil
		}
	}

	free, occupied, err := u.freeBeds(u.db.WithContext(ctx), day, slot)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.SetFreeBeds(ctx, date, slotID, free)
	}

	return &dto.BedAvailabilityResponse{
		Date:          date,
		SlotID:        slot.ID,
		SlotName:      slot.Name,
		BedCapacity:   slot.BedCapacity,
		AvailableBeds: free,
		OccupiedBeds:  occupied,
	}, nil
}

// CreateSession schedules a dialysis session, optionally with an immediate bed
// assignment. The occupancy check and the insert run in one transaction so the
// (date, slot, bed) invariant is enforced against committed state.
func (u *scheduleUsecase) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	day, err := parseDate(req.SessionDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	today := entity.DateOnly(time.Now())
	if day.Before(today) {
		return nil, ErrSessionDatePast
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.IsActive != nil && !*patient.IsActive {
		return nil, ErrPatientInactive
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	// Same patient twice on the same date is fine in different slots, not in
	// the same one
	existing, err := u.sessionRepo.FindByPatientDateSlot(u.db.WithContext(ctx), req.PatientID, day, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to check for duplicate session: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSession
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if req.BedNumber != nil {
		if err := u.checkBedFree(tx, day, slot, *req.BedNumber, uuid.Nil); err != nil {
			return nil, err
		}
	}

	session := &entity.Session{
		PatientID:   req.PatientID,
		SessionDate: day,
		SlotID:      req.SlotID,
		BedNumber:   req.BedNumber,
		Phase:       entity.PhasePreDialysis,
	}

	if err := u.sessionRepo.Create(tx, session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogCreate(tx, userID, entity.AuditActionSessionCreate, "session", session.ID.String(), session); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, req.SessionDate, req.SlotID)
	}

	session.Patient = *patient
	session.Slot = *slot
	u.log.Infof("Session created: id=%s, patient=%s, date=%s, slot=%d", session.ID, req.PatientID, req.SessionDate, req.SlotID)
	return converter.SessionToResponse(session), nil
}

// AssignBed assigns or moves a session to a bed within its slot
func (u *scheduleUsecase) AssignBed(ctx context.Context, sessionID uuid.UUID, req *dto.AssignBedRequest) (*dto.SessionResponse, error) {
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

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), session.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", session.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	oldBed := session.BedNumber

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.checkBedFree(tx, entity.DateOnly(session.SessionDate), slot, req.BedNumber, session.ID); err != nil {
		return nil, err
	}

	session.BedNumber = &req.BedNumber
	if err := u.sessionRepo.Update(tx, session); err != nil {
		u.log.Warnf("Failed to update session %s: %+v", sessionID, err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogUpdate(tx, userID, entity.AuditActionSessionBedChange, "session", session.ID.String(), oldBed, req.BedNumber); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, session.SessionDate.Format("2006-01-02"), session.SlotID)
	}

	u.log.Infof("Bed assigned: session=%s, bed=%d", sessionID, req.BedNumber)
	return converter.SessionToResponse(session), nil
}

func (u *scheduleUsecase) GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return converter.SessionToResponse(session), nil
}

// checkBedFree validates a candidate bed against the slot capacity and the
// active sessions holding the (date, slot). excludeID skips the session being
// moved so it does not conflict with itself.
func (u *scheduleUsecase) checkBedFree(db *gorm.DB, day time.Time, slot *entity.Slot, bed int, excludeID uuid.UUID) error {
	if bed < 1 || bed > slot.BedCapacity {
		return ErrBedOutOfRange
	}

	active, err := u.sessionRepo.FindActiveByDateAndSlot(db, day, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to load active sessions for slot %d: %+v", slot.ID, err)
		return err
	}

	for i := range active {
		occupant := &active[i]
		if occupant.ID == excludeID || occupant.BedNumber == nil {
			continue
		}
		if *occupant.BedNumber == bed {
			return &BedConflictError{
				BedNumber:   bed,
				SessionID:   occupant.ID,
				PatientID:   occupant.PatientID,
				PatientName: occupant.Patient.FullName,
			}
		}
	}

	return nil
}

// freeBeds computes the available and occupied bed lists for a (date, slot)
func (u *scheduleUsecase) freeBeds(db *gorm.DB, day time.Time, slot *entity.Slot) ([]int, []int, error) {
	active, err := u.sessionRepo.FindActiveByDateAndSlot(db, day, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to load active sessions for slot %d: %+v", slot.ID, err)
		return nil, nil, err
	}

	taken := make(map[int]bool, len(active))
	for i := range active {
		if active[i].BedNumber != nil {
			taken[*active[i].BedNumber] = true
		}
	}

	free := make([]int, 0, slot.BedCapacity)
	occupied := make([]int, 0, len(taken))
	for bed := 1; bed <= slot.BedCapacity; bed++ {
		if taken[bed] {
			occupied = append(occupied, bed)
		} else {
			free = append(free, bed)
		}
	}
	return free, occupied, nil
}

// occupiedFrom derives the occupied list from capacity and the free list
func occupiedFrom(capacity int, free []int) []int {
	isFree := make(map[int]bool, len(free))
	for _, bed := range free {
		isFree[bed] = true
	}
	occupied := make([]int, 0, capacity-len(free))
	for bed := 1; bed <= capacity; bed++ {
		if !isFree[bed] {
			occupied = append(occupied, bed)
		}
	}
	return occupied
}

func parseDate(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return entity.DateOnly(day), nil
}

// auditUserID extracts the acting user for audit entries; background or
// unauthenticated calls log with a nil user
func auditUserID(ctx context.Context) *uuid.UUID {
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &userID
	}
	return nil
}
