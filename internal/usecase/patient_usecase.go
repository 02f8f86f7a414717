package usecase

import (
	"context"
	"errors"
	"time"

	"hd-clinic-api/internal/converter"
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound        = errors.New("patient not found")
	ErrMRNAlreadyExists       = errors.New("a patient with this MRN already exists")
	ErrInvalidDateOfBirth     = errors.New("invalid date of birth, use YYYY-MM-DD")
	ErrPatientAlreadyInactive = errors.New("patient is already inactive")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, activeOnly bool, nameSearch string) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeactivatePatient(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	audit       AuditWriter
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository, audit AuditWriter) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		audit:       audit,
	}
}

// CreatePatient registers a new dialysis patient. The MRN is the clinic's
// external identifier and must be unique.
func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}

	existing, err := u.patientRepo.FindByMRN(u.db.WithContext(ctx), req.MRN)
	if err != nil {
		u.log.Warnf("Failed to check MRN %s: %+v", req.MRN, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrMRNAlreadyExists
	}

	patient := &entity.Patient{
		MRN:              req.MRN,
		FullName:         req.FullName,
		DateOfBirth:      dateOfBirth,
		Gender:           req.Gender,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		HDCyclePattern:   req.HDCyclePattern,
		FrequencyPerWeek: req.FrequencyPerWeek,
		DryWeightKg:      req.DryWeightKg,
		AccessType:       entity.AccessType(req.AccessType),
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "mrn") {
			return nil, ErrMRNAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogCreate(tx, userID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s, mrn=%s", patient.ID, patient.MRN)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, activeOnly bool, nameSearch string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx), activeOnly, nameSearch)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// UpdatePatient applies partial updates to the mutable demographic and
// treatment fields. The MRN is immutable.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	before := *patient

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.HDCyclePattern != "" {
		patient.HDCyclePattern = req.HDCyclePattern
	}
	if req.FrequencyPerWeek != nil {
		patient.FrequencyPerWeek = *req.FrequencyPerWeek
	}
	if req.DryWeightKg != nil {
		patient.DryWeightKg = *req.DryWeightKg
	}
	if req.AccessType != "" {
		patient.AccessType = entity.AccessType(req.AccessType)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogUpdate(tx, userID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), before, patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient updated: id=%s", id)
	return converter.PatientToResponse(patient), nil
}

// DeactivatePatient soft-deletes a patient. Historical sessions are kept;
// inactive patients cannot be scheduled.
func (u *patientUsecase) DeactivatePatient(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.Deactivate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate patient %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		// Distinguish missing from already-inactive for a useful error
		patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}
		return ErrPatientAlreadyInactive
	}

	userID := auditUserID(ctx)
	if err := u.audit.LogUpdate(tx, userID, entity.AuditActionPatientDeactivate, "patient", id.String(), true, false); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient deactivated: id=%s", id)
	return nil
}
