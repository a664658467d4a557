package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/model"
	"londonhealth/internal/repository"
)

// Clinical range bounds enforced at write time.
const (
	MinAge     = 0
	MaxAge     = 120
	MinBMI     = 10
	MaxBMI     = 100
	MinGlucose = 0
	MaxGlucose = 500
)

// PatientInput carries the mutable fields of a patient record.
type PatientInput struct {
	Gender          string
	Age             int
	Hypertension    bool
	HeartDisease    bool
	EverMarried     string
	WorkType        string
	ResidenceType   string
	AvgGlucoseLevel float64
	BMI             float64
	SmokingStatus   string
	Stroke          bool
}

// PatientService exposes clinical record store domain operations.
type PatientService interface {
	CreatePatient(ctx context.Context, patientID int, input PatientInput) (string, error)
	GetByPatientID(ctx context.Context, patientID int) (*model.Patient, error)
	GetByRecordID(ctx context.Context, recordID string) (*model.Patient, error)
	ListPatients(ctx context.Context, page, perPage int) ([]model.Patient, int64, error)
	UpdatePatient(ctx context.Context, patientID int, input PatientInput) (bool, error)
	DeletePatient(ctx context.Context, patientID int) (bool, error)
}

type patientService struct {
	repo repository.PatientRepository
}

// NewPatientService builds a PatientService on a repository.
func NewPatientService(repo repository.PatientRepository) PatientService {
	return &patientService{repo: repo}
}

// validatePatient is the single validation routine for patient fields,
// shared by create and update.
func validatePatient(input PatientInput) error {
	if input.Gender != model.GenderMale && input.Gender != model.GenderFemale {
		return apperrors.InvalidInput("gender must be Male or Female")
	}
	if input.Age < MinAge || input.Age > MaxAge {
		return apperrors.InvalidInput(fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if input.BMI < MinBMI || input.BMI > MaxBMI {
		return apperrors.InvalidInput(fmt.Sprintf("bmi must be between %d and %d", MinBMI, MaxBMI))
	}
	if input.AvgGlucoseLevel < MinGlucose || input.AvgGlucoseLevel > MaxGlucose {
		return apperrors.InvalidInput(fmt.Sprintf("avg_glucose_level must be between %d and %d", MinGlucose, MaxGlucose))
	}
	if strings.TrimSpace(input.EverMarried) == "" {
		return apperrors.InvalidInput("ever_married is required")
	}
	if strings.TrimSpace(input.WorkType) == "" {
		return apperrors.InvalidInput("work_type is required")
	}
	if strings.TrimSpace(input.ResidenceType) == "" {
		return apperrors.InvalidInput("residence_type is required")
	}
	if strings.TrimSpace(input.SmokingStatus) == "" {
		return apperrors.InvalidInput("smoking_status is required")
	}
	return nil
}

func patientFromInput(patientID int, input PatientInput) *model.Patient {
	return &model.Patient{
		PatientID:       patientID,
		Gender:          input.Gender,
		Age:             input.Age,
		Hypertension:    input.Hypertension,
		HeartDisease:    input.HeartDisease,
		EverMarried:     input.EverMarried,
		WorkType:        input.WorkType,
		ResidenceType:   input.ResidenceType,
		AvgGlucoseLevel: input.AvgGlucoseLevel,
		BMI:             input.BMI,
		SmokingStatus:   input.SmokingStatus,
		Stroke:          input.Stroke,
	}
}

// CreatePatient persists a new record and returns the store-assigned record
// id. The patient id must be unique across all records.
func (s *patientService) CreatePatient(ctx context.Context, patientID int, input PatientInput) (string, error) {
	if patientID <= 0 {
		return "", apperrors.InvalidInput("patient_id must be a positive integer")
	}
	if err := validatePatient(input); err != nil {
		return "", err
	}

	// Pre-check for a friendlier error; the unique index catches the race.
	existing, err := s.repo.FindByPatientID(ctx, patientID)
	if err == nil && existing != nil {
		return "", apperrors.ErrDuplicatePatientID
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("check patient existence: %w", err)
	}

	recordID, err := s.repo.Insert(ctx, patientFromInput(patientID, input))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.ErrDuplicatePatientID
		}
		return "", fmt.Errorf("insert patient: %w", err)
	}
	return recordID, nil
}

func (s *patientService) GetByPatientID(ctx context.Context, patientID int) (*model.Patient, error) {
	patient, err := s.repo.FindByPatientID(ctx, patientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return patient, nil
}

func (s *patientService) GetByRecordID(ctx context.Context, recordID string) (*model.Patient, error) {
	patient, err := s.repo.FindByRecordID(ctx, recordID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient record: %w", err)
	}
	return patient, nil
}

// ListPatients returns one page, newest first, plus the total count.
func (s *patientService) ListPatients(ctx context.Context, page, perPage int) ([]model.Patient, int64, error) {
	skip, limit := PageWindow(page, perPage)
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}
	patients, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	return patients, total, nil
}

// UpdatePatient applies the same validation as create. Returns false when no
// record matched the patient id.
func (s *patientService) UpdatePatient(ctx context.Context, patientID int, input PatientInput) (bool, error) {
	if err := validatePatient(input); err != nil {
		return false, err
	}
	matched, err := s.repo.Update(ctx, patientID, patientFromInput(patientID, input))
	if err != nil {
		return false, fmt.Errorf("update patient: %w", err)
	}
	return matched, nil
}

// DeletePatient is idempotent: deleting a missing id reports false, not an
// error.
func (s *patientService) DeletePatient(ctx context.Context, patientID int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, patientID)
	if err != nil {
		return false, fmt.Errorf("delete patient: %w", err)
	}
	return deleted, nil
}
