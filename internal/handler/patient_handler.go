package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/service"
)

// PatientHandler bundles clinical record endpoints.
type PatientHandler struct {
	svc service.PatientService
}

// NewPatientHandler creates a handler layer.
func NewPatientHandler(svc service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// PatientRequest represents the patient fields of a create or update.
type PatientRequest struct {
	Gender          string  `json:"gender" validate:"required"`
	Age             int     `json:"age"`
	Hypertension    bool    `json:"hypertension"`
	HeartDisease    bool    `json:"heart_disease"`
	EverMarried     string  `json:"ever_married" validate:"required"`
	WorkType        string  `json:"work_type" validate:"required"`
	ResidenceType   string  `json:"residence_type" validate:"required"`
	AvgGlucoseLevel float64 `json:"avg_glucose_level"`
	BMI             float64 `json:"bmi"`
	SmokingStatus   string  `json:"smoking_status" validate:"required"`
	Stroke          bool    `json:"stroke"`
}

// CreatePatientRequest adds the caller-supplied business key.
type CreatePatientRequest struct {
	PatientID int `json:"patient_id" validate:"required"`
	PatientRequest
}

func (r *PatientRequest) toInput() service.PatientInput {
	return service.PatientInput{
		Gender:          r.Gender,
		Age:             r.Age,
		Hypertension:    r.Hypertension,
		HeartDisease:    r.HeartDisease,
		EverMarried:     r.EverMarried,
		WorkType:        r.WorkType,
		ResidenceType:   r.ResidenceType,
		AvgGlucoseLevel: r.AvgGlucoseLevel,
		BMI:             r.BMI,
		SmokingStatus:   r.SmokingStatus,
		Stroke:          r.Stroke,
	}
}

// CreatePatient godoc
// @Summary Create a patient record
// @Tags patients
// @Accept json
// @Produce json
// @Param request body CreatePatientRequest true "Patient data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /patients [post]
func (h *PatientHandler) CreatePatient(c echo.Context) error {
	var req CreatePatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recordID, err := h.svc.CreatePatient(c.Request().Context(), req.PatientID, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "patient created successfully",
		"patient_id": req.PatientID,
		"record_id":  recordID,
	})
}

// ListPatients godoc
// @Summary List patient records, paginated, newest first
// @Tags patients
// @Produce json
// @Param page query int false "1-based page" default(1)
// @Param per_page query int false "page size" default(10)
// @Success 200 {object} PageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /patients [get]
func (h *PatientHandler) ListPatients(c echo.Context) error {
	page, perPage := pageParams(c)
	patients, total, err := h.svc.ListPatients(c.Request().Context(), page, perPage)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, NewPageResponse(patients, total, page, perPage))
}

// GetPatient godoc
// @Summary Get a patient by business patient id
// @Tags patients
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} model.Patient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	patient, err := h.svc.GetByPatientID(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

// GetPatientRecord godoc
// @Summary Get a patient by internal record id
// @Tags patients
// @Produce json
// @Param oid path string true "Record object id"
// @Success 200 {object} model.Patient
// @Failure 404 {object} errors.ErrorResponse
// @Router /patients/records/{oid} [get]
func (h *PatientHandler) GetPatientRecord(c echo.Context) error {
	patient, err := h.svc.GetByRecordID(c.Request().Context(), c.Param("oid"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

// UpdatePatient godoc
// @Summary Update a patient record
// @Tags patients
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body PatientRequest true "Patient data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /patients/{id} [put]
func (h *PatientHandler) UpdatePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var req PatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.svc.UpdatePatient(c.Request().Context(), id, req.toInput())
	if err != nil {
		return domainError(err)
	}
	if !updated {
		return domainError(apperrors.ErrPatientNotFound)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "patient updated successfully"})
}

// DeletePatient godoc
// @Summary Delete a patient record
// @Tags patients
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /patients/{id} [delete]
func (h *PatientHandler) DeletePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	deleted, err := h.svc.DeletePatient(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	// Idempotent: a missing id is reported, not treated as an error.
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "delete processed",
		"deleted": deleted,
	})
}
