package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edu-priem/admissions-api/internal/ingest"
	"github.com/edu-priem/admissions-api/internal/models"
	"github.com/edu-priem/admissions-api/internal/service"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
	"github.com/edu-priem/admissions-api/pkg/response"
)

type applicantService interface {
	List(ctx context.Context) ([]models.Applicant, error)
	Add(ctx context.Context, in models.ApplicantInput) (*models.Applicant, bool, error)
	BulkAdd(ctx context.Context, rows []models.ApplicantInput, opts service.BulkAddOptions) (*models.BulkResult, error)
	Update(ctx context.Context, id int64, upd models.ApplicantUpdate) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*models.ApplicantStats, error)
}

type importObserver interface {
	ObserveImport(channel string, accepted, rejected int)
}

// ApplicantHandler exposes applicant endpoints.
type ApplicantHandler struct {
	service applicantService
	metrics importObserver
}

// NewApplicantHandler builds a new handler.
func NewApplicantHandler(service applicantService, metrics importObserver) *ApplicantHandler {
	return &ApplicantHandler{service: service, metrics: metrics}
}

// List godoc
// @Summary List applicants
// @Tags Applicants
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /applicants [get]
func (h *ApplicantHandler) List(c *gin.Context) {
	applicants, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicants, map[string]interface{}{"total": len(applicants)})
}

// Create godoc
// @Summary Add one applicant
// @Tags Applicants
// @Accept json
// @Produce json
// @Param payload body models.ApplicantInput true "Applicant payload"
// @Success 201 {object} response.Envelope
// @Router /applicants [post]
func (h *ApplicantHandler) Create(c *gin.Context) {
	var req models.ApplicantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid applicant payload"))
		return
	}
	record, created, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !created {
		response.JSON(c, http.StatusOK, record, map[string]interface{}{"duplicate": true})
		return
	}
	response.Created(c, record)
}

type bulkApplicantsRequest struct {
	Applicants []models.ApplicantInput `json:"applicants" binding:"required"`
}

// BulkCreate godoc
// @Summary Add many applicants
// @Tags Applicants
// @Accept json
// @Produce json
// @Param auto_priority query bool false "Reassign priorities by descending total"
// @Param replace query bool false "Clear the pool before adding"
// @Param payload body bulkApplicantsRequest true "Applicant rows"
// @Success 200 {object} response.Envelope
// @Router /applicants/bulk [post]
func (h *ApplicantHandler) BulkCreate(c *gin.Context) {
	var req bulkApplicantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk payload"))
		return
	}
	result, err := h.service.BulkAdd(c.Request.Context(), req.Applicants, bulkOptions(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Import godoc
// @Summary Import applicants from a CSV or XLSX file
// @Tags Applicants
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Param auto_priority query bool false "Reassign priorities by descending total"
// @Param replace query bool false "Clear the pool before adding"
// @Success 200 {object} response.Envelope
// @Router /applicants/import [post]
func (h *ApplicantHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	var rows []models.ApplicantInput
	var warnings []string
	channel := "csv"
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv", ".txt":
		raw, readErr := io.ReadAll(file)
		if readErr != nil {
			response.Error(c, appErrors.Wrap(readErr, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
			return
		}
		rows, warnings, err = ingest.ParseApplicantsCSV(string(raw))
	case ".xlsx":
		channel = "xlsx"
		rows, warnings, err = ingest.ParseApplicantsWorkbook(file)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupported, "only CSV and XLSX files are supported"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.BulkAdd(c.Request.Context(), rows, bulkOptions(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveImport(channel, result.Added, len(result.Errors))
	}
	meta := map[string]interface{}{"filename": fileHeader.Filename}
	if len(warnings) > 0 {
		meta["warnings"] = warnings
	}
	response.JSON(c, http.StatusOK, result, meta)
}

// Update godoc
// @Summary Update applicant consent or priority
// @Tags Applicants
// @Accept json
// @Produce json
// @Param id path int true "Applicant ID"
// @Param payload body models.ApplicantUpdate true "Mutable fields"
// @Success 204
// @Router /applicants/{id} [patch]
func (h *ApplicantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid applicant id"))
		return
	}
	var req models.ApplicantUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete one applicant
// @Tags Applicants
// @Param id path int true "Applicant ID"
// @Success 204
// @Router /applicants/{id} [delete]
func (h *ApplicantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid applicant id"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear godoc
// @Summary Delete every applicant
// @Tags Applicants
// @Success 204
// @Router /applicants [delete]
func (h *ApplicantHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Applicant pool statistics
// @Tags Applicants
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /applicants/stats [get]
func (h *ApplicantHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func bulkOptions(c *gin.Context) service.BulkAddOptions {
	return service.BulkAddOptions{
		AutoPriority: boolQuery(c, "auto_priority"),
		Replace:      boolQuery(c, "replace"),
	}
}

func boolQuery(c *gin.Context, name string) bool {
	value, err := strconv.ParseBool(c.DefaultQuery(name, "false"))
	if err != nil {
		return false
	}
	return value
}
