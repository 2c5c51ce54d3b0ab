package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
	"github.com/edu-priem/admissions-api/pkg/response"
)

type listService interface {
	List(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error)
	Reconcile(ctx context.Context, programCode, listDate string, entries []models.ListEntryInput) (*models.LoadResult, error)
	ImportWorkbook(ctx context.Context, r io.Reader) ([]models.LoadResult, error)
	Programs(ctx context.Context) ([]models.Program, error)
	Clear(ctx context.Context) error
}

// ListHandler exposes competitive-list endpoints.
type ListHandler struct {
	service listService
	metrics importObserver
}

// NewListHandler builds a new handler.
func NewListHandler(service listService, metrics importObserver) *ListHandler {
	return &ListHandler{service: service, metrics: metrics}
}

// List godoc
// @Summary List competitive-list entries
// @Tags Lists
// @Produce json
// @Param program query string false "Program code"
// @Param date query string false "List date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /lists [get]
func (h *ListHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), c.Query("program"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"total": len(entries)})
}

type reconcileRequest struct {
	ProgramCode string                  `json:"program_code" binding:"required"`
	ListDate    string                  `json:"list_date" binding:"required"`
	Entries     []models.ListEntryInput `json:"entries"`
}

// Load godoc
// @Summary Replace one (program, date) slice with a snapshot
// @Tags Lists
// @Accept json
// @Produce json
// @Param payload body reconcileRequest true "Snapshot"
// @Success 200 {object} response.Envelope
// @Router /lists/load [post]
func (h *ListHandler) Load(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid snapshot payload"))
		return
	}
	result, err := h.service.Reconcile(c.Request.Context(), req.ProgramCode, req.ListDate, req.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveImport("lists", result.Added+result.Updated, len(result.Errors))
	}
	response.JSON(c, http.StatusOK, result)
}

// Import godoc
// @Summary Import competitive lists from an XLSX workbook
// @Tags Lists
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX workbook with CODE_DD.MM sheets"
// @Success 200 {object} response.Envelope
// @Router /lists/import [post]
func (h *ListHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".xlsx" {
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupported, "only XLSX workbooks are supported"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	results, err := h.service.ImportWorkbook(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		accepted, rejected := 0, 0
		for _, r := range results {
			accepted += r.Added + r.Updated
			rejected += len(r.Errors)
		}
		h.metrics.ObserveImport("lists", accepted, rejected)
	}
	response.JSON(c, http.StatusOK, results, map[string]interface{}{"filename": fileHeader.Filename})
}

// Programs godoc
// @Summary List the program catalog
// @Tags Lists
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *ListHandler) Programs(c *gin.Context) {
	programs, err := h.service.Programs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programs)
}

// Clear godoc
// @Summary Delete every competitive-list entry
// @Tags Lists
// @Success 204
// @Router /lists [delete]
func (h *ListHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
