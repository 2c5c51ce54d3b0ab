package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-priem/admissions-api/internal/service"
	"github.com/edu-priem/admissions-api/pkg/response"
)

type exportService interface {
	ApplicantsCSV(ctx context.Context) (*service.ExportFile, error)
	ListsCSV(ctx context.Context, programCode, listDate string) (*service.ExportFile, error)
	ListsXLSX(ctx context.Context) (*service.ExportFile, error)
	PassingScoresCSV(ctx context.Context, listDate string) (*service.ExportFile, error)
	PassingScoresPDF(ctx context.Context, listDate string) (*service.ExportFile, error)
}

// ExportHandler serves rendered downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Applicants godoc
// @Summary Download the applicant pool as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file
// @Router /export/applicants [get]
func (h *ExportHandler) Applicants(c *gin.Context) {
	file, err := h.service.ApplicantsCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// Lists godoc
// @Summary Download competitive lists as CSV or XLSX
// @Tags Export
// @Produce text/csv
// @Param format query string false "csv or xlsx" default(csv)
// @Param program query string false "Program code (csv only)"
// @Param date query string false "List date (csv only)"
// @Success 200 {file} file
// @Router /export/lists [get]
func (h *ExportHandler) Lists(c *gin.Context) {
	var file *service.ExportFile
	var err error
	if c.DefaultQuery("format", "csv") == "xlsx" {
		file, err = h.service.ListsXLSX(c.Request.Context())
	} else {
		file, err = h.service.ListsCSV(c.Request.Context(), c.Query("program"), c.Query("date"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// PassingScores godoc
// @Summary Download passing scores as CSV or PDF
// @Tags Export
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Param date query string false "List date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /export/passing-scores [get]
func (h *ExportHandler) PassingScores(c *gin.Context) {
	var file *service.ExportFile
	var err error
	if c.DefaultQuery("format", "csv") == "pdf" {
		file, err = h.service.PassingScoresPDF(c.Request.Context(), c.Query("date"))
	} else {
		file, err = h.service.PassingScoresCSV(c.Request.Context(), c.Query("date"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

func serveFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
