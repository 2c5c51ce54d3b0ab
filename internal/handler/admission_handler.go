package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-priem/admissions-api/internal/models"
	"github.com/edu-priem/admissions-api/pkg/response"
)

type admissionService interface {
	PassingScores(ctx context.Context, listDate string) ([]models.PassingScore, error)
	Ranked(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error)
}

// AdmissionHandler exposes derived admission analytics.
type AdmissionHandler struct {
	service admissionService
}

// NewAdmissionHandler builds a new handler.
func NewAdmissionHandler(service admissionService) *AdmissionHandler {
	return &AdmissionHandler{service: service}
}

// PassingScores godoc
// @Summary Passing scores for one admission date
// @Tags Admission
// @Produce json
// @Param date query string false "List date (YYYY-MM-DD), defaults to the last date of the cycle"
// @Success 200 {object} response.Envelope
// @Router /admission/passing-scores [get]
func (h *AdmissionHandler) PassingScores(c *gin.Context) {
	scores, err := h.service.PassingScores(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores)
}

// Ranked godoc
// @Summary One program's list in competitive order
// @Tags Admission
// @Produce json
// @Param program query string true "Program code"
// @Param date query string true "List date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /admission/ranked [get]
func (h *AdmissionHandler) Ranked(c *gin.Context) {
	entries, err := h.service.Ranked(c.Request.Context(), c.Query("program"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"total": len(entries)})
}
