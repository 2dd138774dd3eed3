package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/pkg/response"
)

type reportService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	Monitor(ctx context.Context) (*dto.MonitorResponse, error)
	Results(ctx context.Context) (*dto.ResultsResponse, error)
}

// ReportHandler serves the dashboard aggregates.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Stats godoc
// @Summary Turnout and results for the admin dashboard
// @Tags Reports
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} errors.Error
// @Router /stats [get]
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Monitor godoc
// @Summary Live participation per course and grade
// @Tags Reports
// @Produce json
// @Param x-admin-code header string true "Admin code"
// @Success 200 {object} dto.MonitorResponse
// @Failure 401 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /monitor [get]
func (h *ReportHandler) Monitor(c *gin.Context) {
	snapshot, err := h.service.Monitor(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snapshot)
}

// Results godoc
// @Summary Public election results
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.ResultsResponse
// @Router /results [get]
func (h *ReportHandler) Results(c *gin.Context) {
	results, err := h.service.Results(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, results)
}
