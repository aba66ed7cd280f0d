package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/pkg/httpcontext"
	reportUC "github.com/taskhive/backend/usecase/report"
)

type ReportHandler struct {
	baseHandler
	uc *reportUC.UseCase
}

func NewReportHandler(uc *reportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard snapshot
// @Tags reports
// @Router /api/v1/reports/dashboard [get]
func (h *ReportHandler) GetDashboard(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dashboard, err := h.uc.Dashboard(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, dashboard)
}

// @Summary Per-user productivity report
// @Tags reports
// @Router /api/v1/reports/productivity [get]
func (h *ReportHandler) GetProductivity(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rows, err := h.uc.Productivity(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, rows)
}

// @Summary Recent activity feed
// @Tags reports
// @Router /api/v1/reports/activity [get]
func (h *ReportHandler) GetRecentActivity(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	views, err := h.uc.RecentActivity(stdCtx, queryInt(ctx, "limit", 0))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, views)
}

// @Summary Productivity report as CSV
// @Tags reports
// @Router /api/v1/reports/productivity/export [get]
func (h *ReportHandler) ExportProductivityCSV(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.uc.ProductivityCSV(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondCSV(ctx, "productivity", data)
}

// @Summary Activity feed as CSV
// @Tags reports
// @Router /api/v1/reports/activity/export [get]
func (h *ReportHandler) ExportActivityCSV(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.uc.ActivityCSV(stdCtx, queryInt(ctx, "limit", 0))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondCSV(ctx, "activity", data)
}

// @Summary Dashboard snapshot as CSV
// @Tags reports
// @Router /api/v1/reports/dashboard/export [get]
func (h *ReportHandler) ExportDashboardCSV(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.uc.DashboardCSV(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondCSV(ctx, "dashboard", data)
}

func (h *ReportHandler) respondCSV(ctx *fasthttp.RequestCtx, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	ctx.Response.Header.SetContentType("text/csv")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(data)
}
