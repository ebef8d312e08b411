package handler

import (
	reportapp "github.com/cropledger/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the read-only report views
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Records is the per-record report
// @Summary      Per-record report
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        counterparty query string false "Farm or factory name"
// @Param        truck query string false "Truck number"
// @Param        profit query string false "PROFIT or LOSS"
// @Success      200 {object} dto.Response{data=RecordReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/records [get]
func (h *ReportHandler) Records(c *gin.Context) {
	var q reportapp.RecordQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rep, err := h.reports.BuildRecordReport(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toRecordReportResponse(rep))
}

// Period is the report grouped by date, farm, factory and truck
// @Summary      Grouped period report
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        farm query string false "Farm name"
// @Param        factory query string false "Factory name"
// @Param        profit query string false "PROFIT or LOSS"
// @Success      200 {object} dto.Response{data=PeriodReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/period [get]
func (h *ReportHandler) Period(c *gin.Context) {
	var q reportapp.PeriodQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rep, err := h.reports.BuildPeriodReport(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPeriodReportResponse(rep))
}

// Factories is supply delivered against cash received
// @Summary      Factory balance report
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        name query string false "Factory name"
// @Success      200 {object} dto.Response{data=FactoryReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/factories [get]
func (h *ReportHandler) Factories(c *gin.Context) {
	var q reportapp.PartyQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rep, err := h.reports.BuildFactoryReport(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toFactoryReportResponse(rep))
}

// Farms is supply bought against cash disbursed
// @Summary      Farm balance report
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        name query string false "Farm name"
// @Success      200 {object} dto.Response{data=FarmReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/farms [get]
func (h *ReportHandler) Farms(c *gin.Context) {
	var q reportapp.PartyQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rep, err := h.reports.BuildFarmReport(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toFarmReportResponse(rep))
}

// Cash is cash movement per day
// @Summary      Daily cash report
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=CashReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/cash [get]
func (h *ReportHandler) Cash(c *gin.Context) {
	var q reportapp.RangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rep, err := h.reports.BuildCashReport(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCashReportResponse(rep))
}
