package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
	tenantService *services.TenantService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService, tenantService *services.TenantService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
		tenantService: tenantService,
	}
}

// @Summary Landlord Dashboard
// @Description Occupancy counts, revenue this month, outstanding total, current-month collection buckets and recent payments
// @Tags Reports
// @Produce json
// @Success 200 {object} services.Dashboard
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.BuildDashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// @Summary Payment Report
// @Description Filterable payment ledger, exportable as CSV or XLSX via format=csv|xlsx
// @Tags Reports
// @Produce json
// @Param apartment query int false "Filter by apartment"
// @Param unit query int false "Filter by unit"
// @Param tenant query int false "Filter by tenant"
// @Param method query string false "Filter by method"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param format query string false "Output format (json, csv or xlsx)" default(json)
// @Success 200 {object} services.PaymentReport
// @Security BearerAuth
// @Router /reports/payments [get]
func (h *ReportHandler) Payments(c *gin.Context) {
	query := listQuery(c, "apartment", "unit", "tenant", "method", "date_from", "date_to")
	// Exports cover the whole filtered ledger, not one page
	format := c.DefaultQuery("format", "json")
	if format != "json" {
		query.PerPage = 0
	}

	report, err := h.reportService.BuildPaymentReport(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	switch format {
	case "json":
		c.JSON(http.StatusOK, report)
	case "csv":
		data, filename, err := h.exportService.ExportCSV(c.Request.Context(), report)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, filename, err := h.exportService.ExportXLSX(c.Request.Context(), report)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
	}
}

// @Summary Outstanding Report
// @Description All invoices that still carry a balance, with days overdue
// @Tags Reports
// @Produce json
// @Success 200 {object} services.OutstandingReport
// @Security BearerAuth
// @Router /reports/outstanding [get]
func (h *ReportHandler) Outstanding(c *gin.Context) {
	report, err := h.reportService.BuildOutstandingReport(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Tenant Dashboard
// @Description The authenticated tenant's outstanding total, unit and recent activity
// @Tags Reports
// @Produce json
// @Success 200 {object} services.TenantDashboard
// @Security BearerAuth
// @Router /reports/tenant/dashboard [get]
func (h *ReportHandler) TenantDashboard(c *gin.Context) {
	profile, err := h.tenantService.GetByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dashboard, err := h.reportService.BuildTenantDashboard(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
