package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService  *services.InvoiceService
	tenantService   *services.TenantService
	documentService *services.DocumentService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, tenantService *services.TenantService, documentService *services.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		tenantService:   tenantService,
		documentService: documentService,
	}
}

// @Summary List Invoices
// @Description Get the landlord's invoices. Past-due invoices are flipped to overdue first.
// @Tags Invoices
// @Produce json
// @Param apartment query int false "Filter by apartment"
// @Param unit query int false "Filter by unit"
// @Param tenant query int false "Filter by tenant"
// @Param month query int false "Filter by month"
// @Param year query int false "Filter by year"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) Index(c *gin.Context) {
	query := listQuery(c, "apartment", "unit", "tenant", "month", "year", "status")

	invoices, total, err := h.invoiceService.List(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, invoices[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"invoices": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Invoice
// @Description Get an invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Show(c *gin.Context) {
	invoice, err := h.invoiceService.Get(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Create Invoice
// @Description Create an invoice for a unit and period. The total is base rent plus line items.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body services.InvoiceInput true "Invoice Data"
// @Success 201 {object} models.InvoiceResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Update Invoice
// @Description Update an invoice. Invoices with recorded payments are immutable.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body services.InvoiceUpdateInput true "Invoice Data"
// @Success 200 {object} models.InvoiceResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *gin.Context) {
	var input services.InvoiceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Delete Invoice
// @Description Delete an invoice. Invoices with recorded payments are protected.
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoiceService.Delete(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}

// @Summary Invoice PDF
// @Description Download the invoice as a PDF. Available to the landlord and the owning tenant.
// @Tags Invoices
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	invoice, err := h.resolveInvoice(c)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.documentService.InvoicePDF(c.Request.Context(), invoice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// resolveInvoice loads the invoice scoped to the caller's role
func (h *InvoiceHandler) resolveInvoice(c *gin.Context) (*models.Invoice, error) {
	id := paramID(c, "id")

	if middleware.IsTenant(c) {
		profile, err := h.tenantService.GetByUserID(c.Request.Context(), middleware.GetUserID(c))
		if err != nil {
			return nil, err
		}
		return h.invoiceService.GetForTenant(c.Request.Context(), profile.ID, id)
	}
	return h.invoiceService.Get(c.Request.Context(), middleware.GetUserID(c), id)
}

// @Summary My Invoices
// @Description Get the authenticated tenant's own invoices
// @Tags Tenant Portal
// @Produce json
// @Param status query string false "Filter by status"
// @Param year query int false "Filter by year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenant/invoices [get]
func (h *InvoiceHandler) MyInvoices(c *gin.Context) {
	profile, err := h.tenantService.GetByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	query := listQuery(c, "status", "year")
	invoices, total, err := h.invoiceService.ListForTenant(c.Request.Context(), profile.ID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, invoices[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"invoices": responses, "pagination": gin.H{"total": total}})
}

// @Summary My Invoice
// @Description Get one of the authenticated tenant's own invoices
// @Tags Tenant Portal
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tenant/invoices/{id} [get]
func (h *InvoiceHandler) MyInvoice(c *gin.Context) {
	profile, err := h.tenantService.GetByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	invoice, err := h.invoiceService.GetForTenant(c.Request.Context(), profile.ID, paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}
