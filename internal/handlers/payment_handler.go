package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/services"
)

type PaymentHandler struct {
	paymentService  *services.PaymentService
	tenantService   *services.TenantService
	documentService *services.DocumentService
}

func NewPaymentHandler(paymentService *services.PaymentService, tenantService *services.TenantService, documentService *services.DocumentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService:  paymentService,
		tenantService:   tenantService,
		documentService: documentService,
	}
}

// @Summary List Payments
// @Description Get the landlord's payments with running balances
// @Tags Payments
// @Produce json
// @Param tenant query int false "Filter by tenant"
// @Param invoice query int false "Filter by invoice"
// @Param method query string false "Filter by method"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	query := listQuery(c, "tenant", "invoice", "unit", "apartment", "method", "date_from", "date_to")

	payments, total, err := h.paymentService.List(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	balances, err := h.paymentService.Balances(c.Request.Context(), payments)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, payments[i].ToResponse(balances[payments[i].ID]))
	}
	c.JSON(http.StatusOK, gin.H{"payments": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Payment
// @Description Get a payment by ID
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} models.PaymentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	payment, err := h.paymentService.Get(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}

	balances, err := h.paymentService.Balances(c.Request.Context(), []models.Payment{*payment})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment.ToResponse(balances[payment.ID])})
}

// @Summary Record Payment
// @Description Records a payment against an invoice, applying it to the balance and recomputing the status atomically
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body services.PaymentInput true "Payment Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, invoice, err := h.paymentService.Record(c.Request.Context(), middleware.GetUserID(c), actor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment": payment.ToResponse(invoice.RemainingBalance()),
		"invoice": invoice.ToResponse(),
	})
}

// @Summary Payment Receipt
// @Description Download the payment receipt as a PDF
// @Tags Payments
// @Produce application/pdf
// @Param id path int true "Payment ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	payment, err := h.paymentService.Get(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.documentService.ReceiptPDF(c.Request.Context(), payment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary My Payments
// @Description Get the authenticated tenant's own payments
// @Tags Tenant Portal
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenant/payments [get]
func (h *PaymentHandler) MyPayments(c *gin.Context) {
	profile, err := h.tenantService.GetByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	query := listQuery(c)
	payments, total, err := h.paymentService.ListForTenant(c.Request.Context(), profile.ID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	balances, err := h.paymentService.Balances(c.Request.Context(), payments)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, payments[i].ToResponse(balances[payments[i].ID]))
	}
	c.JSON(http.StatusOK, gin.H{"payments": responses, "pagination": gin.H{"total": total}})
}
