package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/services"
)

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// @Summary List Tenants
// @Description Get the landlord's tenants
// @Tags Tenants
// @Produce json
// @Param is_active query bool false "Filter by active flag"
// @Param unit query int false "Filter by unit"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants [get]
func (h *TenantHandler) Index(c *gin.Context) {
	query := listQuery(c, "is_active", "unit")

	tenants, total, err := h.tenantService.List(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, tenants[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"tenants": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Tenant
// @Description Get a tenant by ID
// @Tags Tenants
// @Produce json
// @Param id path int true "Tenant ID"
// @Success 200 {object} models.TenantResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{id} [get]
func (h *TenantHandler) Show(c *gin.Context) {
	tenant, err := h.tenantService.Get(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant.ToResponse()})
}

// @Summary Create Tenant
// @Description Creates the tenant user account and profile and occupies the chosen unit
// @Tags Tenants
// @Accept json
// @Produce json
// @Param request body services.TenantInput true "Tenant Data"
// @Success 201 {object} models.TenantResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var input services.TenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), middleware.GetUserID(c), actor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tenant": tenant.ToResponse()})
}

// @Summary Update Tenant
// @Description Update a tenant. Changing unit_id transfers them; is_active=false deactivates and vacates their unit.
// @Tags Tenants
// @Accept json
// @Produce json
// @Param id path int true "Tenant ID"
// @Param request body services.TenantUpdateInput true "Tenant Data"
// @Success 200 {object} models.TenantResponse
// @Security BearerAuth
// @Router /tenants/{id} [patch]
func (h *TenantHandler) Update(c *gin.Context) {
	var input services.TenantUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"), actor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant.ToResponse()})
}

// @Summary Delete Tenant
// @Description Removes the tenant and their account. Requires delete_invoices=true when invoices exist.
// @Tags Tenants
// @Produce json
// @Param id path int true "Tenant ID"
// @Param delete_invoices query bool false "Also delete the tenant's invoices and payments"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	deleteInvoices := c.Query("delete_invoices") == "true"

	err := h.tenantService.Delete(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"), actor(c), deleteInvoices)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tenant deleted"})
}
