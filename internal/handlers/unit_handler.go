package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/services"
)

type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// @Summary List Units
// @Description Get the landlord's units with occupancy and active tenant
// @Tags Units
// @Produce json
// @Param apartment query int false "Filter by apartment"
// @Param active_only query bool false "Only active units"
// @Param status query string false "Filter by occupancy status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /units [get]
func (h *UnitHandler) Index(c *gin.Context) {
	query := listQuery(c, "apartment", "active_only", "status")

	units, total, err := h.unitService.List(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.UnitResponse, 0, len(units))
	for i := range units {
		responses = append(responses, units[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"units": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Unit
// @Description Get a unit by ID
// @Tags Units
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} models.UnitResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /units/{id} [get]
func (h *UnitHandler) Show(c *gin.Context) {
	unit, err := h.unitService.Get(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit.ToResponse()})
}

// @Summary Create Unit
// @Description Create a new unit in one of the landlord's apartments
// @Tags Units
// @Accept json
// @Produce json
// @Param request body services.UnitInput true "Unit Data"
// @Success 201 {object} models.UnitResponse
// @Security BearerAuth
// @Router /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var input services.UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), middleware.GetUserID(c), actor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unit": unit.ToResponse()})
}

// @Summary Update Unit
// @Description Update a unit. Status changes run through the occupancy state machine and are audited.
// @Tags Units
// @Accept json
// @Produce json
// @Param id path int true "Unit ID"
// @Param request body services.UnitUpdateInput true "Unit Data"
// @Success 200 {object} models.UnitResponse
// @Security BearerAuth
// @Router /units/{id} [patch]
func (h *UnitHandler) Update(c *gin.Context) {
	var input services.UnitUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"), actor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit.ToResponse()})
}

// @Summary Delete Unit
// @Description Soft deletes a unit by default. With confirm=DELETE and invoices=delete|archive the unit and its financial history are removed or archived.
// @Tags Units
// @Produce json
// @Param id path int true "Unit ID"
// @Param confirm query string false "Confirmation token (DELETE)"
// @Param invoices query string false "Invoice policy (delete or archive)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	err := h.unitService.Delete(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"),
		c.Query("confirm"), c.Query("invoices"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unit deleted"})
}

// @Summary Unit Audit Trail
// @Description Get the occupancy history of a unit, newest first
// @Tags Units
// @Produce json
// @Param id path int true "Unit ID"
// @Param limit query int false "Max rows"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /units/{id}/audit [get]
func (h *UnitHandler) Audit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	audits, err := h.unitService.Audit(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.UnitStatusAuditResponse, 0, len(audits))
	for i := range audits {
		responses = append(responses, audits[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"audit": responses})
}

// @Summary Sync Unit Statuses
// @Description Recomputes every unit's occupancy from the active-tenant relationship
// @Tags Units
// @Produce json
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /units/sync_statuses [post]
func (h *UnitHandler) SyncStatuses(c *gin.Context) {
	changed, err := h.unitService.SyncStatuses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}
