package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/services"
)

type ApartmentHandler struct {
	apartmentService *services.ApartmentService
}

func NewApartmentHandler(apartmentService *services.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{apartmentService: apartmentService}
}

// @Summary List Apartments
// @Description Get the landlord's apartments with unit counts
// @Tags Apartments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /apartments [get]
func (h *ApartmentHandler) Index(c *gin.Context) {
	query := listQuery(c)

	apartments, total, err := h.apartmentService.List(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ApartmentResponse, 0, len(apartments))
	for i := range apartments {
		responses = append(responses, apartments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"apartments": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Apartment
// @Description Get an apartment by ID
// @Tags Apartments
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} models.ApartmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /apartments/{id} [get]
func (h *ApartmentHandler) Show(c *gin.Context) {
	apartment, err := h.apartmentService.Get(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartment": apartment.ToResponse()})
}

// @Summary Create Apartment
// @Description Create a new apartment
// @Tags Apartments
// @Accept json
// @Produce json
// @Param request body services.ApartmentInput true "Apartment Data"
// @Success 201 {object} models.ApartmentResponse
// @Security BearerAuth
// @Router /apartments [post]
func (h *ApartmentHandler) Create(c *gin.Context) {
	var input services.ApartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apartment, err := h.apartmentService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"apartment": apartment.ToResponse()})
}

// @Summary Update Apartment
// @Description Update an apartment's fields
// @Tags Apartments
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Param request body services.ApartmentUpdateInput true "Apartment Data"
// @Success 200 {object} models.ApartmentResponse
// @Security BearerAuth
// @Router /apartments/{id} [patch]
func (h *ApartmentHandler) Update(c *gin.Context) {
	var input services.ApartmentUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apartment, err := h.apartmentService.Update(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartment": apartment.ToResponse()})
}

// @Summary Delete Apartment
// @Description Delete an apartment. Refused with a blocker list when units carry financial history, unless confirm=DELETE and invoices=delete|archive are passed.
// @Tags Apartments
// @Produce json
// @Param id path int true "Apartment ID"
// @Param confirm query string false "Confirmation token (DELETE)"
// @Param invoices query string false "Invoice policy (delete or archive)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /apartments/{id} [delete]
func (h *ApartmentHandler) Delete(c *gin.Context) {
	err := h.apartmentService.Delete(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"),
		c.Query("confirm"), c.Query("invoices"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "apartment deleted"})
}
