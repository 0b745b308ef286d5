package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
	"github.com/jmwaura/nyumba-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Apartment *ApartmentHandler
	Unit      *UnitHandler
	Tenant    *TenantHandler
	Invoice   *InvoiceHandler
	Payment   *PaymentHandler
	Report    *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Auth:      NewAuthHandler(svcs.Auth),
		Apartment: NewApartmentHandler(svcs.Apartment),
		Unit:      NewUnitHandler(svcs.Unit),
		Tenant:    NewTenantHandler(svcs.Tenant),
		Invoice:   NewInvoiceHandler(svcs.Invoice, svcs.Tenant, svcs.Document),
		Payment:   NewPaymentHandler(svcs.Payment, svcs.Tenant, svcs.Document),
		Report:    NewReportHandler(svcs.Report, svcs.Export, svcs.Tenant),
	}
}

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var blocked *services.DeleteBlockedError
	if errors.As(err, &blocked) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "deletion blocked",
			"blockers": blocked.Blockers,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrUnitOccupied),
		errors.Is(err, services.ErrInvoiceHasPayments),
		errors.Is(err, repository.ErrDuplicateUnitNumber),
		errors.Is(err, repository.ErrDuplicateInvoicePeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// paramID parses a numeric path parameter
func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id)
}

// listQuery builds a ListQuery from pagination, search and the named filters
func listQuery(c *gin.Context, filters ...string) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	for _, f := range filters {
		if v := c.Query(f); v != "" {
			query.Filters[f] = v
		}
	}
	return query
}

// actor returns the authenticated user as the audit actor
func actor(c *gin.Context) *models.User {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return nil
	}
	return &models.User{ID: userID}
}
