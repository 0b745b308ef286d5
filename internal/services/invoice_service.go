package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
	"github.com/jmwaura/nyumba-api/pkg/logger"
)

// InvoiceService handles invoice operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	unitRepo    repository.UnitRepository
	tenantRepo  repository.TenantRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	unitRepo repository.UnitRepository,
	tenantRepo repository.TenantRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		unitRepo:    unitRepo,
		tenantRepo:  tenantRepo,
	}
}

// refreshOverdue flips past-due invoices in scope before a read so listings
// reflect the calendar without a scheduler.
func (s *InvoiceService) refreshOverdue(ctx context.Context, landlordID, tenantID *uint) {
	if _, err := s.invoiceRepo.MarkOverdue(ctx, landlordID, tenantID, today()); err != nil {
		logger.Error("failed to refresh overdue invoices", "error", err)
	}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// List returns the landlord's invoices after refreshing overdue statuses
func (s *InvoiceService) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	s.refreshOverdue(ctx, &landlordID, nil)
	return s.invoiceRepo.List(ctx, landlordID, query)
}

// ListForTenant returns a tenant's own invoices after refreshing overdue
// statuses in their scope
func (s *InvoiceService) ListForTenant(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	s.refreshOverdue(ctx, nil, &tenantID)
	return s.invoiceRepo.ListByTenant(ctx, tenantID, query)
}

// Get returns one invoice scoped to the landlord
func (s *InvoiceService) Get(ctx context.Context, landlordID, id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, landlordID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// GetForTenant returns one invoice scoped to the owning tenant
func (s *InvoiceService) GetForTenant(ctx context.Context, tenantID, id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// LineItemInput is one extra charge on an invoice
type LineItemInput struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Order       *int    `json:"order"`
}

// InvoiceInput holds the fields to create an invoice
type InvoiceInput struct {
	UnitID      uint            `json:"unit_id" binding:"required"`
	TenantID    uint            `json:"tenant_id" binding:"required"`
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=2000"`
	InvoiceDate time.Time       `json:"invoice_date" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	BaseRent    *float64        `json:"base_rent"`
	Notes       string          `json:"notes"`
	LineItems   []LineItemInput `json:"line_items"`
}

// Create creates an invoice. The total is the base rent plus line items,
// fixed at creation time; line items keep their given order or fall back to
// creation index.
func (s *InvoiceService) Create(ctx context.Context, landlordID uint, input InvoiceInput) (*models.Invoice, error) {
	unit, err := s.unitRepo.FindByID(ctx, landlordID, input.UnitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, landlordID, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tenant does not belong to this landlord", ErrValidation)
		}
		return nil, err
	}

	exists, err := s.invoiceRepo.ExistsForPeriod(ctx, unit.ID, input.Month, input.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateInvoicePeriod
	}

	baseRent := unit.BaseRent
	if input.BaseRent != nil {
		baseRent = *input.BaseRent
	}

	invoice := &models.Invoice{
		UnitID:      unit.ID,
		TenantID:    tenant.ID,
		LandlordID:  landlordID,
		Month:       input.Month,
		Year:        input.Year,
		InvoiceDate: input.InvoiceDate,
		DueDate:     input.DueDate,
		BaseRent:    baseRent,
		Status:      models.InvoiceStatusUnpaid,
		Notes:       input.Notes,
	}

	total := baseRent
	for i, item := range input.LineItems {
		order := i
		if item.Order != nil {
			order = *item.Order
		}
		invoice.LineItems = append(invoice.LineItems, models.InvoiceLineItem{
			Description: item.Description,
			Amount:      item.Amount,
			Order:       order,
		})
		total += item.Amount
	}
	invoice.TotalAmount = total

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// InvoiceUpdateInput holds partial invoice updates
type InvoiceUpdateInput struct {
	InvoiceDate *time.Time       `json:"invoice_date"`
	DueDate     *time.Time       `json:"due_date"`
	BaseRent    *float64         `json:"base_rent"`
	Notes       *string          `json:"notes"`
	LineItems   *[]LineItemInput `json:"line_items"`
}

// Update edits an invoice. Invoices with recorded payments are immutable.
func (s *InvoiceService) Update(ctx context.Context, landlordID, id uint, input InvoiceUpdateInput) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if len(invoice.Payments) > 0 {
		return nil, ErrInvoiceHasPayments
	}

	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.BaseRent != nil {
		invoice.BaseRent = *input.BaseRent
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if input.LineItems != nil {
		invoice.LineItems = invoice.LineItems[:0]
		for i, item := range *input.LineItems {
			order := i
			if item.Order != nil {
				order = *item.Order
			}
			invoice.LineItems = append(invoice.LineItems, models.InvoiceLineItem{
				Description: item.Description,
				Amount:      item.Amount,
				Order:       order,
			})
		}
	}

	total := invoice.BaseRent
	for _, item := range invoice.LineItems {
		total += item.Amount
	}
	invoice.TotalAmount = total
	invoice.RefreshStatus(today())

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Delete removes an invoice. Invoices with recorded payments are protected.
func (s *InvoiceService) Delete(ctx context.Context, landlordID, id uint) error {
	invoice, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return err
	}
	if len(invoice.Payments) > 0 {
		return ErrInvoiceHasPayments
	}
	return s.invoiceRepo.Delete(ctx, invoice)
}
