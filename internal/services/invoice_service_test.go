package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
)

func TestInvoiceService_Create_TotalFromBaseRentAndItems(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	unitRepo := &mockUnitRepo{}
	tenantRepo := &mockTenantRepo{}
	service := NewInvoiceService(invoiceRepo, unitRepo, tenantRepo)

	unitRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
		return &models.Unit{ID: id, BaseRent: 15000}, nil
	}
	tenantRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error) {
		return &models.TenantProfile{ID: id, LandlordID: landlordID}, nil
	}

	var created *models.Invoice
	invoiceRepo.mockCreate = func(ctx context.Context, invoice *models.Invoice) error {
		created = invoice
		return nil
	}

	order := 5
	invoice, err := service.Create(context.Background(), 1, InvoiceInput{
		UnitID:      7,
		TenantID:    30,
		Month:       3,
		Year:        2026,
		InvoiceDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		LineItems: []LineItemInput{
			{Description: "Water", Amount: 500},
			{Description: "Garbage", Amount: 300, Order: &order},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 15000.0, invoice.BaseRent, "base rent defaults from the unit")
	assert.Equal(t, 15800.0, invoice.TotalAmount)
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)
	require.Len(t, invoice.LineItems, 2)
	assert.Equal(t, 0, invoice.LineItems[0].Order, "order falls back to creation index")
	assert.Equal(t, 5, invoice.LineItems[1].Order)
}

func TestInvoiceService_Create_BaseRentOverride(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	unitRepo := &mockUnitRepo{}
	tenantRepo := &mockTenantRepo{}
	service := NewInvoiceService(invoiceRepo, unitRepo, tenantRepo)

	unitRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
		return &models.Unit{ID: id, BaseRent: 15000}, nil
	}
	tenantRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error) {
		return &models.TenantProfile{ID: id}, nil
	}

	override := 12000.0
	invoice, err := service.Create(context.Background(), 1, InvoiceInput{
		UnitID:      7,
		TenantID:    30,
		Month:       3,
		Year:        2026,
		InvoiceDate: time.Now(),
		DueDate:     time.Now(),
		BaseRent:    &override,
	})

	require.NoError(t, err)
	assert.Equal(t, 12000.0, invoice.BaseRent)
	assert.Equal(t, 12000.0, invoice.TotalAmount)
}

func TestInvoiceService_Create_DuplicatePeriod(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	unitRepo := &mockUnitRepo{}
	tenantRepo := &mockTenantRepo{}
	service := NewInvoiceService(invoiceRepo, unitRepo, tenantRepo)

	unitRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
		return &models.Unit{ID: id, BaseRent: 15000}, nil
	}
	tenantRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error) {
		return &models.TenantProfile{ID: id}, nil
	}
	invoiceRepo.mockExistsForPeriod = func(ctx context.Context, unitID uint, month, year int) (bool, error) {
		return true, nil
	}

	_, err := service.Create(context.Background(), 1, InvoiceInput{
		UnitID:      7,
		TenantID:    30,
		Month:       3,
		Year:        2026,
		InvoiceDate: time.Now(),
		DueDate:     time.Now(),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateInvoicePeriod)
}

func TestInvoiceService_Create_ForeignTenant(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	unitRepo := &mockUnitRepo{}
	service := NewInvoiceService(invoiceRepo, unitRepo, &mockTenantRepo{})

	unitRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
		return &models.Unit{ID: id, BaseRent: 15000}, nil
	}

	_, err := service.Create(context.Background(), 1, InvoiceInput{
		UnitID:      7,
		TenantID:    30,
		Month:       3,
		Year:        2026,
		InvoiceDate: time.Now(),
		DueDate:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvoiceService_Update_RecomputesTotal(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	service := NewInvoiceService(invoiceRepo, &mockUnitRepo{}, &mockTenantRepo{})

	invoiceRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Invoice, error) {
		return &models.Invoice{
			ID:          id,
			BaseRent:    15000,
			TotalAmount: 15000,
			DueDate:     time.Now().AddDate(0, 0, 14),
			Status:      models.InvoiceStatusUnpaid,
		}, nil
	}

	items := []LineItemInput{{Description: "Penalty", Amount: 1000}}
	invoice, err := service.Update(context.Background(), 1, 10, InvoiceUpdateInput{
		LineItems: &items,
	})

	require.NoError(t, err)
	assert.Equal(t, 16000.0, invoice.TotalAmount)
}

func TestInvoiceService_Update_BlockedByPayments(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	service := NewInvoiceService(invoiceRepo, &mockUnitRepo{}, &mockTenantRepo{})

	invoiceRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Invoice, error) {
		return &models.Invoice{
			ID:       id,
			Payments: []models.Payment{{ID: 1, Amount: 2000}},
		}, nil
	}

	notes := "adjusted"
	_, err := service.Update(context.Background(), 1, 10, InvoiceUpdateInput{Notes: &notes})
	assert.ErrorIs(t, err, ErrInvoiceHasPayments)

	err = service.Delete(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrInvoiceHasPayments)
}

func TestInvoiceService_List_RefreshesOverdueFirst(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	service := NewInvoiceService(invoiceRepo, &mockUnitRepo{}, &mockTenantRepo{})

	markCalled := false
	invoiceRepo.mockMarkOverdue = func(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error) {
		markCalled = true
		require.NotNil(t, landlordID)
		assert.Equal(t, uint(1), *landlordID)
		assert.Nil(t, tenantID)
		return 2, nil
	}
	invoiceRepo.mockList = func(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Invoice, int64, error) {
		assert.True(t, markCalled, "overdue refresh must run before the read")
		return []models.Invoice{{ID: 10, Status: models.InvoiceStatusOverdue}}, 1, nil
	}

	invoices, total, err := service.List(context.Background(), 1, repository.NewListQuery())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invoices, 1)
}

func TestInvoiceService_ListForTenant_ScopesRefresh(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	service := NewInvoiceService(invoiceRepo, &mockUnitRepo{}, &mockTenantRepo{})

	invoiceRepo.mockMarkOverdue = func(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error) {
		assert.Nil(t, landlordID)
		require.NotNil(t, tenantID)
		assert.Equal(t, uint(30), *tenantID)
		return 0, nil
	}

	_, _, err := service.ListForTenant(context.Background(), 30, repository.NewListQuery())
	assert.NoError(t, err)
}
