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

func newReportService(invoiceRepo *mockInvoiceRepo, paymentRepo *mockPaymentRepo, unitRepo *mockUnitRepo) *ReportService {
	paymentSvc := NewPaymentService(paymentRepo, invoiceRepo)
	return NewReportService(invoiceRepo, paymentRepo, unitRepo, paymentSvc)
}

func TestReportService_BuildDashboard(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	paymentRepo := &mockPaymentRepo{}
	unitRepo := &mockUnitRepo{}
	service := newReportService(invoiceRepo, paymentRepo, unitRepo)

	markCalled := false
	invoiceRepo.mockMarkOverdue = func(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error) {
		markCalled = true
		return 1, nil
	}
	unitRepo.mockFindAllByLandlord = func(ctx context.Context, landlordID uint) ([]models.Unit, error) {
		return []models.Unit{
			{ID: 1, Status: models.UnitStatusOccupied, IsActive: true},
			{ID: 2, Status: models.UnitStatusVacant, IsActive: true},
			{ID: 3, Status: models.UnitStatusOccupied, IsActive: true},
			// Soft deleted and archive units stay out of the counts
			{ID: 4, Status: models.UnitStatusVacant, IsActive: false},
		}, nil
	}
	paymentRepo.mockSumByDateRange = func(ctx context.Context, landlordID uint, from, to time.Time) (float64, error) {
		return 45000, nil
	}
	invoiceRepo.mockSumOutstanding = func(ctx context.Context, landlordID uint) (float64, error) {
		return 12500, nil
	}
	invoiceRepo.mockListForPeriod = func(ctx context.Context, landlordID uint, month, year int) ([]models.Invoice, error) {
		now := time.Now()
		assert.Equal(t, int(now.Month()), month)
		assert.Equal(t, now.Year(), year)
		return []models.Invoice{
			{ID: 1, Status: models.InvoiceStatusPaid},
			{ID: 2, Status: models.InvoiceStatusPartial},
			{ID: 3, Status: models.InvoiceStatusOverdue},
			{ID: 4, Status: models.InvoiceStatusUnpaid},
		}, nil
	}
	paymentRepo.mockListRecent = func(ctx context.Context, landlordID uint, limit int) ([]models.Payment, error) {
		assert.Equal(t, 10, limit)
		return []models.Payment{
			{ID: 1, InvoiceID: 10, Amount: 5000, Invoice: models.Invoice{ID: 10, TotalAmount: 15000}},
		}, nil
	}
	paymentRepo.mockListByInvoice = func(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
		return []models.Payment{{ID: 1, InvoiceID: 10, Amount: 5000}}, nil
	}

	dashboard, err := service.BuildDashboard(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, markCalled, "overdue refresh must run before the dashboard reads")
	assert.Equal(t, UnitCounts{Total: 3, Occupied: 2, Vacant: 1}, dashboard.Units)
	assert.Equal(t, 45000.0, dashboard.RevenueThisMonth)
	assert.Equal(t, 12500.0, dashboard.TotalOutstanding)
	assert.Equal(t, InvoiceBuckets{Paid: 1, PartialOrOverdue: 2, Unpaid: 1}, dashboard.CurrentMonth)
	require.Len(t, dashboard.RecentPayments, 1)
	assert.Equal(t, 10000.0, dashboard.RecentPayments[0].BalanceAfter)
}

func TestReportService_BuildPaymentReport(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	paymentRepo := &mockPaymentRepo{}
	service := newReportService(invoiceRepo, paymentRepo, &mockUnitRepo{})

	paymentRepo.mockList = func(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Payment, int64, error) {
		return []models.Payment{
			{ID: 1, InvoiceID: 10, Amount: 2000, Invoice: models.Invoice{ID: 10, TotalAmount: 5000}},
			{ID: 2, InvoiceID: 10, Amount: 3000, Invoice: models.Invoice{ID: 10, TotalAmount: 5000}},
		}, 2, nil
	}
	paymentRepo.mockListByInvoice = func(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
		return []models.Payment{
			{ID: 1, InvoiceID: 10, Amount: 2000},
			{ID: 2, InvoiceID: 10, Amount: 3000},
		}, nil
	}

	report, err := service.BuildPaymentReport(context.Background(), 1, repository.NewListQuery())

	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Count)
	assert.Equal(t, 5000.0, report.Total)
	require.Len(t, report.Payments, 2)
	assert.Equal(t, 3000.0, report.Payments[0].BalanceAfter)
	assert.Equal(t, 0.0, report.Payments[1].BalanceAfter)
}

func TestReportService_BuildOutstandingReport(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	service := newReportService(invoiceRepo, &mockPaymentRepo{}, &mockUnitRepo{})

	dueDate := today().AddDate(0, 0, -10)
	invoiceRepo.mockListOutstanding = func(ctx context.Context, landlordID uint) ([]models.Invoice, error) {
		return []models.Invoice{
			{ID: 1, TotalAmount: 15000, AmountPaid: 5000, Status: models.InvoiceStatusOverdue, DueDate: dueDate},
			{ID: 2, TotalAmount: 8000, AmountPaid: 0, Status: models.InvoiceStatusUnpaid, DueDate: today().AddDate(0, 0, 5)},
		}, nil
	}

	report, err := service.BuildOutstandingReport(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, report.Invoices, 2)
	assert.Equal(t, 18000.0, report.TotalOutstanding)
	assert.Equal(t, 10, report.Invoices[0].DaysOverdue)
	assert.Equal(t, 0, report.Invoices[1].DaysOverdue)
}

func TestReportService_BuildTenantDashboard(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{}
	paymentRepo := &mockPaymentRepo{}
	service := newReportService(invoiceRepo, paymentRepo, &mockUnitRepo{})

	invoiceRepo.mockMarkOverdue = func(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error) {
		assert.Nil(t, landlordID)
		require.NotNil(t, tenantID)
		assert.Equal(t, uint(30), *tenantID)
		return 0, nil
	}
	invoiceRepo.mockSumOutstandingByTenant = func(ctx context.Context, tenantID uint) (float64, error) {
		return 10800, nil
	}
	invoiceRepo.mockListByTenant = func(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Invoice, int64, error) {
		assert.Equal(t, 5, query.PerPage)
		return []models.Invoice{{ID: 1, Status: models.InvoiceStatusPartial}}, 1, nil
	}
	paymentRepo.mockListRecentByTenant = func(ctx context.Context, tenantID uint, limit int) ([]models.Payment, error) {
		assert.Equal(t, 10, limit)
		return nil, nil
	}

	unit := &models.Unit{ID: 7, UnitNumber: "A1"}
	profile := &models.TenantProfile{ID: 30, UnitID: &unit.ID, Unit: unit}

	dashboard, err := service.BuildTenantDashboard(context.Background(), profile)

	require.NoError(t, err)
	assert.Equal(t, 10800.0, dashboard.OutstandingTotal)
	require.NotNil(t, dashboard.Unit)
	assert.Equal(t, "A1", dashboard.Unit.UnitNumber)
	require.Len(t, dashboard.RecentInvoices, 1)
	assert.Empty(t, dashboard.RecentPayments)
}
