package services

import (
	"context"
	"time"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
)

// ReportService builds landlord and tenant reports
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	unitRepo    repository.UnitRepository
	paymentSvc  *PaymentService
}

// NewReportService creates a new report service
func NewReportService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	unitRepo repository.UnitRepository,
	paymentSvc *PaymentService,
) *ReportService {
	return &ReportService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		unitRepo:    unitRepo,
		paymentSvc:  paymentSvc,
	}
}

// UnitCounts summarizes occupancy among active units
type UnitCounts struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
	Vacant   int `json:"vacant"`
}

// InvoiceBuckets counts current-month invoices by collection state
type InvoiceBuckets struct {
	Paid             int `json:"paid"`
	PartialOrOverdue int `json:"partial_or_overdue"`
	Unpaid           int `json:"unpaid"`
}

// Dashboard is the landlord overview report
type Dashboard struct {
	Units            UnitCounts               `json:"units"`
	RevenueThisMonth float64                  `json:"revenue_this_month"`
	TotalOutstanding float64                  `json:"total_outstanding"`
	CurrentMonth     InvoiceBuckets           `json:"current_month"`
	RecentPayments   []models.PaymentResponse `json:"recent_payments"`
}

// BuildDashboard assembles the landlord dashboard. Past-due invoices are
// flipped to overdue first so the buckets reflect the calendar.
func (s *ReportService) BuildDashboard(ctx context.Context, landlordID uint) (*Dashboard, error) {
	now := time.Now()
	if _, err := s.invoiceRepo.MarkOverdue(ctx, &landlordID, nil, today()); err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		RecentPayments: []models.PaymentResponse{},
	}

	units, err := s.unitRepo.FindAllByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	for i := range units {
		if !units[i].IsActive {
			continue
		}
		dashboard.Units.Total++
		if units[i].Status == models.UnitStatusOccupied {
			dashboard.Units.Occupied++
		} else {
			dashboard.Units.Vacant++
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	revenue, err := s.paymentRepo.SumByDateRange(ctx, landlordID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	dashboard.RevenueThisMonth = revenue

	outstanding, err := s.invoiceRepo.SumOutstanding(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	dashboard.TotalOutstanding = outstanding

	invoices, err := s.invoiceRepo.ListForPeriod(ctx, landlordID, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		switch invoices[i].Status {
		case models.InvoiceStatusPaid:
			dashboard.CurrentMonth.Paid++
		case models.InvoiceStatusPartial, models.InvoiceStatusOverdue:
			dashboard.CurrentMonth.PartialOrOverdue++
		default:
			dashboard.CurrentMonth.Unpaid++
		}
	}

	recent, err := s.paymentRepo.ListRecent(ctx, landlordID, 10)
	if err != nil {
		return nil, err
	}
	balances, err := s.paymentSvc.Balances(ctx, recent)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		dashboard.RecentPayments = append(dashboard.RecentPayments, recent[i].ToResponse(balances[recent[i].ID]))
	}

	return dashboard, nil
}

// PaymentReport is the filterable payment ledger
type PaymentReport struct {
	Payments []models.PaymentResponse `json:"payments"`
	Count    int64                    `json:"count"`
	Total    float64                  `json:"total"`
}

// BuildPaymentReport assembles the payment ledger for the given filters
func (s *ReportService) BuildPaymentReport(ctx context.Context, landlordID uint, query *repository.ListQuery) (*PaymentReport, error) {
	payments, count, err := s.paymentRepo.List(ctx, landlordID, query)
	if err != nil {
		return nil, err
	}

	balances, err := s.paymentSvc.Balances(ctx, payments)
	if err != nil {
		return nil, err
	}

	report := &PaymentReport{
		Payments: make([]models.PaymentResponse, 0, len(payments)),
		Count:    count,
	}
	for i := range payments {
		report.Payments = append(report.Payments, payments[i].ToResponse(balances[payments[i].ID]))
		report.Total += payments[i].Amount
	}
	return report, nil
}

// OutstandingInvoice is one row of the outstanding report
type OutstandingInvoice struct {
	models.InvoiceResponse
	DaysOverdue int `json:"days_overdue"`
}

// OutstandingReport lists all invoices that still carry a balance
type OutstandingReport struct {
	Invoices         []OutstandingInvoice `json:"invoices"`
	TotalOutstanding float64              `json:"total_outstanding"`
}

// BuildOutstandingReport assembles the outstanding balances report
func (s *ReportService) BuildOutstandingReport(ctx context.Context, landlordID uint) (*OutstandingReport, error) {
	if _, err := s.invoiceRepo.MarkOverdue(ctx, &landlordID, nil, today()); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListOutstanding(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	report := &OutstandingReport{
		Invoices: make([]OutstandingInvoice, 0, len(invoices)),
	}
	for i := range invoices {
		report.Invoices = append(report.Invoices, OutstandingInvoice{
			InvoiceResponse: invoices[i].ToResponse(),
			DaysOverdue:     invoices[i].DaysOverdue(today()),
		})
		report.TotalOutstanding += invoices[i].RemainingBalance()
	}
	return report, nil
}

// TenantDashboard is the tenant's own overview
type TenantDashboard struct {
	OutstandingTotal float64                  `json:"outstanding_total"`
	Unit             *models.UnitResponse     `json:"unit"`
	RecentInvoices   []models.InvoiceResponse `json:"recent_invoices"`
	RecentPayments   []models.PaymentResponse `json:"recent_payments"`
}

// BuildTenantDashboard assembles the dashboard for one tenant profile
func (s *ReportService) BuildTenantDashboard(ctx context.Context, profile *models.TenantProfile) (*TenantDashboard, error) {
	if _, err := s.invoiceRepo.MarkOverdue(ctx, nil, &profile.ID, today()); err != nil {
		return nil, err
	}

	dashboard := &TenantDashboard{
		RecentInvoices: []models.InvoiceResponse{},
		RecentPayments: []models.PaymentResponse{},
	}

	outstanding, err := s.invoiceRepo.SumOutstandingByTenant(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	dashboard.OutstandingTotal = outstanding

	if profile.Unit != nil && profile.Unit.ID != 0 {
		unitResp := profile.Unit.ToResponse()
		dashboard.Unit = &unitResp
	}

	query := repository.NewListQuery()
	query.PerPage = 5
	invoices, _, err := s.invoiceRepo.ListByTenant(ctx, profile.ID, query)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		dashboard.RecentInvoices = append(dashboard.RecentInvoices, invoices[i].ToResponse())
	}

	payments, err := s.paymentRepo.ListRecentByTenant(ctx, profile.ID, 10)
	if err != nil {
		return nil, err
	}
	balances, err := s.paymentSvc.Balances(ctx, payments)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		dashboard.RecentPayments = append(dashboard.RecentPayments, payments[i].ToResponse(balances[payments[i].ID]))
	}

	return dashboard, nil
}
