package services

import (
	"github.com/jmwaura/nyumba-api/internal/config"
	"github.com/jmwaura/nyumba-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	Apartment *ApartmentService
	Unit      *UnitService
	Tenant    *TenantService
	Invoice   *InvoiceService
	Payment   *PaymentService
	Report    *ReportService
	Export    *ExportService
	Document  *DocumentService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	unitSvc := NewUnitService(repos.Unit, repos.Apartment, repos.Tenant, repos.Invoice, repos.Payment, repos.Audit)
	paymentSvc := NewPaymentService(repos.Payment, repos.Invoice)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.RefreshToken, cfg),
		Apartment: NewApartmentService(repos.Apartment, repos.Unit, repos.Invoice, repos.Payment),
		Unit:      unitSvc,
		Tenant:    NewTenantService(repos.Tenant, repos.Invoice, unitSvc),
		Invoice:   NewInvoiceService(repos.Invoice, repos.Unit, repos.Tenant),
		Payment:   paymentSvc,
		Report:    NewReportService(repos.Invoice, repos.Payment, repos.Unit, paymentSvc),
		Export:    NewExportService(),
		Document:  NewDocumentService(cfg),
	}
}
