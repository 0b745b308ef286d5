package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Apartment    ApartmentRepository
	Unit         UnitRepository
	Tenant       TenantRepository
	Audit        AuditRepository
	Invoice      InvoiceRepository
	Payment      PaymentRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Apartment:    NewApartmentRepository(db),
		Unit:         NewUnitRepository(db),
		Tenant:       NewTenantRepository(db),
		Audit:        NewAuditRepository(db),
		Invoice:      NewInvoiceRepository(db),
		Payment:      NewPaymentRepository(db),
	}
}
