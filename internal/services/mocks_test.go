package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
	"github.com/jmwaura/nyumba-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test", "error")
	m.Run()
}

// Hand-written mocks shared by the service tests. Unset finders behave like
// an empty database and return gorm.ErrRecordNotFound.

type mockApartmentRepo struct {
	repository.ApartmentRepository
	mockFindByID      func(ctx context.Context, landlordID, id uint) (*models.Apartment, error)
	mockFindByName    func(ctx context.Context, landlordID uint, name string) (*models.Apartment, error)
	mockCreate        func(ctx context.Context, apartment *models.Apartment) error
	mockUpdate        func(ctx context.Context, apartment *models.Apartment) error
	mockDeleteCascade func(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error
}

func (m *mockApartmentRepo) FindByID(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, landlordID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApartmentRepo) FindByName(ctx context.Context, landlordID uint, name string) (*models.Apartment, error) {
	if m.mockFindByName != nil {
		return m.mockFindByName(ctx, landlordID, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApartmentRepo) Create(ctx context.Context, apartment *models.Apartment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, apartment)
	}
	return nil
}

func (m *mockApartmentRepo) Update(ctx context.Context, apartment *models.Apartment) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, apartment)
	}
	return nil
}

func (m *mockApartmentRepo) DeleteCascade(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error {
	if m.mockDeleteCascade != nil {
		return m.mockDeleteCascade(ctx, apartment, archiveUnitID)
	}
	return nil
}

type mockUnitRepo struct {
	repository.UnitRepository
	mockFindByID          func(ctx context.Context, landlordID, id uint) (*models.Unit, error)
	mockFindByNumber      func(ctx context.Context, apartmentID uint, unitNumber string) (*models.Unit, error)
	mockFindAllByLandlord func(ctx context.Context, landlordID uint) ([]models.Unit, error)
	mockCreate            func(ctx context.Context, unit *models.Unit) error
	mockUpdate            func(ctx context.Context, unit *models.Unit) error
	mockUpdateStatus      func(ctx context.Context, unitID uint, status string) error
	mockSoftDelete        func(ctx context.Context, id uint) error
	mockDeleteCascade     func(ctx context.Context, unit *models.Unit, archiveUnitID *uint) error
}

func (m *mockUnitRepo) FindByID(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, landlordID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) FindByNumber(ctx context.Context, apartmentID uint, unitNumber string) (*models.Unit, error) {
	if m.mockFindByNumber != nil {
		return m.mockFindByNumber(ctx, apartmentID, unitNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) FindAllByLandlord(ctx context.Context, landlordID uint) ([]models.Unit, error) {
	if m.mockFindAllByLandlord != nil {
		return m.mockFindAllByLandlord(ctx, landlordID)
	}
	return nil, nil
}

func (m *mockUnitRepo) Create(ctx context.Context, unit *models.Unit) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, unit)
	}
	return nil
}

func (m *mockUnitRepo) Update(ctx context.Context, unit *models.Unit) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, unit)
	}
	return nil
}

func (m *mockUnitRepo) UpdateStatus(ctx context.Context, unitID uint, status string) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, unitID, status)
	}
	return nil
}

func (m *mockUnitRepo) SoftDelete(ctx context.Context, id uint) error {
	if m.mockSoftDelete != nil {
		return m.mockSoftDelete(ctx, id)
	}
	return nil
}

func (m *mockUnitRepo) DeleteCascade(ctx context.Context, unit *models.Unit, archiveUnitID *uint) error {
	if m.mockDeleteCascade != nil {
		return m.mockDeleteCascade(ctx, unit, archiveUnitID)
	}
	return nil
}

type mockTenantRepo struct {
	repository.TenantRepository
	mockFindByID         func(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error)
	mockFindByUserID     func(ctx context.Context, userID uint) (*models.TenantProfile, error)
	mockFindActiveByUnit func(ctx context.Context, unitID uint) (*models.TenantProfile, error)
	mockCreateWithUser   func(ctx context.Context, user *models.User, profile *models.TenantProfile) error
	mockUpdate           func(ctx context.Context, profile *models.TenantProfile) error
	mockDeleteCascade    func(ctx context.Context, profile *models.TenantProfile) error
}

func (m *mockTenantRepo) FindByID(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, landlordID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) FindByUserID(ctx context.Context, userID uint) (*models.TenantProfile, error) {
	if m.mockFindByUserID != nil {
		return m.mockFindByUserID(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) FindActiveByUnit(ctx context.Context, unitID uint) (*models.TenantProfile, error) {
	if m.mockFindActiveByUnit != nil {
		return m.mockFindActiveByUnit(ctx, unitID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) CreateWithUser(ctx context.Context, user *models.User, profile *models.TenantProfile) error {
	if m.mockCreateWithUser != nil {
		return m.mockCreateWithUser(ctx, user, profile)
	}
	return nil
}

func (m *mockTenantRepo) Update(ctx context.Context, profile *models.TenantProfile) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, profile)
	}
	return nil
}

func (m *mockTenantRepo) DeleteCascade(ctx context.Context, profile *models.TenantProfile) error {
	if m.mockDeleteCascade != nil {
		return m.mockDeleteCascade(ctx, profile)
	}
	return nil
}

type mockInvoiceRepo struct {
	repository.InvoiceRepository
	mockFindByID               func(ctx context.Context, landlordID, id uint) (*models.Invoice, error)
	mockFindByIDForTenant      func(ctx context.Context, tenantID, id uint) (*models.Invoice, error)
	mockExistsForPeriod        func(ctx context.Context, unitID uint, month, year int) (bool, error)
	mockList                   func(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Invoice, int64, error)
	mockListByTenant           func(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Invoice, int64, error)
	mockListForPeriod          func(ctx context.Context, landlordID uint, month, year int) ([]models.Invoice, error)
	mockListOutstanding        func(ctx context.Context, landlordID uint) ([]models.Invoice, error)
	mockSumOutstanding         func(ctx context.Context, landlordID uint) (float64, error)
	mockSumOutstandingByTenant func(ctx context.Context, tenantID uint) (float64, error)
	mockListRecentByUnit       func(ctx context.Context, unitID uint, limit int) ([]models.Invoice, error)
	mockCountByUnit            func(ctx context.Context, unitID uint) (int64, error)
	mockCountByUnits           func(ctx context.Context, apartmentID uint) (int64, error)
	mockCountByTenant          func(ctx context.Context, tenantID uint) (int64, error)
	mockCreate                 func(ctx context.Context, invoice *models.Invoice) error
	mockUpdate                 func(ctx context.Context, invoice *models.Invoice) error
	mockDelete                 func(ctx context.Context, invoice *models.Invoice) error
	mockMarkOverdue            func(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error)
	mockRecordPayment          func(ctx context.Context, invoice *models.Invoice, payment *models.Payment, today time.Time) error
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, landlordID, id uint) (*models.Invoice, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, landlordID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInvoiceRepo) FindByIDForTenant(ctx context.Context, tenantID, id uint) (*models.Invoice, error) {
	if m.mockFindByIDForTenant != nil {
		return m.mockFindByIDForTenant(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInvoiceRepo) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, landlordID, query)
	}
	return nil, 0, nil
}

func (m *mockInvoiceRepo) ListByTenant(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	if m.mockListByTenant != nil {
		return m.mockListByTenant(ctx, tenantID, query)
	}
	return nil, 0, nil
}

func (m *mockInvoiceRepo) ListForPeriod(ctx context.Context, landlordID uint, month, year int) ([]models.Invoice, error) {
	if m.mockListForPeriod != nil {
		return m.mockListForPeriod(ctx, landlordID, month, year)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) ListOutstanding(ctx context.Context, landlordID uint) ([]models.Invoice, error) {
	if m.mockListOutstanding != nil {
		return m.mockListOutstanding(ctx, landlordID)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) SumOutstanding(ctx context.Context, landlordID uint) (float64, error) {
	if m.mockSumOutstanding != nil {
		return m.mockSumOutstanding(ctx, landlordID)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) SumOutstandingByTenant(ctx context.Context, tenantID uint) (float64, error) {
	if m.mockSumOutstandingByTenant != nil {
		return m.mockSumOutstandingByTenant(ctx, tenantID)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) ExistsForPeriod(ctx context.Context, unitID uint, month, year int) (bool, error) {
	if m.mockExistsForPeriod != nil {
		return m.mockExistsForPeriod(ctx, unitID, month, year)
	}
	return false, nil
}

func (m *mockInvoiceRepo) ListRecentByUnit(ctx context.Context, unitID uint, limit int) ([]models.Invoice, error) {
	if m.mockListRecentByUnit != nil {
		return m.mockListRecentByUnit(ctx, unitID, limit)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) CountByUnit(ctx context.Context, unitID uint) (int64, error) {
	if m.mockCountByUnit != nil {
		return m.mockCountByUnit(ctx, unitID)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) CountByUnits(ctx context.Context, apartmentID uint) (int64, error) {
	if m.mockCountByUnits != nil {
		return m.mockCountByUnits(ctx, apartmentID)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	if m.mockCountByTenant != nil {
		return m.mockCountByTenant(ctx, tenantID)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, invoice *models.Invoice) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepo) MarkOverdue(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error) {
	if m.mockMarkOverdue != nil {
		return m.mockMarkOverdue(ctx, landlordID, tenantID, today)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) RecordPayment(ctx context.Context, invoice *models.Invoice, payment *models.Payment, today time.Time) error {
	if m.mockRecordPayment != nil {
		return m.mockRecordPayment(ctx, invoice, payment, today)
	}
	return nil
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	mockFindByID           func(ctx context.Context, landlordID, id uint) (*models.Payment, error)
	mockList               func(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Payment, int64, error)
	mockListByTenant       func(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Payment, int64, error)
	mockListByInvoice      func(ctx context.Context, invoiceID uint) ([]models.Payment, error)
	mockListRecent         func(ctx context.Context, landlordID uint, limit int) ([]models.Payment, error)
	mockListRecentByTenant func(ctx context.Context, tenantID uint, limit int) ([]models.Payment, error)
	mockCountByUnit        func(ctx context.Context, unitID uint) (int64, error)
	mockCountByUnits       func(ctx context.Context, apartmentID uint) (int64, error)
	mockSumByDateRange     func(ctx context.Context, landlordID uint, from, to time.Time) (float64, error)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, landlordID, id uint) (*models.Payment, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, landlordID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Payment, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, landlordID, query)
	}
	return nil, 0, nil
}

func (m *mockPaymentRepo) ListByTenant(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Payment, int64, error) {
	if m.mockListByTenant != nil {
		return m.mockListByTenant(ctx, tenantID, query)
	}
	return nil, 0, nil
}

func (m *mockPaymentRepo) ListRecent(ctx context.Context, landlordID uint, limit int) ([]models.Payment, error) {
	if m.mockListRecent != nil {
		return m.mockListRecent(ctx, landlordID, limit)
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListRecentByTenant(ctx context.Context, tenantID uint, limit int) ([]models.Payment, error) {
	if m.mockListRecentByTenant != nil {
		return m.mockListRecentByTenant(ctx, tenantID, limit)
	}
	return nil, nil
}

func (m *mockPaymentRepo) SumByDateRange(ctx context.Context, landlordID uint, from, to time.Time) (float64, error) {
	if m.mockSumByDateRange != nil {
		return m.mockSumByDateRange(ctx, landlordID, from, to)
	}
	return 0, nil
}

func (m *mockPaymentRepo) ListByInvoice(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	if m.mockListByInvoice != nil {
		return m.mockListByInvoice(ctx, invoiceID)
	}
	return nil, nil
}

func (m *mockPaymentRepo) CountByUnit(ctx context.Context, unitID uint) (int64, error) {
	if m.mockCountByUnit != nil {
		return m.mockCountByUnit(ctx, unitID)
	}
	return 0, nil
}

func (m *mockPaymentRepo) CountByUnits(ctx context.Context, apartmentID uint) (int64, error) {
	if m.mockCountByUnits != nil {
		return m.mockCountByUnits(ctx, apartmentID)
	}
	return 0, nil
}

type mockAuditRepo struct {
	repository.AuditRepository
	mockCreate     func(ctx context.Context, audit *models.UnitStatusAudit) error
	mockListByUnit func(ctx context.Context, unitID uint, limit int) ([]models.UnitStatusAudit, error)
}

func (m *mockAuditRepo) Create(ctx context.Context, audit *models.UnitStatusAudit) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, audit)
	}
	return nil
}

func (m *mockAuditRepo) ListByUnit(ctx context.Context, unitID uint, limit int) ([]models.UnitStatusAudit, error) {
	if m.mockListByUnit != nil {
		return m.mockListByUnit(ctx, unitID, limit)
	}
	return nil, nil
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID              func(ctx context.Context, id uint) (*models.User, error)
	mockFindByUsernameOrEmail func(ctx context.Context, identifier string) (*models.User, error)
	mockUpdate                func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	if m.mockFindByUsernameOrEmail != nil {
		return m.mockFindByUsernameOrEmail(ctx, identifier)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, user)
	}
	return nil
}

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockCreate         func(ctx context.Context, token *models.RefreshToken) error
	mockFindByToken    func(ctx context.Context, token string) (*models.RefreshToken, error)
	mockDeleteByToken  func(ctx context.Context, token string) error
	mockDeleteByUserID func(ctx context.Context, userID uint) error
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if m.mockFindByToken != nil {
		return m.mockFindByToken(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRefreshTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	if m.mockDeleteByToken != nil {
		return m.mockDeleteByToken(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	if m.mockDeleteByUserID != nil {
		return m.mockDeleteByUserID(ctx, userID)
	}
	return nil
}
