package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, landlordID, id uint) (*models.Payment, error)
	List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Payment, int64, error)
	ListByTenant(ctx context.Context, tenantID uint, query *ListQuery) ([]models.Payment, int64, error)
	ListByInvoice(ctx context.Context, invoiceID uint) ([]models.Payment, error)
	ListRecent(ctx context.Context, landlordID uint, limit int) ([]models.Payment, error)
	ListRecentByTenant(ctx context.Context, tenantID uint, limit int) ([]models.Payment, error)
	CountByUnit(ctx context.Context, unitID uint) (int64, error)
	CountByUnits(ctx context.Context, apartmentID uint) (int64, error)
	SumByDateRange(ctx context.Context, landlordID uint, from, to time.Time) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Invoice").
		Preload("Invoice.Unit").
		Preload("Invoice.Unit.Apartment").
		Preload("Invoice.Tenant").
		Preload("Invoice.Tenant.User").
		Preload("RecordedBy")
}

func (r *paymentRepository) FindByID(ctx context.Context, landlordID, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.preload(r.db.WithContext(ctx)).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.landlord_id = ?", landlordID).
		First(&payment, "payments.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.landlord_id = ?", landlordID)

	if query.Filters["tenant"] != "" {
		db = db.Where("invoices.tenant_id = ?", query.Filters["tenant"])
	}
	if query.Filters["invoice"] != "" {
		db = db.Where("payments.invoice_id = ?", query.Filters["invoice"])
	}
	if query.Filters["unit"] != "" {
		db = db.Where("invoices.unit_id = ?", query.Filters["unit"])
	}
	if query.Filters["apartment"] != "" {
		db = db.Joins("JOIN units ON units.id = invoices.unit_id").
			Where("units.apartment_id = ?", query.Filters["apartment"])
	}
	if query.Filters["method"] != "" {
		db = db.Where("payments.method = ?", query.Filters["method"])
	}
	if query.Filters["date_from"] != "" {
		db = db.Where("payments.payment_date >= ?", query.Filters["date_from"])
	}
	if query.Filters["date_to"] != "" {
		db = db.Where("payments.payment_date <= ?", query.Filters["date_to"])
	}

	db.Count(&total)

	db = db.Order("payments.payment_date DESC, payments.created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := r.preload(db).Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) ListByTenant(ctx context.Context, tenantID uint, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.tenant_id = ?", tenantID)

	db.Count(&total)

	db = db.Order("payments.payment_date DESC, payments.created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := r.preload(db).Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListRecent(ctx context.Context, landlordID uint, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.preload(r.db.WithContext(ctx)).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.landlord_id = ?", landlordID).
		Order("payments.created_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListRecentByTenant(ctx context.Context, tenantID uint, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.preload(r.db.WithContext(ctx)).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.tenant_id = ?", tenantID).
		Order("payments.created_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) CountByUnit(ctx context.Context, unitID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.unit_id = ?", unitID).
		Count(&count).Error
	return count, err
}

func (r *paymentRepository) CountByUnits(ctx context.Context, apartmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Joins("JOIN units ON units.id = invoices.unit_id").
		Where("units.apartment_id = ?", apartmentID).
		Count(&count).Error
	return count, err
}

func (r *paymentRepository) SumByDateRange(ctx context.Context, landlordID uint, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.landlord_id = ?", landlordID).
		Where("payments.payment_date >= ? AND payments.payment_date <= ?", from, to).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&total).Error
	return total, err
}
