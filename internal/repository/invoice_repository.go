package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	FindByID(ctx context.Context, landlordID, id uint) (*models.Invoice, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uint) (*models.Invoice, error)
	ExistsForPeriod(ctx context.Context, unitID uint, month, year int) (bool, error)
	List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Invoice, int64, error)
	ListByTenant(ctx context.Context, tenantID uint, query *ListQuery) ([]models.Invoice, int64, error)
	ListForPeriod(ctx context.Context, landlordID uint, month, year int) ([]models.Invoice, error)
	ListOutstanding(ctx context.Context, landlordID uint) ([]models.Invoice, error)
	ListRecentByUnit(ctx context.Context, unitID uint, limit int) ([]models.Invoice, error)
	CountByUnit(ctx context.Context, unitID uint) (int64, error)
	CountByUnits(ctx context.Context, apartmentID uint) (int64, error)
	CountByTenant(ctx context.Context, tenantID uint) (int64, error)
	SumOutstanding(ctx context.Context, landlordID uint) (float64, error)
	SumOutstandingByTenant(ctx context.Context, tenantID uint) (float64, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, invoice *models.Invoice) error
	MarkOverdue(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error)
	RecordPayment(ctx context.Context, invoice *models.Invoice, payment *models.Payment, today time.Time) error
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Unit").
		Preload("Unit.Apartment").
		Preload("Tenant").
		Preload("Tenant.User").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_order ASC")
		})
}

func (r *invoiceRepository) FindByID(ctx context.Context, landlordID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.preload(r.db.WithContext(ctx)).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("landlord_id = ?", landlordID).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.preload(r.db.WithContext(ctx)).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("tenant_id = ?", tenantID).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ExistsForPeriod(ctx context.Context, unitID uint, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("unit_id = ? AND month = ? AND year = ?", unitID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *invoiceRepository) List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoices.landlord_id = ?", landlordID)

	if query.Filters["apartment"] != "" {
		db = db.Joins("JOIN units ON units.id = invoices.unit_id").
			Where("units.apartment_id = ?", query.Filters["apartment"])
	}
	if query.Filters["unit"] != "" {
		db = db.Where("invoices.unit_id = ?", query.Filters["unit"])
	}
	if query.Filters["tenant"] != "" {
		db = db.Where("invoices.tenant_id = ?", query.Filters["tenant"])
	}
	if query.Filters["month"] != "" {
		db = db.Where("invoices.month = ?", query.Filters["month"])
	}
	if query.Filters["year"] != "" {
		db = db.Where("invoices.year = ?", query.Filters["year"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("invoices.status = ?", query.Filters["status"])
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := "invoices." + query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("invoices.year DESC, invoices.month DESC, invoices.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := r.preload(db).Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepository) ListByTenant(ctx context.Context, tenantID uint, query *ListQuery) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("tenant_id = ?", tenantID)

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["year"] != "" {
		db = db.Where("year = ?", query.Filters["year"])
	}

	db.Count(&total)
	db = db.Order("year DESC, month DESC, created_at DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := r.preload(db).Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepository) ListForPeriod(ctx context.Context, landlordID uint, month, year int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.preload(r.db.WithContext(ctx)).
		Where("landlord_id = ? AND month = ? AND year = ?", landlordID, month, year).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListOutstanding(ctx context.Context, landlordID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.preload(r.db.WithContext(ctx)).
		Where("landlord_id = ? AND status <> ?", landlordID, models.InvoiceStatusPaid).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListRecentByUnit(ctx context.Context, unitID uint, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) CountByUnit(ctx context.Context, unitID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepository) CountByUnits(ctx context.Context, apartmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Joins("JOIN units ON units.id = invoices.unit_id").
		Where("units.apartment_id = ?", apartmentID).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepository) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepository) SumOutstanding(ctx context.Context, landlordID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("landlord_id = ? AND status <> ?", landlordID, models.InvoiceStatusPaid).
		Select("COALESCE(SUM(GREATEST(total_amount - amount_paid, 0)), 0)").
		Scan(&total).Error
	return total, err
}

func (r *invoiceRepository) SumOutstandingByTenant(ctx context.Context, tenantID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("tenant_id = ? AND status <> ?", tenantID, models.InvoiceStatusPaid).
		Select("COALESCE(SUM(GREATEST(total_amount - amount_paid, 0)), 0)").
		Scan(&total).Error
	return total, err
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		if isDuplicateKeyError(err, "idx_invoices_unit_period") {
			return ErrDuplicateInvoicePeriod
		}
		return err
	}
	return nil
}

// Update rewrites the invoice row and replaces its line items.
func (r *invoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return err
		}

		items := invoice.LineItems
		invoice.LineItems = nil
		if err := tx.Omit(clause.Associations).Save(invoice).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		invoice.LineItems = items
		return nil
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, invoice.ID).Error
	})
}

// MarkOverdue flips unpaid and partial invoices past their due date to
// overdue within the given scope. Runs before reads so list and report
// output reflects the calendar without a scheduler.
func (r *invoiceRepository) MarkOverdue(ctx context.Context, landlordID, tenantID *uint, today time.Time) (int64, error) {
	db := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("status IN ?", []string{models.InvoiceStatusUnpaid, models.InvoiceStatusPartial}).
		Where("due_date < ?", today)

	if landlordID != nil {
		db = db.Where("landlord_id = ?", *landlordID)
	}
	if tenantID != nil {
		db = db.Where("tenant_id = ?", *tenantID)
	}

	result := db.Update("status", models.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

// RecordPayment creates the payment, applies it to the invoice and
// recomputes the derived status in a single transaction.
func (r *invoiceRepository) RecordPayment(ctx context.Context, invoice *models.Invoice, payment *models.Payment, today time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment.InvoiceID = invoice.ID
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		invoice.AmountPaid += payment.Amount
		invoice.RefreshStatus(today)

		return tx.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Select("AmountPaid", "Status").
			Updates(invoice).Error
	})
}
