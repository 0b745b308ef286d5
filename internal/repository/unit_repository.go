package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// UnitRepository defines the interface for unit data access
type UnitRepository interface {
	FindByID(ctx context.Context, landlordID, id uint) (*models.Unit, error)
	FindByNumber(ctx context.Context, apartmentID uint, unitNumber string) (*models.Unit, error)
	FindAllByLandlord(ctx context.Context, landlordID uint) ([]models.Unit, error)
	List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Unit, int64, error)
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, unit *models.Unit) error
	UpdateStatus(ctx context.Context, unitID uint, status string) error
	SoftDelete(ctx context.Context, id uint) error
	DeleteCascade(ctx context.Context, unit *models.Unit, archiveUnitID *uint) error
}

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) FindByID(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).
		Preload("Apartment").
		Preload("Tenants", "is_active = ?", true).
		Preload("Tenants.User").
		Joins("JOIN apartments ON apartments.id = units.apartment_id").
		Where("apartments.landlord_id = ?", landlordID).
		First(&unit, "units.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) FindByNumber(ctx context.Context, apartmentID uint, unitNumber string) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND unit_number = ?", apartmentID, unitNumber).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) FindAllByLandlord(ctx context.Context, landlordID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.WithContext(ctx).
		Preload("Tenants", "is_active = ?", true).
		Joins("JOIN apartments ON apartments.id = units.apartment_id").
		Where("apartments.landlord_id = ?", landlordID).
		Find(&units).Error
	return units, err
}

func (r *unitRepository) List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Unit, int64, error) {
	var units []models.Unit
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Unit{}).
		Joins("JOIN apartments ON apartments.id = units.apartment_id").
		Where("apartments.landlord_id = ?", landlordID)

	if query.Filters["apartment"] != "" {
		db = db.Where("units.apartment_id = ?", query.Filters["apartment"])
	}
	if query.Filters["active_only"] == "true" {
		db = db.Where("units.is_active = ?", true)
	}
	if query.Filters["status"] != "" {
		db = db.Where("units.status = ?", query.Filters["status"])
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("units.unit_number ILIKE ? OR units.description ILIKE ?", search, search)
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := "units." + query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("units.unit_number ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Apartment").
		Preload("Tenants", "is_active = ?", true).
		Preload("Tenants.User").
		Find(&units).Error
	return units, total, err
}

func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	if err := r.db.WithContext(ctx).Create(unit).Error; err != nil {
		if isDuplicateKeyError(err, "idx_units_apartment_number") {
			return ErrDuplicateUnitNumber
		}
		return err
	}
	return nil
}

func (r *unitRepository) Update(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) UpdateStatus(ctx context.Context, unitID uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("id = ?", unitID).
		Update("status", status).Error
}

func (r *unitRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// DeleteCascade removes the unit and its dependents in one transaction. When
// archiveUnitID is set, invoices are reassigned to the archive unit instead
// of being deleted.
func (r *unitRepository) DeleteCascade(ctx context.Context, unit *models.Unit, archiveUnitID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if archiveUnitID != nil {
			if err := tx.Model(&models.Invoice{}).
				Where("unit_id = ?", unit.ID).
				Update("unit_id", *archiveUnitID).Error; err != nil {
				return err
			}
		} else {
			invoiceIDs := tx.Model(&models.Invoice{}).
				Select("id").
				Where("unit_id = ?", unit.ID)

			if err := tx.Where("invoice_id IN (?)", invoiceIDs).
				Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("invoice_id IN (?)", invoiceIDs).
				Delete(&models.InvoiceLineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("unit_id = ?", unit.ID).
				Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.TenantProfile{}).
			Where("unit_id = ?", unit.ID).
			Update("unit_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("unit_id = ?", unit.ID).
			Delete(&models.UnitStatusAudit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Unit{}, unit.ID).Error
	})
}
