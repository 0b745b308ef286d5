package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// ApartmentRepository defines the interface for apartment data access
type ApartmentRepository interface {
	FindByID(ctx context.Context, landlordID, id uint) (*models.Apartment, error)
	FindByName(ctx context.Context, landlordID uint, name string) (*models.Apartment, error)
	List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Apartment, int64, error)
	Create(ctx context.Context, apartment *models.Apartment) error
	Update(ctx context.Context, apartment *models.Apartment) error
	DeleteCascade(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error
}

type apartmentRepository struct {
	db *gorm.DB
}

// NewApartmentRepository creates a new apartment repository
func NewApartmentRepository(db *gorm.DB) ApartmentRepository {
	return &apartmentRepository{db: db}
}

func (r *apartmentRepository) FindByID(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	err := r.db.WithContext(ctx).
		Preload("Units").
		Where("landlord_id = ?", landlordID).
		First(&apartment, id).Error
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

func (r *apartmentRepository) FindByName(ctx context.Context, landlordID uint, name string) (*models.Apartment, error) {
	var apartment models.Apartment
	err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND name = ?", landlordID, name).
		First(&apartment).Error
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

func (r *apartmentRepository) List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.Apartment, int64, error) {
	var apartments []models.Apartment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Where("landlord_id = ?", landlordID)

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR address ILIKE ? OR city ILIKE ?", search, search, search)
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("name ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("Units").Find(&apartments).Error
	return apartments, total, err
}

func (r *apartmentRepository) Create(ctx context.Context, apartment *models.Apartment) error {
	return r.db.WithContext(ctx).Create(apartment).Error
}

func (r *apartmentRepository) Update(ctx context.Context, apartment *models.Apartment) error {
	return r.db.WithContext(ctx).Save(apartment).Error
}

// DeleteCascade removes the apartment and all of its units in one
// transaction. When archiveUnitID is set, invoices under the apartment are
// reassigned to that unit; otherwise invoices and their payments and line
// items are deleted outright.
func (r *apartmentRepository) DeleteCascade(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		unitIDs := tx.Model(&models.Unit{}).
			Select("id").
			Where("apartment_id = ?", apartment.ID)

		if archiveUnitID != nil {
			if err := tx.Model(&models.Invoice{}).
				Where("unit_id IN (?)", unitIDs).
				Update("unit_id", *archiveUnitID).Error; err != nil {
				return err
			}
		} else {
			invoiceIDs := tx.Model(&models.Invoice{}).
				Select("id").
				Where("unit_id IN (?)", unitIDs)

			if err := tx.Where("invoice_id IN (?)", invoiceIDs).
				Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("invoice_id IN (?)", invoiceIDs).
				Delete(&models.InvoiceLineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("unit_id IN (?)", unitIDs).
				Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.TenantProfile{}).
			Where("unit_id IN (?)", unitIDs).
			Update("unit_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("unit_id IN (?)", unitIDs).
			Delete(&models.UnitStatusAudit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("apartment_id = ?", apartment.ID).
			Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Apartment{}, apartment.ID).Error
	})
}
