package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// TenantRepository defines the interface for tenant profile data access
type TenantRepository interface {
	FindByID(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*models.TenantProfile, error)
	FindActiveByUnit(ctx context.Context, unitID uint) (*models.TenantProfile, error)
	List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.TenantProfile, int64, error)
	CreateWithUser(ctx context.Context, user *models.User, profile *models.TenantProfile) error
	Update(ctx context.Context, profile *models.TenantProfile) error
	DeleteCascade(ctx context.Context, profile *models.TenantProfile) error
}

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) FindByID(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error) {
	var profile models.TenantProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Unit").
		Preload("Unit.Apartment").
		Where("landlord_id = ?", landlordID).
		First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tenantRepository) FindByUserID(ctx context.Context, userID uint) (*models.TenantProfile, error) {
	var profile models.TenantProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Unit").
		Preload("Unit.Apartment").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tenantRepository) FindActiveByUnit(ctx context.Context, unitID uint) (*models.TenantProfile, error) {
	var profile models.TenantProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("unit_id = ? AND is_active = ?", unitID, true).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tenantRepository) List(ctx context.Context, landlordID uint, query *ListQuery) ([]models.TenantProfile, int64, error) {
	var profiles []models.TenantProfile
	var total int64

	db := r.db.WithContext(ctx).Model(&models.TenantProfile{}).
		Where("tenant_profiles.landlord_id = ?", landlordID)

	if query.Filters["is_active"] != "" {
		db = db.Where("tenant_profiles.is_active = ?", query.Filters["is_active"] == "true")
	}
	if query.Filters["unit"] != "" {
		db = db.Where("tenant_profiles.unit_id = ?", query.Filters["unit"])
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("JOIN users ON users.id = tenant_profiles.user_id").
			Where("users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.email ILIKE ? OR users.phone ILIKE ?",
				search, search, search, search)
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := "tenant_profiles." + query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("tenant_profiles.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("User").
		Preload("Unit").
		Preload("Unit.Apartment").
		Find(&profiles).Error
	return profiles, total, err
}

// CreateWithUser creates the tenant user account and profile atomically.
func (r *tenantRepository) CreateWithUser(ctx context.Context, user *models.User, profile *models.TenantProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *tenantRepository) Update(ctx context.Context, profile *models.TenantProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// DeleteCascade removes the tenant's payments, invoices, profile and user
// account in one transaction.
func (r *tenantRepository) DeleteCascade(ctx context.Context, profile *models.TenantProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoiceIDs := tx.Model(&models.Invoice{}).
			Select("id").
			Where("tenant_id = ?", profile.ID)

		if err := tx.Where("invoice_id IN (?)", invoiceIDs).
			Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id IN (?)", invoiceIDs).
			Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", profile.ID).
			Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", profile.UserID).
			Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.TenantProfile{}, profile.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, profile.UserID).Error
	})
}
