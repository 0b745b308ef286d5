package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// AuditRepository defines the interface for unit status audit data access
type AuditRepository interface {
	Create(ctx context.Context, audit *models.UnitStatusAudit) error
	ListByUnit(ctx context.Context, unitID uint, limit int) ([]models.UnitStatusAudit, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, audit *models.UnitStatusAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *auditRepository) ListByUnit(ctx context.Context, unitID uint, limit int) ([]models.UnitStatusAudit, error) {
	var audits []models.UnitStatusAudit
	db := r.db.WithContext(ctx).
		Preload("ChangedBy").
		Where("unit_id = ?", unitID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&audits).Error
	return audits, err
}
