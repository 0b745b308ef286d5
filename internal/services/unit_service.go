package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
	"github.com/jmwaura/nyumba-api/internal/statemachine"
	"github.com/jmwaura/nyumba-api/pkg/logger"
)

// auditSnapshotInvoices caps how many recent invoices go into an audit row
const auditSnapshotInvoices = 10

// UnitService handles unit operations and the occupancy state machine
type UnitService struct {
	unitRepo      repository.UnitRepository
	apartmentRepo repository.ApartmentRepository
	tenantRepo    repository.TenantRepository
	invoiceRepo   repository.InvoiceRepository
	paymentRepo   repository.PaymentRepository
	auditRepo     repository.AuditRepository
}

// NewUnitService creates a new unit service
func NewUnitService(
	unitRepo repository.UnitRepository,
	apartmentRepo repository.ApartmentRepository,
	tenantRepo repository.TenantRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	auditRepo repository.AuditRepository,
) *UnitService {
	return &UnitService{
		unitRepo:      unitRepo,
		apartmentRepo: apartmentRepo,
		tenantRepo:    tenantRepo,
		invoiceRepo:   invoiceRepo,
		paymentRepo:   paymentRepo,
		auditRepo:     auditRepo,
	}
}

// List returns the landlord's units
func (s *UnitService) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Unit, int64, error) {
	return s.unitRepo.List(ctx, landlordID, query)
}

// Get returns one unit scoped to the landlord
func (s *UnitService) Get(ctx context.Context, landlordID, id uint) (*models.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, landlordID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return unit, nil
}

// UnitInput holds the writable unit fields
type UnitInput struct {
	ApartmentID uint    `json:"apartment_id" binding:"required"`
	UnitNumber  string  `json:"unit_number" binding:"required"`
	Description string  `json:"description"`
	BaseRent    float64 `json:"base_rent" binding:"required,gt=0"`
}

// Create creates a unit and writes its initial occupancy audit row
func (s *UnitService) Create(ctx context.Context, landlordID uint, actor *models.User, input UnitInput) (*models.Unit, error) {
	if _, err := s.apartmentRepo.FindByID(ctx, landlordID, input.ApartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	unit := &models.Unit{
		ApartmentID: input.ApartmentID,
		UnitNumber:  input.UnitNumber,
		Description: input.Description,
		BaseRent:    input.BaseRent,
		Status:      models.UnitStatusVacant,
		IsActive:    true,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	// Initial audit row records the creation with a null from_status
	s.writeAudit(ctx, unit, nil, unit.Status, actor)

	return unit, nil
}

// UnitUpdateInput holds partial unit updates
type UnitUpdateInput struct {
	UnitNumber  *string  `json:"unit_number"`
	Description *string  `json:"description"`
	BaseRent    *float64 `json:"base_rent"`
	Status      *string  `json:"status"`
	IsActive    *bool    `json:"is_active"`
}

// Update applies partial updates to a unit. A status change runs through the
// occupancy state machine and is audited with the caller as actor.
func (s *UnitService) Update(ctx context.Context, landlordID, id uint, actor *models.User, input UnitUpdateInput) (*models.Unit, error) {
	unit, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}

	if input.UnitNumber != nil {
		unit.UnitNumber = *input.UnitNumber
	}
	if input.Description != nil {
		unit.Description = *input.Description
	}
	if input.BaseRent != nil {
		unit.BaseRent = *input.BaseRent
	}
	if input.IsActive != nil {
		unit.IsActive = *input.IsActive
	}

	if input.Status != nil && *input.Status != unit.Status {
		if !models.IsValidUnitStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown unit status %q", ErrValidation, *input.Status)
		}
		if err := s.ChangeStatus(ctx, unit, *input.Status, actor); err != nil {
			return nil, err
		}
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// ChangeStatus drives the occupancy state machine to newStatus, persists the
// unit and synchronously appends the audit row. A nil actor marks a
// system-initiated change.
func (s *UnitService) ChangeStatus(ctx context.Context, unit *models.Unit, newStatus string, actor *models.User) error {
	if unit.Status == newStatus {
		return nil
	}

	fromStatus := unit.Status
	machine := statemachine.NewOccupancyFSM(unit)
	if err := machine.Transition(ctx, newStatus); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
	}

	if err := s.unitRepo.UpdateStatus(ctx, unit.ID, unit.Status); err != nil {
		return err
	}

	s.writeAudit(ctx, unit, &fromStatus, unit.Status, actor)
	return nil
}

// writeAudit appends an audit row with the occupancy snapshot. Snapshot
// failures degrade to an empty invoice list rather than blocking the change.
func (s *UnitService) writeAudit(ctx context.Context, unit *models.Unit, fromStatus *string, toStatus string, actor *models.User) {
	meta := s.buildSnapshot(ctx, unit)

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		metaJSON = []byte(`{"active_tenant_id":null,"invoices":[]}`)
	}

	audit := &models.UnitStatusAudit{
		UnitID:     unit.ID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Meta:       datatypes.JSON(metaJSON),
	}
	if actor != nil {
		audit.ChangedByID = &actor.ID
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		logger.Error("failed to write unit status audit",
			"unit_id", unit.ID, "to_status", toStatus, "error", err)
	}
}

func (s *UnitService) buildSnapshot(ctx context.Context, unit *models.Unit) models.AuditMeta {
	meta := models.AuditMeta{
		Invoices: []models.AuditMetaInvoice{},
	}

	// The snapshot records the tenant's user account id, not the profile id
	if tenant, err := s.tenantRepo.FindActiveByUnit(ctx, unit.ID); err == nil {
		meta.ActiveTenantID = &tenant.UserID
	}

	invoices, err := s.invoiceRepo.ListRecentByUnit(ctx, unit.ID, auditSnapshotInvoices)
	if err != nil {
		logger.Warn("audit snapshot degraded to empty invoice list",
			"unit_id", unit.ID, "error", err)
		return meta
	}

	for i := range invoices {
		meta.Invoices = append(meta.Invoices, models.AuditMetaInvoice{
			ID:          invoices[i].ID,
			Status:      invoices[i].Status,
			TotalAmount: invoices[i].TotalAmount,
			Remaining:   invoices[i].RemainingBalance(),
		})
	}
	return meta
}

// SyncStatuses recomputes every unit's occupancy from the active-tenant
// relationship, repairing drift. Changes are audited as system actions.
func (s *UnitService) SyncStatuses(ctx context.Context, landlordID uint) (int, error) {
	units, err := s.unitRepo.FindAllByLandlord(ctx, landlordID)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range units {
		unit := &units[i]

		desired := models.UnitStatusVacant
		if unit.ActiveTenant() != nil {
			desired = models.UnitStatusOccupied
		}
		if unit.Status == desired {
			continue
		}

		if err := s.ChangeStatus(ctx, unit, desired, nil); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// Audit returns the unit's occupancy history, newest first
func (s *UnitService) Audit(ctx context.Context, landlordID, unitID uint, limit int) ([]models.UnitStatusAudit, error) {
	if _, err := s.Get(ctx, landlordID, unitID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByUnit(ctx, unitID, limit)
}

// Delete removes a unit. Without confirmation parameters the unit is soft
// deleted (is_active=false). With confirm=DELETE the invoices parameter
// decides whether financial history is deleted or archived; any attempt to
// hard delete without it is refused with the blocker list.
func (s *UnitService) Delete(ctx context.Context, landlordID, id uint, confirm, invoicePolicy string) error {
	unit, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return err
	}

	if confirm == "" && invoicePolicy == "" {
		if unit.ActiveTenant() != nil {
			return &DeleteBlockedError{Blockers: []string{"an active tenant occupies this unit"}}
		}
		return s.unitRepo.SoftDelete(ctx, unit.ID)
	}

	invoiceCount, err := s.invoiceRepo.CountByUnit(ctx, unit.ID)
	if err != nil {
		return err
	}
	paymentCount, err := s.paymentRepo.CountByUnit(ctx, unit.ID)
	if err != nil {
		return err
	}

	if invoiceCount > 0 || paymentCount > 0 {
		if confirm != DeleteConfirmToken {
			return &DeleteBlockedError{Blockers: deleteBlockers(invoiceCount, paymentCount)}
		}

		switch invoicePolicy {
		case InvoicePolicyDelete:
			return s.unitRepo.DeleteCascade(ctx, unit, nil)
		case InvoicePolicyArchive:
			archive, err := ensureArchiveUnit(ctx, s.apartmentRepo, s.unitRepo, landlordID)
			if err != nil {
				return fmt.Errorf("failed to prepare archive unit: %w", err)
			}
			if archive.ID == unit.ID {
				return errors.New("the archive unit cannot be deleted with the archive policy")
			}
			return s.unitRepo.DeleteCascade(ctx, unit, &archive.ID)
		default:
			return &DeleteBlockedError{Blockers: deleteBlockers(invoiceCount, paymentCount)}
		}
	}

	return s.unitRepo.DeleteCascade(ctx, unit, nil)
}
