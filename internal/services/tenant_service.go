package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
)

// TenantService handles tenant lifecycle operations
type TenantService struct {
	tenantRepo  repository.TenantRepository
	invoiceRepo repository.InvoiceRepository
	unitSvc     *UnitService
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo repository.TenantRepository,
	invoiceRepo repository.InvoiceRepository,
	unitSvc *UnitService,
) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		invoiceRepo: invoiceRepo,
		unitSvc:     unitSvc,
	}
}

// List returns the landlord's tenants
func (s *TenantService) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.TenantProfile, int64, error) {
	return s.tenantRepo.List(ctx, landlordID, query)
}

// Get returns one tenant profile scoped to the landlord
func (s *TenantService) Get(ctx context.Context, landlordID, id uint) (*models.TenantProfile, error) {
	profile, err := s.tenantRepo.FindByID(ctx, landlordID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetByUserID returns the tenant profile for a user account
func (s *TenantService) GetByUserID(ctx context.Context, userID uint) (*models.TenantProfile, error) {
	profile, err := s.tenantRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// TenantInput holds the fields to create a tenant account and profile
type TenantInput struct {
	Username   string     `json:"username" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required,min=8"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Phone      string     `json:"phone"`
	IDNumber   string     `json:"id_number"`
	UnitID     uint       `json:"unit_id" binding:"required"`
	MoveInDate *time.Time `json:"move_in_date"`
}

// Create creates the tenant user account and profile, then occupies the unit.
// The target unit must belong to the landlord and be vacant.
func (s *TenantService) Create(ctx context.Context, landlordID uint, actor *models.User, input TenantInput) (*models.TenantProfile, error) {
	unit, err := s.unitSvc.Get(ctx, landlordID, input.UnitID)
	if err != nil {
		return nil, err
	}
	// Both the stored status and the relationship guard the unit: a drifted
	// occupied status still refuses the assignment until it is reconciled.
	if unit.Status == models.UnitStatusOccupied || unit.ActiveTenant() != nil {
		return nil, ErrUnitOccupied
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         models.RoleTenant,
		IsActive:     true,
	}
	profile := &models.TenantProfile{
		LandlordID: landlordID,
		UnitID:     &input.UnitID,
		IDNumber:   input.IDNumber,
		MoveInDate: input.MoveInDate,
		IsActive:   true,
	}

	if err := s.tenantRepo.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}
	profile.User = *user

	if err := s.unitSvc.ChangeStatus(ctx, unit, models.UnitStatusOccupied, actor); err != nil {
		return nil, err
	}

	return profile, nil
}

// TenantUpdateInput holds partial tenant updates. Setting UnitID transfers
// the tenant; toggling IsActive deactivates or reactivates them.
type TenantUpdateInput struct {
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email"`
	IDNumber   *string    `json:"id_number"`
	UnitID     *uint      `json:"unit_id"`
	MoveInDate *time.Time `json:"move_in_date"`
	IsActive   *bool      `json:"is_active"`
}

// Update applies partial updates, handling unit transfer and deactivation
// with the matching occupancy transitions.
func (s *TenantService) Update(ctx context.Context, landlordID, id uint, actor *models.User, input TenantUpdateInput) (*models.TenantProfile, error) {
	profile, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		profile.User.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.User.LastName = *input.LastName
	}
	if input.Phone != nil {
		profile.User.Phone = *input.Phone
	}
	if input.Email != nil {
		profile.User.Email = *input.Email
	}
	if input.IDNumber != nil {
		profile.IDNumber = *input.IDNumber
	}
	if input.MoveInDate != nil {
		profile.MoveInDate = input.MoveInDate
	}

	if input.UnitID != nil && (profile.UnitID == nil || *input.UnitID != *profile.UnitID) {
		if err := s.transfer(ctx, landlordID, profile, *input.UnitID, actor); err != nil {
			return nil, err
		}
	}

	if input.IsActive != nil && *input.IsActive != profile.IsActive {
		if *input.IsActive {
			if err := s.reactivate(ctx, landlordID, profile, actor); err != nil {
				return nil, err
			}
		} else {
			if err := s.deactivate(ctx, landlordID, profile, actor); err != nil {
				return nil, err
			}
		}
	}

	if err := s.tenantRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// transfer moves an active tenant to a new vacant unit, vacating the old one.
func (s *TenantService) transfer(ctx context.Context, landlordID uint, profile *models.TenantProfile, newUnitID uint, actor *models.User) error {
	newUnit, err := s.unitSvc.Get(ctx, landlordID, newUnitID)
	if err != nil {
		return err
	}
	if occupant := newUnit.ActiveTenant(); occupant != nil && occupant.ID != profile.ID {
		return ErrUnitOccupied
	}

	if profile.UnitID != nil && profile.IsActive {
		oldUnit, err := s.unitSvc.Get(ctx, landlordID, *profile.UnitID)
		if err == nil {
			if err := s.unitSvc.ChangeStatus(ctx, oldUnit, models.UnitStatusVacant, actor); err != nil {
				return err
			}
		}
	}

	profile.UnitID = &newUnitID
	profile.Unit = newUnit
	if err := s.tenantRepo.Update(ctx, profile); err != nil {
		return err
	}

	if profile.IsActive {
		return s.unitSvc.ChangeStatus(ctx, newUnit, models.UnitStatusOccupied, actor)
	}
	return nil
}

// deactivate vacates the unit but keeps the unit reference on the profile.
func (s *TenantService) deactivate(ctx context.Context, landlordID uint, profile *models.TenantProfile, actor *models.User) error {
	profile.IsActive = false
	if err := s.tenantRepo.Update(ctx, profile); err != nil {
		return err
	}

	if profile.UnitID != nil {
		unit, err := s.unitSvc.Get(ctx, landlordID, *profile.UnitID)
		if err == nil {
			return s.unitSvc.ChangeStatus(ctx, unit, models.UnitStatusVacant, actor)
		}
	}
	return nil
}

// reactivate re-occupies the remembered unit if it is still vacant.
func (s *TenantService) reactivate(ctx context.Context, landlordID uint, profile *models.TenantProfile, actor *models.User) error {
	if profile.UnitID != nil {
		unit, err := s.unitSvc.Get(ctx, landlordID, *profile.UnitID)
		if err != nil {
			return err
		}
		if occupant := unit.ActiveTenant(); occupant != nil && occupant.ID != profile.ID {
			return ErrUnitOccupied
		}

		profile.IsActive = true
		if err := s.tenantRepo.Update(ctx, profile); err != nil {
			return err
		}
		return s.unitSvc.ChangeStatus(ctx, unit, models.UnitStatusOccupied, actor)
	}

	profile.IsActive = true
	return s.tenantRepo.Update(ctx, profile)
}

// Delete removes the tenant, their user account and, when confirmed with
// delete_invoices=true, their entire financial history. The occupied unit is
// vacated with an audit row before anything is removed.
func (s *TenantService) Delete(ctx context.Context, landlordID, id uint, actor *models.User, deleteInvoices bool) error {
	profile, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return err
	}

	invoiceCount, err := s.invoiceRepo.CountByTenant(ctx, profile.ID)
	if err != nil {
		return err
	}
	if invoiceCount > 0 && !deleteInvoices {
		return &DeleteBlockedError{Blockers: []string{
			fmt.Sprintf("%d invoice(s) belong to this tenant", invoiceCount),
			"pass delete_invoices=true to remove the tenant together with their history",
		}}
	}

	if profile.UnitID != nil && profile.IsActive {
		unit, err := s.unitSvc.Get(ctx, landlordID, *profile.UnitID)
		if err == nil {
			if err := s.unitSvc.ChangeStatus(ctx, unit, models.UnitStatusVacant, actor); err != nil {
				return err
			}
		}
	}

	return s.tenantRepo.DeleteCascade(ctx, profile)
}
