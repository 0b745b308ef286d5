package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
)

// Delete confirmation parameters shared by apartment and unit deletion
const (
	DeleteConfirmToken   = "DELETE"
	InvoicePolicyDelete  = "delete"
	InvoicePolicyArchive = "archive"
)

// ApartmentService handles apartment operations
type ApartmentService struct {
	apartmentRepo repository.ApartmentRepository
	unitRepo      repository.UnitRepository
	invoiceRepo   repository.InvoiceRepository
	paymentRepo   repository.PaymentRepository
}

// NewApartmentService creates a new apartment service
func NewApartmentService(
	apartmentRepo repository.ApartmentRepository,
	unitRepo repository.UnitRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *ApartmentService {
	return &ApartmentService{
		apartmentRepo: apartmentRepo,
		unitRepo:      unitRepo,
		invoiceRepo:   invoiceRepo,
		paymentRepo:   paymentRepo,
	}
}

// List returns the landlord's apartments with unit counts
func (s *ApartmentService) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Apartment, int64, error) {
	return s.apartmentRepo.List(ctx, landlordID, query)
}

// Get returns one apartment scoped to the landlord
func (s *ApartmentService) Get(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
	apartment, err := s.apartmentRepo.FindByID(ctx, landlordID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return apartment, nil
}

// ApartmentInput holds the writable apartment fields
type ApartmentInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Create creates an apartment for the landlord
func (s *ApartmentService) Create(ctx context.Context, landlordID uint, input ApartmentInput) (*models.Apartment, error) {
	apartment := &models.Apartment{
		LandlordID: landlordID,
		Name:       input.Name,
		Address:    input.Address,
		City:       input.City,
	}
	if err := s.apartmentRepo.Create(ctx, apartment); err != nil {
		return nil, err
	}
	return apartment, nil
}

// ApartmentUpdateInput holds partial apartment updates
type ApartmentUpdateInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

// Update applies partial updates to an apartment
func (s *ApartmentService) Update(ctx context.Context, landlordID, id uint, input ApartmentUpdateInput) (*models.Apartment, error) {
	apartment, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		apartment.Name = *input.Name
	}
	if input.Address != nil {
		apartment.Address = *input.Address
	}
	if input.City != nil {
		apartment.City = *input.City
	}

	if err := s.apartmentRepo.Update(ctx, apartment); err != nil {
		return nil, err
	}
	return apartment, nil
}

// Delete removes an apartment. Without confirmation it refuses when any unit
// carries financial history and reports the blockers. With confirm=DELETE the
// invoices parameter decides whether history is deleted or reassigned to the
// landlord's archive unit.
func (s *ApartmentService) Delete(ctx context.Context, landlordID, id uint, confirm, invoicePolicy string) error {
	apartment, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return err
	}

	invoiceCount, err := s.invoiceRepo.CountByUnits(ctx, apartment.ID)
	if err != nil {
		return err
	}
	paymentCount, err := s.paymentRepo.CountByUnits(ctx, apartment.ID)
	if err != nil {
		return err
	}

	if invoiceCount > 0 || paymentCount > 0 {
		if confirm != DeleteConfirmToken {
			return &DeleteBlockedError{Blockers: deleteBlockers(invoiceCount, paymentCount)}
		}

		switch invoicePolicy {
		case InvoicePolicyDelete:
			return s.apartmentRepo.DeleteCascade(ctx, apartment, nil)
		case InvoicePolicyArchive:
			archiveUnit, err := ensureArchiveUnit(ctx, s.apartmentRepo, s.unitRepo, landlordID)
			if err != nil {
				return fmt.Errorf("failed to prepare archive unit: %w", err)
			}
			if archiveUnit.ApartmentID == apartment.ID {
				return errors.New("the archive apartment cannot be deleted with the archive policy")
			}
			return s.apartmentRepo.DeleteCascade(ctx, apartment, &archiveUnit.ID)
		default:
			return &DeleteBlockedError{Blockers: deleteBlockers(invoiceCount, paymentCount)}
		}
	}

	return s.apartmentRepo.DeleteCascade(ctx, apartment, nil)
}

func deleteBlockers(invoiceCount, paymentCount int64) []string {
	blockers := []string{}
	if invoiceCount > 0 {
		blockers = append(blockers, fmt.Sprintf("%d invoice(s) reference this property", invoiceCount))
	}
	if paymentCount > 0 {
		blockers = append(blockers, fmt.Sprintf("%d payment(s) reference this property", paymentCount))
	}
	blockers = append(blockers, "pass confirm=DELETE with invoices=delete or invoices=archive to proceed")
	return blockers
}

// ensureArchiveUnit lazily creates the landlord's "Archived Properties"
// apartment and its ARCHIVE unit, returning the unit that receives
// reassigned invoices.
func ensureArchiveUnit(ctx context.Context, apartmentRepo repository.ApartmentRepository, unitRepo repository.UnitRepository, landlordID uint) (*models.Unit, error) {
	apartment, err := apartmentRepo.FindByName(ctx, landlordID, models.ArchiveApartmentName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		apartment = &models.Apartment{
			LandlordID: landlordID,
			Name:       models.ArchiveApartmentName,
		}
		if err := apartmentRepo.Create(ctx, apartment); err != nil {
			return nil, err
		}
	}

	unit, err := unitRepo.FindByNumber(ctx, apartment.ID, models.ArchiveUnitNumber)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		unit = &models.Unit{
			ApartmentID: apartment.ID,
			UnitNumber:  models.ArchiveUnitNumber,
			Description: "Holds invoices preserved from deleted units",
			Status:      models.UnitStatusVacant,
			IsActive:    false,
		}
		if err := unitRepo.Create(ctx, unit); err != nil {
			return nil, err
		}
	}

	return unit, nil
}
