package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmwaura/nyumba-api/internal/models"
)

func TestApartmentService_Delete_NoHistoryCascadesDirectly(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	service := NewApartmentService(apartmentRepo, &mockUnitRepo{}, &mockInvoiceRepo{}, &mockPaymentRepo{})

	apartmentRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, LandlordID: landlordID}, nil
	}

	var archiveID *uint
	cascaded := false
	apartmentRepo.mockDeleteCascade = func(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error {
		cascaded = true
		archiveID = archiveUnitID
		return nil
	}

	err := service.Delete(context.Background(), 1, 2, "", "")
	require.NoError(t, err)
	assert.True(t, cascaded)
	assert.Nil(t, archiveID)
}

func TestApartmentService_Delete_HistoryBlocksWithoutConfirm(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	invoiceRepo := &mockInvoiceRepo{}
	paymentRepo := &mockPaymentRepo{}
	service := NewApartmentService(apartmentRepo, &mockUnitRepo{}, invoiceRepo, paymentRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, LandlordID: landlordID}, nil
	}
	invoiceRepo.mockCountByUnits = func(ctx context.Context, apartmentID uint) (int64, error) {
		return 12, nil
	}
	paymentRepo.mockCountByUnits = func(ctx context.Context, apartmentID uint) (int64, error) {
		return 5, nil
	}
	apartmentRepo.mockDeleteCascade = func(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error {
		t.Fatal("cascade must not run without confirmation")
		return nil
	}

	err := service.Delete(context.Background(), 1, 2, "", "")

	var blocked *DeleteBlockedError
	require.ErrorAs(t, err, &blocked)
	require.Len(t, blocked.Blockers, 3)
	assert.Contains(t, blocked.Blockers[0], "12 invoice(s)")
	assert.Contains(t, blocked.Blockers[1], "5 payment(s)")
	assert.Contains(t, blocked.Blockers[2], "confirm=DELETE")
}

func TestApartmentService_Delete_ConfirmWithoutPolicyStillBlocks(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	invoiceRepo := &mockInvoiceRepo{}
	service := NewApartmentService(apartmentRepo, &mockUnitRepo{}, invoiceRepo, &mockPaymentRepo{})

	apartmentRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, LandlordID: landlordID}, nil
	}
	invoiceRepo.mockCountByUnits = func(ctx context.Context, apartmentID uint) (int64, error) {
		return 12, nil
	}

	err := service.Delete(context.Background(), 1, 2, DeleteConfirmToken, "")

	var blocked *DeleteBlockedError
	assert.ErrorAs(t, err, &blocked)
}

func TestApartmentService_Delete_ArchivePolicyLazilyCreatesArchive(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	unitRepo := &mockUnitRepo{}
	invoiceRepo := &mockInvoiceRepo{}
	service := NewApartmentService(apartmentRepo, unitRepo, invoiceRepo, &mockPaymentRepo{})

	apartmentRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, LandlordID: landlordID}, nil
	}
	invoiceRepo.mockCountByUnits = func(ctx context.Context, apartmentID uint) (int64, error) {
		return 12, nil
	}

	// Neither the archive apartment nor its unit exists yet
	apartmentCreated := false
	apartmentRepo.mockCreate = func(ctx context.Context, apartment *models.Apartment) error {
		assert.Equal(t, models.ArchiveApartmentName, apartment.Name)
		apartment.ID = 99
		apartmentCreated = true
		return nil
	}
	unitCreated := false
	unitRepo.mockCreate = func(ctx context.Context, unit *models.Unit) error {
		assert.Equal(t, models.ArchiveUnitNumber, unit.UnitNumber)
		assert.Equal(t, uint(99), unit.ApartmentID)
		assert.False(t, unit.IsActive, "the archive unit never appears in active listings")
		unit.ID = 999
		unitCreated = true
		return nil
	}

	var archiveID *uint
	apartmentRepo.mockDeleteCascade = func(ctx context.Context, apartment *models.Apartment, archiveUnitID *uint) error {
		archiveID = archiveUnitID
		return nil
	}

	err := service.Delete(context.Background(), 1, 2, DeleteConfirmToken, InvoicePolicyArchive)

	require.NoError(t, err)
	assert.True(t, apartmentCreated)
	assert.True(t, unitCreated)
	require.NotNil(t, archiveID)
	assert.Equal(t, uint(999), *archiveID)
}

func TestApartmentService_Delete_ArchiveApartmentItselfRefused(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	unitRepo := &mockUnitRepo{}
	invoiceRepo := &mockInvoiceRepo{}
	service := NewApartmentService(apartmentRepo, unitRepo, invoiceRepo, &mockPaymentRepo{})

	apartmentRepo.mockFindByID = func(ctx context.Context, landlordID, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: 99, LandlordID: landlordID, Name: models.ArchiveApartmentName}, nil
	}
	invoiceRepo.mockCountByUnits = func(ctx context.Context, apartmentID uint) (int64, error) {
		return 12, nil
	}
	apartmentRepo.mockFindByName = func(ctx context.Context, landlordID uint, name string) (*models.Apartment, error) {
		return &models.Apartment{ID: 99, LandlordID: landlordID, Name: name}, nil
	}
	unitRepo.mockFindByNumber = func(ctx context.Context, apartmentID uint, unitNumber string) (*models.Unit, error) {
		return &models.Unit{ID: 999, ApartmentID: 99, UnitNumber: unitNumber}, nil
	}

	err := service.Delete(context.Background(), 1, 99, DeleteConfirmToken, InvoicePolicyArchive)
	assert.Error(t, err)
}
