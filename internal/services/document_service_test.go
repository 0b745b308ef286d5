package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmwaura/nyumba-api/internal/config"
	"github.com/jmwaura/nyumba-api/internal/models"
)

func sampleInvoice() *models.Invoice {
	return &models.Invoice{
		ID:          42,
		Month:       3,
		Year:        2026,
		InvoiceDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		BaseRent:    15000,
		TotalAmount: 15800,
		AmountPaid:  5000,
		Status:      models.InvoiceStatusPartial,
		Notes:       "Pay via paybill 123456",
		Unit: models.Unit{
			ID:         7,
			UnitNumber: "A1",
			Apartment:  models.Apartment{ID: 2, Name: "Sunrise Court", Address: "Ngong Road"},
		},
		Tenant: models.TenantProfile{
			ID:   30,
			User: models.User{ID: 20, FirstName: "Wanjiku", LastName: "Kamau", Phone: "+254700000000"},
		},
		LineItems: []models.InvoiceLineItem{
			{Description: "Water", Amount: 500},
			{Description: "Garbage", Amount: 300},
		},
	}
}

func TestDocumentService_InvoicePDF(t *testing.T) {
	service := NewDocumentService(&config.Config{CompanyName: "Nyumba Rentals"})

	data, filename, err := service.InvoicePDF(context.Background(), sampleInvoice())

	require.NoError(t, err)
	assert.Equal(t, "invoice-42-March-2026.pdf", filename)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDocumentService_InvoicePDF_MinimalInvoice(t *testing.T) {
	service := NewDocumentService(&config.Config{CompanyName: "Nyumba Rentals"})

	// No preloaded associations, no notes
	invoice := &models.Invoice{
		ID:          7,
		Month:       12,
		Year:        2025,
		InvoiceDate: time.Now(),
		DueDate:     time.Now(),
		BaseRent:    10000,
		TotalAmount: 10000,
	}
	data, filename, err := service.InvoicePDF(context.Background(), invoice)

	require.NoError(t, err)
	assert.Equal(t, "invoice-7-December-2025.pdf", filename)
	assert.NotEmpty(t, data)
}

func TestDocumentService_ReceiptPDF(t *testing.T) {
	service := NewDocumentService(&config.Config{CompanyName: "Nyumba Rentals"})

	payment := &models.Payment{
		ID:              9,
		InvoiceID:       42,
		Amount:          5000,
		PaymentDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Method:          models.PaymentMethodMpesa,
		ReferenceNumber: "QFT61H8K2V",
		Invoice:         *sampleInvoice(),
	}

	data, filename, err := service.ReceiptPDF(context.Background(), payment)

	require.NoError(t, err)
	assert.Equal(t, "receipt-9.pdf", filename)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
