package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/repository"
)

// PaymentService handles payment recording and queries
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

// PaymentInput holds the fields to record a payment
type PaymentInput struct {
	InvoiceID       uint      `json:"invoice_id" binding:"required"`
	Amount          float64   `json:"amount" binding:"required,gt=0"`
	PaymentDate     time.Time `json:"payment_date" binding:"required"`
	Method          string    `json:"method" binding:"required"`
	ReferenceNumber string    `json:"reference_number"`
	Notes           string    `json:"notes"`
}

// Record creates a payment against an invoice, applying it to the balance
// and recomputing the derived status in one transaction.
func (s *PaymentService) Record(ctx context.Context, landlordID uint, recordedBy *models.User, input PaymentInput) (*models.Payment, *models.Invoice, error) {
	if input.Amount <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if !models.IsValidPaymentMethod(input.Method) {
		return nil, nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, input.Method)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, landlordID, input.InvoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	reference := strings.TrimSpace(input.ReferenceNumber)
	if reference == "" {
		reference = generatePaymentReference()
	}

	payment := &models.Payment{
		Amount:          input.Amount,
		PaymentDate:     input.PaymentDate,
		Method:          input.Method,
		ReferenceNumber: reference,
		Notes:           input.Notes,
	}
	if recordedBy != nil {
		payment.RecordedByID = &recordedBy.ID
	}

	if err := s.invoiceRepo.RecordPayment(ctx, invoice, payment, today()); err != nil {
		return nil, nil, err
	}

	payment.Invoice = *invoice
	return payment, invoice, nil
}

// generatePaymentReference builds a short receipt reference for payments
// recorded without one.
func generatePaymentReference() string {
	id := uuid.New().String()
	return "PAY-" + strings.ToUpper(id[:8])
}

// Get returns one payment scoped to the landlord
func (s *PaymentService) Get(ctx context.Context, landlordID, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, landlordID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// List returns the landlord's payments
func (s *PaymentService) List(ctx context.Context, landlordID uint, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, landlordID, query)
}

// ListForTenant returns a tenant's own payments
func (s *PaymentService) ListForTenant(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.paymentRepo.ListByTenant(ctx, tenantID, query)
}

// Balances computes the running balance after each payment against its
// invoice, by created_at order. The result maps payment id to balance.
func (s *PaymentService) Balances(ctx context.Context, payments []models.Payment) (map[uint]float64, error) {
	balances := make(map[uint]float64, len(payments))
	seen := make(map[uint]bool)

	for i := range payments {
		invoiceID := payments[i].InvoiceID
		if seen[invoiceID] {
			continue
		}
		seen[invoiceID] = true

		total := payments[i].Invoice.TotalAmount
		history, err := s.paymentRepo.ListByInvoice(ctx, invoiceID)
		if err != nil {
			return nil, err
		}
		for j, balance := range models.BalanceAfter(total, history) {
			balances[history[j].ID] = balance
		}
	}
	return balances, nil
}
