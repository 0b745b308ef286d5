package models

import (
	"time"
)

// Payment represents money received against an invoice
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	InvoiceID       uint      `gorm:"not null;index" json:"invoice_id"`
	Amount          float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate     time.Time `gorm:"type:date;not null;index" json:"payment_date"`
	Method          string    `gorm:"default:cash;not null;index" json:"method"`
	ReferenceNumber string    `json:"reference_number"`
	Notes           string    `json:"notes"`
	RecordedByID    *uint     `gorm:"index" json:"recorded_by_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Associations
	Invoice    Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	RecordedBy *User   `gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment method constants
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMpesa        = "mpesa"
	PaymentMethodCheque       = "cheque"
	PaymentMethodOther        = "other"
)

// IsValidPaymentMethod reports whether m is a recognized payment method.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMpesa,
		PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID              uint      `json:"id"`
	InvoiceID       uint      `json:"invoice_id"`
	InvoicePeriod   string    `json:"invoice_period,omitempty"`
	UnitNumber      string    `json:"unit_number,omitempty"`
	ApartmentName   string    `json:"apartment_name,omitempty"`
	TenantName      string    `json:"tenant_name,omitempty"`
	Amount          float64   `json:"amount"`
	PaymentDate     time.Time `json:"payment_date"`
	Method          string    `json:"method"`
	ReferenceNumber string    `json:"reference_number"`
	Notes           string    `json:"notes"`
	RecordedBy      string    `json:"recorded_by,omitempty"`
	BalanceAfter    float64   `json:"balance_after"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse. BalanceAfter is the running
// invoice balance after this payment in created_at order, computed by the
// caller from the invoice's payment history.
func (p *Payment) ToResponse(balanceAfter float64) PaymentResponse {
	resp := PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		BalanceAfter:    balanceAfter,
		CreatedAt:       p.CreatedAt,
	}

	if p.Invoice.ID != 0 {
		resp.InvoicePeriod = p.Invoice.PeriodLabel()
		if p.Invoice.Unit.ID != 0 {
			resp.UnitNumber = p.Invoice.Unit.UnitNumber
			if p.Invoice.Unit.Apartment.ID != 0 {
				resp.ApartmentName = p.Invoice.Unit.Apartment.Name
			}
		}
		if p.Invoice.Tenant.ID != 0 && p.Invoice.Tenant.User.ID != 0 {
			resp.TenantName = p.Invoice.Tenant.User.FullName()
		}
	}

	if p.RecordedBy != nil && p.RecordedBy.ID != 0 {
		resp.RecordedBy = p.RecordedBy.FullName()
	}

	return resp
}

// BalanceAfter computes the running balance of each payment against the
// invoice total, floored at zero. Payments must be in created_at order; the
// returned slice is parallel to the input.
func BalanceAfter(totalAmount float64, payments []Payment) []float64 {
	balances := make([]float64, len(payments))
	remaining := totalAmount
	for i := range payments {
		remaining -= payments[i].Amount
		if remaining < 0 {
			remaining = 0
		}
		balances[i] = remaining
	}
	return balances
}
