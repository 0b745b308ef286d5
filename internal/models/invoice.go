package models

import (
	"fmt"
	"time"
)

// Invoice represents a monthly rent invoice for a unit
type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UnitID      uint      `gorm:"not null;uniqueIndex:idx_invoices_unit_period" json:"unit_id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	LandlordID  uint      `gorm:"not null;index" json:"landlord_id"`
	Month       int       `gorm:"not null;uniqueIndex:idx_invoices_unit_period" json:"month"`
	Year        int       `gorm:"not null;uniqueIndex:idx_invoices_unit_period" json:"year"`
	InvoiceDate time.Time `gorm:"type:date;not null" json:"invoice_date"`
	DueDate     time.Time `gorm:"type:date;not null;index" json:"due_date"`
	BaseRent    float64   `gorm:"type:decimal(12,2);not null" json:"base_rent"`
	TotalAmount float64   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	AmountPaid  float64   `gorm:"type:decimal(12,2);default:0" json:"amount_paid"`
	Status      string    `gorm:"default:unpaid;not null;index" json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Unit      Unit              `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Tenant    TenantProfile     `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Landlord  User              `gorm:"foreignKey:LandlordID" json:"-"`
	LineItems []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"line_items,omitempty"`
	Payments  []Payment         `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// Invoice status constants
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// IsValidInvoiceStatus reports whether s is a recognized invoice status.
func IsValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// RefreshStatus recomputes the derived status from amounts and due date.
// A paid invoice is terminal and never leaves the paid state.
func (i *Invoice) RefreshStatus(today time.Time) {
	if i.Status == InvoiceStatusPaid {
		return
	}

	switch {
	case i.AmountPaid >= i.TotalAmount:
		i.Status = InvoiceStatusPaid
	case i.DueDate.Before(today):
		i.Status = InvoiceStatusOverdue
	case i.AmountPaid > 0:
		i.Status = InvoiceStatusPartial
	default:
		i.Status = InvoiceStatusUnpaid
	}
}

// RemainingBalance returns the unpaid remainder, floored at zero.
func (i *Invoice) RemainingBalance() float64 {
	if remaining := i.TotalAmount - i.AmountPaid; remaining > 0 {
		return remaining
	}
	return 0
}

// Overpayment returns the amount paid above the total, floored at zero.
func (i *Invoice) Overpayment() float64 {
	if over := i.AmountPaid - i.TotalAmount; over > 0 {
		return over
	}
	return 0
}

// DaysOverdue returns whole days past the due date for non-paid invoices.
func (i *Invoice) DaysOverdue(today time.Time) int {
	if i.Status == InvoiceStatusPaid || !i.DueDate.Before(today) {
		return 0
	}
	return int(today.Sub(i.DueDate).Hours() / 24)
}

// PeriodLabel returns the invoice period as "January 2026".
func (i *Invoice) PeriodLabel() string {
	return fmt.Sprintf("%s %d", time.Month(i.Month).String(), i.Year)
}

// InvoiceLineItem is an extra charge attached to an invoice
type InvoiceLineItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceID   uint      `gorm:"not null;index" json:"invoice_id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Order       int       `gorm:"column:item_order;default:0" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for InvoiceLineItem
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// InvoiceLineItemResponse is the JSON response format for line items
type InvoiceLineItemResponse struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Order       int     `json:"order"`
}

// InvoiceResponse is the JSON response format for invoices
type InvoiceResponse struct {
	ID               uint                      `json:"id"`
	UnitID           uint                      `json:"unit_id"`
	UnitNumber       string                    `json:"unit_number,omitempty"`
	ApartmentID      uint                      `json:"apartment_id,omitempty"`
	ApartmentName    string                    `json:"apartment_name,omitempty"`
	TenantID         uint                      `json:"tenant_id"`
	TenantName       string                    `json:"tenant_name,omitempty"`
	Month            int                       `json:"month"`
	Year             int                       `json:"year"`
	Period           string                    `json:"period"`
	InvoiceDate      time.Time                 `json:"invoice_date"`
	DueDate          time.Time                 `json:"due_date"`
	BaseRent         float64                   `json:"base_rent"`
	TotalAmount      float64                   `json:"total_amount"`
	AmountPaid       float64                   `json:"amount_paid"`
	RemainingBalance float64                   `json:"remaining_balance"`
	Overpayment      float64                   `json:"overpayment"`
	Status           string                    `json:"status"`
	Notes            string                    `json:"notes"`
	LineItems        []InvoiceLineItemResponse `json:"line_items"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// ToResponse converts Invoice to InvoiceResponse
func (i *Invoice) ToResponse() InvoiceResponse {
	resp := InvoiceResponse{
		ID:               i.ID,
		UnitID:           i.UnitID,
		TenantID:         i.TenantID,
		Month:            i.Month,
		Year:             i.Year,
		Period:           i.PeriodLabel(),
		InvoiceDate:      i.InvoiceDate,
		DueDate:          i.DueDate,
		BaseRent:         i.BaseRent,
		TotalAmount:      i.TotalAmount,
		AmountPaid:       i.AmountPaid,
		RemainingBalance: i.RemainingBalance(),
		Overpayment:      i.Overpayment(),
		Status:           i.Status,
		Notes:            i.Notes,
		LineItems:        make([]InvoiceLineItemResponse, 0, len(i.LineItems)),
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}

	if i.Unit.ID != 0 {
		resp.UnitNumber = i.Unit.UnitNumber
		resp.ApartmentID = i.Unit.ApartmentID
		if i.Unit.Apartment.ID != 0 {
			resp.ApartmentName = i.Unit.Apartment.Name
		}
	}
	if i.Tenant.ID != 0 && i.Tenant.User.ID != 0 {
		resp.TenantName = i.Tenant.User.FullName()
	}

	for _, item := range i.LineItems {
		resp.LineItems = append(resp.LineItems, InvoiceLineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Amount:      item.Amount,
			Order:       item.Order,
		})
	}

	return resp
}
