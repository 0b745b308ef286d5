package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInvoice_RefreshStatus(t *testing.T) {
	today := date(2026, time.March, 15)

	tests := []struct {
		name    string
		invoice Invoice
		want    string
	}{
		{
			name:    "nothing paid before due date",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 0, DueDate: date(2026, time.March, 31), Status: InvoiceStatusUnpaid},
			want:    InvoiceStatusUnpaid,
		},
		{
			name:    "partial payment before due date",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 5000, DueDate: date(2026, time.March, 31), Status: InvoiceStatusUnpaid},
			want:    InvoiceStatusPartial,
		},
		{
			name:    "paid in full",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 15000, DueDate: date(2026, time.March, 31), Status: InvoiceStatusPartial},
			want:    InvoiceStatusPaid,
		},
		{
			name:    "overpaid",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 16000, DueDate: date(2026, time.March, 31), Status: InvoiceStatusPartial},
			want:    InvoiceStatusPaid,
		},
		{
			name:    "unpaid past due date",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 0, DueDate: date(2026, time.March, 1), Status: InvoiceStatusUnpaid},
			want:    InvoiceStatusOverdue,
		},
		{
			name:    "partial past due date is overdue not partial",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 5000, DueDate: date(2026, time.March, 1), Status: InvoiceStatusPartial},
			want:    InvoiceStatusOverdue,
		},
		{
			name:    "full payment wins over past due date",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 15000, DueDate: date(2026, time.March, 1), Status: InvoiceStatusOverdue},
			want:    InvoiceStatusPaid,
		},
		{
			name:    "due today is not overdue",
			invoice: Invoice{TotalAmount: 15000, AmountPaid: 0, DueDate: today, Status: InvoiceStatusUnpaid},
			want:    InvoiceStatusUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.invoice.RefreshStatus(today)
			assert.Equal(t, tt.want, tt.invoice.Status)
		})
	}
}

func TestInvoice_RefreshStatus_PaidIsTerminal(t *testing.T) {
	invoice := Invoice{
		TotalAmount: 15000,
		AmountPaid:  15000,
		DueDate:     date(2026, time.January, 31),
		Status:      InvoiceStatusPaid,
	}

	// Raising the total later must not reopen a settled invoice
	invoice.TotalAmount = 20000
	invoice.RefreshStatus(date(2026, time.March, 15))
	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
}

func TestInvoice_Balances(t *testing.T) {
	invoice := Invoice{TotalAmount: 15000, AmountPaid: 5000}
	assert.Equal(t, 10000.0, invoice.RemainingBalance())
	assert.Equal(t, 0.0, invoice.Overpayment())

	invoice.AmountPaid = 16000
	assert.Equal(t, 0.0, invoice.RemainingBalance())
	assert.Equal(t, 1000.0, invoice.Overpayment())
}

func TestInvoice_DaysOverdue(t *testing.T) {
	today := date(2026, time.March, 15)

	invoice := Invoice{Status: InvoiceStatusOverdue, DueDate: date(2026, time.March, 5)}
	assert.Equal(t, 10, invoice.DaysOverdue(today))

	invoice = Invoice{Status: InvoiceStatusPaid, DueDate: date(2026, time.March, 5)}
	assert.Equal(t, 0, invoice.DaysOverdue(today))

	invoice = Invoice{Status: InvoiceStatusUnpaid, DueDate: date(2026, time.March, 31)}
	assert.Equal(t, 0, invoice.DaysOverdue(today))
}

func TestInvoice_PeriodLabel(t *testing.T) {
	invoice := Invoice{Month: 3, Year: 2026}
	assert.Equal(t, "March 2026", invoice.PeriodLabel())
}

func TestBalanceAfter(t *testing.T) {
	payments := []Payment{
		{ID: 1, Amount: 2000},
		{ID: 2, Amount: 3000},
	}

	balances := BalanceAfter(5000, payments)
	assert.Equal(t, []float64{3000, 0}, balances)
}

func TestBalanceAfter_Overpayment(t *testing.T) {
	payments := []Payment{
		{ID: 1, Amount: 6000},
	}

	balances := BalanceAfter(5000, payments)
	assert.Equal(t, []float64{0}, balances, "the balance never goes negative")

	payments = []Payment{
		{ID: 1, Amount: 6000},
		{ID: 2, Amount: 500},
	}
	balances = BalanceAfter(5000, payments)
	assert.Equal(t, []float64{0, 0}, balances)
}

func TestIsValidInvoiceStatus(t *testing.T) {
	assert.True(t, IsValidInvoiceStatus(InvoiceStatusUnpaid))
	assert.True(t, IsValidInvoiceStatus(InvoiceStatusOverdue))
	assert.False(t, IsValidInvoiceStatus("cancelled"))
}
