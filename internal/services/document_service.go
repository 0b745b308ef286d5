package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jmwaura/nyumba-api/internal/config"
	"github.com/jmwaura/nyumba-api/internal/models"
)

// DocumentService renders invoice and receipt PDFs
type DocumentService struct {
	cfg *config.Config
}

// NewDocumentService creates a new document service
func NewDocumentService(cfg *config.Config) *DocumentService {
	return &DocumentService{cfg: cfg}
}

const currency = "KES"

// InvoicePDF renders the invoice as an A4 PDF and returns the bytes with the
// download filename.
func (s *DocumentService) InvoicePDF(ctx context.Context, invoice *models.Invoice) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header block
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, s.cfg.CompanyName)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if invoice.Unit.Apartment.ID != 0 {
		pdf.Cell(120, 6, invoice.Unit.Apartment.Name)
		pdf.CellFormat(0, 6, fmt.Sprintf("INV-%05d", invoice.ID), "", 1, "R", false, 0, "")
		pdf.Cell(120, 6, invoice.Unit.Apartment.Address)
		pdf.CellFormat(0, 6, invoice.PeriodLabel(), "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(0, 6, fmt.Sprintf("INV-%05d", invoice.ID), "", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	// Billed-to block
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(95, 6, "BILLED TO")
	pdf.Cell(0, 6, "DETAILS")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	tenantName := ""
	if invoice.Tenant.User.ID != 0 {
		tenantName = invoice.Tenant.User.FullName()
	}
	pdf.Cell(95, 6, tenantName)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice date: %s", invoice.InvoiceDate.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Unit %s", invoice.Unit.UnitNumber))
	pdf.Cell(0, 6, fmt.Sprintf("Due date: %s", invoice.DueDate.Format("02 Jan 2006")))
	pdf.Ln(6)
	if invoice.Tenant.User.Phone != "" {
		pdf.Cell(95, 6, invoice.Tenant.User.Phone)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Line item table, base rent always first
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(140, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("Amount (%s)", currency), "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(140, 8, "Base Rent", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", invoice.BaseRent), "1", 1, "R", false, 0, "")
	for _, item := range invoice.LineItems {
		pdf.CellFormat(140, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%s %.2f", currency, invoice.TotalAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(140, 8, "Paid", "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%s %.2f", currency, invoice.AmountPaid), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 8, "Balance Due", "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%s %.2f", currency, invoice.RemainingBalance()), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	if invoice.Notes != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Notes")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, invoice.Notes, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Thank you for your tenancy.")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	filename := fmt.Sprintf("invoice-%d-%s-%d.pdf", invoice.ID, time.Month(invoice.Month).String(), invoice.Year)
	return buf.Bytes(), filename, nil
}

// ReceiptPDF renders a payment receipt as an A4 PDF and returns the bytes
// with the download filename.
func (s *DocumentService) ReceiptPDF(ctx context.Context, payment *models.Payment) ([]byte, string, error) {
	invoice := payment.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, s.cfg.CompanyName)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(120, 6, fmt.Sprintf("Receipt no: RCT-%05d", payment.ID))
	pdf.SetTextColor(0, 140, 0)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "SUCCESS", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", payment.PaymentDate.Format("02 Jan 2006")))
	pdf.Ln(10)

	tenantName := ""
	if invoice.Tenant.User.ID != 0 {
		tenantName = invoice.Tenant.User.FullName()
	}
	pdf.Cell(0, 6, fmt.Sprintf("Received from: %s", tenantName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("For: %s, Unit %s (%s)", invoice.PeriodLabel(), invoice.Unit.UnitNumber, invoice.Unit.Apartment.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Method: %s    Reference: %s", payment.Method, payment.ReferenceNumber))
	pdf.Ln(10)

	// Amount box
	pdf.SetFillColor(240, 248, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 8, "AMOUNT PAID", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s %.2f", currency, payment.Amount), "1", 1, "C", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, "Invoice Total:")
	pdf.CellFormat(0, 6, fmt.Sprintf("%s %.2f", currency, invoice.TotalAmount), "", 1, "R", false, 0, "")
	pdf.Cell(95, 6, "Total Paid:")
	pdf.CellFormat(0, 6, fmt.Sprintf("%s %.2f", currency, invoice.AmountPaid), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(95, 6, "Remaining Balance:")
	pdf.CellFormat(0, 6, fmt.Sprintf("%s %.2f", currency, invoice.RemainingBalance()), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "This is an official payment receipt. Please retain for your records.")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("failed to render receipt pdf: %w", err)
	}

	filename := fmt.Sprintf("receipt-%d.pdf", payment.ID)
	return buf.Bytes(), filename, nil
}
