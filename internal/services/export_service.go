package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the payment report as CSV or XLSX
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

var paymentReportColumns = []string{
	"Date", "Reference", "Tenant", "Apartment", "Unit", "Invoice Period",
	"Method", "Amount (KES)", "Balance After (KES)",
}

// ExportCSV renders the payment report as CSV
func (s *ExportService) ExportCSV(ctx context.Context, report *PaymentReport) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Payment Report", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write(paymentReportColumns)

	for _, p := range report.Payments {
		_ = writer.Write([]string{
			p.PaymentDate.Format("2006-01-02"),
			p.ReferenceNumber,
			p.TenantName,
			p.ApartmentName,
			p.UnitNumber,
			p.InvoicePeriod,
			p.Method,
			fmt.Sprintf("%.2f", p.Amount),
			fmt.Sprintf("%.2f", p.BalanceAfter),
		})
	}

	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Total", fmt.Sprintf("%.2f", report.Total)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payment_report_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX renders the payment report as an Excel workbook
func (s *ExportService) ExportXLSX(ctx context.Context, report *PaymentReport) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payments"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Payment Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheet, "B1", time.Now().Format("2006-01-02 15:04"))

	for i, col := range paymentReportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, col)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 4
	for _, p := range report.Payments {
		values := []interface{}{
			p.PaymentDate.Format("2006-01-02"),
			p.ReferenceNumber,
			p.TenantName,
			p.ApartmentName,
			p.UnitNumber,
			p.InvoicePeriod,
			p.Method,
			p.Amount,
			p.BalanceAfter,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	totalCell, _ := excelize.CoordinatesToCellName(1, row)
	amountCell, _ := excelize.CoordinatesToCellName(8, row)
	_ = f.SetCellValue(sheet, totalCell, "Total")
	_ = f.SetCellStyle(sheet, totalCell, totalCell, headerStyle)
	_ = f.SetCellValue(sheet, amountCell, report.Total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payment_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
