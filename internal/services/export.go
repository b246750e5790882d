package services

import (
	"fmt"
	"time"

	"github.com/epeers/krxdash/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

var exportHeader = []any{"Date", "Open", "High", "Low", "Close", "Volume"}

// ExportFileName is the download name of a company's price workbook
func ExportFileName(company string) string {
	return company + "_주가.xlsx"
}

// BuildWorkbook writes the price series into an xlsx workbook, one row per
// trading day, indexed by date.
func BuildWorkbook(prices []models.PriceData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range prices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		// excelize stores the wall clock of a UTC time, so keep the calendar day.
		day := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
		row := []any{day, p.Open, p.High, p.Low, p.Close, p.Volume}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(prices) > 0 {
		dateFmt := "yyyy-mm-dd"
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
		if err != nil {
			return nil, fmt.Errorf("failed to create date style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(1, len(prices)+1)
		if err := f.SetCellStyle(exportSheet, "A2", last, style); err != nil {
			return nil, fmt.Errorf("failed to style dates: %w", err)
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "A", 12); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
