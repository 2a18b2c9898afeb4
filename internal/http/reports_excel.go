package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"topweb-backend/internal/domain"
)

var reportsExportHeader = []string{
	"Report ID",
	"Client ID",
	"Business Name",
	"Service Type",
	"Report Month",
	"Email Sent",
	"Email Sent At",
	"Created At",
}

type reportExportRow struct {
	Report       *domain.Report
	BusinessName string
}

// generateReportsExport builds the monthly report overview spreadsheet.
func generateReportsExport(month string, rows []reportExportRow) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here, WriteTo needs the file open.

	sheetName := fmt.Sprintf("Reports %s", month)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range reportsExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header cell: %w", err)
		}
	}

	for i, row := range rows {
		sentAt := ""
		if row.Report.EmailSentAt != nil {
			sentAt = row.Report.EmailSentAt.Format("2006-01-02 15:04:05")
		}
		values := []any{
			row.Report.ID,
			row.Report.ClientID,
			row.BusinessName,
			row.Report.ServiceType,
			row.Report.ReportMonth,
			row.Report.EmailSent,
			sentAt,
			row.Report.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
