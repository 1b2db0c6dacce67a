// Package report renders tabular data as xlsx workbooks.
package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of an xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// Column is a sheet column.
type Column struct {
	Header string
	Width  float64
}

// Sheet is one worksheet: a bold header row followed by Rows.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Render writes sheet into a new workbook and returns its bytes.
func Render(sheet Sheet) (*bytes.Buffer, error) {
	if sheet.Name == "" {
		return nil, errors.New("report: sheet name is empty")
	}
	if len(sheet.Columns) == 0 {
		return nil, errors.New("report: sheet has no columns")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
		return nil, fmt.Errorf("report: rename sheet: %w", err)
	}

	headers := make([]any, len(sheet.Columns))
	for i, col := range sheet.Columns {
		headers[i] = col.Header
		if col.Width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet.Name, name, name, col.Width); err != nil {
			return nil, fmt.Errorf("report: column width: %w", err)
		}
	}

	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return nil, fmt.Errorf("report: header row: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("report: header style: %w", err)
	}
	if err := f.SetRowStyle(sheet.Name, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("report: header style: %w", err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return nil, fmt.Errorf("report: row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: write workbook: %w", err)
	}
	return buf, nil
}
