package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ignite/ppc-optimizer/internal/bulksheet"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
)

// WriteXLSX renders the sheet as a single-sheet workbook. Numbers stay
// numeric; missing cells are left empty.
func WriteXLSX(sheet bulksheet.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := setRow(f, name, 1, header); err != nil {
		return nil, err
	}

	for i, r := range sheet.Rows {
		values := make([]any, len(sheet.Headers))
		for j, h := range sheet.Headers {
			if v, ok := r[h]; ok && v != nil {
				values[j] = v
			} else {
				values[j] = ""
			}
		}
		if err := setRow(f, name, i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// WriteCSV renders the sheet as CSV with a header line.
func WriteCSV(sheet bulksheet.Sheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(sheet.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(sheet.Cells()); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}
