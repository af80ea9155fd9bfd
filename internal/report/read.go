// Package report moves tables in and out of the spreadsheet formats the
// advertising console exports and accepts: CSV and XLSX.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ignite/ppc-optimizer/internal/dataset"
	"github.com/ignite/ppc-optimizer/internal/domain"
)

var (
	// ErrUnsupportedFileType is returned for anything but .csv, .xlsx and .xls.
	ErrUnsupportedFileType = errors.New("unsupported file type: please upload CSV or Excel files")
	// ErrEmptyFile is returned when a file has no header row.
	ErrEmptyFile = errors.New("file has no header row")
)

// sheetPreference lists the sheet names tried, in order, before falling back
// to the first sheet of a workbook.
var sheetPreference = []string{domain.SheetSponsoredProduct, "Sponsored Products"}

const utf8BOM = "\ufeff"

// Read parses content according to the extension of filename.
func Read(content []byte, filename string) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(content)
	case ".xlsx", ".xls":
		return readXLSX(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, filename)
	}
}

func readCSV(content []byte) (*dataset.Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte(utf8BOM))))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return build(records)
}

func readXLSX(content []byte) (*dataset.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return build(rows)
}

func pickSheet(sheets []string) string {
	for _, want := range sheetPreference {
		for _, s := range sheets {
			if s == want {
				return s
			}
		}
	}
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}

// build takes the first record as the header and drops blank records.
func build(records [][]string) (*dataset.Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	header := records[0]
	for i := range header {
		header[i] = strings.TrimPrefix(header[i], utf8BOM)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return dataset.New(header, rows), nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
