package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when the requested sheet is absent.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadWorkbook reads one sheet of an xlsx workbook into header-keyed
// records. The first non-blank row is the header. An empty sheet name
// selects the first sheet.
func ReadWorkbook(r io.Reader, sheet string) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		if list := f.GetSheetList(); len(list) > 0 {
			sheet = list[0]
		}
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrSheetNotFound, sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet %q: no header row found", sheet)
	}

	return RowsToRecords(rows[0], rows[1:])
}

// SheetNames lists the sheets of an xlsx workbook.
func SheetNames(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// IsWorkbook reports whether data looks like an xlsx (zip) container.
func IsWorkbook(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// ParseTable dispatches on content: xlsx workbooks are read through
// ReadWorkbook, anything else as delimited text. sheet is ignored for CSV.
func ParseTable(data []byte, sheet string) (*ParseResult, error) {
	if IsWorkbook(data) {
		return ReadWorkbook(bytes.NewReader(data), sheet)
	}
	return StreamParseWithWarnings(data)
}
