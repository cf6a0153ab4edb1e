package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseWarning represents a non-fatal issue encountered during parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed records alongside any warnings.
type ParseResult struct {
	Headers  []string            `json:"headers"`
	Records  []map[string]string `json:"records"`
	Warnings []ParseWarning      `json:"warnings"`
}

// StreamParse parses CSV bytes into a slice of maps (header -> value per row).
// It handles mismatched column counts (pad/truncate), empty files, and truncated rows.
func StreamParse(data []byte) ([]map[string]string, error) {
	result, err := StreamParseWithWarnings(data)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// StreamParseWithWarnings parses CSV bytes and returns both records and any warnings.
// The delimiter is sniffed from the header line so the semicolon-separated
// files produced by Italian-locale spreadsheets load as well.
func StreamParseWithWarnings(data []byte) (*ParseResult, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(decoded)
	// Ragged rows are padded or truncated below.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var rows [][]string
	var warnings []ParseWarning
	rowNum := 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		rows = append(rows, row)
	}

	result, err := RowsToRecords(headers, rows)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

// RowsToRecords keys each row by the trimmed header names. Ragged rows are
// padded or truncated to the header width with a warning; fully blank rows
// are skipped.
func RowsToRecords(headers []string, rows [][]string) (*ParseResult, error) {
	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = trimSpace(h)
	}

	headerCount := len(trimmed)
	records := make([]map[string]string, 0, len(rows))
	var warnings []ParseWarning

	for i, row := range rows {
		rowNum := i + 2 // header is row 1
		if isBlank(row) {
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(map[string]string, headerCount)
		for j, h := range trimmed {
			record[h] = row[j]
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file contains no data rows")
	}

	return &ParseResult{
		Headers:  trimmed,
		Records:  records,
		Warnings: warnings,
	}, nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// trimSpace trims leading/trailing whitespace and BOM characters.
func trimSpace(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}
