package record

import "strings"

// Parse reads text written by Formatter back into rows of fields. An escape
// character takes the next character literally; a quote opens a quoted
// field only at the start of a field. Blank lines are skipped; Formatter
// writes a row holding one empty field as "" so it survives.
func Parse(text string) ([][]string, error) {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
		atStart  = true
	)
	endField := func() {
		row = append(row, field.String())
		field.Reset()
		atStart = true
	}

	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == Escape:
			if i+1 >= len(rs) {
				return nil, ErrDanglingEscape
			}
			i++
			field.WriteRune(rs[i])
			atStart = false
		case inQuotes:
			if r == Quote {
				inQuotes = false
			} else {
				field.WriteRune(r)
			}
		case r == Quote && atStart:
			inQuotes = true
			atStart = false
		case r == Delimiter:
			endField()
		case r == '\r' || r == '\n':
			if r == '\r' && i+1 < len(rs) && rs[i+1] == '\n' {
				i++
			}
			if atStart && len(row) == 0 {
				continue
			}
			endField()
			rows = append(rows, row)
			row = nil
		default:
			field.WriteRune(r)
			atStart = false
		}
	}
	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if !atStart || len(row) > 0 {
		endField()
		rows = append(rows, row)
	}
	return rows, nil
}

// Split parses a single row.
func Split(line string) ([]string, error) {
	rows, err := Parse(line)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{""}, nil
	}
	return rows[0], nil
}
