// Package record serialises import records in the delimited convention the
// AD import tool reads: fields are quoted only when they contain whitespace
// or belong to a configured column set, and quotes are escaped with a
// backslash instead of being doubled.
package record

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"adprov/pkg/schema"
)

var (
	// ErrColumnCount means a row does not match its schema width.
	ErrColumnCount = errors.New("field count does not match schema")
	// ErrUnterminatedQuote means a quoted field never closed.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrDanglingEscape means the input ended right after an escape character.
	ErrDanglingEscape = errors.New("escape character at end of input")
)

const (
	Delimiter      = ','
	Escape         = '\\'
	Quote          = '"'
	LineTerminator = "\r\n"
)

// Schema is a fixed, ordered column layout.
type Schema struct {
	Name    string
	Columns []string
}

var (
	UserSchema     = Schema{Name: "user", Columns: schema.UserRecordColumns}
	ComputerSchema = Schema{Name: "computer", Columns: schema.ComputerRecordColumns}
)

// Formatter renders rows. QuoteColumns lists the columns quoted even when
// their value has no whitespace; the set differs between forms.
type Formatter struct {
	quoteColumns map[string]bool
}

// NewFormatter returns a Formatter that always quotes the named columns.
func NewFormatter(quoteColumns []string) *Formatter {
	f := &Formatter{quoteColumns: make(map[string]bool, len(quoteColumns))}
	for _, c := range quoteColumns {
		f.quoteColumns[c] = true
	}
	return f
}

// FormatHeader renders the column names of s. Header cells follow the
// content rule only.
func (f *Formatter) FormatHeader(s Schema) string {
	cells := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cells[i] = formatField(c, false)
	}
	return joinCells(cells)
}

// FormatRow renders one data row of s, without line terminator.
func (f *Formatter) FormatRow(s Schema, fields []string) (string, error) {
	if len(fields) != len(s.Columns) {
		return "", fmt.Errorf("%w: %s schema has %d columns, got %d", ErrColumnCount, s.Name, len(s.Columns), len(fields))
	}
	cells := make([]string, len(fields))
	for i, v := range fields {
		cells[i] = formatField(v, f.quoteColumns[s.Columns[i]])
	}
	return joinCells(cells), nil
}

// joinCells writes a lone empty field as "" so the line is not read back
// as blank.
func joinCells(cells []string) string {
	if len(cells) == 1 && cells[0] == "" {
		return string(Quote) + string(Quote)
	}
	return strings.Join(cells, string(Delimiter))
}

// Write emits the header followed by exactly one data row.
func (f *Formatter) Write(w io.Writer, s Schema, fields []string) error {
	row, err := f.FormatRow(s, fields)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, f.FormatHeader(s)+LineTerminator+row+LineTerminator); err != nil {
		return fmt.Errorf("write %s record: %w", s.Name, err)
	}
	return nil
}

// Render is Write into a string.
func (f *Formatter) Render(s Schema, fields []string) (string, error) {
	var b strings.Builder
	if err := f.Write(&b, s, fields); err != nil {
		return "", err
	}
	return b.String(), nil
}

// NeedsQuotes reports whether a value is quoted by content alone.
func NeedsQuotes(v string) bool {
	return strings.ContainsAny(v, " \t")
}

func formatField(v string, force bool) string {
	quoted := force || NeedsQuotes(v)

	var b strings.Builder
	b.Grow(len(v) + 2)
	if quoted {
		b.WriteRune(Quote)
	}
	for _, r := range v {
		switch {
		case r == Escape, r == Quote, r == '\r', r == '\n':
			b.WriteRune(Escape)
		case r == Delimiter && !quoted:
			b.WriteRune(Escape)
		}
		b.WriteRune(r)
	}
	if quoted {
		b.WriteRune(Quote)
	}
	return b.String()
}
