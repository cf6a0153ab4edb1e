package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "01-06-2025", want: "06/02/2025 00:00"},
		{input: "01/06/2025", want: "06/02/2025 00:00"},
		{input: "1-6-2025", want: "06/02/2025 00:00"},
		{input: "31/12/2025", want: "01/01/2026 00:00"},
		{input: "30-04-2025", want: "05/01/2025 00:00"},
		{input: "28/02/2024", want: "02/29/2024 00:00"},
		{input: "28/02/2025", want: "03/01/2025 00:00"},
		{input: "31-12-2025 ", want: "01/01/2026 00:00"},

		// Fallback: returned verbatim.
		{input: "31-04-2025", want: "31-04-2025"},
		{input: "29-02-2023", want: "29-02-2023"},
		{input: "00-01-2025", want: "00-01-2025"},
		{input: "01-13-2025", want: "01-13-2025"},
		{input: "2025-06-01", want: "2025-06-01"},
		{input: "01/06-2025", want: "01/06-2025"},
		{input: "01-06", want: "01-06"},
		{input: "aa-bb-cccc", want: "aa-bb-cccc"},
		{input: "fine contratto", want: "fine contratto"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExpiry(tt.input))
		})
	}
}

func TestParseExpiry_ReportsSuccess(t *testing.T) {
	_, ok := ParseExpiry("01-06-2025")
	assert.True(t, ok)

	out, ok := ParseExpiry("31-04-2025")
	assert.False(t, ok)
	assert.Equal(t, "31-04-2025", out)
}
