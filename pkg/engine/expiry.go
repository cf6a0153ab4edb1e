package engine

import (
	"strconv"
	"strings"
	"time"
)

// ExpiryLayout is the timestamp layout the AD import tool expects.
const ExpiryLayout = "01/02/2006 15:04"

// FormatExpiry turns a day-first date ("31-12-2025" or "31/12/2025") into
// the import timestamp of the following day, "01/01/2026 00:00". The extra
// day means the account stays valid through the typed date. Input that does
// not parse under either separator is returned unchanged so the anomaly
// stays visible in the record.
func FormatExpiry(text string) string {
	out, _ := ParseExpiry(text)
	return out
}

// ParseExpiry is FormatExpiry that also reports whether parsing succeeded.
func ParseExpiry(text string) (string, bool) {
	for _, sep := range []string{"-", "/"} {
		if d, ok := parseDayFirst(text, sep); ok {
			return d.AddDate(0, 0, 1).Format(ExpiryLayout), true
		}
	}
	return text, false
}

// parseDayFirst accepts exactly three integer parts and rejects dates that
// time.Date would silently normalise, such as 31 April.
func parseDayFirst(text, sep string) (time.Time, bool) {
	parts := strings.Split(text, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = v
	}
	day, month, year := nums[0], nums[1], nums[2]

	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}
