package schema

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pre-compiled regular expressions for name normalization.
var (
	middleInitialRe = regexp.MustCompile(`\b[a-z]\.?\s`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Known name suffixes to strip during normalization.
var nameSuffixes = []string{"jr", "sr", "ii", "iii", "iv", "v", "phd", "md", "dds", "esq", "cpa"}

// NormalizeFragment reduces a single name fragment to the form used inside
// account names:
//  1. Strip diacritics (NFD decompose, drop combining marks)
//  2. Drop anything outside basic Latin, apostrophes and whitespace
//  3. Lowercase
//
// "D'Angelò" becomes "dangelo" and "De Luca" becomes "deluca".
func NormalizeFragment(fragment string) string {
	if fragment == "" {
		return ""
	}

	s := stripDiacritics(fragment)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > unicode.MaxASCII || r == '\'' || unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NormalizeName builds the comparison key for a full display name:
//  1. ToLower, TrimSpace
//  2. Strip diacritics
//  3. Strip suffixes (Jr, Sr, II, III, IV, V, PhD, MD, DDS, Esq, CPA)
//  4. Strip middle initials
//  5. Collapse whitespace
//  6. Handle "Last, First" -> "first last"
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return s
	}

	s = stripDiacritics(s)

	for _, suffix := range nameSuffixes {
		s = strings.TrimSuffix(s, " "+suffix)
		s = strings.TrimSuffix(s, ","+suffix)
	}

	s = middleInitialRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")

	if parts := strings.SplitN(s, ",", 2); len(parts) == 2 {
		first := strings.TrimSpace(parts[1])
		last := strings.TrimSpace(parts[0])
		if first != "" && last != "" {
			s = first + " " + last
		}
	}

	return strings.TrimSpace(s)
}

// stripDiacritics removes diacritical marks (accents) from a string.
// The result is recomposed so characters without a base form survive intact.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// NormalizeDirectory transforms raw directory-export rows into DirectoryEntry
// values using the provided column mapping.
func NormalizeDirectory(records []map[string]string, columnMapJSON string) []*DirectoryEntry {
	mapping := parseColumnMapping(columnMapJSON)
	result := make([]*DirectoryEntry, 0, len(records))

	for i, record := range records {
		mapped := applyMapping(record, mapping)

		displayName := strings.TrimSpace(mapped["displayName"])
		entry := &DirectoryEntry{
			AccountName:    strings.ToLower(strings.TrimSpace(mapped["accountName"])),
			Email:          strings.ToLower(strings.TrimSpace(mapped["email"])),
			EmployeeID:     strings.TrimSpace(mapped["employeeId"]),
			DisplayName:    displayName,
			NormalizedName: NormalizeName(displayName),
			Department:     strings.TrimSpace(mapped["department"]),
			SourceRow:      i + 1,
		}
		result = append(result, entry)
	}

	return result
}

// parseColumnMapping parses the column mapping JSON. If the JSON is empty or invalid,
// it falls back to an empty mapping (fields will be inferred from header names).
func parseColumnMapping(columnMapJSON string) *ColumnMapping {
	if columnMapJSON == "" {
		return &ColumnMapping{
			Direct: make(map[string]string),
		}
	}

	var mapping ColumnMapping
	if err := json.Unmarshal([]byte(columnMapJSON), &mapping); err != nil {
		return &ColumnMapping{
			Direct: make(map[string]string),
		}
	}

	if mapping.Direct == nil {
		mapping.Direct = make(map[string]string)
	}

	return &mapping
}

// applyMapping applies column mappings (direct + concat transforms) to a raw
// record and returns a map of targetField -> value.
func applyMapping(record map[string]string, mapping *ColumnMapping) map[string]string {
	result := make(map[string]string)

	if mapping == nil || len(mapping.Direct) == 0 && len(mapping.Concat) == 0 {
		// No explicit mapping: resolve headers through the known table,
		// then keep raw names for anything left over.
		for k, v := range record {
			if target, ok := HeaderMappings[normalizeHeader(k)]; ok {
				if _, exists := result[target]; !exists {
					result[target] = v
				}
			}
		}
		for k, v := range record {
			if _, exists := result[k]; !exists {
				result[k] = v
			}
		}
		return result
	}

	for sourceCol, targetField := range mapping.Direct {
		if val, ok := record[sourceCol]; ok {
			result[targetField] = val
		}
	}

	for _, ct := range mapping.Concat {
		parts := make([]string, 0, len(ct.SourceColumns))
		for _, col := range ct.SourceColumns {
			if val, ok := record[col]; ok && val != "" {
				parts = append(parts, val)
			}
		}
		if len(parts) > 0 {
			result[ct.TargetField] = strings.Join(parts, ct.Separator)
		}
	}

	return result
}
