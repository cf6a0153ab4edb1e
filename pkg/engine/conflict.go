package engine

import (
	"strings"

	"adprov/pkg/schema"
)

// FieldConflict records a field where a clashing directory account differs
// from the person being provisioned. A differing display name on an account
// clash usually means a homonym already owns the login.
type FieldConflict struct {
	Field         string `json:"field"`
	ExistingValue string `json:"existingValue"`
	NewValue      string `json:"newValue"`
	Resolution    string `json:"resolution"` // always "manual_review"
}

// DetectConflicts compares displayName and department case-insensitively.
// Empty values on either side are not compared.
func DetectConflicts(existing *schema.DirectoryEntry, displayName, department string) []FieldConflict {
	var conflicts []FieldConflict

	displayName = strings.TrimSuffix(displayName, ExternalMarker)
	existingName := strings.TrimSuffix(existing.DisplayName, ExternalMarker)
	if displayName != "" && existingName != "" && !strings.EqualFold(existingName, displayName) {
		conflicts = append(conflicts, FieldConflict{
			Field:         "displayName",
			ExistingValue: existing.DisplayName,
			NewValue:      displayName,
			Resolution:    "manual_review",
		})
	}

	if department != "" && existing.Department != "" && !strings.EqualFold(existing.Department, department) {
		conflicts = append(conflicts, FieldConflict{
			Field:         "department",
			ExistingValue: existing.Department,
			NewValue:      department,
			Resolution:    "manual_review",
		})
	}

	return conflicts
}
