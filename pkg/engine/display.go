package engine

import "strings"

// ExternalMarker is appended to display names of external personnel.
const ExternalMarker = " (esterno)"

// DisplayName joins the non-empty fragments as "Family Family2 Given Given2".
// Fragments are used as typed; only the account name is normalized.
func DisplayName(family, family2, given, given2 string, external bool) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{family, family2, given, given2} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, " ")
	if external {
		name += ExternalMarker
	}
	return name
}
