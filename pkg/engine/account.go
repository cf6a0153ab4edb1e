package engine

import (
	"adprov/pkg/schema"
)

// Account name length limits, suffix excluded.
const (
	InternalAccountLimit = 20
	ExternalAccountLimit = 16
	ExternalSuffix       = ".ext"
)

// AccountName derives the login identifier from the four name fragments.
// The first candidate that fits the limit wins:
//  1. given + given2 + "." + family + family2
//  2. initials of given and given2 + "." + family + family2
//  3. initials + "." + family, cut to the limit
//
// External accounts get a 16 character limit and the ".ext" suffix.
func AccountName(given, given2, family, family2 string, external bool) string {
	name, _ := accountName(given, given2, family, family2, external)
	return name
}

// accountName also reports whether the full-name candidate was abandoned.
func accountName(given, given2, family, family2 string, external bool) (string, bool) {
	n := schema.NormalizeFragment(given)
	sn := schema.NormalizeFragment(given2)
	c := schema.NormalizeFragment(family)
	sc := schema.NormalizeFragment(family2)

	limit, suffix := InternalAccountLimit, ""
	if external {
		limit, suffix = ExternalAccountLimit, ExternalSuffix
	}

	if full := n + sn + "." + c + sc; len(full) <= limit {
		return full + suffix, false
	}

	initials := firstChar(n) + firstChar(sn)
	if short := initials + "." + c + sc; len(short) <= limit {
		return short + suffix, true
	}

	return truncate(initials+"."+c, limit) + suffix, true
}

// firstChar returns the first character, or "" for an empty fragment.
// Fragments are ASCII after normalization.
func firstChar(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
