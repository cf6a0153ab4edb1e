package schema

import (
	"strings"
)

// HeaderMappings maps normalized header names to canonical field names. It
// covers both directory exports and the configuration workbook columns.
var HeaderMappings = map[string]string{
	// Account
	"samaccountname": "accountName",
	"accountname":    "accountName",
	"account":        "accountName",
	"username":       "accountName",
	"login":          "accountName",
	"utenza":         "accountName",
	"uid":            "accountName",

	// Email
	"email":             "email",
	"emailaddress":      "email",
	"mail":              "email",
	"userprincipalname": "email",
	"upn":               "email",

	// Employee ID
	"employeeid":     "employeeId",
	"employeenumber": "employeeId",
	"matricola":      "employeeId",

	// Display Name
	"displayname": "displayName",
	"fullname":    "displayName",
	"name":        "displayName",
	"cn":          "displayName",
	"nominativo":  "displayName",

	// Name parts, kept apart so they never fall through to displayName
	"givenname": "givenName",
	"firstname": "givenName",
	"nome":      "givenName",
	"surname":   "surname",
	"sn":        "surname",
	"lastname":  "surname",
	"cognome":   "surname",

	// Department
	"department": "department",
	"dept":       "department",
	"division":   "department",
	"divisione":  "department",

	// Configuration workbook
	"section":          "section",
	"sezione":          "section",
	"keyapp":           "key",
	"key":              "key",
	"app":              "key",
	"labelgruppivalue": "value",
	"value":            "value",
	"valore":           "value",
	"gruppi":           "value",
	"label":            "value",
}

// substringMappings maps substrings to canonical field names for fuzzy inference.
// Order matters: more specific substrings should come before generic ones.
var substringMappings = []struct {
	Substring string
	Target    string
}{
	{"samaccount", "accountName"},
	{"principal", "email"},
	{"mail", "email"},
	{"employee", "employeeId"},
	{"displayname", "displayName"},
	{"fullname", "displayName"},
	{"department", "department"},
	{"dept", "department"},
	{"section", "section"},
	{"keyapp", "key"},
	{"value", "value"},
	{"gruppi", "value"},
	{"name", "displayName"},
}

// InferMappings takes a list of headers and returns a map of sourceCol -> targetField.
//  1. Lowercase + strip whitespace/underscores/hyphens/slashes
//  2. Exact match against HeaderMappings
//  3. Substring match
//  4. No match -> leave unmapped
func InferMappings(headers []string) map[string]string {
	result := make(map[string]string, len(headers))
	usedTargets := make(map[string]bool)

	for _, header := range headers {
		normalized := normalizeHeader(header)

		if target, ok := HeaderMappings[normalized]; ok {
			if !usedTargets[target] {
				result[header] = target
				usedTargets[target] = true
				continue
			}
		}

		for _, sm := range substringMappings {
			if strings.Contains(normalized, sm.Substring) && !usedTargets[sm.Target] {
				result[header] = sm.Target
				usedTargets[sm.Target] = true
				break
			}
		}
	}

	return result
}

// normalizeHeader lowercases a header string and strips separators.
func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	return strings.NewReplacer(" ", "", "_", "", "-", "", "/", "", ".", "").Replace(s)
}
