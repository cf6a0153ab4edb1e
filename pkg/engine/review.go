package engine

import (
	"fmt"
	"sort"
	"strings"

	"adprov/pkg/schema"
)

// Severity ranks a review finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Finding is something the operator must look at before the generated
// files are handed to the import tool.
type Finding struct {
	Severity Severity `json:"severity"`
	Score    int      `json:"score"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// ReviewInput gathers what Review inspects.
type ReviewInput struct {
	Person        schema.PersonInput
	Identity      schema.DerivedIdentity
	RequireExpiry bool
	Collisions    *CollisionReport
}

// Review evaluates a derived identity. Rules:
//   - account or mail already in the directory export = CRITICAL (100)
//   - expiry typed but not parseable = HIGH (80)
//   - expiry required by the form but empty = HIGH (80)
//   - account name fell back to initials = MEDIUM (50)
//   - display name close to an existing one = MEDIUM (50)
//   - display name close to several existing ones = LOW (20)
//   - no mobile number = LOW (20)
//
// Findings are returned highest score first.
func Review(in ReviewInput) []Finding {
	var findings []Finding
	add := func(sev Severity, score int, code, msg string) {
		findings = append(findings, Finding{Severity: sev, Score: score, Code: code, Message: msg})
	}

	if in.Collisions != nil {
		for _, c := range in.Collisions.Collisions {
			switch c.Kind {
			case CollisionAccount:
				add(SeverityCritical, 100, "ACCOUNT_EXISTS",
					fmt.Sprintf("account %q already exists (%s)", in.Identity.AccountName, describeEntry(c.Entry)))
			case CollisionEmail:
				add(SeverityCritical, 100, "EMAIL_EXISTS",
					fmt.Sprintf("mail %q already assigned (%s)", c.Entry.Email, describeEntry(c.Entry)))
			case CollisionName:
				add(SeverityMedium, 50, "NAME_SIMILAR",
					fmt.Sprintf("display name close to existing %s (score %.2f)", describeEntry(c.Entry), c.Score))
			case CollisionNameAmbiguous:
				add(SeverityLow, 20, "NAME_AMBIGUOUS",
					fmt.Sprintf("display name close to several existing accounts, e.g. %s", describeEntry(c.Entry)))
			}
		}
	}

	expiry := strings.TrimSpace(in.Person.ExpiryDateText)
	switch {
	case expiry != "" && !in.Identity.ExpiryParsed:
		add(SeverityHigh, 80, "EXPIRY_UNPARSED",
			fmt.Sprintf("expiry %q is not a dd-mm-yyyy or dd/mm/yyyy date and was copied verbatim", in.Person.ExpiryDateText))
	case expiry == "" && in.RequireExpiry:
		add(SeverityHigh, 80, "EXPIRY_MISSING", "expiry date is required for this form")
	}

	if in.Identity.Abbreviated {
		add(SeverityMedium, 50, "ACCOUNT_ABBREVIATED",
			fmt.Sprintf("account name shortened to %q to fit the length limit", in.Identity.AccountName))
	}

	if strings.TrimSpace(in.Person.MobileNumber) == "" {
		add(SeverityLow, 20, "MOBILE_MISSING", "no mobile number given")
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Score > findings[j].Score
	})
	return findings
}

// MaxSeverity returns the highest severity among findings, INFO when none.
func MaxSeverity(findings []Finding) (Severity, int) {
	level, score := SeverityInfo, 0
	for _, f := range findings {
		if f.Score > score {
			level, score = f.Severity, f.Score
		}
	}
	return level, score
}

func describeEntry(e *schema.DirectoryEntry) string {
	if e == nil {
		return "unknown"
	}
	if e.DisplayName != "" {
		return fmt.Sprintf("%s, %s, row %d", e.AccountName, e.DisplayName, e.SourceRow)
	}
	return fmt.Sprintf("%s, row %d", e.AccountName, e.SourceRow)
}
