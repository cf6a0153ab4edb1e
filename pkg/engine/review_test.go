package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adprov/pkg/schema"
)

func codes(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Code
	}
	return out
}

func TestReview(t *testing.T) {
	tests := []struct {
		name          string
		person        schema.PersonInput
		requireExpiry bool
		collisions    *CollisionReport
		want          []string
		wantMax       Severity
	}{
		{
			name:    "clean",
			person:  schema.PersonInput{GivenName: "Mario", FamilyName: "Rossi", MobileNumber: "3331234567"},
			want:    []string{},
			wantMax: SeverityInfo,
		},
		{
			name:    "unparsed expiry and missing mobile",
			person:  schema.PersonInput{GivenName: "Mario", FamilyName: "Rossi", ExpiryDateText: "31-04-2025"},
			want:    []string{"EXPIRY_UNPARSED", "MOBILE_MISSING"},
			wantMax: SeverityHigh,
		},
		{
			name:          "missing required expiry",
			person:        schema.PersonInput{GivenName: "Mario", FamilyName: "Rossi", MobileNumber: "1", IsExternal: true},
			requireExpiry: true,
			want:          []string{"EXPIRY_MISSING"},
			wantMax:       SeverityHigh,
		},
		{
			name:    "abbreviated account",
			person:  schema.PersonInput{GivenName: "Bartolomeo", FamilyName: "Montecalvo", FamilyName2: "Della Torre", MobileNumber: "1", IsExternal: true},
			want:    []string{"ACCOUNT_ABBREVIATED"},
			wantMax: SeverityMedium,
		},
		{
			name:   "collision ranks first",
			person: schema.PersonInput{GivenName: "Mario", FamilyName: "Rossi"},
			collisions: &CollisionReport{Collisions: []Collision{
				{Kind: CollisionAccount, Entry: &schema.DirectoryEntry{AccountName: "mario.rossi", SourceRow: 4}},
			}},
			want:    []string{"ACCOUNT_EXISTS", "MOBILE_MISSING"},
			wantMax: SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Review(ReviewInput{
				Person:        tt.person,
				Identity:      Derive(tt.person),
				RequireExpiry: tt.requireExpiry,
				Collisions:    tt.collisions,
			})
			assert.Equal(t, tt.want, codes(findings))

			level, _ := MaxSeverity(findings)
			assert.Equal(t, tt.wantMax, level)
		})
	}
}
