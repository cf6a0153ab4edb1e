package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountName(t *testing.T) {
	tests := []struct {
		name                           string
		given, given2, family, family2 string
		external                       bool
		want                           string
	}{
		{name: "internal simple", given: "Mario", family: "Rossi", want: "mario.rossi"},
		{name: "external simple", given: "Mario", family: "Rossi", external: true, want: "mario.rossi.ext"},
		{name: "external long falls to truncated initials", given: "Bartolomeo", family: "Montecalvo", family2: "Della Torre", external: true, want: "b.montecalvo.ext"},
		{name: "initials with both surnames", given: "Maria", given2: "Giovanna", family: "De Sanctis", family2: "Colonna", want: "mg.desanctiscolonna"},
		{name: "truncated to limit", given: "Anna", family: "Abcdefghijklmnopqrstuvwxyz", want: "a.abcdefghijklmnopqr"},
		{name: "exactly at internal limit", given: "Francesca", family: "Lombardini", want: "francesca.lombardini"},
		{name: "same name over external limit", given: "Francesca", family: "Lombardini", external: true, want: "f.lombardini.ext"},
		{name: "accents and apostrophes", given: "Niccolò", family: "D'Angelo", want: "niccolo.dangelo"},
		{name: "second given name kept when it fits", given: "Gian", given2: "Luca", family: "Neri", want: "gianluca.neri"},
		{name: "casing does not matter", given: "MARIO", family: "rossi", want: "mario.rossi"},
		{name: "all empty", want: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccountName(tt.given, tt.given2, tt.family, tt.family2, tt.external)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountName_LengthBound(t *testing.T) {
	names := []string{"", "A", "Al", "Bartolomeo", "Maria Vittoria", "Abcdefghijklmnopqrstuvwxyz", "Dell'Acqua", "Ñúñez"}
	for _, g := range names {
		for _, g2 := range names {
			for _, f := range names {
				for _, f2 := range names {
					internal := AccountName(g, g2, f, f2, false)
					assert.LessOrEqual(t, len(internal), InternalAccountLimit, "%q %q %q %q", g, g2, f, f2)

					external := AccountName(g, g2, f, f2, true)
					assert.LessOrEqual(t, len(external), ExternalAccountLimit+len(ExternalSuffix), "%q %q %q %q", g, g2, f, f2)
					assert.Contains(t, external, ExternalSuffix)
				}
			}
		}
	}
}

func TestAccountName_AbbreviatedFlag(t *testing.T) {
	_, abbreviated := accountName("Mario", "", "Rossi", "", false)
	assert.False(t, abbreviated)

	_, abbreviated = accountName("Bartolomeo", "", "Montecalvo", "Della Torre", true)
	assert.True(t, abbreviated)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name                           string
		family, family2, given, given2 string
		external                       bool
		want                           string
	}{
		{name: "external", family: "Rossi", given: "Mario", external: true, want: "Rossi Mario (esterno)"},
		{name: "internal", family: "Rossi", given: "Mario", want: "Rossi Mario"},
		{name: "all fragments", family: "De Luca", family2: "Bianchi", given: "Anna", given2: "Maria", want: "De Luca Bianchi Anna Maria"},
		{name: "fragments used as typed", family: "d'angelo", given: "NICCOLÒ", want: "d'angelo NICCOLÒ"},
		{name: "empty", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.family, tt.family2, tt.given, tt.given2, tt.external))
		})
	}
}
