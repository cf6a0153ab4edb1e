package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adprov/pkg/schema"
)

func TestDerive(t *testing.T) {
	in := schema.PersonInput{
		GivenName:      "Mario",
		FamilyName:     "Rossi",
		ExpiryDateText: "01-06-2025",
		IsExternal:     true,
	}

	got := Derive(in)

	assert.Equal(t, schema.DerivedIdentity{
		AccountName:     "mario.rossi.ext",
		DisplayName:     "Rossi Mario (esterno)",
		ExpiryTimestamp: "06/02/2025 00:00",
		ExpiryParsed:    true,
	}, got)
}

func TestDerive_Idempotent(t *testing.T) {
	in := schema.PersonInput{
		GivenName:      "Bartolomeo",
		FamilyName:     "Montecalvo",
		FamilyName2:    "Della Torre",
		ExpiryDateText: "31-04-2025",
		IsExternal:     true,
	}

	first := Derive(in)
	second := Derive(in)

	assert.Equal(t, first, second)
	assert.True(t, first.Abbreviated)
	assert.False(t, first.ExpiryParsed)
	assert.Equal(t, "31-04-2025", first.ExpiryTimestamp)
}
