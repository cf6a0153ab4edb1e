package engine

import "adprov/pkg/schema"

// Derive computes the identity fields of a person. It is a pure function of
// its input; calling it twice yields identical results.
func Derive(in schema.PersonInput) schema.DerivedIdentity {
	account, abbreviated := accountName(in.GivenName, in.GivenName2, in.FamilyName, in.FamilyName2, in.IsExternal)
	expiry, parsed := ParseExpiry(in.ExpiryDateText)
	return schema.DerivedIdentity{
		AccountName:     account,
		DisplayName:     DisplayName(in.FamilyName, in.FamilyName2, in.GivenName, in.GivenName2, in.IsExternal),
		ExpiryTimestamp: expiry,
		ExpiryParsed:    parsed,
		Abbreviated:     abbreviated,
	}
}
