package schema

// PersonInput holds the raw fields captured by a provisioning form.
// Name fragments arrive trimmed and capitalised by the form layer.
type PersonInput struct {
	GivenName         string `json:"givenName"`
	GivenName2        string `json:"givenName2"`
	FamilyName        string `json:"familyName"`
	FamilyName2       string `json:"familyName2"`
	TaxCode           string `json:"taxCode"`
	EmployeeID        string `json:"employeeId"`
	Department        string `json:"department"`
	MobileNumber      string `json:"mobileNumber"`
	DeviceDescription string `json:"deviceDescription"`
	ExpiryDateText    string `json:"expiryDateText"`
	IsExternal        bool   `json:"isExternal"`
}

// DerivedIdentity is computed fresh from a PersonInput and never stored.
type DerivedIdentity struct {
	AccountName     string `json:"accountName"`
	DisplayName     string `json:"displayName"`
	ExpiryTimestamp string `json:"expiryTimestamp"`
	// ExpiryParsed is false when ExpiryTimestamp carries the raw input.
	ExpiryParsed bool `json:"expiryParsed"`
	// Abbreviated is true when the account name fell back to initials.
	Abbreviated bool `json:"abbreviated"`
}

// DirectoryEntry is one account from an uploaded directory export.
type DirectoryEntry struct {
	AccountName    string `json:"accountName"`
	Email          string `json:"email"`
	EmployeeID     string `json:"employeeId"`
	DisplayName    string `json:"displayName"`
	NormalizedName string `json:"normalizedName"`
	Department     string `json:"department"`
	SourceRow      int    `json:"sourceRow"`
}

// ColumnMapping defines how source CSV columns map to canonical fields.
type ColumnMapping struct {
	Direct map[string]string `json:"direct"`
	Concat []ConcatTransform `json:"concat"`
}

// ConcatTransform defines a multi-column concatenation transform.
type ConcatTransform struct {
	SourceColumns []string `json:"sourceColumns"`
	Separator     string   `json:"separator"`
	TargetField   string   `json:"targetField"`
}
