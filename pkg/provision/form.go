package provision

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"adprov/pkg/engine"
	"adprov/pkg/schema"
)

// DefaultDeviceDescription is written in Description when no workstation
// was named.
const DefaultDeviceDescription = "<PC>"

// Form is one submission of a provisioning form.
type Form struct {
	GivenName         string `json:"givenName" form:"givenName"`
	GivenName2        string `json:"givenName2" form:"givenName2"`
	FamilyName        string `json:"familyName" form:"familyName"`
	FamilyName2       string `json:"familyName2" form:"familyName2"`
	TaxCode           string `json:"taxCode" form:"taxCode"`
	EmployeeID        string `json:"employeeId" form:"employeeId"`
	Department        string `json:"department" form:"department"`
	DepartmentLabel   string `json:"departmentLabel" form:"departmentLabel"`
	MobileNumber      string `json:"mobileNumber" form:"mobileNumber"`
	DeviceDescription string `json:"deviceDescription" form:"deviceDescription"`
	ExpiryDate        string `json:"expiryDate" form:"expiryDate"`

	// Resident staff get their own fixed line instead of the switchboard.
	Resident  bool   `json:"resident" form:"resident"`
	FixedLine string `json:"fixedLine" form:"fixedLine"`

	OUKey           string   `json:"ouKey" form:"ouKey"`
	ManagerLabel    string   `json:"managerLabel" form:"managerLabel"`
	OperationalDate string   `json:"operationalDate" form:"operationalDate"`
	SMLines         []string `json:"smLines" form:"smLines"`
	ExtraGroups     []string `json:"extraGroups" form:"extraGroups"`
}

// capitalize trims and title-cases a name fragment. A Caser keeps state,
// so one is built per call.
func capitalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.Italian).String(s)
}

// Normalized returns a copy with name fragments capitalised, free text
// trimmed and spaces removed from phone numbers.
func (f Form) Normalized() Form {
	f.GivenName = capitalize(f.GivenName)
	f.GivenName2 = capitalize(f.GivenName2)
	f.FamilyName = capitalize(f.FamilyName)
	f.FamilyName2 = capitalize(f.FamilyName2)
	f.TaxCode = strings.ToUpper(strings.TrimSpace(f.TaxCode))
	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	f.Department = strings.TrimSpace(f.Department)
	f.DepartmentLabel = strings.TrimSpace(f.DepartmentLabel)
	f.MobileNumber = strings.ReplaceAll(strings.TrimSpace(f.MobileNumber), " ", "")
	f.FixedLine = strings.TrimSpace(f.FixedLine)
	f.DeviceDescription = strings.TrimSpace(f.DeviceDescription)
	f.ExpiryDate = strings.TrimSpace(f.ExpiryDate)
	f.OUKey = strings.TrimSpace(f.OUKey)
	f.ManagerLabel = strings.TrimSpace(f.ManagerLabel)
	f.OperationalDate = strings.TrimSpace(f.OperationalDate)
	f.SMLines = nonBlank(f.SMLines)
	f.ExtraGroups = engine.GroupTokens(f.ExtraGroups...)
	return f
}

// Device returns the workstation name, "" when none was given.
func (f Form) Device() string {
	if f.DeviceDescription == DefaultDeviceDescription {
		return ""
	}
	return f.DeviceDescription
}

// Person maps the form onto the derivation input.
func (f Form) Person(external bool) schema.PersonInput {
	return schema.PersonInput{
		GivenName:         f.GivenName,
		GivenName2:        f.GivenName2,
		FamilyName:        f.FamilyName,
		FamilyName2:       f.FamilyName2,
		TaxCode:           f.TaxCode,
		EmployeeID:        f.EmployeeID,
		Department:        f.Department,
		MobileNumber:      f.MobileNumber,
		DeviceDescription: f.DeviceDescription,
		ExpiryDateText:    f.ExpiryDate,
		IsExternal:        external,
	}
}

func nonBlank(lines []string) []string {
	var out []string
	for _, l := range lines {
		for _, part := range strings.Split(l, "\n") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
