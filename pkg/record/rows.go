package record

import (
	"strings"
	"unicode"

	"adprov/pkg/schema"
)

// Flag values used by the import tool.
const (
	Yes = "SI"
	No  = "No"
	// NoCreation marks a row that only updates an existing account.
	NoCreation = "NO"
)

// UserRow is the 23-column user record, one field per column.
type UserRow struct {
	AccountName          string
	Creation             string
	OU                   string
	Name                 string
	DisplayName          string
	CommonName           string
	GivenName            string
	Surname              string
	EmployeeNumber       string
	EmployeeID           string
	Department           string
	Description          string
	PasswordNeverExpires string
	ExpireDate           string
	UPN                  string
	Mail                 string
	Mobile               string
	GroupRemoval         string
	GroupInsertion       string
	Disable              string
	MoveToOU             string
	Telephone            string
	Company              string
}

// Fields returns the values in column order.
func (u UserRow) Fields() []string {
	f := make([]string, len(schema.UserRecordColumns))
	f[schema.UserIdxAccountName] = u.AccountName
	f[schema.UserIdxCreation] = u.Creation
	f[schema.UserIdxOU] = u.OU
	f[schema.UserIdxName] = u.Name
	f[schema.UserIdxDisplayName] = u.DisplayName
	f[schema.UserIdxCommonName] = u.CommonName
	f[schema.UserIdxGivenName] = u.GivenName
	f[schema.UserIdxSurname] = u.Surname
	f[schema.UserIdxEmployeeNumber] = u.EmployeeNumber
	f[schema.UserIdxEmployeeID] = u.EmployeeID
	f[schema.UserIdxDepartment] = u.Department
	f[schema.UserIdxDescription] = u.Description
	f[schema.UserIdxPasswordNeverExpires] = u.PasswordNeverExpires
	f[schema.UserIdxExpireDate] = u.ExpireDate
	f[schema.UserIdxUPN] = u.UPN
	f[schema.UserIdxMail] = u.Mail
	f[schema.UserIdxMobile] = u.Mobile
	f[schema.UserIdxGroupRemoval] = u.GroupRemoval
	f[schema.UserIdxGroupInsertion] = u.GroupInsertion
	f[schema.UserIdxDisable] = u.Disable
	f[schema.UserIdxMoveToOU] = u.MoveToOU
	f[schema.UserIdxTelephone] = u.Telephone
	f[schema.UserIdxCompany] = u.Company
	return f
}

// ComputerRow is the 10-column computer record.
type ComputerRow struct {
	Computer     string
	OU           string
	AddMail      string
	RemoveMail   string
	AddMobile    string
	RemoveMobile string
	AddUPN       string
	RemoveUPN    string
	Disable      string
	MoveToOU     string
}

// Fields returns the values in column order.
func (c ComputerRow) Fields() []string {
	f := make([]string, len(schema.ComputerRecordColumns))
	f[schema.ComputerIdxName] = c.Computer
	f[schema.ComputerIdxOU] = c.OU
	f[schema.ComputerIdxAddMail] = c.AddMail
	f[schema.ComputerIdxRemoveMail] = c.RemoveMail
	f[schema.ComputerIdxAddMobile] = c.AddMobile
	f[schema.ComputerIdxRemoveMobile] = c.RemoveMobile
	f[schema.ComputerIdxAddUPN] = c.AddUPN
	f[schema.ComputerIdxRemoveUPN] = c.RemoveUPN
	f[schema.ComputerIdxDisable] = c.Disable
	f[schema.ComputerIdxMoveToOU] = c.MoveToOU
	return f
}

// Kind identifies which file of a submission a record goes to.
type Kind string

const (
	KindUser      Kind = "user"
	KindComputer  Kind = "computer"
	KindProfiling Kind = "profiling"
)

// ParseKind maps a query value to a Kind; empty means KindUser.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindUser:
		return KindUser, true
	case KindComputer:
		return KindComputer, true
	case KindProfiling:
		return KindProfiling, true
	}
	return "", false
}

// BaseName builds "<Surname>_<Initial>_<suffix>". Characters that are not
// safe in file names are dropped from the surname.
func BaseName(family, given, suffix string) string {
	var b strings.Builder
	for _, r := range family {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}
	initial := ""
	for _, r := range strings.TrimSpace(given) {
		initial = string(unicode.ToUpper(r))
		break
	}
	parts := []string{b.String(), initial}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, "_")
}

// FileName returns the CSV file name of kind for base.
func FileName(base string, kind Kind) string {
	switch kind {
	case KindComputer:
		return base + "_pc.csv"
	case KindProfiling:
		return base + "_profilazione.csv"
	}
	return base + ".csv"
}
