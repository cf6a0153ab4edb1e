package schema

// Column names of the user import schema consumed by the AD import tool.
// Order and count are fixed.
const (
	ColAccountName          = "sAMAccountName"
	ColCreation             = "Creation"
	ColOU                   = "OU"
	ColName                 = "Name"
	ColDisplayName          = "DisplayName"
	ColCommonName           = "cn"
	ColGivenName            = "GivenName"
	ColSurname              = "Surname"
	ColEmployeeNumber       = "employeeNumber"
	ColEmployeeID           = "employeeID"
	ColDepartment           = "department"
	ColDescription          = "Description"
	ColPasswordNeverExpires = "passwordNeverExpired"
	ColExpireDate           = "ExpireDate"
	ColUPN                  = "userprincipalname"
	ColMail                 = "mail"
	ColMobile               = "mobile"
	ColGroupRemoval         = "RimozioneGruppo"
	ColGroupInsertion       = "InserimentoGruppo"
	ColDisable              = "disable"
	ColMoveToOU             = "moveToOU"
	ColTelephone            = "telephoneNumber"
	ColCompany              = "company"
)

// UserRecordColumns is the 23-column user schema.
var UserRecordColumns = []string{
	ColAccountName,
	ColCreation,
	ColOU,
	ColName,
	ColDisplayName,
	ColCommonName,
	ColGivenName,
	ColSurname,
	ColEmployeeNumber,
	ColEmployeeID,
	ColDepartment,
	ColDescription,
	ColPasswordNeverExpires,
	ColExpireDate,
	ColUPN,
	ColMail,
	ColMobile,
	ColGroupRemoval,
	ColGroupInsertion,
	ColDisable,
	ColMoveToOU,
	ColTelephone,
	ColCompany,
}

// ComputerRecordColumns is the 10-column computer schema.
var ComputerRecordColumns = []string{
	"Computer",
	"OU",
	"add_mail",
	"remove_mail",
	"add_mobile",
	"remove_mobile",
	"add_userprincipalname",
	"remove_userprincipalname",
	"disable",
	"moveToOU",
}

// Column positions within UserRecordColumns.
const (
	UserIdxAccountName = iota
	UserIdxCreation
	UserIdxOU
	UserIdxName
	UserIdxDisplayName
	UserIdxCommonName
	UserIdxGivenName
	UserIdxSurname
	UserIdxEmployeeNumber
	UserIdxEmployeeID
	UserIdxDepartment
	UserIdxDescription
	UserIdxPasswordNeverExpires
	UserIdxExpireDate
	UserIdxUPN
	UserIdxMail
	UserIdxMobile
	UserIdxGroupRemoval
	UserIdxGroupInsertion
	UserIdxDisable
	UserIdxMoveToOU
	UserIdxTelephone
	UserIdxCompany
)

// Column positions within ComputerRecordColumns.
const (
	ComputerIdxName = iota
	ComputerIdxOU
	ComputerIdxAddMail
	ComputerIdxRemoveMail
	ComputerIdxAddMobile
	ComputerIdxRemoveMobile
	ComputerIdxAddUPN
	ComputerIdxRemoveUPN
	ComputerIdxDisable
	ComputerIdxMoveToOU
)
