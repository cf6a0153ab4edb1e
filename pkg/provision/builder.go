package provision

import (
	"strings"

	"adprov/pkg/config"
	"adprov/pkg/engine"
	"adprov/pkg/record"
	"adprov/pkg/report"
	"adprov/pkg/schema"
	"adprov/pkg/settings"
)

// withDefaults fills blank form fields from the Defaults section. Only
// external variants carry an expiry.
func withDefaults(f Form, cfg *config.Configuration, variant settings.Variant) Form {
	d := cfg.Defaults
	if !variant.External && !variant.RequireExpiry {
		f.ExpiryDate = ""
	} else if f.ExpiryDate == "" {
		f.ExpiryDate = d.ExpireDefault
	}
	if f.EmployeeID == "" {
		f.EmployeeID = d.EmployeeIDDefault
	}
	if f.Department == "" && f.DepartmentLabel != "" {
		if v, ok := cfg.Organigramma.Get(f.DepartmentLabel); ok {
			f.Department = v
		}
	}
	if f.Department == "" {
		f.Department = d.DepartmentDefault
	}
	return f
}

// builder resolves configuration lookups once per submission.
type builder struct {
	settings settings.Config
	cfg      *config.Configuration
	variant  settings.Variant
	form     Form
	identity schema.DerivedIdentity

	ouKey      string
	ou         string
	mail       string
	secondary  string
	mobile     string
	telephone  string
	department string
	company    string
	manager    string
	commonName string
	groups     []string
	dls        []string
}

func (b *builder) resolve() {
	f, d := b.form, b.cfg.Defaults

	b.ouKey, b.ou = b.resolveOU()
	b.mail = b.identity.AccountName + "@" + b.settings.MailDomain
	if b.settings.SecondaryMail != "" {
		b.secondary = b.identity.AccountName + "@" + b.settings.SecondaryMail
	}
	b.mobile = b.phone(f.MobileNumber)
	b.telephone = d.TelephoneInterna
	if f.Resident && f.FixedLine != "" {
		b.telephone = b.phone(f.FixedLine)
	}
	b.department = f.Department

	b.company = d.Lookup(b.variant.CompanyKey)
	if b.company == "" {
		b.company = d.CompanyDefault
	}

	b.manager = f.ManagerLabel
	if v, ok := b.cfg.Managers.Get(f.ManagerLabel); ok && v != "" {
		b.manager = v
	}
	b.commonName = engine.DisplayName(f.FamilyName, f.FamilyName2, f.GivenName, f.GivenName2, false)

	sources := append(d.O365Groups(), b.cfg.GroupsFor(b.variant.GroupApp))
	for _, key := range b.variant.ExtraGroupKeys {
		sources = append(sources, d.Lookup(key))
	}
	b.groups = engine.GroupTokens(append(sources, f.ExtraGroups...)...)

	switch b.ouKey {
	case ouKeyStandard:
		b.dls = d.DLStandard
	case ouKeyVIP:
		b.dls = d.DLVip
	}
}

// resolveOU returns the selected OU key (may be "") and its value. A form
// selection wins; otherwise the variant's Defaults key, then the sheet
// default. Defaults may hold either an OU key or an OU value.
func (b *builder) resolveOU() (string, string) {
	if key := b.form.OUKey; key != "" {
		if v, ok := b.cfg.OU.Get(key); ok {
			return key, v
		}
	}
	if k := b.variant.OUKey; k != "" && k != "ou_default" {
		if v := b.cfg.Defaults.Lookup(k); v != "" {
			if ou, ok := b.cfg.OU.Get(v); ok {
				return v, ou
			}
			return b.ouKeyFor(v), v
		}
	}
	return b.ouKeyFor(b.cfg.Defaults.OUDefault), b.cfg.ResolveOU(b.form.OUKey)
}

func (b *builder) ouKeyFor(v string) string {
	if _, ok := b.cfg.OU.Get(v); ok {
		return v
	}
	key, _ := b.cfg.OU.KeyOf(v)
	return key
}

func (b *builder) phone(n string) string {
	n = strings.TrimSpace(n)
	switch {
	case n == "":
		return ""
	case strings.HasPrefix(n, "+"), b.settings.PhonePrefix == "":
		return n
	}
	return b.settings.PhonePrefix + " " + n
}

func (b *builder) userRow() record.UserRow {
	f := b.form
	return record.UserRow{
		AccountName:          b.identity.AccountName,
		Creation:             record.Yes,
		OU:                   b.ou,
		Name:                 b.commonName,
		DisplayName:          b.identity.DisplayName,
		CommonName:           b.commonName,
		GivenName:            joinNonEmpty(f.GivenName, f.GivenName2),
		Surname:              joinNonEmpty(f.FamilyName, f.FamilyName2),
		EmployeeNumber:       f.TaxCode,
		EmployeeID:           f.EmployeeID,
		Department:           b.department,
		Description:          orDefault(f.DeviceDescription, DefaultDeviceDescription),
		PasswordNeverExpires: record.No,
		ExpireDate:           b.identity.ExpiryTimestamp,
		UPN:                  b.mail,
		Mail:                 b.mail,
		Mobile:               b.mobile,
		GroupInsertion:       strings.Join(b.groups, engine.GroupSeparator),
		Telephone:            b.telephone,
		Company:              b.company,
	}
}

func (b *builder) computerRow() record.ComputerRow {
	return record.ComputerRow{
		Computer:  b.form.Device(),
		OU:        b.cfg.Defaults.Lookup(ouComputerKey),
		AddMail:   b.mail,
		AddMobile: b.mobile,
		AddUPN:    b.mail,
		Disable:   record.No,
	}
}

// profilingRow updates an existing account with the SM groups only.
func (b *builder) profilingRow() record.UserRow {
	return record.UserRow{
		AccountName:    b.identity.AccountName,
		Creation:       record.NoCreation,
		GroupInsertion: engine.AssembleGroups(b.form.SMLines...),
	}
}

func (b *builder) mailboxRequest() report.MailboxRequest {
	d := b.cfg.Defaults
	m := report.MailboxRequest{
		UsageType:         b.variant.UsageType,
		AccountName:       b.identity.AccountName,
		DisplayName:       b.identity.DisplayName,
		CommonName:        b.commonName,
		Manager:           b.manager,
		Mail:              b.mail,
		SecondaryMail:     b.secondary,
		Mobile:            b.mobile,
		NotifyAddress:     b.settings.NotifyAddress,
		Groups:            b.groups,
		OperationalDate:   b.form.OperationalDate,
		DistributionLists: b.dls,
		SMProfiles:        b.form.SMLines,
		AzureGroup:        d.Foorban,
		Channel:           d.Pillole,
	}
	if b.variant.External {
		m.TaxCode = b.form.TaxCode
		m.Expiry = b.identity.ExpiryTimestamp
	}
	return m
}

func (b *builder) computerRequest() report.ComputerRequest {
	return report.ComputerRequest{
		Computer:    b.form.Device(),
		AccountName: b.identity.AccountName,
		DisplayName: b.identity.DisplayName,
		OU:          b.cfg.Defaults.Lookup(ouComputerKey),
		Mail:        b.mail,
	}
}

func (b *builder) identityRows() []report.Row {
	return []report.Row{
		{Label: "Utenza", Value: b.identity.AccountName},
		{Label: "Display name", Value: b.identity.DisplayName},
		{Label: "e-mail", Value: b.mail},
		{Label: "OU", Value: b.ou},
		{Label: "Scadenza", Value: b.identity.ExpiryTimestamp},
		{Label: "Gruppi", Value: strings.Join(b.groups, engine.GroupSeparator)},
	}
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
