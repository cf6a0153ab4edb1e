// Package config turns the uploaded site spreadsheet into an immutable
// Configuration. Every optional key is resolved to its documented default
// here, once, so derivation code never performs lookup-with-default.
package config

import (
	"errors"
	"fmt"
	"strings"

	"adprov/pkg/parser"
	"adprov/pkg/schema"
)

var (
	// ErrNoConfiguration is the one session-fatal condition: no spreadsheet
	// has been provided yet.
	ErrNoConfiguration = errors.New("configuration file not loaded")
	// ErrMissingColumns means the sheet lacks Section/Key/Value columns.
	ErrMissingColumns = errors.New("configuration sheet is missing required columns")
)

// Section names recognised in the workbook.
const (
	SectionOU           = "OU"
	SectionGroups       = "InserimentoGruppi"
	SectionDefaults     = "Defaults"
	SectionManager      = "Manager"
	SectionOrganigramma = "Organigramma"
)

// Documented fallbacks for absent Defaults keys.
const (
	DefaultO365Standard = "O365 Utenti Standard"
	DefaultO365Teams    = "O365 Teams Premium"
	DefaultO365Copilot  = "O365 Copilot Plus"
	DefaultFoorban      = "Foorban_Users"
	DefaultPillole      = "Pillole formative Teams Premium"
)

// Entry is one ordered label/value pair of a lookup table.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Table is an ordered lookup table; spreadsheet order is preserved so form
// options render the way the site wrote them.
type Table []Entry

// Get returns the value stored under key.
func (t Table) Get(key string) (string, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// KeyOf returns the first key whose value is value.
func (t Table) KeyOf(value string) (string, bool) {
	for _, e := range t {
		if e.Value == value {
			return e.Key, true
		}
	}
	return "", false
}

// Keys returns the keys in order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, e := range t {
		keys[i] = e.Key
	}
	return keys
}

// Defaults carries the generic defaults namespace with fallbacks applied.
type Defaults struct {
	OUDefault         string   `json:"ouDefault"`
	OUEsternaStage    string   `json:"ouEsternaStage"`
	ExpireDefault     string   `json:"expireDefault"`
	DepartmentDefault string   `json:"departmentDefault"`
	EmployeeIDDefault string   `json:"employeeIdDefault"`
	TelephoneInterna  string   `json:"telephoneInterna"`
	CompanyInterna    string   `json:"companyInterna"`
	CompanyDefault    string   `json:"companyDefault"`
	O365Standard      string   `json:"grpO365Standard"`
	O365Teams         string   `json:"grpO365Teams"`
	O365Copilot       string   `json:"grpO365Copilot"`
	Foorban           string   `json:"grpFoorban"`
	Salesforce        string   `json:"grpSalesforce"`
	Pillole           string   `json:"pillole"`
	DLStandard        []string `json:"dlStandard"`
	DLVip             []string `json:"dlVip"`
	// Raw keeps every Defaults row, including keys not modelled above.
	Raw map[string]string `json:"raw"`
}

// Lookup returns a Defaults value by its spreadsheet key. It backs the
// per-variant key names (OU key, company key).
func (d Defaults) Lookup(key string) string {
	switch key {
	case "ou_default":
		return d.OUDefault
	case "ou_esterna_stage":
		return d.OUEsternaStage
	case "company_interna":
		return d.CompanyInterna
	case "company_default":
		return d.CompanyDefault
	case "telephone_interna":
		return d.TelephoneInterna
	case "grp_salesforce":
		return d.Salesforce
	case "grp_foorban":
		return d.Foorban
	}
	return d.Raw[key]
}

// O365Groups lists the three licence groups in template order.
func (d Defaults) O365Groups() []string {
	return []string{d.O365Standard, d.O365Teams, d.O365Copilot}
}

// Configuration is the read-only per-session view of the spreadsheet.
type Configuration struct {
	Sheet        string            `json:"sheet"`
	OU           Table             `json:"ou"`
	Groups       map[string]string `json:"groups"`
	Defaults     Defaults          `json:"defaults"`
	Managers     Table             `json:"managers"`
	Organigramma Table             `json:"organigramma"`
	Warnings     []string          `json:"warnings,omitempty"`
}

// GroupsFor returns the raw semicolon-delimited insertion string for app.
func (c *Configuration) GroupsFor(app string) string {
	if c == nil {
		return ""
	}
	return c.Groups[app]
}

// ResolveOU maps an OU selection to its value. An empty or unknown key
// falls back to the configured default, then to the first OU row. The
// default may name either an OU key or an OU value.
func (c *Configuration) ResolveOU(key string) string {
	if c == nil {
		return ""
	}
	if v, ok := c.OU.Get(key); ok && key != "" {
		return v
	}
	if c.Defaults.OUDefault != "" {
		if v, ok := c.OU.Get(c.Defaults.OUDefault); ok {
			return v
		}
		return c.Defaults.OUDefault
	}
	if len(c.OU) > 0 {
		return c.OU[0].Value
	}
	return ""
}

// Load parses an uploaded spreadsheet (xlsx or csv) for the given sheet.
func Load(data []byte, sheet string) (*Configuration, error) {
	if len(data) == 0 {
		return nil, ErrNoConfiguration
	}
	table, err := parser.ParseTable(data, sheet)
	if err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg, err := FromRecords(table.Records, table.Headers)
	if err != nil {
		return nil, err
	}
	cfg.Sheet = sheet
	for _, w := range table.Warnings {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("row %d: %s", w.Row, w.Message))
	}
	return cfg, nil
}

// FromRecords builds a Configuration from header-keyed rows.
func FromRecords(records []map[string]string, headers []string) (*Configuration, error) {
	columns := schema.InferMappings(headers)
	var sectionCol, keyCol, valueCol string
	for header, target := range columns {
		switch target {
		case "section":
			sectionCol = header
		case "key":
			keyCol = header
		case "value":
			valueCol = header
		}
	}
	if sectionCol == "" || keyCol == "" || valueCol == "" {
		return nil, fmt.Errorf("%w: have %v", ErrMissingColumns, headers)
	}

	cfg := &Configuration{Groups: make(map[string]string)}
	raw := make(map[string]string)

	for i, rec := range records {
		section := strings.TrimSpace(rec[sectionCol])
		key := strings.TrimSpace(rec[keyCol])
		value := strings.TrimSpace(rec[valueCol])
		if key == "" {
			continue
		}

		switch {
		case strings.EqualFold(section, SectionOU):
			cfg.OU = append(cfg.OU, Entry{Key: key, Value: value})
		case strings.EqualFold(section, SectionGroups):
			cfg.Groups[key] = value
		case strings.EqualFold(section, SectionDefaults):
			raw[key] = value
		case strings.EqualFold(section, SectionManager):
			cfg.Managers = append(cfg.Managers, Entry{Key: key, Value: value})
		case strings.EqualFold(section, SectionOrganigramma):
			cfg.Organigramma = append(cfg.Organigramma, Entry{Key: key, Value: value})
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("row %d: unknown section %q ignored", i+2, section))
		}
	}

	cfg.Defaults = resolveDefaults(raw, cfg.OU)
	return cfg, nil
}

func resolveDefaults(raw map[string]string, ou Table) Defaults {
	d := Defaults{
		OUDefault:         raw["ou_default"],
		OUEsternaStage:    raw["ou_esterna_stage"],
		ExpireDefault:     raw["expire_default"],
		DepartmentDefault: raw["department_default"],
		EmployeeIDDefault: raw["employee_id_default"],
		TelephoneInterna:  raw["telephone_interna"],
		CompanyInterna:    raw["company_interna"],
		CompanyDefault:    raw["company_default"],
		O365Standard:      orDefault(raw["grp_o365_standard"], DefaultO365Standard),
		O365Teams:         orDefault(raw["grp_o365_teams"], DefaultO365Teams),
		O365Copilot:       orDefault(raw["grp_o365_copilot"], DefaultO365Copilot),
		Foorban:           orDefault(raw["grp_foorban"], DefaultFoorban),
		Salesforce:        raw["grp_salesforce"],
		Pillole:           orDefault(raw["pillole"], DefaultPillole),
		DLStandard:        splitList(raw["dl_standard"]),
		DLVip:             splitList(raw["dl_vip"]),
		Raw:               raw,
	}
	if d.OUDefault == "" && len(ou) > 0 {
		d.OUDefault = ou[0].Key
	}
	if d.CompanyDefault == "" {
		d.CompanyDefault = d.CompanyInterna
	}
	return d
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
