package report

import (
	"fmt"
	"strings"
)

// Fixed phrases of the ticket bodies. Operators paste these verbatim, so
// wording and punctuation (including the Markdown hard breaks) are part of
// the contract.
const (
	greeting     = "Ciao.  \n"
	closing      = "Grazie  \nSaluti\n"
	mailboxAsk   = "Richiedo la definizione di una casella come sottoindicato."
	computerAsk  = "Richiedo l'associazione della postazione come sottoindicato."
	profilingAsk = "Richiedo la profilazione dell'utenza come sottoindicato."
)

// Row is one "| Campo | Valore |" line.
type Row struct {
	Label string
	Value string
}

// MailboxRequest carries everything the mailbox ticket mentions.
type MailboxRequest struct {
	UsageType     string
	AccountName   string
	DisplayName   string
	CommonName    string
	Manager       string
	Mail          string
	SecondaryMail string
	Mobile        string
	TaxCode       string
	Expiry        string

	NotifyAddress     string
	Groups            []string
	OperationalDate   string
	DistributionLists []string
	SMProfiles        []string
	AzureGroup        string
	Channel           string
}

// Rows returns the table in ticket order. Manager, tax code and expiry
// rows appear only when set.
func (m MailboxRequest) Rows() []Row {
	rows := []Row{
		{"Tipo Utenza", m.UsageType},
		{"Utenza", m.AccountName},
		{"Alias", m.AccountName},
		{"Display name", m.DisplayName},
		{"Common name", m.CommonName},
	}
	if m.Manager != "" {
		rows = append(rows, Row{"Manager", m.Manager})
	}
	rows = append(rows,
		Row{"e-mail", m.Mail},
		Row{"e-mail secondaria", m.SecondaryMail},
		Row{"cell", m.Mobile},
	)
	if m.TaxCode != "" {
		rows = append(rows, Row{"Codice Fiscale", m.TaxCode})
	}
	if m.Expiry != "" {
		rows = append(rows, Row{"Scadenza", m.Expiry})
	}
	return rows
}

// RenderMailboxRequest renders the mailbox ticket as Markdown.
func RenderMailboxRequest(m MailboxRequest) string {
	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString(mailboxAsk + "\n\n")
	b.WriteString(Table(m.Rows()))
	b.WriteString("\n")

	if m.NotifyAddress != "" {
		fmt.Fprintf(&b, "Inviare batch di notifica migrazione mail a: %s  \n", m.NotifyAddress)
	}
	b.WriteString("Aggiungere utenza di dominio ai gruppi:\n")
	b.WriteString(Bullets(m.Groups))

	if len(m.DistributionLists) > 0 {
		fmt.Fprintf(&b, "\nIl giorno **%s** occorre inserire la casella nelle DL:\n", m.OperationalDate)
		b.WriteString(Bullets(m.DistributionLists))
	}
	if len(m.SMProfiles) > 0 {
		b.WriteString("\nProfilare su SM:\n")
		b.WriteString(Bullets(m.SMProfiles))
	}
	if m.AzureGroup != "" || m.Channel != "" {
		b.WriteString("\nAggiungere utenza al:\n")
		if m.AzureGroup != "" {
			fmt.Fprintf(&b, "- gruppo Azure: %s\n", m.AzureGroup)
		}
		if m.Channel != "" {
			fmt.Fprintf(&b, "- canale %s\n", m.Channel)
		}
	}

	b.WriteString("\n" + closing)
	return b.String()
}

// ComputerRequest is the workstation assignment ticket.
type ComputerRequest struct {
	Computer    string
	AccountName string
	DisplayName string
	OU          string
	Mail        string
}

// RenderComputerRequest renders the workstation ticket.
func RenderComputerRequest(c ComputerRequest) string {
	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString(computerAsk + "\n\n")
	b.WriteString(Table([]Row{
		{"Postazione", c.Computer},
		{"Utenza", c.AccountName},
		{"Display name", c.DisplayName},
		{"OU", c.OU},
		{"e-mail", c.Mail},
	}))
	b.WriteString("\n" + closing)
	return b.String()
}

// ProfilingRequest is the SM profiling ticket.
type ProfilingRequest struct {
	AccountName string
	DisplayName string
	SMProfiles  []string
}

// RenderProfilingRequest renders the SM profiling ticket.
func RenderProfilingRequest(p ProfilingRequest) string {
	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString(profilingAsk + "\n\n")
	b.WriteString(Table([]Row{
		{"Utenza", p.AccountName},
		{"Display name", p.DisplayName},
	}))
	b.WriteString("\nProfilare su SM:\n")
	b.WriteString(Bullets(p.SMProfiles))
	b.WriteString("\n" + closing)
	return b.String()
}

// Table renders rows as a two column Markdown table padded to equal width.
func Table(rows []Row) string {
	labelW, valueW := len("Campo"), len("Valore")
	cells := make([]Row, len(rows))
	for i, r := range rows {
		r.Value = strings.ReplaceAll(r.Value, "|", `\|`)
		cells[i] = r
		labelW = max(labelW, len([]rune(r.Label)))
		valueW = max(valueW, len([]rune(r.Value)))
	}

	var b strings.Builder
	line := func(l, v string) {
		fmt.Fprintf(&b, "| %s | %s |\n", pad(l, labelW), pad(v, valueW))
	}
	line("Campo", "Valore")
	fmt.Fprintf(&b, "|%s|%s|\n", strings.Repeat("-", labelW+2), strings.Repeat("-", valueW+2))
	for _, r := range cells {
		line(r.Label, r.Value)
	}
	return b.String()
}

// Bullets renders items as a Markdown list, skipping blanks.
func Bullets(items []string) string {
	var b strings.Builder
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}
	return b.String()
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
