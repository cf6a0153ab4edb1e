package report

import (
	"fmt"
	"strings"

	"adprov/pkg/engine"
)

// ReviewSummary contains counts of findings at each severity.
type ReviewSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// ReviewReport is what the operator sees before handing files over.
type ReviewReport struct {
	AccountName string                  `json:"accountName"`
	MaxSeverity engine.Severity         `json:"maxSeverity"`
	MaxScore    int                     `json:"maxScore"`
	Findings    []engine.Finding        `json:"findings"`
	Collisions  *engine.CollisionReport `json:"collisions,omitempty"`
	Summary     ReviewSummary           `json:"summary"`
}

// BuildReviewReport compiles findings and the directory check into a
// report with per-severity counts.
func BuildReviewReport(account string, findings []engine.Finding, collisions *engine.CollisionReport) *ReviewReport {
	r := &ReviewReport{
		AccountName: account,
		Findings:    make([]engine.Finding, 0, len(findings)),
		Collisions:  collisions,
	}
	r.Findings = append(r.Findings, findings...)
	r.MaxSeverity, r.MaxScore = engine.MaxSeverity(findings)
	for _, f := range findings {
		updateReviewSummary(&r.Summary, f.Severity)
	}
	return r
}

// Clean reports whether nothing above INFO was found.
func (r *ReviewReport) Clean() bool {
	return r == nil || r.MaxScore == 0
}

// RenderText renders the report as the plain text review file.
func (r *ReviewReport) RenderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verifica utenza %s\n", r.AccountName)
	fmt.Fprintf(&b, "Esito: %s\n", r.MaxSeverity)
	fmt.Fprintf(&b, "CRITICAL=%d HIGH=%d MEDIUM=%d LOW=%d\n",
		r.Summary.Critical, r.Summary.High, r.Summary.Medium, r.Summary.Low)

	if len(r.Findings) > 0 {
		b.WriteString("\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "[%s] %s: %s\n", f.Severity, f.Code, f.Message)
		}
	}

	if r.Collisions != nil && len(r.Collisions.Attempted) > 0 {
		b.WriteString("\nChiavi verificate sull'export directory:\n")
		for _, k := range r.Collisions.Attempted {
			fmt.Fprintf(&b, "- %s\n", k)
		}
		for _, c := range r.Collisions.Collisions {
			for _, fc := range c.Conflicts {
				fmt.Fprintf(&b, "  %s (%s): %q != %q\n", c.Entry.AccountName, fc.Field, fc.ExistingValue, fc.NewValue)
			}
		}
	}
	return b.String()
}

// RenderMarkdown renders findings as a Markdown list for the preview.
func (r *ReviewReport) RenderMarkdown() string {
	if len(r.Findings) == 0 {
		return "Nessuna segnalazione.\n"
	}
	var b strings.Builder
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "- **%s** `%s` %s\n", f.Severity, f.Code, f.Message)
	}
	return b.String()
}

func updateReviewSummary(summary *ReviewSummary, level engine.Severity) {
	switch level {
	case engine.SeverityCritical:
		summary.Critical++
	case engine.SeverityHigh:
		summary.High++
	case engine.SeverityMedium:
		summary.Medium++
	case engine.SeverityLow:
		summary.Low++
	case engine.SeverityInfo:
		summary.Info++
	}
}
