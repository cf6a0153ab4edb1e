package report

import (
	"fmt"
	"strings"
)

// Preview is the on-screen summary of one submission.
type Preview struct {
	Title    string
	Identity []Row
	Review   *ReviewReport
	Messages []string
	Files    []Artifact
}

// RenderPreview renders the Markdown preview bundled as <base>_preview.md.
// CSV artifacts are shown inline in fenced blocks.
func RenderPreview(p Preview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	b.WriteString("## Identità\n\n")
	b.WriteString(Table(p.Identity))

	b.WriteString("\n## Verifiche\n\n")
	if p.Review != nil {
		b.WriteString(p.Review.RenderMarkdown())
	} else {
		b.WriteString("Nessuna segnalazione.\n")
	}

	for _, m := range p.Messages {
		b.WriteString("\n---\n\n")
		b.WriteString(m)
	}

	for _, f := range p.Files {
		if !strings.HasSuffix(f.Name, ".csv") {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n```csv\n%s```\n", f.Name, strings.ReplaceAll(string(f.Content), "\r\n", "\n"))
	}
	return b.String()
}
