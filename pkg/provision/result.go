package provision

import (
	"time"

	"adprov/pkg/record"
	"adprov/pkg/report"
	"adprov/pkg/schema"
	"adprov/pkg/settings"
)

// Result holds everything produced for one submission.
type Result struct {
	ID          string                 `json:"id"`
	Variant     settings.Variant       `json:"variant"`
	Person      schema.PersonInput     `json:"person"`
	Identity    schema.DerivedIdentity `json:"identity"`
	Groups      []string               `json:"groups"`
	Review      *report.ReviewReport   `json:"review"`
	Messages    []string               `json:"messages"`
	Preview     string                 `json:"preview"`
	BaseName    string                 `json:"baseName"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Artifacts   []report.Artifact      `json:"artifacts"`

	records map[record.Kind]int
}

func (r *Result) addRecord(f *record.Formatter, kind record.Kind, s record.Schema, fields []string) error {
	text, err := f.Render(s, fields)
	if err != nil {
		return err
	}
	if r.records == nil {
		r.records = make(map[record.Kind]int)
	}
	r.records[kind] = len(r.Artifacts)
	r.Artifacts = append(r.Artifacts, report.Artifact{
		Name:        record.FileName(r.BaseName, kind),
		ContentType: "text/csv; charset=utf-8",
		Content:     []byte(text),
	})
	return nil
}

// Record returns the CSV artifact of kind, if it was generated.
func (r *Result) Record(kind record.Kind) (report.Artifact, bool) {
	i, ok := r.records[kind]
	if !ok {
		return report.Artifact{}, false
	}
	return r.Artifacts[i], true
}

// BundleName is the file name of the zip archive.
func (r *Result) BundleName() string {
	return r.BaseName + ".zip"
}

// Bundle zips every artifact plus a manifest.
func (r *Result) Bundle() ([]byte, error) {
	return report.Bundle(report.Manifest{
		ID:          r.ID,
		Variant:     r.Variant.Name,
		AccountName: r.Identity.AccountName,
		GeneratedAt: r.GeneratedAt,
	}, r.Artifacts)
}
