package report

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Artifact is one generated file.
type Artifact struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"-"`
}

// Manifest describes a bundle.
type Manifest struct {
	ID          string     `json:"id"`
	Variant     string     `json:"variant"`
	AccountName string     `json:"accountName"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Files       []Artifact `json:"files"`
}

// WriteBundle writes artifacts plus manifest.json into a zip archive, one
// entry per artifact, in the given order.
func WriteBundle(w io.Writer, manifest Manifest, artifacts []Artifact) error {
	zipWriter := zip.NewWriter(w)

	for _, a := range artifacts {
		header := &zip.FileHeader{
			Name:     a.Name,
			Method:   zip.Deflate,
			Modified: manifest.GeneratedAt,
		}
		entry, err := zipWriter.CreateHeader(header)
		if err != nil {
			_ = zipWriter.Close()
			return fmt.Errorf("create bundle entry %s: %w", a.Name, err)
		}
		if _, err := entry.Write(a.Content); err != nil {
			_ = zipWriter.Close()
			return fmt.Errorf("write bundle entry %s: %w", a.Name, err)
		}
	}

	manifest.Files = artifacts
	manifestPayload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		_ = zipWriter.Close()
		return fmt.Errorf("marshal bundle manifest: %w", err)
	}
	manifestWriter, err := zipWriter.Create("manifest.json")
	if err != nil {
		_ = zipWriter.Close()
		return fmt.Errorf("create bundle manifest: %w", err)
	}
	if _, err := manifestWriter.Write(manifestPayload); err != nil {
		_ = zipWriter.Close()
		return fmt.Errorf("write bundle manifest: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("finalize bundle: %w", err)
	}
	return nil
}

// Bundle is WriteBundle into memory.
func Bundle(manifest Manifest, artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBundle(&buf, manifest, artifacts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
