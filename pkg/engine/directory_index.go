package engine

import (
	"strings"

	"adprov/pkg/schema"
)

// DirectoryIndex provides lookup of existing accounts from a directory
// export by account name, mail and normalized display name.
type DirectoryIndex struct {
	ByAccount map[string]*schema.DirectoryEntry   `json:"byAccount"`
	ByEmail   map[string]*schema.DirectoryEntry   `json:"byEmail"`
	ByName    map[string][]*schema.DirectoryEntry `json:"byName"`
	Stats     IndexStats                          `json:"stats"`
}

// IndexStats contains aggregate statistics about the index.
type IndexStats struct {
	TotalRecords   int `json:"totalRecords"`
	UniqueAccounts int `json:"uniqueAccounts"`
	UniqueEmails   int `json:"uniqueEmails"`
	Duplicates     int `json:"duplicates"`
}

// BuildDirectoryIndex indexes entries. The first occurrence of a duplicate
// account or mail wins and the rest are counted in Stats.Duplicates.
func BuildDirectoryIndex(entries []*schema.DirectoryEntry) *DirectoryIndex {
	index := &DirectoryIndex{
		ByAccount: make(map[string]*schema.DirectoryEntry, len(entries)),
		ByEmail:   make(map[string]*schema.DirectoryEntry, len(entries)),
		ByName:    make(map[string][]*schema.DirectoryEntry, len(entries)),
	}

	duplicates := 0
	for _, e := range entries {
		if e.AccountName != "" {
			key := strings.ToLower(e.AccountName)
			if _, exists := index.ByAccount[key]; exists {
				duplicates++
			} else {
				index.ByAccount[key] = e
			}
		}

		if e.Email != "" {
			key := strings.ToLower(e.Email)
			if _, exists := index.ByEmail[key]; !exists {
				index.ByEmail[key] = e
			}
		}

		if e.NormalizedName != "" {
			index.ByName[e.NormalizedName] = append(index.ByName[e.NormalizedName], e)
		}
	}

	index.Stats = IndexStats{
		TotalRecords:   len(entries),
		UniqueAccounts: len(index.ByAccount),
		UniqueEmails:   len(index.ByEmail),
		Duplicates:     duplicates,
	}

	return index
}
