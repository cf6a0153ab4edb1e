package engine

import (
	"sort"
	"strings"

	"adprov/pkg/schema"
)

// Collision kinds, strongest first.
const (
	CollisionAccount       = "exact_account"
	CollisionEmail         = "exact_email"
	CollisionName          = "fuzzy_name"
	CollisionNameAmbiguous = "fuzzy_ambiguous"
)

// Fuzzy match thresholds
const (
	fuzzyMatchThreshold = 0.85
	fuzzyAmbiguityGap   = 0.10
	maxFuzzyCandidates  = 10
)

// Collision is one existing directory account that clashes with a new identity.
type Collision struct {
	Kind      string                 `json:"kind"`
	Entry     *schema.DirectoryEntry `json:"entry"`
	Score     float64                `json:"score"`
	Conflicts []FieldConflict        `json:"conflicts,omitempty"`
}

// CollisionReport lists every clash found plus the keys that were tried.
type CollisionReport struct {
	Collisions []Collision `json:"collisions"`
	Attempted  []string    `json:"attempted"`
}

// Has reports whether a collision of the given kind was found.
func (r *CollisionReport) Has(kind string) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Collisions {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// CheckCollisions looks the generated identity up in the directory index:
//  1. Exact account name
//  2. Exact mail / UPN
//  3. Fuzzy display name (normalized Levenshtein, threshold 0.85, gap 0.10)
//
// Unlike a join, every step runs; the account name is never changed here.
func CheckCollisions(index *DirectoryIndex, id schema.DerivedIdentity, email, department string) *CollisionReport {
	report := &CollisionReport{Collisions: make([]Collision, 0)}
	if index == nil {
		return report
	}
	seen := make(map[*schema.DirectoryEntry]bool)
	add := func(kind string, entry *schema.DirectoryEntry, score float64) {
		if seen[entry] {
			return
		}
		seen[entry] = true
		report.Collisions = append(report.Collisions, Collision{
			Kind:      kind,
			Entry:     entry,
			Score:     score,
			Conflicts: DetectConflicts(entry, id.DisplayName, department),
		})
	}

	if id.AccountName != "" {
		key := strings.ToLower(id.AccountName)
		report.Attempted = append(report.Attempted, "account:"+key)
		if entry, ok := index.ByAccount[key]; ok {
			add(CollisionAccount, entry, 1)
		}
	}

	if email != "" {
		key := strings.ToLower(email)
		report.Attempted = append(report.Attempted, "email:"+key)
		if entry, ok := index.ByEmail[key]; ok {
			add(CollisionEmail, entry, 1)
		}
	}

	name := schema.NormalizeName(strings.TrimSuffix(id.DisplayName, ExternalMarker))
	if name != "" {
		report.Attempted = append(report.Attempted, "name:"+name)
		for _, c := range fuzzyNameCandidates(index, name) {
			add(c.kind, c.entry, c.score)
		}
	}

	return report
}

type scoredCandidate struct {
	entry *schema.DirectoryEntry
	score float64
	kind  string
}

// fuzzyNameCandidates scores every indexed name against name and returns
// the matches above threshold, best first. When the top two are closer than
// the ambiguity gap all of them are flagged ambiguous.
func fuzzyNameCandidates(index *DirectoryIndex, name string) []scoredCandidate {
	var scored []scoredCandidate
	for _, entries := range index.ByName {
		for _, e := range entries {
			if score := similarity(name, e.NormalizedName); score >= fuzzyMatchThreshold {
				scored = append(scored, scoredCandidate{entry: e, score: score})
			}
		}
	}
	if len(scored) == 0 {
		return nil
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].entry.SourceRow < scored[j].entry.SourceRow
	})
	if len(scored) > maxFuzzyCandidates {
		scored = scored[:maxFuzzyCandidates]
	}

	kind := CollisionName
	if len(scored) > 1 && scored[0].score-scored[1].score < fuzzyAmbiguityGap {
		kind = CollisionNameAmbiguous
	}
	for i := range scored {
		scored[i].kind = kind
	}
	return scored
}
