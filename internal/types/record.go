// Package types defines the data structures shared by the matchers, the
// traversal engine and the presentation layer.
package types

// MatchKind classifies a match record for grouping and presentation.
type MatchKind string

const (
	MatchKindName     MatchKind = "name"
	MatchKindJSON     MatchKind = "json"
	MatchKindText     MatchKind = "text"
	MatchKindDatabase MatchKind = "database"
)

// MatchKinds lists every kind in presentation order.
var MatchKinds = []MatchKind{
	MatchKindName,
	MatchKindJSON,
	MatchKindText,
	MatchKindDatabase,
}

// Title returns the heading used when presenting a group of this kind.
func (k MatchKind) Title() string {
	switch k {
	case MatchKindName:
		return "Name matches"
	case MatchKindJSON:
		return "JSON content matches"
	case MatchKindText:
		return "Text content matches"
	case MatchKindDatabase:
		return "Database content matches"
	default:
		return string(k)
	}
}

type (
	// MatchRecord is one entry of the result set. Records are never mutated
	// after creation.
	MatchRecord struct {
		Path   string    `json:"path" yaml:"path"`
		Kind   MatchKind `json:"kind" yaml:"kind"`
		Detail string    `json:"detail" yaml:"detail"`
	}

	// Group holds the records of a single kind, in traversal order.
	Group struct {
		Kind    MatchKind     `json:"kind" yaml:"kind"`
		Records []MatchRecord `json:"records" yaml:"records"`
	}
)

// GroupByKind splits records into groups ordered as MatchKinds. Empty groups
// are omitted and record order within a group is preserved.
func GroupByKind(records []MatchRecord) []Group {
	byKind := make(map[MatchKind][]MatchRecord, len(MatchKinds))
	for _, r := range records {
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}

	groups := make([]Group, 0, len(byKind))
	for _, k := range MatchKinds {
		if recs := byKind[k]; len(recs) > 0 {
			groups = append(groups, Group{Kind: k, Records: recs})
		}
	}
	return groups
}
