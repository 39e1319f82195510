package types

type (
	// SearchRequest is one search run: the text to find, the directory to
	// walk, and whether comparisons respect case.
	SearchRequest struct {
		Text          string `json:"text"`
		Root          string `json:"root"`
		CaseSensitive bool   `json:"caseSensitive,omitempty"`
	}

	// Skip records why an entry produced no content record.
	Skip struct {
		Path    string `json:"path" yaml:"path"`
		Matcher string `json:"matcher" yaml:"matcher"`
		Reason  string `json:"reason" yaml:"reason"`
	}

	// SearchReport is the outcome of a run, in traversal order.
	SearchReport struct {
		Records  []MatchRecord `json:"records"`
		Skips    []Skip        `json:"skips,omitempty"`
		Warnings []string      `json:"warnings,omitempty"`
		Entries  int           `json:"entries"`
	}
)

// Total returns the number of match records in the report.
func (r SearchReport) Total() int {
	return len(r.Records)
}
