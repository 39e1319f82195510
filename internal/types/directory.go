package types

type (
	// Entry is one filesystem entry found under the search root.
	Entry struct {
		Path    string `json:"path"`
		Name    string `json:"name"`
		IsDir   bool   `json:"isDir,omitempty"`
		Regular bool   `json:"regular,omitempty"`
	}

	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		IgnoredPatterns []string `json:"ignoredPatterns" yaml:"ignore"`
	}
)
