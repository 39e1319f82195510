package types

// Config mirrors the optional YAML configuration file. Pointer fields are
// nil when the file leaves them unset.
type Config struct {
	PathFilter    PathFilterConfig `yaml:",inline"`
	CaseSensitive *bool            `yaml:"caseSensitive,omitempty"`
	Format        string           `yaml:"format,omitempty"`
	Progress      *bool            `yaml:"progress,omitempty"`
}
