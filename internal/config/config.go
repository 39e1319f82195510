// Package config loads the optional qff configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sjc08/QuickFileFinder/internal/types"
)

// Formats lists the accepted output formats.
var Formats = []string{"table", "json", "yaml"}

// DefaultPath returns the per-user config location, e.g.
// ~/.config/qff/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "qff", "config.yaml"), nil
}

// Load reads the config file at path. A missing file yields an empty config
// unless required is set.
func Load(path string, required bool) (types.Config, error) {
	var cfg types.Config

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		if errors.Is(err, fs.ErrPermission) {
			return cfg, fmt.Errorf("permission denied: %s", path)
		}
		return cfg, fmt.Errorf("failed to read config: %s - %w", path, err)
	}

	return Parse(content)
}

// Parse decodes YAML config content and validates it.
func Parse(content []byte) (types.Config, error) {
	var cfg types.Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format != "" && !slices.Contains(Formats, cfg.Format) {
		return types.Config{}, fmt.Errorf("invalid format %q: must be one of %s",
			cfg.Format, strings.Join(Formats, ", "))
	}
	return cfg, nil
}
