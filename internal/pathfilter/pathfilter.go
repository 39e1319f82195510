// Package pathfilter excludes user-configured paths from a search.
package pathfilter

import (
	"regexp"
	"strings"

	"github.com/sjc08/QuickFileFinder/internal/types"
)

// PathFilter holds compiled ignore patterns. The zero set admits every path.
type PathFilter struct {
	compiled []*regexp.Regexp
}

// New creates a new PathFilter with the given configuration.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{}
	if config == nil {
		return pf
	}

	for _, pattern := range config.IgnoredPatterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		pf.compiled = append(pf.compiled, globToRegexp(pattern))
	}
	return pf
}

// globToRegexp converts a glob pattern to an anchored regexp.
//
// "**" matches across directories, "*" and "?" stay within one path
// segment. A pattern without a slash matches the base name at any depth.
func globToRegexp(pattern string) *regexp.Regexp {
	// Normalize pattern path separators (Windows compatibility)
	normalizedPattern := strings.ReplaceAll(pattern, "\\", "/")
	normalizedPattern = strings.TrimPrefix(normalizedPattern, "/")

	// Escape all regex special chars first
	regexPattern := regexp.QuoteMeta(normalizedPattern)

	// Convert glob patterns (unescape the escaped versions)
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*`, ".*")  // ** matches any
	regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*") // * matches non-slash
	regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")  // ? matches single char

	if !strings.Contains(normalizedPattern, "/") {
		regexPattern = "(?:.*/)?" + regexPattern
	}

	// QuoteMeta output with the substitutions above is always valid
	return regexp.MustCompile("^" + regexPattern + "$")
}

// IsAllowed reports whether a root-relative path survives the ignore rules.
func (pf *PathFilter) IsAllowed(path string) bool {
	// Normalize path separators
	normalizedPath := strings.ReplaceAll(path, "\\", "/")

	for _, re := range pf.compiled {
		if re.MatchString(normalizedPath) {
			return false
		}
	}
	return true
}
