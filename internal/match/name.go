package match

import (
	"path/filepath"

	"github.com/sjc08/QuickFileFinder/internal/types"
)

// Name tests the base name of path for the search text.
func Name(p *Policy, path string, isDir bool) Outcome {
	if !p.Contains(filepath.Base(path)) {
		return skipped(SkipNoMatch, nil)
	}
	if isDir {
		return matched(path, types.MatchKindName, "Directory name")
	}
	return matched(path, types.MatchKindName, "File name")
}
