// Package uri builds SQLite URI filenames for database files found during a search.
package uri

import (
	"net/url"
	"path/filepath"
	"strings"
)

// SQLiteReadOnly returns a "file:" URI that opens path read-only. The driver
// only honours URI parameters such as mode=ro when the name carries the
// "file:" prefix, and a read-only open never creates a missing file.
func SQLiteReadOnly(path string) string {
	return SQLite(path, url.Values{"mode": {"ro"}})
}

// SQLite returns a "file:" URI for path with the given query parameters.
func SQLite(path string, params url.Values) string {
	slashed := filepath.ToSlash(path)

	// URI encode each segment, but keep slashes as slashes
	parts := strings.Split(slashed, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	encodedPath := strings.Join(parts, "/")

	// Windows drive letters need an empty authority: file:///C:/data.db
	if vol := filepath.VolumeName(path); vol != "" {
		encodedPath = "/" + strings.Replace(encodedPath, url.PathEscape(vol), vol, 1)
	}

	if len(params) == 0 {
		return "file:" + encodedPath
	}
	return "file:" + encodedPath + "?" + params.Encode()
}
