package search

import (
	"path/filepath"
	"strings"
)

// route names the content matcher a regular file is sent to.
type route int

const (
	routeNameOnly route = iota
	routeJSON
	routeDatabase
)

func (r route) String() string {
	switch r {
	case routeJSON:
		return "json"
	case routeDatabase:
		return "database"
	default:
		return "name"
	}
}

// contentRoutes is the fixed extension table. Extensions not listed here are
// matched by name only.
var contentRoutes = map[string]route{
	".json":    routeJSON,
	".db":      routeDatabase,
	".sqlite":  routeDatabase,
	".sqlite3": routeDatabase,
}

// routeFor classifies a file name by its extension, ignoring case.
func routeFor(name string) route {
	return contentRoutes[strings.ToLower(filepath.Ext(name))]
}
