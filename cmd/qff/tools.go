package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// SearchInput contains parameters for the search tool.
	SearchInput struct {
		Text          string `json:"text" jsonschema:"Text to find in entry names, JSON lines and SQLite tables"`
		Path          string `json:"path,omitempty" jsonschema:"Directory to search, relative to the served root (default: root)"`
		CaseSensitive bool   `json:"caseSensitive,omitempty" jsonschema:"Case sensitive search (default: false)"`
	}

	// SearchRecord is one match, with its path relative to the served root.
	SearchRecord struct {
		Path   string `json:"path"`
		Detail string `json:"detail"`
	}

	// SearchGroup holds the matches of one kind.
	SearchGroup struct {
		Kind    string         `json:"kind"`
		Records []SearchRecord `json:"records"`
	}

	// SearchOutput contains search results grouped by match kind.
	SearchOutput struct {
		Total    int           `json:"total"`
		Groups   []SearchGroup `json:"groups"`
		Warnings []string      `json:"warnings,omitempty"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Search a directory tree for text. Matches file and directory names, lines of .json files (with JSON paths of matching lines), and table names, column names and text rows of SQLite databases (.db, .sqlite, .sqlite3). Results are grouped by kind: name, json, text, database.",
	}, handleSearch)
}
