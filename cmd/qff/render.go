package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/sjc08/QuickFileFinder/internal/config"
	"github.com/sjc08/QuickFileFinder/internal/types"
)

var (
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	countStyle      = lipgloss.NewStyle().Faint(true)
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	totalStyle      = lipgloss.NewStyle().Bold(true)

	colorWarning = color.New(color.FgYellow)
	colorSkip    = color.New(color.Faint)
)

// resultSet is the machine-readable shape of a report.
type resultSet struct {
	Total  int           `json:"total" yaml:"total"`
	Groups []types.Group `json:"groups" yaml:"groups"`
}

func parseFormat(f string) (string, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "" {
		return "table", nil
	}
	if !slices.Contains(config.Formats, f) {
		return "", fmt.Errorf("invalid format %q: must be one of %s", f, strings.Join(config.Formats, ", "))
	}
	return f, nil
}

func render(w io.Writer, f string, report types.SearchReport) error {
	f, err := parseFormat(f)
	if err != nil {
		return err
	}

	groups := types.GroupByKind(report.Records)
	switch f {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resultSet{Total: report.Total(), Groups: groups})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resultSet{Total: report.Total(), Groups: groups}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderTable(w, groups, report.Total())
	}
}

// renderTable prints one heading and one Path/Detail table per group,
// followed by the total.
func renderTable(w io.Writer, groups []types.Group, total int) error {
	if total == 0 {
		_, err := fmt.Fprintln(w, "No matches found.")
		return err
	}

	for _, g := range groups {
		heading := headingStyle.Render(g.Kind.Title()) + " " +
			countStyle.Render("("+humanize.Comma(int64(len(g.Records)))+")")

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Path", "Detail").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerCellStyle
				}
				return cellStyle
			})
		for _, r := range g.Records {
			t.Row(r.Path, r.Detail)
		}

		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", heading, t.Render()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, totalStyle.Render("Total matches: "+humanize.Comma(int64(total))))
	return err
}

func warnf(w io.Writer, format string, args ...any) {
	colorWarning.Fprintf(w, "warning: "+format+"\n", args...)
}

func printSkips(w io.Writer, skips []types.Skip) {
	for _, s := range skips {
		colorSkip.Fprintf(w, "skipped %s (%s): %s\n", s.Path, s.Matcher, s.Reason)
	}
}
