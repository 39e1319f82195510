// Package search runs a single-pass search over a directory tree, routing
// each entry to the name, JSON and SQLite matchers.
package search

import (
	"context"

	"github.com/sjc08/QuickFileFinder/internal/filesystem"
	"github.com/sjc08/QuickFileFinder/internal/match"
	"github.com/sjc08/QuickFileFinder/internal/pathfilter"
	"github.com/sjc08/QuickFileFinder/internal/types"
)

// jsonFallbackTag marks text matches of JSON files that could not be decoded.
const jsonFallbackTag = "JSON"

// Root validation errors, re-exported for callers that only import search.
var (
	ErrRootNotFound = filesystem.ErrRootNotFound
	ErrNotDirectory = filesystem.ErrNotDirectory
)

// Progress is reported after every processed entry.
type Progress struct {
	Done  int
	Total int
}

// Fraction returns progress in [0, 1]. An empty tree is complete.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// Options carries the optional callbacks of a run.
type Options struct {
	// OnProgress is called after each entry, and once for an empty tree.
	OnProgress func(Progress)
	// OnWarning is called for non-fatal problems such as unreadable directories.
	OnWarning func(error)
}

// Service provides search over a directory tree.
type Service struct {
	pathFilter *pathfilter.PathFilter
}

// New creates a new search Service. A nil filter admits every entry.
func New(pf *pathfilter.PathFilter) *Service {
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	return &Service{
		pathFilter: pf,
	}
}

// Run searches req.Root for req.Text. Every entry below the root is listed
// before matching starts so progress has a fixed denominator; entries are
// then processed one at a time, in order.
//
// A missing root aborts the run before traversal. When ctx is cancelled the
// records collected so far are returned together with ctx.Err().
func (s *Service) Run(ctx context.Context, req types.SearchRequest, opts Options) (types.SearchReport, error) {
	var report types.SearchReport

	if req.Text == "" {
		return report, &SearchError{Message: "Search text cannot be empty"}
	}

	root := req.Root
	if root == "" {
		root = "."
	}
	tree := filesystem.New(root, s.pathFilter)
	if err := tree.CheckRoot(); err != nil {
		return report, err
	}

	warn := func(err error) {
		report.Warnings = append(report.Warnings, err.Error())
		if opts.OnWarning != nil {
			opts.OnWarning(err)
		}
	}
	progress := func(p Progress) {
		if opts.OnProgress != nil {
			opts.OnProgress(p)
		}
	}

	entries, err := tree.Enumerate(ctx, warn)
	if err != nil {
		return report, err
	}
	report.Entries = len(entries)

	policy := match.NewPolicy(req.Text, req.CaseSensitive)

	if len(entries) == 0 {
		progress(Progress{})
		return report, nil
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		s.process(ctx, policy, entry, &report)
		progress(Progress{Done: i + 1, Total: len(entries)})
	}

	return report, nil
}

// process runs the name matcher and, for regular files, the content matcher
// chosen by extension. Records and skips are appended to report.
func (s *Service) process(ctx context.Context, p *match.Policy, entry types.Entry, report *types.SearchReport) {
	if out := match.Name(p, entry.Path, entry.IsDir); out.Matched() {
		report.Records = append(report.Records, *out.Record)
	}
	if !entry.Regular {
		return
	}

	r := routeFor(entry.Name)
	var out match.Outcome
	matcher := r.String()

	switch r {
	case routeJSON:
		out = match.JSON(p, entry.Path)
		if out.Skip == match.SkipUndecodable {
			report.Skips = append(report.Skips, newSkip(entry.Path, matcher, out))
			matcher = "text"
			out = match.Text(p, entry.Path, jsonFallbackTag)
		}
	case routeDatabase:
		out = match.Database(ctx, p, entry.Path)
	default:
		return
	}

	switch {
	case out.Matched():
		report.Records = append(report.Records, *out.Record)
	case out.Skip != match.SkipNoMatch:
		report.Skips = append(report.Skips, newSkip(entry.Path, matcher, out))
	}
}

func newSkip(path, matcher string, out match.Outcome) types.Skip {
	return types.Skip{
		Path:    path,
		Matcher: matcher,
		Reason:  out.Reason(),
	}
}

// SearchError represents an invalid search request.
type SearchError struct {
	Message string
}

func (e *SearchError) Error() string {
	return e.Message
}
