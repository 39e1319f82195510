package match

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/sjc08/QuickFileFinder/internal/types"
)

// MaxJSONSize is the largest JSON file that is content-searched. Larger files
// are skipped without a record.
const MaxJSONSize = 50 << 20

var errNotUTF8 = errors.New("content is not valid UTF-8")

// JSON scans a JSON file line by line. Each matching line is recorded by
// number and, when the line parses as a standalone JSON value, annotated with
// the paths of every scalar leaf in that value.
//
// Lines are parsed independently so one malformed record in a JSON-lines log
// never hides matches on the lines after it. A file that is not valid UTF-8
// cannot be JSON and is reported as SkipUndecodable.
func JSON(p *Policy, path string) Outcome {
	info, err := os.Stat(path)
	if err != nil {
		return skipped(SkipUnreadable, err)
	}
	if info.Size() > MaxJSONSize {
		return skipped(SkipTooLarge, fmt.Errorf("%s exceeds %s",
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(MaxJSONSize)))
	}

	var hits []string
	err = scanLines(path, MaxJSONSize+1, func(n int, line string) error {
		if !utf8.ValidString(line) {
			return fmt.Errorf("line %d: %w", n, errNotUTF8)
		}
		if p.Contains(line) {
			hits = append(hits, describeLine(n, line))
		}
		return nil
	})
	if errors.Is(err, errNotUTF8) {
		return skipped(SkipUndecodable, err)
	}
	if err != nil {
		return skipped(SkipUnreadable, err)
	}
	if len(hits) == 0 {
		return skipped(SkipNoMatch, nil)
	}
	return matched(path, types.MatchKindJSON, strings.Join(hits, "; "))
}

func describeLine(n int, line string) string {
	label := "line " + strconv.Itoa(n)
	paths := LeafPaths(line)
	if len(paths) == 0 {
		return label
	}
	return label + ": " + strings.Join(paths, ", ")
}

// LeafPaths parses line as a single JSON value and returns the path of every
// scalar leaf, e.g. "a.b" or "items[2]". Object keys are visited in sorted
// order. A bare scalar yields "$". Nil is returned when the line is not a
// complete JSON value.
func LeafPaths(line string) []string {
	value, err := oj.ParseString(line)
	if err != nil {
		return nil
	}
	var paths []string
	collectLeaves(value, jp.R(), &paths)
	return paths
}

func collectLeaves(value any, at jp.Expr, paths *[]string) {
	switch v := value.(type) {
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(v)) {
			collectLeaves(v[key], slices.Clip(at).C(key), paths)
		}
	case []any:
		for i, elem := range v {
			collectLeaves(elem, slices.Clip(at).N(i), paths)
		}
	default:
		*paths = append(*paths, formatPath(at))
	}
}

// formatPath renders a JSONPath without its root marker: $.a.b[2] -> a.b[2].
func formatPath(at jp.Expr) string {
	if len(at) <= 1 {
		return "$"
	}
	s := strings.TrimPrefix(at.String(), "$")
	return strings.TrimPrefix(s, ".")
}
