package match

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sjc08/QuickFileFinder/internal/types"
)

// maxLineSize bounds a single line held in memory by the text scanner.
const maxLineSize = 64 << 20

// Text scans path line by line and reports every 1-based line number that
// contains the search text. A non-empty tag names the file type the text scan
// stands in for, e.g. "JSON".
func Text(p *Policy, path, tag string) Outcome {
	var lines []string
	err := scanLines(path, maxLineSize, func(n int, line string) error {
		if p.Contains(line) {
			lines = append(lines, strconv.Itoa(n))
		}
		return nil
	})
	if err != nil {
		return skipped(SkipUnreadable, err)
	}
	if len(lines) == 0 {
		return skipped(SkipNoMatch, nil)
	}

	detail := "lines " + strings.Join(lines, ", ")
	if tag != "" {
		detail = tag + ", " + detail
	}
	return matched(path, types.MatchKindText, detail)
}

// scanLines calls fn for each line of the file at path with its 1-based
// number. Scanning stops at the first error returned by fn.
func scanLines(path string, maxLine int, fn func(n int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLine)

	n := 0
	for scanner.Scan() {
		n++
		if err := fn(n, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
