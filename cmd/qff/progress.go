package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/sjc08/QuickFileFinder/internal/search"
)

// progressBar draws search progress on a single terminal line. It is a
// no-op when disabled or when the writer is not a terminal.
type progressBar struct {
	w       io.Writer
	bar     progress.Model
	enabled bool
	drawn   bool
	percent int
}

func newProgressBar(w io.Writer, enabled bool) *progressBar {
	return &progressBar{
		w:       w,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		enabled: enabled && isTerminal(w),
		percent: -1,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Update redraws the bar when the whole-percent value changes.
func (p *progressBar) Update(pr search.Progress) {
	if !p.enabled {
		return
	}
	pct := int(pr.Fraction() * 100)
	if pct == p.percent {
		return
	}
	p.percent = pct
	p.drawn = true
	fmt.Fprintf(p.w, "\r%s %s/%s entries", p.bar.ViewAs(pr.Fraction()),
		humanize.Comma(int64(pr.Done)), humanize.Comma(int64(pr.Total)))
}

// Clear erases the bar so other output starts on a clean line.
func (p *progressBar) Clear() {
	if !p.drawn {
		return
	}
	p.drawn = false
	p.percent = -1
	fmt.Fprint(p.w, "\r\x1b[2K")
}
