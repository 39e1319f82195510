// Package match implements the name, text, JSON and SQLite matchers. Every
// matcher is a function of a Policy and a path that returns an Outcome
// carrying at most one record.
package match

import (
	"strings"
	"unicode"
)

// likeEscape is the escape character used in generated LIKE patterns.
const likeEscape = `\`

// Policy is the comparison rule for one run.
type Policy struct {
	text          string
	caseSensitive bool
	folded        string
}

// NewPolicy resolves the search text and case flag into a comparison policy.
// Case-insensitive comparison uses Unicode simple case folding and ignores locale.
func NewPolicy(text string, caseSensitive bool) *Policy {
	p := &Policy{
		text:          text,
		caseSensitive: caseSensitive,
	}
	if !caseSensitive {
		p.folded = foldString(text)
	}
	return p
}

// foldString maps every rune to one representative of its simple case
// folding orbit. Each rune folds to exactly one rune, so "ß" never becomes
// "ss" and matches stay aligned with the original text.
func foldString(s string) string {
	return strings.Map(foldRune, s)
}

// foldRune returns the smallest rune in the simple folding orbit of r, the
// same equivalence strings.EqualFold uses.
func foldRune(r rune) rune {
	if r <= unicode.MaxASCII {
		if 'a' <= r && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}
	lowest := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < lowest {
			lowest = f
		}
	}
	return lowest
}

// Contains reports whether s contains the search text under the policy.
func (p *Policy) Contains(s string) bool {
	if p.caseSensitive {
		return strings.Contains(s, p.text)
	}
	return strings.Contains(foldString(s), p.folded)
}

// LikePattern returns %text% with LIKE wildcards in the text escaped.
func (p *Policy) LikePattern() string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return "%" + r.Replace(p.text) + "%"
}

// SQLPredicate returns a WHERE clause testing column (an already quoted
// identifier) for the search text, with its bound arguments.
//
// SQLite's LIKE ignores ASCII case, so the case-insensitive form adds the
// NOCASE collation and the case-sensitive form confirms each hit with instr.
func (p *Policy) SQLPredicate(column string) (string, []any) {
	if p.caseSensitive {
		return column + ` LIKE ? ESCAPE '` + likeEscape + `' AND instr(` + column + `, ?) > 0`,
			[]any{p.LikePattern(), p.text}
	}
	return column + ` COLLATE NOCASE LIKE ? ESCAPE '` + likeEscape + `'`, []any{p.LikePattern()}
}
