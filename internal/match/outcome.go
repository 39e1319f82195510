package match

import "github.com/sjc08/QuickFileFinder/internal/types"

// SkipReason says why a matcher produced no record.
type SkipReason string

const (
	SkipNoMatch     SkipReason = "no match"
	SkipTooLarge    SkipReason = "too large"
	SkipUnreadable  SkipReason = "unreadable"
	SkipUndecodable SkipReason = "not decodable"
	SkipNotDatabase SkipReason = "not a database"
)

// Outcome is the result of running one matcher against one entry.
type Outcome struct {
	Record *types.MatchRecord
	Skip   SkipReason
	// Err is the underlying cause of a skip, if there was one.
	Err error
}

// Matched reports whether the outcome carries a record.
func (o Outcome) Matched() bool {
	return o.Record != nil
}

// Reason renders the skip reason with its cause.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return string(o.Skip)
	}
	return string(o.Skip) + ": " + o.Err.Error()
}

func matched(path string, kind types.MatchKind, detail string) Outcome {
	if detail == "" {
		return Outcome{Skip: SkipNoMatch}
	}
	return Outcome{Record: &types.MatchRecord{Path: path, Kind: kind, Detail: detail}}
}

func skipped(reason SkipReason, err error) Outcome {
	return Outcome{Skip: reason, Err: err}
}
