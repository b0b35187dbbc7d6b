package domain

// MatchResult is the outcome of identity resolution. The resolver always
// commits to one branch: either Matched with the existing record, or
// unmatched with no record. There is no ambiguous state.
type MatchResult struct {
	Matched bool
	Record  *DirectoryRecord
}

// Match wraps an existing record in a matched result.
func Match(record *DirectoryRecord) MatchResult {
	return MatchResult{Matched: true, Record: record}
}

// NoMatch is the unmatched result.
func NoMatch() MatchResult {
	return MatchResult{}
}
