// Package indent computes the indentation column of MSCL source lines.
//
// The engine never builds a parse tree. A line's column is derived from the
// nearest preceding code line and from keyword and continuation signals on
// that line and on the line being indented. Every query is a pure function of
// the buffer contents and never fails.
package indent

import "strings"

// KeywordSet is a fixed set of lower-case block keywords.
type KeywordSet map[string]struct{}

func newKeywordSet(words ...string) KeywordSet {
	set := make(KeywordSet, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

var (
	// IncreaseAtBOL opens a block when it is the first token of a line.
	IncreaseAtBOL = newKeywordSet("if", "elseif", "while")

	// IncreaseAtEOL opens a block when it is the last token of a line.
	IncreaseAtEOL = newKeywordSet("else")

	// DecreaseAtBOL closes a block when it is the first token of a line.
	DecreaseAtBOL = newKeywordSet("else", "elseif", "endif", "endwhile")
)

// MatchesKeywordSet reports whether word is exactly one of the keywords in
// set, ignoring case. Partial words never match.
func MatchesKeywordSet(word string, set KeywordSet) bool {
	if word == "" {
		return false
	}
	_, ok := set[strings.ToLower(word)]
	return ok
}

