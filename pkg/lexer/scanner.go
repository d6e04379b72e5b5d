// Package lexer finds the comment and string spans of MSCL source.
//
// The scanner is a small stateful sweep over lines. The only state carried
// from one line to the next is whether a string literal is still open, which
// happens when a line inside a string ends with a continuation backslash.
package lexer

// Kind tags a non-code span.
type Kind int

const (
	// KindCode is returned by KindAt for positions outside every span.
	KindCode Kind = iota

	// KindComment is a "#" comment running to end of line.
	KindComment

	// KindString is a double-quoted string literal.
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindString:
		return "string"
	default:
		return "code"
	}
}

// Span is a half-open column range [Start, End) on a single line.
type Span struct {
	Line  int
	Start int
	End   int
	Kind  Kind
}

// Contains reports whether column col lies inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.Start && col < s.End
}

const (
	commentChar = '#'
	quoteChar   = '"'
)

// ScanLine tags the spans of one line. inString is true if the line begins
// inside a string left open by the previous line. The returned flag is the
// entry state for the next line.
//
// Span.Line is left at zero; callers that track lines set it.
func ScanLine(text string, inString bool) ([]Span, bool) {
	var spans []Span

	pos := 0
	if inString {
		end, closed := scanString(text, 0)
		spans = append(spans, Span{Start: 0, End: end, Kind: KindString})
		if !closed {
			return spans, continuesString(text)
		}
		pos = end
	}

	for pos < len(text) {
		switch text[pos] {
		case commentChar:
			spans = append(spans, Span{Start: pos, End: len(text), Kind: KindComment})
			return spans, false
		case quoteChar:
			end, closed := scanString(text, pos+1)
			spans = append(spans, Span{Start: pos, End: end, Kind: KindString})
			if !closed {
				return spans, continuesString(text)
			}
			pos = end
		default:
			pos++
		}
	}

	return spans, false
}

// scanString scans string content starting at pos (just past an opening
// quote, or at column 0 for a continued string). It returns the column just
// past the closing quote, or len(text) if the string is not closed here.
func scanString(text string, pos int) (int, bool) {
	for pos < len(text) {
		if text[pos] != quoteChar {
			pos++
			continue
		}
		// A doubled quote is a literal quote inside the string.
		if pos+1 < len(text) && text[pos+1] == quoteChar {
			pos += 2
			continue
		}
		return pos + 1, true
	}
	return len(text), false
}

// continuesString reports whether an unterminated string carries over to the
// next line: only a trailing continuation backslash keeps it open.
func continuesString(text string) bool {
	for idx := len(text) - 1; idx >= 0; idx-- {
		switch text[idx] {
		case ' ', '\t':
			continue
		case '\\':
			return true
		default:
			return false
		}
	}
	return false
}

// Scan sweeps all lines and returns every span in order.
func Scan(lines []string) []Span {
	var all []Span
	inString := false
	for idx, text := range lines {
		var spans []Span
		spans, inString = ScanLine(text, inString)
		for _, span := range spans {
			span.Line = idx
			all = append(all, span)
		}
	}
	return all
}
