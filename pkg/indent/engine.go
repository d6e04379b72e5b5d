package indent

import (
	"fmt"

	"github.com/yaklabco/msclfmt/pkg/buffer"
)

// DefaultOffset is the number of columns per nesting level.
const DefaultOffset = 4

// Options configures a single indent computation.
type Options struct {
	// Offset is the number of columns per nesting level.
	// Non-positive values fall back to DefaultOffset.
	Offset int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Offset: DefaultOffset}
}

func (o Options) offset() int {
	if o.Offset <= 0 {
		return DefaultOffset
	}
	return o.Offset
}

// Decision records how the column of a line was derived.
type Decision struct {
	// Line is the zero-based line the decision is for.
	Line int

	// Column is the computed indentation column.
	Column int

	// Base is the indentation of the previous code line, 0 at buffer start.
	Base int

	// Prev is the previous code line, or -1 at buffer start.
	Prev int

	// Label is true when Line is a label line.
	Label bool

	Increase bool
	Decrease bool

	// Reasons are human readable notes on the signals that fired.
	Reasons []string
}

// Decide computes the indentation column of line along with the signals that
// produced it. cls may be nil, in which case every position is code.
func Decide(buf *buffer.Buffer, cls Classifier, line int, opts Options) Decision {
	if cls == nil {
		cls = NoSpans{}
	}

	dec := Decision{Line: line, Prev: -1}

	if IsLabelLine(buf.Line(line)) {
		dec.Label = true
		dec.Reasons = append(dec.Reasons, "label lines are flush left")
		return dec
	}

	prev, ok := PreviousCodeLine(buf, cls, line)
	if !ok {
		dec.Reasons = append(dec.Reasons, "no previous code line")
	} else {
		dec.Prev = prev
		dec.Base = buffer.IndentColumn(buf.Line(prev))
		dec.Reasons = append(dec.Reasons,
			fmt.Sprintf("previous code line %d is indented %d", prev+1, dec.Base))

		dec.Increase, dec.Reasons = increaseAfter(buf, cls, prev, dec.Reasons)
	}

	dec.Decrease, dec.Reasons = decreaseAt(buf, cls, line, dec.Prev, dec.Reasons)

	offset := opts.offset()
	column := dec.Base
	if dec.Increase {
		column += offset
	}
	if dec.Decrease {
		column -= offset
	}
	dec.Column = max(column, 0)

	return dec
}

// CalculateIndent returns the indentation column of line.
func CalculateIndent(buf *buffer.Buffer, cls Classifier, line int, opts Options) int {
	return Decide(buf, cls, line, opts).Column
}

// increaseAfter reports whether the line after prev opens a nesting level.
// The end-of-line signals take precedence; the first token of prev is only
// consulted when neither fires.
func increaseAfter(buf *buffer.Buffer, cls Classifier, prev int, reasons []string) (bool, []string) {
	if word := lastCodeToken(buf, cls, prev); MatchesKeywordSet(word, IncreaseAtEOL) {
		return true, append(reasons, fmt.Sprintf("previous code line ends with %q", word))
	}

	if continues(buf, cls, prev) && !continuedBefore(buf, cls, prev) {
		return true, append(reasons, "previous code line starts a continuation")
	}

	if word := firstCodeToken(buf, cls, prev); MatchesKeywordSet(word, IncreaseAtBOL) {
		return true, append(reasons, fmt.Sprintf("previous code line starts with %q", word))
	}

	return false, reasons
}

// decreaseAt reports whether line closes a nesting level, either by its own
// first token or by what happened on prev.
func decreaseAt(buf *buffer.Buffer, cls Classifier, line, prev int, reasons []string) (bool, []string) {
	if word := firstCodeToken(buf, cls, line); MatchesKeywordSet(word, DecreaseAtBOL) {
		return true, append(reasons, fmt.Sprintf("line starts with %q", word))
	}

	if prev < 0 {
		return false, reasons
	}

	for _, word := range separatorTokens(buf, cls, prev) {
		if MatchesKeywordSet(word, DecreaseAtBOL) {
			return true, append(reasons, fmt.Sprintf("previous code line has a %q statement", word))
		}
	}

	if !continues(buf, cls, prev) && continuedBefore(buf, cls, prev) {
		return true, append(reasons, "previous code line ends a continuation")
	}

	return false, reasons
}

// continuedBefore reports whether the code line preceding line ends with a
// continuation backslash. Filler lines in between are skipped.
func continuedBefore(buf *buffer.Buffer, cls Classifier, line int) bool {
	before, ok := PreviousCodeLine(buf, cls, line)
	return ok && continues(buf, cls, before)
}
