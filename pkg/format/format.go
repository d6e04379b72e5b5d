// Package format re-indents MSCL source.
//
// Format walks a line range top to bottom. Each line is re-indented with the
// indentation engine and then optionally stripped of trailing whitespace, so
// every decision sees the already formatted lines above it. Each line is
// replaced in one step and the span index is refreshed before the next line
// is examined.
package format

import (
	"strings"

	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/config"
	"github.com/yaklabco/msclfmt/pkg/indent"
	"github.com/yaklabco/msclfmt/pkg/lexer"
)

// Options controls a single format call.
type Options struct {
	// IndentOffset is the number of columns per nesting level.
	IndentOffset int

	// DeleteTrailingWhitespace strips trailing spaces and tabs from every
	// formatted line.
	DeleteTrailingWhitespace bool

	// DeleteTrailingBlankLines strips blank lines at the end of the buffer.
	// It only applies when the whole buffer is formatted.
	DeleteTrailingBlankLines bool
}

// DefaultOptions returns the modern edition defaults.
func DefaultOptions() Options {
	return Options{
		IndentOffset:             indent.DefaultOffset,
		DeleteTrailingWhitespace: false,
		DeleteTrailingBlankLines: true,
	}
}

// OptionsFromConfig derives format options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		IndentOffset:             cfg.Offset(),
		DeleteTrailingWhitespace: cfg.TrailingWhitespace(),
		DeleteTrailingBlankLines: cfg.TrailingBlankLines(),
	}
}

// Indent returns the options passed to the indentation engine.
func (o Options) Indent() indent.Options {
	return indent.Options{Offset: o.IndentOffset}
}

// Range is a region of the buffer between two positions.
type Range struct {
	Start buffer.Position
	End   buffer.Position
}

// LineRange returns a range covering lines first through last, inclusive.
func LineRange(first, last int) *Range {
	return &Range{
		Start: buffer.Position{Line: first},
		End:   buffer.Position{Line: last, Column: 1},
	}
}

// Lines returns the half-open line interval [from, to) covered by the range.
// An end at column 0 of a later line does not include that line.
func (r Range) Lines(buf *buffer.Buffer) (int, int) {
	start, end := r.Start, r.End
	if end.Before(start) {
		start, end = end, start
	}

	from := start.Line
	to := end.Line + 1
	if end.Column == 0 && end.Line > start.Line {
		to = end.Line
	}

	from = min(max(from, 0), buf.LineCount())
	to = min(max(to, from), buf.LineCount())
	return from, to
}

// Stats summarizes what a format call changed.
type Stats struct {
	// Lines is the number of lines visited.
	Lines int

	// Changed is the number of lines whose text changed.
	Changed int

	// BlankLinesRemoved is the number of trailing blank lines deleted.
	BlankLinesRemoved int
}

// Modified reports whether anything changed.
func (s Stats) Modified() bool {
	return s.Changed > 0 || s.BlankLinesRemoved > 0
}

// Format re-indents the lines of rng, or the whole buffer when rng is nil.
// Blank lines in range are never indented; they only lose their whitespace
// when DeleteTrailingWhitespace is set.
// idx must describe buf; a nil idx is built on the fly.
func Format(buf *buffer.Buffer, idx *lexer.Index, rng *Range, opts Options) Stats {
	if idx == nil {
		idx = lexer.NewIndex(buf)
	}

	from, to := 0, buf.LineCount()
	if rng != nil {
		from, to = rng.Lines(buf)
	}

	var stats Stats
	for line := from; line < to; line++ {
		stats.Lines++
		if formatLine(buf, idx, line, opts) {
			stats.Changed++
		}
	}

	if rng == nil && opts.DeleteTrailingBlankLines {
		stats.BlankLinesRemoved = deleteTrailingBlankLines(buf, idx)
	}

	return stats
}

// formatLine re-indents one line and strips its trailing whitespace if
// configured. Blank lines are not indented.
func formatLine(buf *buffer.Buffer, idx *lexer.Index, line int, opts Options) bool {
	text := buf.Line(line)

	if !buffer.IsBlank(text) {
		text = reindent(buf, idx, line, opts)
	}
	if opts.DeleteTrailingWhitespace {
		text = buffer.TrimTrailingSpace(text)
	}

	if !buf.SetLine(line, text) {
		return false
	}
	idx.Refresh(line)
	return true
}

// reindent returns the text of line with its leading whitespace replaced by
// the computed indentation. Lines that begin inside a continued string are
// string content and come back unchanged.
func reindent(buf *buffer.Buffer, idx *lexer.Index, line int, opts Options) string {
	text := buf.Line(line)
	if idx.StartsInString(line) {
		return text
	}

	column := indent.CalculateIndent(buf, idx, line, opts.Indent())
	return strings.Repeat(" ", column) + text[buffer.IndentColumn(text):]
}

// IndentLine re-indents a single line, blank or not, leaving the rest of the
// line untouched. It returns whether the line changed and how many bytes of
// leading whitespace were added (negative when removed).
func IndentLine(buf *buffer.Buffer, idx *lexer.Index, line int, opts Options) (bool, int) {
	if idx == nil {
		idx = lexer.NewIndex(buf)
	}
	if line < 0 || line >= buf.LineCount() {
		return false, 0
	}

	before := buf.Line(line)
	after := reindent(buf, idx, line, opts)
	if !buf.SetLine(line, after) {
		return false, 0
	}
	idx.Refresh(line)
	return true, buffer.IndentColumn(after) - buffer.IndentColumn(before)
}

// deleteTrailingBlankLines removes blank lines at the end of the buffer. A
// buffer of only blank lines keeps its first line.
func deleteTrailingBlankLines(buf *buffer.Buffer, idx *lexer.Index) int {
	last := buf.LineCount() - 1
	for last >= 0 && buf.IsBlank(last) {
		last--
	}

	from := max(last+1, 1)
	removed := buf.DeleteLines(from, buf.LineCount())
	if removed > 0 {
		idx.Refresh(from)
	}
	return removed
}

// Source formats a whole file held in memory.
func Source(content []byte, opts Options) ([]byte, Stats) {
	buf := buffer.New(string(content))
	stats := Format(buf, nil, nil, opts)
	if !stats.Modified() {
		return content, stats
	}
	return []byte(buf.String()), stats
}
