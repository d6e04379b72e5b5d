package lexer

import "github.com/yaklabco/msclfmt/pkg/buffer"

// lineState is the cached scan result for one line.
type lineState struct {
	text     string // text the spans were computed from
	inString bool   // entry state
	exit     bool   // exit state
	spans    []Span
}

// Index is a side table of spans keyed by line, computed from a buffer and
// refreshed line by line as the buffer is edited.
//
// A line whose current text no longer matches the text it was scanned from is
// stale. Queries on stale lines report code, never comment or string.
type Index struct {
	buf   *buffer.Buffer
	lines []lineState

	// synced is the buffer revision at which every cached line was known to
	// match the buffer, or -1.
	synced int
}

// NewIndex scans the whole buffer.
func NewIndex(buf *buffer.Buffer) *Index {
	idx := &Index{buf: buf}
	idx.rescanFrom(0)
	idx.synced = buf.Revision()
	return idx
}

// Buffer returns the buffer this index describes.
func (ix *Index) Buffer() *buffer.Buffer {
	return ix.buf
}

// rescanFrom rescans every line from start to the end of the buffer.
func (ix *Index) rescanFrom(start int) {
	count := ix.buf.LineCount()
	if start > len(ix.lines) {
		start = len(ix.lines)
	}
	ix.lines = ix.lines[:start]

	inString := false
	if start > 0 {
		inString = ix.lines[start-1].exit
	}

	for line := start; line < count; line++ {
		ix.lines = append(ix.lines, ix.scan(line, inString))
		inString = ix.lines[line].exit
	}
}

func (ix *Index) scan(line int, inString bool) lineState {
	text := ix.buf.Line(line)
	spans, exit := ScanLine(text, inString)
	for i := range spans {
		spans[i].Line = line
	}
	return lineState{text: text, inString: inString, exit: exit, spans: spans}
}

// Refresh rescans line after an edit and continues with the following lines
// until their cached entry state agrees again. A change in line count
// rescans everything from line onwards.
//
// Refresh is meant to follow each edit. When more than one edit happened
// since the index was last in sync, lines other than the refreshed ones are
// checked against the buffer text on every query until the next full scan.
func (ix *Index) Refresh(line int) {
	before := ix.synced
	defer func() { ix.resync(before) }()

	line = max(line, 0)
	if len(ix.lines) != ix.buf.LineCount() || line >= len(ix.lines) {
		start := min(line, len(ix.lines))
		ix.rescanFrom(start)
		if start == 0 {
			before = ix.buf.Revision()
		}
		return
	}

	inString := false
	if line > 0 {
		inString = ix.lines[line-1].exit
	}
	ix.lines[line] = ix.scan(line, inString)

	for next := line + 1; next < len(ix.lines); next++ {
		entry := ix.lines[next-1].exit
		if ix.lines[next].inString == entry && ix.lines[next].text == ix.buf.Line(next) {
			return
		}
		ix.lines[next] = ix.scan(next, entry)
	}
}

// resync marks the index in sync with the buffer if the refresh that just
// ran covered the only edit made since the revision synced before it.
func (ix *Index) resync(before int) {
	rev := ix.buf.Revision()
	if before >= 0 && rev-before <= 1 {
		ix.synced = rev
		return
	}
	ix.synced = -1
}

// fresh returns the cached state of line if it still matches the buffer.
func (ix *Index) fresh(line int) (lineState, bool) {
	if line < 0 || line >= len(ix.lines) {
		return lineState{}, false
	}
	state := ix.lines[line]
	if ix.synced == ix.buf.Revision() {
		return state, true
	}
	if state.text != ix.buf.Line(line) {
		return lineState{}, false
	}
	return state, true
}

// SpansOn returns the spans of line, or nil if the line is stale.
func (ix *Index) SpansOn(line int) []Span {
	state, ok := ix.fresh(line)
	if !ok {
		return nil
	}
	return state.spans
}

// KindAt classifies a position.
func (ix *Index) KindAt(pos buffer.Position) Kind {
	for _, span := range ix.SpansOn(pos.Line) {
		if span.Contains(pos.Column) {
			return span.Kind
		}
	}
	return KindCode
}

// IsCommentOrStringAt reports whether pos lies inside a comment or string.
func (ix *Index) IsCommentOrStringAt(pos buffer.Position) bool {
	return ix.KindAt(pos) != KindCode
}

// IsCommentAt reports whether pos lies inside a comment.
func (ix *Index) IsCommentAt(pos buffer.Position) bool {
	return ix.KindAt(pos) == KindComment
}

// StartsInString reports whether line begins inside a string continued from
// the line before it.
func (ix *Index) StartsInString(line int) bool {
	state, ok := ix.fresh(line)
	return ok && state.inString
}
