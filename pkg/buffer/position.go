package buffer

import "fmt"

// Position is a zero-based line index and byte column within that line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String renders the position one-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p sorts before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// LineStart returns the absolute byte offset of the first byte of line idx,
// counting one byte per "\n" separator.
func (b *Buffer) LineStart(idx int) int {
	idx = min(max(idx, 0), len(b.lines))
	offset := 0
	for i := range idx {
		offset += len(b.lines[i]) + 1
	}
	return offset
}

// Offset converts a position to an absolute byte offset.
// Returns (0, false) if the position is out of range.
func (b *Buffer) Offset(pos Position) (int, bool) {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return 0, false
	}
	if pos.Column < 0 || pos.Column > len(b.lines[pos.Line]) {
		return 0, false
	}
	return b.LineStart(pos.Line) + pos.Column, true
}

// PositionAt converts an absolute byte offset to a position.
// Offsets past the end clamp to the end of the last line.
func (b *Buffer) PositionAt(offset int) Position {
	if offset <= 0 {
		return Position{}
	}

	for idx, line := range b.lines {
		if offset <= len(line) {
			return Position{Line: idx, Column: offset}
		}
		offset -= len(line) + 1
	}

	last := len(b.lines) - 1
	return Position{Line: last, Column: len(b.lines[last])}
}

// Clamp moves pos into the valid range of the buffer.
func (b *Buffer) Clamp(pos Position) Position {
	pos.Line = min(max(pos.Line, 0), len(b.lines)-1)
	pos.Column = min(max(pos.Column, 0), len(b.lines[pos.Line]))
	return pos
}
