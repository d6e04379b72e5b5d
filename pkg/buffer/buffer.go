// Package buffer provides the mutable line buffer the indentation engine reads
// and the formatter rewrites.
package buffer

import "strings"

// Buffer is an ordered sequence of lines. Line terminators are not stored;
// HasFinalNewline records whether the source text ended with one.
type Buffer struct {
	lines []string

	// HasFinalNewline is true if the original text ended with "\n".
	HasFinalNewline bool

	// CRLF is true if the original text used "\r\n" line endings.
	CRLF bool

	revision int
}

// New splits text into lines. Both LF and CRLF endings are accepted.
func New(text string) *Buffer {
	buf := &Buffer{}
	if text == "" {
		buf.lines = []string{""}
		return buf
	}

	buf.CRLF = strings.Contains(text, "\r\n")
	if buf.CRLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	if strings.HasSuffix(text, "\n") {
		buf.HasFinalNewline = true
		text = text[:len(text)-1]
	}

	buf.lines = strings.Split(text, "\n")
	return buf
}

// FromLines creates a buffer from already split lines.
func FromLines(lines []string) *Buffer {
	copied := make([]string, len(lines))
	copy(copied, lines)
	if len(copied) == 0 {
		copied = []string{""}
	}
	return &Buffer{lines: copied}
}

// LineCount returns the number of lines. An empty buffer has one empty line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line idx, or "" if idx is out of range.
func (b *Buffer) Line(idx int) string {
	if idx < 0 || idx >= len(b.lines) {
		return ""
	}
	return b.lines[idx]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Revision is incremented on every mutation.
func (b *Buffer) Revision() int {
	return b.revision
}

// SetLine replaces the whole text of line idx in one step.
// Returns false if idx is out of range or the text is unchanged.
func (b *Buffer) SetLine(idx int, text string) bool {
	if idx < 0 || idx >= len(b.lines) {
		return false
	}
	if b.lines[idx] == text {
		return false
	}
	b.lines[idx] = text
	b.revision++
	return true
}

// DeleteLines removes lines [from, to). At least one line always remains.
func (b *Buffer) DeleteLines(from, to int) int {
	from = max(from, 0)
	to = min(to, len(b.lines))
	if from >= to {
		return 0
	}

	removed := to - from
	b.lines = append(b.lines[:from], b.lines[to:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	b.revision++
	return removed
}

// String joins the lines back into text using the original line ending style.
func (b *Buffer) String() string {
	sep := "\n"
	if b.CRLF {
		sep = "\r\n"
	}

	text := strings.Join(b.lines, sep)
	if b.HasFinalNewline {
		text += sep
	}
	return text
}

// IsBlank reports whether line idx contains only whitespace.
func (b *Buffer) IsBlank(idx int) bool {
	return IsBlank(b.Line(idx))
}

// IsBlank reports whether text contains only spaces and tabs.
func IsBlank(text string) bool {
	return strings.TrimLeft(text, " \t") == ""
}

// IndentColumn counts the leading whitespace characters of text.
func IndentColumn(text string) int {
	for idx, char := range text {
		if char != ' ' && char != '\t' {
			return idx
		}
	}
	return len(text)
}

// FirstNonBlank returns the column of the first non-whitespace character,
// or len(text) for a blank line.
func FirstNonBlank(text string) int {
	return IndentColumn(text)
}

// TrimTrailingSpace removes trailing spaces and tabs.
func TrimTrailingSpace(text string) string {
	return strings.TrimRight(text, " \t")
}
