// Package editor adapts the indentation engine to an editing session: a
// buffer with a cursor, an optional selection and a navigation history.
//
// The core packages know nothing about cursors. Session translates the
// commands an editor binds to keys into calls on format and definition, and
// moves the cursor the way an editor user expects afterwards.
package editor

import (
	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/definition"
	"github.com/yaklabco/msclfmt/pkg/format"
	"github.com/yaklabco/msclfmt/pkg/lexer"
)

// Session is one open MSCL buffer.
type Session struct {
	Buffer    *buffer.Buffer
	Spans     *lexer.Index
	Options   format.Options
	Cursor    buffer.Position
	Selection Selection

	history []buffer.Position
}

// NewSession opens text with the cursor at the start of the buffer.
func NewSession(text string, opts format.Options) *Session {
	buf := buffer.New(text)
	return &Session{
		Buffer:  buf,
		Spans:   lexer.NewIndex(buf),
		Options: opts,
	}
}

// Text returns the current buffer content.
func (s *Session) Text() string {
	return s.Buffer.String()
}

// MoveTo places the cursor at pos, clamped to the buffer.
func (s *Session) MoveTo(pos buffer.Position) {
	s.Cursor = s.Buffer.Clamp(pos)
	s.Selection.Update(s.Cursor)
}

// Select selects the region from start to end and leaves the cursor at end.
func (s *Session) Select(start, end buffer.Position) {
	s.Selection.Activate(s.Buffer.Clamp(start))
	s.MoveTo(end)
}

// IndentLineOrSelection re-indents every line of the active selection, or
// the cursor line when nothing is selected. It returns the number of lines
// that changed.
//
// On a single line, a cursor inside the indentation moves to the first
// non-blank character; a cursor in the text keeps its place in the text.
func (s *Session) IndentLineOrSelection() int {
	if rng := s.Selection.Range(); rng != nil {
		opts := s.Options
		opts.DeleteTrailingWhitespace = false
		opts.DeleteTrailingBlankLines = false

		stats := format.Format(s.Buffer, s.Spans, rng, opts)
		s.Cursor = s.Buffer.Clamp(s.Cursor)
		return stats.Changed
	}

	line := s.Cursor.Line
	before := buffer.IndentColumn(s.Buffer.Line(line))

	changed, delta := format.IndentLine(s.Buffer, s.Spans, line, s.Options)
	if !changed {
		if s.Cursor.Column < before {
			s.Cursor.Column = before
		}
		return 0
	}

	if s.Cursor.Column < before {
		s.Cursor.Column = buffer.IndentColumn(s.Buffer.Line(line))
	} else {
		s.Cursor.Column += delta
	}
	return 1
}

// FormatSelectionOrBuffer formats the active selection, or the whole buffer
// when nothing is selected. The cursor stays on its line unless that line
// was deleted.
func (s *Session) FormatSelectionOrBuffer() format.Stats {
	stats := format.Format(s.Buffer, s.Spans, s.Selection.Range(), s.Options)
	s.Cursor = s.Buffer.Clamp(s.Cursor)
	return stats
}

// FindDefinitionAtCursor looks up the identifier under the cursor. When
// definitions exist the cursor jumps to the first one and the old position
// is remembered for ReturnToPreviousLocation. An empty result leaves the
// cursor where it was.
func (s *Session) FindDefinitionAtCursor() []definition.Location {
	name := definition.IdentifierAt(s.Buffer, s.Cursor)
	locations := definition.Find(s.Buffer, s.Spans, name)
	if len(locations) == 0 {
		return nil
	}

	s.history = append(s.history, s.Cursor)
	s.Selection.Clear()
	s.Cursor = locations[0].Position
	return locations
}

// ReturnToPreviousLocation moves the cursor back to where the last
// definition jump started. It returns false when there is nowhere to go.
func (s *Session) ReturnToPreviousLocation() bool {
	if len(s.history) == 0 {
		return false
	}

	last := len(s.history) - 1
	pos := s.history[last]
	s.history = s.history[:last]

	s.Selection.Clear()
	s.Cursor = s.Buffer.Clamp(pos)
	return true
}
