package editor

import (
	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/format"
)

// Selection is a region between an anchor and a caret. The zero value is
// inactive.
type Selection struct {
	active bool
	anchor buffer.Position
	caret  buffer.Position
}

// Activate starts a selection at pos.
func (s *Selection) Activate(pos buffer.Position) {
	s.active = true
	s.anchor = pos
	s.caret = pos
}

// Update moves the caret. A selection whose caret returns to the anchor
// becomes inactive.
func (s *Selection) Update(pos buffer.Position) {
	if !s.active {
		return
	}
	s.caret = pos
	if s.anchor == s.caret {
		s.active = false
	}
}

// Clear deactivates the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// IsActive reports whether a region is selected.
func (s Selection) IsActive() bool {
	return s.active
}

// Range returns the selected region, start first. Nil when inactive.
func (s Selection) Range() *format.Range {
	if !s.active {
		return nil
	}
	if s.caret.Before(s.anchor) {
		return &format.Range{Start: s.caret, End: s.anchor}
	}
	return &format.Range{Start: s.anchor, End: s.caret}
}
