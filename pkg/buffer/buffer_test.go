package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/msclfmt/pkg/buffer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		lines     []string
		finalNL   bool
		roundTrip string
	}{
		{"empty", "", []string{""}, false, ""},
		{"single line no newline", "if x", []string{"if x"}, false, "if x"},
		{"final newline", "if x\nendif\n", []string{"if x", "endif"}, true, "if x\nendif\n"},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, true, "a\r\nb\r\n"},
		{"trailing blank lines kept", "a\n\n\n", []string{"a", "", ""}, true, "a\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := buffer.New(tt.text)
			assert.Equal(t, tt.lines, buf.Lines())
			assert.Equal(t, tt.finalNL, buf.HasFinalNewline)
			assert.Equal(t, tt.roundTrip, buf.String())
		})
	}
}

func TestBuffer_SetLine(t *testing.T) {
	t.Parallel()

	buf := buffer.New("a\nb")
	rev := buf.Revision()

	assert.False(t, buf.SetLine(0, "a"), "unchanged text is not an edit")
	assert.Equal(t, rev, buf.Revision())

	assert.True(t, buf.SetLine(1, "  b"))
	assert.Equal(t, "  b", buf.Line(1))
	assert.Greater(t, buf.Revision(), rev)

	assert.False(t, buf.SetLine(5, "x"))
	assert.Equal(t, "", buf.Line(5))
}

func TestBuffer_DeleteLines(t *testing.T) {
	t.Parallel()

	buf := buffer.New("a\nb\nc\n")
	assert.Equal(t, 2, buf.DeleteLines(1, 10))
	assert.Equal(t, []string{"a"}, buf.Lines())

	assert.Equal(t, 1, buf.DeleteLines(0, 1))
	assert.Equal(t, 1, buf.LineCount(), "buffer never becomes line-less")
	assert.Equal(t, 0, buf.DeleteLines(3, 2))
}

func TestBuffer_OffsetConversion(t *testing.T) {
	t.Parallel()

	buf := buffer.New("ab\ncde\n\nf")

	tests := []struct {
		pos    buffer.Position
		offset int
	}{
		{buffer.Position{Line: 0, Column: 0}, 0},
		{buffer.Position{Line: 0, Column: 2}, 2},
		{buffer.Position{Line: 1, Column: 0}, 3},
		{buffer.Position{Line: 1, Column: 3}, 6},
		{buffer.Position{Line: 2, Column: 0}, 7},
		{buffer.Position{Line: 3, Column: 1}, 9},
	}

	for _, tt := range tests {
		offset, ok := buf.Offset(tt.pos)
		assert.True(t, ok, "offset for %v", tt.pos)
		assert.Equal(t, tt.offset, offset, "offset for %v", tt.pos)
		assert.Equal(t, tt.pos, buf.PositionAt(tt.offset), "position for %d", tt.offset)
	}

	_, ok := buf.Offset(buffer.Position{Line: 0, Column: 3})
	assert.False(t, ok)
	_, ok = buf.Offset(buffer.Position{Line: 4})
	assert.False(t, ok)

	assert.Equal(t, buffer.Position{Line: 3, Column: 1}, buf.PositionAt(100))
}

func TestIndentColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, buffer.IndentColumn("if x"))
	assert.Equal(t, 4, buffer.IndentColumn("    if x"))
	assert.Equal(t, 2, buffer.IndentColumn("\t\tif x"))
	assert.Equal(t, 3, buffer.IndentColumn("   "))
	assert.True(t, buffer.IsBlank(" \t "))
	assert.False(t, buffer.IsBlank(" x "))
	assert.Equal(t, "  x", buffer.TrimTrailingSpace("  x \t"))
}

func TestPosition_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1:1", buffer.Position{}.String())
	assert.True(t, buffer.Position{Line: 1, Column: 9}.Before(buffer.Position{Line: 2}))
	assert.True(t, buffer.Position{Line: 2, Column: 1}.Before(buffer.Position{Line: 2, Column: 3}))
}
