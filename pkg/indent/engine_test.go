package indent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/indent"
	"github.com/yaklabco/msclfmt/pkg/lexer"
)

// columns computes the indent of every line of src without modifying it.
func columns(src string, offset int) []int {
	buf := buffer.New(src)
	idx := lexer.NewIndex(buf)
	opts := indent.Options{Offset: offset}

	out := make([]int, buf.LineCount())
	for line := range out {
		out[line] = indent.CalculateIndent(buf, idx, line, opts)
	}
	return out
}

func TestCalculateIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lines  []string
		offset int
		want   []int
	}{
		{
			name:   "if block",
			lines:  []string{"if x", "declare y", "endif"},
			offset: 4,
			want:   []int{0, 4, 0},
		},
		{
			name:   "already indented with offset two",
			lines:  []string{"if x", "  declare y", "endif"},
			offset: 2,
			want:   []int{0, 2, 0},
		},
		{
			name:   "if elseif else",
			lines:  []string{"if a", "    x", "elseif b", "    y", "else", "    z", "endif"},
			offset: 4,
			want:   []int{0, 4, 0, 4, 0, 4, 0},
		},
		{
			name:   "nested while",
			lines:  []string{"while a", "    if b", "        c", "    endif", "endwhile"},
			offset: 4,
			want:   []int{0, 4, 8, 4, 0},
		},
		{
			name:   "label between while and endwhile",
			lines:  []string{"loop:", "while true", "endwhile"},
			offset: 4,
			want:   []int{0, 0, 0},
		},
		{
			name:   "label inside block stays flush left",
			lines:  []string{"if x", "    again:", "    y"},
			offset: 4,
			want:   []int{0, 0, 4},
		},
		{
			name:   "unbalanced endif clamps at zero",
			lines:  []string{"endif", "endwhile", "endif"},
			offset: 4,
			want:   []int{0, 0, 0},
		},
		{
			name:   "keywords are case insensitive",
			lines:  []string{"IF x", "    y", "EndIf"},
			offset: 4,
			want:   []int{0, 4, 0},
		},
		{
			name:   "keyword prefix does not match",
			lines:  []string{"ifx = 1", "y = 2", "endifs = 3"},
			offset: 4,
			want:   []int{0, 0, 0},
		},
		{
			name:   "legacy line numbers are skipped",
			lines:  []string{"10 if x", "20 y", "30 endif"},
			offset: 4,
			want:   []int{0, 4, 0},
		},
		{
			name:   "comment and blank lines are transparent",
			lines:  []string{"if x", "", "# if not", "", "    y", "endif"},
			offset: 4,
			want:   []int{0, 4, 4, 4, 4, 0},
		},
		{
			name:   "keyword in comment is ignored",
			lines:  []string{"x = 1 # if", "y"},
			offset: 4,
			want:   []int{0, 0},
		},
		{
			name:   "keyword in string is ignored",
			lines:  []string{`s = "else"`, "y"},
			offset: 4,
			want:   []int{0, 0},
		},
		{
			name:   "else at end of line",
			lines:  []string{"if a then b else", "y"},
			offset: 4,
			want:   []int{0, 4},
		},
		{
			name:   "continuation",
			lines:  []string{"x = 1 + \\", "    2 + \\", "    3", "y = 4"},
			offset: 4,
			want:   []int{0, 4, 4, 0},
		},
		{
			name:   "continuation ends across comment and blank lines",
			lines:  []string{"a = 1 + \\", "# note", "    b", "", "c"},
			offset: 4,
			want:   []int{0, 4, 4, 0, 0},
		},
		{
			name:   "continuation ends across a label",
			lines:  []string{"a = 1 + \\", "retry:", "    b", "c"},
			offset: 4,
			want:   []int{0, 0, 4, 0},
		},
		{
			name:   "blank line between continued statements",
			lines:  []string{"x = 1 + \\", "    2", "", "y = 3 + \\", "    4", "z"},
			offset: 4,
			want:   []int{0, 4, 0, 0, 4, 0},
		},
		{
			name:   "backslash in comment is not a continuation",
			lines:  []string{"x = 1 # \\", "y"},
			offset: 4,
			want:   []int{0, 0},
		},
		{
			name:   "separator decrease on previous line",
			lines:  []string{"if x", "    y = 1 : endif", "z"},
			offset: 4,
			want:   []int{0, 4, 0},
		},
		{
			name:   "one line if",
			lines:  []string{"if x : y : endif", "z"},
			offset: 4,
			want:   []int{0, 0},
		},
		{
			name:   "separator in string is ignored",
			lines:  []string{"if x", `    s = "a: endif"`, "    z"},
			offset: 4,
			want:   []int{0, 4, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := columns(strings.Join(tt.lines, "\n"), tt.offset)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecide_Reasons(t *testing.T) {
	t.Parallel()

	buf := buffer.New("if x\n    y\nendif")
	idx := lexer.NewIndex(buf)

	dec := indent.Decide(buf, idx, 1, indent.DefaultOptions())
	assert.Equal(t, 4, dec.Column)
	assert.Equal(t, 0, dec.Prev)
	assert.True(t, dec.Increase)
	assert.False(t, dec.Decrease)
	require.Len(t, dec.Reasons, 2)
	assert.Contains(t, dec.Reasons[1], `"if"`)

	dec = indent.Decide(buf, idx, 2, indent.DefaultOptions())
	assert.Equal(t, 0, dec.Column)
	assert.Equal(t, 4, dec.Base)
	assert.True(t, dec.Decrease)

	dec = indent.Decide(buf, idx, 0, indent.DefaultOptions())
	assert.Equal(t, -1, dec.Prev)
	assert.Equal(t, []string{"no previous code line"}, dec.Reasons)
}

func TestDecide_DefaultsAndTotality(t *testing.T) {
	t.Parallel()

	buf := buffer.New("if x\ny")

	assert.Equal(t, 4, indent.CalculateIndent(buf, nil, 1, indent.Options{}))
	assert.Equal(t, 4, indent.CalculateIndent(buf, nil, 1, indent.Options{Offset: -3}))
	assert.Equal(t, 0, indent.CalculateIndent(buf, nil, 42, indent.DefaultOptions()))
	assert.Equal(t, 0, indent.CalculateIndent(buffer.New(""), nil, 0, indent.DefaultOptions()))

	dec := indent.Decide(buffer.New("  lbl:"), nil, 0, indent.DefaultOptions())
	assert.True(t, dec.Label)
	assert.Equal(t, 0, dec.Column)
}
