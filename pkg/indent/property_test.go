package indent_test

import (
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/indent"
	"github.com/yaklabco/msclfmt/pkg/lexer"
)

var (
	codeLines = []string{
		"if x", "while y", "elseif z", "else", "endif", "endwhile",
		"declare a", "a = 1", "  b = a + 1", "10 if n", "20 endif",
		"x = 1 : endif", "if p then q else", "s = 1 + \\", "    2",
		`t = "if"`, "call f # endif",
	}
	fillerLines = []string{"", "   ", "# note", "  # if x", "retry:"}
	labelLines  = []string{"loop:", "  done:", "\tx.1:"}
)

func genLines(t *rapid.T) []string {
	all := slices.Concat(codeLines, fillerLines, labelLines)
	return rapid.SliceOfN(rapid.SampledFrom(all), 1, 24).Draw(t, "lines")
}

func TestProperty_NeverNegativeAndLabelsFlush(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		lines := genLines(t)
		offset := rapid.IntRange(1, 8).Draw(t, "offset")

		buf := buffer.FromLines(lines)
		idx := lexer.NewIndex(buf)
		for line := range lines {
			col := indent.CalculateIndent(buf, idx, line, indent.Options{Offset: offset})
			if col < 0 {
				t.Fatalf("line %d: negative indent %d", line, col)
			}
			if indent.IsLabelLine(lines[line]) && col != 0 {
				t.Fatalf("label line %d indented to %d", line, col)
			}
		}
	})
}

func TestProperty_DecreaseOnlyStabilizesAtZero(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		closers := rapid.SliceOfN(rapid.SampledFrom([]string{"endif", "endwhile", "else", "elseif"}), 1, 12).
			Draw(t, "closers")
		buf := buffer.FromLines(closers)
		for line := range closers {
			if col := indent.CalculateIndent(buf, nil, line, indent.DefaultOptions()); col != 0 {
				t.Fatalf("line %d: got %d, want 0", line, col)
			}
		}
	})
}

func TestProperty_FillerIsTransparent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		code := rapid.SliceOfN(rapid.SampledFrom(codeLines), 3, 3).Draw(t, "code")
		fillers := rapid.SampledFrom(slices.Concat(fillerLines, labelLines))
		before := rapid.SliceOfN(fillers, 0, 3).Draw(t, "before")
		after := rapid.SliceOfN(fillers, 0, 3).Draw(t, "after")

		plain := buffer.FromLines(code)
		padded := buffer.FromLines(slices.Concat(code[:1], before, code[1:2], after, code[2:]))

		want := indent.CalculateIndent(plain, lexer.NewIndex(plain), 2, indent.DefaultOptions())
		got := indent.CalculateIndent(padded, lexer.NewIndex(padded), padded.LineCount()-1, indent.DefaultOptions())
		if got != want {
			t.Fatalf("filler %q / %q changed indent of %q: %d != %d", before, after, code[2], got, want)
		}
	})
}
