package format_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/msclfmt/pkg/format"
)

// benchSource builds a file of n nested blocks with labels, comments,
// separators and continued statements.
func benchSource(n int) []byte {
	var builder strings.Builder
	for i := range n {
		builder.WriteString("start:\n")
		builder.WriteString("if count > 0 # positive\n")
		builder.WriteString("while busy\n")
		builder.WriteString("s = \"a \\\n  b\"\n")
		builder.WriteString("total = total + \\\n")
		builder.WriteString("count\n")
		builder.WriteString("if done : goto start : endif\n")
		builder.WriteString("endwhile\n")
		if i%2 == 0 {
			builder.WriteString("else\n")
			builder.WriteString("declare $n\n")
		}
		builder.WriteString("endif\n")
	}
	return []byte(builder.String())
}

func BenchmarkSource(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		content := benchSource(size)
		opts := format.DefaultOptions()

		b.Run(fmt.Sprintf("blocks=%d", size), func(b *testing.B) {
			b.SetBytes(int64(len(content)))
			b.ReportAllocs()
			for b.Loop() {
				format.Source(content, opts)
			}
		})
	}
}
