// Package diff renders line-based unified diffs between the original and the
// formatted text of a file.
package diff

import (
	"fmt"
	"strings"
)

// Op is the kind of a diff line.
type Op int

const (
	// OpEqual is an unchanged context line.
	OpEqual Op = iota

	// OpDelete is a line only present in the original.
	OpDelete

	// OpInsert is a line only present in the formatted text.
	OpInsert
)

// Prefix returns the unified diff marker for the op.
func (o Op) Prefix() string {
	switch o {
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are one-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Diff is a unified diff of one file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Context is the number of unchanged lines shown around each change.
const Context = 3

// Compute diffs original against modified. Returns nil when they are equal.
func Compute(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	ops := script(splitLines(original), splitLines(modified))

	result := &Diff{Path: path}
	for _, line := range ops {
		switch line.Op {
		case OpInsert:
			result.Added++
		case OpDelete:
			result.Removed++
		case OpEqual:
		}
	}
	result.Hunks = hunks(ops)

	// Content differing only in a final newline produces no line changes.
	if len(result.Hunks) == 0 {
		return nil
	}
	return result
}

// HasChanges returns true if the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with a/ and b/ file headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Op.Prefix())
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// script computes an edit script from the longest common subsequence table.
func script(before, after []string) []Line {
	rows, cols := len(before), len(after)

	// table[i][j] is the LCS length of before[i:] and after[j:].
	table := make([][]int, rows+1)
	for i := range table {
		table[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if before[i] == after[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, max(rows, cols))
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case before[i] == after[j]:
			ops = append(ops, Line{Op: OpEqual, Text: before[i]})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			ops = append(ops, Line{Op: OpDelete, Text: before[i]})
			i++
		default:
			ops = append(ops, Line{Op: OpInsert, Text: after[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, Line{Op: OpDelete, Text: before[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, Line{Op: OpInsert, Text: after[j]})
	}
	return ops
}

// hunks groups an edit script into hunks. Changes separated by at most
// 2*Context equal lines share a hunk.
func hunks(ops []Line) []Hunk {
	var out []Hunk

	oldLine, newLine := 1, 1
	idx := 0
	for idx < len(ops) {
		if ops[idx].Op == OpEqual {
			oldLine++
			newLine++
			idx++
			continue
		}

		// idx is the first change of a new hunk. The previous hunk ended more
		// than Context equal lines ago, so the leading context never overlaps it.
		start := max(idx-Context, 0)
		lead := idx - start
		hunk := Hunk{OldStart: oldLine - lead, NewStart: newLine - lead}

		end := idx
		for end < len(ops) {
			if ops[end].Op != OpEqual {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Op == OpEqual {
				run++
			}
			if run == len(ops) || run-end > 2*Context {
				end = min(end+Context, len(ops))
				break
			}
			end = run
		}

		for _, line := range ops[start:end] {
			hunk.Lines = append(hunk.Lines, line)
			if line.Op != OpInsert {
				hunk.OldCount++
			}
			if line.Op != OpDelete {
				hunk.NewCount++
			}
		}

		for _, line := range ops[idx:end] {
			if line.Op != OpInsert {
				oldLine++
			}
			if line.Op != OpDelete {
				newLine++
			}
		}
		out = append(out, hunk)
		idx = end
	}
	return out
}
