// Package definition locates where MSCL labels and variables are defined.
//
// Lookups are plain buffer searches: a label is defined by a line of the form
// "name:", a variable by any "declare" statement that names it. Names match
// case-insensitively, like keywords.
package definition

import (
	"regexp"
	"strings"

	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/indent"
)

// Role tells what kind of definition a Location points at.
type Role string

const (
	// RoleLabel marks a label definition.
	RoleLabel Role = "label"

	// RoleVariable marks a variable declaration.
	RoleVariable Role = "variable"
)

// Location is a single definition site.
type Location struct {
	Name     string          `json:"name"`
	Role     Role            `json:"role"`
	Position buffer.Position `json:"position"`
}

const (
	declareKeyword = "declare"
	sigil          = '$'
)

// FindLabel returns the position of the first line that defines label name.
// The position points at the first character of the label.
func FindLabel(buf *buffer.Buffer, cls indent.Classifier, name string) (buffer.Position, bool) {
	if name == "" {
		return buffer.Position{}, false
	}
	cls = orNoSpans(cls)

	pattern := regexp.MustCompile(`(?i)^[ \t]*` + regexp.QuoteMeta(name) + `:`)
	for line := range buf.LineCount() {
		text := buf.Line(line)
		if !pattern.MatchString(text) {
			continue
		}
		pos := buffer.Position{Line: line, Column: buffer.FirstNonBlank(text)}
		if cls.IsCommentOrStringAt(pos) {
			continue
		}
		return pos, true
	}
	return buffer.Position{}, false
}

// FindVariableDeclarations returns the position of every declare statement
// that names the variable, in buffer order. Each position points at the
// declare keyword. The name may appear with or without its sigil.
func FindVariableDeclarations(buf *buffer.Buffer, cls indent.Classifier, name string) []buffer.Position {
	name = strings.TrimPrefix(name, string(sigil))
	if name == "" {
		return nil
	}
	cls = orNoSpans(cls)

	var found []buffer.Position
	for line := range buf.LineCount() {
		text := buf.Line(line)
		for _, col := range keywordColumns(buf, cls, line, declareKeyword) {
			end := statementEnd(buf, cls, line, col+len(declareKeyword))
			if namesVariable(cls, line, text, col+len(declareKeyword), end, name) {
				found = append(found, buffer.Position{Line: line, Column: col})
			}
		}
	}
	return found
}

// IdentifierAt returns the symbol under pos, or just before it when pos sits
// right after a symbol. A single leading sigil is not part of the result.
// Returns "" when there is no symbol at pos.
func IdentifierAt(buf *buffer.Buffer, pos buffer.Position) string {
	text := buf.Line(pos.Line)
	col := min(max(pos.Column, 0), len(text))

	if col < len(text) && text[col] == sigil {
		col++
	}
	if col >= len(text) || !indent.IsSymbolChar(text[col]) {
		if col == 0 || !indent.IsSymbolChar(text[col-1]) {
			return ""
		}
		col--
	}

	start, end := col, col
	for start > 0 && indent.IsSymbolChar(text[start-1]) {
		start--
	}
	for end < len(text) && indent.IsSymbolChar(text[end]) {
		end++
	}
	return text[start:end]
}

// Find returns every definition of name: the label first, if one exists,
// followed by the variable declarations. An empty result means no
// definition was found.
func Find(buf *buffer.Buffer, cls indent.Classifier, name string) []Location {
	name = strings.TrimPrefix(name, string(sigil))
	if name == "" {
		return nil
	}

	var locations []Location
	if pos, ok := FindLabel(buf, cls, name); ok {
		locations = append(locations, Location{Name: name, Role: RoleLabel, Position: pos})
	}
	for _, pos := range FindVariableDeclarations(buf, cls, name) {
		locations = append(locations, Location{Name: name, Role: RoleVariable, Position: pos})
	}
	return locations
}

func orNoSpans(cls indent.Classifier) indent.Classifier {
	if cls == nil {
		return indent.NoSpans{}
	}
	return cls
}

// keywordColumns returns the columns where word appears on line as a whole
// symbol in code.
func keywordColumns(buf *buffer.Buffer, cls indent.Classifier, line int, word string) []int {
	text := buf.Line(line)
	lower := lowerASCII(text)

	var cols []int
	for from := 0; from < len(lower); {
		idx := strings.Index(lower[from:], word)
		if idx < 0 {
			break
		}
		col := from + idx
		from = col + len(word)

		if !isBounded(text, col, from) {
			continue
		}
		if cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// statementEnd returns the column of the next ":" separator in code after
// col, or the end of the line.
func statementEnd(buf *buffer.Buffer, cls indent.Classifier, line, col int) int {
	text := buf.Line(line)
	for ; col < len(text); col++ {
		if text[col] == ':' && !cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
			return col
		}
	}
	return len(text)
}

// namesVariable reports whether text[from:to] mentions name as a whole
// symbol in code.
func namesVariable(cls indent.Classifier, line int, text string, from, to int, name string) bool {
	segment := lowerASCII(text[from:to])
	want := lowerASCII(name)

	for offset := 0; offset < len(segment); {
		idx := strings.Index(segment[offset:], want)
		if idx < 0 {
			return false
		}
		col := from + offset + idx
		offset += idx + len(want)

		if !isBounded(text, col, col+len(want)) {
			continue
		}
		if cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
			continue
		}
		return true
	}
	return false
}

// isBounded reports whether text[start:end] is not part of a longer symbol.
func isBounded(text string, start, end int) bool {
	if start > 0 && indent.IsSymbolChar(text[start-1]) {
		return false
	}
	return end >= len(text) || !indent.IsSymbolChar(text[end])
}

// lowerASCII lower-cases ASCII letters only, keeping byte offsets stable.
func lowerASCII(text string) string {
	out := []byte(text)
	for i, char := range out {
		if char >= 'A' && char <= 'Z' {
			out[i] = char + ('a' - 'A')
		}
	}
	return string(out)
}
