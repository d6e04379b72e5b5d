package indent

import (
	"regexp"
	"strings"

	"github.com/yaklabco/msclfmt/pkg/buffer"
)

// labelPattern matches a line label such as "loop:" or "  retry.2:".
var labelPattern = regexp.MustCompile(`^[ \t]*[a-zA-Z][a-zA-Z0-9_.]*:`)

// Classifier answers whether a position lies inside a comment or a string
// literal. *lexer.Index satisfies it.
type Classifier interface {
	IsCommentOrStringAt(pos buffer.Position) bool
}

// commentClassifier is implemented by classifiers that can tell comments
// apart from strings.
type commentClassifier interface {
	IsCommentAt(pos buffer.Position) bool
}

// NoSpans is a Classifier that treats every position as code.
type NoSpans struct{}

// IsCommentOrStringAt always returns false.
func (NoSpans) IsCommentOrStringAt(buffer.Position) bool { return false }

// IsLabelLine reports whether text, after leading whitespace, starts with a
// label identifier followed by a colon.
func IsLabelLine(text string) bool {
	return labelPattern.MatchString(text)
}

// EndsWithBackslash reports whether the last non-whitespace character of text
// is a backslash.
func EndsWithBackslash(text string) bool {
	return strings.HasSuffix(buffer.TrimTrailingSpace(text), `\`)
}

// IsSymbolChar reports whether char can be part of an identifier or keyword.
func IsSymbolChar(char byte) bool {
	switch {
	case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z':
		return true
	case char >= '0' && char <= '9':
		return true
	default:
		return char == '_' || char == '.'
	}
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

// FirstToken returns the symbol that starts text once leading whitespace and
// digits are skipped, together with its column. Leading digits are legacy
// line numbers. Returns "" if the first remaining character is not a symbol
// character.
func FirstToken(text string) (string, int) {
	start := 0
	for start < len(text) && (text[start] == ' ' || text[start] == '\t' || isDigit(text[start])) {
		start++
	}
	end := start
	for end < len(text) && IsSymbolChar(text[end]) {
		end++
	}
	return text[start:end], start
}

// LastToken returns the symbol that ends text, ignoring trailing whitespace,
// together with its column. Returns "" if text does not end in a symbol.
func LastToken(text string) (string, int) {
	end := len(buffer.TrimTrailingSpace(text))
	start := end
	for start > 0 && IsSymbolChar(text[start-1]) {
		start--
	}
	return text[start:end], start
}

// codeEnd returns the column just past the last character of line that is
// not whitespace and not part of a trailing comment. String content counts
// as code here so a line ending in a string does not end in a keyword.
func codeEnd(buf *buffer.Buffer, cls Classifier, line int) int {
	text := buf.Line(line)
	end := len(text)
	for end > 0 {
		col := end - 1
		if text[col] == ' ' || text[col] == '\t' {
			end--
			continue
		}
		if !cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
			return end
		}

		start := col
		for start > 0 && cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: start - 1}) {
			start--
		}
		if !isComment(cls, text, line, start) {
			return end
		}
		end = start
	}
	return 0
}

// isComment reports whether the non-code run starting at col is a comment.
func isComment(cls Classifier, text string, line, col int) bool {
	if cc, ok := cls.(commentClassifier); ok {
		return cc.IsCommentAt(buffer.Position{Line: line, Column: col})
	}
	return text[col] == '#'
}

// continues reports whether line ends with a continuation backslash in code.
// A backslash inside a comment is text, and one inside a string only carries
// the string onto the next line.
func continues(buf *buffer.Buffer, cls Classifier, line int) bool {
	if line < 0 || line >= buf.LineCount() {
		return false
	}
	end := codeEnd(buf, cls, line)
	if end == 0 || buf.Line(line)[end-1] != '\\' {
		return false
	}
	return !cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: end - 1})
}

// firstCodeToken is FirstToken restricted to tokens that start in code.
func firstCodeToken(buf *buffer.Buffer, cls Classifier, line int) string {
	word, col := FirstToken(buf.Line(line))
	if word == "" || cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
		return ""
	}
	return word
}

// lastCodeToken is LastToken over the code part of line.
func lastCodeToken(buf *buffer.Buffer, cls Classifier, line int) string {
	end := codeEnd(buf, cls, line)
	text := buf.Line(line)[:end]
	word, col := LastToken(text)
	if word == "" || cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
		return ""
	}
	return word
}

// separatorTokens returns the first token of every ":"-delimited statement
// after the first one on line. Separators inside comments or strings are
// ignored.
func separatorTokens(buf *buffer.Buffer, cls Classifier, line int) []string {
	text := buf.Line(line)

	var words []string
	for col := range len(text) {
		if text[col] != ':' || cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
			continue
		}
		word, offset := FirstToken(text[col+1:])
		if word == "" || cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col + 1 + offset}) {
			continue
		}
		words = append(words, word)
	}
	return words
}

// IsCodeLine reports whether line holds real code: it is not a label and has
// at least one non-whitespace character outside every comment and string.
func IsCodeLine(buf *buffer.Buffer, cls Classifier, line int) bool {
	if cls == nil {
		cls = NoSpans{}
	}

	text := buf.Line(line)
	if buffer.IsBlank(text) || IsLabelLine(text) {
		return false
	}
	for col := range len(text) {
		if text[col] == ' ' || text[col] == '\t' {
			continue
		}
		if !cls.IsCommentOrStringAt(buffer.Position{Line: line, Column: col}) {
			return true
		}
	}
	return false
}
