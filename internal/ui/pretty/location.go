package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/msclfmt/pkg/definition"
	"github.com/yaklabco/msclfmt/pkg/indent"
)

// FormatLocation formats a definition site as "path:line:col  role" with
// the source line below it. Line and column are shown one-based.
func (s *Styles) FormatLocation(path string, loc definition.Location, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		loc.Position.Line+1,
		loc.Position.Column+1,
	)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Role.Render(string(loc.Role)),
		s.Bold.Render(loc.Name),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, loc.Position.Column+1))
	}

	return builder.String()
}

// FormatDecision explains how the indentation of one line was computed.
func (s *Styles) FormatDecision(path string, decision indent.Decision, sourceLine string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s  %s\n",
		s.FilePath.Render(fmt.Sprintf("%s:%d", path, decision.Line+1)),
		s.Bold.Render(fmt.Sprintf("column %d", decision.Column)),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, 0))
	}

	for _, reason := range decision.Reasons {
		builder.WriteString("    " + s.Dim.Render("-") + " " + reason + "\n")
	}

	var effects []string
	if decision.Increase {
		effects = append(effects, s.Success.Render("increase"))
	}
	if decision.Decrease {
		effects = append(effects, s.Warning.Render("decrease"))
	}
	if len(effects) > 0 {
		builder.WriteString(fmt.Sprintf("    %s %d, %s\n",
			s.Dim.Render("base"), decision.Base, strings.Join(effects, ", ")))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret under column,
// which is one-based. A zero column omits the caret.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const pad = "        "

	builder.WriteString(pad + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(pad + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}
