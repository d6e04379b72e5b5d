package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/msclfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(count int, singular, many string) string {
	if count == 1 {
		return singular
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files need formatting (5 lines), 7 files checked".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("Formatted %d %s",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles)))+
			s.Dim.Render(fmt.Sprintf(" (%d %s changed)",
				stats.LinesChanged, plural(stats.LinesChanged, "line", "lines"))))
	case stats.FilesChanged > 0:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s formatting",
			stats.FilesChanged, plural(stats.FilesChanged, "file needs", "files need")))+
			s.Dim.Render(fmt.Sprintf(" (%d %s)",
				stats.LinesChanged, plural(stats.LinesChanged, "line", "lines"))))
	default:
		parts = append(parts, s.Success.Render("Already formatted"))
	}

	parts = append(parts, fmt.Sprintf("%d %s checked",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	if stats.BackupsCreated > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d %s",
			stats.BackupsCreated, plural(stats.BackupsCreated, "backup", "backups"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s",
			stats.FilesErrored, plural(stats.FilesErrored, "error", "errors"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:       " +
			s.Failure.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:       " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.LinesChanged > 0 {
		builder.WriteString("  Lines re-indented:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.LinesChanged)) + "\n")
	}
	if stats.BlankLinesRemoved > 0 {
		builder.WriteString("  Blank lines removed: " +
			s.SummaryValue.Render(strconv.Itoa(stats.BlankLinesRemoved)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files with errors:   " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case stats.FilesChanged > 0 && stats.FilesWritten < stats.FilesChanged:
		builder.WriteString(s.Warning.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
