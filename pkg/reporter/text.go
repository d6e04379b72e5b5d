package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/msclfmt/internal/ui/pretty"
	"github.com/yaklabco/msclfmt/pkg/runner"
)

// TextReporter lists files by status as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var reported int
	for _, file := range result.Files {
		if r.writeFile(file) {
			reported++
		}
	}

	if r.opts.ShowSummary {
		if r.opts.DetailedSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return reported, nil
}

// writeFile writes the status line of one file and reports whether the file
// needed formatting.
func (r *TextReporter) writeFile(file runner.FileOutcome) bool {
	path := r.styles.FilePath.Render(r.opts.displayPath(file.Path))

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		return false
	}

	res := file.Result
	switch {
	case res == nil:
		return false
	case res.Skipped:
		fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Warning.Render(res.Summary()))
		return false
	case res.Changed:
		status := r.styles.Failure
		if res.Written {
			status = r.styles.Success
		}
		fmt.Fprintf(r.bw, "%s: %s %s\n", path, status.Render(res.Summary()),
			r.styles.Dim.Render(lineCount(res.Stats.Changed+res.Stats.BlankLinesRemoved)))
		return true
	default:
		if r.opts.ShowUnchanged {
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Dim.Render(res.Summary()))
		}
		return false
	}
}

func lineCount(n int) string {
	if n == 1 {
		return "(1 line)"
	}
	return fmt.Sprintf("(%d lines)", n)
}
