package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/msclfmt/pkg/runner"
)

// jsonVersion is bumped when the output shape changes incompatibly.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path              string `json:"path"`
	Status            string `json:"status"`
	Changed           bool   `json:"changed"`
	Written           bool   `json:"written,omitempty"`
	BackupCreated     bool   `json:"backupCreated,omitempty"`
	LinesChanged      int    `json:"linesChanged"`
	BlankLinesRemoved int    `json:"blankLinesRemoved"`
	Diff              string `json:"diff,omitempty"`
	Error             string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int `json:"filesChecked"`
	FilesChanged      int `json:"filesChanged"`
	FilesWritten      int `json:"filesWritten"`
	FilesSkipped      int `json:"filesSkipped"`
	FilesErrored      int `json:"filesErrored"`
	LinesChanged      int `json:"linesChanged"`
	BlankLinesRemoved int `json:"blankLinesRemoved"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:      stats.FilesProcessed,
		FilesChanged:      stats.FilesChanged,
		FilesWritten:      stats.FilesWritten,
		FilesSkipped:      stats.FilesSkipped,
		FilesErrored:      stats.FilesErrored,
		LinesChanged:      stats.LinesChanged,
		BlankLinesRemoved: stats.BlankLinesRemoved,
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.fileResult(file))
	}

	return output
}

func (r *JSONReporter) fileResult(file runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{Path: r.opts.displayPath(file.Path)}

	if file.Error != nil {
		fileResult.Status = "error"
		fileResult.Error = file.Error.Error()
		return fileResult
	}
	if file.Result == nil {
		return fileResult
	}

	res := file.Result
	fileResult.Status = res.Summary()
	fileResult.Changed = res.Changed
	fileResult.Written = res.Written
	fileResult.BackupCreated = res.BackupCreated
	fileResult.LinesChanged = res.Stats.Changed
	fileResult.BlankLinesRemoved = res.Stats.BlankLinesRemoved
	fileResult.Diff = res.Diff.String()
	return fileResult
}
