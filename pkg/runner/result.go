package runner

import "github.com/yaklabco/msclfmt/pkg/format"

// FileOutcome wraps a pipeline result with its path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be processed.
	Result *format.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files left alone because they changed on disk.
	FilesSkipped int
	FilesErrored int

	// FilesChanged counts files whose formatted content differs.
	FilesChanged int
	FilesWritten int

	BackupsCreated    int
	LinesChanged      int
	BlankLinesRemoved int
}

// Result is the overall runner result.
type Result struct {
	// Files is ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasChanges reports whether any file needs or received formatting.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// ChangedFiles returns the outcomes whose content needs formatting.
func (r *Result) ChangedFiles() []FileOutcome {
	var changed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Result != nil && outcome.Result.Changed {
			changed = append(changed, outcome)
		}
	}
	return changed
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	res := outcome.Result
	r.Stats.FilesProcessed++
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Changed {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
	if res.BackupCreated {
		r.Stats.BackupsCreated++
	}
	r.Stats.LinesChanged += res.Stats.Changed
	r.Stats.BlankLinesRemoved += res.Stats.BlankLinesRemoved
}

// NewResult builds a result from outcomes that were produced outside Run,
// such as formatting standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
