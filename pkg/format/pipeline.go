package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/config"
	"github.com/yaklabco/msclfmt/pkg/diff"
	"github.com/yaklabco/msclfmt/pkg/fsutil"
	"github.com/yaklabco/msclfmt/pkg/lexer"
)

// Pipeline error types for categorization.
var (
	// ErrBinaryFile indicates the content does not look like source text.
	ErrBinaryFile = errors.New("binary file")

	// ErrConcurrentModification indicates the file changed on disk while it
	// was being formatted.
	ErrConcurrentModification = errors.New("file modified during processing")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Result describes what happened to one file.
type Result struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the file state before processing. Nil for in-memory content.
	Snapshot *fsutil.Snapshot

	// Original and Formatted hold the file content before and after.
	Original  []byte
	Formatted []byte

	// Stats summarizes the line changes.
	Stats Stats

	// Changed is true if Formatted differs from Original.
	Changed bool

	// Diff is the unified diff of the change, nil when unchanged.
	Diff *diff.Diff

	// Written is true if the file was rewritten on disk.
	Written bool

	// BackupCreated is true if a backup was made before writing.
	BackupCreated bool

	// Skipped is true if the file was left alone, see SkipReason.
	Skipped    bool
	SkipReason string

	// Duration is the wall time spent on the file.
	Duration time.Duration
}

// Summary returns a short human-readable status.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}

// PipelineOptions controls per-file processing.
type PipelineOptions struct {
	// Format is passed to Format for every file.
	Format Options

	// Range restricts formatting to a region. Nil formats the whole file.
	Range *Range

	// Write rewrites changed files in place.
	Write bool

	// Backup configures backups made before writing.
	Backup fsutil.BackupConfig
}

// PipelineOptionsFromConfig creates PipelineOptions from a resolved config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{Format: DefaultOptions()}
	}
	return PipelineOptions{
		Format: OptionsFromConfig(cfg),
		Write:  cfg.Write && !cfg.Check,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	}
}

// Pipeline formats files safely: content is snapshotted when read and only
// written back if the file is unchanged on disk. It logs through the logger
// carried by the context passed to each call.
type Pipeline struct{}

// NewPipeline creates a pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// ProcessFile runs the pipeline for a single file.
//
// The steps are:
//  1. Read and snapshot the file.
//  2. Refuse binary content.
//  3. Format in memory and diff against the original.
//  4. If writing, check for concurrent modification.
//  5. Create a backup if enabled.
//  6. Write the formatted content atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap

	defer func() {
		result.Duration = time.Since(start)
		logger.Debug("processed file",
			logging.FieldPath, path,
			logging.FieldLinesChanged, result.Stats.Changed,
			logging.FieldBlankRemoved, result.Stats.BlankLinesRemoved,
			logging.FieldDuration, result.Duration)
	}()

	if !opts.Write || !result.Changed {
		return result, nil
	}

	changed, err := snap.Changed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = ErrConcurrentModification.Error()
		logger.Warn("skipping file", logging.FieldPath, path, logging.FieldReason, result.SkipReason)
		return result, nil
	}

	result.BackupCreated, err = fsutil.Backup(ctx, snap, content, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, path, result.Formatted, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent formats in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	if enry.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, path)
	}

	buf := buffer.New(string(content))
	stats := Format(buf, lexer.NewIndex(buf), opts.Range, opts.Format)

	result := &Result{
		Path:      path,
		Original:  content,
		Formatted: content,
		Stats:     stats,
	}
	if stats.Modified() {
		formatted := []byte(buf.String())
		if !bytes.Equal(formatted, content) {
			result.Formatted = formatted
			result.Changed = true
			result.Diff = diff.Compute(path, content, formatted)
		}
	}

	return result, nil
}
