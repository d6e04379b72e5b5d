package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldEdition      = "edition"
	FieldIndentOffset = "indent_offset"
	FieldConfigFiles  = "config_files"
	FieldWrite        = "write"
	FieldCheck        = "check"
	FieldJobs         = "jobs"

	// Formatting fields.
	FieldLine         = "line"
	FieldColumn       = "column"
	FieldLinesChanged = "lines_changed"
	FieldBlankRemoved = "blank_lines_removed"
	FieldReason       = "reason"
	FieldName         = "name"
	FieldMatches      = "matches"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
