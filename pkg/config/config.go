// Package config defines core configuration types for msclfmt.
// These types are pure data structures with no dependency on how they are loaded.
package config

// Edition selects a family of defaults.
type Edition string

const (
	// EditionClassic deletes trailing whitespace by default.
	EditionClassic Edition = "classic"

	// EditionModern keeps trailing whitespace by default.
	EditionModern Edition = "modern"
)

// IsValid returns true if the edition is known.
func (e Edition) IsValid() bool {
	switch e {
	case EditionClassic, EditionModern:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how a format run is reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatDiff OutputFormat = "diff"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatDiff, FormatJSON:
		return true
	default:
		return false
	}
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// DefaultIndentOffset is the number of columns per nesting level.
const DefaultIndentOffset = 4

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for msclfmt.
type Config struct {
	// Edition selects defaults for options left unset ("classic" or "modern").
	Edition Edition `mapstructure:"edition" yaml:"edition"`

	// IndentOffset is the number of columns per nesting level.
	IndentOffset int `mapstructure:"indent_offset" yaml:"indent_offset"`

	// DeleteTrailingWhitespace strips trailing whitespace from every formatted
	// line. Nil means the edition default.
	DeleteTrailingWhitespace *bool `mapstructure:"delete_trailing_whitespace" yaml:"delete_trailing_whitespace,omitempty"`

	// DeleteTrailingBlankLines strips blank lines at the end of a buffer when
	// the whole buffer is formatted. Nil means true.
	DeleteTrailingBlankLines *bool `mapstructure:"delete_trailing_blank_lines" yaml:"delete_trailing_blank_lines,omitempty"`

	// Extensions lists the file extensions treated as MSCL source.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `mapstructure:"-" yaml:"-"`

	// Check reports files that need formatting without changing them.
	Check bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions returns the file extensions recognized as MSCL source.
func DefaultExtensions() []string {
	return []string{".mscl", ".msc"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Edition:      EditionModern,
		IndentOffset: DefaultIndentOffset,
		Extensions:   DefaultExtensions(),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to value, for optional boolean fields.
func Bool(value bool) *bool {
	return &value
}

// TrailingWhitespace reports whether trailing whitespace is deleted.
// An explicit setting wins; otherwise the classic edition deletes and the
// modern edition keeps.
func (c *Config) TrailingWhitespace() bool {
	if c.DeleteTrailingWhitespace != nil {
		return *c.DeleteTrailingWhitespace
	}
	return c.Edition == EditionClassic
}

// TrailingBlankLines reports whether trailing blank lines are deleted.
func (c *Config) TrailingBlankLines() bool {
	if c.DeleteTrailingBlankLines != nil {
		return *c.DeleteTrailingBlankLines
	}
	return true
}

// Offset returns the indent offset, falling back to DefaultIndentOffset.
func (c *Config) Offset() int {
	if c.IndentOffset <= 0 {
		return DefaultIndentOffset
	}
	return c.IndentOffset
}
