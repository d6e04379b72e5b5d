package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its default instead of a commented
	// minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(NewConfig())
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Edition selects defaults: classic or modern
edition: modern

# Columns per nesting level
indent_offset: 4

# Strip trailing whitespace (default: on for classic, off for modern)
# delete_trailing_whitespace: false

# Strip blank lines at the end of a file
# delete_trailing_blank_lines: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template listing every option.
func generateFullTemplate() []byte {
	cfg := NewConfig()

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template lists every option with its default value.\n\n")

	fmt.Fprintf(&buf, "# Edition selects defaults: classic or modern\nedition: %s\n\n", cfg.Edition)
	fmt.Fprintf(&buf, "# Columns per nesting level\nindent_offset: %d\n\n", cfg.IndentOffset)
	fmt.Fprintf(&buf, "# Strip trailing whitespace from every formatted line\n"+
		"delete_trailing_whitespace: %t\n\n", cfg.TrailingWhitespace())
	fmt.Fprintf(&buf, "# Strip blank lines at the end of a file\n"+
		"delete_trailing_blank_lines: %t\n\n", cfg.TrailingBlankLines())

	buf.WriteString("# File extensions treated as MSCL source\nextensions:\n")
	for _, ext := range cfg.Extensions {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}

	buf.WriteString("\n# File patterns to ignore (glob patterns)\nignore:\n  - \"vendor/**\"\n  - \".git/**\"\n\n")

	fmt.Fprintf(&buf, "# Backup configuration for --write\nbackups:\n  enabled: %t\n  mode: %s\n",
		cfg.Backups.Enabled, cfg.Backups.Mode)

	return buf.Bytes()
}

// templateToJSON renders the file-level options of cfg as JSON.
func templateToJSON(cfg *Config) ([]byte, error) {
	doc := map[string]any{
		"edition":                     cfg.Edition,
		"indent_offset":               cfg.IndentOffset,
		"delete_trailing_whitespace":  cfg.TrailingWhitespace(),
		"delete_trailing_blank_lines": cfg.TrailingBlankLines(),
		"extensions":                  cfg.Extensions,
		"ignore":                      []string{"vendor/**", ".git/**"},
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
	}

	jsonBytes, err := json.MarshalIndent(doc, "", strings.Repeat(" ", YAMLIndent()))
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# msclfmt configuration
# See: https://github.com/yaklabco/msclfmt`
}
