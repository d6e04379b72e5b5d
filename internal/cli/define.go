package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/internal/ui/pretty"
	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/definition"
	"github.com/yaklabco/msclfmt/pkg/editor"
	"github.com/yaklabco/msclfmt/pkg/format"
	"github.com/yaklabco/msclfmt/pkg/fsutil"
)

type defineFlags struct {
	line    int
	column  int
	name    string
	output  string
	compact bool
}

// definitionOutput is the JSON shape of a lookup. Lines and columns are
// one-based.
type definitionOutput struct {
	File        string           `json:"file"`
	Name        string           `json:"name"`
	Definitions []definitionSite `json:"definitions"`
}

type definitionSite struct {
	Role   definition.Role `json:"role"`
	Line   int             `json:"line"`
	Column int             `json:"column"`
	Text   string          `json:"text"`
}

func newDefineCommand() *cobra.Command {
	flags := &defineFlags{}

	cmd := &cobra.Command{
		Use:   "define FILE (--line L --column C | --name NAME)",
		Short: "Find where a label or variable is defined",
		Long: `Find the definitions of the label or variable named by --name, or
of the identifier at --line and --column.

A label is defined by a line of the form "name:". A variable is defined by
every declare statement that names it. The label is listed first.

Examples:
  msclfmt define main.mscl --name retry
  msclfmt define main.mscl --line 40 --column 12
  msclfmt define main.mscl --name total --format json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefine(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.line, "line", 0, "line of the identifier (one-based)")
	cmd.Flags().IntVar(&flags.column, "column", 0, "column of the identifier (one-based)")
	cmd.Flags().StringVar(&flags.name, "name", "", "name of the label or variable")
	cmd.Flags().StringVar(&flags.output, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output (json format)")

	return cmd
}

func runDefine(cmd *cobra.Command, path string, flags *defineFlags) error {
	if flags.output != "text" && flags.output != "json" {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, flags.output)
	}
	byPosition := cmd.Flags().Changed("line") || cmd.Flags().Changed("column")
	if flags.name != "" && byPosition {
		return fmt.Errorf("%w: --name cannot be combined with --line or --column", ErrInvalidUsage)
	}
	if flags.name == "" && (flags.line < 1 || flags.column < 1) {
		return fmt.Errorf("%w: need --name, or --line and --column", ErrInvalidUsage)
	}

	ctx := commandContext(cmd)

	content, _, err := fsutil.Read(ctx, path)
	if err != nil {
		return err
	}

	session := editor.NewSession(string(content), format.DefaultOptions())

	name := flags.name
	var locations []definition.Location
	if name != "" {
		locations = definition.Find(session.Buffer, session.Spans, name)
	} else {
		session.MoveTo(buffer.Position{Line: flags.line - 1, Column: flags.column - 1})
		name = definition.IdentifierAt(session.Buffer, session.Cursor)
		locations = session.FindDefinitionAtCursor()
	}

	logging.FromContext(ctx).Debug("definition lookup",
		logging.FieldPath, path,
		logging.FieldName, name,
		logging.FieldLine, session.Cursor.Line+1,
		logging.FieldColumn, session.Cursor.Column+1,
		logging.FieldMatches, len(locations),
	)

	if len(locations) == 0 {
		if name == "" {
			return fmt.Errorf("%w: no identifier at %d:%d", ErrNoDefinition, flags.line, flags.column)
		}
		return fmt.Errorf("%w for %q", ErrNoDefinition, name)
	}

	if flags.output == "json" {
		return writeDefinitionsJSON(cmd, path, name, session.Buffer, locations, flags.compact)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	for _, loc := range locations {
		fmt.Fprint(out, styles.FormatLocation(path, loc, session.Buffer.Line(loc.Position.Line)))
	}
	return nil
}

func writeDefinitionsJSON(
	cmd *cobra.Command,
	path, name string,
	buf *buffer.Buffer,
	locations []definition.Location,
	compact bool,
) error {
	output := definitionOutput{
		File:        path,
		Name:        locations[0].Name,
		Definitions: make([]definitionSite, 0, len(locations)),
	}
	if output.Name == "" {
		output.Name = name
	}
	for _, loc := range locations {
		output.Definitions = append(output.Definitions, definitionSite{
			Role:   loc.Role,
			Line:   loc.Position.Line + 1,
			Column: loc.Position.Column + 1,
			Text:   buf.Line(loc.Position.Line),
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
