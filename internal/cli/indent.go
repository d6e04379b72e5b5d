package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/internal/ui/pretty"
	"github.com/yaklabco/msclfmt/pkg/buffer"
	"github.com/yaklabco/msclfmt/pkg/config"
	"github.com/yaklabco/msclfmt/pkg/editor"
	"github.com/yaklabco/msclfmt/pkg/format"
	"github.com/yaklabco/msclfmt/pkg/fsutil"
	"github.com/yaklabco/msclfmt/pkg/indent"
)

type indentFlags struct {
	editing editingFlags
	line    int
	endLine int
	explain bool
	write   bool
}

func newIndentCommand() *cobra.Command {
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "indent FILE --line N",
		Short: "Indent one line or a region of a file",
		Long: `Indent one line, or the lines N to M, the way an editor's indent
command would. Trailing whitespace and trailing blank lines are left alone.

Without --write the re-indented file is printed to standard output. With
--explain, the column chosen for each line is printed with the signals
that produced it.

Examples:
  msclfmt indent main.mscl --line 12
  msclfmt indent main.mscl --line 12 --end-line 40 -w
  msclfmt indent main.mscl --line 12 --explain`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndent(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.line, "line", 0, "line to indent (one-based)")
	cmd.Flags().IntVar(&flags.endLine, "end-line", 0, "last line of the region to indent (one-based)")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "print how each column was computed")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	addEditingFlags(cmd, &flags.editing)

	return cmd
}

func runIndent(cmd *cobra.Command, path string, flags *indentFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	var cliCfg config.Config
	if err := flags.editing.apply(cmd, &cliCfg); err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd, &cliCfg)
	if err != nil {
		return err
	}

	content, snapshot, err := fsutil.Read(ctx, path)
	if err != nil {
		return err
	}

	session := editor.NewSession(string(content), format.OptionsFromConfig(cfg))
	first, last, err := indentRegion(session.Buffer, flags)
	if err != nil {
		return err
	}

	if last > first {
		session.Select(buffer.Position{Line: first}, buffer.Position{Line: last + 1})
	} else {
		session.MoveTo(buffer.Position{Line: first})
	}
	changed := session.IndentLineOrSelection()

	logger.Debug("indented",
		logging.FieldPath, path,
		logging.FieldLine, first+1,
		logging.FieldLinesChanged, changed,
	)

	out := cmd.OutOrStdout()

	if flags.explain {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
		for line := first; line <= last; line++ {
			decision := indent.Decide(session.Buffer, session.Spans, line, session.Options.Indent())
			fmt.Fprint(out, styles.FormatDecision(path, decision, session.Buffer.Line(line)))
		}
	}

	switch {
	case flags.write && changed > 0:
		if err := fsutil.WriteAtomic(ctx, path, []byte(session.Text()), snapshot.Mode); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("indented", logging.FieldPath, path, logging.FieldLinesChanged, changed)
	case !flags.write && !flags.explain:
		if _, err := fmt.Fprint(out, session.Text()); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
	}

	return nil
}

// indentRegion converts the one-based --line and --end-line flags into a
// zero-based inclusive line range within buf.
func indentRegion(buf *buffer.Buffer, flags *indentFlags) (int, int, error) {
	lines := buf.LineCount()

	if flags.line == 0 {
		return 0, 0, fmt.Errorf("%w: --line is required", ErrInvalidUsage)
	}
	if flags.line < 1 || flags.line > lines {
		return 0, 0, fmt.Errorf("%w: --line %d is outside the file (1-%d)", ErrInvalidUsage, flags.line, lines)
	}
	first := flags.line - 1

	last := first
	if flags.endLine != 0 {
		if flags.endLine < flags.line || flags.endLine > lines {
			return 0, 0, fmt.Errorf("%w: --end-line %d must be between %d and %d",
				ErrInvalidUsage, flags.endLine, flags.line, lines)
		}
		last = flags.endLine - 1
	}

	return first, last, nil
}
