package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/pkg/config"
	"github.com/yaklabco/msclfmt/pkg/format"
	"github.com/yaklabco/msclfmt/pkg/reporter"
	"github.com/yaklabco/msclfmt/pkg/runner"
)

// stdinName is the path reported for content read from standard input.
const stdinName = "<stdin>"

type formatFlags struct {
	editing       editingFlags
	output        string
	lines         string
	ignore        []string
	extensions    []string
	summary       bool
	showUnchanged bool
	compact       bool
}

func newFormatCommand() *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Indent MSCL files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, &cfg, flags)
		},
	}

	addFormatFlags(cmd, &cfg, flags)

	return cmd
}

const formatLongDescription = `Indent MSCL files by their block structure.

By default, lists the .mscl and .msc files under the current directory that
need formatting. Use --write to rewrite them in place, or --check to fail
when any file is not formatted. With no paths and piped input, formats
standard input to standard output.

Examples:
  msclfmt format                     # List files needing formatting
  msclfmt format -w macros/          # Rewrite files in place
  msclfmt format --check             # Exit 1 if anything needs formatting
  msclfmt format --format diff       # Show the changes as a diff
  msclfmt format --lines 10:20 a.mscl # Only touch lines 10 to 20
  msclfmt format < in.mscl > out.mscl`

func runFormat(cmd *cobra.Command, args []string, cfg *config.Config, flags *formatFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if err := flags.editing.apply(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		outputFormat, err := reporter.ParseFormat(flags.output)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Format = config.OutputFormat(outputFormat)
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("extensions") {
		cfg.Extensions = flags.extensions
	}

	lineRange, err := parseLineRange(flags.lines)
	if err != nil {
		return err
	}
	if lineRange != nil && len(args) > 1 {
		return fmt.Errorf("%w: --lines needs a single file", ErrInvalidUsage)
	}

	finalCfg, workDir, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}

	repOpts := reporter.Options{
		Writer:          cmd.OutOrStdout(),
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          reporter.Format(finalCfg.Format),
		Color:           colorMode(cmd),
		ShowSummary:     true,
		DetailedSummary: flags.summary,
		ShowUnchanged:   flags.showUnchanged,
		Compact:         flags.compact,
		WorkingDir:      workDir,
	}

	pipeline := format.NewPipeline()

	if len(args) == 0 && isPiped(cmd.InOrStdin()) {
		return formatStdin(cmd, pipeline, finalCfg, lineRange, repOpts)
	}

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir
	runOpts.Pipeline.Range = lineRange

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	logger.Debug("format run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
	)

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, finalCfg.Check) {
	case ExitIOError:
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed,
			result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	case ExitFormattingNeeded:
		return ErrFormattingNeeded
	default:
		return nil
	}
}

// formatStdin formats standard input. Formatted text goes to standard
// output unless a report was asked for with --check or --format.
func formatStdin(
	cmd *cobra.Command,
	pipeline *format.Pipeline,
	cfg *config.Config,
	lineRange *format.Range,
	repOpts reporter.Options,
) error {
	ctx := commandContext(cmd)

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	opts := format.PipelineOptionsFromConfig(cfg)
	opts.Range = lineRange
	opts.Write = false

	res, err := pipeline.ProcessContent(ctx, stdinName, content, opts)
	if err != nil {
		return fmt.Errorf("format stdin: %w", err)
	}

	if !cfg.Check && repOpts.Format == reporter.FormatText {
		if _, err := cmd.OutOrStdout().Write(res.Formatted); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	repOpts.WorkingDir = ""
	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	result := runner.NewResult(runner.FileOutcome{Path: stdinName, Result: res})
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Check && res.Changed {
		return ErrFormattingNeeded
	}
	return nil
}

// isPiped reports whether in is something other than an interactive
// terminal.
func isPiped(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(file.Fd()))
}

// parseLineRange parses "START:END" or "LINE", one-based and inclusive.
// An empty string means no range.
func parseLineRange(value string) (*format.Range, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // no range is a valid result
	}

	startText, endText, found := strings.Cut(value, ":")
	if !found {
		endText = startText
	}

	start, startErr := strconv.Atoi(strings.TrimSpace(startText))
	end, endErr := strconv.Atoi(strings.TrimSpace(endText))
	if startErr != nil || endErr != nil || start < 1 || end < start {
		return nil, fmt.Errorf("%w: --lines %q must be START:END with 1 <= START <= END", ErrInvalidUsage, value)
	}

	return format.LineRange(start-1, end-1), nil
}

func addFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write formatted content back to the files")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit 1 if any file needs formatting")
	cmd.Flags().StringVar(&flags.output, "format", "text", "output format: text, diff, json")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "only format lines START:END (one-based, inclusive)")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to format (default .mscl,.msc)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a detailed summary (text format)")
	cmd.Flags().BoolVar(&flags.showUnchanged, "show-unchanged", false, "also list files that are already formatted")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output (json format)")
	addEditingFlags(cmd, &flags.editing)
}
