package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/msclfmt/internal/configloader"
	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/pkg/config"
)

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values set by flags. It returns the working directory alongside.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfigFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldEdition, cfg.Edition,
		logging.FieldIndentOffset, cfg.Offset(),
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// editingFlags are the formatting options shared by every command that
// changes indentation.
type editingFlags struct {
	indentOffset           int
	edition                string
	deleteTrailingSpace    bool
	keepTrailingBlankLines bool
}

func addEditingFlags(cmd *cobra.Command, flags *editingFlags) {
	cmd.Flags().IntVar(&flags.indentOffset, "indent-offset", config.DefaultIndentOffset,
		"columns per nesting level")
	cmd.Flags().StringVar(&flags.edition, "edition", string(config.EditionModern),
		"defaults to use: classic, modern")
	cmd.Flags().BoolVar(&flags.deleteTrailingSpace, "delete-trailing-whitespace", false,
		"strip trailing whitespace (default: on for classic, off for modern)")
	cmd.Flags().BoolVar(&flags.keepTrailingBlankLines, "keep-trailing-blank-lines", false,
		"keep blank lines at the end of a file")
}

// apply copies the flags the user actually set into cfg.
func (f *editingFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("indent-offset") {
		if f.indentOffset <= 0 {
			return fmt.Errorf("%w: --indent-offset must be > 0", ErrInvalidUsage)
		}
		cfg.IndentOffset = f.indentOffset
	}
	if cmd.Flags().Changed("edition") {
		edition := config.Edition(f.edition)
		if !edition.IsValid() {
			return fmt.Errorf("%w: unknown edition %q", ErrInvalidUsage, f.edition)
		}
		cfg.Edition = edition
	}
	if cmd.Flags().Changed("delete-trailing-whitespace") {
		cfg.DeleteTrailingWhitespace = config.Bool(f.deleteTrailingSpace)
	}
	if cmd.Flags().Changed("keep-trailing-blank-lines") {
		cfg.DeleteTrailingBlankLines = config.Bool(!f.keepTrailingBlankLines)
	}
	return nil
}

// commandContext returns the context of cmd carrying the logger that the
// command and the packages it calls log through.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.FromContext(ctx))
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
