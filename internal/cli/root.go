// Package cli provides the Cobra command structure for msclfmt.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/msclfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root msclfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "msclfmt",
		Short: "An indenter and formatter for MSCL macro scripts",
		Long: `msclfmt indents MSCL macro scripts by their block structure.

Every code line is indented from the code line above it: if, elseif, while
and a trailing else open a block; else, elseif, endif and endwhile close
one. Labels stay flush left, continued strings are left alone and
statements continued with a backslash are indented one extra level.

msclfmt can also indent a single line or region the way an editor would,
and find where a label or variable is defined.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		Annotations:   map[string]string{exitCodesAnnotation: exitCodesHelp},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: groupEditing, Title: "Editing Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, cmd := range []*cobra.Command{newFormatCommand(), newIndentCommand(), newDefineCommand()} {
		cmd.GroupID = groupEditing
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{newInitCommand(), newVersionCommand(info)} {
		cmd.GroupID = groupSetup
		rootCmd.AddCommand(cmd)
	}

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return nil
	}
}
