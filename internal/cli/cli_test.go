package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/msclfmt/internal/cli"
	"github.com/yaklabco/msclfmt/internal/configloader"
	"github.com/yaklabco/msclfmt/pkg/fsutil"
	"github.com/yaklabco/msclfmt/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if cmd.Use != "msclfmt" {
		t.Errorf("expected Use to be 'msclfmt', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"format", "indent", "define", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	expected := map[string][]string{
		"format": {
			"write", "check", "format", "lines", "jobs", "ignore", "no-backups",
			"indent-offset", "edition", "delete-trailing-whitespace", "keep-trailing-blank-lines",
		},
		"indent": {"line", "end-line", "explain", "write", "indent-offset"},
		"define": {"line", "column", "name", "format"},
	}

	cmd := cli.NewRootCommand(testInfo())
	for name, flags := range expected {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		for _, flagName := range flags {
			if subCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, name)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("1.2.3")) {
		t.Errorf("version output %q lacks the version", out.String())
	}
}

func TestFormatCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	if err != nil {
		t.Fatalf("format command not found: %v", err)
	}

	if err := formatCmd.Args(formatCmd, []string{"a.mscl", "b.msc", "macros/"}); err != nil {
		t.Errorf("format command should accept arbitrary args, got error: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"formatting needed", cli.ErrFormattingNeeded, cli.ExitFormattingNeeded},
		{"no definition", fmt.Errorf("%w for %q", cli.ErrNoDefinition, "x"), cli.ExitFormattingNeeded},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: boom", cli.ErrConfig), cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "edition"}, cli.ExitConfigError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{"files failed", cli.ErrFilesFailed, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	changed := &runner.Result{Stats: runner.Stats{FilesChanged: 1}}
	failed := &runner.Result{Stats: runner.Stats{FilesChanged: 1, FilesErrored: 1}}

	if got := cli.ExitCodeFromResult(nil, true); got != cli.ExitSuccess {
		t.Errorf("nil result: got %d", got)
	}
	if got := cli.ExitCodeFromResult(changed, false); got != cli.ExitSuccess {
		t.Errorf("changes without --check: got %d", got)
	}
	if got := cli.ExitCodeFromResult(changed, true); got != cli.ExitFormattingNeeded {
		t.Errorf("changes with --check: got %d", got)
	}
	if got := cli.ExitCodeFromResult(failed, true); got != cli.ExitIOError {
		t.Errorf("errors win over changes: got %d", got)
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
		not  []string
	}{
		{
			name: "root",
			args: []string{"--help"},
			want: []string{"Editing Commands:", "Setup Commands:", "Exit Codes:", "64  invalid command-line usage"},
		},
		{
			name: "format",
			args: []string{"format", "--help"},
			want: []string{"--indent-offset int", "(default 4)", "-w, --write", "Global Flags:"},
			not:  []string{"Exit Codes:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			for _, want := range tt.want {
				if !bytes.Contains(out.Bytes(), []byte(want)) {
					t.Errorf("help output missing %q:\n%s", want, out.String())
				}
			}
			for _, not := range tt.not {
				if bytes.Contains(out.Bytes(), []byte(not)) {
					t.Errorf("help output should not contain %q", not)
				}
			}
		})
	}
}
