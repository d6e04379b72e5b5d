package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/msclfmt/internal/ui/pretty"
)

// Command groups shown in the root help.
const (
	groupEditing = "editing"
	groupSetup   = "setup"
)

// exitCodesAnnotation holds the exit code table printed under a command's
// help.
const exitCodesAnnotation = "msclfmt/exit-codes"

const exitCodesHelp = `  0   success
  1   files need formatting (--check), or no definition found
  64  invalid command-line usage
  65  invalid configuration
  70  internal error
  74  files could not be read or written`

// HelpStyles contains Lipgloss styles for command help.
type HelpStyles struct {
	Heading lipgloss.Style
	Command lipgloss.Style
	Name    lipgloss.Style
	Flag    lipgloss.Style
	Dim     lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Heading: plain, Command: plain, Name: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	help   *template.Template
	usage  *template.Template
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}{{$cmds := .Commands}}
{{- range .Groups}}

{{ heading .Title }}{{$group := .ID}}{{range $cmds}}{{if and (eq .GroupID $group) .IsAvailableCommand}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if not .AllChildCommandsHaveGroup}}

{{ heading "Additional Commands:" }}{{range $cmds}}{{if and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- with exitCodes .}}

{{ heading "Exit Codes:" }}
{{ . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ template "usage" . }}`

// NewHelpFormatter creates a help formatter for output written to writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	formatter := &HelpFormatter{
		styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
	}

	funcs := template.FuncMap{
		"heading":   formatter.styles.Heading.Render,
		"command":   formatter.styles.Command.Render,
		"name":      formatter.styles.Name.Render,
		"dim":       formatter.styles.Dim.Render,
		"flags":     formatter.flagUsages,
		"exitCodes": exitCodes,
		"rpad":      rpad,
		"trimRight": trimTrailingWhitespace,
	}

	formatter.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	formatter.help = template.Must(template.Must(formatter.usage.Clone()).New("help").Parse(helpTemplate))

	return formatter
}

// ApplyToCommand installs the styled help and usage output on cmd. Child
// commands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := h.usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages lists the visible flags of set, one per line, with names,
// value type and default.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	type row struct {
		names string
		plain int
		usage string
	}

	var rows []row
	width := 0
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		varName, usage := pflag.UnquoteUsage(flag)

		names := "    " + h.styles.Flag.Render("--"+flag.Name)
		plain := len("    --" + flag.Name)
		if flag.Shorthand != "" {
			names = h.styles.Flag.Render("-"+flag.Shorthand) + ", " + h.styles.Flag.Render("--"+flag.Name)
		}
		if varName != "" {
			names += " " + h.styles.Dim.Render(varName)
			plain += 1 + len(varName)
		}

		if showDefault(flag) {
			usage += h.styles.Dim.Render(fmt.Sprintf(" (default %s)", flag.DefValue))
		}

		rows = append(rows, row{names: names, plain: plain, usage: usage})
		width = max(width, plain)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+r.names+strings.Repeat(" ", width-r.plain)+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

// showDefault reports whether the default of flag is worth printing.
func showDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	}
	return true
}

// exitCodes returns the exit code table of the root command, or "" for
// other commands.
func exitCodes(cmd *cobra.Command) string {
	return cmd.Annotations[exitCodesAnnotation]
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
