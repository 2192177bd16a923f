package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/wsfmt/internal/configloader"
	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/lang"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	// Command name/usage styling
	Command lipgloss.Style

	// Section headers (Usage, Commands, Flags, etc.)
	Heading lipgloss.Style

	// Subcommand and language names
	Subcommand lipgloss.Style

	// Flag names (--flag, -f)
	Flag lipgloss.Style

	// Flag value types and defaults
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles   *HelpStyles
	registry *lang.Registry
}

// NewHelpFormatter creates a help formatter listing the languages of
// registry. Colors are resolved from the --color flag on every render.
func NewHelpFormatter(registry *lang.Registry) *HelpFormatter {
	return &HelpFormatter{
		styles:   NewHelpStyles(false),
		registry: registry,
	}
}

// ApplyToCommand installs the help and usage functions on cmd; subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		out := command.OutOrStdout()
		h.styles = NewHelpStyles(pretty.IsColorEnabled(colorMode(command), out))
		if _, err := io.WriteString(out, h.Help(command)); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		out := command.OutOrStderr()
		h.styles = NewHelpStyles(pretty.IsColorEnabled(colorMode(command), out))
		if _, err := io.WriteString(out, h.Usage(command)); err != nil {
			return fmt.Errorf("write usage: %w", err)
		}
		return nil
	})
}

// colorMode reads the global --color flag, defaulting to auto.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}

// Help renders the full help text: description followed by usage.
func (h *HelpFormatter) Help(cmd *cobra.Command) string {
	var b strings.Builder

	b.WriteString(h.styles.Command.Render(cmd.CommandPath()))
	b.WriteString("\n\n")

	if text := strings.TrimSpace(cmd.Long); text != "" {
		b.WriteString(trimTrailingWhitespaces(text))
		b.WriteString("\n\n")
	} else if cmd.Short != "" {
		b.WriteString(cmd.Short)
		b.WriteString("\n\n")
	}

	b.WriteString(h.Usage(cmd))
	return b.String()
}

// Usage renders the usage line, commands, flags and, for commands that
// format files, the supported languages.
func (h *HelpFormatter) Usage(cmd *cobra.Command) string {
	var b strings.Builder

	h.heading(&b, "Usage:")
	if cmd.Runnable() {
		fmt.Fprintf(&b, "  %s\n", h.styles.Command.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "  %s [command]\n", h.styles.Command.Render(cmd.CommandPath()))
	}

	if len(cmd.Aliases) > 0 {
		b.WriteString("\n")
		h.heading(&b, "Aliases:")
		fmt.Fprintf(&b, "  %s\n", h.styles.Dim.Render(strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasAvailableSubCommands() {
		b.WriteString("\n")
		h.heading(&b, "Commands:")
		h.commands(&b, cmd)
	}

	if cmd.HasAvailableLocalFlags() {
		b.WriteString("\n")
		h.heading(&b, "Flags:")
		h.flags(&b, cmd.LocalFlags())
	}

	if cmd.HasAvailableInheritedFlags() {
		b.WriteString("\n")
		h.heading(&b, "Global Flags:")
		h.flags(&b, cmd.InheritedFlags())
	}

	if cmd.Name() == "format" || !cmd.HasParent() {
		h.languages(&b)
		h.environment(&b)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse %q for more information about a command.\n",
			cmd.CommandPath()+" [command] --help")
	}

	return b.String()
}

func (h *HelpFormatter) heading(b *strings.Builder, title string) {
	b.WriteString(h.styles.Heading.Render(title))
	b.WriteString("\n")
}

func (h *HelpFormatter) commands(b *strings.Builder, cmd *cobra.Command) {
	var visible []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() && sub.Name() != "help" {
			continue
		}
		visible = append(visible, sub)
		width = max(width, uniseg.StringWidth(sub.Name()))
	}

	for _, sub := range visible {
		fmt.Fprintf(b, "  %s  %s\n", h.styles.Subcommand.Render(rpad(sub.Name(), width)), sub.Short)
	}
}

// flagEntry is one flag split into its two help columns.
type flagEntry struct {
	names string
	kind  string
	usage string
}

func (h *HelpFormatter) flags(b *strings.Builder, set *pflag.FlagSet) {
	var entries []flagEntry
	width := 0

	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		kind, usage := pflag.UnquoteUsage(flag)
		if hasDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		entry := flagEntry{names: names, kind: kind, usage: usage}
		entries = append(entries, entry)
		width = max(width, uniseg.StringWidth(entry.left()))
	})

	for _, entry := range entries {
		left := h.styles.Flag.Render(entry.names)
		if entry.kind != "" {
			left += " " + h.styles.Dim.Render(entry.kind)
		}
		padding := width - uniseg.StringWidth(entry.left())
		fmt.Fprintf(b, "  %s%s  %s\n", left, strings.Repeat(" ", padding), entry.usage)
	}
}

func (e flagEntry) left() string {
	if e.kind == "" {
		return e.names
	}
	return e.names + " " + e.kind
}

// hasDefault reports whether the flag's default is worth printing.
func hasDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	default:
		return true
	}
}

func (h *HelpFormatter) languages(b *strings.Builder) {
	if h.registry == nil {
		return
	}
	profiles := h.registry.Profiles()
	if len(profiles) == 0 {
		return
	}

	width := 0
	for _, profile := range profiles {
		width = max(width, uniseg.StringWidth(profile.Name()))
	}

	b.WriteString("\n")
	h.heading(b, "Languages:")
	for _, profile := range profiles {
		fmt.Fprintf(b, "  %s  %s\n",
			h.styles.Subcommand.Render(rpad(profile.Name(), width)),
			h.styles.Dim.Render(strings.Join(profile.Extensions(), " ")))
	}
}

func (h *HelpFormatter) environment(b *strings.Builder) {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	width := 0
	for _, name := range names {
		width = max(width, uniseg.StringWidth(name))
	}

	b.WriteString("\n")
	h.heading(b, "Environment:")
	for _, name := range names {
		fmt.Fprintf(b, "  %s  %s\n", h.styles.Flag.Render(rpad(name, width)), vars[name])
	}
}

// rpad pads str with spaces to the given display width.
func rpad(str string, width int) string {
	if pad := width - uniseg.StringWidth(str); pad > 0 {
		return str + strings.Repeat(" ", pad)
	}
	return str
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
