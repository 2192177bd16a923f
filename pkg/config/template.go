package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every language with its default options.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Languages describes the languages to document.
	Languages []LanguageInfo
}

// LanguageInfo contains language metadata for template generation.
type LanguageInfo struct {
	Name       string
	Extensions []string
	Options    map[string]any
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Columns per indentation level
indent_size: 4

# Indent with tabs instead of spaces
# use_tabs: false

# Line terminator for inserted breaks: auto, lf, crlf, or cr
# newline: auto

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "testdata/**"

# Language-specific configuration
# languages:
#   brace:
#     options:
#       brace_style: kr
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with every language documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# wsfmt configuration - Full Template
# See: https://github.com/yaklabco/wsfmt
#
# This template lists every setting with its default value.

# Columns per indentation level
indent_size: 4

# Column width of a tab character
tab_size: 4

# Indent with tabs instead of spaces
use_tabs: false

# Line terminator for inserted breaks: auto, lf, crlf, or cr
newline: auto

# Number of parallel workers (0 = auto based on CPU cores)
jobs: 0

# Backup configuration for --write
backups:
  enabled: false
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - ".git/**"

# Language-specific configuration
languages:
`)

	for _, info := range sortedLanguages(opts.Languages) {
		fmt.Fprintf(&buf, "\n  # %s\n", info.Name)
		if len(info.Extensions) > 0 {
			fmt.Fprintf(&buf, "  # Extensions: %s\n", strings.Join(info.Extensions, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", info.Name)
		buf.WriteString("    enabled: true\n")

		if len(info.Options) == 0 {
			continue
		}

		optionsYAML, err := yaml.Marshal(info.Options)
		if err != nil {
			return nil, fmt.Errorf("encode %s options: %w", info.Name, err)
		}
		buf.WriteString("    options:\n")
		for _, line := range strings.Split(strings.TrimRight(string(optionsYAML), "\n"), "\n") {
			buf.WriteString("      " + line + "\n")
		}
	}

	return buf.Bytes(), nil
}

func sortedLanguages(languages []LanguageInfo) []LanguageInfo {
	sorted := slices.Clone(languages)
	slices.SortFunc(sorted, func(a, b LanguageInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return sorted
}

// templateToJSON renders the default settings as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	defaults := NewConfig()

	cfg := map[string]any{
		"indent_size": defaults.IndentSize,
		"newline":     string(defaults.NewLine),
	}

	if opts.Full {
		cfg["tab_size"] = defaults.TabSize
		cfg["use_tabs"] = *defaults.UseTabs
		cfg["jobs"] = defaults.Jobs
		cfg["backups"] = map[string]any{
			"enabled": defaults.Backups.Enabled,
			"mode":    defaults.Backups.Mode,
		}
		cfg["ignore"] = []string{"vendor/**", ".git/**"}

		languages := make(map[string]any, len(opts.Languages))
		for _, info := range opts.Languages {
			entry := map[string]any{"enabled": true}
			if len(info.Options) > 0 {
				entry["options"] = info.Options
			}
			languages[info.Name] = entry
		}
		cfg["languages"] = languages
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# wsfmt configuration
# See: https://github.com/yaklabco/wsfmt`
}
