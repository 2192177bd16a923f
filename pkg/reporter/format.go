package reporter

import (
	"fmt"
	"strings"
)

// Format names an output format.
type Format string

// Output formats. Text is the default.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// Formats lists every output format in the order they are documented.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatDiff, FormatSummary}
}

// ParseFormat parses a format name case-insensitively. The empty string
// selects text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}
	if format := Format(name); format.IsValid() {
		return format, nil
	}

	names := make([]string, 0, len(Formats()))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// MachineReadable reports whether the output is meant for tools rather
// than people; such output is never colorized.
func (f Format) MachineReadable() bool {
	return f == FormatJSON
}
