package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/lang"
)

// Options controls a formatting run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Registry resolves languages. Defaults to lang.DefaultRegistry.
	Registry *lang.Registry

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir. "**" matches any number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Lines limits formatting to a line range. Only valid for a single file.
	Lines *LineRange

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// LineRange is an inclusive, 1-based range of lines.
type LineRange struct {
	Start int
	End   int
}

// String renders the range as "start:end".
func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// ParseLineRange parses "start:end" or a single line number.
func ParseLineRange(s string) (LineRange, error) {
	startText, endText, found := strings.Cut(s, ":")
	if !found {
		endText = startText
	}

	start, startErr := strconv.Atoi(strings.TrimSpace(startText))
	end, endErr := strconv.Atoi(strings.TrimSpace(endText))
	if startErr != nil || endErr != nil {
		return LineRange{}, fmt.Errorf("invalid line range %q: want start:end", s)
	}
	if start < 1 || end < start {
		return LineRange{}, fmt.Errorf("invalid line range %q: want 1 <= start <= end", s)
	}
	return LineRange{Start: start, End: end}, nil
}

func (o Options) registry() *lang.Registry {
	if o.Registry == nil {
		return lang.DefaultRegistry
	}
	return o.Registry
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// languageExtensions maps every formattable extension to its language:
// the registered extensions plus those added in the configuration, minus
// disabled languages.
func (o Options) languageExtensions() map[string]string {
	cfg := o.config()
	result := make(map[string]string)

	for _, profile := range o.registry().Profiles() {
		name := profile.Name()
		if !cfg.LanguageEnabled(name) {
			continue
		}
		for _, ext := range profile.Extensions() {
			result[normalizeExt(ext)] = name
		}
	}

	for name, langCfg := range cfg.Languages {
		profile, ok := o.registry().Get(name)
		if !ok || !langCfg.IsEnabled() {
			continue
		}
		for _, ext := range langCfg.Extensions {
			result[normalizeExt(ext)] = profile.Name()
		}
	}

	return result
}
