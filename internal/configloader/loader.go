// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/lang"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves language names. Defaults to lang.DefaultRegistry.
	Registry *lang.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (WSFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.wsfmt.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/wsfmt/config.yaml)
//  6. System config (/etc/wsfmt/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	registry := cmp.Or(opts.Registry, lang.DefaultRegistry)

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = cmp.Or(opts.ExplicitPath, paths.Explicit)

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, file := range configFiles(paths, opts) {
		fileCfg, warnings, err := loadLayer(file.path, registry)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", file.layer, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, file.path)
		result.Warnings = append(result.Warnings, warnings...)
		logging.FromContext(ctx).Debug("loaded config", logging.FieldPath, file.path, "layer", file.layer)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	if validation := Validate(cfg, registry); !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// configFile is one configuration file to merge, tagged with its layer.
type configFile struct {
	layer string
	path  string
}

// configFiles lists the files to merge, lowest precedence first.
func configFiles(paths *ConfigPaths, opts LoadOptions) []configFile {
	var files []configFile
	add := func(layer, path string, skip bool) {
		if path != "" && !skip {
			files = append(files, configFile{layer: layer, path: path})
		}
	}
	add("system", paths.System, opts.IgnoreSystemConfig)
	add("user", paths.User, opts.IgnoreUserConfig)
	add("project", paths.Project, opts.IgnoreProjectConfig)
	add("explicit", paths.Explicit, false)
	return files
}

// loadLayer reads and validates one file. Validation warnings are
// returned as messages; the first error fails the load.
func loadLayer(path string, registry *lang.Registry) (*config.Config, []string, error) {
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, nil, err
	}

	validation := ValidateWithFile(cfg, path, registry)
	if !validation.Valid() {
		return nil, nil, &validation.Errors[0]
	}

	warnings := make([]string, 0, len(validation.Warnings))
	for _, w := range validation.Warnings {
		warnings = append(warnings, w.Error())
	}
	return cfg, warnings, nil
}

// loadConfigFile reads and strictly parses one configuration file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes a configuration to a YAML file with the default header.
func WriteConfig(cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644
