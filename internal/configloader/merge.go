package configloader

import (
	"maps"

	"github.com/yaklabco/wsfmt/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.IndentSize != 0 {
		result.IndentSize = override.IndentSize
	}
	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.UseTabs != nil {
		result.UseTabs = override.UseTabs
	}
	if override.NewLine != "" {
		result.NewLine = override.NewLine
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Language != "" {
		result.Language = override.Language
	}

	// Only true is visible for plain booleans, so a later layer cannot
	// switch these back off.
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Languages = mergeLanguages(base.Languages, override.Languages)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return result
}

// mergeLanguages performs a deep merge of language configurations.
func mergeLanguages(base, override map[string]config.LanguageConfig) map[string]config.LanguageConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.LanguageConfig, len(base)+len(override))
	maps.Copy(result, base)

	for name, val := range override {
		if existing, ok := result[name]; ok {
			result[name] = mergeLanguageConfig(existing, val)
		} else {
			result[name] = val
		}
	}

	return result
}

// mergeLanguageConfig merges one language's settings; options merge key by key.
func mergeLanguageConfig(base, override config.LanguageConfig) config.LanguageConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
