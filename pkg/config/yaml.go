package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of generated YAML.
const yamlIndent = 2

// ToYAML serializes the persisted part of the configuration. Fields tagged
// yaml:"-" only exist on the command line and are omitted.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	err := enc.Encode(c)
	if closeErr := enc.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration below a comment header,
// separated by a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	out := strings.TrimRight(header, "\n") + "\n\n"
	return append([]byte(out), body...), nil
}

// FromYAML parses a configuration document. Unknown keys are errors so a
// misspelled setting never silently falls back to its default. An empty
// document yields an empty configuration.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Languages == nil {
		cfg.Languages = make(map[string]LanguageConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration, including nested
// language option values.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	if c.UseTabs != nil {
		useTabs := *c.UseTabs
		clone.UseTabs = &useTabs
	}
	if c.Languages != nil {
		clone.Languages = make(map[string]LanguageConfig, len(c.Languages))
		for name, lc := range c.Languages {
			clone.Languages[name] = lc.clone()
		}
	}
	return &clone
}

func (lc LanguageConfig) clone() LanguageConfig {
	out := LanguageConfig{Extensions: slices.Clone(lc.Extensions)}
	if lc.Enabled != nil {
		enabled := *lc.Enabled
		out.Enabled = &enabled
	}
	out.Options = cloneOptions(lc.Options)
	return out
}

// cloneOptions copies an options map without sharing nested values.
func cloneOptions(options map[string]any) map[string]any {
	if options == nil {
		return nil
	}
	out := make(map[string]any, len(options))
	for key, value := range options {
		out[key] = cloneValue(value)
	}
	return out
}

// cloneValue copies the maps and slices a YAML decoder produces.
func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return cloneOptions(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

