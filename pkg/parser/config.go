package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/githubnext/nestcheck/pkg/constants"
	"github.com/goccy/go-yaml"
)

// Config holds the settings read from a .nestcheck.yaml file
type Config struct {
	// Path is the file the configuration was loaded from; empty for defaults
	Path string `yaml:"-"`

	Format     string       `yaml:"format"`
	CollectAll bool         `yaml:"collect-all"`
	Workers    int          `yaml:"workers"`
	Braces     BracesConfig `yaml:"braces"`
	Tags       TagsConfig   `yaml:"tags"`
}

// BracesConfig configures the bracket checker
type BracesConfig struct {
	Files []string `yaml:"files"`
}

// TagsConfig configures the tag checker
type TagsConfig struct {
	File          string   `yaml:"file"`
	Marker        string   `yaml:"marker"`
	Names         []string `yaml:"names"`
	RequireMarker bool     `yaml:"require-marker"`
	ReportSuccess *bool    `yaml:"report-success"`
}

// ShouldReportSuccess reports whether a balanced tag scan prints an OK line
func (t TagsConfig) ShouldReportSuccess() bool {
	return t.ReportSuccess == nil || *t.ReportSuccess
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		Format:  constants.FormatText,
		Workers: constants.DefaultWorkers,
		Tags: TagsConfig{
			Names: append([]string(nil), constants.DefaultTagNames...),
		},
	}
}

// LoadConfig reads the configuration at path. When path is empty the default
// file in the working directory is used if it exists; a missing default file
// is not an error, but a missing explicit file is.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigFile
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(path, content)
}

// ParseConfig parses and validates configuration content. Syntax and schema
// errors are returned as formatted diagnostics pointing into the file.
func ParseConfig(path string, content []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path

	if len(bytes.TrimSpace(content)) == 0 {
		return cfg, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		line, column, message := ExtractYAMLError(err, 0)
		return nil, errors.New(console.FormatDiagnostic(console.Diagnostic{
			Position:     console.ErrorPosition{File: path, Line: line, Column: column},
			Severity:     "error",
			Message:      "invalid YAML: " + message,
			Context:      contextAround(content, line),
			ContextStart: max(line-1, 1),
		}))
	}

	if err := ValidateConfigWithSchemaAndLocation(raw, content, path); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if len(cfg.Tags.Names) == 0 {
		cfg.Tags.Names = append([]string(nil), constants.DefaultTagNames...)
	}
	if cfg.Workers == 0 {
		cfg.Workers = constants.DefaultWorkers
	}
	if cfg.Format == "" {
		cfg.Format = constants.FormatText
	}

	return cfg, nil
}

// contextAround returns up to three lines centered on line (1-based)
func contextAround(content []byte, line int) []string {
	if line < 1 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	start := max(line-2, 0)
	end := min(line+1, len(lines))
	if start >= end {
		return nil
	}
	return lines[start:end]
}
