// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/cheatsheet-packer/internal/schemas"
	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// Environment variables read by FromEnv
const (
	EnvPageSize          = "CHEATSHEET_PAGE_SIZE"
	EnvFontSize          = "CHEATSHEET_FONT_SIZE"
	EnvColumns           = "CHEATSHEET_COLUMNS"
	EnvPages             = "CHEATSHEET_PAGES"
	EnvTargetUtilization = "CHEATSHEET_TARGET_UTILIZATION"
	EnvTopics            = "CHEATSHEET_TOPICS"
	EnvReference         = "CHEATSHEET_REFERENCE"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Layout
	PageSize          string  `json:"page_size,omitempty"`          // a4, letter, legal, a3
	FontSize          string  `json:"font_size,omitempty"`          // small, medium, large
	Columns           int     `json:"columns,omitempty"`            // 1-3
	Pages             int     `json:"pages,omitempty"`              // Available pages
	TargetUtilization float64 `json:"target_utilization,omitempty"` // Fraction of raw capacity to fill (0.0-1.0]

	// Inputs
	Topics    string `json:"topics,omitempty"`    // Path to a topic pool (.json) or outline (.md)
	Reference string `json:"reference,omitempty"` // Path to a reference format analysis

	// Behavior
	MaxIterations int  `json:"max_iterations,omitempty"` // Reduction rounds when resolving overflow
	Verbose       bool `json:"verbose,omitempty"`        // Print detailed reports
}

// Defaults returns the built-in configuration: one A4 page, medium font, one column
func Defaults() Config {
	c := types.DefaultConstraints()
	return Config{
		PageSize:          string(c.PageSize),
		FontSize:          string(c.FontSize),
		Columns:           c.Columns,
		Pages:             c.AvailablePages,
		TargetUtilization: c.TargetUtilization,
		MaxIterations:     5,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read, parsed, or fails schema validation.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.ConfigSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
		}
	} else {
		log.Printf("Warning: schema %s not found, skipping config validation", schemas.ConfigSchema)
	}

	return &cfg, nil
}

// FromEnv builds a Config from CHEATSHEET_* environment variables.
// Unparseable numbers are ignored with a warning.
func FromEnv() Config {
	cfg := Config{
		PageSize:  os.Getenv(EnvPageSize),
		FontSize:  os.Getenv(EnvFontSize),
		Topics:    os.Getenv(EnvTopics),
		Reference: os.Getenv(EnvReference),
	}
	cfg.Columns = envInt(EnvColumns)
	cfg.Pages = envInt(EnvPages)
	if v := os.Getenv(EnvTargetUtilization); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("Warning: ignoring %s=%q: %v", EnvTargetUtilization, v, err)
		} else {
			cfg.TargetUtilization = f
		}
	}
	return cfg
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", name, v, err)
		return 0
	}
	return n
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Pages < 0 {
		return fmt.Errorf("config error: 'pages' must be non-negative")
	}
	if c.Columns < 0 || c.Columns > types.MaxColumns {
		return fmt.Errorf("config error: 'columns' must be between 1 and %d", types.MaxColumns)
	}
	if c.TargetUtilization < 0 || c.TargetUtilization > 1 {
		return fmt.Errorf("config error: 'target_utilization' must be in (0, 1]")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	if c.PageSize != "" && !knownPageSize(c.PageSize) {
		return fmt.Errorf("config error: unknown page size %q", c.PageSize)
	}
	if c.FontSize != "" && !knownFontSize(c.FontSize) {
		return fmt.Errorf("config error: unknown font size %q", c.FontSize)
	}

	if c.Topics != "" {
		if _, err := os.Stat(c.Topics); os.IsNotExist(err) {
			return fmt.Errorf("config error: topics file not found: %s", c.Topics)
		}
	}
	if c.Reference != "" {
		if _, err := os.Stat(c.Reference); os.IsNotExist(err) {
			return fmt.Errorf("config error: reference file not found: %s", c.Reference)
		}
	}

	return nil
}

func knownPageSize(s string) bool {
	switch types.PageSize(s) {
	case types.PageSizeA4, types.PageSizeLetter, types.PageSizeLegal, types.PageSizeA3:
		return true
	}
	return false
}

func knownFontSize(s string) bool {
	switch types.FontSize(s) {
	case types.FontSizeSmall, types.FontSizeMedium, types.FontSizeLarge:
		return true
	}
	return false
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PageSize == "" {
		result.PageSize = defaults.PageSize
	}
	if result.FontSize == "" {
		result.FontSize = defaults.FontSize
	}
	if result.Topics == "" {
		result.Topics = defaults.Topics
	}
	if result.Reference == "" {
		result.Reference = defaults.Reference
	}

	// Numeric fields: use default if zero
	if result.Columns == 0 {
		result.Columns = defaults.Columns
	}
	if result.Pages == 0 {
		result.Pages = defaults.Pages
	}
	if result.TargetUtilization == 0 {
		result.TargetUtilization = defaults.TargetUtilization
	}
	if result.MaxIterations == 0 {
		result.MaxIterations = defaults.MaxIterations
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Constraints converts the layout fields into packing constraints
func (c *Config) Constraints() types.SpaceConstraints {
	return types.SpaceConstraints{
		AvailablePages:    c.Pages,
		PageSize:          types.PageSize(c.PageSize),
		FontSize:          types.FontSize(c.FontSize),
		Columns:           c.Columns,
		TargetUtilization: c.TargetUtilization,
	}
}
