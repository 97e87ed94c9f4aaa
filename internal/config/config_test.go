package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"page_size": "letter",
		"font_size": "small",
		"columns": 2,
		"pages": 2,
		"target_utilization": 0.9,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "letter", cfg.PageSize)
	assert.Equal(t, "small", cfg.FontSize)
	assert.Equal(t, 2, cfg.Columns)
	assert.Equal(t, 2, cfg.Pages)
	assert.Equal(t, 0.9, cfg.TargetUtilization)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"columns": 4}`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		contains string
	}{
		{name: "valid config", cfg: Defaults()},
		{name: "empty config", cfg: Config{}},
		{name: "negative pages", cfg: Config{Pages: -1}, contains: "'pages'"},
		{name: "too many columns", cfg: Config{Columns: 4}, contains: "'columns'"},
		{name: "utilization over one", cfg: Config{TargetUtilization: 1.5}, contains: "'target_utilization'"},
		{name: "negative iterations", cfg: Config{MaxIterations: -2}, contains: "'max_iterations'"},
		{name: "unknown page size", cfg: Config{PageSize: "b5"}, contains: "unknown page size"},
		{name: "unknown font size", cfg: Config{FontSize: "huge"}, contains: "unknown font size"},
		{name: "missing topics file", cfg: Config{Topics: "/nonexistent/topics.json"}, contains: "topics file not found"},
		{name: "missing reference file", cfg: Config{Reference: "/nonexistent/ref.json"}, contains: "reference file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.contains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		PageSize: "legal",
		Columns:  3,
		Topics:   "topics.json",
	}

	result := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "legal", result.PageSize)
	assert.Equal(t, 3, result.Columns)
	assert.Equal(t, "topics.json", result.Topics)
	assert.Equal(t, "medium", result.FontSize)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, types.DefaultTargetUtilization, result.TargetUtilization)
	assert.Equal(t, 5, result.MaxIterations)

	assert.Empty(t, cfg.FontSize, "receiver must not be modified")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{PageSize: "a3", Pages: 2}

	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, *cfg, result)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPageSize, "letter")
	t.Setenv(EnvFontSize, "large")
	t.Setenv(EnvColumns, "2")
	t.Setenv(EnvPages, "not-a-number")
	t.Setenv(EnvTargetUtilization, "0.75")
	t.Setenv(EnvTopics, "pool.json")
	t.Setenv(EnvReference, "")

	cfg := FromEnv()

	assert.Equal(t, "letter", cfg.PageSize)
	assert.Equal(t, "large", cfg.FontSize)
	assert.Equal(t, 2, cfg.Columns)
	assert.Equal(t, 0, cfg.Pages)
	assert.Equal(t, 0.75, cfg.TargetUtilization)
	assert.Equal(t, "pool.json", cfg.Topics)
	assert.Empty(t, cfg.Reference)
}

func TestConstraints(t *testing.T) {
	cfg := Defaults()
	cfg.Columns = 2

	c := cfg.Constraints()

	assert.Equal(t, types.PageSizeA4, c.PageSize)
	assert.Equal(t, types.FontSizeMedium, c.FontSize)
	assert.Equal(t, 2, c.Columns)
	assert.Equal(t, 1, c.AvailablePages)
	assert.NoError(t, c.Validate())
}
