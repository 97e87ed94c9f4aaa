package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

func parseLayoutFlags(t *testing.T, args ...string) (*cobra.Command, *layoutFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	flags := &layoutFlags{}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, flags
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)
	topics := writeTestFile(t, "topics.md", sampleOutline)
	cmd, flags := parseLayoutFlags(t, "--topics", topics)

	cfg, err := flags.resolve(cmd)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultConstraints(), cfg.Constraints())
	assert.Equal(t, topics, cfg.Topics)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.False(t, cfg.Verbose)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	topics := writeTestFile(t, "topics.md", sampleOutline)
	configPath := writeTestFile(t, "config.json", `{"page_size": "letter", "columns": 2, "pages": 2, "topics": "`+topics+`"}`)

	t.Setenv("CHEATSHEET_PAGES", "4")
	t.Setenv("CHEATSHEET_FONT_SIZE", "small")
	t.Setenv("CHEATSHEET_COLUMNS", "3")

	cmd, flags := parseLayoutFlags(t, "--config", configPath, "--columns", "1", "--verbose")

	cfg, err := flags.resolve(cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Columns, "flag wins over config and env")
	assert.Equal(t, 2, cfg.Pages, "config wins over env")
	assert.Equal(t, "letter", cfg.PageSize)
	assert.Equal(t, "small", cfg.FontSize, "env fills fields the config leaves empty")
	assert.Equal(t, types.DefaultTargetUtilization, cfg.TargetUtilization)
	assert.True(t, cfg.Verbose)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "missing topics",
			args:    func(*testing.T) []string { return nil },
			wantErr: "--topics must be provided",
		},
		{
			name: "unknown page size",
			args: func(t *testing.T) []string {
				return []string{"--topics", writeTestFile(t, "topics.md", sampleOutline), "--page-size", "tabloid"}
			},
			wantErr: "unknown page size",
		},
		{
			name: "topics file not found",
			args: func(t *testing.T) []string {
				return []string{"--topics", filepath.Join(t.TempDir(), "missing.json")}
			},
			wantErr: "topics file not found",
		},
		{
			name: "config file not found",
			args: func(t *testing.T) []string {
				return []string{"--config", filepath.Join(t.TempDir(), "missing.json")}
			},
			wantErr: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cmd, flags := parseLayoutFlags(t, tt.args(t)...)

			_, err := flags.resolve(cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunOptions(t *testing.T) {
	clearEnv(t)
	topics := writeTestFile(t, "topics.md", sampleOutline)
	cmd, flags := parseLayoutFlags(t, "--topics", topics, "--pages", "3", "--max-iterations", "2")
	cfg, err := flags.resolve(cmd)
	require.NoError(t, err)

	opts := runOptions(cfg)
	assert.Equal(t, topics, opts.TopicsPath)
	assert.Equal(t, 3, opts.Constraints.AvailablePages)
	assert.Equal(t, 2, opts.MaxIterations)
	assert.NotNil(t, opts.Out)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(path, map[string]int{"topics": 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded["topics"])
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
