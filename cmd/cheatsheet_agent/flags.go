package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/cheatsheet-packer/internal/config"
	"github.com/jonathan/cheatsheet-packer/internal/pipeline"
	"github.com/spf13/cobra"
)

// layoutFlags are the configuration flags shared by every command
type layoutFlags struct {
	configPath        string
	pageSize          string
	fontSize          string
	columns           int
	pages             int
	targetUtilization float64
	topics            string
	reference         string
	maxIterations     int
	verbose           bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.Flags().StringVar(&f.pageSize, "page-size", "", "Page size: a4, letter, legal, a3")
	cmd.Flags().StringVar(&f.fontSize, "font-size", "", "Font size: small, medium, large")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "Number of columns (1-3)")
	cmd.Flags().IntVarP(&f.pages, "pages", "p", 0, "Number of available pages")
	cmd.Flags().Float64Var(&f.targetUtilization, "target-utilization", 0, "Fraction of raw page capacity to fill (0-1]")
	cmd.Flags().StringVarP(&f.topics, "topics", "t", "", "Path to a topic pool (.json) or outline (.md)")
	cmd.Flags().StringVarP(&f.reference, "reference", "r", "", "Path to a reference format analysis JSON file")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "Maximum reduction rounds when resolving overflow")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed reports")
}

// resolve builds the effective configuration. Explicit flags win over the
// config file, which wins over CHEATSHEET_* environment variables and then
// the built-in defaults.
func (f *layoutFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loadedCfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = f.pageSize
	}
	if cmd.Flags().Changed("font-size") {
		cfg.FontSize = f.fontSize
	}
	if cmd.Flags().Changed("columns") {
		cfg.Columns = f.columns
	}
	if cmd.Flags().Changed("pages") {
		cfg.Pages = f.pages
	}
	if cmd.Flags().Changed("target-utilization") {
		cfg.TargetUtilization = f.targetUtilization
	}
	if cmd.Flags().Changed("topics") {
		cfg.Topics = f.topics
	}
	if cmd.Flags().Changed("reference") {
		cfg.Reference = f.reference
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = f.maxIterations
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	env := config.FromEnv()
	cfg = cfg.MergeWithDefaults(env)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Topics == "" {
		return cfg, fmt.Errorf("--topics must be provided (via flag, config, or %s)", config.EnvTopics)
	}
	return cfg, nil
}

// runOptions maps a resolved configuration onto pipeline options
func runOptions(cfg config.Config) pipeline.RunOptions {
	return pipeline.RunOptions{
		TopicsPath:    cfg.Topics,
		ReferencePath: cfg.Reference,
		Constraints:   cfg.Constraints(),
		MaxIterations: cfg.MaxIterations,
		Verbose:       cfg.Verbose,
		Out:           os.Stderr,
	}
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
