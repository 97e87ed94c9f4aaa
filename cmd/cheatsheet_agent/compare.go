package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cheatsheet-packer/internal/layouts"
	"github.com/jonathan/cheatsheet-packer/internal/observability"
	"github.com/jonathan/cheatsheet-packer/internal/pipeline"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the current layout with what-if alternatives",
	Long:  "Packs the topics under the configured layout and under alternative column counts, font sizes, and one extra page, then marks the layout that uses its budget best.",
	RunE:  runCompare,
}

var (
	compareFlags layoutFlags
	compareOut   string
)

func init() {
	compareFlags.register(compareCmd)
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "Write the comparisons as JSON to this file")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := compareFlags.resolve(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	opts := runOptions(cfg)

	inputs, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}

	comparisons, err := layouts.Compare(ctx, inputs.Topics, layouts.BuildDefaultVariants(opts.Constraints), inputs.Mode)
	if err != nil {
		return fmt.Errorf("layout comparison failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintComparisons(comparisons)
	if best := layouts.Best(comparisons); best != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Best layout: %s (%.1f%% utilization)\n",
			best.Variant.Name, best.Result.UtilizationScore*100)
	}

	if compareOut != "" {
		if err := writeJSON(compareOut, comparisons); err != nil {
			return err
		}
	}
	return nil
}
