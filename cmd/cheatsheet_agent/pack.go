package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cheatsheet-packer/internal/pipeline"
	"github.com/jonathan/cheatsheet-packer/internal/selection"
	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Select the topics that best fill the page budget",
	Long: `Estimates every topic, then selects high, medium and low priority topics and their subtopics until the budget is used.

Writes the SpaceOptimizationResult as JSON to --out, or to stdout when --out is not set.`,
	RunE: runPack,
}

var (
	packFlags     layoutFlags
	packOut       string
	packTopicsOut string
)

func init() {
	packFlags.register(packCmd)
	packCmd.Flags().StringVarP(&packOut, "out", "o", "", "Write the optimization result JSON to this file (default stdout)")
	packCmd.Flags().StringVar(&packTopicsOut, "topics-out", "", "Write the topic pool with selected subtopics marked to this file")

	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, _ []string) error {
	cfg, err := packFlags.resolve(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.RunPack(context.Background(), runOptions(cfg))
	if err != nil {
		return fmt.Errorf("pack failed: %w", err)
	}

	if err := writeJSON(packOut, result.Result); err != nil {
		return err
	}

	if packTopicsOut != "" {
		pool := types.TopicPool{
			Topics:    selection.ApplySelection(result.Topics, result.Result),
			Reference: result.Reference,
		}
		if err := writeJSON(packTopicsOut, pool); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(os.Stderr, "Selected %d of %d topics using %.0f of %.0f units (%.1f%%)\n",
		len(result.Result.RecommendedTopics),
		len(result.Topics),
		result.Result.UsedSpace,
		result.AvailableSpace,
		result.Result.UtilizationScore*100,
	)
	return nil
}
