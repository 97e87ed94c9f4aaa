package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cheatsheet-packer/internal/observability"
	"github.com/jonathan/cheatsheet-packer/internal/pipeline"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the space budget and per-topic footprints",
	Long:  "Converts the page layout into a space budget and estimates how much of it each topic and subtopic would consume.",
	RunE:  runEstimate,
}

var (
	estimateFlags layoutFlags
	estimateOut   string
)

func init() {
	estimateFlags.register(estimateCmd)
	estimateCmd.Flags().StringVarP(&estimateOut, "out", "o", "", "Write estimated topics as JSON to this file")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	cfg, err := estimateFlags.resolve(cmd)
	if err != nil {
		return err
	}
	opts := runOptions(cfg)
	// The reports below replace the pipeline's verbose output
	opts.Verbose = false

	inputs, err := pipeline.Load(context.Background(), opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBudget(opts.Constraints, inputs.AvailableSpace)
	printer.PrintTopicFootprints(inputs.Topics)

	total := 0.0
	for _, topic := range inputs.Topics {
		total += topic.EstimatedSpace
	}
	_, _ = fmt.Fprintf(os.Stdout, "All topics need %.0f of %.0f units\n", total, inputs.AvailableSpace)

	if estimateOut != "" {
		if err := writeJSON(estimateOut, inputs.Topics); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Estimated topics written to %s\n", estimateOut)
	}
	return nil
}
