package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cheatsheet-packer/internal/ingestion"
	"github.com/jonathan/cheatsheet-packer/internal/pipeline"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate how a selection uses the page budget",
	Long:  "Reports utilization, selection issues, space suggestions, density alignment, and reduction strategies for a selection that overflows the budget.",
	RunE:  runEvaluate,
}

var (
	evaluateFlags     layoutFlags
	evaluateSelection string
	evaluateOut       string
)

func init() {
	evaluateFlags.register(evaluateCmd)
	evaluateCmd.Flags().StringVarP(&evaluateSelection, "selection", "s", "", "Path to selection JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateOut, "out", "o", "", "Write the evaluation JSON to this file")

	if err := evaluateCmd.MarkFlagRequired("selection"); err != nil {
		panic(fmt.Sprintf("failed to mark selection flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, err := evaluateFlags.resolve(cmd)
	if err != nil {
		return err
	}

	set, err := ingestion.LoadSelection(evaluateSelection)
	if err != nil {
		return fmt.Errorf("failed to load selection: %w", err)
	}

	result, err := pipeline.RunEvaluate(context.Background(), runOptions(cfg), set.Selections)
	if err != nil {
		return fmt.Errorf("evaluate failed: %w", err)
	}

	info := result.Utilization
	_, _ = fmt.Fprintf(os.Stdout, "Used %.0f of %.0f units (%.1f%%), %.0f remaining\n",
		info.UsedSpace, info.TotalAvailableSpace, info.UtilizationPercentage*100, info.RemainingSpace)
	for _, s := range info.Suggestions {
		_, _ = fmt.Fprintf(os.Stdout, "  %s %s: %s (%+.0f)\n", s.Type, s.TargetID, s.Description, s.SpaceImpact)
	}
	for _, issue := range result.Issues {
		_, _ = fmt.Fprintf(os.Stdout, "  [%s] %s\n", issue.Severity, issue.Details)
	}
	if len(result.Strategies) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Over budget by %.0f units; recommended: %s\n",
			result.Overflow.ExcessSpace, result.Strategies[0].Description)
	}
	if r := result.Resolution; r != nil {
		status := "unresolved"
		if r.Resolved {
			status = "resolved"
		}
		_, _ = fmt.Fprintf(os.Stdout, "Overflow %s after %d iterations, %d topics kept using %.0f units\n",
			status, r.Iterations, len(r.Selection), r.UsedSpace)
	}

	if evaluateOut != "" {
		if err := writeJSON(evaluateOut, result); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Evaluation written to %s\n", evaluateOut)
	}
	return nil
}
