// Package pipeline orchestrates loading, estimating, packing, and evaluating a cheat sheet.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jonathan/cheatsheet-packer/internal/estimate"
	"github.com/jonathan/cheatsheet-packer/internal/ingestion"
	"github.com/jonathan/cheatsheet-packer/internal/observability"
	"github.com/jonathan/cheatsheet-packer/internal/repair"
	"github.com/jonathan/cheatsheet-packer/internal/selection"
	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/jonathan/cheatsheet-packer/internal/validation"
)

// Progress steps
const (
	StepLoadTopics = "load_topics"
	StepEstimate   = "estimate"
	StepOptimize   = "optimize"
	StepDensity    = "density"
	StepEvaluate   = "evaluate"
	StepReduce     = "reduce"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	TopicsPath    string
	ReferencePath string // Optional; overrides a reference embedded in the topic pool
	Constraints   types.SpaceConstraints
	MaxIterations int
	Verbose       bool
	Out           io.Writer // Progress and verbose output; nil discards it
	OnProgress    ProgressCallback
}

// Inputs are the loaded and estimated topics shared by every pipeline
type Inputs struct {
	Metadata       *ingestion.Metadata
	Topics         []types.OrganizedTopic // Estimated copies
	Reference      *types.ReferenceFormatAnalysis
	Mode           types.CalibrationMode
	AvailableSpace float64
}

// PackResult holds the outputs of RunPack
type PackResult struct {
	Inputs
	Result  types.SpaceOptimizationResult
	Density types.DensityOptimization
}

// EvaluateResult holds the outputs of RunEvaluate
type EvaluateResult struct {
	Inputs
	Utilization types.SpaceUtilizationInfo
	Issues      []types.SelectionIssue
	Overflow    *validation.OverflowAnalysis
	Strategies  []types.ReductionStrategy
	Resolution  *repair.Resolution // Set when the selection overflows
	Density     types.DensityOptimization
}

type runner struct {
	opts    RunOptions
	out     io.Writer
	printer *observability.Printer
}

func newRunner(opts RunOptions) *runner {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &runner{opts: opts, out: out, printer: observability.NewPrinter(out)}
}

// emitProgress calls the progress callback if configured
func (r *runner) emitProgress(step, message string, content any) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

//nolint:errcheck // progress output is best effort
func (r *runner) stepf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// load reads the topic source and reference, then estimates every topic
func (r *runner) load(ctx context.Context) (*Inputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pool, metadata, err := ingestion.IngestFile(r.opts.TopicsPath)
	if err != nil {
		return nil, fmt.Errorf("loading topics failed: %w", err)
	}
	if err := validation.ValidateTopics(pool.Topics); err != nil {
		return nil, fmt.Errorf("loading topics failed: %w", err)
	}
	r.emitProgress(StepLoadTopics, fmt.Sprintf("Loaded %d topics", len(pool.Topics)), metadata)

	reference := pool.Reference
	if r.opts.ReferencePath != "" {
		reference, err = ingestion.LoadReference(r.opts.ReferencePath)
		if err != nil {
			return nil, fmt.Errorf("loading reference failed: %w", err)
		}
	}
	if reference != nil && reference.ContentDensity <= 0 {
		log.Printf("Warning: reference has no content density; density targets use the default")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := r.opts.Constraints
	estimated := estimate.EstimateTopics(pool.Topics, c)
	available := estimate.CalculateAvailableSpace(c)
	r.emitProgress(StepEstimate, fmt.Sprintf("Budget is %.0f units", available), available)
	if r.opts.Verbose {
		r.printer.PrintBudget(c, available)
		r.printer.PrintTopicFootprints(estimated)
	}

	return &Inputs{
		Metadata:       metadata,
		Topics:         estimated,
		Reference:      reference,
		Mode:           types.CalibrationFor(reference),
		AvailableSpace: available,
	}, nil
}

// Load reads and estimates the topics without selecting any
func Load(ctx context.Context, opts RunOptions) (*Inputs, error) {
	return newRunner(opts).load(ctx)
}

// RunPack loads topics and recommends a selection that fits the budget
func RunPack(ctx context.Context, opts RunOptions) (*PackResult, error) {
	r := newRunner(opts)

	r.stepf("Step 1/3: Loading and estimating topics...\n")
	inputs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.stepf("Step 2/3: Selecting topics...\n")
	result := selection.OptimizeSpaceUtilization(inputs.Topics, inputs.AvailableSpace, inputs.Mode)
	r.emitProgress(StepOptimize, fmt.Sprintf("Selected %d topics", len(result.RecommendedTopics)), result)
	if opts.Verbose {
		r.printer.PrintOptimization(&result)
	}

	r.stepf("Step 3/3: Checking content density...\n")
	density := selection.OptimizeContentDensity(result.Selections, inputs.Topics, opts.Constraints, inputs.Mode)
	r.emitProgress(StepDensity, fmt.Sprintf("Density gap %.2f", density.DensityGap), density)
	if opts.Verbose {
		r.printer.PrintDensity(&density)
	}

	return &PackResult{Inputs: *inputs, Result: result, Density: density}, nil
}

// RunEvaluate loads topics and reports how well an existing selection uses the
// budget. Overflowing selections also get reduction strategies and a resolved
// selection.
func RunEvaluate(ctx context.Context, opts RunOptions, current []types.TopicSelection) (*EvaluateResult, error) {
	r := newRunner(opts)

	r.stepf("Step 1/3: Loading and estimating topics...\n")
	inputs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.stepf("Step 2/3: Evaluating selection...\n")
	current = chargeSelection(current, inputs.Topics)
	issues := validation.ValidateSelection(current, inputs.Topics)
	info := selection.CalculateSpaceUtilization(current, inputs.AvailableSpace, inputs.Topics)
	info.Suggestions = selection.GenerateSpaceSuggestions(current, inputs.AvailableSpace, inputs.Topics, inputs.Mode)
	issues = append(issues, validation.ValidateFit(info.UsedSpace, inputs.AvailableSpace)...)
	density := selection.OptimizeContentDensity(current, inputs.Topics, opts.Constraints, inputs.Mode)
	r.emitProgress(StepEvaluate, fmt.Sprintf("Utilization %.1f%%", info.UtilizationPercentage*100), info)
	if opts.Verbose {
		r.printer.PrintIssues(issues)
		r.printer.PrintUtilization(&info)
		r.printer.PrintDensity(&density)
	}

	r.stepf("Step 3/3: Checking for overflow...\n")
	overflow := validation.AnalyzeSpaceOverflow(info.UsedSpace, inputs.AvailableSpace, current)
	strategies := repair.ProposeReductions(overflow, current, inputs.Topics)
	result := &EvaluateResult{
		Inputs:      *inputs,
		Utilization: info,
		Issues:      issues,
		Overflow:    overflow,
		Strategies:  strategies,
		Density:     density,
	}
	if len(strategies) > 0 {
		resolution, err := repair.ResolveOverflow(current, inputs.Topics, inputs.AvailableSpace, opts.MaxIterations)
		if err != nil {
			log.Printf("Warning: could not resolve overflow: %v", err)
		}
		result.Resolution = resolution
		r.emitProgress(StepReduce, fmt.Sprintf("%d reduction strategies", len(strategies)), strategies)
	}
	if opts.Verbose {
		r.printer.PrintReductions(strategies)
	}

	return result, nil
}

// chargeSelection fills in missing EstimatedSpace from the estimated topics:
// the topic's own content plus the subtopics it keeps. Explicit values are kept.
func chargeSelection(current []types.TopicSelection, topics []types.OrganizedTopic) []types.TopicSelection {
	byID := make(map[string]*types.OrganizedTopic, len(topics))
	for i := range topics {
		if _, exists := byID[topics[i].ID]; !exists {
			byID[topics[i].ID] = &topics[i]
		}
	}

	charged := make([]types.TopicSelection, len(current))
	for i, sel := range current {
		charged[i] = sel
		topic, ok := byID[sel.TopicID]
		if !ok {
			continue
		}
		if sel.Priority == "" {
			charged[i].Priority = topic.EffectivePriority()
		}
		if sel.EstimatedSpace != 0 {
			continue
		}
		space := topic.CoreSpace()
		keep := make(map[string]bool, len(sel.SubtopicIDs))
		for _, id := range sel.SubtopicIDs {
			keep[id] = true
		}
		for _, sub := range topic.Subtopics {
			if keep[sub.ID] {
				space += sub.EstimatedSpace
			}
		}
		charged[i].EstimatedSpace = space
	}
	return charged
}
