// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cheatsheet-packer/internal/layouts"
	"github.com/jonathan/cheatsheet-packer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or pads a line to the inner box width, counting runes
func pad(line string) string {
	width := boxWidth - 4
	if utf8.RuneCountInString(line) > width {
		runes := []rune(line)
		line = string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// PrintBudget outputs the space budget derived from the constraints.
func (p *Printer) PrintBudget(c types.SpaceConstraints, available float64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:       %d × %s\n", c.AvailablePages, c.PageSize))
	sb.WriteString(fmt.Sprintf("Font:        %s\n", c.FontSize))
	sb.WriteString(fmt.Sprintf("Columns:     %d\n", c.EffectiveColumns()))
	sb.WriteString(fmt.Sprintf("Target:      %.0f%%\n", c.EffectiveTargetUtilization()*100))
	sb.WriteString(fmt.Sprintf("Budget:      %.0f units", available))

	p.printBox("SPACE BUDGET", sb.String())
}

// PrintTopicFootprints outputs the estimated space of the largest topics.
func (p *Printer) PrintTopicFootprints(topics []types.OrganizedTopic) {
	if len(topics) == 0 {
		return
	}

	var sb strings.Builder
	total := 0.0
	for _, topic := range topics {
		total += topic.EstimatedSpace
	}
	sb.WriteString(fmt.Sprintf("Topics: %d, total %.0f units\n\n", len(topics), total))

	count := min(len(topics), maxItemsToShow)
	for i := 0; i < count; i++ {
		topic := topics[i]
		sb.WriteString(fmt.Sprintf("[%s] %s\n", topic.EffectivePriority(), truncate(topic.Title, 36)))
		sb.WriteString(fmt.Sprintf("    %.0f units, %d subtopics", topic.EstimatedSpace, len(topic.Subtopics)))
		if len(topic.Examples) > 0 {
			sb.WriteString(fmt.Sprintf(", %d examples", len(topic.Examples)))
		}
		sb.WriteString("\n")
	}
	if len(topics) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(topics)-maxItemsToShow))
	}

	p.printBox("TOPIC FOOTPRINTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs the recommended selection.
func (p *Printer) PrintOptimization(result *types.SpaceOptimizationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Selected topics: %d\n", len(result.RecommendedTopics)))
	sb.WriteString(fmt.Sprintf("Used:            %.0f / %.0f units\n", result.UsedSpace, result.AvailableSpace))
	sb.WriteString(fmt.Sprintf("Utilization:     %.1f%%\n", result.UtilizationScore*100))

	if len(result.Selections) > 0 {
		sb.WriteString("\n")
		count := min(len(result.Selections), maxItemsToShow)
		for i := 0; i < count; i++ {
			sel := result.Selections[i]
			sb.WriteString(fmt.Sprintf("  • %s (%.0f units", truncate(sel.TopicID, 30), sel.EstimatedSpace))
			if len(sel.SubtopicIDs) > 0 {
				sb.WriteString(fmt.Sprintf(", +%d subtopics", len(sel.SubtopicIDs)))
			}
			sb.WriteString(")\n")
		}
		if len(result.Selections) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Selections)-maxItemsToShow))
		}
	}

	p.printBox("RECOMMENDED SELECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUtilization outputs how well a selection uses its budget, with suggestions.
func (p *Printer) PrintUtilization(info *types.SpaceUtilizationInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Used:        %.0f units\n", info.UsedSpace))
	sb.WriteString(fmt.Sprintf("Available:   %.0f units\n", info.TotalAvailableSpace))
	sb.WriteString(fmt.Sprintf("Remaining:   %.0f units\n", info.RemainingSpace))
	sb.WriteString(fmt.Sprintf("Utilization: %.1f%%", info.UtilizationPercentage*100))
	if info.UtilizationPercentage > 1 {
		sb.WriteString("  ⚠ over budget")
	}
	sb.WriteString("\n")

	if len(info.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range info.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s %s (%+.0f)\n", s.Type, truncate(s.TargetID, 24), s.SpaceImpact))
		}
	}

	p.printBox("SPACE UTILIZATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDensity outputs the density alignment and proposed actions.
func (p *Printer) PrintDensity(d *types.DensityOptimization) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target density:  %.2f\n", d.TargetDensity))
	sb.WriteString(fmt.Sprintf("Current density: %.2f\n", d.CurrentDensity))
	sb.WriteString(fmt.Sprintf("Gap:             %+.2f\n", d.DensityGap))
	sb.WriteString(fmt.Sprintf("Alignment:       %.2f\n", d.ReferenceAlignment))

	if len(d.OptimizationActions) > 0 {
		sb.WriteString("\nActions:\n")
		for _, a := range d.OptimizationActions {
			sb.WriteString(fmt.Sprintf("  • %s on %s (%.2f)\n", a.Type, a.TargetArea, a.Magnitude))
		}
	}

	p.printBox("CONTENT DENSITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReductions outputs the candidate reduction strategies, best first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReductions(strategies []types.ReductionStrategy) {
	if len(strategies) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ SELECTION FITS THE BUDGET"))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, s := range strategies {
		marker := " "
		if i == 0 {
			marker = "★"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%s impact, preserves %.0f%%)\n", marker, s.ReductionType, s.ContentImpact, s.PreservationScore*100))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(s.Description, 50)))
		sb.WriteString(fmt.Sprintf("  targets: %s\n", truncate(strings.Join(s.TargetIDs, ", "), 45)))
		if i < len(strategies)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("REDUCTION STRATEGIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs any selection issues found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []types.SelectionIssue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO SELECTION ISSUES FOUND"))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))
	for i, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s [%s]\n", issue.Type, issue.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(issue.Details, 45)))
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SELECTION ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparisons outputs one line per candidate layout and marks the best one.
func (p *Printer) PrintComparisons(comparisons []layouts.Comparison) {
	if len(comparisons) == 0 {
		return
	}
	best := layouts.Best(comparisons)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-14s %7s %7s %6s\n", "LAYOUT", "BUDGET", "TOPICS", "UTIL"))
	for i := range comparisons {
		c := &comparisons[i]
		marker := " "
		if c == best {
			marker = "★"
		}
		sb.WriteString(fmt.Sprintf("%s%-13s %7.0f %7d %5.1f%%\n",
			marker,
			truncate(c.Variant.Name, 13),
			c.AvailableSpace,
			len(c.Result.RecommendedTopics),
			c.Result.UtilizationScore*100,
		))
	}

	p.printBox("LAYOUT COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}
