// Package validation checks packing inputs and analyzes selections that exceed their budget.
package validation

import (
	"math"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// OverflowAnalysis contains the results of analyzing a space overflow
type OverflowAnalysis struct {
	ExcessSpace  float64 // Units over budget
	ExcessRatio  float64 // ExcessSpace relative to the budget (e.g., 0.2 = 20% over)
	ExcessTopics float64 // Estimated topics that need to be removed
	CanTrim      bool    // Can we fix by trimming content?
	MustDrop     bool    // Must we drop topics?
}

// AnalyzeSpaceOverflow calculates how much content needs to be removed for the
// selection to fit within the available space.
func AnalyzeSpaceOverflow(
	usedSpace float64,
	availableSpace float64,
	selection []types.TopicSelection,
) *OverflowAnalysis {
	analysis := &OverflowAnalysis{}

	if usedSpace <= availableSpace {
		return analysis
	}

	analysis.ExcessSpace = usedSpace - math.Max(0, availableSpace)
	if availableSpace > 0 {
		analysis.ExcessRatio = analysis.ExcessSpace / availableSpace
	}

	avgTopicSpace := averageTopicSpace(selection)
	if avgTopicSpace <= 0 {
		// Nothing measurable to trim, so the whole excess is one topic's worth
		analysis.ExcessTopics = 1
		analysis.MustDrop = true
		return analysis
	}

	analysis.ExcessTopics = analysis.ExcessSpace / avgTopicSpace

	// Less than a topic's worth can usually be trimmed away
	analysis.MustDrop = analysis.ExcessTopics >= 1.0
	analysis.CanTrim = analysis.ExcessTopics < 1.0

	return analysis
}

// averageTopicSpace computes the mean estimated space of the selected topics
func averageTopicSpace(selection []types.TopicSelection) float64 {
	total := 0.0
	count := 0
	for _, sel := range selection {
		if sel.EstimatedSpace > 0 {
			total += sel.EstimatedSpace
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// TopicsToDropCount returns the number of topics that should be dropped
// to resolve the overflow. Returns 0 if no drops are needed.
func (a *OverflowAnalysis) TopicsToDropCount() int {
	if !a.MustDrop {
		return 0
	}
	return int(math.Ceil(a.ExcessTopics))
}
