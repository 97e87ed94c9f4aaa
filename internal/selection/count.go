package selection

import (
	"math"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// CalculateOptimalTopicCount returns how many topics, taken in order, fit the budget.
// With reference guidance the count is blended toward the number of topics the
// reference would place in the same space, but stays within [1, len(topics)].
func CalculateOptimalTopicCount(availableSpace float64, topics []types.OrganizedTopic, mode types.CalibrationMode) int {
	if availableSpace <= 0 || len(topics) == 0 {
		return 0
	}

	greedy := greedyTopicCount(availableSpace, topics)

	switch m := mode.(type) {
	case types.ReferenceGuided:
		return referenceTopicCount(availableSpace, len(topics), greedy, m.Analysis)
	default:
		return greedy
	}
}

// greedyTopicCount accumulates topic space in input order until the next topic overflows
func greedyTopicCount(availableSpace float64, topics []types.OrganizedTopic) int {
	used := 0.0
	for i := range topics {
		space := spaceOf(topics[i].EstimatedSpace)
		if used+space > availableSpace {
			return i
		}
		used += space
	}
	return len(topics)
}

// referenceTopicCount blends the greedy count with the count implied by the reference
func referenceTopicCount(availableSpace float64, total, greedy int, ref types.ReferenceFormatAnalysis) int {
	target := float64(greedy)
	switch {
	case ref.ContentDensity > 0 && ref.TopicCount > 0:
		// The reference spends ContentDensity/TopicCount units per topic on a page
		perTopic := ref.ContentDensity / float64(ref.TopicCount)
		target = availableSpace / perTopic
	case ref.AverageTopicLength > 0:
		target = availableSpace / ref.AverageTopicLength
	case ref.TopicCount > 0:
		target = float64(ref.TopicCount)
	}

	count := int(math.Round((float64(greedy) + target) / 2))
	if count < 1 {
		count = 1
	}
	if count > total {
		count = total
	}
	return count
}
