package selection

import (
	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// OptimizeSpaceUtilization selects topics and subtopics that fill the budget without exceeding it.
//
// Topics are committed in three passes, one per priority tier, so a lower tier only
// ever receives space that no higher-tier topic could use. Within a tier, input order
// decides. A topic is admitted only when its full EstimatedSpace fits, and is never
// partially included. Right after a topic is committed its subtopics are added with
// the same tiered rule against the remaining budget, so they are accounted for before
// any later topic. The topic's charge is its own content plus the accepted subtopics.
//
// Topics are expected to carry estimates (see estimate.EstimateTopics); missing
// estimates count as zero.
func OptimizeSpaceUtilization(topics []types.OrganizedTopic, availableSpace float64, mode types.CalibrationMode) types.SpaceOptimizationResult {
	result := types.SpaceOptimizationResult{
		RecommendedTopics:    []string{},
		RecommendedSubtopics: []types.SubtopicRecommendation{},
		Suggestions:          []types.SpaceSuggestion{},
		Selections:           []types.TopicSelection{},
	}
	if availableSpace <= 0 || len(topics) == 0 {
		return result
	}
	result.AvailableSpace = availableSpace

	buckets := bucketTopics(topics)

	maxTopics := len(topics)
	switch m := mode.(type) {
	case types.ReferenceGuided:
		maxTopics = CalculateOptimalTopicCount(availableSpace, tierOrdered(topics, buckets), m)
	}

	// Pass per tier: high, medium, low
	used := 0.0
	for _, bucket := range buckets {
		for _, idx := range bucket {
			if len(result.RecommendedTopics) >= maxTopics {
				break
			}
			topic := &topics[idx]
			if used+spaceOf(topic.EstimatedSpace) > availableSpace {
				continue
			}

			charged := topic.CoreSpace()
			used += charged

			// Subtopics are settled before any later topic is considered
			subtopicIDs := make([]string, 0, len(topic.Subtopics))
			for _, subBucket := range bucketSubtopics(topic.Subtopics) {
				for _, si := range subBucket {
					cost := spaceOf(topic.Subtopics[si].EstimatedSpace)
					if used+cost <= availableSpace {
						subtopicIDs = append(subtopicIDs, topic.Subtopics[si].ID)
						used += cost
						charged += cost
					}
				}
			}

			result.RecommendedTopics = append(result.RecommendedTopics, topic.ID)
			result.RecommendedSubtopics = append(result.RecommendedSubtopics, types.SubtopicRecommendation{
				TopicID:     topic.ID,
				SubtopicIDs: subtopicIDs,
			})
			result.Selections = append(result.Selections, types.TopicSelection{
				TopicID:        topic.ID,
				SubtopicIDs:    subtopicIDs,
				Priority:       topic.EffectivePriority(),
				EstimatedSpace: charged,
			})
		}
	}

	result.UsedSpace = used
	result.UtilizationScore = clamp01(ratio(used, availableSpace))
	result.EstimatedFinalUtilization = result.UtilizationScore
	result.Suggestions = GenerateSpaceSuggestions(result.Selections, availableSpace, topics, mode)

	return result
}

// tierOrdered flattens priority buckets back into a topic list, high tier first
func tierOrdered(topics []types.OrganizedTopic, buckets [][]int) []types.OrganizedTopic {
	ordered := make([]types.OrganizedTopic, 0, len(topics))
	for _, bucket := range buckets {
		for _, idx := range bucket {
			ordered = append(ordered, topics[idx])
		}
	}
	return ordered
}

// ApplySelection returns copies of topics with IsSelected set on the subtopics
// recommended by result. Topics not in the result are returned unselected.
func ApplySelection(topics []types.OrganizedTopic, result types.SpaceOptimizationResult) []types.OrganizedTopic {
	chosen := make(map[string]map[string]bool, len(result.RecommendedSubtopics))
	for _, rec := range result.RecommendedSubtopics {
		ids := make(map[string]bool, len(rec.SubtopicIDs))
		for _, id := range rec.SubtopicIDs {
			ids[id] = true
		}
		chosen[rec.TopicID] = ids
	}

	applied := make([]types.OrganizedTopic, len(topics))
	for i, topic := range topics {
		copied := topic
		copied.Subtopics = make([]types.EnhancedSubTopic, len(topic.Subtopics))
		for j, sub := range topic.Subtopics {
			sub.IsSelected = chosen[topic.ID][sub.ID]
			copied.Subtopics[j] = sub
		}
		applied[i] = copied
	}
	return applied
}
