// Package selection picks topics and subtopics for a cheat sheet under a space budget
// and reports how well a selection uses that budget.
package selection

import (
	"math"
	"sort"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// spaceOf treats missing, negative, or NaN estimates as zero
func spaceOf(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// ratio returns used/available, or 0 when there is no budget
func ratio(used, available float64) float64 {
	if available <= 0 {
		return 0
	}
	return used / available
}

// clamp01 limits v to [0, 1]
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// bucketTopics groups topic indexes by priority tier. Each bucket keeps input order.
func bucketTopics(topics []types.OrganizedTopic) [][]int {
	buckets := make([][]int, len(types.PriorityTiers))
	for i := range topics {
		tier := topics[i].EffectivePriority().Rank()
		buckets[tier] = append(buckets[tier], i)
	}
	return buckets
}

// bucketSubtopics groups subtopic indexes by priority tier. Each bucket keeps input order.
func bucketSubtopics(subtopics []types.EnhancedSubTopic) [][]int {
	buckets := make([][]int, len(types.PriorityTiers))
	for i := range subtopics {
		tier := subtopics[i].EffectivePriority().Rank()
		buckets[tier] = append(buckets[tier], i)
	}
	return buckets
}

// indexTopics maps topic ID to topic. The first occurrence of a duplicate ID wins.
func indexTopics(topics []types.OrganizedTopic) map[string]*types.OrganizedTopic {
	index := make(map[string]*types.OrganizedTopic, len(topics))
	for i := range topics {
		if _, exists := index[topics[i].ID]; !exists {
			index[topics[i].ID] = &topics[i]
		}
	}
	return index
}

// usedSpace sums the charged space of a selection. When the topic pool is known,
// selections that reference unknown topics contribute nothing.
func usedSpace(selection []types.TopicSelection, allTopics []types.OrganizedTopic) float64 {
	known := indexTopics(allTopics)
	total := 0.0
	for _, sel := range selection {
		if len(known) > 0 {
			if _, ok := known[sel.TopicID]; !ok {
				continue
			}
		}
		total += spaceOf(sel.EstimatedSpace)
	}
	return total
}

// candidate is a topic or subtopic considered for a suggestion
type candidate struct {
	id         string
	parentID   string
	title      string
	priority   types.Priority
	confidence float64
	space      float64
	order      int
}

// sortByValue orders candidates best-first: priority tier, then confidence, then input order
func sortByValue(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].priority.Rank() != cands[j].priority.Rank() {
			return cands[i].priority.Rank() < cands[j].priority.Rank()
		}
		if cands[i].confidence != cands[j].confidence {
			return cands[i].confidence > cands[j].confidence
		}
		return cands[i].order < cands[j].order
	})
}

// sortByExpendability orders candidates worst-first: lowest tier, then lowest confidence, then input order
func sortByExpendability(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].priority.Rank() != cands[j].priority.Rank() {
			return cands[i].priority.Rank() > cands[j].priority.Rank()
		}
		if cands[i].confidence != cands[j].confidence {
			return cands[i].confidence < cands[j].confidence
		}
		return cands[i].order < cands[j].order
	})
}

// sortByImpact orders suggestions by absolute space impact, largest first
func sortByImpact(suggestions []types.SpaceSuggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return math.Abs(suggestions[i].SpaceImpact) > math.Abs(suggestions[j].SpaceImpact)
	})
}
