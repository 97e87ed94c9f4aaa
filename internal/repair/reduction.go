package repair

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/jonathan/cheatsheet-packer/internal/validation"
)

// Preservation score bands per strategy kind. Within a band the score drops as
// a larger share of the selection is removed.
const (
	lowTopicsPreservationMax  = 1.0
	lowTopicsPreservationSpan = 0.15

	subtopicsPreservationMax  = 0.8
	subtopicsPreservationSpan = 0.2

	topicsPreservationMax  = 0.6
	topicsPreservationSpan = 0.2

	trimPreservationMax  = 0.5
	trimPreservationSpan = 0.3

	// maxTrimFraction is the share of a topic's space that trimming can recover
	maxTrimFraction = 0.3
)

// entry is a selected topic or subtopic that a strategy may remove
type entry struct {
	id         string
	priority   types.Priority
	confidence float64
	space      float64
	order      int
}

// CreateContentReductionStrategy proposes ways to free overflowAmount units from a
// selection, best first.
//
// Whole low-priority topics are tried first. When they cover the overflow that is
// the only strategy returned. Otherwise the list offers removing subtopics,
// removing topics beyond the low tier, and trimming text inside the retained
// topics, ordered by preservation score.
func CreateContentReductionStrategy(
	selection []types.TopicSelection,
	allTopics []types.OrganizedTopic,
	overflowAmount float64,
) []types.ReductionStrategy {
	if overflowAmount <= 0 || len(selection) == 0 {
		return []types.ReductionStrategy{}
	}

	topics, subtopics := selectedEntries(selection, allTopics)
	total := 0.0
	for _, e := range topics {
		total += e.space
	}
	if total <= 0 {
		return []types.ReductionStrategy{}
	}

	sortByExpendability(topics)
	sortByExpendability(subtopics)

	lowTopics := make([]entry, 0, len(topics))
	for _, e := range topics {
		if e.priority == types.PriorityLow {
			lowTopics = append(lowTopics, e)
		}
	}

	lowIDs, lowRecovered := takeUntil(lowTopics, overflowAmount)
	if len(lowIDs) > 0 && lowRecovered >= overflowAmount {
		return []types.ReductionStrategy{{
			ReductionType:     types.ReductionRemoveTopics,
			TargetIDs:         lowIDs,
			ContentImpact:     types.ImpactMinimal,
			PreservationScore: preservation(lowTopicsPreservationMax, lowTopicsPreservationSpan, lowRecovered/total),
			SpaceRecovered:    lowRecovered,
			Description:       fmt.Sprintf("Remove %d low priority topic(s) to recover %.0f units", len(lowIDs), lowRecovered),
		}}
	}

	strategies := make([]types.ReductionStrategy, 0, 3)

	if ids, recovered := takeUntil(subtopics, overflowAmount); len(ids) > 0 {
		strategies = append(strategies, types.ReductionStrategy{
			ReductionType:     types.ReductionRemoveSubtopics,
			TargetIDs:         ids,
			ContentImpact:     types.ImpactModerate,
			PreservationScore: preservation(subtopicsPreservationMax, subtopicsPreservationSpan, recovered/total),
			SpaceRecovered:    recovered,
			Description:       describeRecovery(fmt.Sprintf("Remove %d subtopic(s)", len(ids)), recovered, overflowAmount),
		})
	}

	// Never propose emptying the sheet entirely
	if len(topics) > 1 {
		ids, recovered := takeUntil(topics[:len(topics)-1], overflowAmount)
		impact := types.ImpactModerate
		if includesTier(topics, ids, types.PriorityHigh) {
			impact = types.ImpactSignificant
		}
		score := preservation(topicsPreservationMax, topicsPreservationSpan, recovered/total)
		if impact == types.ImpactSignificant {
			score -= topicsPreservationSpan / 2
		}
		strategies = append(strategies, types.ReductionStrategy{
			ReductionType:     types.ReductionRemoveTopics,
			TargetIDs:         ids,
			ContentImpact:     impact,
			PreservationScore: score,
			SpaceRecovered:    recovered,
			Description:       describeRecovery(fmt.Sprintf("Remove %d topic(s) beginning with the lowest priority", len(ids)), recovered, overflowAmount),
		})
	}

	// Trimming works on topics that survive removal of the low tier
	retained := make([]entry, 0, len(topics))
	for _, e := range topics {
		if e.priority != types.PriorityLow {
			retained = append(retained, e)
		}
	}
	if len(retained) == 0 {
		retained = topics
	}
	trimIDs := make([]string, 0, len(retained))
	trimmable := 0.0
	for _, e := range retained {
		trimIDs = append(trimIDs, e.id)
		trimmable += e.space * maxTrimFraction
	}
	trimRecovered := math.Min(overflowAmount, trimmable)
	strategies = append(strategies, types.ReductionStrategy{
		ReductionType:     types.ReductionTrimContent,
		TargetIDs:         trimIDs,
		ContentImpact:     types.ImpactSignificant,
		PreservationScore: preservation(trimPreservationMax, trimPreservationSpan, overflowAmount/total),
		SpaceRecovered:    trimRecovered,
		Description:       describeRecovery(fmt.Sprintf("Condense the text of %d topic(s)", len(trimIDs)), trimRecovered, overflowAmount),
	})

	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].PreservationScore > strategies[j].PreservationScore
	})
	return strategies
}

// ProposeReductions builds reduction strategies from an overflow analysis.
// Returns an empty list when there is nothing to resolve.
func ProposeReductions(
	overflow *validation.OverflowAnalysis,
	selection []types.TopicSelection,
	allTopics []types.OrganizedTopic,
) []types.ReductionStrategy {
	if overflow == nil || overflow.ExcessSpace <= 0 {
		return []types.ReductionStrategy{}
	}
	return CreateContentReductionStrategy(selection, allTopics, overflow.ExcessSpace)
}

// selectedEntries resolves the selection against the pool into removable topics
// and subtopics. Unknown topics are skipped when the pool is non-empty.
func selectedEntries(selection []types.TopicSelection, allTopics []types.OrganizedTopic) ([]entry, []entry) {
	known := make(map[string]*types.OrganizedTopic, len(allTopics))
	for i := range allTopics {
		if _, exists := known[allTopics[i].ID]; !exists {
			known[allTopics[i].ID] = &allTopics[i]
		}
	}

	topics := make([]entry, 0, len(selection))
	subtopics := make([]entry, 0)
	for i, sel := range selection {
		topic, ok := known[sel.TopicID]
		if len(known) > 0 && !ok {
			continue
		}

		e := entry{id: sel.TopicID, priority: sel.Priority, space: nonNegative(sel.EstimatedSpace), order: i}
		if ok {
			e.confidence = topic.Confidence
			if !e.priority.Valid() {
				e.priority = topic.EffectivePriority()
			}
		}
		if !e.priority.Valid() {
			e.priority = types.PriorityLow
		}
		topics = append(topics, e)

		if !ok {
			continue
		}
		chosen := make(map[string]bool, len(sel.SubtopicIDs))
		for _, id := range sel.SubtopicIDs {
			chosen[id] = true
		}
		for j := range topic.Subtopics {
			sub := &topic.Subtopics[j]
			if !chosen[sub.ID] || nonNegative(sub.EstimatedSpace) == 0 {
				continue
			}
			subtopics = append(subtopics, entry{
				id:         types.SubtopicTarget(topic.ID, sub.ID),
				priority:   sub.EffectivePriority(),
				confidence: sub.Confidence,
				space:      nonNegative(sub.EstimatedSpace),
				order:      len(subtopics),
			})
		}
	}
	return topics, subtopics
}

// takeUntil collects entries in order until their space covers amount
func takeUntil(entries []entry, amount float64) ([]string, float64) {
	ids := make([]string, 0)
	recovered := 0.0
	for _, e := range entries {
		if recovered >= amount {
			break
		}
		if e.space <= 0 {
			continue
		}
		ids = append(ids, e.id)
		recovered += e.space
	}
	return ids, recovered
}

// includesTier reports whether any of ids refers to an entry of the given priority
func includesTier(entries []entry, ids []string, priority types.Priority) bool {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, e := range entries {
		if wanted[e.id] && e.priority == priority {
			return true
		}
	}
	return false
}

// sortByExpendability orders entries worst-first: lowest tier, then lowest confidence, then input order
func sortByExpendability(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority.Rank() != entries[j].priority.Rank() {
			return entries[i].priority.Rank() > entries[j].priority.Rank()
		}
		if entries[i].confidence != entries[j].confidence {
			return entries[i].confidence < entries[j].confidence
		}
		return entries[i].order < entries[j].order
	})
}

// preservation maps the removed share of the selection into a score band
func preservation(maxScore, span, removedShare float64) float64 {
	share := math.Max(0, math.Min(1, removedShare))
	return maxScore - span*share
}

func describeRecovery(action string, recovered, overflow float64) string {
	if recovered >= overflow {
		return fmt.Sprintf("%s to recover %.0f units", action, recovered)
	}
	return fmt.Sprintf("%s to recover %.0f of %.0f units over budget", action, recovered, overflow)
}

func nonNegative(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
