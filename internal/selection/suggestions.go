package selection

import (
	"fmt"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

const (
	// underUtilizedThreshold is the utilization below which growth is suggested
	underUtilizedThreshold = 0.7
	// guidedUnderUtilizedThreshold applies when the reference uses more topics than the selection
	guidedUnderUtilizedThreshold = 0.85
	// maxSuggestions caps the suggestion list
	maxSuggestions = 5
	// maxTopicSuggestions leaves room for subtopic suggestions
	maxTopicSuggestions = 3
)

// GenerateSpaceSuggestions proposes corrective actions for a selection.
//
// Under-utilized selections get add_topic suggestions for the best unselected topics
// and add_subtopic suggestions for unselected subtopics of already selected topics;
// when nothing is left to add, expand_content is proposed for selected topics.
// Over-utilized selections get reduce_content suggestions starting from the lowest
// priority selected topics. Each group is ordered by absolute space impact and the
// whole list holds at most five entries.
func GenerateSpaceSuggestions(
	selection []types.TopicSelection,
	availableSpace float64,
	allTopics []types.OrganizedTopic,
	mode types.CalibrationMode,
) []types.SpaceSuggestion {
	threshold := underUtilizedThreshold
	switch m := mode.(type) {
	case types.ReferenceGuided:
		if m.Analysis.TopicCount > len(selection) {
			threshold = guidedUnderUtilizedThreshold
		}
	}

	if availableSpace <= 0 {
		return []types.SpaceSuggestion{}
	}

	used := usedSpace(selection, allTopics)
	utilization := used / availableSpace

	var suggestions []types.SpaceSuggestion
	switch {
	case utilization > 1.0:
		suggestions = reduceSuggestions(selection, allTopics, used-availableSpace)
	case utilization < threshold:
		suggestions = growthSuggestions(selection, allTopics, availableSpace-used)
	default:
		suggestions = []types.SpaceSuggestion{}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// growthSuggestions proposes content to add to an under-utilized selection
func growthSuggestions(selection []types.TopicSelection, allTopics []types.OrganizedTopic, remaining float64) []types.SpaceSuggestion {
	selected := make(map[string]types.TopicSelection, len(selection))
	for _, sel := range selection {
		selected[sel.TopicID] = sel
	}

	topicCands := make([]candidate, 0)
	subtopicCands := make([]candidate, 0)
	for i := range allTopics {
		topic := &allTopics[i]
		sel, isSelected := selected[topic.ID]
		if !isSelected {
			topicCands = append(topicCands, candidate{
				id:         topic.ID,
				title:      topic.Title,
				priority:   topic.EffectivePriority(),
				confidence: topic.Confidence,
				space:      spaceOf(topic.EstimatedSpace),
				order:      i,
			})
			continue
		}

		chosen := make(map[string]bool, len(sel.SubtopicIDs))
		for _, id := range sel.SubtopicIDs {
			chosen[id] = true
		}
		for j := range topic.Subtopics {
			sub := &topic.Subtopics[j]
			if chosen[sub.ID] {
				continue
			}
			subtopicCands = append(subtopicCands, candidate{
				id:         sub.ID,
				parentID:   topic.ID,
				title:      sub.Title,
				priority:   sub.EffectivePriority(),
				confidence: sub.Confidence,
				space:      spaceOf(sub.EstimatedSpace),
				order:      len(subtopicCands),
			})
		}
	}

	sortByValue(topicCands)
	if len(topicCands) > maxTopicSuggestions {
		topicCands = topicCands[:maxTopicSuggestions]
	}
	sortByValue(subtopicCands)
	if room := maxSuggestions - len(topicCands); len(subtopicCands) > room {
		subtopicCands = subtopicCands[:room]
	}

	topicSuggestions := make([]types.SpaceSuggestion, 0, len(topicCands))
	for _, c := range topicCands {
		topicSuggestions = append(topicSuggestions, types.SpaceSuggestion{
			Type:        types.SuggestionAddTopic,
			TargetID:    c.id,
			Description: fmt.Sprintf("Add %s priority topic %q (about %.0f units)", c.priority, c.title, c.space),
			SpaceImpact: c.space,
		})
	}
	sortByImpact(topicSuggestions)

	subtopicSuggestions := make([]types.SpaceSuggestion, 0, len(subtopicCands))
	for _, c := range subtopicCands {
		subtopicSuggestions = append(subtopicSuggestions, types.SpaceSuggestion{
			Type:        types.SuggestionAddSubtopic,
			TargetID:    c.id,
			Description: fmt.Sprintf("Add %s priority subtopic %q to topic %s (about %.0f units)", c.priority, c.title, c.parentID, c.space),
			SpaceImpact: c.space,
		})
	}
	sortByImpact(subtopicSuggestions)

	suggestions := append(topicSuggestions, subtopicSuggestions...)
	if len(suggestions) == 0 {
		return expandSuggestions(selection, allTopics, remaining)
	}
	return suggestions
}

// expandSuggestions proposes elaborating selected topics when the pool is exhausted
func expandSuggestions(selection []types.TopicSelection, allTopics []types.OrganizedTopic, remaining float64) []types.SpaceSuggestion {
	if len(selection) == 0 || remaining <= 0 {
		return []types.SpaceSuggestion{}
	}

	known := indexTopics(allTopics)
	cands := make([]candidate, 0, len(selection))
	for i, sel := range selection {
		c := candidate{id: sel.TopicID, title: sel.TopicID, priority: sel.Priority, order: i}
		if topic, ok := known[sel.TopicID]; ok {
			c.title = topic.Title
			c.confidence = topic.Confidence
			if !c.priority.Valid() {
				c.priority = topic.EffectivePriority()
			}
		}
		if !c.priority.Valid() {
			c.priority = types.PriorityLow
		}
		cands = append(cands, c)
	}
	sortByValue(cands)
	if len(cands) > maxSuggestions {
		cands = cands[:maxSuggestions]
	}

	share := remaining / float64(len(cands))
	suggestions := make([]types.SpaceSuggestion, 0, len(cands))
	for _, c := range cands {
		suggestions = append(suggestions, types.SpaceSuggestion{
			Type:        types.SuggestionExpandContent,
			TargetID:    c.id,
			Description: fmt.Sprintf("Expand %q with more detail or examples (about %.0f units)", c.title, share),
			SpaceImpact: share,
		})
	}
	return suggestions
}

// reduceSuggestions proposes removing the least valuable selected topics until the
// overflow is covered
func reduceSuggestions(selection []types.TopicSelection, allTopics []types.OrganizedTopic, overflow float64) []types.SpaceSuggestion {
	known := indexTopics(allTopics)
	cands := make([]candidate, 0, len(selection))
	for i, sel := range selection {
		c := candidate{id: sel.TopicID, title: sel.TopicID, priority: sel.Priority, space: spaceOf(sel.EstimatedSpace), order: i}
		topic, ok := known[sel.TopicID]
		if len(known) > 0 && !ok {
			continue
		}
		if ok {
			c.title = topic.Title
			c.confidence = topic.Confidence
			if !c.priority.Valid() {
				c.priority = topic.EffectivePriority()
			}
		}
		if !c.priority.Valid() {
			c.priority = types.PriorityLow
		}
		if c.space == 0 {
			continue
		}
		cands = append(cands, c)
	}
	sortByExpendability(cands)

	suggestions := make([]types.SpaceSuggestion, 0, maxSuggestions)
	freed := 0.0
	for _, c := range cands {
		if freed >= overflow || len(suggestions) >= maxSuggestions {
			break
		}
		suggestions = append(suggestions, types.SpaceSuggestion{
			Type:        types.SuggestionReduceContent,
			TargetID:    c.id,
			Description: fmt.Sprintf("Remove %s priority topic %q to recover about %.0f units", c.priority, c.title, c.space),
			SpaceImpact: -c.space,
		})
		freed += c.space
	}
	sortByImpact(suggestions)
	return suggestions
}
