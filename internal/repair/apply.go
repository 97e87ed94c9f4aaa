package repair

import (
	"fmt"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// ApplyReduction applies a reduction strategy to a copy of the selection.
// Every target must be present in the selection.
func ApplyReduction(
	selection []types.TopicSelection,
	allTopics []types.OrganizedTopic,
	strategy types.ReductionStrategy,
) ([]types.TopicSelection, error) {
	selectionCopy := deepCopySelection(selection)

	var err error
	switch strategy.ReductionType {
	case types.ReductionRemoveTopics:
		selectionCopy, err = applyRemoveTopics(selectionCopy, strategy.TargetIDs)
	case types.ReductionRemoveSubtopics:
		err = applyRemoveSubtopics(selectionCopy, allTopics, strategy.TargetIDs)
	case types.ReductionTrimContent:
		err = applyTrimContent(selectionCopy, strategy.TargetIDs, strategy.SpaceRecovered)
	default:
		return nil, &ApplyError{Message: fmt.Sprintf("unknown reduction type: %s", strategy.ReductionType)}
	}
	if err != nil {
		return nil, &ApplyError{
			Message: fmt.Sprintf("failed to apply %s strategy", strategy.ReductionType),
			Cause:   err,
		}
	}
	return selectionCopy, nil
}

// applyRemoveTopics drops the targeted topics from the selection
func applyRemoveTopics(selection []types.TopicSelection, targetIDs []string) ([]types.TopicSelection, error) {
	targets := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = true
	}

	kept := make([]types.TopicSelection, 0, len(selection))
	for _, sel := range selection {
		if targets[sel.TopicID] {
			delete(targets, sel.TopicID)
			continue
		}
		kept = append(kept, sel)
	}
	for _, id := range targetIDs {
		if targets[id] {
			return nil, fmt.Errorf("topic %s not found in selection", id)
		}
	}
	return kept, nil
}

// applyRemoveSubtopics drops the targeted subtopics and charges their parents less.
// Targets are types.SubtopicTarget values, so only the named parent is touched.
func applyRemoveSubtopics(selection []types.TopicSelection, allTopics []types.OrganizedTopic, targetIDs []string) error {
	subtopicSpace := make(map[string]float64)
	for i := range allTopics {
		for _, sub := range allTopics[i].Subtopics {
			subtopicSpace[types.SubtopicTarget(allTopics[i].ID, sub.ID)] = nonNegative(sub.EstimatedSpace)
		}
	}

	for _, target := range targetIDs {
		if !removeSubtopic(selection, target, subtopicSpace[target]) {
			return fmt.Errorf("subtopic %s not found in selection", target)
		}
	}
	return nil
}

// removeSubtopic removes the first subtopic matching target and reports whether one was found
func removeSubtopic(selection []types.TopicSelection, target string, space float64) bool {
	for i := range selection {
		sel := &selection[i]
		for j, subID := range sel.SubtopicIDs {
			if types.SubtopicTarget(sel.TopicID, subID) != target {
				continue
			}
			sel.SubtopicIDs = append(sel.SubtopicIDs[:j], sel.SubtopicIDs[j+1:]...)
			sel.EstimatedSpace = nonNegative(sel.EstimatedSpace - space)
			return true
		}
	}
	return false
}

// applyTrimContent shrinks the targeted topics in proportion to their space
func applyTrimContent(selection []types.TopicSelection, targetIDs []string, recovered float64) error {
	indexes := make([]int, 0, len(targetIDs))
	total := 0.0
	for _, id := range targetIDs {
		idx := -1
		for i := range selection {
			if selection[i].TopicID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("topic %s not found in selection", id)
		}
		indexes = append(indexes, idx)
		total += nonNegative(selection[idx].EstimatedSpace)
	}
	if total <= 0 || recovered <= 0 {
		return nil
	}

	for _, idx := range indexes {
		share := nonNegative(selection[idx].EstimatedSpace) / total
		selection[idx].EstimatedSpace = nonNegative(selection[idx].EstimatedSpace - recovered*share)
	}
	return nil
}

// deepCopySelection copies a selection including its subtopic ID slices
func deepCopySelection(selection []types.TopicSelection) []types.TopicSelection {
	out := make([]types.TopicSelection, len(selection))
	for i, sel := range selection {
		out[i] = sel
		if sel.SubtopicIDs != nil {
			out[i].SubtopicIDs = append([]string(nil), sel.SubtopicIDs...)
		}
	}
	return out
}
