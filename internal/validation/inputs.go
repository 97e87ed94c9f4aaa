package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// ValidateConstraints checks constraints supplied at an input boundary
func ValidateConstraints(c types.SpaceConstraints) error {
	if err := c.Validate(); err != nil {
		return &Error{Message: "invalid space constraints", Cause: err}
	}
	return nil
}

// ValidateTopics checks field ranges on every topic and subtopic and rejects
// duplicate IDs. Subtopic IDs must be unique within their parent topic.
func ValidateTopics(topics []types.OrganizedTopic) error {
	validate := validator.New()
	seen := make(map[string]bool, len(topics))
	for i := range topics {
		topic := &topics[i]
		if err := validate.Struct(topic); err != nil {
			return &Error{Message: fmt.Sprintf("invalid topic at index %d", i), Cause: err}
		}
		if seen[topic.ID] {
			return &Error{Message: "invalid topic pool", Cause: &DuplicateIDError{ID: topic.ID, Kind: "topic"}}
		}
		seen[topic.ID] = true

		subSeen := make(map[string]bool, len(topic.Subtopics))
		for _, sub := range topic.Subtopics {
			if subSeen[sub.ID] {
				return &Error{
					Message: fmt.Sprintf("invalid topic %q", topic.ID),
					Cause:   &DuplicateIDError{ID: sub.ID, Kind: "subtopic"},
				}
			}
			subSeen[sub.ID] = true
		}
	}
	return nil
}

// ValidateSelection reports problems in a selection against the topic pool.
// Unknown IDs are warnings because the engine counts them as zero space.
func ValidateSelection(selection []types.TopicSelection, allTopics []types.OrganizedTopic) []types.SelectionIssue {
	issues := make([]types.SelectionIssue, 0)

	known := make(map[string]*types.OrganizedTopic, len(allTopics))
	for i := range allTopics {
		if _, exists := known[allTopics[i].ID]; !exists {
			known[allTopics[i].ID] = &allTopics[i]
		}
	}

	selected := make(map[string]bool, len(selection))
	for _, sel := range selection {
		topicID := sel.TopicID

		if selected[topicID] {
			issues = append(issues, types.SelectionIssue{
				Type:     types.IssueDuplicateTopic,
				Severity: types.SeverityError,
				Details:  fmt.Sprintf("topic %q is selected more than once", topicID),
				TopicID:  &topicID,
			})
		}
		selected[topicID] = true

		if sel.EstimatedSpace < 0 {
			issues = append(issues, types.SelectionIssue{
				Type:     types.IssueNegativeSpace,
				Severity: types.SeverityError,
				Details:  fmt.Sprintf("topic %q has negative estimated space %.1f", topicID, sel.EstimatedSpace),
				TopicID:  &topicID,
			})
		}

		topic, ok := known[topicID]
		if !ok {
			issues = append(issues, types.SelectionIssue{
				Type:     types.IssueUnknownTopic,
				Severity: types.SeverityWarning,
				Details:  fmt.Sprintf("topic %q is not in the topic pool", topicID),
				TopicID:  &topicID,
			})
			continue
		}

		subtopics := make(map[string]bool, len(topic.Subtopics))
		for _, sub := range topic.Subtopics {
			subtopics[sub.ID] = true
		}
		for _, subID := range sel.SubtopicIDs {
			if subtopics[subID] {
				continue
			}
			subtopicID := subID
			issues = append(issues, types.SelectionIssue{
				Type:       types.IssueUnknownSubtopic,
				Severity:   types.SeverityWarning,
				Details:    fmt.Sprintf("subtopic %q does not belong to topic %q", subID, topicID),
				TopicID:    &topicID,
				SubtopicID: &subtopicID,
			})
		}
	}

	return issues
}

// ValidateFit reports an overflow issue when the selection exceeds the budget
func ValidateFit(usedSpace, availableSpace float64) []types.SelectionIssue {
	if usedSpace <= availableSpace {
		return []types.SelectionIssue{}
	}
	return []types.SelectionIssue{{
		Type:     types.IssueOverflow,
		Severity: types.SeverityError,
		Details:  fmt.Sprintf("selection uses %.0f units of %.0f available", usedSpace, availableSpace),
	}}
}
