// Package estimate converts page layouts into space budgets and content into footprints.
//
// Space is measured in abstract units of "equivalent characters". The model is a
// character-count heuristic, not a typographic layout engine.
package estimate

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

const (
	// formattingOverhead covers headers, spacing and punctuation around body text
	formattingOverhead = 1.25
	// columnTextOverhead is the extra reflow cost per additional column
	columnTextOverhead = 0.10
	// columnCapacityPenalty is the capacity lost to gutters per additional column
	columnCapacityPenalty = 0.05

	topicTitleOverhead    = 40.0
	subtopicTitleOverhead = 15.0
	// ExampleSurcharge is the fixed space charged per visual example
	ExampleSurcharge = 200.0
)

// pageCapacity is the nominal medium-font, single-column capacity of one page
var pageCapacity = map[types.PageSize]float64{
	types.PageSizeLetter: 3000,
	types.PageSizeA4:     3200,
	types.PageSizeLegal:  3800,
	types.PageSizeA3:     6400,
}

var fontMultiplier = map[types.FontSize]float64{
	types.FontSizeSmall:  1.3,
	types.FontSizeMedium: 1.0,
	types.FontSizeLarge:  0.75,
}

// PageCapacity returns the raw capacity of a single page for the given layout,
// before the target utilization margin is applied.
func PageCapacity(c types.SpaceConstraints) float64 {
	base, ok := pageCapacity[c.PageSize]
	if !ok {
		base = pageCapacity[types.PageSizeA4]
	}
	font, ok := fontMultiplier[c.FontSize]
	if !ok {
		font = fontMultiplier[types.FontSizeMedium]
	}
	extraColumns := float64(c.EffectiveColumns() - 1)
	return base * font * (1 - columnCapacityPenalty*extraColumns)
}

// CalculateAvailableSpace returns the space budget for the constraints.
// Zero or negative page counts yield 0.
func CalculateAvailableSpace(c types.SpaceConstraints) float64 {
	if c.AvailablePages <= 0 {
		return 0
	}
	perPage := PageCapacity(c) * c.EffectiveTargetUtilization()
	return math.Floor(perPage * float64(c.AvailablePages))
}

// EstimateContentSpace estimates the footprint of a block of text
func EstimateContentSpace(text string, c types.SpaceConstraints) float64 {
	length := utf8.RuneCountInString(text)
	if length == 0 {
		return 0
	}
	extraColumns := float64(c.EffectiveColumns() - 1)
	multiplier := formattingOverhead * (1 + columnTextOverhead*extraColumns)
	return float64(length) * multiplier
}

// EstimateSubtopicSpace estimates a subtopic's body plus its heading
func EstimateSubtopicSpace(sub types.EnhancedSubTopic, c types.SpaceConstraints) float64 {
	return EstimateContentSpace(sub.Content, c) + EstimateContentSpace(sub.Title, c) + subtopicTitleOverhead
}

// EstimateTopicSpace estimates a topic including all of its subtopics and examples
func EstimateTopicSpace(topic types.OrganizedTopic, c types.SpaceConstraints) float64 {
	space := EstimateContentSpace(topic.Content, c) + EstimateContentSpace(topic.Title, c) + topicTitleOverhead
	for _, sub := range topic.Subtopics {
		space += EstimateSubtopicSpace(sub, c)
	}
	space += float64(len(topic.Examples)) * ExampleSurcharge
	return space
}

// EstimateTopics returns copies of topics with EstimatedSpace populated on each
// topic and subtopic. Priorities are resolved and parent references filled in.
// The input slice is not modified.
func EstimateTopics(topics []types.OrganizedTopic, c types.SpaceConstraints) []types.OrganizedTopic {
	result := make([]types.OrganizedTopic, len(topics))
	for i, topic := range topics {
		estimated := topic
		estimated.Priority = topic.EffectivePriority()

		// Copy subtopics so the caller's slice stays untouched
		estimated.Subtopics = make([]types.EnhancedSubTopic, len(topic.Subtopics))
		for j, sub := range topic.Subtopics {
			sub.Priority = sub.EffectivePriority()
			sub.ParentTopicID = topic.ID
			sub.EstimatedSpace = EstimateSubtopicSpace(sub, c)
			estimated.Subtopics[j] = sub
		}

		estimated.EstimatedSpace = EstimateTopicSpace(estimated, c)
		result[i] = estimated
	}
	return result
}
