package types

// ReductionType classifies how a reduction strategy frees space
type ReductionType string

// Reduction types
const (
	ReductionRemoveTopics    ReductionType = "remove_topics"
	ReductionRemoveSubtopics ReductionType = "remove_subtopics"
	ReductionTrimContent     ReductionType = "trim_content"
)

// ContentImpact is a qualitative label for how much a reduction hurts the sheet
type ContentImpact string

// Content impact levels
const (
	ImpactMinimal     ContentImpact = "minimal"
	ImpactModerate    ContentImpact = "moderate"
	ImpactSignificant ContentImpact = "significant"
)

// ReductionStrategy is a candidate plan for resolving overflow
type ReductionStrategy struct {
	ReductionType ReductionType `json:"reduction_type"`
	TargetIDs     []string      `json:"target_ids"`
	ContentImpact ContentImpact `json:"content_impact"`
	// PreservationScore in [0,1] estimates how much educational value survives
	PreservationScore float64 `json:"preservation_score"`
	SpaceRecovered    float64 `json:"space_recovered"`
	Description       string  `json:"description"`
}

// SubtopicTarget is the target ID of a subtopic in a remove_subtopics strategy.
// Subtopic IDs are only unique within their topic, so the target names both.
func SubtopicTarget(topicID, subtopicID string) string {
	return topicID + "/" + subtopicID
}
