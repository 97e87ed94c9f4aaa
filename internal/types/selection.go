package types

// TopicSelection records one selected topic and which of its subtopics are kept
type TopicSelection struct {
	TopicID     string   `json:"topic_id"`
	SubtopicIDs []string `json:"subtopic_ids"`
	Priority    Priority `json:"priority,omitempty"`
	// EstimatedSpace is the space charged for this selection (main content plus selected subtopics)
	EstimatedSpace float64 `json:"estimated_space,omitempty"`
}

// SelectionSet is the on-disk form of a caller's selection
type SelectionSet struct {
	Selections []TopicSelection `json:"selections"`
}

// SubtopicRecommendation lists the subtopics recommended for one topic
type SubtopicRecommendation struct {
	TopicID     string   `json:"topic_id"`
	SubtopicIDs []string `json:"subtopic_ids"`
}

// SpaceOptimizationResult is the optimizer's recommended selection
type SpaceOptimizationResult struct {
	RecommendedTopics         []string                 `json:"recommended_topics"`
	RecommendedSubtopics      []SubtopicRecommendation `json:"recommended_subtopics"`
	UtilizationScore          float64                  `json:"utilization_score"`
	Suggestions               []SpaceSuggestion        `json:"suggestions"`
	EstimatedFinalUtilization float64                  `json:"estimated_final_utilization"`
	UsedSpace                 float64                  `json:"used_space"`
	AvailableSpace            float64                  `json:"available_space"`
	Selections                []TopicSelection         `json:"selections"`
}

// SuggestionType classifies a SpaceSuggestion
type SuggestionType string

// Suggestion types
const (
	SuggestionAddTopic      SuggestionType = "add_topic"
	SuggestionAddSubtopic   SuggestionType = "add_subtopic"
	SuggestionExpandContent SuggestionType = "expand_content"
	SuggestionReduceContent SuggestionType = "reduce_content"
)

// SpaceSuggestion is one piece of corrective guidance
type SpaceSuggestion struct {
	Type        SuggestionType `json:"type"`
	TargetID    string         `json:"target_id"`
	Description string         `json:"description"`
	// SpaceImpact is the signed change in used space if the suggestion is applied
	SpaceImpact float64 `json:"space_impact"`
}

// SpaceUtilizationInfo reports how a selection uses the budget.
// UtilizationPercentage is a fraction and exceeds 1.0 on overflow.
type SpaceUtilizationInfo struct {
	TotalAvailableSpace   float64           `json:"total_available_space"`
	UsedSpace             float64           `json:"used_space"`
	RemainingSpace        float64           `json:"remaining_space"`
	UtilizationPercentage float64           `json:"utilization_percentage"`
	Suggestions           []SpaceSuggestion `json:"suggestions"`
}
