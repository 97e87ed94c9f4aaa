package types

import "github.com/go-playground/validator/v10"

// Priority is the coarse educational importance of a topic or subtopic
type Priority string

// Priority tiers, in selection order
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityTiers lists the tiers in selection order
var PriorityTiers = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Confidence thresholds used when a priority has to be inferred
const (
	highPriorityConfidence   = 0.8
	mediumPriorityConfidence = 0.5
)

// Valid reports whether p is one of the known tiers
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders tiers for sorting: high is 0, low (and unknown) is 2
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// InferPriority derives a tier from an extraction confidence score
func InferPriority(confidence float64) Priority {
	switch {
	case confidence >= highPriorityConfidence:
		return PriorityHigh
	case confidence >= mediumPriorityConfidence:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// TopicPool is the candidate pool handed over by a topic source
type TopicPool struct {
	Topics    []OrganizedTopic         `json:"topics" validate:"dive"`
	Reference *ReferenceFormatAnalysis `json:"reference,omitempty"`
}

// OrganizedTopic is a candidate cheat sheet section
type OrganizedTopic struct {
	ID               string             `json:"id" validate:"required"`
	Title            string             `json:"title" validate:"required"`
	Content          string             `json:"content"`
	Subtopics        []EnhancedSubTopic `json:"subtopics" validate:"dive"`
	SourceReferences []SourceReference  `json:"source_references,omitempty"`
	Confidence       float64            `json:"confidence" validate:"gte=0,lte=1"`
	Priority         Priority           `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Examples         []VisualExample    `json:"examples,omitempty"`
	// EstimatedSpace is zero until computed by the estimator
	EstimatedSpace float64 `json:"estimated_space,omitempty" validate:"gte=0"`
}

// EnhancedSubTopic is a subsection owned by exactly one OrganizedTopic
type EnhancedSubTopic struct {
	ID             string   `json:"id" validate:"required"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Confidence     float64  `json:"confidence" validate:"gte=0,lte=1"`
	Priority       Priority `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	EstimatedSpace float64  `json:"estimated_space,omitempty" validate:"gte=0"`
	IsSelected     bool     `json:"is_selected"`
	ParentTopicID  string   `json:"parent_topic_id,omitempty"`
}

// SourceReference points back at the material a topic was extracted from
type SourceReference struct {
	Document string `json:"document"`
	Page     int    `json:"page,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// VisualExample is a diagram, table, or code sample attached to a topic
type VisualExample struct {
	ID      string `json:"id,omitempty"`
	Kind    string `json:"kind"`
	Caption string `json:"caption,omitempty"`
	Content string `json:"content,omitempty"`
}

// EffectivePriority returns the explicit priority, or one inferred from confidence
func (t *OrganizedTopic) EffectivePriority() Priority {
	if t.Priority.Valid() {
		return t.Priority
	}
	return InferPriority(t.Confidence)
}

// EffectivePriority returns the explicit priority, or one inferred from confidence
func (s *EnhancedSubTopic) EffectivePriority() Priority {
	if s.Priority.Valid() {
		return s.Priority
	}
	return InferPriority(s.Confidence)
}

// SubtopicSpace sums the estimated space of all subtopics; unestimated ones count as zero
func (t *OrganizedTopic) SubtopicSpace() float64 {
	total := 0.0
	for i := range t.Subtopics {
		if t.Subtopics[i].EstimatedSpace > 0 {
			total += t.Subtopics[i].EstimatedSpace
		}
	}
	return total
}

// CoreSpace is the space of the topic's own title, body, and examples,
// i.e. EstimatedSpace without its subtopics.
func (t *OrganizedTopic) CoreSpace() float64 {
	core := t.EstimatedSpace - t.SubtopicSpace()
	if core < 0 {
		return 0
	}
	return core
}

// Validate validates the TopicPool using the validator.
func (p *TopicPool) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
