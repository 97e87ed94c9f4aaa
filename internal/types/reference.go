package types

// LayoutPattern describes how a reference document arranges its columns
type LayoutPattern string

// Known layout patterns
const (
	LayoutSingleColumn LayoutPattern = "single-column"
	LayoutMultiColumn  LayoutPattern = "multi-column"
	LayoutMixed        LayoutPattern = "mixed"
)

// OrganizationStyle describes how a reference document nests its topics
type OrganizationStyle string

// Known organization styles
const (
	OrganizationHierarchical OrganizationStyle = "hierarchical"
	OrganizationFlat         OrganizationStyle = "flat"
	OrganizationMixed        OrganizationStyle = "mixed"
)

// ReferenceFormatAnalysis characterizes a reference cheat sheet the output should resemble
type ReferenceFormatAnalysis struct {
	ContentDensity     float64           `json:"content_density"` // characters per page
	TopicCount         int               `json:"topic_count"`
	AverageTopicLength float64           `json:"average_topic_length"`
	LayoutPattern      LayoutPattern     `json:"layout_pattern,omitempty"`
	OrganizationStyle  OrganizationStyle `json:"organization_style,omitempty"`
	VisualStyle        *VisualStyle      `json:"visual_style,omitempty"`
}

// VisualStyle is cosmetic metadata passed through to the renderer; packing ignores it
type VisualStyle struct {
	ColorScheme string `json:"color_scheme,omitempty"`
	FontFamily  string `json:"font_family,omitempty"`
	HeaderStyle string `json:"header_style,omitempty"`
	UsesIcons   bool   `json:"uses_icons,omitempty"`
}
