// Package types provides type definitions for structured data used throughout the cheat sheet packer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Issue types reported for a selection
const (
	IssueUnknownTopic    = "unknown_topic"
	IssueUnknownSubtopic = "unknown_subtopic"
	IssueNegativeSpace   = "negative_space"
	IssueDuplicateTopic  = "duplicate_topic"
	IssueOverflow        = "overflow"
)

// Issue severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// SelectionIssue represents a single problem found in a selection
type SelectionIssue struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`

	TopicID    *string `json:"topic_id,omitempty"`    // Which selection entry this refers to
	SubtopicID *string `json:"subtopic_id,omitempty"` // Which subtopic, when the issue is subtopic-level
}

// SelectionReport is a collection of selection issues
type SelectionReport struct {
	Issues []SelectionIssue `json:"issues"`
}

// HasErrors reports whether any issue has error severity
func (r *SelectionReport) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
