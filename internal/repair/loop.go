package repair

import (
	"fmt"

	"github.com/jonathan/cheatsheet-packer/internal/selection"
	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/jonathan/cheatsheet-packer/internal/validation"
)

// DefaultMaxIterations bounds the reduction loop
const DefaultMaxIterations = 5

// Resolution is the outcome of resolving an overflowing selection
type Resolution struct {
	Selection  []types.TopicSelection    `json:"selection"`
	Applied    []types.ReductionStrategy `json:"applied"`
	Iterations int                       `json:"iterations"`
	UsedSpace  float64                   `json:"used_space"`
	Resolved   bool                      `json:"resolved"`
}

// ResolveOverflow repeatedly applies the recommended reduction strategy until the
// selection fits within availableSpace or maxIterations is reached. The input
// selection is never modified.
func ResolveOverflow(
	initial []types.TopicSelection,
	allTopics []types.OrganizedTopic,
	availableSpace float64,
	maxIterations int,
) (*Resolution, error) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	current := deepCopySelection(initial)
	result := &Resolution{Applied: make([]types.ReductionStrategy, 0)}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		used := selection.CalculateSpaceUtilization(current, availableSpace, allTopics).UsedSpace
		overflow := validation.AnalyzeSpaceOverflow(used, availableSpace, current)
		if overflow.ExcessSpace <= 0 {
			result.Selection = current
			result.UsedSpace = used
			result.Resolved = true
			return result, nil
		}

		strategies := ProposeReductions(overflow, current, allTopics)
		if len(strategies) == 0 {
			result.Selection = current
			result.UsedSpace = used
			return result, &Error{Message: fmt.Sprintf("no reduction strategy available for %.0f excess units", overflow.ExcessSpace)}
		}

		next, err := ApplyReduction(current, allTopics, strategies[0])
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("iteration %d failed", iteration), Cause: err}
		}
		current = next
		result.Applied = append(result.Applied, strategies[0])
		result.Iterations = iteration
	}

	result.Selection = current
	result.UsedSpace = selection.CalculateSpaceUtilization(current, availableSpace, allTopics).UsedSpace
	result.Resolved = result.UsedSpace <= availableSpace
	return result, nil
}
