package selection

import (
	"math"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// CalculateSpaceUtilization reports how a selection uses the available space.
// UtilizationPercentage is left unclamped so overflow stays visible;
// RemainingSpace never goes below zero.
func CalculateSpaceUtilization(selected []types.TopicSelection, availableSpace float64, allTopics []types.OrganizedTopic) types.SpaceUtilizationInfo {
	used := usedSpace(selected, allTopics)
	available := math.Max(0, availableSpace)

	return types.SpaceUtilizationInfo{
		TotalAvailableSpace:   available,
		UsedSpace:             used,
		RemainingSpace:        math.Max(0, available-used),
		UtilizationPercentage: ratio(used, available),
		Suggestions:           GenerateSpaceSuggestions(selected, available, allTopics, types.DefaultCalibration{}),
	}
}
