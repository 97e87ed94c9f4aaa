package selection

import (
	"testing"

	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSpaceUtilization_EmptySelection(t *testing.T) {
	topics := []types.OrganizedTopic{topic("t1", types.PriorityHigh, 300)}

	info := CalculateSpaceUtilization([]types.TopicSelection{}, 1000, topics)

	assert.Equal(t, 0.0, info.UsedSpace)
	assert.Equal(t, 1000.0, info.RemainingSpace)
	assert.Equal(t, 0.0, info.UtilizationPercentage)
	assert.Equal(t, 1000.0, info.TotalAvailableSpace)
}

func TestCalculateSpaceUtilization_OverflowIsNotClamped(t *testing.T) {
	topics := []types.OrganizedTopic{
		topic("t1", types.PriorityHigh, 700),
		topic("t2", types.PriorityLow, 500),
	}
	selection := []types.TopicSelection{
		{TopicID: "t1", Priority: types.PriorityHigh, EstimatedSpace: 700},
		{TopicID: "t2", Priority: types.PriorityLow, EstimatedSpace: 500},
	}

	info := CalculateSpaceUtilization(selection, 1000, topics)

	assert.Equal(t, 1200.0, info.UsedSpace)
	assert.Equal(t, 0.0, info.RemainingSpace)
	assert.InDelta(t, 1.2, info.UtilizationPercentage, 1e-9)

	require.Len(t, info.Suggestions, 1)
	assert.Equal(t, types.SuggestionReduceContent, info.Suggestions[0].Type)
	assert.Equal(t, "t2", info.Suggestions[0].TargetID)
	assert.Equal(t, -500.0, info.Suggestions[0].SpaceImpact)
}

func TestCalculateSpaceUtilization_MissingEstimatesCountAsZero(t *testing.T) {
	topics := []types.OrganizedTopic{
		topic("t1", types.PriorityHigh, 300),
		topic("t2", types.PriorityHigh, 300),
	}
	selection := []types.TopicSelection{
		{TopicID: "t1", EstimatedSpace: 250},
		{TopicID: "t2"},
	}

	info := CalculateSpaceUtilization(selection, 1000, topics)

	assert.Equal(t, 250.0, info.UsedSpace)
	assert.Equal(t, 750.0, info.RemainingSpace)
	assert.InDelta(t, 0.25, info.UtilizationPercentage, 1e-9)
}

func TestCalculateSpaceUtilization_UnknownTopicContributesZero(t *testing.T) {
	topics := []types.OrganizedTopic{topic("t1", types.PriorityHigh, 300)}
	selection := []types.TopicSelection{
		{TopicID: "t1", EstimatedSpace: 300},
		{TopicID: "missing", EstimatedSpace: 5000},
	}

	info := CalculateSpaceUtilization(selection, 1000, topics)

	assert.Equal(t, 300.0, info.UsedSpace)
	assert.InDelta(t, 0.3, info.UtilizationPercentage, 1e-9)
}

func TestCalculateSpaceUtilization_NoBudget(t *testing.T) {
	topics := []types.OrganizedTopic{topic("t1", types.PriorityHigh, 300)}
	selection := []types.TopicSelection{{TopicID: "t1", EstimatedSpace: 300}}

	for _, available := range []float64{0, -200} {
		info := CalculateSpaceUtilization(selection, available, topics)
		assert.Equal(t, 0.0, info.TotalAvailableSpace)
		assert.Equal(t, 0.0, info.RemainingSpace)
		assert.Equal(t, 0.0, info.UtilizationPercentage)
		assert.Empty(t, info.Suggestions)
	}
}
