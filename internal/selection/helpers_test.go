package selection

import (
	"math"
	"testing"

	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/stretchr/testify/assert"
)

// topic builds an estimated topic without subtopics
func topic(id string, priority types.Priority, space float64) types.OrganizedTopic {
	return types.OrganizedTopic{
		ID:             id,
		Title:          "Topic " + id,
		Priority:       priority,
		Confidence:     0.5,
		EstimatedSpace: space,
	}
}

func TestSpaceOf(t *testing.T) {
	assert.Equal(t, 0.0, spaceOf(-10))
	assert.Equal(t, 0.0, spaceOf(math.NaN()))
	assert.Equal(t, 12.5, spaceOf(12.5))
}

func TestBucketTopics_KeepsInputOrderWithinTier(t *testing.T) {
	topics := []types.OrganizedTopic{
		topic("l1", types.PriorityLow, 1),
		topic("h1", types.PriorityHigh, 1),
		topic("m1", types.PriorityMedium, 1),
		topic("h2", types.PriorityHigh, 1),
		{ID: "inferred", Confidence: 0.9},
	}

	buckets := bucketTopics(topics)

	assert.Equal(t, []int{1, 3, 4}, buckets[0])
	assert.Equal(t, []int{2}, buckets[1])
	assert.Equal(t, []int{0}, buckets[2])
}

func TestUsedSpace_SkipsUnknownTopics(t *testing.T) {
	pool := []types.OrganizedTopic{topic("t1", types.PriorityHigh, 300)}
	selection := []types.TopicSelection{
		{TopicID: "t1", EstimatedSpace: 300},
		{TopicID: "ghost", EstimatedSpace: 900},
	}

	assert.Equal(t, 300.0, usedSpace(selection, pool))
	// Without a pool there is nothing to check against
	assert.Equal(t, 1200.0, usedSpace(selection, nil))
}

func TestSortByValue(t *testing.T) {
	cands := []candidate{
		{id: "low", priority: types.PriorityLow, confidence: 0.9, order: 0},
		{id: "high-weak", priority: types.PriorityHigh, confidence: 0.4, order: 1},
		{id: "high-strong", priority: types.PriorityHigh, confidence: 0.9, order: 2},
		{id: "high-strong-later", priority: types.PriorityHigh, confidence: 0.9, order: 3},
	}

	sortByValue(cands)

	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.id
	}
	assert.Equal(t, []string{"high-strong", "high-strong-later", "high-weak", "low"}, ids)
}
