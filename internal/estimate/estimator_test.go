package estimate

import (
	"strings"
	"testing"

	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constraints(mutate func(c *types.SpaceConstraints)) types.SpaceConstraints {
	c := types.DefaultConstraints()
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func TestCalculateAvailableSpace_PageSizeMonotonic(t *testing.T) {
	legal := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.PageSize = types.PageSizeLegal }))
	a4 := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.PageSize = types.PageSizeA4 }))
	letter := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.PageSize = types.PageSizeLetter }))
	a3 := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.PageSize = types.PageSizeA3 }))

	assert.GreaterOrEqual(t, legal, a4)
	assert.GreaterOrEqual(t, a4, letter)
	assert.Greater(t, a3, legal)
}

func TestCalculateAvailableSpace_FontSizeMonotonic(t *testing.T) {
	small := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.FontSize = types.FontSizeSmall }))
	medium := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.FontSize = types.FontSizeMedium }))
	large := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.FontSize = types.FontSizeLarge }))

	assert.GreaterOrEqual(t, small, medium)
	assert.GreaterOrEqual(t, medium, large)
}

func TestCalculateAvailableSpace_ColumnsStrictlyDecrease(t *testing.T) {
	one := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.Columns = 1 }))
	two := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.Columns = 2 }))
	three := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.Columns = 3 }))

	assert.Greater(t, one, two)
	assert.Greater(t, two, three)
}

func TestCalculateAvailableSpace_LinearInPages(t *testing.T) {
	single := CalculateAvailableSpace(constraints(nil))
	require.Greater(t, single, 0.0)

	for _, pages := range []int{2, 3, 5, 10} {
		c := constraints(func(c *types.SpaceConstraints) { c.AvailablePages = pages })
		assert.InDelta(t, single*float64(pages), CalculateAvailableSpace(c), float64(pages))
	}
}

func TestCalculateAvailableSpace_ZeroPages(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.AvailablePages = 0 })))
	assert.Equal(t, 0.0, CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.AvailablePages = -2 })))
}

func TestCalculateAvailableSpace_Idempotent(t *testing.T) {
	c := constraints(func(c *types.SpaceConstraints) {
		c.AvailablePages = 2
		c.Columns = 3
		c.FontSize = types.FontSizeSmall
	})
	assert.Equal(t, CalculateAvailableSpace(c), CalculateAvailableSpace(c))
}

func TestCalculateAvailableSpace_UsesTargetUtilization(t *testing.T) {
	full := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.TargetUtilization = 1 }))
	assert.Equal(t, PageCapacity(constraints(nil)), full)

	// Out-of-range target falls back to the default margin
	fallback := CalculateAvailableSpace(constraints(func(c *types.SpaceConstraints) { c.TargetUtilization = 0 }))
	assert.Equal(t, CalculateAvailableSpace(constraints(nil)), fallback)
}

func TestEstimateContentSpace_OverheadFloor(t *testing.T) {
	for _, text := range []string{"a", "ab", "Chain rule", strings.Repeat("integration by parts ", 40)} {
		c := constraints(nil)
		assert.Greater(t, EstimateContentSpace(text, c), float64(len(text))*1.2, text)
	}
	assert.Equal(t, 0.0, EstimateContentSpace("", constraints(nil)))
}

func TestEstimateContentSpace_CountsRunes(t *testing.T) {
	c := constraints(nil)
	assert.Equal(t, EstimateContentSpace("abc", c), EstimateContentSpace("αβγ", c))
}

func TestEstimateContentSpace_MultiColumnCostsMore(t *testing.T) {
	for _, text := range []string{"x", "Bayes' theorem relates conditional probabilities."} {
		one := EstimateContentSpace(text, constraints(func(c *types.SpaceConstraints) { c.Columns = 1 }))
		two := EstimateContentSpace(text, constraints(func(c *types.SpaceConstraints) { c.Columns = 2 }))
		three := EstimateContentSpace(text, constraints(func(c *types.SpaceConstraints) { c.Columns = 3 }))
		assert.Greater(t, two, one)
		assert.Greater(t, three, two)
	}
}

func TestEstimateTopicSpace_ExampleSurchargeIndependentOfText(t *testing.T) {
	c := constraints(nil)
	for _, body := range []string{"short", strings.Repeat("long body text ", 100)} {
		plain := types.OrganizedTopic{ID: "t", Title: "Limits", Content: body}
		withExamples := plain
		withExamples.Examples = []types.VisualExample{{Kind: "diagram"}, {Kind: "table"}}

		delta := EstimateTopicSpace(withExamples, c) - EstimateTopicSpace(plain, c)
		assert.InDelta(t, 2*ExampleSurcharge, delta, 1e-9)
	}
}

func TestEstimateTopicSpace_CoversBodySubtopicsAndExamples(t *testing.T) {
	c := constraints(nil)
	topic := types.OrganizedTopic{
		ID:      "t1",
		Title:   "Probability",
		Content: "Probability measures how likely an event is.",
		Subtopics: []types.EnhancedSubTopic{
			{ID: "s1", Title: "Bayes", Content: "P(A|B) = P(B|A)P(A)/P(B)"},
			{ID: "s2", Title: "Independence", Content: "P(A and B) = P(A)P(B)"},
		},
		Examples: []types.VisualExample{{Kind: "tree"}},
	}

	floor := EstimateContentSpace(topic.Content, c) + ExampleSurcharge
	for _, sub := range topic.Subtopics {
		floor += EstimateSubtopicSpace(sub, c)
	}
	assert.GreaterOrEqual(t, EstimateTopicSpace(topic, c), floor)
}

func TestEstimateSubtopicSpace_IncludesTitleOverhead(t *testing.T) {
	c := constraints(nil)
	sub := types.EnhancedSubTopic{ID: "s", Content: "body"}
	assert.Greater(t, EstimateSubtopicSpace(sub, c), EstimateContentSpace(sub.Content, c))
}

func TestEstimateTopics_PopulatesCopies(t *testing.T) {
	c := constraints(nil)
	input := []types.OrganizedTopic{
		{
			ID:         "t1",
			Title:      "Vectors",
			Content:    "Magnitude and direction.",
			Confidence: 0.9,
			Subtopics: []types.EnhancedSubTopic{
				{ID: "s1", Title: "Dot product", Content: "a·b = |a||b|cosθ", Confidence: 0.3},
			},
		},
	}

	out := EstimateTopics(input, c)
	require.Len(t, out, 1)

	assert.Greater(t, out[0].EstimatedSpace, 0.0)
	assert.Equal(t, types.PriorityHigh, out[0].Priority)
	assert.Equal(t, "t1", out[0].Subtopics[0].ParentTopicID)
	assert.Equal(t, types.PriorityLow, out[0].Subtopics[0].Priority)
	assert.Greater(t, out[0].Subtopics[0].EstimatedSpace, 0.0)
	assert.InDelta(t, out[0].EstimatedSpace, out[0].CoreSpace()+out[0].SubtopicSpace(), 1e-9)

	// Inputs untouched
	assert.Equal(t, 0.0, input[0].EstimatedSpace)
	assert.Equal(t, 0.0, input[0].Subtopics[0].EstimatedSpace)
	assert.Empty(t, input[0].Subtopics[0].ParentTopicID)
}
