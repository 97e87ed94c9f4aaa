package selection

import (
	"fmt"
	"math"

	"github.com/jonathan/cheatsheet-packer/internal/estimate"
	"github.com/jonathan/cheatsheet-packer/internal/types"
)

const (
	// densityTolerance is the gap inside which no density change is proposed
	densityTolerance = 0.1
	// referenceBlend is how far the target moves toward the reference density
	referenceBlend   = 0.5
	minTargetDensity = 0.3
	// densityNudge separates a reference-guided target from the default one
	densityNudge = 0.01

	// Weights of the reference alignment score
	weightDensityMatch      = 0.50
	weightTopicCountMatch   = 0.25
	weightLayoutMatch       = 0.15
	weightOrganizationMatch = 0.10
)

// OptimizeContentDensity compares the selection's density with its target and
// proposes adjustments.
//
// The target defaults to the constraints' target utilization. With reference
// guidance it moves toward the fraction of page capacity the reference fills, so a
// denser reference raises the target and a sparser one lowers it.
func OptimizeContentDensity(
	selection []types.TopicSelection,
	allTopics []types.OrganizedTopic,
	constraints types.SpaceConstraints,
	mode types.CalibrationMode,
) types.DensityOptimization {
	var ref *types.ReferenceFormatAnalysis
	switch m := mode.(type) {
	case types.ReferenceGuided:
		if m.Analysis.ContentDensity > 0 {
			ref = &m.Analysis
		}
	}

	available := estimate.CalculateAvailableSpace(constraints)
	used := usedSpace(selection, allTopics)
	current := ratio(used, available)

	defaultTarget := constraints.EffectiveTargetUtilization()
	target := defaultTarget
	if ref != nil {
		target = referenceTarget(defaultTarget, *ref, constraints)
	}
	gap := target - current

	var alignment float64
	if ref != nil {
		alignment = referenceAlignment(used, selection, constraints, *ref)
	} else {
		alignment = clamp01(1 - math.Abs(gap)/target)
	}

	return types.DensityOptimization{
		TargetDensity:       target,
		CurrentDensity:      current,
		DensityGap:          gap,
		ReferenceAlignment:  alignment,
		OptimizationActions: densityActions(gap, selection, constraints, ref),
	}
}

// referenceTarget blends the default target with the reference's capacity fraction.
// The result always differs from the default.
func referenceTarget(defaultTarget float64, ref types.ReferenceFormatAnalysis, c types.SpaceConstraints) float64 {
	capacity := estimate.PageCapacity(c)
	refFraction := ref.ContentDensity / capacity

	target := (1-referenceBlend)*defaultTarget + referenceBlend*refFraction
	target = math.Max(minTargetDensity, math.Min(1, target))

	if math.Abs(target-defaultTarget) < densityNudge/2 {
		if refFraction >= defaultTarget && defaultTarget+densityNudge <= 1 {
			target = defaultTarget + densityNudge
		} else {
			target = defaultTarget - densityNudge
		}
	}
	return target
}

// referenceAlignment scores how closely the selection already matches the reference
func referenceAlignment(used float64, selection []types.TopicSelection, c types.SpaceConstraints, ref types.ReferenceFormatAnalysis) float64 {
	pages := math.Max(1, float64(c.AvailablePages))
	perPage := used / pages
	densityScore := clamp01(1 - math.Abs(perPage-ref.ContentDensity)/ref.ContentDensity)

	countScore := 0.5
	if ref.TopicCount > 0 {
		diff := math.Abs(float64(len(selection) - ref.TopicCount))
		countScore = clamp01(1 - diff/float64(ref.TopicCount))
	}

	return clamp01(weightDensityMatch*densityScore +
		weightTopicCountMatch*countScore +
		weightLayoutMatch*layoutMatch(ref.LayoutPattern, c.EffectiveColumns()) +
		weightOrganizationMatch*organizationMatch(ref.OrganizationStyle, selection))
}

// layoutMatch scores the column count against the reference layout pattern
func layoutMatch(pattern types.LayoutPattern, columns int) float64 {
	switch pattern {
	case types.LayoutSingleColumn:
		if columns == 1 {
			return 1
		}
		return 0
	case types.LayoutMultiColumn:
		if columns > 1 {
			return 1
		}
		return 0
	default:
		return 0.5
	}
}

// organizationMatch scores how nested the selection is against the reference style
func organizationMatch(style types.OrganizationStyle, selection []types.TopicSelection) float64 {
	if len(selection) == 0 {
		return 0.5
	}
	nested := 0
	for _, sel := range selection {
		if len(sel.SubtopicIDs) > 0 {
			nested++
		}
	}
	fraction := float64(nested) / float64(len(selection))

	switch style {
	case types.OrganizationHierarchical:
		return fraction
	case types.OrganizationFlat:
		return 1 - fraction
	default:
		return 0.5
	}
}

// densityActions turns the density gap into actions. Multi-column layouts always
// receive at least one spacing action.
func densityActions(gap float64, selection []types.TopicSelection, c types.SpaceConstraints, ref *types.ReferenceFormatAnalysis) []types.DensityAction {
	multiColumn := c.EffectiveColumns() > 1
	actions := make([]types.DensityAction, 0, 3)

	switch {
	case gap > densityTolerance:
		actions = append(actions, types.DensityAction{
			Type:        types.DensityIncrease,
			TargetArea:  types.AreaContent,
			Description: fmt.Sprintf("Add topics or subtopics to fill about %.0f%% more of the budget", gap*100),
			Magnitude:   gap,
		})
		if multiColumn {
			actions = append(actions, types.DensityAction{
				Type:        types.DensityIncrease,
				TargetArea:  types.AreaSpacing,
				Description: "Tighten column gutters and spacing between topics",
				Magnitude:   gap / 2,
			})
		}
	case gap < -densityTolerance:
		actions = append(actions, types.DensityAction{
			Type:        types.DensityDecrease,
			TargetArea:  types.AreaContent,
			Description: fmt.Sprintf("Trim content to free about %.0f%% of the budget", -gap*100),
			Magnitude:   -gap,
		})
		if multiColumn {
			actions = append(actions, types.DensityAction{
				Type:        types.DensityDecrease,
				TargetArea:  types.AreaSpacing,
				Description: "Loosen spacing between topics so columns stay readable",
				Magnitude:   -gap / 2,
			})
		}
	default:
		if multiColumn {
			actions = append(actions, types.DensityAction{
				Type:        types.DensityRebalance,
				TargetArea:  types.AreaSpacing,
				Description: "Balance column lengths by redistributing spacing",
				Magnitude:   math.Abs(gap),
			})
		}
	}

	if ref != nil && len(selection) > 0 {
		fraction := organizationMatch(types.OrganizationHierarchical, selection)
		switch {
		case ref.OrganizationStyle == types.OrganizationHierarchical && fraction < 0.5:
			actions = append(actions, types.DensityAction{
				Type:        types.DensityRebalance,
				TargetArea:  types.AreaStructure,
				Description: "Group content under subtopic headings to match the reference's hierarchy",
				Magnitude:   0.5 - fraction,
			})
		case ref.OrganizationStyle == types.OrganizationFlat && fraction > 0.5:
			actions = append(actions, types.DensityAction{
				Type:        types.DensityRebalance,
				TargetArea:  types.AreaStructure,
				Description: "Flatten subtopics into their parent topics to match the reference's flat layout",
				Magnitude:   fraction - 0.5,
			})
		}
	}

	return actions
}
