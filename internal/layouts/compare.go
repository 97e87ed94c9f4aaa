// Package layouts runs the packer against several candidate page layouts and
// compares the outcomes.
package layouts

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/cheatsheet-packer/internal/estimate"
	"github.com/jonathan/cheatsheet-packer/internal/selection"
	"github.com/jonathan/cheatsheet-packer/internal/types"
	"golang.org/x/sync/errgroup"
)

// Variant is a named candidate layout
type Variant struct {
	Name        string                 `json:"name"`
	Constraints types.SpaceConstraints `json:"constraints"`
}

// Comparison is the packing outcome for one variant
type Comparison struct {
	Variant        Variant                       `json:"variant"`
	AvailableSpace float64                       `json:"available_space"`
	Result         types.SpaceOptimizationResult `json:"result"`
	Utilization    types.SpaceUtilizationInfo    `json:"utilization"`
	Density        types.DensityOptimization     `json:"density"`
}

// Error represents a layout comparison failure
type Error struct {
	Variant string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout %q: %v", e.Variant, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Compare packs the topics once per variant, concurrently. Each variant works on
// its own estimated copy of the topics. Results keep the order of variants.
// The first invalid variant or a cancelled context aborts the comparison.
func Compare(
	ctx context.Context,
	topics []types.OrganizedTopic,
	variants []Variant,
	mode types.CalibrationMode,
) ([]Comparison, error) {
	results := make([]Comparison, len(variants))

	g, gCtx := errgroup.WithContext(ctx)
	for i, variant := range variants {
		i, variant := i, variant
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := variant.Constraints.Validate(); err != nil {
				return &Error{Variant: variant.Name, Cause: err}
			}
			// Each goroutine writes only its own slot
			results[i] = evaluate(topics, variant, mode)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluate runs estimation, optimization, and evaluation for one layout
func evaluate(topics []types.OrganizedTopic, variant Variant, mode types.CalibrationMode) Comparison {
	c := variant.Constraints
	estimated := estimate.EstimateTopics(topics, c)
	available := estimate.CalculateAvailableSpace(c)

	result := selection.OptimizeSpaceUtilization(estimated, available, mode)
	return Comparison{
		Variant:        variant,
		AvailableSpace: available,
		Result:         result,
		Utilization:    selection.CalculateSpaceUtilization(result.Selections, available, estimated),
		Density:        selection.OptimizeContentDensity(result.Selections, estimated, c, mode),
	}
}

// BuildDefaultVariants returns the base layout followed by what-if alternatives:
// every other column count, the next smaller and larger font, and one more page.
func BuildDefaultVariants(base types.SpaceConstraints) []Variant {
	base.Columns = base.EffectiveColumns()
	if base.TargetUtilization <= 0 || base.TargetUtilization > 1 {
		base.TargetUtilization = base.EffectiveTargetUtilization()
	}

	variants := []Variant{{Name: "current", Constraints: base}}

	for cols := 1; cols <= types.MaxColumns; cols++ {
		if cols == base.Columns {
			continue
		}
		c := base
		c.Columns = cols
		variants = append(variants, Variant{Name: fmt.Sprintf("%d-column", cols), Constraints: c})
	}

	for _, font := range adjacentFonts(base.FontSize) {
		c := base
		c.FontSize = font
		variants = append(variants, Variant{Name: fmt.Sprintf("%s-font", font), Constraints: c})
	}

	c := base
	c.AvailablePages = base.AvailablePages + 1
	variants = append(variants, Variant{Name: fmt.Sprintf("%d-page", c.AvailablePages), Constraints: c})

	return variants
}

// adjacentFonts returns the font sizes next to f
func adjacentFonts(f types.FontSize) []types.FontSize {
	switch f {
	case types.FontSizeSmall:
		return []types.FontSize{types.FontSizeMedium}
	case types.FontSizeLarge:
		return []types.FontSize{types.FontSizeMedium}
	default:
		return []types.FontSize{types.FontSizeSmall, types.FontSizeLarge}
	}
}

// Best picks the comparison with the highest utilization score, preferring fewer
// pages and then earlier variants on ties. Returns nil for an empty list.
func Best(comparisons []Comparison) *Comparison {
	if len(comparisons) == 0 {
		return nil
	}
	order := make([]int, len(comparisons))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := comparisons[order[a]], comparisons[order[b]]
		if ca.Result.UtilizationScore != cb.Result.UtilizationScore {
			return ca.Result.UtilizationScore > cb.Result.UtilizationScore
		}
		return ca.Variant.Constraints.AvailablePages < cb.Variant.Constraints.AvailablePages
	})
	return &comparisons[order[0]]
}
