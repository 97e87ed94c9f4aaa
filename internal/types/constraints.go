// Package types provides type definitions for structured data used throughout the cheat sheet packer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// PageSize identifies a physical page format
type PageSize string

// Supported page sizes
const (
	PageSizeA4     PageSize = "a4"
	PageSizeLetter PageSize = "letter"
	PageSizeLegal  PageSize = "legal"
	PageSizeA3     PageSize = "a3"
)

// FontSize identifies a body font size class
type FontSize string

// Supported font size classes
const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// DefaultTargetUtilization is the fraction of raw capacity budgeted for content
// when the caller does not supply one.
const DefaultTargetUtilization = 0.85

// MaxColumns is the widest supported column layout
const MaxColumns = 3

// SpaceConstraints describes the physical output a cheat sheet must fit into
type SpaceConstraints struct {
	AvailablePages    int      `json:"available_pages" validate:"gte=0"`
	PageSize          PageSize `json:"page_size" validate:"required,oneof=a4 letter legal a3"`
	FontSize          FontSize `json:"font_size" validate:"required,oneof=small medium large"`
	Columns           int      `json:"columns" validate:"min=1,max=3"`
	TargetUtilization float64  `json:"target_utilization" validate:"gt=0,lte=1"`
}

// Validate validates the SpaceConstraints using the validator.
// The packing engine tolerates invalid values; this is for input boundaries.
func (c *SpaceConstraints) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// EffectiveTargetUtilization returns TargetUtilization, or the default when it
// is outside (0, 1].
func (c SpaceConstraints) EffectiveTargetUtilization() float64 {
	if c.TargetUtilization <= 0 || c.TargetUtilization > 1 {
		return DefaultTargetUtilization
	}
	return c.TargetUtilization
}

// EffectiveColumns returns Columns clamped to [1, MaxColumns]
func (c SpaceConstraints) EffectiveColumns() int {
	if c.Columns < 1 {
		return 1
	}
	if c.Columns > MaxColumns {
		return MaxColumns
	}
	return c.Columns
}

// DefaultConstraints returns a single A4 page, medium font, single column layout
func DefaultConstraints() SpaceConstraints {
	return SpaceConstraints{
		AvailablePages:    1,
		PageSize:          PageSizeA4,
		FontSize:          FontSizeMedium,
		Columns:           1,
		TargetUtilization: DefaultTargetUtilization,
	}
}
