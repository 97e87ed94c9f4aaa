package types

// DensityActionType classifies a density adjustment
type DensityActionType string

// Density action types
const (
	DensityIncrease  DensityActionType = "increase_density"
	DensityDecrease  DensityActionType = "decrease_density"
	DensityRebalance DensityActionType = "rebalance_layout"
)

// Target areas a renderer can apply a density action to
const (
	AreaContent   = "content"
	AreaSpacing   = "spacing"
	AreaStructure = "structure"
)

// DensityAction is one adjustment proposed by density alignment
type DensityAction struct {
	Type        DensityActionType `json:"type"`
	TargetArea  string            `json:"target_area"`
	Description string            `json:"description"`
	Magnitude   float64           `json:"magnitude"`
}

// DensityOptimization reports how a selection's density compares to its target
type DensityOptimization struct {
	TargetDensity       float64         `json:"target_density"`
	CurrentDensity      float64         `json:"current_density"`
	DensityGap          float64         `json:"density_gap"`
	ReferenceAlignment  float64         `json:"reference_alignment"`
	OptimizationActions []DensityAction `json:"optimization_actions"`
}
