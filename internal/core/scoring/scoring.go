// Package scoring contains the pure business logic for automation readiness scoring.
// This is part of the Functional Core - no I/O, only pure functions.
//
// A step is rated on five dimensions (1-5 each). The composite is their sum,
// reduced by a contextual penalty when the project carries blocking dependency
// gaps, and mapped onto one of three automation tiers.
package scoring

// Tier is the automation candidacy derived from a composite score.
type Tier string

const (
	TierAutonomous  Tier = "autonomous"
	TierHumanInLoop Tier = "human_in_loop"
	TierHumanOnly   Tier = "human_only"
)

const (
	MinDimension = 1
	MaxDimension = 5

	// AutonomousThreshold is the lowest composite classed as autonomous.
	AutonomousThreshold = 20
	// HumanInLoopThreshold is the lowest composite classed as human_in_loop.
	HumanInLoopThreshold = 13
)

// Dimensions holds the five per-step readiness ratings.
type Dimensions struct {
	RuleBased          int
	DataAvailability   int
	ExceptionFrequency int
	Auditability       int
	SpeedSensitivity   int
}

// Clamp returns a copy with every dimension forced into [MinDimension, MaxDimension].
func (d Dimensions) Clamp() Dimensions {
	return Dimensions{
		RuleBased:          clamp(d.RuleBased),
		DataAvailability:   clamp(d.DataAvailability),
		ExceptionFrequency: clamp(d.ExceptionFrequency),
		Auditability:       clamp(d.Auditability),
		SpeedSensitivity:   clamp(d.SpeedSensitivity),
	}
}

// Sum returns the raw composite.
func (d Dimensions) Sum() int {
	return d.RuleBased + d.DataAvailability + d.ExceptionFrequency + d.Auditability + d.SpeedSensitivity
}

func clamp(v int) int {
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

// TierFor maps a (post-penalty) composite onto a tier.
func TierFor(composite int) Tier {
	switch {
	case composite >= AutonomousThreshold:
		return TierAutonomous
	case composite >= HumanInLoopThreshold:
		return TierHumanInLoop
	default:
		return TierHumanOnly
	}
}

// ValidTier reports whether s names a known tier.
func ValidTier(s string) bool {
	switch Tier(s) {
	case TierAutonomous, TierHumanInLoop, TierHumanOnly:
		return true
	}
	return false
}

// Result is the outcome of aggregating one step's dimensions.
type Result struct {
	Dimensions Dimensions
	Raw        int
	Penalty    int
	Composite  int
	Tier       Tier
}

// Aggregate clamps the dimensions, applies the policy's penalty for the
// scored workflow and derives the tier. The penalty is always computed from
// the raw inputs, so aggregating the same inputs twice yields the same result.
func Aggregate(dims Dimensions, scoredWorkflowIndex int, gaps []Gap, policy PenaltyPolicy) Result {
	clamped := dims.Clamp()
	raw := clamped.Sum()
	penalty := policy.PenaltyFor(scoredWorkflowIndex, gaps)

	composite := raw - penalty
	if composite < 0 {
		composite = 0
	}

	return Result{
		Dimensions: clamped,
		Raw:        raw,
		Penalty:    penalty,
		Composite:  composite,
		Tier:       TierFor(composite),
	}
}

// Unpenalized aggregates dimensions with no gap context.
func Unpenalized(dims Dimensions) Result {
	return Aggregate(dims, 0, nil, PenaltyPolicy{})
}
