package solver

import "fmt"

// Strength is the priority of a constraint.
// Required constraints must hold; the others are weighted preferences.
type Strength float64

// NewStrength builds a strength from the three symbolic levels. Each level is
// clipped to [0, 1000] so a stronger level dominates the weaker ones.
func NewStrength(strong, medium, weak float64) Strength {
	clip := func(v float64) float64 { return max(0, min(1000, v)) }
	return Strength(clip(strong)*1_000_000 + clip(medium)*1_000 + clip(weak))
}

// The symbolic levels, equal to NewStrength(1000, 1000, 1000),
// NewStrength(1, 0, 0), NewStrength(0, 1, 0) and NewStrength(0, 0, 1).
const (
	// Required constraints must be satisfied exactly.
	Required Strength = 1000*1_000_000 + 1000*1_000 + 1000
	// Strong preferences win over Medium and Weak ones.
	Strong Strength = 1_000_000
	// Medium preferences win over Weak ones.
	Medium Strength = 1_000
	// Weak preferences are the first to be violated.
	Weak Strength = 1
)

// clip restricts s to [0, Required].
func (s Strength) clip() Strength {
	return max(0, min(Required, s))
}

// IsRequired reports whether s is at least Required.
func (s Strength) IsRequired() bool {
	return s >= Required
}

// String implements fmt.Stringer.
func (s Strength) String() string {
	switch s {
	case Required:
		return "required"
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	case Weak:
		return "weak"
	default:
		return fmt.Sprintf("%g", float64(s))
	}
}

// ParseStrength converts a strength name into a Strength.
func ParseStrength(name string) (Strength, error) {
	switch name {
	case "required":
		return Required, nil
	case "strong":
		return Strong, nil
	case "medium":
		return Medium, nil
	case "weak":
		return Weak, nil
	default:
		return 0, fmt.Errorf("solver: unknown strength %q", name)
	}
}
