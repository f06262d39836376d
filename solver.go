// solver.go re-exports solver types from internal/solver.
package constraint

import "github.com/grindlemire/go-constraint/internal/solver"

// Solver maintains a system of weighted linear constraints.
type Solver = solver.Solver

// Relation is the comparison of a constraint.
type Relation = solver.Relation

const (
	LessOrEqual    = solver.LessOrEqual
	Equal          = solver.Equal
	GreaterOrEqual = solver.GreaterOrEqual
)

// Strength is the priority of a constraint.
type Strength = solver.Strength

// Strength levels.
const (
	Required = solver.Required
	Strong   = solver.Strong
	Medium   = solver.Medium
	Weak     = solver.Weak
)

// SolverStats is a snapshot of solver counters.
type SolverStats = solver.Stats

// NewSolver creates an empty solver, for sharing between layouts.
func NewSolver() *Solver {
	return solver.New()
}

// NewStrength builds a strength from its strong, medium and weak levels.
func NewStrength(strong, medium, weak float64) Strength {
	return solver.NewStrength(strong, medium, weak)
}

// ParseRelation converts "<=", "==", ">=" or le/eq/ge.
func ParseRelation(s string) (Relation, error) {
	return solver.ParseRelation(s)
}

// ParseStrength converts "required", "strong", "medium" or "weak".
func ParseStrength(name string) (Strength, error) {
	return solver.ParseStrength(name)
}

var (
	ErrUnsatisfiableConstraint = solver.ErrUnsatisfiableConstraint
	ErrUnknownConstraint       = solver.ErrUnknownConstraint
)
