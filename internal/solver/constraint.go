package solver

import "fmt"

// Relation is the comparison operator of a constraint.
type Relation int8

const (
	LessOrEqual    Relation = -1
	Equal          Relation = 0
	GreaterOrEqual Relation = 1
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// ParseRelation accepts "le", "eq", "ge" and their symbolic forms.
func ParseRelation(s string) (Relation, error) {
	switch s {
	case "le", "<=":
		return LessOrEqual, nil
	case "eq", "==", "=":
		return Equal, nil
	case "ge", ">=":
		return GreaterOrEqual, nil
	default:
		return 0, fmt.Errorf("solver: unknown relation %q", s)
	}
}

// Constraint is a handle to a relation registered with a Solver.
// Handles are only meaningful to the solver that created them.
type Constraint struct {
	variable   *Variable
	relation   Relation
	expression Expression
	strength   Strength
}

// Variable returns the left-hand side variable.
func (c *Constraint) Variable() *Variable { return c.variable }

// Relation returns the comparison operator.
func (c *Constraint) Relation() Relation { return c.relation }

// Expression returns the right-hand side expression.
func (c *Constraint) Expression() Expression { return c.expression }

// Strength returns the constraint's (clipped) strength.
func (c *Constraint) Strength() Strength { return c.strength }

// IsRequired reports whether the constraint must hold exactly.
func (c *Constraint) IsRequired() bool { return c.strength.IsRequired() }

// String implements fmt.Stringer.
func (c *Constraint) String() string {
	return fmt.Sprintf("%s %s %s [%s]", c.variable, c.relation, c.expression, c.strength)
}

// normalized returns the constraint as "lhs - rhs <relation> 0" in the form
// consumed by the tableau.
func (c *Constraint) normalized() Expression {
	terms := make([]Term, 0, len(c.expression.Terms)+1)
	terms = append(terms, Term{Variable: c.variable, Coefficient: 1})
	for _, t := range c.expression.Terms {
		terms = append(terms, Term{Variable: t.Variable, Coefficient: -t.Coefficient})
	}
	return Expression{Terms: terms, Constant: -c.expression.Constant}
}
