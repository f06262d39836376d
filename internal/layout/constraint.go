package layout

import (
	"fmt"
	"strconv"

	"github.com/grindlemire/go-constraint/internal/solver"
)

// Target is anything a Constraint can refer to: a *Guide, a Layoutable child
// of the layout, or nil for the layout itself.
type Target any

// Constraint describes a linear relation between two targets:
//
//	target.attr <relation> source.attr * multiplier + constant
//
// A Constraint is immutable once created. It becomes active when added to a
// rooted Layout.
type Constraint struct {
	target     Target
	targetAttr Attribute
	relation   solver.Relation
	source     Target
	sourceAttr Attribute
	multiplier float64
	constant   float64
	strength   solver.Strength

	layout *Layout
	handle *solver.Constraint
}

// NewConstraint creates a constraint relating target.attr to source.srcAttr.
func NewConstraint(target Target, attr Attribute, relation solver.Relation,
	source Target, srcAttr Attribute, multiplier, constant float64, strength solver.Strength) *Constraint {
	return &Constraint{
		target:     target,
		targetAttr: attr,
		relation:   relation,
		source:     source,
		sourceAttr: srcAttr,
		multiplier: multiplier,
		constant:   constant,
		strength:   strength,
	}
}

// NewConstantConstraint creates a constraint relating target.attr to a constant.
func NewConstantConstraint(target Target, attr Attribute, relation solver.Relation,
	constant float64, strength solver.Strength) *Constraint {
	return &Constraint{
		target:     target,
		targetAttr: attr,
		relation:   relation,
		sourceAttr: AttributeNone,
		multiplier: 1,
		constant:   constant,
		strength:   strength,
	}
}

// Target returns the constrained target; nil means the layout.
func (c *Constraint) Target() Target { return c.target }

// TargetAttribute returns the constrained attribute.
func (c *Constraint) TargetAttribute() Attribute { return c.targetAttr }

// Relation returns the relation between both sides.
func (c *Constraint) Relation() solver.Relation { return c.relation }

// Source returns the source target; nil means the layout.
func (c *Constraint) Source() Target { return c.source }

// SourceAttribute returns the source attribute, or AttributeNone for a
// constant constraint.
func (c *Constraint) SourceAttribute() Attribute { return c.sourceAttr }

// Multiplier returns the factor applied to the source attribute.
func (c *Constraint) Multiplier() float64 { return c.multiplier }

// Constant returns the constant term.
func (c *Constraint) Constant() float64 { return c.constant }

// Strength returns the constraint strength.
func (c *Constraint) Strength() solver.Strength { return c.strength }

// IsRequired reports whether the constraint must hold.
func (c *Constraint) IsRequired() bool { return c.strength.IsRequired() }

// IsConstant reports whether the constraint has no source attribute.
func (c *Constraint) IsConstant() bool { return c.sourceAttr == AttributeNone }

// IsAttached reports whether the constraint is registered with a solver.
func (c *Constraint) IsAttached() bool { return c.handle != nil }

// refersTo reports whether t is the target or the source of the constraint.
func (c *Constraint) refersTo(t Target) bool {
	if c.target == t {
		return true
	}
	return !c.IsConstant() && c.source == t
}

// String implements fmt.Stringer.
func (c *Constraint) String() string {
	lhs := targetName(c.target) + "." + c.targetAttr.String()
	num := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	var rhs string
	switch {
	case c.IsConstant():
		rhs = num(c.constant)
	default:
		rhs = targetName(c.source) + "." + c.sourceAttr.String()
		if c.multiplier != 1 {
			rhs += " * " + num(c.multiplier)
		}
		switch {
		case c.constant > 0:
			rhs += " + " + num(c.constant)
		case c.constant < 0:
			rhs += " - " + num(-c.constant)
		}
	}
	return fmt.Sprintf("%s %s %s [%s]", lhs, c.relation, rhs, c.strength)
}

// superAnchor names the layout's own variables.
const superAnchor = "super"

func targetName(t Target) string {
	switch t := t.(type) {
	case nil:
		return superAnchor
	case *Guide:
		return t.anchor()
	case Layoutable:
		return t.Name()
	default:
		return fmt.Sprintf("%T", t)
	}
}
