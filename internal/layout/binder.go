package layout

import (
	"github.com/grindlemire/go-constraint/internal/debug"
	"github.com/grindlemire/go-constraint/internal/solver"
)

// binding is one cached attribute variable plus the helper constraints that
// define it in terms of other attributes of the same anchor.
type binding struct {
	variable *solver.Variable
	derived  []*solver.Constraint
}

// boundAttributes caches the solver variables of one anchor, keyed by
// attribute. The owner of the cache owns the entries.
type boundAttributes map[Attribute]*binding

// variable returns the cached variable for attr, or nil.
func (c boundAttributes) variable(attr Attribute) *solver.Variable {
	if b, ok := c[attr]; ok {
		return b.variable
	}
	return nil
}

// release removes the helper constraints from s and empties the cache.
// A nil s skips the removal; the solver is assumed gone.
func (c boundAttributes) release(s *solver.Solver) {
	for attr, b := range c {
		if s != nil {
			for _, d := range b.derived {
				if err := s.RemoveConstraint(d); err != nil {
					debug.Log("binder: dropping %s: %v", d, err)
				}
			}
		}
		delete(c, attr)
	}
}

// bindAttribute returns the solver variable for attr on the named anchor,
// creating and caching it on first use. Sized anchors (widgets and the
// layout itself) cannot have negative width or height. Start and End must be
// resolved by the caller.
func bindAttribute(s *solver.Solver, attr Attribute, anchor string, sized bool, cache boundAttributes) *solver.Variable {
	if v := cache.variable(attr); v != nil {
		return v
	}

	v := solver.NewVariable(anchor + "." + attr.String())
	b := &binding{variable: v}
	cache[attr] = b

	bind := func(a Attribute) solver.Term {
		return solver.Term{Variable: bindAttribute(s, a, anchor, sized, cache), Coefficient: 1}
	}
	half := func(t solver.Term) solver.Term {
		t.Coefficient = 0.5
		return t
	}

	var (
		relation = solver.Equal
		expr     solver.Expression
		derived  = true
	)
	switch attr {
	case Right:
		expr = solver.NewExpression(0, bind(Left), bind(Width))
	case Bottom:
		expr = solver.NewExpression(0, bind(Top), bind(Height))
	case CenterX:
		expr = solver.NewExpression(0, bind(Left), half(bind(Width)))
	case CenterY:
		expr = solver.NewExpression(0, bind(Top), half(bind(Height)))
	case Width, Height:
		relation = solver.GreaterOrEqual
		expr = solver.Constant(0)
		derived = sized
	default:
		derived = false
	}

	if derived {
		c, err := s.AddConstraint(v, relation, expr, solver.Required)
		if err != nil {
			debug.Warn("binder: helper constraint rejected", "variable", v.Name(), "error", err)
		} else {
			b.derived = append(b.derived, c)
		}
	}
	return v
}
