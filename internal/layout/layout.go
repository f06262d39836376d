package layout

import (
	"slices"

	"github.com/grindlemire/go-constraint/internal/debug"
	"github.com/grindlemire/go-constraint/internal/solver"
)

// layoutChild is a placed element plus the variables bound for it.
type layoutChild struct {
	widget Layoutable
	bound  boundAttributes
}

// Layout places children and guides by solving a system of linear
// constraints. It owns the solver; guides and constraints only borrow it.
//
// A Layout is not safe for concurrent use.
type Layout struct {
	solver    *solver.Solver
	direction TextDirection

	// bound holds the layout's own ("super") variables.
	bound       boundAttributes
	children    []*layoutChild
	guides      []*Guide
	constraints []*Constraint

	dirty bool
}

// Option configures a Layout.
type Option func(*Layout)

// WithDirection sets the text direction used to resolve Start and End.
func WithDirection(d TextDirection) Option {
	return func(l *Layout) {
		l.direction = d
	}
}

// New creates an unrooted layout. It has no solver until Root is called.
func New(opts ...Option) *Layout {
	l := &Layout{
		bound: make(boundAttributes),
		dirty: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Solver returns the solver, or nil while the layout is not rooted.
func (l *Layout) Solver() *solver.Solver {
	return l.solver
}

// Direction returns the layout's text direction.
func (l *Layout) Direction() TextDirection {
	return l.direction
}

// IsRooted reports whether the layout has a solver.
func (l *Layout) IsRooted() bool {
	return l.solver != nil
}

// Root gives the layout a solver and registers every constraint and guide
// with it. A nil s creates a private solver. Rooting with a different solver
// unroots first.
func (l *Layout) Root(s *solver.Solver) {
	if l.solver != nil {
		if l.solver == s {
			return
		}
		l.Unroot()
	}
	if s == nil {
		s = solver.New()
	}
	l.solver = s

	for _, c := range l.constraints {
		if err := l.attachConstraint(c); err != nil {
			debug.Warn("layout: constraint rejected on root", "constraint", c.String(), "error", err)
		}
	}
	for _, g := range l.guides {
		g.update()
	}
	l.markDirty()
}

// Unroot removes everything the layout registered with its solver and
// forgets it. Guides stay attached and resync on the next Root.
func (l *Layout) Unroot() {
	if l.solver == nil {
		return
	}
	for _, c := range l.constraints {
		l.detachConstraint(c)
	}
	for _, g := range l.guides {
		g.detach()
		g.attach(l)
	}
	for _, ch := range l.children {
		ch.bound.release(l.solver)
	}
	l.bound.release(l.solver)
	l.solver = nil
	l.dirty = true
}

func (l *Layout) markDirty() {
	l.dirty = true
}

// NeedsAllocation reports whether anything changed since the last Allocate.
func (l *Layout) NeedsAllocation() bool {
	if l.dirty {
		return true
	}
	for _, ch := range l.children {
		if ch.widget.IsDirty() {
			return true
		}
	}
	return false
}

// AddChild appends a child. Adding a child twice is a no-op.
func (l *Layout) AddChild(w Layoutable) {
	if w == nil {
		panic("layout: nil child in AddChild")
	}
	if l.child(w) != nil {
		return
	}
	l.children = append(l.children, &layoutChild{widget: w, bound: make(boundAttributes)})
	l.markDirty()
}

// RemoveChild removes a child and every constraint that refers to it.
// It returns false if w is not a child.
func (l *Layout) RemoveChild(w Layoutable) bool {
	i := slices.IndexFunc(l.children, func(ch *layoutChild) bool { return ch.widget == w })
	if i < 0 {
		return false
	}
	l.removeReferencing(w)
	l.children[i].bound.release(l.solver)
	l.children = slices.Delete(l.children, i, i+1)
	l.markDirty()
	return true
}

// Children returns the children in insertion order.
func (l *Layout) Children() []Layoutable {
	out := make([]Layoutable, len(l.children))
	for i, ch := range l.children {
		out[i] = ch.widget
	}
	return out
}

// Child returns the child with the given name, or nil.
func (l *Layout) Child(name string) Layoutable {
	for _, ch := range l.children {
		if ch.widget.Name() == name {
			return ch.widget
		}
	}
	return nil
}

func (l *Layout) child(w Layoutable) *layoutChild {
	for _, ch := range l.children {
		if ch.widget == w {
			return ch
		}
	}
	return nil
}

// AddGuide attaches g and, when the layout is rooted, registers its six
// size constraints.
func (l *Layout) AddGuide(g *Guide) error {
	if g == nil {
		panic("layout: nil guide in AddGuide")
	}
	switch g.layout {
	case l:
		return nil
	case nil:
	default:
		return ErrGuideInUse
	}
	l.guides = append(l.guides, g)
	g.attach(l)
	g.update()
	l.markDirty()
	return nil
}

// RemoveGuide detaches g and drops every constraint that refers to it.
// It returns false if g is not a guide of the layout.
func (l *Layout) RemoveGuide(g *Guide) bool {
	i := slices.Index(l.guides, g)
	if i < 0 {
		return false
	}
	l.removeReferencing(g)
	g.detach()
	l.guides = slices.Delete(l.guides, i, i+1)
	l.markDirty()
	return true
}

// Guides returns the guides in insertion order.
func (l *Layout) Guides() []*Guide {
	return slices.Clone(l.guides)
}

// Guide returns the guide with the given name, or nil.
func (l *Layout) Guide(name string) *Guide {
	for _, g := range l.guides {
		if g.name == name {
			return g
		}
	}
	return nil
}

// AddConstraint adds c to the layout and, when rooted, to the solver. Both
// ends of c must already be part of the layout.
func (l *Layout) AddConstraint(c *Constraint) error {
	if c == nil {
		panic("layout: nil constraint in AddConstraint")
	}
	switch c.layout {
	case l:
		return nil
	case nil:
	default:
		return ErrConstraintInUse
	}
	if c.targetAttr == AttributeNone {
		return ErrNoAttribute
	}
	if err := l.checkTarget(c.target); err != nil {
		return err
	}
	if !c.IsConstant() {
		if err := l.checkTarget(c.source); err != nil {
			return err
		}
	}
	if err := l.attachConstraint(c); err != nil {
		return err
	}
	c.layout = l
	l.constraints = append(l.constraints, c)
	l.markDirty()
	return nil
}

// RemoveConstraint removes c from the layout and the solver.
// It returns false if c does not belong to the layout.
func (l *Layout) RemoveConstraint(c *Constraint) bool {
	i := slices.Index(l.constraints, c)
	if i < 0 {
		return false
	}
	l.detachConstraint(c)
	c.layout = nil
	l.constraints = slices.Delete(l.constraints, i, i+1)
	l.markDirty()
	return true
}

// RemoveAllConstraints removes every constraint added with AddConstraint.
// Guide size constraints are not affected.
func (l *Layout) RemoveAllConstraints() {
	for _, c := range l.constraints {
		l.detachConstraint(c)
		c.layout = nil
	}
	l.constraints = nil
	l.markDirty()
}

// Constraints returns the constraints in insertion order.
func (l *Layout) Constraints() []*Constraint {
	return slices.Clone(l.constraints)
}

func (l *Layout) removeReferencing(t Target) {
	kept := l.constraints[:0]
	for _, c := range l.constraints {
		if c.refersTo(t) {
			l.detachConstraint(c)
			c.layout = nil
			continue
		}
		kept = append(kept, c)
	}
	clear(l.constraints[len(kept):])
	l.constraints = kept
}

func (l *Layout) checkTarget(t Target) error {
	switch t := t.(type) {
	case nil:
		return nil
	case *Guide:
		if t.layout != l {
			return ErrUnknownTarget
		}
	case Layoutable:
		if l.child(t) == nil {
			return ErrUnknownTarget
		}
	default:
		return ErrUnknownTarget
	}
	return nil
}

// variable binds attr of t in the layout's solver.
func (l *Layout) variable(t Target, attr Attribute) *solver.Variable {
	attr = attr.resolve(l.direction)
	switch t := t.(type) {
	case nil:
		return bindAttribute(l.solver, attr, superAnchor, true, l.bound)
	case *Guide:
		return bindAttribute(l.solver, attr, t.anchor(), false, t.bound)
	case Layoutable:
		return bindAttribute(l.solver, attr, t.Name(), true, l.child(t).bound)
	}
	panic("layout: unsupported constraint target")
}

// attachConstraint registers c with the solver. Without a solver it does
// nothing; c is registered on the next Root.
func (l *Layout) attachConstraint(c *Constraint) error {
	if l.solver == nil {
		return nil
	}
	v := l.variable(c.target, c.targetAttr)
	expr := solver.Constant(c.constant)
	if !c.IsConstant() {
		expr = expr.Plus(l.variable(c.source, c.sourceAttr), c.multiplier)
	}
	h, err := l.solver.AddConstraint(v, c.relation, expr, c.strength)
	if err != nil {
		return err
	}
	c.handle = h
	return nil
}

func (l *Layout) detachConstraint(c *Constraint) {
	if c.handle == nil {
		return
	}
	if l.solver != nil {
		if err := l.solver.RemoveConstraint(c.handle); err != nil {
			debug.Log("layout: stale constraint %s: %v", c, err)
		}
	}
	c.handle = nil
}

// scratch collects temporary solver constraints for one measure or
// allocate pass.
type scratch struct {
	s       *solver.Solver
	handles []*solver.Constraint
}

func (t *scratch) add(v *solver.Variable, rel solver.Relation, value float64, strength solver.Strength) {
	c, err := t.s.AddConstraint(v, rel, solver.Constant(value), strength)
	if err != nil {
		debug.Warn("layout: temporary constraint rejected",
			"variable", v.Name(), "relation", rel.String(), "value", value, "error", err)
		return
	}
	t.handles = append(t.handles, c)
}

func (t *scratch) release() {
	for _, c := range t.handles {
		if err := t.s.RemoveConstraint(c); err != nil {
			debug.Log("layout: releasing %s: %v", c, err)
		}
	}
	t.handles = nil
}

// pinChildren bounds every child by its minimum size and, when natural is
// set, prefers its natural size.
func (l *Layout) pinChildren(t *scratch, natural bool) {
	for _, ch := range l.children {
		minimum, nat := ch.widget.PreferredSize()
		w := l.variable(ch.widget, Width)
		h := l.variable(ch.widget, Height)
		if natural {
			t.add(w, solver.Equal, float64(nat.Width), solver.Medium)
			t.add(h, solver.Equal, float64(nat.Height), solver.Medium)
			continue
		}
		t.add(w, solver.GreaterOrEqual, float64(minimum.Width), solver.Required)
		t.add(h, solver.GreaterOrEqual, float64(minimum.Height), solver.Required)
	}
}

// Measure returns the minimum and natural size of the layout along o. A
// non-negative forSize fixes the opposite dimension. An unrooted layout
// measures as zero.
//
// The minimum pulls the layout size towards zero with Strong strength, so
// only required constraints hold it open. The natural size adds every
// child's natural size at Medium and pulls with Weak strength.
func (l *Layout) Measure(o Orientation, forSize int) (minimum, natural int) {
	if l.solver == nil {
		debug.Log("layout: measure on unrooted layout")
		return 0, 0
	}
	sizeAttr, oppositeAttr := Width, Height
	if o == Vertical {
		sizeAttr, oppositeAttr = Height, Width
	}
	size := l.variable(nil, sizeAttr)

	t := &scratch{s: l.solver}
	defer t.release()

	l.pinChildren(t, false)
	if forSize >= 0 {
		t.add(l.variable(nil, oppositeAttr), solver.Equal, float64(forSize), solver.Required)
	}

	minimum = l.measurePass(size, solver.Strong)
	l.pinChildren(t, true)
	natural = l.measurePass(size, solver.Weak)
	return minimum, max(minimum, natural)
}

func (l *Layout) measurePass(size *solver.Variable, strength solver.Strength) int {
	if err := l.solver.AddEditVariable(size, strength); err != nil {
		debug.Warn("layout: measure edit rejected", "variable", size.Name(), "error", err)
		return 0
	}
	defer func() {
		if err := l.solver.RemoveEditVariable(size); err != nil {
			debug.Log("layout: releasing measure edit: %v", err)
		}
	}()
	if err := l.solver.SuggestValue(size, 0); err != nil {
		debug.Warn("layout: measure suggestion failed", "variable", size.Name(), "error", err)
	}
	l.solver.UpdateVariables()
	return max(0, roundCell(size.Value()))
}

// Allocate solves the layout for a width x height box at the origin and
// stores the resulting rectangles in every child and guide. An unrooted
// layout is rooted with a private solver first.
func (l *Layout) Allocate(width, height int) {
	if l.solver == nil {
		l.Root(nil)
	}

	t := &scratch{s: l.solver}
	defer t.release()

	t.add(l.variable(nil, Left), solver.Equal, 0, solver.Required)
	t.add(l.variable(nil, Top), solver.Equal, 0, solver.Required)
	t.add(l.variable(nil, Width), solver.Equal, float64(width), solver.Required)
	t.add(l.variable(nil, Height), solver.Equal, float64(height), solver.Required)
	l.pinChildren(t, false)
	l.pinChildren(t, true)

	l.solver.UpdateVariables()

	for _, ch := range l.children {
		ch.widget.SetAllocation(rectFromSolution(
			l.variable(ch.widget, Left).Value(),
			l.variable(ch.widget, Top).Value(),
			l.variable(ch.widget, Width).Value(),
			l.variable(ch.widget, Height).Value(),
		))
		ch.widget.SetDirty(false)
	}
	for _, g := range l.guides {
		g.allocation = g.solvedRect()
	}
	l.dirty = false

	debug.Log("layout: allocated %dx%d, %d children, %d guides, %d constraints",
		width, height, len(l.children), len(l.guides), l.solver.NumConstraints())
}
