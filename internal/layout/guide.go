package layout

import (
	"fmt"
	"math"

	"github.com/grindlemire/go-constraint/internal/debug"
	"github.com/grindlemire/go-constraint/internal/solver"
)

// Unbounded is the largest size a guide accepts and the default maximum.
const Unbounded = math.MaxInt32

// guideSlot indexes the parallel value and constraint tables of a Guide.
type guideSlot uint8

const (
	slotMinWidth guideSlot = iota
	slotMinHeight
	slotNatWidth
	slotNatHeight
	slotMaxWidth
	slotMaxHeight
	slotCount
)

// guideSlots fixes, per slot, which attribute is constrained and how.
// Minimum and maximum are hard bounds; the natural size is a preference the
// solver may trade against other constraints.
var guideSlots = [slotCount]struct {
	attr     Attribute
	relation solver.Relation
	strength solver.Strength
}{
	slotMinWidth:  {Width, solver.GreaterOrEqual, solver.Required},
	slotMinHeight: {Height, solver.GreaterOrEqual, solver.Required},
	slotNatWidth:  {Width, solver.Equal, solver.Medium},
	slotNatHeight: {Height, solver.Equal, solver.Medium},
	slotMaxWidth:  {Width, solver.LessOrEqual, solver.Required},
	slotMaxHeight: {Height, solver.LessOrEqual, solver.Required},
}

// GuideProperty identifies an observable property of a Guide.
// The size properties share their ordering with the guide's slots.
type GuideProperty uint8

const (
	PropMinWidth GuideProperty = iota
	PropMinHeight
	PropNatWidth
	PropNatHeight
	PropMaxWidth
	PropMaxHeight
	PropName
)

var guidePropertyNames = [...]string{
	PropMinWidth:  "min-width",
	PropMinHeight: "min-height",
	PropNatWidth:  "nat-width",
	PropNatHeight: "nat-height",
	PropMaxWidth:  "max-width",
	PropMaxHeight: "max-height",
	PropName:      "name",
}

// String implements fmt.Stringer.
func (p GuideProperty) String() string {
	if int(p) < len(guidePropertyNames) {
		return guidePropertyNames[p]
	}
	return fmt.Sprintf("property(%d)", p)
}

// Unbind is a handle to remove an observer.
type Unbind func()

type guideObserver struct {
	fn     func(GuideProperty)
	active bool
}

// Guide is an invisible participant in a constraint layout. It has no
// content; it only contributes minimum, natural and maximum sizes, and other
// constraints can position widgets relative to it.
//
// A Guide must be used from the goroutine that owns its Layout.
type Guide struct {
	name   string
	values [slotCount]int

	// layout is the hosting layout; it does not own it.
	layout      *Layout
	// key prefixes the solver variable names while attached.
	key         string
	bound       boundAttributes
	constraints [slotCount]*solver.Constraint

	allocation Rect
	observers  []*guideObserver
}

// GuideOption configures a Guide at construction.
type GuideOption func(*Guide)

// WithName sets the guide's debug name.
func WithName(name string) GuideOption {
	return func(g *Guide) {
		g.name = name
	}
}

// WithMinSize sets the minimum size.
func WithMinSize(width, height int) GuideOption {
	return func(g *Guide) {
		g.storePair(slotMinWidth, slotMinHeight, width, height)
	}
}

// WithNatSize sets the natural size.
func WithNatSize(width, height int) GuideOption {
	return func(g *Guide) {
		g.storePair(slotNatWidth, slotNatHeight, width, height)
	}
}

// WithMaxSize sets the maximum size.
func WithMaxSize(width, height int) GuideOption {
	return func(g *Guide) {
		g.storePair(slotMaxWidth, slotMaxHeight, width, height)
	}
}

// NewGuide creates a detached guide with zero minimum and natural sizes and
// an Unbounded maximum.
func NewGuide(opts ...GuideOption) *Guide {
	g := &Guide{bound: make(boundAttributes)}
	g.values[slotMaxWidth] = Unbounded
	g.values[slotMaxHeight] = Unbounded
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the guide's debug name.
func (g *Guide) Name() string {
	return g.name
}

// SetName changes the guide's debug name.
func (g *Guide) SetName(name string) {
	if g.name == name {
		return
	}
	g.name = name
	g.notify(PropName)
}

// Layout returns the layout hosting the guide, or nil.
func (g *Guide) Layout() *Layout {
	return g.layout
}

// Allocation returns the rectangle computed by the last Layout.Allocate.
func (g *Guide) Allocation() Rect {
	return g.allocation
}

// SetMinSize sets the minimum size. -1 leaves a dimension unchanged.
func (g *Guide) SetMinSize(width, height int) {
	g.setPair(slotMinWidth, slotMinHeight, width, height)
}

// MinSize returns the minimum size.
func (g *Guide) MinSize() (width, height int) {
	return g.values[slotMinWidth], g.values[slotMinHeight]
}

// SetNatSize sets the natural size. -1 leaves a dimension unchanged.
func (g *Guide) SetNatSize(width, height int) {
	g.setPair(slotNatWidth, slotNatHeight, width, height)
}

// NatSize returns the natural size.
func (g *Guide) NatSize() (width, height int) {
	return g.values[slotNatWidth], g.values[slotNatHeight]
}

// SetMaxSize sets the maximum size. -1 leaves a dimension unchanged.
func (g *Guide) SetMaxSize(width, height int) {
	g.setPair(slotMaxWidth, slotMaxHeight, width, height)
}

// MaxSize returns the maximum size.
func (g *Guide) MaxSize() (width, height int) {
	return g.values[slotMaxWidth], g.values[slotMaxHeight]
}

// OnNotify registers fn to be called after a property changes. Size
// changes are reported after the value is stored and before its constraint
// is rebuilt.
func (g *Guide) OnNotify(fn func(GuideProperty)) Unbind {
	o := &guideObserver{fn: fn, active: true}
	g.observers = append(g.observers, o)
	return func() {
		o.active = false
		kept := g.observers[:0]
		for _, other := range g.observers {
			if other.active {
				kept = append(kept, other)
			}
		}
		clear(g.observers[len(kept):])
		g.observers = kept
	}
}

func (g *Guide) notify(p GuideProperty) {
	observers := make([]*guideObserver, len(g.observers))
	copy(observers, g.observers)
	for _, o := range observers {
		if o.active {
			o.fn(p)
		}
	}
}

func checkGuideSize(dimension string, v int) {
	if v < -1 || v > Unbounded {
		panic(fmt.Sprintf("layout: invalid guide %s %d", dimension, v))
	}
}

// storePair writes a width/height pair without notifying or syncing.
func (g *Guide) storePair(ws, hs guideSlot, width, height int) {
	checkGuideSize("width", width)
	checkGuideSize("height", height)
	if width != -1 {
		g.values[ws] = width
	}
	if height != -1 {
		g.values[hs] = height
	}
}

// setPair stores the pair, then notifies and resynchronizes each slot whose
// value changed.
func (g *Guide) setPair(ws, hs guideSlot, width, height int) {
	checkGuideSize("width", width)
	checkGuideSize("height", height)

	var changed [2]guideSlot
	n := 0
	if width != -1 && g.values[ws] != width {
		g.values[ws] = width
		changed[n] = ws
		n++
	}
	if height != -1 && g.values[hs] != height {
		g.values[hs] = height
		changed[n] = hs
		n++
	}

	for _, slot := range changed[:n] {
		g.notify(GuideProperty(slot))
		g.updateConstraint(slot)
	}
}

// anchor is the prefix of the guide's solver variable names. It is fixed at
// attach so a rename does not split one guide's variables across two names.
func (g *Guide) anchor() string {
	if g.key != "" {
		return g.key
	}
	if g.name == "" {
		return "guide"
	}
	return g.name
}

// solver returns the solver of the hosting layout, or nil.
func (g *Guide) solver() *solver.Solver {
	if g.layout == nil {
		return nil
	}
	return g.layout.Solver()
}

// attach records l as the hosting layout. Constraints are not pushed until
// update is called.
func (g *Guide) attach(l *Layout) {
	if l == nil {
		panic("layout: nil layout in Guide.attach")
	}
	g.layout = l
	g.key = g.name
	if g.key == "" {
		g.key = "guide"
	}
}

// update rebuilds all six slot constraints.
func (g *Guide) update() {
	for slot := range slotCount {
		g.updateConstraint(slot)
	}
}

// updateConstraint replaces the constraint of one slot: remove the old
// handle, then add one reflecting the stored value. Without a layout or a
// solver it does nothing.
//
// A slot the solver rejected stays empty until a later change lets it in, so
// every successful update retries the other empty slots.
func (g *Guide) updateConstraint(slot guideSlot) {
	s := g.solver()
	if s == nil {
		return
	}

	if old := g.constraints[slot]; old != nil {
		if err := s.RemoveConstraint(old); err != nil {
			debug.Log("guide %s: stale %s constraint: %v", g.anchor(), GuideProperty(slot), err)
		}
		g.constraints[slot] = nil
	}

	if !g.addConstraint(s, slot) {
		return
	}
	for other := range slotCount {
		if other != slot && g.constraints[other] == nil {
			g.addConstraint(s, other)
		}
	}
	g.layout.markDirty()
}

// addConstraint registers the constraint for an empty slot and reports
// whether the solver accepted it.
func (g *Guide) addConstraint(s *solver.Solver, slot guideSlot) bool {
	def := guideSlots[slot]
	v := bindAttribute(s, def.attr, g.anchor(), false, g.bound)
	c, err := s.AddConstraint(v, def.relation, solver.Constant(float64(g.values[slot])), def.strength)
	if err != nil {
		debug.Warn("guide constraint rejected",
			"guide", g.anchor(), "property", GuideProperty(slot).String(), "error", err)
		return false
	}
	g.constraints[slot] = c
	return true
}

// detach removes every slot constraint, releases the attribute cache so a
// later attach binds fresh variables, and forgets the layout. Calling it on a
// detached guide is harmless.
func (g *Guide) detach() {
	s := g.solver()
	for slot, c := range g.constraints {
		if c == nil {
			continue
		}
		if s != nil {
			if err := s.RemoveConstraint(c); err != nil {
				debug.Log("guide %s: stale %s constraint: %v", g.anchor(), GuideProperty(slot), err)
			}
		}
		g.constraints[slot] = nil
	}
	g.bound.release(s)
	if g.layout != nil {
		g.layout.markDirty()
	}
	g.layout = nil
	g.key = ""
}

// solvedRect reads the guide's position and size from the solver variables
// bound so far. Unbound attributes read as zero.
func (g *Guide) solvedRect() Rect {
	value := func(a Attribute) float64 {
		if v := g.bound.variable(a); v != nil {
			return v.Value()
		}
		return 0
	}
	return rectFromSolution(value(Left), value(Top), value(Width), value(Height))
}
