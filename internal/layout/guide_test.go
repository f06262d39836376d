package layout

import (
	"testing"

	"github.com/grindlemire/go-constraint/internal/solver"
)

func rootedLayout(t *testing.T) *Layout {
	t.Helper()
	l := New()
	l.Root(nil)
	return l
}

func sizedGuide() *Guide {
	return NewGuide(
		WithName("g"),
		WithMinSize(10, 20),
		WithNatSize(50, 60),
		WithMaxSize(100, 200),
	)
}

func TestNewGuide_Defaults(t *testing.T) {
	g := NewGuide()

	if w, h := g.MinSize(); w != 0 || h != 0 {
		t.Errorf("MinSize() = (%d, %d), want (0, 0)", w, h)
	}
	if w, h := g.NatSize(); w != 0 || h != 0 {
		t.Errorf("NatSize() = (%d, %d), want (0, 0)", w, h)
	}
	if w, h := g.MaxSize(); w != Unbounded || h != Unbounded {
		t.Errorf("MaxSize() = (%d, %d), want (Unbounded, Unbounded)", w, h)
	}
	if g.Layout() != nil {
		t.Error("new guide should be detached")
	}
	for slot, c := range g.constraints {
		if c != nil {
			t.Errorf("constraints[%d] = %v, want nil", slot, c)
		}
	}
}

func TestGuide_AttachUpdateRegistersSixConstraints(t *testing.T) {
	l := rootedLayout(t)
	s := l.Solver()
	before := s.NumConstraints()

	g := sizedGuide()
	g.attach(l)
	if got := s.NumConstraints(); got != before {
		t.Fatalf("attach alone registered %d constraints, want 0", got-before)
	}
	g.update()

	if got := s.NumConstraints(); got != before+6 {
		t.Fatalf("NumConstraints() after update = %d, want %d", got, before+6)
	}

	type want struct {
		attr     Attribute
		relation solver.Relation
		strength solver.Strength
		value    float64
	}
	wants := [slotCount]want{
		slotMinWidth:  {Width, solver.GreaterOrEqual, solver.Required, 10},
		slotMinHeight: {Height, solver.GreaterOrEqual, solver.Required, 20},
		slotNatWidth:  {Width, solver.Equal, solver.Medium, 50},
		slotNatHeight: {Height, solver.Equal, solver.Medium, 60},
		slotMaxWidth:  {Width, solver.LessOrEqual, solver.Required, 100},
		slotMaxHeight: {Height, solver.LessOrEqual, solver.Required, 200},
	}
	for slot, w := range wants {
		c := g.constraints[slot]
		if c == nil {
			t.Errorf("slot %s has no constraint", GuideProperty(slot))
			continue
		}
		if !s.HasConstraint(c) {
			t.Errorf("slot %s constraint not registered with the solver", GuideProperty(slot))
		}
		if c.Variable() != g.bound.variable(w.attr) {
			t.Errorf("slot %s constrains %s, want the guide's %s variable", GuideProperty(slot), c.Variable(), w.attr)
		}
		if c.Relation() != w.relation {
			t.Errorf("slot %s relation = %s, want %s", GuideProperty(slot), c.Relation(), w.relation)
		}
		if c.Strength() != w.strength {
			t.Errorf("slot %s strength = %s, want %s", GuideProperty(slot), c.Strength(), w.strength)
		}
		if e := c.Expression(); !e.IsConstant() || e.Constant != w.value {
			t.Errorf("slot %s expression = %s, want %v", GuideProperty(slot), e, w.value)
		}
	}

	if len(g.bound) != 2 {
		t.Errorf("len(bound) = %d, want 2", len(g.bound))
	}

	g.detach()
	if got := s.NumConstraints(); got != before {
		t.Errorf("NumConstraints() after detach = %d, want %d", got, before)
	}
}

func TestGuide_DetachIsIdempotent(t *testing.T) {
	l := rootedLayout(t)
	g := sizedGuide()
	g.attach(l)
	g.update()

	for i := 0; i < 2; i++ {
		g.detach()

		if g.Layout() != nil {
			t.Errorf("detach #%d: Layout() = %p, want nil", i+1, g.Layout())
		}
		for slot, c := range g.constraints {
			if c != nil {
				t.Errorf("detach #%d: constraints[%d] = %v, want nil", i+1, slot, c)
			}
		}
		if len(g.bound) != 0 {
			t.Errorf("detach #%d: len(bound) = %d, want 0", i+1, len(g.bound))
		}
		if got := l.Solver().NumConstraints(); got != 0 {
			t.Errorf("detach #%d: NumConstraints() = %d, want 0", i+1, got)
		}
	}

	if w, h := g.NatSize(); w != 50 || h != 60 {
		t.Errorf("detach lost values: NatSize() = (%d, %d), want (50, 60)", w, h)
	}
}

func TestGuide_DetachWithoutLayout(t *testing.T) {
	g := NewGuide()
	g.detach()

	if g.Layout() != nil {
		t.Error("detached guide gained a layout")
	}
}

func TestGuide_SetterTouchesOnlyChangedSlots(t *testing.T) {
	type tc struct {
		set     func(g *Guide)
		changed []guideSlot
		wantMin [2]int
		wantNat [2]int
		wantMax [2]int
	}

	tests := map[string]tc{
		"min width only": {
			set:     func(g *Guide) { g.SetMinSize(30, 20) },
			changed: []guideSlot{slotMinWidth},
			wantMin: [2]int{30, 20},
			wantNat: [2]int{50, 60},
			wantMax: [2]int{100, 200},
		},
		"sentinel keeps width": {
			set:     func(g *Guide) { g.SetMinSize(-1, 5) },
			changed: []guideSlot{slotMinHeight},
			wantMin: [2]int{10, 5},
			wantNat: [2]int{50, 60},
			wantMax: [2]int{100, 200},
		},
		"natural pair": {
			set:     func(g *Guide) { g.SetNatSize(40, 70) },
			changed: []guideSlot{slotNatWidth, slotNatHeight},
			wantMin: [2]int{10, 20},
			wantNat: [2]int{40, 70},
			wantMax: [2]int{100, 200},
		},
		"max height only": {
			set:     func(g *Guide) { g.SetMaxSize(-1, 150) },
			changed: []guideSlot{slotMaxHeight},
			wantMin: [2]int{10, 20},
			wantNat: [2]int{50, 60},
			wantMax: [2]int{100, 150},
		},
		"both sentinels": {
			set:     func(g *Guide) { g.SetMaxSize(-1, -1) },
			wantMin: [2]int{10, 20},
			wantNat: [2]int{50, 60},
			wantMax: [2]int{100, 200},
		},
		"unchanged value": {
			set:     func(g *Guide) { g.SetNatSize(50, 60) },
			wantMin: [2]int{10, 20},
			wantNat: [2]int{50, 60},
			wantMax: [2]int{100, 200},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := rootedLayout(t)
			g := sizedGuide()
			if err := l.AddGuide(g); err != nil {
				t.Fatalf("AddGuide() error = %v", err)
			}
			before := g.constraints
			width := g.bound.variable(Width)
			height := g.bound.variable(Height)

			tt.set(g)

			changed := make(map[guideSlot]bool)
			for _, slot := range tt.changed {
				changed[slot] = true
			}
			for slot := range slotCount {
				same := g.constraints[slot] == before[slot]
				if changed[slot] && same {
					t.Errorf("slot %s constraint was not rebuilt", GuideProperty(slot))
				}
				if !changed[slot] && !same {
					t.Errorf("slot %s constraint was rebuilt", GuideProperty(slot))
				}
				if before[slot] != nil && !same && l.Solver().HasConstraint(before[slot]) {
					t.Errorf("slot %s stale constraint still registered", GuideProperty(slot))
				}
			}
			if g.bound.variable(Width) != width {
				t.Error("Width variable was replaced")
			}
			if g.bound.variable(Height) != height {
				t.Error("Height variable was replaced")
			}
			if got := l.Solver().NumConstraints(); got != 6 {
				t.Errorf("NumConstraints() = %d, want 6", got)
			}

			if w, h := g.MinSize(); [2]int{w, h} != tt.wantMin {
				t.Errorf("MinSize() = (%d, %d), want %v", w, h, tt.wantMin)
			}
			if w, h := g.NatSize(); [2]int{w, h} != tt.wantNat {
				t.Errorf("NatSize() = (%d, %d), want %v", w, h, tt.wantNat)
			}
			if w, h := g.MaxSize(); [2]int{w, h} != tt.wantMax {
				t.Errorf("MaxSize() = (%d, %d), want %v", w, h, tt.wantMax)
			}
		})
	}
}

func TestGuide_DefaultBoundsConstraints(t *testing.T) {
	l := rootedLayout(t)
	g := NewGuide()
	g.attach(l)
	g.update()

	type want struct {
		relation solver.Relation
		value    float64
	}
	wants := map[guideSlot]want{
		slotMinWidth:  {solver.GreaterOrEqual, 0},
		slotMinHeight: {solver.GreaterOrEqual, 0},
		slotMaxWidth:  {solver.LessOrEqual, Unbounded},
		slotMaxHeight: {solver.LessOrEqual, Unbounded},
	}
	for slot, w := range wants {
		c := g.constraints[slot]
		if c == nil {
			t.Fatalf("slot %s has no constraint", GuideProperty(slot))
		}
		if c.Relation() != w.relation || c.Expression().Constant != w.value {
			t.Errorf("slot %s = %s, want %s %v", GuideProperty(slot), c, w.relation, w.value)
		}
	}

	l.Solver().UpdateVariables()
	if got := g.bound.variable(Width).Value(); got != 0 {
		t.Errorf("width = %v, want 0", got)
	}
}

func TestGuide_ReattachBindsFreshVariables(t *testing.T) {
	l := rootedLayout(t)
	g := sizedGuide()

	g.attach(l)
	g.update()
	firstWidth := g.bound.variable(Width)
	firstHeight := g.bound.variable(Height)
	g.detach()

	g.attach(l)
	g.update()

	if g.bound.variable(Width) == firstWidth {
		t.Error("re-attach reused the Width variable")
	}
	if g.bound.variable(Height) == firstHeight {
		t.Error("re-attach reused the Height variable")
	}
	if c := g.constraints[slotMinWidth]; c.Variable() != g.bound.variable(Width) {
		t.Errorf("min-width constrains %s, want the fresh variable", c.Variable())
	}
	if got := l.Solver().NumConstraints(); got != 6 {
		t.Errorf("NumConstraints() = %d, want 6", got)
	}
}

func TestGuide_NoSolverIsNoOp(t *testing.T) {
	type tc struct {
		layout func() *Layout
	}

	tests := map[string]tc{
		"detached": {layout: func() *Layout { return nil }},
		"unrooted": {layout: func() *Layout { return New() }},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := sizedGuide()
			if l := tt.layout(); l != nil {
				if err := l.AddGuide(g); err != nil {
					t.Fatalf("AddGuide() error = %v", err)
				}
			}
			g.SetMinSize(11, 21)
			g.update()

			for slot, c := range g.constraints {
				if c != nil {
					t.Errorf("constraints[%d] = %v, want nil", slot, c)
				}
			}
			if len(g.bound) != 0 {
				t.Errorf("len(bound) = %d, want 0", len(g.bound))
			}
			if w, h := g.MinSize(); w != 11 || h != 21 {
				t.Errorf("MinSize() = (%d, %d), want (11, 21)", w, h)
			}
		})
	}
}

func TestGuide_RootRegistersPendingGuide(t *testing.T) {
	l := New()
	g := sizedGuide()
	if err := l.AddGuide(g); err != nil {
		t.Fatalf("AddGuide() error = %v", err)
	}

	l.Root(nil)
	if got := l.Solver().NumConstraints(); got != 6 {
		t.Fatalf("NumConstraints() after Root = %d, want 6", got)
	}

	l.Unroot()
	if g.Layout() != l {
		t.Error("Unroot should keep the guide attached")
	}
	for slot, c := range g.constraints {
		if c != nil {
			t.Errorf("constraints[%d] = %v after Unroot, want nil", slot, c)
		}
	}

	s := solver.New()
	l.Root(s)
	if got := s.NumConstraints(); got != 6 {
		t.Errorf("NumConstraints() after re-Root = %d, want 6", got)
	}
}

func TestGuide_RejectedRequiredSlot(t *testing.T) {
	l := rootedLayout(t)
	g := sizedGuide()
	if err := l.AddGuide(g); err != nil {
		t.Fatalf("AddGuide() error = %v", err)
	}

	// Minimum above maximum cannot be satisfied.
	g.SetMinSize(150, -1)

	if w, _ := g.MinSize(); w != 150 {
		t.Errorf("MinSize() width = %d, want 150", w)
	}
	if c := g.constraints[slotMinWidth]; c != nil {
		t.Errorf("min-width constraint = %v, want nil", c)
	}
	if got := l.Solver().NumConstraints(); got != 5 {
		t.Errorf("NumConstraints() = %d, want 5", got)
	}

	g.SetMinSize(40, -1)
	if c := g.constraints[slotMinWidth]; c == nil || c.Expression().Constant != 40 {
		t.Errorf("min-width constraint = %v, want width >= 40", c)
	}
	if got := l.Solver().NumConstraints(); got != 6 {
		t.Errorf("NumConstraints() = %d, want 6", got)
	}
}

func TestGuide_RejectedSlotRecoversThroughOtherSlot(t *testing.T) {
	l := rootedLayout(t)
	g := NewGuide(WithName("g"), WithMinSize(100, 0), WithNatSize(100, 0))
	if err := l.AddGuide(g); err != nil {
		t.Fatalf("AddGuide() error = %v", err)
	}

	// Maximum below the minimum is rejected.
	g.SetMaxSize(50, -1)
	if c := g.constraints[slotMaxWidth]; c != nil {
		t.Fatalf("max-width constraint = %v, want nil", c)
	}

	// Lowering the minimum resolves the conflict; the maximum comes back.
	g.SetMinSize(10, -1)
	if c := g.constraints[slotMaxWidth]; c == nil || c.Expression().Constant != 50 {
		t.Errorf("max-width constraint = %v, want width <= 50", c)
	}
	if got := l.Solver().NumConstraints(); got != 6 {
		t.Errorf("NumConstraints() = %d, want 6", got)
	}

	g.SetNatSize(80, -1)
	l.Allocate(500, 500)
	if got := g.Allocation().Width; got != 50 {
		t.Errorf("Allocation().Width = %d, want 50", got)
	}
}

func TestGuide_AnchorFixedWhileAttached(t *testing.T) {
	l := rootedLayout(t)
	g := NewGuide(WithName("before"))
	if err := l.AddGuide(g); err != nil {
		t.Fatalf("AddGuide() error = %v", err)
	}

	g.SetName("after")
	g.SetMinSize(5, -1)

	for _, attr := range []Attribute{Width, Height} {
		v := g.bound.variable(attr)
		if v == nil {
			t.Fatalf("%s not bound", attr)
		}
		if want := "before." + attr.String(); v.Name() != want {
			t.Errorf("variable name = %q, want %q", v.Name(), want)
		}
	}

	l.RemoveGuide(g)
	if err := l.AddGuide(g); err != nil {
		t.Fatalf("AddGuide() error = %v", err)
	}
	if v := g.bound.variable(Width); v == nil || v.Name() != "after.width" {
		t.Errorf("variable after re-attach = %v, want after.width", v)
	}
}

func TestGuide_NotifyOrder(t *testing.T) {
	l := rootedLayout(t)
	g := sizedGuide()
	if err := l.AddGuide(g); err != nil {
		t.Fatalf("AddGuide() error = %v", err)
	}

	var (
		got       []GuideProperty
		sawValue  int
		sawOldFor float64
	)
	unbind := g.OnNotify(func(p GuideProperty) {
		got = append(got, p)
		if p == PropMaxWidth {
			sawValue, _ = g.MaxSize()
			sawOldFor = g.constraints[slotMaxWidth].Expression().Constant
		}
	})

	g.SetMaxSize(90, 190)
	g.SetName("sidebar")
	g.SetName("sidebar")

	want := []GuideProperty{PropMaxWidth, PropMaxHeight, PropName}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if sawValue != 90 {
		t.Errorf("observer saw max width %d, want the stored 90", sawValue)
	}
	if sawOldFor != 100 {
		t.Errorf("observer saw constraint for %v, want the previous 100", sawOldFor)
	}

	unbind()
	g.SetMaxSize(80, -1)
	if len(got) != len(want) {
		t.Errorf("observer called after Unbind: %v", got)
	}
}

func TestGuide_UnbindKeepsOtherObservers(t *testing.T) {
	g := NewGuide()
	var a, b int
	unbindA := g.OnNotify(func(GuideProperty) { a++ })
	g.OnNotify(func(GuideProperty) { b++ })

	g.SetNatSize(1, -1)
	unbindA()
	unbindA()
	g.SetNatSize(2, -1)

	if a != 1 {
		t.Errorf("first observer calls = %d, want 1", a)
	}
	if b != 2 {
		t.Errorf("second observer calls = %d, want 2", b)
	}
}

func TestGuide_InvalidSizePanics(t *testing.T) {
	type tc struct {
		set func(g *Guide)
	}

	tests := map[string]tc{
		"negative width":  {set: func(g *Guide) { g.SetMinSize(-2, 0) }},
		"negative height": {set: func(g *Guide) { g.SetNatSize(0, -5) }},
		"too large":       {set: func(g *Guide) { g.SetMaxSize(Unbounded+1, 0) }},
		"option":          {set: func(g *Guide) { WithMinSize(-3, 0)(g) }},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.set(NewGuide())
		})
	}
}

func TestGuideProperty_String(t *testing.T) {
	type tc struct {
		prop GuideProperty
		want string
	}

	tests := map[string]tc{
		"min width":  {prop: PropMinWidth, want: "min-width"},
		"nat height": {prop: PropNatHeight, want: "nat-height"},
		"name":       {prop: PropName, want: "name"},
		"unknown":    {prop: GuideProperty(42), want: "property(42)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.prop.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
