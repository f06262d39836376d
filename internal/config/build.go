package config

import (
	"fmt"

	"github.com/grindlemire/go-constraint/internal/layout"
	"github.com/grindlemire/go-constraint/internal/solver"
)

// Built is a layout constructed from a File.
type Built struct {
	Layout  *layout.Layout
	Widgets map[string]*layout.Widget
	Guides  map[string]*layout.Guide
}

// Target returns the widget or guide with the given name, or nil for
// SuperName. ok is false for unknown names.
func (b *Built) Target(name string) (t layout.Target, ok bool) {
	if name == SuperName {
		return nil, true
	}
	if w, found := b.Widgets[name]; found {
		return w, true
	}
	if g, found := b.Guides[name]; found {
		return g, true
	}
	return nil, false
}

// Build creates a layout rooted on s (a private solver when s is nil) with
// the widgets, guides and constraints of f. The File must be valid.
func Build(f *File, s *solver.Solver) (*Built, error) {
	dir := layout.LTR
	if f.Direction == "rtl" {
		dir = layout.RTL
	}

	b := &Built{
		Layout:  layout.New(layout.WithDirection(dir)),
		Widgets: make(map[string]*layout.Widget, len(f.Widgets)),
		Guides:  make(map[string]*layout.Guide, len(f.Guides)),
	}
	b.Layout.Root(s)

	for _, w := range f.Widgets {
		minW, minH := w.Min.orSentinel(0)
		natW, natH := w.Nat.orSentinel(0)
		widget := layout.NewWidget(w.Name,
			layout.Size{Width: minW, Height: minH},
			layout.Size{Width: natW, Height: natH})
		b.Widgets[w.Name] = widget
		b.Layout.AddChild(widget)
	}

	for _, g := range f.Guides {
		guide := layout.NewGuide(
			layout.WithName(g.Name),
			layout.WithMinSize(g.Min.orSentinel(-1)),
			layout.WithNatSize(g.Nat.orSentinel(-1)),
			layout.WithMaxSize(g.Max.orSentinel(-1)),
		)
		b.Guides[g.Name] = guide
		if err := b.Layout.AddGuide(guide); err != nil {
			return nil, fmt.Errorf("guide %q: %w", g.Name, err)
		}
	}

	for i, c := range f.Constraints {
		lc, err := b.constraint(c)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		if err := b.Layout.AddConstraint(lc); err != nil {
			return nil, fmt.Errorf("constraint %d (%s): %w", i, lc, err)
		}
	}
	return b, nil
}

func (b *Built) constraint(c Constraint) (*layout.Constraint, error) {
	relation, err := solver.ParseRelation(c.Relation)
	if err != nil {
		return nil, err
	}
	strength := solver.Required
	if c.Strength != "" {
		if strength, err = solver.ParseStrength(c.Strength); err != nil {
			return nil, err
		}
	}

	targetName, targetAttr, err := splitReference(c.Target)
	if err != nil {
		return nil, err
	}
	target, ok := b.Target(targetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReference, targetName)
	}

	if c.Source == "" {
		return layout.NewConstantConstraint(target, targetAttr, relation, c.Constant, strength), nil
	}

	sourceName, sourceAttr, err := splitReference(c.Source)
	if err != nil {
		return nil, err
	}
	source, ok := b.Target(sourceName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReference, sourceName)
	}
	multiplier := 1.0
	if c.Multiplier != nil {
		multiplier = *c.Multiplier
	}
	return layout.NewConstraint(target, targetAttr, relation, source, sourceAttr, multiplier, c.Constant, strength), nil
}
