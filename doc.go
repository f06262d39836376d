// Package constraint provides constraint-based layout for terminal UIs.
//
// Users import this single package for the complete public API: layouts,
// guides, constraints, widgets, geometry and solver strengths.
//
// A Guide is an invisible spacer. It contributes a minimum, natural and
// maximum size to the layout's solver, and constraints can position widgets
// against its edges:
//
//	l := constraint.NewLayout()
//	g := constraint.NewGuide(constraint.WithMinSize(4, 0), constraint.WithNatSize(10, 0))
//	_ = l.AddGuide(g)
//	l.Allocate(80, 24)
package constraint
