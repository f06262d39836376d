// Package layout implements a constraint-based layout engine for terminal UIs.
//
// A [Layout] owns a linear constraint solver. Children ([Layoutable]) and
// invisible [Guide] spacers take part in it: every guide contributes six
// constraints for its minimum, natural and maximum width and height, and
// [Constraint] values relate the edges, centers and sizes of children,
// guides and the layout itself.
//
// [Layout.Measure] reports the minimum and natural size along an axis, and
// [Layout.Allocate] solves the system for a given box and stores a [Rect]
// in every child and guide. Types are re-exported through the root
// constraint package for public consumption.
package layout
