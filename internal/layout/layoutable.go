package layout

// Layoutable is the interface for anything a constraint Layout can place.
// The layout engine works entirely with this interface, enabling custom implementations.
type Layoutable interface {
	// Name identifies the element in solver variable names and debug output.
	// It should be unique within a layout.
	Name() string

	// PreferredSize returns the smallest acceptable size and the size the
	// element would like to have. The layout holds the minimum as a required
	// bound and the natural size as a medium-strength preference.
	PreferredSize() (minimum, natural Size)

	// SetAllocation is called by the layout engine to store the computed rectangle.
	SetAllocation(Rect)

	// Allocation returns the last computed rectangle.
	Allocation() Rect

	// IsDirty returns whether this element needs layout recalculation.
	IsDirty() bool

	// SetDirty marks this element as needing recalculation.
	SetDirty(dirty bool)
}
