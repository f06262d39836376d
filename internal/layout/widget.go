package layout

// Widget is a plain Layoutable with fixed preferred sizes. It stands in for
// real content in tests, configuration files and the CLI.
type Widget struct {
	name       string
	minimum    Size
	natural    Size
	allocation Rect
	dirty      bool
}

// NewWidget creates a widget. A natural size smaller than the minimum is
// raised to the minimum.
func NewWidget(name string, minimum, natural Size) *Widget {
	w := &Widget{name: name, dirty: true}
	w.setSizes(minimum, natural)
	return w
}

func (w *Widget) setSizes(minimum, natural Size) {
	w.minimum = Size{Width: max(0, minimum.Width), Height: max(0, minimum.Height)}
	w.natural = Size{
		Width:  max(w.minimum.Width, natural.Width),
		Height: max(w.minimum.Height, natural.Height),
	}
}

// Name implements Layoutable.
func (w *Widget) Name() string {
	return w.name
}

// PreferredSize implements Layoutable.
func (w *Widget) PreferredSize() (minimum, natural Size) {
	return w.minimum, w.natural
}

// SetPreferredSize updates the sizes and marks the widget dirty.
func (w *Widget) SetPreferredSize(minimum, natural Size) {
	if minimum == w.minimum && natural == w.natural {
		return
	}
	w.setSizes(minimum, natural)
	w.dirty = true
}

// SetAllocation implements Layoutable.
func (w *Widget) SetAllocation(r Rect) {
	w.allocation = r
}

// Allocation implements Layoutable.
func (w *Widget) Allocation() Rect {
	return w.allocation
}

// IsDirty implements Layoutable.
func (w *Widget) IsDirty() bool {
	return w.dirty
}

// SetDirty implements Layoutable.
func (w *Widget) SetDirty(dirty bool) {
	w.dirty = dirty
}
