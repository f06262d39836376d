// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package constraint

import "github.com/grindlemire/go-constraint/internal/layout"

// Layout places children and guides by solving linear constraints.
type Layout = layout.Layout

// LayoutOption configures a Layout.
type LayoutOption = layout.Option

// Guide is an invisible participant that contributes size constraints.
type Guide = layout.Guide

// GuideOption configures a Guide at construction.
type GuideOption = layout.GuideOption

// GuideProperty identifies an observable property of a Guide.
type GuideProperty = layout.GuideProperty

const (
	PropMinWidth  = layout.PropMinWidth
	PropMinHeight = layout.PropMinHeight
	PropNatWidth  = layout.PropNatWidth
	PropNatHeight = layout.PropNatHeight
	PropMaxWidth  = layout.PropMaxWidth
	PropMaxHeight = layout.PropMaxHeight
	PropName      = layout.PropName
)

// Unbind removes an observer registered with Guide.OnNotify.
type Unbind = layout.Unbind

// Unbounded is the largest guide size and the default maximum.
const Unbounded = layout.Unbounded

// Constraint relates an attribute of one target to another.
type Constraint = layout.Constraint

// Target is a *Guide, a Layoutable child, or nil for the layout itself.
type Target = layout.Target

// Attribute names a geometric property of a constraint target.
type Attribute = layout.Attribute

const (
	AttributeNone = layout.AttributeNone
	Left          = layout.Left
	Right         = layout.Right
	Top           = layout.Top
	Bottom        = layout.Bottom
	Start         = layout.Start
	End           = layout.End
	Width         = layout.Width
	Height        = layout.Height
	CenterX       = layout.CenterX
	CenterY       = layout.CenterY
)

// TextDirection selects how Start and End resolve.
type TextDirection = layout.TextDirection

const (
	LTR = layout.LTR
	RTL = layout.RTL
)

// Orientation selects the axis for Layout.Measure.
type Orientation = layout.Orientation

const (
	Horizontal = layout.Horizontal
	Vertical   = layout.Vertical
)

// Layoutable is the interface that children must implement.
type Layoutable = layout.Layoutable

// Widget is a plain Layoutable with fixed preferred sizes.
type Widget = layout.Widget

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Size represents a width/height pair.
type Size = layout.Size

// Point represents an x/y coordinate.
type Point = layout.Point

// NewLayout creates an unrooted layout.
func NewLayout(opts ...LayoutOption) *Layout {
	return layout.New(opts...)
}

// WithDirection sets the text direction of a layout.
func WithDirection(d TextDirection) LayoutOption {
	return layout.WithDirection(d)
}

// NewGuide creates a detached guide.
func NewGuide(opts ...GuideOption) *Guide {
	return layout.NewGuide(opts...)
}

// WithName sets a guide's debug name.
func WithName(name string) GuideOption {
	return layout.WithName(name)
}

// WithMinSize sets a guide's minimum size.
func WithMinSize(width, height int) GuideOption {
	return layout.WithMinSize(width, height)
}

// WithNatSize sets a guide's natural size.
func WithNatSize(width, height int) GuideOption {
	return layout.WithNatSize(width, height)
}

// WithMaxSize sets a guide's maximum size.
func WithMaxSize(width, height int) GuideOption {
	return layout.WithMaxSize(width, height)
}

// NewConstraint creates target.attr <relation> source.srcAttr * multiplier + constant.
func NewConstraint(target Target, attr Attribute, relation Relation,
	source Target, srcAttr Attribute, multiplier, constant float64, strength Strength) *Constraint {
	return layout.NewConstraint(target, attr, relation, source, srcAttr, multiplier, constant, strength)
}

// NewConstantConstraint creates target.attr <relation> constant.
func NewConstantConstraint(target Target, attr Attribute, relation Relation,
	constant float64, strength Strength) *Constraint {
	return layout.NewConstantConstraint(target, attr, relation, constant, strength)
}

// NewWidget creates a widget with the given minimum and natural sizes.
func NewWidget(name string, minimum, natural Size) *Widget {
	return layout.NewWidget(name, minimum, natural)
}

// NewRect creates a Rect.
func NewRect(x, y, width, height int) Rect {
	return layout.NewRect(x, y, width, height)
}

// ParseAttribute converts an attribute name such as "center-x".
func ParseAttribute(name string) (Attribute, error) {
	return layout.ParseAttribute(name)
}

// ParseOrientation converts "horizontal" or "vertical".
func ParseOrientation(name string) (Orientation, error) {
	return layout.ParseOrientation(name)
}

var (
	ErrUnknownAttribute = layout.ErrUnknownAttribute
	ErrUnknownTarget    = layout.ErrUnknownTarget
	ErrGuideInUse       = layout.ErrGuideInUse
	ErrConstraintInUse  = layout.ErrConstraintInUse
	ErrNoAttribute      = layout.ErrNoAttribute
)
