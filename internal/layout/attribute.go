package layout

import "fmt"

// Attribute names a geometric property of a constraint target.
type Attribute uint8

const (
	AttributeNone Attribute = iota // No attribute: the constraint uses only its constant
	Left                           // Left edge
	Right                          // Right edge (left + width)
	Top                            // Top edge
	Bottom                         // Bottom edge (top + height)
	Start                          // Leading edge: Left in LTR, Right in RTL
	End                            // Trailing edge: Right in LTR, Left in RTL
	Width                          // Horizontal size
	Height                         // Vertical size
	CenterX                        // Horizontal center (left + width/2)
	CenterY                        // Vertical center (top + height/2)
)

var attributeNames = [...]string{
	AttributeNone: "none",
	Left:          "left",
	Right:         "right",
	Top:           "top",
	Bottom:        "bottom",
	Start:         "start",
	End:           "end",
	Width:         "width",
	Height:        "height",
	CenterX:       "center-x",
	CenterY:       "center-y",
}

// String implements fmt.Stringer.
func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return fmt.Sprintf("attribute(%d)", a)
}

// ParseAttribute converts an attribute name into an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	for a, n := range attributeNames {
		if n == name {
			return Attribute(a), nil
		}
	}
	return AttributeNone, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// TextDirection selects how Start and End resolve.
type TextDirection uint8

const (
	LTR TextDirection = iota // Start is Left
	RTL                      // Start is Right
)

// String implements fmt.Stringer.
func (d TextDirection) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// resolve maps direction-relative attributes onto absolute ones.
func (a Attribute) resolve(dir TextDirection) Attribute {
	switch a {
	case Start:
		if dir == RTL {
			return Right
		}
		return Left
	case End:
		if dir == RTL {
			return Left
		}
		return Right
	default:
		return a
	}
}

// Orientation selects the axis for Measure.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation converts "horizontal" or "vertical" into an Orientation.
func ParseOrientation(name string) (Orientation, error) {
	switch name {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("layout: unknown orientation %q", name)
	}
}
