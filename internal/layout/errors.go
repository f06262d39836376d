package layout

import "errors"

var (
	// ErrUnknownAttribute is returned for an unrecognized attribute name.
	ErrUnknownAttribute = errors.New("layout: unknown attribute")

	// ErrUnknownTarget is returned when a constraint refers to a child or
	// guide that is not part of the layout.
	ErrUnknownTarget = errors.New("layout: constraint target is not in the layout")

	// ErrGuideInUse is returned when adding a guide owned by another layout.
	ErrGuideInUse = errors.New("layout: guide already belongs to a layout")

	// ErrConstraintInUse is returned when adding a constraint owned by
	// another layout.
	ErrConstraintInUse = errors.New("layout: constraint already belongs to a layout")

	// ErrNoAttribute is returned for a constraint whose target attribute is
	// AttributeNone.
	ErrNoAttribute = errors.New("layout: constraint target attribute is none")
)
