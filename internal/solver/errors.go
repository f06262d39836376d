package solver

import "errors"

var (
	// ErrUnsatisfiableConstraint is returned when a required constraint
	// conflicts with the required constraints already in the solver.
	ErrUnsatisfiableConstraint = errors.New("solver: unsatisfiable constraint")

	// ErrUnknownConstraint is returned when removing a constraint that is not
	// registered with this solver.
	ErrUnknownConstraint = errors.New("solver: unknown constraint")

	// ErrDuplicateEditVariable is returned when a variable is already editable.
	ErrDuplicateEditVariable = errors.New("solver: duplicate edit variable")

	// ErrUnknownEditVariable is returned when a variable has not been added
	// as an edit variable.
	ErrUnknownEditVariable = errors.New("solver: unknown edit variable")

	// ErrRequiredEditVariable is returned when an edit variable is added with
	// Required strength.
	ErrRequiredEditVariable = errors.New("solver: edit variable cannot be required")

	// errInternal signals a corrupted tableau. It is wrapped with details.
	errInternal = errors.New("solver: internal error")
)
