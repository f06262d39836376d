package solver

import "sync/atomic"

var variableID atomic.Uint64

// Variable is a named scalar unknown tracked by a Solver.
// Its value is only meaningful after Solver.UpdateVariables.
type Variable struct {
	id    uint64
	name  string
	value float64
}

// NewVariable creates a variable with the given debug name.
func NewVariable(name string) *Variable {
	return &Variable{id: variableID.Add(1), name: name}
}

// Name returns the debug name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Value returns the value computed by the last resolution pass.
func (v *Variable) Value() float64 {
	return v.value
}

// SetValue overrides the stored value. The solver overwrites it on the next
// UpdateVariables if the variable is part of the system.
func (v *Variable) SetValue(value float64) {
	v.value = value
}

// String implements fmt.Stringer.
func (v *Variable) String() string {
	if v.name == "" {
		return "<anonymous>"
	}
	return v.name
}
