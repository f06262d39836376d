// Package solver implements an incremental Cassowary linear constraint solver.
//
// Constraints have the form
//
//	variable <relation> expression
//
// where relation is one of <=, == or >= and expression is a linear
// combination of other variables plus a constant. Each constraint carries a
// [Strength]: [Required] constraints must hold exactly, weaker ones are
// satisfied as well as possible, stronger preferences winning over weaker
// ones.
//
// The solver keeps a simplex tableau that is updated incrementally on every
// [Solver.AddConstraint] and [Solver.RemoveConstraint]. Values are copied into
// the [Variable] objects by [Solver.UpdateVariables]. Edit variables
// ([Solver.AddEditVariable], [Solver.SuggestValue]) allow a value to be
// pushed into the system repeatedly without rebuilding constraints.
//
// A Solver is not safe for concurrent use.
package solver
