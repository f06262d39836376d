package solver

import (
	"strconv"
	"strings"
)

// Term is a variable scaled by a coefficient.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

// Value returns the term evaluated with the variable's current value.
func (t Term) Value() float64 {
	return t.Coefficient * t.Variable.Value()
}

// Expression is a linear combination of terms plus a constant.
type Expression struct {
	Terms    []Term
	Constant float64
}

// NewExpression creates an expression from a constant and terms.
func NewExpression(constant float64, terms ...Term) Expression {
	e := Expression{Constant: constant}
	if len(terms) > 0 {
		e.Terms = make([]Term, len(terms))
		copy(e.Terms, terms)
	}
	return e
}

// Constant creates an expression with no terms.
func Constant(c float64) Expression {
	return Expression{Constant: c}
}

// Plus returns a copy of e with term appended.
func (e Expression) Plus(v *Variable, coefficient float64) Expression {
	terms := make([]Term, len(e.Terms), len(e.Terms)+1)
	copy(terms, e.Terms)
	return Expression{Terms: append(terms, Term{Variable: v, Coefficient: coefficient}), Constant: e.Constant}
}

// IsConstant reports whether the expression has no terms.
func (e Expression) IsConstant() bool {
	return len(e.Terms) == 0
}

// Value evaluates the expression with the current variable values.
func (e Expression) Value() float64 {
	v := e.Constant
	for _, t := range e.Terms {
		v += t.Value()
	}
	return v
}

// String renders the expression as "2 * a + b + 10".
func (e Expression) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if t.Coefficient != 1 {
			b.WriteString(strconv.FormatFloat(t.Coefficient, 'g', -1, 64))
			b.WriteString(" * ")
		}
		b.WriteString(t.Variable.String())
	}
	if len(e.Terms) == 0 || e.Constant != 0 {
		if len(e.Terms) > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(strconv.FormatFloat(e.Constant, 'g', -1, 64))
	}
	return b.String()
}
