package solver

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// tag records the tableau symbols introduced for a constraint.
type tag struct {
	marker symbol
	other  symbol
}

type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// Stats is a snapshot of solver counters.
type Stats struct {
	Constraints   int
	Variables     int
	EditVariables int
	Rows          int
	Pivots        uint64
	Added         uint64
	Removed       uint64
	Resolves      uint64
}

// Solver maintains a system of weighted linear constraints.
type Solver struct {
	constraints map[*Constraint]tag
	rows        map[symbol]*row
	vars        map[*Variable]symbol
	varRefs     map[*Variable]int
	edits       map[*Variable]*editInfo
	infeasible  []symbol
	objective   *row
	artificial  *row
	nextID      uint64

	pivots   uint64
	added    uint64
	removed  uint64
	resolves uint64
}

// New creates an empty solver.
func New() *Solver {
	s := &Solver{}
	s.init()
	return s
}

func (s *Solver) init() {
	s.constraints = make(map[*Constraint]tag)
	s.rows = make(map[symbol]*row)
	s.vars = make(map[*Variable]symbol)
	s.varRefs = make(map[*Variable]int)
	s.edits = make(map[*Variable]*editInfo)
	s.infeasible = nil
	s.objective = newRow(0)
	s.artificial = nil
}

// Reset drops every constraint, edit variable and tracked variable.
// Handles issued before Reset are unknown afterwards.
func (s *Solver) Reset() {
	s.init()
}

// AddConstraint registers "v <relation> expr" with the given strength and
// returns its handle. If a required constraint cannot be satisfied the solver
// is left unchanged and ErrUnsatisfiableConstraint is returned.
func (s *Solver) AddConstraint(v *Variable, relation Relation, expr Expression, strength Strength) (*Constraint, error) {
	if v == nil {
		panic("solver: nil variable in AddConstraint")
	}
	c := &Constraint{
		variable:   v,
		relation:   relation,
		expression: NewExpression(expr.Constant, expr.Terms...),
		strength:   strength.clip(),
	}
	if err := s.add(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Solver) add(c *Constraint) error {
	r, t := s.createRow(c)
	subject := s.chooseSubject(r, t)

	if !subject.valid() && allDummies(r) {
		if !nearZero(r.constant) {
			s.releaseRowVars(c)
			return fmt.Errorf("%w: %s", ErrUnsatisfiableConstraint, c)
		}
		subject = t.marker
	}

	if !subject.valid() {
		ok, err := s.addWithArtificialVariable(r)
		if err != nil {
			return err
		}
		if !ok {
			// The row is in the tableau; register it so it can be unwound.
			s.constraints[c] = t
			if err := s.remove(c); err != nil {
				return err
			}
			return fmt.Errorf("%w: %s", ErrUnsatisfiableConstraint, c)
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		s.rows[subject] = r
	}

	s.constraints[c] = t
	s.added++
	err := s.optimize(s.objective)
	s.infeasible = s.infeasible[:0]
	return err
}

// RemoveConstraint removes a constraint previously returned by AddConstraint.
// Removing a handle this solver does not know, including one removed already
// or one created before Reset, returns ErrUnknownConstraint and changes
// nothing.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	if _, ok := s.constraints[c]; !ok {
		return ErrUnknownConstraint
	}
	if err := s.remove(c); err != nil {
		return err
	}
	s.removed++
	return nil
}

func (s *Solver) remove(c *Constraint) error {
	t := s.constraints[c]
	delete(s.constraints, c)

	s.removeConstraintEffects(c, t)

	if _, ok := s.rows[t.marker]; ok {
		delete(s.rows, t.marker)
	} else {
		leaving, r := s.markerLeavingRow(t.marker)
		switch {
		case leaving.valid():
			delete(s.rows, leaving)
			r.solveForPair(leaving, t.marker)
			s.substitute(t.marker, r)
			s.pivots++
		case s.referenced(t.marker):
			return fmt.Errorf("%w: failed to find leaving row for %s", errInternal, c)
		}
	}

	s.dropMarker(t.marker)
	s.dropMarker(t.other)
	s.releaseRowVars(c)
	return s.optimize(s.objective)
}

// HasConstraint reports whether c is registered with this solver.
func (s *Solver) HasConstraint(c *Constraint) bool {
	_, ok := s.constraints[c]
	return ok
}

// NumConstraints returns the number of registered constraints, including the
// ones backing edit variables.
func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

// NumVariables returns the number of variables referenced by the system.
func (s *Solver) NumVariables() int {
	return len(s.vars)
}

// NumEditVariables returns the number of edit variables.
func (s *Solver) NumEditVariables() int {
	return len(s.edits)
}

// AddEditVariable makes v suggestible with the given (non-required) strength.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	if _, ok := s.edits[v]; ok {
		return ErrDuplicateEditVariable
	}
	strength = strength.clip()
	if strength.IsRequired() {
		return ErrRequiredEditVariable
	}
	c, err := s.AddConstraint(v, Equal, Constant(0), strength)
	if err != nil {
		return err
	}
	s.edits[v] = &editInfo{tag: s.constraints[c], constraint: c}
	return nil
}

// RemoveEditVariable removes the edit constraint on v.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}
	delete(s.edits, v)
	return s.RemoveConstraint(info.constraint)
}

// HasEditVariable reports whether v is an edit variable.
func (s *Solver) HasEditVariable(v *Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// SuggestValue pushes value into the edit variable v.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}
	delta := value - info.constant
	info.constant = value

	if r, ok := s.rows[info.tag.marker]; ok {
		if r.add(-delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.marker)
		}
		return s.dualOptimize()
	}
	if r, ok := s.rows[info.tag.other]; ok {
		if r.add(delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.other)
		}
		return s.dualOptimize()
	}
	for sym, r := range s.rows {
		c := r.coefficientFor(info.tag.marker)
		if c != 0 && r.add(delta*c) < 0 && sym.kind != externalSymbol {
			s.infeasible = append(s.infeasible, sym)
		}
	}
	// dualOptimize pops from the back; visit the oldest rows first.
	slices.SortFunc(s.infeasible, func(a, b symbol) int {
		return cmp.Compare(b.id, a.id)
	})
	return s.dualOptimize()
}

// UpdateVariables writes the current solution into every tracked variable.
func (s *Solver) UpdateVariables() {
	for v, sym := range s.vars {
		if r, ok := s.rows[sym]; ok {
			v.value = r.constant
		} else {
			v.value = 0
		}
	}
	s.resolves++
}

// Stats returns a snapshot of the solver's counters.
func (s *Solver) Stats() Stats {
	return Stats{
		Constraints:   len(s.constraints),
		Variables:     len(s.vars),
		EditVariables: len(s.edits),
		Rows:          len(s.rows),
		Pivots:        s.pivots,
		Added:         s.added,
		Removed:       s.removed,
		Resolves:      s.resolves,
	}
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.nextID++
	return symbol{id: s.nextID, kind: kind}
}

// varSymbol returns the external symbol for v, creating it if needed.
func (s *Solver) varSymbol(v *Variable) symbol {
	if sym, ok := s.vars[v]; ok {
		return sym
	}
	sym := s.newSymbol(externalSymbol)
	s.vars[v] = sym
	return sym
}

// releaseRowVars drops the references c holds on its variables. A variable
// whose last constraint goes away leaves the system.
func (s *Solver) releaseRowVars(c *Constraint) {
	release := func(v *Variable) {
		s.varRefs[v]--
		if s.varRefs[v] > 0 {
			return
		}
		delete(s.varRefs, v)
		sym, ok := s.vars[v]
		if !ok {
			return
		}
		if _, basic := s.rows[sym]; basic || s.referenced(sym) {
			return
		}
		delete(s.vars, v)
	}
	release(c.variable)
	for _, t := range c.expression.Terms {
		release(t.Variable)
	}
}

func (s *Solver) retainRowVars(c *Constraint) {
	s.varRefs[c.variable]++
	for _, t := range c.expression.Terms {
		s.varRefs[t.Variable]++
	}
}

// referenced reports whether sym still appears in any row.
func (s *Solver) referenced(sym symbol) bool {
	for _, r := range s.rows {
		if _, ok := r.cells[sym]; ok {
			return true
		}
	}
	_, ok := s.objective.cells[sym]
	return ok
}

// dropMarker removes a retired marker or error symbol from the tableau. Its
// constraint is gone, so a leftover basic row only defines sym itself.
func (s *Solver) dropMarker(sym symbol) {
	if !sym.valid() {
		return
	}
	delete(s.rows, sym)
	for _, r := range s.rows {
		r.remove(sym)
	}
	s.objective.remove(sym)
}

func (s *Solver) createRow(c *Constraint) (*row, tag) {
	s.retainRowVars(c)
	expr := c.normalized()
	r := newRow(expr.Constant)

	for _, term := range expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.varSymbol(term.Variable)
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	var t tag
	switch c.relation {
	case LessOrEqual, GreaterOrEqual:
		coefficient := 1.0
		if c.relation == GreaterOrEqual {
			coefficient = -1.0
		}
		slack := s.newSymbol(slackSymbol)
		t.marker = slack
		r.insertSymbol(slack, coefficient)
		if !c.strength.IsRequired() {
			errSym := s.newSymbol(errorSymbol)
			t.other = errSym
			r.insertSymbol(errSym, -coefficient)
			s.objective.insertSymbol(errSym, float64(c.strength))
		}
	case Equal:
		if !c.strength.IsRequired() {
			plus := s.newSymbol(errorSymbol)
			minus := s.newSymbol(errorSymbol)
			t.marker = plus
			t.other = minus
			r.insertSymbol(plus, -1.0)
			r.insertSymbol(minus, 1.0)
			s.objective.insertSymbol(plus, float64(c.strength))
			s.objective.insertSymbol(minus, float64(c.strength))
		} else {
			dummy := s.newSymbol(dummySymbol)
			t.marker = dummy
			r.insertSymbol(dummy, 1.0)
		}
	}

	if r.constant < 0 {
		r.reverseSign()
	}
	return r, t
}

// chooseSubject picks the symbol the new row should be solved for: an
// external symbol if present, otherwise a negative slack or error marker.
func (s *Solver) chooseSubject(r *row, t tag) symbol {
	if sym := r.firstSymbol(func(sym symbol, _ float64) bool { return sym.kind == externalSymbol }); sym.valid() {
		return sym
	}
	if t.marker.pivotable() && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if t.other.pivotable() && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return symbol{}
}

func allDummies(r *row) bool {
	for sym := range r.cells {
		if sym.kind != dummySymbol {
			return false
		}
	}
	return true
}

// addWithArtificialVariable adds r using a temporary artificial variable and
// reports whether the artificial objective could be driven to zero.
func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	art := s.newSymbol(slackSymbol)
	s.rows[art] = r.clone()
	s.artificial = r.clone()

	if err := s.optimize(s.artificial); err != nil {
		return false, err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if basic, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(basic.cells) == 0 {
			return success, nil
		}
		entering := basic.firstSymbol(func(sym symbol, _ float64) bool { return sym.pivotable() })
		if !entering.valid() {
			s.dropMarker(art)
			return false, nil
		}
		basic.solveForPair(art, entering)
		s.substitute(entering, basic)
		s.rows[entering] = basic
		s.pivots++
	}

	s.dropMarker(art)
	return success, nil
}

// substitute replaces sym with r in every row and the objectives, collecting
// rows that became infeasible.
func (s *Solver) substitute(sym symbol, r *row) {
	for basic, other := range s.rows {
		other.substitute(sym, r)
		if basic.kind != externalSymbol && other.constant < 0 {
			s.infeasible = append(s.infeasible, basic)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// optimize runs primal simplex iterations on objective until it is minimal.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := objective.firstSymbol(func(sym symbol, c float64) bool {
			return sym.kind != dummySymbol && c < 0
		})
		if !entering.valid() {
			return nil
		}
		leaving, r := s.leavingRow(entering)
		if !leaving.valid() {
			return fmt.Errorf("%w: objective is unbounded", errInternal)
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
		s.pivots++
	}
}

// dualOptimize restores feasibility after edit suggestions.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		leaving := s.infeasible[len(s.infeasible)-1]
		s.infeasible = s.infeasible[:len(s.infeasible)-1]

		r, ok := s.rows[leaving]
		if !ok || nearZero(r.constant) || r.constant >= 0 {
			continue
		}
		entering := s.dualEnteringSymbol(r)
		if !entering.valid() {
			return fmt.Errorf("%w: dual optimize failed", errInternal)
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
		s.pivots++
	}
	return nil
}

func (s *Solver) leavingRow(entering symbol) (symbol, *row) {
	ratio := math.MaxFloat64
	var found symbol
	for sym, r := range s.rows {
		if sym.kind == externalSymbol {
			continue
		}
		c := r.coefficientFor(entering)
		if c >= 0 {
			continue
		}
		candidate := -r.constant / c
		if candidate < ratio || (candidate == ratio && sym.before(found)) {
			ratio = candidate
			found = sym
		}
	}
	return found, s.rows[found]
}

func (s *Solver) dualEnteringSymbol(r *row) symbol {
	ratio := math.MaxFloat64
	var found symbol
	for sym, c := range r.cells {
		if c <= 0 || sym.kind == dummySymbol {
			continue
		}
		candidate := s.objective.coefficientFor(sym) / c
		if candidate < ratio || (candidate == ratio && sym.before(found)) {
			ratio = candidate
			found = sym
		}
	}
	return found
}

// markerLeavingRow finds the row to pivot when marker must leave the system.
func (s *Solver) markerLeavingRow(marker symbol) (symbol, *row) {
	r1, r2 := math.MaxFloat64, math.MaxFloat64
	var first, second, third symbol
	for sym, r := range s.rows {
		c := r.coefficientFor(marker)
		if c == 0 {
			continue
		}
		switch {
		case sym.kind == externalSymbol:
			if sym.before(third) {
				third = sym
			}
		case c < 0:
			ratio := -r.constant / c
			if ratio < r1 || (ratio == r1 && sym.before(first)) {
				r1 = ratio
				first = sym
			}
		default:
			ratio := r.constant / c
			if ratio < r2 || (ratio == r2 && sym.before(second)) {
				r2 = ratio
				second = sym
			}
		}
	}
	switch {
	case first.valid():
		return first, s.rows[first]
	case second.valid():
		return second, s.rows[second]
	default:
		return third, s.rows[third]
	}
}

// removeConstraintEffects takes the error terms of c out of the objective.
func (s *Solver) removeConstraintEffects(c *Constraint, t tag) {
	if t.marker.kind == errorSymbol {
		s.removeMarkerEffects(t.marker, c.strength)
	}
	if t.other.kind == errorSymbol {
		s.removeMarkerEffects(t.other, c.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
	} else {
		s.objective.insertSymbol(marker, -float64(strength))
	}
}
