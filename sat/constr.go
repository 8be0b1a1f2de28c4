package sat

// Constr is the capability set any constraint registered with a Solver must
// implement: a plain clause, a cardinality constraint, or (out of this
// core's scope, per the contract only) a pseudo-Boolean constraint.
//
// Implementations are never embedded by value in watch lists; the Solver
// stores them behind this interface and identifies reasons by pointer
// identity, so a Constr implementation should be a pointer-receiver type.
type Constr interface {
	// Propagate is invoked because p was just assigned true and the
	// constraint watches p, i.e. its own literal ¬p has just become false.
	// It returns false iff the constraint is now
	// conflicting under the current assignment. A true result means the
	// constraint re-registered itself on whatever watch list it needs.
	Propagate(s *Solver, p Literal) bool

	// CalcReason pushes, into out, the literals whose conjunction entailed p
	// (or entailed a conflict, if p is LitUndefined). The returned slice
	// aliases out's backing array.
	CalcReason(s *Solver, p Literal, out []Literal) []Literal

	// Size returns the number of literals currently in the constraint.
	Size() int

	// Get returns the i'th literal, 0 <= i < Size().
	Get(i int) Literal

	// Remove unregisters the constraint from the vocabulary's watch lists.
	Remove(s *Solver)

	// Simplify returns true iff the constraint is already satisfied at the
	// root level and can be dropped from the database.
	Simplify(s *Solver) bool

	// Locked reports whether this constraint is currently the reason for an
	// assigned variable, and therefore cannot be deleted.
	Locked(s *Solver) bool

	// Activity returns the constraint's current activity score, used by the
	// fixed-size and memory-based deletion strategies. The glucose strategy
	// does not use it; it ranks clauses by their LBD (see constraintLBD).
	Activity() float64

	// BumpActivity increases the constraint's activity in response to
	// participating in a conflict. It does not touch the LBD.
	BumpActivity(s *Solver)

	// Learnt reports whether the constraint was derived by conflict
	// analysis, as opposed to being an original input constraint.
	Learnt() bool

	// CanBePropagatedMultipleTimes reports whether a single literal can be
	// propagated more than once by this constraint over its lifetime (true
	// for cardinality/PB constraints, false for plain clauses). Conflict
	// analysis's reason-simplification passes exclude such constraints.
	CanBePropagatedMultipleTimes() bool
}
