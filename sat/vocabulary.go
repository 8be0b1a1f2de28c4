package sat

import "fmt"

// LitUndefined marks the absence of a triggering literal: conflict analysis
// passes it to Constr.CalcReason to mean "the constraint itself is the
// conflict", rather than "literal p was propagated".
const LitUndefined Literal = -1

// undoAction is invoked by undoOne when its literal is unassigned during
// backjumping. It exists for constraint types (cardinality, PB) that keep
// auxiliary per-literal bookkeeping outside of the watch-list scheme and so
// cannot rely solely on re-propagation to restore consistency.
type undoAction func(s *Solver)

// Vocabulary owns the per-variable and per-literal state: assignment,
// decision level, reason pointer, watch lists, and undo hooks. It is the
// single source of truth the rest of the engine (trail, clauses, order,
// analysis) reads and mutates through.
//
// Variable ids here are internal, 0-based, and dense ([0, NumVars())); the
// mapping from external DIMACS ids (possibly sparse, signed, 1-based) to
// internal literals is GetFromPool's job.
type Vocabulary struct {
	assigns []LBool
	level   []int
	reason  []Constr

	watchers [][]watcher
	undos    [][]undoAction

	// pool maps a DIMACS variable id to its internal variable id. Grows
	// lazily as new DIMACS ids are seen.
	pool map[int]int

	// external maps an internal variable id back to its DIMACS id, or 0 if
	// the variable has no external name (an auxiliary variable allocated
	// via NextFreeVarID for a reifying front-end).
	external []int
}

// watcher is an entry in a literal's watch list: the constraint to notify,
// and (for clauses) a guard literal that short-circuits the notification
// when already true.
type watcher struct {
	constr Constr
	guard  Literal
}

// NewVocabulary returns an empty Vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{pool: map[int]int{}}
}

// NumVars returns the number of internal variables allocated so far.
func (v *Vocabulary) NumVars() int {
	return len(v.assigns) / 2
}

// EnsurePool grows internal variable capacity by n fresh variables and
// returns the first allocated internal variable id.
func (v *Vocabulary) EnsurePool(n int) int {
	first := v.NumVars()
	for i := 0; i < n; i++ {
		v.assigns = append(v.assigns, Unknown, Unknown)
		v.level = append(v.level, -1)
		v.reason = append(v.reason, nil)
		v.watchers = append(v.watchers, nil, nil)
		v.undos = append(v.undos, nil, nil)
		v.external = append(v.external, 0)
	}
	return first
}

// ExternalID returns the DIMACS variable id that named internal variable id
// when it was first allocated through GetFromPool, or 0 if it was allocated
// via NextFreeVarID (an auxiliary, unnamed variable).
func (v *Vocabulary) ExternalID(id int) int {
	return v.external[id]
}

// NextFreeVarID allocates `reserve` auxiliary internal variables (for use by
// a Tseitin-style reifying front-end) and returns the id of the first one.
// It never touches the DIMACS pool: auxiliary variables have no external
// name.
func (v *Vocabulary) NextFreeVarID(reserve int) int {
	return v.EnsurePool(reserve)
}

// GetFromPool maps a signed, 1-based DIMACS literal to its internal Literal,
// allocating a fresh internal variable the first time a given DIMACS
// variable is seen. It fails if the DIMACS literal is 0.
func (v *Vocabulary) GetFromPool(dimacsLit int) (Literal, error) {
	if dimacsLit == 0 {
		return 0, &UsageError{Msg: "literal 0 is not a valid DIMACS literal"}
	}
	id := dimacsLit
	if id < 0 {
		id = -id
	}
	iv, ok := v.pool[id]
	if !ok {
		iv = v.EnsurePool(1)
		v.pool[id] = iv
		v.external[iv] = id
	}
	if dimacsLit < 0 {
		return NegativeLiteral(iv), nil
	}
	return PositiveLiteral(iv), nil
}

func (v *Vocabulary) isSatisfied(l Literal) bool   { return v.assigns[l] == True }
func (v *Vocabulary) isFalsified(l Literal) bool    { return v.assigns[l] == False }
func (v *Vocabulary) isUnassigned(l Literal) bool    { return v.assigns[l] == Unknown }
func (v *Vocabulary) litValue(l Literal) LBool       { return v.assigns[l] }
func (v *Vocabulary) varValue(id int) LBool          { return v.assigns[PositiveLiteral(id)] }

// satisfy marks l as true (and its negation false). It does not touch the
// trail, level, or reason; callers (enqueue, undoOne) manage those.
func (v *Vocabulary) satisfy(l Literal) {
	v.assigns[l] = True
	v.assigns[l.Opposite()] = False
}

// unassign clears both l and its negation back to Unknown.
func (v *Vocabulary) unassign(l Literal) {
	v.assigns[l] = Unknown
	v.assigns[l.Opposite()] = Unknown
}

func (v *Vocabulary) getLevel(varID int) int     { return v.level[varID] }
func (v *Vocabulary) setLevel(varID, lvl int)    { v.level[varID] = lvl }
func (v *Vocabulary) getReason(varID int) Constr { return v.reason[varID] }
func (v *Vocabulary) setReason(varID int, c Constr) { v.reason[varID] = c }

// watches returns the mutable watch list for literal l. Constraints append
// to, and compact, this slice directly during propagation.
func (v *Vocabulary) watches(l Literal) []watcher {
	return v.watchers[l]
}

func (v *Vocabulary) setWatches(l Literal, w []watcher) {
	v.watchers[l] = w
}

// addWatch registers constr on l's watch list with the given guard literal.
func (v *Vocabulary) addWatch(l Literal, constr Constr, guard Literal) {
	v.watchers[l] = append(v.watchers[l], watcher{constr: constr, guard: guard})
}

// removeWatch drops every occurrence of constr from l's watch list.
func (v *Vocabulary) removeWatch(l Literal, constr Constr) {
	ws := v.watchers[l]
	j := 0
	for i := 0; i < len(ws); i++ {
		if ws[i].constr != constr {
			ws[j] = ws[i]
			j++
		}
	}
	v.watchers[l] = ws[:j]
}

// undosFor returns the per-literal undo-action list for l (used by
// constraint types that need custom teardown on backjump, e.g.
// cardinality counters).
func (v *Vocabulary) undosFor(l Literal) []undoAction {
	return v.undos[l]
}

func (v *Vocabulary) addUndo(l Literal, fn undoAction) {
	v.undos[l] = append(v.undos[l], fn)
}

func (v *Vocabulary) clearUndos(l Literal) {
	v.undos[l] = v.undos[l][:0]
}

func (v *Vocabulary) String() string {
	return fmt.Sprintf("Vocabulary[%d vars]", v.NumVars())
}
