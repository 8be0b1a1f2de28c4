package sat

import (
	"fmt"
	"log"
	"os"
)

// Solver is a CDCL SAT solver: trail-based unit propagation over watched
// literals, first-UIP conflict analysis, activity-ordered decisions, and a
// pluggable restart policy and learned-clause database. It generalizes the
// teacher's internal/sat.Solver, replacing its flat field set with the
// explicit Vocabulary/Restarter/LCDS/Factory/Listener collaborators spec §2
// calls out.
type Solver struct {
	vocab *Vocabulary
	cfg   Config

	constraints []Constr
	learnts     []Constr

	clauseInc float64

	order      *varOrder
	restarter  Restarter
	lcds       LCDS
	dispatcher conflictDispatcher

	propQueue *litQueue

	trail    []Literal
	trailLim []int

	analysis analysisState

	assumptions []Literal
	rootLevel   int

	unsatAtRoot      bool
	unsatExplanation []int // DIMACS assumption literals; empty unless assumptions were involved

	model         []bool   // internal var id -> value, nil until a model is found
	decisionTrail []int    // signed DIMACS literals, the decision subset of the last model
	impliedTrail  []int    // signed DIMACS literals, the propagated subset of the last model

	pendingBlock []Literal // set by solverService.Backtrack during a SolutionFound callback

	timedOut bool // set by search() when checkTimeout() trips, distinct from a restart's Unknown

	svc solverService

	stats Stats
}

// NewSolver builds a Solver from cfg, filling in NullListener/DefaultFactory/
// a stderr Logger for any zero-valued field, generalizing the teacher's
// NewSolver(Options).
func NewSolver(cfg Config) *Solver {
	if cfg.Factory == nil {
		cfg.Factory = DefaultFactory{}
	}
	if cfg.Listener == nil {
		cfg.Listener = NullListener{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}
	if cfg.VariableDecay <= 0 || cfg.VariableDecay > 1 {
		cfg.VariableDecay = DefaultConfig.VariableDecay
	}
	if cfg.ClauseDecay <= 0 || cfg.ClauseDecay > 1 {
		cfg.ClauseDecay = DefaultConfig.ClauseDecay
	}

	s := &Solver{
		vocab:     NewVocabulary(),
		cfg:       cfg,
		clauseInc: 1,
		order:     newVarOrder(cfg.VariableDecay, cfg.PhaseSaving),
		propQueue: newLitQueue(128),
	}
	s.restarter = cfg.newRestarter()
	s.lcds = cfg.newLCDS()
	s.dispatcher.Subscribe(s.restarter)
	s.dispatcher.Subscribe(s.lcds)
	s.svc = solverService{s: s}
	s.stats.reset()
	s.restarter.Init()
	s.lcds.Init()
	cfg.Listener.Init(s)
	return s
}

// NewDefaultSolver returns a Solver configured with DefaultConfig, the
// MiniSAT-lineage defaults, mirroring the teacher's NewDefaultSolver.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultConfig)
}

// decisionLevel returns the current decision level: 0 at the root, before
// any decision has been pushed.
func (s *Solver) decisionLevel() int { return len(s.trailLim) }

// NumVars reports the number of variables the solver knows about.
func (s *Solver) NumVars() int { return s.vocab.NumVars() }

// resolveLiteral maps a signed, nonzero DIMACS literal to its internal
// Literal, extending the order heap, the mark set, and the vocabulary's
// per-variable state for any newly seen variable. This is the single
// funnel every public entry point that accepts DIMACS integers goes
// through.
func (s *Solver) resolveLiteral(dimacsLit int) (Literal, error) {
	before := s.vocab.NumVars()
	lit, err := s.vocab.GetFromPool(dimacsLit)
	if err != nil {
		return 0, err
	}
	s.growVars(before, s.vocab.NumVars())
	return lit, nil
}

// growVars registers freshly allocated internal variables [before, after)
// with the order heap and the analysis mark set.
func (s *Solver) growVars(before, after int) {
	for v := before; v < after; v++ {
		s.order.NewVar(true)
		s.analysis.seen.Expand()
	}
}

// EnsureVars pre-declares DIMACS variables 1..n, so Model() reports a value
// for every declared variable even if it never appears in a constraint.
// Grounded on the teacher's dimacs loader, which calls AddVariable once per
// declared variable before any clause is added.
func (s *Solver) EnsureVars(n int) {
	for i := 1; i <= n; i++ {
		if _, err := s.resolveLiteral(i); err != nil {
			panic(err) // i is never 0
		}
	}
}

// AddVariable allocates a single fresh, unnamed internal variable (for use
// by a reifying front-end that needs auxiliary Tseitin variables) and
// returns its internal id. Unlike resolveLiteral, it never touches the
// DIMACS pool, matching Vocabulary.NextFreeVarID.
func (s *Solver) AddVariable() int {
	before := s.vocab.NumVars()
	id := s.vocab.NextFreeVarID(1)
	s.growVars(before, s.vocab.NumVars())
	return id
}

// AddClause adds a disjunction of signed DIMACS literals as a permanent
// (non-learnt) constraint. It returns a ContradictionError if the clause is
// empty or forces an immediate top-level conflict, permanently marking the
// solver unsatisfiable.
func (s *Solver) AddClause(literals []int) error {
	if s.unsatAtRoot {
		return &ContradictionError{Msg: "solver already unsatisfiable"}
	}
	lits, err := s.toInternal(literals)
	if err != nil {
		return err
	}
	for _, l := range lits {
		s.cfg.Listener.Adding(l)
	}
	constr, ok := s.cfg.Factory.NewClause(s, lits, false)
	if !ok {
		s.unsatAtRoot = true
		return &ContradictionError{Msg: "clause is unsatisfiable at the root level"}
	}
	if constr != nil {
		s.constraints = append(s.constraints, constr)
	}
	return nil
}

// AddAtLeast requires at least degree of literals to be true.
func (s *Solver) AddAtLeast(literals []int, degree int) error {
	return s.addCardinality(literals, degree)
}

// AddAtMost requires at most degree of literals to be true, expressed as
// "at least len(literals)-degree of the negated literals".
func (s *Solver) AddAtMost(literals []int, degree int) error {
	negated := make([]int, len(literals))
	for i, l := range literals {
		negated[i] = -l
	}
	return s.addCardinality(negated, len(literals)-degree)
}

// AddExactly requires exactly degree of literals to be true.
func (s *Solver) AddExactly(literals []int, degree int) error {
	if err := s.AddAtLeast(literals, degree); err != nil {
		return err
	}
	return s.AddAtMost(literals, degree)
}

func (s *Solver) addCardinality(literals []int, degree int) error {
	if s.unsatAtRoot {
		return &ContradictionError{Msg: "solver already unsatisfiable"}
	}
	lits, err := s.toInternal(literals)
	if err != nil {
		return err
	}
	constr, ok := s.cfg.Factory.NewCardinality(s, lits, degree)
	if !ok {
		s.unsatAtRoot = true
		return &ContradictionError{Msg: "cardinality constraint is unsatisfiable at the root level"}
	}
	if constr != nil {
		s.constraints = append(s.constraints, constr)
		s.stats.CardinalityAdded++
	}
	return nil
}

func (s *Solver) toInternal(literals []int) ([]Literal, error) {
	out := make([]Literal, len(literals))
	for i, d := range literals {
		l, err := s.resolveLiteral(d)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// RemoveConstr unregisters constr from the solver's watch lists and drops
// it from the original-constraint set. It is a UsageError to remove a
// constraint currently locked (the reason for an assigned literal).
func (s *Solver) RemoveConstr(constr Constr) error {
	if constr.Locked(s) {
		return &UsageError{Msg: "cannot remove a constraint that is the reason for an assigned literal"}
	}
	for i, c := range s.constraints {
		if c == constr {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			constr.Remove(s)
			return nil
		}
	}
	return &UsageError{Msg: "constraint is not registered with this solver"}
}

// RemoveSubsumedConstr drops every original constraint that Simplify
// reports as already satisfied at the root level, e.g. after a sequence of
// unit propagations has made some of them redundant.
func (s *Solver) RemoveSubsumedConstr() {
	if s.decisionLevel() != 0 {
		return
	}
	kept := s.constraints[:0]
	for _, c := range s.constraints {
		if c.Simplify(s) {
			c.Remove(s)
			continue
		}
		kept = append(kept, c)
	}
	s.constraints = kept
}

// rescaleClauseActivities multiplies by 1e-100 every learnt constraint's
// activity and the shared increment, keeping floating point activities
// from overflowing across a long search. Grounded on the teacher's
// Solver.BumpClaActivity rescale branch.
func (s *Solver) rescaleClauseActivities() {
	for _, c := range s.learnts {
		switch t := c.(type) {
		case *Clause:
			t.activity *= 1e-100
		case *Cardinality:
			t.activity *= 1e-100
		}
	}
	s.clauseInc *= 1e-100
}

// bumpClauseActivity and decayClauseActivity implement the clause-side
// analogue of variable activity bumping (spec §4.5), grounded on the
// teacher's BumpClaActivity/DecayClaActivity.
func (s *Solver) bumpClauseActivity(c Constr) { c.BumpActivity(s) }

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.cfg.ClauseDecay
	if s.clauseInc > 1e100 {
		s.rescaleClauseActivities()
	}
}

// record adds a freshly learnt clause to the learnt database, via the
// configured Factory, and bumps its activity once so repeated involvement
// in conflicts compounds.
func (s *Solver) record(literals []Literal) Constr {
	constr, ok := s.cfg.Factory.NewClause(s, literals, true)
	if !ok {
		panic("cdclsat: learnt clause is contradictory, which first-UIP analysis should never produce")
	}
	if constr == nil {
		return nil // reduced to a root-level unit; already enqueued
	}
	s.learnts = append(s.learnts, constr)
	if cl, ok := constr.(*Clause); ok {
		cl.lbd = s.computeLBD(cl.literals)
	}
	s.bumpClauseActivity(constr)
	s.stats.LearntClauses++
	s.cfg.Listener.Learn(constr)
	return constr
}

// computeLBD computes the literal block distance of literals: the number
// of distinct decision levels represented among them, the statistic the
// glucose restart and deletion strategies key on.
func (s *Solver) computeLBD(literals []Literal) uint32 {
	seenLevels := make(map[int]struct{}, len(literals))
	for _, l := range literals {
		if lvl := s.vocab.getLevel(l.VarID()); lvl > 0 {
			seenLevels[lvl] = struct{}{}
		}
	}
	return uint32(len(seenLevels))
}

// addBlockingClause is solverService's hook: it stores literals as the
// pending blocking clause. modelFound checks for it right after reporting a
// model, adds it as a permanent clause and keeps searching, letting a
// listener force continued enumeration instead of a final SAT verdict.
func (s *Solver) addBlockingClause(literals []Literal) error {
	if len(literals) == 0 {
		return &UsageError{Msg: "blocking clause must not be empty"}
	}
	s.pendingBlock = append([]Literal(nil), literals...)
	return nil
}

// Model returns the last satisfying assignment found, as signed DIMACS
// literals (one entry per declared variable, in declaration order), or nil
// if no model has been found yet.
func (s *Solver) Model() []int {
	if s.model == nil {
		return nil
	}
	out := make([]int, 0, s.vocab.NumVars())
	for v := 0; v < s.vocab.NumVars(); v++ {
		ext := s.vocab.ExternalID(v)
		if ext == 0 {
			continue // auxiliary variable: no external name to report
		}
		if s.model[v] {
			out = append(out, ext)
		} else {
			out = append(out, -ext)
		}
	}
	return out
}

// UnsatExplanation returns the subset of the last call's assumptions that,
// together with the constraints, is unsatisfiable (an unsat core), or nil if
// the last call was satisfiable or used no assumptions.
func (s *Solver) UnsatExplanation() []int {
	return append([]int(nil), s.unsatExplanation...)
}

// logProgress writes a periodic search-progress line through cfg.Logger, at
// the same cadence as the teacher's TotalIterations%10000 check. Verbosity
// <= 0 disables it entirely.
func (s *Solver) logProgress() {
	if s.cfg.Verbosity <= 0 || s.stats.Iterations%10000 != 0 {
		return
	}
	s.cfg.Logger.Printf("conflicts=%d decisions=%d propagations=%d learnts=%d restarts=%d",
		s.stats.Conflicts, s.stats.Decisions, s.stats.Propagations, len(s.learnts), s.stats.Restarts)
}

func (s *Solver) String() string {
	return fmt.Sprintf("Solver[%d vars, %d constraints, %d learnts]", s.vocab.NumVars(), len(s.constraints), len(s.learnts))
}
