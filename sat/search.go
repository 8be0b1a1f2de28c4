package sat

// enqueue assigns l true, recording from as its reason (nil for a
// decision literal), and queues it for propagation. It returns false if l
// was already falsified under the current assignment (a conflict); true if
// l was already true or has just been newly assigned.
func (s *Solver) enqueue(l Literal, from Constr) bool {
	if s.vocab.isSatisfied(l) {
		return true
	}
	if s.vocab.isFalsified(l) {
		return false
	}
	s.vocab.satisfy(l)
	s.vocab.setLevel(l.VarID(), s.decisionLevel())
	s.vocab.setReason(l.VarID(), from)
	s.trail = append(s.trail, l)
	s.propQueue.Push(l)
	s.order.Remove(l.VarID())
	s.stats.Propagations++
	s.cfg.Listener.Propagating(l, from)
	return true
}

// assume pushes a new decision level and enqueues l as a decision literal
// (no reason). Returns false if l was already falsified.
func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.cfg.Listener.Assuming(l)
	s.stats.Decisions++
	return s.enqueue(l, nil)
}

// undoOne unassigns the most recent trail entry, running any registered
// undo hooks first (cardinality/PB constraints that keep bookkeeping
// outside the watch-list scheme) and reinserting the variable into the
// decision order with its phase saved.
func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()
	for _, fn := range s.vocab.undosFor(l) {
		fn(s)
	}
	s.vocab.clearUndos(l)
	s.vocab.unassign(l)
	s.vocab.setReason(v, nil)
	s.vocab.setLevel(v, -1)
	s.order.Reinsert(v, Lift(l.IsPositive()))
	s.trail = s.trail[:len(s.trail)-1]
	s.cfg.Listener.Backtracking(l)
}

// cancelUntil undoes trail entries until the decision level is at most
// level, then flushes anything still queued for propagation.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		boundary := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > boundary {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	s.propQueue.Clear()
}

// propagate drains the propagation queue, notifying every constraint
// watching a newly falsified literal. It returns the conflicting
// constraint, or nil once the queue empties with no conflict.
//
// Per the Constr contract (constr.go): a constraint whose Propagate call
// returns true has already re-registered itself on whichever watch list it
// needs, possibly the same literal p, possibly a different one. So on
// success this driver does nothing further; it only has to splice the
// not-yet-visited tail of p's original watch list back in place when a
// conflict cuts the scan short, and to restore the untouched
// already-satisfied-guard entries it skipped without calling Propagate at
// all. Grounded on the teacher's Propagate (internal/sat/solver.go),
// generalized from "clause with a blocker" to "any Constr with a guard".
func (s *Solver) propagate() Constr {
	for !s.propQueue.IsEmpty() {
		p := s.propQueue.Pop()
		ws := s.vocab.watches(p)
		s.vocab.setWatches(p, nil)

		for i := 0; i < len(ws); i++ {
			w := ws[i]
			if w.guard != noGuard && s.vocab.litValue(w.guard) == True {
				s.vocab.addWatch(p, w.constr, w.guard)
				continue
			}
			if !w.constr.Propagate(s, p) {
				s.vocab.setWatches(p, append(s.vocab.watches(p), ws[i+1:]...))
				s.propQueue.Clear()
				return w.constr
			}
		}
	}
	return nil
}

// constraintLBD reports c's literal block distance if it tracks one
// (*Clause, set by record), or 0 otherwise.
func constraintLBD(c Constr) uint32 {
	if cl, ok := c.(*Clause); ok {
		return cl.lbd
	}
	return 0
}

// checkTimeout reports whether the armed deadline (wall clock or conflict
// count; spec §5 says the two are mutually exclusive) has elapsed.
func (s *Solver) checkTimeout() bool {
	switch s.cfg.TimeoutMode {
	case TimeoutWallClock:
		return s.stats.elapsed() >= s.cfg.Timeout
	case TimeoutConflictCount:
		return s.cfg.MaxConflicts >= 0 && s.stats.Conflicts >= s.cfg.MaxConflicts
	default:
		return false
	}
}

// search runs one restart epoch: propagate, analyze, and backjump in a
// loop until either a model is found (True), a conflict at the root level
// proves unsatisfiability under the current assumptions (False), or the
// restart policy, a timeout, or the heuristic-exhausted fallback ends the
// epoch early (Unknown, meaning "the caller should loop and call search
// again"). Grounded on the teacher's Solver.Search, generalized per spec
// §4.8 to go through Restarter/LCDS instead of inline conflict-count math.
func (s *Solver) search() LBool {
	for {
		s.stats.Iterations++
		s.cfg.Listener.BeginLoop()
		s.logProgress()

		confl := s.propagate()
		if confl != nil {
			s.stats.Conflicts++
			s.cfg.Listener.ConflictFound(confl, s.decisionLevel())

			if s.decisionLevel() == s.rootLevel {
				s.unsatExplanation = s.analyzeFinalConflictFromConstr(confl)
				return False
			}

			learnt, btLevel := s.analyze(confl)
			if btLevel < s.rootLevel {
				btLevel = s.rootLevel
			}
			s.cfg.Listener.Backjump(btLevel)
			s.cancelUntil(btLevel)

			lbd := 0
			if c := s.record(learnt); c != nil {
				lbd = int(constraintLBD(c))
				s.enqueue(learnt[0], c)
			}
			s.order.Decay()
			s.decayClauseActivity()
			s.dispatcher.Fire(lbd)

			if s.checkTimeout() {
				s.timedOut = true
				return Unknown
			}
			continue
		}

		if s.decisionLevel() == 0 && s.cfg.SimplifyAtRootLevel {
			s.RemoveSubsumedConstr()
		}

		if len(s.trail) == s.vocab.NumVars() {
			return s.modelFound()
		}

		if s.checkTimeout() {
			s.timedOut = true
			return Unknown
		}
		if s.restarter.ShouldRestart() {
			s.cfg.Listener.Restarting()
			s.restarter.OnRestart()
			s.stats.Restarts++
			s.cancelUntil(s.rootLevel)
			return Unknown
		}
		if s.lcds.NeedToReduceDB() {
			s.cfg.Listener.Cleaning()
			s.lcds.ReduceDB(s)
			s.stats.RemovedByLCDS++
		}

		p, ok := s.order.Select(s)
		if !ok {
			// Defensive fallback (spec §4.8's preventSameDecisions): the
			// heuristic heap believes every variable is assigned, yet the
			// trail isn't full. Only reachable if Listener-driven state
			// left the vocabulary inconsistent with varOrder's view; end
			// the epoch rather than loop forever.
			s.cancelUntil(s.rootLevel)
			return Unknown
		}
		s.assume(p)
	}
}

// modelFound snapshots the full assignment into s.model, splits the trail
// into its decision and implied subsets (spec §6), backs off to the root
// level, and reports the model to the Listener. If a blocking clause is
// pending (requested via solverService.Backtrack, e.g. during that
// callback), the clause is added now and Unknown is returned, so the driver
// loop keeps searching instead of concluding with True — the mechanism an enumerating Listener uses to
// walk every model (spec §6, §8 scenario S5).
func (s *Solver) modelFound() LBool {
	s.model = make([]bool, s.vocab.NumVars())
	s.decisionTrail = s.decisionTrail[:0]
	s.impliedTrail = s.impliedTrail[:0]
	for _, l := range s.trail {
		v := l.VarID()
		s.model[v] = l.IsPositive()

		ext := s.vocab.ExternalID(v)
		if ext == 0 {
			continue
		}
		lit := ext
		if !l.IsPositive() {
			lit = -ext
		}
		if s.vocab.getReason(v) == nil {
			s.decisionTrail = append(s.decisionTrail, lit)
		} else {
			s.impliedTrail = append(s.impliedTrail, lit)
		}
	}
	s.cancelUntil(s.rootLevel)
	s.cfg.Listener.SolutionFound(append([]bool(nil), s.model...))

	if s.pendingBlock == nil {
		return True
	}
	block := s.pendingBlock
	s.pendingBlock = nil
	constr, ok := s.cfg.Factory.NewClause(s, block, false)
	if !ok {
		s.unsatAtRoot = true
		return False
	}
	if constr != nil {
		s.constraints = append(s.constraints, constr)
	}
	return Unknown
}

// IsSatisfiable solves the current constraint set under no assumptions.
func (s *Solver) IsSatisfiable() (bool, error) {
	return s.solve(nil)
}

// IsSatisfiableAssuming solves under the given assumptions (signed DIMACS
// literals), pushed as decisions before search begins. If the result is
// false because of the assumptions rather than the base constraint set,
// UnsatExplanation reports which assumptions were involved.
func (s *Solver) IsSatisfiableAssuming(assumptions []int) (bool, error) {
	return s.solve(assumptions)
}

func (s *Solver) solve(assumptionsDIMACS []int) (bool, error) {
	s.unsatExplanation = nil
	s.timedOut = false
	s.stats.reset()
	s.cfg.Listener.Start()

	if s.unsatAtRoot {
		s.cfg.Listener.End(False)
		return false, nil
	}

	assumps, err := s.toInternal(assumptionsDIMACS)
	if err != nil {
		return false, err
	}

	for _, a := range assumps {
		if !s.assume(a) {
			s.unsatExplanation = s.analyzeFinalConflict(a)
			s.cancelUntil(0)
			s.cfg.Listener.End(False)
			return false, nil
		}
		if confl := s.propagate(); confl != nil {
			s.unsatExplanation = s.analyzeFinalConflictFromConstr(confl)
			s.cancelUntil(0)
			s.cfg.Listener.End(False)
			return false, nil
		}
	}
	s.assumptions = assumps
	s.rootLevel = s.decisionLevel()

	result := Unknown
	for result == Unknown && !s.timedOut {
		result = s.search()
	}

	s.cancelUntil(0)
	s.rootLevel = 0
	s.assumptions = nil

	if s.timedOut {
		s.cfg.Listener.End(Unknown)
		return false, &TimeoutError{Msg: "search did not reach a verdict before the configured deadline"}
	}

	s.cfg.Listener.End(result)

	if result == False && len(assumps) == 0 {
		s.unsatAtRoot = true
	}
	return result == True, nil
}

// analyzeFinalConflict explains why assuming falseAssumption conflicted
// immediately (it was already false under previously pushed assumptions):
// the explanation is falseAssumption itself plus, transitively, whatever
// earlier assumptions its existing assignment's reason chain traces back
// to. Grounded on MiniSAT's analyzeFinal.
func (s *Solver) analyzeFinalConflict(falseAssumption Literal) []int {
	v := falseAssumption.VarID()
	seen := map[int]bool{v: true}
	out := []int{s.assumptionDIMACS(falseAssumption)}
	s.walkReasonChain(v, seen, &out)
	return out
}

// analyzeFinalConflictFromConstr explains a genuine propagation conflict
// (confl) in terms of whichever pushed assumptions its reason chain
// traces back to.
func (s *Solver) analyzeFinalConflictFromConstr(confl Constr) []int {
	var out []int
	seen := map[int]bool{}
	var buf []Literal
	buf = confl.CalcReason(s, LitUndefined, buf)
	for _, q := range buf {
		v := q.VarID()
		if seen[v] {
			continue
		}
		seen[v] = true
		if s.vocab.getReason(v) == nil && s.vocab.getLevel(v) > 0 {
			out = append(out, s.assumptionDIMACS(s.assignedLiteral(v)))
		}
		s.walkReasonChain(v, seen, &out)
	}
	return out
}

// walkReasonChain recursively collects every decision-literal ancestor of
// v's assignment above level 0 (i.e. every assumption that helped force it)
// into out; root-level units are not reported.
func (s *Solver) walkReasonChain(v int, seen map[int]bool, out *[]int) {
	reason := s.vocab.getReason(v)
	if reason == nil {
		return
	}
	var buf []Literal
	buf = reason.CalcReason(s, s.assignedLiteral(v), buf)
	for _, q := range buf {
		qv := q.VarID()
		if seen[qv] {
			continue
		}
		seen[qv] = true
		if s.vocab.getReason(qv) == nil && s.vocab.getLevel(qv) > 0 {
			*out = append(*out, s.assumptionDIMACS(s.assignedLiteral(qv)))
		}
		s.walkReasonChain(qv, seen, out)
	}
}

func (s *Solver) assumptionDIMACS(l Literal) int {
	ext := s.vocab.ExternalID(l.VarID())
	if l.IsPositive() {
		return ext
	}
	return -ext
}

// PrimeImplicant returns a minimal subset of the last model's decision
// literals that, with unit propagation, still satisfies every original
// constraint (spec §4.8: "starting from the
// found model, iteratively flip each decision literal and re-solve under the
// remaining assumptions; literals forced under any satisfying extension are
// kept"). A candidate literal l is dropped only when the rest of the kept
// set, by itself, already satisfies every original constraint regardless of
// l's (or any other unassigned variable's) value — the textbook condition
// for a partial assignment to be an implicant of a CNF/cardinality formula.
// A full re-solve of (rest + ¬l), which is what the spec's prose literally
// suggests, cannot answer this soundly: the solver is free to assign every
// variable outside the assumption set however it likes, so a SAT verdict
// only proves *some* model has l flipped, not that the rest alone entails
// the original model. For {1∨2, 2∨3} with kept decisions [1, 3, 2],
// re-solving (3, 2, ¬1) is satisfiable purely because the solver can pick
// values for the untouched variables, and that test would wrongly strip
// every literal down to the empty set even though {1∨2, 2∨3} is not a
// tautology. Checking constraint coverage after assuming the rest (with
// propagation run to a fixed point, so chained unit derivations count too)
// asks the right question instead. This routine has no teacher precedent —
// the spec only requires the Constr.CalcReason contract cardinality/PB
// constraints must satisfy, not a specific minimization algorithm — so it
// is grounded directly on the spec's description rather than on example
// code; see DESIGN.md.
func (s *Solver) PrimeImplicant() ([]int, error) {
	if s.model == nil {
		return nil, &UsageError{Msg: "no model available: call IsSatisfiable first"}
	}
	kept := append([]int(nil), s.decisionTrail...)
	for i := 0; i < len(kept); i++ {
		rest := append(append([]int(nil), kept[:i]...), kept[i+1:]...)
		redundant, err := s.impliesAllConstraints(rest)
		if err != nil {
			return nil, err
		}
		if redundant {
			// rest alone already satisfies every constraint: kept[i] adds
			// nothing and can be dropped.
			kept = append(kept[:i], kept[i+1:]...)
			i--
		}
	}
	return kept, nil
}

// impliesAllConstraints assumes decisionsDIMACS at the root level, runs unit
// propagation to a fixed point (no further decisions), and reports whether
// every original constraint is now satisfied. It always restores the
// solver to level 0 before returning.
func (s *Solver) impliesAllConstraints(decisionsDIMACS []int) (bool, error) {
	lits, err := s.toInternal(decisionsDIMACS)
	if err != nil {
		return false, err
	}
	s.cancelUntil(0)
	ok := true
	for _, l := range lits {
		if !s.assume(l) {
			ok = false
			break
		}
		if s.propagate() != nil {
			ok = false
			break
		}
	}
	if ok {
		for _, c := range s.constraints {
			if !constraintSatisfiedByAssignment(s, c) {
				ok = false
				break
			}
		}
	}
	s.cancelUntil(0)
	return ok, nil
}

// constraintSatisfiedByAssignment reports whether c already holds under the
// solver's current assignment, without mutating c — unlike Simplify, which
// only makes sense at decision level 0 because it permanently discards the
// literals it finds false.
func constraintSatisfiedByAssignment(s *Solver, c Constr) bool {
	if card, ok := c.(*Cardinality); ok {
		trueCount := 0
		for i := 0; i < card.Size(); i++ {
			if s.vocab.isSatisfied(card.Get(i)) {
				trueCount++
			}
		}
		return trueCount >= card.degree
	}
	for i := 0; i < c.Size(); i++ {
		if s.vocab.isSatisfied(c.Get(i)) {
			return true
		}
	}
	return false
}
