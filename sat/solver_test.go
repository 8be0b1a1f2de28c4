package sat

import "testing"

func solveLits(t *testing.T, s *Solver) bool {
	t.Helper()
	ok, err := s.IsSatisfiable()
	if err != nil {
		t.Fatalf("IsSatisfiable: %s", err)
	}
	return ok
}

func TestSolverUnitPropagation(t *testing.T) {
	s := NewDefaultSolver()
	must(t, s.AddClause([]int{1}))
	must(t, s.AddClause([]int{-2, 1}))
	must(t, s.AddClause([]int{2, 3}))

	if !solveLits(t, s) {
		t.Fatalf("expected instance to be satisfiable")
	}
	model := modelMap(s)
	if !model[1] {
		t.Errorf("expected x1 true (unit clause)")
	}
}

func TestSolverContradictionDetected(t *testing.T) {
	s := NewDefaultSolver()
	must(t, s.AddClause([]int{1}))
	err := s.AddClause([]int{-1})
	if err == nil {
		t.Fatalf("expected a ContradictionError")
	}
	if _, ok := err.(*ContradictionError); !ok {
		t.Errorf("expected *ContradictionError, got %T", err)
	}
	if ok, _ := s.IsSatisfiable(); ok {
		t.Errorf("expected the solver to report unsatisfiable after a root contradiction")
	}
}

func TestSolverConflictDrivenLearning(t *testing.T) {
	// Pigeonhole 3-into-2: classic conflict-learning exercise, unsat.
	s := NewDefaultSolver()
	clauses := [][]int{
		{1, 2}, {3, 4}, {5, 6},
		{-1, -3}, {-1, -5}, {-3, -5},
		{-2, -4}, {-2, -6}, {-4, -6},
	}
	for _, c := range clauses {
		must(t, s.AddClause(c))
	}
	if solveLits(t, s) {
		t.Fatalf("expected pigeonhole instance to be unsatisfiable")
	}
	if s.stats.Conflicts == 0 {
		t.Errorf("expected at least one conflict during search")
	}
}

func TestSolverAssumptionsUnsatCore(t *testing.T) {
	s := NewDefaultSolver()
	must(t, s.AddClause([]int{-1, 2})) // x1 -> x2
	must(t, s.AddClause([]int{-2, -3})) // x2 -> !x3

	ok, err := s.IsSatisfiableAssuming([]int{1, 3})
	if err != nil {
		t.Fatalf("IsSatisfiableAssuming: %s", err)
	}
	if ok {
		t.Fatalf("expected assumptions {x1, x3} to be unsatisfiable")
	}

	core := s.UnsatExplanation()
	if len(core) == 0 {
		t.Fatalf("expected a nonempty unsat core")
	}
	seen := map[int]bool{}
	for _, l := range core {
		seen[l] = true
	}
	if !seen[1] && !seen[3] {
		t.Errorf("expected the unsat core to reference at least one of the assumptions, got %v", core)
	}

	// The base constraint set alone must remain satisfiable.
	if ok, err := s.IsSatisfiable(); err != nil || !ok {
		t.Errorf("expected the base instance (no assumptions) to be satisfiable, ok=%v err=%v", ok, err)
	}
}

func TestSolverListenerEnumerationBacktrack(t *testing.T) {
	s := NewDefaultSolver()
	must(t, s.AddClause([]int{1, 2}))
	must(t, s.AddClause([]int{-1, -2}))

	ok, err := s.IsSatisfiable()
	if err != nil || !ok {
		t.Fatalf("expected the first model to be found, ok=%v err=%v", ok, err)
	}
	model := s.Model()

	// A listener would normally call this from within SolutionFound; here
	// we exercise solverService directly, the same control surface it
	// uses (spec §6's "listener may request solverService.backtrack").
	blocking := make([]Literal, len(model))
	for i, l := range model {
		lit, err := s.resolveLiteral(-l)
		if err != nil {
			t.Fatalf("resolveLiteral: %s", err)
		}
		blocking[i] = lit
	}
	if err := s.svc.Backtrack(blocking); err != nil {
		t.Fatalf("Backtrack: %s", err)
	}

	ok, err = s.IsSatisfiable()
	if err != nil || !ok {
		t.Fatalf("expected a second, different model, ok=%v err=%v", ok, err)
	}
	second := s.Model()
	if equalModels(model, second) {
		t.Errorf("expected the blocking clause to forbid repeating the first model")
	}
}

func TestSolverCardinalityAtLeastAtMostExactly(t *testing.T) {
	s := NewDefaultSolver()
	must(t, s.AddAtLeast([]int{1, 2, 3}, 2))
	must(t, s.AddAtMost([]int{1, 2, 3}, 2))

	if !solveLits(t, s) {
		t.Fatalf("expected a satisfying assignment with exactly 2 of 3 literals true")
	}
	model := modelMap(s)
	count := 0
	for _, v := range []int{1, 2, 3} {
		if model[v] {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected exactly 2 true literals, got %d (model=%v)", count, s.Model())
	}
}

func TestSolverCardinalityExactlyZeroIsUnsatWithAtLeastOne(t *testing.T) {
	s := NewDefaultSolver()
	must(t, s.AddExactly([]int{1, 2}, 0))
	must(t, s.AddClause([]int{1, 2}))

	if solveLits(t, s) {
		t.Fatalf("expected conflicting cardinality and clause constraints to be unsatisfiable")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func modelMap(s *Solver) map[int]bool {
	m := map[int]bool{}
	for _, l := range s.Model() {
		if l > 0 {
			m[l] = true
		} else {
			m[-l] = false
		}
	}
	return m
}

func equalModels(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	am := map[int]bool{}
	for _, l := range a {
		am[l] = true
	}
	for _, l := range b {
		if !am[l] {
			return false
		}
	}
	return true
}
