package sat

import "testing"

// fakeClause is a minimal Constr stand-in for exercising LCDS strategies
// without needing a live Solver/Vocabulary: Locked always reports false,
// so every non-binary fake is a deletion candidate.
type fakeClause struct {
	size     int
	activity float64
	learnt   bool
}

func (f *fakeClause) Propagate(s *Solver, p Literal) bool             { return true }
func (f *fakeClause) CalcReason(s *Solver, p Literal, out []Literal) []Literal { return out }
func (f *fakeClause) Size() int                                       { return f.size }
func (f *fakeClause) Get(i int) Literal                                { return PositiveLiteral(i) }
func (f *fakeClause) Remove(s *Solver)                                 {}
func (f *fakeClause) Simplify(s *Solver) bool                          { return false }
func (f *fakeClause) Locked(s *Solver) bool                            { return false }
func (f *fakeClause) Activity() float64                                { return f.activity }
func (f *fakeClause) BumpActivity(s *Solver)                           {}
func (f *fakeClause) Learnt() bool                                     { return f.learnt }
func (f *fakeClause) CanBePropagatedMultipleTimes() bool               { return false }

func TestFixedSizeLCDSKeepsBinariesAndTail(t *testing.T) {
	s := NewDefaultSolver()
	lcds := NewFixedSizeLCDS(4, 1)

	// Two binaries (always kept) plus four non-binary learnts with
	// ascending activity; the tail chunk (budget/2 = 2 clauses) is kept
	// unconditionally, and the head is kept by activity if it still fits
	// the budget.
	s.learnts = []Constr{
		&fakeClause{size: 2, activity: 0, learnt: true},
		&fakeClause{size: 2, activity: 0, learnt: true},
		&fakeClause{size: 3, activity: 1, learnt: true},
		&fakeClause{size: 3, activity: 2, learnt: true},
		&fakeClause{size: 3, activity: 3, learnt: true},
		&fakeClause{size: 3, activity: 4, learnt: true},
	}

	tail := append([]Constr(nil), s.learnts[len(s.learnts)-2:]...)

	lcds.ReduceDB(s)

	for _, want := range tail {
		found := false
		for _, c := range s.learnts {
			if c == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected tail clause with activity %v to survive", want.Activity())
		}
	}

	var binaries int
	for _, c := range s.learnts {
		if c.Size() == 2 {
			binaries++
		}
	}
	if binaries != 2 {
		t.Errorf("expected both binary clauses to survive, got %d", binaries)
	}
}

// realLearntClause builds a *Clause with a given LBD, bypassing the Factory
// so the test can control lbd directly: GlucoseLCDS must rank by the
// clause's actual lbd field, never by the unrelated Activity() score (see
// DESIGN.md entry 9).
func realLearntClause(s *Solver, lbd uint32) *Clause {
	return &Clause{
		literals: []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)},
		status:   statusLearnt,
		lbd:      lbd,
	}
}

func TestGlucoseLCDSDropsHighLBDHalf(t *testing.T) {
	s := NewDefaultSolver()
	s.EnsureVars(3)
	lcds := NewGlucoseLCDS()

	s.learnts = []Constr{
		realLearntClause(s, 2), // LBD 2: never dropped (<=2)
		realLearntClause(s, 3),
		realLearntClause(s, 10),
		realLearntClause(s, 20),
	}

	lcds.ReduceDB(s)

	for _, c := range s.learnts {
		if constraintLBD(c) >= 10 {
			t.Errorf("expected the highest-LBD clauses to be dropped, found lbd %d still present", constraintLBD(c))
		}
	}
	if len(s.learnts) != 2 {
		t.Errorf("expected 2 surviving learnt clauses, got %d", len(s.learnts))
	}
}

func TestLCDSNeedToReduceDBTracksConflictCount(t *testing.T) {
	lcds := NewFixedSizeLCDS(10, 3)
	lcds.Init()
	if lcds.NeedToReduceDB() {
		t.Fatalf("should not need a reduction before any conflicts")
	}
	lcds.NewConflict(0)
	lcds.NewConflict(0)
	if lcds.NeedToReduceDB() {
		t.Fatalf("should not need a reduction before the period elapses")
	}
	lcds.NewConflict(0)
	if !lcds.NeedToReduceDB() {
		t.Fatalf("expected a reduction to be due after %d conflicts", 3)
	}
}
