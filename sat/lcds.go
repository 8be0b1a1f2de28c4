package sat

import "sort"

// LCDS (learned-clause deletion strategy) decides, once per search
// iteration when the driver polls NeedToReduceDB, whether the learned
// database should be pruned, and performs that pruning in ReduceDB. It is
// itself a ConflictTimer so it can track conflict counts or LBD statistics
// between reductions (spec §4.7).
type LCDS interface {
	ConflictTimer
	Init()
	NeedToReduceDB() bool
	ReduceDB(s *Solver)
}

// keepClause reports whether a learnt clause must never be deleted by any
// strategy: binary clauses (cheap, usually useful) and currently-locked
// clauses (removing them would orphan a reason on the trail).
func keepClause(s *Solver, c Constr) bool {
	return c.Size() <= 2 || c.Locked(s)
}

// FixedSizeLCDS reduces the learned database every K conflicts down to (at
// most) K clauses: binaries and locked clauses are always kept, and the
// strategy keeps as many of the remaining, highest-activity clauses as fit
// under the budget.
//
// Per spec §9 ("possibly-buggy source behavior... specified as-is"), once the
// budget is exceeded the tail chunk of the most recently learned clauses is
// retained unconditionally, rather than re-sorted by activity with the rest.
type FixedSizeLCDS struct {
	budget            int
	conflictsSinceRed int64
	period            int64
}

func NewFixedSizeLCDS(budget int, period int64) *FixedSizeLCDS {
	if budget <= 0 {
		budget = 4000
	}
	if period <= 0 {
		period = int64(budget)
	}
	return &FixedSizeLCDS{budget: budget, period: period}
}

func (l *FixedSizeLCDS) Init()             { l.conflictsSinceRed = 0 }
func (l *FixedSizeLCDS) NewConflict(int)   { l.conflictsSinceRed++ }
func (l *FixedSizeLCDS) NeedToReduceDB() bool {
	return l.conflictsSinceRed >= l.period
}

func (l *FixedSizeLCDS) ReduceDB(s *Solver) {
	l.conflictsSinceRed = 0

	learnts := s.learnts
	if len(learnts) <= l.budget {
		return
	}

	// Tail chunk: the most recently learned clauses, kept unconditionally.
	tailLen := l.budget / 2
	if tailLen > len(learnts) {
		tailLen = len(learnts)
	}
	head, tail := learnts[:len(learnts)-tailLen], learnts[len(learnts)-tailLen:]

	sort.Slice(head, func(i, j int) bool {
		return head[i].Activity() > head[j].Activity()
	})

	kept := append([]Constr(nil), tail...)
	for _, c := range head {
		if keepClause(s, c) || len(kept) < l.budget {
			kept = append(kept, c)
			continue
		}
		c.Remove(s)
	}
	s.learnts = kept
}

// MemoryLCDS reduces the learned database when the process's free memory
// drops below a watermark, sorting learned clauses by activity and
// discarding the (non-binary, non-locked) lower-activity half.
type MemoryLCDS struct {
	freeBytesFn func() uint64 // injected for testability; defaults to runtime stats
	watermark   uint64
}

func NewMemoryLCDS(watermark uint64, freeBytesFn func() uint64) *MemoryLCDS {
	if watermark == 0 {
		watermark = 256 << 20 // 256 MiB
	}
	if freeBytesFn == nil {
		freeBytesFn = defaultFreeBytes
	}
	return &MemoryLCDS{watermark: watermark, freeBytesFn: freeBytesFn}
}

func (l *MemoryLCDS) Init()           {}
func (l *MemoryLCDS) NewConflict(int) {}

func (l *MemoryLCDS) NeedToReduceDB() bool {
	return l.freeBytesFn() < l.watermark
}

func (l *MemoryLCDS) ReduceDB(s *Solver) {
	learnts := s.learnts
	sort.Slice(learnts, func(i, j int) bool {
		return learnts[i].Activity() > learnts[j].Activity()
	})

	half := len(learnts) / 2
	kept := append([]Constr(nil), learnts[:half]...)
	for _, c := range learnts[half:] {
		if keepClause(s, c) {
			kept = append(kept, c)
			continue
		}
		c.Remove(s)
	}
	s.learnts = kept
}

// GlucoseLCDS is the "glucose" strategy: reductions rank learnt clauses by
// constraintLBD(c) (the clause's lbd field, computed once by record() — spec
// §4.7's "activity... means LBD, so lower is better" — never by the
// unrelated, unboundedly-growing Activity()/BumpActivity() clause-activity
// score). Reductions happen at a growing period (starting at 5000
// conflicts, +1000 after every reduction) and discard the upper half (by
// LBD, ascending sort so "upper half" is the worse half) whose LBD exceeds 2
// and which isn't locked or binary, per spec §4.7.
type GlucoseLCDS struct {
	conflictsSinceRed int64
	nextPeriod        int64
}

func NewGlucoseLCDS() *GlucoseLCDS {
	return &GlucoseLCDS{nextPeriod: 5000}
}

func (l *GlucoseLCDS) Init() {
	l.conflictsSinceRed = 0
	l.nextPeriod = 5000
}

func (l *GlucoseLCDS) NewConflict(lbd int) {
	l.conflictsSinceRed++
}

func (l *GlucoseLCDS) NeedToReduceDB() bool {
	return l.conflictsSinceRed >= l.nextPeriod
}

func (l *GlucoseLCDS) ReduceDB(s *Solver) {
	l.conflictsSinceRed = 0
	l.nextPeriod += 1000

	learnts := s.learnts
	sort.Slice(learnts, func(i, j int) bool {
		return constraintLBD(learnts[i]) < constraintLBD(learnts[j]) // ascending LBD
	})

	half := len(learnts) / 2
	kept := append([]Constr(nil), learnts[:half]...)
	for _, c := range learnts[half:] {
		if c.Size() <= 2 || c.Locked(s) || constraintLBD(c) <= 2 {
			kept = append(kept, c)
			continue
		}
		c.Remove(s)
	}
	s.learnts = kept
}

func defaultFreeBytes() uint64 {
	// No portable stdlib way to read system free memory; report a large
	// constant so MemoryLCDS is effectively disabled unless the caller
	// injects a real probe (e.g. from gopsutil or /proc/meminfo parsing).
	return 1 << 62
}
