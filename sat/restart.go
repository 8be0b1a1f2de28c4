package sat

// ema is an exponential moving average, grounded on the teacher's unwired
// sat/avg.go helper. The first sample seeds the average; later samples blend
// in at (1-decay).
type ema struct {
	decay      float64
	value      float64
	seeded     bool
	numSamples int64
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) Add(x float64) {
	e.numSamples++
	if !e.seeded {
		e.seeded = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) Value() float64 { return e.value }

// ConflictTimer is fed one event per conflict, carrying the LBD (literal
// block distance) of the clause the conflict produced. Restarter and the
// LCDS strategies both subscribe to this via a conflictDispatcher so the
// search driver only has to report each conflict once.
type ConflictTimer interface {
	NewConflict(lbd int)
}

// conflictDispatcher fans a single conflict event out to every subscribed
// timer (NewSolver subscribes the active Restarter and the active LCDS
// strategy). The conflict-count timeout is not a subscriber; search checks
// it directly through checkTimeout.
type conflictDispatcher struct {
	timers []ConflictTimer
}

func (d *conflictDispatcher) Subscribe(t ConflictTimer) {
	d.timers = append(d.timers, t)
}

func (d *conflictDispatcher) Reset() {
	d.timers = d.timers[:0]
}

func (d *conflictDispatcher) Fire(lbd int) {
	for _, t := range d.timers {
		t.NewConflict(lbd)
	}
}

// Restarter decides when the search driver should abandon the current
// restart epoch and resume from rootLevel with a fresh search loop
// iteration (spec §4.6).
type Restarter interface {
	ConflictTimer
	Init()
	OnRestart()
	OnBackjumpToRootLevel()
	ShouldRestart() bool
}

// LubyRestarter schedules restarts at conflict counts following the Luby
// sequence (1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,...) scaled by a unit length, the
// restart policy MiniSAT-family solvers default to.
type LubyRestarter struct {
	unit int64

	conflictsSinceRestart int64
	restartCount          int64
}

func NewLubyRestarter(unit int64) *LubyRestarter {
	if unit <= 0 {
		unit = 100
	}
	return &LubyRestarter{unit: unit}
}

func (r *LubyRestarter) Init()                  { r.conflictsSinceRestart, r.restartCount = 0, 0 }
func (r *LubyRestarter) OnBackjumpToRootLevel() {}

func (r *LubyRestarter) OnRestart() {
	r.conflictsSinceRestart = 0
	r.restartCount++
}

func (r *LubyRestarter) NewConflict(lbd int) {
	r.conflictsSinceRestart++
}

func (r *LubyRestarter) ShouldRestart() bool {
	threshold := r.unit * luby(r.restartCount)
	return r.conflictsSinceRestart >= threshold
}

// luby returns the x'th (0-indexed) term of the base-2 Luby sequence
// (1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,...), using the standard MiniSAT/Glucose
// closed-form recurrence rather than tabulating the sequence.
func luby(x int64) int64 {
	size, seq := int64(1), int64(0)
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	result := int64(1)
	for i := int64(0); i < seq; i++ {
		result *= 2
	}
	return result
}

// GeometricRestarter grows the conflict budget by a fixed factor after each
// restart epoch, grounded on the teacher's inline schedule in
// Solver.Solve: "numConflicts += numConflicts / 10" is the factor=1.1 case.
type GeometricRestarter struct {
	initial int64
	factor  float64

	budget                int64
	conflictsSinceRestart int64
}

func NewGeometricRestarter(initial int64, factor float64) *GeometricRestarter {
	if initial <= 0 {
		initial = 100
	}
	if factor <= 1 {
		factor = 1.1
	}
	return &GeometricRestarter{initial: initial, factor: factor}
}

func (r *GeometricRestarter) Init() {
	r.budget = r.initial
	r.conflictsSinceRestart = 0
}

func (r *GeometricRestarter) OnBackjumpToRootLevel() {}

func (r *GeometricRestarter) OnRestart() {
	r.conflictsSinceRestart = 0
	r.budget += int64(float64(r.budget) * (r.factor - 1))
	if r.budget <= 0 {
		r.budget = r.initial
	}
}

func (r *GeometricRestarter) NewConflict(lbd int) {
	r.conflictsSinceRestart++
}

func (r *GeometricRestarter) ShouldRestart() bool {
	return r.conflictsSinceRestart >= r.budget
}

// GlucoseRestarter is the dynamic, in-processing-style strategy: it tracks a
// fast (recent) and slow (long-run) moving average of learned-clause LBD and
// restarts whenever the fast average exceeds the slow average by a margin,
// the standard Glucose/Picosat trigger. Grounded on the teacher's unwired
// EMA helper (sat/avg.go), adopted here as the dynamic restart's core.
type GlucoseRestarter struct {
	fast, slow        ema
	margin            float64
	minConflicts      int64
	conflictsTotal    int64
	sinceLastRestart  int64
}

func NewGlucoseRestarter(margin float64, minConflicts int64) *GlucoseRestarter {
	if margin <= 1 {
		margin = 1.25
	}
	if minConflicts <= 0 {
		minConflicts = 50
	}
	return &GlucoseRestarter{
		fast:         newEMA(1.0 - 1.0/32.0),
		slow:         newEMA(1.0 - 1.0/4096.0),
		margin:       margin,
		minConflicts: minConflicts,
	}
}

func (r *GlucoseRestarter) Init() {
	r.fast, r.slow = newEMA(r.fast.decay), newEMA(r.slow.decay)
	r.conflictsTotal, r.sinceLastRestart = 0, 0
}

func (r *GlucoseRestarter) OnBackjumpToRootLevel() {}

func (r *GlucoseRestarter) OnRestart() {
	r.sinceLastRestart = 0
}

func (r *GlucoseRestarter) NewConflict(lbd int) {
	r.conflictsTotal++
	r.sinceLastRestart++
	r.fast.Add(float64(lbd))
	r.slow.Add(float64(lbd))
}

func (r *GlucoseRestarter) ShouldRestart() bool {
	if r.sinceLastRestart < r.minConflicts || r.slow.numSamples == 0 {
		return false
	}
	return r.fast.Value() > r.margin*r.slow.Value()
}
