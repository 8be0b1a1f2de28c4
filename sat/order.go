package sat

import (
	"github.com/rhartert/yagh"
)

// varOrder maintains the pool of not-yet-decided variables ordered by
// activity, implemented as a binary heap keyed by (negative) activity so
// that Pop returns the highest-activity variable first. Ties break on
// insertion order, which yagh's IntMap guarantees via stable element ids.
//
// Decrease/increase-key on activity bumps is O(log n) through yagh.Put;
// variables removed from the heap on decision are lazily reinserted by
// Reinsert when they're later undone, rather than kept in the heap while
// assigned (MiniSAT's classic "lazy deletion" trick).
type varOrder struct {
	heap *yagh.IntMap[float64]

	activity []float64 // in [0, 1e100)
	inc      float64   // in (0, 1e100)
	decay    float64   // in (0, 1]

	phases      []LBool
	phaseSaving bool
}

// NumVars returns the number of variables registered via NewVar so far.
func (vo *varOrder) NumVars() int { return len(vo.activity) }

func newVarOrder(decay float64, phaseSaving bool) *varOrder {
	return &varOrder{
		heap:        yagh.New[float64](0),
		inc:         1,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

// NewVar registers a freshly allocated variable with zero activity and a
// default (true) phase, and makes it available for selection.
func (vo *varOrder) NewVar(initPhase bool) {
	v := len(vo.activity)
	vo.activity = append(vo.activity, 0)
	vo.phases = append(vo.phases, Lift(initPhase))
	vo.heap.GrowBy(1)
	vo.heap.Put(v, 0)
}

// Reinsert makes variable v a candidate for selection again, recording the
// phase it held before being unassigned (if phase saving is enabled).
func (vo *varOrder) Reinsert(v int, lastValue LBool) {
	if vo.phaseSaving {
		vo.phases[v] = lastValue
	}
	vo.heap.Put(v, -vo.activity[v])
}

// Remove excludes v from selection. Used when v is assigned (by decision or
// propagation): it stays out of the heap until Reinsert brings it back.
func (vo *varOrder) Remove(v int) {
	if vo.heap.Contains(v) {
		vo.heap.Remove(v)
	}
}

// Bump increases v's activity score, rescaling all scores if the ceiling is
// exceeded. Grounded on the teacher's BumpVarActivity/rescaleScoresAndIncrement.
func (vo *varOrder) Bump(v int) {
	vo.activity[v] += vo.inc
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.activity[v])
	}
	if vo.activity[v] > 1e100 {
		vo.rescale()
	}
}

// Decay multiplies the bump increment by 1/decay, giving recently bumped
// variables relatively more weight than older bumps without revisiting every
// variable's score.
func (vo *varOrder) Decay() {
	vo.inc /= vo.decay
	if vo.inc > 1e100 {
		vo.rescale()
	}
}

func (vo *varOrder) rescale() {
	vo.inc *= 1e-100
	for v, a := range vo.activity {
		vo.activity[v] = a * 1e-100
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -vo.activity[v])
		}
	}
}

// Select pops the highest-activity unassigned variable and returns the
// literal to assign it to, honoring the saved phase. It reports ok=false if
// every variable has already been assigned.
func (vo *varOrder) Select(s *Solver) (Literal, bool) {
	for {
		id, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		if s.vocab.varValue(id.Elem) != Unknown {
			continue // stale: assigned since last Reinsert/Remove
		}
		switch vo.phases[id.Elem] {
		case False:
			return NegativeLiteral(id.Elem), true
		default:
			return PositiveLiteral(id.Elem), true
		}
	}
}
