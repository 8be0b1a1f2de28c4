package sat

import (
	"strconv"
	"strings"
)

// noGuard marks a watcher entry that has no short-circuiting guard literal.
// Clauses always supply a real guard (the other watched literal); Cardinality
// constraints, which watch every one of their literals rather than just two,
// have no single literal that can play that role.
const noGuard Literal = -2

// Cardinality is a simple, unoptimized "at least k of these n literals are
// true" constraint. Per spec §1, cardinality/pseudo-Boolean propagation is
// out of this core's scope beyond satisfying the Constr contract; this
// implementation recomputes its false-literal count by scanning on every
// Propagate call rather than maintaining the two-watched-literal invariant
// clauses use, which is sufficient for correctness but not for the hot-path
// performance §2 reserves for Clause.
type Cardinality struct {
	literals []Literal
	degree   int // minimum number of literals that must be true

	activity float64
	status   clauseStatus
}

// newCardinality returns a Constr requiring at least degree of literals to be
// true, or (nil, false) if the constraint is trivially contradictory
// (degree > len(literals)), or (nil, true) if it is trivially satisfied
// (degree <= 0).
func newCardinality(s *Solver, literals []Literal, degree int) (*Cardinality, bool) {
	if degree <= 0 {
		return nil, true
	}
	if degree > len(literals) {
		return nil, false
	}

	c := &Cardinality{
		literals: append([]Literal(nil), literals...),
		degree:   degree,
	}
	for _, lit := range c.literals {
		s.vocab.addWatch(lit.Opposite(), c, noGuard)
	}
	return c, true
}

func (c *Cardinality) Size() int             { return len(c.literals) }
func (c *Cardinality) Get(i int) Literal     { return c.literals[i] }
func (c *Cardinality) Activity() float64     { return c.activity }
func (c *Cardinality) Learnt() bool          { return c.status&statusLearnt != 0 }
func (c *Cardinality) isLearnt() bool        { return c.status&statusLearnt != 0 }

func (c *Cardinality) CanBePropagatedMultipleTimes() bool { return true }

func (c *Cardinality) Locked(s *Solver) bool {
	for _, lit := range c.literals {
		if s.vocab.getReason(lit.VarID()) == Constr(c) {
			return true
		}
	}
	return false
}

func (c *Cardinality) Remove(s *Solver) {
	for _, lit := range c.literals {
		s.vocab.removeWatch(lit.Opposite(), c)
	}
}

func (c *Cardinality) Simplify(s *Solver) bool {
	trueCount, k := 0, 0
	for _, lit := range c.literals {
		switch s.vocab.litValue(lit) {
		case True:
			trueCount++
		case False:
			// discard
		default:
			c.literals[k] = lit
			k++
		}
	}
	c.literals = c.literals[:k]
	return trueCount >= c.degree
}

func (c *Cardinality) falseCount(s *Solver) int {
	n := 0
	for _, lit := range c.literals {
		if s.vocab.litValue(lit) == False {
			n++
		}
	}
	return n
}

// Propagate recomputes how many literals are false; if too many are false to
// still reach degree, the constraint conflicts. If exactly the slack number
// are false, every remaining unassigned literal is forced true.
func (c *Cardinality) Propagate(s *Solver, l Literal) bool {
	s.vocab.addWatch(l, c, noGuard)

	slack := len(c.literals) - c.degree
	nFalse := c.falseCount(s)
	if nFalse > slack {
		return false // conflict: too many literals already false
	}
	if nFalse < slack {
		return true // no forcing yet
	}
	for _, lit := range c.literals {
		if s.vocab.litValue(lit) == Unknown {
			if !s.enqueue(lit, c) {
				return false
			}
		}
	}
	return true
}

// CalcReason returns the negation of every currently-false literal. This is
// sound (their conjunction does entail p, or conflict) though not always
// minimal; a tighter reason would pick exactly slack+1 of them.
func (c *Cardinality) CalcReason(s *Solver, p Literal, out []Literal) []Literal {
	out = out[:0]
	for _, lit := range c.literals {
		if lit == p {
			continue
		}
		if s.vocab.litValue(lit) == False {
			out = append(out, lit.Opposite())
		}
	}
	return out
}

func (c *Cardinality) BumpActivity(s *Solver) {
	if c.status&statusLearnt == 0 {
		return
	}
	c.activity += s.clauseInc
}

func (c *Cardinality) String() string {
	sb := strings.Builder{}
	sb.WriteString("Cardinality[>=")
	sb.WriteString(strconv.Itoa(c.degree))
	sb.WriteByte(' ')
	for i, l := range c.literals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
