package sat

// Factory builds constraints from literal lists, wiring them into the
// vocabulary's watch lists as it goes (spec §2 item 4, design note
// "Global singleton factory... becomes an explicit solver-config struct").
// A Solver is configured with one at construction time (Config.Factory);
// swapping it lets an embedder substitute its own constraint
// representations without touching the search driver.
type Factory interface {
	// NewClause builds (or simplifies away) a clause from tmpLiterals,
	// which it may reorder/shrink in place. It returns (constr, ok):
	// ok is false iff the clause is empty/contradictory at the root level;
	// constr is nil if the clause was fully subsumed (trivially true) or
	// reduced to a root-level unit (already enqueued).
	NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (Constr, bool)

	// NewCardinality builds an "at least degree" constraint the same way.
	NewCardinality(s *Solver, tmpLiterals []Literal, degree int) (Constr, bool)
}

// DefaultFactory is the clause/cardinality factory every Solver uses unless
// Config.Factory overrides it. Grounded on the teacher's NewClause: drop
// duplicate literals, detect tautologies (a literal and its negation both
// present), drop root-level-false literals, and handle the degenerate
// sizes (0 = contradiction, 1 = direct unit enqueue) before ever
// allocating a Clause.
type DefaultFactory struct{}

func (DefaultFactory) NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (Constr, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology: always satisfied
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.vocab.litValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := newClause(tmpLiterals[:size], learnt)
		if learnt {
			moveHighestLevelToSlotOne(s, c.literals)
		}
		s.vocab.addWatch(c.literals[0].Opposite(), c, c.literals[1])
		s.vocab.addWatch(c.literals[1].Opposite(), c, c.literals[0])
		return c, true
	}
}

// moveHighestLevelToSlotOne swaps the literal assigned at the highest
// decision level into position 1, so a freshly learnt clause's second watch
// sits on the literal that will be unassigned soonest on backjump — the
// same placement the teacher's NewClause computes for learnt clauses.
func moveHighestLevelToSlotOne(s *Solver, literals []Literal) {
	maxLevel, at := -1, 1
	for i := 1; i < len(literals); i++ {
		if lvl := s.vocab.getLevel(literals[i].VarID()); lvl > maxLevel {
			maxLevel, at = lvl, i
		}
	}
	literals[at], literals[1] = literals[1], literals[at]
}

func (DefaultFactory) NewCardinality(s *Solver, tmpLiterals []Literal, degree int) (Constr, bool) {
	return newCardinality(s, tmpLiterals, degree)
}
