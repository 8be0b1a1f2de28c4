//go:build !clausepool

package sat

// newClause allocates a fresh Clause with its own backing array: one make
// per clause, the default allocator. Grounded on the teacher's
// clause_alloc.go; swap in the clausepool build tag for a pooled allocator
// under heavy learnt-clause churn.
func newClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{prevPos: 2}
	if learnt {
		c.status |= statusLearnt
	}
	c.literals = append(make([]Literal, 0, len(literals)), literals...)
	return c
}

func freeClause(c *Clause) {}
