//go:build clausepool

package sat

import "sync"

// Size-bucketed clause-literal pools, grounded on the teacher's
// clause_allocpool.go. Opt in with -tags clausepool for high-throughput
// embedders that want to avoid one make() per learnt clause.
var pool8 = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 8)
		return &s
	},
}

var pool64 = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 64)
		return &s
	},
}

var pool256 = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 256)
		return &s
	},
}

var poolHuge = sync.Pool{
	New: func() any {
		s := make([]Literal, 0, 512)
		return &s
	},
}

func newClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{prevPos: 2}
	if learnt {
		c.status |= statusLearnt
	}

	switch l := len(literals); {
	case l <= 8:
		c.sliceRef = pool8.Get().(*[]Literal)
	case l <= 64:
		c.sliceRef = pool64.Get().(*[]Literal)
	case l <= 256:
		c.sliceRef = pool256.Get().(*[]Literal)
	default:
		c.sliceRef = poolHuge.Get().(*[]Literal)
	}

	c.literals = (*c.sliceRef)[:0]
	c.literals = append(c.literals, literals...)
	return c
}

func freeClause(c *Clause) {
	if c.sliceRef == nil {
		return
	}
	*c.sliceRef = c.literals

	switch l := len(c.literals); {
	case l >= 512:
		poolHuge.Put(c.sliceRef)
	case l >= 256:
		pool256.Put(c.sliceRef)
	case l >= 64:
		pool64.Put(c.sliceRef)
	default:
		pool8.Put(c.sliceRef)
	}
	c.sliceRef = nil
}
