package sat

import "fmt"

// Var is a propositional variable, a positive id in [1, nVars]. Variable 0
// is never valid: it is reserved to catch the "literal 0" usage error that
// DIMACS callers sometimes make.
type Var int

// Literal is the internal encoding of a DIMACS literal. For variable v the
// two literals are 2v (positive) and 2v+1 (negative); l^1 negates, l>>1
// recovers the variable. Variable ids here are 0-based internal ids, distinct
// from the external, 1-based DIMACS Var above (see Vocabulary.GetFromPool).
type Literal int

// PositiveLiteral returns the positive literal of internal variable id v.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the negative literal of internal variable id v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the internal id of the literal's variable.
func (l Literal) VarID() int {
	return int(l) >> 1
}

// IsPositive returns true iff l represents the variable's value directly
// (as opposed to its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
