// Package dimacs loads DIMACS CNF files into a sat.Solver. It is an
// external collaborator, not part of the solver's core (spec §1's
// "DIMACS/other textual formats" non-goal): the core only needs a way to
// receive clauses as signed integers, and this package is one way to
// produce them.
package dimacs

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/go-sat/cdclsat/sat"
)

// SATSolver is the narrow surface LoadDIMACS needs from a solver: declare
// n variables up front, then add clauses as signed DIMACS literals.
// *sat.Solver satisfies this via EnsureVars and AddClause.
type SATSolver interface {
	EnsureVars(n int)
	AddClause(literals []int) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file at filename (transparently
// gunzipped if gzipped is set) and loads its formula into solver.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{solver: solver}
	return dimacs.ReadBuilder(r, b)
}

// builder adapts an SATSolver to the github.com/rhartert/dimacs.Builder
// callback interface, grounded on the teacher's parsers/parsers.go.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instance of type %q is not supported", problem)
	}
	b.solver.EnsureVars(nVars)
	return nil
}

// Clause adds one clause. A *sat.ContradictionError is not a load failure:
// the solver has recorded that the formula is unsatisfiable, and a later
// IsSatisfiable reports false.
func (b *builder) Clause(tmpClause []int) error {
	err := b.solver.AddClause(tmpClause)
	var contradiction *sat.ContradictionError
	if errors.As(err, &contradiction) {
		return nil
	}
	return err
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}
