package sat_test

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-sat/cdclsat/dimacs"
	"github.com/go-sat/cdclsat/sat"
)

// This test suite verifies that the solver finds the exact set of models
// for a handful of small DIMACS instances with known solutions, grounded
// on the teacher's yass_test.go TestSolveAll.
//
// Each test case is a pair of files under testdata/: an "xxx.cnf" DIMACS
// instance and an "xxx.cnf.models" file listing its models, one per line,
// as DIMACS literals terminated by 0 (possibly empty, for an
// unsatisfiable instance).

var testdataDir = "testdata"

type testCase struct {
	instanceName string
	instanceFile string
	modelsFile   string
}

func listTestCases(dir string) ([]testCase, error) {
	var cases []testCase
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".cnf") {
			return nil
		}
		cases = append(cases, testCase{
			instanceName: d.Name(),
			instanceFile: path,
			modelsFile:   path + ".models",
		})
		return nil
	})
	return cases, err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// modelKey renders a model as a binary string keyed on variable id, so two
// models using the same literals in a different order compare equal.
func modelKey(model []int) string {
	sorted := append([]int(nil), model...)
	sort.Slice(sorted, func(i, j int) bool { return abs(sorted[i]) < abs(sorted[j]) })
	var sb strings.Builder
	for _, l := range sorted {
		if l > 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func modelSet(models [][]int) map[string]struct{} {
	set := make(map[string]struct{}, len(models))
	for _, m := range models {
		set[modelKey(m)] = struct{}{}
	}
	return set
}

// solveAll enumerates every model of s by repeatedly solving and then
// adding the negation of the model just found as a new clause, per the
// pattern spec §6 documents for exhaustive enumeration without a Listener.
func solveAll(t *testing.T, s *sat.Solver) [][]int {
	t.Helper()
	var models [][]int
	for {
		ok, err := s.IsSatisfiable()
		if err != nil {
			t.Fatalf("IsSatisfiable: %s", err)
		}
		if !ok {
			return models
		}
		model := s.Model()
		models = append(models, model)

		blocking := make([]int, len(model))
		for i, l := range model {
			blocking[i] = -l
		}
		if err := s.AddClause(blocking); err != nil {
			return models // blocking clause itself contradictory: no more models
		}
	}
}

func TestSolveAll(t *testing.T) {
	cases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("listing test cases: %s", err)
	}
	if len(cases) == 0 {
		t.Fatal("no test cases found under testdata/")
	}

	for _, tc := range cases {
		t.Run(tc.instanceName, func(t *testing.T) {
			want, err := dimacs.ParseModels(tc.modelsFile)
			if err != nil {
				t.Fatalf("parsing models: %s", err)
			}

			s := sat.NewDefaultSolver()
			if err := dimacs.LoadDIMACS(tc.instanceFile, false, s); err != nil {
				t.Fatalf("loading instance: %s", err)
			}

			got := solveAll(t, s)

			if len(got) != len(want) {
				t.Errorf("wrong number of models: got %d, want %d", len(got), len(want))
			}
			if !cmp.Equal(modelSet(got), modelSet(want)) {
				t.Errorf("model mismatch: got %v, want %v", got, want)
			}
		})
	}
}
