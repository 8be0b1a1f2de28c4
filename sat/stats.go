package sat

import "time"

// Stats accumulates the solver's running counters, generalizing the
// teacher's TotalConflicts/TotalRestarts/TotalIterations fields on Solver
// into the §2.12 "counters, tunable parameters, constraint-type tallies"
// component.
type Stats struct {
	Conflicts    int64
	Restarts     int64
	Iterations   int64
	Decisions    int64
	Propagations int64

	LearntClauses    int64
	CardinalityAdded int64
	RemovedByLCDS    int64

	StartTime time.Time
}

func (st *Stats) reset() {
	*st = Stats{StartTime: time.Now()}
}

func (st *Stats) elapsed() time.Duration {
	return time.Since(st.StartTime)
}
