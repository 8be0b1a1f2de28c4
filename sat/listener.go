package sat

// Listener observes a solve in progress. It is a pure observer: spec §5
// forbids a listener from calling back into solver mutators (no
// reentrancy), and the driver assumes listener methods return quickly.
// Embed NullListener to implement only the callbacks you need.
//
// The one escape hatch is solverService.Backtrack (see below), used
// by an enumerating listener to force the solver to add a blocking clause
// and backtrack after each model, per spec §6.
type Listener interface {
	Init(s *Solver)
	Start()
	End(status LBool)

	Assuming(l Literal)
	Propagating(l Literal, reason Constr)
	Backtracking(l Literal)
	Adding(l Literal)
	Learn(c Constr)
	ConflictFound(confl Constr, level int)

	BeginLoop()
	SolutionFound(model []bool)
	Backjump(level int)
	Cleaning()
	Restarting()
}

// NullListener implements Listener with no-op methods. Embed it in a
// partial listener to override only the callbacks of interest, the same
// pattern the teacher's DIMACS Builder uses for its optional Comment method.
type NullListener struct{}

func (NullListener) Init(s *Solver)                       {}
func (NullListener) Start()                               {}
func (NullListener) End(status LBool)                     {}
func (NullListener) Assuming(l Literal)                    {}
func (NullListener) Propagating(l Literal, reason Constr)  {}
func (NullListener) Backtracking(l Literal)                {}
func (NullListener) Adding(l Literal)                      {}
func (NullListener) Learn(c Constr)                        {}
func (NullListener) ConflictFound(confl Constr, level int) {}
func (NullListener) BeginLoop()                            {}
func (NullListener) SolutionFound(model []bool)            {}
func (NullListener) Backjump(level int)                    {}
func (NullListener) Cleaning()                             {}
func (NullListener) Restarting()                           {}

// solverService is the narrow, listener-facing control surface spec §6
// mentions ("a listener may request solverService.backtrack(clause)"): it
// lets an enumeration listener force the solver to block the model just
// found and keep searching, without exposing the rest of the Solver's
// mutators.
type solverService struct {
	s *Solver
}

// Backtrack records blockingClause (expected to negate the model just
// found) as pending. modelFound adds it as a permanent clause once the
// current (or next) model has been reported, and the search continues
// instead of returning that model as the final verdict.
func (svc solverService) Backtrack(blockingClause []Literal) error {
	return svc.s.addBlockingClause(blockingClause)
}
