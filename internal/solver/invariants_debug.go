//go:build solverdebug

package solver

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
)

// checkInvariants asserts the solver's core structural invariants hold
// of the current state: the root candidate's assignment, clause and
// watch-slot shape, assignment-level bounds, and decision-stack level
// ordering. It is compiled in only under the solverdebug build tag;
// release builds pay nothing for it, see invariants_release.go.
func (s *Solver) checkInvariants(ctx context.Context) {
	rootAssigned := s.decisions.isAssigned(RootCandidate)
	assert.True(ctx, rootAssigned, "invariant 4: root candidate must always be assigned")
	if rootAssigned {
		rootVal, _ := s.decisions.value(RootCandidate)
		assert.True(ctx, rootVal, "invariant 4: root candidate must be assigned true")
		assert.True(ctx, s.decisions.level(RootCandidate) == 0, "invariant 4: root candidate must be assigned at level 0")
	}

	for id := ClauseID(0); int(id) < s.clauses.len(); id++ {
		cl := s.clauses.get(id)
		assert.True(ctx, len(cl.lits) > 0, "invariant 1: every clause must have at least one literal")
		assert.True(ctx, cl.watch[0] >= 0 && cl.watch[0] < len(cl.lits), "invariant 2: watch slot 0 must index a real literal")
		assert.True(ctx, cl.watch[1] >= 0 && cl.watch[1] < len(cl.lits), "invariant 2: watch slot 1 must index a real literal")
	}

	for c := CandidateID(0); int(c) < s.universe.count(); c++ {
		if _, assigned := s.decisions.value(c); assigned {
			assert.True(ctx, s.decisions.level(c) <= s.currentLevel, "invariant 3: an assignment's level cannot exceed the current level")
		}
	}

	for i := 1; i < s.stack.len(); i++ {
		assert.True(ctx, s.stack.entries[i].level >= s.stack.entries[i-1].level, "invariant 6: the decision stack's levels are non-decreasing")
	}
}
