//go:build !solverdebug

package solver

import "context"

// checkInvariants is a no-op outside the solverdebug build tag; see
// invariants_debug.go for the real assertions.
func (s *Solver) checkInvariants(_ context.Context) {}
