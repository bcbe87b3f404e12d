package solver

import "context"

// run is the CDCL search loop: propagate to a fixed point, analyze and
// backjump on conflict, or decide the next candidate and advance a
// level. It terminates on a top-level conflict (UNSAT), a full
// assignment with nothing left to decide (SAT), or caller cancellation.
func (s *Solver) run(ctx context.Context, in Input) Outcome {
	s.topSpecs = in.Specs
	s.topConstraints = in.Constraints

	if _, conflict := s.addClause(clause{kind: kindInstallRoot, lits: []literal{{candidate: RootCandidate, value: true}}}); conflict != noClause {
		panic(errFatal("install-root clause was immediately contradicted"))
	}

	setupConflict := noClause
	note := func(conflict ClauseID) {
		if conflict != noClause && setupConflict == noClause {
			setupConflict = conflict
		}
	}
	for _, fp := range in.Locked {
		note(s.lockFingerprint(fp))
	}
	for _, fp := range in.Pinned {
		// Pinned fingerprints are treated identically to locked ones: both
		// force the exact candidate true. This folds conda's "if installed,
		// must be this version" semantics into a hard lock, a deliberate
		// simplification recorded in DESIGN.md.
		note(s.lockFingerprint(fp))
	}
	for _, fp := range in.Excluded {
		note(s.excludeFingerprint(fp))
	}
	if setupConflict != noClause {
		return Outcome{Status: StatusUNSAT, Problem: s.extractProblem([]ClauseID{setupConflict})}
	}

	token := ctxToken{ctx: ctx}
	for {
		if token.cancelled() {
			return Outcome{Status: StatusCancelled}
		}

		if conflict := s.propagate(); conflict != noClause {
			result := s.analyze(conflict)
			_, blocked := s.backjump(result)
			if blocked != noClause {
				return Outcome{Status: StatusUNSAT, Problem: s.extractProblem(result.trace)}
			}
			s.checkInvariants(ctx)
			continue
		}

		next, ok := s.pickDecision()
		if !ok {
			return Outcome{Status: StatusSAT, Chosen: s.chosenFingerprints()}
		}
		s.currentLevel++
		s.decide(next)
		s.checkInvariants(ctx)
	}
}

// pickDecision chooses the next branching literal: the first
// not-yet-satisfied Requires clause's best-ranked unassigned candidate,
// decided true. If every materialized
// Requires clause is already satisfied, any remaining unassigned
// candidate is decided false, pinning down a minimal model instead of
// installing packages nothing asked for. ok is false once nothing is
// left to decide, signaling a satisfying assignment.
func (s *Solver) pickDecision() (literal, bool) {
	for id := ClauseID(0); int(id) < s.clauses.len(); id++ {
		cl := s.clauses.get(id)
		if cl.kind != kindRequires {
			continue
		}
		satisfied := false
		var firstFree *literal
		for i, lit := range cl.lits {
			val, assigned := s.decisions.value(lit.candidate)
			if assigned && val == lit.value {
				satisfied = true
				break
			}
			if i > 0 && !assigned && firstFree == nil {
				f := lit
				firstFree = &f
			}
		}
		if !satisfied && firstFree != nil {
			return literal{candidate: firstFree.candidate, value: true}, true
		}
	}

	for c := CandidateID(1); int(c) < s.universe.count(); c++ {
		if !s.decisions.isAssigned(c) {
			return literal{candidate: c, value: false}, true
		}
	}
	return literal{}, false
}

func (s *Solver) decide(lit literal) {
	s.decisions.set(lit.candidate, lit.value, s.currentLevel)
	s.stack.push(stackEntry{candidate: lit.candidate, value: lit.value, level: s.currentLevel, antecedent: noClause})
}

// chosenFingerprints reads out every candidate assigned true, excluding
// the synthetic root, as the solver's output contract.
func (s *Solver) chosenFingerprints() []Fingerprint {
	var out []Fingerprint
	for c := CandidateID(1); int(c) < s.universe.count(); c++ {
		val, assigned := s.decisions.value(c)
		if assigned && val {
			out = append(out, s.fingerprintOf(c))
		}
	}
	return out
}

// lockFingerprint forces the exact candidate fp names true via a unit
// Lock clause at level 0. It panics if fp does not name a real
// repository candidate: a caller-input error, not a solver-internal
// one, but one that can only be raised before any search state exists.
func (s *Solver) lockFingerprint(fp Fingerprint) ClauseID {
	id, ok := s.universe.internByKey(fp.key())
	if !ok {
		panic(errInvalidArgument("locked/pinned fingerprint not found in any repository: " + fp.Name + " " + fp.Version))
	}
	_, conflict := s.addClause(clause{kind: kindLock, lits: []literal{{candidate: id, value: true}}})
	return conflict
}

// excludeFingerprint forces the exact candidate fp names false via a
// unit Excluded clause. A fingerprint naming a candidate nothing
// actually offers is simply a no-op exclusion.
func (s *Solver) excludeFingerprint(fp Fingerprint) ClauseID {
	id, ok := s.universe.internByKey(fp.key())
	if !ok {
		return noClause
	}
	_, conflict := s.addClause(clause{kind: kindExcluded, lits: []literal{{candidate: id, value: false}}})
	return conflict
}
