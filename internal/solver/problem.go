package solver

// ProblemKind is the UNSAT explanation taxonomy.
type ProblemKind int

const (
	ProblemTopLevelRequirementUnsatisfiable ProblemKind = iota
	ProblemTopLevelNameUnknown
	ProblemDependencyUnsatisfiable
	ProblemConstraint
	ProblemSameName
	ProblemRequires
)

// ProblemEntry is one clause's contribution to an UNSAT explanation. Not
// every field is populated for every Kind: HasSource/HasTarget mark
// which of Source/Target actually apply.
type ProblemEntry struct {
	Kind        ProblemKind
	PackageName string
	VersionSet  string
	Source      Fingerprint
	HasSource   bool
	Target      Fingerprint
	HasTarget   bool
}

// extractProblem turns a conflict trace (the clauses conflict analysis
// visited) into a deduplicated, ordered list of ProblemEntry values.
// Clause kinds that aren't part of the taxonomy (install-root, locks,
// exclusions, learnt clauses) are dropped rather than surfaced raw.
func (s *Solver) extractProblem(trace []ClauseID) []ProblemEntry {
	seen := map[ClauseID]bool{}
	var out []ProblemEntry
	for _, id := range trace {
		if seen[id] {
			continue
		}
		seen[id] = true
		if entry, ok := s.classify(s.clauses.get(id)); ok {
			out = append(out, entry)
		}
	}
	return out
}

func (s *Solver) classify(cl *clause) (ProblemEntry, bool) {
	switch cl.kind {
	case kindRequires:
		entry := ProblemEntry{PackageName: cl.reqName, VersionSet: cl.reqExpr}
		switch {
		case cl.source == RootCandidate && !s.universe.hasAnyCandidates(cl.reqName):
			entry.Kind = ProblemTopLevelNameUnknown
		case cl.source == RootCandidate:
			entry.Kind = ProblemTopLevelRequirementUnsatisfiable
		case len(cl.lits) == 1:
			entry.Kind = ProblemDependencyUnsatisfiable
			entry.Source = s.fingerprintOf(cl.source)
			entry.HasSource = true
		default:
			entry.Kind = ProblemRequires
			entry.Source = s.fingerprintOf(cl.source)
			entry.HasSource = true
		}
		return entry, true

	case kindConstrains:
		return ProblemEntry{
			Kind:        ProblemConstraint,
			PackageName: cl.reqName,
			VersionSet:  cl.reqExpr,
			Source:      s.fingerprintOf(cl.source),
			HasSource:   true,
			Target:      s.fingerprintOf(cl.target),
			HasTarget:   true,
		}, true

	case kindSameName:
		return ProblemEntry{
			Kind:      ProblemSameName,
			Source:    s.fingerprintOf(cl.source),
			HasSource: true,
			Target:    s.fingerprintOf(cl.target),
			HasTarget: true,
		}, true

	default:
		return ProblemEntry{}, false
	}
}

func (s *Solver) fingerprintOf(c CandidateID) Fingerprint {
	rec := s.universe.record(c)
	return Fingerprint{Name: rec.name, Version: rec.version, Build: rec.buildString, Subdir: rec.subdir, Hash: rec.hash}
}
