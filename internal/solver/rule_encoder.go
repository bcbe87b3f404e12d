package solver

import "strings"

// splitDependExpr splits a "name" or "name <version-set>" dependency
// expression into its package name and the raw version-set text. A
// bare name has an empty version-set, matched as "anything" by
// parseVersionSet.
func splitDependExpr(raw string) (name string, versionSet string) {
	trimmed := strings.TrimSpace(raw)
	idx := strings.IndexAny(trimmed, " \t")
	if idx < 0 {
		return trimmed, ""
	}
	return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
}

// encode materializes a candidate's Requires and Constrains clauses the
// first time it is forced true, plus the Same-name clauses among the
// known candidates of each name it requires: eager clauses
// (install-root, locks, excluded) are built upfront by run(), everything
// else is built on demand here. Idempotent via the encoded guard.
func (s *Solver) encode(c CandidateID) {
	s.growEncoded(int(c) + 1)
	if s.encoded[c] {
		return
	}
	s.encoded[c] = true

	if c == RootCandidate {
		for _, req := range s.topSpecs {
			s.encodeRequiresParsed(c, req.Name, req.VersionSet)
		}
		for _, req := range s.topConstraints {
			s.encodeConstrainsParsed(c, req.Name, req.VersionSet)
		}
		return
	}

	record := s.universe.record(c)
	for _, dep := range record.depends {
		s.encodeRequires(c, dep)
	}
	for _, con := range record.constrains {
		s.encodeConstrains(c, con)
	}
}

// candidatesFor resolves every candidate of name matching vs, routed
// through the single entry point that also retroactively applies any
// Constrains rule registered for name against newly-discovered
// candidates: a candidate interned for the first time here, by a
// Requires clause on one package, may already be the target of another
// package's Constrains rule.
func (s *Solver) candidatesFor(name string, vs parsedVersionSet) []CandidateID {
	nameID := s.universe.internName(name)
	before := len(s.universe.byName[nameID])
	ids := s.universe.candidatesSatisfying(name, vs)
	fresh := s.universe.byName[nameID][before:]
	for _, target := range fresh {
		s.applyDeferredConstraints(nameID, target)
	}
	return ids
}

func (s *Solver) applyDeferredConstraints(nameID NameID, target CandidateID) {
	for _, rule := range s.rulesByName[nameID] {
		if rule.targetsSeen[target] {
			continue
		}
		rec := s.universe.record(target)
		if rule.versionSet.matches(rec.version, rec.buildString) {
			continue // compatible with the constraint: no clause needed.
		}
		rule.targetsSeen[target] = true
		s.emitConstrainsClause(rule.source, target, rule.name, rule.versionSet.raw)
	}
}

// encodeRequires builds the Requires disjunction for one dependency
// expression of source, given as the raw "name" / "name <version-set>"
// text a candidate's metadata carries.
func (s *Solver) encodeRequires(source CandidateID, raw string) {
	name, expr := splitDependExpr(raw)
	s.encodeRequiresParsed(source, name, expr)
}

// encodeRequiresParsed builds ¬source ∨ candidate_1 ∨ candidate_2 ∨ ...
// for one already-split (name, version-set) requirement, literals
// ordered by the active strategy. A requirement naming a package with no
// matching candidate at all still produces a clause, just one with no
// positive literals, which is immediately contradicted since source is
// always true by the time its rules are encoded; for a top-level
// requirement the problem extractor distinguishes "no candidate exists
// at all" from "some candidates exist, none satisfy" by checking the
// repository index (universe.hasAnyCandidates).
func (s *Solver) encodeRequiresParsed(source CandidateID, name, expr string) {
	nameID := s.universe.internName(name)
	vsID, err := s.universe.internVersionSet(nameID, expr)
	if err != nil {
		panic(errFatal("unparseable requires expression " + name + " " + expr + ": " + err.Error()))
	}
	vs := *s.universe.versionSet(vsID)

	matches := s.candidatesFor(name, vs)
	sorted := s.universe.sortCandidates(matches, s.strategyForName(source, name), s.preferInstalledOnTie)
	s.ensureSameName(s.universe.candidatesOf(nameID))

	lits := make([]literal, 0, len(sorted)+1)
	lits = append(lits, literal{candidate: source, value: false})
	for _, cand := range sorted {
		lits = append(lits, literal{candidate: cand, value: true})
	}
	id, conflict := s.addClause(clause{kind: kindRequires, lits: lits, source: source, reqName: name, reqExpr: expr})
	s.recordConflict(id, conflict)
}

// encodeConstrains builds ¬source ∨ ¬target for every offending
// candidate known at encode time, given the raw "name" / "name
// <version-set>" text a candidate's metadata carries.
func (s *Solver) encodeConstrains(source CandidateID, raw string) {
	name, expr := splitDependExpr(raw)
	s.encodeConstrainsParsed(source, name, expr)
}

// encodeConstrainsParsed is encodeConstrains for an already-split (name,
// version-set) constraint. A Constrains expression names the version
// range source is COMPATIBLE with, the conda "constrains" metadata
// field's real meaning: candidates of name that satisfy it may coexist
// with source, candidates that do not are the offenders and get
// ¬source ∨ ¬target. Every repository candidate of name is interned up
// front (not just the offenders) since compatibility can only be judged
// once a candidate is known; a constraintRule is registered so
// candidates discovered later, through some other package's Requires,
// are checked retroactively too.
func (s *Solver) encodeConstrainsParsed(source CandidateID, name, expr string) {
	nameID := s.universe.internName(name)
	vsID, err := s.universe.internVersionSet(nameID, expr)
	if err != nil {
		panic(errFatal("unparseable constrains expression " + name + " " + expr + ": " + err.Error()))
	}
	vs := *s.universe.versionSet(vsID)

	rule := &constraintRule{source: source, name: name, versionSet: vs, targetsSeen: map[CandidateID]bool{}}
	for _, target := range s.candidatesFor(name, parsedVersionSet{anything: true}) {
		rec := s.universe.record(target)
		if vs.matches(rec.version, rec.buildString) {
			continue
		}
		rule.targetsSeen[target] = true
		s.emitConstrainsClause(source, target, name, expr)
	}
	s.constraintRules = append(s.constraintRules, rule)
	s.rulesByName[nameID] = append(s.rulesByName[nameID], rule)
}

func (s *Solver) emitConstrainsClause(source, target CandidateID, name, expr string) {
	if source == target {
		return
	}
	id, conflict := s.addClause(clause{
		kind:    kindConstrains,
		lits:    []literal{{candidate: source, value: false}, {candidate: target, value: false}},
		source:  source,
		target:  target,
		reqName: name,
		reqExpr: expr,
	})
	s.recordConflict(id, conflict)
}

// ensureSameName adds ¬a ∨ ¬b for every pair in ids not already
// covered: at most one candidate sharing a name may be true at once.
// pairsAdded makes repeated calls, as more candidates of a name are
// discovered, additive rather than duplicating work already done.
func (s *Solver) ensureSameName(ids []CandidateID) {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			key := normalizedPair(a, b)
			if s.pairsAdded[key] {
				continue
			}
			s.pairsAdded[key] = true
			id, conflict := s.addClause(clause{
				kind:   kindSameName,
				lits:   []literal{{candidate: a, value: false}, {candidate: b, value: false}},
				source: a,
				target: b,
			})
			s.recordConflict(id, conflict)
		}
	}
}

// recordConflict latches the first clause-construction-time conflict
// seen since the last time it was drained, for the driver to treat the
// same way as a propagation conflict.
func (s *Solver) recordConflict(_ ClauseID, conflict ClauseID) {
	if conflict != noClause && s.pendingConflict == noClause {
		s.pendingConflict = conflict
	}
}
