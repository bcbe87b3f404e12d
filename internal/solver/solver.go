// Package solver implements a CDCL-style SAT solver core purpose-built
// for resolving package dependencies: a clause arena and
// two-watched-literals propagator, lazy rule instantiation from package
// metadata, a conflict analyzer with non-chronological backjumping, and
// a package-install ordering heuristic layered on top as variable
// selection.
package solver

import (
	"context"

	"condasolver/internal/ports"
)

// Strategy is the user-selected candidate ordering policy.
type Strategy int

const (
	Highest Strategy = iota
	LowestVersion
	// LowestVersionDirect orders direct root requirements like
	// LowestVersion but orders every transitive dependency like Highest,
	// so a package explicitly named by the user can be pinned low while
	// everything it pulls in still resolves to its newest compatible
	// release.
	LowestVersionDirect
)

// Requirement is a (package name, version-set expression) pair. An
// empty or "*" VersionSet matches any version.
type Requirement struct {
	Name       string
	VersionSet string
}

// Fingerprint uniquely identifies a candidate the way the solver's
// callers do, outside the solver's own interned handles.
type Fingerprint struct {
	Name, Version, Build, Subdir, Hash string
}

func (f Fingerprint) key() candidateKey {
	return candidateKey{name: f.Name, version: f.Version, build: f.Build, subdir: f.Subdir, hash: f.Hash}
}

// StrategyPolicy resolves a per-package-name override of the solve-wide
// strategy. A nil policy, or one that returns ok=false, leaves the
// solve-wide strategy in effect.
type StrategyPolicy interface {
	StrategyFor(name string) (Strategy, bool)
}

// Options carries solver-wide tuning knobs that affect candidate
// ordering but not satisfiability.
type Options struct {
	// PreferInstalledOnTie makes the Highest strategy prefer an
	// already-installed candidate over a non-installed one even when the
	// non-installed one has a strictly higher build number. The zero
	// value leaves it off; the solve command's --prefer-installed-on-tie
	// flag defaults it to true.
	PreferInstalledOnTie bool
	// Strategy is applied to every requirement unless StrategyPolicy
	// overrides it for that requirement's package name.
	StrategyPolicy StrategyPolicy
}

// Input is the solver's input contract: every repository, requirement,
// and prior-state constraint a solve needs, gathered up front.
type Input struct {
	Repositories []ports.RepositoryView
	Specs        []Requirement
	Constraints  []Requirement
	Locked       []Fingerprint
	Pinned       []Fingerprint
	Installed    []Fingerprint
	Excluded     []Fingerprint
	Strategy     Strategy
	Options      Options
}

// OutcomeStatus is the three-way result a solve can end in: a
// satisfying assignment was found, none exists, or the solve was
// cancelled before either could be determined.
type OutcomeStatus int

const (
	StatusSAT OutcomeStatus = iota
	StatusUNSAT
	StatusCancelled
)

// Outcome is the solver's output contract: the final status plus
// either the chosen candidates or an explanation of why none exist.
type Outcome struct {
	Status  OutcomeStatus
	Chosen  []Fingerprint
	Problem []ProblemEntry
}

// Solver is a long-lived CDCL state machine: interned universe, clause
// arena, decision assignments and trail, all mutated in place across a
// single solve. A zero Solver is not valid; construct one with
// newSolver (Solve does this for every call).
type Solver struct {
	universe  *universe
	decisions *decisionMap
	stack     decisionStack
	clauses   *clauseArena

	encoded []bool

	topSpecs       []Requirement
	topConstraints []Requirement

	strategy             Strategy
	strategyPolicy       StrategyPolicy
	preferInstalledOnTie bool

	pairsAdded      map[pairKey]bool
	constraintRules []*constraintRule
	rulesByName     map[NameID][]*constraintRule

	currentLevel    int
	pendingConflict ClauseID
}

type pairKey struct {
	a, b CandidateID
}

func normalizedPair(a, b CandidateID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// constraintRule is the lazily-growing record of one candidate's one
// Constrains expression: every already-interned offender seen so far
// has had its binary clause emitted; targetsSeen prevents duplicates
// when the same offender is discovered again.
type constraintRule struct {
	source      CandidateID
	name        string
	versionSet  parsedVersionSet
	targetsSeen map[CandidateID]bool
}

func newSolver(repos []ports.RepositoryView, installed []Fingerprint, strategy Strategy, opts Options) *Solver {
	installedKeys := make([]candidateKey, 0, len(installed))
	for _, fp := range installed {
		installedKeys = append(installedKeys, fp.key())
	}
	s := &Solver{
		universe:             newUniverse(repos, installedKeys),
		decisions:            newDecisionMap(256),
		clauses:              newClauseArena(256),
		strategy:             strategy,
		strategyPolicy:       opts.StrategyPolicy,
		preferInstalledOnTie: opts.PreferInstalledOnTie,
		pairsAdded:           map[pairKey]bool{},
		rulesByName:          map[NameID][]*constraintRule{},
		pendingConflict:      noClause,
	}
	s.encoded = make([]bool, 1, 64)
	return s
}

func (s *Solver) growEncoded(n int) {
	for len(s.encoded) < n {
		s.encoded = append(s.encoded, false)
	}
}

// strategyForName resolves the effective ordering strategy for a
// dependency named by source: the solve-wide strategy unless
// strategyPolicy overrides it for this name, with LowestVersionDirect
// then collapsed to LowestVersion when source is the root candidate
// (a direct requirement) or Highest otherwise (a transitive one).
func (s *Solver) strategyForName(source CandidateID, name string) Strategy {
	st := s.strategy
	if s.strategyPolicy != nil {
		if override, ok := s.strategyPolicy.StrategyFor(name); ok {
			st = override
		}
	}
	if st != LowestVersionDirect {
		return st
	}
	if source == RootCandidate {
		return LowestVersion
	}
	return Highest
}

// assertUnit pushes a unit-propagation consequence at the solver's
// current level.
func (s *Solver) assertUnit(lit literal, level int, antecedent ClauseID) {
	s.decisions.set(lit.candidate, lit.value, level)
	s.stack.push(stackEntry{candidate: lit.candidate, value: lit.value, level: level, antecedent: antecedent})
}

// addClause installs cl into the arena, choosing its initial two
// watches so that each watched literal is either unassigned or
// satisfied whenever possible. It returns the new clause's id, and a
// second id naming a clause that is already contradicted (== id itself
// for a freshly falsified clause) or noClause if none.
func (s *Solver) addClause(cl clause) (ClauseID, ClauseID) {
	id := ClauseID(s.clauses.clauses.alloc(cl))
	clp := s.clauses.get(id)

	if len(clp.lits) == 1 {
		lit := clp.lits[0]
		clp.watch = [2]int{0, 0}
		s.clauses.addWatch(clp, 0, id, lit.candidate)
		if val, assigned := s.decisions.value(lit.candidate); assigned {
			if val != lit.value {
				return id, id
			}
			return id, noClause
		}
		s.assertUnit(lit, s.currentLevel, id)
		return id, noClause
	}

	free0, free1 := -1, -1
	for i, lit := range clp.lits {
		val, assigned := s.decisions.value(lit.candidate)
		if !assigned || val == lit.value {
			if free0 == -1 {
				free0 = i
			} else {
				free1 = i
				break
			}
		}
	}
	switch {
	case free0 == -1:
		clp.watch = [2]int{0, 1}
		return id, id
	case free1 == -1:
		clp.watch = [2]int{free0, free0}
		s.clauses.addWatch(clp, 0, id, clp.lits[free0].candidate)
		s.assertUnit(clp.lits[free0], s.currentLevel, id)
		return id, noClause
	default:
		clp.watch = [2]int{free0, free1}
		s.clauses.addWatch(clp, 0, id, clp.lits[free0].candidate)
		s.clauses.addWatch(clp, 1, id, clp.lits[free1].candidate)
		return id, noClause
	}
}

// ctxToken is the solver's view of a caller-supplied cancellation
// handle: a context the search loop polls between decisions so a
// long-running solve can be aborted without blocking on I/O.
type ctxToken struct {
	ctx context.Context
}

func (t ctxToken) cancelled() bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
		return false
	}
}

// Solve runs the CDCL search loop to completion, cancellation, or a
// top-level conflict, and translates the result into the public
// Outcome contract. It is single-threaded and purely CPU-bound: the
// only I/O is polling ctx for cancellation.
func Solve(ctx context.Context, in Input) Outcome {
	s := newSolver(in.Repositories, in.Installed, in.Strategy, in.Options)
	return s.run(ctx, in)
}
