package app

import "condasolver/internal/solver"

// SolveRequest is the CLI/app boundary's input to one solve: where the
// repository index lives, where the environment spec lives, and the
// solve-wide tuning knobs a caller can override from the command line.
type SolveRequest struct {
	Subdirs              map[string]string
	SpecPath             string
	OutputPath           string
	PreferInstalledOnTie bool
}

// SolveResult is what the CLI reports back to the user after a solve.
type SolveResult struct {
	Status  solver.OutcomeStatus
	Chosen  []solver.Fingerprint
	Problem []solver.ProblemEntry
}

// ValidateRequest names only the environment spec: validation checks
// the spec file parses and names a non-empty top-level requirement
// set, without resolving against a repository index.
type ValidateRequest struct {
	SpecPath string
}
