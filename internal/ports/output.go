package ports

// ProblemEntry mirrors solver.ProblemEntry at the port boundary.
type ProblemEntry struct {
	Kind        string      `yaml:"kind"`
	PackageName string      `yaml:"package,omitempty"`
	VersionSet  string      `yaml:"version_set,omitempty"`
	Source      Fingerprint `yaml:"source,omitempty"`
	HasSource   bool        `yaml:"-"`
	Target      Fingerprint `yaml:"target,omitempty"`
	HasTarget   bool        `yaml:"-"`
}

// SolveReport is the result document an OutputPort writes: a chosen
// set on success, or a problem report on UNSAT.
type SolveReport struct {
	Status  string        `yaml:"status"`
	Chosen  []Fingerprint `yaml:"chosen,omitempty"`
	Problem []ProblemEntry `yaml:"problem,omitempty"`
}

// OutputPort writes a solve's result to wherever the caller wants it
// recorded. Implementations own the on-disk format.
type OutputPort interface {
	Write(path string, report SolveReport) error
}
