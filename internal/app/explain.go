package app

import (
	"fmt"
	"strings"

	"condasolver/internal/solver"
)

// Explain renders an UNSAT problem report as indented, human-readable
// text, one line per entry, describing the candidate or requirement
// each entry concerns.
func Explain(problem []solver.ProblemEntry) string {
	if len(problem) == 0 {
		return "no problems to report"
	}
	var b strings.Builder
	b.WriteString("The following issues prevent a solution from being found:\n")
	for _, entry := range problem {
		b.WriteString("  - ")
		b.WriteString(explainEntry(entry))
		b.WriteString("\n")
	}
	return b.String()
}

func explainEntry(entry solver.ProblemEntry) string {
	req := entry.PackageName
	if entry.VersionSet != "" {
		req = fmt.Sprintf("%s %s", entry.PackageName, entry.VersionSet)
	}
	switch entry.Kind {
	case solver.ProblemTopLevelNameUnknown:
		return fmt.Sprintf("no package named %q is known in any repository", entry.PackageName)
	case solver.ProblemTopLevelRequirementUnsatisfiable:
		return fmt.Sprintf("no candidate satisfies the top-level requirement %q", req)
	case solver.ProblemDependencyUnsatisfiable:
		return fmt.Sprintf("%s requires %q, which nothing can satisfy", fingerprintString(entry.Source), req)
	case solver.ProblemRequires:
		return fmt.Sprintf("%s requires %q", fingerprintString(entry.Source), req)
	case solver.ProblemConstraint:
		return fmt.Sprintf("%s conflicts with %s via a constraint on %q", fingerprintString(entry.Source), fingerprintString(entry.Target), req)
	case solver.ProblemSameName:
		return fmt.Sprintf("%s and %s cannot be installed together (same package)", fingerprintString(entry.Source), fingerprintString(entry.Target))
	default:
		return "unrecognized problem entry"
	}
}

func fingerprintString(fp solver.Fingerprint) string {
	if fp.Build != "" {
		return fmt.Sprintf("%s=%s=%s", fp.Name, fp.Version, fp.Build)
	}
	return fmt.Sprintf("%s=%s", fp.Name, fp.Version)
}
