package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"condasolver/internal/adapters"
	"condasolver/internal/policies"
	"condasolver/internal/ports"
	"condasolver/internal/solver"
)

// Solve loads the environment spec and repository index named by req,
// runs the solver core, and writes the result through s.Output if
// req.OutputPath is set.
func (s Service) Solve(ctx context.Context, req SolveRequest) (SolveResult, error) {
	if strings.TrimSpace(req.SpecPath) == "" {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment spec path is required")
	}
	spec, err := s.SpecLoader.Load(req.SpecPath)
	if err != nil {
		return SolveResult{}, err
	}
	if len(req.Subdirs) == 0 {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one repository subdir is required")
	}
	repo := adapters.NewRepoIndexFileAdapter(req.Subdirs)
	if err := repo.Load(); err != nil {
		return SolveResult{}, err
	}

	input := solver.Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        toRequirements(spec.Specs),
		Constraints:  toRequirements(spec.Constraints),
		Locked:       toFingerprints(spec.Locked),
		Pinned:       toFingerprints(spec.Pinned),
		Installed:    toFingerprints(spec.Installed),
		Excluded:     toFingerprints(spec.Excluded),
		Strategy:     parseStrategy(spec.Strategy),
		Options: solver.Options{
			PreferInstalledOnTie: req.PreferInstalledOnTie,
			StrategyPolicy:       policies.NewStrategyPolicy(toStrategyRules(spec.StrategyOverrides)),
		},
	}

	log.Ctx(ctx).Info().Int("specs", len(input.Specs)).Int("constraints", len(input.Constraints)).Msg("solve starting")
	outcome := solver.Solve(ctx, input)
	log.Ctx(ctx).Info().Str("status", statusString(outcome.Status)).Int("chosen", len(outcome.Chosen)).Msg("solve finished")

	result := SolveResult{Status: outcome.Status, Chosen: outcome.Chosen, Problem: outcome.Problem}
	if strings.TrimSpace(req.OutputPath) != "" {
		if err := s.Output.Write(req.OutputPath, toReport(result)); err != nil {
			return result, err
		}
	}
	return result, nil
}

func toRequirements(in []ports.Requirement) []solver.Requirement {
	out := make([]solver.Requirement, len(in))
	for i, r := range in {
		out[i] = solver.Requirement{Name: r.Name, VersionSet: r.VersionSet}
	}
	return out
}

func toFingerprints(in []ports.Fingerprint) []solver.Fingerprint {
	out := make([]solver.Fingerprint, len(in))
	for i, f := range in {
		out[i] = solver.Fingerprint{Name: f.Name, Version: f.Version, Build: f.Build, Subdir: f.Subdir, Hash: f.Hash}
	}
	return out
}

func toStrategyRules(in []ports.StrategyOverride) []policies.StrategyRule {
	out := make([]policies.StrategyRule, 0, len(in))
	for _, o := range in {
		out = append(out, policies.StrategyRule{Match: o.Match, Strategy: parseStrategy(o.Strategy)})
	}
	return out
}

func parseStrategy(value string) solver.Strategy {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lowest", "lowest_version", "lowest-version":
		return solver.LowestVersion
	case "lowest_version_direct", "lowest-version-direct":
		return solver.LowestVersionDirect
	default:
		return solver.Highest
	}
}

func statusString(status solver.OutcomeStatus) string {
	switch status {
	case solver.StatusSAT:
		return "sat"
	case solver.StatusUNSAT:
		return "unsat"
	case solver.StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func toReport(result SolveResult) ports.SolveReport {
	report := ports.SolveReport{Status: statusString(result.Status)}
	for _, fp := range result.Chosen {
		report.Chosen = append(report.Chosen, ports.Fingerprint{Name: fp.Name, Version: fp.Version, Build: fp.Build, Subdir: fp.Subdir, Hash: fp.Hash})
	}
	for _, entry := range result.Problem {
		report.Problem = append(report.Problem, ports.ProblemEntry{
			Kind:        problemKindString(entry.Kind),
			PackageName: entry.PackageName,
			VersionSet:  entry.VersionSet,
			Source:      ports.Fingerprint{Name: entry.Source.Name, Version: entry.Source.Version, Build: entry.Source.Build, Subdir: entry.Source.Subdir, Hash: entry.Source.Hash},
			HasSource:   entry.HasSource,
			Target:      ports.Fingerprint{Name: entry.Target.Name, Version: entry.Target.Version, Build: entry.Target.Build, Subdir: entry.Target.Subdir, Hash: entry.Target.Hash},
			HasTarget:   entry.HasTarget,
		})
	}
	return report
}

// FromReport reconstructs the solver's ProblemEntry values from a
// previously-written ports.SolveReport, for Explain to render a report
// without requiring a fresh solve.
func FromReport(report ports.SolveReport) []solver.ProblemEntry {
	out := make([]solver.ProblemEntry, 0, len(report.Problem))
	for _, entry := range report.Problem {
		out = append(out, solver.ProblemEntry{
			Kind:        parseProblemKind(entry.Kind),
			PackageName: entry.PackageName,
			VersionSet:  entry.VersionSet,
			Source:      solver.Fingerprint{Name: entry.Source.Name, Version: entry.Source.Version, Build: entry.Source.Build, Subdir: entry.Source.Subdir, Hash: entry.Source.Hash},
			HasSource:   entry.HasSource,
			Target:      solver.Fingerprint{Name: entry.Target.Name, Version: entry.Target.Version, Build: entry.Target.Build, Subdir: entry.Target.Subdir, Hash: entry.Target.Hash},
			HasTarget:   entry.HasTarget,
		})
	}
	return out
}

func parseProblemKind(value string) solver.ProblemKind {
	switch value {
	case "top_level_requirement_unsatisfiable":
		return solver.ProblemTopLevelRequirementUnsatisfiable
	case "top_level_name_unknown":
		return solver.ProblemTopLevelNameUnknown
	case "dependency_unsatisfiable":
		return solver.ProblemDependencyUnsatisfiable
	case "constraint":
		return solver.ProblemConstraint
	case "same_name":
		return solver.ProblemSameName
	case "requires":
		return solver.ProblemRequires
	default:
		return solver.ProblemRequires
	}
}

func problemKindString(kind solver.ProblemKind) string {
	switch kind {
	case solver.ProblemTopLevelRequirementUnsatisfiable:
		return "top_level_requirement_unsatisfiable"
	case solver.ProblemTopLevelNameUnknown:
		return "top_level_name_unknown"
	case solver.ProblemDependencyUnsatisfiable:
		return "dependency_unsatisfiable"
	case solver.ProblemConstraint:
		return "constraint"
	case solver.ProblemSameName:
		return "same_name"
	case solver.ProblemRequires:
		return "requires"
	default:
		return "unknown"
	}
}
