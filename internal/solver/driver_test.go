package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condasolver/internal/ports"
)

func solve(t *testing.T, repo ports.RepositoryView, specs []Requirement) Outcome {
	t.Helper()
	return Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        specs,
		Options:      Options{PreferInstalledOnTie: true},
	})
}

func hasChosen(out Outcome, name, version string) bool {
	for _, fp := range out.Chosen {
		if fp.Name == name && fp.Version == version {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// E1: basic pick-highest
// ---------------------------------------------------------------------------

func TestSolveBasicPickHighest(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "numpy", version: "1.24.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.25.0", buildString: "py310_0"},
	)
	out := solve(t, repo, []Requirement{{Name: "numpy"}})
	require.Equal(t, StatusSAT, out.Status)
	assert.True(t, hasChosen(out, "numpy", "1.26.0"))
	assert.Len(t, out.Chosen, 1)
}

// ---------------------------------------------------------------------------
// E2: lowest-version strategy
// ---------------------------------------------------------------------------

func TestSolveLowestVersionStrategy(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "numpy", version: "1.24.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.25.0", buildString: "py310_0"},
	)
	out := Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        []Requirement{{Name: "numpy"}},
		Strategy:     LowestVersion,
	})
	require.Equal(t, StatusSAT, out.Status)
	assert.True(t, hasChosen(out, "numpy", "1.24.0"))
}

// ---------------------------------------------------------------------------
// E3: transitive dependency
// ---------------------------------------------------------------------------

func TestSolveTransitiveDependency(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "pandas", version: "2.1.0", buildString: "py310_0", depends: []string{"numpy >=1.20"}},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.10.0", buildString: "py310_0"},
	)
	out := solve(t, repo, []Requirement{{Name: "pandas"}})
	require.Equal(t, StatusSAT, out.Status)
	assert.True(t, hasChosen(out, "pandas", "2.1.0"))
	assert.True(t, hasChosen(out, "numpy", "1.26.0"))
}

// ---------------------------------------------------------------------------
// E4: top-level constraints. One that no candidate satisfies makes the
// solve UNSAT; one that rules out only the highest steers the chosen
// version lower.
// ---------------------------------------------------------------------------

func TestSolveConstraintExcludingEveryCandidateIsUnsat(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "pandas", version: "2.1.0", buildString: "py310_0", depends: []string{"numpy"}},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.20.0", buildString: "py310_0"},
	)
	out := Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        []Requirement{{Name: "pandas"}},
		Constraints:  []Requirement{{Name: "numpy", VersionSet: ">=2.0"}},
	})
	require.Equal(t, StatusUNSAT, out.Status)
	require.NotEmpty(t, out.Problem)
}

func TestSolveConstraintAllowsLowerVersion(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "pandas", version: "2.1.0", buildString: "py310_0", depends: []string{"numpy"}},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.20.0", buildString: "py310_0"},
	)
	out := Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        []Requirement{{Name: "pandas"}},
		Constraints:  []Requirement{{Name: "numpy", VersionSet: "<1.26"}},
	})
	require.Equal(t, StatusSAT, out.Status)
	assert.True(t, hasChosen(out, "numpy", "1.20.0"))
}

// ---------------------------------------------------------------------------
// LowestVersionDirect: direct root requirements sort low, everything
// pulled in transitively still sorts high.
// ---------------------------------------------------------------------------

func TestSolveLowestVersionDirectAppliesOnlyToDirectRequirements(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "foo", version: "1.0.0", buildString: "0", depends: []string{"bar"}},
		fakeRecord{name: "foo", version: "2.0.0", buildString: "0", depends: []string{"bar"}},
		fakeRecord{name: "bar", version: "1.0.0", buildString: "0"},
		fakeRecord{name: "bar", version: "2.0.0", buildString: "0"},
	)
	out := Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        []Requirement{{Name: "foo"}},
		Strategy:     LowestVersionDirect,
	})
	require.Equal(t, StatusSAT, out.Status)
	assert.True(t, hasChosen(out, "foo", "1.0.0"), "direct root requirement should sort lowest-first")
	assert.True(t, hasChosen(out, "bar", "2.0.0"), "transitive dependency should still sort highest-first")
}

func TestSolveLowestVersionDirectPerNameOverrideObeysSourceToo(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "app", version: "1.0.0", buildString: "0", depends: []string{"lib"}},
		fakeRecord{name: "lib", version: "1.0.0", buildString: "0"},
		fakeRecord{name: "lib", version: "2.0.0", buildString: "0"},
	)
	out := Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        []Requirement{{Name: "app"}},
		Options: Options{
			StrategyPolicy: policyFunc(func(name string) (Strategy, bool) {
				if name == "lib" {
					return LowestVersionDirect, true
				}
				return Highest, false
			}),
		},
	})
	require.Equal(t, StatusSAT, out.Status)
	// lib is only ever pulled in transitively (through app), so even a
	// per-name override of LowestVersionDirect must resolve it as
	// Highest here, not LowestVersion.
	assert.True(t, hasChosen(out, "lib", "2.0.0"))
}

type policyFunc func(name string) (Strategy, bool)

func (f policyFunc) StrategyFor(name string) (Strategy, bool) { return f(name) }

// ---------------------------------------------------------------------------
// E5: same-name conflict between two requirements of one package
// ---------------------------------------------------------------------------

func TestSolveSameNameConflict(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "toolkit", version: "1.0.0", buildString: "0", depends: []string{"libfoo ==1.0"}},
		fakeRecord{name: "otherkit", version: "1.0.0", buildString: "0", depends: []string{"libfoo ==2.0"}},
		fakeRecord{name: "libfoo", version: "1.0.0", buildString: "0"},
		fakeRecord{name: "libfoo", version: "2.0.0", buildString: "0"},
	)
	out := solve(t, repo, []Requirement{{Name: "toolkit"}, {Name: "otherkit"}})
	require.Equal(t, StatusUNSAT, out.Status)
	require.NotEmpty(t, out.Problem)
}

// ---------------------------------------------------------------------------
// E6: a pinned override beats the ordinary strategy preference
// ---------------------------------------------------------------------------

func TestSolvePinnedOverride(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "numpy", version: "1.24.0", buildString: "py310_0", hash: "h1"},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0", hash: "h2"},
	)
	out := Solve(context.Background(), Input{
		Repositories: []ports.RepositoryView{repo},
		Specs:        []Requirement{{Name: "numpy"}},
		Pinned:       []Fingerprint{{Name: "numpy", Version: "1.24.0", Build: "py310_0", Hash: "h1"}},
	})
	require.Equal(t, StatusSAT, out.Status)
	assert.True(t, hasChosen(out, "numpy", "1.24.0"))
	assert.False(t, hasChosen(out, "numpy", "1.26.0"))
}

// ---------------------------------------------------------------------------
// Top-level edge cases
// ---------------------------------------------------------------------------

func TestSolveTopLevelNameUnknown(t *testing.T) {
	repo := newFakeRepo(fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"})
	out := solve(t, repo, []Requirement{{Name: "does-not-exist"}})
	require.Equal(t, StatusUNSAT, out.Status)
	require.Len(t, out.Problem, 1)
	assert.Equal(t, ProblemTopLevelNameUnknown, out.Problem[0].Kind)
}

func TestSolveTopLevelRequirementUnsatisfiable(t *testing.T) {
	repo := newFakeRepo(fakeRecord{name: "numpy", version: "1.10.0", buildString: "py310_0"})
	out := solve(t, repo, []Requirement{{Name: "numpy", VersionSet: ">=2.0"}})
	require.Equal(t, StatusUNSAT, out.Status)
	require.Len(t, out.Problem, 1)
	assert.Equal(t, ProblemTopLevelRequirementUnsatisfiable, out.Problem[0].Kind)
}

func TestSolveCancellation(t *testing.T) {
	repo := newFakeRepo(fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := Solve(ctx, Input{Repositories: []ports.RepositoryView{repo}, Specs: []Requirement{{Name: "numpy"}}})
	assert.Equal(t, StatusCancelled, out.Status)
}
