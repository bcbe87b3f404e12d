package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"condasolver/internal/adapters"
	"condasolver/internal/app"
	"condasolver/internal/solver"
	"condasolver/tests/testutil"
)

// TestSolveAgainstFixtures runs a full Service.Solve over the checked-in
// repodata.json and environment-spec fixtures, exercising the adapters,
// policies, and app wiring together rather than the solver core alone.
func TestSolveAgainstFixtures(t *testing.T) {
	root := testutil.RepoRoot(t)
	specPath := filepath.Join(root, "fixtures", "spec.yaml")
	repoPath := filepath.Join(root, "fixtures", "repodata", "linux-64", "repodata.json")
	outputPath := filepath.Join(t.TempDir(), "report.yaml")

	service := app.Service{
		SpecLoader: adapters.NewSpecFileAdapter(),
		Output:     adapters.NewOutputFileAdapter(),
	}
	result, err := service.Solve(context.Background(), app.SolveRequest{
		Subdirs:              map[string]string{"linux-64": repoPath},
		SpecPath:             specPath,
		OutputPath:           outputPath,
		PreferInstalledOnTie: true,
	})
	require.NoError(t, err)
	require.Equal(t, solver.StatusSAT, result.Status)

	var gotPandas, gotNumpy bool
	for _, fp := range result.Chosen {
		switch fp.Name {
		case "pandas":
			gotPandas = true
			require.Equal(t, "2.1.0", fp.Version)
		case "numpy":
			gotNumpy = true
			require.Equal(t, "1.26.0", fp.Version)
		}
	}
	require.True(t, gotPandas)
	require.True(t, gotNumpy)
	require.FileExists(t, outputPath)

	report, err := adapters.NewOutputFileAdapter().Read(outputPath)
	require.NoError(t, err)
	require.Equal(t, "sat", report.Status)
}
