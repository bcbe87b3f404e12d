package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"condasolver/tests/testutil"
)

func TestSolveCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	outDir := t.TempDir()
	reportPath := filepath.Join(outDir, "report.yaml")

	cmd := exec.Command("go", "run", "./cmd/condasolver", "solve",
		"--spec", "fixtures/spec.yaml",
		"--subdir", "linux-64=fixtures/repodata/linux-64/repodata.json",
		"--output", reportPath,
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	require.FileExists(t, reportPath)
}
