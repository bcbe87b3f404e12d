package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"condasolver/internal/ports"
)

// OutputFileAdapter writes a solve's chosen set or problem report to a
// YAML file on disk.
type OutputFileAdapter struct{}

func NewOutputFileAdapter() OutputFileAdapter {
	return OutputFileAdapter{}
}

func (a OutputFileAdapter) Write(path string, report ports.SolveReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal solve report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write solve report").
			WithCause(err)
	}
	return nil
}

// Read loads a previously-written solve report, for the explain
// subcommand to render without re-running a solve.
func (a OutputFileAdapter) Read(path string) (ports.SolveReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.SolveReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("solve report not found").
			WithCause(err)
	}
	var report ports.SolveReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return ports.SolveReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse solve report yaml").
			WithCause(err)
	}
	return report, nil
}

var _ ports.OutputPort = OutputFileAdapter{}
