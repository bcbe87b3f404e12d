package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"condasolver/internal/ports"
)

// SpecFileAdapter reads an environment-spec YAML document from disk.
type SpecFileAdapter struct{}

func NewSpecFileAdapter() SpecFileAdapter {
	return SpecFileAdapter{}
}

func (a SpecFileAdapter) Load(path string) (ports.EnvSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.EnvSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("environment spec file not found").
			WithCause(err)
	}
	var spec ports.EnvSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ports.EnvSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse environment spec yaml").
			WithCause(err)
	}
	if len(spec.Specs) == 0 {
		return ports.EnvSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment spec has no top-level specs")
	}
	return spec, nil
}

var _ ports.EnvironmentSpecPort = SpecFileAdapter{}
