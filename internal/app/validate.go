package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ValidateResult reports whether an environment spec is well-formed
// enough to attempt a solve.
type ValidateResult struct {
	SpecCount int
}

// Validate loads the environment spec named by req and checks it has
// at least one top-level requirement. It does not touch a repository
// index: that only matters once an actual solve is attempted.
func (s Service) Validate(req ValidateRequest) (ValidateResult, error) {
	if strings.TrimSpace(req.SpecPath) == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment spec path is required")
	}
	spec, err := s.SpecLoader.Load(req.SpecPath)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{SpecCount: len(spec.Specs)}, nil
}
