package app

import (
	"condasolver/internal/adapters"
	"condasolver/internal/ports"
)

// Service wires the environment-spec and output ports to the solver
// core.
type Service struct {
	SpecLoader ports.EnvironmentSpecPort
	Output     ports.OutputPort
}

func NewService() Service {
	return Service{
		SpecLoader: adapters.NewSpecFileAdapter(),
		Output:     adapters.NewOutputFileAdapter(),
	}
}
