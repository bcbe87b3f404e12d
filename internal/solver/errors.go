package solver

import "github.com/ZanzyTHEbar/errbuilder-go"

// errFatal builds the panic value used for internal invariant
// violations: these crash the solver loudly with the offending
// identifier rather than ever being surfaced as an UNSAT outcome.
// Callers panic with its result; this package never recovers from it
// itself.
func errFatal(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg)
}

func errInvalidArgument(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
