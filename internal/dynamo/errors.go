package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidArgument indicates a parameter the callee cannot interpret,
	// such as an unknown angle unit or an impossible configuration value.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrInvalidState indicates a body whose position or velocity is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrTerminated indicates an operation on a simulation that already stopped.
	ErrTerminated = errors.New("dynamo: simulation terminated")

	// ErrUnknownRun indicates a stored run id that does not exist.
	ErrUnknownRun = errors.New("dynamo: unknown run")
)

// Invalid wraps ErrInvalidArgument with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// SimError locates a failure inside a run.
type SimError struct {
	Frame   int
	Time    float64
	Body    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f) body %d: %s", e.Frame, e.Time, e.Body, e.Message)
}

func (e SimError) Unwrap() error {
	return ErrInvalidState
}
