package FlatPlate

import (
	"errors"
	"fmt"

	"github.com/notargets/flatplate/types"
)

var (
	// ErrConfiguration marks flow parameters or run settings that can not describe a physical run
	ErrConfiguration = errors.New("flatplate: invalid configuration")
	// ErrUnstable marks a solution that has diverged (non-positive or non-finite state)
	ErrUnstable = errors.New("flatplate: numerical instability")
	// ErrTimeStep marks a degenerate stable time step, it is also an ErrUnstable
	ErrTimeStep = fmt.Errorf("%w: degenerate time step", ErrUnstable)
	// ErrSequence marks a step taken out of order: a corrector without a predictor, or a second Solve
	ErrSequence = errors.New("flatplate: out of sequence")
)

// InstabilityError locates the node where a sweep produced an unusable state.
type InstabilityError struct {
	Iteration int
	Stage     string
	I, J      int
	Region    types.BCFLAG // BC_None for an interior node
	Field     FlowFunction
	Quantity  string // Names the value instead of Field when it is not a flow field
	Value     float64
	Err       error
}

func newInstabilityError(stage string, Imax, Jmax, i, j int, ff FlowFunction, val float64, err error) *InstabilityError {
	return &InstabilityError{
		Stage:  stage,
		I:      i,
		J:      j,
		Region: BoundaryKind(Imax, Jmax, i, j),
		Field:  ff,
		Value:  val,
		Err:    err,
	}
}

func (e *InstabilityError) Error() string {
	name := e.Field.String()
	if len(e.Quantity) != 0 {
		name = e.Quantity
	}
	txt := fmt.Sprintf("%v: iteration %d, %s, %s = %g at node (%d,%d)",
		e.Err, e.Iteration, e.Stage, name, e.Value, e.I, e.J)
	if e.Region.IsBoundary() {
		txt += fmt.Sprintf(" on the %s boundary", e.Region)
	}
	return txt
}

func (e *InstabilityError) Unwrap() error {
	return e.Err
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
