package FlatPlate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notargets/flatplate/utils"
)

type RunState uint8

const (
	Initializing RunState = iota
	Iterating
	Converged
	MaxIterReached
	Aborted
	Done
)

var runStateNames = []string{"Initializing", "Iterating", "Converged", "MaxIterReached", "Aborted", "Done"}

func (rs RunState) String() string {
	if int(rs) < len(runStateNames) {
		return runStateNames[rs]
	}
	return fmt.Sprintf("RunState(%d)", rs)
}

// Terminal is true for the states a run can finish in
func (rs RunState) Terminal() bool {
	return rs == Converged || rs == MaxIterReached || rs == Aborted
}

// Settings are the numerical controls of a run
type Settings struct {
	Imax, Jmax    int
	CFL           float64 // Safety factor on the explicit time step
	Tolerance     float64 // Converged when max |rho - rho_old| falls below this
	MaxIterations int
	ReportEvery   int // Iterations between reports, zero reports only the final state
}

func DefaultSettings() Settings {
	return Settings{
		Imax:          70,
		Jmax:          70,
		CFL:           0.6,
		Tolerance:     1.e-8,
		MaxIterations: 100000,
		ReportEvery:   100,
	}
}

// Validate rejects grids, tolerances and limits a run can not use
func (s Settings) Validate() error {
	switch {
	case s.Imax < 3 || s.Jmax < 3:
		return configError("grid must be at least 3x3, have %dx%d", s.Imax, s.Jmax)
	case !(s.CFL > 0) || s.CFL > 1:
		return configError("CFL must be in (0,1], have %g", s.CFL)
	case !(s.Tolerance > 0):
		return configError("Tolerance must be positive, have %g", s.Tolerance)
	case s.MaxIterations < 1:
		return configError("MaxIterations must be at least 1, have %d", s.MaxIterations)
	case s.ReportEvery < 0:
		return configError("ReportEvery must not be negative, have %d", s.ReportEvery)
	}
	return nil
}

// Result describes how a run finished
type Result struct {
	State         RunState // Converged, MaxIterReached or Aborted
	Iterations    int
	Time, DT      float64
	DensityChange float64
	Elapsed       time.Duration
	Err           error // Set when the run was Aborted
}

/*
	Plate drives the MacCormack march to steady state for supersonic flow over a flat plate. Each iteration:

		1) copy density for the convergence check
		2) compute the stable time step over the whole grid
		3) predictor, boundary conditions
		4) corrector, boundary conditions
		5) check convergence, report

	The run stops when the density change falls below Tolerance, after MaxIterations, or on an instability.
*/
type Plate struct {
	Settings
	FP     *FlowParameters
	Geom   Geometry
	FS     *FieldState
	Step   *StepSize
	BC     *BoundaryEnforcer
	Scheme Integrator
	State  RunState
	Log    *logrus.Entry
	rhoOld utils.Matrix
}

func NewPlate(rc ReferenceConditions, s Settings) (p *Plate, err error) {
	var (
		fp *FlowParameters
	)
	if err = s.Validate(); err != nil {
		return
	}
	if fp, err = NewFlowParameters(rc); err != nil {
		return
	}
	g := CalculateSpatialSteps(fp, s.Imax, s.Jmax)
	p = &Plate{
		Settings: s,
		FP:       fp,
		Geom:     g,
		FS:       NewFieldState(s.Imax, s.Jmax),
		Step:     NewStepSize(g, s.CFL),
		BC:       NewBoundaryEnforcer(),
		Scheme:   NewMacCormack(s.Imax, s.Jmax),
		State:    Initializing,
		rhoOld:   utils.NewMatrix(s.Imax, s.Jmax),
		Log: logrus.WithFields(logrus.Fields{
			"imax": s.Imax,
			"jmax": s.Jmax,
			"minf": rc.Minf,
		}),
	}
	return
}

// Solve initializes the free stream and iterates until a terminal state. The returned error is non nil only for
// an Aborted run, and is also recorded in the Result.
func (p *Plate) Solve(rep Reporter) (res *Result, err error) {
	var (
		start     = time.Now()
		converged bool
		prog      Progress
	)
	if p.State != Initializing {
		err = fmt.Errorf("%w: run already started, state is %s", ErrSequence, p.State)
		return
	}
	InitializeFreeStream(p.FS, p.FP, p.BC)
	p.Log.WithFields(logrus.Fields{
		"dx": p.Geom.Dx, "dy": p.Geom.Dy, "reynolds": p.FP.Reynolds,
	}).Info("starting flat plate run")
	p.State = Iterating
	for !p.State.Terminal() {
		prog.Iteration++
		if prog.DT, err = p.Iterate(); err == nil {
			prog.Time += prog.DT
			converged, prog.DensityChange, err = CheckConvergence(p.FS, p.rhoOld, p.Tolerance)
		}
		switch {
		case err != nil:
			p.State = Aborted
		case converged:
			p.State = Converged
		case prog.Iteration >= p.MaxIterations:
			p.State = MaxIterReached
		case rep != nil && p.ReportEvery > 0 && prog.Iteration%p.ReportEvery == 0:
			prog.State = p.State
			rep.Report(prog, p.FS)
		}
	}
	switch p.State {
	case Aborted:
		var ie *InstabilityError
		if errors.As(err, &ie) {
			ie.Iteration = prog.Iteration
		}
		p.Log.WithError(err).WithFields(logrus.Fields{
			"iteration": prog.Iteration, "finite": utils.IsFinite(p.FS.All()),
		}).Error("run aborted")
	case Converged:
		p.Log.WithField("iteration", prog.Iteration).Info("converged")
	case MaxIterReached:
		p.Log.WithFields(logrus.Fields{
			"iteration": prog.Iteration, "change": prog.DensityChange,
		}).Warn("iteration limit reached before convergence")
	}
	p.Log.WithField("memory", utils.GetMemUsage()).Debug("run finished")
	prog.State = p.State
	res = &Result{
		State:         p.State,
		Iterations:    prog.Iteration,
		Time:          prog.Time,
		DT:            prog.DT,
		DensityChange: prog.DensityChange,
		Elapsed:       time.Since(start),
		Err:           err,
	}
	if rep != nil {
		rep.Report(prog, p.FS)
	}
	p.State = Done
	return
}

// Iterate advances the field state by one predictor / corrector step and returns the time step used
func (p *Plate) Iterate() (dt float64, err error) {
	p.rhoOld.CopyFrom(p.FS.Rho)
	if dt, err = p.Step.CalculateDT(p.FS, p.FP); err != nil {
		return
	}
	if err = p.Scheme.Predictor(dt, p.Geom, p.FS, p.FP); err != nil {
		return
	}
	p.BC.Apply(p.FS, p.FP)
	if err = p.Scheme.Corrector(dt, p.Geom, p.FS, p.FP); err != nil {
		return
	}
	p.BC.Apply(p.FS, p.FP)
	return
}

func (p *Plate) Print(w io.Writer) {
	fmt.Fprintf(w, "Supersonic Flat Plate, Navier-Stokes, MacCormack predictor / corrector\n")
	p.FP.Print(w)
	fmt.Fprintf(w, "[%d x %d]\t\t= Grid\n", p.Imax, p.Jmax)
	fmt.Fprintf(w, "%8.5f, %8.5f\t= Dx, Dy\n", p.Geom.Dx, p.Geom.Dy)
	fmt.Fprintf(w, "%8.5f\t\t= CFL\n", p.CFL)
	fmt.Fprintf(w, "%8.2e\t\t= Tolerance\n", p.Tolerance)
	fmt.Fprintf(w, "[%d]\t\t\t= Max Iterations\n", p.MaxIterations)
}

func (p *Plate) PrintFinal(w io.Writer, res *Result) {
	rate := float64(res.Elapsed.Microseconds()) / float64(p.Imax*p.Jmax*max(res.Iterations, 1))
	fmt.Fprintf(w, "\n%s after %d iterations, max density change = %8.4e\n", res.State, res.Iterations, res.DensityChange)
	fmt.Fprintf(w, "Rate of execution = %8.5f us/(node*iteration)\n", rate)
}
