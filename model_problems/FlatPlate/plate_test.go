package FlatPlate

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/flatplate/utils"
)

type noOpScheme struct{}

func (noOpScheme) Predictor(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error { return nil }
func (noOpScheme) Corrector(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error { return nil }

// driftScheme adds a fixed density increment at one interior node every step, so the run never converges
type driftScheme struct{ calls int }

func (d *driftScheme) Predictor(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error {
	d.calls++
	fs.Rho.DataP[fs.Index(1, 1)] += 1.e-3
	return nil
}
func (d *driftScheme) Corrector(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error {
	return nil
}

// failScheme drifts like driftScheme and reports an instability on the given call
type failScheme struct{ calls, failOn int }

func (f *failScheme) Predictor(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error {
	f.calls++
	fs.Rho.DataP[fs.Index(1, 1)] += 1.e-3
	if f.calls == f.failOn {
		return &InstabilityError{Stage: "predictor", I: 2, J: 3, Field: Temperature, Value: -1, Err: ErrUnstable}
	}
	return nil
}
func (f *failScheme) Corrector(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error {
	return nil
}

func testSettings(Imax, Jmax, MaxIterations int) Settings {
	s := DefaultSettings()
	s.Imax, s.Jmax, s.MaxIterations = Imax, Jmax, MaxIterations
	return s
}

func newTestPlate(t *testing.T, s Settings) *Plate {
	p, err := NewPlate(DefaultReferenceConditions(), s)
	require.NoError(t, err)
	l := logrus.New()
	l.SetOutput(io.Discard)
	p.Log = logrus.NewEntry(l)
	return p
}

func TestPlateStates(t *testing.T) {
	{ // The free stream start is a fixed point of the boundary conditions
		p := newTestPlate(t, testSettings(10, 10, 5))
		p.Scheme = noOpScheme{}
		var reports []Progress
		res, err := p.Solve(ReporterFunc(func(pr Progress, fs *FieldState) { reports = append(reports, pr) }))
		require.NoError(t, err)
		assert.Equal(t, Converged, res.State)
		assert.Equal(t, 1, res.Iterations)
		assert.Equal(t, 0., res.DensityChange)
		assert.Greater(t, res.DT, 0.)
		assert.Equal(t, Done, p.State)
		require.Len(t, reports, 1)
		assert.Equal(t, Converged, reports[0].State)
	}
	{ // Iteration limit, with reports at the configured cadence and a final report
		s := testSettings(10, 10, 10)
		s.ReportEvery = 3
		p := newTestPlate(t, s)
		ds := &driftScheme{}
		p.Scheme = ds
		var reports []Progress
		res, err := p.Solve(ReporterFunc(func(pr Progress, fs *FieldState) { reports = append(reports, pr) }))
		require.NoError(t, err)
		assert.Nil(t, res.Err)
		assert.Equal(t, MaxIterReached, res.State)
		assert.Equal(t, 10, res.Iterations)
		assert.Equal(t, 10, ds.calls)
		assert.InDelta(t, 1.e-3, res.DensityChange, 1.e-12)
		require.Len(t, reports, 4)
		for n, it := range []int{3, 6, 9, 10} {
			assert.Equal(t, it, reports[n].Iteration)
		}
		assert.Equal(t, Iterating, reports[0].State)
		assert.Equal(t, MaxIterReached, reports[3].State)
		assert.True(t, reports[3].Time > reports[0].Time)
	}
	{ // A cadence that divides the limit does not repeat the last row
		s := testSettings(10, 10, 6)
		s.ReportEvery = 3
		p := newTestPlate(t, s)
		p.Scheme = &driftScheme{}
		var reports []Progress
		_, err := p.Solve(ReporterFunc(func(pr Progress, fs *FieldState) { reports = append(reports, pr) }))
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, 3, reports[0].Iteration)
		assert.Equal(t, 6, reports[1].Iteration)
		assert.Equal(t, MaxIterReached, reports[1].State)
	}
	{ // An instability aborts the run and carries the iteration
		p := newTestPlate(t, testSettings(10, 10, 10))
		l, hook := test.NewNullLogger()
		p.Log = logrus.NewEntry(l)
		p.Scheme = &failScheme{failOn: 2}
		res, err := p.Solve(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnstable))
		assert.Equal(t, Aborted, res.State)
		assert.Equal(t, err, res.Err)
		var ie *InstabilityError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, 2, ie.Iteration)
		assert.Equal(t, 2, res.Iterations)
		assert.Equal(t, Done, p.State)
		var aborted *logrus.Entry
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.ErrorLevel {
				aborted = e
			}
		}
		require.NotNil(t, aborted)
		assert.Equal(t, "run aborted", aborted.Message)
		assert.Equal(t, true, aborted.Data["finite"])
		assert.Equal(t, 2, aborted.Data["iteration"])
	}
	{ // A run can only be solved once
		p := newTestPlate(t, testSettings(10, 10, 5))
		p.Scheme = noOpScheme{}
		_, err := p.Solve(nil)
		require.NoError(t, err)
		_, err = p.Solve(nil)
		assert.True(t, errors.Is(err, ErrSequence))
	}
}

func TestPlateConfiguration(t *testing.T) {
	for _, mod := range []func(s *Settings){
		func(s *Settings) { s.Imax = 2 },
		func(s *Settings) { s.CFL = 0 },
		func(s *Settings) { s.CFL = 1.5 },
		func(s *Settings) { s.Tolerance = 0 },
		func(s *Settings) { s.MaxIterations = 0 },
		func(s *Settings) { s.ReportEvery = -1 },
	} {
		s := DefaultSettings()
		mod(&s)
		_, err := NewPlate(DefaultReferenceConditions(), s)
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	rc := DefaultReferenceConditions()
	rc.Gamma = 0.9
	_, err := NewPlate(rc, DefaultSettings())
	assert.True(t, errors.Is(err, ErrConfiguration))

	p := newTestPlate(t, DefaultSettings())
	var buf bytes.Buffer
	p.Print(&buf)
	assert.Contains(t, buf.String(), "Mach Infinity")
	assert.Contains(t, buf.String(), "[70 x 70]")
}

func TestConsoleReporter(t *testing.T) {
	_, _, fs := newTestState(t, 5, 5)
	var buf bytes.Buffer
	cr := NewConsoleReporter(&buf)
	cr.Report(Progress{Iteration: 100, DT: 1.e-2, State: Iterating}, fs)
	cr.Report(Progress{Iteration: 150, DT: 1.e-2, State: Converged}, fs)
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "iter")
	assert.Contains(t, string(lines[0]), "min_rho")
	assert.Contains(t, string(lines[2]), "Converged")
	assert.NotContains(t, string(lines[1]), "Iterating")
}

func TestPlateFirstIteration(t *testing.T) {
	s := DefaultSettings()
	s.MaxIterations = 1
	p := newTestPlate(t, s)
	res, err := p.Solve(nil)
	require.NoError(t, err)
	assert.Equal(t, MaxIterReached, res.State)
	assert.Equal(t, 1, res.Iterations)
	assert.True(t, utils.IsFinite(res.DensityChange))
	assert.Greater(t, res.DensityChange, 0.)
	assert.Less(t, res.DensityChange, p.FP.Rhoinf)
	assert.True(t, utils.IsFinite(p.FS.All()))
	assert.Greater(t, p.FS.Rho.Min(), 0.)
}

func TestPlateSolve(t *testing.T) {
	var (
		Imax, Jmax    = 30, 30
		MaxIterations = 300
	)
	if os.Getenv("FLATPLATE_LONG") != "" {
		Imax, Jmax, MaxIterations = 70, 70, 100000
	}
	s := testSettings(Imax, Jmax, MaxIterations)
	p := newTestPlate(t, s)
	res, err := p.Solve(nil)
	require.NoError(t, err)
	assert.NotEqual(t, Aborted, res.State)
	fs, fp := p.FS, p.FP
	assert.True(t, utils.IsFinite(fs.All()))
	for i := 1; i < Imax; i++ {
		ind := fs.Index(i, 0)
		assert.Equal(t, 0., fs.U.DataP[ind])
		assert.Equal(t, 0., fs.V.DataP[ind])
		assert.Equal(t, fp.Twall, fs.T.DataP[ind])
	}
	// Flow is decelerated near the wall and undisturbed at the top of the inflow
	assert.Less(t, fs.U.DataP[fs.Index(Imax/2, 1)], fp.Uinf)
	assert.Equal(t, fp.Uinf, fs.U.DataP[fs.Index(0, Jmax-1)])
	assert.Greater(t, fs.Rho.Min(), 0.)
	if os.Getenv("FLATPLATE_LONG") != "" {
		assert.Equal(t, Converged, res.State)
	}
}
