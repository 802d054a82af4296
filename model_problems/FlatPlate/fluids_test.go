package FlatPlate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowParameters(t *testing.T) {
	{ // Free stream is unity in the scaled variables
		fp, err := NewFlowParameters(DefaultReferenceConditions())
		require.NoError(t, err)
		assert.Equal(t, 1., fp.Pinf)
		assert.Equal(t, 1., fp.Tinf)
		assert.Equal(t, 1., fp.Uinf)
		assert.Equal(t, 1., fp.Twall)
		assert.Equal(t, 0.25, fp.Ainf)
		assert.True(t, near(fp.Rhoinf, 1./fp.R))
		assert.True(t, near(fp.Rhoinf, 22.4, 0.01))
		assert.True(t, near(fp.Cp-fp.Cv, fp.R))
		assert.True(t, near(fp.Cp/fp.Cv, fp.Gamma))
	}
	{ // Reynolds number matches the dimensional value, and the plate length is sqrt(Re) reference lengths
		rc := DefaultReferenceConditions()
		fp, err := NewFlowParameters(rc)
		require.NoError(t, err)
		rho := rc.Pinf / (rc.GasConstant * rc.Tinf)
		u := rc.Minf * rc.SoundSpeed
		Re := rho * u * rc.PlateLength / rc.MuRef
		assert.InEpsilon(t, Re, fp.Reynolds, 1.e-10)
		assert.True(t, near(fp.Reynolds, 931, 0.01))
		assert.InEpsilon(t, math.Sqrt(fp.Reynolds), fp.PlateLength, 1.e-10)
		assert.InEpsilon(t, rc.PlateLength, fp.PlateLength*fp.LRef, 1.e-10)
	}
	{ // Sutherland's law reproduces the reference viscosity and grows with temperature
		fp, err := NewFlowParameters(DefaultReferenceConditions())
		require.NoError(t, err)
		assert.InEpsilon(t, fp.MuRef, fp.Viscosity(fp.TRef), 1.e-12)
		assert.Greater(t, fp.Viscosity(2), fp.Viscosity(1))
		assert.InEpsilon(t, fp.Viscosity(1)*fp.Cp/fp.Pr, fp.Conductivity(fp.Viscosity(1)), 1.e-12)
	}
	{ // A zero sound speed is derived from the gas
		rc := DefaultReferenceConditions()
		rc.SoundSpeed = 0
		fp, err := NewFlowParameters(rc)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, fp.Ainf, 1.e-12)
		assert.InDelta(t, fp.Ainf, fp.SoundSpeed(fp.Pinf, fp.Rhoinf), 1.e-12)
	}
	{ // Non physical conditions are rejected
		for _, mod := range []func(rc *ReferenceConditions){
			func(rc *ReferenceConditions) { rc.Gamma = 1 },
			func(rc *ReferenceConditions) { rc.Minf = 0 },
			func(rc *ReferenceConditions) { rc.Twall = -1 },
			func(rc *ReferenceConditions) { rc.PlateLength = math.NaN() },
			func(rc *ReferenceConditions) { rc.SoundSpeed = -340 },
		} {
			rc := DefaultReferenceConditions()
			mod(&rc)
			fp, err := NewFlowParameters(rc)
			assert.Nil(t, fp)
			assert.True(t, errors.Is(err, ErrConfiguration))
		}
	}
}

func TestFlowFunction(t *testing.T) {
	for _, tc := range []struct {
		label string
		ff    FlowFunction
	}{
		{"Density", Density},
		{"rho", Density},
		{"pressure", StaticPressure},
		{" u ", XVelocity},
		{"VelocityY", YVelocity},
		{"T", Temperature},
		{"mach", Mach},
	} {
		ff, err := NewFlowFunction(tc.label)
		assert.NoError(t, err)
		assert.Equal(t, tc.ff, ff)
	}
	_, err := NewFlowFunction("vorticity")
	assert.Error(t, err)
	assert.Equal(t, "Pressure", StaticPressure.String())
	assert.Equal(t, "FlowFunction(42)", FlowFunction(42).String())
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
