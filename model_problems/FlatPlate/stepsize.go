package FlatPlate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/flatplate/utils"
)

// BoundaryLayerThickness is the laminar estimate 5*L/sqrt(Re_L) at the trailing edge
func BoundaryLayerThickness(fp *FlowParameters) float64 {
	return 5 * fp.PlateLength / math.Sqrt(fp.Reynolds)
}

// CalculateSpatialSteps sizes the grid to span the plate and five boundary layer thicknesses
func CalculateSpatialSteps(fp *FlowParameters, Imax, Jmax int) (g Geometry) {
	var (
		lvert = 5 * BoundaryLayerThickness(fp)
	)
	g = Geometry{
		Imax: Imax,
		Jmax: Jmax,
		Dx:   fp.PlateLength / float64(Imax),
		Dy:   lvert / float64(Jmax),
	}
	return
}

type StepSize struct {
	Geometry
	CFL     float64 // Safety factor applied to the smallest local bound
	DTLocal utils.Matrix
}

func NewStepSize(g Geometry, CFL float64) (ss *StepSize) {
	ss = &StepSize{
		Geometry: g,
		CFL:      CFL,
		DTLocal:  utils.NewMatrix(g.Imax, g.Jmax),
	}
	return
}

/*
	CalculateDT returns CFL times the smallest of the local explicit stability bounds

		dt(i,j) = 1 / ( |u|/dx + |v|/dy + a*sqrt(1/dx^2+1/dy^2) + 2*nu*(1/dx^2+1/dy^2) )

	where nu = max(4/3*mu, gamma*mu/Pr)/rho. Every node is visited, boundaries included.
*/
func (ss *StepSize) CalculateDT(fs *FieldState, fp *FlowParameters) (dt float64, err error) {
	var (
		idx, idy                 = 1. / ss.Dx, 1. / ss.Dy
		idxy2                    = utils.POW(ss.Dx, -2) + utils.POW(ss.Dy, -2)
		sidxy                    = math.Sqrt(idxy2)
		rhoD, uD, vD, pD, tD     = fs.Rho.DataP, fs.U.DataP, fs.V.DataP, fs.P.DataP, fs.T.DataP
		dtD                      = ss.DTLocal.DataP
		rho, u, v, p, T, mu, nuP float64
	)
	for ind := range dtD {
		i, j := ind/fs.Jmax, ind%fs.Jmax
		rho, u, v, p, T = rhoD[ind], uD[ind], vD[ind], pD[ind], tD[ind]
		if !(rho > 0) || !(T > 0) || !(p > 0) {
			ff, val := Density, rho
			switch {
			case !(T > 0):
				ff, val = Temperature, T
			case !(p > 0):
				ff, val = StaticPressure, p
			}
			err = newInstabilityError("time step", fs.Imax, fs.Jmax, i, j, ff, val, ErrTimeStep)
			return
		}
		mu = fp.Viscosity(T)
		nuP = math.Max(4./3.*mu, fp.Gamma*mu/fp.Pr) / rho
		dtD[ind] = 1. / (math.Abs(u)*idx + math.Abs(v)*idy + fp.SoundSpeed(p, rho)*sidxy + 2*nuP*idxy2)
		if !utils.IsFinite(dtD[ind]) || dtD[ind] <= 0 {
			err = boundError(fs, i, j, dtD[ind])
			return
		}
	}
	dt = ss.CFL * floats.Min(dtD)
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		ind := floats.MinIdx(dtD)
		ie := newInstabilityError("time step", fs.Imax, fs.Jmax, ind/fs.Jmax, ind%fs.Jmax, Density, dt, ErrTimeStep)
		ie.Quantity = "dt"
		err = ie
	}
	return
}

// boundError blames the first non finite primitive at (i,j), or the local bound itself when every input is finite
func boundError(fs *FieldState, i, j int, bound float64) error {
	ind := fs.Index(i, j)
	for _, ff := range []FlowFunction{Density, XVelocity, YVelocity, StaticPressure, Temperature} {
		if val := fs.Get(ff).DataP[ind]; !utils.IsFinite(val) {
			return newInstabilityError("time step", fs.Imax, fs.Jmax, i, j, ff, val, ErrTimeStep)
		}
	}
	ie := newInstabilityError("time step", fs.Imax, fs.Jmax, i, j, Density, bound, ErrTimeStep)
	ie.Quantity = "local dt"
	return ie
}
