package FlatPlate

import (
	"math"

	"github.com/notargets/flatplate/utils"
)

// Integrator advances the interior of a FieldState by one explicit step in two stages. Boundary nodes are left to
// the BoundaryEnforcer between and after the stages.
type Integrator interface {
	Predictor(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error
	Corrector(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) error
}

type DiffDir int8

const (
	Central DiffDir = iota
	Forward
	Backward
)

// DensityFloor is the fraction of free stream density below which a node is treated as diverged
var DensityFloor = 1.e-8

/*
	MacCormack is the explicit predictor / corrector scheme for the 2D compressible Navier-Stokes equations

		dQ/dt + dE/dx + dF/dy = 0
		Q = [rho, rho*u, rho*v, Et]
		E = [rho*u, rho*u*u+p-txx, rho*u*v-txy, (Et+p)*u-u*txx-v*txy+qx]
		F = [rho*v, rho*u*v-txy, rho*v*v+p-tyy, (Et+p)*v-u*txy-v*tyy+qy]

	The predictor differences the fluxes forward and the corrector backward. Inside the fluxes, the derivative taken
	in the flux direction (x within E, y within F) is one-sided in the opposite sense, and the cross derivative is
	central. The pairing is required for second order accuracy.
*/
type MacCormack struct {
	Imax, Jmax int
	Q0         [4]utils.Matrix // Conserved state at the start of the step
	Q          [4]utils.Matrix // Predicted, then corrected conserved state
	E, F       [4]utils.Matrix // Flux vectors
	Mu, K      utils.Matrix    // Viscosity and conductivity at the nodes
	predicted  bool
}

func NewMacCormack(Imax, Jmax int) (mc *MacCormack) {
	mc = &MacCormack{
		Imax: Imax,
		Jmax: Jmax,
		Mu:   utils.NewMatrix(Imax, Jmax),
		K:    utils.NewMatrix(Imax, Jmax),
	}
	for n := 0; n < 4; n++ {
		mc.Q0[n] = utils.NewMatrix(Imax, Jmax)
		mc.Q[n] = utils.NewMatrix(Imax, Jmax)
		mc.E[n] = utils.NewMatrix(Imax, Jmax)
		mc.F[n] = utils.NewMatrix(Imax, Jmax)
	}
	return
}

func (mc *MacCormack) Predictor(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) (err error) {
	var (
		J        = mc.Jmax
		idx, idy = 1. / g.Dx, 1. / g.Dy
		q0D, qD  = Get4DP(mc.Q0), Get4DP(mc.Q)
		eD, fD   = Get4DP(mc.E), Get4DP(mc.F)
	)
	mc.checkDims(fs)
	mc.predicted = false
	mc.Encode(fs, mc.Q0)
	mc.CalculateFluxes(g, fs, fp, Backward)
	for i := 1; i < mc.Imax-1; i++ {
		for j := 1; j < J-1; j++ {
			ind := i*J + j
			for n := 0; n < 4; n++ {
				dQdt := -(eD[n][ind+J]-eD[n][ind])*idx - (fD[n][ind+1]-fD[n][ind])*idy
				qD[n][ind] = q0D[n][ind] + dt*dQdt
			}
		}
	}
	if err = mc.Decode(mc.Q, fs, fp, "predictor"); err != nil {
		return
	}
	mc.predicted = true
	return
}

func (mc *MacCormack) Corrector(dt float64, g Geometry, fs *FieldState, fp *FlowParameters) (err error) {
	var (
		J        = mc.Jmax
		idx, idy = 1. / g.Dx, 1. / g.Dy
		q0D, qD  = Get4DP(mc.Q0), Get4DP(mc.Q)
		eD, fD   = Get4DP(mc.E), Get4DP(mc.F)
	)
	if !mc.predicted {
		return ErrSequence
	}
	mc.checkDims(fs)
	mc.predicted = false
	mc.Encode(fs, mc.Q) // Predicted state, boundaries included
	mc.CalculateFluxes(g, fs, fp, Forward)
	for i := 1; i < mc.Imax-1; i++ {
		for j := 1; j < J-1; j++ {
			ind := i*J + j
			for n := 0; n < 4; n++ {
				dQdt := -(eD[n][ind]-eD[n][ind-J])*idx - (fD[n][ind]-fD[n][ind-1])*idy
				qD[n][ind] = 0.5 * (q0D[n][ind] + qD[n][ind] + dt*dQdt)
			}
		}
	}
	return mc.Decode(mc.Q, fs, fp, "corrector")
}

// Encode converts the primitive fields to conserved variables at every node
func (mc *MacCormack) Encode(fs *FieldState, Q [4]utils.Matrix) {
	var (
		rhoD, uD, vD, eD = fs.Rho.DataP, fs.U.DataP, fs.V.DataP, fs.E.DataP
		qD               = Get4DP(Q)
	)
	for ind, rho := range rhoD {
		u, v := uD[ind], vD[ind]
		qD[0][ind] = rho
		qD[1][ind] = rho * u
		qD[2][ind] = rho * v
		qD[3][ind] = rho * (eD[ind] + 0.5*(u*u+v*v))
	}
}

/*
	Decode converts conserved variables back to primitives on the interior nodes. The whole interior is checked
	before anything is written, so a diverged sweep leaves fs as it was.
*/
func (mc *MacCormack) Decode(Q [4]utils.Matrix, fs *FieldState, fp *FlowParameters, stage string) (err error) {
	var (
		J      = mc.Jmax
		qD     = Get4DP(Q)
		rhoMin = DensityFloor * fp.Rhoinf
	)
	primitive := func(ind int) (rho, u, v, e, T float64) {
		rho = qD[0][ind]
		u, v = qD[1][ind]/rho, qD[2][ind]/rho
		e = qD[3][ind]/rho - 0.5*(u*u+v*v)
		T = e / fp.Cv
		return
	}
	for i := 1; i < mc.Imax-1; i++ {
		for j := 1; j < J-1; j++ {
			ind := i*J + j
			rho, u, v, _, T := primitive(ind)
			switch {
			case !(rho > rhoMin) || math.IsInf(rho, 0):
				err = newInstabilityError(stage, mc.Imax, J, i, j, Density, rho, ErrUnstable)
			case !utils.IsFinite(u):
				err = newInstabilityError(stage, mc.Imax, J, i, j, XVelocity, u, ErrUnstable)
			case !utils.IsFinite(v):
				err = newInstabilityError(stage, mc.Imax, J, i, j, YVelocity, v, ErrUnstable)
			case !(T > 0) || math.IsInf(T, 0):
				err = newInstabilityError(stage, mc.Imax, J, i, j, Temperature, T, ErrUnstable)
			}
			if err != nil {
				return
			}
		}
	}
	for i := 1; i < mc.Imax-1; i++ {
		for j := 1; j < J-1; j++ {
			ind := i*J + j
			rho, u, v, e, T := primitive(ind)
			p := rho * fp.R * T
			fs.Rho.DataP[ind] = rho
			fs.U.DataP[ind] = u
			fs.V.DataP[ind] = v
			fs.E.DataP[ind] = e
			fs.T.DataP[ind] = T
			fs.P.DataP[ind] = p
			fs.Mach.DataP[ind] = localMach(fp, u, v, p, rho)
		}
	}
	return
}

/*
	CalculateFluxes fills E and F at every node. dir is the one-sided sense used for the derivative along the flux
	direction: x-derivatives inside E and y-derivatives inside F. Cross derivatives are central. At the edges of the
	grid every difference falls back to the one-sided form that stays inside the domain.
*/
func (mc *MacCormack) CalculateFluxes(g Geometry, fs *FieldState, fp *FlowParameters, dir DiffDir) {
	var (
		J                    = mc.Jmax
		rhoD, uD, vD, pD, tD = fs.Rho.DataP, fs.U.DataP, fs.V.DataP, fs.P.DataP, fs.T.DataP
		eintD                = fs.E.DataP
		muD, kD              = mc.Mu.DataP, mc.K.DataP
		eD, fD               = Get4DP(mc.E), Get4DP(mc.F)
	)
	for ind, T := range tD {
		muD[ind] = fp.Viscosity(T)
		kD[ind] = fp.Conductivity(muD[ind])
	}
	for i := 0; i < mc.Imax; i++ {
		for j := 0; j < J; j++ {
			var (
				ind        = i*J + j
				rho, u, v  = rhoD[ind], uD[ind], vD[ind]
				p          = pD[ind]
				mu, k      = muD[ind], kD[ind]
				lambda     = -2. / 3. * mu
				Et         = rho * (eintD[ind] + 0.5*(u*u+v*v))
				dudx, dvdx float64
				dudy, dvdy float64
			)
			// E: x-derivatives one-sided, y-derivatives central
			dudx, dvdx = mc.ddx(uD, i, ind, dir, g.Dx), mc.ddx(vD, i, ind, dir, g.Dx)
			dudy, dvdy = mc.ddy(uD, j, ind, Central, g.Dy), mc.ddy(vD, j, ind, Central, g.Dy)
			txx := lambda*(dudx+dvdy) + 2*mu*dudx
			txy := mu * (dudy + dvdx)
			qx := -k * mc.ddx(tD, i, ind, dir, g.Dx)
			eD[0][ind] = rho * u
			eD[1][ind] = rho*u*u + p - txx
			eD[2][ind] = rho*u*v - txy
			eD[3][ind] = (Et+p)*u - u*txx - v*txy + qx

			// F: y-derivatives one-sided, x-derivatives central
			dudx, dvdx = mc.ddx(uD, i, ind, Central, g.Dx), mc.ddx(vD, i, ind, Central, g.Dx)
			dudy, dvdy = mc.ddy(uD, j, ind, dir, g.Dy), mc.ddy(vD, j, ind, dir, g.Dy)
			tyy := lambda*(dudx+dvdy) + 2*mu*dvdy
			txy = mu * (dudy + dvdx)
			qy := -k * mc.ddy(tD, j, ind, dir, g.Dy)
			fD[0][ind] = rho * v
			fD[1][ind] = rho*u*v - txy
			fD[2][ind] = rho*v*v + p - tyy
			fD[3][ind] = (Et+p)*v - u*txy - v*tyy + qy
		}
	}
}

func (mc *MacCormack) ddx(f []float64, i, ind int, dir DiffDir, dx float64) float64 {
	return difference(f, ind, mc.Jmax, oneSidedAtEdge(dir, i, mc.Imax), dx)
}

func (mc *MacCormack) ddy(f []float64, j, ind int, dir DiffDir, dy float64) float64 {
	return difference(f, ind, 1, oneSidedAtEdge(dir, j, mc.Jmax), dy)
}

func oneSidedAtEdge(dir DiffDir, i, imax int) DiffDir {
	switch {
	case i == 0 && dir != Forward:
		return Forward
	case i == imax-1 && dir != Backward:
		return Backward
	}
	return dir
}

func difference(f []float64, ind, stride int, dir DiffDir, h float64) float64 {
	switch dir {
	case Forward:
		return (f[ind+stride] - f[ind]) / h
	case Backward:
		return (f[ind] - f[ind-stride]) / h
	}
	return (f[ind+stride] - f[ind-stride]) / (2 * h)
}

func (mc *MacCormack) checkDims(fs *FieldState) {
	if fs.Imax != mc.Imax || fs.Jmax != mc.Jmax {
		panic("field state dimensions do not match the solver work buffers")
	}
}

func Get4DP(Q [4]utils.Matrix) (qD [4][]float64) {
	for n := 0; n < 4; n++ {
		qD[n] = Q[n].DataP
	}
	return
}
