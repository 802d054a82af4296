package FlatPlate

import (
	"fmt"
	"math"

	"github.com/notargets/flatplate/utils"
)

/*
	FieldState holds the seven primitive fields on an Imax x Jmax grid. Index i runs along the plate (i=0 is the
	leading edge / inflow plane), j runs normal to it (j=0 is the wall, j=Jmax-1 the far field). Every field is stored
	row-major so node (i,j) is at offset i*Jmax+j of each DataP slice.
*/
type FieldState struct {
	Imax, Jmax int
	Rho        utils.Matrix
	U, V       utils.Matrix
	P, T       utils.Matrix
	E          utils.Matrix // Internal energy per unit mass
	Mach       utils.Matrix
}

func NewFieldState(Imax, Jmax int) (fs *FieldState) {
	if Imax < 3 || Jmax < 3 {
		panic(fmt.Errorf("grid must be at least 3x3 to extrapolate boundaries, have %dx%d", Imax, Jmax))
	}
	fs = &FieldState{
		Imax: Imax,
		Jmax: Jmax,
		Rho:  utils.NewMatrix(Imax, Jmax),
		U:    utils.NewMatrix(Imax, Jmax),
		V:    utils.NewMatrix(Imax, Jmax),
		P:    utils.NewMatrix(Imax, Jmax),
		T:    utils.NewMatrix(Imax, Jmax),
		E:    utils.NewMatrix(Imax, Jmax),
		Mach: utils.NewMatrix(Imax, Jmax),
	}
	return
}

func (fs *FieldState) Index(i, j int) int {
	return i*fs.Jmax + j
}

func (fs *FieldState) Get(ff FlowFunction) utils.Matrix {
	switch ff {
	case Density:
		return fs.Rho
	case XVelocity:
		return fs.U
	case YVelocity:
		return fs.V
	case StaticPressure:
		return fs.P
	case Temperature:
		return fs.T
	case Energy:
		return fs.E
	case Mach:
		return fs.Mach
	}
	panic(fmt.Errorf("unknown flow function %d", ff))
}

// All returns the fields in FlowFunction order
func (fs *FieldState) All() []utils.Matrix {
	return []utils.Matrix{fs.Rho, fs.U, fs.V, fs.P, fs.T, fs.E, fs.Mach}
}

func (fs *FieldState) Copy() (R *FieldState) {
	R = &FieldState{
		Imax: fs.Imax,
		Jmax: fs.Jmax,
		Rho:  fs.Rho.Copy(),
		U:    fs.U.Copy(),
		V:    fs.V.Copy(),
		P:    fs.P.Copy(),
		T:    fs.T.Copy(),
		E:    fs.E.Copy(),
		Mach: fs.Mach.Copy(),
	}
	return
}

// SetNode writes a complete primitive state at one node, deriving pressure, energy and Mach from rho and T
func (fs *FieldState) SetNode(fp *FlowParameters, ind int, rho, u, v, T float64) {
	p := rho * fp.R * T
	fs.Rho.DataP[ind] = rho
	fs.U.DataP[ind] = u
	fs.V.DataP[ind] = v
	fs.T.DataP[ind] = T
	fs.P.DataP[ind] = p
	fs.E.DataP[ind] = fp.Cv * T
	fs.Mach.DataP[ind] = localMach(fp, u, v, p, rho)
}

// UpdateMach recomputes the Mach field from the other primitives over the whole grid
func (fs *FieldState) UpdateMach(fp *FlowParameters) {
	var (
		rhoD, uD, vD, pD = fs.Rho.DataP, fs.U.DataP, fs.V.DataP, fs.P.DataP
		mD               = fs.Mach.DataP
	)
	for ind := range mD {
		mD[ind] = localMach(fp, uD[ind], vD[ind], pD[ind], rhoD[ind])
	}
}

func localMach(fp *FlowParameters, u, v, p, rho float64) float64 {
	var (
		q2 = u*u + v*v
	)
	if q2 == 0 {
		return 0
	}
	return math.Sqrt(q2) / fp.SoundSpeed(p, rho)
}

// Geometry is the uniform grid spacing, fixed for a run
type Geometry struct {
	Imax, Jmax int
	Dx, Dy     float64
}

func (g Geometry) X(i int) float64 { return float64(i) * g.Dx }
func (g Geometry) Y(j int) float64 { return float64(j) * g.Dy }
