package FlatPlate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/flatplate/utils"
)

// DensityChange is the largest absolute change in density between two sweeps
func DensityChange(rho, rhoOld utils.Matrix) float64 {
	return floats.Distance(rho.DataP, rhoOld.DataP, math.Inf(1))
}

/*
	CheckConvergence compares the density field to the copy taken before the step. A non finite density can never
	satisfy the tolerance and is reported as an instability instead of a miss.
*/
func CheckConvergence(fs *FieldState, rhoOld utils.Matrix, tol float64) (converged bool, change float64, err error) {
	for ind, rho := range fs.Rho.DataP {
		if !utils.IsFinite(rho) {
			err = newInstabilityError("convergence", fs.Imax, fs.Jmax, ind/fs.Jmax, ind%fs.Jmax, Density, rho, ErrUnstable)
			return
		}
	}
	change = DensityChange(fs.Rho, rhoOld)
	converged = change < tol
	return
}
