package FlatPlate

import (
	"fmt"

	"github.com/notargets/flatplate/types"
	"github.com/notargets/flatplate/utils"
)

// BoundaryOrder is the order regions are written in. Later regions own the nodes they share with earlier ones.
var BoundaryOrder = []types.BCFLAG{types.BC_LeadingEdge, types.BC_In, types.BC_Far, types.BC_Wall, types.BC_Out}

type BoundaryEnforcer struct {
	Regions []types.BCFLAG
}

func NewBoundaryEnforcer() *BoundaryEnforcer {
	return &BoundaryEnforcer{Regions: BoundaryOrder}
}

// Apply overwrites every boundary node of fs. Interior nodes are not touched.
func (be *BoundaryEnforcer) Apply(fs *FieldState, fp *FlowParameters) {
	for _, bc := range be.Regions {
		switch bc {
		case types.BC_LeadingEdge:
			be.LeadingEdgeBC(fs, fp)
		case types.BC_In:
			be.InflowBC(fs, fp)
		case types.BC_Far:
			be.FarBC(fs, fp)
		case types.BC_Wall:
			be.WallBC(fs, fp)
		case types.BC_Out:
			be.OutflowBC(fs, fp)
		default:
			panic(fmt.Errorf("no boundary condition for region %s", bc))
		}
	}
}

// LeadingEdgeBC sets node (0,0) to free stream density and temperature at rest
func (be *BoundaryEnforcer) LeadingEdgeBC(fs *FieldState, fp *FlowParameters) {
	fs.SetNode(fp, fs.Index(0, 0), fp.Rhoinf, 0, 0, fp.Tinf)
}

func (be *BoundaryEnforcer) InflowBC(fs *FieldState, fp *FlowParameters) {
	for j := 1; j < fs.Jmax; j++ {
		fs.SetNode(fp, fs.Index(0, j), fp.Rhoinf, fp.Uinf, 0, fp.Tinf)
	}
}

func (be *BoundaryEnforcer) FarBC(fs *FieldState, fp *FlowParameters) {
	j := fs.Jmax - 1
	for i := 0; i < fs.Imax; i++ {
		fs.SetNode(fp, fs.Index(i, j), fp.Rhoinf, fp.Uinf, 0, fp.Tinf)
	}
}

/*
	WallBC applies no slip at a fixed wall temperature for i >= 1. Pressure is extrapolated from the two nodes above
	the wall, which is the zero normal pressure gradient condition to first order.
*/
func (be *BoundaryEnforcer) WallBC(fs *FieldState, fp *FlowParameters) {
	pD := fs.P.DataP
	for i := 1; i < fs.Imax; i++ {
		p := utils.Extrapolate(pD[fs.Index(i, 1)], pD[fs.Index(i, 2)])
		fs.SetNode(fp, fs.Index(i, 0), p/(fp.R*fp.Twall), 0, 0, fp.Twall)
	}
}

// OutflowBC extrapolates every field linearly from the two upstream columns
func (be *BoundaryEnforcer) OutflowBC(fs *FieldState, fp *FlowParameters) {
	var (
		i = fs.Imax - 1
	)
	for j := 0; j < fs.Jmax; j++ {
		var (
			ind  = fs.Index(i, j)
			ind1 = fs.Index(i-1, j)
			ind2 = fs.Index(i-2, j)
		)
		for _, f := range []utils.Matrix{fs.Rho, fs.U, fs.V, fs.P, fs.T, fs.E} {
			f.DataP[ind] = utils.Extrapolate(f.DataP[ind1], f.DataP[ind2])
		}
		fs.Mach.DataP[ind] = localMach(fp, fs.U.DataP[ind], fs.V.DataP[ind], fs.P.DataP[ind], fs.Rho.DataP[ind])
	}
}

// BoundaryKind reports the region that owns node (i,j) once all regions are applied in BoundaryOrder
func BoundaryKind(Imax, Jmax, i, j int) types.BCFLAG {
	switch {
	case i == Imax-1:
		return types.BC_Out
	case j == 0 && i == 0:
		return types.BC_LeadingEdge
	case j == 0:
		return types.BC_Wall
	case j == Jmax-1:
		return types.BC_Far
	case i == 0:
		return types.BC_In
	}
	return types.BC_None
}
