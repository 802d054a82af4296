package types

import "fmt"

// BCFLAG tags the boundary region that owns a grid node on the flat plate
// domain. The set is closed: dispatch over it with a switch.
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_LeadingEdge
	BC_In
	BC_Far
	BC_Wall
	BC_Out
)

var bcPrintNames = []string{"Interior", "LeadingEdge", "Inflow", "FarField", "Wall", "Outflow"}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcPrintNames) {
		return bcPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", bc)
}

func (bc BCFLAG) IsBoundary() bool {
	return bc != BC_None
}
